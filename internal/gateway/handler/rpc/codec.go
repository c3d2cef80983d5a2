package rpc

import "encoding/json"

// JSONCodec lets Connect carry plain Go structs as JSON. It replaces the
// default protobuf-JSON codec, which only accepts generated messages.
type JSONCodec struct{}

func (JSONCodec) Name() string { return "json" }

func (JSONCodec) Marshal(v any) ([]byte, error) { return json.Marshal(v) }

func (JSONCodec) Unmarshal(data []byte, v any) error { return json.Unmarshal(data, v) }
