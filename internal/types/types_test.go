package types

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLanguageSharePercentageIsFixedString(t *testing.T) {
	b, err := json.Marshal([]LanguageShare{{Name: "TypeScript", Percentage: 45.1}, {Name: "CSS", Percentage: 0}})
	require.NoError(t, err)
	assert.JSONEq(t, `[{"name":"TypeScript","percentage":"45.10"},{"name":"CSS","percentage":"0.00"}]`, string(b))
}

func TestLanguageShareDecodesStringOrNumber(t *testing.T) {
	var got []LanguageShare
	require.NoError(t, json.Unmarshal([]byte(`[{"name":"Go","percentage":"33.33"},{"name":"CSS","percentage":12.5}]`), &got))
	assert.Equal(t, []LanguageShare{{Name: "Go", Percentage: 33.33}, {Name: "CSS", Percentage: 12.5}}, got)

	err := json.Unmarshal([]byte(`{"name":"Go","percentage":"lots"}`), &LanguageShare{})
	assert.Error(t, err)
}
