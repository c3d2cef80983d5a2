package graph

import (
	"fmt"
	"unicode/utf16"
)

// Color derives a stable display color from a path. The hash is the classic
// `hash = c + ((hash << 5) - hash)` over UTF-16 code units, where the shift
// truncates to 32 bits but the subtraction does not, so browser clients
// computing the same function agree with the server.
func Color(p string) string {
	return fmt.Sprintf("hsl(%d, 70%%, 50%%)", Hue(p))
}

// Hue is the hash folded into (-360, 360). Negative hues are kept as is;
// CSS wraps them.
func Hue(p string) int64 {
	var hash int64
	for _, c := range utf16.Encode([]rune(p)) {
		hash = int64(c) + int64(int32(hash)<<5) - hash
	}
	return hash % 360
}
