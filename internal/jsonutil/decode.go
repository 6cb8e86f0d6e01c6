// Package jsonutil extracts structured data from process output on a
// best-effort basis.
package jsonutil

import (
	"strings"

	"github.com/tidwall/gjson"
)

// TryDecode parses text as a JSON document after trimming surrounding
// whitespace. It returns the decoded value and true on success, or (nil,
// false) when the text is empty or not valid JSON. It never returns an
// error: free-text output is an expected input here, not a failure.
//
// Any JSON document kind decodes, not just objects and arrays; objects
// become map[string]any, arrays []any, numbers float64.
func TryDecode(text string) (any, bool) {
	trimmed := strings.TrimSpace(text)
	if trimmed == "" {
		return nil, false
	}
	if !gjson.Valid(trimmed) {
		return nil, false
	}
	return gjson.Parse(trimmed).Value(), true
}
