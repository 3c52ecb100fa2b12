package gen

import (
	"fmt"
	"strconv"
	"strings"
)

// =============================================================================
// Helper functions
// =============================================================================

// titleCase capitalizes the first letter of a string.
// This is a replacement for the deprecated strings.Title function
// for simple single-word capitalization.
func titleCase(s string) string {
	if s == "" {
		return s
	}
	return strings.ToUpper(s[:1]) + s[1:]
}

// tagPairs parses a struct-tag attribute like `json:"payload" db:"p"`
// into its key/value pairs. It follows the conventional struct tag
// grammar, but rejects malformed input instead of silently dropping it,
// since the attribute is forwarded verbatim into generated source.
func tagPairs(tag string) (map[string]string, error) {
	pairs := make(map[string]string)
	rest := tag
	for rest != "" {
		i := 0
		for i < len(rest) && rest[i] == ' ' {
			i++
		}
		rest = rest[i:]
		if rest == "" {
			break
		}
		i = 0
		for i < len(rest) && rest[i] > ' ' && rest[i] != ':' && rest[i] != '"' && rest[i] != 0x7f {
			i++
		}
		if i == 0 || i+1 >= len(rest) || rest[i] != ':' || rest[i+1] != '"' {
			return nil, fmt.Errorf("malformed tag %q", tag)
		}
		key := rest[:i]
		rest = rest[i+1:]
		i = 1
		for i < len(rest) && rest[i] != '"' {
			if rest[i] == '\\' {
				i++
			}
			i++
		}
		if i >= len(rest) {
			return nil, fmt.Errorf("unterminated value for tag key %q", key)
		}
		value, err := strconv.Unquote(rest[:i+1])
		if err != nil {
			return nil, fmt.Errorf("invalid value for tag key %q: %w", key, err)
		}
		rest = rest[i+1:]
		if _, ok := pairs[key]; ok {
			return nil, fmt.Errorf("duplicate tag key %q", key)
		}
		pairs[key] = value
	}
	return pairs, nil
}
