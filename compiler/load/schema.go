package load

import (
	"fmt"
	"strconv"
	"strings"
	"unicode"

	"github.com/goccy/go-json"
)

// Schema represents one record type extracted from a parsed user package.
// It is the generator's sole input: a name, the record's type parameters,
// and an ordered field list. Field order is declaration order and is
// preserved end-to-end through generation.
type Schema struct {
	Name       string      `json:"name,omitempty"`
	Pkg        string      `json:"pkg,omitempty"`
	PkgPath    string      `json:"pkg_path,omitempty"`
	Pos        string      `json:"-" msgpack:"-"`
	Exported   bool        `json:"exported,omitempty"`
	TypeParams []TypeParam `json:"type_params,omitempty"`
	Fields     []*Field    `json:"fields,omitempty"`
	Options    *Options    `json:"options,omitempty"`
	// Imports maps the package qualifiers usable in field types to their
	// import paths, taken from the file declaring the record.
	Imports map[string]string `json:"imports,omitempty"`
}

// TypeParam is one type parameter of a generic record. The constraint is
// carried as written so generated declarations can repeat it.
type TypeParam struct {
	Name       string `json:"name,omitempty"`
	Constraint string `json:"constraint,omitempty"`
}

// Field represents one declared record field. Type holds the field's Go
// type exactly as written in the source; textual equality of this string is
// what groups fields for conversion generation.
type Field struct {
	Name   string `json:"name,omitempty"`
	Type   string `json:"type,omitempty"`
	Rename string `json:"rename,omitempty"`
	Skip   bool   `json:"skip,omitempty"`
	Pos    string `json:"-" msgpack:"-"`
}

// Options holds the per-record generation options parsed from the
// companion:generate directive. Empty method names mean the defaults
// (Value, Update, Fields). Derive entries and attr strings are opaque: they
// are forwarded verbatim to the generated enumerations and never
// interpreted.
type Options struct {
	ValueMethod  string   `json:"value_method,omitempty"`
	UpdateMethod string   `json:"update_method,omitempty"`
	FieldsMethod string   `json:"fields_method,omitempty"`
	DeriveField  []string `json:"derive_field,omitempty"`
	DeriveValue  []string `json:"derive_value,omitempty"`
	FieldAttr    string   `json:"field_attr,omitempty"`
	ValueAttr    string   `json:"value_attr,omitempty"`
}

// directive is the comment prefix marking a struct for generation.
const directive = "companion:generate"

// MarshalSchema encodes a schema into JSON that can be decoded back with
// UnmarshalSchema. Used by the -print flag and by tests to replay schemas
// without reloading source.
func MarshalSchema(s *Schema) ([]byte, error) {
	return json.Marshal(s)
}

// UnmarshalSchema decodes the given buffer into a loaded schema.
func UnmarshalSchema(buf []byte) (*Schema, error) {
	s := &Schema{}
	if err := json.Unmarshal(buf, s); err != nil {
		return nil, err
	}
	return s, nil
}

// ParseDirective reports whether one comment line carries the
// companion:generate directive, and parses its arguments into Options.
// Directive comments follow the Go toolchain convention: no space between
// the comment marker and the directive name.
func ParseDirective(comment string) (*Options, bool, error) {
	text, ok := strings.CutPrefix(comment, "//"+directive)
	if !ok {
		return nil, false, nil
	}
	if text != "" && !unicode.IsSpace(rune(text[0])) {
		// A longer word sharing the prefix, e.g. companion:generateX.
		return nil, false, nil
	}
	opts := &Options{}
	args, err := splitArgs(text)
	if err != nil {
		return nil, true, fmt.Errorf("%s: %w", directive, err)
	}
	for _, arg := range args {
		key, value, found := strings.Cut(arg, "=")
		if !found {
			return nil, true, fmt.Errorf("%s: argument %q is not key=value", directive, arg)
		}
		if value, err = unquote(value); err != nil {
			return nil, true, fmt.Errorf("%s: argument %q: %w", directive, key, err)
		}
		switch key {
		case "value":
			opts.ValueMethod = value
		case "update":
			opts.UpdateMethod = value
		case "fields":
			opts.FieldsMethod = value
		case "derive_field":
			opts.DeriveField = splitList(value)
		case "derive_value":
			opts.DeriveValue = splitList(value)
		case "serde_field":
			opts.FieldAttr = value
		case "serde_value":
			opts.ValueAttr = value
		default:
			return nil, true, fmt.Errorf("%s: unknown argument %q", directive, key)
		}
	}
	return opts, true, nil
}

// ParseTag parses the companion struct tag of one field. Recognized forms:
// "-" to skip the field, and "rename=<label>" to override its derived
// label. Anything else is an error rather than being silently ignored.
func ParseTag(f *Field, tag string) error {
	if tag == "" {
		return nil
	}
	if tag == "-" {
		f.Skip = true
		return nil
	}
	for _, part := range strings.Split(tag, ",") {
		key, value, found := strings.Cut(part, "=")
		switch {
		case part == "-":
			f.Skip = true
		case found && key == "rename":
			if value == "" {
				return fmt.Errorf("field %q: empty rename", f.Name)
			}
			f.Rename = value
		default:
			return fmt.Errorf("field %q: unknown companion tag option %q", f.Name, part)
		}
	}
	return nil
}

// splitArgs splits a directive argument string on spaces, keeping quoted
// values (double-quoted or backquoted) intact so attribute strings may
// contain spaces.
func splitArgs(s string) ([]string, error) {
	var (
		args  []string
		cur   strings.Builder
		quote rune
	)
	for i := 0; i < len(s); i++ {
		c := rune(s[i])
		switch {
		case quote != 0:
			cur.WriteRune(c)
			if c == quote {
				quote = 0
			} else if c == '\\' && quote == '"' && i+1 < len(s) {
				i++
				cur.WriteByte(s[i])
			}
		case c == '"' || c == '`':
			quote = c
			cur.WriteRune(c)
		case unicode.IsSpace(c):
			if cur.Len() > 0 {
				args = append(args, cur.String())
				cur.Reset()
			}
		default:
			cur.WriteRune(c)
		}
	}
	if quote != 0 {
		return nil, fmt.Errorf("unterminated %q quote", quote)
	}
	if cur.Len() > 0 {
		args = append(args, cur.String())
	}
	return args, nil
}

// unquote removes surrounding quotes from a directive value, if any.
func unquote(s string) (string, error) {
	if len(s) >= 2 && (s[0] == '"' || s[0] == '`') {
		return strconv.Unquote(s)
	}
	return s, nil
}

// splitList splits a comma-separated derive list, trimming surrounding
// space from each entry and dropping empties.
func splitList(s string) []string {
	var list []string
	for _, item := range strings.Split(s, ",") {
		if item = strings.TrimSpace(item); item != "" {
			list = append(list, item)
		}
	}
	return list
}
