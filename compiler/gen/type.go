package gen

import (
	"fmt"
	"go/ast"
	"go/parser"
	"go/token"
	"strings"

	"github.com/syssam/companion/compiler/load"
)

//go:generate go run ./internal

// The following types and their exported methods are used by the
// generator to build the companion artifacts.
type (
	// Record represents one record type companions are generated for:
	// its name, its type parameters, and the ordered list of included
	// fields.
	Record struct {
		*Config
		schema *load.Schema
		// Name holds the record type name.
		Name string
		// TypeParams holds the type parameters of a generic record, with
		// their constraints as written.
		TypeParams []load.TypeParam
		// Fields holds the included fields, in declaration order.
		// Fields the schema excludes do not appear here.
		Fields []*Field
		fields map[string]*Field
		groups []*Group
	}

	// Field holds the information of one included record field.
	Field struct {
		def *load.Field
		rec *Record
		// Name is the declared field name.
		Name string
		// Type holds the field's Go type exactly as written in the source.
		Type string
		// Rename holds the verbatim label override, if any.
		Rename string
		expr   ast.Expr
		suffix string
		alt    string
		param  bool
		opaque bool
	}

	// Group is one conversion group. All included fields whose types are
	// written identically share one group and one pair of conversion
	// functions.
	Group struct {
		rec *Record
		// Type is the shared Go type, as written in the record.
		Type string
		// Suffix names the conversion pair derived from Type.
		Suffix string
		// Fields holds the group members in first-appearance order.
		Fields []*Field
		alt    string
	}
)

// NewRecord creates a new record and its fields from the given schema.
func NewRecord(c *Config, schema *load.Schema) (*Record, error) {
	if c == nil {
		c = DefaultConfig()
	}
	r := &Record{
		Config:     c,
		schema:     schema,
		Name:       schema.Name,
		TypeParams: schema.TypeParams,
		Fields:     make([]*Field, 0, len(schema.Fields)),
		fields:     make(map[string]*Field, len(schema.Fields)),
	}
	if err := ValidRecordName(r.Name); err != nil {
		return nil, NewSchemaError(schema.Name, "", "invalid record name", err)
	}
	if err := r.checkOptions(schema.Options); err != nil {
		return nil, err
	}
	params := make(map[string]bool, len(schema.TypeParams))
	for _, p := range schema.TypeParams {
		if !token.IsIdentifier(p.Name) {
			return nil, NewSchemaError(r.Name, "", fmt.Sprintf("type parameter %q is not a valid Go identifier", p.Name), nil)
		}
		params[p.Name] = true
	}
	for _, f := range schema.Fields {
		if f.Skip {
			continue
		}
		rf := &Field{def: f, rec: r, Name: f.Name, Type: f.Type, Rename: f.Rename}
		if err := r.checkField(rf, f); err != nil {
			return nil, err
		}
		info := typeInfo(rf.expr, params)
		rf.suffix, rf.alt, rf.param, rf.opaque = info.suffix, info.alt, info.param, info.opaque
		r.Fields = append(r.Fields, rf)
		r.fields[rf.Label()] = rf
	}
	if err := r.buildGroups(); err != nil {
		return nil, err
	}
	return r, nil
}

// checkField checks one schema field before it joins the record.
func (r *Record) checkField(rf *Field, f *load.Field) error {
	switch label := rf.Label(); {
	case f.Name == "":
		return NewSchemaError(r.Name, "", "field name cannot be empty", nil)
	case !token.IsIdentifier(f.Name):
		return NewSchemaError(r.Name, f.Name, fmt.Sprintf("field name %q is not a valid Go identifier", f.Name), nil)
	case f.Type == "":
		return NewSchemaError(r.Name, f.Name, "field type cannot be empty", nil)
	case f.Rename != "" && !token.IsIdentifier(f.Rename):
		return NewSchemaError(r.Name, f.Name, fmt.Sprintf("rename %q is not a valid Go identifier", f.Rename), nil)
	case r.fields[label] != nil:
		return NewSchemaError(r.Name, f.Name, fmt.Sprintf("label %q already derived from field %q", label, r.fields[label].Name), nil)
	}
	expr, err := parser.ParseExpr(f.Type)
	if err != nil {
		return NewSchemaError(r.Name, f.Name, fmt.Sprintf("cannot parse type %q", f.Type), err)
	}
	rf.expr = expr
	return nil
}

// checkOptions checks the per-record generation options. Derive entries
// and attribute strings are forwarded verbatim into the generated source,
// so they must not be able to break out of their carrier.
func (r *Record) checkOptions(o *load.Options) error {
	if o == nil {
		return nil
	}
	for _, m := range []struct{ opt, name string }{
		{"value", o.ValueMethod},
		{"update", o.UpdateMethod},
		{"fields", o.FieldsMethod},
	} {
		if m.name != "" && !token.IsIdentifier(m.name) {
			return NewSchemaError(r.Name, "", fmt.Sprintf("%s method %q is not a valid Go identifier", m.opt, m.name), nil)
		}
	}
	for _, s := range append(append([]string{o.FieldAttr, o.ValueAttr}, o.DeriveField...), o.DeriveValue...) {
		if strings.ContainsAny(s, "\n\r") {
			return NewSchemaError(r.Name, "", fmt.Sprintf("option value %q cannot span lines", s), nil)
		}
	}
	if o.ValueAttr != "" {
		if _, err := tagPairs(o.ValueAttr); err != nil {
			return NewSchemaError(r.Name, "", fmt.Sprintf("invalid serde_value attribute %q", o.ValueAttr), err)
		}
	}
	return nil
}

// buildGroups buckets the convertible fields by their written type and
// resolves conversion-name conflicts between groups.
func (r *Record) buildGroups() error {
	byType := make(map[string]*Group)
	for _, f := range r.Fields {
		if f.param || f.opaque {
			continue
		}
		g, ok := byType[f.Type]
		if !ok {
			g = &Group{rec: r, Type: f.Type, Suffix: f.suffix, alt: f.alt}
			byType[f.Type] = g
			r.groups = append(r.groups, g)
		}
		g.Fields = append(g.Fields, f)
	}
	taken := make(map[string]*Group, len(r.groups))
	for _, g := range r.groups {
		if other := taken[g.Suffix]; other != nil {
			if g.alt == g.Suffix || taken[g.alt] != nil {
				return NewSchemaError(r.Name, g.Fields[0].Name,
					fmt.Sprintf("conversion name %q for type %s conflicts with type %s", g.Suffix, g.Type, other.Type), nil)
			}
			g.Suffix = g.alt
		}
		taken[g.Suffix] = g
	}
	return nil
}

// ValidRecordName determines if a name can serve as a record type name.
func ValidRecordName(name string) error {
	if name == "" {
		return fmt.Errorf("record name cannot be empty")
	}
	if !token.IsIdentifier(name) {
		return fmt.Errorf("record name %q is not a valid Go identifier", name)
	}
	return nil
}

// =============================================================================
// Record methods
// =============================================================================

// Label returns the label name of the record (snake_case). It is also the
// base name of the generated artifact file.
func (r Record) Label() string {
	return snake(r.Name)
}

// Receiver returns the receiver name used by the generated accessors.
func (r Record) Receiver() string {
	return receiver(r.Name)
}

// Pos returns the filename:line position of the record in the source.
func (r Record) Pos() string {
	if r.schema == nil {
		return ""
	}
	return r.schema.Pos
}

// Package returns the name of the package the artifacts are generated
// into, which is the package declaring the record.
func (r Record) Package() string {
	if r.schema == nil {
		return ""
	}
	return r.schema.Pkg
}

// Generic reports whether the record declares type parameters.
func (r Record) Generic() bool {
	return len(r.TypeParams) > 0
}

// Exported reports whether the record type is exported. Unexported
// records get unexported artifacts.
func (r Record) Exported() bool {
	return ast.IsExported(r.Name)
}

// FieldEnumName returns the name of the generated field-selector type.
func (r Record) FieldEnumName() string {
	return r.Name + "Field"
}

// ValueEnumName returns the name of the generated tagged-value interface.
func (r Record) ValueEnumName() string {
	return r.Name + "Value"
}

// FieldsVarName returns the name of the generated package-level array
// holding all field selectors in declaration order.
func (r Record) FieldsVarName() string {
	return r.Name + "Fields"
}

// FieldNamesVar returns the name of the unexported array holding the
// label strings of the field selectors.
func (r Record) FieldNamesVar() string {
	return camel(snake(r.Name)) + "FieldNames"
}

// ParseFuncName returns the name of the generated name-resolution
// function.
func (r Record) ParseFuncName() string {
	if !r.Exported() {
		return "parse" + titleCase(r.Name) + "Field"
	}
	return "Parse" + r.Name + "Field"
}

// MarkerMethod returns the name of the unexported method pinning the
// variant structs to the value enumeration. For generic records the
// method takes the type-parameter values, so a variant instantiation
// only satisfies the matching enumeration instantiation.
func (r Record) MarkerMethod() string {
	return "is" + titleCase(r.Name) + "Value"
}

// ValueMethod returns the name of the generated value accessor.
func (r Record) ValueMethod() string {
	if o := r.options(); o != nil && o.ValueMethod != "" {
		return o.ValueMethod
	}
	return "Value"
}

// UpdateMethod returns the name of the generated update accessor.
func (r Record) UpdateMethod() string {
	if o := r.options(); o != nil && o.UpdateMethod != "" {
		return o.UpdateMethod
	}
	return "Update"
}

// FieldsMethod returns the name of the generated fields accessor.
func (r Record) FieldsMethod() string {
	if o := r.options(); o != nil && o.FieldsMethod != "" {
		return o.FieldsMethod
	}
	return "Fields"
}

// DefaultAccessors reports whether all three accessor names are the
// defaults.
func (r Record) DefaultAccessors() bool {
	return r.ValueMethod() == "Value" && r.UpdateMethod() == "Update" && r.FieldsMethod() == "Fields"
}

// BindsInterface reports whether the generated artifacts include the
// compile-time companion.Companion assertion. The assertion is only
// emitted when all accessor names are the defaults and the record is not
// generic; a generic record satisfies the interface per instantiation.
func (r Record) BindsInterface() bool {
	return r.DefaultAccessors() && !r.Generic()
}

// DeriveField returns the verbatim derive entries forwarded onto the
// field-selector declaration.
func (r Record) DeriveField() []string {
	if o := r.options(); o != nil {
		return o.DeriveField
	}
	return nil
}

// DeriveValue returns the verbatim derive entries forwarded onto the
// tagged-value declaration.
func (r Record) DeriveValue() []string {
	if o := r.options(); o != nil {
		return o.DeriveValue
	}
	return nil
}

// FieldAttr returns the verbatim attribute forwarded above the
// field-selector declaration.
func (r Record) FieldAttr() string {
	if o := r.options(); o != nil {
		return o.FieldAttr
	}
	return ""
}

// ValueAttr returns the verbatim attribute forwarded as a struct tag on
// the tagged-value payload members.
func (r Record) ValueAttr() string {
	if o := r.options(); o != nil {
		return o.ValueAttr
	}
	return ""
}

// FileName returns the name of the generated artifact file.
func (r Record) FileName() string {
	return r.Label() + r.fileSuffix() + ".go"
}

// FeatureFileName returns the name of the generated file of one feature.
func (r Record) FeatureFileName(name string) string {
	return r.Label() + r.fileSuffix() + "_" + name + ".go"
}

// Groups returns the conversion groups of the record, in first-appearance
// order of their types.
func (r Record) Groups() []*Group {
	return r.groups
}

// FieldBy returns the first field the given function returns true on.
func (r Record) FieldBy(fn func(*Field) bool) (*Field, bool) {
	for _, f := range r.Fields {
		if fn(f) {
			return f, true
		}
	}
	return nil, false
}

// ImportPath resolves an import qualifier used by a field type to the
// import path of the declaring source file.
func (r Record) ImportPath(qualifier string) (string, bool) {
	if r.schema == nil {
		return "", false
	}
	p, ok := r.schema.Imports[qualifier]
	return p, ok
}

func (r Record) options() *load.Options {
	if r.schema == nil {
		return nil
	}
	return r.schema.Options
}

func (r Record) fileSuffix() string {
	if r.Config != nil && r.Config.Suffix != "" {
		return r.Config.Suffix
	}
	return defaultSuffix
}

// =============================================================================
// Field methods
// =============================================================================

// Label returns the display label of the field: the rename override when
// present, the PascalCase form of the declared name otherwise.
func (f Field) Label() string {
	if f.Rename != "" {
		return f.Rename
	}
	return pascal(f.Name)
}

// EnumName returns the name of the field's selector constant.
func (f Field) EnumName() string {
	return f.rec.FieldEnumName() + f.Label()
}

// VariantName returns the name of the field's tagged-value struct.
func (f Field) VariantName() string {
	return f.rec.ValueEnumName() + f.Label()
}

// Convertible reports whether the field joins a conversion group. Fields
// whose types reference a record type parameter, or whose types have no
// derivable conversion name, do not.
func (f Field) Convertible() bool {
	return !f.param && !f.opaque
}

// RefsTypeParam reports whether the field's type references one of the
// record's type parameters.
func (f Field) RefsTypeParam() bool {
	return f.param
}

// =============================================================================
// Group methods
// =============================================================================

// ToFuncName returns the name of the value-to-raw conversion function.
func (g Group) ToFuncName() string {
	return g.rec.ValueEnumName() + "To" + g.Suffix
}

// FromFuncName returns the name of the raw-to-value conversion function.
func (g Group) FromFuncName() string {
	return g.rec.ValueEnumName() + "From" + g.Suffix
}

// =============================================================================
// Type suffix derivation
// =============================================================================

// fieldType describes how one field type takes part in conversion
// generation. alt carries a package-qualified suffix used when two types
// derive the same base suffix.
type fieldType struct {
	suffix string
	alt    string
	param  bool
	opaque bool
}

// typeInfo derives the conversion suffix of a field type. params holds
// the record's type parameter names; any reference to one of them
// excludes the field from conversion groups.
func typeInfo(expr ast.Expr, params map[string]bool) fieldType {
	switch x := expr.(type) {
	case *ast.Ident:
		if params[x.Name] {
			return fieldType{param: true}
		}
		if s, ok := builtinSuffix[x.Name]; ok {
			return fieldType{suffix: s, alt: s}
		}
		s := pascal(x.Name)
		return fieldType{suffix: s, alt: s}
	case *ast.SelectorExpr:
		pkg, ok := x.X.(*ast.Ident)
		if !ok {
			return fieldType{opaque: true}
		}
		s := pascal(x.Sel.Name)
		return fieldType{suffix: s, alt: pascal(pkg.Name) + s}
	case *ast.StarExpr:
		return suffixed(typeInfo(x.X, params), "Ptr")
	case *ast.ArrayType:
		if x.Len == nil {
			if id, ok := x.Elt.(*ast.Ident); ok && id.Name == "byte" {
				return fieldType{suffix: "Bytes", alt: "Bytes"}
			}
			return suffixed(typeInfo(x.Elt, params), "Slice")
		}
		return suffixed(typeInfo(x.Elt, params), "Array")
	case *ast.MapType:
		k, v := typeInfo(x.Key, params), typeInfo(x.Value, params)
		switch {
		case k.param || v.param:
			return fieldType{param: true}
		case k.opaque || v.opaque:
			return fieldType{opaque: true}
		}
		return fieldType{
			suffix: k.suffix + "To" + v.suffix + "Map",
			alt:    k.alt + "To" + v.alt + "Map",
		}
	case *ast.ChanType:
		return suffixed(typeInfo(x.Value, params), "Chan")
	case *ast.ParenExpr:
		return typeInfo(x.X, params)
	case *ast.IndexExpr:
		return instantiated(typeInfo(x.X, params), typeInfo(x.Index, params))
	case *ast.IndexListExpr:
		info := typeInfo(x.X, params)
		for _, idx := range x.Indices {
			info = instantiated(info, typeInfo(idx, params))
		}
		return info
	default:
		// Anonymous composite types (struct, interface and func
		// literals) have no derivable conversion name.
		return fieldType{opaque: true}
	}
}

// suffixed appends a word to a composed type suffix, e.g. "Uint32" and
// "Slice" give "Uint32Slice".
func suffixed(inner fieldType, word string) fieldType {
	if inner.param || inner.opaque {
		return inner
	}
	return fieldType{suffix: inner.suffix + word, alt: inner.alt + word}
}

// instantiated joins the suffix of a generic type with one instantiation
// argument, e.g. "List[int]" gives "ListInt".
func instantiated(base, arg fieldType) fieldType {
	switch {
	case base.param || arg.param:
		return fieldType{param: true}
	case base.opaque || arg.opaque:
		return fieldType{opaque: true}
	}
	return fieldType{suffix: base.suffix + arg.suffix, alt: base.alt + arg.alt}
}
