package schema

import (
	"go/token"

	"github.com/syssam/companion/compiler/load"
)

// RecordBuilder assembles the schema of one record type. Builders do not
// validate; validation happens when the schema enters a generation graph,
// so a build script reports errors with the same messages the loader
// produces.
type RecordBuilder struct {
	desc *load.Schema
}

// Record begins the schema of the named record type.
func Record(name string) *RecordBuilder {
	return &RecordBuilder{desc: &load.Schema{
		Name:     name,
		Exported: token.IsExported(name),
		Options:  &load.Options{},
	}}
}

// Package sets the package name and import path the record belongs to.
func (b *RecordBuilder) Package(name, path string) *RecordBuilder {
	b.desc.Pkg, b.desc.PkgPath = name, path
	return b
}

// TypeParam appends one type parameter, making the record generic. The
// constraint is carried as written.
func (b *RecordBuilder) TypeParam(name, constraint string) *RecordBuilder {
	b.desc.TypeParams = append(b.desc.TypeParams, load.TypeParam{Name: name, Constraint: constraint})
	return b
}

// Fields appends the given fields, in declaration order.
func (b *RecordBuilder) Fields(fields ...*FieldBuilder) *RecordBuilder {
	for _, f := range fields {
		b.desc.Fields = append(b.desc.Fields, f.Descriptor())
	}
	return b
}

// Import registers a package qualifier usable in field types, as an
// import declaration does in source.
func (b *RecordBuilder) Import(ident, path string) *RecordBuilder {
	if b.desc.Imports == nil {
		b.desc.Imports = make(map[string]string)
	}
	b.desc.Imports[ident] = path
	return b
}

// ValueMethod overrides the name of the generated value accessor.
func (b *RecordBuilder) ValueMethod(name string) *RecordBuilder {
	b.desc.Options.ValueMethod = name
	return b
}

// UpdateMethod overrides the name of the generated update accessor.
func (b *RecordBuilder) UpdateMethod(name string) *RecordBuilder {
	b.desc.Options.UpdateMethod = name
	return b
}

// FieldsMethod overrides the name of the generated fields accessor.
func (b *RecordBuilder) FieldsMethod(name string) *RecordBuilder {
	b.desc.Options.FieldsMethod = name
	return b
}

// DeriveField appends derive entries forwarded verbatim to the generated
// field enumeration.
func (b *RecordBuilder) DeriveField(entries ...string) *RecordBuilder {
	b.desc.Options.DeriveField = append(b.desc.Options.DeriveField, entries...)
	return b
}

// DeriveValue appends derive entries forwarded verbatim to the generated
// value enumeration.
func (b *RecordBuilder) DeriveValue(entries ...string) *RecordBuilder {
	b.desc.Options.DeriveValue = append(b.desc.Options.DeriveValue, entries...)
	return b
}

// FieldAttr sets the attribute string forwarded verbatim to the field
// enumeration.
func (b *RecordBuilder) FieldAttr(attr string) *RecordBuilder {
	b.desc.Options.FieldAttr = attr
	return b
}

// ValueAttr sets the attribute string attached to every generated value
// variant, verbatim.
func (b *RecordBuilder) ValueAttr(attr string) *RecordBuilder {
	b.desc.Options.ValueAttr = attr
	return b
}

// Descriptor returns the assembled schema.
func (b *RecordBuilder) Descriptor() *load.Schema {
	return b.desc
}

// FieldBuilder assembles one record field.
type FieldBuilder struct {
	desc *load.Field
}

// Field begins a field with the given name and Go type, both as they
// would appear in source. Textual equality of the type string is what
// groups fields for conversion generation.
func Field(name, typ string) *FieldBuilder {
	return &FieldBuilder{desc: &load.Field{Name: name, Type: typ}}
}

// Rename overrides the derived label of the field, verbatim.
func (b *FieldBuilder) Rename(label string) *FieldBuilder {
	b.desc.Rename = label
	return b
}

// Skip excludes the field from every generated enumeration and accessor.
func (b *FieldBuilder) Skip() *FieldBuilder {
	b.desc.Skip = true
	return b
}

// Descriptor returns the assembled field.
func (b *FieldBuilder) Descriptor() *load.Field {
	return b.desc
}
