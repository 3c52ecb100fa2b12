package gen

import (
	"github.com/dave/jennifer/jen"
)

// genValueEnum emits the tagged-value enumeration: the interface and
// one payload struct per included field. Variant structs of generic
// records echo the record's type parameters, and the marker method
// takes the type-parameter values, so a variant instantiation only
// satisfies the matching enumeration instantiation. Derive entries are
// forwarded verbatim as comment directives, the value attribute as the
// struct tag of every payload member.
func genValueEnum(h EmitterHelper, f *jen.File, r *Record) {
	enum := r.ValueEnumName()
	marker := r.MarkerMethod()

	f.Commentf("%s is the current value of one %s field, tagged by the field it belongs to.", enum, r.Name)
	for _, d := range r.DeriveValue() {
		f.Comment("//" + d)
	}
	decl := f.Type().Id(enum)
	if r.Generic() {
		decl.Types(typeParams(r)...)
	}
	decl.InterfaceFunc(func(methods *jen.Group) {
		methods.Comment("Field returns the selector of the field the value belongs to.")
		methods.Id("Field").Params().Id(r.FieldEnumName())
		methods.Line()
		methods.Id(marker).Params(typeArgs(r)...)
	})

	for _, fld := range r.Fields {
		f.Commentf("%s carries a %s.%s value.", fld.VariantName(), r.Name, fld.Name)
		decl := f.Type().Id(fld.VariantName())
		if r.Generic() {
			decl.Types(typeParams(r)...)
		}
		payload := jen.Id("Value").Add(h.GoType(r, fld))
		if attr := r.ValueAttr(); attr != "" {
			tags, _ := tagPairs(attr)
			payload.Tag(tags)
		}
		decl.Struct(payload)

		f.Commentf("Field returns %s.", fld.EnumName())
		f.Func().Params(variantRef(fld)).Id("Field").Params().Id(r.FieldEnumName()).Block(
			jen.Return(jen.Id(fld.EnumName())),
		)

		f.Func().Params(variantRef(fld)).Id(marker).Params(typeArgs(r)...).Block()
	}
}

// genAccessors emits the three configured accessor methods and the
// derived AsValues enumeration over them.
func genAccessors(h EmitterHelper, f *jen.File, r *Record) {
	recv := r.Receiver()
	fname := safeName(r, "f", "field", "fld")
	vname := safeName(r, "v", "value", "val")

	f.Commentf("%s returns the current value of the selected field, wrapped in the matching %s variant.", r.ValueMethod(), r.ValueEnumName())
	f.Func().Params(jen.Id(recv).Add(recordRef(r))).Id(r.ValueMethod()).Params(jen.Id(fname).Id(r.FieldEnumName())).Add(valueRef(r)).BlockFunc(func(body *jen.Group) {
		body.Switch(jen.Id(fname)).BlockFunc(func(sw *jen.Group) {
			for _, fld := range r.Fields {
				sw.Case(jen.Id(fld.EnumName())).Block(
					jen.Return(variantRef(fld).Values(jen.Dict{jen.Id("Value"): jen.Id(recv).Dot(fld.Name)})),
				)
			}
			sw.Default().Block(
				jen.Panic(jen.Qual("fmt", "Sprintf").Call(jen.Lit("companion: unknown "+r.FieldEnumName()+" %d"), jen.Int().Call(jen.Id(fname)))),
			)
		})
	})

	f.Commentf("%s writes the wrapped value into the field it names, replacing the current value.", r.UpdateMethod())
	f.Func().Params(jen.Id(recv).Op("*").Add(recordRef(r))).Id(r.UpdateMethod()).Params(jen.Id(vname).Add(valueRef(r))).BlockFunc(func(body *jen.Group) {
		body.Switch(jen.Id(vname).Op(":=").Id(vname).Assert(jen.Type())).BlockFunc(func(sw *jen.Group) {
			for _, fld := range r.Fields {
				sw.Case(variantRef(fld)).Block(
					jen.Id(recv).Dot(fld.Name).Op("=").Id(vname).Dot("Value"),
				)
			}
			sw.Default().Block(
				jen.Panic(jen.Qual("fmt", "Sprintf").Call(jen.Lit("companion: unknown "+r.ValueEnumName()+" %T"), jen.Id(vname))),
			)
		})
	})

	f.Commentf("%s returns every %s field selector, in declaration order. The returned slice is a view over a shared table and must not be modified.", r.FieldsMethod(), r.Name)
	f.Func().Params(jen.Id(recv).Add(recordRef(r))).Id(r.FieldsMethod()).Params().Index().Id(r.FieldEnumName()).Block(
		jen.Return(jen.Id(r.FieldsVarName()).Index(jen.Empty(), jen.Empty())),
	)

	vals := safeName(r, "values", "vals")
	f.Comment("AsValues returns the current value of every field, in declaration order.")
	f.Func().Params(jen.Id(recv).Add(recordRef(r))).Id("AsValues").Params().Index().Add(valueRef(r)).BlockFunc(func(body *jen.Group) {
		body.Id(vals).Op(":=").Make(jen.Index().Add(valueRef(r)), jen.Lit(0), jen.Len(jen.Id(r.FieldsVarName())))
		body.For(jen.List(jen.Id("_"), jen.Id(fname)).Op(":=").Range().Id(r.FieldsVarName())).Block(
			jen.Id(vals).Op("=").Append(jen.Id(vals), jen.Id(recv).Dot(r.ValueMethod()).Call(jen.Id(fname))),
		)
		body.Return(jen.Id(vals))
	})
}
