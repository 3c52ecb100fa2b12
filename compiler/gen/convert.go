package gen

import (
	"github.com/dave/jennifer/jen"
)

// genConversions emits the bidirectional conversions between tagged
// values and raw values, one function pair per conversion group.
func genConversions(h EmitterHelper, f *jen.File, r *Record) {
	for _, grp := range r.Groups() {
		genToRaw(h, f, r, grp)
		genFromRaw(h, f, r, grp)
	}
}

// genToRaw emits the value-to-raw conversion of one group: the tagged
// value of any group member unwraps to its payload, everything else
// fails carrying the value unchanged.
func genToRaw(h EmitterHelper, f *jen.File, r *Record, grp *Group) {
	vname := safeName(r, "v", "value", "val")
	zero := safeName(r, "zero", "z")
	raw := h.GoType(r, grp.Fields[0])

	f.Commentf("%s unwraps the raw %s payload of a tagged value. A value of a field of any other type fails with a MismatchedValueError carrying the value unchanged.", grp.ToFuncName(), grp.Type)
	fn := f.Func().Id(grp.ToFuncName())
	if r.Generic() {
		fn.Types(typeParams(r)...)
	}
	fn.Params(jen.Id(vname).Add(valueRef(r))).Params(raw, jen.Error()).BlockFunc(func(body *jen.Group) {
		body.Switch(jen.Id(vname).Op(":=").Id(vname).Assert(jen.Type())).BlockFunc(func(sw *jen.Group) {
			for _, fld := range grp.Fields {
				sw.Case(variantRef(fld)).Block(
					jen.Return(jen.Id(vname).Dot("Value"), jen.Nil()),
				)
			}
		})
		body.Var().Id(zero).Add(raw)
		body.Return(jen.Id(zero), jen.Qual(h.RuntimePkg(), "NewMismatchedValueError").Call(jen.Id(vname), jen.Lit(grp.Type)))
	})
}

// genFromRaw emits the raw-to-value conversion of one group: a selector
// of any group member wraps the raw value into its variant, everything
// else fails carrying the selector.
func genFromRaw(h EmitterHelper, f *jen.File, r *Record, grp *Group) {
	fname := safeName(r, "field", "fld")
	vname := safeName(r, "value", "val")
	raw := h.GoType(r, grp.Fields[0])

	f.Commentf("%s wraps a raw %s into the tagged value of the selected field. A selector of a field of any other type fails with a MismatchedFieldError carrying the selector.", grp.FromFuncName(), grp.Type)
	fn := f.Func().Id(grp.FromFuncName())
	if r.Generic() {
		fn.Types(typeParams(r)...)
	}
	fn.Params(jen.Id(fname).Id(r.FieldEnumName()), jen.Id(vname).Add(raw)).Params(valueRef(r), jen.Error()).BlockFunc(func(body *jen.Group) {
		body.Switch(jen.Id(fname)).BlockFunc(func(sw *jen.Group) {
			for _, fld := range grp.Fields {
				sw.Case(jen.Id(fld.EnumName())).Block(
					jen.Return(variantRef(fld).Values(jen.Dict{jen.Id("Value"): jen.Id(vname)}), jen.Nil()),
				)
			}
		})
		body.Return(jen.Nil(), jen.Qual(h.RuntimePkg(), "NewMismatchedFieldError").Call(jen.Id(fname), jen.Lit(grp.Type)))
	})
}

// genBinding emits the compile-time assertion binding the record to the
// capability interface. Customized accessor names and type parameters
// both suppress it.
func genBinding(h EmitterHelper, f *jen.File, r *Record) {
	if !r.BindsInterface() {
		return
	}
	f.Var().Id("_").Qual(h.RuntimePkg(), "Companion").Types(jen.Id(r.FieldEnumName()), jen.Id(r.ValueEnumName())).Op("=").Parens(jen.Op("*").Id(r.Name)).Call(jen.Nil())
}
