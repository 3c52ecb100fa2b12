package gen

import (
	"github.com/dave/jennifer/jen"
)

// genFieldEnum emits the field-selector enumeration of a record: the
// enum type, one selector constant per included field, the ordered
// selector table, the label table and the String method. Derive entries
// and the field attribute are forwarded verbatim as comment directives
// above the type declaration.
func genFieldEnum(h EmitterHelper, f *jen.File, r *Record) {
	enum := r.FieldEnumName()

	f.Commentf("%s selects one %s field.", enum, r.Name)
	for _, d := range r.DeriveField() {
		f.Comment("//" + d)
	}
	if attr := r.FieldAttr(); attr != "" {
		f.Comment("//" + attr)
	}
	f.Type().Id(enum).Int()

	if len(r.Fields) > 0 {
		f.Const().DefsFunc(func(defs *jen.Group) {
			for i, fld := range r.Fields {
				defs.Commentf("%s selects %s.%s.", fld.EnumName(), r.Name, fld.Name)
				if i == 0 {
					defs.Id(fld.EnumName()).Id(enum).Op("=").Iota()
				} else {
					defs.Id(fld.EnumName())
				}
			}
		})
	}

	f.Commentf("%s lists every %s field selector, in declaration order.", r.FieldsVarName(), r.Name)
	f.Var().Id(r.FieldsVarName()).Op("=").Index(jen.Op("...")).Id(enum).ValuesFunc(func(vals *jen.Group) {
		for _, fld := range r.Fields {
			vals.Id(fld.EnumName())
		}
	})

	f.Commentf("%s holds the label of every %s field selector.", r.FieldNamesVar(), r.Name)
	f.Var().Id(r.FieldNamesVar()).Op("=").Index(jen.Op("...")).String().ValuesFunc(func(vals *jen.Group) {
		for _, fld := range r.Fields {
			vals.Id(fld.EnumName()).Op(":").Lit(fld.Label())
		}
	})

	fr := receiver(enum)
	f.Comment("String returns the label of the field selector.")
	f.Func().Params(jen.Id(fr).Id(enum)).Id("String").Params().String().Block(
		jen.If(jen.Id(fr).Op("<").Lit(0).Op("||").Int().Call(jen.Id(fr)).Op(">=").Len(jen.Id(r.FieldNamesVar()))).Block(
			jen.Return(jen.Qual("fmt", "Sprintf").Call(jen.Lit(enum+"(%d)"), jen.Int().Call(jen.Id(fr)))),
		),
		jen.Return(jen.Id(r.FieldNamesVar()).Index(jen.Id(fr))),
	)
}

// genParseFunc emits name resolution: the generated function accepts
// either a field's declared name or its label, matched exactly, and
// returns the selector of that field.
func genParseFunc(h EmitterHelper, f *jen.File, r *Record) {
	f.Commentf("%s resolves a field selector from a field's declared name or its label.", r.ParseFuncName())
	f.Func().Id(r.ParseFuncName()).Params(jen.Id("name").String()).Params(jen.Id(r.FieldEnumName()), jen.Error()).BlockFunc(func(body *jen.Group) {
		body.Switch(jen.Id("name")).BlockFunc(func(sw *jen.Group) {
			for _, fld := range r.Fields {
				keys := []jen.Code{jen.Lit(fld.Name)}
				if fld.Label() != fld.Name {
					keys = append(keys, jen.Lit(fld.Label()))
				}
				sw.Case(keys...).Block(jen.Return(jen.Id(fld.EnumName()), jen.Nil()))
			}
		})
		body.Return(jen.Lit(0), jen.Qual(h.RuntimePkg(), "NewInvalidFieldNameError").Call(jen.Id("name")))
	})
}
