package gen

import (
	"github.com/dave/jennifer/jen"
)

// genTextCodec emits encoding.TextMarshaler and TextUnmarshaler on the
// field-selector enumeration, round-tripping selectors through their
// labels. The field enumeration is never generic, so the codec applies
// to generic records too.
func genTextCodec(h EmitterHelper, f *jen.File, r *Record) {
	enum := r.FieldEnumName()
	fr := receiver(enum)

	f.Comment("MarshalText implements the encoding.TextMarshaler interface.")
	f.Func().Params(jen.Id(fr).Id(enum)).Id("MarshalText").Params().Params(jen.Index().Byte(), jen.Error()).Block(
		jen.If(jen.Id(fr).Op("<").Lit(0).Op("||").Int().Call(jen.Id(fr)).Op(">=").Len(jen.Id(r.FieldNamesVar()))).Block(
			jen.Return(jen.Nil(), jen.Qual(h.RuntimePkg(), "NewInvalidFieldNameError").Call(jen.Id(fr).Dot("String").Call())),
		),
		jen.Return(jen.Index().Byte().Call(jen.Id(r.FieldNamesVar()).Index(jen.Id(fr))), jen.Nil()),
	)

	f.Comment("UnmarshalText implements the encoding.TextUnmarshaler interface.")
	f.Func().Params(jen.Id(fr).Op("*").Id(enum)).Id("UnmarshalText").Params(jen.Id("text").Index().Byte()).Error().Block(
		jen.List(jen.Id("parsed"), jen.Err()).Op(":=").Id(r.ParseFuncName()).Call(jen.String().Call(jen.Id("text"))),
		jen.If(jen.Err().Op("!=").Nil()).Block(
			jen.Return(jen.Err()),
		),
		jen.Op("*").Id(fr).Op("=").Id("parsed"),
		jen.Return(jen.Nil()),
	)
}
