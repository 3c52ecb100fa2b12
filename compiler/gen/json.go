package gen

import (
	"github.com/dave/jennifer/jen"
)

// genJSONCodec emits the JSON envelope codec of one record: MarshalJSON
// on every value variant and a function recovering a tagged value from
// its envelope. The envelope is {"field": label, "value": payload}.
func genJSONCodec(h EmitterHelper, f *jen.File, r *Record) {
	env := camel(snake(r.Name)) + "ValueEnvelope"

	f.Commentf("%s is the JSON envelope of a tagged %s value.", env, r.Name)
	f.Type().Id(env).Struct(
		jen.Id("Field").String().Tag(map[string]string{"json": "field"}),
		jen.Id("Value").Qual("encoding/json", "RawMessage").Tag(map[string]string{"json": "value"}),
	)

	for _, fld := range r.Fields {
		vr := receiver(fld.VariantName())
		f.Comment("MarshalJSON implements the json.Marshaler interface.")
		f.Func().Params(jen.Id(vr).Id(fld.VariantName())).Id("MarshalJSON").Params().Params(jen.Index().Byte(), jen.Error()).Block(
			jen.List(jen.Id("payload"), jen.Err()).Op(":=").Qual("encoding/json", "Marshal").Call(jen.Id(vr).Dot("Value")),
			jen.If(jen.Err().Op("!=").Nil()).Block(
				jen.Return(jen.Nil(), jen.Err()),
			),
			jen.Return(jen.Qual("encoding/json", "Marshal").Call(jen.Id(env).Values(jen.Dict{
				jen.Id("Field"): jen.Lit(fld.Label()),
				jen.Id("Value"): jen.Id("payload"),
			}))),
		)
	}

	fn := jsonUnmarshalFuncName(r)
	f.Commentf("%s decodes a tagged %s value produced by MarshalJSON.", fn, r.Name)
	f.Func().Id(fn).Params(jen.Id("data").Index().Byte()).Params(jen.Id(r.ValueEnumName()), jen.Error()).BlockFunc(func(body *jen.Group) {
		body.Var().Id("env").Id(env)
		body.If(
			jen.Err().Op(":=").Qual("encoding/json", "Unmarshal").Call(jen.Id("data"), jen.Op("&").Id("env")),
			jen.Err().Op("!=").Nil(),
		).Block(
			jen.Return(jen.Nil(), jen.Err()),
		)
		body.List(jen.Id("field"), jen.Err()).Op(":=").Id(r.ParseFuncName()).Call(jen.Id("env").Dot("Field"))
		body.If(jen.Err().Op("!=").Nil()).Block(
			jen.Return(jen.Nil(), jen.Err()),
		)
		body.Switch(jen.Id("field")).BlockFunc(func(sw *jen.Group) {
			for _, fld := range r.Fields {
				sw.Case(jen.Id(fld.EnumName())).Block(
					jen.Var().Id("value").Add(h.GoType(r, fld)),
					jen.If(
						jen.Err().Op(":=").Qual("encoding/json", "Unmarshal").Call(jen.Id("env").Dot("Value"), jen.Op("&").Id("value")),
						jen.Err().Op("!=").Nil(),
					).Block(
						jen.Return(jen.Nil(), jen.Err()),
					),
					jen.Return(jen.Id(fld.VariantName()).Values(jen.Dict{jen.Id("Value"): jen.Id("value")}), jen.Nil()),
				)
			}
		})
		body.Return(jen.Nil(), jen.Qual(h.RuntimePkg(), "NewInvalidFieldNameError").Call(jen.Id("env").Dot("Field")))
	})
}

// jsonUnmarshalFuncName returns the name of the envelope decode
// function of the record.
func jsonUnmarshalFuncName(r *Record) string {
	if !r.Exported() {
		return "unmarshal" + titleCase(r.Name) + "Value"
	}
	return "Unmarshal" + r.Name + "Value"
}
