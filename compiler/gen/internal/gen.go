// gen is a codegen cmd for generating the builtin suffix table from template.
package main

import (
	"bytes"
	"go/format"
	"log"
	"os"
	"text/template"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

func main() {
	buf, err := os.ReadFile("internal/builtin.tmpl")
	if err != nil {
		log.Fatal("reading template file:", err)
	}
	titleCaser := cases.Title(language.English)
	tmpl := template.Must(template.New("builtin").
		Funcs(template.FuncMap{"title": titleCaser.String}).
		Parse(string(buf)))
	b := &bytes.Buffer{}
	if err = tmpl.Execute(b, struct {
		Sections [][]string
	}{
		Sections: [][]string{
			{"bool", "string"},
			{"int", "int8", "int16", "int32", "int64"},
			{"uint", "uint8", "uint16", "uint32", "uint64", "uintptr"},
			{"float32", "float64"},
			{"complex64", "complex128"},
			{"byte", "rune", "error", "any"},
		},
	}); err != nil {
		log.Fatal("executing template:", err)
	}
	if buf, err = format.Source(b.Bytes()); err != nil {
		log.Fatal("formatting output:", err)
	}
	if err = os.WriteFile("builtin.go", buf, 0o644); err != nil {
		log.Fatal("writing go file:", err)
	}
}
