// Package schema provides programmatic record descriptors for the
// companion code generator.
//
// The usual input of the generator is Go source: annotated struct types
// loaded by the compiler/load package. Build scripts and tests that want
// to generate without parsing source can assemble the same descriptors
// through this package's builders:
//
//	sd := schema.Record("User").
//		Package("model", "example.com/app/model").
//		Fields(
//			schema.Field("name", "string"),
//			schema.Field("distance", "uint32").Rename("Distance"),
//			schema.Field("secret", "string").Skip(),
//		).
//		Descriptor()
//
//	graph, err := gen.NewGraph(cfg, sd)
//
// # Options
//
// Accessor names and forwarded attributes mirror the arguments of the
// companion:generate directive:
//
//	schema.Record("session").
//		ValueMethod("Load").
//		UpdateMethod("Store").
//		DeriveValue("PartialEq").
//		ValueAttr(`json:"value"`)
//
// # Validation
//
// Builders record what they are given and never fail. Validation happens
// when the descriptor enters a generation graph, so programmatic and
// source-loaded schemas are rejected with identical errors.
package schema
