// Package gen turns record schemas into companion enumerations.
//
// Given the parsed declaration of a struct type and a small set of
// options, the package synthesizes a field-selector enumeration, a
// tagged-value enumeration, name resolution, accessor methods and
// type-directed conversions, written as Go source next to the records
// they belong to.
//
// # Architecture
//
// The code generation pipeline follows this flow:
//
//	Record declaration (user package, //companion:generate)
//	        ↓
//	   load.Schema (parsed, serializable snapshot)
//	        ↓
//	   Graph of Records (validated, labels and groups derived)
//	        ↓
//	   Emitter (jennifer files, one per record and feature)
//	        ↓
//	   Generated artifacts ({record}_companion.go)
//
// # Key Types
//
// The package provides several key types:
//
//   - Graph: Holds all Record definitions with validation
//   - Record: One record with its included fields and conversion groups
//   - Field: One field with its label, type expression and variant names
//   - Group: Fields sharing one written type and one conversion pair
//   - Config: Global configuration for code generation
//
// # Error Handling
//
// The package uses structured error types for better error handling:
//
//   - SchemaError: Record or field declaration errors
//   - ConfigError: Configuration errors
//   - GenerationError: Rendering and file writing errors
//
// Example error handling:
//
//	graph, err := gen.NewGraph(config, schemas...)
//	if err != nil {
//	    if gen.IsSchemaError(err) {
//	        // Handle a malformed record declaration
//	    }
//	    return err
//	}
//
// # Configuration
//
// Configuration is done via the functional options pattern:
//
//	config, err := gen.NewConfig(
//	    gen.WithTarget("./internal/model"),
//	    gen.WithFeatures(gen.FeatureText),
//	    gen.WithHeader("// Custom header"),
//	)
//
// # Jennifer Generator
//
// Artifacts are rendered with the Jennifer library and piped through
// goimports, so selector types and generic constraints the renderer
// cannot resolve are still imported correctly. Rendering runs in
// parallel with configurable workers, and a fingerprint cache skips
// records whose schema and settings are unchanged since the last run.
//
// # Usage
//
// The recommended entry point is the compiler package, which loads the
// schemas of a Go package and generates in one call:
//
//	import "github.com/syssam/companion/compiler"
//
//	err := compiler.Generate("./internal/model", config)
//
// Or manually drive the generator:
//
//	generator := gen.NewJenniferGenerator(graph, outDir).WithWorkers(4)
//	err := generator.Generate(ctx)
//
// # Generated Output
//
// The generator produces one file per record, plus one per enabled
// feature, next to the handwritten records:
//
//	{target}/
//	├── {record}_companion.go        // enums, accessors, conversions
//	├── {record}_companion_json.go   // json feature, when enabled
//	├── {record}_companion_text.go   // text feature, when enabled
//	└── .companion.cache             // fingerprints of the last run
//
// # Features
//
// The generator supports optional features that can be enabled:
//
//   - json: envelope codec for the value variants
//   - text: encoding.TextMarshaler/TextUnmarshaler for the selectors
package gen
