package gen

import "github.com/dave/jennifer/jen"

// =============================================================================
// Interface Segregation: Split the emitter into small, focused interfaces
// =============================================================================

// RecordEmitter generates the companion artifact of one record.
// It is called once per record in the graph.
type RecordEmitter interface {
	// GenCompanion generates the full companion file of a record
	// ({record}{suffix}.go): field enumeration, name resolution, value
	// enumeration, accessors, conversions and the capability binding.
	GenCompanion(r *Record) (*jen.File, error)
}

// FeatureEmitter generates feature-specific code.
type FeatureEmitter interface {
	// SupportsFeature checks if the emitter supports a feature
	SupportsFeature(feature string) bool
	// GenFeature generates the feature file of one record
	// ({record}{suffix}_{feature}.go). It returns nil when the feature
	// does not apply to the record.
	GenFeature(feature string, r *Record) (*jen.File, error)
}

// Emitter is the full interface the generation run drives.
//
// Architecture:
//
//	┌─────────────────────────────────────────────────────────────┐
//	│                    JenniferGenerator                        │
//	│  (Orchestration: parallel execution, caching, file writing) │
//	└─────────────────────────┬───────────────────────────────────┘
//	                          │ uses
//	                          ▼
//	┌─────────────────────────────────────────────────────────────┐
//	│                        Emitter                              │
//	│  (Interface: renders one record into jennifer files)        │
//	└─────────────────────────┬───────────────────────────────────┘
//	                          │ implemented by
//	                          ▼
//	          ┌───────────────────────────────┐
//	          │       JenniferGenerator       │
//	          │  (enum.go, value.go, ...)     │
//	          └───────────────────────────────┘
//
// Methods return *jen.File containing the generated code. The generator
// orchestrates calling these methods and writing the files to disk.
type Emitter interface {
	RecordEmitter
	FeatureEmitter
}

// EmitterHelper provides helper methods for emitters. JenniferGenerator
// implements this interface, so custom generators can reuse the type
// rendering and file plumbing without reimplementing it.
type EmitterHelper interface {
	// NewFile creates a new Jennifer file with the configured header
	// comment, declaring the record's package.
	NewFile(r *Record) *jen.File

	// GoType returns the Jennifer code for a field's declared type.
	GoType(r *Record, f *Field) jen.Code

	// RuntimePkg returns the import path of the runtime module.
	RuntimePkg() string

	// Graph returns the graph being generated.
	Graph() *Graph
}
