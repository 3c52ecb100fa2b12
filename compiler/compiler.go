// Package compiler is the programmatic entry point of the codegen. It
// glues the schema loader to the gen package, so a project can drive
// generation from a generate.go file excluded from the build:
//
//	//go:build ignore
//
//	package main
//
//	import (
//		"log"
//
//		"github.com/syssam/companion/compiler"
//		"github.com/syssam/companion/compiler/gen"
//	)
//
//	func main() {
//		cfg, err := gen.NewConfig(
//			gen.WithFeatures(gen.FeatureJSON),
//		)
//		if err != nil {
//			log.Fatalf("creating config: %v", err)
//		}
//		if err := compiler.Generate("./model", cfg); err != nil {
//			log.Fatalf("running companion codegen: %v", err)
//		}
//	}
//
// Records opt into generation with a companion:generate directive
// comment. Loading records by name instead, without the directive, is
// the command line's job; use the load package directly for that.
package compiler

import (
	"context"
	"path/filepath"

	"github.com/syssam/companion/compiler/gen"
	"github.com/syssam/companion/compiler/load"
)

// An Option configures the codegen run before the schemas are loaded.
// Options compose with the gen.Option set; the compiler-level
// constructors exist for settings that read more naturally at the call
// site of Generate.
type Option func(*gen.Config) error

// FeatureNames enables the features matching the given names, as they
// are spelled on the command line. It fails on a name no feature
// carries.
func FeatureNames(names ...string) Option {
	return func(cfg *gen.Config) error {
		return gen.WithFeatureNames(names...)(cfg)
	}
}

// BuildFlags sets the flags forwarded to the schema loader, as in
// go build.
func BuildFlags(flags ...string) Option {
	return func(cfg *gen.Config) error {
		cfg.BuildFlags = flags
		return nil
	}
}

// Generate runs the codegen on the record types of the Go package at
// schemaPath. An empty cfg.Target defaults to schemaPath itself, so
// the artifacts land next to the records they belong to.
func Generate(schemaPath string, cfg *gen.Config, options ...Option) error {
	if cfg == nil {
		cfg = gen.DefaultConfig()
	}
	if cfg.Target == "" {
		abs, err := filepath.Abs(schemaPath)
		if err != nil {
			return err
		}
		cfg.Target = abs
	}
	for _, opt := range options {
		if err := opt(cfg); err != nil {
			return err
		}
	}
	graph, err := LoadGraph(schemaPath, cfg)
	if err != nil {
		return err
	}
	return graph.Gen()
}

// LoadGraph loads the record schemas of the Go package at schemaPath
// and builds the codegen graph on top of them. An empty cfg.Package
// defaults to the import path of the loaded package, matching the
// default Target next to the records.
func LoadGraph(schemaPath string, cfg *gen.Config) (*gen.Graph, error) {
	if cfg == nil {
		cfg = gen.DefaultConfig()
	}
	schemas, err := (&load.Config{Path: schemaPath, BuildFlags: cfg.BuildFlags}).Load()
	if err != nil {
		return nil, err
	}
	if cfg.Package == "" && len(schemas) > 0 {
		cfg.Package = schemas[0].PkgPath
	}
	return gen.NewGraph(cfg, schemas...)
}

// Verify reports the drift between the artifacts a generation run
// would produce and the files currently in cfg.Target, without writing
// anything. An empty slice means the target is up to date. Target and
// Package default as in Generate.
func Verify(schemaPath string, cfg *gen.Config, options ...Option) ([]gen.Drift, error) {
	if cfg == nil {
		cfg = gen.DefaultConfig()
	}
	if cfg.Target == "" {
		abs, err := filepath.Abs(schemaPath)
		if err != nil {
			return nil, err
		}
		cfg.Target = abs
	}
	for _, opt := range options {
		if err := opt(cfg); err != nil {
			return nil, err
		}
	}
	graph, err := LoadGraph(schemaPath, cfg)
	if err != nil {
		return nil, err
	}
	g := gen.NewJenniferGenerator(graph, cfg.Target).WithWorkers(cfg.Workers)
	return g.Verify(context.Background())
}
