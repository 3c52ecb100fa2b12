package gen

import (
	"runtime"
)

const (
	// defaultHeader is the header comment added at the top of each
	// generated file.
	defaultHeader = "// Code generated by companion. DO NOT EDIT."

	// defaultSuffix separates generated artifact files from the
	// handwritten record files sitting next to them.
	defaultSuffix = "_companion"

	// RuntimePackage is the import path of the runtime module the
	// generated artifacts depend on for the capability interface and the
	// error types.
	RuntimePackage = "github.com/syssam/companion"
)

// Config holds the global codegen configuration. A Config is shared by
// all records of one generation run; per-record options live on the
// schema instead.
type Config struct {
	// Target is the directory the artifacts are written into. It
	// defaults to the directory of the loaded package, so artifacts sit
	// next to the records they belong to.
	Target string

	// Package is the import path of the package the artifacts belong to.
	Package string

	// Header is the file header comment of each generated file.
	Header string

	// Suffix is the tail of each generated file name, between the record
	// label and the .go extension.
	Suffix string

	// RuntimePkg is the import path the generated artifacts use for the
	// capability interface and the error types. Overriding it supports
	// vendored or forked runtimes.
	RuntimePkg string

	// Features of the codegen that are enabled in addition to the
	// companion artifacts.
	Features []Feature

	// Hooks holds an optional list of Hooks to apply on the generator
	// before code generation.
	Hooks []Hook

	// Generator overrides the artifact generator. If nil, the jennifer
	// generator is used.
	Generator Generator

	// Workers is the number of files rendered and written in parallel.
	Workers int

	// Force regenerates every file even when its cached fingerprint
	// matches.
	Force bool

	// BuildFlags are forwarded to the schema loader, as in go build.
	BuildFlags []string
}

// OutputConfig groups the settings describing where and how artifacts
// are written.
type OutputConfig struct {
	Target  string
	Package string
	Header  string
}

// Output returns the grouped output settings.
func (c Config) Output() OutputConfig {
	return OutputConfig{
		Target:  c.Target,
		Package: c.Package,
		Header:  c.Header,
	}
}

// EmitConfig groups the settings shaping the emitted artifacts.
type EmitConfig struct {
	Suffix     string
	RuntimePkg string
	Workers    int
	Force      bool
}

// EmitOpts returns the grouped emission settings.
func (c Config) EmitOpts() EmitConfig {
	return EmitConfig{
		Suffix:     c.Suffix,
		RuntimePkg: c.RuntimePkg,
		Workers:    c.Workers,
		Force:      c.Force,
	}
}

// FeatureEnabled reports if the given feature name is enabled. It
// returns an error if the name does not match any known feature.
func (c Config) FeatureEnabled(name string) (bool, error) {
	for _, f := range allFeatures {
		if name == f.Name {
			return c.HasFeature(name), nil
		}
	}
	return false, NewConfigError("Features", name, "unknown feature name")
}

// HasFeature reports if the given feature name appears in the enabled
// feature list.
func (c Config) HasFeature(name string) bool {
	for _, f := range c.Features {
		if name == f.Name {
			return true
		}
	}
	return false
}

// runtimePkg returns the configured runtime import path, or the default.
func (c Config) runtimePkg() string {
	if c.RuntimePkg != "" {
		return c.RuntimePkg
	}
	return RuntimePackage
}

// workers returns the configured parallelism, or the default.
func (c Config) workers() int {
	if c.Workers > 0 {
		return c.Workers
	}
	return runtime.GOMAXPROCS(0)
}

// DefaultConfig returns a Config with the default header, file suffix,
// runtime package and parallelism.
func DefaultConfig() *Config {
	return &Config{
		Header:     defaultHeader,
		Suffix:     defaultSuffix,
		RuntimePkg: RuntimePackage,
		Workers:    runtime.GOMAXPROCS(0),
	}
}
