package gen

import (
	"context"
	"fmt"

	"github.com/syssam/companion/compiler/load"
)

type (
	// The Generator interface must be implemented by the different
	// codegen mechanisms, and can be wrapped by Hooks.
	Generator interface {
		// Generate generates the artifacts for the given graph.
		Generate(*Graph) error
	}

	// GenerateFunc allows the use of ordinary functions as Generators.
	GenerateFunc func(*Graph) error

	// Hook defines the "generate middleware". A function that gets a
	// Generator and returns a Generator. For example:
	//
	//	hook := func(next gen.Generator) gen.Generator {
	//		return gen.GenerateFunc(func(g *gen.Graph) error {
	//			fmt.Println("generating", len(g.Nodes), "records")
	//			return next.Generate(g)
	//		})
	//	}
	Hook func(Generator) Generator
)

// Generate calls f(g).
func (f GenerateFunc) Generate(g *Graph) error {
	return f(g)
}

// Graph holds the records of one generation run together with the
// configuration shared between them.
type Graph struct {
	*Config
	// Nodes holds the graph records, in load order.
	Nodes []*Record
}

// NewGraph creates a new Graph for the code generation from the given
// schema definitions.
func NewGraph(c *Config, schemas ...*load.Schema) (*Graph, error) {
	if c == nil {
		c = DefaultConfig()
	}
	g := &Graph{Config: c, Nodes: make([]*Record, 0, len(schemas))}
	names := make(map[string]bool, len(schemas))
	for _, s := range schemas {
		r, err := NewRecord(c, s)
		if err != nil {
			return nil, err
		}
		if names[r.Name] {
			return nil, NewSchemaError(r.Name, "", "record declared more than once", nil)
		}
		names[r.Name] = true
		g.Nodes = append(g.Nodes, r)
	}
	return g, nil
}

// Gen generates the artifacts for all records in the graph, applying
// the configured hooks around the generator.
func (g *Graph) Gen() error {
	var gen Generator = GenerateFunc(generate)
	if g.Generator != nil {
		gen = g.Generator
	}
	for i := len(g.Hooks) - 1; i >= 0; i-- {
		gen = g.Hooks[i](gen)
	}
	return gen.Generate(g)
}

// RecordBy returns the first record the given function returns true on.
func (g *Graph) RecordBy(fn func(*Record) bool) (*Record, bool) {
	for _, r := range g.Nodes {
		if fn(r) {
			return r, true
		}
	}
	return nil, false
}

// generate is the default Generator: it renders every record with the
// jennifer generator and removes leftovers of disabled features.
func generate(g *Graph) error {
	if g.Config == nil || g.Config.Target == "" {
		return NewConfigError("Target", nil, "missing target directory in config")
	}
	gen := NewJenniferGenerator(g, g.Target).WithWorkers(g.workers())
	if err := gen.Generate(context.Background()); err != nil {
		return err
	}
	return cleanupFeatures(g.Config)
}

// cleanupFeatures removes artifacts of features that were enabled in a
// previous run and are disabled now.
func cleanupFeatures(c *Config) error {
	for _, f := range allFeatures {
		if f.cleanup == nil || c.HasFeature(f.Name) {
			continue
		}
		if err := f.cleanup(c); err != nil {
			return fmt.Errorf("companion/gen: cleanup feature %q: %w", f.Name, err)
		}
	}
	return nil
}
