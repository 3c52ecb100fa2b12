// testgen renders the companion of a hand-built schema into a temp
// directory, for eyeballing emitter changes without a test cycle.
// Run: go run ./compiler/gen/cmd/testgen
package main

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/syssam/companion/compiler/gen"
	"github.com/syssam/companion/compiler/load"
)

func main() {
	outDir, err := os.MkdirTemp("", "companion-testgen-*")
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to create temp dir: %v\n", err)
		os.Exit(1)
	}
	fmt.Printf("Output directory: %s\n", outDir)

	// Hand-built schemas covering the emitter surface: plain fields,
	// a rename, a skip, an imported type and a generic record.
	schemas := []*load.Schema{
		{
			Name:     "Ticket",
			Pkg:      "tracker",
			Exported: true,
			Fields: []*load.Field{
				{Name: "ID", Type: "uuid.UUID"},
				{Name: "title", Type: "string"},
				{Name: "body", Type: "string", Rename: "Text"},
				{Name: "Estimate", Type: "time.Duration"},
				{Name: "closed", Type: "bool"},
				{Name: "audit", Type: "string", Skip: true},
			},
			Imports: map[string]string{
				"time": "time",
				"uuid": "github.com/google/uuid",
			},
		},
		{
			Name:     "Pair",
			Pkg:      "tracker",
			Exported: true,
			TypeParams: []load.TypeParam{
				{Name: "K", Constraint: "comparable"},
				{Name: "V", Constraint: "any"},
			},
			Fields: []*load.Field{
				{Name: "Key", Type: "K"},
				{Name: "Val", Type: "V"},
				{Name: "Note", Type: "string"},
			},
		},
	}

	config, err := gen.NewConfig(
		gen.WithPackage("example.com/test/tracker"),
		gen.WithTarget(outDir),
		gen.WithFeatures(gen.FeatureJSON, gen.FeatureText),
	)
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to create config: %v\n", err)
		os.Exit(1)
	}

	graph, err := gen.NewGraph(config, schemas...)
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to create graph: %v\n", err)
		os.Exit(1)
	}

	fmt.Println("Generating companions...")
	if err = graph.Gen(); err != nil {
		fmt.Fprintf(os.Stderr, "generation failed: %v\n", err)
		os.Exit(1)
	}

	fmt.Println("\nGenerated files:")
	err = filepath.Walk(outDir, func(path string, info os.FileInfo, err error) error {
		if err != nil {
			return err
		}
		if !info.IsDir() {
			relPath, _ := filepath.Rel(outDir, path)
			fmt.Printf("  %s (%d bytes)\n", relPath, info.Size())
		}
		return nil
	})
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to list files: %v\n", err)
	}

	fmt.Println("\n--- Sample: ticket_companion.go ---")
	content, err := os.ReadFile(filepath.Join(outDir, "ticket_companion.go"))
	if err == nil {
		// Show first 80 lines
		lines := 0
		for i, c := range content {
			fmt.Print(string(c))
			if c == '\n' {
				lines++
				if lines >= 80 {
					fmt.Println("... (truncated)")
					break
				}
			}
			if i >= 4000 {
				fmt.Println("... (truncated)")
				break
			}
		}
	}

	fmt.Printf("\n\nTo inspect generated code: ls -la %s\n", outDir)
	fmt.Println("To verify compilation: go build " + outDir + "/...")

	fmt.Println("Done!")
}
