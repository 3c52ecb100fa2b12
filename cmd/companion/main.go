// Command companion generates the companion enumerations of annotated
// record types: a field-selector enumeration, a tagged-value enumeration,
// accessors and raw-type conversions, written next to the records they
// describe.
//
// Usage:
//
//	companion [opts] [package]
//
// The package argument defaults to the current directory. Options may also
// come from a companion.yaml file in the package directory; command line
// options take precedence.
package main

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/fatih/color"
	"github.com/goccy/go-json"
	"github.com/scott-cotton/cli"
	"gopkg.in/yaml.v3"

	"github.com/syssam/companion/compiler/gen"
	"github.com/syssam/companion/compiler/load"
)

// version is overridden at release time via -ldflags "-X main.version=...".
var version = "dev"

var (
	errc = color.New(color.FgRed)
	okc  = color.New(color.FgGreen)
)

func main() {
	cli.MainContext(context.Background(), MainCommand())
}

// Config holds the command line options.
type Config struct {
	Types    string `cli:"name=type desc='comma-separated record type names (default: all annotated records)'"`
	File     string `cli:"name=config desc='path to a companion.yaml configuration file'"`
	Suffix   string `cli:"name=suffix desc='tail of generated file names'"`
	Header   string `cli:"name=header desc='header comment of generated files'"`
	Features string `cli:"name=features desc='comma-separated features to enable (json, text)'"`
	Workers  int    `cli:"name=workers desc='number of artifacts rendered concurrently'"`
	Check    bool   `cli:"name=check desc='report stale artifacts instead of writing them'"`
	Force    bool   `cli:"name=force desc='rewrite artifacts even when their inputs are unchanged'"`
	Print    bool   `cli:"name=print desc='print the loaded schemas as JSON and exit'"`
	Watch    bool   `cli:"name=watch desc='keep running and regenerate when the package changes'"`
	Verbose  bool   `cli:"name=verbose desc='report written artifacts'"`
	Version  bool   `cli:"name=version desc='print the version and exit'"`
}

func MainCommand() *cli.Command {
	cfg := &Config{}
	opts, err := cli.StructOpts(cfg)
	if err != nil {
		panic(err)
	}
	return cli.NewCommand("companion").
		WithSynopsis("companion [opts] [package]").
		WithDescription("Generate field and value companion enumerations for annotated record types.").
		WithOpts(opts...).
		WithRun(func(cc *cli.Context, args []string) error {
			return run(cfg, cc, args)
		})
}

func run(cfg *Config, _ *cli.Context, args []string) error {
	if cfg.Version {
		fmt.Println("companion version", version)
		return nil
	}
	if len(args) > 1 {
		return fmt.Errorf("%w: expected at most one package path", cli.ErrUsage)
	}
	if cfg.Check && cfg.Watch {
		return fmt.Errorf("%w: -check and -watch are mutually exclusive", cli.ErrUsage)
	}
	path := "."
	if len(args) == 1 {
		path = args[0]
	}
	dir, err := filepath.Abs(path)
	if err != nil {
		return err
	}
	fc, err := loadFileConfig(cfg.File, dir)
	if err != nil {
		return err
	}
	names := splitList(cfg.Types)
	if len(names) == 0 {
		names = fc.Types
	}
	loadCfg := &load.Config{Path: path, Names: names, BuildFlags: fc.BuildFlags}
	if cfg.Print {
		return printSchemas(loadCfg)
	}
	graphCfg, err := newGenConfig(cfg, fc, dir)
	if err != nil {
		return err
	}
	if cfg.Check {
		return check(graphCfg, loadCfg)
	}
	regen := func() error {
		graph, err := buildGraph(graphCfg, loadCfg)
		if err != nil {
			return err
		}
		return graph.Gen()
	}
	if err := regen(); err != nil {
		return err
	}
	if cfg.Watch {
		if cfg.Verbose {
			fmt.Printf("watching %s\n", dir)
		}
		return watch(context.Background(), dir, graphCfg.Suffix, regen)
	}
	return nil
}

// fileConfig is the shape of a companion.yaml file. Every key is
// optional; command line options override the file.
type fileConfig struct {
	Package    string   `yaml:"package"`
	Target     string   `yaml:"target"`
	Suffix     string   `yaml:"suffix"`
	Header     string   `yaml:"header"`
	Features   []string `yaml:"features"`
	Workers    int      `yaml:"workers"`
	Types      []string `yaml:"types"`
	BuildFlags []string `yaml:"build_flags"`
}

// loadFileConfig reads the configuration file. Without an explicit path a
// companion.yaml in the package directory is used when present, and its
// absence is not an error.
func loadFileConfig(path, dir string) (*fileConfig, error) {
	fc := &fileConfig{}
	if path == "" {
		path = filepath.Join(dir, "companion.yaml")
		if _, err := os.Stat(path); err != nil {
			return fc, nil
		}
	}
	buf, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read config %s: %w", path, err)
	}
	if err := yaml.Unmarshal(buf, fc); err != nil {
		return nil, fmt.Errorf("parse config %s: %w", path, err)
	}
	return fc, nil
}

// newGenConfig assembles the generation config from the defaults, the
// configuration file and the command line, in that order.
func newGenConfig(cfg *Config, fc *fileConfig, dir string) (*gen.Config, error) {
	target := fc.Target
	if target == "" {
		target = dir
	}
	opts := []gen.Option{gen.WithTarget(target)}
	if fc.Package != "" {
		opts = append(opts, gen.WithPackage(fc.Package))
	}
	if suffix := firstOf(cfg.Suffix, fc.Suffix); suffix != "" {
		opts = append(opts, gen.WithSuffix(suffix))
	}
	if header := firstOf(cfg.Header, fc.Header); header != "" {
		opts = append(opts, gen.WithHeader(header))
	}
	features := splitList(cfg.Features)
	if len(features) == 0 {
		features = fc.Features
	}
	if len(features) > 0 {
		opts = append(opts, gen.WithFeatureNames(features...))
	}
	if workers := cfg.Workers; workers > 0 {
		opts = append(opts, gen.WithWorkers(workers))
	} else if fc.Workers > 0 {
		opts = append(opts, gen.WithWorkers(fc.Workers))
	}
	if cfg.Force {
		opts = append(opts, gen.WithForce(true))
	}
	if len(fc.BuildFlags) > 0 {
		opts = append(opts, gen.WithBuildFlags(fc.BuildFlags...))
	}
	if cfg.Verbose {
		opts = append(opts, gen.WithHooks(reportHook()))
	}
	return gen.NewConfig(opts...)
}

// buildGraph loads the selected schemas and assembles the graph. The
// artifact package defaults to the loaded package path.
func buildGraph(cfg *gen.Config, loadCfg *load.Config) (*gen.Graph, error) {
	schemas, err := loadCfg.Load()
	if err != nil {
		return nil, err
	}
	if cfg.Package == "" {
		cfg.Package = schemas[0].PkgPath
	}
	return gen.NewGraph(cfg, schemas...)
}

// printSchemas dumps the loaded schemas as JSON, without generating.
func printSchemas(loadCfg *load.Config) error {
	schemas, err := loadCfg.Load()
	if err != nil {
		return err
	}
	buf, err := json.MarshalIndent(schemas, "", "  ")
	if err != nil {
		return err
	}
	fmt.Println(string(buf))
	return nil
}

// check verifies the artifacts on disk against a fresh render and exits
// with status 2 when any are stale. Nothing is written.
func check(cfg *gen.Config, loadCfg *load.Config) error {
	graph, err := buildGraph(cfg, loadCfg)
	if err != nil {
		return err
	}
	drifts, err := gen.NewJenniferGenerator(graph, cfg.Target).WithWorkers(cfg.Workers).Verify(context.Background())
	if err != nil {
		return err
	}
	if len(drifts) == 0 {
		okc.Printf("%d record(s) up to date\n", len(graph.Nodes))
		return nil
	}
	for _, d := range drifts {
		errc.Fprintf(os.Stderr, "stale: %s\n", d.File)
		fmt.Fprint(os.Stderr, d.Diff)
	}
	os.Exit(2)
	return nil
}

// reportHook prints the artifacts present after a generation run.
func reportHook() gen.Hook {
	return func(next gen.Generator) gen.Generator {
		return gen.GenerateFunc(func(g *gen.Graph) error {
			start := time.Now()
			if err := next.Generate(g); err != nil {
				return err
			}
			fmt.Printf("generated %d record(s) in %v\n", len(g.Nodes), time.Since(start).Round(time.Millisecond))
			for _, r := range g.Nodes {
				names := []string{r.FileName()}
				for _, f := range g.Features {
					names = append(names, r.FeatureFileName(f.Name))
				}
				for _, name := range names {
					if _, err := os.Stat(filepath.Join(g.Target, name)); err != nil {
						continue
					}
					okc.Printf("  %s\n", name)
				}
			}
			return nil
		})
	}
}

func splitList(s string) []string {
	var out []string
	for _, part := range strings.Split(s, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}

func firstOf(values ...string) string {
	for _, v := range values {
		if v != "" {
			return v
		}
	}
	return ""
}
