package gen

import (
	"errors"
	"slices"
	"strings"
)

// Option configures code generation.
type Option func(*Config) error

// WithHeader sets the file header comment.
// The header is added at the top of each generated file.
func WithHeader(header string) Option {
	return func(c *Config) error {
		c.Header = header
		return nil
	}
}

// WithTarget sets the output directory.
// The directory where generated artifacts will be written. When unset,
// artifacts are written next to the loaded package sources.
func WithTarget(dir string) Option {
	return func(c *Config) error {
		if dir == "" {
			return NewConfigError("Target", nil, "target directory cannot be empty")
		}
		c.Target = dir
		return nil
	}
}

// WithPackage sets the import path of the package artifacts belong to.
// For example: "github.com/org/project/model".
func WithPackage(pkg string) Option {
	return func(c *Config) error {
		if pkg == "" {
			return NewConfigError("Package", nil, "package cannot be empty")
		}
		c.Package = pkg
		return nil
	}
}

// WithSuffix sets the generated file suffix.
// The suffix sits between the record label and the .go extension and
// keeps artifacts apart from handwritten files.
func WithSuffix(suffix string) Option {
	return func(c *Config) error {
		if suffix == "" {
			return NewConfigError("Suffix", nil, "suffix cannot be empty")
		}
		if strings.ContainsAny(suffix, `/\`) {
			return NewConfigError("Suffix", suffix, "suffix cannot contain path separators")
		}
		c.Suffix = suffix
		return nil
	}
}

// WithRuntimePkg sets the import path of the runtime module.
// Generated artifacts import it for the capability interface and the
// error types. Overriding it supports vendored or forked runtimes.
func WithRuntimePkg(pkg string) Option {
	return func(c *Config) error {
		if pkg == "" {
			return NewConfigError("RuntimePkg", nil, "runtime package cannot be empty")
		}
		c.RuntimePkg = pkg
		return nil
	}
}

// WithFeatures enables specific features.
// Features control optional code generation capabilities.
func WithFeatures(features ...Feature) Option {
	return func(c *Config) error {
		c.Features = append(c.Features, features...)
		return nil
	}
}

// WithFeatureNames enables features by name.
// This is a convenience function for wiring command line flags; unknown
// names are rejected.
func WithFeatureNames(names ...string) Option {
	return func(c *Config) error {
		for _, name := range names {
			i := slices.IndexFunc(allFeatures, func(f Feature) bool { return f.Name == name })
			if i < 0 {
				return NewConfigError("Features", name, "unknown feature name")
			}
			c.Features = append(c.Features, allFeatures[i])
		}
		return nil
	}
}

// WithHooks adds generation hooks.
// Hooks wrap the generator and run before/after code generation.
func WithHooks(hooks ...Hook) Option {
	return func(c *Config) error {
		c.Hooks = append(c.Hooks, hooks...)
		return nil
	}
}

// WithGenerator sets a custom code generator.
// If not set, the jennifer generator is used.
func WithGenerator(g Generator) Option {
	return func(c *Config) error {
		if g == nil {
			return NewConfigError("Generator", nil, "generator cannot be nil")
		}
		c.Generator = g
		return nil
	}
}

// WithWorkers sets the number of files rendered and written in parallel.
func WithWorkers(n int) Option {
	return func(c *Config) error {
		if n <= 0 {
			return NewConfigError("Workers", n, "workers must be positive")
		}
		c.Workers = n
		return nil
	}
}

// WithForce regenerates every file even when its cached fingerprint
// matches.
func WithForce(force bool) Option {
	return func(c *Config) error {
		c.Force = force
		return nil
	}
}

// WithBuildFlags sets custom build flags for loading schema packages.
func WithBuildFlags(flags ...string) Option {
	return func(c *Config) error {
		c.BuildFlags = append(c.BuildFlags, flags...)
		return nil
	}
}

// Apply applies options to the config.
// It returns the first error encountered.
func (c *Config) Apply(opts ...Option) error {
	for _, opt := range opts {
		if err := opt(c); err != nil {
			return err
		}
	}
	return nil
}

// ApplyAll applies options and collects all errors.
// Returns a joined error if any options failed.
func (c *Config) ApplyAll(opts ...Option) error {
	var errs []error
	for _, opt := range opts {
		if err := opt(c); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}

// NewConfig creates a new Config with the given options applied on top
// of the defaults.
func NewConfig(opts ...Option) (*Config, error) {
	c := DefaultConfig()
	if err := c.Apply(opts...); err != nil {
		return nil, err
	}
	return c, nil
}

// MustNewConfig creates a new Config with the given options.
// It panics if any option fails.
func MustNewConfig(opts ...Option) *Config {
	c, err := NewConfig(opts...)
	if err != nil {
		panic(err)
	}
	return c
}
