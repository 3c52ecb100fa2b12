package gen

import (
	"os"
	"path/filepath"
)

var (
	// FeatureJSON provides a feature-flag for the JSON envelope codec.
	FeatureJSON = Feature{
		Name:        "json",
		Stage:       Beta,
		Default:     false,
		Description: "JSON generates a tagged envelope codec for the value variants of each record",
		cleanup:     cleanupSuffix("_json"),
	}

	// FeatureText provides a feature-flag for the text codec of the field
	// selectors.
	FeatureText = Feature{
		Name:        "text",
		Stage:       Stable,
		Default:     false,
		Description: "Text generates encoding.TextMarshaler and TextUnmarshaler for the field selectors",
		cleanup:     cleanupSuffix("_text"),
	}

	// AllFeatures holds a list of all feature-flags.
	AllFeatures = []Feature{
		FeatureJSON,
		FeatureText,
	}
	// allFeatures includes all public and private features.
	allFeatures = AllFeatures
)

// FeatureStage describes the stage of the codegen feature.
type FeatureStage int

const (
	_ FeatureStage = iota

	// Experimental features are in development, and actively being tested.
	Experimental

	// Alpha features are features whose initial development was finished,
	// but breaking-changes to their APIs are still expected.
	Alpha

	// Beta features are Alpha features that were added to the
	// documentation, and no breaking-changes are expected for them.
	Beta

	// Stable features are Beta features that have been in use for a while
	// without reported issues.
	Stable
)

// A Feature of the companion codegen.
type Feature struct {
	// Name of the feature.
	Name string

	// Stage of the feature.
	Stage FeatureStage

	// Default values indicates if this feature is enabled by default.
	Default bool

	// A Description of this feature.
	Description string

	// cleanup used to cleanup all changes when a feature-flag is removed.
	// e.g. delete files from previous codegen runs.
	cleanup func(*Config) error
}

// cleanupSuffix returns a cleanup function removing the per-record
// feature files sharing the given name tail. Artifacts sit next to
// handwritten code, so only matching files are removed, never the
// directory itself.
func cleanupSuffix(tail string) func(*Config) error {
	return func(c *Config) error {
		suffix := c.Suffix
		if suffix == "" {
			suffix = defaultSuffix
		}
		matches, err := filepath.Glob(filepath.Join(c.Target, "*"+suffix+tail+".go"))
		if err != nil {
			return err
		}
		for _, m := range matches {
			if err := os.Remove(m); err != nil && !os.IsNotExist(err) {
				return err
			}
		}
		return nil
	}
}
