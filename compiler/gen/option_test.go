package gen

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWithHeader(t *testing.T) {
	t.Run("sets header", func(t *testing.T) {
		c := &Config{}
		err := WithHeader("// Custom header")(c)

		require.NoError(t, err)
		assert.Equal(t, "// Custom header", c.Header)
	})

	t.Run("empty header is allowed", func(t *testing.T) {
		c := &Config{Header: "existing"}
		err := WithHeader("")(c)

		require.NoError(t, err)
		assert.Equal(t, "", c.Header)
	})
}

func TestWithTarget(t *testing.T) {
	t.Run("sets target directory", func(t *testing.T) {
		c := &Config{}
		err := WithTarget("./model")(c)

		require.NoError(t, err)
		assert.Equal(t, "./model", c.Target)
	})

	t.Run("empty target returns error", func(t *testing.T) {
		c := &Config{}
		err := WithTarget("")(c)

		require.Error(t, err)
		assert.True(t, IsConfigError(err))
	})
}

func TestWithPackage(t *testing.T) {
	t.Run("sets package", func(t *testing.T) {
		c := &Config{}
		err := WithPackage("github.com/org/project/model")(c)

		require.NoError(t, err)
		assert.Equal(t, "github.com/org/project/model", c.Package)
	})

	t.Run("empty package returns error", func(t *testing.T) {
		c := &Config{}
		err := WithPackage("")(c)

		require.Error(t, err)
		assert.True(t, IsConfigError(err))
	})
}

func TestWithSuffix(t *testing.T) {
	t.Run("sets suffix", func(t *testing.T) {
		c := &Config{}
		err := WithSuffix("_gen")(c)

		require.NoError(t, err)
		assert.Equal(t, "_gen", c.Suffix)
	})

	t.Run("empty suffix returns error", func(t *testing.T) {
		c := &Config{}
		err := WithSuffix("")(c)

		require.Error(t, err)
		assert.True(t, IsConfigError(err))
	})

	t.Run("path separator returns error", func(t *testing.T) {
		c := &Config{}
		err := WithSuffix("bad/suffix")(c)

		require.Error(t, err)
		assert.True(t, IsConfigError(err))
	})
}

func TestWithRuntimePkg(t *testing.T) {
	t.Run("sets runtime package", func(t *testing.T) {
		c := &Config{}
		err := WithRuntimePkg("example.com/fork/companion")(c)

		require.NoError(t, err)
		assert.Equal(t, "example.com/fork/companion", c.RuntimePkg)
	})

	t.Run("empty runtime package returns error", func(t *testing.T) {
		c := &Config{}
		err := WithRuntimePkg("")(c)

		require.Error(t, err)
		assert.True(t, IsConfigError(err))
	})
}

func TestWithFeatures(t *testing.T) {
	t.Run("adds single feature", func(t *testing.T) {
		c := &Config{}
		err := WithFeatures(FeatureJSON)(c)

		require.NoError(t, err)
		assert.Equal(t, 1, len(c.Features))
		assert.Equal(t, "json", c.Features[0].Name)
	})

	t.Run("adds multiple features", func(t *testing.T) {
		c := &Config{}
		err := WithFeatures(FeatureJSON, FeatureText)(c)

		require.NoError(t, err)
		assert.Equal(t, 2, len(c.Features))
	})

	t.Run("appends to existing features", func(t *testing.T) {
		c := &Config{Features: []Feature{FeatureText}}
		err := WithFeatures(FeatureJSON)(c)

		require.NoError(t, err)
		assert.Equal(t, 2, len(c.Features))
	})
}

func TestWithFeatureNames(t *testing.T) {
	t.Run("enables features by name", func(t *testing.T) {
		c := &Config{}
		err := WithFeatureNames("json", "text")(c)

		require.NoError(t, err)
		require.Equal(t, 2, len(c.Features))
		assert.Equal(t, "json", c.Features[0].Name)
		assert.Equal(t, "text", c.Features[1].Name)
	})

	t.Run("unknown name returns error", func(t *testing.T) {
		c := &Config{}
		err := WithFeatureNames("yaml")(c)

		require.Error(t, err)
		assert.True(t, IsConfigError(err))
	})
}

func TestWithHooks(t *testing.T) {
	t.Run("adds hooks", func(t *testing.T) {
		hook := func(next Generator) Generator { return next }
		c := &Config{}
		err := WithHooks(hook)(c)

		require.NoError(t, err)
		assert.Equal(t, 1, len(c.Hooks))
	})

	t.Run("appends to existing hooks", func(t *testing.T) {
		hook1 := func(next Generator) Generator { return next }
		hook2 := func(next Generator) Generator { return next }
		c := &Config{Hooks: []Hook{hook1}}
		err := WithHooks(hook2)(c)

		require.NoError(t, err)
		assert.Equal(t, 2, len(c.Hooks))
	})
}

func TestWithGenerator(t *testing.T) {
	t.Run("sets generator", func(t *testing.T) {
		gen := GenerateFunc(func(*Graph) error { return nil })
		c := &Config{}
		err := WithGenerator(gen)(c)

		require.NoError(t, err)
		assert.NotNil(t, c.Generator)
	})

	t.Run("nil generator returns error", func(t *testing.T) {
		c := &Config{}
		err := WithGenerator(nil)(c)

		require.Error(t, err)
		assert.True(t, IsConfigError(err))
	})
}

func TestWithWorkers(t *testing.T) {
	t.Run("sets workers", func(t *testing.T) {
		c := &Config{}
		err := WithWorkers(8)(c)

		require.NoError(t, err)
		assert.Equal(t, 8, c.Workers)
	})

	t.Run("non-positive workers returns error", func(t *testing.T) {
		c := &Config{}
		err := WithWorkers(0)(c)

		require.Error(t, err)
		assert.True(t, IsConfigError(err))
	})
}

func TestWithForce(t *testing.T) {
	c := &Config{}
	err := WithForce(true)(c)

	require.NoError(t, err)
	assert.True(t, c.Force)
}

func TestWithBuildFlags(t *testing.T) {
	t.Run("adds build flags", func(t *testing.T) {
		c := &Config{}
		err := WithBuildFlags("-tags=test")(c)

		require.NoError(t, err)
		assert.Equal(t, []string{"-tags=test"}, c.BuildFlags)
	})

	t.Run("appends to existing flags", func(t *testing.T) {
		c := &Config{BuildFlags: []string{"-mod=vendor"}}
		err := WithBuildFlags("-tags=test")(c)

		require.NoError(t, err)
		assert.Equal(t, []string{"-mod=vendor", "-tags=test"}, c.BuildFlags)
	})
}

func TestConfigApply(t *testing.T) {
	t.Run("applies multiple options", func(t *testing.T) {
		c := &Config{}
		err := c.Apply(
			WithPackage("github.com/test/project"),
			WithTarget("./model"),
			WithHeader("// Custom"),
		)

		require.NoError(t, err)
		assert.Equal(t, "github.com/test/project", c.Package)
		assert.Equal(t, "./model", c.Target)
		assert.Equal(t, "// Custom", c.Header)
	})

	t.Run("stops on first error", func(t *testing.T) {
		c := &Config{}
		err := c.Apply(
			WithPackage(""),       // Error
			WithTarget("./model"), // Should not be applied
		)

		require.Error(t, err)
		assert.Empty(t, c.Package)
		assert.Empty(t, c.Target)
	})
}

func TestConfigApplyAll(t *testing.T) {
	t.Run("collects all errors", func(t *testing.T) {
		c := &Config{}
		err := c.ApplyAll(
			WithPackage(""), // Error
			WithTarget(""),  // Error
		)

		require.Error(t, err)
		// errors.Join returns an error with Unwrap() []error
		unwrapper, ok := err.(interface{ Unwrap() []error })
		require.True(t, ok, "error should implement Unwrap() []error")
		assert.Equal(t, 2, len(unwrapper.Unwrap()))
	})

	t.Run("returns nil when all succeed", func(t *testing.T) {
		c := &Config{}
		err := c.ApplyAll(
			WithPackage("github.com/test"),
			WithTarget("./model"),
		)

		require.NoError(t, err)
	})
}

func TestNewConfig(t *testing.T) {
	t.Run("creates config with options on defaults", func(t *testing.T) {
		c, err := NewConfig(
			WithPackage("github.com/test/project"),
			WithTarget("./model"),
		)

		require.NoError(t, err)
		require.NotNil(t, c)
		assert.Equal(t, "github.com/test/project", c.Package)
		assert.Equal(t, "./model", c.Target)
		assert.Equal(t, defaultHeader, c.Header)
		assert.Equal(t, defaultSuffix, c.Suffix)
	})

	t.Run("returns error on invalid option", func(t *testing.T) {
		c, err := NewConfig(
			WithPackage(""),
		)

		require.Error(t, err)
		assert.Nil(t, c)
	})
}

func TestMustNewConfig(t *testing.T) {
	t.Run("returns config on success", func(t *testing.T) {
		c := MustNewConfig(
			WithPackage("github.com/test/project"),
		)

		require.NotNil(t, c)
		assert.Equal(t, "github.com/test/project", c.Package)
	})

	t.Run("panics on error", func(t *testing.T) {
		assert.Panics(t, func() {
			MustNewConfig(WithPackage(""))
		})
	})
}
