package gen

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSchemaError(t *testing.T) {
	t.Run("Error message with all fields", func(t *testing.T) {
		cause := errors.New("underlying error")
		err := NewSchemaError("User", "email", "invalid label", cause)

		assert.Contains(t, err.Error(), "companion: schema error")
		assert.Contains(t, err.Error(), "on record User")
		assert.Contains(t, err.Error(), "field email")
		assert.Contains(t, err.Error(), "invalid label")
		assert.Contains(t, err.Error(), "underlying error")
	})

	t.Run("Error message with record only", func(t *testing.T) {
		err := &SchemaError{Record: "User"}
		assert.Contains(t, err.Error(), "on record User")
		assert.NotContains(t, err.Error(), "field")
	})

	t.Run("Unwrap returns cause", func(t *testing.T) {
		cause := errors.New("root cause")
		err := NewSchemaError("User", "", "", cause)

		assert.Equal(t, cause, err.Unwrap())
		assert.True(t, errors.Is(err, cause))
	})

	t.Run("Is matches ErrInvalidSchema", func(t *testing.T) {
		err := NewSchemaError("User", "", "", nil)
		assert.True(t, err.Is(ErrInvalidSchema))
	})

	t.Run("IsSchemaError helper", func(t *testing.T) {
		err := NewSchemaError("User", "email", "test", nil)
		assert.True(t, IsSchemaError(err))
		assert.False(t, IsSchemaError(errors.New("other")))
	})
}

func TestConfigError(t *testing.T) {
	t.Run("Error message with value", func(t *testing.T) {
		err := NewConfigError("Suffix", "bad/suffix", "contains a path separator")

		assert.Contains(t, err.Error(), "companion: config error")
		assert.Contains(t, err.Error(), "Suffix")
		assert.Contains(t, err.Error(), "bad/suffix")
		assert.Contains(t, err.Error(), "contains a path separator")
	})

	t.Run("Error message without value", func(t *testing.T) {
		err := NewConfigError("Target", nil, "cannot be empty")

		assert.Contains(t, err.Error(), "Target")
		assert.Contains(t, err.Error(), "cannot be empty")
		assert.NotContains(t, err.Error(), "value:")
	})

	t.Run("Is matches ErrInvalidConfig", func(t *testing.T) {
		err := NewConfigError("Target", nil, "missing")
		assert.True(t, err.Is(ErrInvalidConfig))
	})

	t.Run("IsConfigError helper", func(t *testing.T) {
		err := NewConfigError("Target", nil, "missing")
		assert.True(t, IsConfigError(err))
		assert.False(t, IsConfigError(errors.New("other")))
	})
}

func TestGenerationError(t *testing.T) {
	t.Run("Error message with all fields", func(t *testing.T) {
		cause := errors.New("write failed")
		err := NewGenerationError("write", "user_companion.go", "cannot write file", cause)

		assert.Contains(t, err.Error(), "companion: generation error")
		assert.Contains(t, err.Error(), "in phase write")
		assert.Contains(t, err.Error(), "file: user_companion.go")
		assert.Contains(t, err.Error(), "cannot write file")
		assert.Contains(t, err.Error(), "write failed")
	})

	t.Run("Error message with phase only", func(t *testing.T) {
		err := &GenerationError{Phase: "render"}
		assert.Contains(t, err.Error(), "in phase render")
	})

	t.Run("Unwrap returns cause", func(t *testing.T) {
		cause := errors.New("io error")
		err := NewGenerationError("write", "", "", cause)

		assert.Equal(t, cause, err.Unwrap())
		assert.True(t, errors.Is(err, cause))
	})

	t.Run("Is matches ErrGenerationFailed", func(t *testing.T) {
		err := NewGenerationError("render", "", "", nil)
		assert.True(t, err.Is(ErrGenerationFailed))
	})

	t.Run("IsGenerationError helper", func(t *testing.T) {
		err := NewGenerationError("render", "user_companion.go", "", nil)
		assert.True(t, IsGenerationError(err))
		assert.False(t, IsGenerationError(errors.New("other")))
	})
}

func TestSentinelErrors(t *testing.T) {
	t.Run("ErrInvalidSchema", func(t *testing.T) {
		assert.Equal(t, "companion: invalid schema", ErrInvalidSchema.Error())
	})

	t.Run("ErrInvalidConfig", func(t *testing.T) {
		assert.Equal(t, "companion: invalid configuration", ErrInvalidConfig.Error())
	})

	t.Run("ErrGenerationFailed", func(t *testing.T) {
		assert.Equal(t, "companion: code generation failed", ErrGenerationFailed.Error())
	})
}

func TestErrorTypeChecking(t *testing.T) {
	tests := []struct {
		name     string
		err      error
		isSchema bool
		isConfig bool
		isGen    bool
	}{
		{
			name:     "SchemaError",
			err:      NewSchemaError("User", "", "", nil),
			isSchema: true,
		},
		{
			name:     "ConfigError",
			err:      NewConfigError("Package", nil, ""),
			isConfig: true,
		},
		{
			name:  "GenerationError",
			err:   NewGenerationError("render", "", "", nil),
			isGen: true,
		},
		{
			name: "Other error",
			err:  errors.New("other"),
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.isSchema, IsSchemaError(tt.err))
			assert.Equal(t, tt.isConfig, IsConfigError(tt.err))
			assert.Equal(t, tt.isGen, IsGenerationError(tt.err))
		})
	}
}

func TestErrorsAs(t *testing.T) {
	t.Run("As SchemaError", func(t *testing.T) {
		err := NewSchemaError("User", "email", "invalid", nil)
		var schemaErr *SchemaError
		require.True(t, errors.As(err, &schemaErr))
		assert.Equal(t, "User", schemaErr.Record)
		assert.Equal(t, "email", schemaErr.Field)
	})

	t.Run("As ConfigError", func(t *testing.T) {
		err := NewConfigError("Package", "test", "invalid")
		var configErr *ConfigError
		require.True(t, errors.As(err, &configErr))
		assert.Equal(t, "Package", configErr.Option)
		assert.Equal(t, "test", configErr.Value)
	})

	t.Run("As GenerationError", func(t *testing.T) {
		err := NewGenerationError("write", "user_companion.go", "failed", nil)
		var genErr *GenerationError
		require.True(t, errors.As(err, &genErr))
		assert.Equal(t, "write", genErr.Phase)
		assert.Equal(t, "user_companion.go", genErr.File)
	})
}
