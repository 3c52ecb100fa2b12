package load

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad(t *testing.T) {
	t.Run("annotated structs load in source order", func(t *testing.T) {
		cfg := &Config{Path: "./testdata/user"}
		schemas, err := cfg.Load()

		require.NoError(t, err)
		require.Len(t, schemas, 2)

		user := schemas[0]
		assert.Equal(t, "User", user.Name)
		assert.Equal(t, "user", user.Pkg)
		assert.True(t, user.Exported)
		assert.Contains(t, user.Pos, "user.go")
		require.NotNil(t, user.Options)
		assert.Equal(t, "Get", user.Options.ValueMethod)
		assert.Equal(t, "Set", user.Options.UpdateMethod)
		assert.Equal(t, []string{"Clone", "Hash"}, user.Options.DeriveField)
		assert.Equal(t, `json:"payload"`, user.Options.ValueAttr)

		require.Len(t, user.Fields, 5)
		assert.Equal(t, "ID", user.Fields[0].Name)
		assert.Equal(t, "uuid.UUID", user.Fields[0].Type)
		assert.Equal(t, "Ident", user.Fields[0].Rename)
		assert.Equal(t, "CreatedAt", user.Fields[3].Name)
		assert.Equal(t, "time.Time", user.Fields[3].Type)
		assert.Equal(t, "secret", user.Fields[4].Name)
		assert.True(t, user.Fields[4].Skip)
		assert.Equal(t, "github.com/google/uuid", user.Imports["uuid"])
		assert.Equal(t, "time", user.Imports["time"])

		group := schemas[1]
		assert.Equal(t, "Group", group.Name)
		require.Len(t, group.Fields, 3)
		// Name, Region string expands to two fields in order.
		assert.Equal(t, "Name", group.Fields[0].Name)
		assert.Equal(t, "Region", group.Fields[1].Name)
		assert.Equal(t, "string", group.Fields[1].Type)
		assert.Equal(t, "Active", group.Fields[2].Name)
	})

	t.Run("named type loads without directive", func(t *testing.T) {
		cfg := &Config{Path: "./testdata/user", Names: []string{"Plain"}}
		schemas, err := cfg.Load()

		require.NoError(t, err)
		require.Len(t, schemas, 1)
		assert.Equal(t, "Plain", schemas[0].Name)
		assert.Nil(t, schemas[0].Options)
		require.Len(t, schemas[0].Fields, 2)
		assert.Equal(t, "Label", schemas[0].Fields[0].Name)
	})

	t.Run("schemas follow request order", func(t *testing.T) {
		cfg := &Config{Path: "./testdata/user", Names: []string{"Group", "User"}}
		schemas, err := cfg.Load()

		require.NoError(t, err)
		require.Len(t, schemas, 2)
		assert.Equal(t, "Group", schemas[0].Name)
		assert.Equal(t, "User", schemas[1].Name)
	})

	t.Run("missing requested name returns error", func(t *testing.T) {
		cfg := &Config{Path: "./testdata/user", Names: []string{"Missing"}}
		_, err := cfg.Load()

		require.Error(t, err)
		assert.Contains(t, err.Error(), "Missing")
		assert.Contains(t, err.Error(), "not found")
	})

	t.Run("generic record keeps type parameters", func(t *testing.T) {
		cfg := &Config{Path: "./testdata/generic"}
		schemas, err := cfg.Load()

		require.NoError(t, err)
		require.Len(t, schemas, 1)
		pair := schemas[0]
		assert.Equal(t, "Pair", pair.Name)
		assert.Equal(t, []TypeParam{
			{Name: "K", Constraint: "comparable"},
			{Name: "V", Constraint: "any"},
		}, pair.TypeParams)
		require.Len(t, pair.Fields, 4)
		assert.Equal(t, "K", pair.Fields[0].Type)
		assert.Equal(t, "V", pair.Fields[1].Type)
		assert.Equal(t, "[]V", pair.Fields[3].Type)
	})

	t.Run("embedded field returns error", func(t *testing.T) {
		cfg := &Config{Path: "./testdata/embedded"}
		_, err := cfg.Load()

		require.Error(t, err)
		assert.Contains(t, err.Error(), "embedded")
	})

	t.Run("unknown tag option returns error", func(t *testing.T) {
		cfg := &Config{Path: "./testdata/badtag"}
		_, err := cfg.Load()

		require.Error(t, err)
		assert.Contains(t, err.Error(), "omit")
	})

	t.Run("unknown directive argument returns error", func(t *testing.T) {
		cfg := &Config{Path: "./testdata/baddirective"}
		_, err := cfg.Load()

		require.Error(t, err)
		assert.Contains(t, err.Error(), "getter")
	})

	t.Run("directive on non-struct returns error", func(t *testing.T) {
		cfg := &Config{Path: "./testdata/notstruct"}
		_, err := cfg.Load()

		require.Error(t, err)
		assert.Contains(t, err.Error(), "not a struct")
	})

	t.Run("package without directives returns error", func(t *testing.T) {
		cfg := &Config{Path: "."}
		_, err := cfg.Load()

		require.Error(t, err)
		assert.Contains(t, err.Error(), "companion:generate")
	})
}

func TestPackageName(t *testing.T) {
	tests := []struct {
		path string
		name string
	}{
		{"time", "time"},
		{"github.com/google/uuid", "uuid"},
		{"gopkg.in/yaml.v3", "yaml"},
		{"github.com/vmihailenco/msgpack/v5", "msgpack"},
		{"example.com/mod/v2", "mod"},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.name, packageName(tt.path), "path %q", tt.path)
	}
}
