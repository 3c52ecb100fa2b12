package compiler

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/syssam/companion/compiler/gen"
)

func TestLoadGraph(t *testing.T) {
	cfg := gen.DefaultConfig()
	graph, err := LoadGraph("./testdata/model", cfg)

	require.NoError(t, err)
	require.Len(t, graph.Nodes, 1)
	assert.Equal(t, "Ticket", graph.Nodes[0].Name)
	assert.Equal(t, "github.com/syssam/companion/compiler/testdata/model", cfg.Package)
}

func TestGenerate(t *testing.T) {
	target := t.TempDir()
	cfg := gen.MustNewConfig(
		gen.WithTarget(target),
		gen.WithFeatures(gen.FeatureText),
	)
	require.NoError(t, Generate("./testdata/model", cfg))

	src, err := os.ReadFile(filepath.Join(target, "ticket_companion.go"))
	require.NoError(t, err)
	assert.Contains(t, string(src), "type TicketField int")
	assert.Contains(t, string(src), "type TicketValue interface")
	assert.Contains(t, string(src), "func TicketValueToString(")
	assert.Contains(t, string(src), "func TicketValueFromTime(")

	_, err = os.Stat(filepath.Join(target, "ticket_companion_text.go"))
	assert.NoError(t, err)
}

func TestGenerateUnknownFeature(t *testing.T) {
	cfg := gen.MustNewConfig(gen.WithTarget(t.TempDir()))
	err := Generate("./testdata/model", cfg, FeatureNames("yaml"))

	require.Error(t, err)
	assert.True(t, gen.IsConfigError(err))
}

func TestGenerateMissingPackage(t *testing.T) {
	cfg := gen.MustNewConfig(gen.WithTarget(t.TempDir()))
	require.Error(t, Generate("./testdata/nosuch", cfg))
}

func TestVerify(t *testing.T) {
	target := t.TempDir()
	cfg := gen.MustNewConfig(gen.WithTarget(target))
	require.NoError(t, Generate("./testdata/model", cfg))

	drifts, err := Verify("./testdata/model", cfg)
	require.NoError(t, err)
	assert.Empty(t, drifts)

	name := filepath.Join(target, "ticket_companion.go")
	require.NoError(t, os.WriteFile(name, []byte("package model\n"), 0o644))

	drifts, err = Verify("./testdata/model", cfg)
	require.NoError(t, err)
	require.Len(t, drifts, 1)
	assert.Equal(t, "ticket_companion.go", drifts[0].File)
	assert.NotEmpty(t, drifts[0].Diff)
}
