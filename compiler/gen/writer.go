package gen

import (
	"bytes"
	"fmt"
	"os"
	"path/filepath"

	"github.com/dave/jennifer/jen"
	"golang.org/x/tools/imports"
)

// WriterMetrics tracks generation performance.
type WriterMetrics struct {
	FilesGenerated int
	FilesSkipped   int
	TotalBytes     int64
}

// Metrics returns the generation metrics of the last run.
func (g *JenniferGenerator) Metrics() *WriterMetrics {
	return g.metrics
}

// renderFile renders a jennifer file and pipes it through goimports.
// Jennifer tracks the imports it knows about; goimports resolves the
// qualifiers rendered verbatim (unresolvable selector types, generic
// constraints) and prunes the rest. With debug set, a failed format
// leaves the unformatted source next to the target file.
func (g *JenniferGenerator) renderFile(f *jen.File, name string, debug bool) ([]byte, error) {
	var buf bytes.Buffer
	if err := f.Render(&buf); err != nil {
		return nil, NewGenerationError("render", name, "render generated code", err)
	}
	fullPath := filepath.Join(g.outDir, name)
	formatted, err := imports.Process(fullPath, buf.Bytes(), nil)
	if err != nil {
		if debug {
			// Keep the unformatted output around for debugging.
			debugPath := fullPath + ".error"
			_ = os.MkdirAll(filepath.Dir(debugPath), 0o755)
			_ = os.WriteFile(debugPath, buf.Bytes(), 0o644)
			return nil, NewGenerationError("render", name, fmt.Sprintf("format generated code (unformatted written to %s)", debugPath), err)
		}
		return nil, NewGenerationError("render", name, "format generated code", err)
	}
	return formatted, nil
}

// writeFile writes one rendered artifact into the target directory.
func (g *JenniferGenerator) writeFile(name string, src []byte) error {
	fullPath := filepath.Join(g.outDir, name)
	if err := os.MkdirAll(filepath.Dir(fullPath), 0o755); err != nil {
		return NewGenerationError("write", name, "create output directory", err)
	}
	if err := os.WriteFile(fullPath, src, 0o644); err != nil {
		return NewGenerationError("write", name, "write artifact", err)
	}
	g.mu.Lock()
	g.metrics.FilesGenerated++
	g.metrics.TotalBytes += int64(len(src))
	g.mu.Unlock()
	return nil
}
