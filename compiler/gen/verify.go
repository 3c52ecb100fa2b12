package gen

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"sync"

	diffpatch "github.com/sergi/go-diff/diffmatchpatch"
	"golang.org/x/sync/errgroup"
)

// Drift describes one artifact whose content on disk differs from what
// the generator would produce.
type Drift struct {
	// File is the artifact file name, relative to the target directory.
	File string

	// Diff is a line diff from the content on disk to the freshly
	// rendered content. A missing file carries the whole rendered
	// content as insertions.
	Diff string
}

// Verify renders every artifact in memory and compares it against the
// target directory, without writing anything. It returns one Drift per
// changed or missing file, ordered by file name. An empty result means
// the target directory is up to date.
func (g *JenniferGenerator) Verify(ctx context.Context) ([]Drift, error) {
	var (
		mu     sync.Mutex
		drifts []Drift
	)
	errg, _ := errgroup.WithContext(ctx)
	errg.SetLimit(g.workers)
	for _, r := range g.graph.Nodes {
		errg.Go(func() error {
			return g.verifyRecord(r, "", &mu, &drifts)
		})
		for _, feature := range g.graph.Features {
			if !g.SupportsFeature(feature.Name) {
				continue
			}
			errg.Go(func() error {
				return g.verifyRecord(r, feature.Name, &mu, &drifts)
			})
		}
	}
	if err := errg.Wait(); err != nil {
		return nil, err
	}
	sort.Slice(drifts, func(i, j int) bool { return drifts[i].File < drifts[j].File })
	return drifts, nil
}

// verifyRecord compares one rendered artifact against the disk.
func (g *JenniferGenerator) verifyRecord(r *Record, feature string, mu *sync.Mutex, drifts *[]Drift) error {
	name := r.FileName()
	if feature != "" {
		name = r.FeatureFileName(feature)
	}
	file, err := g.genFile(r, feature)
	if err != nil {
		return err
	}
	if file == nil {
		return nil
	}
	want, err := g.renderFile(file, name, false)
	if err != nil {
		return err
	}
	got, err := os.ReadFile(filepath.Join(g.outDir, name))
	if err != nil && !os.IsNotExist(err) {
		return NewGenerationError("verify", name, "read artifact", err)
	}
	if bytes.Equal(got, want) {
		return nil
	}
	mu.Lock()
	*drifts = append(*drifts, Drift{File: name, Diff: lineDiff(string(got), string(want))})
	mu.Unlock()
	return nil
}

// lineDiff renders a line-based diff from got to want, with removed
// lines prefixed by - and added lines by +.
func lineDiff(got, want string) string {
	diffCfg := diffpatch.New()
	c1, c2, lines := diffCfg.DiffLinesToChars(got, want)
	diffs := diffCfg.DiffCharsToLines(diffCfg.DiffMain(c1, c2, false), lines)
	var b strings.Builder
	for _, d := range diffs {
		var prefix string
		switch d.Type {
		case diffpatch.DiffDelete:
			prefix = "-"
		case diffpatch.DiffInsert:
			prefix = "+"
		default:
			continue
		}
		for _, line := range strings.Split(strings.TrimSuffix(d.Text, "\n"), "\n") {
			b.WriteString(prefix)
			b.WriteString(line)
			b.WriteString("\n")
		}
	}
	return b.String()
}
