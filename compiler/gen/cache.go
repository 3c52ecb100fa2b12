package gen

import (
	"bytes"
	"crypto/sha256"
	"encoding/hex"
	"os"
	"path/filepath"
	"sync"

	"github.com/vmihailenco/msgpack/v5"

	"github.com/syssam/companion/compiler/load"
)

// cacheFile is the name of the fingerprint cache written next to the
// generated artifacts.
const cacheFile = ".companion.cache"

// cacheVersion invalidates every stored fingerprint when the generated
// output shape changes.
const cacheVersion = 1

// Cache remembers the input fingerprint of every generated file, so
// unchanged records are not rendered again on the next run. A missing or
// unreadable cache only costs a full regeneration.
type Cache struct {
	path string

	mu      sync.Mutex
	entries map[string]string
	dirty   bool
}

// LoadCache reads the fingerprint cache of the given output directory.
// Corrupt or missing caches yield an empty one.
func LoadCache(dir string) *Cache {
	c := &Cache{
		path:    filepath.Join(dir, cacheFile),
		entries: make(map[string]string),
	}
	buf, err := os.ReadFile(c.path)
	if err != nil {
		return c
	}
	var stored struct {
		Version int               `msgpack:"version"`
		Entries map[string]string `msgpack:"entries"`
	}
	if err := msgpack.Unmarshal(buf, &stored); err != nil || stored.Version != cacheVersion || stored.Entries == nil {
		return c
	}
	c.entries = stored.Entries
	return c
}

// UpToDate reports whether the named file was generated from the same
// fingerprint last time.
func (c *Cache) UpToDate(file, fingerprint string) bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.entries[file] == fingerprint
}

// Put records the fingerprint the named file was generated from.
func (c *Cache) Put(file, fingerprint string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.entries[file] != fingerprint {
		c.entries[file] = fingerprint
		c.dirty = true
	}
}

// Drop forgets the named file.
func (c *Cache) Drop(file string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if _, ok := c.entries[file]; ok {
		delete(c.entries, file)
		c.dirty = true
	}
}

// Store writes the cache back to disk if it changed.
func (c *Cache) Store() error {
	c.mu.Lock()
	defer c.mu.Unlock()
	if !c.dirty {
		return nil
	}
	buf, err := msgpack.Marshal(struct {
		Version int               `msgpack:"version"`
		Entries map[string]string `msgpack:"entries"`
	}{Version: cacheVersion, Entries: c.entries})
	if err != nil {
		return err
	}
	if err := os.WriteFile(c.path, buf, 0o644); err != nil {
		return err
	}
	c.dirty = false
	return nil
}

// fingerprint derives the cache fingerprint of one artifact from
// everything its content depends on: the loaded schema, the emission
// settings and the feature being generated.
func fingerprint(r *Record, emit EmitConfig, feature string) (string, error) {
	var buf bytes.Buffer
	enc := msgpack.NewEncoder(&buf)
	// Schema carries a map, map keys must encode in a stable order.
	enc.SetSortMapKeys(true)
	err := enc.Encode(struct {
		Version int          `msgpack:"version"`
		Schema  *load.Schema `msgpack:"schema"`
		Suffix  string       `msgpack:"suffix"`
		Runtime string       `msgpack:"runtime"`
		Header  string       `msgpack:"header"`
		Feature string       `msgpack:"feature,omitempty"`
	}{
		Version: cacheVersion,
		Schema:  r.schema,
		Suffix:  emit.Suffix,
		Runtime: emit.RuntimePkg,
		Header:  r.Header,
		Feature: feature,
	})
	if err != nil {
		return "", err
	}
	sum := sha256.Sum256(buf.Bytes())
	return hex.EncodeToString(sum[:]), nil
}
