// Package cache keeps generated fragments on disk between runs.
//
// Entries are keyed by a SHA-256 digest of everything that can change a
// fragment: the cache schema, a caller-provided salt (tool version and
// configuration), the type itself and its whole base chain.
package cache

import (
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sync"

	"github.com/vmihailenco/msgpack/v5"

	"lifecycle-generator/internal/gen"
	"lifecycle-generator/internal/lifecycle"
	"lifecycle-generator/internal/model"
)

// Current schema version - increment when the entry format changes.
const schemaVersion uint16 = 1

const appDir = "lifecycle-generator"

// Digest is a SHA-256 cache key.
type Digest [sha256.Size]byte

// DiskCache stores fragments as msgpack files. It implements gen.Cache and
// is safe for concurrent use.
type DiskCache struct {
	mu   sync.RWMutex
	dir  string
	salt string
}

// entry is the on-disk form of a fragment.
type entry struct {
	Schema   uint16
	Key      Digest
	Fragment *gen.Fragment
}

// keyInput is hashed to build a Digest.
type keyInput struct {
	Schema    uint16
	Salt      string
	Options   lifecycle.Options
	Hierarchy []*model.TypeSymbol
}

// DefaultDir returns the cache directory under the user cache directory.
func DefaultDir() (string, error) {
	base, err := os.UserCacheDir()
	if err != nil {
		return "", fmt.Errorf("locating user cache directory: %w", err)
	}

	return filepath.Join(base, appDir), nil
}

// Open creates the cache directory if needed. The salt is mixed into every
// key, so entries written with another salt are never read.
func Open(dir, salt string) (*DiskCache, error) {
	if dir == "" {
		d, err := DefaultDir()
		if err != nil {
			return nil, err
		}

		dir = d
	}

	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("creating cache directory: %w", err)
	}

	return &DiskCache{dir: dir, salt: salt}, nil
}

// Dir returns the cache directory.
func (c *DiskCache) Dir() string {
	return c.dir
}

// Key returns the digest of a type in the context of idx.
func (c *DiskCache) Key(idx *lifecycle.Index, lc *lifecycle.TypeLifecycle) (Digest, error) {
	in := keyInput{
		Schema:    schemaVersion,
		Salt:      c.salt,
		Options:   idx.Options,
		Hierarchy: []*model.TypeSymbol{lc.Owner},
	}

	for t := range idx.Graph.Ancestors(lc.Owner) {
		in.Hierarchy = append(in.Hierarchy, t)
	}

	data, err := msgpack.Marshal(&in)
	if err != nil {
		return Digest{}, fmt.Errorf("encoding cache key: %w", err)
	}

	return sha256.Sum256(data), nil
}

// Load returns the cached fragment of lc, if any. Unreadable entries are
// treated as misses.
func (c *DiskCache) Load(idx *lifecycle.Index, lc *lifecycle.TypeLifecycle) (*gen.Fragment, bool) {
	key, err := c.Key(idx, lc)
	if err != nil {
		return nil, false
	}

	e, ok, err := c.get(key)
	if err != nil || !ok {
		return nil, false
	}

	return e.Fragment, true
}

// Store writes the fragment of lc.
func (c *DiskCache) Store(idx *lifecycle.Index, lc *lifecycle.TypeLifecycle, f *gen.Fragment) error {
	key, err := c.Key(idx, lc)
	if err != nil {
		return err
	}

	return c.put(key, &entry{Schema: schemaVersion, Key: key, Fragment: f})
}

// Clear removes every entry.
func (c *DiskCache) Clear() error {
	c.mu.Lock()
	defer c.mu.Unlock()

	if err := os.RemoveAll(filepath.Join(c.dir, "fragments")); err != nil {
		return fmt.Errorf("clearing cache: %w", err)
	}

	return nil
}

func (c *DiskCache) pathFor(key Digest) string {
	return filepath.Join(c.dir, "fragments", hex.EncodeToString(key[:])+".mp")
}

func (c *DiskCache) put(key Digest, e *entry) (err error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	p := c.pathFor(key)
	if err := os.MkdirAll(filepath.Dir(p), 0o755); err != nil {
		return fmt.Errorf("creating cache directory: %w", err)
	}

	f, err := os.CreateTemp(filepath.Dir(p), "tmp-*")
	if err != nil {
		return fmt.Errorf("creating cache entry: %w", err)
	}

	defer func() {
		if err != nil {
			err = errors.Join(err, os.Remove(f.Name()))
		}
	}()

	if err := msgpack.NewEncoder(f).Encode(e); err != nil {
		return errors.Join(fmt.Errorf("encoding cache entry: %w", err), f.Close())
	}

	if err := f.Close(); err != nil {
		return fmt.Errorf("closing cache entry: %w", err)
	}

	// Atomic replace.
	if err := os.Rename(f.Name(), p); err != nil {
		return fmt.Errorf("writing cache entry: %w", err)
	}

	return nil
}

func (c *DiskCache) get(key Digest) (*entry, bool, error) {
	c.mu.RLock()
	defer c.mu.RUnlock()

	data, err := os.ReadFile(c.pathFor(key))
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, false, nil
		}

		return nil, false, fmt.Errorf("reading cache entry: %w", err)
	}

	var e entry
	if err := msgpack.Unmarshal(data, &e); err != nil {
		return nil, false, fmt.Errorf("decoding cache entry: %w", err)
	}

	if e.Schema != schemaVersion || e.Key != key || e.Fragment == nil {
		return nil, false, nil
	}

	return &e, true, nil
}
