package runner

import (
	"encoding/binary"
	"encoding/hex"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sync"

	"fortio.org/safecast"
	"github.com/leapstack-labs/jslint/pkg/lint"
	"github.com/vmihailenco/msgpack/v5"
	"github.com/zeebo/xxh3"
)

// Current schema version - increment when cacheEntry format changes
const cacheSchemaVersion uint16 = 1

// Cache stores lint results on disk, keyed by a hash of the linter
// fingerprint, the file path and the file content. Safe for concurrent use.
type Cache struct {
	mu          sync.RWMutex
	dir         string
	fingerprint string
}

type cacheEntry struct {
	Schema      uint16
	Diagnostics []lint.Diagnostic
	Suppressed  []lint.Diagnostic
}

// OpenCache creates the cache directory if needed. fingerprint must change
// whenever the same source could lint differently: the rule set, the
// markers, the globals or the binary version.
func OpenCache(dir, fingerprint string) (*Cache, error) {
	if err := os.MkdirAll(dir, 0o750); err != nil {
		return nil, fmt.Errorf("failed to create cache directory: %w", err)
	}
	return &Cache{dir: dir, fingerprint: fingerprint}, nil
}

// Key returns the cache key of a file.
func (c *Cache) Key(path string, src []byte) (string, error) {
	h := xxh3.New()
	for _, part := range [][]byte{[]byte(c.fingerprint), []byte(path), src} {
		n, err := safecast.Conv[uint64](len(part))
		if err != nil {
			return "", err
		}
		_, _ = h.Write(binary.LittleEndian.AppendUint64(nil, n))
		_, _ = h.Write(part)
	}
	sum := h.Sum128().Bytes()
	return hex.EncodeToString(sum[:]), nil
}

func (c *Cache) pathFor(key string) string {
	return filepath.Join(c.dir, key[:2], key+".mp")
}

// Put writes the result of key.
func (c *Cache) Put(key string, res *lint.Result) error {
	if c == nil {
		return nil
	}
	c.mu.Lock()
	defer c.mu.Unlock()

	p := c.pathFor(key)
	if err := os.MkdirAll(filepath.Dir(p), 0o750); err != nil {
		return err
	}
	f, err := os.CreateTemp(filepath.Dir(p), "tmp-*")
	if err != nil {
		return err
	}
	defer func() { _ = os.Remove(f.Name()) }()

	entry := cacheEntry{
		Schema:      cacheSchemaVersion,
		Diagnostics: res.Diagnostics,
		Suppressed:  res.Suppressed,
	}
	if err := msgpack.NewEncoder(f).Encode(&entry); err != nil {
		_ = f.Close()
		return err
	}
	if err := f.Close(); err != nil {
		return err
	}
	// Atomic replace
	return os.Rename(f.Name(), p)
}

// Get reads the result of key. A missing or outdated entry is a miss.
func (c *Cache) Get(key string) (*lint.Result, bool, error) {
	if c == nil {
		return nil, false, nil
	}
	c.mu.RLock()
	defer c.mu.RUnlock()

	f, err := os.Open(c.pathFor(key))
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, false, nil
		}
		return nil, false, err
	}
	defer func() { _ = f.Close() }()

	var entry cacheEntry
	if err := msgpack.NewDecoder(f).Decode(&entry); err != nil {
		return nil, false, err
	}
	if entry.Schema != cacheSchemaVersion {
		return nil, false, nil
	}
	return &lint.Result{Diagnostics: entry.Diagnostics, Suppressed: entry.Suppressed}, true, nil
}

// Clear removes every entry.
func (c *Cache) Clear() error {
	if c == nil {
		return nil
	}
	c.mu.Lock()
	defer c.mu.Unlock()

	if err := os.RemoveAll(c.dir); err != nil {
		return err
	}
	return os.MkdirAll(c.dir, 0o750)
}
