package driver

import (
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sync"

	"github.com/vmihailenco/msgpack/v5"

	"stylekit/internal/diag"
	"stylekit/internal/version"
)

// bump when cacheEntry changes shape
const cacheSchema = 2

// Key identifies a cached result.
type Key [sha256.Size]byte

func (k Key) String() string { return hex.EncodeToString(k[:]) }

// CacheKey hashes input together with the tool version and every option
// that affects output.
func CacheKey(input []byte, opts Options) Key {
	h := sha256.New()
	for _, part := range [][]byte{[]byte(version.Plain()), []byte(opts.fingerprint()), input} {
		h.Write(part)
		h.Write([]byte{0})
	}
	return Key(h.Sum(nil))
}

type cacheEntry struct {
	Schema   int               `msgpack:"schema"`
	Output   string            `msgpack:"output"`
	Prefixed int               `msgpack:"prefixed"`
	Warnings []diag.Diagnostic `msgpack:"warnings,omitempty"`
}

// DiskCache keeps processed output between runs, one msgpack file per
// key. Safe for concurrent use.
type DiskCache struct {
	mu   sync.RWMutex
	root string
}

// OpenDiskCache opens dir, or <user cache dir>/app when dir is empty.
func OpenDiskCache(app, dir string) (*DiskCache, error) {
	if dir == "" {
		base, err := os.UserCacheDir()
		if err != nil {
			return nil, fmt.Errorf("no cache directory: %w", err)
		}
		dir = filepath.Join(base, app)
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, err
	}
	return &DiskCache{root: dir}, nil
}

// entryPath fans entries out over 256 subdirectories.
func (c *DiskCache) entryPath(key Key) string {
	name := key.String()
	return filepath.Join(c.root, "out", name[:2], name+".mp")
}

// load fills res from the entry for key. Missing, unreadable and
// older-schema entries are all misses.
func (c *DiskCache) load(key Key, res *Result) bool {
	if c == nil {
		return false
	}
	c.mu.RLock()
	data, err := os.ReadFile(c.entryPath(key))
	c.mu.RUnlock()
	if err != nil {
		return false
	}
	var e cacheEntry
	if msgpack.Unmarshal(data, &e) != nil || e.Schema != cacheSchema {
		return false
	}
	res.Output = e.Output
	res.Prefixed = e.Prefixed
	res.Warnings = e.Warnings
	res.Cached = true
	return true
}

// store writes the entry for key through a temp file and a rename so
// readers never see a partial entry.
func (c *DiskCache) store(key Key, res Result) error {
	if c == nil {
		return nil
	}
	data, err := msgpack.Marshal(&cacheEntry{
		Schema:   cacheSchema,
		Output:   res.Output,
		Prefixed: res.Prefixed,
		Warnings: res.Warnings,
	})
	if err != nil {
		return err
	}
	dst := c.entryPath(key)

	c.mu.Lock()
	defer c.mu.Unlock()
	if err := os.MkdirAll(filepath.Dir(dst), 0o755); err != nil {
		return err
	}
	tmp, err := os.CreateTemp(filepath.Dir(dst), "tmp-*")
	if err != nil {
		return err
	}
	_, werr := tmp.Write(data)
	if err := errors.Join(werr, tmp.Close()); err != nil {
		_ = os.Remove(tmp.Name())
		return err
	}
	return os.Rename(tmp.Name(), dst)
}

// Clear removes every entry and returns how many there were.
func (c *DiskCache) Clear() (int, error) {
	if c == nil {
		return 0, nil
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	out := filepath.Join(c.root, "out")
	n := 0
	err := filepath.WalkDir(out, func(_ string, d fs.DirEntry, err error) error {
		if err == nil && !d.IsDir() {
			n++
		}
		return err
	})
	if err != nil && !errors.Is(err, fs.ErrNotExist) {
		return 0, err
	}
	return n, os.RemoveAll(out)
}
