// Package tokencache keeps pre-tokenized story content on disk so the reader
// only runs the markdown tokenizer for content it has not seen.
package tokencache

import (
	"crypto/sha1"
	"encoding/hex"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/csheth/akesi/internal/tokenize"
)

const (
	// EnvDir overrides the cache directory.
	EnvDir        = "AKESI_CACHE_DIR"
	cacheSubdir   = "akesi/tokens"
	partialSuffix = ".part"
	entrySuffix   = ".json"
	// DefaultTTL bounds how long an entry is trusted. Dictionary updates
	// change tokenization, so entries are not kept forever.
	DefaultTTL = 7 * 24 * time.Hour
	// keyVersion is mixed into every key; bump it when the token format
	// changes.
	keyVersion = "v1"
)

// Cache is a directory of tokenized content keyed by content hash.
type Cache struct {
	dir string
	ttl time.Duration
	now func() time.Time
}

type entry struct {
	Key      string           `json:"key"`
	CachedAt time.Time        `json:"cachedAt"`
	Tokens   []tokenize.Token `json:"tokens"`
}

// Open returns a cache rooted at dir, creating it when needed. An empty dir
// uses EnvDir and then the user cache directory. A ttl of zero uses
// DefaultTTL.
func Open(dir string, ttl time.Duration) (*Cache, error) {
	if dir == "" {
		dir = os.Getenv(EnvDir)
	}
	if dir == "" {
		base, err := os.UserCacheDir()
		if err != nil {
			base = filepath.Join(os.TempDir(), "akesi-cache")
		}
		dir = filepath.Join(base, cacheSubdir)
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("tokencache: create %s: %w", dir, err)
	}
	if ttl <= 0 {
		ttl = DefaultTTL
	}
	return &Cache{dir: dir, ttl: ttl, now: time.Now}, nil
}

// Dir is the directory entries are written to.
func (c *Cache) Dir() string {
	return c.dir
}

// Get returns the tokens cached for content. Missing, stale and unreadable
// entries are all misses.
func (c *Cache) Get(content string) ([]tokenize.Token, bool) {
	key := Key(content)
	data, err := os.ReadFile(c.pathFor(key))
	if err != nil {
		return nil, false
	}
	var e entry
	if err := json.Unmarshal(data, &e); err != nil {
		return nil, false
	}
	if e.Key != key || c.now().Sub(e.CachedAt) > c.ttl {
		return nil, false
	}
	return e.Tokens, true
}

// Put stores tokens for content. The entry is written to a partial file and
// renamed into place, so readers never see half an entry.
func (c *Cache) Put(content string, tokens []tokenize.Token) error {
	key := Key(content)
	data, err := json.Marshal(entry{Key: key, CachedAt: c.now().UTC(), Tokens: tokens})
	if err != nil {
		return fmt.Errorf("tokencache: encode: %w", err)
	}
	path := c.pathFor(key)
	partial := path + partialSuffix
	if err := os.WriteFile(partial, data, 0o644); err != nil {
		return fmt.Errorf("tokencache: write: %w", err)
	}
	if err := os.Rename(partial, path); err != nil {
		_ = os.Remove(partial)
		return fmt.Errorf("tokencache: commit: %w", err)
	}
	return nil
}

// Prune removes stale entries and leftover partial files. It returns how many
// files were removed.
func (c *Cache) Prune() (int, error) {
	files, err := os.ReadDir(c.dir)
	if err != nil {
		return 0, fmt.Errorf("tokencache: list: %w", err)
	}
	removed := 0
	var errs []error
	for _, f := range files {
		if f.IsDir() {
			continue
		}
		info, err := f.Info()
		if err != nil {
			continue
		}
		stale := filepath.Ext(f.Name()) == partialSuffix || c.now().Sub(info.ModTime()) > c.ttl
		if !stale {
			continue
		}
		if err := os.Remove(filepath.Join(c.dir, f.Name())); err != nil {
			errs = append(errs, err)
			continue
		}
		removed++
	}
	return removed, errors.Join(errs...)
}

func (c *Cache) pathFor(key string) string {
	return filepath.Join(c.dir, key+entrySuffix)
}

// Key is the cache key of content.
func Key(content string) string {
	sum := sha1.Sum([]byte(keyVersion + "\x00" + content))
	return hex.EncodeToString(sum[:])
}
