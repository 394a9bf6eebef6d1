// Package cache tracks source file hashes so the --watch CLI loop only
// re-parses and re-renders a document when its bytes actually changed,
// rather than on every filesystem event fsnotify reports.
package cache

import (
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
)

// Cache stores file hashes for incremental re-evaluation.
type Cache struct {
	Hashes map[string]string `json:"hashes"`
	path   string
}

// New creates an empty cache that will persist to cachePath.
func New(cachePath string) *Cache {
	return &Cache{
		Hashes: make(map[string]string),
		path:   cachePath,
	}
}

// Load reads a cache previously saved to cachePath. A missing file is not
// an error: it just yields an empty cache.
func Load(cachePath string) (*Cache, error) {
	c := New(cachePath)

	data, err := os.ReadFile(cachePath)
	if err != nil {
		if os.IsNotExist(err) {
			return c, nil
		}
		return nil, fmt.Errorf("failed to read cache: %w", err)
	}

	if err := json.Unmarshal(data, &c.Hashes); err != nil {
		return nil, fmt.Errorf("failed to parse cache: %w", err)
	}

	return c, nil
}

// Save persists the cache to disk, creating its parent directory if needed.
func (c *Cache) Save() error {
	dir := filepath.Dir(c.path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("failed to create cache directory: %w", err)
	}

	data, err := json.MarshalIndent(c.Hashes, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal cache: %w", err)
	}

	if err := os.WriteFile(c.path, data, 0644); err != nil {
		return fmt.Errorf("failed to write cache: %w", err)
	}

	return nil
}

// Changed reports whether srcPath's contents differ from what was last
// recorded, updating the recorded hash as a side effect so a second call
// with unchanged contents reports false.
func (c *Cache) Changed(srcPath string) (bool, error) {
	data, err := os.ReadFile(srcPath)
	if err != nil {
		return true, err
	}

	hash := sha256.Sum256(data)
	currentHash := hex.EncodeToString(hash[:])

	cached, exists := c.Hashes[srcPath]
	if !exists || cached != currentHash {
		c.Hashes[srcPath] = currentHash
		return true, nil
	}

	return false, nil
}

// Forget removes a path from the cache, forcing the next Changed call for
// it to report true regardless of content.
func (c *Cache) Forget(srcPath string) {
	delete(c.Hashes, srcPath)
}
