// Package cache persists raw catalog response bodies on disk, keyed by request URL.
//
// Entries never expire. Every failure is reported as a miss (reads) or logged and
// dropped (writes), so a broken cache directory only costs network round trips.
package cache

import (
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"errors"
	"io/fs"
	"os"
	"path/filepath"

	"icons8dl/pkg/logger"
)

// DirName is the cache directory created under the OS temp dir
const DirName = "icons8"

// Cache is a directory of <sha256(url)>.json files
type Cache struct {
	dir    string
	logger logger.Logger
}

// DefaultDir returns <os temp dir>/icons8
func DefaultDir() string {
	return filepath.Join(os.TempDir(), DirName)
}

// New creates a Cache rooted at dir. The directory is created lazily on first write.
func New(dir string, log logger.Logger) *Cache {
	if dir == "" {
		dir = DefaultDir()
	}
	return &Cache{dir: dir, logger: logger.OrNop(log)}
}

// Dir returns the cache root
func (c *Cache) Dir() string {
	return c.dir
}

// Key returns the hex SHA-256 of the fully qualified URL
func Key(url string) string {
	sum := sha256.Sum256([]byte(url))
	return hex.EncodeToString(sum[:])
}

// Path returns the entry file for url
func (c *Cache) Path(url string) string {
	return filepath.Join(c.dir, Key(url)+".json")
}

// Read returns the stored body for url.
// A missing entry is a silent miss; an unreadable or non-JSON entry is logged and treated as a miss.
func (c *Cache) Read(url string) ([]byte, bool) {
	path := c.Path(url)
	data, err := os.ReadFile(path)
	if err != nil {
		if !errors.Is(err, fs.ErrNotExist) {
			c.logger.WarnWithFields("Failed to read cache entry", map[string]interface{}{
				"path":  path,
				"error": err.Error(),
			})
		}
		return nil, false
	}

	if !json.Valid(data) {
		c.logger.WarnWithFields("Ignoring corrupt cache entry", map[string]interface{}{
			"path": path,
			"size": len(data),
		})
		return nil, false
	}

	c.logger.DebugWithFields("Cache hit", map[string]interface{}{"url": url})
	return data, true
}

// Write stores body for url, replacing any existing entry atomically.
// Failures are logged and otherwise ignored.
func (c *Cache) Write(url string, body []byte) {
	if err := c.write(url, body); err != nil {
		c.logger.WarnWithFields("Failed to write cache entry", map[string]interface{}{
			"url":   url,
			"error": err.Error(),
		})
	}
}

func (c *Cache) write(url string, body []byte) error {
	if err := os.MkdirAll(c.dir, 0755); err != nil {
		return err
	}

	tmp, err := os.CreateTemp(c.dir, ".entry-*.tmp")
	if err != nil {
		return err
	}
	tmpName := tmp.Name()

	if _, err := tmp.Write(body); err != nil {
		tmp.Close()
		os.Remove(tmpName)
		return err
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmpName)
		return err
	}

	if err := os.Rename(tmpName, c.Path(url)); err != nil {
		os.Remove(tmpName)
		return err
	}
	return nil
}
