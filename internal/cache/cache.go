// Package cache stores summarization results on disk so repeated
// requests for the same content skip the provider call.
package cache

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"os"
	"path/filepath"
	"time"
)

// SummaryCache stores provider responses keyed by a digest of the
// provider, model, context label, and content. An empty Dir disables
// caching entirely.
type SummaryCache struct {
	Dir string
	// MaxAge, when positive, treats entries older than it as misses and
	// removes them on access.
	MaxAge time.Duration
}

// Key builds a cache key. The context label is part of the key because
// the same content summarized under a different goal yields a different
// summary.
func Key(provider, model, contextLabel, content string) string {
	h := sha256.Sum256([]byte(provider + "\n" + model + "\n" + contextLabel + "\n\n" + content))
	return hex.EncodeToString(h[:])
}

func (c *SummaryCache) enabled() bool { return c != nil && c.Dir != "" }

func (c *SummaryCache) ensureDir() error {
	if !c.enabled() {
		return errors.New("cache dir not configured")
	}
	return os.MkdirAll(c.Dir, 0o755)
}

func (c *SummaryCache) pathFor(key string) string {
	return filepath.Join(c.Dir, key+".json")
}

// Get returns cached bytes if present and fresh. Absence or staleness is
// not an error.
func (c *SummaryCache) Get(_ context.Context, key string) ([]byte, bool, error) {
	if !c.enabled() {
		return nil, false, nil
	}
	p := c.pathFor(key)
	info, err := os.Stat(p)
	if err != nil {
		return nil, false, nil
	}
	if c.MaxAge > 0 && time.Since(info.ModTime()) > c.MaxAge {
		_ = os.Remove(p)
		return nil, false, nil
	}
	b, err := os.ReadFile(p)
	if err != nil {
		return nil, false, nil
	}
	return b, true, nil
}

// Save writes bytes to cache. A write failure is returned so callers can
// log it; it never blocks serving the response.
func (c *SummaryCache) Save(_ context.Context, key string, data []byte) error {
	if !c.enabled() {
		return nil
	}
	if err := c.ensureDir(); err != nil {
		return err
	}
	return os.WriteFile(c.pathFor(key), data, 0o644)
}
