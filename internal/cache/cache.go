// Package cache stores model responses keyed by a hash of their input.
package cache

import (
	"crypto/sha256"
	"encoding/hex"
	"time"

	"github.com/hawk-wild/GEN-AI-video-generation/internal/model"
)

// keyPrefix versions every key; bump it when a cached payload changes shape
const keyPrefix = "chronicle_v1_"

// Cache defines the interface for caching
type Cache interface {
	Get(key string) ([]byte, bool)
	Set(key string, value []byte, ttl time.Duration) error
	Delete(key string) error
	Clear() error
}

// Key derives a cache key for namespace from parts. Parts are
// length-prefixed so that ("ab", "c") and ("a", "bc") differ.
func Key(namespace string, parts ...string) string {
	h := sha256.New()
	var size [8]byte
	for _, p := range parts {
		n := uint64(len(p))
		for i := range size {
			size[i] = byte(n >> (8 * i))
		}
		h.Write(size[:])
		h.Write([]byte(p))
	}
	return keyPrefix + namespace + "_" + hex.EncodeToString(h.Sum(nil))
}

// New builds the cache described by cfg: memory over disk, or a no-op
// cache when caching is disabled
func New(cfg model.CacheConfig) Cache {
	if !cfg.Enabled {
		return Nop{}
	}
	if cfg.Dir == "" {
		return NewMemoryCache(cfg.MemoryTTL, 10*time.Minute)
	}
	return NewLayeredCache(cfg.MemoryTTL, cfg.Dir, cfg.DiskTTL)
}

// Nop never stores anything
type Nop struct{}

func (Nop) Get(string) ([]byte, bool) { return nil, false }

func (Nop) Set(string, []byte, time.Duration) error { return nil }

func (Nop) Delete(string) error { return nil }

func (Nop) Clear() error { return nil }
