// Package cache stores lint results keyed by the content and configuration
// that produced them, so watch mode can skip unchanged files.
package cache

import (
	"crypto/sha256"
	"encoding/hex"
	"time"
)

// Cache defines the byte-level store under ResultCache.
type Cache interface {
	Get(key string) ([]byte, bool)
	Set(key string, value []byte, ttl time.Duration) error
	Delete(key string) error
	Clear() error
}

// Key derives a cache key from the parts that determine a lint outcome:
// the source, the dialect and a fingerprint of the configuration.
func Key(parts ...string) string {
	h := sha256.New()
	for _, p := range parts {
		// length prefix keeps ("ab","c") and ("a","bc") apart
		h.Write([]byte{byte(len(p) >> 24), byte(len(p) >> 16), byte(len(p) >> 8), byte(len(p))})
		h.Write([]byte(p))
	}
	return "leapmark:v1:" + hex.EncodeToString(h.Sum(nil))
}
