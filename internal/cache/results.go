package cache

import (
	"log/slog"
	"time"

	"github.com/vmihailenco/msgpack/v5"

	"github.com/leapstack-labs/leapmark/pkg/lint"
)

// ResultCache stores lint results on top of a byte cache.
type ResultCache struct {
	store  Cache
	ttl    time.Duration
	logger *slog.Logger
}

// NewResultCache wraps store. Entries live for ttl; zero leaves expiry to
// the store's default.
func NewResultCache(store Cache, ttl time.Duration, logger *slog.Logger) *ResultCache {
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	return &ResultCache{store: store, ttl: ttl, logger: logger}
}

// Get returns the cached results for key. A corrupt entry counts as a miss
// and is dropped.
func (c *ResultCache) Get(key string) ([]lint.Result, bool) {
	if c == nil {
		return nil, false
	}
	data, ok := c.store.Get(key)
	if !ok {
		return nil, false
	}
	var results []lint.Result
	if err := msgpack.Unmarshal(data, &results); err != nil {
		c.logger.Debug("dropping corrupt cache entry", "key", key, "err", err)
		_ = c.store.Delete(key)
		return nil, false
	}
	return results, true
}

// Put stores results under key. Failures are logged at debug level.
func (c *ResultCache) Put(key string, results []lint.Result) {
	if c == nil {
		return
	}
	if results == nil {
		results = []lint.Result{}
	}
	data, err := msgpack.Marshal(results)
	if err != nil {
		c.logger.Debug("encoding cache entry", "key", key, "err", err)
		return
	}
	if err := c.store.Set(key, data, c.ttl); err != nil {
		c.logger.Debug("writing cache entry", "key", key, "err", err)
	}
}
