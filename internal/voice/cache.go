package voice

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"log/slog"
	"strconv"
	"time"

	lru "github.com/hashicorp/golang-lru/v2"
	"github.com/redis/go-redis/v9"
	"golang.org/x/sync/singleflight"
)

// CacheKey derives the content-addressed fingerprint for one synthesis
// request. Callers must pass sanitized text so equivalent requests collide on
// the same entry. Same triple in, same key out.
func CacheKey(text string, lang Language, speed float64) string {
	h := sha256.New()
	fmt.Fprintf(h, "%s|%s|%s", text, lang, strconv.FormatFloat(speed, 'f', -1, 64))
	return "tts:" + hex.EncodeToString(h.Sum(nil))
}

// AudioCacheConfig bounds the cache tiers.
type AudioCacheConfig struct {
	MaxEntries int           // in-memory LRU bound; <= 0 picks the default
	RedisTTL   time.Duration // 0 keeps Redis entries indefinitely
}

// AudioCache stores synthesized audio by cache key. The in-memory LRU is the
// authoritative tier; a Redis client, when provided, acts as a best-effort
// write-through tier shared across processes. Entries are append-mostly: a
// key already holding audio is never overwritten with different bytes.
type AudioCache struct {
	entries *lru.Cache[string, []byte]
	flight  singleflight.Group
	rdb     *redis.Client
	ttl     time.Duration
}

// NewAudioCache creates an AudioCache. rdb may be nil.
func NewAudioCache(cfg AudioCacheConfig, rdb *redis.Client) (*AudioCache, error) {
	if cfg.MaxEntries <= 0 {
		cfg.MaxEntries = 512
	}
	entries, err := lru.New[string, []byte](cfg.MaxEntries)
	if err != nil {
		return nil, fmt.Errorf("create audio cache: %w", err)
	}
	return &AudioCache{entries: entries, rdb: rdb, ttl: cfg.RedisTTL}, nil
}

// Get returns the stored audio for key, consulting memory first and the
// Redis tier second. Never fails: tier errors degrade to a miss.
func (c *AudioCache) Get(ctx context.Context, key string) ([]byte, bool) {
	if audio, ok := c.entries.Get(key); ok {
		return audio, true
	}
	if c.rdb != nil {
		audio, err := c.rdb.Get(ctx, key).Bytes()
		switch {
		case err == nil && len(audio) > 0:
			c.entries.ContainsOrAdd(key, audio)
			return audio, true
		case err != nil && err != redis.Nil:
			slog.Warn("audio cache redis get failed", "error", err)
		}
	}
	return nil, false
}

// Put stores audio under key. A key that already holds an entry keeps it.
func (c *AudioCache) Put(ctx context.Context, key string, audio []byte) {
	c.entries.ContainsOrAdd(key, audio)
	if c.rdb != nil {
		if err := c.rdb.SetNX(ctx, key, audio, c.ttl).Err(); err != nil {
			slog.Warn("audio cache redis put failed", "error", err)
		}
	}
}

// Len reports the number of in-memory entries.
func (c *AudioCache) Len() int { return c.entries.Len() }

// SynthesizeFunc produces audio for a cache miss.
type SynthesizeFunc func(ctx context.Context) ([]byte, error)

// GetOrSynthesize returns the cached audio for key or synthesizes it, running
// fn at most once per key regardless of how many callers miss concurrently;
// late arrivals wait for the in-flight call and share its bytes. Synthesis
// runs on a context detached from any single caller, bounded by timeout, so
// one caller backing out does not cancel work other waiters share. When a
// shared flight fails, each participant retries once on its own.
func (c *AudioCache) GetOrSynthesize(ctx context.Context, key string, timeout time.Duration, fn SynthesizeFunc) ([]byte, bool, error) {
	if audio, ok := c.Get(ctx, key); ok {
		return audio, true, nil
	}

	ch := c.flight.DoChan(key, func() (interface{}, error) {
		synthCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), timeout)
		defer cancel()
		audio, err := fn(synthCtx)
		if err != nil {
			return nil, err
		}
		c.Put(synthCtx, key, audio)
		return audio, nil
	})

	select {
	case <-ctx.Done():
		return nil, false, ctx.Err()
	case res := <-ch:
		if res.Err != nil {
			if !res.Shared {
				return nil, false, res.Err
			}
			audio, err := fn(ctx)
			if err != nil {
				return nil, false, err
			}
			c.Put(ctx, key, audio)
			return audio, false, nil
		}
		return res.Val.([]byte), false, nil
	}
}
