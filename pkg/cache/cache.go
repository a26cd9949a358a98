// Package cache stores rendered diagram artifacts so repeated renders of an
// unchanged tree skip Graphviz and rsvg-convert.
//
// # Backends
//
//   - [FileCache]: one JSON entry file per key under a local directory
//   - [RedisCache]: a shared Redis instance, for the HTTP server
//   - [NullCache]: stores nothing
//
// [Open] picks a backend from [Options]. Wrap any backend with
// [Instrument] to report hits, misses and writes to the registered
// observability cache hooks.
//
// # Keys
//
// Keys come from a [Keyer]. Diagram keys combine the output format with
// [DOTHash] of the Graphviz source, so any change to the tree or the render options
// produces a new key.
package cache

import (
	"context"
	"time"

	apperrors "github.com/matzehuels/foodtree/pkg/errors"
)

// Cache is a byte-oriented key-value store with optional expiry.
type Cache interface {
	// Get returns the stored value and true, or nil and false on a miss.
	Get(ctx context.Context, key string) ([]byte, bool, error)
	// Set stores data under key. A ttl of zero never expires.
	Set(ctx context.Context, key string, data []byte, ttl time.Duration) error
	// Delete removes key. Deleting a missing key is not an error.
	Delete(ctx context.Context, key string) error
	// Close releases backend resources.
	Close() error
}

// Backend names accepted by [Open].
const (
	BackendFile  = "file"
	BackendRedis = "redis"
	BackendNone  = "none"
)

// Options selects and configures a backend.
type Options struct {
	Backend  string
	Dir      string // file backend directory
	RedisURL string // redis backend URL, e.g. redis://localhost:6379/0
}

// Open creates the backend named by opts.Backend. An empty backend means
// [BackendFile].
func Open(ctx context.Context, opts Options) (Cache, error) {
	switch opts.Backend {
	case "", BackendFile:
		if opts.Dir == "" {
			return nil, apperrors.New(apperrors.ErrCodeInvalidInput, "file cache needs a directory")
		}
		return NewFileCache(opts.Dir)
	case BackendRedis:
		return NewRedisCache(ctx, opts.RedisURL)
	case BackendNone:
		return NewNullCache(), nil
	default:
		return nil, apperrors.New(apperrors.ErrCodeInvalidInput,
			"unknown cache backend %q (want %s, %s or %s)", opts.Backend, BackendFile, BackendRedis, BackendNone)
	}
}

// NullCache stores nothing: every Get misses. It backs --no-cache and the
// "none" backend.
type NullCache struct{}

// NewNullCache returns a [NullCache].
func NewNullCache() *NullCache { return &NullCache{} }

func (*NullCache) Get(context.Context, string) ([]byte, bool, error)        { return nil, false, nil }
func (*NullCache) Set(context.Context, string, []byte, time.Duration) error { return nil }
func (*NullCache) Delete(context.Context, string) error                     { return nil }
func (*NullCache) Close() error                                             { return nil }

var _ Cache = (*NullCache)(nil)

// Remember returns the value cached under key, or calls compute, stores its
// result with ttl and returns it. The boolean reports a cache hit. A failed
// cache read or write is treated as a miss and does not fail the call.
func Remember(ctx context.Context, c Cache, key string, ttl time.Duration, compute func() ([]byte, error)) ([]byte, bool, error) {
	if data, ok, err := c.Get(ctx, key); err == nil && ok {
		return data, true, nil
	}
	data, err := compute()
	if err != nil {
		return nil, false, err
	}
	_ = c.Set(ctx, key, data, ttl)
	return data, false, nil
}
