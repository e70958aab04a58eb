package assets

import (
	"log/slog"
	"strconv"
	"sync"
	"sync/atomic"

	"golang.org/x/sync/singleflight"
)

// Resolver resolves image paths to EncodedAssets through a Store, caching
// every result (missing included) by path. It is safe for concurrent use.
type Resolver struct {
	store  Store
	logger *slog.Logger

	mu    sync.RWMutex
	cache map[string]EncodedAsset
	gen   uint64 // bumped by Reset and Forget; guarded by mu
	group singleflight.Group

	hits  atomic.Int64
	reads atomic.Int64
}

// ResolverOption configures a Resolver.
type ResolverOption func(*Resolver)

// WithLogger sets the logger used for unavailable-asset diagnostics.
func WithLogger(l *slog.Logger) ResolverOption {
	return func(r *Resolver) {
		if l != nil {
			r.logger = l
		}
	}
}

// NewResolver creates a Resolver reading from store.
func NewResolver(store Store, opts ...ResolverOption) *Resolver {
	r := &Resolver{
		store:  store,
		logger: slog.New(slog.DiscardHandler),
		cache:  make(map[string]EncodedAsset),
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// Resolve returns the EncodedAsset for path. A cached result is returned
// without touching the store. Failures of any kind yield a missing asset,
// which is cached as well. The empty path is always missing.
func (r *Resolver) Resolve(path string) EncodedAsset {
	if path == "" {
		return MissingAsset(path)
	}

	a, gen, ok := r.lookup(path)
	if ok {
		r.hits.Add(1)
		return a
	}

	// Flights are keyed per generation so a read started before Reset is
	// never shared with, or stored for, the session that follows it.
	key := strconv.FormatUint(gen, 10) + ":" + path
	v, _, _ := r.group.Do(key, func() (any, error) {
		// A flight that finished between lookup and Do already stored it.
		if a, _, ok := r.lookup(path); ok {
			return a, nil
		}
		a := r.load(path)

		r.mu.Lock()
		if r.gen == gen {
			r.cache[path] = a
		}
		r.mu.Unlock()
		return a, nil
	})
	return v.(EncodedAsset)
}

// Reset drops every cached entry, starting a new rendering session.
func (r *Resolver) Reset() {
	r.mu.Lock()
	r.cache = make(map[string]EncodedAsset)
	r.gen++
	r.mu.Unlock()
}

// Forget drops the cached entries for the given paths.
func (r *Resolver) Forget(paths ...string) {
	r.mu.Lock()
	for _, p := range paths {
		delete(r.cache, p)
	}
	r.gen++
	r.mu.Unlock()
}

// ResolverStats reports cache activity.
type ResolverStats struct {
	Hits    int64 // lookups served from the cache
	Reads   int64 // store reads performed
	Entries int   // cached paths
}

// Stats returns a snapshot of cache activity.
func (r *Resolver) Stats() ResolverStats {
	r.mu.RLock()
	n := len(r.cache)
	r.mu.RUnlock()
	return ResolverStats{Hits: r.hits.Load(), Reads: r.reads.Load(), Entries: n}
}

// lookup returns the cached entry for path and the current generation.
func (r *Resolver) lookup(path string) (EncodedAsset, uint64, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	a, ok := r.cache[path]
	return a, r.gen, ok
}

func (r *Resolver) load(path string) EncodedAsset {
	r.reads.Add(1)
	content, err := r.store.Read(path)
	if err != nil {
		r.logger.Debug("asset unavailable, using fallback", "path", path, "error", err)
		return MissingAsset(path)
	}
	r.logger.Debug("asset inlined", "path", path, "bytes", len(content))
	return Encode(path, content)
}
