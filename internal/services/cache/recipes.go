package cache

import (
	"context"
	"encoding/json"
	"sync"
	"time"

	db "github.com/gmaschi/go-recipe-book-api/internal/services/datastore/postgresql/recipes/document"
	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"golang.org/x/sync/singleflight"
)

const DefaultTTL = 20 * time.Second

// loadTimeout bounds a shared load once it no longer follows any caller's
// cancellation.
const loadTimeout = 10 * time.Second

// Observer is notified of cache lookups. *metrics.Metrics satisfies it.
type Observer interface {
	CacheHit()
	CacheMiss()
	CacheError(operation string)
}

type nopObserver struct{}

func (nopObserver) CacheHit() {}
func (nopObserver) CacheMiss() {}
func (nopObserver) CacheError(string) {}

// Loader reads a recipe from the document store. A nil recipe means absent.
type Loader func(ctx context.Context) (*db.Recipe, error)

type Option func(*Recipes)

func WithTTL(ttl time.Duration) Option {
	return func(r *Recipes) {
		if ttl > 0 {
			r.ttl = ttl
		}
	}
}

func WithLogger(log zerolog.Logger) Option {
	return func(r *Recipes) {
		r.log = log
	}
}

func WithObserver(o Observer) Option {
	return func(r *Recipes) {
		if o != nil {
			r.observer = o
		}
	}
}

// Recipes is the cache-aside read path for recipes keyed by id.
//
// Backend failures never reach the caller: they are logged and the loader is
// used instead. With a nil backend every call goes to the loader.
type Recipes struct {
	backend  Cache
	ttl      time.Duration
	log      zerolog.Logger
	observer Observer
	group    singleflight.Group

	mu       sync.Mutex
	inflight map[string]*pendingLoad
}

// pendingLoad tracks a shared load that has not finished yet.
type pendingLoad struct {
	invalidated bool
}

func NewRecipes(backend Cache, opts ...Option) *Recipes {
	r := &Recipes{
		backend:  backend,
		ttl:      DefaultTTL,
		log:      zerolog.Nop(),
		observer: nopObserver{},
		inflight: make(map[string]*pendingLoad),
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// Key returns the cache key of a recipe.
func Key(id uuid.UUID) string {
	return "Recipe-" + id.String()
}

// GetOrLoad returns the cached recipe, or loads it and caches it for the
// configured TTL. Absent recipes are not cached. Concurrent misses on the same
// key share one loader call.
//
// The shared call keeps the values of the first caller's ctx but not its
// cancellation, so one caller going away does not fail the others. Each
// caller still returns as soon as its own ctx is done.
func (r *Recipes) GetOrLoad(ctx context.Context, id uuid.UUID, load Loader) (*db.Recipe, error) {
	if r.backend == nil {
		return load(ctx)
	}

	key := Key(id)
	if recipe, ok := r.lookup(ctx, key); ok {
		r.observer.CacheHit()
		return recipe, nil
	}
	r.observer.CacheMiss()

	ch := r.group.DoChan(key, func() (interface{}, error) {
		loadCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), loadTimeout)
		defer cancel()

		pending := r.begin(key)
		recipe, err := load(loadCtx)
		if err != nil || recipe == nil {
			r.finish(key, pending)
			return recipe, err
		}

		// An invalidation during the load means recipe may predate the write
		// that triggered it, so it must not outlive that invalidation.
		stored := false
		if !r.invalidated(pending) {
			r.store(loadCtx, key, recipe)
			stored = true
		}
		if r.finish(key, pending) && stored {
			r.drop(loadCtx, key)
		}
		return recipe, nil
	})

	var res singleflight.Result
	select {
	case res = <-ch:
	case <-ctx.Done():
		return nil, ctx.Err()
	}
	if res.Err != nil {
		return nil, res.Err
	}

	recipe, _ := res.Val.(*db.Recipe)
	if recipe == nil {
		return nil, nil
	}
	out := *recipe
	return &out, nil
}

// Invalidate drops the cached copy of a recipe. Loads already in flight for
// the recipe will not write their result back.
func (r *Recipes) Invalidate(ctx context.Context, id uuid.UUID) {
	if r.backend == nil {
		return
	}

	key := Key(id)
	r.mu.Lock()
	if pending, ok := r.inflight[key]; ok {
		pending.invalidated = true
	}
	r.mu.Unlock()

	r.drop(ctx, key)
}

func (r *Recipes) drop(ctx context.Context, key string) {
	if err := r.backend.Delete(ctx, key); err != nil {
		r.observer.CacheError("delete")
		r.log.Warn().Err(err).Str("key", key).Msg("cache invalidation failed")
	}
}

// begin registers a shared load of key. The group runs at most one per key.
func (r *Recipes) begin(key string) *pendingLoad {
	pending := &pendingLoad{}
	r.mu.Lock()
	r.inflight[key] = pending
	r.mu.Unlock()
	return pending
}

func (r *Recipes) invalidated(pending *pendingLoad) bool {
	r.mu.Lock()
	defer r.mu.Unlock()
	return pending.invalidated
}

// finish unregisters pending and reports whether key was invalidated while it
// ran.
func (r *Recipes) finish(key string, pending *pendingLoad) bool {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.inflight[key] == pending {
		delete(r.inflight, key)
	}
	return pending.invalidated
}

func (r *Recipes) lookup(ctx context.Context, key string) (*db.Recipe, bool) {
	data, found, err := r.backend.Get(ctx, key)
	if err != nil {
		r.observer.CacheError("get")
		r.log.Warn().Err(err).Str("key", key).Msg("cache read failed, falling back to store")
		return nil, false
	}
	if !found {
		return nil, false
	}

	var recipe db.Recipe
	if err := json.Unmarshal(data, &recipe); err != nil {
		r.observer.CacheError("decode")
		r.log.Warn().Err(err).Str("key", key).Msg("cached recipe is unreadable, falling back to store")
		return nil, false
	}
	return &recipe, true
}

func (r *Recipes) store(ctx context.Context, key string, recipe *db.Recipe) {
	data, err := json.Marshal(recipe)
	if err != nil {
		r.observer.CacheError("encode")
		r.log.Warn().Err(err).Str("key", key).Msg("cannot encode recipe for cache")
		return
	}
	if err := r.backend.Set(ctx, key, data, r.ttl); err != nil {
		r.observer.CacheError("set")
		r.log.Warn().Err(err).Str("key", key).Msg("cache write failed")
	}
}
