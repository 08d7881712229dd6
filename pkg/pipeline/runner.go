package pipeline

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/charmbracelet/log"

	"github.com/gduarte0/program2mass/pkg/cache"
	"github.com/gduarte0/program2mass/pkg/observability"
	"github.com/gduarte0/program2mass/pkg/optimize"
	"github.com/gduarte0/program2mass/pkg/room"
)

// Runner encapsulates pipeline execution with caching.
// Both CLI and API use this to avoid duplicating caching logic.
//
// The Runner is stateless except for the cache and logger - it doesn't
// store pipeline results. Multiple goroutines can safely use the same
// Runner with different options.
type Runner struct {
	Cache  cache.Cache
	Keyer  cache.Keyer
	Logger *log.Logger
}

// NewRunner creates a runner with the given cache and keyer.
// If keyer is nil, a DefaultKeyer is used.
// If cache is nil, a NullCache is used (caching disabled).
func NewRunner(c cache.Cache, keyer cache.Keyer, logger *log.Logger) *Runner {
	if keyer == nil {
		keyer = cache.NewDefaultKeyer()
	}
	if c == nil {
		c = cache.NewNullCache()
	}
	if logger == nil {
		logger = log.Default()
	}
	return &Runner{
		Cache:  c,
		Keyer:  keyer,
		Logger: logger,
	}
}

// Execute runs the complete pipeline with caching. Cache failures are
// logged and otherwise ignored.
func (r *Runner) Execute(ctx context.Context, reqs []room.Request, opts Options) (*Result, error) {
	r.applyLogger(&opts)
	if err := opts.ValidateAndSetDefaults(); err != nil {
		return nil, fmt.Errorf("invalid options: %w", err)
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	hash := ProgramHash(reqs)
	key := r.Keyer.ResultKey(hash, opts.ResultKeyOpts())
	if !opts.Refresh {
		if res, ok := r.cachedResult(ctx, key); ok {
			r.Logger.Info("loaded result from cache", "strategy", res.Strategy, "rooms", len(res.Rooms))
			return res, nil
		}
	}

	hooks := observability.Pipeline()
	hooks.OnSolveStart(ctx, opts.Strategy, len(reqs))
	start := time.Now()

	onPass := opts.OnPass
	opts.OnPass = func(p optimize.PassReport) {
		hooks.OnPass(ctx, opts.Strategy, p.Pass, p.Changed)
		if onPass != nil {
			onPass(p)
		}
	}

	var search *optimize.ModuleSearchResult
	if opts.Strategy == StrategyModule && opts.Module == 0 {
		s, _, err := r.SearchModule(ctx, reqs, opts)
		if err != nil {
			hooks.OnSolveComplete(ctx, opts.Strategy, 0, time.Since(start), err)
			return nil, err
		}
		search = &s
	}

	res, err := solve(reqs, opts, search)
	if err != nil {
		hooks.OnSolveComplete(ctx, opts.Strategy, 0, time.Since(start), err)
		return nil, err
	}
	hooks.OnSolveComplete(ctx, opts.Strategy, len(res.Rooms), time.Since(start), nil)

	r.store(ctx, "result", key, res, cache.TTLResult)
	return res, nil
}

// SearchModule runs the module sweep with caching and reports whether the
// result came from the cache.
func (r *Runner) SearchModule(ctx context.Context, reqs []room.Request, opts Options) (optimize.ModuleSearchResult, bool, error) {
	r.applyLogger(&opts)
	if err := opts.ValidateAndSetDefaults(); err != nil {
		return optimize.ModuleSearchResult{}, false, fmt.Errorf("invalid options: %w", err)
	}

	key := r.Keyer.ModuleKey(ProgramHash(reqs), opts.ModuleKeyOpts())
	if !opts.Refresh {
		if data, hit, err := r.Cache.Get(ctx, key); err == nil && hit {
			var s optimize.ModuleSearchResult
			if json.Unmarshal(data, &s) == nil {
				observability.Cache().OnCacheHit(ctx, "module")
				return s, true, nil
			}
		}
		observability.Cache().OnCacheMiss(ctx, "module")
	}

	start := time.Now()
	s, err := SearchModule(reqs, opts)
	if err != nil {
		return s, false, err
	}
	r.Logger.Info("searched modules",
		"module", s.Module,
		"viable", s.Viable,
		"evaluated", s.Evaluated,
		"fallback", s.Fallback,
		"duration", time.Since(start))

	r.store(ctx, "module", key, s, cache.TTLModule)
	return s, false, nil
}

func (r *Runner) cachedResult(ctx context.Context, key string) (*Result, bool) {
	data, hit, err := r.Cache.Get(ctx, key)
	if err != nil {
		r.Logger.Warn("cache read failed", "err", err)
	}
	if err != nil || !hit {
		observability.Cache().OnCacheMiss(ctx, "result")
		return nil, false
	}
	var res Result
	if err := json.Unmarshal(data, &res); err != nil {
		observability.Cache().OnCacheMiss(ctx, "result")
		return nil, false
	}
	res.CacheHit = true
	observability.Cache().OnCacheHit(ctx, "result")
	return &res, true
}

func (r *Runner) store(ctx context.Context, keyType, key string, v any, ttl time.Duration) {
	data, err := json.Marshal(v)
	if err != nil {
		return
	}
	if err := r.Cache.Set(ctx, key, data, ttl); err != nil {
		r.Logger.Warn("cache write failed", "key", keyType, "err", err)
		return
	}
	observability.Cache().OnCacheSet(ctx, keyType, len(data))
}

// Close releases resources held by the runner (primarily the cache).
func (r *Runner) Close() error {
	if r.Cache != nil {
		return r.Cache.Close()
	}
	return nil
}

// applyLogger sets the runner's logger on options if not already set.
func (r *Runner) applyLogger(opts *Options) {
	if opts.Logger == nil {
		opts.Logger = r.Logger
	}
}
