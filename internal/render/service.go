package render

import (
	"context"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"golang.org/x/sync/singleflight"

	"github.com/odyssey-erp/svgchart/internal/chart"
)

// Recorder receives render outcomes.
type Recorder interface {
	ObserveRender(kind, cache string, elapsed time.Duration)
	RenderFailed(kind string)
}

// Result is a rendered chart.
type Result struct {
	ID     uuid.UUID
	Kind   chart.Kind
	Markup string
	// Cached reports that the markup came from Redis.
	Cached bool
	// Shared reports that the markup was computed for a concurrent caller.
	Shared bool
}

// ETag returns the strong entity tag of the chart.
func (r Result) ETag() string {
	return `"` + r.ID.String() + `"`
}

// Service renders charts through the cache.
type Service struct {
	cache   *Cache
	metrics Recorder
	logger  *slog.Logger
	flight  singleflight.Group
}

// NewService wires a Cache with optional metrics and logger.
func NewService(cache *Cache, metrics Recorder, logger *slog.Logger) *Service {
	if logger == nil {
		logger = slog.Default()
	}
	return &Service{cache: cache, metrics: metrics, logger: logger}
}

type flightResult struct {
	markup string
	cached bool
}

// Render validates req and returns its markup, from the cache when present.
// Invalid requests fail before Redis is touched. Cache faults are logged and
// the chart is rendered directly.
func (s *Service) Render(ctx context.Context, req Request) (Result, error) {
	start := time.Now()
	kind := string(req.Kind)
	if err := chart.Validate(req.Kind, req.Data, req.Options); err != nil {
		s.failed(kind)
		return Result{}, err
	}
	id, err := ChartID(req)
	if err != nil {
		s.failed(kind)
		return Result{}, err
	}

	key, err := s.cache.BuildKey(ctx, "svgchart", "render", kind, id.String())
	useCache := true
	if err != nil {
		s.logger.Warn("render cache key", slog.String("kind", kind), slog.Any("error", err))
		key = "uncached:" + kind + ":" + id.String()
		useCache = false
	}

	val, err, shared := share(ctx, &s.flight, key, func(ctx context.Context) (interface{}, error) {
		return s.load(ctx, key, useCache, req)
	})
	if err != nil {
		s.failed(kind)
		return Result{}, err
	}
	res := val.(flightResult)

	state := "miss"
	if res.cached {
		state = "hit"
	}
	if s.metrics != nil {
		s.metrics.ObserveRender(kind, state, time.Since(start))
	}
	return Result{
		ID:     id,
		Kind:   req.Kind,
		Markup: res.markup,
		Cached: res.cached,
		Shared: shared,
	}, nil
}

func (s *Service) load(ctx context.Context, key string, useCache bool, req Request) (flightResult, error) {
	if useCache {
		markup, hit, err := s.cache.Get(ctx, key)
		switch {
		case err != nil:
			s.logger.Warn("render cache get", slog.String("key", key), slog.Any("error", err))
			useCache = false
		case hit:
			return flightResult{markup: markup, cached: true}, nil
		}
	}

	markup, err := chart.Render(req.Kind, req.Data, req.Options)
	if err != nil {
		return flightResult{}, err
	}
	if useCache {
		if err := s.cache.Set(ctx, key, markup); err != nil {
			s.logger.Warn("render cache set", slog.String("key", key), slog.Any("error", err))
		}
	}
	return flightResult{markup: markup}, nil
}

// Invalidate drops every cached chart and returns the new cache version.
func (s *Service) Invalidate(ctx context.Context) (int64, error) {
	ver, err := s.cache.Bump(ctx)
	if err != nil {
		return 0, err
	}
	s.logger.Info("render cache invalidated", slog.Int64("version", ver))
	return ver, nil
}

func (s *Service) failed(kind string) {
	if s.metrics != nil {
		s.metrics.RenderFailed(kind)
	}
}
