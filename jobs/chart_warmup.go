package jobs

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/hibiken/asynq"

	"github.com/odyssey-erp/svgchart/internal/chart"
	jobmetrics "github.com/odyssey-erp/svgchart/internal/jobs"
	"github.com/odyssey-erp/svgchart/internal/render"
)

var defaultJobMetrics = jobmetrics.NewMetrics(nil)

const warmupTimeout = 20 * time.Second

// Renderer is the render service used by the warmup job.
type Renderer interface {
	Render(ctx context.Context, req render.Request) (render.Result, error)
}

// ChartWarmupJob renders queued charts so that their first request is a
// cache hit.
type ChartWarmupJob struct {
	Renderer Renderer
	Logger   *slog.Logger
	Metrics  *jobmetrics.Metrics
}

// NewChartWarmupJob wires dependencies for the warmup handler.
func NewChartWarmupJob(renderer Renderer, logger *slog.Logger, metrics *jobmetrics.Metrics) *ChartWarmupJob {
	return &ChartWarmupJob{Renderer: renderer, Logger: logger, Metrics: metrics}
}

// Handle processes chart warmup tasks. Payloads that can never render are
// not retried.
func (j *ChartWarmupJob) Handle(ctx context.Context, t *asynq.Task) (resultErr error) {
	if j == nil || j.Renderer == nil {
		return errors.New("chart warmup: handler not configured")
	}
	req, err := DecodeChartWarmup(t)
	if err != nil {
		return fmt.Errorf("%w: %v", asynq.SkipRetry, err)
	}

	tracker := j.metrics().Track(TaskChartWarmup)
	defer func() {
		resultErr = tracker.End(resultErr)
	}()

	logger := j.logger().With(slog.String("kind", string(req.Kind)))
	renderCtx, cancel := context.WithTimeout(ctx, warmupTimeout)
	defer cancel()

	res, err := j.Renderer.Render(renderCtx, req)
	if err != nil {
		logger.Error("warm chart", slog.Any("error", err))
		if isPermanent(err) {
			return fmt.Errorf("%w: %v", asynq.SkipRetry, err)
		}
		return err
	}
	j.metrics().AddWarmed(string(req.Kind), res.Cached)
	logger.Info("chart warmed", slog.String("chart_id", res.ID.String()), slog.Bool("already_cached", res.Cached))
	return nil
}

func isPermanent(err error) bool {
	for _, target := range []error{
		chart.ErrUnsupportedChartType,
		chart.ErrEmptyDataset,
		chart.ErrDegenerateSeries,
		chart.ErrOptionCardinalityMismatch,
		chart.ErrInvalidOption,
		chart.ErrNonFiniteValue,
	} {
		if errors.Is(err, target) {
			return true
		}
	}
	return false
}

func (j *ChartWarmupJob) logger() *slog.Logger {
	if j.Logger != nil {
		return j.Logger.With(slog.String("job", TaskChartWarmup))
	}
	return slog.Default().With(slog.String("job", TaskChartWarmup))
}

func (j *ChartWarmupJob) metrics() *jobmetrics.Metrics {
	if j.Metrics != nil {
		return j.Metrics
	}
	return defaultJobMetrics
}
