package renderhttp

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"strconv"
	"strings"

	"github.com/go-chi/chi/v5"

	"github.com/odyssey-erp/svgchart/internal/chart"
	"github.com/odyssey-erp/svgchart/internal/platform/httpx"
	"github.com/odyssey-erp/svgchart/internal/render"
)

const (
	svgContentType   = "image/svg+xml"
	cacheStateHeader = "X-Chart-Cache"
	defaultBodyLimit = 1 << 20
)

// Renderer renders and invalidates charts.
type Renderer interface {
	Render(ctx context.Context, req render.Request) (render.Result, error)
	Invalidate(ctx context.Context) (int64, error)
}

// Enqueuer schedules background chart warmups and returns the task id.
type Enqueuer interface {
	EnqueueChartWarmup(ctx context.Context, req render.Request) (string, error)
}

// Config carries handler tuning.
type Config struct {
	// MaxBodyBytes caps request bodies. Zero means 1 MiB.
	MaxBodyBytes int64
	// RateLimit is the per-IP render requests per minute. Zero disables the
	// route limiter.
	RateLimit int
}

// Handler serves the chart endpoints.
type Handler struct {
	logger   *slog.Logger
	renderer Renderer
	queue    Enqueuer
	cfg      Config
}

// NewHandler constructs the chart HTTP handler. queue may be nil, in which
// case warmups answer 503.
func NewHandler(logger *slog.Logger, renderer Renderer, queue Enqueuer, cfg Config) *Handler {
	if logger == nil {
		logger = slog.Default()
	}
	if cfg.MaxBodyBytes <= 0 {
		cfg.MaxBodyBytes = defaultBodyLimit
	}
	return &Handler{logger: logger, renderer: renderer, queue: queue, cfg: cfg}
}

type renderPayload struct {
	Data    chart.Dataset `yaml:"data"`
	Options chart.Options `yaml:"options"`
}

func (h *Handler) handleRender(w http.ResponseWriter, r *http.Request) {
	kind, err := chart.ParseKind(chi.URLParam(r, "kind"))
	if err != nil {
		h.respondError(w, r, err)
		return
	}
	var payload renderPayload
	if err := httpx.DecodeBody(w, r, h.cfg.MaxBodyBytes, &payload); err != nil {
		h.respondError(w, r, err)
		return
	}

	res, err := h.renderer.Render(r.Context(), render.Request{Kind: kind, Data: payload.Data, Options: payload.Options})
	if err != nil {
		h.respondError(w, r, err)
		return
	}

	etag := res.ETag()
	w.Header().Set("ETag", etag)
	w.Header().Set(cacheStateHeader, cacheState(res))
	if etagMatches(r.Header.Get("If-None-Match"), etag) {
		w.WriteHeader(http.StatusNotModified)
		return
	}
	w.Header().Set("Content-Type", svgContentType)
	w.Header().Set("Content-Length", strconv.Itoa(len(res.Markup)))
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write([]byte(res.Markup))
}

// etagMatches applies the weak comparison If-None-Match calls for: any listed
// tag, or "*", matches regardless of a W/ prefix.
func etagMatches(header, etag string) bool {
	for _, candidate := range strings.Split(header, ",") {
		candidate = strings.TrimSpace(candidate)
		if candidate == "*" {
			return true
		}
		if candidate != "" && strings.TrimPrefix(candidate, "W/") == strings.TrimPrefix(etag, "W/") {
			return true
		}
	}
	return false
}

func cacheState(res render.Result) string {
	if res.Cached {
		return "hit"
	}
	return "miss"
}

func (h *Handler) handleKinds(w http.ResponseWriter, r *http.Request) {
	kinds := chart.Kinds()
	names := make([]string, len(kinds))
	for i, k := range kinds {
		names[i] = string(k)
	}
	httpx.JSON(w, http.StatusOK, map[string][]string{"kinds": names})
}

type warmupPayload struct {
	Kind    string        `yaml:"kind"`
	Data    chart.Dataset `yaml:"data"`
	Options chart.Options `yaml:"options"`
}

func (h *Handler) handleWarmup(w http.ResponseWriter, r *http.Request) {
	if h.queue == nil {
		h.respondError(w, r, fmt.Errorf("%w: warmup queue not configured", httpx.ErrUnavailable))
		return
	}
	var payload warmupPayload
	if err := httpx.DecodeBody(w, r, h.cfg.MaxBodyBytes, &payload); err != nil {
		h.respondError(w, r, err)
		return
	}
	kind, err := chart.ParseKind(payload.Kind)
	if err != nil {
		h.respondError(w, r, err)
		return
	}
	req := render.Request{Kind: kind, Data: payload.Data, Options: payload.Options}
	if err := chart.Validate(req.Kind, req.Data, req.Options); err != nil {
		h.respondError(w, r, err)
		return
	}
	id, err := render.ChartID(req)
	if err != nil {
		h.respondError(w, r, err)
		return
	}
	taskID, err := h.queue.EnqueueChartWarmup(r.Context(), req)
	if err != nil {
		h.respondError(w, r, err)
		return
	}
	httpx.JSON(w, http.StatusAccepted, map[string]string{
		"task_id":  taskID,
		"chart_id": id.String(),
	})
}

func (h *Handler) handleInvalidate(w http.ResponseWriter, r *http.Request) {
	ver, err := h.renderer.Invalidate(r.Context())
	if err != nil {
		h.respondError(w, r, err)
		return
	}
	w.Header().Set("X-Chart-Cache-Version", strconv.FormatInt(ver, 10))
	w.WriteHeader(http.StatusNoContent)
}

// respondError translates chart and transport errors into problem responses.
func (h *Handler) respondError(w http.ResponseWriter, r *http.Request, err error) {
	switch {
	case errors.Is(err, chart.ErrUnsupportedChartType):
		err = fmt.Errorf("%w: %v", httpx.ErrNotFound, err)
	case isChartError(err):
		err = fmt.Errorf("%w: %v", httpx.ErrUnprocessable, err)
	case errors.Is(err, httpx.ErrBadRequest),
		errors.Is(err, httpx.ErrTooLarge),
		errors.Is(err, httpx.ErrUnavailable),
		errors.Is(err, httpx.ErrNotFound):
	case errors.Is(err, context.DeadlineExceeded), errors.Is(err, context.Canceled):
		h.logger.Warn("chart request timed out", slog.String("path", r.URL.Path), slog.Any("error", err))
	default:
		h.logger.Error("chart request failed", slog.String("path", r.URL.Path), slog.Any("error", err))
	}
	httpx.RespondError(w, err)
}

func isChartError(err error) bool {
	for _, target := range []error{
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
