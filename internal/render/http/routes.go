package renderhttp

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/httprate"

	"github.com/odyssey-erp/svgchart/internal/platform/httpx"
)

// MountRoutes registers the chart endpoints onto the router.
func (h *Handler) MountRoutes(r chi.Router) {
	if h == nil {
		return
	}
	r.Get("/charts/kinds", h.handleKinds)
	r.Delete("/charts/cache", h.handleInvalidate)
	r.Group(func(gr chi.Router) {
		if h.cfg.RateLimit > 0 {
			gr.Use(httprate.Limit(h.cfg.RateLimit, time.Minute,
				httprate.WithKeyFuncs(httprate.KeyByIP),
				httprate.WithLimitHandler(func(w http.ResponseWriter, r *http.Request) {
					httpx.Problem(w, http.StatusTooManyRequests, "Too Many Requests", "chart rate limit exceeded")
				}),
			))
		}
		gr.Post("/charts/warmup", h.handleWarmup)
		gr.Post("/charts/{kind}", h.handleRender)
	})
}
