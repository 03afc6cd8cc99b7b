// Package router sets up all HTTP routes and middleware chains for the
// blog builder. It organizes routes into the editor API, the public
// storefront endpoint and the admin pages.
package router

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"blogbuilder/internal/handlers"
	"blogbuilder/internal/middleware"
)

// Config holds what the router wires together.
type Config struct {
	API   *handlers.API
	Admin *handlers.Admin
	// Shop is the myshopify.com domain allowed to frame the admin pages.
	Shop string
	// Gatherer is served on /metrics. Nil disables the endpoint.
	Gatherer prometheus.Gatherer
	// Requests, if set, counts requests by route.
	Requests *prometheus.CounterVec
	// Limiter, if set, rate-limits the public storefront endpoint.
	Limiter *middleware.RateLimiter
}

// New creates and returns the configured Chi router with all middleware
// and route groups wired up.
func New(cfg Config) chi.Router {
	r := chi.NewRouter()

	// Global middleware, applied to every request.
	r.Use(chimw.RequestID)
	r.Use(middleware.Recoverer)
	r.Use(middleware.Logger)
	if cfg.Requests != nil {
		r.Use(middleware.Metrics(cfg.Requests))
	}
	r.Use(middleware.SecureHeaders(cfg.Shop))

	r.Get("/health", healthHandler)
	if cfg.Gatherer != nil {
		r.Handle("/metrics", promhttp.HandlerFor(cfg.Gatherer, promhttp.HandlerOpts{}))
	}

	api := cfg.API
	r.Route("/api", func(r chi.Router) {
		// Drafts: server-side editing sessions.
		r.Route("/drafts", func(r chi.Router) {
			r.Post("/", api.CreateDraft)
			r.Get("/{id}", api.GetDraft)
			r.Delete("/{id}", api.DeleteDraft)
			r.Post("/{id}/ops", api.ApplyOps)
			r.Post("/{id}/preview", api.PreviewDraft)
			r.Post("/{id}/save", api.SaveDraft)
		})

		// Articles
		r.Route("/blog", func(r chi.Router) {
			r.Get("/", api.ListArticles)
			r.Post("/render", api.RenderDocument)
			r.Post("/parse", api.ParseHTML)
			r.Post("/save", api.SaveArticle)
			r.Get("/{id}", api.GetArticle)
			r.Delete("/{id}", api.DeleteArticle)
			r.Get("/{id}/revisions", api.ListRevisions)
		})
		r.Post("/revisions/{id}/restore", api.RestoreRevision)

		// Media picker
		r.Get("/media", api.ListMedia)
		r.Post("/media/upload", api.UploadMedia)
		r.Delete("/media/upload", api.DeleteMedia)

		// Quick view settings
		r.Get("/collections", api.ListCollections)
		r.Get("/quickview/config", api.GetQuickviewConfig)
		r.Post("/quickview/config", api.SaveQuickviewConfig)
	})

	// Storefront, reached through the app proxy. Every product card may
	// call it, so it is rate-limited per client.
	r.Route("/apps", func(r chi.Router) {
		if cfg.Limiter != nil {
			r.Use(cfg.Limiter.Middleware)
		}
		r.Get("/quickview/config", api.PublicQuickviewConfig)
	})

	r.Route("/admin", func(r chi.Router) {
		r.Get("/", func(w http.ResponseWriter, r *http.Request) {
			http.Redirect(w, r, "/admin/blog", http.StatusSeeOther)
		})
		r.Get("/blog", cfg.Admin.BlogList)
		r.Get("/blog/{id}", cfg.Admin.BlogPreview)
	})

	return r
}

// healthHandler returns a simple JSON health check response.
func healthHandler(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	w.Write([]byte(`{"status":"ok"}`))
}
