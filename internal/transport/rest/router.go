// Package rest serves the cached feed over HTTP.
package rest

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"

	"feedcache/internal/domain"
)

type Metrics interface {
	ObserveHTTP(method, route string, status int, duration time.Duration)
	Handler() http.Handler
}

type Router struct {
	feed    domain.FeedLoader
	metrics Metrics
	logger  *slog.Logger
}

// NewRouter serves feed from the local cache. metrics may be nil, in which
// case /metrics is not mounted.
func NewRouter(feed domain.FeedLoader, metrics Metrics, logger *slog.Logger) *Router {
	return &Router{
		feed:    feed,
		metrics: metrics,
		logger:  logger.With("component", "http"),
	}
}

func (rt *Router) Setup() http.Handler {
	router := chi.NewRouter()

	router.Use(chimiddleware.RequestID)
	router.Use(chimiddleware.Recoverer)
	router.Use(rt.observe)

	router.Get("/healthz", rt.health)
	router.Get("/feed", rt.getFeed)
	if rt.metrics != nil {
		router.Method(http.MethodGet, "/metrics", rt.metrics.Handler())
	}

	return router
}

func (rt *Router) observe(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		ww := chimiddleware.NewWrapResponseWriter(w, r.ProtoMajor)

		next.ServeHTTP(ww, r)

		route := chi.RouteContext(r.Context()).RoutePattern()
		if route == "" {
			route = "unmatched"
		}
		duration := time.Since(start)

		if rt.metrics != nil {
			rt.metrics.ObserveHTTP(r.Method, route, ww.Status(), duration)
		}
		rt.logger.Debug("http request",
			"method", r.Method,
			"route", route,
			"status", ww.Status(),
			"bytes", ww.BytesWritten(),
			"duration", duration,
			"request_id", chimiddleware.GetReqID(r.Context()),
		)
	})
}
