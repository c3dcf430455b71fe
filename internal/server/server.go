package server

import (
	"context"
	"encoding/json"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	chiMiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/jmoiron/sqlx"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	"github.com/rentiva/discovery-service/internal/cache"
	catHandler "github.com/rentiva/discovery-service/internal/category/handler"
	"github.com/rentiva/discovery-service/internal/metrics"
	prodHandler "github.com/rentiva/discovery-service/internal/product/handler"
	searchHandler "github.com/rentiva/discovery-service/internal/search/handler"
)

// Deps collects everything the HTTP surface needs. Redis may be nil when
// caching is disabled.
type Deps struct {
	Search     *searchHandler.SearchHandler
	Categories *catHandler.CategoryHandler
	Products   *prodHandler.ProductHandler
	DB         *sqlx.DB
	Redis      *redis.Client
	Cache      *cache.SearchCache
	Logger     *zap.Logger
}

// NewRouter builds the chi router with middleware, API routes and the
// operational endpoints.
func NewRouter(d Deps) chi.Router {
	r := chi.NewRouter()
	r.Use(chiMiddleware.RequestID)
	r.Use(chiMiddleware.RealIP)
	r.Use(chiMiddleware.Recoverer)
	r.Use(metrics.Middleware())

	r.Route("/api/v1", func(r chi.Router) {
		r.Post("/search", d.Search.Search)
		r.Get("/categories", d.Categories.List)
		r.Get("/categories/{idOrSlug}", d.Categories.Get)
		r.Get("/products/{id}", d.Products.Get)
	})

	// Ops surface, not exposed through the public gateway. Catalog writers
	// hit this after mutations so stale pages never outlive their TTL.
	r.Post("/internal/cache/invalidate", invalidateHandler(d))

	r.Get("/healthz", healthHandler(d))
	r.Handle("/metrics", promhttp.Handler())

	return r
}

func invalidateHandler(d Deps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if d.Cache == nil {
			w.WriteHeader(http.StatusNoContent)
			return
		}
		if err := d.Cache.InvalidateSearch(r.Context()); err != nil {
			d.Logger.Error("cache invalidation failed", zap.Error(err))
			w.WriteHeader(http.StatusInternalServerError)
			return
		}
		w.WriteHeader(http.StatusNoContent)
	}
}

func healthHandler(d Deps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx, cancel := context.WithTimeout(r.Context(), 2*time.Second)
		defer cancel()

		checks := map[string]string{}
		healthy := true

		if err := d.DB.PingContext(ctx); err != nil {
			checks["postgres"] = "down"
			healthy = false
		} else {
			checks["postgres"] = "ok"
		}

		if d.Redis != nil {
			if err := d.Redis.Ping(ctx).Err(); err != nil {
				checks["redis"] = "down"
				// Cache loss degrades latency, not correctness.
			} else {
				checks["redis"] = "ok"
			}
		}

		status := "healthy"
		httpStatus := http.StatusOK
		if !healthy {
			status = "unhealthy"
			httpStatus = http.StatusServiceUnavailable
		}

		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(httpStatus)
		_ = json.NewEncoder(w).Encode(map[string]any{
			"status": status,
			"checks": checks,
		})
	}
}
