/*
Package handler provides the HTTP handlers and routing setup for the signaling server.

This file defines the main Router, applying middleware for logging, CORS, and
IP-based rate limiting before delegating to the signal dispatch handler and
the static asset routes.
*/
package handler

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/rs/cors"
	"golang.org/x/time/rate"

	"lansignal/internal/pkg/errs"
	"lansignal/internal/pkg/limiter"
	"lansignal/internal/pkg/logx"
	"lansignal/internal/pkg/resp"
)

// Long-poll clients re-poll immediately after every fulfilled wait, so the
// signal route gets a generous sustained rate.
const (
	SignalRate  = 20
	SignalBurst = 60
)

// Router sets up the main HTTP routing table (chi.Router) for the application.
// It configures CORS and the per-IP rate limiter and applies global middleware.
func Router(deps *AppDeps) http.Handler {
	signalLimiter := limiter.NewIPRateLimiter(rate.Limit(SignalRate), SignalBurst)

	r := chi.NewRouter()

	corsAllowedOrigins := []string{}
	if deps.Config.Environment == "development" {
		corsAllowedOrigins = []string{"*"}
	} else if len(deps.Config.AllowedOrigins) > 0 {
		corsAllowedOrigins = deps.Config.AllowedOrigins
	}

	c := cors.New(cors.Options{
		AllowedOrigins:   corsAllowedOrigins,
		AllowedMethods:   []string{"GET", "POST", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Content-Type"},
		ExposedHeaders:   []string{},
		AllowCredentials: false,
		MaxAge:           300,
	})
	r.Use(c.Handler)

	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(logx.RequestLogger())
	r.Use(middleware.Recoverer)

	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		data := map[string]string{
			"status":  "ok",
			"service": "LAN Signal Server",
		}
		resp.RespondSuccess(w, r, data)
	})

	rateLimitedSignal := signalLimiter.Middleware(HandleSignal(deps))
	r.Post("/signal", http.HandlerFunc(rateLimitedSignal.ServeHTTP))

	r.NotFound(func(w http.ResponseWriter, r *http.Request) {
		resp.RespondError(w, r, errs.NewError(errs.ErrRouteNotFound))
	})

	// Browser UI and bootstrap scripts live outside this core; serve them as
	// plain files when a directory is configured.
	if deps.Config.StaticDir != "" {
		fileServer := http.FileServer(http.Dir(deps.Config.StaticDir))
		r.Handle("/*", fileServer)
	}

	return r
}
