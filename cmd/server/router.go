package main

import (
	"log/slog"
	"net/http"
	"os"
	"path/filepath"
	"strings"

	"connectrpc.com/connect"
	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/mmynk/tripsplit/internal/auth"
	"github.com/mmynk/tripsplit/internal/eventlog"
	"github.com/mmynk/tripsplit/internal/middleware"
	"github.com/mmynk/tripsplit/internal/service"
	"github.com/mmynk/tripsplit/internal/storage"
	"github.com/mmynk/tripsplit/pkg/api"
)

// rpcPrefix is shared by every Connect procedure path.
const rpcPrefix = "/tripsplit.v1."

type routerConfig struct {
	store       storage.Store
	jwtManager  *auth.JWTManager
	events      eventlog.Sink
	registry    *prometheus.Registry
	staticDir   string
	requireAuth bool
}

// newRouter mounts the Connect services, health and metrics endpoints, and
// the static frontend.
func newRouter(cfg routerConfig) (http.Handler, error) {
	metricsInterceptor, err := middleware.MetricsInterceptor(cfg.registry)
	if err != nil {
		return nil, err
	}

	// OptionalAuth runs first so the logging interceptor can see the caller.
	groupInterceptors := []connect.Interceptor{
		middleware.OptionalAuth(cfg.jwtManager),
		middleware.LoggingInterceptor(nil),
		metricsInterceptor,
	}
	if cfg.requireAuth {
		groupInterceptors = append(groupInterceptors, middleware.RequireAuth(cfg.jwtManager))
	}
	authInterceptors := connect.WithInterceptors(middleware.LoggingInterceptor(nil), metricsInterceptor)

	authenticator := auth.NewPasswordAuthenticator(cfg.store)

	router := chi.NewRouter()
	router.Use(chimiddleware.RequestID)
	router.Use(chimiddleware.RealIP)
	router.Use(chimiddleware.Recoverer)
	router.Use(corsMiddleware)

	router.Get("/healthz", func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte("ok"))
	})
	router.Handle("/metrics", promhttp.HandlerFor(cfg.registry, promhttp.HandlerOpts{Registry: cfg.registry}))

	mount := func(path string, handler http.Handler) {
		router.Handle(path+"*", handler)
	}
	mount(api.NewAuthServiceHandler(
		service.NewAuthService(authenticator, cfg.jwtManager, cfg.events, slog.Default()),
		authInterceptors,
	))
	mount(api.NewGroupServiceHandler(
		service.NewGroupService(cfg.store, cfg.events),
		connect.WithInterceptors(groupInterceptors...),
	))
	mount(api.NewTransactionServiceHandler(
		service.NewTransactionService(cfg.store, cfg.events),
		connect.WithInterceptors(groupInterceptors...),
	))

	router.Get("/*", staticHandler(cfg.staticDir))

	return router, nil
}

// staticHandler serves the frontend, falling back to index.html for unknown
// paths so client-side routes resolve.
func staticHandler(staticDir string) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if strings.HasPrefix(r.URL.Path, rpcPrefix) {
			http.NotFound(w, r)
			return
		}

		urlPath := r.URL.Path
		if urlPath == "/" {
			urlPath = "/index.html"
		}

		filePath := filepath.Join(staticDir, filepath.Clean("/"+urlPath))
		if info, err := os.Stat(filePath); err != nil || info.IsDir() {
			http.ServeFile(w, r, filepath.Join(staticDir, "index.html"))
			return
		}

		http.ServeFile(w, r, filePath)
	}
}

// corsMiddleware adds CORS headers for browser access.
func corsMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Access-Control-Allow-Origin", "*")
		w.Header().Set("Access-Control-Allow-Methods", "POST, GET, OPTIONS")
		w.Header().Set("Access-Control-Allow-Headers", "Authorization, Content-Type, Connect-Protocol-Version, Connect-Timeout-Ms")
		w.Header().Set("Access-Control-Expose-Headers", "Connect-Protocol-Version, Connect-Timeout-Ms")

		if r.Method == http.MethodOptions {
			w.WriteHeader(http.StatusOK)
			return
		}

		next.ServeHTTP(w, r)
	})
}
