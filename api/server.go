package api

import (
	"net/http"

	"github.com/filedepot/gateway-services/models/common"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Server is the HTTP front of the gateway. Route wiring only; every
// endpoint body lives in Handler.
type Server struct {
	Context *common.Context
	Handler *Handler
	Router  chi.Router
}

// NewServer creates a Server with all routes registered.
func NewServer(context *common.Context) *Server {
	handler := NewHandler(context)
	router := chi.NewRouter()
	router.Use(middleware.Recoverer)
	router.Use(MetricsMiddleware(chiRoutePattern))

	router.Post("/api/upload", handler.Upload)
	router.Get("/api/files", handler.List)
	router.Get("/api/download/{fileName}", handler.Download)
	router.Delete("/api/files/{id}", handler.Delete)
	router.Get("/api/statistics", handler.Statistics)
	router.Get("/api/file-formats", handler.FileFormats)
	router.Get("/api/reconcile", handler.Reconcile)
	router.Get("/healthz", handler.Healthz)
	router.Method(http.MethodGet, "/metrics", promhttp.Handler())

	return &Server{
		Context: context,
		Handler: handler,
		Router:  router,
	}
}

// Run blocks, serving on Config.ListenAddr.
func (s *Server) Run() error {
	s.Context.Logger.Infof("Gateway listening on %s", s.Context.Config.ListenAddr)
	return http.ListenAndServe(s.Context.Config.ListenAddr, s.Router)
}

// chiRoutePattern returns the matched chi route pattern for metrics
// labels, falling back to the raw path for unmatched requests.
func chiRoutePattern(r *http.Request) string {
	if routeCtx := chi.RouteContext(r.Context()); routeCtx != nil {
		if pattern := routeCtx.RoutePattern(); pattern != "" {
			return pattern
		}
	}
	return r.URL.Path
}
