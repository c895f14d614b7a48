package api

import (
	"net/http"
	_ "stripper/api/docs"
	"stripper/api/router/handlers"
	"stripper/logger"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
)

// NewRouter creates the API router. All registered paths are relative to
// the /api base path.
func NewRouter() http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.Recoverer)
	r.Use(requestLogger)

	handlers.RegisterHealthRoutes(r)
	handlers.RegisterVersionRoutes(r)
	handlers.RegisterStripRoutes(r)
	handlers.RegisterRunRoutes(r)
	handlers.RegisterSwaggerRoutes(r)

	r.NotFound(func(w http.ResponseWriter, req *http.Request) {
		logger.ServerError("API catch-all: Unhandled route relative to /api: %s %s", req.Method, req.URL.Path)
		http.NotFound(w, req)
	})

	return r
}

func requestLogger(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
		start := time.Now()
		next.ServeHTTP(ww, r)
		logger.ServerInfo("%s %s -> %d (%d bytes, %s) [%s]", r.Method, r.URL.Path, ww.Status(), ww.BytesWritten(), time.Since(start), middleware.GetReqID(r.Context()))
	})
}
