package handlers

import (
	"net/http"

	"github.com/go-chi/chi/v5"
)

func RegisterHealthRoutes(r chi.Router) {
	r.Get("/health", healthCheckHandler)
}

// healthCheckHandler reports that the API is up.
// @Summary Health check
// @Tags Health
// @Produce json
// @Success 200 {object} map[string]string "{"status": "ok"}"
// @Router /health [get]
func healthCheckHandler(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}
