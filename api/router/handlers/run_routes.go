package handlers

import (
	"github.com/go-chi/chi/v5"
)

func RegisterRunRoutes(r chi.Router) {
	r.Route("/runs", func(r chi.Router) {
		r.Get("/", ListRunsHandler)
		r.Get("/{runID}", GetRunHandler)
	})
}
