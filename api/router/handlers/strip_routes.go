package handlers

import (
	"github.com/go-chi/chi/v5"
)

func RegisterStripRoutes(r chi.Router) {
	r.Post("/strip", StripDocumentHandler)
}
