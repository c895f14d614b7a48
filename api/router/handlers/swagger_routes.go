package handlers

import (
	"net/http"
	"stripper/logger"

	"github.com/go-chi/chi/v5"
	"github.com/swaggo/swag"
)

func RegisterSwaggerRoutes(r chi.Router) {
	r.Get("/swagger.json", swaggerDocHandler)
}

func swaggerDocHandler(w http.ResponseWriter, r *http.Request) {
	doc, err := swag.ReadDoc()
	if err != nil {
		logger.ServerError("swaggerDocHandler: %v", err)
		writeError(w, http.StatusInternalServerError, "Swagger document is not registered")
		return
	}
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	w.Write([]byte(doc))
}
