package handlers

import (
	"errors"
	"net/http"
	"strconv"
	"stripper/database"
	"stripper/logger"

	"github.com/go-chi/chi/v5"
)

// ListRunsHandler lists recorded strip runs, newest first.
// @Summary List strip runs
// @Tags Runs
// @Produce json
// @Param limit query int false "Maximum number of runs (default 50, 0 for all)"
// @Success 200 {array} models.Run
// @Failure 400 {object} models.ErrorResponse
// @Failure 503 {object} models.ErrorResponse "History disabled"
// @Router /runs [get]
func ListRunsHandler(w http.ResponseWriter, r *http.Request) {
	limit := 50
	if s := r.URL.Query().Get("limit"); s != "" {
		n, err := strconv.Atoi(s)
		if err != nil || n < 0 {
			writeError(w, http.StatusBadRequest, "'limit' must be a non-negative integer")
			return
		}
		limit = n
	}

	runs, err := database.ListRuns(limit)
	if err != nil {
		if errors.Is(err, database.ErrNoDatabase) {
			writeError(w, http.StatusServiceUnavailable, "Run history is disabled")
			return
		}
		logger.ServerError("ListRunsHandler: %v", err)
		writeError(w, http.StatusInternalServerError, "Failed to retrieve runs")
		return
	}
	writeJSON(w, http.StatusOK, runs)
}

// GetRunHandler returns one run with the files it rewrote.
// @Summary Get a strip run
// @Tags Runs
// @Produce json
// @Param runID path string true "Run ID or unique prefix"
// @Success 200 {object} models.RunDetail
// @Failure 404 {object} models.ErrorResponse
// @Failure 409 {object} models.ErrorResponse "Ambiguous prefix"
// @Failure 503 {object} models.ErrorResponse "History disabled"
// @Router /runs/{runID} [get]
func GetRunHandler(w http.ResponseWriter, r *http.Request) {
	runID := chi.URLParam(r, "runID")
	detail, err := database.GetRunDetail(runID)
	switch {
	case err == nil:
		writeJSON(w, http.StatusOK, detail)
	case errors.Is(err, database.ErrRunNotFound):
		writeError(w, http.StatusNotFound, "Run not found")
	case errors.Is(err, database.ErrAmbiguousRun):
		writeError(w, http.StatusConflict, "Run ID prefix is ambiguous")
	case errors.Is(err, database.ErrNoDatabase):
		writeError(w, http.StatusServiceUnavailable, "Run history is disabled")
	default:
		logger.ServerError("GetRunHandler: %s: %v", runID, err)
		writeError(w, http.StatusInternalServerError, "Failed to retrieve run")
	}
}
