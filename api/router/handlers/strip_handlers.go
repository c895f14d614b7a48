package handlers

import (
	"errors"
	"io"
	"net/http"
	"stripper/config"
	"stripper/core"
	"stripper/logger"
	"stripper/models"

	"github.com/tidwall/gjson"
)

// maxDocumentBytes bounds the request body of POST /strip.
const maxDocumentBytes = 16 << 20

// StripDocumentHandler strips one in-memory document, the way an editor
// integration sends its open buffer.
// @Summary Strip comments and/or debug statements from a document
// @Description Applies the comment stripper, the log stripper or both to the given text. The file is identified only by its extension.
// @Tags Strip
// @Accept json
// @Produce json
// @Param document body models.StripRequest true "Document to strip"
// @Success 200 {object} models.StripResponse
// @Failure 400 {object} models.ErrorResponse "Invalid body, mode or log match"
// @Failure 413 {object} models.ErrorResponse "Document too large"
// @Router /strip [post]
func StripDocumentHandler(w http.ResponseWriter, r *http.Request) {
	body, err := io.ReadAll(http.MaxBytesReader(w, r.Body, maxDocumentBytes))
	defer r.Body.Close()
	if err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			writeError(w, http.StatusRequestEntityTooLarge, "Document exceeds the maximum allowed size")
			return
		}
		logger.ServerError("StripDocumentHandler: Error reading body: %v", err)
		writeError(w, http.StatusBadRequest, "Could not read request body")
		return
	}
	if !gjson.ValidBytes(body) {
		writeError(w, http.StatusBadRequest, "Request body must be a JSON object")
		return
	}

	doc := gjson.ParseBytes(body)
	text := doc.Get("text")
	if !text.Exists() || text.Type != gjson.String {
		writeError(w, http.StatusBadRequest, "'text' is required and must be a string")
		return
	}
	ext := doc.Get("extension").String()
	if ext == "" {
		writeError(w, http.StatusBadRequest, "'extension' is required")
		return
	}

	modeStr := doc.Get("mode").String()
	if modeStr == "" {
		modeStr = config.AppConfig.Strip.Mode
	}
	if modeStr == "" {
		modeStr = string(core.ModeBoth)
	}
	mode, err := core.ParseMode(modeStr)
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	lmStr := doc.Get("log_match").String()
	if lmStr == "" {
		lmStr = config.AppConfig.Strip.LogMatch
	}
	logMatch, err := core.ParseLogMatch(lmStr)
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	p := &core.Processor{Mode: mode, LogMatch: logMatch}
	out, changed := p.ProcessText(text.String(), ext)
	logger.ServerDebug("StripDocumentHandler: ext=%s mode=%s changed=%t (%d -> %d bytes)", ext, mode, changed, len(text.String()), len(out))

	writeJSON(w, http.StatusOK, models.StripResponse{
		Text:     out,
		Changed:  changed,
		Language: string(core.LanguageForExtension(ext)),
	})
}
