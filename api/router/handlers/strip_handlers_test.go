package handlers

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"stripper/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func postStrip(t *testing.T, body string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(http.MethodPost, "/strip", strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	StripDocumentHandler(rec, req)
	return rec
}

func TestStripDocumentHandler(t *testing.T) {
	tests := []struct {
		name     string
		body     string
		wantText string
		changed  bool
		language string
	}{
		{
			name:     "default mode strips both",
			body:     `{"text":"// a\nconsole.log(x);\nlet y = 1;","extension":".js"}`,
			wantText: "let y = 1;",
			changed:  true,
			language: "js",
		},
		{
			name:     "comments only",
			body:     `{"text":"# a\nprint(1)","extension":"py","mode":"comments"}`,
			wantText: "print(1)",
			changed:  true,
			language: "py",
		},
		{
			name:     "strict log match keeps multi-line call",
			body:     `{"text":"console.log(\n a\n);","extension":".ts","mode":"logs","log_match":"strict"}`,
			wantText: "console.log(\n a\n);",
			changed:  false,
			language: "js",
		},
		{
			name:     "unsupported extension is untouched",
			body:     `{"text":"// x","extension":".json"}`,
			wantText: "// x",
			changed:  false,
			language: "other",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := postStrip(t, tt.body)
			require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
			assert.Equal(t, "application/json", rec.Header().Get("Content-Type"))

			var resp models.StripResponse
			require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
			assert.Equal(t, tt.wantText, resp.Text)
			assert.Equal(t, tt.changed, resp.Changed)
			assert.Equal(t, tt.language, resp.Language)
		})
	}
}

func TestStripDocumentHandlerRejectsBadInput(t *testing.T) {
	for name, body := range map[string]string{
		"not json":          `{"text":`,
		"missing text":      `{"extension":".js"}`,
		"text not a string": `{"text":42,"extension":".js"}`,
		"missing extension": `{"text":"x"}`,
		"unknown mode":      `{"text":"x","extension":".js","mode":"everything"}`,
		"unknown log match": `{"text":"x","extension":".js","log_match":"fuzzy"}`,
	} {
		t.Run(name, func(t *testing.T) {
			rec := postStrip(t, body)
			assert.Equal(t, http.StatusBadRequest, rec.Code)

			var resp models.ErrorResponse
			require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
			assert.NotEmpty(t, resp.Message)
		})
	}
}
