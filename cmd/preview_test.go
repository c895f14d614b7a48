package cmd

import (
	"bytes"
	"testing"
	"time"

	"stripper/core"
	"stripper/models"

	"github.com/stretchr/testify/assert"
)

func TestPrintPreview(t *testing.T) {
	var buf bytes.Buffer
	removed := core.Preview("// a\nrun();\nconsole.log(1);", core.LanguageJS, core.ModeBoth, core.LogMatchPrefix)
	printPreview(&buf, "app.js", core.LanguageJS, removed, false)

	assert.Equal(t,
		"app.js: 2 lines would be removed\n"+
			"    1 C | // a\n"+
			"    3 L | console.log(1);\n",
		buf.String())

	buf.Reset()
	printPreview(&buf, "data.json", core.LanguageOther, nil, false)
	assert.Equal(t, "data.json: unsupported file type, nothing would be removed\n", buf.String())

	buf.Reset()
	printPreview(&buf, "clean.py", core.LanguagePython, nil, true)
	assert.Equal(t, "clean.py: nothing would be removed\n", buf.String())
}

func TestPrintPreviewWithContext(t *testing.T) {
	var buf bytes.Buffer
	removed := core.Preview("a()\n# b\nc()", core.LanguagePython, core.ModeComments, core.LogMatchPrefix)
	printPreview(&buf, "x.py", core.LanguagePython, removed, true)

	assert.Equal(t,
		"x.py: 1 lines would be removed\n"+
			"        | a()\n"+
			"    2 C | # b\n"+
			"        | c()\n"+
			"        --\n",
		buf.String())
}

func TestPrintRunDetail(t *testing.T) {
	var buf bytes.Buffer
	d := models.RunDetail{
		Run: models.Run{ID: "abc", Root: "/p", Mode: "logs", LogMatch: "prefix", Modified: 1, Scanned: 2, StartedAt: time.Now()},
		Files: []models.FileBackup{
			{Path: "/p/a.js", OriginalSize: 10, StrippedSize: 4},
		},
	}
	printRunDetail(&buf, d)

	s := buf.String()
	assert.Contains(t, s, "Run:       abc\n")
	assert.Contains(t, s, "Finished:  (interrupted)\n")
	assert.Contains(t, s, "Files:     1 modified, 2 scanned, 0 failed\n")
	assert.Contains(t, s, "/p/a.js")
	assert.Equal(t, "12345678", shortID("1234567890"))
	assert.Equal(t, "abc", shortID("abc"))
}
