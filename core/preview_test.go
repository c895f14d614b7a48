package core

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPreview(t *testing.T) {
	src := "import x from 'x';\n// setup\nconsole.log(x);\nrun();\n/* a\nb */\ndone();"

	removed := Preview(src, LanguageJS, ModeBoth, LogMatchPrefix)
	require.Len(t, removed, 4)

	assert.Equal(t, 2, removed[0].LineNumber)
	assert.Equal(t, RemovalComment, removed[0].Kind)
	assert.Equal(t, "// setup", removed[0].Text)
	assert.Equal(t, "import x from 'x';", removed[0].ContextBefore)
	assert.Equal(t, "console.log(x);\nrun();", removed[0].ContextAfter)

	assert.Equal(t, 3, removed[1].LineNumber)
	assert.Equal(t, RemovalLog, removed[1].Kind)

	assert.Equal(t, 5, removed[2].LineNumber)
	assert.Equal(t, 6, removed[3].LineNumber)
	assert.Equal(t, "b */", removed[3].Text)
	assert.Equal(t, "done();", removed[3].ContextAfter)
}

func TestPreviewCommentWinsOverLog(t *testing.T) {
	removed := Preview("/*\nconsole.log(1)\n*/", LanguageJS, ModeBoth, LogMatchPrefix)
	require.Len(t, removed, 3)
	for _, r := range removed {
		assert.Equal(t, RemovalComment, r.Kind)
	}
}

func TestPreviewRespectsMode(t *testing.T) {
	src := "# note\nprint(1)\nx = 1"

	comments := Preview(src, LanguagePython, ModeComments, LogMatchPrefix)
	require.Len(t, comments, 1)
	assert.Equal(t, 1, comments[0].LineNumber)

	logs := Preview(src, LanguagePython, ModeLogs, LogMatchPrefix)
	require.Len(t, logs, 1)
	assert.Equal(t, 2, logs[0].LineNumber)

	assert.Empty(t, Preview(src, LanguageOther, ModeBoth, LogMatchPrefix))
}
