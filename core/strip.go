package core

import (
	"regexp"
	"strings"
	"unicode"
)

// lineRule classifies a single line of a comment scan. It receives the
// trimmed line and the block-comment flag left by the previous line, and
// returns whether the line is dropped together with the flag to carry on.
type lineRule interface {
	classify(trimmed string, inBlock bool) (drop bool, nextInBlock bool)
}

// cStyleRule covers // and /* */ in the JavaScript family. Only markers that
// open or close the trimmed line count; "x = 1 // note" survives.
type cStyleRule struct{}

func (cStyleRule) classify(trimmed string, inBlock bool) (bool, bool) {
	switch {
	case strings.HasPrefix(trimmed, "/*"):
		return true, true
	case strings.Contains(trimmed, "*/"):
		return true, false
	case inBlock:
		return true, true
	case strings.HasPrefix(trimmed, "//"):
		return true, false
	}
	return false, inBlock
}

// delimitedRule covers block-only grammars (css, html) where the markers may
// appear anywhere on the line. A block opened and closed on the same line is
// dropped without touching the flag.
type delimitedRule struct {
	open  string
	close string
}

func (r delimitedRule) classify(trimmed string, inBlock bool) (bool, bool) {
	start := strings.Index(trimmed, r.open)
	end := strings.Index(trimmed, r.close)
	switch {
	case start != -1 && end != -1 && end > start:
		return true, inBlock
	case start != -1:
		return true, true
	case end != -1:
		return true, false
	case inBlock:
		return true, true
	}
	return false, inBlock
}

// prefixRule drops lines starting with a line-comment marker.
type prefixRule struct {
	marker string
}

func (r prefixRule) classify(trimmed string, inBlock bool) (bool, bool) {
	return strings.HasPrefix(trimmed, r.marker), inBlock
}

var commentRules = map[Language]lineRule{
	LanguageJS:     cStyleRule{},
	LanguageCSS:    delimitedRule{open: "/*", close: "*/"},
	LanguageHTML:   delimitedRule{open: "<!--", close: "-->"},
	LanguagePython: prefixRule{marker: "#"},
}

type logPatterns struct {
	prefix *regexp.Regexp
	strict *regexp.Regexp
}

func (p logPatterns) forMatch(m LogMatch) *regexp.Regexp {
	if m == LogMatchStrict {
		return p.strict
	}
	return p.prefix
}

var logRules = map[Language]logPatterns{
	LanguageJS: {
		prefix: regexp.MustCompile(`^console\.(log|debug|info|warn|error)\(`),
		strict: regexp.MustCompile(`^console\.(log|debug|info|warn|error)\((.*?)\);?$`),
	},
	LanguagePython: {
		prefix: regexp.MustCompile(`^print\(`),
		strict: regexp.MustCompile(`^print\((.*?)\)$`),
	},
}

// blankRun matches three or more line feeds separated only by whitespace.
// Whitespace here includes vertical tab, the Unicode space and separator
// categories and U+FEFF, which RE2's \s leaves out.
var blankRun = regexp.MustCompile(`\n[\s\v\p{Z}\x{FEFF}]*\n[\s\v\p{Z}\x{FEFF}]*\n`)

// trimLine strips surrounding whitespace, including a byte order mark.
func trimLine(line string) string {
	return strings.TrimFunc(line, func(r rune) bool {
		return unicode.IsSpace(r) || r == '\uFEFF'
	})
}

// CollapseBlankLines replaces every run of three or more line feeds that are
// separated only by whitespace with exactly two line feeds.
func CollapseBlankLines(text string) string {
	return blankRun.ReplaceAllString(text, "\n\n")
}

// commentDropMask marks the lines the comment stripper removes. It reports
// false when lang has no comment grammar.
func commentDropMask(lines []string, lang Language) ([]bool, bool) {
	rule, ok := commentRules[lang]
	if !ok {
		return nil, false
	}
	mask := make([]bool, len(lines))
	inBlock := false
	for i, line := range lines {
		mask[i], inBlock = rule.classify(trimLine(line), inBlock)
	}
	return mask, true
}

// logDropMask marks the lines that are a bare debug-output call for lang.
func logDropMask(lines []string, lang Language, match LogMatch) ([]bool, bool) {
	patterns, ok := logRules[lang]
	if !ok {
		return nil, false
	}
	re := patterns.forMatch(match)
	mask := make([]bool, len(lines))
	for i, line := range lines {
		mask[i] = re.MatchString(trimLine(line))
	}
	return mask, true
}

func keepUnmasked(lines []string, mask []bool) []string {
	kept := make([]string, 0, len(lines))
	for i, line := range lines {
		if !mask[i] {
			kept = append(kept, line)
		}
	}
	return kept
}

// StripComments removes whole-line comments and block comments from text
// according to lang, then collapses the blank runs the removal leaves behind.
// Text in LanguageOther is returned unchanged.
func StripComments(text string, lang Language) string {
	lines := strings.Split(text, "\n")
	mask, ok := commentDropMask(lines, lang)
	if !ok {
		return text
	}
	return CollapseBlankLines(strings.Join(keepUnmasked(lines, mask), "\n"))
}

// StripLogs removes lines that are a bare debug-output call for lang, using
// the given matching strategy. Blank lines are left as they are.
func StripLogs(text string, lang Language, match LogMatch) string {
	lines := strings.Split(text, "\n")
	mask, ok := logDropMask(lines, lang, match)
	if !ok {
		return text
	}
	return strings.Join(keepUnmasked(lines, mask), "\n")
}

// Apply runs the transforms selected by mode. With ModeBoth comments are
// stripped first and the result is passed to the log stripper.
func Apply(text string, lang Language, mode Mode, match LogMatch) string {
	if mode.Comments() {
		text = StripComments(text, lang)
	}
	if mode.Logs() {
		text = StripLogs(text, lang, match)
	}
	return text
}
