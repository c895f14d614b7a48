package core

import (
	"path/filepath"
	"sort"
	"strings"
)

// Language identifies which comment and debug-call grammar applies to a file.
type Language string

const (
	LanguageJS     Language = "js"
	LanguageCSS    Language = "css"
	LanguageHTML   Language = "html"
	LanguagePython Language = "py"
	LanguageOther  Language = "other"
)

var extensionLanguages = map[string]Language{
	".js":   LanguageJS,
	".jsx":  LanguageJS,
	".ts":   LanguageJS,
	".tsx":  LanguageJS,
	".css":  LanguageCSS,
	".html": LanguageHTML,
	".py":   LanguagePython,
}

// LanguageForExtension maps a file extension to its language class.
// The extension may be given with or without the leading dot, in any case.
// Unknown extensions map to LanguageOther.
func LanguageForExtension(ext string) Language {
	ext = strings.ToLower(strings.TrimSpace(ext))
	if ext == "" {
		return LanguageOther
	}
	if !strings.HasPrefix(ext, ".") {
		ext = "." + ext
	}
	if lang, ok := extensionLanguages[ext]; ok {
		return lang
	}
	return LanguageOther
}

// LanguageForPath is LanguageForExtension applied to the path's extension.
func LanguageForPath(path string) Language {
	return LanguageForExtension(filepath.Ext(path))
}

// SupportedExtensions returns the sorted list of extensions the strippers act on.
func SupportedExtensions() []string {
	exts := make([]string, 0, len(extensionLanguages))
	for ext := range extensionLanguages {
		exts = append(exts, ext)
	}
	sort.Strings(exts)
	return exts
}

// IsSupportedExtension reports whether ext has a language class other than LanguageOther.
func IsSupportedExtension(ext string) bool {
	return LanguageForExtension(ext) != LanguageOther
}
