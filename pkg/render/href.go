package render

import (
	"path/filepath"
)

// StylesheetHref returns the href of cssPath as seen from a page written to
// htmlPath: relative to the page's directory when possible, otherwise the
// absolute stylesheet path. Separators are always forward slashes.
func StylesheetHref(htmlPath, cssPath string) string {
	absHTML, err := filepath.Abs(htmlPath)
	if err != nil {
		return filepath.ToSlash(cssPath)
	}
	absCSS, err := filepath.Abs(cssPath)
	if err != nil {
		return filepath.ToSlash(cssPath)
	}
	rel, err := filepath.Rel(filepath.Dir(absHTML), absCSS)
	if err != nil {
		// Different volumes on Windows.
		return filepath.ToSlash(absCSS)
	}
	return filepath.ToSlash(rel)
}
