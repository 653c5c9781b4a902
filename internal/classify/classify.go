// Package classify maps filenames to the catalog's canonical document-type tags.
package classify

import (
	"path/filepath"
	"strings"
)

// FileType returns the canonical type tag for a filename. The extension
// (text after the last dot) is lower-cased; legacy Office extensions collapse
// onto their x-suffixed tag. Every other extension maps to itself, including
// the empty string for extensionless names.
func FileType(filename string) string {
	ext := strings.ToLower(strings.TrimPrefix(filepath.Ext(filename), "."))
	switch ext {
	case "pdf":
		return "pdf"
	case "doc", "docx":
		return "docx"
	case "ppt", "pptx":
		return "pptx"
	case "xls", "xlsx":
		return "xlsx"
	default:
		return ext
	}
}
