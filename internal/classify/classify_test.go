package classify

import "testing"

func TestFileType(t *testing.T) {
	tests := []struct {
		filename string
		want     string
	}{
		{"Report.PDF", "pdf"},
		{"paper.pdf", "pdf"},
		{"notes.docx", "docx"},
		{"legacy.doc", "docx"},
		{"slides.pptx", "pptx"},
		{"slides.PPT", "pptx"},
		{"table.xlsx", "xlsx"},
		{"table.xls", "xlsx"},
		{"archive.tar.gz", "gz"},
		{"photo.jpeg", "jpeg"},
		{"README", ""},
		{"", ""},
	}
	for _, tt := range tests {
		if got := FileType(tt.filename); got != tt.want {
			t.Errorf("FileType(%q) = %q, want %q", tt.filename, got, tt.want)
		}
	}
}
