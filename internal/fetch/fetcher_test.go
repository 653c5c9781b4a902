package fetch

import (
	"context"
	"errors"
	"io"
	"net"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"
)

func newTestFetcher() *Fetcher {
	return NewFetcher(WithProgressWriter(io.Discard), WithChunkSize(1024))
}

func TestDownload_contentDispositionFilename(t *testing.T) {
	body := []byte("%PDF-1.4 fake pdf bytes")
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Disposition", `attachment; filename="quarterly report.pdf"`)
		w.Write(body)
	}))
	defer srv.Close()

	dir := t.TempDir()
	file, err := newTestFetcher().Download(context.Background(), srv.URL+"/download", dir)
	if err != nil {
		t.Fatalf("Download: %v", err)
	}
	if file.Filename != "quarterly report.pdf" {
		t.Errorf("filename = %q, want %q", file.Filename, "quarterly report.pdf")
	}
	got, err := os.ReadFile(file.LocalPath)
	if err != nil {
		t.Fatalf("read downloaded file: %v", err)
	}
	if string(got) != string(body) {
		t.Errorf("downloaded content mismatch: got %d bytes, want %d", len(got), len(body))
	}
	if filepath.Dir(file.LocalPath) != dir {
		t.Errorf("file written outside scratch dir: %s", file.LocalPath)
	}
}

func TestDownload_filenameFromURLPath(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte("content"))
	}))
	defer srv.Close()

	dir := t.TempDir()
	file, err := newTestFetcher().Download(context.Background(), srv.URL+"/files/manual.pdf?token=abc", dir)
	if err != nil {
		t.Fatalf("Download: %v", err)
	}
	if file.Filename != "manual.pdf" {
		t.Errorf("filename = %q, want %q", file.Filename, "manual.pdf")
	}
}

func TestDownload_extensionFromContentType(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/pdf")
		w.Write([]byte("content"))
	}))
	defer srv.Close()

	dir := t.TempDir()
	file, err := newTestFetcher().Download(context.Background(), srv.URL+"/export", dir)
	if err != nil {
		t.Fatalf("Download: %v", err)
	}
	if file.Filename != "export.pdf" {
		t.Errorf("filename = %q, want %q", file.Filename, "export.pdf")
	}
}

func TestDownload_nonSuccessStatus(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "gone", http.StatusNotFound)
	}))
	defer srv.Close()

	_, err := newTestFetcher().Download(context.Background(), srv.URL+"/missing.pdf", t.TempDir())
	if err == nil {
		t.Fatal("expected error for 404 response")
	}
	var dlErr *DownloadError
	if !errors.As(err, &dlErr) {
		t.Fatalf("error type = %T, want *DownloadError", err)
	}
}

func TestDownload_unreachableHost(t *testing.T) {
	// Grab a port that nothing listens on.
	ln, err := net.Listen("tcp", "127.0.0.1:0")
	if err != nil {
		t.Fatal(err)
	}
	deadURL := "http://" + ln.Addr().String() + "/doc.pdf"
	ln.Close()

	_, err = newTestFetcher().Download(context.Background(), deadURL, t.TempDir())
	if err == nil {
		t.Fatal("expected error for unreachable host")
	}
	var dlErr *DownloadError
	if !errors.As(err, &dlErr) {
		t.Fatalf("error type = %T, want *DownloadError", err)
	}
	if dlErr.URL != deadURL {
		t.Errorf("error URL = %q, want %q", dlErr.URL, deadURL)
	}
}

func TestDownload_streamsLargeBodyInChunks(t *testing.T) {
	// 100 KiB body, well beyond the 1 KiB test chunk size.
	body := make([]byte, 100*1024)
	for i := range body {
		body[i] = byte(i % 251)
	}
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write(body)
	}))
	defer srv.Close()

	dir := t.TempDir()
	file, err := newTestFetcher().Download(context.Background(), srv.URL+"/blob.bin", dir)
	if err != nil {
		t.Fatalf("Download: %v", err)
	}
	got, err := os.ReadFile(file.LocalPath)
	if err != nil {
		t.Fatal(err)
	}
	if len(got) != len(body) {
		t.Fatalf("size = %d, want %d", len(got), len(body))
	}
	for i := range got {
		if got[i] != body[i] {
			t.Fatalf("content mismatch at byte %d", i)
		}
	}
}

func TestFilenameFor(t *testing.T) {
	tests := []struct {
		name   string
		url    string
		header http.Header
		want   string
	}{
		{
			name:   "disposition_wins_over_url",
			url:    "https://example.com/x/y.bin",
			header: http.Header{"Content-Disposition": []string{`attachment; filename="real.docx"`}},
			want:   "real.docx",
		},
		{
			name:   "disposition_path_stripped",
			url:    "https://example.com/dl",
			header: http.Header{"Content-Disposition": []string{`attachment; filename="../../evil.sh"`}},
			want:   "evil.sh",
		},
		{
			name:   "url_segment_query_stripped",
			url:    "https://example.com/a/b/report.xlsx?sig=123&x=y",
			header: http.Header{},
			want:   "report.xlsx",
		},
		{
			name:   "keeps_existing_extension",
			url:    "https://example.com/notes.txt",
			header: http.Header{"Content-Type": []string{"application/pdf"}},
			want:   "notes.txt",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := filenameFor(tt.url, tt.header); got != tt.want {
				t.Errorf("filenameFor(%q) = %q, want %q", tt.url, got, tt.want)
			}
		})
	}
}
