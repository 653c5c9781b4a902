// Package fetch downloads documents into the scratch directory.
package fetch

import (
	"context"
	"fmt"
	"io"
	"mime"
	"net/http"
	"os"
	"path/filepath"
	"strings"

	"github.com/schollz/progressbar/v3"

	"github.com/Aru010197/document-search/internal/models"
	"github.com/Aru010197/document-search/internal/resolver"
)

const defaultChunkSize = 8192

// DownloadError marks a row-local download failure: the row is skipped and
// the run continues. A partial file may remain in the scratch directory,
// which is discarded wholesale at run end.
type DownloadError struct {
	URL string
	Err error
}

func (e *DownloadError) Error() string {
	return fmt.Sprintf("download %s: %v", e.URL, e.Err)
}

func (e *DownloadError) Unwrap() error { return e.Err }

// Fetcher streams documents from resolved URLs into a scratch directory.
type Fetcher struct {
	client    *http.Client
	chunkSize int
	progress  io.Writer
}

// FetcherOption configures a Fetcher.
type FetcherOption func(*Fetcher)

// WithChunkSize sets the copy buffer size in bytes.
func WithChunkSize(n int) FetcherOption {
	return func(f *Fetcher) {
		if n > 0 {
			f.chunkSize = n
		}
	}
}

// WithProgressWriter redirects progress bar output (default os.Stderr).
func WithProgressWriter(w io.Writer) FetcherOption {
	return func(f *Fetcher) {
		f.progress = w
	}
}

// NewFetcher returns a Fetcher. The HTTP client carries no timeout: large
// documents may take arbitrarily long and the process is interruptible.
func NewFetcher(opts ...FetcherOption) *Fetcher {
	f := &Fetcher{
		client:    &http.Client{},
		chunkSize: defaultChunkSize,
		progress:  os.Stderr,
	}
	for _, opt := range opts {
		opt(f)
	}
	return f
}

// Download resolves rawURL, issues a streaming GET, and writes the body into
// scratchDir in fixed-size chunks with byte progress reported against
// Content-Length (indeterminate when the header is absent). The filename
// comes from the Content-Disposition header when present, else from the URL's
// final path segment, with an extension guessed from Content-Type if missing.
// Transport errors and non-2xx statuses return a *DownloadError.
func (f *Fetcher) Download(ctx context.Context, rawURL, scratchDir string) (*models.DownloadedFile, error) {
	directURL := resolver.Resolve(rawURL)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, directURL, nil)
	if err != nil {
		return nil, &DownloadError{URL: rawURL, Err: err}
	}
	resp, err := f.client.Do(req)
	if err != nil {
		return nil, &DownloadError{URL: rawURL, Err: err}
	}
	defer resp.Body.Close()
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, &DownloadError{URL: rawURL, Err: fmt.Errorf("unexpected status %s", resp.Status)}
	}

	filename := filenameFor(directURL, resp.Header)
	localPath := filepath.Join(scratchDir, filename)
	out, err := os.Create(localPath)
	if err != nil {
		return nil, &DownloadError{URL: rawURL, Err: err}
	}
	defer out.Close()

	bar := progressbar.NewOptions64(resp.ContentLength,
		progressbar.OptionSetDescription(filename),
		progressbar.OptionSetWriter(f.progress),
		progressbar.OptionShowBytes(true),
		progressbar.OptionClearOnFinish(),
	)
	buf := make([]byte, f.chunkSize)
	if _, err := io.CopyBuffer(io.MultiWriter(out, bar), resp.Body, buf); err != nil {
		return nil, &DownloadError{URL: rawURL, Err: err}
	}
	_ = bar.Finish()

	return &models.DownloadedFile{LocalPath: localPath, Filename: filename}, nil
}

// filenameFor infers the output filename: Content-Disposition filename=
// first, then the URL's last path segment before the query string, extended
// from Content-Type when it has no extension.
func filenameFor(directURL string, header http.Header) string {
	if cd := header.Get("Content-Disposition"); cd != "" {
		if _, params, err := mime.ParseMediaType(cd); err == nil {
			if name := params["filename"]; name != "" {
				return filepath.Base(name)
			}
		}
	}
	name := directURL
	if i := strings.LastIndex(name, "/"); i >= 0 {
		name = name[i+1:]
	}
	name, _, _ = strings.Cut(name, "?")
	if !strings.Contains(name, ".") {
		if exts, err := mime.ExtensionsByType(header.Get("Content-Type")); err == nil && len(exts) > 0 {
			name += exts[0]
		}
	}
	return name
}
