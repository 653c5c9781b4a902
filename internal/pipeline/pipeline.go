// Package pipeline drives the per-row download-and-ingest loop.
package pipeline

import (
	"context"
	"fmt"
	"io"
	"os"
	"strings"

	"go.uber.org/zap"

	"github.com/Aru010197/document-search/internal/models"
	"github.com/Aru010197/document-search/internal/source"
)

// Fetcher downloads one document into the scratch directory.
type Fetcher interface {
	Download(ctx context.Context, rawURL, scratchDir string) (*models.DownloadedFile, error)
}

// Ingestor pushes one downloaded document to the external stores.
type Ingestor interface {
	Ingest(ctx context.Context, localPath, filename string, meta *models.RowMetadata) (string, error)
}

// Summary holds the terminal counters of one run.
type Summary struct {
	Processed int `json:"processed"`
	Succeeded int `json:"succeeded"`
	Failed    int `json:"failed"`
}

// Pipeline wires the parsed sheet to the fetcher and ingestor.
type Pipeline struct {
	fetcher  Fetcher
	ingestor Ingestor
	logger   *zap.Logger
	out      io.Writer
}

// NewPipeline returns a Pipeline writing per-row progress lines to out.
func NewPipeline(fetcher Fetcher, ingestor Ingestor, logger *zap.Logger, out io.Writer) *Pipeline {
	if logger == nil {
		logger = zap.NewNop()
	}
	if out == nil {
		out = os.Stdout
	}
	return &Pipeline{fetcher: fetcher, ingestor: ingestor, logger: logger, out: out}
}

// Run processes every row of the sheet sequentially. The link column must
// exist in the header or Run fails before touching anything. Rows with a
// blank link cell are skipped outright and count as neither success nor
// failure; any download or ingest error marks the row failed and the loop
// moves on — no retries. The scratch directory lives for the whole run and
// is removed before Run returns, however many rows failed.
func (p *Pipeline) Run(ctx context.Context, sheet *source.Sheet, linkColumn string, bindings source.Bindings) (*Summary, error) {
	if !sheet.HasColumn(linkColumn) {
		return nil, fmt.Errorf("column %q not found in sheet (available: %s)",
			linkColumn, strings.Join(sheet.Columns, ", "))
	}

	scratchDir, err := os.MkdirTemp("", "docuploader-*")
	if err != nil {
		return nil, fmt.Errorf("create scratch directory: %w", err)
	}
	defer os.RemoveAll(scratchDir)
	p.logger.Debug("scratch directory created", zap.String("path", scratchDir))

	summary := &Summary{}
	total := len(sheet.Rows)
	for i, row := range sheet.Rows {
		url := strings.TrimSpace(row.Get(linkColumn))
		if url == "" {
			continue
		}
		fmt.Fprintf(p.out, "\nProcessing document %d/%d: %s\n", i+1, total, url)
		meta := bindings.Metadata(sheet, row, url, p.logger)

		file, err := p.fetcher.Download(ctx, url, scratchDir)
		if err != nil {
			p.logger.Warn("download failed, skipping row",
				zap.String("url", url),
				zap.Error(err))
			summary.Failed++
			continue
		}

		id, err := p.ingestor.Ingest(ctx, file.LocalPath, file.Filename, meta)
		if err != nil {
			p.logger.Warn("ingest failed, skipping row",
				zap.String("url", url),
				zap.String("filename", file.Filename),
				zap.Error(err))
			summary.Failed++
			continue
		}
		fmt.Fprintf(p.out, "Successfully uploaded %s (ID: %s)\n", file.Filename, id)
		summary.Succeeded++
	}
	summary.Processed = summary.Succeeded + summary.Failed
	return summary, nil
}
