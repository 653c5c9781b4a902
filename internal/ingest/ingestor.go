// Package ingest uploads downloaded documents to the object store and records
// them in the catalog.
package ingest

import (
	"context"
	"errors"
	"fmt"
	"mime"
	"os"
	"path/filepath"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/Aru010197/document-search/internal/classify"
	"github.com/Aru010197/document-search/internal/models"
	"github.com/Aru010197/document-search/internal/supabase"
)

// Store is the slice of the Supabase client the ingestor needs.
type Store interface {
	UploadObject(ctx context.Context, bucket, key string, content []byte, contentType string) error
	InsertRecord(ctx context.Context, table string, record any) error
}

// Ingestor pushes one downloaded file into the object store and the catalog.
type Ingestor struct {
	store  Store
	bucket string
	table  string
	logger *zap.Logger
	now    func() time.Time
}

// NewIngestor returns an Ingestor writing to the given bucket and table.
func NewIngestor(store Store, bucket, table string, logger *zap.Logger) *Ingestor {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Ingestor{
		store:  store,
		bucket: bucket,
		table:  table,
		logger: logger,
		now:    time.Now,
	}
}

// Ingest uploads the file at localPath under a freshly generated identifier
// and inserts the matching catalog record. The storage write always happens
// before the catalog write: an upload failure means no insert is attempted.
// An insert failure leaves the stored object behind; the returned error names
// its key. Returns the generated document id on success.
func (i *Ingestor) Ingest(ctx context.Context, localPath, filename string, meta *models.RowMetadata) (string, error) {
	id := uuid.NewString()
	fileType := classify.FileType(filename)

	info, err := os.Stat(localPath)
	if err != nil {
		return "", fmt.Errorf("stat %s: %w", localPath, err)
	}
	content, err := os.ReadFile(localPath)
	if err != nil {
		return "", fmt.Errorf("read %s: %w", localPath, err)
	}
	contentType := mime.TypeByExtension(filepath.Ext(filename))
	if contentType == "" {
		contentType = "application/octet-stream"
	}

	storagePath := id + "/" + filename
	if err := i.store.UploadObject(ctx, i.bucket, storagePath, content, contentType); err != nil {
		return "", err
	}

	record := i.buildRecord(id, filename, fileType, info.Size(), storagePath, meta)
	if err := i.store.InsertRecord(ctx, i.table, record); err != nil {
		var insertErr *supabase.RecordInsertError
		if errors.As(err, &insertErr) {
			insertErr.Key = storagePath
		}
		return "", err
	}

	i.logger.Info("document ingested",
		zap.String("id", id),
		zap.String("filename", filename),
		zap.String("storage_path", storagePath),
		zap.Int64("size", info.Size()),
	)
	return id, nil
}

// buildRecord assembles the catalog record. Title defaults to the filename;
// author and source URL stay null unless supplied; last-modified defaults to
// the upload timestamp unless the row carried a date.
func (i *Ingestor) buildRecord(id, filename, fileType string, size int64, storagePath string, meta *models.RowMetadata) *models.DocumentRecord {
	now := i.now().Format(time.RFC3339)

	title := filename
	lastModified := now
	var author, sourceURL *string
	if meta != nil {
		if meta.Name != "" {
			title = meta.Name
		}
		if meta.Author != "" {
			author = &meta.Author
		}
		if meta.Date != "" {
			lastModified = meta.Date
		}
		if meta.URL != "" {
			sourceURL = &meta.URL
		}
	}

	return &models.DocumentRecord{
		ID:           id,
		Filename:     filename,
		FileType:     fileType,
		FileSize:     size,
		StoragePath:  storagePath,
		Title:        title,
		Author:       author,
		UploadDate:   now,
		LastModified: lastModified,
		Metadata: models.DocumentMetadata{
			Title:        title,
			Author:       author,
			UploadDate:   now,
			LastModified: lastModified,
			FileType:     fileType,
			SourceURL:    sourceURL,
		},
	}
}
