// Package models defines the data structures shared across the upload pipeline.
package models

// RowMetadata holds the optional metadata gathered from a spreadsheet row's
// bound columns. Empty fields were not supplied. Immutable once built.
type RowMetadata struct {
	URL    string
	Name   string
	Author string
	Date   string
	Type   string
}

// DownloadedFile points at a document fetched into the scratch directory.
// It is owned by the processing of one row and disappears with the scratch
// directory at the end of the run.
type DownloadedFile struct {
	LocalPath string
	Filename  string
}

// DocumentMetadata is the nested metadata object stored inside each record.
type DocumentMetadata struct {
	Title        string  `json:"title"`
	Author       *string `json:"author"`
	UploadDate   string  `json:"upload_date"`
	LastModified string  `json:"last_modified"`
	FileType     string  `json:"file_type"`
	SourceURL    *string `json:"source_url"`
}

// DocumentRecord is the catalog row inserted for each uploaded document.
// Never mutated after insertion; the catalog owns it from then on. The id is
// generated before the storage upload and doubles as the storage-key prefix,
// so object and record always share the same identifier.
type DocumentRecord struct {
	ID           string           `json:"id"`
	Filename     string           `json:"filename"`
	FileType     string           `json:"filetype"`
	FileSize     int64            `json:"filesize"`
	StoragePath  string           `json:"storage_path"`
	Title        string           `json:"title"`
	Author       *string          `json:"author"`
	UploadDate   string           `json:"upload_date"`
	LastModified string           `json:"last_modified"`
	Metadata     DocumentMetadata `json:"metadata"`
}
