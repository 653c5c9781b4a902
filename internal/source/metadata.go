package source

import (
	"strings"
	"time"

	"github.com/araddon/dateparse"
	"go.uber.org/zap"

	"github.com/Aru010197/document-search/internal/models"
)

// Bindings names the optional metadata columns. Empty fields are unbound;
// bound names missing from the sheet header are silently ignored.
type Bindings struct {
	Name   string
	Author string
	Date   string
	Type   string
}

// Metadata assembles the row's metadata from the bound columns. The date
// column is parsed best-effort and normalized to RFC 3339; values that do
// not parse pass through verbatim, with a warning so malformed dates stay
// visible without failing the row.
func (b Bindings) Metadata(s *Sheet, row Row, url string, logger *zap.Logger) *models.RowMetadata {
	meta := &models.RowMetadata{URL: url}
	if b.Name != "" && s.HasColumn(b.Name) {
		meta.Name = strings.TrimSpace(row.Get(b.Name))
	}
	if b.Author != "" && s.HasColumn(b.Author) {
		meta.Author = strings.TrimSpace(row.Get(b.Author))
	}
	if b.Type != "" && s.HasColumn(b.Type) {
		meta.Type = strings.TrimSpace(row.Get(b.Type))
	}
	if b.Date != "" && s.HasColumn(b.Date) {
		if raw := strings.TrimSpace(row.Get(b.Date)); raw != "" {
			normalized, ok := NormalizeDate(raw)
			if !ok && logger != nil {
				logger.Warn("date column did not parse, keeping raw value", zap.String("value", raw))
			}
			meta.Date = normalized
		}
	}
	return meta
}

// NormalizeDate parses raw with a permissive date parser and returns it in
// RFC 3339. Unparseable input is returned unchanged with ok=false.
func NormalizeDate(raw string) (string, bool) {
	t, err := dateparse.ParseAny(raw)
	if err != nil {
		return raw, false
	}
	return t.Format(time.RFC3339), true
}
