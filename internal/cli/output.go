// Package cli provides console output helpers for the uploader.
package cli

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"github.com/Aru010197/document-search/internal/pipeline"
)

// OutputFormat selects how the run summary is rendered.
type OutputFormat string

const (
	// OutputText is human-readable text (default).
	OutputText OutputFormat = "text"
	// OutputJSON is structured JSON for machine consumption.
	OutputJSON OutputFormat = "json"
)

// WriteSummary writes the run summary to w in the given format.
// Use OutputJSON for parseable output consumable by other tools.
func WriteSummary(w io.Writer, summary *pipeline.Summary, format OutputFormat) error {
	switch format {
	case OutputJSON:
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(summary)
	default:
		writeSummaryText(w, summary)
		return nil
	}
}

func writeSummaryText(w io.Writer, summary *pipeline.Summary) {
	rule := strings.Repeat("=", 50)
	fmt.Fprintf(w, "\n%s\n", rule)
	fmt.Fprintln(w, "Upload Summary:")
	fmt.Fprintf(w, "  Total documents processed: %d\n", summary.Processed)
	fmt.Fprintf(w, "  Successfully uploaded: %d\n", summary.Succeeded)
	fmt.Fprintf(w, "  Failed uploads: %d\n", summary.Failed)
	fmt.Fprintln(w, rule)
}
