// Package resolver rewrites file-hosting sharing links into directly
// fetchable URLs.
package resolver

import "strings"

const directDownloadEndpoint = "https://drive.google.com/uc?export=download&id="

// Resolve converts Google Drive sharing links to their direct-download form.
// The "file/d/<id>/..." and "open?id=<id>&..." forms are recognized; any
// other URL is returned unchanged. No other providers are special-cased.
func Resolve(rawURL string) string {
	if _, rest, ok := strings.Cut(rawURL, "drive.google.com/file/d/"); ok {
		id, _, _ := strings.Cut(rest, "/")
		id, _, _ = strings.Cut(id, "?")
		return directDownloadEndpoint + id
	}
	if _, rest, ok := strings.Cut(rawURL, "drive.google.com/open?id="); ok {
		id, _, _ := strings.Cut(rest, "&")
		return directDownloadEndpoint + id
	}
	return rawURL
}
