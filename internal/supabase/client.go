// Package supabase is a minimal client for the two Supabase surfaces the
// uploader touches: storage object upload and REST record insert.
package supabase

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
)

// StorageUploadError marks a failed object-store upload. Row-local: the row
// is skipped and no catalog insert is attempted for it.
type StorageUploadError struct {
	Key    string
	Status int
	Err    error
}

func (e *StorageUploadError) Error() string {
	msg := "storage upload " + e.Key
	if e.Status != 0 {
		msg += fmt.Sprintf(": status %d", e.Status)
	}
	if e.Err != nil {
		msg += ": " + e.Err.Error()
	}
	return msg
}

func (e *StorageUploadError) Unwrap() error { return e.Err }

// RecordInsertError marks a failed catalog insert. Row-local: the row is
// skipped; the already-uploaded storage object is not rolled back, so the
// error names the orphaned key.
type RecordInsertError struct {
	Table  string
	Key    string
	Status int
	Err    error
}

func (e *RecordInsertError) Error() string {
	msg := "catalog insert into " + e.Table
	if e.Status != 0 {
		msg += fmt.Sprintf(": status %d", e.Status)
	}
	if e.Err != nil {
		msg += ": " + e.Err.Error()
	}
	if e.Key != "" {
		msg += fmt.Sprintf(" (stored object %s left behind)", e.Key)
	}
	return msg
}

func (e *RecordInsertError) Unwrap() error { return e.Err }

// Client talks to one Supabase project over its REST APIs, authenticated
// with the service-role key on every call.
type Client struct {
	baseURL string
	apiKey  string
	http    *http.Client
}

// NewClient returns a Client for the project at baseURL.
func NewClient(baseURL, apiKey string) *Client {
	return &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		apiKey:  apiKey,
		http:    &http.Client{},
	}
}

func (c *Client) authorize(req *http.Request) {
	req.Header.Set("Authorization", "Bearer "+c.apiKey)
	req.Header.Set("apikey", c.apiKey)
}

// uploadResponse is the storage API's success body.
type uploadResponse struct {
	Key string `json:"Key"`
}

// UploadObject stores content under {bucket}/{key}, tagged with contentType.
// Success is a 200-class response whose body names the stored key; anything
// else is a *StorageUploadError.
func (c *Client) UploadObject(ctx context.Context, bucket, key string, content []byte, contentType string) error {
	endpoint := fmt.Sprintf("%s/storage/v1/object/%s/%s", c.baseURL, bucket, key)
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint, bytes.NewReader(content))
	if err != nil {
		return &StorageUploadError{Key: key, Err: err}
	}
	c.authorize(req)
	if contentType != "" {
		req.Header.Set("Content-Type", contentType)
	}
	resp, err := c.http.Do(req)
	if err != nil {
		return &StorageUploadError{Key: key, Err: err}
	}
	defer resp.Body.Close()
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return &StorageUploadError{Key: key, Status: resp.StatusCode, Err: errFromBody(resp.Body)}
	}
	var ur uploadResponse
	if err := json.NewDecoder(resp.Body).Decode(&ur); err != nil || ur.Key == "" {
		return &StorageUploadError{Key: key, Status: resp.StatusCode, Err: fmt.Errorf("response missing stored key")}
	}
	return nil
}

// InsertRecord POSTs record to the table's REST collection, asking for the
// created representation back. Success is 201; anything else is a
// *RecordInsertError.
func (c *Client) InsertRecord(ctx context.Context, table string, record any) error {
	body, err := json.Marshal(record)
	if err != nil {
		return &RecordInsertError{Table: table, Err: err}
	}
	endpoint := fmt.Sprintf("%s/rest/v1/%s", c.baseURL, table)
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint, bytes.NewReader(body))
	if err != nil {
		return &RecordInsertError{Table: table, Err: err}
	}
	c.authorize(req)
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Prefer", "return=representation")
	resp, err := c.http.Do(req)
	if err != nil {
		return &RecordInsertError{Table: table, Err: err}
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusCreated {
		return &RecordInsertError{Table: table, Status: resp.StatusCode, Err: errFromBody(resp.Body)}
	}
	return nil
}

// errFromBody turns a trimmed error response body into an error, nil when empty.
func errFromBody(r io.Reader) error {
	b, _ := io.ReadAll(io.LimitReader(r, 4096))
	if msg := strings.TrimSpace(string(b)); msg != "" {
		return fmt.Errorf("%s", msg)
	}
	return nil
}
