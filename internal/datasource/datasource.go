// Package datasource loads and structurally validates exported dashboard
// bundles, from the network or from a local file.
//
// Validation checks only the top-level bundle shape. Malformed nested
// transcript fields surface later as rendering artifacts, not load failures;
// that is an explicit policy of the export format, which must keep accepting
// sparse per-entry data.
package datasource

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"os"
	"time"

	"github.com/go-viper/mapstructure/v2"
	"github.com/klauspost/compress/gzip"

	"github.com/aigit-dev/examboard/internal/models"
)

// DataSourceError reports a malformed or unreachable input bundle: wrong
// shape, bad JSON, or a non-success HTTP status. Always recoverable; the
// caller keeps the session usable, displays the message, and may retry.
type DataSourceError struct {
	Op  string // "fetch", "parse", or "validate"
	Err error
}

func (e *DataSourceError) Error() string {
	return fmt.Sprintf("data source: %s: %v", e.Op, e.Err)
}

func (e *DataSourceError) Unwrap() error { return e.Err }

// Loader reads dashboard bundles. The zero value is not usable; construct
// with NewLoader.
type Loader struct {
	client *http.Client
	logger *slog.Logger
}

// NewLoader returns a Loader using the given logger, or slog.Default when
// nil.
func NewLoader(logger *slog.Logger) *Loader {
	if logger == nil {
		logger = slog.Default()
	}
	return &Loader{
		client: &http.Client{Timeout: 0}, // loads carry no timeout; a hung fetch blocks only itself
		logger: logger,
	}
}

// LoadFromURL fetches a bundle over HTTP with caching disabled. A non-2xx
// response fails with a *DataSourceError citing the status. No retries: a
// failed load must be explicitly retried by the caller.
func (l *Loader) LoadFromURL(ctx context.Context, url string) (*models.DashboardData, error) {
	start := time.Now()
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, &DataSourceError{Op: "fetch", Err: err}
	}
	req.Header.Set("Cache-Control", "no-store")

	resp, err := l.client.Do(req)
	if err != nil {
		return nil, &DataSourceError{Op: "fetch", Err: err}
	}
	defer resp.Body.Close() //nolint:errcheck

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, &DataSourceError{
			Op:  "fetch",
			Err: fmt.Errorf("%s: unexpected status %d %s", url, resp.StatusCode, http.StatusText(resp.StatusCode)),
		}
	}

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, &DataSourceError{Op: "fetch", Err: err}
	}

	data, err := Parse(raw)
	if err != nil {
		return nil, err
	}
	l.logger.Debug("bundle fetched", "url", url, "entries", len(data.Entries), "elapsed", time.Since(start))
	return data, nil
}

// LoadFromFile reads a bundle from a local path.
func (l *Loader) LoadFromFile(path string) (*models.DashboardData, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, &DataSourceError{Op: "fetch", Err: err}
	}
	data, err := Parse(raw)
	if err != nil {
		return nil, err
	}
	l.logger.Debug("bundle read", "path", path, "entries", len(data.Entries))
	return data, nil
}

// LoadFromReader reads a bundle from an already-open stream, e.g. an upload.
// name is used only in error messages.
func (l *Loader) LoadFromReader(name string, r io.Reader) (*models.DashboardData, error) {
	raw, err := io.ReadAll(r)
	if err != nil {
		return nil, &DataSourceError{Op: "fetch", Err: fmt.Errorf("reading %s: %w", name, err)}
	}
	data, err := Parse(raw)
	if err != nil {
		return nil, err
	}
	l.logger.Debug("bundle uploaded", "name", name, "entries", len(data.Entries))
	return data, nil
}

// Parse decodes raw bundle bytes: optional gzip wrapper, JSON, top-level
// shape validation, then a typed decode. Absent nested fields decode to zero
// values rather than failing.
func Parse(raw []byte) (*models.DashboardData, error) {
	if isGzip(raw) {
		zr, err := gzip.NewReader(bytes.NewReader(raw))
		if err != nil {
			return nil, &DataSourceError{Op: "parse", Err: fmt.Errorf("gzip: %w", err)}
		}
		defer zr.Close() //nolint:errcheck
		raw, err = io.ReadAll(zr)
		if err != nil {
			return nil, &DataSourceError{Op: "parse", Err: fmt.Errorf("gzip: %w", err)}
		}
	}

	var doc any
	if err := json.Unmarshal(raw, &doc); err != nil {
		return nil, &DataSourceError{Op: "parse", Err: err}
	}

	if err := Validate(doc); err != nil {
		return nil, err
	}

	var data models.DashboardData
	dec, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{
		TagName:          "json",
		WeaklyTypedInput: true,
		Result:           &data,
	})
	if err != nil {
		return nil, &DataSourceError{Op: "parse", Err: err}
	}
	if err := dec.Decode(doc); err != nil {
		return nil, &DataSourceError{Op: "parse", Err: err}
	}
	if data.Entries == nil {
		data.Entries = []models.DashboardEntry{}
	}
	return &data, nil
}

func isGzip(b []byte) bool {
	return len(b) >= 2 && b[0] == 0x1f && b[1] == 0x8b
}
