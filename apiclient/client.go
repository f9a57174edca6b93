// Package apiclient talks to the medicines backend over HTTP.
// Reads are JSON, writes are form-encoded, and every non-2xx answer is
// reported as a *StatusError.
package apiclient

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/giygas/medicines-admin/entities"
	"github.com/giygas/medicines-admin/interfaces"
	"github.com/giygas/medicines-admin/logging"
	"github.com/giygas/medicines-admin/metrics"
	"golang.org/x/text/encoding/charmap"
)

// Backend endpoints
const (
	PathMedicines    = "/medicines"
	PathAveragePrice = "/report/average-price"
	PathCreate       = "/create"
	PathUpdate       = "/update"
	PathDelete       = "/delete"
)

// maxBodySize caps how much of a backend response is read
const maxBodySize = 10 * 1024 * 1024

// StatusError is returned when the backend answers outside the 2xx range
type StatusError struct {
	Method     string
	Path       string
	StatusCode int
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("%s %s: unexpected status %d", e.Method, e.Path, e.StatusCode)
}

// IsStatus reports whether err is a StatusError carrying code
func IsStatus(err error, code int) bool {
	var se *StatusError
	return errors.As(err, &se) && se.StatusCode == code
}

var _ interfaces.MedicinesAPI = (*Client)(nil)

// Client implements interfaces.MedicinesAPI against a live backend
type Client struct {
	baseURL    string
	httpClient *http.Client
}

// NewClient creates a client for baseURL. timeout bounds every call.
func NewClient(baseURL string, timeout time.Duration) *Client {
	return &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		httpClient: &http.Client{
			Timeout: timeout,
		},
	}
}

// BaseURL returns the backend origin the client was built with
func (c *Client) BaseURL() string {
	return c.baseURL
}

// ListMedicines returns the decoded /medicines payload without interpreting it.
// Numbers are kept as json.Number so that prices survive untouched.
func (c *Client) ListMedicines(ctx context.Context) (any, error) {
	body, err := c.do(ctx, http.MethodGet, PathMedicines, nil)
	if err != nil {
		return nil, err
	}

	var payload any
	if err := decodeJSON(body, &payload); err != nil {
		return nil, fmt.Errorf("failed to decode %s: %w", PathMedicines, err)
	}
	return payload, nil
}

// AveragePrice returns the /report/average-price aggregate
func (c *Client) AveragePrice(ctx context.Context) (entities.AveragePriceReport, error) {
	var report entities.AveragePriceReport

	body, err := c.do(ctx, http.MethodGet, PathAveragePrice, nil)
	if err != nil {
		return report, err
	}

	if err := json.Unmarshal(body, &report); err != nil {
		return entities.AveragePriceReport{}, fmt.Errorf("failed to decode %s: %w", PathAveragePrice, err)
	}
	return report, nil
}

// CreateMedicine posts name and price. The raw response body is returned for logging.
func (c *Client) CreateMedicine(ctx context.Context, name, price string) ([]byte, error) {
	return c.do(ctx, http.MethodPost, PathCreate, url.Values{"name": {name}, "price": {price}})
}

// UpdateMedicine sets the price of the medicine called name
func (c *Client) UpdateMedicine(ctx context.Context, name, price string) error {
	_, err := c.do(ctx, http.MethodPost, PathUpdate, url.Values{"name": {name}, "price": {price}})
	return err
}

// DeleteMedicine removes the medicine called name
func (c *Client) DeleteMedicine(ctx context.Context, name string) error {
	_, err := c.do(ctx, http.MethodDelete, PathDelete, url.Values{"name": {name}})
	return err
}

func (c *Client) do(ctx context.Context, method, path string, form url.Values) (body []byte, err error) {
	start := time.Now()
	defer func() {
		outcome := "ok"
		var se *StatusError
		switch {
		case errors.As(err, &se):
			outcome = "status"
		case err != nil:
			outcome = "transport"
		}
		metrics.BackendRequestTotals.WithLabelValues(path, outcome).Inc()
		metrics.BackendRequestDuration.WithLabelValues(path).Observe(time.Since(start).Seconds())
	}()

	var reqBody io.Reader
	if form != nil {
		reqBody = strings.NewReader(form.Encode())
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reqBody)
	if err != nil {
		return nil, fmt.Errorf("failed to build %s %s: %w", method, path, err)
	}
	if form != nil {
		req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	}
	req.Header.Set("Accept", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%s %s: %w", method, path, err)
	}
	defer func() {
		if cerr := resp.Body.Close(); cerr != nil {
			logging.Warn("Failed to close response body", "path", path, "error", cerr)
		}
	}()

	raw, err := io.ReadAll(io.LimitReader(resp.Body, maxBodySize))
	if err != nil {
		return nil, fmt.Errorf("failed to read %s response: %w", path, err)
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, &StatusError{Method: method, Path: path, StatusCode: resp.StatusCode}
	}

	return toUTF8(raw)
}

// toUTF8 decodes bodies that are not valid UTF-8 as ISO-8859-1
func toUTF8(raw []byte) ([]byte, error) {
	if utf8.Valid(raw) {
		return raw, nil
	}
	decoded, err := io.ReadAll(charmap.ISO8859_1.NewDecoder().Reader(bytes.NewReader(raw)))
	if err != nil {
		return nil, fmt.Errorf("failed to decode ISO-8859-1 body: %w", err)
	}
	return decoded, nil
}

func decodeJSON(body []byte, v any) error {
	dec := json.NewDecoder(bytes.NewReader(body))
	dec.UseNumber()
	if err := dec.Decode(v); err != nil {
		return err
	}
	// Trailing garbage makes the whole document invalid
	if _, err := dec.Token(); err != io.EOF {
		return errors.New("unexpected data after JSON value")
	}
	return nil
}
