// Package fetch retrieves program landing pages and curriculum documents
// over HTTP with bounded timeouts, retries, and charset normalization.
package fetch

import (
	"compress/gzip"
	"context"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/PuerkitoBio/goquery"
	"github.com/corpix/uarand"
	"golang.org/x/text/encoding/charmap"
	"golang.org/x/text/transform"

	apperrors "github.com/abitbot/curriculum/internal/errors"
	"github.com/abitbot/curriculum/internal/timeouts"
)

// maxDocumentSize caps how many bytes FetchBinary reads. Curriculum files are
// a few MB at most; anything larger is a misidentified download.
const maxDocumentSize = 64 << 20

// Client is an HTTP client for fetching pages and curriculum documents.
type Client struct {
	httpClient *http.Client
	maxRetries int
}

// NewClient creates a fetch client with the given per-request timeout and
// retry budget.
func NewClient(timeout time.Duration, maxRetries int) *Client {
	if timeout <= 0 {
		timeout = timeouts.FetchRequest
	}
	return &Client{
		httpClient: &http.Client{
			Timeout: timeout,
			Transport: &http.Transport{
				MaxIdleConns:        100,
				MaxIdleConnsPerHost: 10,
				IdleConnTimeout:     90 * time.Second,
			},
		},
		maxRetries: maxRetries,
	}
}

// get performs a GET with retries. Caller is responsible for closing the
// response body on success.
func (c *Client) get(ctx context.Context, url string) (*http.Response, error) {
	var resp *http.Response
	var lastErr error

	err := RetryWithBackoff(ctx, c.maxRetries, timeouts.FetchRetryInitial, timeouts.FetchRetryMax, func() error {
		req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
		if err != nil {
			return permanent(fmt.Errorf("failed to create request: %w", err))
		}

		req.Header.Set("User-Agent", uarand.GetRandom())
		req.Header.Set("Accept", "text/html,application/xhtml+xml,application/xml;q=0.9,*/*;q=0.8")
		req.Header.Set("Accept-Language", "ru-RU,ru;q=0.9,en-US;q=0.8,en;q=0.7")
		req.Header.Set("Accept-Encoding", "gzip, deflate")

		resp, err = c.httpClient.Do(req)
		if err != nil {
			lastErr = apperrors.NewFetchError(url, 0, err)
			return lastErr
		}

		if resp.StatusCode < 200 || resp.StatusCode >= 300 {
			// Close body for non-success responses since we won't return it
			_ = resp.Body.Close()

			statusErr := apperrors.NewFetchError(url, resp.StatusCode,
				fmt.Errorf("unexpected status %d", resp.StatusCode))

			switch resp.StatusCode {
			case http.StatusTooManyRequests,
				http.StatusBadGateway,
				http.StatusServiceUnavailable,
				http.StatusGatewayTimeout:
				lastErr = statusErr
				return lastErr
			default:
				// 404/403/401 and other client errors don't recover on retry.
				return permanent(statusErr)
			}
		}

		return nil
	})

	if err != nil {
		return nil, err
	}
	return resp, nil
}

// bodyReader unwraps gzip and decodes windows-1251 content to UTF-8.
// Russian university infrastructure still serves cp1251 occasionally.
func bodyReader(resp *http.Response) (io.Reader, func(), error) {
	var reader io.Reader = resp.Body
	cleanup := func() {}

	if resp.Header.Get("Content-Encoding") == "gzip" {
		gzipReader, err := gzip.NewReader(resp.Body)
		if err != nil {
			return nil, cleanup, fmt.Errorf("failed to decompress gzip: %w", err)
		}
		cleanup = func() { _ = gzipReader.Close() }
		reader = gzipReader
	}

	contentType := strings.ToLower(resp.Header.Get("Content-Type"))
	if strings.Contains(contentType, "windows-1251") || strings.Contains(contentType, "cp1251") {
		reader = transform.NewReader(reader, charmap.Windows1251.NewDecoder())
	}

	return reader, cleanup, nil
}

// FetchPage retrieves url and parses the response as HTML.
func (c *Client) FetchPage(ctx context.Context, url string) (*goquery.Document, error) {
	resp, err := c.get(ctx, url)
	if err != nil {
		return nil, err
	}
	defer func() { _ = resp.Body.Close() }()

	reader, cleanup, err := bodyReader(resp)
	defer cleanup()
	if err != nil {
		return nil, apperrors.NewFetchError(url, resp.StatusCode, err)
	}

	doc, err := goquery.NewDocumentFromReader(reader)
	if err != nil {
		return nil, apperrors.NewFetchError(url, resp.StatusCode, fmt.Errorf("failed to parse HTML: %w", err))
	}
	return doc, nil
}

// FetchBinary retrieves the raw bytes of a curriculum document.
func (c *Client) FetchBinary(ctx context.Context, url string) ([]byte, error) {
	resp, err := c.get(ctx, url)
	if err != nil {
		return nil, err
	}
	defer func() { _ = resp.Body.Close() }()

	var reader io.Reader = resp.Body
	if resp.Header.Get("Content-Encoding") == "gzip" {
		gzipReader, err := gzip.NewReader(resp.Body)
		if err != nil {
			return nil, apperrors.NewFetchError(url, resp.StatusCode, fmt.Errorf("failed to decompress gzip: %w", err))
		}
		defer func() { _ = gzipReader.Close() }()
		reader = gzipReader
	}

	data, err := io.ReadAll(io.LimitReader(reader, maxDocumentSize))
	if err != nil {
		return nil, apperrors.NewFetchError(url, resp.StatusCode, fmt.Errorf("failed to read body: %w", err))
	}
	return data, nil
}
