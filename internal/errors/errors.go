// Package errors provides domain-specific error types and sentinel errors
// for improved error handling across the application.
package errors

import (
	"errors"
	"fmt"
)

// Sentinel errors for common scenarios.
// Use errors.Is() to check these errors in your code.
var (
	// ErrNotFound indicates a requested resource was not found.
	ErrNotFound = errors.New("resource not found")

	// ErrCacheExpired indicates cached data has exceeded TTL.
	ErrCacheExpired = errors.New("cache expired")

	// ErrNoCurriculumLink indicates a program page contains no discoverable
	// curriculum document link.
	ErrNoCurriculumLink = errors.New("no curriculum link found")

	// ErrUnsupportedFormat indicates a curriculum document has an extension
	// the pipeline cannot parse.
	ErrUnsupportedFormat = errors.New("unsupported document format")

	// ErrTimeout indicates an operation timed out.
	ErrTimeout = errors.New("operation timed out")

	// ErrContextCanceled indicates context was canceled.
	ErrContextCanceled = errors.New("context canceled")
)

// FetchError represents document/page retrieval failures with context.
type FetchError struct {
	URL        string
	StatusCode int
	Err        error
}

func (e *FetchError) Error() string {
	if e.StatusCode > 0 {
		return fmt.Sprintf("fetch error (url=%s, status=%d): %v", e.URL, e.StatusCode, e.Err)
	}
	return fmt.Sprintf("fetch error (url=%s): %v", e.URL, e.Err)
}

func (e *FetchError) Unwrap() error {
	return e.Err
}

// NewFetchError creates a new fetch error.
func NewFetchError(url string, statusCode int, err error) *FetchError {
	return &FetchError{
		URL:        url,
		StatusCode: statusCode,
		Err:        err,
	}
}

// ExtractError represents a failure to extract text from a downloaded
// curriculum document. It carries the source identifier for diagnostics.
type ExtractError struct {
	Source string // URL or file path of the document
	Format string // pdf, docx, xlsx
	Err    error
}

func (e *ExtractError) Error() string {
	return fmt.Sprintf("extract error (source=%s, format=%s): %v", e.Source, e.Format, e.Err)
}

func (e *ExtractError) Unwrap() error {
	return e.Err
}

// NewExtractError creates a new extraction error.
func NewExtractError(source, format string, err error) *ExtractError {
	return &ExtractError{
		Source: source,
		Format: format,
		Err:    err,
	}
}
