// Package timeouts provides centralized timeout constants for the application.
//
// These values are tuned for the admissions site (abit.itmo.ru), which can be
// slow during application season, and for the document-hosting backends the
// curriculum files live on.
package timeouts

import "time"

// Fetch timeouts
const (
	// FetchRequest is the timeout for a single HTTP request, page or binary.
	// Bounded so a hung university server never stalls the whole refresh.
	FetchRequest = 30 * time.Second

	// FetchRetryInitial is the initial delay before retrying a failed request.
	// Uses exponential backoff: 1s -> 2s -> 4s -> 8s
	FetchRetryInitial = 1 * time.Second

	// FetchRetryMax caps the backoff delay between attempts.
	FetchRetryMax = 30 * time.Second
)

// Cache TTLs
const (
	// ProgramsCacheTTL is how long the assembled program list stays valid.
	ProgramsCacheTTL = 6 * time.Hour

	// CurriculumCacheTTL is how long a single parsed curriculum document
	// stays valid. Documents change rarely; 12h keeps reparse cost low.
	CurriculumCacheTTL = 12 * time.Hour

	// DefaultCacheTTL applies to cache writes without an explicit TTL.
	DefaultCacheTTL = 1 * time.Hour
)

// Refresh orchestration
const (
	// RefreshRun bounds one full refresh of all programs, including retries.
	RefreshRun = 5 * time.Minute
)
