package curriculum

import (
	"context"
	"log/slog"
	"os"
	"path/filepath"
	"time"

	"github.com/PuerkitoBio/goquery"

	"github.com/abitbot/curriculum/internal/cache"
	"github.com/abitbot/curriculum/internal/timeouts"
)

// CacheKeyPrefix prefixes the cache key of a single parsed document.
// Downstream code relies on this contract.
const CacheKeyPrefix = "curriculum_"

// Fetcher retrieves pages and document bytes. Satisfied by *fetch.Client;
// tests substitute fakes.
type Fetcher interface {
	FetchPage(ctx context.Context, url string) (*goquery.Document, error)
	FetchBinary(ctx context.Context, url string) ([]byte, error)
}

// Pipeline drives one program's curriculum resolution: link discovery,
// document fetch, extraction, parsing, and the local-file fallback.
//
// No failure inside the pipeline ever propagates to the caller: every
// boundary degrades to an empty course list plus a logged diagnostic, so a
// program with an unparseable curriculum still renders with zero courses.
type Pipeline struct {
	fetcher  Fetcher
	cache    *cache.Cache[[]Course]
	filesDir string
	cacheTTL time.Duration
}

// NewPipeline constructs a Pipeline. The cache instance is shared with other
// concurrently processed programs; filesDir is the local document store.
func NewPipeline(fetcher Fetcher, c *cache.Cache[[]Course], filesDir string, cacheTTL time.Duration) *Pipeline {
	if cacheTTL <= 0 {
		cacheTTL = timeouts.CurriculumCacheTTL
	}
	return &Pipeline{
		fetcher:  fetcher,
		cache:    c,
		filesDir: filesDir,
		cacheTTL: cacheTTL,
	}
}

// CoursesForProgram resolves the course list for a program whose landing
// page has already been fetched. An empty result is a valid outcome, not an
// error: the caller renders "no curriculum data available".
func (p *Pipeline) CoursesForProgram(ctx context.Context, programID string, page *goquery.Document, pageURL string) []Course {
	link := LocateCurriculumLink(page, pageURL)
	if link != "" {
		if courses := p.CoursesFromURL(ctx, programID, link); len(courses) > 0 {
			return courses
		}
	}

	// Degraded mode: the site gave us nothing, try documents saved by
	// earlier runs.
	return p.CoursesFromLocalFiles(ctx, programID)
}

// CoursesFromURL downloads and parses one curriculum document, consulting
// the shared cache first. Successful downloads are persisted to the files
// directory under a program-derived name so later runs can recover without
// network access.
func (p *Pipeline) CoursesFromURL(ctx context.Context, programID, fileURL string) []Course {
	key := CacheKeyPrefix + fileURL
	if cached, ok := p.cache.Get(key); ok {
		slog.InfoContext(ctx, "using cached curriculum", "file_url", fileURL, "count", len(cached))
		return cached
	}

	data, err := p.fetcher.FetchBinary(ctx, fileURL)
	if err != nil {
		slog.ErrorContext(ctx, "failed to fetch curriculum file", "file_url", fileURL, "error", err)
		return nil
	}

	p.saveLocalCopy(ctx, programID, fileURL, data)

	courses := ParseDocument(ctx, fileURL, data)
	if len(courses) > 0 {
		p.cache.SetTTL(key, courses, p.cacheTTL)
	}
	return courses
}

// ParseDocument routes document bytes to the matching extractor and hands
// the result to the text or grid parser. Unsupported formats and extraction
// failures yield an empty list.
func ParseDocument(ctx context.Context, source string, data []byte) []Course {
	switch format := ExtensionOf(source); format {
	case FormatPDF:
		text, err := extractPDFText(data)
		if err != nil {
			slog.ErrorContext(ctx, "pdf extraction failed", "source", source, "error", err)
			return nil
		}
		return ParseText(text)

	case FormatDOCX:
		text, err := extractDOCXText(data)
		if err != nil {
			slog.ErrorContext(ctx, "docx extraction failed", "source", source, "error", err)
			return nil
		}
		return ParseText(text)

	case FormatXLSX:
		sheets, err := extractXLSXSheets(data)
		if err != nil {
			slog.ErrorContext(ctx, "xlsx extraction failed", "source", source, "error", err)
			return nil
		}
		return ParseSheets(sheets)

	default:
		slog.WarnContext(ctx, "unsupported curriculum format", "source", source)
		return nil
	}
}

// saveLocalCopy persists downloaded bytes as <programID>.<ext> in the files
// directory. The name derives from the program, not the URL, so one file per
// program is kept current.
func (p *Pipeline) saveLocalCopy(ctx context.Context, programID, fileURL string, data []byte) {
	if p.filesDir == "" {
		return
	}
	format := ExtensionOf(fileURL)
	if format == FormatUnknown {
		return
	}

	if err := os.MkdirAll(p.filesDir, 0o755); err != nil {
		slog.WarnContext(ctx, "failed to create files directory", "dir", p.filesDir, "error", err)
		return
	}

	path := filepath.Join(p.filesDir, programID+"."+string(format))
	if err := os.WriteFile(path, data, 0o644); err != nil {
		slog.WarnContext(ctx, "failed to save curriculum copy", "path", path, "error", err)
		return
	}
	slog.DebugContext(ctx, "curriculum copy saved", "path", path, "bytes", len(data))
}
