package program

import (
	"context"
	"log/slog"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/abitbot/curriculum/internal/cache"
	"github.com/abitbot/curriculum/internal/curriculum"
	"github.com/abitbot/curriculum/internal/data"
	"github.com/abitbot/curriculum/internal/timeouts"
)

// ProgramsCacheKey is the cache key under which the assembled program list
// is stored. Downstream code relies on this contract.
const ProgramsCacheKey = "all_programs"

// Service assembles the full program list: landing pages, curriculum
// documents, and the mock fallback, fronted by a shared cache.
type Service struct {
	fetcher  curriculum.Fetcher
	pipeline *curriculum.Pipeline
	cache    *cache.Cache[[]Program]
	cacheTTL time.Duration
	now      func() time.Time
}

// NewService constructs a Service around an already configured extraction
// pipeline. The cache instance may be shared with other consumers.
func NewService(fetcher curriculum.Fetcher, pipeline *curriculum.Pipeline, c *cache.Cache[[]Program], cacheTTL time.Duration) *Service {
	if cacheTTL <= 0 {
		cacheTTL = timeouts.ProgramsCacheTTL
	}
	return &Service{
		fetcher:  fetcher,
		pipeline: pipeline,
		cache:    c,
		cacheTTL: cacheTTL,
		now:      time.Now,
	}
}

// AllPrograms returns every known program with its extracted courses.
// Programs are assembled concurrently; individual failures degrade to a
// program built from static registry data. When no program yields any
// courses at all the mock dataset is substituted so consumers always have
// something to render.
func (s *Service) AllPrograms(ctx context.Context) []Program {
	if cached, ok := s.cache.Get(ProgramsCacheKey); ok {
		slog.InfoContext(ctx, "using cached programs", "count", len(cached))
		return cached
	}

	infos := data.AllPrograms
	results := make([]Program, len(infos))

	g, gctx := errgroup.WithContext(ctx)
	for i, info := range infos {
		g.Go(func() error {
			results[i] = s.assemble(gctx, info)
			return nil
		})
	}
	// Workers never return errors; failures degrade per program.
	_ = g.Wait()

	programs := results
	if !anyCourses(programs) {
		slog.InfoContext(ctx, "no live curriculum data, using mock programs")
		programs = mockPrograms(s.now())
	}

	if len(programs) > 0 {
		s.cache.SetTTL(ProgramsCacheKey, programs, s.cacheTTL)
	}
	return programs
}

// assemble builds one Program from its landing page. A failed page fetch
// still produces a usable record from the static registry plus any locally
// cached curriculum documents.
func (s *Service) assemble(ctx context.Context, info data.ProgramInfo) Program {
	p := Program{
		ID:       info.ID,
		Name:     info.Name,
		URL:      info.URL,
		ParsedAt: s.now(),
	}

	page, err := s.fetcher.FetchPage(ctx, info.URL)
	if err != nil {
		slog.ErrorContext(ctx, "failed to fetch program page", "program_id", info.ID, "error", err)
		p.Courses = s.pipeline.CoursesFromLocalFiles(ctx, info.ID)
		return p
	}

	if title := ExtractTitle(page); title != "" {
		p.Name = title
	}
	p.Description = ExtractDescription(page)
	p.Courses = s.pipeline.CoursesForProgram(ctx, info.ID, page, info.URL)

	slog.InfoContext(ctx, "program assembled", "program_id", p.ID, "courses", len(p.Courses))
	return p
}

func anyCourses(programs []Program) bool {
	for _, p := range programs {
		if len(p.Courses) > 0 {
			return true
		}
	}
	return false
}
