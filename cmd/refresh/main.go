// Command refresh fetches every known master's program, extracts its
// curriculum, and refreshes the local document copies. With -out it also
// writes the assembled program list as JSON for downstream consumers.
package main

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"log/slog"
	"os"
	"time"

	"github.com/google/uuid"

	"github.com/abitbot/curriculum/internal/cache"
	"github.com/abitbot/curriculum/internal/config"
	"github.com/abitbot/curriculum/internal/curriculum"
	"github.com/abitbot/curriculum/internal/fetch"
	"github.com/abitbot/curriculum/internal/logger"
	"github.com/abitbot/curriculum/internal/program"
	"github.com/abitbot/curriculum/internal/sentry"
	"github.com/abitbot/curriculum/internal/timeouts"
)

// CLI flags
var (
	outFlag     = flag.String("out", "", "Write assembled programs as JSON to this file")
	timeoutFlag = flag.Duration("timeout", timeouts.RefreshRun, "Overall run timeout")
)

func main() {
	flag.Parse()

	cfg, err := config.Load()
	if err != nil {
		_, _ = fmt.Fprintf(os.Stderr, "Failed to load config: %v\n", err)
		os.Exit(1)
	}

	log := logger.NewWithBetterstack(cfg.LogLevel, cfg.BetterstackToken)
	runID := uuid.NewString()
	log = log.WithRunID(runID)
	// Library packages log through the default slog logger.
	slog.SetDefault(log.Logger)

	if err := sentry.Initialize(sentry.Config{
		Token:       cfg.SentryToken,
		Host:        cfg.SentryHost,
		Environment: cfg.Environment,
	}); err != nil {
		log.WithError(err).Error("Failed to initialize error tracking")
	}
	defer sentry.Flush(2 * time.Second)

	log.WithField("files_dir", cfg.FilesDir).Info("Starting curriculum refresh")

	client := fetch.NewClient(cfg.FetchTimeout, cfg.FetchMaxRetries)
	courseCache := cache.New[[]curriculum.Course](cfg.DefaultCacheTTL)
	programCache := cache.New[[]program.Program](cfg.DefaultCacheTTL)
	pipeline := curriculum.NewPipeline(client, courseCache, cfg.FilesDir, cfg.CurriculumCacheTTL)
	svc := program.NewService(client, pipeline, programCache, cfg.ProgramsCacheTTL)

	ctx, cancel := context.WithTimeout(context.Background(), *timeoutFlag)
	defer cancel()

	startTime := time.Now()
	programs := svc.AllPrograms(ctx)

	totalCourses := 0
	for _, p := range programs {
		totalCourses += len(p.Courses)
		log.WithModule("refresh").
			WithField("program_id", p.ID).
			WithField("name", p.Name).
			WithField("courses", len(p.Courses)).
			WithField("credits", p.TotalCredits()).
			WithField("semesters", p.DurationSemesters()).
			Info("Program refreshed")
	}

	if *outFlag != "" {
		if err := writePrograms(*outFlag, programs); err != nil {
			log.WithError(err).Error("Failed to write output file")
			sentry.CaptureException(err)
			os.Exit(1)
		}
		log.WithField("path", *outFlag).Info("Programs written")
	}

	log.WithField("programs", len(programs)).
		WithField("courses", totalCourses).
		WithField("duration", time.Since(startTime).Round(time.Millisecond).String()).
		Info("Refresh complete")

	if len(programs) == 0 {
		os.Exit(1)
	}
}

func writePrograms(path string, programs []program.Program) error {
	data, err := json.MarshalIndent(programs, "", "  ")
	if err != nil {
		return fmt.Errorf("marshal programs: %w", err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("write %s: %w", path, err)
	}
	return nil
}
