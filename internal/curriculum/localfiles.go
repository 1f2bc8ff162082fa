package curriculum

import (
	"context"
	"log/slog"
	"os"
	"path/filepath"
	"sort"
	"strings"
)

// CoursesFromLocalFiles re-parses previously downloaded documents from the
// files directory when network retrieval yields nothing. Files saved for the
// requested program are tried first, then the rest of the directory; the
// first non-empty parse wins.
func (p *Pipeline) CoursesFromLocalFiles(ctx context.Context, programID string) []Course {
	if p.filesDir == "" {
		return nil
	}

	entries, err := os.ReadDir(p.filesDir)
	if err != nil {
		if !os.IsNotExist(err) {
			slog.WarnContext(ctx, "failed to read files directory", "dir", p.filesDir, "error", err)
		}
		return nil
	}

	var candidates []string
	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}
		if ExtensionOf(entry.Name()) == FormatUnknown {
			continue
		}
		candidates = append(candidates, entry.Name())
	}

	sort.Slice(candidates, func(i, j int) bool {
		iOwn := strings.HasPrefix(candidates[i], programID+".")
		jOwn := strings.HasPrefix(candidates[j], programID+".")
		if iOwn != jOwn {
			return iOwn
		}
		return candidates[i] < candidates[j]
	})

	for _, name := range candidates {
		path := filepath.Join(p.filesDir, name)
		data, err := os.ReadFile(path)
		if err != nil {
			slog.WarnContext(ctx, "failed to read cached document", "path", path, "error", err)
			continue
		}

		if courses := ParseDocument(ctx, path, data); len(courses) > 0 {
			slog.InfoContext(ctx, "recovered courses from local file",
				"program_id", programID,
				"path", path,
				"count", len(courses))
			return courses
		}
	}

	return nil
}
