package curriculum

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/PuerkitoBio/goquery"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/abitbot/curriculum/internal/cache"
)

type stubFetcher struct {
	mu          sync.Mutex
	pages       map[string]string
	files       map[string][]byte
	binaryCalls int
}

func (f *stubFetcher) FetchPage(_ context.Context, url string) (*goquery.Document, error) {
	f.mu.Lock()
	html, ok := f.pages[url]
	f.mu.Unlock()
	if !ok {
		return nil, errors.New("no page: " + url)
	}
	return goquery.NewDocumentFromReader(strings.NewReader(html))
}

func (f *stubFetcher) FetchBinary(_ context.Context, url string) ([]byte, error) {
	f.mu.Lock()
	f.binaryCalls++
	data, ok := f.files[url]
	f.mu.Unlock()
	if !ok {
		return nil, errors.New("no file: " + url)
	}
	return data, nil
}

func newTestPipeline(t *testing.T, fetcher Fetcher) (*Pipeline, string) {
	t.Helper()
	dir := t.TempDir()
	return NewPipeline(fetcher, cache.New[[]Course](time.Hour), dir, 12*time.Hour), dir
}

const planDOCXURL = "https://cdn.itmo.ru/files/plan.docx"

func docxFixture(t *testing.T) []byte {
	t.Helper()
	return zipWithDocument(t, `<w:document xmlns:w="http://schemas.openxmlformats.org/wordprocessingml/2006/main"><w:body>
		<w:p><w:r><w:t>1 семестр</w:t></w:r></w:p>
		<w:p><w:r><w:t>1. Математический анализ 3 108</w:t></w:r></w:p>
	</w:body></w:document>`)
}

func TestCoursesFromURL(t *testing.T) {
	t.Parallel()

	t.Run("downloads parses and caches", func(t *testing.T) {
		t.Parallel()
		fetcher := &stubFetcher{files: map[string][]byte{planDOCXURL: docxFixture(t)}}
		p, dir := newTestPipeline(t, fetcher)

		courses := p.CoursesFromURL(context.Background(), "ai", planDOCXURL)
		require.Len(t, courses, 1)
		assert.Equal(t, "Математический анализ", courses[0].Name)

		// Local copy saved under a program-derived name.
		_, err := os.Stat(filepath.Join(dir, "ai.docx"))
		assert.NoError(t, err)

		// Second call is served from cache.
		again := p.CoursesFromURL(context.Background(), "ai", planDOCXURL)
		assert.Equal(t, courses, again)
		assert.Equal(t, 1, fetcher.binaryCalls)
	})

	t.Run("fetch failure degrades to empty", func(t *testing.T) {
		t.Parallel()
		p, _ := newTestPipeline(t, &stubFetcher{})
		assert.Empty(t, p.CoursesFromURL(context.Background(), "ai", planDOCXURL))
	})

	t.Run("unparseable document is not cached", func(t *testing.T) {
		t.Parallel()
		fetcher := &stubFetcher{files: map[string][]byte{planDOCXURL: []byte("garbage")}}
		p, _ := newTestPipeline(t, fetcher)

		assert.Empty(t, p.CoursesFromURL(context.Background(), "ai", planDOCXURL))
		assert.Empty(t, p.CoursesFromURL(context.Background(), "ai", planDOCXURL))
		assert.Equal(t, 2, fetcher.binaryCalls, "failures must not poison the cache")
	})

	t.Run("unknown format yields empty", func(t *testing.T) {
		t.Parallel()
		url := "https://cdn.itmo.ru/files/plan.txt"
		fetcher := &stubFetcher{files: map[string][]byte{url: []byte("whatever")}}
		p, dir := newTestPipeline(t, fetcher)

		assert.Empty(t, p.CoursesFromURL(context.Background(), "ai", url))

		entries, err := os.ReadDir(dir)
		require.NoError(t, err)
		assert.Empty(t, entries, "unknown formats are not saved locally")
	})
}

func TestCoursesForProgram(t *testing.T) {
	t.Parallel()

	t.Run("link on page", func(t *testing.T) {
		t.Parallel()
		fetcher := &stubFetcher{
			pages: map[string]string{
				"https://abit.itmo.ru/program/master/ai": `<html><body>
					<a href="/files/plan.docx">Скачать учебный план</a>
				</body></html>`,
			},
			files: map[string][]byte{"https://abit.itmo.ru/files/plan.docx": docxFixture(t)},
		}
		p, _ := newTestPipeline(t, fetcher)

		page, err := fetcher.FetchPage(context.Background(), "https://abit.itmo.ru/program/master/ai")
		require.NoError(t, err)

		courses := p.CoursesForProgram(context.Background(), "ai", page, "https://abit.itmo.ru/program/master/ai")
		require.Len(t, courses, 1)
	})

	t.Run("no link falls back to local files", func(t *testing.T) {
		t.Parallel()
		p, dir := newTestPipeline(t, &stubFetcher{})
		require.NoError(t, os.WriteFile(filepath.Join(dir, "ai.docx"), docxFixture(t), 0o644))

		page, err := goquery.NewDocumentFromReader(strings.NewReader(`<html><body>ничего</body></html>`))
		require.NoError(t, err)

		courses := p.CoursesForProgram(context.Background(), "ai", page, "https://abit.itmo.ru/program/master/ai")
		require.Len(t, courses, 1)
		assert.Equal(t, "Математический анализ", courses[0].Name)
	})
}

func TestCoursesFromLocalFiles(t *testing.T) {
	t.Parallel()

	t.Run("program-prefixed file wins", func(t *testing.T) {
		t.Parallel()
		p, dir := newTestPipeline(t, &stubFetcher{})

		other := zipWithDocument(t, `<w:document xmlns:w="http://schemas.openxmlformats.org/wordprocessingml/2006/main"><w:body>
			<w:p><w:r><w:t>Другой предмет 4 144</w:t></w:r></w:p>
		</w:body></w:document>`)
		require.NoError(t, os.WriteFile(filepath.Join(dir, "aaa.docx"), other, 0o644))
		require.NoError(t, os.WriteFile(filepath.Join(dir, "ai.docx"), docxFixture(t), 0o644))

		courses := p.CoursesFromLocalFiles(context.Background(), "ai")
		require.Len(t, courses, 1)
		assert.Equal(t, "Математический анализ", courses[0].Name)
	})

	t.Run("corrupt file is skipped for the next candidate", func(t *testing.T) {
		t.Parallel()
		p, dir := newTestPipeline(t, &stubFetcher{})
		require.NoError(t, os.WriteFile(filepath.Join(dir, "ai.docx"), []byte("broken"), 0o644))
		require.NoError(t, os.WriteFile(filepath.Join(dir, "zzz.docx"), docxFixture(t), 0o644))

		courses := p.CoursesFromLocalFiles(context.Background(), "ai")
		require.Len(t, courses, 1)
	})

	t.Run("unsupported extensions are ignored", func(t *testing.T) {
		t.Parallel()
		p, dir := newTestPipeline(t, &stubFetcher{})
		require.NoError(t, os.WriteFile(filepath.Join(dir, "notes.txt"), []byte("1. Матанализ 3 108"), 0o644))

		assert.Empty(t, p.CoursesFromLocalFiles(context.Background(), "ai"))
	})

	t.Run("missing directory", func(t *testing.T) {
		t.Parallel()
		p := NewPipeline(&stubFetcher{}, cache.New[[]Course](time.Hour), filepath.Join(t.TempDir(), "absent"), time.Hour)
		assert.Empty(t, p.CoursesFromLocalFiles(context.Background(), "ai"))
	})
}
