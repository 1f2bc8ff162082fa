package curriculum

import (
	"encoding/json"
	"log/slog"
	"net/url"
	"regexp"
	"strings"

	"github.com/PuerkitoBio/goquery"
)

// pageStateKey is the key in the site's embedded client-side data blob whose
// value is the curriculum document URL. The site's own download button is
// rendered from this field, which makes it the most reliable source.
const pageStateKey = "academic_plan"

// downloadPhrase is the visible text of the curriculum download control.
var downloadPhrase = regexp.MustCompile(`(?i)скачать\s+учебный\s+план`)

// linkTextPatterns match anchor text that refers to the curriculum document.
var linkTextPatterns = []*regexp.Regexp{
	regexp.MustCompile(`(?i)учебный\s+план`),
	regexp.MustCompile(`(?i)curriculum`),
	regexp.MustCompile(`(?i)план\s+обучения`),
	regexp.MustCompile(`(?i)скачать.*план`),
}

// hrefKeywords are path tokens that mark a document URL as curriculum-related.
var hrefKeywords = []string{"plan", "curriculum", "учебн", "academic"}

var urlShapeRe = regexp.MustCompile(`https?://[^\s"'<>\\]+`)

// LocateCurriculumLink finds the absolute URL of a program's curriculum
// document on its landing page. Stages are tried in strict priority order;
// the first hit wins. Returns "" when no stage yields a result; the caller
// falls back to locally cached files.
func LocateCurriculumLink(doc *goquery.Document, baseURL string) string {
	if u := linkFromPageState(doc); u != "" {
		slog.Debug("curriculum link from page-state JSON", "url", u)
		return u
	}
	if u := linkFromInlineScripts(doc); u != "" {
		slog.Debug("curriculum link from inline script", "url", u)
		return u
	}
	if u := linkFromDownloadButton(doc, baseURL); u != "" {
		slog.Debug("curriculum link from download button", "url", u)
		return u
	}
	if u := linkFromAnchorScan(doc, baseURL); u != "" {
		slog.Debug("curriculum link from anchor scan", "url", u)
		return u
	}

	slog.Warn("no curriculum link found", "base_url", baseURL)
	return ""
}

// linkFromPageState searches embedded application/json script blobs for a
// key named academic_plan holding an absolute URL.
func linkFromPageState(doc *goquery.Document) string {
	var found string

	doc.Find(`script[type="application/json"]`).EachWithBreak(func(i int, s *goquery.Selection) bool {
		var tree any
		if err := json.Unmarshal([]byte(s.Text()), &tree); err != nil {
			return true
		}
		if u := searchJSONTree(tree, pageStateKey); u != "" {
			found = u
			return false
		}
		return true
	})

	return found
}

// searchJSONTree walks a decoded JSON value looking for the given key
// (case-insensitive) bound to an absolute URL string.
func searchJSONTree(node any, key string) string {
	switch v := node.(type) {
	case map[string]any:
		for k, child := range v {
			if strings.EqualFold(k, key) {
				if s, ok := child.(string); ok && isAbsoluteURL(s) {
					return s
				}
			}
			if u := searchJSONTree(child, key); u != "" {
				return u
			}
		}
	case []any:
		for _, child := range v {
			if u := searchJSONTree(child, key); u != "" {
				return u
			}
		}
	}
	return ""
}

// linkFromInlineScripts scans non-JSON inline script bodies for URL-shaped
// substrings pointing at a curriculum document.
func linkFromInlineScripts(doc *goquery.Document) string {
	var found string

	doc.Find("script:not([src])").EachWithBreak(func(i int, s *goquery.Selection) bool {
		if typ, _ := s.Attr("type"); typ == "application/json" {
			return true
		}
		for _, candidate := range urlShapeRe.FindAllString(s.Text(), -1) {
			candidate = strings.TrimRight(candidate, `"',;)`)
			if isCurriculumDocURL(candidate) {
				found = candidate
				return false
			}
		}
		return true
	})

	return found
}

// isCurriculumDocURL accepts absolute URLs that either end in a document
// extension or carry a curriculum keyword in their path.
func isCurriculumDocURL(raw string) bool {
	if !isAbsoluteURL(raw) {
		return false
	}
	lower := strings.ToLower(raw)
	for _, f := range knownFormats {
		if strings.HasSuffix(lower, "."+string(f)) {
			return true
		}
	}
	if u, err := url.Parse(lower); err == nil && hasHrefKeyword(u.Path) {
		return true
	}
	return false
}

// linkFromDownloadButton finds clickable elements whose visible text matches
// the download-curriculum phrase and pulls a URL out of their attributes.
func linkFromDownloadButton(doc *goquery.Document, baseURL string) string {
	var found string

	doc.Find("a, button").EachWithBreak(func(i int, s *goquery.Selection) bool {
		if !downloadPhrase.MatchString(strings.TrimSpace(s.Text())) {
			return true
		}
		for _, attr := range []string{"href", "data-href", "onclick"} {
			val, ok := s.Attr(attr)
			if !ok || val == "" {
				continue
			}
			if attr == "onclick" {
				if m := urlShapeRe.FindString(val); m != "" {
					found = strings.TrimRight(m, `"',;)`)
					return false
				}
				continue
			}
			if resolved := resolveHref(baseURL, val); resolved != "" {
				found = resolved
				return false
			}
		}
		return true
	})

	return found
}

// linkFromAnchorScan iterates all hyperlinks, accepting a link when its
// visible text contains a curriculum keyword, or when its href has a known
// document extension and a curriculum path keyword.
func linkFromAnchorScan(doc *goquery.Document, baseURL string) string {
	var found string

	doc.Find("a[href]").EachWithBreak(func(i int, s *goquery.Selection) bool {
		href, _ := s.Attr("href")
		if href == "" || strings.HasPrefix(href, "#") {
			return true
		}

		text := strings.ToLower(strings.TrimSpace(s.Text()))
		for _, re := range linkTextPatterns {
			if re.MatchString(text) {
				if resolved := resolveHref(baseURL, href); resolved != "" {
					found = resolved
					return false
				}
			}
		}

		lowerHref := strings.ToLower(href)
		if hasDocExtension(lowerHref) && hasHrefKeyword(lowerHref) {
			if resolved := resolveHref(baseURL, href); resolved != "" {
				found = resolved
				return false
			}
		}
		return true
	})

	return found
}

func hasDocExtension(href string) bool {
	for _, f := range knownFormats {
		if strings.Contains(href, "."+string(f)) {
			return true
		}
	}
	return false
}

func hasHrefKeyword(href string) bool {
	for _, kw := range hrefKeywords {
		if strings.Contains(href, kw) {
			return true
		}
	}
	return false
}

func isAbsoluteURL(raw string) bool {
	u, err := url.Parse(raw)
	return err == nil && (u.Scheme == "http" || u.Scheme == "https") && u.Host != ""
}

// resolveHref joins href against the page URL, returning "" on garbage.
func resolveHref(baseURL, href string) string {
	base, err := url.Parse(baseURL)
	if err != nil {
		return ""
	}
	ref, err := url.Parse(strings.TrimSpace(href))
	if err != nil {
		return ""
	}
	resolved := base.ResolveReference(ref)
	if resolved.Scheme != "http" && resolved.Scheme != "https" {
		return ""
	}
	return resolved.String()
}
