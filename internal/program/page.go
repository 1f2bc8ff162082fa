package program

import (
	"strings"

	"github.com/PuerkitoBio/goquery"
)

// descriptionSelectors are tried in order; the first non-empty match wins.
var descriptionSelectors = []string{
	".program-description",
	".content-main p",
	".program-info",
	`meta[name="description"]`,
}

// ExtractTitle pulls the program name from a landing page, preferring the
// first h1 and falling back to the document title. Returns "" when the page
// has neither.
func ExtractTitle(doc *goquery.Document) string {
	if h1 := strings.TrimSpace(doc.Find("h1").First().Text()); h1 != "" {
		return h1
	}
	return strings.TrimSpace(doc.Find("title").First().Text())
}

// ExtractDescription pulls a short program description from a landing page.
// Meta tags contribute their content attribute; other selectors their text.
func ExtractDescription(doc *goquery.Document) string {
	for _, selector := range descriptionSelectors {
		sel := doc.Find(selector).First()
		if sel.Length() == 0 {
			continue
		}
		var text string
		if goquery.NodeName(sel) == "meta" {
			text, _ = sel.Attr("content")
		} else {
			text = sel.Text()
		}
		if text = strings.TrimSpace(text); text != "" {
			return text
		}
	}
	return ""
}
