package curriculum

import (
	"net/url"
	"strings"
)

// Format identifies a supported curriculum document type.
type Format string

const (
	FormatPDF     Format = "pdf"
	FormatDOCX    Format = "docx"
	FormatXLSX    Format = "xlsx"
	FormatUnknown Format = "unknown"
)

var knownFormats = []Format{FormatPDF, FormatDOCX, FormatXLSX}

// ExtensionOf classifies a document URL by format.
//
// Primary signal is the URL path suffix. Some APIs encode the format as a
// path segment instead (".../plan/pdf"), so segments are checked next, and a
// plain substring search over the whole URL is the last resort.
func ExtensionOf(rawURL string) Format {
	lower := strings.ToLower(rawURL)

	path := lower
	if u, err := url.Parse(lower); err == nil && u.Path != "" {
		path = u.Path
	}

	for _, f := range knownFormats {
		if strings.HasSuffix(path, "."+string(f)) {
			return f
		}
	}

	for _, segment := range strings.Split(strings.Trim(path, "/"), "/") {
		for _, f := range knownFormats {
			if segment == string(f) {
				return f
			}
		}
	}

	for _, f := range knownFormats {
		if strings.Contains(lower, string(f)) {
			return f
		}
	}

	return FormatUnknown
}
