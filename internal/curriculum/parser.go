package curriculum

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"
	"unicode"
)

// Parser state defaults. Documents open with the mandatory block of the
// first semester before any explicit marker appears.
const (
	defaultBlock    = "Модули"
	defaultCategory = "Обязательные дисциплины"
)

// electiveKeywords mark a category label as an elective pool.
var electiveKeywords = []string{"выборн", "элект", "elective"}

// Structural markers. Cyrillic is outside RE2's ASCII \b, so markers are
// anchored to the full line instead of relying on word boundaries.
var (
	reBlockHeader    = regexp.MustCompile(`(?i)^(?:блок|block)\s*(\d+)[.)]?\s*(.+)$`)
	reSemesterMarker = regexp.MustCompile(`(?i)^(\d{1,2})\s*[-.]?\s*(?:семестр|semester)\s*[:.]?\s*$`)
)

// Category headers. RE2's \w is ASCII-only, so Cyrillic word endings need
// \p{L} explicitly.
var (
	reMandatoryHeader = regexp.MustCompile(`(?i)(обязательн\p{L}*\s+дисциплин|mandatory\s+disciplines?)`)
	reElectiveHeader  = regexp.MustCompile(`(?i)(пул\s+выборн|выборн\p{L}*\s+дисциплин|elective\s+discipline)`)
)

// Course line shapes, tried in priority order.
var (
	// <semester> <name> <credits> <hours>
	reCourseFull = regexp.MustCompile(`^(\d{1,2})[.)]?\s+(.+?)\s+(\d{1,4})\s+(\d{1,4})$`)
	// <name> <credits> <hours>
	reCourseNoSemester = regexp.MustCompile(`^(.+?)\s+(\d{1,4})\s+(\d{1,4})$`)
	// <semester> <name>
	reCourseSemesterName = regexp.MustCompile(`^(\d{1,2})[.)]?\s+(.+)$`)
)

// Unit tokens that ride along numeric columns ("6 з.е.", "216 час.").
var reUnitTokens = regexp.MustCompile(`(?i)(^|\s)(з\.\s?е\.?|кредит(?:ов|а)?\.?|акад\.\s?час(?:ов|а)?\.?|час(?:ов|а)?\.?|ч\.)(\s|$)`)

var reSpaces = regexp.MustCompile(`\s+`)

// parseState is the mutable cursor carried across the lines or rows of one
// document. It is reset at the start of every parse call and never shared
// across documents.
type parseState struct {
	semester int
	category string
	block    string
	counter  int
}

func newParseState() *parseState {
	return &parseState{
		semester: 1,
		category: defaultCategory,
		block:    defaultBlock,
	}
}

// ParseText walks a flattened text blob line by line and extracts course
// records. Lines that match no known shape are narrative content and are
// skipped silently. Re-parsing identical input yields an identical list.
func ParseText(text string) []Course {
	st := newParseState()
	var courses []Course

	for _, raw := range strings.Split(text, "\n") {
		line := normalizeLine(raw)
		if line == "" {
			continue
		}
		if st.applyMarker(line) {
			continue
		}
		if course, ok := st.courseFromLine(line); ok {
			courses = append(courses, course)
		}
	}

	return courses
}

// normalizeLine prepares a raw line for matching: pipe-joined table cells
// become space-separated, unit tokens are dropped, whitespace is collapsed.
func normalizeLine(raw string) string {
	line := strings.ReplaceAll(raw, "|", " ")
	// Run the unit-token pass twice: adjacent tokens share a separator.
	line = reUnitTokens.ReplaceAllString(line, " ")
	line = reUnitTokens.ReplaceAllString(line, " ")
	return strings.TrimSpace(reSpaces.ReplaceAllString(line, " "))
}

// applyMarker updates the running state when line is a structural marker
// (block header, category header, semester marker). Marker lines never
// produce courses themselves.
func (st *parseState) applyMarker(line string) bool {
	if m := reBlockHeader.FindStringSubmatch(line); m != nil {
		st.block = strings.TrimSpace(m[2])
		return true
	}
	if reMandatoryHeader.MatchString(line) && !looksLikeCourseLine(line) {
		st.category = line
		return true
	}
	if reElectiveHeader.MatchString(line) && !looksLikeCourseLine(line) {
		st.category = line
		return true
	}
	if m := reSemesterMarker.FindStringSubmatch(line); m != nil {
		if n, err := strconv.Atoi(m[1]); err == nil && n > 0 {
			st.semester = n
		}
		return true
	}
	return false
}

// looksLikeCourseLine reports whether the line ends in two numeric columns,
// i.e. a category keyword appears inside course data rather than a header.
func looksLikeCourseLine(line string) bool {
	return reCourseNoSemester.MatchString(line)
}

// courseFromLine attempts the three structural patterns in priority order
// and emits a course when one matches and survives the sanity filters.
func (st *parseState) courseFromLine(line string) (Course, bool) {
	var (
		name     string
		credits  int
		hours    int
		semester = st.semester
	)

	switch {
	case reCourseFull.MatchString(line):
		m := reCourseFull.FindStringSubmatch(line)
		semester = mustAtoi(m[1])
		name = m[2]
		credits = mustAtoi(m[3])
		hours = mustAtoi(m[4])

	case reCourseNoSemester.MatchString(line):
		m := reCourseNoSemester.FindStringSubmatch(line)
		name = m[1]
		credits = mustAtoi(m[2])
		hours = mustAtoi(m[3])

	case reCourseSemesterName.MatchString(line):
		m := reCourseSemesterName.FindStringSubmatch(line)
		semester = mustAtoi(m[1])
		name = m[2]
		credits = 3

	default:
		return Course{}, false
	}

	return st.buildCourse(name, credits, hours, semester)
}

// buildCourse runs the shared sanity pipeline (hours derivation, swap guard,
// name filter) and emits a course with the next positional id. An accepted
// explicit semester advances the running state.
func (st *parseState) buildCourse(name string, credits, hours, semester int) (Course, bool) {
	if hours == 0 {
		hours = credits * hoursPerCredit
	}

	credits, hours, ok := normalizeCreditsHours(credits, hours)
	if !ok {
		return Course{}, false
	}
	if credits <= 0 || semester <= 0 {
		return Course{}, false
	}

	name = cleanCourseName(name)
	if !isMeaningfulName(name) {
		return Course{}, false
	}

	st.semester = semester

	course := Course{
		ID:         fmt.Sprintf("course_%d", st.counter),
		Name:       name,
		Credits:    credits,
		Hours:      hours,
		Semester:   semester,
		IsElective: isElectiveCategory(st.category),
		Block:      st.block,
		Category:   st.category,
	}
	st.counter++
	return course, true
}

// normalizeCreditsHours guards against misattributed numeric columns. When a
// value is implausible for a single course, the smaller number is taken as
// credits and the larger as hours; still-implausible pairs are discarded.
func normalizeCreditsHours(credits, hours int) (int, int, bool) {
	if credits > maxCourseCredits || hours > maxCourseHours {
		if hours < credits {
			credits, hours = hours, credits
		}
		if credits > maxCourseCredits || hours > maxCourseHours {
			return 0, 0, false
		}
	}
	return credits, hours, true
}

// isMeaningfulName rejects degenerate course names: too short, purely
// numeric, or without a single letter.
func isMeaningfulName(name string) bool {
	runes := []rune(name)
	if len(runes) < 3 {
		return false
	}

	hasLetter := false
	allDigits := true
	for _, r := range runes {
		if unicode.IsLetter(r) {
			hasLetter = true
		}
		if !unicode.IsDigit(r) {
			allDigits = false
		}
	}
	return hasLetter && !allDigits
}

// isElectiveCategory derives the elective flag from the current category
// label; it is never stored independently of the category.
func isElectiveCategory(category string) bool {
	lower := strings.ToLower(category)
	for _, kw := range electiveKeywords {
		if strings.Contains(lower, kw) {
			return true
		}
	}
	return false
}

func cleanCourseName(name string) string {
	name = strings.TrimSpace(name)
	name = strings.Trim(name, `-–—:;,."'`)
	return strings.TrimSpace(name)
}

// mustAtoi converts digit-only regex captures; the patterns guarantee the
// input is numeric.
func mustAtoi(s string) int {
	n, _ := strconv.Atoi(s)
	return n
}
