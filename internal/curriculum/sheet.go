package curriculum

import (
	"regexp"
	"strconv"
	"strings"
)

// headerScanLimit bounds how deep into a worksheet the header row is sought.
const headerScanLimit = 20

// Column roles recognized in worksheet headers.
const (
	roleSemester = "semester"
	roleName     = "name"
	roleCredits  = "credits"
	roleHours    = "hours"
)

// headerKeywords map lowercase header-cell fragments to column roles.
var headerKeywords = []struct {
	role     string
	keywords []string
}{
	{roleName, []string{"дисциплин", "предмет", "discipline", "название"}},
	{roleCredits, []string{"з.е", "кредит", "credit"}},
	{roleSemester, []string{"семестр", "semester"}},
	{roleHours, []string{"час", "hour", "акад"}},
}

var reFirstInt = regexp.MustCompile(`\d+`)

// ParseSheets extracts courses from worksheet grids. Sheets share one parser
// state, so the positional id sequence and the running semester/category
// cursor continue across sheet boundaries.
func ParseSheets(sheets [][][]string) []Course {
	st := newParseState()
	var courses []Course
	for _, grid := range sheets {
		courses = append(courses, parseGrid(st, grid)...)
	}
	return courses
}

// parseGrid locates the header row, then walks data rows below it through
// the shared state machine.
func parseGrid(st *parseState, grid [][]string) []Course {
	headers, headerRow := detectHeaders(grid)
	if headers == nil {
		return nil
	}

	var courses []Course
	for _, row := range grid[headerRow+1:] {
		if len(row) == 0 {
			continue
		}

		// Category/block/semester markers travel in the first cell of
		// full-width rows, same as line markers in flattened text.
		if first := normalizeLine(row[0]); first != "" && st.applyMarker(first) {
			continue
		}

		if course, ok := courseFromRow(st, headers, row); ok {
			courses = append(courses, course)
		}
	}
	return courses
}

// detectHeaders scans the top of a grid for header cells matching column-role
// keywords. At least two roles must be located; data rows begin immediately
// below the row that completed the match. Returns (nil, 0) when no header is
// recognizable; such sheets carry no tabular curriculum data.
func detectHeaders(grid [][]string) (map[string]int, int) {
	headers := make(map[string]int)

	limit := len(grid)
	if limit > headerScanLimit {
		limit = headerScanLimit
	}

	for rowIdx := 0; rowIdx < limit; rowIdx++ {
		for colIdx, cell := range grid[rowIdx] {
			value := strings.ToLower(strings.TrimSpace(cell))
			if value == "" {
				continue
			}
			for _, hk := range headerKeywords {
				if _, taken := headers[hk.role]; taken {
					continue
				}
				for _, kw := range hk.keywords {
					if strings.Contains(value, kw) {
						headers[hk.role] = colIdx
						break
					}
				}
			}
		}
		if len(headers) >= 2 {
			return headers, rowIdx
		}
	}
	return nil, 0
}

// courseFromRow extracts one course from a data row using the detected
// column roles. Missing semester cells inherit the running semester.
func courseFromRow(st *parseState, headers map[string]int, row []string) (Course, bool) {
	name := cellAt(row, headers, roleName)
	if name == "" {
		return Course{}, false
	}

	credits := intInCell(cellAt(row, headers, roleCredits))
	if credits == 0 {
		return Course{}, false
	}

	hours := intInCell(cellAt(row, headers, roleHours))

	semester := st.semester
	if v := intInCell(cellAt(row, headers, roleSemester)); v > 0 {
		semester = v
	}

	return st.buildCourse(name, credits, hours, semester)
}

func cellAt(row []string, headers map[string]int, role string) string {
	idx, ok := headers[role]
	if !ok || idx >= len(row) {
		return ""
	}
	return strings.TrimSpace(row[idx])
}

// intInCell pulls the first integer out of a cell, tolerating unit suffixes
// ("6 з.е.") and float formatting ("6.0").
func intInCell(cell string) int {
	if cell == "" {
		return 0
	}
	m := reFirstInt.FindString(cell)
	if m == "" {
		return 0
	}
	n, err := strconv.Atoi(m)
	if err != nil {
		return 0
	}
	return n
}
