// Package curriculum implements the curriculum document extraction pipeline:
// locating a program's curriculum file on its landing page, downloading it,
// and parsing PDF/DOCX/XLSX content into structured course records.
package curriculum

// Course is one teaching unit recovered from a curriculum document.
//
// IDs are positional (course_0, course_1, ...) and re-assigned on every parse
// pass; they are not stable across refreshes. Anything needing stable course
// identity must derive its own key.
type Course struct {
	ID            string   `json:"id"`
	Name          string   `json:"name"`
	Credits       int      `json:"credits"`
	Hours         int      `json:"hours"`
	Semester      int      `json:"semester"`
	IsElective    bool     `json:"is_elective"`
	Block         string   `json:"block,omitempty"`
	Category      string   `json:"category,omitempty"`
	Prerequisites []string `json:"prerequisites,omitempty"`
	Description   string   `json:"description,omitempty"`
}

// Workload hours per credit unit when a document lists credits only.
const hoursPerCredit = 36

// Sanity bounds for a single course. Values beyond these mean the numeric
// columns were misread.
const (
	maxCourseCredits = 50
	maxCourseHours   = 2000
)
