// Package program assembles Program records from landing pages and the
// curriculum extraction pipeline, and caches the assembled list.
package program

import (
	"time"

	"github.com/abitbot/curriculum/internal/curriculum"
)

// Program is one master's program together with its extracted courses.
// An empty course list is a valid, renderable state meaning "no curriculum
// data available", never an error signal.
type Program struct {
	ID          string              `json:"id"`
	Name        string              `json:"name"`
	URL         string              `json:"url"`
	Courses     []curriculum.Course `json:"courses"`
	Description string              `json:"description,omitempty"`
	ParsedAt    time.Time           `json:"parsed_at"`
}

// TotalCredits sums credit units over all courses.
func (p *Program) TotalCredits() int {
	total := 0
	for _, c := range p.Courses {
		total += c.Credits
	}
	return total
}

// DurationSemesters is the highest semester index any course occupies.
// Programs without course data default to the standard four semesters.
func (p *Program) DurationSemesters() int {
	max := 0
	for _, c := range p.Courses {
		if c.Semester > max {
			max = c.Semester
		}
	}
	if max == 0 {
		return 4
	}
	return max
}
