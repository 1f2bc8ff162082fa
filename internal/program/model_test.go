package program

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/abitbot/curriculum/internal/curriculum"
)

func TestProgramTotals(t *testing.T) {
	t.Parallel()

	p := Program{
		Courses: []curriculum.Course{
			{Credits: 6, Semester: 1},
			{Credits: 4, Semester: 2},
			{Credits: 8, Semester: 3},
		},
	}
	assert.Equal(t, 18, p.TotalCredits())
	assert.Equal(t, 3, p.DurationSemesters())
}

func TestProgramDefaults(t *testing.T) {
	t.Parallel()

	var p Program
	assert.Zero(t, p.TotalCredits())
	assert.Equal(t, 4, p.DurationSemesters(), "programs without courses run the standard four semesters")
}
