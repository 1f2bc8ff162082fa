// Package data provides static data definitions for the application.
// These data are maintained manually and updated when the university
// publishes new programs.
package data

import "sync"

// ProgramInfo contains static information about a master's program.
// IDs must stay stable: they key local document files and cache entries.
type ProgramInfo struct {
	ID   string // Program identifier (e.g., "ai")
	Name string // Human-readable fallback name
	URL  string // Admissions landing page URL
}

// BaseURL is the admissions site root.
const BaseURL = "https://abit.itmo.ru"

// AllPrograms contains the known master's programs with their landing pages.
// Source: https://abit.itmo.ru/program/master/
var AllPrograms = []ProgramInfo{
	{"ai", "Искусственный интеллект", "https://abit.itmo.ru/program/master/ai"},
	{"ai_product", "Управление ИИ-продуктами/AI Product", "https://abit.itmo.ru/program/master/ai_product"},
}

// programByID is a lookup map, initialized lazily on first GetProgram call.
var (
	programByID     map[string]ProgramInfo
	programByIDOnce sync.Once
)

// GetProgram returns the static info for a program id.
// The second return value reports whether the id is known.
func GetProgram(id string) (ProgramInfo, bool) {
	programByIDOnce.Do(func() {
		programByID = make(map[string]ProgramInfo, len(AllPrograms))
		for _, p := range AllPrograms {
			programByID[p.ID] = p
		}
	})
	p, ok := programByID[id]
	return p, ok
}

// GetProgramCount returns the total number of programs in the static list.
func GetProgramCount() int {
	return len(AllPrograms)
}
