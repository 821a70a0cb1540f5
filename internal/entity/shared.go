package entity

import "strings"

// PracticeMode is the category tag attached to sessions and phrases.
type PracticeMode string

const (
	PracticeModeUnspecified PracticeMode = ""
	PracticeModeEveryday    PracticeMode = "everyday"
	PracticeModeSlang       PracticeMode = "slang"
	PracticeModeWorkplace   PracticeMode = "workplace"
)

// PracticeModes lists every supported mode in display order.
func PracticeModes() []PracticeMode {
	return []PracticeMode{PracticeModeEveryday, PracticeModeSlang, PracticeModeWorkplace}
}

// Valid reports whether the mode is one of the supported modes.
func (m PracticeMode) Valid() bool {
	switch m {
	case PracticeModeEveryday, PracticeModeSlang, PracticeModeWorkplace:
		return true
	default:
		return false
	}
}

// ParsePracticeMode converts an arbitrary string into a supported PracticeMode.
func ParsePracticeMode(value string) (PracticeMode, error) {
	switch strings.ToLower(strings.TrimSpace(value)) {
	case "everyday":
		return PracticeModeEveryday, nil
	case "slang":
		return PracticeModeSlang, nil
	case "workplace":
		return PracticeModeWorkplace, nil
	default:
		return PracticeModeUnspecified, ErrInvalidPracticeMode
	}
}

// ModeBreakdown counts sessions per practice mode.
type ModeBreakdown map[PracticeMode]int

// ModesUsed returns how many modes have at least one session.
func (b ModeBreakdown) ModesUsed() int {
	used := 0
	for _, mode := range PracticeModes() {
		if b[mode] > 0 {
			used++
		}
	}
	return used
}

// NewModeBreakdown returns a breakdown with every mode present at zero.
func NewModeBreakdown() ModeBreakdown {
	b := make(ModeBreakdown, 3)
	for _, mode := range PracticeModes() {
		b[mode] = 0
	}
	return b
}

// DateLayout is the calendar-date format used in persisted documents.
const DateLayout = "2006-01-02"
