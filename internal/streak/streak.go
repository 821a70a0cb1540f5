// Package streak tracks consecutive calendar days of practice.
//
// Recording activity after a gap resets the streak and counts today in a
// single step, so a streak is never observed at 0 right after an activity.
package streak

import (
	"sort"
	"time"

	"github.com/eslsoft/aussieprogress/internal/entity"
)

// State is the streak as persisted: current run, best run, and the last
// calendar date (entity.DateLayout) with recorded activity.
type State struct {
	Current int
	Max     int
	Last    string
}

// Day formats t as a calendar date in t's location.
func Day(t time.Time) string {
	return t.Format(entity.DateLayout)
}

func yesterday(today time.Time) string {
	return Day(today.AddDate(0, 0, -1))
}

// Record registers activity on today.
func Record(s State, today time.Time) State {
	day := Day(today)
	switch s.Last {
	case day:
		return s
	case yesterday(today):
		s.Current++
	default:
		s.Current = 1
	}
	s.Last = day
	s.Max = max(s.Max, s.Current)
	return s
}

// Check refreshes the streak without new activity. When the last activity
// was yesterday the streak is extended onto today and extended is true. A
// longer gap drops the streak to 0 but keeps Last, so the next Record
// starts a new run at 1.
func Check(s State, today time.Time) (next State, extended bool) {
	switch s.Last {
	case "":
		s.Current = 0
		return s, false
	case Day(today):
		return s, false
	case yesterday(today):
		s.Current++
		s.Max = max(s.Max, s.Current)
		s.Last = Day(today)
		return s, true
	default:
		s.Current = 0
		return s, false
	}
}

// FromDates derives the streak from activity timestamps. Dates are folded in
// calendar order through Record; a run whose last day is before yesterday
// has lapsed and reports Current 0.
func FromDates(dates []time.Time, today time.Time) State {
	loc := today.Location()
	days := make(map[string]time.Time, len(dates))
	for _, d := range dates {
		local := d.In(loc)
		days[Day(local)] = local
	}
	ordered := make([]time.Time, 0, len(days))
	for _, d := range days {
		ordered = append(ordered, d)
	}
	sort.Slice(ordered, func(i, j int) bool { return ordered[i].Before(ordered[j]) })

	var s State
	for _, d := range ordered {
		s = Record(s, d)
	}
	if s.Last != "" && s.Last != Day(today) && s.Last != yesterday(today) {
		s.Current = 0
	}
	return s
}
