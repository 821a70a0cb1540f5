package entity

import "time"

// SessionRecord is one practice session. It is finalized once, when the
// session ends, and never changed afterwards.
type SessionRecord struct {
	ID           string       `json:"id"`
	Mode         PracticeMode `json:"mode"`
	StartTime    time.Time    `json:"startTime"`
	EndTime      *time.Time   `json:"endTime"`
	Duration     int          `json:"duration"`
	MessageCount int          `json:"messageCount"`
	Feedback     *bool        `json:"feedback"`
}

// Ended reports whether the session has been finalized.
func (s SessionRecord) Ended() bool { return s.EndTime != nil }

// SessionHistory is the persisted list of finalized sessions.
type SessionHistory struct {
	Sessions    []SessionRecord `json:"sessions"`
	StudentName string          `json:"studentName"`
}

// ProgressStats aggregates the session history.
type ProgressStats struct {
	TotalSessions          int           `json:"totalSessions"`
	TotalPracticeTime      int           `json:"totalPracticeTime"`
	SessionsThisWeek       int           `json:"sessionsThisWeek"`
	PracticeTimeThisWeek   int           `json:"practiceTimeThisWeek"`
	AverageSessionDuration float64       `json:"averageSessionDuration"`
	ModeBreakdown          ModeBreakdown `json:"modeBreakdown"`
	Streak                 int           `json:"streak"`
	LastPracticeDate       *time.Time    `json:"lastPracticeDate"`
}

// Metrics exposes the numeric fields under the names achievement rules use.
func (s ProgressStats) Metrics() map[string]float64 {
	return map[string]float64{
		"totalSessions":          float64(s.TotalSessions),
		"totalPracticeTime":      float64(s.TotalPracticeTime),
		"sessionsThisWeek":       float64(s.SessionsThisWeek),
		"practiceTimeThisWeek":   float64(s.PracticeTimeThisWeek),
		"averageSessionDuration": s.AverageSessionDuration,
		"streak":                 float64(s.Streak),
		"everydaySessions":       float64(s.ModeBreakdown[PracticeModeEveryday]),
		"slangSessions":          float64(s.ModeBreakdown[PracticeModeSlang]),
		"workplaceSessions":      float64(s.ModeBreakdown[PracticeModeWorkplace]),
		"modesUsed":              float64(s.ModeBreakdown.ModesUsed()),
	}
}
