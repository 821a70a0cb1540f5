package entity

import "time"

// ConfidenceTier is the named band an overall confidence score falls in.
type ConfidenceTier string

const (
	TierBeginner   ConfidenceTier = "beginner"
	TierDeveloping ConfidenceTier = "developing"
	TierConfident  ConfidenceTier = "confident"
	TierFluent     ConfidenceTier = "fluent"
)

// ConfidenceBreakdown holds the four factor scores.
type ConfidenceBreakdown struct {
	Consistency int `json:"consistency"`
	Experience  int `json:"experience"`
	Variety     int `json:"variety"`
	Growth      int `json:"growth"`
}

// MilestoneType groups milestones by the statistic they track.
type MilestoneType string

const (
	MilestoneSessions MilestoneType = "sessions"
	MilestoneTime     MilestoneType = "time"
	MilestoneStreak   MilestoneType = "streak"
	MilestoneVariety  MilestoneType = "variety"
)

// Milestone is a progress marker shown alongside the confidence score.
type Milestone struct {
	ID          string        `json:"id"`
	Title       string        `json:"title"`
	Description string        `json:"description"`
	Icon        string        `json:"icon"`
	Achieved    bool          `json:"achieved"`
	AchievedAt  *time.Time    `json:"achievedAt,omitempty"`
	Requirement int           `json:"requirement"`
	Current     int           `json:"current"`
	Type        MilestoneType `json:"type"`
}

// ConfidenceSnapshot is derived on demand and never persisted.
type ConfidenceSnapshot struct {
	Overall       int                 `json:"overall"`
	Breakdown     ConfidenceBreakdown `json:"breakdown"`
	Level         ConfidenceTier      `json:"level"`
	LevelLabel    string              `json:"levelLabel"`
	LevelProgress float64             `json:"levelProgress"`
	WeeklyChange  int                 `json:"weeklyChange"`
	Milestones    []Milestone         `json:"milestones"`
	NextMilestone *Milestone          `json:"nextMilestone"`
	Encouragement string              `json:"encouragement"`
}
