package entity

import "time"

// RuleKind selects how an achievement rule is evaluated.
type RuleKind string

const (
	// RuleAtLeast unlocks when Metric >= Threshold.
	RuleAtLeast RuleKind = "at_least"
	// RuleAllAtLeast unlocks when every metric in Metrics >= Threshold.
	RuleAllAtLeast RuleKind = "all_at_least"
	// RuleExpression unlocks when the boolean expression Expr holds.
	RuleExpression RuleKind = "expression"
)

// AchievementRule is a static achievement definition.
type AchievementRule struct {
	ID            string   `json:"id"`
	Title         string   `json:"title"`
	Description   string   `json:"description"`
	Icon          string   `json:"icon"`
	Category      string   `json:"category"`
	Kind          RuleKind `json:"kind"`
	Metric        string   `json:"metric,omitempty"`
	Metrics       []string `json:"metrics,omitempty"`
	Threshold     float64  `json:"threshold,omitempty"`
	Expr          string   `json:"expr,omitempty"`
	TrackProgress bool     `json:"-"`
}

// UnlockedAchievement records when a rule was first satisfied.
type UnlockedAchievement struct {
	ID         string    `json:"id"`
	UnlockedAt time.Time `json:"unlockedAt"`
}

// AchievementProgress is the capped progress toward a threshold.
type AchievementProgress struct {
	Current float64 `json:"current"`
	Target  float64 `json:"target"`
}

// AchievementStatus is a rule joined with the learner's unlock state.
type AchievementStatus struct {
	ID          string               `json:"id"`
	Title       string               `json:"title"`
	Description string               `json:"description"`
	Icon        string               `json:"icon"`
	Category    string               `json:"category"`
	Unlocked    bool                 `json:"unlocked"`
	UnlockedAt  *time.Time           `json:"unlockedAt,omitempty"`
	Progress    *AchievementProgress `json:"progress,omitempty"`
}
