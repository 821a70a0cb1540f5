// Package confidence derives the speaking-confidence snapshot from session
// statistics. Nothing here is persisted.
package confidence

import (
	"math"

	"github.com/eslsoft/aussieprogress/internal/entity"
	"github.com/eslsoft/aussieprogress/pkg/selector"
	"github.com/eslsoft/aussieprogress/pkg/textmatch"
)

type tier struct {
	name      entity.ConfidenceTier
	threshold int
	label     string
}

var tiers = []tier{
	{entity.TierBeginner, 0, "Getting Started"},
	{entity.TierDeveloping, 25, "Building Confidence"},
	{entity.TierConfident, 55, "Speaking with Confidence"},
	{entity.TierFluent, 80, "Aussie Natural"},
}

var encouragement = map[entity.ConfidenceTier][]string{
	entity.TierBeginner: {
		"Every conversation starts with a single word. You're on your way!",
		"The hardest part is starting - and you've done it!",
		"Small steps lead to big confidence. Keep going!",
	},
	entity.TierDeveloping: {
		"You're building momentum! Your confidence is growing.",
		"Practice makes progress. You're doing great!",
		"You're finding your voice - keep at it!",
	},
	entity.TierConfident: {
		"You're speaking with real confidence now!",
		"Look how far you've come! Your progress is amazing.",
		"You're becoming a natural communicator!",
	},
	entity.TierFluent: {
		"You're speaking like a true Aussie! Ripper job!",
		"Your confidence is inspiring. Keep shining!",
		"You've mastered the art of confident communication!",
	},
}

// Label returns the display label of t.
func Label(t entity.ConfidenceTier) string {
	for _, tr := range tiers {
		if tr.name == t {
			return tr.label
		}
	}
	return tiers[0].label
}

// Encouragements returns the message pool for t.
func Encouragements(t entity.ConfidenceTier) []string {
	if msgs, ok := encouragement[t]; ok {
		return msgs
	}
	return encouragement[entity.TierBeginner]
}

// Breakdown computes the four factor scores. Each factor stays within its
// own cap: consistency and experience 30, variety and growth 20.
func Breakdown(stats entity.ProgressStats, sessions []entity.SessionRecord, pronunciationAverage float64) entity.ConfidenceBreakdown {
	streakPts := math.Min(float64(stats.Streak)*2, 15)
	weeklyPts := math.Min(float64(stats.SessionsThisWeek)*2.5, 15)

	sessionPts := math.Min(float64(stats.TotalSessions)*0.3, 15)
	timePts := math.Min(float64(stats.TotalPracticeTime)/60*0.05, 15)

	modes := stats.ModeBreakdown.ModesUsed()
	variety := modes * 5
	if modes == len(entity.PracticeModes()) {
		variety += 5
	}

	positive := 0
	for _, s := range sessions {
		if s.Feedback != nil && *s.Feedback {
			positive++
		}
	}
	pronPts := math.Min(math.Max(pronunciationAverage, 0)*0.1, 10)
	feedbackPts := math.Min(float64(positive)*0.5, 10)

	return entity.ConfidenceBreakdown{
		Consistency: textmatch.Round(streakPts + weeklyPts),
		Experience:  textmatch.Round(sessionPts + timePts),
		Variety:     min(variety, 20),
		Growth:      textmatch.Round(pronPts + feedbackPts),
	}
}

// TierFor maps an overall score onto its tier.
func TierFor(score int) entity.ConfidenceTier {
	for i := len(tiers) - 1; i > 0; i-- {
		if score >= tiers[i].threshold {
			return tiers[i].name
		}
	}
	return tiers[0].name
}

// TierProgress is the percentage of the way from the current tier's
// threshold to the next one. The top tier measures against 100.
func TierProgress(score int) float64 {
	for i := len(tiers) - 1; i >= 0; i-- {
		if score < tiers[i].threshold {
			continue
		}
		next := 100
		if i+1 < len(tiers) {
			next = tiers[i+1].threshold
		}
		return float64(score-tiers[i].threshold) / float64(next-tiers[i].threshold) * 100
	}
	return 0
}

// WeeklyChange is a coarse activity bonus shown next to the score.
func WeeklyChange(stats entity.ProgressStats) int {
	if stats.SessionsThisWeek < 3 {
		return 0
	}
	return textmatch.Round(float64(stats.SessionsThisWeek) * 1.5)
}

// Compute builds the full snapshot. pick chooses the encouragement line.
func Compute(stats entity.ProgressStats, sessions []entity.SessionRecord, pronunciationAverage float64, pick selector.Func) entity.ConfidenceSnapshot {
	b := Breakdown(stats, sessions, pronunciationAverage)
	overall := min(b.Consistency+b.Experience+b.Variety+b.Growth, 100)
	level := TierFor(overall)
	milestones := Milestones(stats, sessions)

	return entity.ConfidenceSnapshot{
		Overall:       overall,
		Breakdown:     b,
		Level:         level,
		LevelLabel:    Label(level),
		LevelProgress: TierProgress(overall),
		WeeklyChange:  WeeklyChange(stats),
		Milestones:    milestones,
		NextMilestone: NextMilestone(milestones),
		Encouragement: selector.Pick(pick, Encouragements(level)),
	}
}
