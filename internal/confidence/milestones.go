package confidence

import (
	"time"

	"github.com/eslsoft/aussieprogress/internal/entity"
)

type milestoneDef struct {
	id, title, desc, icon string
	requirement           int
	kind                  entity.MilestoneType
}

var milestoneDefs = []milestoneDef{
	{"sessions-5", "First Steps", "Complete 5 practice sessions", "👣", 5, entity.MilestoneSessions},
	{"sessions-25", "Building Habits", "Complete 25 practice sessions", "🎯", 25, entity.MilestoneSessions},
	{"sessions-50", "Committed Learner", "Complete 50 practice sessions", "⭐", 50, entity.MilestoneSessions},
	{"sessions-100", "Century Club", "Complete 100 practice sessions", "💯", 100, entity.MilestoneSessions},
	// time requirements are minutes
	{"time-60", "First Hour", "Practice for 1 hour total", "⏱️", 60, entity.MilestoneTime},
	{"time-300", "Dedicated Practitioner", "Practice for 5 hours total", "📚", 300, entity.MilestoneTime},
	{"time-600", "Speaking Champion", "Practice for 10 hours total", "🏆", 600, entity.MilestoneTime},
	{"streak-7", "Week Warrior", "Practice 7 days in a row", "🔥", 7, entity.MilestoneStreak},
	{"streak-14", "Fortnight Fighter", "Practice 14 days in a row", "💪", 14, entity.MilestoneStreak},
	{"streak-30", "Monthly Master", "Practice 30 days in a row", "👑", 30, entity.MilestoneStreak},
	{"variety-all", "Well Rounded", "Practice in all 3 categories", "🌟", 3, entity.MilestoneVariety},
}

// Milestones evaluates the fixed milestone list. sessions must be in the
// order they were recorded; achievement dates are reconstructed from it.
func Milestones(stats entity.ProgressStats, sessions []entity.SessionRecord) []entity.Milestone {
	out := make([]entity.Milestone, 0, len(milestoneDefs))
	for _, def := range milestoneDefs {
		m := entity.Milestone{
			ID:          def.id,
			Title:       def.title,
			Description: def.desc,
			Icon:        def.icon,
			Requirement: def.requirement,
			Type:        def.kind,
		}
		switch def.kind {
		case entity.MilestoneSessions:
			m.Current = stats.TotalSessions
			m.Achieved = stats.TotalSessions >= def.requirement
		case entity.MilestoneTime:
			m.Current = stats.TotalPracticeTime / 60
			m.Achieved = stats.TotalPracticeTime >= def.requirement*60
		case entity.MilestoneStreak:
			m.Current = stats.Streak
			m.Achieved = stats.Streak >= def.requirement
		case entity.MilestoneVariety:
			m.Current = stats.ModeBreakdown.ModesUsed()
			m.Achieved = m.Current >= def.requirement
		}
		if m.Achieved && len(sessions) > 0 {
			m.AchievedAt = achievedAt(def, sessions)
		}
		out = append(out, m)
	}
	return out
}

func achievedAt(def milestoneDef, sessions []entity.SessionRecord) *time.Time {
	switch def.kind {
	case entity.MilestoneSessions:
		if def.requirement <= len(sessions) {
			at := sessions[def.requirement-1].StartTime
			return &at
		}
	case entity.MilestoneTime:
		total := 0
		for _, s := range sessions {
			total += s.Duration
			if total >= def.requirement*60 {
				at := s.StartTime
				return &at
			}
		}
	}
	return nil
}

// NextMilestone returns the unmet milestone closest to completion by ratio.
// Ties go to the earlier entry.
func NextMilestone(milestones []entity.Milestone) *entity.Milestone {
	var (
		best      *entity.Milestone
		bestRatio float64
	)
	for i := range milestones {
		m := milestones[i]
		if m.Achieved || m.Requirement <= 0 {
			continue
		}
		ratio := float64(m.Current) / float64(m.Requirement)
		if best == nil || ratio > bestRatio {
			best, bestRatio = &m, ratio
		}
	}
	return best
}
