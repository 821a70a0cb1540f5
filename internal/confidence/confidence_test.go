package confidence

import (
	"testing"
	"time"

	"github.com/eslsoft/aussieprogress/internal/entity"
	"github.com/eslsoft/aussieprogress/pkg/selector"
)

func boolPtr(v bool) *bool { return &v }

func TestComputeEmpty(t *testing.T) {
	snap := Compute(entity.ProgressStats{ModeBreakdown: entity.NewModeBreakdown()}, nil, 0, selector.First())
	if snap.Overall != 0 || snap.Level != entity.TierBeginner {
		t.Fatalf("unexpected snapshot: %+v", snap)
	}
	if snap.LevelLabel != "Getting Started" {
		t.Fatalf("label = %q", snap.LevelLabel)
	}
	if snap.Encouragement != "Every conversation starts with a single word. You're on your way!" {
		t.Fatalf("encouragement = %q", snap.Encouragement)
	}
	if len(snap.Milestones) != 11 {
		t.Fatalf("expected 11 milestones, got %d", len(snap.Milestones))
	}
	if snap.NextMilestone == nil || snap.NextMilestone.ID != "sessions-5" {
		t.Fatalf("next milestone = %+v", snap.NextMilestone)
	}
}

func TestBreakdown(t *testing.T) {
	stats := entity.ProgressStats{
		TotalSessions:     10,
		TotalPracticeTime: 3600,
		SessionsThisWeek:  4,
		Streak:            3,
		ModeBreakdown: entity.ModeBreakdown{
			entity.PracticeModeEveryday: 6,
			entity.PracticeModeSlang:    4,
		},
	}
	sessions := []entity.SessionRecord{
		{Feedback: boolPtr(true)},
		{Feedback: boolPtr(true)},
		{Feedback: boolPtr(false)},
		{},
	}
	b := Breakdown(stats, sessions, 80)
	// streak 6 + weekly 10
	if b.Consistency != 16 {
		t.Fatalf("consistency = %d", b.Consistency)
	}
	// sessions 3 + time 3
	if b.Experience != 6 {
		t.Fatalf("experience = %d", b.Experience)
	}
	if b.Variety != 10 {
		t.Fatalf("variety = %d", b.Variety)
	}
	// pronunciation 8 + feedback 1
	if b.Growth != 9 {
		t.Fatalf("growth = %d", b.Growth)
	}
}

func TestOverallCapped(t *testing.T) {
	stats := entity.ProgressStats{
		TotalSessions:     500,
		TotalPracticeTime: 500 * 3600,
		SessionsThisWeek:  50,
		Streak:            90,
		ModeBreakdown: entity.ModeBreakdown{
			entity.PracticeModeEveryday:  1,
			entity.PracticeModeSlang:     1,
			entity.PracticeModeWorkplace: 1,
		},
	}
	sessions := make([]entity.SessionRecord, 40)
	for i := range sessions {
		sessions[i].Feedback = boolPtr(true)
	}
	snap := Compute(stats, sessions, 100, selector.First())
	if snap.Overall != 100 {
		t.Fatalf("overall = %d", snap.Overall)
	}
	if snap.Breakdown.Variety != 20 || snap.Breakdown.Growth != 20 {
		t.Fatalf("breakdown = %+v", snap.Breakdown)
	}
	if snap.Level != entity.TierFluent || snap.LevelProgress != 100 {
		t.Fatalf("level %s progress %v", snap.Level, snap.LevelProgress)
	}
	if snap.WeeklyChange != 75 {
		t.Fatalf("weekly change = %d", snap.WeeklyChange)
	}
	if snap.NextMilestone != nil {
		t.Fatalf("all milestones achieved, got next %+v", snap.NextMilestone)
	}
}

func TestTiers(t *testing.T) {
	cases := []struct {
		score    int
		tier     entity.ConfidenceTier
		progress float64
	}{
		{0, entity.TierBeginner, 0},
		{25, entity.TierDeveloping, 0},
		{40, entity.TierDeveloping, 50},
		{55, entity.TierConfident, 0},
		{80, entity.TierFluent, 0},
		{90, entity.TierFluent, 50},
	}
	for _, c := range cases {
		if got := TierFor(c.score); got != c.tier {
			t.Fatalf("TierFor(%d) = %s", c.score, got)
		}
		if got := TierProgress(c.score); got != c.progress {
			t.Fatalf("TierProgress(%d) = %v, want %v", c.score, got, c.progress)
		}
	}
}

func TestWeeklyChange(t *testing.T) {
	if got := WeeklyChange(entity.ProgressStats{SessionsThisWeek: 2}); got != 0 {
		t.Fatalf("got %d", got)
	}
	if got := WeeklyChange(entity.ProgressStats{SessionsThisWeek: 3}); got != 5 {
		t.Fatalf("got %d", got)
	}
}

func TestMilestoneDates(t *testing.T) {
	base := time.Date(2025, 3, 1, 9, 0, 0, 0, time.UTC)
	var sessions []entity.SessionRecord
	total := 0
	for i := 0; i < 6; i++ {
		sessions = append(sessions, entity.SessionRecord{
			ID:        string(rune('a' + i)),
			StartTime: base.AddDate(0, 0, i),
			Duration:  900,
		})
		total += 900
	}
	stats := entity.ProgressStats{
		TotalSessions:     len(sessions),
		TotalPracticeTime: total,
		ModeBreakdown:     entity.NewModeBreakdown(),
	}
	ms := Milestones(stats, sessions)
	byID := map[string]entity.Milestone{}
	for _, m := range ms {
		byID[m.ID] = m
	}

	s5 := byID["sessions-5"]
	if !s5.Achieved || s5.AchievedAt == nil || !s5.AchievedAt.Equal(base.AddDate(0, 0, 4)) {
		t.Fatalf("sessions-5 = %+v", s5)
	}
	// 900s each, 3600 reached on the fourth session
	t60 := byID["time-60"]
	if !t60.Achieved || t60.AchievedAt == nil || !t60.AchievedAt.Equal(base.AddDate(0, 0, 3)) {
		t.Fatalf("time-60 = %+v", t60)
	}
	if t60.Current != 90 {
		t.Fatalf("time current = %d", t60.Current)
	}
	if byID["sessions-25"].Achieved || byID["sessions-25"].AchievedAt != nil {
		t.Fatal("sessions-25 should not be achieved")
	}
}

func TestNextMilestoneTieKeepsFirst(t *testing.T) {
	ms := []entity.Milestone{
		{ID: "a", Requirement: 10, Current: 5},
		{ID: "b", Requirement: 4, Current: 2},
		{ID: "c", Requirement: 2, Current: 2, Achieved: true},
	}
	if got := NextMilestone(ms); got == nil || got.ID != "a" {
		t.Fatalf("next = %+v", got)
	}
}
