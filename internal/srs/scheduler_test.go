package srs

import (
	"errors"
	"reflect"
	"testing"
	"time"

	"github.com/eslsoft/aussieprogress/internal/entity"
)

var now = time.Date(2025, 6, 1, 9, 0, 0, 0, time.UTC)

func TestLeveledTransitions(t *testing.T) {
	sched := NewScheduler(Leveled())
	cases := []struct {
		name      string
		level     int
		rating    int
		wantLevel int
		wantDelay time.Duration
	}{
		{"good on level 2", 2, 3, 3, 3 * day},
		{"perfect on level 0", 0, 5, 2, day},
		{"perfect caps at 5", 4, 5, 5, 30 * day},
		{"forgot stays at 0", 0, 1, 0, 0},
		{"hard drops a level", 3, 2, 2, day},
		{"easy adds one", 1, 4, 2, day},
		{"good on mastered stays", 5, 3, 5, 30 * day},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			card := &entity.PracticeCard{ID: "arvo", Level: c.level}
			got, err := sched.Review("arvo", card, c.rating, now)
			if err != nil {
				t.Fatalf("Review returned error: %v", err)
			}
			if got.Level != c.wantLevel {
				t.Fatalf("level = %d want %d", got.Level, c.wantLevel)
			}
			if !got.NextReview.Equal(now.Add(c.wantDelay)) {
				t.Fatalf("next review = %s want %s", got.NextReview, now.Add(c.wantDelay))
			}
			if !got.LastReview.Equal(now) {
				t.Fatalf("last review = %s want %s", got.LastReview, now)
			}
		})
	}
}

func TestLeveledRejectsOutOfRangeRatings(t *testing.T) {
	sched := NewScheduler(Leveled())
	for _, rating := range []int{0, 6, -1} {
		_, err := sched.Review("arvo", nil, rating, now)
		if !errors.Is(err, entity.ErrInvalidRating) {
			t.Fatalf("rating %d: expected ErrInvalidRating, got %v", rating, err)
		}
	}
}

func TestReviewClampsStoredLevel(t *testing.T) {
	cases := []struct {
		name      string
		policy    Policy
		level     int
		grade     int
		wantLevel int
	}{
		{"leveled above ladder forgot", Leveled(), 9, RatingForgot, 4},
		{"leveled above ladder good", Leveled(), 9, RatingGood, 5},
		{"leveled below ladder", Leveled(), -3, RatingGood, 1},
		{"binary above ladder nailed", Binary(), 7, GradeNailed, 4},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			sched := NewScheduler(c.policy)
			got, err := sched.Review("arvo", &entity.PracticeCard{ID: "arvo", Level: c.level}, c.grade, now)
			if err != nil {
				t.Fatalf("Review returned error: %v", err)
			}
			if got.Level != c.wantLevel {
				t.Fatalf("level = %d want %d", got.Level, c.wantLevel)
			}
			if want := now.Add(c.policy.Interval(got.Level)); !got.NextReview.Equal(want) {
				t.Fatalf("next review = %s want %s", got.NextReview, want)
			}
		})
	}
}

func TestNewCardFirstReview(t *testing.T) {
	leveled, err := NewScheduler(Leveled()).Review("cuppa", nil, RatingGood, now)
	if err != nil {
		t.Fatalf("leveled review: %v", err)
	}
	if leveled.Level != 1 || !leveled.NextReview.Equal(now.Add(time.Hour)) {
		t.Fatalf("expected level 1 due in an hour, got %+v", leveled)
	}

	binary, err := NewScheduler(Binary()).Review("touch-base", nil, GradeNailed, now)
	if err != nil {
		t.Fatalf("binary review: %v", err)
	}
	if !binary.NextReview.Equal(now.Add(3 * day)) {
		t.Fatalf("expected first success due in 3 days, got %s", binary.NextReview)
	}
}

func TestBinaryLadder(t *testing.T) {
	sched := NewScheduler(Binary())
	var card *entity.PracticeCard
	wantDays := []int{3, 7, 14, 30, 30}
	for i, want := range wantDays {
		next, err := sched.Review("circle-back", card, GradeNailed, now)
		if err != nil {
			t.Fatalf("step %d: %v", i, err)
		}
		if got := next.NextReview.Sub(now); got != time.Duration(want)*day {
			t.Fatalf("step %d: interval %s want %d days", i, got, want)
		}
		card = &next
	}

	missed, err := sched.Review("circle-back", card, GradeNeedsPractice, now)
	if err != nil {
		t.Fatalf("miss: %v", err)
	}
	if missed.Level != 0 || missed.NextReview.Sub(now) != day {
		t.Fatalf("expected reset to 1 day, got %+v", missed)
	}

	if _, err := sched.Review("circle-back", card, 2, now); !errors.Is(err, entity.ErrInvalidGrade) {
		t.Fatalf("expected ErrInvalidGrade, got %v", err)
	}
}

func TestReviewRequiresID(t *testing.T) {
	if _, err := NewScheduler(Leveled()).Review("  ", nil, 3, now); !errors.Is(err, entity.ErrInvalidCardID) {
		t.Fatalf("expected ErrInvalidCardID, got %v", err)
	}
}

func TestDue(t *testing.T) {
	cards := map[string]entity.PracticeCard{
		"past":   {ID: "past", Level: 2, NextReview: now.Add(-time.Minute)},
		"exact":  {ID: "exact", Level: 1, NextReview: now},
		"future": {ID: "future", Level: 3, NextReview: now.Add(time.Hour)},
	}
	ids := []string{"future", "unseen", "exact", "past"}

	got := NewScheduler(Leveled()).Due(ids, cards, now)
	if want := []string{"unseen", "exact", "past"}; !reflect.DeepEqual(got, want) {
		t.Fatalf("leveled due = %v want %v", got, want)
	}

	got = NewScheduler(Binary()).Due(ids, cards, now)
	if want := []string{"exact", "past"}; !reflect.DeepEqual(got, want) {
		t.Fatalf("binary due = %v want %v", got, want)
	}
}

func TestStats(t *testing.T) {
	progress := &entity.DeckProgress{
		Cards: map[string]entity.PracticeCard{
			"a": {ID: "a", Level: 0, NextReview: now},
			"b": {ID: "b", Level: 1, NextReview: now.Add(time.Hour)},
			"c": {ID: "c", Level: 5, NextReview: now.Add(30 * day)},
		},
		QuizHighScore:     8,
		TotalQuizzesTaken: 2,
	}
	stats := NewScheduler(Leveled()).Stats(entity.DeckSlang, progress, now)
	want := entity.DeckStats{Deck: entity.DeckSlang, Tracked: 3, Learned: 2, Mastered: 1, Due: 1, QuizHighScore: 8, TotalQuizzesTaken: 2}
	if stats != want {
		t.Fatalf("stats = %+v want %+v", stats, want)
	}
}
