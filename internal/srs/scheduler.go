package srs

import (
	"strings"
	"time"

	"github.com/eslsoft/aussieprogress/internal/entity"
)

// Scheduler applies a Policy to practice cards.
type Scheduler struct {
	policy Policy
}

// NewScheduler binds a scheduler to policy.
func NewScheduler(policy Policy) *Scheduler {
	return &Scheduler{policy: policy}
}

// Policy returns the bound policy.
func (s *Scheduler) Policy() Policy { return s.policy }

// Review applies grade to card and reschedules it from now. A nil card is
// treated as a card that has never been reviewed; a stored level outside the
// ladder is clamped before the grade applies.
func (s *Scheduler) Review(id string, card *entity.PracticeCard, grade int, now time.Time) (entity.PracticeCard, error) {
	id = strings.TrimSpace(id)
	if id == "" {
		return entity.PracticeCard{}, entity.ErrInvalidCardID
	}

	level := s.policy.InitialLevel
	if card != nil {
		level = s.policy.ClampLevel(card.Level)
	}
	next, err := s.policy.Transition(level, grade)
	if err != nil {
		return entity.PracticeCard{}, err
	}

	return entity.PracticeCard{
		ID:         id,
		Level:      next,
		LastReview: now,
		NextReview: now.Add(s.policy.Interval(next)),
	}, nil
}

// IsDue reports whether a card should be shown at now.
func (s *Scheduler) IsDue(card *entity.PracticeCard, now time.Time) bool {
	if card == nil {
		return s.policy.UnseenDue
	}
	return !card.NextReview.After(now)
}

// Due filters ids down to the cards due at now, keeping input order.
func (s *Scheduler) Due(ids []string, cards map[string]entity.PracticeCard, now time.Time) []string {
	due := make([]string, 0, len(ids))
	for _, id := range ids {
		card, ok := cards[id]
		if !ok {
			if s.policy.UnseenDue {
				due = append(due, id)
			}
			continue
		}
		if s.IsDue(&card, now) {
			due = append(due, id)
		}
	}
	return due
}

// Stats summarises a deck at now. Due counts only stored cards.
func (s *Scheduler) Stats(deck entity.Deck, progress *entity.DeckProgress, now time.Time) entity.DeckStats {
	stats := entity.DeckStats{Deck: deck}
	if progress == nil {
		return stats
	}
	stats.QuizHighScore = progress.QuizHighScore
	stats.TotalQuizzesTaken = progress.TotalQuizzesTaken
	for _, card := range progress.Cards {
		stats.Tracked++
		if card.Level >= s.policy.LearnedLevel {
			stats.Learned++
		}
		if card.Level >= s.policy.MasteredLevel {
			stats.Mastered++
		}
		if s.IsDue(&card, now) {
			stats.Due++
		}
	}
	return stats
}
