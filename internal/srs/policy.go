// Package srs schedules review cards on a fixed interval ladder.
package srs

import (
	"fmt"
	"time"

	"github.com/eslsoft/aussieprogress/internal/entity"
)

const day = 24 * time.Hour

// Policy parameterizes the scheduler with an interval ladder and a grade
// transition function. Levels index into Intervals.
type Policy struct {
	Name string
	// Intervals is the delay before the next review, indexed by level.
	Intervals []time.Duration
	// InitialLevel is the level of a card that has never been reviewed.
	InitialLevel int
	// Transition maps the current level and a grade to the next level.
	Transition func(level, grade int) (int, error)
	// UnseenDue reports whether a card with no stored record is due.
	UnseenDue bool
	// LearnedLevel and MasteredLevel are the levels counted as learned and mastered.
	LearnedLevel  int
	MasteredLevel int
}

// MaxLevel returns the highest level of the ladder.
func (p Policy) MaxLevel() int { return len(p.Intervals) - 1 }

// ClampLevel pulls level into [0, MaxLevel].
func (p Policy) ClampLevel(level int) int {
	return min(max(level, 0), p.MaxLevel())
}

// Interval returns the delay for level, clamped to the ladder.
func (p Policy) Interval(level int) time.Duration {
	return p.Intervals[p.ClampLevel(level)]
}

// Ratings accepted by the leveled policy.
const (
	RatingForgot  = 1
	RatingHard    = 2
	RatingGood    = 3
	RatingEasy    = 4
	RatingPerfect = 5
)

// Leveled is the six-level self-rating ladder used for slang cards.
func Leveled() Policy {
	return Policy{
		Name:          string(entity.DeckSlang),
		Intervals:     []time.Duration{0, time.Hour, day, 3 * day, 7 * day, 30 * day},
		InitialLevel:  0,
		UnseenDue:     true,
		LearnedLevel:  1,
		MasteredLevel: 5,
		Transition: func(level, rating int) (int, error) {
			if rating < RatingForgot || rating > RatingPerfect {
				return level, fmt.Errorf("%w: %d not in 1..5", entity.ErrInvalidRating, rating)
			}
			switch rating {
			case RatingForgot, RatingHard:
				return max(0, level-1), nil
			case RatingPerfect:
				return min(5, level+2), nil
			default:
				return min(5, level+1), nil
			}
		},
	}
}

// Grades accepted by the binary policy.
const (
	GradeNeedsPractice = 0
	GradeNailed        = 1
)

// Binary is the nailed-it ladder used for workplace phrases: 1, 3, 7, 14
// and 30 days, back to 1 day on a miss.
func Binary() Policy {
	return Policy{
		Name:          string(entity.DeckWorkplace),
		Intervals:     []time.Duration{day, 3 * day, 7 * day, 14 * day, 30 * day},
		InitialLevel:  0,
		UnseenDue:     false,
		LearnedLevel:  0,
		MasteredLevel: 4,
		Transition: func(level, grade int) (int, error) {
			switch grade {
			case GradeNailed:
				return min(4, level+1), nil
			case GradeNeedsPractice:
				return 0, nil
			default:
				return level, fmt.Errorf("%w: %d", entity.ErrInvalidGrade, grade)
			}
		},
	}
}

// PolicyFor returns the policy of a deck.
func PolicyFor(deck entity.Deck) (Policy, error) {
	switch deck {
	case entity.DeckSlang:
		return Leveled(), nil
	case entity.DeckWorkplace:
		return Binary(), nil
	default:
		return Policy{}, entity.ErrUnknownDeck
	}
}
