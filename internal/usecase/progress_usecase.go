package usecase

import (
	"context"
	"fmt"

	"github.com/sirupsen/logrus"

	"github.com/eslsoft/aussieprogress/internal/confidence"
	"github.com/eslsoft/aussieprogress/internal/entity"
	"github.com/eslsoft/aussieprogress/internal/repository"
	"github.com/eslsoft/aussieprogress/pkg/selector"
)

// ProgressSummary is the combined dashboard view.
type ProgressSummary struct {
	Sessions      entity.ProgressStats      `json:"sessions"`
	Gamification  *entity.GamificationState `json:"gamification"`
	XPProgress    entity.XPProgress         `json:"xpProgress"`
	Decks         []entity.DeckStats        `json:"decks"`
	Pronunciation entity.PronunciationStats `json:"pronunciation"`
}

// ProgressUsecase derives cross-cutting views over every tracker.
type ProgressUsecase interface {
	Summary(ctx context.Context) (*ProgressSummary, error)
	Confidence(ctx context.Context) (*entity.ConfidenceSnapshot, error)
	ResetAll(ctx context.Context) error
}

func NewProgressUsecase(
	sessions SessionUsecase,
	pronunciation PronunciationUsecase,
	gamification GamificationUsecase,
	review ReviewUsecase,
	store repository.DocumentStore,
	pick selector.Func,
	logger logrus.FieldLogger,
) ProgressUsecase {
	return &progressUsecase{
		sessions:      sessions,
		pronunciation: pronunciation,
		gamification:  gamification,
		review:        review,
		store:         store,
		pick:          pick,
		logger:        logger,
	}
}

type progressUsecase struct {
	sessions      SessionUsecase
	pronunciation PronunciationUsecase
	gamification  GamificationUsecase
	review        ReviewUsecase
	store         repository.DocumentStore
	pick          selector.Func
	logger        logrus.FieldLogger
}

func (u *progressUsecase) Summary(ctx context.Context) (*ProgressSummary, error) {
	stats, err := u.sessions.Stats(ctx)
	if err != nil {
		return nil, err
	}
	state, err := u.gamification.State(ctx)
	if err != nil {
		return nil, err
	}
	pron, err := u.pronunciation.OverallStats(ctx)
	if err != nil {
		return nil, err
	}
	summary := &ProgressSummary{
		Sessions:      *stats,
		Gamification:  state,
		XPProgress:    state.XPProgress(),
		Pronunciation: *pron,
	}
	for _, deck := range entity.Decks() {
		ds, err := u.review.Stats(ctx, deck)
		if err != nil {
			return nil, err
		}
		summary.Decks = append(summary.Decks, *ds)
	}
	return summary, nil
}

// Confidence computes the snapshot from session history and the overall
// pronunciation average.
func (u *progressUsecase) Confidence(ctx context.Context) (*entity.ConfidenceSnapshot, error) {
	stats, err := u.sessions.Stats(ctx)
	if err != nil {
		return nil, err
	}
	history, err := u.sessions.History(ctx)
	if err != nil {
		return nil, err
	}
	pron, err := u.pronunciation.OverallStats(ctx)
	if err != nil {
		return nil, err
	}
	snap := confidence.Compute(*stats, history.Sessions, float64(pron.AverageScore), u.pick)
	return &snap, nil
}

// ResetAll removes every progress document. It is the only operation that
// destroys review cards.
func (u *progressUsecase) ResetAll(ctx context.Context) error {
	for _, key := range repository.ProgressKeys() {
		if err := u.store.Remove(ctx, key); err != nil {
			return fmt.Errorf("reset progress: %w", err)
		}
	}
	u.logger.Info("all progress reset")
	return nil
}
