package usecase

import (
	"context"
	"fmt"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/samber/lo"
	"github.com/sirupsen/logrus"

	"github.com/eslsoft/aussieprogress/internal/entity"
	"github.com/eslsoft/aussieprogress/internal/repository"
	"github.com/eslsoft/aussieprogress/internal/srs"
)

// ReviewUsecase schedules review cards in the slang and workplace decks.
type ReviewUsecase interface {
	Rate(ctx context.Context, deck entity.Deck, cardID string, grade int) (*entity.PracticeCard, error)
	Card(ctx context.Context, deck entity.Deck, cardID string) (*entity.PracticeCard, error)
	Due(ctx context.Context, deck entity.Deck, ids []string) ([]string, error)
	Stats(ctx context.Context, deck entity.Deck) (*entity.DeckStats, error)
	RecordQuiz(ctx context.Context, deck entity.Deck, score, total int) (*entity.DeckStats, error)
	Reset(ctx context.Context, deck entity.Deck) error
}

// NewReviewUsecase binds each deck to its scheduling policy.
func NewReviewUsecase(repo repository.DeckRepository, logger logrus.FieldLogger) ReviewUsecase {
	schedulers := make(map[entity.Deck]*srs.Scheduler, len(entity.Decks()))
	for _, deck := range entity.Decks() {
		policy, _ := srs.PolicyFor(deck)
		schedulers[deck] = srs.NewScheduler(policy)
	}
	return &reviewUsecase{
		repo:       repo,
		schedulers: schedulers,
		logger:     logger,
		clock:      time.Now,
	}
}

type reviewUsecase struct {
	mu         sync.Mutex
	repo       repository.DeckRepository
	schedulers map[entity.Deck]*srs.Scheduler
	logger     logrus.FieldLogger
	clock      func() time.Time
}

func (u *reviewUsecase) scheduler(deck entity.Deck) (*srs.Scheduler, error) {
	s, ok := u.schedulers[deck]
	if !ok {
		return nil, entity.ErrUnknownDeck
	}
	return s, nil
}

// Rate applies grade to the card, creating it on first review. Other cards
// in the deck are untouched.
func (u *reviewUsecase) Rate(ctx context.Context, deck entity.Deck, cardID string, grade int) (*entity.PracticeCard, error) {
	sched, err := u.scheduler(deck)
	if err != nil {
		return nil, err
	}

	u.mu.Lock()
	defer u.mu.Unlock()
	progress, err := u.repo.Load(ctx, deck)
	if err != nil {
		return nil, err
	}

	var current *entity.PracticeCard
	if card, ok := progress.Card(strings.TrimSpace(cardID)); ok {
		current = &card
	}
	next, err := sched.Review(cardID, current, grade, u.clock())
	if err != nil {
		return nil, err
	}
	progress.Cards[next.ID] = next
	if err := u.repo.Save(ctx, deck, progress); err != nil {
		return nil, err
	}
	u.logger.WithFields(logrus.Fields{
		"deck":  deck,
		"card":  next.ID,
		"level": next.Level,
		"next":  next.NextReview,
	}).Debug("card rescheduled")
	return &next, nil
}

func (u *reviewUsecase) Card(ctx context.Context, deck entity.Deck, cardID string) (*entity.PracticeCard, error) {
	if _, err := u.scheduler(deck); err != nil {
		return nil, err
	}
	u.mu.Lock()
	defer u.mu.Unlock()
	progress, err := u.repo.Load(ctx, deck)
	if err != nil {
		return nil, err
	}
	card, ok := progress.Card(cardID)
	if !ok {
		return nil, fmt.Errorf("%w: %q", entity.ErrInvalidCardID, cardID)
	}
	return &card, nil
}

// Due filters ids down to the cards due now, keeping the input order. With
// no ids it considers every stored card, sorted by id.
func (u *reviewUsecase) Due(ctx context.Context, deck entity.Deck, ids []string) ([]string, error) {
	sched, err := u.scheduler(deck)
	if err != nil {
		return nil, err
	}
	u.mu.Lock()
	defer u.mu.Unlock()
	progress, err := u.repo.Load(ctx, deck)
	if err != nil {
		return nil, err
	}
	if len(ids) == 0 {
		ids = lo.Keys(progress.Cards)
		sort.Strings(ids)
	}
	return sched.Due(lo.Uniq(ids), progress.Cards, u.clock()), nil
}

func (u *reviewUsecase) Stats(ctx context.Context, deck entity.Deck) (*entity.DeckStats, error) {
	sched, err := u.scheduler(deck)
	if err != nil {
		return nil, err
	}
	u.mu.Lock()
	defer u.mu.Unlock()
	progress, err := u.repo.Load(ctx, deck)
	if err != nil {
		return nil, err
	}
	stats := sched.Stats(deck, progress, u.clock())
	return &stats, nil
}

// RecordQuiz counts a finished deck quiz and keeps the best score.
func (u *reviewUsecase) RecordQuiz(ctx context.Context, deck entity.Deck, score, total int) (*entity.DeckStats, error) {
	sched, err := u.scheduler(deck)
	if err != nil {
		return nil, err
	}
	if err := validateScore(score, total); err != nil {
		return nil, err
	}
	u.mu.Lock()
	defer u.mu.Unlock()
	progress, err := u.repo.Load(ctx, deck)
	if err != nil {
		return nil, err
	}
	progress.TotalQuizzesTaken++
	progress.QuizHighScore = max(progress.QuizHighScore, score)
	if err := u.repo.Save(ctx, deck, progress); err != nil {
		return nil, err
	}
	stats := sched.Stats(deck, progress, u.clock())
	return &stats, nil
}

func (u *reviewUsecase) Reset(ctx context.Context, deck entity.Deck) error {
	if _, err := u.scheduler(deck); err != nil {
		return err
	}
	u.mu.Lock()
	defer u.mu.Unlock()
	return u.repo.Reset(ctx, deck)
}
