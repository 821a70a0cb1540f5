package usecase

import (
	"context"
	"strings"
	"sync"
	"time"

	"github.com/samber/lo"
	"github.com/sirupsen/logrus"

	"github.com/eslsoft/aussieprogress/internal/entity"
	"github.com/eslsoft/aussieprogress/internal/repository"
	"github.com/eslsoft/aussieprogress/internal/scoring"
	"github.com/eslsoft/aussieprogress/pkg/textmatch"
)

// recentTrendWindow is how many finalized sessions the trend spans.
const recentTrendWindow = 5

// PronunciationUsecase runs phrase practice: pick a phrase, score spoken
// attempts against it, and group attempts into sessions.
type PronunciationUsecase interface {
	StartPractice(ctx context.Context, mode entity.PracticeMode) (*entity.Phrase, error)
	Current(ctx context.Context) (*entity.PracticeBuffer, error)
	Submit(ctx context.Context, spoken string, confidence float64) (*entity.PronunciationAttempt, error)
	SubmitRecognition(ctx context.Context, results []entity.RecognitionResult) (*entity.PronunciationAttempt, error)
	FinalizeSession(ctx context.Context, sessionID string, mode entity.PracticeMode) (*entity.PronunciationSession, error)
	History(ctx context.Context) ([]entity.PronunciationSession, error)
	OverallStats(ctx context.Context) (*entity.PronunciationStats, error)
	Clear(ctx context.Context) error
}

func NewPronunciationUsecase(repo repository.PronunciationRepository, scorer *scoring.Scorer, logger logrus.FieldLogger) PronunciationUsecase {
	return &pronunciationUsecase{
		repo:   repo,
		scorer: scorer,
		logger: logger,
		clock:  time.Now,
	}
}

type pronunciationUsecase struct {
	mu     sync.Mutex
	repo   repository.PronunciationRepository
	scorer *scoring.Scorer
	logger logrus.FieldLogger
	clock  func() time.Time
}

// StartPractice picks the next phrase for mode and makes it current. Attempts
// already buffered are kept.
func (u *pronunciationUsecase) StartPractice(ctx context.Context, mode entity.PracticeMode) (*entity.Phrase, error) {
	phrase, err := scoring.NextPhrase(mode, u.scorer.Selector())
	if err != nil {
		return nil, err
	}
	u.mu.Lock()
	defer u.mu.Unlock()
	buffer, err := u.repo.Buffer(ctx)
	if err != nil {
		return nil, err
	}
	buffer.Mode = mode
	buffer.Phrase = lo.ToPtr(phrase.Clone())
	if err := u.repo.SaveBuffer(ctx, buffer); err != nil {
		return nil, err
	}
	return &phrase, nil
}

func (u *pronunciationUsecase) Current(ctx context.Context) (*entity.PracticeBuffer, error) {
	u.mu.Lock()
	defer u.mu.Unlock()
	return u.repo.Buffer(ctx)
}

// Submit scores spoken against the current phrase and buffers the attempt.
// The phrase is consumed; the next attempt needs a new StartPractice.
func (u *pronunciationUsecase) Submit(ctx context.Context, spoken string, confidence float64) (*entity.PronunciationAttempt, error) {
	u.mu.Lock()
	defer u.mu.Unlock()
	buffer, err := u.repo.Buffer(ctx)
	if err != nil {
		return nil, err
	}
	if buffer.Phrase == nil {
		return nil, entity.ErrNoActivePhrase
	}

	attempt := u.scorer.Score(*buffer.Phrase, spoken, confidence, u.clock())
	buffer.Attempts = append(buffer.Attempts, attempt)
	buffer.Phrase = nil
	if err := u.repo.SaveBuffer(ctx, buffer); err != nil {
		return nil, err
	}
	u.logger.WithFields(logrus.Fields{
		"phrase":  attempt.Phrase,
		"overall": attempt.Overall,
	}).Debug("pronunciation scored")
	return &attempt, nil
}

// SubmitRecognition folds recognizer events into one transcript and submits it.
func (u *pronunciationUsecase) SubmitRecognition(ctx context.Context, results []entity.RecognitionResult) (*entity.PronunciationAttempt, error) {
	var c scoring.Collector
	for _, r := range results {
		c.Add(r)
	}
	return u.Submit(ctx, c.Transcript(), c.Confidence())
}

// FinalizeSession groups the buffered attempts into a session. Improvement
// is measured against the previous session in the same mode.
func (u *pronunciationUsecase) FinalizeSession(ctx context.Context, sessionID string, mode entity.PracticeMode) (*entity.PronunciationSession, error) {
	u.mu.Lock()
	defer u.mu.Unlock()
	buffer, err := u.repo.Buffer(ctx)
	if err != nil {
		return nil, err
	}
	if len(buffer.Attempts) == 0 {
		return nil, entity.ErrEmptySession
	}
	if mode == entity.PracticeModeUnspecified {
		mode = buffer.Mode
	}
	if !mode.Valid() {
		return nil, entity.ErrInvalidPracticeMode
	}

	history, err := u.repo.History(ctx)
	if err != nil {
		return nil, err
	}

	session := entity.PronunciationSession{
		SessionID:      strings.TrimSpace(sessionID),
		Mode:           mode,
		Scores:         buffer.Attempts,
		AverageOverall: meanOverall(buffer.Attempts),
	}
	sameMode := lo.Filter(history, func(s entity.PronunciationSession, _ int) bool { return s.Mode == mode })
	if n := len(sameMode); n > 0 {
		session.Improvement = session.AverageOverall - sameMode[n-1].AverageOverall
	}

	if err := u.repo.AppendSession(ctx, session); err != nil {
		return nil, err
	}
	if err := u.repo.ClearBuffer(ctx); err != nil {
		return nil, err
	}
	return &session, nil
}

func meanOverall(attempts []entity.PronunciationAttempt) int {
	if len(attempts) == 0 {
		return 0
	}
	sum := lo.SumBy(attempts, func(a entity.PronunciationAttempt) int { return a.Overall })
	return textmatch.Round(float64(sum) / float64(len(attempts)))
}

func (u *pronunciationUsecase) History(ctx context.Context) ([]entity.PronunciationSession, error) {
	u.mu.Lock()
	defer u.mu.Unlock()
	return u.repo.History(ctx)
}

func (u *pronunciationUsecase) OverallStats(ctx context.Context) (*entity.PronunciationStats, error) {
	history, err := u.History(ctx)
	if err != nil {
		return nil, err
	}
	stats := PronunciationStats(history)
	return &stats, nil
}

// PronunciationStats aggregates finalized sessions. Every field is zero for
// an empty history.
func PronunciationStats(history []entity.PronunciationSession) entity.PronunciationStats {
	stats := entity.PronunciationStats{ModeAverages: make(map[entity.PracticeMode]int, 3)}
	for _, mode := range entity.PracticeModes() {
		stats.ModeAverages[mode] = 0
	}
	attempts := lo.FlatMap(history, func(s entity.PronunciationSession, _ int) []entity.PronunciationAttempt { return s.Scores })
	if len(attempts) == 0 {
		return stats
	}

	stats.AverageScore = meanOverall(attempts)
	stats.TotalPhrasesPracticed = len(attempts)
	stats.BestScore = lo.Max(lo.Map(attempts, func(a entity.PronunciationAttempt, _ int) int { return a.Overall }))

	recent := history[max(0, len(history)-recentTrendWindow):]
	if len(recent) >= 2 {
		stats.RecentTrend = recent[len(recent)-1].AverageOverall - recent[0].AverageOverall
	}

	for _, mode := range entity.PracticeModes() {
		sessions := lo.Filter(history, func(s entity.PronunciationSession, _ int) bool { return s.Mode == mode })
		if len(sessions) == 0 {
			continue
		}
		sum := lo.SumBy(sessions, func(s entity.PronunciationSession) int { return s.AverageOverall })
		stats.ModeAverages[mode] = textmatch.Round(float64(sum) / float64(len(sessions)))
	}
	return stats
}

func (u *pronunciationUsecase) Clear(ctx context.Context) error {
	u.mu.Lock()
	defer u.mu.Unlock()
	return u.repo.Reset(ctx)
}
