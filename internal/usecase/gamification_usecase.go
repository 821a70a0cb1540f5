package usecase

import (
	"context"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/samber/lo"
	"github.com/sirupsen/logrus"

	"github.com/eslsoft/aussieprogress/internal/achievement"
	"github.com/eslsoft/aussieprogress/internal/entity"
	"github.com/eslsoft/aussieprogress/internal/repository"
	"github.com/eslsoft/aussieprogress/internal/streak"
)

// GamificationUsecase applies XP, streak and achievement rules to learner
// activity. Every mutating call is one load-modify-save of the state.
type GamificationUsecase interface {
	State(ctx context.Context) (*entity.GamificationState, error)
	AddXP(ctx context.Context, amount int) (*entity.GamificationResult, error)
	RecordCardView(ctx context.Context) (*entity.GamificationResult, error)
	RecordQuizComplete(ctx context.Context, score, total int) (*entity.GamificationResult, error)
	RecordQuizCorrect(ctx context.Context) (*entity.GamificationResult, error)
	RecordFillBlankComplete(ctx context.Context, score, total int) (*entity.GamificationResult, error)
	RecordFillBlankCorrect(ctx context.Context) (*entity.GamificationResult, error)
	RecordSentenceBuilderComplete(ctx context.Context) (*entity.GamificationResult, error)
	RecordSentenceBuilderCorrect(ctx context.Context) (*entity.GamificationResult, error)
	RecordVoicePractice(ctx context.Context) (*entity.GamificationResult, error)
	RecordReviewComplete(ctx context.Context) (*entity.GamificationResult, error)
	ToggleFavorite(ctx context.Context, id string) (*entity.GamificationResult, error)
	CompleteDailyChallenge(ctx context.Context) (*entity.GamificationResult, error)
	CheckStreak(ctx context.Context) (*entity.GamificationResult, error)
	XPProgress(ctx context.Context) (*entity.XPProgress, error)
	Achievements(ctx context.Context) ([]entity.AchievementStatus, error)
	Reset(ctx context.Context) (*entity.GamificationResult, error)
}

// NewGamificationUsecase wires the state repository with the gamification catalog.
func NewGamificationUsecase(repo repository.GamificationRepository, engine *achievement.Engine, logger logrus.FieldLogger) GamificationUsecase {
	return &gamificationUsecase{
		repo:   repo,
		engine: engine,
		logger: logger,
		clock:  time.Now,
	}
}

type gamificationUsecase struct {
	mu     sync.Mutex
	repo   repository.GamificationRepository
	engine *achievement.Engine
	logger logrus.FieldLogger
	clock  func() time.Time
}

// update runs mutate against a copy of the stored state, then recomputes the
// level, unlocks achievements and saves.
func (u *gamificationUsecase) update(ctx context.Context, mutate func(s *entity.GamificationState, now time.Time, notify func(string)) error) (*entity.GamificationResult, error) {
	u.mu.Lock()
	defer u.mu.Unlock()

	prev, err := u.repo.Load(ctx)
	if err != nil {
		return nil, err
	}
	now := u.clock()
	next := prev.Clone()
	result := &entity.GamificationResult{}
	notify := func(msg string) { result.Notifications = append(result.Notifications, msg) }

	if err := mutate(next, now, notify); err != nil {
		return nil, err
	}

	next.Level = entity.LevelForXP(next.XP)
	if next.Level > prev.Level {
		result.LeveledUp = true
		notify(fmt.Sprintf("Level Up! You're now Level %d!", next.Level))
	}

	rules, err := u.engine.Evaluate(next.Metrics(), next.UnlockedAchievements)
	if err != nil {
		return nil, fmt.Errorf("evaluate achievements: %w", err)
	}
	if len(rules) > 0 {
		next.UnlockedAchievements = append(next.UnlockedAchievements, lo.Map(rules, func(r entity.AchievementRule, _ int) string { return r.ID })...)
		result.NewAchievements = lo.Map(rules, func(r entity.AchievementRule, _ int) entity.AchievementStatus {
			return achievement.Status(r, true, nil)
		})
		for _, r := range rules {
			u.logger.WithField("achievement", r.ID).Debug("achievement unlocked")
		}
	}

	if err := u.repo.Save(ctx, next); err != nil {
		return nil, err
	}
	result.State = next.Clone()
	return result, nil
}

// recordActivity marks today as active for the streak.
func recordActivity(s *entity.GamificationState, now time.Time) {
	st := streak.Record(streak.State{Current: s.Streak, Max: s.MaxStreak, Last: s.LastActivity}, now)
	s.Streak, s.MaxStreak, s.LastActivity = st.Current, st.Max, st.Last
}

func validateScore(score, total int) error {
	if total <= 0 || score < 0 || score > total {
		return fmt.Errorf("%w: %d/%d", entity.ErrInvalidQuizScore, score, total)
	}
	return nil
}

func (u *gamificationUsecase) State(ctx context.Context) (*entity.GamificationState, error) {
	u.mu.Lock()
	defer u.mu.Unlock()
	return u.repo.Load(ctx)
}

func (u *gamificationUsecase) AddXP(ctx context.Context, amount int) (*entity.GamificationResult, error) {
	if amount < 0 {
		return nil, fmt.Errorf("%w: %d", entity.ErrInvalidXPAmount, amount)
	}
	return u.update(ctx, func(s *entity.GamificationState, _ time.Time, _ func(string)) error {
		s.XP += amount
		return nil
	})
}

func (u *gamificationUsecase) RecordCardView(ctx context.Context) (*entity.GamificationResult, error) {
	return u.update(ctx, func(s *entity.GamificationState, now time.Time, _ func(string)) error {
		s.CardsViewed++
		s.XP += entity.XPCardView
		recordActivity(s, now)
		return nil
	})
}

func (u *gamificationUsecase) RecordQuizComplete(ctx context.Context, score, total int) (*entity.GamificationResult, error) {
	if err := validateScore(score, total); err != nil {
		return nil, err
	}
	return u.update(ctx, func(s *entity.GamificationState, now time.Time, _ func(string)) error {
		s.QuizzesCompleted++
		s.HighScore = max(s.HighScore, score)
		s.XP += entity.XPQuizComplete
		if score == total {
			s.PerfectQuizzes++
			s.XP += entity.XPPerfectQuiz
		}
		recordActivity(s, now)
		return nil
	})
}

func (u *gamificationUsecase) RecordQuizCorrect(ctx context.Context) (*entity.GamificationResult, error) {
	return u.AddXP(ctx, entity.XPQuizCorrect)
}

func (u *gamificationUsecase) RecordFillBlankComplete(ctx context.Context, score, total int) (*entity.GamificationResult, error) {
	if err := validateScore(score, total); err != nil {
		return nil, err
	}
	return u.update(ctx, func(s *entity.GamificationState, now time.Time, _ func(string)) error {
		s.FillBlankCompleted++
		s.XP += entity.XPQuizComplete
		if score == total {
			s.XP += entity.XPPerfectQuiz
		}
		recordActivity(s, now)
		return nil
	})
}

func (u *gamificationUsecase) RecordFillBlankCorrect(ctx context.Context) (*entity.GamificationResult, error) {
	return u.AddXP(ctx, entity.XPFillBlankCorrect)
}

func (u *gamificationUsecase) RecordSentenceBuilderComplete(ctx context.Context) (*entity.GamificationResult, error) {
	return u.update(ctx, func(s *entity.GamificationState, now time.Time, _ func(string)) error {
		s.SentenceBuilderCompleted++
		s.XP += entity.XPQuizComplete
		recordActivity(s, now)
		return nil
	})
}

func (u *gamificationUsecase) RecordSentenceBuilderCorrect(ctx context.Context) (*entity.GamificationResult, error) {
	return u.AddXP(ctx, entity.XPSentenceBuilderCorrect)
}

func (u *gamificationUsecase) RecordVoicePractice(ctx context.Context) (*entity.GamificationResult, error) {
	return u.update(ctx, func(s *entity.GamificationState, _ time.Time, _ func(string)) error {
		s.VoicePracticeCount++
		s.XP += entity.XPVoicePractice
		return nil
	})
}

func (u *gamificationUsecase) RecordReviewComplete(ctx context.Context) (*entity.GamificationResult, error) {
	return u.update(ctx, func(s *entity.GamificationState, now time.Time, _ func(string)) error {
		s.XP += entity.XPReviewComplete
		recordActivity(s, now)
		return nil
	})
}

func (u *gamificationUsecase) ToggleFavorite(ctx context.Context, id string) (*entity.GamificationResult, error) {
	id = strings.TrimSpace(id)
	if id == "" {
		return nil, entity.ErrInvalidFavoriteID
	}
	return u.update(ctx, func(s *entity.GamificationState, _ time.Time, notify func(string)) error {
		if lo.Contains(s.Favorites, id) {
			s.Favorites = lo.Without(s.Favorites, id)
			notify("Removed from favorites")
			return nil
		}
		s.Favorites = append(s.Favorites, id)
		notify("Added to favorites!")
		return nil
	})
}

// CompleteDailyChallenge pays out once per calendar day; later calls that
// day leave the state unchanged.
func (u *gamificationUsecase) CompleteDailyChallenge(ctx context.Context) (*entity.GamificationResult, error) {
	return u.update(ctx, func(s *entity.GamificationState, now time.Time, notify func(string)) error {
		today := streak.Day(now)
		s.LastDailyChallenge = today
		if s.DailyChallengeCompletedToday == today {
			return nil
		}
		s.DailyChallengesCompleted++
		s.DailyChallengeCompletedToday = today
		s.XP += entity.XPDailyChallenge
		notify(fmt.Sprintf("Daily Challenge Complete! +%d XP", entity.XPDailyChallenge))
		return nil
	})
}

// CheckStreak rolls the streak forward to today without recording activity.
func (u *gamificationUsecase) CheckStreak(ctx context.Context) (*entity.GamificationResult, error) {
	return u.update(ctx, func(s *entity.GamificationState, now time.Time, notify func(string)) error {
		prev := s.Streak
		st, extended := streak.Check(streak.State{Current: s.Streak, Max: s.MaxStreak, Last: s.LastActivity}, now)
		s.Streak, s.MaxStreak, s.LastActivity = st.Current, st.Max, st.Last
		switch {
		case extended && st.Current > 1:
			s.XP += entity.XPStreakBonus
			notify(fmt.Sprintf("%d day streak! +%d XP", st.Current, entity.XPStreakBonus))
		case prev > 0 && st.Current == 0:
			notify("Streak lost! Start a new one today.")
		}
		return nil
	})
}

func (u *gamificationUsecase) XPProgress(ctx context.Context) (*entity.XPProgress, error) {
	state, err := u.State(ctx)
	if err != nil {
		return nil, err
	}
	progress := state.XPProgress()
	return &progress, nil
}

func (u *gamificationUsecase) Achievements(ctx context.Context) ([]entity.AchievementStatus, error) {
	state, err := u.State(ctx)
	if err != nil {
		return nil, err
	}
	return lo.Map(u.engine.Rules(), func(r entity.AchievementRule, _ int) entity.AchievementStatus {
		return achievement.Status(r, lo.Contains(state.UnlockedAchievements, r.ID), nil)
	}), nil
}

func (u *gamificationUsecase) Reset(ctx context.Context) (*entity.GamificationResult, error) {
	u.mu.Lock()
	defer u.mu.Unlock()
	if err := u.repo.Reset(ctx); err != nil {
		return nil, err
	}
	u.logger.Info("gamification progress reset")
	return &entity.GamificationResult{
		State:         entity.DefaultGamificationState(),
		Notifications: []string{"Progress reset"},
	}, nil
}
