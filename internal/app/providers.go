package app

import (
	"github.com/sirupsen/logrus"

	"github.com/eslsoft/aussieprogress/internal/achievement"
	"github.com/eslsoft/aussieprogress/internal/infrastructure/config"
	"github.com/eslsoft/aussieprogress/internal/repository"
	"github.com/eslsoft/aussieprogress/internal/usecase"
	"github.com/eslsoft/aussieprogress/internal/usecase/backup"
	"github.com/eslsoft/aussieprogress/pkg/selector"
)

// NewSelector returns the feedback and phrase selector. Seed 0 means a
// fresh random source per process.
func NewSelector(cfg *config.Config) selector.Func {
	return selector.Random(cfg.Practice.Seed)
}

func NewWeekWindow(cfg *config.Config) usecase.WeekWindow {
	return usecase.WeekWindow(cfg.Practice.WeekWindowDays)
}

// NewSessionUsecase binds the session catalog. Both usecases take an
// *achievement.Engine, so the engines are built here instead of being
// provided to the graph.
func NewSessionUsecase(
	sessions repository.SessionRepository,
	active repository.ActiveSessionRepository,
	unlocks repository.AchievementRepository,
	window usecase.WeekWindow,
	logger logrus.FieldLogger,
) (usecase.SessionUsecase, error) {
	engine, err := achievement.NewSessionEngine()
	if err != nil {
		return nil, err
	}
	return usecase.NewSessionUsecase(sessions, active, unlocks, engine, window, logger), nil
}

func NewGamificationUsecase(repo repository.GamificationRepository, logger logrus.FieldLogger) (usecase.GamificationUsecase, error) {
	engine, err := achievement.NewGamificationEngine()
	if err != nil {
		return nil, err
	}
	return usecase.NewGamificationUsecase(repo, engine, logger), nil
}

func NewBackupService(store repository.DocumentStore, logger logrus.FieldLogger) *backup.Service {
	return backup.NewService(store, logger)
}
