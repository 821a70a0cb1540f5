//go:build wireinject
// +build wireinject

package app

import (
	"github.com/google/wire"
	"github.com/sirupsen/logrus"

	"github.com/eslsoft/aussieprogress/internal/adapter/repository"
	"github.com/eslsoft/aussieprogress/internal/infrastructure/config"
	"github.com/eslsoft/aussieprogress/internal/infrastructure/database"
	"github.com/eslsoft/aussieprogress/internal/infrastructure/logger"
	"github.com/eslsoft/aussieprogress/internal/scoring"
	"github.com/eslsoft/aussieprogress/internal/usecase"
)

var loggerSet = wire.NewSet(
	logger.NewLogger,
	wire.Bind(new(logrus.FieldLogger), new(*logrus.Logger)),
)

var storeSet = wire.NewSet(
	database.NewStore,
)

var repositorySet = wire.NewSet(
	repository.NewDeckRepository,
	repository.NewGamificationRepository,
	repository.NewSessionRepository,
	repository.NewActiveSessionRepository,
	repository.NewPronunciationRepository,
	repository.NewAchievementRepository,
)

var usecaseSet = wire.NewSet(
	NewSelector,
	NewWeekWindow,
	scoring.NewScorer,
	NewSessionUsecase,
	NewGamificationUsecase,
	usecase.NewPronunciationUsecase,
	usecase.NewReviewUsecase,
	usecase.NewProgressUsecase,
	NewBackupService,
)

// Initialize builds the application container for cfg using Wire.
func Initialize(cfg *config.Config) (*Container, func(), error) {
	wire.Build(
		loggerSet,
		storeSet,
		repositorySet,
		usecaseSet,
		wire.Struct(new(Container), "*"),
	)
	return nil, nil, nil
}
