package app

import (
	"github.com/sirupsen/logrus"

	"github.com/eslsoft/aussieprogress/internal/infrastructure/config"
	"github.com/eslsoft/aussieprogress/internal/scoring"
	"github.com/eslsoft/aussieprogress/internal/usecase"
	"github.com/eslsoft/aussieprogress/internal/usecase/backup"
)

// Container aggregates the application dependencies produced by Wire.
type Container struct {
	Config        *config.Config
	Logger        *logrus.Logger
	Scorer        *scoring.Scorer
	Sessions      usecase.SessionUsecase
	Pronunciation usecase.PronunciationUsecase
	Gamification  usecase.GamificationUsecase
	Review        usecase.ReviewUsecase
	Progress      usecase.ProgressUsecase
	Backup        *backup.Service
}
