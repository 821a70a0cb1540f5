package repository

import (
	"context"

	"github.com/eslsoft/aussieprogress/internal/entity"
	"github.com/eslsoft/aussieprogress/internal/repository"
	"github.com/sirupsen/logrus"
)

type gamificationRepository struct {
	docs documents
}

func NewGamificationRepository(store repository.DocumentStore, logger logrus.FieldLogger) repository.GamificationRepository {
	return &gamificationRepository{docs: newDocuments(store, logger)}
}

func (r *gamificationRepository) Load(ctx context.Context) (*entity.GamificationState, error) {
	state := entity.DefaultGamificationState()
	ok, err := r.docs.load(ctx, repository.KeyGamification, state)
	if err != nil {
		return nil, err
	}
	if !ok {
		return entity.DefaultGamificationState(), nil
	}
	if state.Favorites == nil {
		state.Favorites = []string{}
	}
	if state.UnlockedAchievements == nil {
		state.UnlockedAchievements = []string{}
	}
	state.Level = entity.LevelForXP(state.XP)
	return state, nil
}

func (r *gamificationRepository) Save(ctx context.Context, state *entity.GamificationState) error {
	return r.docs.save(ctx, repository.KeyGamification, state)
}

func (r *gamificationRepository) Reset(ctx context.Context) error {
	return r.docs.remove(ctx, repository.KeyGamification)
}
