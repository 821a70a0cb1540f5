package repository

import (
	"context"
	"sync"

	"github.com/eslsoft/aussieprogress/internal/entity"
	"github.com/eslsoft/aussieprogress/internal/repository"
	"github.com/sirupsen/logrus"
)

type achievementRepository struct {
	mu   sync.Mutex
	docs documents
}

func NewAchievementRepository(store repository.DocumentStore, logger logrus.FieldLogger) repository.AchievementRepository {
	return &achievementRepository{docs: newDocuments(store, logger)}
}

func (r *achievementRepository) list(ctx context.Context) ([]entity.UnlockedAchievement, error) {
	var records []entity.UnlockedAchievement
	ok, err := r.docs.load(ctx, repository.KeySessionAchievements, &records)
	if err != nil {
		return nil, err
	}
	if !ok || records == nil {
		return []entity.UnlockedAchievement{}, nil
	}
	return records, nil
}

func (r *achievementRepository) List(ctx context.Context) ([]entity.UnlockedAchievement, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.list(ctx)
}

// Add appends records whose id is not yet present.
func (r *achievementRepository) Add(ctx context.Context, records []entity.UnlockedAchievement) error {
	if len(records) == 0 {
		return nil
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	existing, err := r.list(ctx)
	if err != nil {
		return err
	}
	have := make(map[string]struct{}, len(existing))
	for _, rec := range existing {
		have[rec.ID] = struct{}{}
	}
	for _, rec := range records {
		if _, ok := have[rec.ID]; ok {
			continue
		}
		have[rec.ID] = struct{}{}
		existing = append(existing, rec)
	}
	return r.docs.save(ctx, repository.KeySessionAchievements, existing)
}

func (r *achievementRepository) Reset(ctx context.Context) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.docs.remove(ctx, repository.KeySessionAchievements)
}
