package repository

import (
	"context"
	"sync"

	"github.com/eslsoft/aussieprogress/internal/entity"
	"github.com/eslsoft/aussieprogress/internal/repository"
	"github.com/sirupsen/logrus"
)

type sessionRepository struct {
	mu   sync.Mutex
	docs documents
}

func NewSessionRepository(store repository.DocumentStore, logger logrus.FieldLogger) repository.SessionRepository {
	return &sessionRepository{docs: newDocuments(store, logger)}
}

func (r *sessionRepository) Load(ctx context.Context) (*entity.SessionHistory, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.load(ctx)
}

func (r *sessionRepository) load(ctx context.Context) (*entity.SessionHistory, error) {
	var history entity.SessionHistory
	ok, err := r.docs.load(ctx, repository.KeySessionHistory, &history)
	if err != nil {
		return nil, err
	}
	if !ok {
		history = entity.SessionHistory{}
	}
	if history.Sessions == nil {
		history.Sessions = []entity.SessionRecord{}
	}
	return &history, nil
}

// Append adds a finalized record. Existing records are left untouched.
func (r *sessionRepository) Append(ctx context.Context, record entity.SessionRecord) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	history, err := r.load(ctx)
	if err != nil {
		return err
	}
	history.Sessions = append(history.Sessions, record)
	return r.docs.save(ctx, repository.KeySessionHistory, history)
}

func (r *sessionRepository) Reset(ctx context.Context) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.docs.remove(ctx, repository.KeySessionHistory)
}
