package repository

import (
	"context"
	"sort"
	"sync"

	"github.com/eslsoft/aussieprogress/internal/entity"
	"github.com/eslsoft/aussieprogress/internal/repository"
	"github.com/sirupsen/logrus"
)

type activeSessionsDoc struct {
	Sessions map[string]entity.SessionRecord `json:"sessions"`
}

type activeSessionRepository struct {
	mu   sync.Mutex
	docs documents
}

func NewActiveSessionRepository(store repository.DocumentStore, logger logrus.FieldLogger) repository.ActiveSessionRepository {
	return &activeSessionRepository{docs: newDocuments(store, logger)}
}

func (r *activeSessionRepository) load(ctx context.Context) (*activeSessionsDoc, error) {
	var doc activeSessionsDoc
	ok, err := r.docs.load(ctx, repository.KeyActiveSessions, &doc)
	if err != nil {
		return nil, err
	}
	if !ok || doc.Sessions == nil {
		doc.Sessions = make(map[string]entity.SessionRecord)
	}
	return &doc, nil
}

func (r *activeSessionRepository) Get(ctx context.Context, id string) (*entity.SessionRecord, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	doc, err := r.load(ctx)
	if err != nil {
		return nil, err
	}
	record, ok := doc.Sessions[id]
	if !ok {
		return nil, entity.ErrSessionNotFound
	}
	return &record, nil
}

func (r *activeSessionRepository) Put(ctx context.Context, record entity.SessionRecord) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	doc, err := r.load(ctx)
	if err != nil {
		return err
	}
	doc.Sessions[record.ID] = record
	return r.docs.save(ctx, repository.KeyActiveSessions, doc)
}

func (r *activeSessionRepository) Delete(ctx context.Context, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	doc, err := r.load(ctx)
	if err != nil {
		return err
	}
	if _, ok := doc.Sessions[id]; !ok {
		return entity.ErrSessionNotFound
	}
	delete(doc.Sessions, id)
	return r.docs.save(ctx, repository.KeyActiveSessions, doc)
}

// List returns active sessions ordered by start time.
func (r *activeSessionRepository) List(ctx context.Context) ([]entity.SessionRecord, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	doc, err := r.load(ctx)
	if err != nil {
		return nil, err
	}
	out := make([]entity.SessionRecord, 0, len(doc.Sessions))
	for _, s := range doc.Sessions {
		out = append(out, s)
	}
	sort.Slice(out, func(i, j int) bool {
		if !out[i].StartTime.Equal(out[j].StartTime) {
			return out[i].StartTime.Before(out[j].StartTime)
		}
		return out[i].ID < out[j].ID
	})
	return out, nil
}

func (r *activeSessionRepository) Reset(ctx context.Context) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.docs.remove(ctx, repository.KeyActiveSessions)
}
