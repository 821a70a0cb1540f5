package repository

import (
	"context"
	"sync"

	"github.com/eslsoft/aussieprogress/internal/entity"
	"github.com/eslsoft/aussieprogress/internal/repository"
	"github.com/sirupsen/logrus"
)

type pronunciationHistoryDoc struct {
	Sessions []entity.PronunciationSession `json:"sessions"`
}

type pronunciationRepository struct {
	mu   sync.Mutex
	docs documents
}

func NewPronunciationRepository(store repository.DocumentStore, logger logrus.FieldLogger) repository.PronunciationRepository {
	return &pronunciationRepository{docs: newDocuments(store, logger)}
}

func (r *pronunciationRepository) history(ctx context.Context) ([]entity.PronunciationSession, error) {
	var doc pronunciationHistoryDoc
	ok, err := r.docs.load(ctx, repository.KeyPronunciation, &doc)
	if err != nil {
		return nil, err
	}
	if !ok || doc.Sessions == nil {
		return []entity.PronunciationSession{}, nil
	}
	return doc.Sessions, nil
}

func (r *pronunciationRepository) History(ctx context.Context) ([]entity.PronunciationSession, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.history(ctx)
}

func (r *pronunciationRepository) AppendSession(ctx context.Context, session entity.PronunciationSession) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	sessions, err := r.history(ctx)
	if err != nil {
		return err
	}
	sessions = append(sessions, session)
	return r.docs.save(ctx, repository.KeyPronunciation, pronunciationHistoryDoc{Sessions: sessions})
}

func (r *pronunciationRepository) Buffer(ctx context.Context) (*entity.PracticeBuffer, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var buffer entity.PracticeBuffer
	ok, err := r.docs.load(ctx, repository.KeyPronunciationCurrent, &buffer)
	if err != nil {
		return nil, err
	}
	if !ok {
		buffer = entity.PracticeBuffer{}
	}
	if buffer.Attempts == nil {
		buffer.Attempts = []entity.PronunciationAttempt{}
	}
	return &buffer, nil
}

func (r *pronunciationRepository) SaveBuffer(ctx context.Context, buffer *entity.PracticeBuffer) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.docs.save(ctx, repository.KeyPronunciationCurrent, buffer)
}

func (r *pronunciationRepository) ClearBuffer(ctx context.Context) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.docs.remove(ctx, repository.KeyPronunciationCurrent)
}

func (r *pronunciationRepository) Reset(ctx context.Context) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if err := r.docs.remove(ctx, repository.KeyPronunciation); err != nil {
		return err
	}
	return r.docs.remove(ctx, repository.KeyPronunciationCurrent)
}
