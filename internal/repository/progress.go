package repository

import (
	"context"

	"github.com/eslsoft/aussieprogress/internal/entity"
)

// DeckRepository persists review decks.
type DeckRepository interface {
	Load(ctx context.Context, deck entity.Deck) (*entity.DeckProgress, error)
	Save(ctx context.Context, deck entity.Deck, progress *entity.DeckProgress) error
	Reset(ctx context.Context, deck entity.Deck) error
}

// GamificationRepository persists the gamification state.
type GamificationRepository interface {
	Load(ctx context.Context) (*entity.GamificationState, error)
	Save(ctx context.Context, state *entity.GamificationState) error
	Reset(ctx context.Context) error
}

// SessionRepository persists the history of finalized sessions.
type SessionRepository interface {
	Load(ctx context.Context) (*entity.SessionHistory, error)
	Append(ctx context.Context, record entity.SessionRecord) error
	Reset(ctx context.Context) error
}

// ActiveSessionRepository keeps sessions that have started but not ended,
// keyed by session id.
type ActiveSessionRepository interface {
	Get(ctx context.Context, id string) (*entity.SessionRecord, error)
	Put(ctx context.Context, record entity.SessionRecord) error
	Delete(ctx context.Context, id string) error
	List(ctx context.Context) ([]entity.SessionRecord, error)
	Reset(ctx context.Context) error
}

// PronunciationRepository persists finalized pronunciation sessions and the
// in-progress attempt buffer.
type PronunciationRepository interface {
	History(ctx context.Context) ([]entity.PronunciationSession, error)
	AppendSession(ctx context.Context, session entity.PronunciationSession) error
	Buffer(ctx context.Context) (*entity.PracticeBuffer, error)
	SaveBuffer(ctx context.Context, buffer *entity.PracticeBuffer) error
	ClearBuffer(ctx context.Context) error
	Reset(ctx context.Context) error
}

// AchievementRepository persists session achievement unlocks. Records are
// only ever added.
type AchievementRepository interface {
	List(ctx context.Context) ([]entity.UnlockedAchievement, error)
	Add(ctx context.Context, records []entity.UnlockedAchievement) error
	Reset(ctx context.Context) error
}

// ListSessionsQuery filters and orders the session history.
type ListSessionsQuery struct {
	Pagination
	FilterOrder
}
