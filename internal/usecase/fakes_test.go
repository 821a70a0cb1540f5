package usecase

import (
	"context"
	"sort"
	"sync"
	"testing"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/sirupsen/logrus/hooks/test"

	"github.com/eslsoft/aussieprogress/internal/entity"
)

func nullLogger() logrus.FieldLogger {
	l, _ := test.NewNullLogger()
	return l
}

// fixedClock returns a clock whose time the test can move.
type fixedClock struct {
	mu  sync.RWMutex
	now time.Time
}

func newFixedClock(now time.Time) *fixedClock { return &fixedClock{now: now} }

func (c *fixedClock) Now() time.Time {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.now
}

func (c *fixedClock) Advance(d time.Duration) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.now = c.now.Add(d)
}

type fakeDeckRepo struct {
	mu    sync.RWMutex
	decks map[entity.Deck]*entity.DeckProgress
}

func newFakeDeckRepo() *fakeDeckRepo {
	return &fakeDeckRepo{decks: make(map[entity.Deck]*entity.DeckProgress)}
}

func cloneDeck(p *entity.DeckProgress) *entity.DeckProgress {
	out := entity.NewDeckProgress()
	out.QuizHighScore = p.QuizHighScore
	out.TotalQuizzesTaken = p.TotalQuizzesTaken
	for k, v := range p.Cards {
		out.Cards[k] = v
	}
	return out
}

func (r *fakeDeckRepo) Load(ctx context.Context, deck entity.Deck) (*entity.DeckProgress, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	r.mu.RLock()
	defer r.mu.RUnlock()
	if p, ok := r.decks[deck]; ok {
		return cloneDeck(p), nil
	}
	return entity.NewDeckProgress(), nil
}

func (r *fakeDeckRepo) Save(ctx context.Context, deck entity.Deck, progress *entity.DeckProgress) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	r.decks[deck] = cloneDeck(progress)
	return nil
}

func (r *fakeDeckRepo) Reset(_ context.Context, deck entity.Deck) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	delete(r.decks, deck)
	return nil
}

type fakeGamificationRepo struct {
	mu    sync.RWMutex
	state *entity.GamificationState
	saves int
}

func (r *fakeGamificationRepo) Load(ctx context.Context) (*entity.GamificationState, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	r.mu.RLock()
	defer r.mu.RUnlock()
	if r.state == nil {
		return entity.DefaultGamificationState(), nil
	}
	return r.state.Clone(), nil
}

func (r *fakeGamificationRepo) Save(ctx context.Context, state *entity.GamificationState) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	r.state = state.Clone()
	r.saves++
	return nil
}

func (r *fakeGamificationRepo) Reset(context.Context) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.state = nil
	return nil
}

type fakeSessionRepo struct {
	mu       sync.RWMutex
	sessions []entity.SessionRecord
}

func (r *fakeSessionRepo) Load(ctx context.Context) (*entity.SessionHistory, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	r.mu.RLock()
	defer r.mu.RUnlock()
	return &entity.SessionHistory{Sessions: append([]entity.SessionRecord{}, r.sessions...)}, nil
}

func (r *fakeSessionRepo) Append(_ context.Context, record entity.SessionRecord) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.sessions = append(r.sessions, record)
	return nil
}

func (r *fakeSessionRepo) Reset(context.Context) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.sessions = nil
	return nil
}

type fakeActiveRepo struct {
	mu    sync.RWMutex
	items map[string]entity.SessionRecord
}

func newFakeActiveRepo() *fakeActiveRepo {
	return &fakeActiveRepo{items: make(map[string]entity.SessionRecord)}
}

func (r *fakeActiveRepo) Get(_ context.Context, id string) (*entity.SessionRecord, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	rec, ok := r.items[id]
	if !ok {
		return nil, entity.ErrSessionNotFound
	}
	return &rec, nil
}

func (r *fakeActiveRepo) Put(_ context.Context, record entity.SessionRecord) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.items[record.ID] = record
	return nil
}

func (r *fakeActiveRepo) Delete(_ context.Context, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.items[id]; !ok {
		return entity.ErrSessionNotFound
	}
	delete(r.items, id)
	return nil
}

func (r *fakeActiveRepo) List(context.Context) ([]entity.SessionRecord, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	out := make([]entity.SessionRecord, 0, len(r.items))
	for _, rec := range r.items {
		out = append(out, rec)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

func (r *fakeActiveRepo) Reset(context.Context) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.items = make(map[string]entity.SessionRecord)
	return nil
}

type fakeAchievementRepo struct {
	mu      sync.RWMutex
	records []entity.UnlockedAchievement
	listErr error
}

func (r *fakeAchievementRepo) List(context.Context) ([]entity.UnlockedAchievement, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	if r.listErr != nil {
		return nil, r.listErr
	}
	return append([]entity.UnlockedAchievement{}, r.records...), nil
}

func (r *fakeAchievementRepo) Add(_ context.Context, records []entity.UnlockedAchievement) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, rec := range records {
		dup := false
		for _, have := range r.records {
			if have.ID == rec.ID {
				dup = true
				break
			}
		}
		if !dup {
			r.records = append(r.records, rec)
		}
	}
	return nil
}

func (r *fakeAchievementRepo) Reset(context.Context) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.records = nil
	return nil
}

type fakePronunciationRepo struct {
	mu      sync.RWMutex
	history []entity.PronunciationSession
	buffer  *entity.PracticeBuffer
}

func (r *fakePronunciationRepo) History(context.Context) ([]entity.PronunciationSession, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return append([]entity.PronunciationSession{}, r.history...), nil
}

func (r *fakePronunciationRepo) AppendSession(_ context.Context, session entity.PronunciationSession) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.history = append(r.history, session)
	return nil
}

func (r *fakePronunciationRepo) Buffer(context.Context) (*entity.PracticeBuffer, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	if r.buffer == nil {
		return &entity.PracticeBuffer{Attempts: []entity.PronunciationAttempt{}}, nil
	}
	cp := *r.buffer
	cp.Attempts = append([]entity.PronunciationAttempt{}, r.buffer.Attempts...)
	if r.buffer.Phrase != nil {
		p := r.buffer.Phrase.Clone()
		cp.Phrase = &p
	}
	return &cp, nil
}

func (r *fakePronunciationRepo) SaveBuffer(_ context.Context, buffer *entity.PracticeBuffer) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	cp := *buffer
	cp.Attempts = append([]entity.PronunciationAttempt{}, buffer.Attempts...)
	r.buffer = &cp
	return nil
}

func (r *fakePronunciationRepo) ClearBuffer(context.Context) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.buffer = nil
	return nil
}

func (r *fakePronunciationRepo) Reset(context.Context) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.history = nil
	r.buffer = nil
	return nil
}

func mustNoErr(t *testing.T, err error) {
	t.Helper()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
}
