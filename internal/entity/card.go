package entity

import (
	"encoding/json"
	"strings"
	"time"
)

// Deck identifies an independent set of review cards with its own schedule policy.
type Deck string

const (
	DeckSlang     Deck = "slang"
	DeckWorkplace Deck = "workplace"
)

// Decks lists the supported decks.
func Decks() []Deck { return []Deck{DeckSlang, DeckWorkplace} }

// ParseDeck converts an arbitrary string into a supported Deck.
func ParseDeck(value string) (Deck, error) {
	switch Deck(strings.ToLower(strings.TrimSpace(value))) {
	case DeckSlang:
		return DeckSlang, nil
	case DeckWorkplace:
		return DeckWorkplace, nil
	default:
		return "", ErrUnknownDeck
	}
}

// PracticeCard is the review schedule of one learned item.
type PracticeCard struct {
	ID         string
	Level      int
	NextReview time.Time
	LastReview time.Time
}

// Reviewed reports whether the card has ever been rated.
func (c PracticeCard) Reviewed() bool { return !c.LastReview.IsZero() }

type practiceCardJSON struct {
	ID         string `json:"id"`
	Level      int    `json:"level"`
	NextReview int64  `json:"nextReview"`
	LastReview int64  `json:"lastReview"`
}

// MarshalJSON stores timestamps as epoch milliseconds.
func (c PracticeCard) MarshalJSON() ([]byte, error) {
	return json.Marshal(practiceCardJSON{
		ID:         c.ID,
		Level:      c.Level,
		NextReview: toEpochMillis(c.NextReview),
		LastReview: toEpochMillis(c.LastReview),
	})
}

// UnmarshalJSON reads timestamps stored as epoch milliseconds.
func (c *PracticeCard) UnmarshalJSON(data []byte) error {
	var raw practiceCardJSON
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	c.ID = raw.ID
	c.Level = raw.Level
	c.NextReview = fromEpochMillis(raw.NextReview)
	c.LastReview = fromEpochMillis(raw.LastReview)
	return nil
}

func toEpochMillis(t time.Time) int64 {
	if t.IsZero() {
		return 0
	}
	return t.UnixMilli()
}

func fromEpochMillis(ms int64) time.Time {
	if ms == 0 {
		return time.Time{}
	}
	return time.UnixMilli(ms)
}

// DeckProgress is the persisted state of a deck.
type DeckProgress struct {
	Cards             map[string]PracticeCard `json:"cards"`
	QuizHighScore     int                     `json:"quizHighScore"`
	TotalQuizzesTaken int                     `json:"totalQuizzesTaken"`
}

// NewDeckProgress returns an empty deck.
func NewDeckProgress() *DeckProgress {
	return &DeckProgress{Cards: make(map[string]PracticeCard)}
}

// Card returns the stored card and whether it exists.
func (p *DeckProgress) Card(id string) (PracticeCard, bool) {
	card, ok := p.Cards[id]
	return card, ok
}

// DeckStats summarises a deck.
type DeckStats struct {
	Deck              Deck `json:"deck"`
	Tracked           int  `json:"tracked"`
	Learned           int  `json:"learned"`
	Mastered          int  `json:"mastered"`
	Due               int  `json:"due"`
	QuizHighScore     int  `json:"quizHighScore"`
	TotalQuizzesTaken int  `json:"totalQuizzesTaken"`
}
