package repository

import (
	"context"

	"github.com/eslsoft/aussieprogress/internal/entity"
	"github.com/eslsoft/aussieprogress/internal/repository"
	"github.com/eslsoft/aussieprogress/internal/srs"
	"github.com/sirupsen/logrus"
)

type deckRepository struct {
	docs documents
}

// NewDeckRepository stores each deck under its own key.
func NewDeckRepository(store repository.DocumentStore, logger logrus.FieldLogger) repository.DeckRepository {
	return &deckRepository{docs: newDocuments(store, logger)}
}

func deckKey(deck entity.Deck) (string, error) {
	switch deck {
	case entity.DeckSlang:
		return repository.KeySlangProgress, nil
	case entity.DeckWorkplace:
		return repository.KeyWorkplaceProgress, nil
	default:
		return "", entity.ErrUnknownDeck
	}
}

func (r *deckRepository) Load(ctx context.Context, deck entity.Deck) (*entity.DeckProgress, error) {
	key, err := deckKey(deck)
	if err != nil {
		return nil, err
	}
	progress := entity.NewDeckProgress()
	ok, err := r.docs.load(ctx, key, progress)
	if err != nil {
		return nil, err
	}
	if !ok {
		return entity.NewDeckProgress(), nil
	}
	if progress.Cards == nil {
		progress.Cards = make(map[string]entity.PracticeCard)
	}
	policy, err := srs.PolicyFor(deck)
	if err != nil {
		return nil, err
	}
	for id, card := range progress.Cards {
		if level := policy.ClampLevel(card.Level); card.ID == "" || level != card.Level {
			card.ID = id
			card.Level = level
			progress.Cards[id] = card
		}
	}
	return progress, nil
}

func (r *deckRepository) Save(ctx context.Context, deck entity.Deck, progress *entity.DeckProgress) error {
	key, err := deckKey(deck)
	if err != nil {
		return err
	}
	return r.docs.save(ctx, key, progress)
}

func (r *deckRepository) Reset(ctx context.Context, deck entity.Deck) error {
	key, err := deckKey(deck)
	if err != nil {
		return err
	}
	return r.docs.remove(ctx, key)
}
