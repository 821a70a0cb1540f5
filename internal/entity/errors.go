package entity

import "errors"

// Domain errors for practice progress aggregates.
var (
	ErrInvalidRating            = errors.New("invalid rating")
	ErrInvalidGrade             = errors.New("invalid review grade")
	ErrInvalidCardID            = errors.New("invalid card ID")
	ErrUnknownDeck              = errors.New("unknown review deck")
	ErrInvalidPracticeMode      = errors.New("invalid practice mode")
	ErrSessionNotFound          = errors.New("session not found")
	ErrSessionAlreadyEnded      = errors.New("session already ended")
	ErrNoActivePhrase           = errors.New("no active practice phrase")
	ErrEmptySession             = errors.New("session has no scored attempts")
	ErrInvalidQuizScore         = errors.New("invalid quiz score")
	ErrInvalidXPAmount          = errors.New("invalid XP amount")
	ErrInvalidFavoriteID        = errors.New("invalid favorite ID")
	ErrUnknownAchievementRule   = errors.New("unknown achievement rule kind")
	ErrDuplicateAchievementRule = errors.New("duplicate achievement rule")
)
