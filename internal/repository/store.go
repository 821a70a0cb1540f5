package repository

import "context"

// Persisted document keys.
const (
	KeySlangProgress        = "aussie-slang-progress"
	KeyWorkplaceProgress    = "aussie_workplace_progress"
	KeyGamification         = "aussie_slang_gamification"
	KeySessionHistory       = "aussie-english-progress"
	KeyActiveSessions       = "aussie-english-active-sessions"
	KeyPronunciation        = "aussie-english-pronunciation"
	KeyPronunciationCurrent = "aussie-english-pronunciation-current"
	KeySessionAchievements  = "aussie-english-achievements"
)

// ProgressKeys lists every key the application owns, in reset order.
func ProgressKeys() []string {
	return []string{
		KeySlangProgress,
		KeyWorkplaceProgress,
		KeyGamification,
		KeySessionHistory,
		KeyActiveSessions,
		KeyPronunciation,
		KeyPronunciationCurrent,
		KeySessionAchievements,
	}
}

// DocumentStore is a string-keyed store of JSON documents. Implementations
// must serialise concurrent writers to the same key.
type DocumentStore interface {
	Get(ctx context.Context, key string) ([]byte, bool, error)
	Set(ctx context.Context, key string, value []byte) error
	Remove(ctx context.Context, key string) error
	Keys(ctx context.Context) ([]string, error)
}
