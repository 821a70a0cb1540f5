package entity

import "time"

// PronunciationScores holds the derived 0..100 scores of one attempt.
type PronunciationScores struct {
	Overall      int `json:"overall"`
	Clarity      int `json:"clarity"`
	Fluency      int `json:"fluency"`
	AussieAccent int `json:"aussieAccent"`
	Accuracy     int `json:"accuracy"`
}

// PronunciationAttempt is one scored spoken attempt. Attempts are never
// modified after scoring.
type PronunciationAttempt struct {
	PronunciationScores
	KeywordMatch     int       `json:"keywordMatch"`
	Phrase           string    `json:"phrase"`
	SpokenText       string    `json:"spokenText"`
	Confidence       float64   `json:"confidence"`
	Feedback         string    `json:"feedback"`
	DetailedFeedback []string  `json:"detailedFeedback"`
	Timestamp        time.Time `json:"timestamp"`
}

// PronunciationSession is a finalized group of attempts.
type PronunciationSession struct {
	SessionID      string                 `json:"sessionId"`
	Mode           PracticeMode           `json:"mode"`
	Scores         []PronunciationAttempt `json:"scores"`
	AverageOverall int                    `json:"averageOverall"`
	Improvement    int                    `json:"improvement"`
}

// PracticeBuffer holds the phrase being practised and the attempts scored
// since the last finalized session.
type PracticeBuffer struct {
	Mode     PracticeMode           `json:"mode,omitempty"`
	Phrase   *Phrase                `json:"phrase,omitempty"`
	Attempts []PronunciationAttempt `json:"attempts"`
}

// PronunciationStats aggregates the pronunciation history.
type PronunciationStats struct {
	AverageScore          int                  `json:"averageScore"`
	TotalPhrasesPracticed int                  `json:"totalPhrasesPracticed"`
	BestScore             int                  `json:"bestScore"`
	RecentTrend           int                  `json:"recentTrend"`
	ModeAverages          map[PracticeMode]int `json:"modeAverages"`
}

// RecognitionResult is one event reported by a speech recognizer.
type RecognitionResult struct {
	Transcript string  `json:"transcript"`
	Confidence float64 `json:"confidence"`
	IsFinal    bool    `json:"isFinal"`
}
