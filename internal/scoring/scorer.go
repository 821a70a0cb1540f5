// Package scoring turns a recognized transcript into pronunciation scores
// and feedback.
package scoring

import (
	"math"
	"time"

	"github.com/eslsoft/aussieprogress/internal/entity"
	"github.com/eslsoft/aussieprogress/pkg/selector"
	"github.com/eslsoft/aussieprogress/pkg/textmatch"
)

// DefaultClarity is used when the recognizer reports no confidence.
const DefaultClarity = 70

// Scorer scores spoken attempts. It is safe for concurrent use when its
// selector is.
type Scorer struct {
	pick selector.Func
}

// NewScorer builds a scorer that draws feedback lines through pick.
func NewScorer(pick selector.Func) *Scorer {
	if pick == nil {
		pick = selector.Random(0)
	}
	return &Scorer{pick: pick}
}

// Selector returns the selector used for feedback lines.
func (s *Scorer) Selector() selector.Func { return s.pick }

// Scores computes the composite scores and the keyword match percentage.
func Scores(phrase entity.Phrase, spoken string, confidence float64) (entity.PronunciationScores, int) {
	accuracy := textmatch.Similarity(phrase.Text, spoken)
	keywordMatch := textmatch.KeywordCoverage(phrase.Keywords, spoken)

	clarity := textmatch.Clamp(textmatch.Round(clampConfidence(confidence)*100), 0, 100)
	if clarity == 0 {
		clarity = DefaultClarity
	}

	fluency := textmatch.Round(float64(accuracy)*0.6 + float64(keywordMatch)*0.4)

	bonus := 0
	switch {
	case keywordMatch >= 80:
		bonus = 10
	case keywordMatch >= 60:
		bonus = 5
	}
	aussie := min(100, textmatch.Round(float64(fluency)*0.8+float64(bonus)))

	overall := textmatch.Round(float64(clarity)*0.25 + float64(fluency)*0.35 + float64(accuracy)*0.25 + float64(aussie)*0.15)

	return entity.PronunciationScores{
		Overall:      overall,
		Clarity:      clarity,
		Fluency:      fluency,
		AussieAccent: aussie,
		Accuracy:     accuracy,
	}, keywordMatch
}

// Score scores spoken against phrase and attaches feedback.
func (s *Scorer) Score(phrase entity.Phrase, spoken string, confidence float64, at time.Time) entity.PronunciationAttempt {
	scores, keywordMatch := Scores(phrase, spoken, confidence)
	return entity.PronunciationAttempt{
		PronunciationScores: scores,
		KeywordMatch:        keywordMatch,
		Phrase:              phrase.Text,
		SpokenText:          spoken,
		Confidence:          clampConfidence(confidence),
		Feedback:            Feedback(scores.Overall, s.pick),
		DetailedFeedback:    DetailedFeedback(phrase.Text, spoken, scores.Accuracy, keywordMatch),
		Timestamp:           at,
	}
}

func clampConfidence(c float64) float64 {
	if math.IsNaN(c) || c < 0 {
		return 0
	}
	if c > 1 {
		return 1
	}
	return c
}
