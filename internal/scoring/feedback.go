package scoring

import (
	"strings"

	"github.com/eslsoft/aussieprogress/pkg/selector"
	"github.com/eslsoft/aussieprogress/pkg/textmatch"
)

// Bucket is the score band a feedback line is drawn from.
type Bucket string

const (
	BucketExcellent Bucket = "excellent"
	BucketGood      Bucket = "good"
	BucketAverage   Bucket = "average"
	BucketNeedsWork Bucket = "needsWork"
)

var feedbackTemplates = map[Bucket][]string{
	BucketExcellent: {
		"Excellent pronunciation! You sound like a true Aussie!",
		"Spot on! Your accent is coming along beautifully.",
		"Ripper job! Keep up the great work.",
		"Fair dinkum, that was perfect!",
	},
	BucketGood: {
		"Good effort! Your pronunciation is improving.",
		"Nice work! A few more practice sessions and you'll nail it.",
		"Well done! Focus on the vowel sounds for even better results.",
		"Getting there! Your Aussie accent is developing nicely.",
	},
	BucketAverage: {
		"Getting there! Try to relax and let the words flow naturally.",
		"Not bad! Practice the rhythm of Australian English.",
		"Keep practicing! Focus on the rising intonation at the end of sentences.",
		"Good attempt! Try listening to the phrase again before repeating.",
	},
	BucketNeedsWork: {
		"Keep at it! Australian pronunciation takes time to master.",
		"Don't give up! Try listening more to native speakers.",
		"Practice makes perfect! Focus on one phrase at a time.",
		"Take your time with each word. You're making progress!",
	},
}

// BucketFor maps an overall score to its feedback band.
func BucketFor(overall int) Bucket {
	switch {
	case overall >= 85:
		return BucketExcellent
	case overall >= 70:
		return BucketGood
	case overall >= 50:
		return BucketAverage
	default:
		return BucketNeedsWork
	}
}

// Templates returns the feedback lines of a band.
func Templates(b Bucket) []string {
	return append([]string{}, feedbackTemplates[b]...)
}

// Feedback picks one line from the band of overall.
func Feedback(overall int, pick selector.Func) string {
	return selector.Pick(pick, feedbackTemplates[BucketFor(overall)])
}

// DetailedFeedback lists qualitative notes about an attempt, in display order.
func DetailedFeedback(target, spoken string, accuracy, keywordMatch int) []string {
	notes := make([]string, 0, 4)
	nt := textmatch.Normalize(target)
	ns := textmatch.Normalize(spoken)

	targetWords := float64(len(textmatch.Words(nt)))
	spokenWords := float64(len(textmatch.Words(ns)))
	if spokenWords < targetWords*0.7 {
		notes = append(notes, "Try to say the complete phrase - some words were missed.")
	} else if spokenWords > targetWords*1.3 {
		notes = append(notes, "You added extra words - try to match the phrase exactly.")
	}

	if strings.Contains(target, "'day") && !strings.Contains(ns, "day") {
		notes = append(notes, `Remember to pronounce "G'day" as "guh-day".`)
	}
	if strings.Contains(target, "arvo") && !strings.Contains(ns, "arvo") {
		notes = append(notes, `"Arvo" means afternoon - try to include it!`)
	}

	if keywordMatch < 70 {
		notes = append(notes, "Focus on the key words in the phrase.")
	}

	switch {
	case accuracy >= 90:
		notes = append(notes, "Great accuracy! Your pronunciation is clear.")
	case accuracy >= 70:
		notes = append(notes, "Good attempt! Try speaking a bit more clearly.")
	case accuracy >= 50:
		notes = append(notes, "Getting there! Listen to the phrase again before trying.")
	}
	return notes
}
