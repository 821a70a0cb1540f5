package scoring

import (
	"errors"
	"math"
	"reflect"
	"slices"
	"testing"
	"time"

	"github.com/eslsoft/aussieprogress/internal/entity"
	"github.com/eslsoft/aussieprogress/pkg/selector"
)

var scoredAt = time.Date(2025, 6, 1, 9, 0, 0, 0, time.UTC)

func TestScoreCloseMatch(t *testing.T) {
	scorer := NewScorer(selector.First())
	phrase := entity.Phrase{Text: "G'day, how ya going?", Keywords: []string{"gday", "going"}}

	got := scorer.Score(phrase, "gday how ya going", 0.9, scoredAt)

	if got.Accuracy < 90 {
		t.Fatalf("expected accuracy >= 90, got %d", got.Accuracy)
	}
	want := entity.PronunciationScores{Overall: 96, Clarity: 90, Fluency: 100, AussieAccent: 90, Accuracy: 100}
	if got.PronunciationScores != want {
		t.Fatalf("scores = %+v want %+v", got.PronunciationScores, want)
	}
	if got.Feedback != "Excellent pronunciation! You sound like a true Aussie!" {
		t.Fatalf("unexpected feedback %q", got.Feedback)
	}
	if !reflect.DeepEqual(got.DetailedFeedback, []string{"Great accuracy! Your pronunciation is clear."}) {
		t.Fatalf("unexpected notes %v", got.DetailedFeedback)
	}
	if !got.Timestamp.Equal(scoredAt) || got.Phrase != phrase.Text || got.SpokenText != "gday how ya going" {
		t.Fatalf("attempt metadata not carried: %+v", got)
	}
}

func TestScoreEmptyTranscript(t *testing.T) {
	scorer := NewScorer(selector.Fixed(2))
	phrase := entity.Phrase{Text: "No worries, mate!", Keywords: []string{"worries", "mate"}}

	got := scorer.Score(phrase, "", 0, scoredAt)

	want := entity.PronunciationScores{Overall: 18, Clarity: DefaultClarity, Fluency: 0, AussieAccent: 0, Accuracy: 0}
	if got.PronunciationScores != want {
		t.Fatalf("scores = %+v want %+v", got.PronunciationScores, want)
	}
	if BucketFor(got.Overall) != BucketNeedsWork {
		t.Fatalf("expected needs-work bucket for %d", got.Overall)
	}
	if got.Feedback != "Practice makes perfect! Focus on one phrase at a time." {
		t.Fatalf("unexpected feedback %q", got.Feedback)
	}
	wantNotes := []string{
		"Try to say the complete phrase - some words were missed.",
		"Focus on the key words in the phrase.",
	}
	if !reflect.DeepEqual(got.DetailedFeedback, wantNotes) {
		t.Fatalf("notes = %v want %v", got.DetailedFeedback, wantNotes)
	}
}

func TestScoresClampConfidence(t *testing.T) {
	phrase := entity.Phrase{Text: "Sounds good, cheers", Keywords: []string{"sounds", "good", "cheers"}}
	cases := []struct {
		confidence float64
		clarity    int
	}{
		{1.7, 100},
		{-0.3, DefaultClarity},
		{math.NaN(), DefaultClarity},
		{0.004, DefaultClarity},
		{0.555, 56},
	}
	for _, c := range cases {
		scores, _ := Scores(phrase, "sounds good cheers", c.confidence)
		if scores.Clarity != c.clarity {
			t.Errorf("confidence %v: clarity %d want %d", c.confidence, scores.Clarity, c.clarity)
		}
		if scores.Overall < 0 || scores.Overall > 100 {
			t.Errorf("overall out of range: %d", scores.Overall)
		}
	}
}

func TestBucketFor(t *testing.T) {
	cases := map[int]Bucket{100: BucketExcellent, 85: BucketExcellent, 84: BucketGood, 70: BucketGood, 69: BucketAverage, 50: BucketAverage, 49: BucketNeedsWork, 0: BucketNeedsWork}
	for score, want := range cases {
		if got := BucketFor(score); got != want {
			t.Errorf("BucketFor(%d) = %s want %s", score, got, want)
		}
	}
}

func TestDetailedFeedbackCues(t *testing.T) {
	notes := DetailedFeedback("See you this arvo", "see you this afternoon", 60, 0)
	if !slices.Contains(notes, `"Arvo" means afternoon - try to include it!`) {
		t.Fatalf("expected arvo cue in %v", notes)
	}
	if !slices.Contains(notes, "Focus on the key words in the phrase.") {
		t.Fatalf("expected keyword note in %v", notes)
	}
	if !slices.Contains(notes, "Getting there! Listen to the phrase again before trying.") {
		t.Fatalf("expected accuracy note in %v", notes)
	}

	notes = DetailedFeedback("G'day, how ya going?", "good eh how ya going", 75, 50)
	if !slices.Contains(notes, `Remember to pronounce "G'day" as "guh-day".`) {
		t.Fatalf("expected g'day cue in %v", notes)
	}

	notes = DetailedFeedback("Don't be a sook", "don't be such a sook mate ok", 80, 100)
	if notes[0] != "You added extra words - try to match the phrase exactly." {
		t.Fatalf("expected extra words note first, got %v", notes)
	}
}

func TestPhrases(t *testing.T) {
	for _, mode := range entity.PracticeModes() {
		list, err := Phrases(mode)
		if err != nil {
			t.Fatalf("Phrases(%s): %v", mode, err)
		}
		if len(list) != 8 {
			t.Fatalf("Phrases(%s) returned %d phrases", mode, len(list))
		}
	}

	list, _ := Phrases(entity.PracticeModeEveryday)
	list[0].Keywords[0] = "mutated"
	again, _ := Phrases(entity.PracticeModeEveryday)
	if again[0].Keywords[0] != "gday" {
		t.Fatal("Phrases must return copies")
	}

	if _, err := Phrases("opera"); !errors.Is(err, entity.ErrInvalidPracticeMode) {
		t.Fatalf("expected ErrInvalidPracticeMode, got %v", err)
	}

	next, err := NextPhrase(entity.PracticeModeSlang, selector.Fixed(5))
	if err != nil || next.Text != "Don't be a sook" {
		t.Fatalf("unexpected phrase %+v err=%v", next, err)
	}

	if p, ok := FindPhrase("See you this arvo"); !ok || p.Keywords[0] != "arvo" {
		t.Fatalf("FindPhrase failed: %+v %v", p, ok)
	}
}

func TestCollector(t *testing.T) {
	var c Collector
	c.Add(entity.RecognitionResult{Transcript: "no wor", Confidence: 0.3})
	if c.Final() || c.Transcript() != "no wor" {
		t.Fatalf("interim transcript not exposed: %q", c.Transcript())
	}
	c.Add(entity.RecognitionResult{Transcript: "ries", Confidence: 0.4})
	if c.Final() || c.Transcript() != "no worries" {
		t.Fatalf("interim segments not joined: %q", c.Transcript())
	}

	c.Add(entity.RecognitionResult{Transcript: "no worries", Confidence: 0.82, IsFinal: true})
	c.Add(entity.RecognitionResult{Transcript: " ma", Confidence: 0.99})
	c.Add(entity.RecognitionResult{Transcript: " mate", Confidence: 0.64, IsFinal: true})

	if got := c.Transcript(); got != "no worries mate" {
		t.Fatalf("transcript = %q", got)
	}
	if got := c.Confidence(); got != 0.82 {
		t.Fatalf("confidence = %v want 0.82", got)
	}

	c.Reset()
	if c.Final() || c.Transcript() != "" || c.Confidence() != 0 {
		t.Fatal("reset did not clear collector")
	}
}
