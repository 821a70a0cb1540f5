package usecase

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/eslsoft/aussieprogress/internal/entity"
	"github.com/eslsoft/aussieprogress/internal/scoring"
	"github.com/eslsoft/aussieprogress/pkg/selector"
	"github.com/eslsoft/aussieprogress/pkg/textmatch"
)

func newTestPronunciation(t *testing.T) (PronunciationUsecase, *fakePronunciationRepo) {
	t.Helper()
	repo := &fakePronunciationRepo{}
	uc := NewPronunciationUsecase(repo, scoring.NewScorer(selector.First()), nullLogger())
	clock := newFixedClock(time.Date(2025, 6, 1, 9, 0, 0, 0, time.UTC))
	uc.(*pronunciationUsecase).clock = clock.Now
	return uc, repo
}

func TestSubmitRequiresPhrase(t *testing.T) {
	ctx := context.Background()
	uc, _ := newTestPronunciation(t)

	if _, err := uc.Submit(ctx, "g'day", 0.9); !errors.Is(err, entity.ErrNoActivePhrase) {
		t.Fatalf("expected ErrNoActivePhrase, got %v", err)
	}

	phrase, err := uc.StartPractice(ctx, entity.PracticeModeEveryday)
	mustNoErr(t, err)
	if phrase.Text != "G'day, how ya going?" {
		t.Fatalf("phrase = %q", phrase.Text)
	}
	attempt, err := uc.Submit(ctx, "gday how ya going", 0.9)
	mustNoErr(t, err)
	if attempt.Overall != 96 || attempt.Phrase != phrase.Text {
		t.Fatalf("attempt = %+v", attempt)
	}

	if _, err := uc.Submit(ctx, "gday how ya going", 0.9); !errors.Is(err, entity.ErrNoActivePhrase) {
		t.Fatalf("phrase should be consumed, got %v", err)
	}
	buffer, err := uc.Current(ctx)
	mustNoErr(t, err)
	if buffer.Phrase != nil || len(buffer.Attempts) != 1 || buffer.Mode != entity.PracticeModeEveryday {
		t.Fatalf("buffer = %+v", buffer)
	}
	if _, err := uc.StartPractice(ctx, entity.PracticeMode("klingon")); !errors.Is(err, entity.ErrInvalidPracticeMode) {
		t.Fatalf("expected ErrInvalidPracticeMode, got %v", err)
	}
}

func TestSubmitRecognition(t *testing.T) {
	ctx := context.Background()
	uc, _ := newTestPronunciation(t)
	_, err := uc.StartPractice(ctx, entity.PracticeModeEveryday)
	mustNoErr(t, err)

	attempt, err := uc.SubmitRecognition(ctx, []entity.RecognitionResult{
		{Transcript: "gday", Confidence: 0.4},
		{Transcript: "gday how ya ", Confidence: 0.8, IsFinal: true},
		{Transcript: "going", Confidence: 0.9, IsFinal: true},
	})
	mustNoErr(t, err)
	if attempt.Confidence != 0.9 || textmatch.Normalize(attempt.SpokenText) != "gday how ya going" {
		t.Fatalf("attempt = %+v", attempt)
	}
}

func TestFinalizeSession(t *testing.T) {
	ctx := context.Background()
	uc, repo := newTestPronunciation(t)

	if _, err := uc.FinalizeSession(ctx, "s1", entity.PracticeModeEveryday); !errors.Is(err, entity.ErrEmptySession) {
		t.Fatalf("expected ErrEmptySession, got %v", err)
	}

	for i := 0; i < 2; i++ {
		_, err := uc.StartPractice(ctx, entity.PracticeModeEveryday)
		mustNoErr(t, err)
		_, err = uc.Submit(ctx, "gday how ya going", 0.9)
		mustNoErr(t, err)
	}
	first, err := uc.FinalizeSession(ctx, "s1", entity.PracticeModeUnspecified)
	mustNoErr(t, err)
	if first.AverageOverall != 96 || first.Improvement != 0 || first.Mode != entity.PracticeModeEveryday || len(first.Scores) != 2 {
		t.Fatalf("first = %+v", first)
	}
	if repo.buffer != nil {
		t.Fatal("buffer not cleared after finalize")
	}

	_, err = uc.StartPractice(ctx, entity.PracticeModeEveryday)
	mustNoErr(t, err)
	weak, err := uc.Submit(ctx, "hello", 0.5)
	mustNoErr(t, err)
	second, err := uc.FinalizeSession(ctx, "s2", entity.PracticeModeEveryday)
	mustNoErr(t, err)
	if second.AverageOverall != weak.Overall || second.Improvement != weak.Overall-96 {
		t.Fatalf("second = %+v (attempt overall %d)", second, weak.Overall)
	}

	_, err = uc.StartPractice(ctx, entity.PracticeModeSlang)
	mustNoErr(t, err)
	_, err = uc.Submit(ctx, "shell be right mate", 0.9)
	mustNoErr(t, err)
	third, err := uc.FinalizeSession(ctx, "s3", entity.PracticeModeSlang)
	mustNoErr(t, err)
	if third.Improvement != 0 {
		t.Fatalf("improvement compares within a mode only: %+v", third)
	}
}

func TestPronunciationStats(t *testing.T) {
	empty := PronunciationStats(nil)
	if empty.AverageScore != 0 || empty.BestScore != 0 || empty.RecentTrend != 0 || empty.ModeAverages[entity.PracticeModeSlang] != 0 {
		t.Fatalf("empty = %+v", empty)
	}

	attempt := func(overall int) entity.PronunciationAttempt {
		return entity.PronunciationAttempt{PronunciationScores: entity.PronunciationScores{Overall: overall}}
	}
	history := []entity.PronunciationSession{
		{Mode: entity.PracticeModeSlang, AverageOverall: 10, Scores: []entity.PronunciationAttempt{attempt(10)}},
		{Mode: entity.PracticeModeSlang, AverageOverall: 40, Scores: []entity.PronunciationAttempt{attempt(30), attempt(50)}},
		{Mode: entity.PracticeModeEveryday, AverageOverall: 61, Scores: []entity.PronunciationAttempt{attempt(61)}},
		{Mode: entity.PracticeModeEveryday, AverageOverall: 70, Scores: []entity.PronunciationAttempt{attempt(70)}},
		{Mode: entity.PracticeModeSlang, AverageOverall: 80, Scores: []entity.PronunciationAttempt{attempt(80)}},
		{Mode: entity.PracticeModeSlang, AverageOverall: 90, Scores: []entity.PronunciationAttempt{attempt(90)}},
	}
	stats := PronunciationStats(history)
	// (10+30+50+61+70+80+90) / 7 = 55.857
	if stats.AverageScore != 56 || stats.TotalPhrasesPracticed != 7 || stats.BestScore != 90 {
		t.Fatalf("stats = %+v", stats)
	}
	// last five sessions: 40 .. 90
	if stats.RecentTrend != 50 {
		t.Fatalf("trend = %d", stats.RecentTrend)
	}
	// slang (10+40+80+90)/4 = 55, everyday (61+70)/2 = 65.5
	if stats.ModeAverages[entity.PracticeModeSlang] != 55 || stats.ModeAverages[entity.PracticeModeEveryday] != 66 || stats.ModeAverages[entity.PracticeModeWorkplace] != 0 {
		t.Fatalf("mode averages = %+v", stats.ModeAverages)
	}
}

func TestPronunciationClear(t *testing.T) {
	ctx := context.Background()
	uc, repo := newTestPronunciation(t)
	_, err := uc.StartPractice(ctx, entity.PracticeModeWorkplace)
	mustNoErr(t, err)
	mustNoErr(t, uc.Clear(ctx))
	if repo.buffer != nil || len(repo.history) != 0 {
		t.Fatal("clear left data behind")
	}
}
