package backup

import (
	"bytes"
	"context"
	"encoding/json"
	"reflect"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/sirupsen/logrus/hooks/test"

	"github.com/eslsoft/aussieprogress/internal/infrastructure/database"
	"github.com/eslsoft/aussieprogress/internal/repository"
)

var exportTime = time.Date(2025, 3, 4, 5, 6, 7, 0, time.UTC)

func newTestService(t *testing.T, store repository.DocumentStore) *Service {
	t.Helper()
	logger, _ := test.NewNullLogger()
	return NewService(store, logger, WithClock(func() time.Time { return exportTime }))
}

func seedStore(t *testing.T, ctx context.Context, store repository.DocumentStore) map[string]string {
	t.Helper()
	docs := map[string]string{
		repository.KeySlangProgress:       `{"cards":{"arvo":{"id":"arvo","level":2,"nextReview":1700000000000,"lastReview":1699000000000}},"quizHighScore":8,"totalQuizzesTaken":3}`,
		repository.KeyGamification:        `{"xp":140,"level":3,"lastActivity":"2025-03-03","favorites":["arvo"]}`,
		repository.KeySessionHistory:      `{"sessions":[{"id":"s1","mode":"slang","startTime":1700000000000,"duration":120,"messageCount":4,"feedback":true}]}`,
		repository.KeySessionAchievements: `[{"id":"first-day","unlockedAt":"2025-03-03T10:00:00Z"}]`,
	}
	for key, value := range docs {
		if err := store.Set(ctx, key, []byte(value)); err != nil {
			t.Fatalf("seed %s: %v", key, err)
		}
	}
	return docs
}

func snapshot(t *testing.T, ctx context.Context, store repository.DocumentStore) map[string]string {
	t.Helper()
	keys, err := store.Keys(ctx)
	if err != nil {
		t.Fatalf("keys: %v", err)
	}
	out := make(map[string]string, len(keys))
	for _, key := range keys {
		value, ok, err := store.Get(ctx, key)
		if err != nil || !ok {
			t.Fatalf("get %s: ok=%v err=%v", key, ok, err)
		}
		out[key] = string(value)
	}
	return out
}

func TestServiceExportImportRoundTrip(t *testing.T) {
	ctx := context.Background()

	src := database.NewMemoryStore()
	want := seedStore(t, ctx, src)

	var buf bytes.Buffer
	summary, err := newTestService(t, src).Export(ctx, &buf)
	if err != nil {
		t.Fatalf("export failed: %v", err)
	}
	if summary.Documents != len(want) || !summary.ExportedAt.Equal(exportTime) {
		t.Fatalf("unexpected export summary %+v", summary)
	}

	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	if len(lines) != len(want)+2 {
		t.Fatalf("expected %d lines, got %d", len(want)+2, len(lines))
	}
	var first, last record
	if err := json.Unmarshal([]byte(lines[0]), &first); err != nil || first.Type != recordHeader || first.Version != formatVersion {
		t.Fatalf("bad header %q: %v", lines[0], err)
	}
	if err := json.Unmarshal([]byte(lines[len(lines)-1]), &last); err != nil || last.Type != recordFooter || last.Documents != len(want) {
		t.Fatalf("bad footer %q: %v", lines[len(lines)-1], err)
	}

	dst := database.NewMemoryStore()
	if err := dst.Set(ctx, repository.KeyActiveSessions, []byte(`{"sessions":{}}`)); err != nil {
		t.Fatalf("seed destination: %v", err)
	}
	if _, err := newTestService(t, dst).Import(ctx, bytes.NewReader(buf.Bytes())); err != nil {
		t.Fatalf("import failed: %v", err)
	}

	if got := snapshot(t, ctx, src); !reflect.DeepEqual(got, want) {
		t.Fatalf("source mutated: want %#v got %#v", want, got)
	}
	if got := snapshot(t, ctx, dst); !reflect.DeepEqual(got, want) {
		t.Fatalf("documents mismatch after import:\nwant %#v\ngot  %#v", want, got)
	}
}

func TestServiceExportKeysFilter(t *testing.T) {
	ctx := context.Background()
	src := database.NewMemoryStore()
	want := seedStore(t, ctx, src)

	var buf bytes.Buffer
	if _, err := newTestService(t, src).Export(ctx, &buf, WithKeys([]string{repository.KeyGamification})); err != nil {
		t.Fatalf("filtered export failed: %v", err)
	}

	dst := database.NewMemoryStore()
	if err := dst.Set(ctx, repository.KeySessionHistory, []byte(`{"sessions":[]}`)); err != nil {
		t.Fatalf("seed destination: %v", err)
	}
	summary, err := newTestService(t, dst).Import(ctx, bytes.NewReader(buf.Bytes()), WithImportKeys([]string{repository.KeyGamification}))
	if err != nil {
		t.Fatalf("filtered import failed: %v", err)
	}
	if summary.Documents != 1 {
		t.Fatalf("expected one imported document, got %+v", summary)
	}

	got := snapshot(t, ctx, dst)
	if got[repository.KeyGamification] != want[repository.KeyGamification] {
		t.Fatalf("gamification mismatch: %q", got[repository.KeyGamification])
	}
	if got[repository.KeySessionHistory] != `{"sessions":[]}` {
		t.Fatalf("keys outside the filter must be left alone, got %#v", got)
	}

	if _, err := newTestService(t, src).Export(ctx, &buf, WithKeys([]string{"unknown"})); err == nil {
		t.Fatal("expected error for unknown key")
	}
	if _, err := newTestService(t, src).Export(ctx, &buf, WithKeys([]string{" "})); err != errNoKeysSelected {
		t.Fatalf("expected errNoKeysSelected, got %v", err)
	}
}

func TestServiceExportSkipsMalformedDocuments(t *testing.T) {
	ctx := context.Background()
	src := database.NewMemoryStore()
	if err := src.Set(ctx, repository.KeyPronunciation, []byte(`{"sessions":`)); err != nil {
		t.Fatal(err)
	}
	if err := src.Set(ctx, repository.KeyGamification, []byte(`{"xp":5}`)); err != nil {
		t.Fatal(err)
	}
	summary, err := newTestService(t, src).Export(ctx, &bytes.Buffer{})
	if err != nil {
		t.Fatalf("export failed: %v", err)
	}
	if !reflect.DeepEqual(summary.Keys, []string{repository.KeyGamification}) {
		t.Fatalf("unexpected keys %v", summary.Keys)
	}
}

func TestServiceImportRejectsBrokenStreams(t *testing.T) {
	ctx := context.Background()
	src := database.NewMemoryStore()
	seedStore(t, ctx, src)

	var buf bytes.Buffer
	if _, err := newTestService(t, src).Export(ctx, &buf); err != nil {
		t.Fatalf("export failed: %v", err)
	}
	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	join := func(parts ...string) string { return strings.Join(parts, "\n") + "\n" }

	tampered := append([]string{}, lines...)
	tampered[2] = strings.Replace(tampered[2], `"payload":{`, `"payload":{"x":1,`, 1)

	cases := []struct {
		name  string
		input string
	}{
		{"empty", ""},
		{"no header", join(lines[1:]...)},
		{"no footer", join(lines[:len(lines)-1]...)},
		{"dropped document", join(append([]string{lines[0]}, lines[2:]...)...)},
		{"tampered payload", join(tampered...)},
		{"trailing record", join(append(append([]string{}, lines...), lines[1])...)},
		{"bad version", join(append([]string{`{"type":"header","version":9}`}, lines[1:]...)...)},
		{"unknown type", join(append(append([]string{lines[0]}, `{"type":"table"}`), lines[1:]...)...)},
		{"garbage", "not json\n"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			dst := database.NewMemoryStore()
			if err := dst.Set(ctx, repository.KeyGamification, []byte(`{"xp":1}`)); err != nil {
				t.Fatal(err)
			}
			if _, err := newTestService(t, dst).Import(ctx, strings.NewReader(tc.input)); err == nil {
				t.Fatal("expected import error")
			}
			value, ok, _ := dst.Get(ctx, repository.KeyGamification)
			if !ok || string(value) != `{"xp":1}` {
				t.Fatalf("failed import must not touch the store, got %q", value)
			}
		})
	}
}

type recordingProgress struct {
	mu    sync.RWMutex
	total int
	keys  []string
	done  bool
}

func (p *recordingProgress) Start(total int) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.total = total
}

func (p *recordingProgress) Document(key string, _ int) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.keys = append(p.keys, key)
}

func (p *recordingProgress) Finish() {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.done = true
}

func TestServiceReportsProgress(t *testing.T) {
	ctx := context.Background()
	src := database.NewMemoryStore()
	want := seedStore(t, ctx, src)

	reporter := &recordingProgress{}
	if _, err := newTestService(t, src).Export(ctx, &bytes.Buffer{}, WithProgressReporter(reporter)); err != nil {
		t.Fatalf("export failed: %v", err)
	}
	reporter.mu.RLock()
	defer reporter.mu.RUnlock()
	if reporter.total != len(want) || len(reporter.keys) != len(want) || !reporter.done {
		t.Fatalf("unexpected progress %+v", reporter)
	}
}
