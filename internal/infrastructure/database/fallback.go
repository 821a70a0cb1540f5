package database

import (
	"context"
	"sort"

	"github.com/eslsoft/aussieprogress/internal/repository"
	"github.com/sirupsen/logrus"
)

const probeKey = "__storage_test__"

// FallbackStore writes through to a primary store when it is usable and
// always mirrors into memory. Reads prefer the primary and fall back to the
// mirror. Storage failures are logged, never returned.
type FallbackStore struct {
	primary   repository.DocumentStore
	available bool
	memory    *MemoryStore
	logger    logrus.FieldLogger
}

// NewFallbackStore probes primary with a throwaway write. A nil primary
// yields a memory-only store.
func NewFallbackStore(ctx context.Context, primary repository.DocumentStore, logger logrus.FieldLogger) *FallbackStore {
	s := &FallbackStore{primary: primary, memory: NewMemoryStore(), logger: logger}
	if primary == nil {
		return s
	}
	if err := primary.Set(ctx, probeKey, []byte(probeKey)); err != nil {
		logger.WithError(err).Warn("progress storage unavailable, keeping progress in memory")
		return s
	}
	if err := primary.Remove(ctx, probeKey); err != nil {
		logger.WithError(err).Warn("progress storage unavailable, keeping progress in memory")
		return s
	}
	s.available = true
	return s
}

// Available reports whether the primary store passed its probe.
func (s *FallbackStore) Available() bool { return s.available }

func (s *FallbackStore) Get(ctx context.Context, key string) ([]byte, bool, error) {
	if s.available {
		value, ok, err := s.primary.Get(ctx, key)
		if err == nil {
			return value, ok, nil
		}
		s.logger.WithError(err).WithField("key", key).Warn("read from progress storage failed, using memory")
	}
	return s.memory.Get(ctx, key)
}

func (s *FallbackStore) Set(ctx context.Context, key string, value []byte) error {
	if s.available {
		if err := s.primary.Set(ctx, key, value); err != nil {
			s.logger.WithError(err).WithField("key", key).Warn("write to progress storage failed")
		}
	}
	return s.memory.Set(ctx, key, value)
}

func (s *FallbackStore) Remove(ctx context.Context, key string) error {
	if s.available {
		if err := s.primary.Remove(ctx, key); err != nil {
			s.logger.WithError(err).WithField("key", key).Warn("remove from progress storage failed")
		}
	}
	return s.memory.Remove(ctx, key)
}

// Keys merges the primary and memory key sets.
func (s *FallbackStore) Keys(ctx context.Context) ([]string, error) {
	seen := make(map[string]struct{})
	if s.available {
		keys, err := s.primary.Keys(ctx)
		if err != nil {
			s.logger.WithError(err).Warn("list progress storage keys failed")
		}
		for _, k := range keys {
			seen[k] = struct{}{}
		}
	}
	mem, _ := s.memory.Keys(ctx)
	for _, k := range mem {
		seen[k] = struct{}{}
	}
	out := make([]string, 0, len(seen))
	for k := range seen {
		if k != probeKey {
			out = append(out, k)
		}
	}
	sort.Strings(out)
	return out, nil
}
