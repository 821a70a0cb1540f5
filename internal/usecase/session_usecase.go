package usecase

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/samber/lo"
	"github.com/sirupsen/logrus"

	"github.com/eslsoft/aussieprogress/internal/achievement"
	"github.com/eslsoft/aussieprogress/internal/entity"
	"github.com/eslsoft/aussieprogress/internal/repository"
	"github.com/eslsoft/aussieprogress/internal/streak"
	"github.com/eslsoft/aussieprogress/pkg/filterexpr"
	"github.com/eslsoft/aussieprogress/pkg/textmatch"
)

// SessionEnd is the outcome of finalizing a session.
type SessionEnd struct {
	Session         entity.SessionRecord       `json:"session"`
	NewAchievements []entity.AchievementStatus `json:"newAchievements"`
}

// SessionUsecase tracks conversation practice sessions and their statistics.
type SessionUsecase interface {
	Start(ctx context.Context, mode entity.PracticeMode) (*entity.SessionRecord, error)
	IncrementMessageCount(ctx context.Context, id string) (*entity.SessionRecord, error)
	UpdateFeedback(ctx context.Context, id string, positive bool) (*entity.SessionRecord, error)
	End(ctx context.Context, id string, feedback *bool) (*SessionEnd, error)
	Active(ctx context.Context) ([]entity.SessionRecord, error)
	List(ctx context.Context, query *repository.ListSessionsQuery) ([]entity.SessionRecord, int64, error)
	History(ctx context.Context) (*entity.SessionHistory, error)
	Stats(ctx context.Context) (*entity.ProgressStats, error)
	Achievements(ctx context.Context) ([]entity.AchievementStatus, error)
}

// NewSessionUsecase wires session persistence with the session achievement catalog.
func NewSessionUsecase(
	sessions repository.SessionRepository,
	active repository.ActiveSessionRepository,
	unlocks repository.AchievementRepository,
	engine *achievement.Engine,
	window WeekWindow,
	logger logrus.FieldLogger,
) SessionUsecase {
	return &sessionUsecase{
		sessions: sessions,
		active:   active,
		unlocks:  unlocks,
		engine:   engine,
		window:   time.Duration(window) * 24 * time.Hour,
		logger:   logger,
		clock:    time.Now,
		newID:    uuid.NewString,
	}
}

// WeekWindow is the number of days counted as "this week".
type WeekWindow int

type sessionUsecase struct {
	mu       sync.Mutex
	sessions repository.SessionRepository
	active   repository.ActiveSessionRepository
	unlocks  repository.AchievementRepository
	engine   *achievement.Engine
	window   time.Duration
	logger   logrus.FieldLogger
	clock    func() time.Time
	newID    func() string
}

func (u *sessionUsecase) Start(ctx context.Context, mode entity.PracticeMode) (*entity.SessionRecord, error) {
	if !mode.Valid() {
		return nil, entity.ErrInvalidPracticeMode
	}
	u.mu.Lock()
	defer u.mu.Unlock()
	record := entity.SessionRecord{
		ID:        u.newID(),
		Mode:      mode,
		StartTime: u.clock(),
	}
	if err := u.active.Put(ctx, record); err != nil {
		return nil, err
	}
	u.logger.WithFields(logrus.Fields{"session": record.ID, "mode": mode}).Debug("session started")
	return &record, nil
}

func (u *sessionUsecase) IncrementMessageCount(ctx context.Context, id string) (*entity.SessionRecord, error) {
	return u.updateActive(ctx, id, func(r *entity.SessionRecord) { r.MessageCount++ })
}

func (u *sessionUsecase) UpdateFeedback(ctx context.Context, id string, positive bool) (*entity.SessionRecord, error) {
	return u.updateActive(ctx, id, func(r *entity.SessionRecord) { r.Feedback = lo.ToPtr(positive) })
}

func (u *sessionUsecase) updateActive(ctx context.Context, id string, mutate func(*entity.SessionRecord)) (*entity.SessionRecord, error) {
	u.mu.Lock()
	defer u.mu.Unlock()
	record, err := u.activeRecord(ctx, id)
	if err != nil {
		return nil, err
	}
	mutate(record)
	if err := u.active.Put(ctx, *record); err != nil {
		return nil, err
	}
	return record, nil
}

// activeRecord distinguishes an already finalized session from an unknown id.
func (u *sessionUsecase) activeRecord(ctx context.Context, id string) (*entity.SessionRecord, error) {
	record, err := u.active.Get(ctx, strings.TrimSpace(id))
	if err == nil {
		return record, nil
	}
	if !errors.Is(err, entity.ErrSessionNotFound) {
		return nil, err
	}
	history, herr := u.sessions.Load(ctx)
	if herr != nil {
		return nil, herr
	}
	if lo.ContainsBy(history.Sessions, func(s entity.SessionRecord) bool { return s.ID == id }) {
		return nil, entity.ErrSessionAlreadyEnded
	}
	return nil, err
}

// End finalizes an active session. Achievements are evaluated against the
// history including the record before anything is written, so a failed
// evaluation leaves the session active.
func (u *sessionUsecase) End(ctx context.Context, id string, feedback *bool) (*SessionEnd, error) {
	u.mu.Lock()
	defer u.mu.Unlock()

	record, err := u.activeRecord(ctx, id)
	if err != nil {
		return nil, err
	}

	end := u.clock()
	if end.Before(record.StartTime) {
		end = record.StartTime
	}
	record.EndTime = &end
	record.Duration = textmatch.Round(end.Sub(record.StartTime).Seconds())
	if feedback != nil {
		record.Feedback = lo.ToPtr(*feedback)
	}

	rules, err := u.evaluate(ctx, *record, end)
	if err != nil {
		return nil, err
	}

	if err := u.sessions.Append(ctx, *record); err != nil {
		return nil, err
	}
	if err := u.active.Delete(ctx, record.ID); err != nil && !errors.Is(err, entity.ErrSessionNotFound) {
		return nil, err
	}

	fresh := []entity.AchievementStatus{}
	if len(rules) > 0 {
		if err := u.unlocks.Add(ctx, achievement.Unlock(nil, rules, end)); err != nil {
			u.logger.WithError(err).WithField("session", record.ID).Warn("failed to store session achievements")
		} else {
			for _, r := range rules {
				u.logger.WithField("achievement", r.ID).Debug("achievement unlocked")
			}
			fresh = lo.Map(rules, func(r entity.AchievementRule, _ int) entity.AchievementStatus {
				return achievement.Status(r, true, lo.ToPtr(end))
			})
		}
	}

	u.logger.WithFields(logrus.Fields{
		"session":  record.ID,
		"duration": record.Duration,
		"messages": record.MessageCount,
	}).Debug("session ended")
	return &SessionEnd{Session: *record, NewAchievements: fresh}, nil
}

// evaluate returns the session achievements newly satisfied once ended is
// added to the stored history.
func (u *sessionUsecase) evaluate(ctx context.Context, ended entity.SessionRecord, now time.Time) ([]entity.AchievementRule, error) {
	history, err := u.sessions.Load(ctx)
	if err != nil {
		return nil, err
	}
	stats := SessionStats(append(history.Sessions, ended), now, u.window)
	unlocked, err := u.unlocks.List(ctx)
	if err != nil {
		return nil, err
	}
	rules, err := u.engine.Evaluate(stats.Metrics(), achievement.IDs(unlocked))
	if err != nil {
		return nil, fmt.Errorf("evaluate session achievements: %w", err)
	}
	return rules, nil
}

func (u *sessionUsecase) Active(ctx context.Context) ([]entity.SessionRecord, error) {
	return u.active.List(ctx)
}

func (u *sessionUsecase) History(ctx context.Context) (*entity.SessionHistory, error) {
	return u.sessions.Load(ctx)
}

var sessionFilterSchema = filterexpr.Schema{
	"id":           filterexpr.KindString,
	"mode":         filterexpr.KindString,
	"startTime":    filterexpr.KindTimestamp,
	"duration":     filterexpr.KindNumber,
	"messageCount": filterexpr.KindNumber,
	"feedback":     filterexpr.KindBool,
	"rated":        filterexpr.KindBool,
}

var sessionOrderSchema = filterexpr.OrderSchema{
	DefaultPrimary:     "startTime",
	DefaultPrimaryDesc: true,
	FallbackKey:        "id",
	Fields:             sessionFilterSchema,
}

func sessionVars(s entity.SessionRecord) map[string]any {
	return map[string]any{
		"id":           s.ID,
		"mode":         string(s.Mode),
		"startTime":    s.StartTime,
		"duration":     float64(s.Duration),
		"messageCount": float64(s.MessageCount),
		"feedback":     s.Feedback != nil && *s.Feedback,
		"rated":        s.Feedback != nil,
	}
}

// List filters the finalized history with a CEL expression over
// sessionFilterSchema and orders it by up to two keys.
func (u *sessionUsecase) List(ctx context.Context, query *repository.ListSessionsQuery) ([]entity.SessionRecord, int64, error) {
	if query == nil {
		query = &repository.ListSessionsQuery{}
	}
	order, err := filterexpr.ParseOrderBy(query.GetOrderBy(), sessionOrderSchema)
	if err != nil {
		return nil, 0, fmt.Errorf("order by: %w", err)
	}
	var pred *filterexpr.Predicate
	if f := strings.TrimSpace(query.GetFilter()); f != "" {
		if pred, err = filterexpr.Compile(f, sessionFilterSchema); err != nil {
			return nil, 0, fmt.Errorf("filter: %w", err)
		}
	}

	history, err := u.sessions.Load(ctx)
	if err != nil {
		return nil, 0, err
	}

	type row struct {
		record entity.SessionRecord
		vars   map[string]any
	}
	rows := make([]row, 0, len(history.Sessions))
	for _, s := range history.Sessions {
		vars := sessionVars(s)
		if pred != nil {
			ok, err := pred.Match(vars)
			if err != nil {
				return nil, 0, err
			}
			if !ok {
				continue
			}
		}
		rows = append(rows, row{record: s, vars: vars})
	}
	sort.SliceStable(rows, func(i, j int) bool { return order.Less(rows[i].vars, rows[j].vars) })

	total := int64(len(rows))
	if size := int(query.PageSize); size > 0 {
		offset := min(int(query.Offset()), len(rows))
		rows = rows[offset:min(offset+size, len(rows))]
	}
	return lo.Map(rows, func(r row, _ int) entity.SessionRecord { return r.record }), total, nil
}

func (u *sessionUsecase) Stats(ctx context.Context) (*entity.ProgressStats, error) {
	return u.stats(ctx, u.clock())
}

func (u *sessionUsecase) stats(ctx context.Context, now time.Time) (*entity.ProgressStats, error) {
	history, err := u.sessions.Load(ctx)
	if err != nil {
		return nil, err
	}
	stats := SessionStats(history.Sessions, now, u.window)
	return &stats, nil
}

func (u *sessionUsecase) Achievements(ctx context.Context) ([]entity.AchievementStatus, error) {
	stats, err := u.Stats(ctx)
	if err != nil {
		return nil, err
	}
	unlocked, err := u.unlocks.List(ctx)
	if err != nil {
		return nil, err
	}
	return u.engine.Statuses(stats.Metrics(), unlocked), nil
}

// SessionStats aggregates finalized sessions as of now. Sessions whose
// start falls within window before now count as this week.
func SessionStats(sessions []entity.SessionRecord, now time.Time, window time.Duration) entity.ProgressStats {
	stats := entity.ProgressStats{ModeBreakdown: entity.NewModeBreakdown()}
	if len(sessions) == 0 {
		return stats
	}

	weekStart := now.Add(-window)
	thisWeek := lo.Filter(sessions, func(s entity.SessionRecord, _ int) bool {
		return !s.StartTime.Before(weekStart)
	})

	stats.TotalSessions = len(sessions)
	stats.TotalPracticeTime = lo.SumBy(sessions, func(s entity.SessionRecord) int { return s.Duration })
	stats.SessionsThisWeek = len(thisWeek)
	stats.PracticeTimeThisWeek = lo.SumBy(thisWeek, func(s entity.SessionRecord) int { return s.Duration })
	stats.AverageSessionDuration = float64(stats.TotalPracticeTime) / float64(stats.TotalSessions)
	for _, s := range sessions {
		if s.Mode.Valid() {
			stats.ModeBreakdown[s.Mode]++
		}
	}

	starts := lo.Map(sessions, func(s entity.SessionRecord, _ int) time.Time { return s.StartTime })
	stats.Streak = streak.FromDates(starts, now).Current
	last := lo.MaxBy(starts, func(a, b time.Time) bool { return a.After(b) })
	stats.LastPracticeDate = &last
	return stats
}
