// Package achievement evaluates declarative unlock rules against metric
// snapshots.
package achievement

import (
	"fmt"
	"sort"
	"time"

	"github.com/eslsoft/aussieprogress/internal/entity"
	"github.com/eslsoft/aussieprogress/pkg/filterexpr"
)

// Engine evaluates a fixed rule catalog. It holds no unlock state; callers
// pass the unlocked set on each evaluation.
type Engine struct {
	rules    []entity.AchievementRule
	programs map[string]*filterexpr.Predicate
}

// NewEngine validates the catalog and compiles its expression rules.
// Expression rules see every metric named in metrics as a number.
func NewEngine(rules []entity.AchievementRule, metrics []string) (*Engine, error) {
	schema := make(filterexpr.Schema, len(metrics))
	for _, name := range metrics {
		schema[name] = filterexpr.KindNumber
	}

	e := &Engine{
		rules:    make([]entity.AchievementRule, 0, len(rules)),
		programs: make(map[string]*filterexpr.Predicate),
	}
	seen := make(map[string]struct{}, len(rules))
	for _, rule := range rules {
		if rule.ID == "" {
			return nil, fmt.Errorf("achievement rule without id: %+v", rule)
		}
		if _, dup := seen[rule.ID]; dup {
			return nil, fmt.Errorf("%w: %s", entity.ErrDuplicateAchievementRule, rule.ID)
		}
		seen[rule.ID] = struct{}{}

		switch rule.Kind {
		case entity.RuleAtLeast:
			if _, ok := schema[rule.Metric]; !ok {
				return nil, fmt.Errorf("rule %s: unknown metric %q", rule.ID, rule.Metric)
			}
		case entity.RuleAllAtLeast:
			if len(rule.Metrics) == 0 {
				return nil, fmt.Errorf("rule %s: no metrics", rule.ID)
			}
			for _, m := range rule.Metrics {
				if _, ok := schema[m]; !ok {
					return nil, fmt.Errorf("rule %s: unknown metric %q", rule.ID, m)
				}
			}
		case entity.RuleExpression:
			prg, err := filterexpr.Compile(rule.Expr, schema)
			if err != nil {
				return nil, fmt.Errorf("rule %s: %w", rule.ID, err)
			}
			e.programs[rule.ID] = prg
		default:
			return nil, fmt.Errorf("%w: rule %s kind %q", entity.ErrUnknownAchievementRule, rule.ID, rule.Kind)
		}
		e.rules = append(e.rules, rule)
	}
	return e, nil
}

// Rules returns the catalog in declaration order.
func (e *Engine) Rules() []entity.AchievementRule {
	return append([]entity.AchievementRule{}, e.rules...)
}

// Satisfied reports whether rule holds for metrics.
func (e *Engine) Satisfied(rule entity.AchievementRule, metrics map[string]float64) (bool, error) {
	switch rule.Kind {
	case entity.RuleAtLeast:
		return metrics[rule.Metric] >= rule.Threshold, nil
	case entity.RuleAllAtLeast:
		for _, m := range rule.Metrics {
			if metrics[m] < rule.Threshold {
				return false, nil
			}
		}
		return true, nil
	case entity.RuleExpression:
		prg, ok := e.programs[rule.ID]
		if !ok {
			return false, fmt.Errorf("rule %s not compiled", rule.ID)
		}
		vars := make(map[string]any, len(metrics))
		for k, v := range metrics {
			vars[k] = v
		}
		return prg.Match(vars)
	default:
		return false, fmt.Errorf("%w: %q", entity.ErrUnknownAchievementRule, rule.Kind)
	}
}

// Evaluate returns the rules newly satisfied by metrics, skipping ids already
// in unlocked. Evaluating the same snapshot twice with the returned ids
// added to unlocked yields nothing.
func (e *Engine) Evaluate(metrics map[string]float64, unlocked []string) ([]entity.AchievementRule, error) {
	have := make(map[string]struct{}, len(unlocked))
	for _, id := range unlocked {
		have[id] = struct{}{}
	}

	var fresh []entity.AchievementRule
	for _, rule := range e.rules {
		if _, ok := have[rule.ID]; ok {
			continue
		}
		ok, err := e.Satisfied(rule, metrics)
		if err != nil {
			return nil, err
		}
		if ok {
			fresh = append(fresh, rule)
		}
	}
	return fresh, nil
}

// Progress returns capped progress for threshold rules that track it.
func (e *Engine) Progress(rule entity.AchievementRule, metrics map[string]float64) *entity.AchievementProgress {
	if !rule.TrackProgress || rule.Kind != entity.RuleAtLeast {
		return nil
	}
	return &entity.AchievementProgress{
		Current: min(metrics[rule.Metric], rule.Threshold),
		Target:  rule.Threshold,
	}
}

// Statuses joins every rule with its unlock record and progress.
func (e *Engine) Statuses(metrics map[string]float64, unlocked []entity.UnlockedAchievement) []entity.AchievementStatus {
	at := make(map[string]time.Time, len(unlocked))
	for _, u := range unlocked {
		at[u.ID] = u.UnlockedAt
	}
	out := make([]entity.AchievementStatus, 0, len(e.rules))
	for _, rule := range e.rules {
		status := Status(rule, false, nil)
		if ts, ok := at[rule.ID]; ok {
			status.Unlocked = true
			if !ts.IsZero() {
				unlockedAt := ts
				status.UnlockedAt = &unlockedAt
			}
		}
		if metrics != nil {
			status.Progress = e.Progress(rule, metrics)
		}
		out = append(out, status)
	}
	return out
}

// Status converts a rule into its display form.
func Status(rule entity.AchievementRule, unlocked bool, at *time.Time) entity.AchievementStatus {
	return entity.AchievementStatus{
		ID:          rule.ID,
		Title:       rule.Title,
		Description: rule.Description,
		Icon:        rule.Icon,
		Category:    rule.Category,
		Unlocked:    unlocked,
		UnlockedAt:  at,
	}
}

// Unlock appends records for fresh to unlocked at the given time. Existing
// records are never removed or re-dated.
func Unlock(unlocked []entity.UnlockedAchievement, fresh []entity.AchievementRule, at time.Time) []entity.UnlockedAchievement {
	have := make(map[string]struct{}, len(unlocked))
	for _, u := range unlocked {
		have[u.ID] = struct{}{}
	}
	out := append([]entity.UnlockedAchievement{}, unlocked...)
	for _, rule := range fresh {
		if _, ok := have[rule.ID]; ok {
			continue
		}
		have[rule.ID] = struct{}{}
		out = append(out, entity.UnlockedAchievement{ID: rule.ID, UnlockedAt: at})
	}
	return out
}

// IDs returns the ids of records in order.
func IDs(records []entity.UnlockedAchievement) []string {
	ids := make([]string, len(records))
	for i, r := range records {
		ids[i] = r.ID
	}
	return ids
}

// MetricNames returns the sorted keys of a metrics snapshot.
func MetricNames(metrics map[string]float64) []string {
	names := make([]string, 0, len(metrics))
	for k := range metrics {
		names = append(names, k)
	}
	sort.Strings(names)
	return names
}
