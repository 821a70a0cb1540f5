package entity

// XP rewards per activity.
const (
	XPCardView               = 1
	XPQuizCorrect            = 10
	XPQuizComplete           = 25
	XPPerfectQuiz            = 50
	XPReviewComplete         = 30
	XPDailyChallenge         = 50
	XPStreakBonus            = 20
	XPFillBlankCorrect       = 8
	XPSentenceBuilderCorrect = 5
	XPVoicePractice          = 2
)

// LevelThresholds is the XP needed to reach each level, starting at level 1.
var LevelThresholds = []int{0, 100, 250, 500, 1000, 2000, 3500, 5500, 8000, 12000, 20000}

// LevelForXP returns the level reached with xp.
func LevelForXP(xp int) int {
	for i := len(LevelThresholds) - 1; i >= 0; i-- {
		if xp >= LevelThresholds[i] {
			return i + 1
		}
	}
	return 1
}

// GamificationState is the learner's XP, streak and activity counters.
type GamificationState struct {
	XP                           int      `json:"xp"`
	Level                        int      `json:"level"`
	Streak                       int      `json:"streak"`
	MaxStreak                    int      `json:"maxStreak"`
	LastActivity                 string   `json:"lastActivity"`
	CardsViewed                  int      `json:"cardsViewed"`
	QuizzesCompleted             int      `json:"quizzesCompleted"`
	PerfectQuizzes               int      `json:"perfectQuizzes"`
	HighScore                    int      `json:"highScore"`
	DailyChallengesCompleted     int      `json:"dailyChallengesCompleted"`
	LastDailyChallenge           string   `json:"lastDailyChallenge"`
	DailyChallengeCompletedToday string   `json:"dailyChallengeCompletedToday"`
	TodaysDailyTerm              string   `json:"todaysDailyTerm"`
	Favorites                    []string `json:"favorites"`
	UnlockedAchievements         []string `json:"unlockedAchievements"`
	VoicePracticeCount           int      `json:"voicePracticeCount"`
	FillBlankCompleted           int      `json:"fillBlankCompleted"`
	SentenceBuilderCompleted     int      `json:"sentenceBuilderCompleted"`
}

// DefaultGamificationState returns the state of a learner with no activity.
func DefaultGamificationState() *GamificationState {
	return &GamificationState{
		Level:                1,
		Favorites:            []string{},
		UnlockedAchievements: []string{},
	}
}

// Clone returns a deep copy.
func (s *GamificationState) Clone() *GamificationState {
	if s == nil {
		return nil
	}
	copy := *s
	copy.Favorites = append([]string{}, s.Favorites...)
	copy.UnlockedAchievements = append([]string{}, s.UnlockedAchievements...)
	return &copy
}

// Metrics exposes the numeric fields under the names achievement rules use.
func (s *GamificationState) Metrics() map[string]float64 {
	return map[string]float64{
		"xp":                       float64(s.XP),
		"level":                    float64(s.Level),
		"streak":                   float64(s.Streak),
		"maxStreak":                float64(s.MaxStreak),
		"cardsViewed":              float64(s.CardsViewed),
		"quizzesCompleted":         float64(s.QuizzesCompleted),
		"perfectQuizzes":           float64(s.PerfectQuizzes),
		"highScore":                float64(s.HighScore),
		"favorites":                float64(len(s.Favorites)),
		"dailyChallengesCompleted": float64(s.DailyChallengesCompleted),
		"voicePracticeCount":       float64(s.VoicePracticeCount),
		"fillBlankCompleted":       float64(s.FillBlankCompleted),
		"sentenceBuilderCompleted": float64(s.SentenceBuilderCompleted),
	}
}

// XPProgress describes progress through the current level.
type XPProgress struct {
	Progress   int     `json:"progress"`
	Needed     int     `json:"needed"`
	Percentage float64 `json:"percentage"`
}

// XPProgress reports how far the learner is through the current level. At
// the top level the next threshold equals the current one and Needed is 0.
func (s *GamificationState) XPProgress() XPProgress {
	level := s.Level
	if level < 1 {
		level = 1
	}
	current := 0
	if level-1 < len(LevelThresholds) {
		current = LevelThresholds[level-1]
	}
	nextIdx := level
	if nextIdx > len(LevelThresholds)-1 {
		nextIdx = len(LevelThresholds) - 1
	}
	next := LevelThresholds[nextIdx]

	progress := s.XP - current
	needed := next - current
	out := XPProgress{Progress: progress, Needed: needed}
	if needed > 0 {
		out.Percentage = float64(progress) / float64(needed) * 100
	} else {
		out.Percentage = 100
	}
	return out
}

// GamificationResult is returned by every mutating gamification action.
type GamificationResult struct {
	State           *GamificationState  `json:"state"`
	NewAchievements []AchievementStatus `json:"newAchievements,omitempty"`
	LeveledUp       bool                `json:"leveledUp"`
	Notifications   []string            `json:"notifications,omitempty"`
}
