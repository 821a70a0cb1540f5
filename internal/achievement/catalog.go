package achievement

import "github.com/eslsoft/aussieprogress/internal/entity"

func atLeast(id, title, desc, icon, category, metric string, threshold float64, progress bool) entity.AchievementRule {
	return entity.AchievementRule{
		ID: id, Title: title, Description: desc, Icon: icon, Category: category,
		Kind: entity.RuleAtLeast, Metric: metric, Threshold: threshold, TrackProgress: progress,
	}
}

// SessionCatalog is evaluated against session statistics.
func SessionCatalog() []entity.AchievementRule {
	return []entity.AchievementRule{
		atLeast("first-day", "First Steps", "Complete your first practice session", "🎯", "streak", "totalSessions", 1, false),
		atLeast("streak-3", "Getting Started", "Maintain a 3-day practice streak", "🔥", "streak", "streak", 3, true),
		atLeast("streak-7", "Week Warrior", "Maintain a 7-day practice streak", "⚡", "streak", "streak", 7, true),
		atLeast("streak-30", "Dedicated Learner", "Maintain a 30-day practice streak", "🏆", "streak", "streak", 30, true),
		atLeast("sessions-5", "Getting Chatty", "Complete 5 practice sessions", "💬", "sessions", "totalSessions", 5, true),
		atLeast("sessions-25", "Conversation Pro", "Complete 25 practice sessions", "🗣️", "sessions", "totalSessions", 25, true),
		atLeast("sessions-100", "Century Club", "Complete 100 practice sessions", "💯", "sessions", "totalSessions", 100, true),
		atLeast("time-30min", "Half Hour Hero", "Practice for 30 minutes total", "⏱️", "time", "totalPracticeTime", 30*60, true),
		atLeast("time-2hr", "Two Hour Tower", "Practice for 2 hours total", "⌛", "time", "totalPracticeTime", 2*60*60, true),
		atLeast("time-10hr", "Time Investor", "Practice for 10 hours total", "🕐", "time", "totalPracticeTime", 10*60*60, true),
		atLeast("mode-everyday", "Daily Chatter", "Complete 5 Everyday English sessions", "🏠", "modes", "everydaySessions", 5, true),
		atLeast("mode-slang", "True Blue Aussie", "Complete 5 Aussie Slang sessions", "🦘", "modes", "slangSessions", 5, true),
		atLeast("mode-workplace", "Office Ready", "Complete 5 Workplace English sessions", "💼", "modes", "workplaceSessions", 5, true),
		{
			ID: "mode-all", Title: "Well Rounded", Description: "Complete at least 3 sessions in each mode", Icon: "🌟", Category: "modes",
			Kind: entity.RuleAllAtLeast, Metrics: []string{"everydaySessions", "slangSessions", "workplaceSessions"}, Threshold: 3,
		},
		{
			ID: "long-session", Title: "Deep Conversation", Description: "Have a session lasting over 10 minutes", Icon: "🎙️", Category: "special",
			Kind: entity.RuleExpression,
			Expr: "averageSessionDuration >= 600.0 || (totalSessions > 0.0 && totalPracticeTime / totalSessions >= 600.0)",
		},
		atLeast("weekly-5", "Busy Week", "Complete 5 sessions in one week", "📅", "special", "sessionsThisWeek", 5, true),
	}
}

// SessionMetrics names the metrics session rules may reference.
func SessionMetrics() []string {
	return MetricNames(entity.ProgressStats{}.Metrics())
}

// GamificationCatalog is evaluated against the gamification state.
func GamificationCatalog() []entity.AchievementRule {
	return []entity.AchievementRule{
		atLeast("first_flip", "First Flip", "View your first flashcard", "1f0cf", "cards", "cardsViewed", 1, false),
		atLeast("ten_cards", "Getting Started", "View 10 flashcards", "1f4da", "cards", "cardsViewed", 10, false),
		atLeast("fifty_cards", "Dedicated Learner", "View 50 flashcards", "1f4d6", "cards", "cardsViewed", 50, false),
		atLeast("hundred_cards", "Card Master", "View 100 flashcards", "1f393", "cards", "cardsViewed", 100, false),
		atLeast("first_quiz", "Quiz Taker", "Complete your first quiz", "2705", "quizzes", "quizzesCompleted", 1, false),
		atLeast("five_quizzes", "Quiz Regular", "Complete 5 quizzes", "1f3c5", "quizzes", "quizzesCompleted", 5, false),
		atLeast("perfect_score", "Perfect!", "Get 100% on a quiz", "1f4af", "quizzes", "perfectQuizzes", 1, false),
		atLeast("three_perfect", "Perfectionist", "Get 3 perfect quiz scores", "1f31f", "quizzes", "perfectQuizzes", 3, false),
		atLeast("streak_3", "On Fire", "3 day streak", "1f525", "streak", "maxStreak", 3, false),
		atLeast("streak_7", "Week Warrior", "7 day streak", "1f4aa", "streak", "maxStreak", 7, false),
		atLeast("streak_30", "Monthly Master", "30 day streak", "1f451", "streak", "maxStreak", 30, false),
		atLeast("level_5", "Rising Star", "Reach Level 5", "2b50", "level", "level", 5, false),
		atLeast("level_10", "Slang Expert", "Reach Level 10", "1f3c6", "level", "level", 10, false),
		atLeast("first_favorite", "Bookworm", "Add first favorite", "2764", "special", "favorites", 1, false),
		atLeast("daily_done", "Daily Dedication", "Complete a daily challenge", "1f4c5", "special", "dailyChallengesCompleted", 1, false),
		atLeast("voice_practice", "Voice Actor", "Practice pronunciation 10 times", "1f3a4", "special", "voicePracticeCount", 10, false),
		atLeast("fill_blank_master", "Fill Master", "Complete 5 fill-in-the-blank games", "270d", "games", "fillBlankCompleted", 5, false),
		atLeast("builder_master", "Sentence Builder", "Complete 5 sentence builder games", "1f9e9", "games", "sentenceBuilderCompleted", 5, false),
	}
}

// GamificationMetrics names the metrics gamification rules may reference.
func GamificationMetrics() []string {
	return MetricNames(entity.DefaultGamificationState().Metrics())
}

// NewSessionEngine builds the engine for SessionCatalog.
func NewSessionEngine() (*Engine, error) {
	return NewEngine(SessionCatalog(), SessionMetrics())
}

// NewGamificationEngine builds the engine for GamificationCatalog.
func NewGamificationEngine() (*Engine, error) {
	return NewEngine(GamificationCatalog(), GamificationMetrics())
}
