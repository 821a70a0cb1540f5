/*
Copyright © 2025 Ambor <saltbo@foxmail.com>

Permission is hereby granted, free of charge, to any person obtaining a copy
of this software and associated documentation files (the "Software"), to deal
in the Software without restriction, including without limitation the rights
to use, copy, modify, merge, publish, distribute, sublicense, and/or sell
copies of the Software, and to permit persons to whom the Software is
furnished to do so, subject to the following conditions:

The above copyright notice and this permission notice shall be included in
all copies or substantial portions of the Software.

THE SOFTWARE IS PROVIDED "AS IS", WITHOUT WARRANTY OF ANY KIND, EXPRESS OR
IMPLIED, INCLUDING BUT NOT LIMITED TO THE WARRANTIES OF MERCHANTABILITY,
FITNESS FOR A PARTICULAR PURPOSE AND NONINFRINGEMENT. IN NO EVENT SHALL THE
AUTHORS OR COPYRIGHT HOLDERS BE LIABLE FOR ANY CLAIM, DAMAGES OR OTHER
LIABILITY, WHETHER IN AN ACTION OF CONTRACT, TORT OR OTHERWISE, ARISING FROM,
OUT OF OR IN CONNECTION WITH THE SOFTWARE OR THE USE OR OTHER DEALINGS IN
THE SOFTWARE.
*/
package cmd

import (
	"context"
	"fmt"
	"sort"
	"strconv"
	"strings"

	"github.com/samber/lo"
	"github.com/spf13/cobra"

	"github.com/eslsoft/aussieprogress/internal/app"
	"github.com/eslsoft/aussieprogress/internal/usecase"
)

type gamifyAction struct {
	args int
	run  func(ctx context.Context, g usecase.GamificationUsecase, args []string) (any, error)
}

func noArgs(fn func(usecase.GamificationUsecase, context.Context) (any, error)) gamifyAction {
	return gamifyAction{run: func(ctx context.Context, g usecase.GamificationUsecase, _ []string) (any, error) {
		return fn(g, ctx)
	}}
}

func scored(fn func(usecase.GamificationUsecase, context.Context, int, int) (any, error)) gamifyAction {
	return gamifyAction{args: 2, run: func(ctx context.Context, g usecase.GamificationUsecase, args []string) (any, error) {
		score, total, err := parseScore(args[0], args[1])
		if err != nil {
			return nil, err
		}
		return fn(g, ctx, score, total)
	}}
}

var gamifyActions = map[string]gamifyAction{
	"state": noArgs(func(g usecase.GamificationUsecase, ctx context.Context) (any, error) { return g.State(ctx) }),
	"add-xp": {args: 1, run: func(ctx context.Context, g usecase.GamificationUsecase, args []string) (any, error) {
		amount, err := strconv.Atoi(args[0])
		if err != nil {
			return nil, fmt.Errorf("经验值必须是整数: %w", err)
		}
		return g.AddXP(ctx, amount)
	}},
	"card-view":    noArgs(func(g usecase.GamificationUsecase, ctx context.Context) (any, error) { return g.RecordCardView(ctx) }),
	"quiz-correct": noArgs(func(g usecase.GamificationUsecase, ctx context.Context) (any, error) { return g.RecordQuizCorrect(ctx) }),
	"quiz-complete": scored(func(g usecase.GamificationUsecase, ctx context.Context, score, total int) (any, error) {
		return g.RecordQuizComplete(ctx, score, total)
	}),
	"fill-blank-correct": noArgs(func(g usecase.GamificationUsecase, ctx context.Context) (any, error) { return g.RecordFillBlankCorrect(ctx) }),
	"fill-blank-complete": scored(func(g usecase.GamificationUsecase, ctx context.Context, score, total int) (any, error) {
		return g.RecordFillBlankComplete(ctx, score, total)
	}),
	"sentence-builder-correct": noArgs(func(g usecase.GamificationUsecase, ctx context.Context) (any, error) {
		return g.RecordSentenceBuilderCorrect(ctx)
	}),
	"sentence-builder-complete": noArgs(func(g usecase.GamificationUsecase, ctx context.Context) (any, error) {
		return g.RecordSentenceBuilderComplete(ctx)
	}),
	"voice-practice":  noArgs(func(g usecase.GamificationUsecase, ctx context.Context) (any, error) { return g.RecordVoicePractice(ctx) }),
	"review-complete": noArgs(func(g usecase.GamificationUsecase, ctx context.Context) (any, error) { return g.RecordReviewComplete(ctx) }),
	"favorite": {args: 1, run: func(ctx context.Context, g usecase.GamificationUsecase, args []string) (any, error) {
		return g.ToggleFavorite(ctx, args[0])
	}},
	"daily-challenge": noArgs(func(g usecase.GamificationUsecase, ctx context.Context) (any, error) { return g.CompleteDailyChallenge(ctx) }),
	"check-streak":    noArgs(func(g usecase.GamificationUsecase, ctx context.Context) (any, error) { return g.CheckStreak(ctx) }),
	"xp-progress":     noArgs(func(g usecase.GamificationUsecase, ctx context.Context) (any, error) { return g.XPProgress(ctx) }),
	"achievements":    noArgs(func(g usecase.GamificationUsecase, ctx context.Context) (any, error) { return g.Achievements(ctx) }),
	"reset":           noArgs(func(g usecase.GamificationUsecase, ctx context.Context) (any, error) { return g.Reset(ctx) }),
}

func gamifyActionNames() []string {
	names := lo.Keys(gamifyActions)
	sort.Strings(names)
	return names
}

var gamifyCmd = &cobra.Command{
	Use:   "gamify <action> [args...]",
	Short: "记录学习活动并更新经验值、连续天数与成就",
	Long:  "可用动作: " + strings.Join(gamifyActionNames(), ", "),
	Args:  cobra.MinimumNArgs(1),
	ValidArgsFunction: func(cmd *cobra.Command, args []string, toComplete string) ([]string, cobra.ShellCompDirective) {
		if len(args) > 0 {
			return nil, cobra.ShellCompDirectiveNoFileComp
		}
		return gamifyActionNames(), cobra.ShellCompDirectiveNoFileComp
	},
	RunE: runWithContainer(func(cmd *cobra.Command, args []string, c *app.Container) error {
		name := strings.ToLower(strings.TrimSpace(args[0]))
		action, ok := gamifyActions[name]
		if !ok {
			return fmt.Errorf("未知动作 %q，可用动作: %s", args[0], strings.Join(gamifyActionNames(), ", "))
		}
		if len(args)-1 != action.args {
			return fmt.Errorf("动作 %s 需要 %d 个参数，实际 %d 个", name, action.args, len(args)-1)
		}
		out, err := action.run(cmd.Context(), c.Gamification, args[1:])
		if err != nil {
			return fmt.Errorf("执行动作 %s 失败: %w", name, err)
		}
		return printJSON(cmd, out)
	}),
}

func init() {
	rootCmd.AddCommand(gamifyCmd)
}
