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
	"fmt"

	"github.com/spf13/cobra"

	"github.com/eslsoft/aussieprogress/internal/app"
)

var progressCmd = &cobra.Command{
	Use:   "progress",
	Short: "查看学习进度汇总",
}

var progressStatsCmd = &cobra.Command{
	Use:   "stats",
	Short: "会话、经验值、卡组与发音统计汇总",
	RunE: runWithContainer(func(cmd *cobra.Command, args []string, c *app.Container) error {
		summary, err := c.Progress.Summary(cmd.Context())
		if err != nil {
			return fmt.Errorf("汇总进度失败: %w", err)
		}
		return printJSON(cmd, summary)
	}),
}

var progressConfidenceCmd = &cobra.Command{
	Use:   "confidence",
	Short: "口语自信度评估与里程碑",
	RunE: runWithContainer(func(cmd *cobra.Command, args []string, c *app.Container) error {
		snap, err := c.Progress.Confidence(cmd.Context())
		if err != nil {
			return fmt.Errorf("计算自信度失败: %w", err)
		}
		return printJSON(cmd, snap)
	}),
}

var progressAchievementsCmd = &cobra.Command{
	Use:   "achievements",
	Short: "列出会话与游戏化成就",
	RunE: runWithContainer(func(cmd *cobra.Command, args []string, c *app.Container) error {
		ctx := cmd.Context()
		sessions, err := c.Sessions.Achievements(ctx)
		if err != nil {
			return fmt.Errorf("查询会话成就失败: %w", err)
		}
		gamification, err := c.Gamification.Achievements(ctx)
		if err != nil {
			return fmt.Errorf("查询游戏化成就失败: %w", err)
		}
		return printJSON(cmd, map[string]any{
			"sessions":     sessions,
			"gamification": gamification,
		})
	}),
}

var progressPronunciationCmd = &cobra.Command{
	Use:   "pronunciation",
	Short: "发音练习统计",
	RunE: runWithContainer(func(cmd *cobra.Command, args []string, c *app.Container) error {
		ctx := cmd.Context()
		stats, err := c.Pronunciation.OverallStats(ctx)
		if err != nil {
			return fmt.Errorf("查询发音统计失败: %w", err)
		}
		out := map[string]any{"stats": stats}
		if withHistory, _ := cmd.Flags().GetBool("history"); withHistory {
			history, err := c.Pronunciation.History(ctx)
			if err != nil {
				return fmt.Errorf("查询发音历史失败: %w", err)
			}
			out["history"] = history
		}
		return printJSON(cmd, out)
	}),
}

func init() {
	rootCmd.AddCommand(progressCmd)
	progressCmd.AddCommand(progressStatsCmd, progressConfidenceCmd, progressAchievementsCmd, progressPronunciationCmd)

	progressPronunciationCmd.Flags().Bool("history", false, "同时输出每次发音会话的明细")
}
