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
	"strconv"

	"github.com/spf13/cobra"

	"github.com/eslsoft/aussieprogress/internal/app"
	"github.com/eslsoft/aussieprogress/internal/entity"
)

var reviewCmd = &cobra.Command{
	Use:   "review",
	Short: "复习卡片调度",
}

var reviewRateCmd = &cobra.Command{
	Use:   "rate <deck> <card-id> <grade>",
	Short: "为卡片评分 (slang: 1..5, workplace: 0/1)",
	Args:  cobra.ExactArgs(3),
	RunE: runWithContainer(func(cmd *cobra.Command, args []string, c *app.Container) error {
		deck, err := entity.ParseDeck(args[0])
		if err != nil {
			return err
		}
		grade, err := strconv.Atoi(args[2])
		if err != nil {
			return fmt.Errorf("评分必须是整数: %w", err)
		}
		card, err := c.Review.Rate(cmd.Context(), deck, args[1], grade)
		if err != nil {
			return fmt.Errorf("卡片评分失败: %w", err)
		}
		return printJSON(cmd, card)
	}),
}

var reviewNailedCmd = &cobra.Command{
	Use:   "nailed <card-id>",
	Short: "标记职场短语卡片为已掌握 (--missed 表示仍需练习)",
	Args:  cobra.ExactArgs(1),
	RunE: runWithContainer(func(cmd *cobra.Command, args []string, c *app.Container) error {
		missed, _ := cmd.Flags().GetBool("missed")
		grade := 1
		if missed {
			grade = 0
		}
		card, err := c.Review.Rate(cmd.Context(), entity.DeckWorkplace, args[0], grade)
		if err != nil {
			return fmt.Errorf("卡片评分失败: %w", err)
		}
		return printJSON(cmd, card)
	}),
}

var reviewDueCmd = &cobra.Command{
	Use:   "due <deck> [card-id...]",
	Short: "列出到期需要复习的卡片",
	Args:  cobra.MinimumNArgs(1),
	RunE: runWithContainer(func(cmd *cobra.Command, args []string, c *app.Container) error {
		deck, err := entity.ParseDeck(args[0])
		if err != nil {
			return err
		}
		due, err := c.Review.Due(cmd.Context(), deck, args[1:])
		if err != nil {
			return fmt.Errorf("查询到期卡片失败: %w", err)
		}
		return printJSON(cmd, map[string]any{"deck": deck, "due": due})
	}),
}

var reviewStatsCmd = &cobra.Command{
	Use:   "stats [deck]",
	Short: "查看卡组统计",
	Args:  cobra.MaximumNArgs(1),
	RunE: runWithContainer(func(cmd *cobra.Command, args []string, c *app.Container) error {
		decks := entity.Decks()
		if len(args) == 1 {
			deck, err := entity.ParseDeck(args[0])
			if err != nil {
				return err
			}
			decks = []entity.Deck{deck}
		}
		out := make([]*entity.DeckStats, 0, len(decks))
		for _, deck := range decks {
			stats, err := c.Review.Stats(cmd.Context(), deck)
			if err != nil {
				return fmt.Errorf("查询卡组统计失败: %w", err)
			}
			out = append(out, stats)
		}
		return printJSON(cmd, out)
	}),
}

var reviewQuizCmd = &cobra.Command{
	Use:   "quiz <deck> <score> <total>",
	Short: "记录一次测验成绩",
	Args:  cobra.ExactArgs(3),
	RunE: runWithContainer(func(cmd *cobra.Command, args []string, c *app.Container) error {
		deck, err := entity.ParseDeck(args[0])
		if err != nil {
			return err
		}
		score, total, err := parseScore(args[1], args[2])
		if err != nil {
			return err
		}
		stats, err := c.Review.RecordQuiz(cmd.Context(), deck, score, total)
		if err != nil {
			return fmt.Errorf("记录测验失败: %w", err)
		}
		return printJSON(cmd, stats)
	}),
}

func init() {
	rootCmd.AddCommand(reviewCmd)
	reviewCmd.AddCommand(reviewRateCmd, reviewNailedCmd, reviewDueCmd, reviewStatsCmd, reviewQuizCmd)

	reviewNailedCmd.Flags().Bool("missed", false, "仍需练习")
}

func parseScore(scoreArg, totalArg string) (int, int, error) {
	score, err := strconv.Atoi(scoreArg)
	if err != nil {
		return 0, 0, fmt.Errorf("得分必须是整数: %w", err)
	}
	total, err := strconv.Atoi(totalArg)
	if err != nil {
		return 0, 0, fmt.Errorf("总分必须是整数: %w", err)
	}
	return score, total, nil
}
