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

	"github.com/samber/lo"
	"github.com/spf13/cobra"

	"github.com/eslsoft/aussieprogress/internal/app"
	"github.com/eslsoft/aussieprogress/internal/entity"
	"github.com/eslsoft/aussieprogress/internal/repository"
)

var sessionCmd = &cobra.Command{
	Use:   "session",
	Short: "对话练习会话",
}

var sessionStartCmd = &cobra.Command{
	Use:   "start",
	Short: "开始一个练习会话",
	RunE: runWithContainer(func(cmd *cobra.Command, args []string, c *app.Container) error {
		modeFlag, _ := cmd.Flags().GetString("mode")
		mode, err := entity.ParsePracticeMode(modeFlag)
		if err != nil {
			return err
		}
		rec, err := c.Sessions.Start(cmd.Context(), mode)
		if err != nil {
			return fmt.Errorf("开始会话失败: %w", err)
		}
		return printJSON(cmd, rec)
	}),
}

var sessionMessageCmd = &cobra.Command{
	Use:   "message <session-id>",
	Short: "记录一条会话消息",
	Args:  cobra.ExactArgs(1),
	RunE: runWithContainer(func(cmd *cobra.Command, args []string, c *app.Container) error {
		rec, err := c.Sessions.IncrementMessageCount(cmd.Context(), args[0])
		if err != nil {
			return fmt.Errorf("记录消息失败: %w", err)
		}
		return printJSON(cmd, rec)
	}),
}

var sessionFeedbackCmd = &cobra.Command{
	Use:   "feedback <session-id>",
	Short: "为会话打分 (--negative 表示不满意)",
	Args:  cobra.ExactArgs(1),
	RunE: runWithContainer(func(cmd *cobra.Command, args []string, c *app.Container) error {
		negative, _ := cmd.Flags().GetBool("negative")
		rec, err := c.Sessions.UpdateFeedback(cmd.Context(), args[0], !negative)
		if err != nil {
			return fmt.Errorf("更新反馈失败: %w", err)
		}
		return printJSON(cmd, rec)
	}),
}

var sessionEndCmd = &cobra.Command{
	Use:   "end <session-id>",
	Short: "结束会话并计算成就",
	Args:  cobra.ExactArgs(1),
	RunE: runWithContainer(func(cmd *cobra.Command, args []string, c *app.Container) error {
		var feedback *bool
		switch {
		case cmd.Flags().Changed("positive"):
			feedback = lo.ToPtr(true)
		case cmd.Flags().Changed("negative"):
			feedback = lo.ToPtr(false)
		}
		res, err := c.Sessions.End(cmd.Context(), args[0], feedback)
		if err != nil {
			return fmt.Errorf("结束会话失败: %w", err)
		}
		return printJSON(cmd, res)
	}),
}

var sessionListCmd = &cobra.Command{
	Use:   "list",
	Short: "查询会话历史",
	RunE: runWithContainer(func(cmd *cobra.Command, args []string, c *app.Container) error {
		ctx := cmd.Context()
		if active, _ := cmd.Flags().GetBool("active"); active {
			items, err := c.Sessions.Active(ctx)
			if err != nil {
				return fmt.Errorf("查询进行中会话失败: %w", err)
			}
			return printJSON(cmd, map[string]any{"items": items, "total": len(items)})
		}

		filter, _ := cmd.Flags().GetString("filter")
		orderBy, _ := cmd.Flags().GetString("order-by")
		pageNo, _ := cmd.Flags().GetInt32("page")
		pageSize, _ := cmd.Flags().GetInt32("page-size")
		query := &repository.ListSessionsQuery{
			Pagination:  repository.Pagination{PageNo: pageNo, PageSize: pageSize},
			FilterOrder: repository.FilterOrder{Filter: filter, OrderBy: orderBy},
		}
		items, total, err := c.Sessions.List(ctx, query)
		if err != nil {
			return fmt.Errorf("查询会话失败: %w", err)
		}
		return printJSON(cmd, map[string]any{"items": items, "total": total})
	}),
}

func init() {
	rootCmd.AddCommand(sessionCmd)
	sessionCmd.AddCommand(sessionStartCmd, sessionMessageCmd, sessionFeedbackCmd, sessionEndCmd, sessionListCmd)

	sessionStartCmd.Flags().String("mode", string(entity.PracticeModeEveryday), "练习模式: everyday, slang, workplace")
	sessionFeedbackCmd.Flags().Bool("negative", false, "不满意")
	sessionEndCmd.Flags().Bool("positive", false, "结束时给出好评")
	sessionEndCmd.Flags().Bool("negative", false, "结束时给出差评")
	sessionEndCmd.MarkFlagsMutuallyExclusive("positive", "negative")
	sessionListCmd.Flags().Bool("active", false, "仅列出进行中的会话")
	sessionListCmd.Flags().String("filter", "", "CEL 过滤表达式，例如 mode == \"slang\" && duration > 600")
	sessionListCmd.Flags().String("order-by", "", "排序，例如 \"duration desc\"")
	sessionListCmd.Flags().Int32("page", 1, "页码")
	sessionListCmd.Flags().Int32("page-size", 0, "每页数量 (0 表示全部)")
}
