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
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/eslsoft/aussieprogress/internal/app"
)

var resetCmd = &cobra.Command{
	Use:   "reset",
	Short: "清除全部学习进度 (卡片、经验值、会话、发音与成就)",
	RunE: runWithContainer(func(cmd *cobra.Command, args []string, c *app.Container) error {
		if yes, _ := cmd.Flags().GetBool("yes"); !yes {
			return errors.New("该操作会删除全部进度，请使用 --yes 确认")
		}
		if err := c.Progress.ResetAll(cmd.Context()); err != nil {
			return fmt.Errorf("清除进度失败: %w", err)
		}
		return printJSON(cmd, map[string]any{"reset": true})
	}),
}

func init() {
	rootCmd.AddCommand(resetCmd)
	resetCmd.Flags().Bool("yes", false, "确认删除全部进度")
}
