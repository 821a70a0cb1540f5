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
	"github.com/eslsoft/aussieprogress/internal/entity"
	"github.com/eslsoft/aussieprogress/internal/scoring"
)

var phrasesCmd = &cobra.Command{
	Use:   "phrases",
	Short: "列出练习短语",
	RunE: func(cmd *cobra.Command, args []string) error {
		modeFlag, _ := cmd.Flags().GetString("mode")
		modes := entity.PracticeModes()
		if modeFlag != "" {
			mode, err := entity.ParsePracticeMode(modeFlag)
			if err != nil {
				return err
			}
			modes = []entity.PracticeMode{mode}
		}
		out := make(map[entity.PracticeMode][]entity.Phrase, len(modes))
		for _, mode := range modes {
			list, err := scoring.Phrases(mode)
			if err != nil {
				return err
			}
			out[mode] = list
		}
		return printJSON(cmd, out)
	},
}

var phrasesNextCmd = &cobra.Command{
	Use:   "next",
	Short: "选取下一条练习短语",
	RunE: runWithContainer(func(cmd *cobra.Command, args []string, c *app.Container) error {
		modeFlag, _ := cmd.Flags().GetString("mode")
		mode, err := entity.ParsePracticeMode(modeFlag)
		if err != nil {
			return err
		}
		phrase, err := c.Pronunciation.StartPractice(cmd.Context(), mode)
		if err != nil {
			return fmt.Errorf("选取练习短语失败: %w", err)
		}
		return printJSON(cmd, phrase)
	}),
}

var phrasesCurrentCmd = &cobra.Command{
	Use:   "current",
	Short: "查看当前练习短语与未保存的评分",
	RunE: runWithContainer(func(cmd *cobra.Command, args []string, c *app.Container) error {
		buffer, err := c.Pronunciation.Current(cmd.Context())
		if err != nil {
			return fmt.Errorf("读取当前练习失败: %w", err)
		}
		return printJSON(cmd, buffer)
	}),
}

func init() {
	rootCmd.AddCommand(phrasesCmd)
	phrasesCmd.AddCommand(phrasesNextCmd, phrasesCurrentCmd)

	phrasesCmd.Flags().String("mode", "", "练习模式: everyday, slang, workplace")
	phrasesNextCmd.Flags().String("mode", string(entity.PracticeModeEveryday), "练习模式: everyday, slang, workplace")
}
