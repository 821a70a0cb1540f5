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
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/eslsoft/aussieprogress/internal/app"
	"github.com/eslsoft/aussieprogress/internal/entity"
	"github.com/eslsoft/aussieprogress/internal/scoring"
)

// scoreCmd scores one spoken attempt. With --phrase the attempt is scored
// statelessly; otherwise it is scored against the current practice phrase.
var scoreCmd = &cobra.Command{
	Use:   "score",
	Short: "为一次发音尝试评分",
	RunE: runWithContainer(func(cmd *cobra.Command, args []string, c *app.Container) error {
		ctx := cmd.Context()
		spoken, _ := cmd.Flags().GetString("spoken")
		confidence, _ := cmd.Flags().GetFloat64("confidence")
		target, _ := cmd.Flags().GetString("phrase")
		recognition, _ := cmd.Flags().GetString("recognition")

		if strings.TrimSpace(target) != "" {
			phrase, ok := scoring.FindPhrase(target)
			if !ok {
				phrase = entity.Phrase{Text: target}
			}
			attempt := c.Scorer.Score(phrase, spoken, confidence, time.Now())
			return printJSON(cmd, attempt)
		}

		if recognition != "" {
			results, err := readRecognition(cmd, recognition)
			if err != nil {
				return err
			}
			attempt, err := c.Pronunciation.SubmitRecognition(ctx, results)
			if err != nil {
				return fmt.Errorf("提交识别结果失败: %w", err)
			}
			return printJSON(cmd, attempt)
		}

		attempt, err := c.Pronunciation.Submit(ctx, spoken, confidence)
		if err != nil {
			return fmt.Errorf("提交发音失败: %w", err)
		}
		return printJSON(cmd, attempt)
	}),
}

var scoreFinalizeCmd = &cobra.Command{
	Use:   "finalize",
	Short: "结束当前发音练习并保存会话成绩",
	RunE: runWithContainer(func(cmd *cobra.Command, args []string, c *app.Container) error {
		sessionID, _ := cmd.Flags().GetString("session")
		modeFlag, _ := cmd.Flags().GetString("mode")
		mode := entity.PracticeModeUnspecified
		if modeFlag != "" {
			parsed, err := entity.ParsePracticeMode(modeFlag)
			if err != nil {
				return err
			}
			mode = parsed
		}
		session, err := c.Pronunciation.FinalizeSession(cmd.Context(), sessionID, mode)
		if err != nil {
			return fmt.Errorf("保存发音会话失败: %w", err)
		}
		return printJSON(cmd, session)
	}),
}

func init() {
	rootCmd.AddCommand(scoreCmd)
	scoreCmd.AddCommand(scoreFinalizeCmd)

	scoreCmd.Flags().String("spoken", "", "识别出的文本")
	scoreCmd.Flags().Float64("confidence", 0, "识别置信度 (0..1)")
	scoreCmd.Flags().String("phrase", "", "目标短语，指定时不修改练习进度")
	scoreCmd.Flags().String("recognition", "", "识别事件 JSON 数组文件，使用 - 表示标准输入")

	scoreFinalizeCmd.Flags().String("session", "", "会话 ID")
	scoreFinalizeCmd.Flags().String("mode", "", "练习模式 (默认沿用当前练习模式)")
}

func readRecognition(cmd *cobra.Command, path string) ([]entity.RecognitionResult, error) {
	var reader io.Reader = cmd.InOrStdin()
	if path != "-" {
		file, err := os.Open(filepath.Clean(path))
		if err != nil {
			return nil, fmt.Errorf("打开识别结果文件失败: %w", err)
		}
		defer file.Close()
		reader = file
	}
	var results []entity.RecognitionResult
	if err := json.NewDecoder(reader).Decode(&results); err != nil {
		return nil, fmt.Errorf("解析识别结果失败: %w", err)
	}
	if len(results) == 0 {
		return nil, errors.New("识别结果为空")
	}
	return results, nil
}
