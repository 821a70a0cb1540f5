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
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/eslsoft/aussieprogress/internal/app"
	"github.com/eslsoft/aussieprogress/internal/infrastructure/config"
)

var cfgFile string

// rootCmd represents the base command when called without any subcommands
var rootCmd = &cobra.Command{
	Use:           "aussieprogress",
	Short:         "澳式英语练习进度追踪",
	Long:          "记录澳式英语练习的复习卡片、对话会话、发音评分与成就进度。所有命令以 JSON 输出结果。",
	SilenceUsage:  true,
	SilenceErrors: false,
}

// Execute adds all child commands to the root command and sets flags appropriately.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func init() {
	cobra.OnInitialize(initConfig)

	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "配置文件路径 (默认 ./aussieprogress.yaml)")
	rootCmd.PersistentFlags().String("store-driver", "", "存储驱动: sqlite3 或 memory")
	rootCmd.PersistentFlags().String("store-path", "", "sqlite 数据文件路径")
	rootCmd.PersistentFlags().String("log-level", "", "日志级别")
	rootCmd.PersistentFlags().Uint64("seed", 0, "短语与反馈选择的随机种子 (0 表示随机)")

	bindFlags(rootCmd.PersistentFlags(), map[string]string{
		"store.driver":  "store-driver",
		"store.path":    "store-path",
		"log.level":     "log-level",
		"practice.seed": "seed",
	})
}

func initConfig() {
	if cfgFile != "" {
		viper.SetConfigFile(cfgFile)
	}
}

// newContainer loads configuration and wires the application. The returned
// cleanup closes the progress store.
func newContainer() (*app.Container, func(), error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, nil, fmt.Errorf("加载配置失败: %w", err)
	}
	container, cleanup, err := app.Initialize(cfg)
	if err != nil {
		return nil, nil, fmt.Errorf("初始化应用失败: %w", err)
	}
	return container, cleanup, nil
}

// runWithContainer is the RunE body shared by every progress command.
func runWithContainer(fn func(cmd *cobra.Command, args []string, c *app.Container) error) func(*cobra.Command, []string) error {
	return func(cmd *cobra.Command, args []string) error {
		c, cleanup, err := newContainer()
		if err != nil {
			return err
		}
		defer cleanup()
		return fn(cmd, args, c)
	}
}

func printJSON(cmd *cobra.Command, v any) error {
	enc := json.NewEncoder(cmd.OutOrStdout())
	enc.SetEscapeHTML(false)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}
