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
	"compress/gzip"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/eslsoft/aussieprogress/internal/app"
	"github.com/eslsoft/aussieprogress/internal/usecase/backup"
)

const (
	exportOutputKey = "backup.export.output"
	exportGzipKey   = "backup.export.gzip"
	exportKeysKey   = "backup.export.keys"
)

var exportCmd = &cobra.Command{
	Use:   "export",
	Short: "导出学习进度为 NDJSON 备份",
	RunE: runWithContainer(func(cmd *cobra.Command, args []string, c *app.Container) (err error) {
		ctx := cmd.Context()

		outputPath := viper.GetString(exportOutputKey)
		gzipEnabled := viper.GetBool(exportGzipKey)
		keyList := keysFromConfig(exportKeysKey)

		if outputPath == "" {
			outputPath = defaultExportFilename(gzipEnabled)
		}
		if !gzipEnabled && outputPath != "-" && strings.HasSuffix(strings.ToLower(outputPath), ".gz") {
			gzipEnabled = true
		}

		var (
			writer   = cmd.OutOrStdout()
			closeFns []func() error
		)

		if outputPath != "-" {
			if err := os.MkdirAll(filepath.Dir(outputPath), 0o755); err != nil {
				return fmt.Errorf("创建输出目录失败: %w", err)
			}
			file, openErr := os.Create(outputPath)
			if openErr != nil {
				return fmt.Errorf("创建备份文件失败: %w", openErr)
			}
			writer = file
			closeFns = append(closeFns, file.Close)
		}

		if gzipEnabled {
			gz := gzip.NewWriter(writer)
			writer = gz
			closeFns = append([]func() error{gz.Close}, closeFns...)
		}

		defer func() {
			for _, closer := range closeFns {
				if cerr := closer(); cerr != nil && err == nil {
					err = cerr
				}
			}
		}()

		progress := newCLIProgress(cmd.ErrOrStderr())
		exportOpts := []backup.ExportOption{backup.WithProgressReporter(progress)}
		if len(keyList) > 0 {
			exportOpts = append(exportOpts, backup.WithKeys(keyList))
		}

		summary, err := c.Backup.Export(ctx, writer, exportOpts...)
		if err != nil {
			return fmt.Errorf("导出备份失败: %w", err)
		}

		return writeBackupSummary(cmd, outputPath, summary)
	}),
}

func init() {
	rootCmd.AddCommand(exportCmd)

	exportCmd.Flags().StringP("output", "o", "", "备份输出文件路径，使用 - 表示标准输出")
	exportCmd.Flags().Bool("gzip", false, "使用 gzip 压缩输出")
	exportCmd.Flags().StringSlice("keys", nil, "仅导出指定文档键，逗号分隔或重复指定")

	bindExportConfig()
}

func defaultExportFilename(gzipEnabled bool) string {
	ts := time.Now().UTC().Format("20060102-150405")
	filename := fmt.Sprintf("aussieprogress-backup-%s.jsonl", ts)
	if gzipEnabled {
		filename += ".gz"
	}
	return filename
}

func bindExportConfig() {
	bindFlags(exportCmd.Flags(), map[string]string{
		exportOutputKey: "output",
		exportGzipKey:   "gzip",
		exportKeysKey:   "keys",
	})
}

// writeBackupSummary prints the run summary as JSON. When the backup itself
// went to stdout the summary goes to stderr.
func writeBackupSummary(cmd *cobra.Command, path string, summary *backup.Summary) error {
	out := map[string]any{"path": path, "summary": summary}
	if path == "-" {
		enc := json.NewEncoder(cmd.ErrOrStderr())
		enc.SetEscapeHTML(false)
		return enc.Encode(out)
	}
	return printJSON(cmd, out)
}

type cliProgress struct {
	out   io.Writer
	total int
	count int
	bytes int
}

func newCLIProgress(out io.Writer) *cliProgress {
	return &cliProgress{out: out}
}

func (p *cliProgress) Start(total int) {
	if total < 0 {
		total = 0
	}
	p.total = total
	p.count = 0
	p.bytes = 0
	fmt.Fprintf(p.out, "开始导出 (共 %d 个文档)\n", total)
}

func (p *cliProgress) Document(key string, size int) {
	p.count++
	p.bytes += size
	if p.total > 0 {
		fmt.Fprintf(p.out, "导出进度 %d/%d: %s (%d 字节)\n", p.count, p.total, key, size)
	} else {
		fmt.Fprintf(p.out, "导出进度 %d: %s (%d 字节)\n", p.count, key, size)
	}
}

func (p *cliProgress) Finish() {
	fmt.Fprintf(p.out, "完成导出: %d 个文档, %d 字节\n", p.count, p.bytes)
}
