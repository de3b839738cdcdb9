package cmd

import (
	"fmt"
	"runtime"
	"strings"

	"cascloc/internal/errors"
	"cascloc/internal/report"
	"cascloc/internal/scanner"

	"github.com/spf13/cobra"
)

// scanOptions 存放 scan 命令的可配置参数。
type scanOptions struct {
	configFlags

	format  string
	output  string
	workers int
	files   bool
	strict  bool
}

// scanCmd 创建 scan 子命令。
// 示例：
//
//	cascloc scan .
//	cascloc scan ./project --format json --output result.json
//	cascloc scan ./project --config ci.cascloc.yml --hidden=false --files
func (a *app) scanCmd() *cobra.Command {
	options := scanOptions{
		format:  string(report.FormatTable),
		workers: runtime.NumCPU(),
	}

	scanCmd := &cobra.Command{
		Use:   "scan [path]",
		Short: "扫描目录或文件并输出代码行数统计",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			format, err := report.ParseFormat(options.format)
			if err != nil {
				return err
			}

			if options.workers <= 0 {
				return errors.New("workers must be greater than 0")
			}

			base, override, err := a.contexts(cmd, options.configFlags)
			if err != nil {
				return err
			}

			service := scanner.NewService(scanner.Options{
				Fs:        a.fs,
				Logger:    a.logger,
				Workers:   options.workers,
				Base:      base,
				Override:  override,
				KeepFiles: options.files,
			})

			result, err := service.ScanPath(cmd.Context(), args[0])
			if err != nil {
				return err
			}

			if err := report.Render(cmd.OutOrStdout(), format, result); err != nil {
				return err
			}

			if outputPath := strings.TrimSpace(options.output); outputPath != "" {
				if err := report.WriteFile(a.fs, outputPath, format, result); err != nil {
					return err
				}
				_, _ = fmt.Fprintf(cmd.ErrOrStderr(), "report exported to %s\n", outputPath)
			}

			if failures := result.Err(); failures != nil {
				if options.strict {
					return errors.Errorf("%d file(s) could not be read:\n%w", len(result.Failures), failures)
				}
				a.logger.Warnf("%d file(s) could not be read", len(result.Failures))
			}

			return nil
		},
	}

	options.register(scanCmd)
	scanCmd.Flags().StringVar(&options.format, "format", options.format, "输出格式: table、json 或 yaml")
	scanCmd.Flags().StringVar(&options.output, "output", "", "同时把报告导出到该文件")
	scanCmd.Flags().IntVar(&options.workers, "workers", options.workers, "并发 worker 数量")
	scanCmd.Flags().BoolVar(&options.files, "files", false, "输出逐文件明细")
	scanCmd.Flags().BoolVar(&options.strict, "strict", false, "存在无法读取的文件时以非零状态退出")

	return scanCmd
}
