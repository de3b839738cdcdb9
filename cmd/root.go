// Package cmd 提供 cascloc 的命令行入口与子命令编排。
package cmd

import (
	"context"
	"os"
	"os/signal"
	"strings"

	"cascloc/internal/errors"
	"cascloc/internal/log"

	"github.com/sirupsen/logrus"
	"github.com/spf13/afero"
	"github.com/spf13/cobra"
)

// LogLevelEnv 设置默认日志级别，--log-level 优先。
const LogLevelEnv = "CASCLOC_LOG_LEVEL"

// app 保存所有子命令共享的运行时依赖。
type app struct {
	version  string
	fs       afero.Fs
	logLevel string
	logger   *logrus.Logger
}

// Execute 组装根命令并执行。
// version 参数由 main 包注入，便于在 CI/CD 中打包不同版本。
func Execute(version string) error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	application := newApp(version, afero.NewOsFs())
	err := application.rootCmd().ExecuteContext(ctx)
	if err != nil && application.logger != nil {
		application.logger.Debug(errors.ErrorStack(err))
	}
	return err
}

func newApp(version string, fs afero.Fs) *app {
	level := strings.TrimSpace(os.Getenv(LogLevelEnv))
	if level == "" {
		level = log.DefaultLevel
	}

	return &app{version: version, fs: fs, logLevel: level}
}

// rootCmd 创建根命令并注册全部子命令。
func (a *app) rootCmd() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:   "cascloc",
		Short: "支持层叠配置的代码行数统计工具",
		Long: "cascloc 按语言统计 total/empty/code/comment 行数。\n" +
			"语言记号与忽略规则来自内置默认值、全局配置文件和目录中的 .cascloc.yml，越深层的配置优先级越高。",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			logger, err := log.New(cmd.ErrOrStderr(), a.logLevel)
			if err != nil {
				return err
			}
			a.logger = logger
			return nil
		},
	}

	rootCmd.PersistentFlags().StringVar(&a.logLevel, "log-level", a.logLevel, "日志级别: trace, debug, info, warn, error")

	rootCmd.AddCommand(newVersionCmd(a.version))
	rootCmd.AddCommand(a.languageCmd())
	rootCmd.AddCommand(a.scanCmd())
	rootCmd.AddCommand(a.configCmd())

	return rootCmd
}
