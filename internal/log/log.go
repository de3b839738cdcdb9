// Package log 负责构造 cascloc 使用的 logrus 日志器。
package log

import (
	"io"
	"os"
	"strings"

	"cascloc/internal/errors"

	"github.com/mattn/go-isatty"
	"github.com/sirupsen/logrus"
)

// DefaultLevel 是未显式配置时的日志级别。
const DefaultLevel = "warn"

// New 创建写入 out 的文本日志器。
// 只有当 out 是终端时才启用颜色，重定向到文件或管道时保持纯文本。
func New(out io.Writer, level string) (*logrus.Logger, error) {
	if strings.TrimSpace(level) == "" {
		level = DefaultLevel
	}

	parsed, err := logrus.ParseLevel(level)
	if err != nil {
		return nil, errors.WithStackTraceAndPrefix(err, "parse log level")
	}

	logger := logrus.New()
	logger.SetOutput(out)
	logger.SetLevel(parsed)
	logger.SetFormatter(&logrus.TextFormatter{
		DisableColors:    !isTerminal(out),
		DisableTimestamp: true,
	})

	return logger, nil
}

// Discard 返回丢弃全部输出的日志器，主要供测试与库调用方使用。
func Discard() *logrus.Logger {
	logger := logrus.New()
	logger.SetOutput(io.Discard)
	return logger
}

func isTerminal(out io.Writer) bool {
	file, ok := out.(*os.File)
	if !ok {
		return false
	}

	return isatty.IsTerminal(file.Fd()) || isatty.IsCygwinTerminal(file.Fd())
}
