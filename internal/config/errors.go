package config

import "fmt"

// ConfigError 表示配置来源无法读取或格式错误，属于致命错误，会在计数开始前终止运行。
type ConfigError struct {
	Path string
	Err  error
}

func (err ConfigError) Error() string {
	if err.Path == "" {
		return fmt.Sprintf("invalid configuration: %v", err.Err)
	}
	return fmt.Sprintf("invalid configuration %s: %v", err.Path, err.Err)
}

func (err ConfigError) Unwrap() error {
	return err.Err
}
