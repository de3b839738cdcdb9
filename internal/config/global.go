package config

import (
	"os"
	"path/filepath"
	"strings"

	"cascloc/internal/errors"

	"github.com/mitchellh/go-homedir"
	"github.com/spf13/afero"
)

// GlobalPathEnv 可以覆盖全局配置文件的位置。
const GlobalPathEnv = "CASCLOC_GLOBAL_CONFIG"

// GlobalPath 返回全局配置文件路径：优先读取环境变量，否则为用户主目录下的 FileName。
func GlobalPath() (string, error) {
	if custom := strings.TrimSpace(os.Getenv(GlobalPathEnv)); custom != "" {
		return ExpandPath(custom)
	}

	home, err := homedir.Dir()
	if err != nil {
		return "", errors.WithStackTraceAndPrefix(err, "resolve home directory")
	}

	return filepath.Join(home, FileName), nil
}

// ExpandPath 展开 ~ 并转换为绝对路径。
func ExpandPath(path string) (string, error) {
	expanded, err := homedir.Expand(path)
	if err != nil {
		return "", errors.WithStackTrace(err)
	}

	absolute, err := filepath.Abs(expanded)
	if err != nil {
		return "", errors.WithStackTrace(err)
	}

	return absolute, nil
}

// EnsureGlobal 在全局配置文件不存在时写出内置默认配置。
func EnsureGlobal(fs afero.Fs, path string) (created bool, err error) {
	exists, err := afero.Exists(fs, path)
	if err != nil {
		return false, errors.WithStackTrace(err)
	}
	if exists {
		return false, nil
	}

	if err := WriteSource(fs, path, DefaultSource()); err != nil {
		return false, err
	}
	return true, nil
}

// LoadBase 按优先级构造基础上下文：内置默认 → 全局配置文件。
// 全局文件缺失时先生成，生成失败只记录而不终止，仍使用内置默认值。
func (l *Loader) LoadBase(globalPath string) (*Context, error) {
	base := Default()
	if globalPath == "" {
		return base, nil
	}

	created, err := EnsureGlobal(l.fs, globalPath)
	if err != nil {
		l.logger.WithError(err).Warnf("could not write default configuration to %s", globalPath)
		return base, nil
	}
	if created {
		l.logger.Infof("wrote default configuration to %s", globalPath)
	}

	global, err := l.Load(globalPath)
	if err != nil {
		return nil, err
	}

	return Merge(base, global), nil
}
