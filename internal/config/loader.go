package config

import (
	"os"
	"path/filepath"
	"time"

	"cascloc/internal/errors"

	lru "github.com/hashicorp/golang-lru/v2"
	"github.com/sirupsen/logrus"
	"github.com/spf13/afero"
	"gopkg.in/yaml.v3"
)

// FileName 是每个目录下自动发现的配置文件名。
const FileName = ".cascloc.yml"

// cacheSize 是 Loader 缓存的已解析配置文件数量上限。
const cacheSize = 512

type cachedContext struct {
	modTime time.Time
	size    int64
	ctx     *Context
}

// Loader 通过 afero 读取配置文件并解析为 Context。
// 已解析的文件按路径缓存，命中时用修改时间与大小校验是否过期。
type Loader struct {
	fs     afero.Fs
	logger logrus.FieldLogger
	cache  *lru.Cache[string, cachedContext]
}

// NewLoader 创建配置加载器。
func NewLoader(fs afero.Fs, logger logrus.FieldLogger) *Loader {
	cache, err := lru.New[string, cachedContext](cacheSize)
	if err != nil {
		// 只有 size <= 0 时才会出错。
		panic(err)
	}

	return &Loader{fs: fs, logger: logger, cache: cache}
}

// Load 读取并解析指定配置文件。文件不存在或格式错误都返回 ConfigError。
func (l *Loader) Load(path string) (*Context, error) {
	info, err := l.fs.Stat(path)
	if err != nil {
		return nil, ConfigError{Path: path, Err: errors.WithStackTrace(err)}
	}
	if info.IsDir() {
		return nil, ConfigError{Path: path, Err: errors.New("is a directory")}
	}

	if cached, ok := l.cache.Get(path); ok && cached.modTime.Equal(info.ModTime()) && cached.size == info.Size() {
		return cached.ctx, nil
	}

	data, err := afero.ReadFile(l.fs, path)
	if err != nil {
		return nil, ConfigError{Path: path, Err: errors.WithStackTrace(err)}
	}

	ctx, err := l.parse(data, path)
	if err != nil {
		return nil, err
	}

	l.cache.Add(path, cachedContext{modTime: info.ModTime(), size: info.Size(), ctx: ctx})
	return ctx, nil
}

// LoadDir 查找目录下的 FileName。文件不存在时 found 为 false 且没有错误。
func (l *Loader) LoadDir(dir string) (ctx *Context, found bool, err error) {
	path := filepath.Join(dir, FileName)

	exists, err := afero.Exists(l.fs, path)
	if err != nil {
		return nil, false, ConfigError{Path: path, Err: errors.WithStackTrace(err)}
	}
	if !exists {
		return nil, false, nil
	}

	ctx, err = l.Load(path)
	if err != nil {
		return nil, false, err
	}
	return ctx, true, nil
}

func (l *Loader) parse(data []byte, origin string) (*Context, error) {
	value, err := Parse(data)
	if err != nil {
		return nil, ConfigError{Path: origin, Err: err}
	}

	source, unused, err := DecodeSource(value)
	if err != nil {
		return nil, ConfigError{Path: origin, Err: err}
	}

	for _, key := range unused {
		l.logger.WithField("path", origin).Warnf("unknown configuration key %q ignored", key)
	}

	return source.Build(origin)
}

// Parse 把 YAML 或 JSON 文本解析为通用的配置值。空文档返回 nil。
func Parse(data []byte) (map[string]any, error) {
	var value map[string]any
	if err := yaml.Unmarshal(data, &value); err != nil {
		return nil, errors.WithStackTrace(err)
	}
	return value, nil
}

// WriteSource 把配置以 YAML 写入 path，父目录不存在时自动创建。
func WriteSource(fs afero.Fs, path string, source *Source) error {
	content, err := yaml.Marshal(source)
	if err != nil {
		return errors.WithStackTraceAndPrefix(err, "marshal configuration")
	}

	if dir := filepath.Dir(path); dir != "." && dir != "" {
		if err := fs.MkdirAll(dir, 0o755); err != nil {
			return errors.WithStackTraceAndPrefix(err, "create configuration directory")
		}
	}

	if err := afero.WriteFile(fs, path, content, os.FileMode(0o644)); err != nil {
		return errors.WithStackTraceAndPrefix(err, "write configuration %s", path)
	}
	return nil
}
