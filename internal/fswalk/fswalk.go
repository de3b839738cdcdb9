// Package fswalk 基于 afero 枚举文件系统条目。
// 目录按需逐层读取，调用方决定是否继续深入，避免被忽略的大目录（如 node_modules）被完整枚举。
package fswalk

import (
	"os"
	"path/filepath"

	"cascloc/internal/errors"

	"github.com/spf13/afero"
)

// Entry 描述一个文件系统条目。是否隐藏由 ignore 包按相对路径判定。
type Entry struct {
	Path  string
	Name  string
	IsDir bool
	// IsRegular 为 false 表示符号链接、设备文件等不参与统计的条目。
	IsRegular bool
}

func newEntry(path string, info os.FileInfo) Entry {
	return Entry{
		Path:      path,
		Name:      info.Name(),
		IsDir:     info.IsDir(),
		IsRegular: info.Mode().IsRegular(),
	}
}

// Stat 返回单个路径的条目信息。
func Stat(fs afero.Fs, path string) (Entry, error) {
	info, err := fs.Stat(path)
	if err != nil {
		return Entry{}, errors.WithStackTrace(err)
	}

	entry := newEntry(path, info)
	// Stat 对根路径 "." 之类返回的名称不可靠，以路径本身为准。
	entry.Name = filepath.Base(path)
	return entry, nil
}

// ReadDir 返回目录下按名称排序的直接子条目。
func ReadDir(fs afero.Fs, dir string) ([]Entry, error) {
	infos, err := afero.ReadDir(fs, dir)
	if err != nil {
		return nil, errors.WithStackTrace(err)
	}

	entries := make([]Entry, 0, len(infos))
	for _, info := range infos {
		entries = append(entries, newEntry(filepath.Join(dir, info.Name()), info))
	}
	return entries, nil
}
