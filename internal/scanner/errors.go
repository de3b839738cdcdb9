package scanner

import "fmt"

// PathError 表示扫描根路径不存在或类型不符合要求，属于致命错误。
type PathError struct {
	Path   string
	Reason string
	Err    error
}

func (err PathError) Error() string {
	if err.Err != nil {
		return fmt.Sprintf("path %s: %s: %v", err.Path, err.Reason, err.Err)
	}
	return fmt.Sprintf("path %s: %s", err.Path, err.Reason)
}

func (err PathError) Unwrap() error {
	return err.Err
}

// FileIOError 表示单个文件或目录在扫描过程中无法读取。
// 该错误不会中断扫描，而是记录到报告的失败列表中。
type FileIOError struct {
	Path string
	Err  error
}

func (err FileIOError) Error() string {
	return fmt.Sprintf("read %s: %v", err.Path, err.Err)
}

func (err FileIOError) Unwrap() error {
	return err.Err
}
