package model

import (
	"sort"

	"cascloc/internal/errors"
)

// FileRecord 表示单文件扫描结果，仅在调用方要求保留文件明细时产生。
type FileRecord struct {
	Path   string     `json:"path" yaml:"path"`
	Record LineRecord `json:"record" yaml:"record"`
}

// FileFailure 记录单文件读取失败信息。
// 单文件失败不阻断整体扫描，最终与成功结果一起汇报。
type FileFailure struct {
	Path  string `json:"path" yaml:"path"`
	Error string `json:"error" yaml:"error"`
}

// Stats 记录遍历阶段的观测数据。
type Stats struct {
	Discovered int64 `json:"discovered" yaml:"discovered"`
	Ignored    int64 `json:"ignored" yaml:"ignored"`
	Configs    int64 `json:"configs" yaml:"configs"`
}

// Report 是一次扫描的完整输出（不含渲染）。
// Languages 以语言名为键，并额外包含 TotalsKey 对应的全局总计。
type Report struct {
	Root      string                `json:"root" yaml:"root"`
	Languages map[string]LineRecord `json:"languages" yaml:"languages"`
	Files     []FileRecord          `json:"files,omitempty" yaml:"files,omitempty"`
	Failures  []FileFailure         `json:"failures" yaml:"failures"`
	Stats     Stats                 `json:"stats" yaml:"stats"`

	failed *errors.MultiError
}

// NewReport 创建空报告。
func NewReport(root string) Report {
	return Report{
		Root:      root,
		Languages: make(map[string]LineRecord),
		Failures:  make([]FileFailure, 0),
	}
}

// Totals 返回全局总计。
func (r Report) Totals() LineRecord {
	return r.Languages[TotalsKey]
}

// Sorted 返回按语言名排序、不含总计的语言记录。
func (r Report) Sorted() []LineRecord {
	result := make([]LineRecord, 0, len(r.Languages))
	for name, record := range r.Languages {
		if name == TotalsKey {
			continue
		}
		result = append(result, record)
	}

	sort.Slice(result, func(i int, j int) bool {
		return result[i].Language < result[j].Language
	})

	return result
}

// AddFailure 记录一个单文件失败。
func (r *Report) AddFailure(path string, err error) {
	r.Failures = append(r.Failures, FileFailure{Path: path, Error: err.Error()})
	r.failed = r.failed.Append(err)
}

// Finalize 对明细和失败列表排序，使输出与任务完成顺序无关。
func (r *Report) Finalize() {
	sort.Slice(r.Files, func(i int, j int) bool {
		return r.Files[i].Path < r.Files[j].Path
	})

	sort.Slice(r.Failures, func(i int, j int) bool {
		return r.Failures[i].Path < r.Failures[j].Path
	})
}

// Err 返回聚合后的单文件失败；没有失败时返回 nil。
func (r Report) Err() error {
	return r.failed.ErrorOrNil()
}
