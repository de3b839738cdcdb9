// Package languages 定义语言描述符与按后缀查找语言的目录（Catalog）。
package languages

import (
	"path/filepath"
	"slices"
	"sort"
	"strings"
)

// Language 描述一种语言的注释与字符串记号。
// 构造后不可变，同一语言的多个后缀共享同一个 *Language。
// 任意记号为空表示该语言不支持对应结构，分类器不会触发相应的状态转移。
type Language struct {
	Name              string
	Extensions        []string
	LineComment       string
	BlockCommentBegin string
	BlockCommentEnd   string
	// StringDelimiters 按长度降序排列，保证 """ 先于 " 匹配。包含 RawStringDelimiters。
	StringDelimiters []string
	// EscapeCharacter 为空表示字符串内没有转义。
	EscapeCharacter string
	// RawStringDelimiters 打开的字符串不处理转义，例如 Go 的 ` 与 Kotlin 的 """。
	RawStringDelimiters []string
}

// Option 设置 Language 的可选记号。
type Option func(*Language)

// WithEscape 设置字符串内的转义记号。
func WithEscape(token string) Option {
	return func(l *Language) {
		l.EscapeCharacter = token
	}
}

// WithRawStrings 追加不处理转义的字符串定界符。
func WithRawStrings(delimiters ...string) Option {
	return func(l *Language) {
		l.RawStringDelimiters = append(l.RawStringDelimiters, delimiters...)
	}
}

// New 创建语言描述符并规范化后缀与字符串定界符。
func New(name string, extensions []string, lineComment string, blockBegin string, blockEnd string, delimiters []string, opts ...Option) *Language {
	normalized := make([]string, 0, len(extensions))
	for _, ext := range extensions {
		if ext = NormalizeExtension(ext); ext != "" && !slices.Contains(normalized, ext) {
			normalized = append(normalized, ext)
		}
	}

	language := &Language{
		Name:              strings.TrimSpace(name),
		Extensions:        normalized,
		LineComment:       lineComment,
		BlockCommentBegin: blockBegin,
		BlockCommentEnd:   blockEnd,
	}
	for _, opt := range opts {
		opt(language)
	}

	language.RawStringDelimiters = sortDelimiters(language.RawStringDelimiters)
	language.StringDelimiters = sortDelimiters(append(slices.Clone(delimiters), language.RawStringDelimiters...))

	return language
}

// Escapes 判断由 delimiter 打开的字符串是否处理转义。
func (l *Language) Escapes(delimiter string) bool {
	return l.EscapeCharacter != "" && !slices.Contains(l.RawStringDelimiters, delimiter)
}

// HasBlockComment 判断块注释的开始和结束记号是否都已配置。
func (l *Language) HasBlockComment() bool {
	return l.BlockCommentBegin != "" && l.BlockCommentEnd != ""
}

// NormalizeExtension 把 "CPP"、".cpp"、" cpp " 统一为 ".cpp"。
func NormalizeExtension(ext string) string {
	ext = strings.ToLower(strings.TrimSpace(ext))
	if ext == "" || ext == "." {
		return ""
	}
	if !strings.HasPrefix(ext, ".") {
		ext = "." + ext
	}
	return ext
}

// ExtensionOf 返回路径的规范化后缀，没有后缀时返回空串。
func ExtensionOf(path string) string {
	return NormalizeExtension(filepath.Ext(path))
}

// sortDelimiters 去重、剔除空串并按长度降序稳定排序。
func sortDelimiters(delimiters []string) []string {
	seen := make(map[string]struct{}, len(delimiters))
	result := make([]string, 0, len(delimiters))
	for _, delimiter := range delimiters {
		if delimiter == "" {
			continue
		}
		if _, ok := seen[delimiter]; ok {
			continue
		}
		seen[delimiter] = struct{}{}
		result = append(result, delimiter)
	}

	sort.SliceStable(result, func(i int, j int) bool {
		return len(result[i]) > len(result[j])
	})

	return result
}
