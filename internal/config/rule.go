package config

import (
	"path"
	"strings"

	"cascloc/internal/errors"

	"github.com/gobwas/glob"
)

// globMeta 中的任意字符出现在模式里时，该模式按 glob 匹配，否则按子串匹配。
const globMeta = "*?[{"

// Rule 是一条忽略规则。Include 为 true 表示 ! 取反规则，强制包含。
type Rule struct {
	Pattern string
	Include bool

	matcher  glob.Glob
	baseOnly bool
}

// ParseRule 解析一条忽略规则字符串，前导 ! 表示取反。
func ParseRule(raw string) (Rule, error) {
	pattern := strings.TrimSpace(raw)
	include := strings.HasPrefix(pattern, "!")
	if include {
		pattern = strings.TrimSpace(pattern[1:])
	}
	if pattern == "" {
		return Rule{}, errors.Errorf("empty ignore pattern %q", raw)
	}

	rule := Rule{Pattern: pattern, Include: include}
	if !strings.ContainsAny(pattern, globMeta) {
		return rule, nil
	}

	matcher, err := glob.Compile(pattern, '/')
	if err != nil {
		return Rule{}, errors.WithStackTraceAndPrefix(err, "compile ignore pattern %q", pattern)
	}

	rule.matcher = matcher
	// 不含路径分隔符的 glob（如 *.log）只匹配文件名，与 .gitignore 的习惯一致。
	rule.baseOnly = !strings.Contains(pattern, "/")

	return rule, nil
}

// Matches 判断规则是否命中相对路径。rel 使用 / 作为分隔符，目录以 / 结尾。
func (r Rule) Matches(rel string) bool {
	if r.matcher == nil {
		return strings.Contains(rel, r.Pattern)
	}

	if r.baseOnly {
		return r.matcher.Match(path.Base(strings.TrimSuffix(rel, "/")))
	}

	return r.matcher.Match(rel) || r.matcher.Match(strings.TrimSuffix(rel, "/"))
}

// Reaches 判断规则能否命中目录 dir 之下的某个条目。dir 是不带结尾 / 的相对路径。
func (r Rule) Reaches(dir string) bool {
	// 只看文件名的 glob 和不含 / 的子串可以命中任意深度的条目。
	if r.baseOnly || !strings.Contains(r.Pattern, "/") {
		return true
	}

	subject := strings.Trim(dir, "/") + "/"
	pattern := strings.TrimPrefix(r.Pattern, "/")

	if r.matcher != nil {
		// glob 按完整相对路径匹配，只比较第一个通配符之前的字面前缀。
		if cut := strings.IndexAny(pattern, globMeta); cut >= 0 {
			pattern = pattern[:cut]
		}
		return strings.HasPrefix(pattern, subject) || strings.HasPrefix(subject, pattern)
	}

	// 子串规则可以从 dir 的任意一段开始命中，如 build/keep.txt 命中 src/build/keep.txt。
	for start := 0; start < len(subject); {
		if strings.HasPrefix(pattern, subject[start:]) {
			return true
		}
		next := strings.IndexByte(subject[start:], '/')
		if next < 0 {
			break
		}
		start += next + 1
	}
	return false
}

// String 返回规则在配置文件中的写法。
func (r Rule) String() string {
	if r.Include {
		return "!" + r.Pattern
	}
	return r.Pattern
}
