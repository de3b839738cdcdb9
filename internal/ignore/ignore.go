// Package ignore 根据配置上下文判定路径是否参与统计。
package ignore

import (
	"path"
	"path/filepath"
	"strings"

	"cascloc/internal/config"
)

// Decision 是一次判定的结果。
type Decision uint8

const (
	// Included 表示路径参与统计。
	Included Decision = iota
	// Reserved 表示路径是保留的配置文件。
	Reserved
	// Hidden 表示路径中某一段以 . 开头且配置要求忽略隐藏文件。
	Hidden
	// ByRule 表示最后命中的忽略规则排除了该路径。
	ByRule
)

func (d Decision) String() string {
	switch d {
	case Included:
		return "included"
	case Reserved:
		return "reserved"
	case Hidden:
		return "hidden"
	case ByRule:
		return "rule"
	default:
		return "unknown"
	}
}

// Resolver 绑定一个配置上下文进行判定。Resolver 只读，可并发使用。
type Resolver struct {
	ctx *config.Context
}

// NewResolver 创建判定器。
func NewResolver(ctx *config.Context) *Resolver {
	return &Resolver{ctx: ctx}
}

// Decide 判定相对于遍历根目录的路径 rel。
//
// 判定顺序：保留配置文件 → 隐藏文件（不可被取反规则覆盖）→ 最后一条命中的忽略规则。
// 没有任何规则命中时默认包含。
func (r *Resolver) Decide(rel string, isDir bool) Decision {
	rel = Normalize(rel)
	if rel == "" {
		return Included
	}

	if !isDir && path.Base(rel) == config.FileName {
		return Reserved
	}

	if r.ctx.IgnoreHidden() && IsHidden(rel) {
		return Hidden
	}

	subject := rel
	if isDir {
		subject += "/"
	}

	decision := Included
	for _, rule := range r.ctx.Rules() {
		if !rule.Matches(subject) {
			continue
		}
		if rule.Include {
			decision = Included
		} else {
			decision = ByRule
		}
	}

	return decision
}

// Ignored 是 Decide 的布尔简写。
func (r *Resolver) Ignored(rel string, isDir bool) bool {
	return r.Decide(rel, isDir) != Included
}

// Normalize 把路径转换为 / 分隔、无前导 ./ 和尾部 / 的形式。
func Normalize(rel string) string {
	rel = filepath.ToSlash(rel)
	rel = strings.TrimPrefix(rel, "./")
	rel = strings.Trim(rel, "/")
	if rel == "." {
		return ""
	}
	return rel
}

// IsHidden 判断路径中是否有任意一段以 . 开头。
func IsHidden(rel string) bool {
	for _, segment := range strings.Split(Normalize(rel), "/") {
		if strings.HasPrefix(segment, ".") && segment != "." && segment != ".." {
			return true
		}
	}
	return false
}
