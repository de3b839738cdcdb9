// Package config 负责配置上下文：语言表、忽略规则与隐藏文件开关，
// 以及配置来源的解码、层叠合并和配置文件加载。
package config

import (
	"slices"

	"cascloc/internal/languages"
)

// Context 是某个子树生效的配置快照。
// Context 构造后只读，层叠时由 Merge 生成新的 Context，因此可以安全地在并发任务间共享。
type Context struct {
	catalog      *languages.Catalog
	rules        []Rule
	ignoreHidden bool
	hiddenSet    bool
}

// NewContext 创建空上下文：没有语言、没有忽略规则，默认忽略隐藏文件。
func NewContext() *Context {
	return &Context{
		catalog:      languages.NewCatalog(),
		ignoreHidden: true,
	}
}

// Catalog 返回后缀到语言的映射。
func (c *Context) Catalog() *languages.Catalog {
	return c.catalog
}

// Rules 返回按声明顺序排列的忽略规则副本。
func (c *Context) Rules() []Rule {
	return slices.Clone(c.rules)
}

// IgnoreHidden 报告是否忽略以 . 开头的文件与目录。
func (c *Context) IgnoreHidden() bool {
	return c.ignoreHidden
}

// Reincludes 报告是否有 ! 取反规则可能命中 dir（相对路径）下的条目。
// 被规则排除的目录只有在返回 true 时才需要继续遍历。
func (c *Context) Reincludes(dir string) bool {
	for _, rule := range c.rules {
		if rule.Include && rule.Reaches(dir) {
			return true
		}
	}
	return false
}

// WithIgnoreHidden 返回显式设置了隐藏文件开关的上下文，常用于命令行覆盖。
func WithIgnoreHidden(value bool) *Context {
	ctx := NewContext()
	ctx.ignoreHidden = value
	ctx.hiddenSet = true
	return ctx
}

// Merge 把 incoming 叠加到 base 上并返回新的上下文，两个输入都不会被修改。
//
//   - incoming 中的后缀覆盖 base 中的同名后缀，其余后缀保留
//   - incoming 中与 base 同模式的规则替换旧规则并移动到末尾，使更深层的配置优先
//   - 只有 incoming 显式设置时才覆盖 ignoreHidden
func Merge(base *Context, incoming *Context) *Context {
	if base == nil {
		base = NewContext()
	}
	if incoming == nil {
		return base
	}

	merged := &Context{
		catalog:      base.catalog.Overlay(incoming.catalog),
		rules:        slices.Clone(base.rules),
		ignoreHidden: base.ignoreHidden,
		hiddenSet:    base.hiddenSet,
	}

	for _, rule := range incoming.rules {
		merged.rules = slices.DeleteFunc(merged.rules, func(existing Rule) bool {
			return existing.Pattern == rule.Pattern
		})
		merged.rules = append(merged.rules, rule)
	}

	if incoming.hiddenSet {
		merged.ignoreHidden = incoming.ignoreHidden
		merged.hiddenSet = true
	}

	return merged
}
