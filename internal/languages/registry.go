package languages

import (
	"maps"
	"sort"
)

// Descriptor 用于对外展示语言及当前映射到它的后缀。
type Descriptor struct {
	Name       string
	Extensions []string
	Language   *Language
}

// Catalog 管理后缀到语言描述符的映射。
// Catalog 一经构造即只读；叠加配置时通过 Overlay 生成新的 Catalog。
type Catalog struct {
	byExt map[string]*Language
}

// NewCatalog 按顺序注册语言，后注册的语言覆盖相同后缀。
func NewCatalog(languages ...*Language) *Catalog {
	catalog := &Catalog{byExt: make(map[string]*Language)}
	for _, language := range languages {
		for _, ext := range language.Extensions {
			catalog.byExt[ext] = language
		}
	}
	return catalog
}

// Overlay 返回一个新 Catalog：保留当前全部后缀，再用 other 的后缀覆盖。
func (c *Catalog) Overlay(other *Catalog) *Catalog {
	merged := &Catalog{byExt: make(map[string]*Language, c.Len()+other.Len())}
	if c != nil {
		maps.Copy(merged.byExt, c.byExt)
	}
	if other != nil {
		maps.Copy(merged.byExt, other.byExt)
	}
	return merged
}

// Len 返回已映射的后缀数量。
func (c *Catalog) Len() int {
	if c == nil {
		return 0
	}
	return len(c.byExt)
}

// Lookup 按后缀查找语言，后缀会先被规范化。
func (c *Catalog) Lookup(ext string) (*Language, bool) {
	if c == nil {
		return nil, false
	}
	language, ok := c.byExt[NormalizeExtension(ext)]
	return language, ok
}

// ForFile 根据文件后缀查找语言。
func (c *Catalog) ForFile(path string) (*Language, bool) {
	return c.Lookup(ExtensionOf(path))
}

// Languages 返回去重后的语言清单，按语言名排序。
// 后缀列表取自当前映射，而不是语言声明时的后缀，因为部分后缀可能已被更深层配置覆盖。
func (c *Catalog) Languages() []Descriptor {
	if c == nil {
		return nil
	}

	byLanguage := make(map[*Language][]string)
	for ext, language := range c.byExt {
		byLanguage[language] = append(byLanguage[language], ext)
	}

	result := make([]Descriptor, 0, len(byLanguage))
	for language, extensions := range byLanguage {
		sort.Strings(extensions)
		result = append(result, Descriptor{Name: language.Name, Extensions: extensions, Language: language})
	}

	sort.Slice(result, func(i int, j int) bool {
		if result[i].Name == result[j].Name {
			return result[i].Extensions[0] < result[j].Extensions[0]
		}
		return result[i].Name < result[j].Name
	})

	return result
}
