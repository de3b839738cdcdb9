package config

import (
	"slices"

	"cascloc/internal/languages"
)

// defaultIgnore 是内置的忽略规则。
var defaultIgnore = []string{"node_modules/", "vendor/"}

// DefaultSource 返回内置默认配置，生成全局配置文件时按此写出。
func DefaultSource() *Source {
	builtin := languages.Builtin()

	source := &Source{
		Languages: make([]LanguageSource, 0, len(builtin)),
		Ignore:    append([]string(nil), defaultIgnore...),
	}

	ignoreHidden := true
	source.IgnoreHidden = &ignoreHidden

	for _, language := range builtin {
		escaped := slices.DeleteFunc(slices.Clone(language.StringDelimiters), func(delimiter string) bool {
			return slices.Contains(language.RawStringDelimiters, delimiter)
		})

		source.Languages = append(source.Languages, LanguageSource{
			Name:                language.Name,
			Extensions:          append([]string(nil), language.Extensions...),
			LineComment:         language.LineComment,
			BlockCommentBegin:   language.BlockCommentBegin,
			BlockCommentEnd:     language.BlockCommentEnd,
			StringDelimiters:    escaped,
			EscapeCharacter:     language.EscapeCharacter,
			RawStringDelimiters: slices.Clone(language.RawStringDelimiters),
		})
	}

	return source
}

// Default 返回由内置默认配置构造的上下文。
func Default() *Context {
	ctx, err := DefaultSource().Build("builtin")
	if err != nil {
		// 内置配置由代码固定，构造失败只可能是编程错误。
		panic(err)
	}
	return ctx
}
