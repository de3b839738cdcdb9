package config

import (
	"sort"
	"strings"

	"cascloc/internal/errors"
	"cascloc/internal/languages"

	"github.com/mitchellh/mapstructure"
)

// Source 是解码后的配置来源，字段与配置文件中的键一一对应。
type Source struct {
	Languages    []LanguageSource `mapstructure:"languages" yaml:"languages,omitempty"`
	Ignore       []string         `mapstructure:"ignore" yaml:"ignore,omitempty"`
	IgnoreHidden *bool            `mapstructure:"ignoreHidden" yaml:"ignoreHidden,omitempty"`
}

// LanguageSource 描述配置文件中的一种语言。escapeCharacter 为空表示字符串不处理转义。
type LanguageSource struct {
	Name                string   `mapstructure:"name" yaml:"name"`
	Extensions          []string `mapstructure:"extensions" yaml:"extensions,flow"`
	LineComment         string   `mapstructure:"lineComment" yaml:"lineComment,omitempty"`
	BlockCommentBegin   string   `mapstructure:"blockCommentBegin" yaml:"blockCommentBegin,omitempty"`
	BlockCommentEnd     string   `mapstructure:"blockCommentEnd" yaml:"blockCommentEnd,omitempty"`
	StringDelimiters    []string `mapstructure:"stringDelimiters" yaml:"stringDelimiters,flow,omitempty"`
	EscapeCharacter     string   `mapstructure:"escapeCharacter" yaml:"escapeCharacter,omitempty"`
	RawStringDelimiters []string `mapstructure:"rawStringDelimiters" yaml:"rawStringDelimiters,flow,omitempty"`
}

// DecodeSource 把已经解析好的配置值（通常来自 YAML/JSON）解码为 Source。
// 返回值中的 unused 列出未识别的键，调用方可以据此给出提示，未知键本身不是错误。
func DecodeSource(value any) (source *Source, unused []string, err error) {
	source = &Source{}
	if value == nil {
		return source, nil, nil
	}

	var metadata mapstructure.Metadata
	decoder, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{
		Metadata: &metadata,
		Result:   source,
	})
	if err != nil {
		return nil, nil, errors.WithStackTrace(err)
	}

	if err := decoder.Decode(value); err != nil {
		return nil, nil, errors.WithStackTrace(err)
	}

	sort.Strings(metadata.Unused)
	return source, metadata.Unused, nil
}

// Build 校验 Source 并构造 Context。origin 用于错误信息定位。
func (s *Source) Build(origin string) (*Context, error) {
	ctx := NewContext()

	declared := make([]*languages.Language, 0, len(s.Languages))
	for idx, item := range s.Languages {
		name := strings.TrimSpace(item.Name)
		if name == "" {
			return nil, ConfigError{Path: origin, Err: errors.Errorf("languages[%d]: name is required", idx)}
		}
		if len(item.Extensions) == 0 {
			return nil, ConfigError{Path: origin, Err: errors.Errorf("language %q: at least one extension is required", name)}
		}
		if (item.BlockCommentBegin == "") != (item.BlockCommentEnd == "") {
			return nil, ConfigError{Path: origin, Err: errors.Errorf("language %q: blockCommentBegin and blockCommentEnd must be set together", name)}
		}

		declared = append(declared, languages.New(
			name,
			item.Extensions,
			item.LineComment,
			item.BlockCommentBegin,
			item.BlockCommentEnd,
			item.StringDelimiters,
			languages.WithEscape(item.EscapeCharacter),
			languages.WithRawStrings(item.RawStringDelimiters...),
		))
	}
	ctx.catalog = languages.NewCatalog(declared...)

	for _, raw := range s.Ignore {
		rule, err := ParseRule(raw)
		if err != nil {
			return nil, ConfigError{Path: origin, Err: err}
		}
		// 同一来源内重复的模式以最后一次出现为准。
		ctx = Merge(ctx, &Context{rules: []Rule{rule}})
	}

	if s.IgnoreHidden != nil {
		ctx.ignoreHidden = *s.IgnoreHidden
		ctx.hiddenSet = true
	}

	return ctx, nil
}

// FromSource 解码并构造 Context，未知键被忽略。
func FromSource(value any, origin string) (*Context, error) {
	source, _, err := DecodeSource(value)
	if err != nil {
		return nil, ConfigError{Path: origin, Err: err}
	}
	return source.Build(origin)
}
