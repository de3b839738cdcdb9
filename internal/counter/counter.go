// Package counter 实现单文件的行分类状态机。
//
// 状态机只识别语言描述符中配置的注释与字符串记号，按字节扫描，
// 每个字符最多与已配置的记号各比较一次，整体复杂度为 O(n·k)，k 为最长记号长度。
package counter

import (
	"cascloc/internal/errors"
	"cascloc/internal/languages"
	"cascloc/internal/model"

	"github.com/spf13/afero"
)

type state uint8

const (
	stateNormal state = iota
	stateLineComment
	stateBlockComment
	stateString
)

// CountFile 读取文件并统计行数。lang 为 nil 时只统计总行数与空行。
func CountFile(fs afero.Fs, path string, lang *languages.Language) (model.LineRecord, error) {
	data, err := afero.ReadFile(fs, path)
	if err != nil {
		return model.LineRecord{}, errors.WithStackTrace(err)
	}

	return Count(data, lang), nil
}

// Count 对内存中的文件内容进行分类统计，不会修改 data。
func Count(data []byte, lang *languages.Language) model.LineRecord {
	engine := &lineEngine{lang: lang, data: data}
	engine.record.Files = 1
	engine.record.Language = model.PlainText
	if lang != nil {
		engine.record.Language = lang.Name
	}

	return engine.run()
}

// lineEngine 保存跨行状态与当前行的临时标记。
type lineEngine struct {
	lang   *languages.Language
	data   []byte
	record model.LineRecord

	state state
	// openedWith 是打开当前字符串的定界符，字符串只会被同一个定界符关闭。
	openedWith string

	hadNonWhitespace   bool
	hadCode            bool
	commentAtLineStart bool
	// blockCoversLine 在块注释内部跨行保留：新的一行从块注释内部开始时恒为 true。
	blockCoversLine bool
	blockJustClosed bool
}

func (e *lineEngine) run() model.LineRecord {
	for idx := 0; idx < len(e.data); {
		current := e.data[idx]

		if current == '\n' {
			e.endLine()
			idx++
			continue
		}

		if isSpace(current) {
			idx++
			continue
		}

		lineHadContent := e.hadNonWhitespace
		e.hadNonWhitespace = true
		if e.lang == nil {
			idx++
			continue
		}

		idx += e.step(idx, lineHadContent)
	}

	// 末尾没有换行符的最后一行单独计入。空缓冲区没有任何行，Total 为 0。
	if len(e.data) > 0 && e.data[len(e.data)-1] != '\n' {
		e.endLine()
	}

	return e.record
}

// step 处理 idx 处的非空白字符，返回消费的字节数。
// lineHadContent 表示本行在 idx 之前已经出现过非空白字符。
func (e *lineEngine) step(idx int, lineHadContent bool) int {
	switch e.state {
	case stateLineComment:
		return 1

	case stateString:
		e.markCode()
		// 转义记号连同下一个字节一起消费，但不吞掉换行符。
		if escape := e.lang.EscapeCharacter; e.lang.Escapes(e.openedWith) && e.matchAt(idx, escape) {
			next := idx + len(escape)
			if next < len(e.data) && e.data[next] != '\n' {
				return len(escape) + 1
			}
			return len(escape)
		}
		if delimiter := e.openedWith; e.matchAt(idx, delimiter) {
			e.state = stateNormal
			e.openedWith = ""
			return len(delimiter)
		}
		return 1

	case stateBlockComment:
		if e.matchAt(idx, e.lang.BlockCommentEnd) {
			e.state = stateNormal
			e.blockJustClosed = true
			return len(e.lang.BlockCommentEnd)
		}
		return 1
	}

	for _, delimiter := range e.lang.StringDelimiters {
		if e.matchAt(idx, delimiter) {
			e.markCode()
			e.state = stateString
			e.openedWith = delimiter
			return len(delimiter)
		}
	}

	// 块注释开始必须先于行注释检查：行注释记号可能是块注释记号的前缀（Lua 的 -- 与 --[[）。
	if e.lang.HasBlockComment() && e.matchAt(idx, e.lang.BlockCommentBegin) {
		e.state = stateBlockComment
		e.blockCoversLine = !lineHadContent
		return len(e.lang.BlockCommentBegin)
	}

	if e.lang.LineComment != "" && e.matchAt(idx, e.lang.LineComment) {
		e.state = stateLineComment
		e.commentAtLineStart = !lineHadContent
		return len(e.lang.LineComment)
	}

	e.markCode()
	return 1
}

// endLine 在换行处以及无换行结尾的最后一行上对当前行归类。
func (e *lineEngine) endLine() {
	e.record.Total++

	switch {
	case !e.hadNonWhitespace:
		e.record.Empty++
	case e.lang == nil:
	case e.state == stateLineComment:
		if e.commentAtLineStart {
			e.record.Comment++
		} else {
			e.record.Code++
		}
	case e.state == stateBlockComment:
		// 块注释开始前本行已有内容时，该行计为代码。
		if e.blockCoversLine {
			e.record.Comment++
		} else {
			e.record.Code++
		}
	case e.blockJustClosed:
		// 块注释在本行结束：结束符前后都没有代码才算注释行。
		if e.hadCode {
			e.record.Code++
		} else {
			e.record.Comment++
		}
	default:
		e.record.Code++
	}

	if e.state == stateLineComment {
		e.state = stateNormal
	}
	if e.state == stateBlockComment {
		e.blockCoversLine = true
	}

	e.hadNonWhitespace = false
	e.hadCode = false
	e.commentAtLineStart = false
	e.blockJustClosed = false
}

func (e *lineEngine) markCode() {
	e.hadCode = true
}

func (e *lineEngine) matchAt(idx int, token string) bool {
	if token == "" || len(e.data)-idx < len(token) {
		return false
	}
	return string(e.data[idx:idx+len(token)]) == token
}

func isSpace(b byte) bool {
	return b == ' ' || b == '\t' || b == '\r' || b == '\v' || b == '\f'
}
