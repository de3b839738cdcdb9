// Package report 提供 cascloc 的输出能力。
// 当前实现支持 table 控制台格式、JSON 与 YAML 格式（含文件导出）。
package report

import (
	"encoding/json"
	"fmt"
	"io"
	"path/filepath"
	"strconv"
	"strings"

	"cascloc/internal/errors"
	"cascloc/internal/model"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
	"github.com/spf13/afero"
	"gopkg.in/yaml.v3"
)

// Format 是报告输出格式。
type Format string

const (
	FormatTable Format = "table"
	FormatJSON  Format = "json"
	FormatYAML  Format = "yaml"
)

// Formats 返回全部支持的格式，顺序固定，用于命令行帮助信息。
func Formats() []Format {
	return []Format{FormatTable, FormatJSON, FormatYAML}
}

// ParseFormat 解析格式名，大小写不敏感，"yml" 视为 yaml。
func ParseFormat(value string) (Format, error) {
	normalized := strings.ToLower(strings.TrimSpace(value))
	if normalized == "yml" {
		normalized = string(FormatYAML)
	}

	for _, format := range Formats() {
		if string(format) == normalized {
			return format, nil
		}
	}

	return "", errors.Errorf("unsupported format %q, allowed values: table, json, yaml", value)
}

var (
	headerStyle = lipgloss.NewStyle().Bold(true).Padding(0, 1)
	cellStyle   = lipgloss.NewStyle().Padding(0, 1)
	numberStyle = cellStyle.Align(lipgloss.Right)
)

var lineHeaders = []string{"FILES", "TOTAL", "EMPTY", "CODE", "COMMENT"}

// Render 按格式把报告写到 writer。
func Render(writer io.Writer, format Format, result model.Report) error {
	switch format {
	case FormatTable:
		return PrintTable(writer, result)
	case FormatJSON:
		return PrintJSON(writer, result)
	case FormatYAML:
		return PrintYAML(writer, result)
	default:
		return errors.Errorf("unsupported format %q", format)
	}
}

// PrintTable 使用表格展示扫描结果。
// 语言汇总始终输出；文件明细和失败列表仅在非空时输出。
func PrintTable(writer io.Writer, result model.Report) error {
	if _, err := fmt.Fprintf(writer, "SCANNED PATH  %s\n\n", result.Root); err != nil {
		return errors.WithStackTrace(err)
	}

	if len(result.Files) > 0 {
		files := newTable(append([]string{"FILE", "LANGUAGE"}, lineHeaders[1:]...), 2)
		for _, item := range result.Files {
			files.Row(append([]string{item.Path, item.Record.Language}, lineCells(item.Record)[1:]...)...)
		}
		if _, err := fmt.Fprintf(writer, "%s\n\n", files.Render()); err != nil {
			return errors.WithStackTrace(err)
		}
	}

	languages := newTable(append([]string{"LANGUAGE"}, lineHeaders...), 1)
	for _, item := range result.Sorted() {
		languages.Row(append([]string{item.Language}, lineCells(item)...)...)
	}
	languages.Row(append([]string{strings.ToUpper(model.TotalsKey)}, lineCells(result.Totals())...)...)
	if _, err := fmt.Fprintln(writer, languages.Render()); err != nil {
		return errors.WithStackTrace(err)
	}

	if len(result.Failures) > 0 {
		failures := newTable([]string{"ERROR FILE", "MESSAGE"}, 2)
		for _, item := range result.Failures {
			failures.Row(item.Path, item.Error)
		}
		if _, err := fmt.Fprintf(writer, "\n%s\n", failures.Render()); err != nil {
			return errors.WithStackTrace(err)
		}
	}

	return nil
}

// newTable 创建带表头的表格，textColumns 之后的列右对齐。
func newTable(headers []string, textColumns int) *table.Table {
	return table.New().
		Border(lipgloss.NormalBorder()).
		Headers(headers...).
		StyleFunc(func(row int, col int) lipgloss.Style {
			switch {
			case row == table.HeaderRow:
				return headerStyle
			case col >= textColumns:
				return numberStyle
			default:
				return cellStyle
			}
		})
}

func lineCells(record model.LineRecord) []string {
	return []string{
		strconv.FormatInt(record.Files, 10),
		strconv.FormatInt(record.Total, 10),
		strconv.FormatInt(record.Empty, 10),
		strconv.FormatInt(record.Code, 10),
		strconv.FormatInt(record.Comment, 10),
	}
}

// PrintJSON 把扫描结果按易读 JSON 输出到任意 writer。
func PrintJSON(writer io.Writer, result model.Report) error {
	content, err := marshal(FormatJSON, result)
	if err != nil {
		return err
	}

	if _, err := writer.Write(content); err != nil {
		return errors.WithStackTraceAndPrefix(err, "write json")
	}
	return nil
}

// PrintYAML 把扫描结果按 YAML 输出到任意 writer。
func PrintYAML(writer io.Writer, result model.Report) error {
	content, err := marshal(FormatYAML, result)
	if err != nil {
		return err
	}

	if _, err := writer.Write(content); err != nil {
		return errors.WithStackTraceAndPrefix(err, "write yaml")
	}
	return nil
}

// WriteFile 将结果按指定格式导出到 path。
// 如果目录不存在会自动创建。
func WriteFile(fs afero.Fs, path string, format Format, result model.Report) error {
	var builder strings.Builder
	if err := Render(&builder, format, result); err != nil {
		return err
	}

	directory := filepath.Dir(path)
	if directory != "." && directory != "" {
		if err := fs.MkdirAll(directory, 0o755); err != nil {
			return errors.WithStackTraceAndPrefix(err, "create output directory")
		}
	}

	if err := afero.WriteFile(fs, path, []byte(builder.String()), 0o644); err != nil {
		return errors.WithStackTraceAndPrefix(err, "write output file")
	}
	return nil
}

func marshal(format Format, result model.Report) ([]byte, error) {
	switch format {
	case FormatJSON:
		content, err := json.MarshalIndent(result, "", "  ")
		if err != nil {
			return nil, errors.WithStackTraceAndPrefix(err, "marshal json")
		}
		return append(content, '\n'), nil
	case FormatYAML:
		content, err := yaml.Marshal(result)
		if err != nil {
			return nil, errors.WithStackTraceAndPrefix(err, "marshal yaml")
		}
		return content, nil
	default:
		return nil, errors.Errorf("unsupported format %q", format)
	}
}
