// Package model 定义 cascloc 的核心数据模型。
// 这些结构会被分类器、扫描流水线、输出层和命令层共同使用。
package model

// PlainText 是未能解析出语言的文件在报告中的语言名。
const PlainText = "Plain Text"

// TotalsKey 是报告中全局总计使用的保留键。
const TotalsKey = "Totals"

// LineRecord 表示一组行级统计值，可以描述单个文件，也可以描述某个语言或全局的聚合结果。
//
// 注意：
// - 对已识别语言的文件，Empty + Code + Comment == Total
// - 对未识别语言的文件，只有 Total/Empty 有意义，Code/Comment 恒为 0
// - 计数字段在 Add 下满足交换律与结合律，零值是单位元，聚合顺序不会影响结果
// - Language 是分桶标签，不参与上述运算律，见 Add
type LineRecord struct {
	Language string `json:"language" yaml:"language"`
	Files    int64  `json:"files" yaml:"files"`
	Total    int64  `json:"total" yaml:"total"`
	Empty    int64  `json:"empty" yaml:"empty"`
	Code     int64  `json:"code" yaml:"code"`
	Comment  int64  `json:"comment" yaml:"comment"`
}

// Add 返回两个记录逐字段相加的结果。
// 语言名取接收者的值，接收者为空时取 other 的值。聚合时调用方按语言分桶，
// 桶内所有记录的语言名一致；总计以 TotalsKey 为接收者累加不同语言的记录。
func (r LineRecord) Add(other LineRecord) LineRecord {
	language := r.Language
	if language == "" {
		language = other.Language
	}

	return LineRecord{
		Language: language,
		Files:    r.Files + other.Files,
		Total:    r.Total + other.Total,
		Empty:    r.Empty + other.Empty,
		Code:     r.Code + other.Code,
		Comment:  r.Comment + other.Comment,
	}
}

// Classified 判断记录是否完整分类（空行、代码、注释之和等于总行数）。
func (r LineRecord) Classified() bool {
	return r.Empty+r.Code+r.Comment == r.Total
}

// IsZero 判断是否为单位元。
func (r LineRecord) IsZero() bool {
	return r == LineRecord{}
}
