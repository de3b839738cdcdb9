package languages

var cStyleStrings = []string{`"`, `'`}

// backslash 是多数语言的字符串转义记号。
var backslash = WithEscape(`\`)

// Builtin 返回内置语言表。
// 全局配置文件缺失时会以此为基础生成默认配置。
func Builtin() []*Language {
	return []*Language{
		New("C/C++", []string{".c", ".cc", ".cpp", ".cxx", ".c++", ".h", ".hh", ".hpp", ".hxx", ".inl"}, "//", "/*", "*/", cStyleStrings, backslash),
		New("C#", []string{".cs"}, "//", "/*", "*/", cStyleStrings, backslash),
		New("Go", []string{".go"}, "//", "/*", "*/", cStyleStrings, backslash, WithRawStrings("`")),
		New("Java", []string{".java"}, "//", "/*", "*/", cStyleStrings, backslash),
		New("JavaScript", []string{".js", ".mjs", ".cjs", ".jsx"}, "//", "/*", "*/", []string{`"`, "'", "`"}, backslash),
		New("TypeScript", []string{".ts", ".tsx"}, "//", "/*", "*/", []string{`"`, "'", "`"}, backslash),
		New("Kotlin", []string{".kt", ".kts"}, "//", "/*", "*/", cStyleStrings, backslash, WithRawStrings(`"""`)),
		New("Swift", []string{".swift"}, "//", "/*", "*/", []string{`"""`, `"`}, backslash),
		New("Rust", []string{".rs"}, "//", "/*", "*/", []string{`"`}, backslash),
		New("CSS", []string{".css", ".scss", ".less"}, "", "/*", "*/", cStyleStrings, backslash),
		New("Lua", []string{".lua"}, "--", "--[[", "]]", cStyleStrings, backslash),
		// SQL 字符串用 '' 表示单引号，没有反斜杠转义。
		New("SQL", []string{".sql"}, "--", "/*", "*/", []string{"'"}),
		New("Python", []string{".py", ".pyw", ".pyi"}, "#", "", "", []string{`"""`, "'''", `"`, "'"}, backslash),
		New("Ruby", []string{".rb"}, "#", "=begin", "=end", cStyleStrings, backslash),
		New("Shell", []string{".sh", ".bash", ".zsh"}, "#", "", "", []string{`"`}, backslash, WithRawStrings("'")),
		New("YAML", []string{".yml", ".yaml"}, "#", "", "", []string{`"`}, backslash, WithRawStrings("'")),
		New("HTML", []string{".html", ".htm", ".xml", ".svg", ".vue"}, "", "<!--", "-->", cStyleStrings),
	}
}
