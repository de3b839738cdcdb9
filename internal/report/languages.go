package report

import (
	"fmt"
	"io"
	"strings"

	"cascloc/internal/errors"
	"cascloc/internal/languages"
)

// PrintLanguages 展示当前生效的语言表及其记号。
func PrintLanguages(writer io.Writer, descriptors []languages.Descriptor) error {
	listing := newTable([]string{"LANGUAGE", "EXTENSIONS", "LINE", "BLOCK", "STRINGS"}, 5)
	for _, item := range descriptors {
		language := item.Language

		block := ""
		if language.HasBlockComment() {
			block = language.BlockCommentBegin + " " + language.BlockCommentEnd
		}

		listing.Row(
			item.Name,
			strings.Join(item.Extensions, ", "),
			language.LineComment,
			block,
			strings.Join(language.StringDelimiters, " "),
		)
	}

	if _, err := fmt.Fprintln(writer, listing.Render()); err != nil {
		return errors.WithStackTrace(err)
	}
	return nil
}
