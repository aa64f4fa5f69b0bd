package components

import (
	"strings"

	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/extension"
)

// md renders free-text answer and note content. Raw HTML in the source is
// omitted by goldmark's default renderer, so untrusted transcript text cannot
// inject markup.
var md = goldmark.New(goldmark.WithExtensions(extension.GFM))

// renderMarkdown converts transcript free text to HTML. Falls back to an
// escaped <pre> block if conversion fails.
func renderMarkdown(src string) string {
	var out strings.Builder
	if err := md.Convert([]byte(src), &out); err != nil {
		return "<pre>" + esc(src) + "</pre>"
	}
	return out.String()
}
