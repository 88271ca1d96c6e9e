package web

import (
	"bytes"
	"html/template"

	"github.com/yuin/goldmark"
)

// md renders assistant replies. Raw HTML in the source is omitted by
// goldmark's default renderer.
var md = goldmark.New()

func renderMarkdown(source string) template.HTML {
	var buf bytes.Buffer
	if err := md.Convert([]byte(source), &buf); err != nil {
		return template.HTML(template.HTMLEscapeString(source))
	}
	return template.HTML(buf.String())
}
