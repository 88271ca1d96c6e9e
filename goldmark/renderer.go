package goldmark

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/fwojciec/folio"
	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/ast"
	"github.com/yuin/goldmark/text"
)

const (
	codeGutter  = "│ "
	quoteGutter = "▌ "
	bullet      = "• "
	minWrap     = 10
)

type terminalRenderer struct {
	bold    lipgloss.Style
	italic  lipgloss.Style
	heading lipgloss.Style
	muted   lipgloss.Style
	link    lipgloss.Style
	code    lipgloss.Style
	marker  lipgloss.Style
}

func newTerminalRenderer(theme folio.Theme) *terminalRenderer {
	accent := ansiColor(theme.Accent)
	return &terminalRenderer{
		bold:    lipgloss.NewStyle().Bold(true),
		italic:  lipgloss.NewStyle().Italic(true),
		heading: lipgloss.NewStyle().Foreground(accent).Bold(true),
		muted:   lipgloss.NewStyle().Foreground(ansiColor(theme.Muted)).Faint(true),
		link:    lipgloss.NewStyle().Foreground(accent).Underline(true),
		code:    lipgloss.NewStyle().Background(ansiColor(theme.CodeBg)).Bold(true),
		marker:  lipgloss.NewStyle().Foreground(accent),
	}
}

func ansiColor(index int) lipgloss.TerminalColor {
	if index < 0 {
		return lipgloss.NoColor{}
	}
	return lipgloss.Color(strconv.Itoa(index))
}

func (r *terminalRenderer) render(source []byte, width int) string {
	doc := goldmark.DefaultParser().Parse(text.NewReader(source))
	var out strings.Builder
	r.blocks(doc, source, width, &out)
	return strings.TrimRight(out.String(), "\n")
}

func wrap(s string, width int) string {
	return lipgloss.NewStyle().Width(max(width, minWrap)).Render(s)
}

// blocks renders every block child of parent, separating siblings with a
// blank line.
func (r *terminalRenderer) blocks(parent ast.Node, source []byte, width int, out *strings.Builder) {
	for n := parent.FirstChild(); n != nil; n = n.NextSibling() {
		before := out.Len()
		r.block(n, source, width, out)
		if out.Len() > before && n.NextSibling() != nil {
			out.WriteString("\n")
		}
	}
}

func (r *terminalRenderer) block(n ast.Node, source []byte, width int, out *strings.Builder) {
	switch n := n.(type) {
	case *ast.Paragraph, *ast.TextBlock:
		out.WriteString(wrap(r.inlines(n, source), width))
		out.WriteString("\n")

	case *ast.Heading:
		out.WriteString(wrap(r.heading.Render(r.inlines(n, source)), width))
		out.WriteString("\n")

	case *ast.FencedCodeBlock:
		if lang := string(n.Language(source)); lang != "" {
			out.WriteString(r.muted.Render(lang))
			out.WriteString("\n")
		}
		r.codeLines(n, source, out)

	case *ast.CodeBlock:
		r.codeLines(n, source, out)

	case *ast.Blockquote:
		var inner strings.Builder
		r.blocks(n, source, width-len(quoteGutter), &inner)
		gutter := r.marker.Render(quoteGutter)
		for _, line := range strings.Split(strings.TrimRight(inner.String(), "\n"), "\n") {
			out.WriteString(gutter + line + "\n")
		}

	case *ast.List:
		r.list(n, source, width, 0, out)

	case *ast.ThematicBreak:
		out.WriteString(r.muted.Render(strings.Repeat("─", min(width, 40))))
		out.WriteString("\n")

	case *ast.HTMLBlock:
		// Dropped, as on the web page.

	default:
		r.blocks(n, source, width, out)
	}
}

func (r *terminalRenderer) codeLines(n ast.Node, source []byte, out *strings.Builder) {
	gutter := r.muted.Render(codeGutter)
	lines := n.Lines()
	for i := range lines.Len() {
		seg := lines.At(i)
		out.WriteString(gutter)
		out.WriteString(strings.TrimRight(string(seg.Value(source)), "\n"))
		out.WriteString("\n")
	}
}

func (r *terminalRenderer) list(l *ast.List, source []byte, width, depth int, out *strings.Builder) {
	indent := strings.Repeat("  ", depth)
	num := l.Start
	for c := l.FirstChild(); c != nil; c = c.NextSibling() {
		item, ok := c.(*ast.ListItem)
		if !ok {
			continue
		}
		marker := bullet
		if l.IsOrdered() {
			marker = fmt.Sprintf("%d. ", num)
			num++
		}

		var text strings.Builder
		flush := func() {
			if text.Len() == 0 {
				return
			}
			r.listItem(indent, marker, text.String(), width, out)
			// Later paragraphs of the same item align under the first.
			marker = strings.Repeat(" ", len([]rune(marker)))
			text.Reset()
		}
		for ic := item.FirstChild(); ic != nil; ic = ic.NextSibling() {
			switch ic := ic.(type) {
			case *ast.Paragraph, *ast.TextBlock:
				flush()
				text.WriteString(r.inlines(ic, source))
			case *ast.List:
				flush()
				r.list(ic, source, width, depth+1, out)
			default:
				flush()
				r.block(ic, source, width-len(indent)-2, &text)
				flush()
			}
		}
		flush()
	}
}

func (r *terminalRenderer) listItem(indent, marker, content string, width int, out *strings.Builder) {
	markerWidth := len([]rune(marker))
	lines := strings.Split(wrap(content, width-len(indent)-markerWidth), "\n")
	hang := indent + strings.Repeat(" ", markerWidth)
	for i, line := range lines {
		if i == 0 {
			out.WriteString(indent + r.marker.Render(marker) + line + "\n")
			continue
		}
		out.WriteString(hang + line + "\n")
	}
}

func (r *terminalRenderer) inlines(parent ast.Node, source []byte) string {
	var out strings.Builder
	for n := parent.FirstChild(); n != nil; n = n.NextSibling() {
		r.inline(n, source, &out)
	}
	return out.String()
}

func (r *terminalRenderer) inline(n ast.Node, source []byte, out *strings.Builder) {
	switch n := n.(type) {
	case *ast.Text:
		out.Write(n.Segment.Value(source))
		switch {
		case n.HardLineBreak():
			out.WriteByte('\n')
		case n.SoftLineBreak():
			out.WriteByte(' ')
		}

	case *ast.String:
		out.Write(n.Value)

	case *ast.Emphasis:
		inner := r.inlines(n, source)
		if n.Level == 1 {
			out.WriteString(r.italic.Render(inner))
		} else {
			out.WriteString(r.bold.Render(inner))
		}

	case *ast.CodeSpan:
		out.WriteString(r.code.Render(r.inlines(n, source)))

	case *ast.Link:
		label := r.inlines(n, source)
		dest := string(n.Destination)
		out.WriteString(r.link.Render(label))
		if label != dest {
			out.WriteString(" " + r.muted.Render("("+dest+")"))
		}

	case *ast.AutoLink:
		out.WriteString(r.link.Render(string(n.URL(source))))

	case *ast.Image:
		alt := r.inlines(n, source)
		if alt == "" {
			alt = "image"
		}
		out.WriteString(r.muted.Render("[" + alt + "] (" + string(n.Destination) + ")"))

	case *ast.RawHTML:
		// Dropped, as on the web page.

	default:
		for c := n.FirstChild(); c != nil; c = c.NextSibling() {
			r.inline(c, source, out)
		}
	}
}
