package goldmark_test

import (
	"os"
	"regexp"
	"strings"
	"testing"

	"github.com/charmbracelet/lipgloss"
	"github.com/fwojciec/folio"
	"github.com/fwojciec/folio/goldmark"
	"github.com/muesli/termenv"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var csi = regexp.MustCompile(`\x1b\[[0-9;]*[a-zA-Z]`)

func plain(s string) string {
	return csi.ReplaceAllString(s, "")
}

func TestMain(m *testing.M) {
	// Styled output must contain escape codes for the styling assertions.
	lipgloss.SetColorProfile(termenv.ANSI)
	os.Exit(m.Run())
}

func TestRender(t *testing.T) {
	t.Parallel()

	theme := folio.DefaultTheme()

	t.Run("blank input renders nothing", func(t *testing.T) {
		t.Parallel()
		assert.Equal(t, "", goldmark.Render("", 80, theme))
		assert.Equal(t, "", goldmark.Render(" \n\n ", 80, theme))
	})

	t.Run("paragraph", func(t *testing.T) {
		t.Parallel()
		assert.Contains(t, plain(goldmark.Render("I build data pipelines.", 80, theme)), "I build data pipelines.")
	})

	t.Run("heading is styled", func(t *testing.T) {
		t.Parallel()
		heading := goldmark.Render("## Projects", 80, theme)
		paragraph := goldmark.Render("Projects", 80, theme)
		assert.Contains(t, plain(heading), "Projects")
		assert.NotContains(t, plain(heading), "#")
		assert.NotEqual(t, heading, paragraph)
	})

	t.Run("emphasis", func(t *testing.T) {
		t.Parallel()
		result := goldmark.Render("**Machine Learning** and *Web Development*", 80, theme)
		assert.Contains(t, plain(result), "Machine Learning and Web Development")
		assert.NotContains(t, plain(result), "*")
		assert.Contains(t, result, "\x1b[")
	})

	t.Run("inline code", func(t *testing.T) {
		t.Parallel()
		result := goldmark.Render("run `go test`", 80, theme)
		assert.Contains(t, plain(result), "run go test")
	})

	t.Run("fenced code keeps lines and shows language", func(t *testing.T) {
		t.Parallel()
		src := "```python\nmodel.fit(X_train, y_train, epochs=10)\n```"
		result := plain(goldmark.Render(src, 20, theme))
		lines := strings.Split(result, "\n")
		require.Len(t, lines, 2)
		assert.Equal(t, "python", strings.TrimSpace(lines[0]))
		assert.Equal(t, "│ model.fit(X_train, y_train, epochs=10)", lines[1])
	})

	t.Run("indented code block", func(t *testing.T) {
		t.Parallel()
		result := plain(goldmark.Render("intro\n\n    SELECT 1;\n    SELECT 2;", 80, theme))
		assert.Contains(t, result, "│ SELECT 1;")
		assert.Contains(t, result, "│ SELECT 2;")
	})

	t.Run("bullet list", func(t *testing.T) {
		t.Parallel()
		result := plain(goldmark.Render("- Python\n- Go\n- SQL", 80, theme))
		lines := strings.Split(result, "\n")
		require.Len(t, lines, 3)
		assert.True(t, strings.HasPrefix(lines[0], "• Python"))
		assert.True(t, strings.HasPrefix(lines[2], "• SQL"))
	})

	t.Run("ordered list honours start", func(t *testing.T) {
		t.Parallel()
		result := plain(goldmark.Render("3. third\n4. fourth", 80, theme))
		assert.Contains(t, result, "3. third")
		assert.Contains(t, result, "4. fourth")
	})

	t.Run("nested list is indented", func(t *testing.T) {
		t.Parallel()
		result := plain(goldmark.Render("- outer\n  - inner", 80, theme))
		lines := strings.Split(result, "\n")
		require.Len(t, lines, 2)
		assert.True(t, strings.HasPrefix(lines[0], "• outer"))
		assert.True(t, strings.HasPrefix(lines[1], "  • inner"))
	})

	t.Run("wrapped list item hangs under its text", func(t *testing.T) {
		t.Parallel()
		src := "- a very long list item describing a research project that has to wrap"
		lines := strings.Split(plain(goldmark.Render(src, 30, theme)), "\n")
		require.Greater(t, len(lines), 1)
		assert.True(t, strings.HasPrefix(lines[0], "• "))
		for _, line := range lines[1:] {
			if strings.TrimSpace(line) != "" {
				assert.True(t, strings.HasPrefix(line, "  "), "continuation line %q", line)
			}
		}
	})

	t.Run("paragraph wraps to width", func(t *testing.T) {
		t.Parallel()
		src := "one two three four five six seven eight nine ten eleven twelve"
		lines := strings.Split(plain(goldmark.Render(src, 20, theme)), "\n")
		assert.Greater(t, len(lines), 1)
		for _, line := range lines {
			assert.LessOrEqual(t, len(strings.TrimRight(line, " ")), 20)
		}
	})

	t.Run("paragraphs are separated by a blank line", func(t *testing.T) {
		t.Parallel()
		result := plain(goldmark.Render("first\n\nsecond", 80, theme))
		lines := strings.Split(result, "\n")
		require.Len(t, lines, 3)
		assert.Equal(t, "", strings.TrimSpace(lines[1]))
	})

	t.Run("blockquote gets a gutter", func(t *testing.T) {
		t.Parallel()
		result := plain(goldmark.Render("> Stay curious.", 80, theme))
		assert.True(t, strings.HasPrefix(result, "▌ Stay curious."))
	})

	t.Run("link shows label and destination", func(t *testing.T) {
		t.Parallel()
		result := plain(goldmark.Render("[my thesis](https://example.com/thesis.pdf)", 80, theme))
		assert.Contains(t, result, "my thesis (https://example.com/thesis.pdf)")
	})

	t.Run("autolink shows URL once", func(t *testing.T) {
		t.Parallel()
		result := plain(goldmark.Render("<https://example.com>", 80, theme))
		assert.Equal(t, 1, strings.Count(result, "https://example.com"))
	})

	t.Run("image shows alt text", func(t *testing.T) {
		t.Parallel()
		result := plain(goldmark.Render("![architecture diagram](https://example.com/a.png)", 80, theme))
		assert.Contains(t, result, "[architecture diagram] (https://example.com/a.png)")
	})

	t.Run("thematic break", func(t *testing.T) {
		t.Parallel()
		result := plain(goldmark.Render("above\n\n---\n\nbelow", 80, theme))
		assert.Contains(t, result, "above")
		assert.Contains(t, result, "─────")
		assert.Contains(t, result, "below")
	})

	t.Run("raw html is dropped", func(t *testing.T) {
		t.Parallel()
		result := plain(goldmark.Render("<div>hidden</div>\n\nvisible <b>inline</b>", 80, theme))
		assert.NotContains(t, result, "<div>")
		assert.NotContains(t, result, "<b>")
		assert.Contains(t, result, "visible inline")
	})

	t.Run("non-positive width falls back to default", func(t *testing.T) {
		t.Parallel()
		assert.Contains(t, plain(goldmark.Render("hello world", 0, theme)), "hello world")
	})
}
