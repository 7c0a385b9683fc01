package markdown

import (
	"bytes"
	"fmt"
	"html/template"

	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/extension"
)

// Renderer turns stored Markdown into displayable HTML. Implementations must
// be pure: the same source always yields the same output.
type Renderer interface {
	Render(src string) (template.HTML, error)
}

// Goldmark renders CommonMark plus GitHub extensions. Raw HTML in the source
// is not passed through (goldmark's default), so the output is safe to embed.
type Goldmark struct {
	md goldmark.Markdown
}

// NewGoldmark creates the default renderer.
func NewGoldmark() *Goldmark {
	return &Goldmark{
		md: goldmark.New(goldmark.WithExtensions(extension.GFM)),
	}
}

// Render converts src to HTML.
func (g *Goldmark) Render(src string) (template.HTML, error) {
	var buf bytes.Buffer
	if err := g.md.Convert([]byte(src), &buf); err != nil {
		return "", fmt.Errorf("markdown: render: %w", err)
	}
	return template.HTML(buf.String()), nil //nolint:gosec // goldmark escapes raw HTML
}
