package articles

import (
	"bytes"
	"fmt"

	"github.com/yuin/goldmark"
	highlighting "github.com/yuin/goldmark-highlighting/v2"
	"github.com/yuin/goldmark/extension"
	"github.com/yuin/goldmark/parser"
	"github.com/yuin/goldmark/renderer/html"
)

// Renderer converts article bodies to HTML.
type Renderer struct {
	md goldmark.Markdown
}

// NewRenderer creates a Renderer with GFM and code highlighting enabled.
func NewRenderer() *Renderer {
	md := goldmark.New(
		goldmark.WithExtensions(
			extension.GFM,
			highlighting.NewHighlighting(
				highlighting.WithStyle("github"),
			),
		),
		goldmark.WithParserOptions(
			parser.WithAutoHeadingID(),
		),
		goldmark.WithRendererOptions(
			html.WithUnsafe(),
		),
	)
	return &Renderer{md: md}
}

// Render returns the HTML body of a. HTML bodies pass through unchanged.
func (r *Renderer) Render(a Article) (string, error) {
	if a.BodyFormat == FormatHTML {
		return a.Body, nil
	}
	var buf bytes.Buffer
	if err := r.md.Convert([]byte(a.Body), &buf); err != nil {
		return "", fmt.Errorf("rendering article %s: %w", a.Slug, err)
	}
	return buf.String(), nil
}

// RenderArticle wraps a with its rendered body.
func (r *Renderer) RenderArticle(a Article) (Rendered, error) {
	body, err := r.Render(a)
	if err != nil {
		return Rendered{}, err
	}
	return Rendered{Article: a, BodyHTML: body}, nil
}
