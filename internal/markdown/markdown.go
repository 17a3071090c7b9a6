// Package markdown converts help markdown to HTML fragments.
package markdown

import (
	"bytes"

	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/extension"
	"github.com/yuin/goldmark/renderer/html"
)

// Renderer converts markdown to HTML. The zero value is not usable; call New.
type Renderer struct {
	md goldmark.Markdown
}

// New creates a renderer with GitHub flavored markdown enabled.
// Raw HTML is passed through so trusted callers can embed anchors; untrusted help text
// goes through Render, which escapes angle brackets first.
func New() *Renderer {
	return &Renderer{
		md: goldmark.New(
			goldmark.WithExtensions(extension.GFM),
			goldmark.WithRendererOptions(html.WithUnsafe()),
		),
	}
}

// Render escapes literal angle brackets in help text and converts it to HTML.
func (r *Renderer) Render(markdown string) (string, error) {
	return r.Convert(EscapeAngleBrackets(markdown))
}

// Convert converts markdown to HTML without escaping. Raw HTML in the input is kept.
func (r *Renderer) Convert(markdown string) (string, error) {
	var buf bytes.Buffer
	if err := r.md.Convert([]byte(markdown), &buf); err != nil {
		return "", err
	}
	return buf.String(), nil
}
