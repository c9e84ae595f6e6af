// Package markdown renders the short catalog descriptions shown on the dashboard.
package markdown

import (
	"bytes"
	"fmt"
	"github.com/yuin/goldmark"
	goldmarkhtml "github.com/yuin/goldmark/renderer/html"
	"html/template"
)

// renderer escapes raw HTML in its input since WithUnsafe is not set.
var renderer = goldmark.New( //nolint:gochecknoglobals // stateless and safe for concurrent use.
	goldmark.WithRendererOptions(
		goldmarkhtml.WithHardWraps(),
	),
)

// ToHTML converts markdown to HTML.
func ToHTML(md string) (template.HTML, error) {
	var buf bytes.Buffer
	if err := renderer.Convert([]byte(md), &buf); err != nil {
		return "", fmt.Errorf("convert markdown: %w", err)
	}
	return template.HTML(buf.String()), nil //nolint:gosec // goldmark escapes raw HTML.
}

// Inline converts a single paragraph of markdown without the wrapping <p> element. Conversion errors fall back to
// the escaped input.
func Inline(md string) template.HTML {
	html, err := ToHTML(md)
	if err != nil {
		return template.HTML(template.HTMLEscapeString(md)) //nolint:gosec // escaped.
	}
	s := bytes.TrimSpace([]byte(html))
	s = bytes.TrimPrefix(s, []byte("<p>"))
	s = bytes.TrimSuffix(s, []byte("</p>"))
	return template.HTML(s) //nolint:gosec // goldmark escapes raw HTML.
}
