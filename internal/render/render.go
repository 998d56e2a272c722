// Package render turns stored article markdown into safe HTML and strips
// markup from reader-submitted text.
package render

import (
	"bytes"
	"fmt"
	"html"
	"strings"

	"github.com/microcosm-cc/bluemonday"
	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/extension"
)

// Renderer is safe for concurrent use
type Renderer struct {
	markdown goldmark.Markdown
	article  *bluemonday.Policy
	plain    *bluemonday.Policy
}

// New builds a renderer with GitHub-flavoured markdown and a UGC policy
// for the generated HTML
func New() *Renderer {
	article := bluemonday.UGCPolicy()
	article.AllowAttrs("class").Matching(bluemonday.SpaceSeparatedTokens).OnElements("code", "pre")
	article.RequireNoReferrerOnLinks(true)

	return &Renderer{
		markdown: goldmark.New(goldmark.WithExtensions(extension.GFM)),
		article:  article,
		plain:    bluemonday.StrictPolicy(),
	}
}

// Markdown converts article content to sanitized HTML
func (r *Renderer) Markdown(src string) (string, error) {
	var buf bytes.Buffer
	if err := r.markdown.Convert([]byte(src), &buf); err != nil {
		return "", fmt.Errorf("convert markdown: %w", err)
	}
	return r.article.Sanitize(buf.String()), nil
}

// PlainText removes every tag from s and trims surrounding whitespace. The
// result is raw text: entities the sanitizer emits are decoded again.
func (r *Renderer) PlainText(s string) string {
	return strings.TrimSpace(html.UnescapeString(r.plain.Sanitize(s)))
}
