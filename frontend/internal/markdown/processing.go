package markdown

import (
	"bytes"
	"strings"

	"github.com/microcosm-cc/bluemonday"
	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/extension"
	"github.com/yuin/goldmark/renderer/html"
)

// TextProcessor turns user-authored markdown into the HTML the backend stores,
// and sanitizes HTML coming back from the backend before it reaches the state.
type TextProcessor struct {
	md     goldmark.Markdown
	policy *bluemonday.Policy
}

func New() *TextProcessor {
	md := goldmark.New(
		goldmark.WithRendererOptions(html.WithHardWraps()),
		goldmark.WithExtensions(extension.Strikethrough, extension.Linkify),
	)

	p := bluemonday.UGCPolicy()
	p.RequireNoFollowOnLinks(true)
	p.AddTargetBlankToFullyQualifiedLinks(true)

	return &TextProcessor{md: md, policy: p}
}

// Render converts markdown to sanitized HTML. Raw HTML in the source is dropped
// by goldmark (no WithUnsafe) and whatever survives is sanitized again.
func (tp *TextProcessor) Render(text string) string {
	var buf bytes.Buffer
	if err := tp.md.Convert([]byte(text), &buf); err != nil {
		return tp.Sanitize(text)
	}
	return tp.Sanitize(strings.TrimSpace(buf.String()))
}

// Sanitize strips anything a user-generated-content policy would not allow.
func (tp *TextProcessor) Sanitize(text string) string {
	return tp.policy.Sanitize(text)
}
