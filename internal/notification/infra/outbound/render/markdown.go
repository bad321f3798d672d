package render

import (
	"bytes"

	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/extension"
	goldmarkHTML "github.com/yuin/goldmark/renderer/html"

	"github.com/davicafu/gymlab/internal/notification/domain"
)

// MarkdownRenderer usa goldmark. El HTML crudo del markdown se escapa
// (no se activa WithUnsafe).
type MarkdownRenderer struct {
	md goldmark.Markdown
}

func NewMarkdownRenderer() *MarkdownRenderer {
	return &MarkdownRenderer{
		md: goldmark.New(
			goldmark.WithExtensions(extension.Linkify),
			goldmark.WithRendererOptions(goldmarkHTML.WithHardWraps()),
		),
	}
}

func (r *MarkdownRenderer) Render(markdown string) (string, error) {
	var buf bytes.Buffer
	if err := r.md.Convert([]byte(markdown), &buf); err != nil {
		return "", err
	}
	return buf.String(), nil
}

var _ domain.Renderer = (*MarkdownRenderer)(nil)
