package render

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMarkdownRenderer(t *testing.T) {
	html, err := NewMarkdownRenderer().Render("**Hola** Ana\nvisita https://gymlab.local")
	require.NoError(t, err)
	assert.Contains(t, html, "<strong>Hola</strong>")
	assert.Contains(t, html, "<br>")
	assert.Contains(t, html, `<a href="https://gymlab.local">`)
}

func TestMarkdownRenderer_EscapesRawHTML(t *testing.T) {
	html, err := NewMarkdownRenderer().Render("<script>alert(1)</script>")
	require.NoError(t, err)
	assert.NotContains(t, html, "<script>")
}
