package markdown

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseWithFrontmatter(t *testing.T) {
	source := []byte("---\ntitle: About\n---\n# Heading\n\nSome *text*.\n")

	html, meta, err := NewParser().ParseWithFrontmatter(source)
	require.NoError(t, err)

	assert.Equal(t, "About", meta["title"])
	assert.Contains(t, string(html), `<h1 id="heading">Heading</h1>`)
	assert.Contains(t, string(html), "<em>text</em>")
	assert.NotContains(t, string(html), "title: About")
}

func TestParseWithoutFrontmatter(t *testing.T) {
	html, meta, err := NewParser().ParseWithFrontmatter([]byte("plain"))
	require.NoError(t, err)

	assert.Empty(t, meta)
	assert.Contains(t, string(html), "plain")
}

func TestParseDropsRawHTML(t *testing.T) {
	html, _, err := NewParser().ParseWithFrontmatter([]byte("<script>alert(1)</script>\n"))
	require.NoError(t, err)

	assert.NotContains(t, string(html), "<script>")
}
