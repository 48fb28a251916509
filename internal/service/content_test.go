package service

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestContentService_Page(t *testing.T) {
	dir := t.TempDir()
	err := os.WriteFile(filepath.Join(dir, "about.md"), []byte("---\ntitle: About Us\n---\nHello **there**.\n"), 0o644)
	require.NoError(t, err)

	s := NewContentService(dir)

	page, err := s.Page("about")
	require.NoError(t, err)
	assert.Equal(t, "About Us", page.Title)
	assert.Contains(t, page.Content, "<strong>there</strong>")
}

func TestContentService_TitleFallsBackToSlug(t *testing.T) {
	dir := t.TempDir()
	err := os.WriteFile(filepath.Join(dir, "getting-started.md"), []byte("Body\n"), 0o644)
	require.NoError(t, err)

	page, err := NewContentService(dir).Page("getting-started")
	require.NoError(t, err)
	assert.Equal(t, "Getting Started", page.Title)
}

func TestContentService_DefaultPages(t *testing.T) {
	s := NewContentService(t.TempDir())

	page, err := s.Page("home")
	require.NoError(t, err)
	assert.Equal(t, "Welcome", page.Title)
	assert.NotEmpty(t, page.Content)

	_, err = s.Page("missing")
	assert.ErrorIs(t, err, ErrPageNotFound)

	_, err = s.Page("../secrets")
	assert.ErrorIs(t, err, ErrPageNotFound)
}
