package service

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"

	"github.com/templui/healthtrack/internal/markdown"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

var ErrPageNotFound = errors.New("page not found")

type ContentPage struct {
	Title   string
	Slug    string
	Content string
}

var defaultPages = map[string]string{
	"home":  "---\ntitle: Welcome\n---\nTrack your health goals and the achievements along the way.\n",
	"about": "---\ntitle: About\n---\nA small personal health tracker.\n",
}

// ContentService renders the markdown pages under contentDir. Pages are read
// on every request so edits show up without a restart.
type ContentService struct {
	contentDir string
	parser     *markdown.Parser

	mu    sync.RWMutex
	pages map[string]*ContentPage
}

func NewContentService(contentDir string) *ContentService {
	return &ContentService{
		contentDir: contentDir,
		parser:     markdown.NewParser(),
		pages:      make(map[string]*ContentPage),
	}
}

func (s *ContentService) Page(slug string) (*ContentPage, error) {
	if slug == "" || strings.ContainsAny(slug, `/\.`) {
		return nil, fmt.Errorf("%w: %s", ErrPageNotFound, slug)
	}

	page, err := s.loadPage(slug)
	if err != nil {
		s.mu.RLock()
		cached, ok := s.pages[slug]
		s.mu.RUnlock()
		if ok {
			return cached, nil
		}
		return nil, err
	}

	s.mu.Lock()
	s.pages[slug] = page
	s.mu.Unlock()

	return page, nil
}

func (s *ContentService) loadPage(slug string) (*ContentPage, error) {
	source, err := os.ReadFile(filepath.Join(s.contentDir, slug+".md"))
	if err != nil {
		if !os.IsNotExist(err) {
			return nil, fmt.Errorf("failed to read page %s: %w", slug, err)
		}
		fallback, ok := defaultPages[slug]
		if !ok {
			return nil, fmt.Errorf("%w: %s", ErrPageNotFound, slug)
		}
		source = []byte(fallback)
	}

	html, meta, err := s.parser.ParseWithFrontmatter(source)
	if err != nil {
		return nil, fmt.Errorf("failed to parse markdown: %w", err)
	}

	title, _ := meta["title"].(string)
	if title == "" {
		title = cases.Title(language.English).String(strings.ReplaceAll(slug, "-", " "))
	}

	return &ContentPage{
		Title:   title,
		Slug:    slug,
		Content: string(html),
	}, nil
}
