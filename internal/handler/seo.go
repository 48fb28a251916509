package handler

import (
	"net/http"
)

// robots keeps crawlers on the public pages.
const robots = `User-agent: *
Allow: /
Allow: /about
Disallow: /dashboard
Disallow: /goals
Disallow: /achievements
`

type SEOHandler struct{}

func NewSEOHandler() *SEOHandler {
	return &SEOHandler{}
}

// Robots serves the robots.txt file
func (h *SEOHandler) Robots(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	_, _ = w.Write([]byte(robots))
}
