package handler

import (
	"log/slog"
	"net/http"

	"github.com/templui/healthtrack/internal/service"
	"github.com/templui/healthtrack/internal/ui"
	"github.com/templui/healthtrack/internal/ui/pages"
)

type HomeHandler struct {
	contentService *service.ContentService
}

func NewHomeHandler(contentService *service.ContentService) *HomeHandler {
	return &HomeHandler{
		contentService: contentService,
	}
}

func (h *HomeHandler) HomePage(w http.ResponseWriter, r *http.Request) {
	h.renderContent(w, r, "home")
}

func (h *HomeHandler) AboutPage(w http.ResponseWriter, r *http.Request) {
	h.renderContent(w, r, "about")
}

func (h *HomeHandler) NotFoundPage(w http.ResponseWriter, r *http.Request) {
	ui.RenderStatus(w, r, http.StatusNotFound, pages.NotFound())
}

func (h *HomeHandler) renderContent(w http.ResponseWriter, r *http.Request, slug string) {
	page, err := h.contentService.Page(slug)
	if err != nil {
		slog.Error("failed to load page", "error", err, "slug", slug)
		http.Error(w, "Failed to load page", http.StatusInternalServerError)
		return
	}

	ui.Render(w, r, pages.Content(page.Title, page.Content))
}
