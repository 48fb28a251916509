package pages

//go:generate templ generate

import (
	"context"
	"net/url"

	"github.com/templui/healthtrack/internal/ctxkeys"
	"github.com/templui/healthtrack/internal/model"
	"github.com/templui/healthtrack/internal/ui"
)

type navLink struct {
	href  string
	label string
}

var (
	publicLinks = []navLink{{"/", "Home"}, {"/about", "About"}}
	guestLinks  = []navLink{{"/login", "Log in"}, {"/register", "Register"}}
	memberLinks = []navLink{{"/dashboard", "Dashboard"}, {"/goals", "Goals"}, {"/achievements", "Achievements"}, {"/logout", "Log out"}}
)

// navLinks returns the public links followed by the guest or member links.
func navLinks(ctx context.Context) []navLink {
	links := append([]navLink{}, publicLinks...)
	if ctxkeys.UserID(ctx) != "" {
		return append(links, memberLinks...)
	}
	return append(links, guestLinks...)
}

func navClass(ctx context.Context, href string) string {
	if href == ctxkeys.URLPath(ctx) {
		return ui.Class(ui.LinkClass, "font-semibold text-gray-900")
	}
	return ui.LinkClass
}

func appName(ctx context.Context) string {
	cfg := ctxkeys.Config(ctx)
	if cfg == nil || cfg.AppName == "" {
		return "HealthTrack"
	}
	return cfg.AppName
}

func pageTitle(ctx context.Context, title string) string {
	return title + " | " + appName(ctx)
}

func csrfToken(ctx context.Context) string {
	return ctxkeys.CSRFToken(ctx)
}

func goalPath(goal *model.Goal) string {
	return "/goals/" + url.PathEscape(goal.ID)
}

// goalTitles maps goal ids to descriptions for labelling achievements.
func goalTitles(goals []*model.Goal) map[string]string {
	titles := make(map[string]string, len(goals))
	for _, goal := range goals {
		titles[goal.ID] = goal.Description
	}
	return titles
}

func goalValues(goal *model.Goal) (category, description, dueDate string) {
	if goal == nil {
		return "", "", ""
	}
	return goal.Category, goal.Description, goal.DueDate
}
