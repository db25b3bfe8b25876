package components

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/rebeliceyang/lazybrew/internal/models"
	"github.com/rebeliceyang/lazybrew/internal/ui/theme"
)

// Stats summarizes the rendered result set
type Stats struct {
	Total       int
	Types       int
	States      int
	WithWebsite int
}

// ComputeStats counts records, distinct types, distinct states and records
// carrying a website
func ComputeStats(breweries []models.Brewery) Stats {
	types := make(map[models.BreweryType]struct{})
	states := make(map[string]struct{})
	s := Stats{Total: len(breweries)}

	for _, b := range breweries {
		if b.BreweryType != "" {
			types[b.BreweryType] = struct{}{}
		}
		if region := b.Region(); region != "" {
			states[strings.ToLower(region)] = struct{}{}
		}
		if b.WebsiteURL != "" {
			s.WithWebsite++
		}
	}
	s.Types = len(types)
	s.States = len(states)
	return s
}

// WebsitePercent returns the share of records with a website
func (s Stats) WebsitePercent() int {
	if s.Total == 0 {
		return 0
	}
	return s.WithWebsite * 100 / s.Total
}

// RenderStats draws the stat cards as a compact block
func RenderStats(s Stats, th theme.Theme, width int) string {
	labelStyle := lipgloss.NewStyle().Foreground(th.Muted)
	valueStyle := lipgloss.NewStyle().Foreground(th.Accent).Bold(true)

	rows := []struct {
		label string
		value string
	}{
		{"Breweries", fmt.Sprintf("%d", s.Total)},
		{"Types", fmt.Sprintf("%d", s.Types)},
		{"States", fmt.Sprintf("%d", s.States)},
		{"With website", fmt.Sprintf("%d (%d%%)", s.WithWebsite, s.WebsitePercent())},
	}

	var lines []string
	for _, r := range rows {
		lines = append(lines, labelStyle.Width(14).Render(r.label)+valueStyle.Render(r.value))
	}
	return lipgloss.NewStyle().Width(width).Render(strings.Join(lines, "\n"))
}
