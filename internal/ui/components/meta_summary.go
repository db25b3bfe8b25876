package components

import (
	"fmt"
	"sort"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/dustin/go-humanize"
	"github.com/rebeliceyang/lazybrew/internal/models"
	"github.com/rebeliceyang/lazybrew/internal/ui/theme"
)

// metaTopStates is how many states the summary lists
const metaTopStates = 5

// MetaSummaryView shows aggregate counts for the active query label
type MetaSummaryView struct {
	Theme   theme.Theme
	Width   int
	Loading bool
	Err     string

	Summary *models.MetaSummary
	Scope   models.MetaParams
}

// NewMetaSummaryView creates a meta summary view
func NewMetaSummaryView(th theme.Theme) *MetaSummaryView {
	return &MetaSummaryView{Theme: th}
}

// SetLoading marks a fetch for scope as in flight. Counts from the previous
// scope are dropped.
func (mv *MetaSummaryView) SetLoading(scope models.MetaParams) {
	mv.Scope = scope
	mv.Loading = true
	mv.Err = ""
	mv.Summary = nil
}

// SetResult applies a meta response
func (mv *MetaSummaryView) SetResult(summary models.MetaSummary, err error) {
	mv.Loading = false
	if err != nil {
		mv.Err = err.Error()
		return
	}
	mv.Err = ""
	mv.Summary = &summary
}

// SortedCounts orders a count map by value descending, then key
func SortedCounts(m map[string]models.FlexInt) []models.Count {
	out := make([]models.Count, 0, len(m))
	for k, v := range m {
		out = append(out, models.Count{Key: k, Value: int(v)})
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Value != out[j].Value {
			return out[i].Value > out[j].Value
		}
		return out[i].Key < out[j].Key
	})
	return out
}

// ScopeLabel describes the meta filter subset
func ScopeLabel(scope models.MetaParams) string {
	if len(scope) == 0 {
		return "all breweries"
	}
	var parts []string
	for _, key := range models.FilterKeys {
		if v, ok := scope[key]; ok {
			parts = append(parts, fmt.Sprintf("%s=%s", key, v))
		}
	}
	return strings.Join(parts, ", ")
}

// View renders the summary
func (mv *MetaSummaryView) View() string {
	titleStyle := lipgloss.NewStyle().Bold(true).Foreground(mv.Theme.Info)
	mutedStyle := lipgloss.NewStyle().Foreground(mv.Theme.Muted).Italic(true)
	keyStyle := lipgloss.NewStyle().Foreground(mv.Theme.Foreground).Width(16)
	valueStyle := lipgloss.NewStyle().Foreground(mv.Theme.Accent)

	lines := []string{titleStyle.Render("Directory Summary"), mutedStyle.Render(ScopeLabel(mv.Scope))}

	switch {
	case mv.Err != "":
		lines = append(lines, lipgloss.NewStyle().Foreground(mv.Theme.Error).Render("Error: "+mv.Err))
		return lipgloss.NewStyle().Width(mv.Width).Render(strings.Join(lines, "\n"))
	case mv.Summary == nil && mv.Loading:
		lines = append(lines, mutedStyle.Render("Loading metadata..."))
		return lipgloss.NewStyle().Width(mv.Width).Render(strings.Join(lines, "\n"))
	case mv.Summary == nil:
		lines = append(lines, mutedStyle.Render("No metadata"))
		return lipgloss.NewStyle().Width(mv.Width).Render(strings.Join(lines, "\n"))
	}

	s := mv.Summary
	lines = append(lines, keyStyle.Render("Total")+valueStyle.Bold(true).Render(humanize.Comma(int64(s.Total))))

	if len(s.ByType) > 0 {
		lines = append(lines, "", titleStyle.Render("By type"))
		for _, c := range SortedCounts(s.ByType) {
			lines = append(lines, keyStyle.Foreground(mv.Theme.TypeColor(c.Key)).Render(c.Key)+valueStyle.Render(humanize.Comma(int64(c.Value))))
		}
	}

	if len(s.ByState) > 0 {
		lines = append(lines, "", titleStyle.Render(fmt.Sprintf("Top %d states", metaTopStates)))
		states := SortedCounts(s.ByState)
		if len(states) > metaTopStates {
			states = states[:metaTopStates]
		}
		for _, c := range states {
			lines = append(lines, keyStyle.Render(c.Key)+valueStyle.Render(humanize.Comma(int64(c.Value))))
		}
	}

	return lipgloss.NewStyle().Width(mv.Width).Render(strings.Join(lines, "\n"))
}
