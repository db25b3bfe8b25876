package components

import (
	"github.com/charmbracelet/lipgloss"
	"github.com/mattn/go-runewidth"
	"github.com/rebeliceyang/lazybrew/internal/ui/theme"
)

// Panel is a bordered box with an optional title row. Content taller than
// the panel is clipped.
type Panel struct {
	Title   string
	Content string
	Width   int
	Height  int
	Focused bool
	Theme   theme.Theme
}

// View renders the panel
func (p *Panel) View() string {
	if p.Width <= 0 || p.Height <= 0 {
		return ""
	}

	border := p.Theme.Border
	if p.Focused {
		border = p.Theme.BorderFocused
	}

	style := lipgloss.NewStyle().
		Width(p.Width).
		Height(p.Height).
		MaxHeight(p.Height + 2).
		Border(lipgloss.RoundedBorder()).
		BorderForeground(border)

	content := p.Content
	if p.Title != "" {
		titleStyle := lipgloss.NewStyle().Bold(true).Padding(0, 1)
		if p.Focused {
			titleStyle = titleStyle.Foreground(p.Theme.Accent)
		}
		title := runewidth.Truncate(p.Title, max(p.Width-2, 1), "…")
		content = titleStyle.Render(title) + "\n" + content
	}

	return style.Render(content)
}

// InnerHeight returns the rows available to content below the title
func (p *Panel) InnerHeight() int {
	h := p.Height
	if p.Title != "" {
		h--
	}
	return max(h, 0)
}
