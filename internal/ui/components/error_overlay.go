package components

import (
	"github.com/charmbracelet/lipgloss"
	"github.com/rebeliceyang/lazybrew/internal/ui/theme"
)

// ErrorOverlay is a centered modal with a title and message
type ErrorOverlay struct {
	Title   string
	Message string
	Hint    string
	Width   int
	Theme   theme.Theme

	// Warning renders the overlay in the warning color instead of error
	Warning bool
}

// NewErrorOverlay creates an error overlay
func NewErrorOverlay(th theme.Theme) *ErrorOverlay {
	return &ErrorOverlay{
		Width: 60,
		Theme: th,
		Hint:  "Press Esc or Enter to dismiss",
	}
}

// SetError sets the overlay content
func (e *ErrorOverlay) SetError(title, message string) {
	e.Title = title
	e.Message = message
	e.Warning = false
}

// SetWarning sets the overlay content with warning styling
func (e *ErrorOverlay) SetWarning(title, message string) {
	e.Title = title
	e.Message = message
	e.Warning = true
}

// View renders the overlay
func (e *ErrorOverlay) View() string {
	color := e.Theme.Error
	if e.Warning {
		color = e.Theme.Warning
	}

	title := lipgloss.NewStyle().Bold(true).Foreground(color).Render(e.Title)
	body := lipgloss.NewStyle().Foreground(e.Theme.Foreground).Width(e.Width - 4).Render(e.Message)
	hint := lipgloss.NewStyle().Foreground(e.Theme.Muted).Italic(true).Render(e.Hint)

	return lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(color).
		Padding(1, 2).
		Width(e.Width).
		Render(lipgloss.JoinVertical(lipgloss.Left, title, "", body, "", hint))
}
