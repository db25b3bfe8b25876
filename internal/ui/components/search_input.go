package components

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/mattn/go-runewidth"
	"github.com/rebeliceyang/lazybrew/internal/models"
	"github.com/rebeliceyang/lazybrew/internal/ui/theme"
)

// SearchInputMsg is sent when a free-text search should be executed
type SearchInputMsg struct {
	Query string
}

// SuggestionSelectedMsg is sent when an autocomplete entry is chosen
type SuggestionSelectedMsg struct {
	Suggestion models.Suggestion
}

// AutocompleteRequestMsg asks for suggestions for the current input
type AutocompleteRequestMsg struct {
	Text string
}

// SuggestionsMsg carries suggestions for the input they were requested for
type SuggestionsMsg struct {
	Text        string
	Suggestions []models.Suggestion
	Err         error
}

// CloseSearchMsg is sent when search should be closed
type CloseSearchMsg struct{}

// maxSuggestions bounds the dropdown
const maxSuggestions = 8

// SearchInput is the search box with an autocomplete dropdown
type SearchInput struct {
	Input    textinput.Model
	Theme    theme.Theme
	Width    int
	MinChars int

	suggestions []models.Suggestion
	selected    int // -1 when no suggestion is highlighted
}

// NewSearchInput creates a new search input
func NewSearchInput(th theme.Theme, minChars int) *SearchInput {
	ti := textinput.New()
	ti.Placeholder = "Search breweries..."
	ti.Focus()
	ti.CharLimit = 256
	ti.Width = 40

	if minChars <= 0 {
		minChars = 3
	}

	return &SearchInput{
		Input:    ti,
		Theme:    th,
		MinChars: minChars,
		selected: -1,
	}
}

// Reset clears the input and the dropdown
func (s *SearchInput) Reset() {
	s.Input.SetValue("")
	s.suggestions = nil
	s.selected = -1
}

// Suggestions returns the dropdown entries
func (s *SearchInput) Suggestions() []models.Suggestion {
	return s.suggestions
}

// SetSuggestions applies an autocomplete response. Responses for text that
// no longer matches the input are dropped.
func (s *SearchInput) SetSuggestions(msg SuggestionsMsg) bool {
	if msg.Text != strings.TrimSpace(s.Input.Value()) {
		return false
	}
	if msg.Err != nil {
		s.suggestions = nil
		s.selected = -1
		return true
	}
	s.suggestions = msg.Suggestions
	if len(s.suggestions) > maxSuggestions {
		s.suggestions = s.suggestions[:maxSuggestions]
	}
	s.selected = -1
	return true
}

// Update handles messages
func (s *SearchInput) Update(msg tea.Msg) (*SearchInput, tea.Cmd) {
	if msg, ok := msg.(tea.KeyMsg); ok {
		switch msg.String() {
		case "enter":
			if s.selected >= 0 && s.selected < len(s.suggestions) {
				chosen := s.suggestions[s.selected]
				return s, func() tea.Msg {
					return SuggestionSelectedMsg{Suggestion: chosen}
				}
			}
			query := s.Input.Value()
			if strings.TrimSpace(query) == "" {
				return s, nil
			}
			return s, func() tea.Msg {
				return SearchInputMsg{Query: query}
			}
		case "esc":
			return s, func() tea.Msg {
				return CloseSearchMsg{}
			}
		case "down", "ctrl+n":
			if len(s.suggestions) > 0 {
				s.selected = (s.selected + 1) % len(s.suggestions)
			}
			return s, nil
		case "up", "ctrl+p":
			if len(s.suggestions) > 0 {
				if s.selected <= 0 {
					s.selected = len(s.suggestions) - 1
				} else {
					s.selected--
				}
			}
			return s, nil
		case "tab":
			if s.selected >= 0 && s.selected < len(s.suggestions) {
				s.Input.SetValue(s.suggestions[s.selected].Name)
				s.Input.CursorEnd()
				return s, s.inputChanged()
			}
			return s, nil
		}
	}

	before := s.Input.Value()
	var cmd tea.Cmd
	s.Input, cmd = s.Input.Update(msg)
	if s.Input.Value() != before {
		return s, tea.Batch(cmd, s.inputChanged())
	}
	return s, cmd
}

// inputChanged clears stale suggestions and requests new ones once the
// input is long enough
func (s *SearchInput) inputChanged() tea.Cmd {
	s.suggestions = nil
	s.selected = -1

	text := strings.TrimSpace(s.Input.Value())
	if len([]rune(text)) < s.MinChars {
		return nil
	}
	return func() tea.Msg {
		return AutocompleteRequestMsg{Text: text}
	}
}

// View renders the search input
func (s *SearchInput) View() string {
	inputWidth := s.Width - 8
	if inputWidth < 20 {
		inputWidth = 20
	}
	s.Input.Width = inputWidth

	boxStyle := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(s.Theme.BorderFocused).
		Padding(0, 1).
		Width(s.Width)

	helpStyle := lipgloss.NewStyle().
		Foreground(s.Theme.Muted).
		Italic(true)

	labelStyle := lipgloss.NewStyle().
		Foreground(s.Theme.Accent).
		Bold(true)

	lines := []string{labelStyle.Render("Search") + " " + s.Input.View()}

	for i, sug := range s.suggestions {
		name := runewidth.Truncate(sug.Name, inputWidth, "…")
		style := lipgloss.NewStyle().Padding(0, 1)
		if i == s.selected {
			style = style.Background(s.Theme.Selection).Foreground(s.Theme.Foreground).Bold(true)
		} else {
			style = style.Foreground(s.Theme.Muted)
		}
		lines = append(lines, style.Render(name))
	}

	hint := "Enter: search │ ↑↓: suggestions │ Tab: complete │ Esc: close"
	if n := len([]rune(strings.TrimSpace(s.Input.Value()))); n > 0 && n < s.MinChars {
		hint = fmt.Sprintf("Type at least %d characters for suggestions │ Esc: close", s.MinChars)
	}
	lines = append(lines, helpStyle.Render(hint))

	return boxStyle.Render(strings.Join(lines, "\n"))
}
