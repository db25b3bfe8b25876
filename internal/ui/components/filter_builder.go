package components

import (
	"fmt"
	"strconv"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/rebeliceyang/lazybrew/internal/filter"
	"github.com/rebeliceyang/lazybrew/internal/models"
	"github.com/rebeliceyang/lazybrew/internal/ui/theme"
)

// ApplyFiltersMsg is sent when the edited filter set should be fetched
type ApplyFiltersMsg struct {
	Filters models.FilterSet
}

// ClearFiltersMsg is sent when every filter should be reset
type ClearFiltersMsg struct{}

// CloseFilterBuilderMsg is sent when the filter builder should close
type CloseFilterBuilderMsg struct{}

// formField is one row of the filter form
type formField struct {
	label string
	key   models.FilterKey // empty for sort and per_page
	kind  string           // "enum" or "text"
}

const (
	fieldSort    = "sort"
	fieldPerPage = "per_page"
)

var formFields = []formField{
	{"Type", models.ByType, "enum"},
	{"State", models.ByState, "text"},
	{"City", models.ByCity, "text"},
	{"Postal", models.ByPostal, "text"},
	{"Name", models.ByName, "text"},
	{"Country", models.ByCountry, "text"},
	{"Sort", fieldSort, "enum"},
	{"Per page", fieldPerPage, "text"},
}

// FilterBuilder is the structured filter form
type FilterBuilder struct {
	Width   int
	Height  int
	Theme   theme.Theme
	builder *filter.Builder

	// State
	filters         models.FilterSet
	currentIndex    int
	editing         bool
	editValue       string
	validationError string
}

// NewFilterBuilder creates a new filter builder
func NewFilterBuilder(th theme.Theme) *FilterBuilder {
	return &FilterBuilder{
		Width:   70,
		Height:  20,
		Theme:   th,
		builder: filter.NewBuilder(),
		filters: models.DefaultFilterSet(),
	}
}

// SetFilters loads the form from the applied filter set
func (fb *FilterBuilder) SetFilters(f models.FilterSet) {
	fb.filters = f
	fb.editing = false
	fb.editValue = ""
	fb.validationError = ""
}

// Filters returns the edited filter set
func (fb *FilterBuilder) Filters() models.FilterSet {
	return fb.filters
}

// Preview renders the request the edited filter set would produce
func (fb *FilterBuilder) Preview() string {
	return fb.builder.Preview(fb.filters)
}

// Update handles keyboard input
func (fb *FilterBuilder) Update(msg tea.KeyMsg) (*FilterBuilder, tea.Cmd) {
	if fb.editing {
		return fb.handleEditMode(msg)
	}
	return fb.handleNavigationMode(msg)
}

func (fb *FilterBuilder) handleNavigationMode(msg tea.KeyMsg) (*FilterBuilder, tea.Cmd) {
	field := formFields[fb.currentIndex]

	switch msg.String() {
	case "up", "k", "shift+tab":
		if fb.currentIndex > 0 {
			fb.currentIndex--
		}
	case "down", "j", "tab":
		if fb.currentIndex < len(formFields)-1 {
			fb.currentIndex++
		}
	case "right", "l", " ":
		if field.kind == "enum" {
			fb.cycle(field, 1)
		}
	case "left", "h":
		if field.kind == "enum" {
			fb.cycle(field, -1)
		}
	case "e", "i":
		if field.kind == "text" {
			fb.editing = true
			fb.editValue = fb.value(field)
		}
	case "d", "delete", "backspace":
		fb.setValue(field, "")
		fb.validationError = ""
	case "x":
		fb.SetFilters(models.DefaultFilterSet())
		return fb, func() tea.Msg {
			return ClearFiltersMsg{}
		}
	case "enter":
		if err := fb.builder.Validate(fb.filters); err != nil {
			fb.validationError = err.Error()
			return fb, nil
		}
		fb.validationError = ""
		applied := fb.filters
		return fb, func() tea.Msg {
			return ApplyFiltersMsg{Filters: applied}
		}
	case "esc":
		return fb, func() tea.Msg {
			return CloseFilterBuilderMsg{}
		}
	}
	return fb, nil
}

func (fb *FilterBuilder) handleEditMode(msg tea.KeyMsg) (*FilterBuilder, tea.Cmd) {
	field := formFields[fb.currentIndex]

	switch msg.Type {
	case tea.KeyEsc:
		fb.editing = false
		fb.editValue = ""
	case tea.KeyEnter, tea.KeyTab:
		if field.key == fieldPerPage && fb.editValue != "" {
			if _, err := strconv.Atoi(fb.editValue); err != nil {
				fb.validationError = fmt.Sprintf("per page must be a number, got %q", fb.editValue)
				return fb, nil
			}
		}
		fb.setValue(field, strings.TrimSpace(fb.editValue))
		fb.editing = false
		fb.editValue = ""
		fb.validationError = ""
	case tea.KeyBackspace:
		if r := []rune(fb.editValue); len(r) > 0 {
			fb.editValue = string(r[:len(r)-1])
		}
	case tea.KeySpace:
		fb.editValue += " "
	case tea.KeyRunes:
		if field.key == fieldPerPage {
			for _, r := range msg.Runes {
				if r >= '0' && r <= '9' {
					fb.editValue += string(r)
				}
			}
		} else {
			fb.editValue += string(msg.Runes)
		}
	}
	return fb, nil
}

// cycle steps an enum field forward or backward
func (fb *FilterBuilder) cycle(field formField, dir int) {
	switch field.key {
	case models.ByType:
		if dir > 0 {
			fb.filters.ByType = filter.NextBreweryType(fb.filters.ByType)
		} else {
			fb.filters.ByType = prevBreweryType(fb.filters.ByType)
		}
	case fieldSort:
		if dir > 0 {
			fb.filters.Sort = filter.NextSortOption(fb.filters.Sort)
		} else {
			fb.filters.Sort = filter.PrevSortOption(fb.filters.Sort)
		}
	}
	fb.validationError = ""
}

func prevBreweryType(t string) string {
	if t == "" {
		return string(models.BreweryTypes[len(models.BreweryTypes)-1])
	}
	for i, known := range models.BreweryTypes {
		if string(known) == t {
			if i == 0 {
				return ""
			}
			return string(models.BreweryTypes[i-1])
		}
	}
	return ""
}

func (fb *FilterBuilder) value(field formField) string {
	switch field.key {
	case fieldSort:
		return string(fb.filters.Sort)
	case fieldPerPage:
		if fb.filters.PerPage <= 0 {
			return ""
		}
		return strconv.Itoa(fb.filters.PerPage)
	}
	return fb.filters.Get(field.key)
}

func (fb *FilterBuilder) setValue(field formField, v string) {
	switch field.key {
	case fieldSort:
		fb.filters.Sort = models.SortOption(v)
	case fieldPerPage:
		n, _ := strconv.Atoi(v)
		fb.filters.PerPage = n
	default:
		fb.filters = fb.filters.With(field.key, v)
	}
}

// View renders the filter builder
func (fb *FilterBuilder) View() string {
	var sections []string

	titleStyle := lipgloss.NewStyle().
		Foreground(fb.Theme.Background).
		Background(fb.Theme.Accent).
		Padding(0, 1).
		Bold(true)
	sections = append(sections, titleStyle.Render("Filter Breweries"))

	instructionStyle := lipgloss.NewStyle().
		Foreground(fb.Theme.Muted).
		Padding(0, 1)

	instructions := "↑↓ Move  ←→ Cycle  e Edit  d Clear field  x Clear all  Enter Apply  Esc Close"
	if fb.editing {
		instructions = "Type value, Enter to confirm, Esc to cancel"
	}
	sections = append(sections, instructionStyle.Render(instructions), "")

	labelStyle := lipgloss.NewStyle().Width(12).Foreground(fb.Theme.Muted)
	for i, field := range formFields {
		value := fb.value(field)
		if fb.editing && i == fb.currentIndex {
			value = fb.editValue + "_"
		} else if value == "" {
			value = placeholder(field)
		}
		if field.kind == "enum" {
			value = "‹ " + value + " ›"
		}

		style := lipgloss.NewStyle().Padding(0, 1)
		if i == fb.currentIndex {
			style = style.Background(fb.Theme.Selection).Foreground(fb.Theme.Foreground).Bold(true)
		}
		sections = append(sections, style.Render(labelStyle.Render(field.label)+value))
	}

	if fb.validationError != "" {
		errorStyle := lipgloss.NewStyle().
			Foreground(fb.Theme.Error).
			Padding(0, 1).
			Bold(true)
		sections = append(sections, "", errorStyle.Render("Error: "+fb.validationError))
	}

	sections = append(sections, "", "Request Preview:")
	previewStyle := lipgloss.NewStyle().
		Foreground(fb.Theme.Info).
		Padding(0, 1).
		Italic(true)
	sections = append(sections, previewStyle.Render(fb.Preview()))

	containerStyle := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(fb.Theme.BorderFocused).
		Foreground(fb.Theme.Foreground).
		Width(fb.Width).
		Padding(1)

	return containerStyle.Render(strings.Join(sections, "\n"))
}

func placeholder(field formField) string {
	switch field.key {
	case models.ByType:
		return "any type"
	case fieldSort:
		return "default order"
	case fieldPerPage:
		return strconv.Itoa(models.DefaultPerPage)
	}
	return "-"
}
