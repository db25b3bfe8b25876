package components

import (
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/rebeliceyang/lazybrew/internal/models"
	"github.com/rebeliceyang/lazybrew/internal/ui/theme"
)

func press(fb *FilterBuilder, keys ...string) tea.Cmd {
	var cmd tea.Cmd
	for _, k := range keys {
		var msg tea.KeyMsg
		switch k {
		case "enter":
			msg = tea.KeyMsg{Type: tea.KeyEnter}
		case "esc":
			msg = tea.KeyMsg{Type: tea.KeyEsc}
		case "down":
			msg = tea.KeyMsg{Type: tea.KeyDown}
		case "up":
			msg = tea.KeyMsg{Type: tea.KeyUp}
		case "right":
			msg = tea.KeyMsg{Type: tea.KeyRight}
		case "left":
			msg = tea.KeyMsg{Type: tea.KeyLeft}
		case "backspace":
			msg = tea.KeyMsg{Type: tea.KeyBackspace}
		default:
			msg = tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(k)}
		}
		fb, cmd = fb.Update(msg)
	}
	return cmd
}

func TestFilterBuilder_CycleType(t *testing.T) {
	fb := NewFilterBuilder(theme.DefaultTheme())

	press(fb, "right")
	if fb.Filters().ByType != "micro" {
		t.Errorf("expected micro, got %q", fb.Filters().ByType)
	}
	press(fb, "left")
	if fb.Filters().ByType != "" {
		t.Errorf("expected any type, got %q", fb.Filters().ByType)
	}
	press(fb, "left")
	if fb.Filters().ByType != "beergarden" {
		t.Errorf("expected wrap to beergarden, got %q", fb.Filters().ByType)
	}
}

func TestFilterBuilder_EditAndApply(t *testing.T) {
	fb := NewFilterBuilder(theme.DefaultTheme())
	fb.SetFilters(models.DefaultFilterSet())

	// State field: edit, type, confirm
	press(fb, "down", "e", "o", "h", "i", "o", "enter")
	if fb.Filters().ByState != "ohio" {
		t.Fatalf("expected ohio, got %q", fb.Filters().ByState)
	}

	// Sort field is seventh
	press(fb, "down", "down", "down", "down", "down", "right")
	if fb.Filters().Sort != models.SortNameAsc {
		t.Errorf("expected name:asc, got %q", fb.Filters().Sort)
	}

	if !strings.Contains(fb.Preview(), "by_state=ohio") || !strings.Contains(fb.Preview(), "per_page=10") {
		t.Errorf("unexpected preview %q", fb.Preview())
	}

	cmd := press(fb, "enter")
	if cmd == nil {
		t.Fatal("expected apply command")
	}
	msg, ok := cmd().(ApplyFiltersMsg)
	if !ok {
		t.Fatalf("expected ApplyFiltersMsg, got %#v", cmd())
	}
	want := models.FilterSet{ByState: "ohio", Sort: models.SortNameAsc, PerPage: 10}
	if msg.Filters != want {
		t.Errorf("expected %+v, got %+v", want, msg.Filters)
	}
}

func TestFilterBuilder_EditCancel(t *testing.T) {
	fb := NewFilterBuilder(theme.DefaultTheme())
	press(fb, "down", "e", "x", "y", "esc")
	if fb.Filters().ByState != "" {
		t.Errorf("expected edit to be discarded, got %q", fb.Filters().ByState)
	}
}

func TestFilterBuilder_PerPageValidation(t *testing.T) {
	fb := NewFilterBuilder(theme.DefaultTheme())
	fb.SetFilters(models.FilterSet{PerPage: 500})

	if cmd := press(fb, "enter"); cmd != nil {
		t.Error("expected invalid filters to stay in the form")
	}
	if !strings.Contains(fb.View(), "Error:") {
		t.Error("expected validation error in view")
	}

	// per page only accepts digits
	fb.SetFilters(models.DefaultFilterSet())
	press(fb, "down", "down", "down", "down", "down", "down", "down", "e", "backspace", "backspace", "2", "a", "5", "enter")
	if fb.Filters().PerPage != 25 {
		t.Errorf("expected per page 25, got %d", fb.Filters().PerPage)
	}
}

func TestFilterBuilder_ClearAll(t *testing.T) {
	fb := NewFilterBuilder(theme.DefaultTheme())
	fb.SetFilters(models.FilterSet{ByType: "micro", ByCity: "bend", PerPage: 20})

	cmd := press(fb, "x")
	if _, ok := cmd().(ClearFiltersMsg); !ok {
		t.Error("expected ClearFiltersMsg")
	}
	if fb.Filters() != models.DefaultFilterSet() {
		t.Errorf("expected default filters, got %+v", fb.Filters())
	}
}

func TestFilterBuilder_Close(t *testing.T) {
	fb := NewFilterBuilder(theme.DefaultTheme())
	cmd := press(fb, "esc")
	if _, ok := cmd().(CloseFilterBuilderMsg); !ok {
		t.Error("expected CloseFilterBuilderMsg")
	}
}
