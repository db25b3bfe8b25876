package components

import (
	"testing"

	"github.com/charmbracelet/bubbles/cursor"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/rebeliceyang/lazybrew/internal/models"
	"github.com/rebeliceyang/lazybrew/internal/ui/theme"
)

// newTestSearch disables cursor blinking so typed keys return no timers
func newTestSearch() *SearchInput {
	s := NewSearchInput(theme.DefaultTheme(), 3)
	s.Input.Cursor.SetMode(cursor.CursorStatic)
	return s
}

func typeText(s *SearchInput, text string) tea.Cmd {
	var cmd tea.Cmd
	for _, r := range text {
		s, cmd = s.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{r}})
	}
	return cmd
}

// collect runs a command and flattens batches into their messages
func collect(cmd tea.Cmd) []tea.Msg {
	if cmd == nil {
		return nil
	}
	msg := cmd()
	if batch, ok := msg.(tea.BatchMsg); ok {
		var out []tea.Msg
		for _, c := range batch {
			out = append(out, collect(c)...)
		}
		return out
	}
	if msg == nil {
		return nil
	}
	return []tea.Msg{msg}
}

func autocompleteRequests(msgs []tea.Msg) []AutocompleteRequestMsg {
	var out []AutocompleteRequestMsg
	for _, m := range msgs {
		if req, ok := m.(AutocompleteRequestMsg); ok {
			out = append(out, req)
		}
	}
	return out
}

func TestSearchInput_AutocompleteGate(t *testing.T) {
	s := newTestSearch()

	if reqs := autocompleteRequests(collect(typeText(s, "d"))); len(reqs) != 0 {
		t.Errorf("expected no request for 1 char, got %v", reqs)
	}
	if reqs := autocompleteRequests(collect(typeText(s, "o"))); len(reqs) != 0 {
		t.Errorf("expected no request for 2 chars, got %v", reqs)
	}

	reqs := autocompleteRequests(collect(typeText(s, "g")))
	if len(reqs) != 1 || reqs[0].Text != "dog" {
		t.Errorf("expected one request for 'dog', got %v", reqs)
	}
}

func TestSearchInput_DropsStaleSuggestions(t *testing.T) {
	s := newTestSearch()
	typeText(s, "dogf")

	stale := SuggestionsMsg{Text: "dog", Suggestions: []models.Suggestion{{ID: "1", Name: "Dog Days"}}}
	if s.SetSuggestions(stale) {
		t.Error("expected suggestions for old input to be dropped")
	}
	if len(s.Suggestions()) != 0 {
		t.Error("expected no suggestions after stale response")
	}

	fresh := SuggestionsMsg{Text: "dogf", Suggestions: []models.Suggestion{{ID: "2", Name: "Dogfish Head"}}}
	if !s.SetSuggestions(fresh) {
		t.Fatal("expected current suggestions to apply")
	}
	if len(s.Suggestions()) != 1 {
		t.Errorf("expected 1 suggestion, got %d", len(s.Suggestions()))
	}

	// typing again invalidates the dropdown
	typeText(s, "i")
	if len(s.Suggestions()) != 0 {
		t.Error("expected suggestions cleared on input change")
	}
}

func TestSearchInput_EnterSubmitsOrSelects(t *testing.T) {
	s := newTestSearch()

	if _, cmd := s.Update(tea.KeyMsg{Type: tea.KeyEnter}); cmd != nil {
		t.Error("expected blank enter to do nothing")
	}

	typeText(s, "stone")
	_, cmd := s.Update(tea.KeyMsg{Type: tea.KeyEnter})
	msgs := collect(cmd)
	if len(msgs) != 1 {
		t.Fatalf("expected one message, got %v", msgs)
	}
	if got, ok := msgs[0].(SearchInputMsg); !ok || got.Query != "stone" {
		t.Errorf("expected SearchInputMsg{stone}, got %#v", msgs[0])
	}

	s.SetSuggestions(SuggestionsMsg{Text: "stone", Suggestions: []models.Suggestion{
		{ID: "a", Name: "Stone Brewing"},
		{ID: "b", Name: "Stone Cow"},
	}})
	s.Update(tea.KeyMsg{Type: tea.KeyDown})
	s.Update(tea.KeyMsg{Type: tea.KeyDown})
	_, cmd = s.Update(tea.KeyMsg{Type: tea.KeyEnter})
	msgs = collect(cmd)
	if got, ok := msgs[0].(SuggestionSelectedMsg); !ok || got.Suggestion.ID != "b" {
		t.Errorf("expected second suggestion selected, got %#v", msgs[0])
	}
}

func TestSearchInput_Escape(t *testing.T) {
	s := newTestSearch()
	_, cmd := s.Update(tea.KeyMsg{Type: tea.KeyEsc})
	if _, ok := cmd().(CloseSearchMsg); !ok {
		t.Error("expected CloseSearchMsg")
	}
}
