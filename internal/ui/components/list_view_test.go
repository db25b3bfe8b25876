package components

import (
	"strings"
	"testing"

	"github.com/rebeliceyang/lazybrew/internal/models"
	"github.com/rebeliceyang/lazybrew/internal/state"
	"github.com/rebeliceyang/lazybrew/internal/ui/theme"
)

func snapshot(query string, filters models.FilterSet, results ...models.Brewery) state.Snapshot {
	return state.Snapshot{
		Results: results,
		Query:   models.QueryState{Query: query, Filters: filters},
	}
}

func TestQueryEcho_Sync(t *testing.T) {
	var echo QueryEcho

	filters := models.FilterSet{ByType: "micro", PerPage: 20}
	if !echo.Sync(snapshot("", filters)) {
		t.Error("expected first sync to report a change")
	}
	if echo.AppliedFilters != filters {
		t.Errorf("expected filters %+v, got %+v", filters, echo.AppliedFilters)
	}
	if echo.Sync(snapshot("", filters)) {
		t.Error("expected identical snapshot to report no change")
	}

	// local edits are overwritten by the next canonical value
	echo.SearchQuery = "typed but not submitted"
	echo.Sync(snapshot(models.RandomQuery, models.FilterSet{}))
	if echo.SearchQuery != models.RandomQuery {
		t.Errorf("expected echo to follow canonical query, got %q", echo.SearchQuery)
	}
	if echo.AppliedFilters != (models.FilterSet{}) {
		t.Errorf("expected cleared filters, got %+v", echo.AppliedFilters)
	}
}

func TestQueryEcho_Label(t *testing.T) {
	tests := []struct {
		echo QueryEcho
		want string
	}{
		{QueryEcho{AppliedFilters: models.DefaultFilterSet()}, "All breweries"},
		{QueryEcho{AppliedFilters: models.FilterSet{ByCity: "bend"}}, "Filtered breweries"},
		{QueryEcho{SearchQuery: "dog"}, "Search: dog"},
		{QueryEcho{SearchQuery: models.RandomQuery}, "Random brewery"},
	}
	for _, tt := range tests {
		if got := tt.echo.Label(); got != tt.want {
			t.Errorf("Label() = %q, want %q", got, tt.want)
		}
	}
}

func TestListView_SyncAndSelect(t *testing.T) {
	lv := NewListView(theme.DefaultTheme())
	lv.Width = 100
	lv.Height = 20

	lv.Sync(snapshot("", models.DefaultFilterSet(), quickFilterFixture()...))
	if len(lv.Rows) != 4 {
		t.Fatalf("expected 4 rows, got %d", len(lv.Rows))
	}

	lv.MoveSelection(2)
	b, ok := lv.Selected()
	if !ok || b.ID != "3" {
		t.Errorf("expected row 3 selected, got %+v", b)
	}

	lv.MoveSelection(10)
	if lv.SelectedRow != 3 {
		t.Errorf("expected selection clamped to 3, got %d", lv.SelectedRow)
	}
	lv.Top()
	if lv.SelectedRow != 0 {
		t.Errorf("expected top row, got %d", lv.SelectedRow)
	}
	lv.Bottom()
	if lv.SelectedRow != 3 {
		t.Errorf("expected bottom row, got %d", lv.SelectedRow)
	}

	// same ids keep the selection, new results reset it
	lv.Sync(snapshot("", models.DefaultFilterSet(), quickFilterFixture()...))
	if lv.SelectedRow != 3 {
		t.Errorf("expected selection kept, got %d", lv.SelectedRow)
	}
	lv.Sync(snapshot(models.RandomQuery, models.FilterSet{}, models.Brewery{ID: "r", Name: "Random"}))
	if lv.SelectedRow != 0 || len(lv.Rows) != 1 {
		t.Errorf("expected single reset row, got %d rows selected %d", len(lv.Rows), lv.SelectedRow)
	}
}

func TestListView_QuickFilterKeepsSharedResults(t *testing.T) {
	lv := NewListView(theme.DefaultTheme())
	lv.Sync(snapshot("", models.DefaultFilterSet(), quickFilterFixture()...))

	lv.SetQuickFilter("c:bend")
	if len(lv.Rows) != 2 {
		t.Fatalf("expected 2 rows, got %d", len(lv.Rows))
	}
	if len(lv.All()) != 4 {
		t.Errorf("expected the shared results untouched, got %d", len(lv.All()))
	}

	// the quick filter survives a refresh of the shared results
	lv.Sync(snapshot("", models.DefaultFilterSet(), quickFilterFixture()...))
	if len(lv.Rows) != 2 {
		t.Errorf("expected quick filter to persist, got %d rows", len(lv.Rows))
	}

	lv.SetQuickFilter("")
	if len(lv.Rows) != 4 {
		t.Errorf("expected all rows after clearing, got %d", len(lv.Rows))
	}
}

func TestListView_View(t *testing.T) {
	lv := NewListView(theme.DefaultTheme())
	lv.Width = 100
	lv.Height = 12

	lv.Sync(state.Snapshot{Loading: true, Query: models.QueryState{Filters: models.DefaultFilterSet()}})
	if !strings.Contains(lv.View(), "Loading breweries...") {
		t.Error("expected loading message")
	}

	snap := snapshot("dog", models.DefaultFilterSet(), quickFilterFixture()...)
	snap.Err = "Rate limit nearly exceeded"
	lv.Sync(snap)
	view := lv.View()
	for _, want := range []string{"Search: dog", "Dogfish Head", "Guinness", "Error: Rate limit nearly exceeded", "1-4 of 4 breweries"} {
		if !strings.Contains(view, want) {
			t.Errorf("expected view to contain %q", want)
		}
	}
}

func TestPad(t *testing.T) {
	if got := pad("abc", 6); got != "abc   " {
		t.Errorf("expected right padding, got %q", got)
	}
	if got := pad("Weihenstephaner", 8); got != "Weihens…" {
		t.Errorf("expected truncation, got %q", got)
	}
}
