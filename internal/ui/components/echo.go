package components

import (
	"github.com/rebeliceyang/lazybrew/internal/models"
	"github.com/rebeliceyang/lazybrew/internal/state"
)

// QueryEcho is a view's local copy of the canonical query and filters.
// It only ever follows the manager; edits flow back through manager
// operations, never through the echo.
type QueryEcho struct {
	SearchQuery    string
	AppliedFilters models.FilterSet
}

// Sync overwrites the echo when the canonical values differ and reports
// whether anything changed
func (e *QueryEcho) Sync(snap state.Snapshot) bool {
	changed := false
	if e.SearchQuery != snap.Query.Query {
		e.SearchQuery = snap.Query.Query
		changed = true
	}
	if e.AppliedFilters != snap.Query.Filters {
		e.AppliedFilters = snap.Query.Filters
		changed = true
	}
	return changed
}

// Label describes the active query for headers and the status bar
func (e QueryEcho) Label() string {
	q := models.QueryState{Query: e.SearchQuery, Filters: e.AppliedFilters}
	switch q.Mode() {
	case models.ModeRandom:
		return "Random brewery"
	case models.ModeSearch:
		return "Search: " + e.SearchQuery
	}
	if e.AppliedFilters.HasConstraints() {
		return "Filtered breweries"
	}
	return "All breweries"
}
