package app

import (
	"errors"
	"fmt"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/rebeliceyang/lazybrew/internal/api"
	"github.com/rebeliceyang/lazybrew/internal/export"
	"github.com/rebeliceyang/lazybrew/internal/filter"
	"github.com/rebeliceyang/lazybrew/internal/models"
	"github.com/rebeliceyang/lazybrew/internal/ui/components"
	"golang.org/x/sync/errgroup"
)

// waitForChange blocks until the manager signals a change, then hands the
// current snapshot to Update
func (a *App) waitForChange() tea.Cmd {
	changes := a.changes
	manager := a.manager
	ctx := a.ctx
	return func() tea.Msg {
		select {
		case <-changes:
			return StateChangedMsg{Snapshot: manager.Snapshot()}
		case <-ctx.Done():
			return nil
		}
	}
}

// initialLoad fetches the first page and the summary in parallel
func (a *App) initialLoad() tea.Cmd {
	scope := a.manager.MetaScope()
	a.metaView.SetLoading(scope)

	ctx := a.ctx
	manager := a.manager
	return func() tea.Msg {
		var (
			g       errgroup.Group
			msg     = InitialLoadMsg{Scope: scope}
			listErr error
		)
		g.Go(func() error {
			listErr = manager.FetchDefault(ctx, nil)
			return listErr
		})
		g.Go(func() error {
			msg.Meta, msg.MetaErr = manager.Meta(ctx, scope)
			return msg.MetaErr
		})
		_ = g.Wait()
		msg.Err = listErr
		return msg
	}
}

// refreshMetaIfScopeChanged refetches the summary when the active query
// selects a different meta scope
func (a *App) refreshMetaIfScopeChanged() tea.Cmd {
	scope := a.manager.MetaScope()
	if components.ScopeLabel(scope) == components.ScopeLabel(a.metaView.Scope) {
		return nil
	}
	a.metaView.SetLoading(scope)

	ctx := a.ctx
	manager := a.manager
	return func() tea.Msg {
		summary, err := manager.Meta(ctx, scope)
		return MetaLoadedMsg{Scope: scope, Summary: summary, Err: err}
	}
}

// runOperation switches to the list screen and runs a result-producing
// manager call in the background
func (a *App) runOperation(op string, fn func() error) tea.Cmd {
	a.showList()
	return func() tea.Msg {
		return OperationDoneMsg{Op: op, Err: fn()}
	}
}

func (a *App) dispatchSearch(query string) tea.Cmd {
	ctx := a.ctx
	return a.runOperation("search", func() error {
		return a.manager.Search(ctx, query)
	})
}

func (a *App) dispatchFilters(f models.FilterSet) tea.Cmd {
	ctx := a.ctx
	return a.runOperation("list", func() error {
		return a.manager.FetchDefault(ctx, &f)
	})
}

func (a *App) dispatchRandom() tea.Cmd {
	ctx := a.ctx
	return a.runOperation("random", func() error {
		return a.manager.FetchRandom(ctx)
	})
}

func (a *App) dispatchClearAll() tea.Cmd {
	a.quickFilter.SetValue("")
	a.listView.SetQuickFilter("")
	ctx := a.ctx
	return a.runOperation("clear", func() error {
		return a.manager.ClearAll(ctx)
	})
}

// dispatchRefresh repeats the current query: a search is re-run, random
// draws a new brewery and browsing refetches the current filters
func (a *App) dispatchRefresh() tea.Cmd {
	q := a.manager.Snapshot().Query
	switch q.Mode() {
	case models.ModeSearch:
		return a.dispatchSearch(q.Query)
	case models.ModeRandom:
		return a.dispatchRandom()
	}
	return a.dispatchFilters(q.Filters)
}

// dispatchSort steps the sort option and refetches in browse mode. Random
// leaves no page size behind, so the session default is used.
func (a *App) dispatchSort(dir int) tea.Cmd {
	f := a.manager.Snapshot().Query.Filters
	if f.PerPage <= 0 {
		f.PerPage = a.manager.DefaultFilters().PerPage
	}
	if f.PerPage <= 0 {
		f.PerPage = models.DefaultPerPage
	}
	if dir < 0 {
		f.Sort = filter.PrevSortOption(f.Sort)
	} else {
		f.Sort = filter.NextSortOption(f.Sort)
	}
	a.statusMessage = "Sort: " + sortLabel(f.Sort)
	return a.dispatchFilters(f)
}

func sortLabel(s models.SortOption) string {
	if s == models.SortDefault {
		return "default"
	}
	return string(s)
}

// openDetail routes to the detail screen and loads the brewery by id
func (a *App) openDetail(id string) tea.Cmd {
	a.state.Screen = models.DetailScreen
	a.state.DetailID = id
	a.rightPanel.Title = "Brewery"
	a.detailView.Load(id)

	ctx := a.ctx
	manager := a.manager
	return func() tea.Msg {
		b, err := manager.GetByID(ctx, id)
		return DetailLoadedMsg{ID: id, Brewery: b, Err: err}
	}
}

func (a *App) autocomplete(text string) tea.Cmd {
	ctx := a.ctx
	manager := a.manager
	return func() tea.Msg {
		suggestions, err := manager.Autocomplete(ctx, text)
		return components.SuggestionsMsg{Text: text, Suggestions: suggestions, Err: err}
	}
}

// exportResults writes the full current result set, ignoring the quick
// filter
func (a *App) exportResults(format export.Format) tea.Cmd {
	breweries := a.listView.All()
	if len(breweries) == 0 {
		a.statusMessage = "Nothing to export"
		return nil
	}

	dir := a.config.Export.Dir
	now := a.now()
	logger := a.logger
	return func() tea.Msg {
		path, err := export.Export(breweries, dir, format, now)
		if err != nil {
			logger.Error().Err(err).Str("format", string(format)).Msg("export failed")
			return ExportDoneMsg{Err: fmt.Errorf("export %s: %w", format, err)}
		}
		logger.Info().Str("path", path).Int("rows", len(breweries)).Msg("exported results")
		return ExportDoneMsg{Path: path}
	}
}

func isRateLimited(err error) bool {
	return errors.Is(err, api.ErrRateLimited)
}
