package app

import (
	"context"
	"fmt"
	"time"

	bhelp "github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	zone "github.com/lrstanley/bubblezone"
	"github.com/mattn/go-runewidth"
	"github.com/rebeliceyang/lazybrew/internal/api"
	"github.com/rebeliceyang/lazybrew/internal/config"
	"github.com/rebeliceyang/lazybrew/internal/export"
	"github.com/rebeliceyang/lazybrew/internal/models"
	"github.com/rebeliceyang/lazybrew/internal/state"
	"github.com/rebeliceyang/lazybrew/internal/ui/components"
	"github.com/rebeliceyang/lazybrew/internal/ui/help"
	"github.com/rebeliceyang/lazybrew/internal/ui/theme"
	"github.com/rs/zerolog"
)

// App is the main application model
type App struct {
	state      models.AppState
	config     *config.Config
	theme      theme.Theme
	keys       help.KeyMap
	shortHelp  bhelp.Model
	leftPanel  components.Panel
	rightPanel components.Panel

	manager *state.Manager
	guard   *api.RateLimitGuard
	logger  zerolog.Logger
	now     func() time.Time

	// manager notifications, coalesced to one pending signal
	changes     chan struct{}
	unsubscribe func()

	ctx    context.Context
	cancel context.CancelFunc

	// Error overlay
	showError    bool
	errorOverlay *components.ErrorOverlay

	spinner     spinner.Model
	listView    *components.ListView
	detailView  *components.DetailView
	search      *components.SearchInput
	filterForm  *components.FilterBuilder
	quickFilter textinput.Model
	metaView    *components.MetaSummaryView
	charts      *components.Charts

	statusMessage string
}

// StateChangedMsg carries the canonical state after a manager change
type StateChangedMsg struct {
	Snapshot state.Snapshot
}

// OperationDoneMsg is sent when a result-producing operation finishes
type OperationDoneMsg struct {
	Op  string
	Err error
}

// InitialLoadMsg is sent when the startup list and meta fetches finish
type InitialLoadMsg struct {
	Scope   models.MetaParams
	Meta    models.MetaSummary
	MetaErr error
	Err     error
}

// DetailLoadedMsg carries a single brewery for the detail screen
type DetailLoadedMsg struct {
	ID      string
	Brewery models.Brewery
	Err     error
}

// MetaLoadedMsg carries aggregate counts for a scope
type MetaLoadedMsg struct {
	Scope   models.MetaParams
	Summary models.MetaSummary
	Err     error
}

// ExportDoneMsg is sent when an export finishes
type ExportDoneMsg struct {
	Path string
	Err  error
}

// RateLimitMsg is sent by the rate limit guard hook
type RateLimitMsg struct {
	Remaining int
}

// ErrorMsg is sent when an error occurs
type ErrorMsg struct {
	Title   string
	Message string
}

// Option configures an App
type Option func(*App)

// WithGuard lets the status bar show the remaining quota
func WithGuard(g *api.RateLimitGuard) Option {
	return func(a *App) { a.guard = g }
}

// WithLogger sets the application logger
func WithLogger(l zerolog.Logger) Option {
	return func(a *App) { a.logger = l }
}

// WithClock overrides the clock used for export file names
func WithClock(now func() time.Time) Option {
	return func(a *App) { a.now = now }
}

// New creates a new App instance around the session's state manager
func New(cfg *config.Config, manager *state.Manager, opts ...Option) *App {
	if cfg == nil {
		cfg = config.GetDefaults()
	}
	appState := models.NewAppState()

	// Load theme
	th := theme.GetTheme(cfg.UI.Theme)

	// Apply config to state
	if cfg.UI.PanelWidthRatio > 0 && cfg.UI.PanelWidthRatio < 100 {
		appState.LeftPanelWidth = cfg.UI.PanelWidthRatio
	}

	sp := spinner.New(spinner.WithSpinner(spinner.Dot))
	sp.Style = lipgloss.NewStyle().Foreground(th.Accent)

	qf := textinput.New()
	qf.Placeholder = "name, t:type, c:city, s:state, co:country, !negate"
	qf.Prompt = "quick filter> "
	qf.CharLimit = 128

	ctx, cancel := context.WithCancel(context.Background())

	a := &App{
		state:        appState,
		config:       cfg,
		theme:        th,
		keys:         help.DefaultKeyMap(),
		shortHelp:    bhelp.New(),
		manager:      manager,
		logger:       zerolog.Nop(),
		now:          time.Now,
		changes:      make(chan struct{}, 1),
		ctx:          ctx,
		cancel:       cancel,
		errorOverlay: components.NewErrorOverlay(th),
		spinner:      sp,
		listView:     components.NewListView(th),
		detailView:   components.NewDetailView(th),
		search:       components.NewSearchInput(th, cfg.API.AutocompleteMinChars),
		filterForm:   components.NewFilterBuilder(th),
		quickFilter:  qf,
		metaView:     components.NewMetaSummaryView(th),
		charts:       components.NewCharts(th),
		leftPanel:    components.Panel{Title: "Overview", Theme: th},
		rightPanel:   components.Panel{Title: "Breweries", Theme: th},
	}
	for _, opt := range opts {
		opt(a)
	}

	a.listView.Spinner = &a.spinner
	a.detailView.Spinner = &a.spinner

	a.unsubscribe = manager.Subscribe(func(state.Snapshot) {
		select {
		case a.changes <- struct{}{}:
		default:
		}
	})

	a.syncViews(manager.Snapshot())

	// Set initial panel dimensions and styles
	a.updatePanelDimensions()
	a.updatePanelStyles()

	return a
}

// Init implements tea.Model
func (a *App) Init() tea.Cmd {
	return tea.Batch(a.waitForChange(), a.spinner.Tick, a.initialLoad())
}

// Update implements tea.Model
func (a *App) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case ErrorMsg:
		a.ShowError(msg.Title, msg.Message)
		return a, nil

	case RateLimitMsg:
		a.showRateLimit(msg.Remaining)
		return a, nil

	case StateChangedMsg:
		a.syncViews(msg.Snapshot)
		cmds := []tea.Cmd{a.waitForChange()}
		if cmd := a.refreshMetaIfScopeChanged(); cmd != nil {
			cmds = append(cmds, cmd)
		}
		return a, tea.Batch(cmds...)

	case OperationDoneMsg:
		if msg.Err != nil {
			a.logger.Warn().Err(msg.Err).Str("op", msg.Op).Msg("operation failed")
			if isRateLimited(msg.Err) {
				a.showRateLimit(a.remaining())
			}
		}
		return a, nil

	case InitialLoadMsg:
		// a search issued before startup finished owns the summary by now
		if components.ScopeLabel(msg.Scope) == components.ScopeLabel(a.metaView.Scope) {
			a.metaView.SetResult(msg.Meta, msg.MetaErr)
		}
		if msg.Err != nil {
			a.logger.Warn().Err(msg.Err).Msg("initial load failed")
			if isRateLimited(msg.Err) {
				a.showRateLimit(a.remaining())
			}
		}
		return a, nil

	case DetailLoadedMsg:
		a.detailView.SetResult(msg.ID, msg.Brewery, msg.Err)
		return a, nil

	case MetaLoadedMsg:
		if components.ScopeLabel(msg.Scope) == components.ScopeLabel(a.metaView.Scope) {
			a.metaView.SetResult(msg.Summary, msg.Err)
		}
		return a, nil

	case ExportDoneMsg:
		if msg.Err != nil {
			a.ShowError("Export Failed", msg.Err.Error())
			return a, nil
		}
		a.statusMessage = "Exported to " + msg.Path
		return a, nil

	case spinner.TickMsg:
		var cmd tea.Cmd
		a.spinner, cmd = a.spinner.Update(msg)
		return a, cmd

	case components.SearchInputMsg:
		a.state.Overlay = models.NoOverlay
		return a, a.dispatchSearch(msg.Query)

	case components.SuggestionSelectedMsg:
		a.state.Overlay = models.NoOverlay
		return a, a.openDetail(msg.Suggestion.ID)

	case components.AutocompleteRequestMsg:
		return a, a.autocomplete(msg.Text)

	case components.SuggestionsMsg:
		if a.state.Overlay == models.SearchOverlay {
			a.search.SetSuggestions(msg)
		}
		return a, nil

	case components.CloseSearchMsg:
		a.state.Overlay = models.NoOverlay
		return a, nil

	case components.ApplyFiltersMsg:
		a.state.Overlay = models.NoOverlay
		return a, a.dispatchFilters(msg.Filters)

	case components.ClearFiltersMsg:
		a.state.Overlay = models.NoOverlay
		return a, a.dispatchClearAll()

	case components.CloseFilterBuilderMsg:
		a.state.Overlay = models.NoOverlay
		return a, nil

	case tea.MouseMsg:
		if a.config.UI.ShowCharts {
			if handled, _ := a.charts.HandleMouseClick(msg); handled {
				a.state.FocusedPanel = models.LeftPanel
				a.updatePanelStyles()
			}
		}
		return a, nil

	case tea.KeyMsg:
		return a.handleKey(msg)

	case tea.WindowSizeMsg:
		a.state.Width = msg.Width
		a.state.Height = msg.Height
		a.updatePanelDimensions()
	}
	return a, nil
}

// handleKey routes key presses to the active overlay or screen
func (a *App) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	// Handle error overlay dismissal first if visible
	if a.showError {
		switch {
		case key.Matches(msg, a.keys.Dismiss):
			a.DismissError()
		case key.Matches(msg, a.keys.Quit):
			return a, a.quit()
		}
		// Consume all other keys when error is showing
		return a, nil
	}

	if a.state.ViewMode == models.HelpMode {
		switch msg.String() {
		case "?", "esc", "q":
			a.state.ViewMode = models.NormalMode
		case "ctrl+c":
			return a, a.quit()
		}
		return a, nil
	}

	switch a.state.Overlay {
	case models.SearchOverlay:
		var cmd tea.Cmd
		a.search, cmd = a.search.Update(msg)
		return a, cmd
	case models.FilterOverlay:
		var cmd tea.Cmd
		a.filterForm, cmd = a.filterForm.Update(msg)
		return a, cmd
	case models.QuickFilterOverlay:
		return a.handleQuickFilter(msg)
	}

	a.statusMessage = ""

	switch {
	case key.Matches(msg, a.keys.Quit):
		return a, a.quit()
	case key.Matches(msg, a.keys.Help):
		a.state.ViewMode = models.HelpMode
		return a, nil
	case key.Matches(msg, a.keys.Search):
		a.search.Reset()
		a.state.Overlay = models.SearchOverlay
		return a, textinput.Blink
	case key.Matches(msg, a.keys.Filter):
		a.filterForm.SetFilters(a.listView.Echo.AppliedFilters)
		a.state.Overlay = models.FilterOverlay
		return a, nil
	case key.Matches(msg, a.keys.Random):
		return a, a.dispatchRandom()
	case key.Matches(msg, a.keys.ClearAll):
		return a, a.dispatchClearAll()
	case key.Matches(msg, a.keys.Refresh):
		return a, a.dispatchRefresh()
	case key.Matches(msg, a.keys.SwitchPanel):
		if a.state.FocusedPanel == models.LeftPanel {
			a.state.FocusedPanel = models.RightPanel
		} else {
			a.state.FocusedPanel = models.LeftPanel
		}
		a.updatePanelStyles()
		return a, nil
	case key.Matches(msg, a.keys.ExportCSV):
		return a, a.exportResults(export.FormatCSV)
	case key.Matches(msg, a.keys.ExportJSON):
		return a, a.exportResults(export.FormatJSON)
	}

	if a.state.FocusedPanel == models.LeftPanel {
		switch {
		case key.Matches(msg, a.keys.ChartLeft):
			a.charts.NextTab(-1)
		case key.Matches(msg, a.keys.ChartRight):
			a.charts.NextTab(1)
		}
		return a, nil
	}

	if a.state.Screen == models.DetailScreen {
		return a.handleDetailKey(msg)
	}
	return a.handleListKey(msg)
}

func (a *App) handleListKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, a.keys.Up):
		a.listView.MoveSelection(-1)
	case key.Matches(msg, a.keys.Down):
		a.listView.MoveSelection(1)
	case key.Matches(msg, a.keys.PageUp):
		a.listView.PageUp()
	case key.Matches(msg, a.keys.PageDown):
		a.listView.PageDown()
	case key.Matches(msg, a.keys.Top):
		a.listView.Top()
	case key.Matches(msg, a.keys.Bottom):
		a.listView.Bottom()
	case key.Matches(msg, a.keys.Open):
		if b, ok := a.listView.Selected(); ok {
			return a, a.openDetail(b.ID)
		}
	case key.Matches(msg, a.keys.QuickFilter):
		a.quickFilter.SetValue(a.quickFilterText())
		a.quickFilter.Focus()
		a.state.Overlay = models.QuickFilterOverlay
		return a, textinput.Blink
	case key.Matches(msg, a.keys.Sort):
		return a, a.dispatchSort(1)
	case key.Matches(msg, a.keys.SortReverse):
		return a, a.dispatchSort(-1)
	}
	return a, nil
}

func (a *App) handleDetailKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, a.keys.Back):
		a.showList()
		return a, nil
	case key.Matches(msg, a.keys.CopyID):
		id, err := a.detailView.CopyID()
		a.reportCopy("id", id, err)
		return a, nil
	case key.Matches(msg, a.keys.CopyURL):
		url, err := a.detailView.CopyWebsite()
		a.reportCopy("website", url, err)
		return a, nil
	case key.Matches(msg, a.keys.ToggleRaw):
		a.detailView.ToggleRaw()
		return a, nil
	}
	return a, a.detailView.Update(msg)
}

func (a *App) handleQuickFilter(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.Type {
	case tea.KeyEnter:
		a.quickFilter.Blur()
		a.state.Overlay = models.NoOverlay
		return a, nil
	case tea.KeyEsc:
		a.quickFilter.Blur()
		a.quickFilter.SetValue("")
		a.listView.SetQuickFilter("")
		a.state.Overlay = models.NoOverlay
		return a, nil
	}

	var cmd tea.Cmd
	a.quickFilter, cmd = a.quickFilter.Update(msg)
	a.listView.SetQuickFilter(a.quickFilter.Value())
	a.charts.SetData(a.listView.Rows)
	return a, cmd
}

func (a *App) quickFilterText() string {
	q := a.listView.QuickFilter()
	if q.Pattern == "" {
		return ""
	}
	return a.quickFilter.Value()
}

func (a *App) reportCopy(what, value string, err error) {
	if err != nil {
		a.ShowError("Copy Failed", fmt.Sprintf("Could not copy %s: %v", what, err))
		return
	}
	a.statusMessage = fmt.Sprintf("Copied %s: %s", what, value)
}

// syncViews pushes a snapshot into every view's local echo
func (a *App) syncViews(snap state.Snapshot) {
	a.listView.Sync(snap)
	a.detailView.Sync(snap)
	a.charts.SetData(a.listView.Rows)
}

// showList navigates back to the list screen
func (a *App) showList() {
	a.state.Screen = models.ListScreen
	a.state.DetailID = ""
	a.rightPanel.Title = "Breweries"
}

// showRateLimit raises the blocking quota warning
func (a *App) showRateLimit(remaining int) {
	msg := "The API reports almost no requests left in the current window. Wait a moment before searching again."
	if remaining >= 0 {
		msg = fmt.Sprintf("The API reports %d requests left in the current window. Wait a moment before searching again.", remaining)
	}
	a.errorOverlay.SetWarning(api.ErrRateLimited.Error(), msg)
	a.showError = true
}

func (a *App) remaining() int {
	if a.guard == nil {
		return -1
	}
	return a.guard.Remaining()
}

func (a *App) quit() tea.Cmd {
	if a.unsubscribe != nil {
		a.unsubscribe()
	}
	a.cancel()
	return tea.Quit
}

// View implements tea.Model
func (a *App) View() string {
	// If error overlay is showing, render it centered on top of everything
	if a.showError {
		return lipgloss.Place(
			a.state.Width, a.state.Height,
			lipgloss.Center, lipgloss.Center,
			a.errorOverlay.View(),
		)
	}

	// If in help mode, show help overlay
	if a.state.ViewMode == models.HelpMode {
		return help.Render(a.state.Width, a.state.Height, a.keys, a.theme)
	}

	switch a.state.Overlay {
	case models.SearchOverlay:
		a.search.Width = min(a.state.Width-4, 70)
		return lipgloss.Place(a.state.Width, a.state.Height, lipgloss.Center, lipgloss.Center, a.search.View())
	case models.FilterOverlay:
		a.filterForm.Width = min(a.state.Width-4, 80)
		return lipgloss.Place(a.state.Width, a.state.Height, lipgloss.Center, lipgloss.Center, a.filterForm.View())
	}

	return zone.Scan(a.renderNormalView())
}

// renderNormalView renders the normal application view
func (a *App) renderNormalView() string {
	topBarContent := a.formatStatusBar("lazybrew", a.listView.Echo.Label())

	topBar := lipgloss.NewStyle().
		Width(a.state.Width).
		Background(a.theme.Accent).
		Foreground(a.theme.Background).
		Padding(0, 2).
		Render(topBarContent)

	a.leftPanel.Content = a.renderOverview()

	if a.state.Screen == models.DetailScreen {
		a.detailView.SetSize(a.rightPanel.Width, a.rightPanel.InnerHeight())
		a.rightPanel.Content = a.detailView.View()
	} else {
		a.listView.Width = a.rightPanel.Width
		a.listView.Height = a.rightPanel.InnerHeight()
		a.rightPanel.Content = a.listView.View()
	}

	panels := lipgloss.JoinHorizontal(
		lipgloss.Top,
		a.leftPanel.View(),
		a.rightPanel.View(),
	)

	return lipgloss.JoinVertical(
		lipgloss.Left,
		topBar,
		panels,
		a.renderBottomBar(),
	)
}

func (a *App) renderOverview() string {
	width := a.leftPanel.Width
	parts := []string{components.RenderStats(components.ComputeStats(a.listView.Rows), a.theme, width)}

	a.metaView.Width = width
	parts = append(parts, a.metaView.View())

	if a.config.UI.ShowCharts {
		a.charts.Width = width
		parts = append(parts, a.charts.View())
	}

	return lipgloss.JoinVertical(lipgloss.Left, joinWithGap(parts)...)
}

func joinWithGap(parts []string) []string {
	out := make([]string, 0, len(parts)*2)
	for i, p := range parts {
		if i > 0 {
			out = append(out, "")
		}
		out = append(out, p)
	}
	return out
}

func (a *App) renderBottomBar() string {
	if a.state.Overlay == models.QuickFilterOverlay {
		return lipgloss.NewStyle().
			Width(a.state.Width).
			Background(a.theme.Selection).
			Foreground(a.theme.Foreground).
			Padding(0, 2).
			Render(a.quickFilter.View())
	}

	left := a.modeLabel()
	if r := a.remaining(); r >= 0 {
		left += fmt.Sprintf(" │ quota %d", r)
	}

	right := a.statusMessage
	if right == "" {
		a.shortHelp.Width = max(a.state.Width/2, 20)
		right = a.shortHelp.View(a.keys)
	}

	return lipgloss.NewStyle().
		Width(a.state.Width).
		Background(a.theme.Selection).
		Foreground(a.theme.Foreground).
		Padding(0, 2).
		Render(a.formatStatusBar(left, right))
}

func (a *App) modeLabel() string {
	echo := a.listView.Echo
	mode := models.QueryState{Query: echo.SearchQuery, Filters: echo.AppliedFilters}.Mode()
	label := fmt.Sprintf("[%s] %d results", mode, len(a.listView.All()))
	if a.listView.Loading {
		label += " " + a.spinner.View()
	}
	return label
}

// updatePanelDimensions calculates panel sizes based on window size
func (a *App) updatePanelDimensions() {
	if a.state.Width <= 0 || a.state.Height <= 0 {
		return
	}

	// Reserve space for top bar, bottom bar and panel borders
	contentHeight := a.state.Height - 4
	if contentHeight < 5 {
		contentHeight = 5
	}

	leftWidth := (a.state.Width * a.state.LeftPanelWidth) / 100
	if leftWidth < 20 {
		leftWidth = 20
	}

	// Each panel has a border 2 chars wide
	rightWidth := a.state.Width - leftWidth - 4
	if rightWidth < 20 {
		rightWidth = 20
		leftWidth = a.state.Width - rightWidth - 4
	}

	a.leftPanel.Width = leftWidth
	a.leftPanel.Height = contentHeight
	a.rightPanel.Width = rightWidth
	a.rightPanel.Height = contentHeight
}

// updatePanelStyles updates panel styling based on focus
func (a *App) updatePanelStyles() {
	a.leftPanel.Focused = a.state.FocusedPanel == models.LeftPanel
	a.rightPanel.Focused = a.state.FocusedPanel == models.RightPanel
}

// formatStatusBar formats a status bar with left and right aligned content
func (a *App) formatStatusBar(left, right string) string {
	// Account for padding (2 chars on each side = 4 total)
	availableWidth := a.state.Width - 4
	if availableWidth < 0 {
		availableWidth = 0
	}

	leftLen := lipgloss.Width(left)
	rightLen := lipgloss.Width(right)

	// If content is too wide, truncate
	if leftLen+rightLen > availableWidth {
		if availableWidth > rightLen {
			return runewidth.Truncate(left, availableWidth-rightLen, "") + right
		}
		return runewidth.Truncate(left, availableWidth, "")
	}

	spacing := availableWidth - leftLen - rightLen
	return left + lipgloss.NewStyle().Width(spacing).Render("") + right
}

// ShowError displays an error overlay with the given title and message
func (a *App) ShowError(title, message string) {
	a.errorOverlay.SetError(title, message)
	a.showError = true
}

// DismissError hides the error overlay and drops the recorded error
func (a *App) DismissError() {
	a.showError = false
	a.manager.ClearError()
}
