package state

import (
	"context"
	"strings"
	"sync"

	"github.com/rebeliceyang/lazybrew/internal/models"
	"github.com/rs/zerolog"
)

// AutocompleteMinChars is the shortest input that triggers a suggestion
// request
const AutocompleteMinChars = 3

// Fetcher is the remote surface the manager drives. *api.Client satisfies it.
type Fetcher interface {
	GetBrewery(ctx context.Context, id string) (models.Brewery, error)
	ListBreweries(ctx context.Context, f models.FilterSet) ([]models.Brewery, error)
	RandomBrewery(ctx context.Context) (models.Brewery, error)
	Search(ctx context.Context, text string) ([]models.Brewery, error)
	Autocomplete(ctx context.Context, text string) ([]models.Suggestion, error)
	Meta(ctx context.Context, params models.MetaParams) (models.MetaSummary, error)
}

// Snapshot is an immutable copy of the canonical state
type Snapshot struct {
	Results []models.Brewery
	Err     string
	Loading bool
	Query   models.QueryState

	// Generation of the operation that produced Results
	Generation uint64
}

// Listener is notified after every canonical state change
type Listener func(Snapshot)

// Manager owns the canonical query, filters and result set for a session.
// One instance is shared by every view. Result-producing operations are
// tagged with a generation token and only the latest one may apply its
// outcome, so a slow earlier response never overwrites a newer one.
type Manager struct {
	fetcher Fetcher
	logger  zerolog.Logger

	mu        sync.Mutex
	results   []models.Brewery
	errMsg    string
	loading   bool
	query     models.QueryState
	shown     models.QueryState // query that produced results
	issued    uint64            // last generation handed out
	applied   uint64            // generation whose results are shown
	listeners map[int]Listener
	nextID    int

	// filter set ClearAll returns to
	defaults models.FilterSet

	minAutocomplete int
}

// Option configures a Manager
type Option func(*Manager)

// WithLogger sets the manager's logger
func WithLogger(l zerolog.Logger) Option {
	return func(m *Manager) { m.logger = l }
}

// WithAutocompleteMinChars overrides the suggestion length gate
func WithAutocompleteMinChars(n int) Option {
	return func(m *Manager) {
		if n > 0 {
			m.minAutocomplete = n
		}
	}
}

// WithInitialFilters sets the filter set the session starts with
func WithInitialFilters(f models.FilterSet) Option {
	return func(m *Manager) {
		m.query.Filters = f
		m.defaults = f
	}
}

// NewManager creates the session's state owner
func NewManager(fetcher Fetcher, opts ...Option) *Manager {
	m := &Manager{
		fetcher:         fetcher,
		logger:          zerolog.Nop(),
		query:           models.QueryState{Filters: models.DefaultFilterSet()},
		listeners:       make(map[int]Listener),
		defaults:        models.DefaultFilterSet(),
		minAutocomplete: AutocompleteMinChars,
	}
	for _, opt := range opts {
		opt(m)
	}
	m.shown = m.query
	return m
}

// DefaultFilters returns the filter set the session started with
func (m *Manager) DefaultFilters() models.FilterSet {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.defaults
}

// Snapshot returns a copy of the current canonical state
func (m *Manager) Snapshot() Snapshot {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.snapshotLocked()
}

func (m *Manager) snapshotLocked() Snapshot {
	results := make([]models.Brewery, len(m.results))
	copy(results, m.results)
	return Snapshot{
		Results:    results,
		Err:        m.errMsg,
		Loading:    m.loading,
		Query:      m.query,
		Generation: m.applied,
	}
}

// Subscribe registers fn for change notifications and returns a function
// that removes it. Listeners run outside the manager's lock.
func (m *Manager) Subscribe(fn Listener) func() {
	m.mu.Lock()
	id := m.nextID
	m.nextID++
	m.listeners[id] = fn
	m.mu.Unlock()

	return func() {
		m.mu.Lock()
		delete(m.listeners, id)
		m.mu.Unlock()
	}
}

// FetchDefault is the browse/reset path: it clears the free-text query, sets
// the filter set (nil keeps the current one) and lists breweries.
func (m *Manager) FetchDefault(ctx context.Context, filters *models.FilterSet) error {
	m.mu.Lock()
	if filters != nil {
		m.query.Filters = *filters
	}
	m.query.Query = ""
	f := m.query.Filters
	gen := m.beginLocked()
	m.mu.Unlock()
	m.notify()

	results, err := m.fetcher.ListBreweries(ctx, f)
	return m.finish(gen, "list", results, err)
}

// Search runs a free-text search. Blank text is ignored: no request is made
// and no error is recorded.
func (m *Manager) Search(ctx context.Context, text string) error {
	if strings.TrimSpace(text) == "" {
		return nil
	}

	m.mu.Lock()
	m.query.Query = text
	gen := m.beginLocked()
	m.mu.Unlock()
	m.notify()

	results, err := m.fetcher.Search(ctx, text)
	return m.finish(gen, "search", results, err)
}

// FetchRandom replaces the result set with a single random brewery. It marks
// the query with the random sentinel and clears the filter set, signalling
// that no structured filter is active.
func (m *Manager) FetchRandom(ctx context.Context) error {
	m.mu.Lock()
	m.query = models.QueryState{Query: models.RandomQuery}
	gen := m.beginLocked()
	m.mu.Unlock()
	m.notify()

	b, err := m.fetcher.RandomBrewery(ctx)
	var results []models.Brewery
	if err == nil {
		results = []models.Brewery{b}
	}
	return m.finish(gen, "random", results, err)
}

// ClearAll resets filters to the session default and lists breweries
func (m *Manager) ClearAll(ctx context.Context) error {
	defaults := m.DefaultFilters()
	return m.FetchDefault(ctx, &defaults)
}

// UpdateFilters assigns the canonical filter set without fetching
func (m *Manager) UpdateFilters(f models.FilterSet) {
	m.mu.Lock()
	m.query.Filters = f
	m.mu.Unlock()
	m.notify()
}

// ClearError drops the current error message
func (m *Manager) ClearError() {
	m.mu.Lock()
	changed := m.errMsg != ""
	m.errMsg = ""
	m.mu.Unlock()
	if changed {
		m.notify()
	}
}

// GetByID fetches one brewery for the detail view. The shared result set
// is not touched.
func (m *Manager) GetByID(ctx context.Context, id string) (models.Brewery, error) {
	return m.fetcher.GetBrewery(ctx, id)
}

// Autocomplete returns suggestions for text. Input shorter than the length
// gate returns nil without a request.
func (m *Manager) Autocomplete(ctx context.Context, text string) ([]models.Suggestion, error) {
	text = strings.TrimSpace(text)
	if len([]rune(text)) < m.minAutocomplete {
		return nil, nil
	}
	return m.fetcher.Autocomplete(ctx, text)
}

// Meta fetches aggregate counts for a partial filter mapping
func (m *Manager) Meta(ctx context.Context, params models.MetaParams) (models.MetaSummary, error) {
	return m.fetcher.Meta(ctx, params)
}

// MetaScope derives the meta filter subset from the active query label: a
// text query scopes by name, a type filter scopes by type, random and plain
// browsing are unscoped.
func (m *Manager) MetaScope() models.MetaParams {
	m.mu.Lock()
	q := m.query
	m.mu.Unlock()

	switch q.Mode() {
	case models.ModeSearch:
		return models.MetaParams{models.ByName: q.Query}
	case models.ModeRandom:
		return models.MetaParams{}
	}
	if q.Filters.ByType != "" {
		return models.MetaParams{models.ByType: q.Filters.ByType}
	}
	return models.MetaParams{}
}

// beginLocked hands out a new generation, marks loading and clears the
// previous error
func (m *Manager) beginLocked() uint64 {
	m.issued++
	m.loading = true
	m.errMsg = ""
	return m.issued
}

// finish applies an operation's outcome if gen is still the latest issued.
// On failure the previous result set is kept and the query goes back to the
// one that produced it, so the label keeps describing the rows.
func (m *Manager) finish(gen uint64, op string, results []models.Brewery, err error) error {
	m.mu.Lock()
	if gen != m.issued {
		m.mu.Unlock()
		m.logger.Debug().
			Str("op", op).
			Uint64("generation", gen).
			Msg("discarding stale response")
		return err
	}

	m.loading = false
	if err != nil {
		m.errMsg = err.Error()
		m.query = m.shown
	} else {
		m.results = results
		m.applied = gen
		m.shown = m.query
	}
	m.mu.Unlock()

	if err != nil {
		m.logger.Warn().Err(err).Str("op", op).Msg("operation failed")
	} else {
		m.logger.Debug().Str("op", op).Int("results", len(results)).Msg("results applied")
	}

	m.notify()
	return err
}

func (m *Manager) notify() {
	m.mu.Lock()
	snap := m.snapshotLocked()
	listeners := make([]Listener, 0, len(m.listeners))
	for _, l := range m.listeners {
		listeners = append(listeners, l)
	}
	m.mu.Unlock()

	for _, l := range listeners {
		l(snap)
	}
}
