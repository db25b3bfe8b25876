package help

import "github.com/charmbracelet/bubbles/key"

// KeyMap holds every binding the app reacts to outside of text inputs
type KeyMap struct {
	// Global
	Help        key.Binding
	Quit        key.Binding
	Dismiss     key.Binding
	Search      key.Binding
	Filter      key.Binding
	Random      key.Binding
	ClearAll    key.Binding
	Refresh     key.Binding
	SwitchPanel key.Binding
	ExportCSV   key.Binding
	ExportJSON  key.Binding

	// List
	Up          key.Binding
	Down        key.Binding
	PageUp      key.Binding
	PageDown    key.Binding
	Top         key.Binding
	Bottom      key.Binding
	Open        key.Binding
	QuickFilter key.Binding
	Sort        key.Binding
	SortReverse key.Binding

	// Detail
	Back       key.Binding
	CopyID     key.Binding
	CopyURL    key.Binding
	ToggleRaw  key.Binding
	ChartLeft  key.Binding
	ChartRight key.Binding
}

// DefaultKeyMap returns the standard bindings
func DefaultKeyMap() KeyMap {
	return KeyMap{
		Help:        key.NewBinding(key.WithKeys("?"), key.WithHelp("?", "toggle help")),
		Quit:        key.NewBinding(key.WithKeys("q", "ctrl+c"), key.WithHelp("q", "quit")),
		Dismiss:     key.NewBinding(key.WithKeys("esc", "enter"), key.WithHelp("esc/enter", "dismiss error")),
		Search:      key.NewBinding(key.WithKeys("/"), key.WithHelp("/", "search")),
		Filter:      key.NewBinding(key.WithKeys("f"), key.WithHelp("f", "filters")),
		Random:      key.NewBinding(key.WithKeys("r"), key.WithHelp("r", "random brewery")),
		ClearAll:    key.NewBinding(key.WithKeys("x"), key.WithHelp("x", "clear all")),
		Refresh:     key.NewBinding(key.WithKeys("ctrl+r", "f5"), key.WithHelp("ctrl+r", "refresh")),
		SwitchPanel: key.NewBinding(key.WithKeys("tab"), key.WithHelp("tab", "switch panel")),
		ExportCSV:   key.NewBinding(key.WithKeys("e"), key.WithHelp("e", "export csv")),
		ExportJSON:  key.NewBinding(key.WithKeys("E"), key.WithHelp("E", "export json")),

		Up:          key.NewBinding(key.WithKeys("up", "k"), key.WithHelp("↑/k", "move up")),
		Down:        key.NewBinding(key.WithKeys("down", "j"), key.WithHelp("↓/j", "move down")),
		PageUp:      key.NewBinding(key.WithKeys("pgup", "ctrl+u"), key.WithHelp("pgup", "page up")),
		PageDown:    key.NewBinding(key.WithKeys("pgdown", "ctrl+d"), key.WithHelp("pgdn", "page down")),
		Top:         key.NewBinding(key.WithKeys("g", "home"), key.WithHelp("g", "first row")),
		Bottom:      key.NewBinding(key.WithKeys("G", "end"), key.WithHelp("G", "last row")),
		Open:        key.NewBinding(key.WithKeys("enter"), key.WithHelp("enter", "open detail")),
		QuickFilter: key.NewBinding(key.WithKeys("ctrl+f"), key.WithHelp("ctrl+f", "quick filter rows")),
		Sort:        key.NewBinding(key.WithKeys("s"), key.WithHelp("s", "cycle sort")),
		SortReverse: key.NewBinding(key.WithKeys("S"), key.WithHelp("S", "cycle sort backwards")),

		Back:       key.NewBinding(key.WithKeys("esc", "backspace"), key.WithHelp("esc", "back to list")),
		CopyID:     key.NewBinding(key.WithKeys("y"), key.WithHelp("y", "copy id")),
		CopyURL:    key.NewBinding(key.WithKeys("w"), key.WithHelp("w", "copy website")),
		ToggleRaw:  key.NewBinding(key.WithKeys("J"), key.WithHelp("J", "toggle raw JSON")),
		ChartLeft:  key.NewBinding(key.WithKeys("left", "h"), key.WithHelp("←/h", "previous chart")),
		ChartRight: key.NewBinding(key.WithKeys("right", "l"), key.WithHelp("→/l", "next chart")),
	}
}

// ShortHelp implements help.KeyMap for the status bar
func (k KeyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Search, k.Filter, k.Random, k.ClearAll, k.Help, k.Quit}
}

// FullHelp implements help.KeyMap
func (k KeyMap) FullHelp() [][]key.Binding {
	var out [][]key.Binding
	for _, s := range k.Sections() {
		out = append(out, s.Bindings)
	}
	return out
}

// Section groups bindings under a heading in the help overlay
type Section struct {
	Title    string
	Bindings []key.Binding
}

// Sections returns the help overlay layout
func (k KeyMap) Sections() []Section {
	return []Section{
		{"Global", []key.Binding{k.Help, k.Quit, k.Dismiss, k.Search, k.Filter, k.Random, k.ClearAll, k.Refresh, k.SwitchPanel, k.ExportCSV, k.ExportJSON}},
		{"Brewery List", []key.Binding{k.Up, k.Down, k.PageUp, k.PageDown, k.Top, k.Bottom, k.Open, k.QuickFilter, k.Sort, k.SortReverse}},
		{"Brewery Detail", []key.Binding{k.Back, k.CopyID, k.CopyURL, k.ToggleRaw}},
		{"Charts", []key.Binding{k.ChartLeft, k.ChartRight}},
	}
}
