package models

// AppState holds the application state
type AppState struct {
	Width          int
	Height         int
	LeftPanelWidth int
	FocusedPanel   PanelType
	ViewMode       ViewMode
	Screen         Screen

	// Overlay currently capturing keys, if any
	Overlay Overlay

	// Detail screen target
	DetailID string
}

// PanelType identifies which panel is focused
type PanelType int

const (
	LeftPanel PanelType = iota
	RightPanel
)

// ViewMode identifies the current view
type ViewMode int

const (
	NormalMode ViewMode = iota
	HelpMode
)

// Screen is the routed page: the list dashboard or a single brewery
type Screen int

const (
	ListScreen Screen = iota
	DetailScreen
)

// Overlay identifies a modal widget drawn over the current screen
type Overlay int

const (
	NoOverlay Overlay = iota
	SearchOverlay
	FilterOverlay
	QuickFilterOverlay
)

// NewAppState creates a new AppState with defaults
func NewAppState() AppState {
	return AppState{
		Width:          80,
		Height:         24,
		LeftPanelWidth: 35,
		FocusedPanel:   RightPanel,
		ViewMode:       NormalMode,
		Screen:         ListScreen,
	}
}
