package components

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/lipgloss"
	"github.com/mattn/go-runewidth"
	"github.com/rebeliceyang/lazybrew/internal/models"
	"github.com/rebeliceyang/lazybrew/internal/state"
	"github.com/rebeliceyang/lazybrew/internal/ui/theme"
)

// listColumns are the rendered columns in order
var listColumns = []string{"Name", "Type", "City", "State", "Country"}

// ListView renders the shared result set as a table with virtual scrolling
type ListView struct {
	Echo    QueryEcho
	Width   int
	Height  int
	Theme   theme.Theme
	Spinner *spinner.Model

	// Canonical result set and the rows left after the quick filter
	all         []models.Brewery
	Rows        []models.Brewery
	quickFilter SearchQuery
	Loading     bool
	Err         string

	// Virtual scrolling state
	TopRow      int
	VisibleRows int
	SelectedRow int

	// Column widths (calculated)
	ColumnWidths []int
}

// NewListView creates a new list view
func NewListView(th theme.Theme) *ListView {
	return &ListView{
		Theme:       th,
		quickFilter: SearchQuery{Field: FieldName},
	}
}

// Sync reconciles the view with a state snapshot
func (lv *ListView) Sync(snap state.Snapshot) {
	lv.Echo.Sync(snap)
	lv.Loading = snap.Loading
	lv.Err = snap.Err

	resultsChanged := len(lv.all) != len(snap.Results)
	if !resultsChanged {
		for i := range lv.all {
			if lv.all[i].ID != snap.Results[i].ID {
				resultsChanged = true
				break
			}
		}
	}

	lv.all = snap.Results
	lv.applyQuickFilter()
	if resultsChanged {
		lv.SelectedRow = 0
		lv.TopRow = 0
	}
	lv.clampSelection()
}

// SetQuickFilter narrows the rendered rows without touching the shared
// result set
func (lv *ListView) SetQuickFilter(raw string) {
	lv.quickFilter = ParseSearchQuery(raw)
	lv.applyQuickFilter()
	lv.SelectedRow = 0
	lv.TopRow = 0
}

// QuickFilter returns the active quick filter
func (lv *ListView) QuickFilter() SearchQuery {
	return lv.quickFilter
}

// All returns the unfiltered result set
func (lv *ListView) All() []models.Brewery {
	return lv.all
}

func (lv *ListView) applyQuickFilter() {
	lv.Rows = FilterBreweries(lv.all, lv.quickFilter)
	lv.calculateColumnWidths()
}

// Selected returns the highlighted brewery
func (lv *ListView) Selected() (models.Brewery, bool) {
	if lv.SelectedRow < 0 || lv.SelectedRow >= len(lv.Rows) {
		return models.Brewery{}, false
	}
	return lv.Rows[lv.SelectedRow], true
}

func cells(b models.Brewery) []string {
	return []string{b.Name, string(b.BreweryType), b.City, b.Region(), b.Country}
}

// calculateColumnWidths sizes columns to content, bounded per column
func (lv *ListView) calculateColumnWidths() {
	lv.ColumnWidths = make([]int, len(listColumns))
	for i, col := range listColumns {
		lv.ColumnWidths[i] = runewidth.StringWidth(col)
	}

	for _, b := range lv.Rows {
		for i, cell := range cells(b) {
			if w := runewidth.StringWidth(cell); w > lv.ColumnWidths[i] {
				lv.ColumnWidths[i] = w
			}
		}
	}

	maxWidths := []int{40, 10, 20, 18, 16}
	for i := range lv.ColumnWidths {
		if lv.ColumnWidths[i] > maxWidths[i] {
			lv.ColumnWidths[i] = maxWidths[i]
		}
		if lv.ColumnWidths[i] < 6 {
			lv.ColumnWidths[i] = 6
		}
	}
}

// View renders the list
func (lv *ListView) View() string {
	var b strings.Builder

	b.WriteString(lv.renderTitle())
	b.WriteString("\n")

	if lv.Err != "" {
		b.WriteString(lipgloss.NewStyle().Foreground(lv.Theme.Error).Bold(true).Render("Error: " + lv.Err))
		b.WriteString("\n")
	}

	if len(lv.Rows) == 0 {
		msg := "No breweries found"
		if lv.Loading {
			msg = "Loading breweries..."
		} else if len(lv.all) > 0 {
			msg = "No rows match the quick filter"
		}
		b.WriteString(lipgloss.NewStyle().Foreground(lv.Theme.Muted).Italic(true).Render(msg))
		return lipgloss.NewStyle().Width(lv.Width).Height(lv.Height).Render(b.String())
	}

	b.WriteString(lv.renderHeader())
	b.WriteString("\n")
	b.WriteString(lv.renderSeparator())
	b.WriteString("\n")

	// Title, optional error, header, separator and status
	reserved := 4
	if lv.Err != "" {
		reserved++
	}
	lv.VisibleRows = lv.Height - reserved
	if lv.VisibleRows < 1 {
		lv.VisibleRows = 1
	}
	lv.clampSelection()

	endRow := lv.TopRow + lv.VisibleRows
	if endRow > len(lv.Rows) {
		endRow = len(lv.Rows)
	}

	for i := lv.TopRow; i < endRow; i++ {
		b.WriteString(lv.renderRow(lv.Rows[i], i == lv.SelectedRow))
		b.WriteString("\n")
	}

	b.WriteString(lv.renderStatus(endRow))

	return lipgloss.NewStyle().Width(lv.Width).Height(lv.Height).Render(b.String())
}

func (lv *ListView) renderTitle() string {
	title := lipgloss.NewStyle().Bold(true).Foreground(lv.Theme.Accent).Render(lv.Echo.Label())
	if lv.Loading && lv.Spinner != nil {
		title += " " + lv.Spinner.View()
	}
	return title
}

func (lv *ListView) renderHeader() string {
	var parts []string
	for i, col := range listColumns {
		parts = append(parts, pad(col, lv.ColumnWidths[i]))
	}
	headerStyle := lipgloss.NewStyle().
		Bold(true).
		Foreground(lv.Theme.TableHeader).
		Background(lv.Theme.Selection)
	return headerStyle.Render(" " + strings.Join(parts, " │ ") + " ")
}

func (lv *ListView) renderSeparator() string {
	var parts []string
	for _, width := range lv.ColumnWidths {
		parts = append(parts, strings.Repeat("─", width))
	}
	return lipgloss.NewStyle().
		Foreground(lv.Theme.Border).
		Render("─" + strings.Join(parts, "─┼─") + "─")
}

func (lv *ListView) renderRow(b models.Brewery, selected bool) string {
	var parts []string
	for i, cell := range cells(b) {
		text := pad(cell, lv.ColumnWidths[i])
		if i == 1 && !selected {
			text = lipgloss.NewStyle().Foreground(lv.Theme.TypeColor(cell)).Render(text)
		}
		parts = append(parts, text)
	}

	line := " " + strings.Join(parts, " │ ") + " "
	if selected {
		return lipgloss.NewStyle().
			Background(lv.Theme.TableRowSelected).
			Foreground(lv.Theme.Foreground).
			Bold(true).
			Render(line)
	}
	return line
}

func (lv *ListView) renderStatus(endRow int) string {
	showing := fmt.Sprintf(" %d-%d of %d breweries", lv.TopRow+1, endRow, len(lv.Rows))
	if lv.quickFilter.Pattern != "" {
		showing += fmt.Sprintf(" (quick filter %s:%s, %d total)", lv.quickFilter.Field, lv.quickFilter.Pattern, len(lv.all))
	}
	return lipgloss.NewStyle().
		Foreground(lv.Theme.Muted).
		Italic(true).
		Render(showing)
}

// pad truncates or right-pads s to exactly width display cells
func pad(s string, width int) string {
	if runewidth.StringWidth(s) > width {
		return runewidth.Truncate(s, width, "…")
	}
	return runewidth.FillRight(s, width)
}

// MoveSelection moves the selection up or down
func (lv *ListView) MoveSelection(delta int) {
	lv.SelectedRow += delta
	lv.clampSelection()
}

// PageUp moves the selection up one screen
func (lv *ListView) PageUp() {
	lv.MoveSelection(-max(lv.VisibleRows, 1))
}

// PageDown moves the selection down one screen
func (lv *ListView) PageDown() {
	lv.MoveSelection(max(lv.VisibleRows, 1))
}

// Top selects the first row
func (lv *ListView) Top() {
	lv.SelectedRow = 0
	lv.clampSelection()
}

// Bottom selects the last row
func (lv *ListView) Bottom() {
	lv.SelectedRow = len(lv.Rows) - 1
	lv.clampSelection()
}

// clampSelection keeps the selection and window inside the rows
func (lv *ListView) clampSelection() {
	if lv.SelectedRow >= len(lv.Rows) {
		lv.SelectedRow = len(lv.Rows) - 1
	}
	if lv.SelectedRow < 0 {
		lv.SelectedRow = 0
	}

	visible := max(lv.VisibleRows, 1)
	if lv.SelectedRow < lv.TopRow {
		lv.TopRow = lv.SelectedRow
	}
	if lv.SelectedRow >= lv.TopRow+visible {
		lv.TopRow = lv.SelectedRow - visible + 1
	}
	if lv.TopRow < 0 {
		lv.TopRow = 0
	}
}
