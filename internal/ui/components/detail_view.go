package components

import (
	"errors"
	"fmt"
	"strings"

	"github.com/atotto/clipboard"
	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/rebeliceyang/lazybrew/internal/models"
	"github.com/rebeliceyang/lazybrew/internal/rawjson"
	"github.com/rebeliceyang/lazybrew/internal/state"
	"github.com/rebeliceyang/lazybrew/internal/ui/theme"
)

// NotAvailable is shown for empty record fields
const NotAvailable = "Not available"

// DetailView shows one brewery. It keeps its own single-record state and
// only echoes the shared query.
type DetailView struct {
	Echo    QueryEcho
	Width   int
	Height  int
	Theme   theme.Theme
	Spinner *spinner.Model

	ID      string
	Brewery *models.Brewery
	Loading bool
	Err     string
	ShowRaw bool

	viewport viewport.Model
}

// NewDetailView creates a detail view
func NewDetailView(th theme.Theme) *DetailView {
	return &DetailView{
		Theme:    th,
		viewport: viewport.New(60, 20),
	}
}

// Sync reconciles the echo with a state snapshot. The displayed record is
// not part of the shared state and is left alone.
func (dv *DetailView) Sync(snap state.Snapshot) {
	dv.Echo.Sync(snap)
}

// Load marks the view as fetching id
func (dv *DetailView) Load(id string) {
	dv.ID = id
	dv.Brewery = nil
	dv.Loading = true
	dv.Err = ""
	dv.refresh()
	dv.viewport.GotoTop()
}

// SetResult applies a fetch outcome. Results for an id other than the one
// being shown are ignored.
func (dv *DetailView) SetResult(id string, b models.Brewery, err error) bool {
	if id != dv.ID {
		return false
	}
	dv.Loading = false
	if err != nil {
		dv.Err = err.Error()
		dv.Brewery = nil
	} else {
		dv.Err = ""
		dv.Brewery = &b
	}
	dv.refresh()
	dv.viewport.GotoTop()
	return true
}

// ToggleRaw switches between the formatted fields and the raw record
func (dv *DetailView) ToggleRaw() {
	dv.ShowRaw = !dv.ShowRaw
	dv.refresh()
	dv.viewport.GotoTop()
}

// SetSize resizes the view
func (dv *DetailView) SetSize(width, height int) {
	dv.Width = width
	dv.Height = height
	dv.viewport.Width = max(width, 10)
	dv.viewport.Height = max(height-2, 1)
	dv.refresh()
}

// Update forwards scroll keys to the viewport
func (dv *DetailView) Update(msg tea.Msg) tea.Cmd {
	var cmd tea.Cmd
	dv.viewport, cmd = dv.viewport.Update(msg)
	return cmd
}

// CopyID copies the brewery id to the clipboard
func (dv *DetailView) CopyID() (string, error) {
	if dv.Brewery == nil {
		return "", errors.New("no brewery loaded")
	}
	return dv.Brewery.ID, clipboard.WriteAll(dv.Brewery.ID)
}

// CopyWebsite copies the website URL to the clipboard
func (dv *DetailView) CopyWebsite() (string, error) {
	if dv.Brewery == nil {
		return "", errors.New("no brewery loaded")
	}
	if dv.Brewery.WebsiteURL == "" {
		return "", errors.New("brewery has no website")
	}
	return dv.Brewery.WebsiteURL, clipboard.WriteAll(dv.Brewery.WebsiteURL)
}

func (dv *DetailView) refresh() {
	dv.viewport.SetContent(dv.content())
}

func (dv *DetailView) content() string {
	switch {
	case dv.Loading:
		return lipgloss.NewStyle().Foreground(dv.Theme.Muted).Italic(true).Render("Loading brewery details...")
	case dv.Err != "":
		return lipgloss.NewStyle().Foreground(dv.Theme.Error).Bold(true).Render("Error: " + dv.Err)
	case dv.Brewery == nil:
		return lipgloss.NewStyle().Foreground(dv.Theme.Muted).Italic(true).Render("Brewery not found")
	case dv.ShowRaw:
		return dv.rawContent()
	}
	return dv.fieldContent()
}

func (dv *DetailView) fieldContent() string {
	b := dv.Brewery
	labelStyle := lipgloss.NewStyle().Foreground(dv.Theme.Muted).Width(16)
	valueStyle := lipgloss.NewStyle().Foreground(dv.Theme.Foreground)

	var lines []string
	lines = append(lines, lipgloss.NewStyle().Bold(true).Foreground(dv.Theme.Accent).Render(b.Name))
	lines = append(lines, lipgloss.NewStyle().
		Foreground(dv.Theme.Background).
		Background(dv.Theme.TypeColor(string(b.BreweryType))).
		Padding(0, 1).
		Render(string(b.BreweryType)))
	lines = append(lines, "")

	row := func(label, value string) {
		lines = append(lines, labelStyle.Render(label)+valueStyle.Render(value))
	}

	row("Street", OrNotAvailable(b.StreetAddress()))
	if b.Address2 != "" {
		row("Address 2", b.Address2)
	}
	if b.Address3 != "" {
		row("Address 3", b.Address3)
	}
	row("City", OrNotAvailable(b.City))
	row("State/Province", OrNotAvailable(b.Region()))
	row("Postal Code", OrNotAvailable(b.PostalCode))
	row("Country", OrNotAvailable(b.Country))
	lines = append(lines, "")
	row("Phone", OrNotAvailable(FormatPhone(b.Phone)))
	row("Website", OrNotAvailable(b.WebsiteURL))
	row("Coordinates", FormatCoordinates(*b))
	lines = append(lines, "")
	row("ID", b.ID)

	return strings.Join(lines, "\n")
}

func (dv *DetailView) rawContent() string {
	pretty, err := rawjson.Format(dv.Brewery)
	if err != nil {
		return lipgloss.NewStyle().Foreground(dv.Theme.Error).Render(err.Error())
	}

	if dv.Theme.SyntaxStyle != "" {
		if highlighted, err := rawjson.Highlight(pretty, dv.Theme.SyntaxStyle); err == nil {
			return highlighted
		}
	}

	keyStyle := lipgloss.NewStyle().Foreground(dv.Theme.JSONKey)
	valueStyle := lipgloss.NewStyle().Foreground(dv.Theme.JSONString)

	lines := strings.Split(pretty, "\n")
	for i, line := range lines {
		indent, key, rest, ok := rawjson.SplitKey(line)
		if !ok {
			lines[i] = indent + rest
			continue
		}
		lines[i] = indent + keyStyle.Render(key) + valueStyle.Render(rest)
	}
	return strings.Join(lines, "\n")
}

// View renders the detail view
func (dv *DetailView) View() string {
	title := "Brewery Details"
	if dv.ShowRaw {
		title = "Raw Record"
	}
	header := lipgloss.NewStyle().Bold(true).Foreground(dv.Theme.Info).Render(title)
	if dv.Loading && dv.Spinner != nil {
		header += " " + dv.Spinner.View()
	}

	footer := lipgloss.NewStyle().Foreground(dv.Theme.Muted).Italic(true).
		Render(fmt.Sprintf("esc: back │ y: copy id │ w: copy website │ J: raw │ %d%%", int(dv.viewport.ScrollPercent()*100)))

	return lipgloss.JoinVertical(lipgloss.Left, header, dv.viewport.View(), footer)
}

// OrNotAvailable substitutes the placeholder for empty values
func OrNotAvailable(s string) string {
	if strings.TrimSpace(s) == "" {
		return NotAvailable
	}
	return s
}

// FormatPhone renders ten-digit numbers as (xxx) xxx-xxxx and leaves
// anything else untouched
func FormatPhone(phone string) string {
	var digits strings.Builder
	for _, r := range phone {
		if r >= '0' && r <= '9' {
			digits.WriteRune(r)
		}
	}
	d := digits.String()
	if len(d) != 10 {
		return phone
	}
	return fmt.Sprintf("(%s) %s-%s", d[:3], d[3:6], d[6:])
}

// FormatCoordinates renders "lat, lon" or the placeholder
func FormatCoordinates(b models.Brewery) string {
	if !b.HasCoordinates() {
		return NotAvailable
	}
	return b.Latitude.String() + ", " + b.Longitude.String()
}
