// Package tui implements the interactive comparison browser: a Bubble Tea
// model that lists the five recovery scenarios and shows the stage breakdown
// of the selected one.
package tui

import (
	"fmt"
	"os"
	"strings"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"golang.org/x/term"
	"golang.org/x/text/language"
	"golang.org/x/text/message"

	"github.com/SimosManiatis/vitrify/internal/engine"
)

// IsTTY reports whether f is attached to a terminal. Non-TTY invocations
// (pipes, CI) should fall back to plain rendering.
func IsTTY(f *os.File) bool {
	return term.IsTerminal(int(f.Fd()))
}

// Default dimensions before the first WindowSizeMsg arrives.
const (
	comparisonDefaultWidth  = 80
	comparisonDefaultHeight = 24
)

// keyMap defines the browser key bindings.
type keyMap struct {
	Up   key.Binding
	Down key.Binding
	Home key.Binding
	End  key.Binding
	Quit key.Binding
}

// ShortHelp implements help.KeyMap.
func (k keyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Up, k.Down, k.Quit}
}

// FullHelp implements help.KeyMap.
func (k keyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{{k.Up, k.Down}, {k.Home, k.End}, {k.Quit}}
}

func defaultKeyMap() keyMap {
	return keyMap{
		Up: key.NewBinding(
			key.WithKeys("up", "k"),
			key.WithHelp("↑/k", "previous scenario"),
		),
		Down: key.NewBinding(
			key.WithKeys("down", "j"),
			key.WithHelp("↓/j", "next scenario"),
		),
		Home: key.NewBinding(
			key.WithKeys("home", "g"),
			key.WithHelp("g", "first"),
		),
		End: key.NewBinding(
			key.WithKeys("end", "G"),
			key.WithHelp("G", "last"),
		),
		Quit: key.NewBinding(
			key.WithKeys("q", "esc", "ctrl+c"),
			key.WithHelp("q", "quit"),
		),
	}
}

// ComparisonModel is the Bubble Tea model for browsing a scenario comparison.
type ComparisonModel struct {
	comparison engine.Comparison
	cursor     int
	quitting   bool

	keys keyMap
	help help.Model

	width  int
	height int

	printer *message.Printer
}

// NewComparisonModel creates a browser over the comparison results.
func NewComparisonModel(cmp engine.Comparison) *ComparisonModel {
	return &ComparisonModel{
		comparison: cmp,
		keys:       defaultKeyMap(),
		help:       help.New(),
		width:      comparisonDefaultWidth,
		height:     comparisonDefaultHeight,
		printer:    message.NewPrinter(language.English),
	}
}

// Init implements tea.Model.
func (m *ComparisonModel) Init() tea.Cmd {
	return nil
}

// Update implements tea.Model.
func (m *ComparisonModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.help.Width = msg.Width
		return m, nil

	case tea.KeyMsg:
		switch {
		case key.Matches(msg, m.keys.Quit):
			m.quitting = true
			return m, tea.Quit
		case key.Matches(msg, m.keys.Up):
			if m.cursor > 0 {
				m.cursor--
			}
		case key.Matches(msg, m.keys.Down):
			if m.cursor < len(m.comparison.Results)-1 {
				m.cursor++
			}
		case key.Matches(msg, m.keys.Home):
			m.cursor = 0
		case key.Matches(msg, m.keys.End):
			m.cursor = len(m.comparison.Results) - 1
		}
	}

	return m, nil
}

// Selected returns the scenario under the cursor.
func (m *ComparisonModel) Selected() engine.ScenarioResult {
	if len(m.comparison.Results) == 0 {
		return engine.ScenarioResult{}
	}
	return m.comparison.Results[m.cursor]
}

var (
	tuiTitleStyle  = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("42"))
	tuiItemStyle   = lipgloss.NewStyle().PaddingLeft(2)
	tuiCursorStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("229")).
			Background(lipgloss.Color("57")).
			PaddingLeft(1)
	tuiDetailStyle = lipgloss.NewStyle().
			BorderStyle(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("240")).
			Padding(0, 1)
)

// View implements tea.Model.
func (m *ComparisonModel) View() string {
	if m.quitting {
		return ""
	}
	if len(m.comparison.Results) == 0 {
		return "no scenarios to compare\n"
	}

	var b strings.Builder
	b.WriteString(tuiTitleStyle.Render("SCENARIO COMPARISON"))
	b.WriteString(fmt.Sprintf("  run %s\n\n", m.comparison.RunID))

	best := m.bestIndex()
	for i, res := range m.comparison.Results {
		line := m.printer.Sprintf("%-28s %12.3f kgCO2e  yield %5.1f%%",
			res.ScenarioName, res.TotalKgCO2, res.YieldPercent)
		if i == best {
			line += "  ★"
		}
		if i == m.cursor {
			b.WriteString(tuiCursorStyle.Render("> " + line))
		} else {
			b.WriteString(tuiItemStyle.Render(line))
		}
		b.WriteString("\n")
	}

	b.WriteString("\n")
	b.WriteString(tuiDetailStyle.Render(m.detailView()))
	b.WriteString("\n")
	b.WriteString(m.help.View(m.keys))
	b.WriteString("\n")

	return b.String()
}

// detailView renders the stage breakdown of the selected scenario.
func (m *ComparisonModel) detailView() string {
	res := m.Selected()

	var b strings.Builder
	b.WriteString(tuiTitleStyle.Render(res.ScenarioName))
	b.WriteString("\n")
	for _, e := range res.ByStage.Entries() {
		b.WriteString(m.printer.Sprintf("%-30s %12.3f\n", e.Stage, e.KgCO2e))
	}
	b.WriteString(m.printer.Sprintf("%-30s %12.3f\n", "Total", res.TotalKgCO2))
	b.WriteString(m.printer.Sprintf("\n%.1f → %.1f IGUs, %.2f → %.2f m²",
		res.InitialIGUs, res.FinalIGUs, res.InitialAreaM2, res.FinalAreaM2))

	return b.String()
}

// bestIndex returns the index of the lowest-emission scenario.
func (m *ComparisonModel) bestIndex() int {
	best := 0
	for i, res := range m.comparison.Results {
		if res.TotalKgCO2 < m.comparison.Results[best].TotalKgCO2 {
			best = i
		}
	}
	return best
}

// Run launches the browser on the alternate screen and blocks until quit.
func Run(cmp engine.Comparison) error {
	p := tea.NewProgram(NewComparisonModel(cmp), tea.WithAltScreen())
	if _, err := p.Run(); err != nil {
		return fmt.Errorf("running comparison browser: %w", err)
	}
	return nil
}
