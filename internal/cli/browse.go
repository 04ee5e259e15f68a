package cli

import (
	"fmt"
	"math"
	"strings"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/spf13/cobra"

	"github.com/matzehuels/magnitude/pkg/render"
)

var (
	browseMarkerStyle = lipgloss.NewStyle().Bold(true).Foreground(colorCyan)
	browseAxisStyle   = lipgloss.NewStyle().Foreground(colorDim)
)

const (
	browseDefaultHeight = 15
	browseMinHeight     = 5
	browseAxisWidth     = 48
	browseChrome        = 12 // lines used by everything except table rows
)

// browseCommand creates the browse command.
func (c *CLI) browseCommand() *cobra.Command {
	var flags pipelineFlags

	cmd := &cobra.Command{
		Use:   "browse [dataset...]",
		Short: "Scroll through the computed layout interactively",
		RunE: func(cmd *cobra.Command, args []string) error {
			opts, err := flags.options(cmd, args)
			if err != nil {
				return err
			}
			sections, err := c.layoutSections(cmd.Context(), opts, flags.cache)
			if err != nil {
				return err
			}
			p := tea.NewProgram(newBrowseModel(sections),
				tea.WithAltScreen(),
				tea.WithContext(cmd.Context()),
				tea.WithOutput(cmd.OutOrStdout()),
			)
			_, err = p.Run()
			return err
		},
	}

	flags.register(cmd)
	return cmd
}

// =============================================================================
// browseModel - read-only layout viewer
// =============================================================================

type browseKeyMap struct {
	Up, Down         key.Binding
	PageUp, PageDown key.Binding
	Top, Bottom      key.Binding
	Next, Prev       key.Binding
	Quit             key.Binding
}

func defaultBrowseKeys() browseKeyMap {
	return browseKeyMap{
		Up:       key.NewBinding(key.WithKeys("up", "k"), key.WithHelp("↑/k", "up")),
		Down:     key.NewBinding(key.WithKeys("down", "j"), key.WithHelp("↓/j", "down")),
		PageUp:   key.NewBinding(key.WithKeys("pgup"), key.WithHelp("pgup", "page up")),
		PageDown: key.NewBinding(key.WithKeys("pgdown", " "), key.WithHelp("pgdn", "page down")),
		Top:      key.NewBinding(key.WithKeys("home", "g"), key.WithHelp("g", "first")),
		Bottom:   key.NewBinding(key.WithKeys("end", "G"), key.WithHelp("G", "last")),
		Next:     key.NewBinding(key.WithKeys("right", "l", "tab"), key.WithHelp("→/l", "next section")),
		Prev:     key.NewBinding(key.WithKeys("left", "h", "shift+tab"), key.WithHelp("←/h", "previous section")),
		Quit:     key.NewBinding(key.WithKeys("q", "esc", "ctrl+c"), key.WithHelp("q", "quit")),
	}
}

func (k browseKeyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Up, k.Down, k.Next, k.Prev, k.Quit}
}

func (k browseKeyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.Up, k.Down, k.PageUp, k.PageDown},
		{k.Top, k.Bottom, k.Next, k.Prev},
		{k.Quit},
	}
}

// browseModel is the bubbletea model for the browse command. Left and right
// switch sections; up and down move through the entries in layout order.
type browseModel struct {
	Sections []render.Section
	Section  int
	Cursor   int
	Offset   int
	Height   int

	keys browseKeyMap
	help help.Model
}

func newBrowseModel(sections []render.Section) browseModel {
	return browseModel{
		Sections: sections,
		Height:   browseDefaultHeight,
		keys:     defaultBrowseKeys(),
		help:     help.New(),
	}
}

func (m browseModel) Init() tea.Cmd {
	return nil
}

func (m browseModel) entryCount() int {
	if len(m.Sections) == 0 {
		return 0
	}
	return len(m.Sections[m.Section].Entries)
}

func (m browseModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch {
		case key.Matches(msg, m.keys.Quit):
			return m, tea.Quit
		case key.Matches(msg, m.keys.Up):
			m = m.moveTo(m.Cursor - 1)
		case key.Matches(msg, m.keys.Down):
			m = m.moveTo(m.Cursor + 1)
		case key.Matches(msg, m.keys.PageUp):
			m = m.moveTo(m.Cursor - m.Height)
		case key.Matches(msg, m.keys.PageDown):
			m = m.moveTo(m.Cursor + m.Height)
		case key.Matches(msg, m.keys.Top):
			m = m.moveTo(0)
		case key.Matches(msg, m.keys.Bottom):
			m = m.moveTo(m.entryCount() - 1)
		case key.Matches(msg, m.keys.Next):
			m = m.switchSection(1)
		case key.Matches(msg, m.keys.Prev):
			m = m.switchSection(-1)
		}
	case tea.WindowSizeMsg:
		m.Height = max(msg.Height-browseChrome, browseMinHeight)
		m.help.Width = msg.Width
		m = m.moveTo(m.Cursor)
	}
	return m, nil
}

// moveTo places the cursor on entry i, clamped, and scrolls it into view.
func (m browseModel) moveTo(i int) browseModel {
	n := m.entryCount()
	if n == 0 {
		m.Cursor, m.Offset = 0, 0
		return m
	}
	m.Cursor = min(max(i, 0), n-1)
	if m.Cursor < m.Offset {
		m.Offset = m.Cursor
	}
	if m.Cursor >= m.Offset+m.Height {
		m.Offset = m.Cursor - m.Height + 1
	}
	return m
}

func (m browseModel) switchSection(delta int) browseModel {
	if len(m.Sections) == 0 {
		return m
	}
	m.Section = (m.Section + delta + len(m.Sections)) % len(m.Sections)
	m.Cursor, m.Offset = 0, 0
	return m
}

func (m browseModel) View() string {
	var b strings.Builder

	if len(m.Sections) == 0 {
		b.WriteString(StyleDim.Render("Nothing to browse"))
		b.WriteString("\n")
		return b.String()
	}

	s := m.Sections[m.Section]
	b.WriteString(StyleTitle.Render(s.Title))
	b.WriteString(StyleDim.Render(fmt.Sprintf("  [%d/%d]  %s", m.Section+1, len(m.Sections), sectionSummary(s))))
	b.WriteString("\n")
	b.WriteString(m.help.View(m.keys))
	b.WriteString("\n\n")

	rows := layoutRows(s)
	end := min(m.Offset+m.Height, len(rows))
	b.WriteString(layoutTableRows(rows[m.Offset:end], m.Offset, m.Cursor).Render())
	b.WriteString("\n\n")

	if len(s.Entries) > 0 {
		e := s.Entries[m.Cursor]
		b.WriteString(axisBar(e.Position, browseAxisWidth, s.Scale.MinExponent, s.Scale.MaxExponent))
		b.WriteString("\n")
		b.WriteString(StyleValue.Render(fmt.Sprintf("%s  %s × 10^%d %s", e.Label, e.Mantissa, e.DisplayExponent, e.BaseUnit)))
		if e.Description != "" {
			b.WriteString("\n")
			b.WriteString(StyleDim.Render(e.Description))
		}
		b.WriteString("\n\n")
		b.WriteString(StyleDim.Render(fmt.Sprintf("  [%d/%d]", m.Cursor+1, len(s.Entries))))
	}

	return b.String()
}

// axisBar draws the section axis with a marker at position.
func axisBar(position float64, width, minExp, maxExp int) string {
	idx := int(math.Round(position * float64(width-1)))
	idx = min(max(idx, 0), width-1)
	left := strings.Repeat("─", idx)
	right := strings.Repeat("─", width-1-idx)
	return browseAxisStyle.Render(fmt.Sprintf("10^%d ├%s", minExp, left)) +
		browseMarkerStyle.Render("●") +
		browseAxisStyle.Render(fmt.Sprintf("%s┤ 10^%d", right, maxExp))
}
