package ui

import (
	"strings"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/yllada/twingate-tray/common"
	"github.com/yllada/twingate-tray/menu"
)

type terminalKeys struct {
	Up      key.Binding
	Down    key.Binding
	Select  key.Binding
	Refresh key.Binding
	Quit    key.Binding
}

var defaultTerminalKeys = terminalKeys{
	Up: key.NewBinding(
		key.WithKeys("up", "k"),
		key.WithHelp("↑/k", "up"),
	),
	Down: key.NewBinding(
		key.WithKeys("down", "j"),
		key.WithHelp("↓/j", "down"),
	),
	Select: key.NewBinding(
		key.WithKeys("enter", " "),
		key.WithHelp("enter", "select"),
	),
	Refresh: key.NewBinding(
		key.WithKeys("r"),
		key.WithHelp("r", "refresh"),
	),
	Quit: key.NewBinding(
		key.WithKeys("q", "ctrl+c"),
		key.WithHelp("q", "quit"),
	),
}

// specMsg installs a new menu.
type specMsg menu.Spec

// statusMsg updates the status line.
type statusMsg struct {
	state   IconState
	tooltip string
}

// row is one rendered line of the menu.
type row struct {
	item  menu.Item
	depth int
}

func (r row) selectable() bool {
	return r.item.Kind == menu.KindItem && !r.item.Disabled
}

// terminalModel renders a menu as a navigable list.
type terminalModel struct {
	title   string
	keys    terminalKeys
	rows    []row
	cursor  int
	state   IconState
	status  string
	flash   string
	clicks  chan<- string
	refresh func()
}

func newTerminalModel(title string, clicks chan<- string, refresh func()) terminalModel {
	return terminalModel{
		title:   title,
		keys:    defaultTerminalKeys,
		cursor:  -1,
		state:   IconOffline,
		status:  "Waiting for " + title + "...",
		clicks:  clicks,
		refresh: refresh,
	}
}

func flatten(items []menu.Item, depth int, out []row) []row {
	for _, it := range items {
		out = append(out, row{item: it, depth: depth})
		if it.Kind == menu.KindSubmenu {
			out = flatten(it.Children, depth+1, out)
		}
	}
	return out
}

func (m terminalModel) Init() tea.Cmd {
	return nil
}

func (m terminalModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case specMsg:
		selected := ""
		if m.cursor >= 0 && m.cursor < len(m.rows) {
			selected = m.rows[m.cursor].item.ID
		}
		m.rows = flatten(menu.Spec(msg).Items, 0, nil)
		m.cursor = m.indexOf(selected)
		if m.cursor < 0 {
			m.cursor = m.next(-1, 1)
		}
		return m, nil

	case statusMsg:
		m.state = msg.state
		m.status = msg.tooltip
		return m, nil

	case tea.KeyMsg:
		switch {
		case key.Matches(msg, m.keys.Quit):
			return m, tea.Quit
		case key.Matches(msg, m.keys.Up):
			if i := m.next(m.cursor, -1); i >= 0 {
				m.cursor = i
			}
		case key.Matches(msg, m.keys.Down):
			if i := m.next(m.cursor, 1); i >= 0 {
				m.cursor = i
			}
		case key.Matches(msg, m.keys.Select):
			m.selectCurrent()
		case key.Matches(msg, m.keys.Refresh):
			if m.refresh != nil {
				m.refresh()
			}
			m.flash = "Refreshing..."
		}
	}
	return m, nil
}

func (m *terminalModel) selectCurrent() {
	if m.cursor < 0 || m.cursor >= len(m.rows) || !m.rows[m.cursor].selectable() {
		return
	}
	it := m.rows[m.cursor].item
	select {
	case m.clicks <- it.ID:
		m.flash = it.Title
	default:
		common.LogWarn("Terminal: dropping selection of %s, dispatcher busy", it.ID)
	}
}

// indexOf returns the selectable row with id, or -1.
func (m terminalModel) indexOf(id string) int {
	if id == "" {
		return -1
	}
	for i, r := range m.rows {
		if r.item.ID == id && r.selectable() {
			return i
		}
	}
	return -1
}

// next returns the first selectable row after from in direction step, or -1.
func (m terminalModel) next(from, step int) int {
	for i := from + step; i >= 0 && i < len(m.rows); i += step {
		if m.rows[i].selectable() {
			return i
		}
	}
	return -1
}

func (m terminalModel) View() string {
	var b strings.Builder

	b.WriteString(titleStyle.Render(common.AppName))
	b.WriteString("  ")
	b.WriteString(stateStyles[m.state].Render(m.status))
	b.WriteString("\n\n")

	for i, r := range m.rows {
		indent := strings.Repeat("    ", r.depth)
		var line string
		switch {
		case r.item.Kind == menu.KindSeparator:
			line = disabledStyle.Render("────────────")
		case r.item.Kind == menu.KindSubmenu:
			line = submenuStyle.Render(r.item.Title + " ›")
		case r.item.Disabled:
			line = disabledStyle.Render(r.item.Title)
		case i == m.cursor:
			line = selectedStyle.Render("› " + r.item.Title)
		default:
			line = "  " + r.item.Title
		}
		b.WriteString(indent)
		b.WriteString(line)
		b.WriteString("\n")
	}

	help := make([]string, 0, 5)
	for _, binding := range []key.Binding{m.keys.Up, m.keys.Down, m.keys.Select, m.keys.Refresh, m.keys.Quit} {
		h := binding.Help()
		help = append(help, h.Key+" "+h.Desc)
	}
	footer := strings.Join(help, " • ")
	if m.flash != "" {
		footer = m.flash + "\n" + footer
	}
	b.WriteString(footerStyle.Render(footer))
	return b.String()
}

// TerminalSurface shows menus as an interactive list in the terminal.
type TerminalSurface struct {
	program *tea.Program
	clicks  chan string
}

// NewTerminalSurface creates a terminal surface. refresh is called when the
// user asks for an immediate refresh.
func NewTerminalSurface(title string, refresh func()) *TerminalSurface {
	clicks := make(chan string, clickBuffer)
	return &TerminalSurface{
		program: tea.NewProgram(newTerminalModel(title, clicks, refresh), tea.WithAltScreen()),
		clicks:  clicks,
	}
}

// Run shows the surface and blocks until the user quits or Quit is called.
func (s *TerminalSurface) Run() error {
	_, err := s.program.Run()
	return err
}

// Replace installs spec. It blocks until the program is running.
func (s *TerminalSurface) Replace(spec menu.Spec) error {
	s.program.Send(specMsg(spec))
	return nil
}

// SetStatus updates the status line.
func (s *TerminalSurface) SetStatus(state IconState, tooltip string) {
	s.program.Send(statusMsg{state: state, tooltip: tooltip})
}

// Clicks delivers the ids of selected items.
func (s *TerminalSurface) Clicks() <-chan string {
	return s.clicks
}

// Quit stops the program and makes Run return.
func (s *TerminalSurface) Quit() {
	s.program.Quit()
}
