// Package tui is the terminal front end for browsing an event roster.
package tui

import (
	"fmt"
	"strconv"

	"github.com/charmbracelet/bubbles/table"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"ftc-event-service/internal/domain/events"
	"ftc-event-service/internal/viewer"
)

// Controller is the presentation state the model renders and drives.
type Controller interface {
	SetEventCode(code string)
	Refresh()
	SortBy(field events.SortField)
	ToggleSelection(number string)
	SortedTeams() []events.Team
	SelectedTeam() (events.Team, bool)
	State() viewer.State
}

// StateChangedMsg tells the model to re-read controller state.
type StateChangedMsg struct{}

type focusArea int

const (
	focusInput focusArea = iota
	focusTable
)

const defaultTableHeight = 15

// Model is the bubbletea model for the roster viewer.
type Model struct {
	ctrl        Controller
	initialCode string

	input textinput.Model
	table table.Model
	focus focusArea

	state viewer.State
	teams []events.Team

	width  int
	height int
}

// NewModel builds a model around ctrl. A non-empty initialCode is submitted on start.
func NewModel(ctrl Controller, initialCode string) Model {
	ti := textinput.New()
	ti.Placeholder = "e.g. USCHSLAOS"
	ti.Prompt = "Event code: "
	ti.CharLimit = 64
	ti.Width = 32
	ti.SetValue(initialCode)
	ti.Focus()

	tbl := table.New(
		table.WithColumns(columnsFor(events.SortByOPR, events.Descending)),
		table.WithHeight(defaultTableHeight),
	)
	tbl.SetStyles(tableStyles())

	m := Model{
		ctrl:        ctrl,
		initialCode: initialCode,
		input:       ti,
		table:       tbl,
		focus:       focusInput,
	}
	m.sync()
	return m
}

func (m Model) Init() tea.Cmd {
	cmds := []tea.Cmd{textinput.Blink}
	if m.initialCode != "" {
		ctrl, code := m.ctrl, m.initialCode
		cmds = append(cmds, func() tea.Msg {
			ctrl.SetEventCode(code)
			return StateChangedMsg{}
		})
	}
	return tea.Batch(cmds...)
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd

	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		if h := msg.Height - 10; h > 3 {
			m.table.SetHeight(h)
		}

	case StateChangedMsg:

	case tea.KeyMsg:
		if msg.String() == "ctrl+c" {
			return m, tea.Quit
		}
		if m.focus == focusInput {
			cmd = m.handleInputKey(msg)
		} else {
			var quit bool
			cmd, quit = m.handleTableKey(msg)
			if quit {
				return m, tea.Quit
			}
		}
	}

	m.sync()
	return m, cmd
}

func (m *Model) handleInputKey(msg tea.KeyMsg) tea.Cmd {
	switch msg.String() {
	case "enter", "tab", "down":
		m.focusTable()
		return nil
	case "esc":
		m.input.SetValue("")
		m.ctrl.SetEventCode("")
		return nil
	}

	before := m.input.Value()
	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	if after := m.input.Value(); after != before {
		m.ctrl.SetEventCode(after)
	}
	return cmd
}

func (m *Model) handleTableKey(msg tea.KeyMsg) (tea.Cmd, bool) {
	switch msg.String() {
	case "q":
		return nil, true
	case "tab", "esc", "/":
		m.focusInput()
		return nil, false
	case "enter", " ":
		if row := m.table.SelectedRow(); len(row) > 0 {
			m.ctrl.ToggleSelection(row[0])
		}
		return nil, false
	case "n":
		m.ctrl.SortBy(events.SortByNumber)
		return nil, false
	case "a":
		m.ctrl.SortBy(events.SortByName)
		return nil, false
	case "o":
		m.ctrl.SortBy(events.SortByOPR)
		return nil, false
	case "r":
		m.ctrl.Refresh()
		return nil, false
	}

	var cmd tea.Cmd
	m.table, cmd = m.table.Update(msg)
	return cmd, false
}

func (m *Model) focusTable() {
	m.focus = focusTable
	m.input.Blur()
	m.table.Focus()
}

func (m *Model) focusInput() {
	m.focus = focusInput
	m.table.Blur()
	m.input.Focus()
}

// sync pulls the latest controller state into the widgets.
func (m *Model) sync() {
	m.state = m.ctrl.State()
	m.teams = m.ctrl.SortedTeams()
	m.table.SetColumns(columnsFor(m.state.SortField, m.state.SortDir))
	m.table.SetRows(rowsFor(m.teams))
	if cursor := m.table.Cursor(); cursor >= len(m.teams) {
		m.table.SetCursor(max(len(m.teams)-1, 0))
	}
}

func columnsFor(field events.SortField, dir events.SortDirection) []table.Column {
	title := func(label string, f events.SortField) string {
		if f != field {
			return label
		}
		if dir == events.Ascending {
			return label + " ▲"
		}
		return label + " ▼"
	}
	return []table.Column{
		{Title: title("Team #", events.SortByNumber), Width: 10},
		{Title: title("Name", events.SortByName), Width: 32},
		{Title: title("OPR", events.SortByOPR), Width: 10},
	}
}

func rowsFor(teams []events.Team) []table.Row {
	rows := make([]table.Row, 0, len(teams))
	for _, team := range teams {
		rows = append(rows, table.Row{team.Number, team.Name, formatOPR(team.OPR)})
	}
	return rows
}

func tableStyles() table.Styles {
	s := table.DefaultStyles()
	s.Header = s.Header.
		BorderStyle(lipgloss.NormalBorder()).
		BorderForeground(borderColor).
		BorderBottom(true).
		Bold(true)
	s.Selected = s.Selected.Foreground(primaryColor).Bold(true)
	return s
}

func formatOPR(opr float64) string {
	return strconv.FormatFloat(opr, 'f', 2, 64)
}

func formatRank(rank *int) string {
	if rank == nil {
		return "N/A"
	}
	return fmt.Sprintf("#%d", *rank)
}
