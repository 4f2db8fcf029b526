package tui

import (
	"strconv"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"ftc-event-service/internal/domain/events"
	"ftc-event-service/internal/viewer"
)

func (m Model) View() string {
	var b strings.Builder
	b.WriteString(titleStyle.Render("FTC Event Teams"))
	b.WriteString("\n")
	b.WriteString(m.input.View())
	b.WriteString("\n\n")

	switch {
	case m.state.Loading:
		b.WriteString(mutedStyle.Render("Loading teams..."))
	case m.state.Err != nil:
		b.WriteString(errorStyle.Render(m.state.ErrMessage))
	case m.state.Event == nil:
		b.WriteString(mutedStyle.Render(viewer.IdleHint))
	default:
		b.WriteString(m.rosterView())
	}

	b.WriteString("\n\n")
	b.WriteString(mutedStyle.Render(m.helpLine()))
	return b.String()
}

func (m Model) rosterView() string {
	header := mutedStyle.Render(m.state.Event.EventCode + " · " + strconv.Itoa(len(m.teams)) + " teams")
	body := m.table.View()
	if team, ok := m.ctrl.SelectedTeam(); ok {
		body = lipgloss.JoinHorizontal(lipgloss.Top, body, renderDetail(team))
	}
	return header + "\n" + body
}

func (m Model) helpLine() string {
	if m.focus == focusInput {
		return "type an event code · enter/tab: teams · esc: clear · ctrl+c: quit"
	}
	return "↑/↓: move · enter: details · n/a/o: sort by number/name/opr · r: refresh · tab: edit code · q: quit"
}

func renderDetail(team events.Team) string {
	lines := []string{
		titleStyle.Render(team.Name),
		detailLine("Team", team.Number),
		detailLine("OPR", oprStyle.Render(formatOPR(team.OPR))),
		detailLine("World rank", formatRank(team.WorldRank)),
	}
	if team.SchoolName != nil && *team.SchoolName != "" {
		lines = append(lines, detailLine("School", *team.SchoolName))
	}
	if loc := team.Location(); loc != "" {
		lines = append(lines, detailLine("Location", loc))
	}
	if team.RookieYear != nil {
		lines = append(lines, detailLine("Rookie year", strconv.Itoa(*team.RookieYear)))
	}
	lines = append(lines, "")
	for _, link := range team.Links() {
		lines = append(lines, mutedStyle.Render(link.Label), "  "+link.URL)
	}
	return detailStyle.Render(strings.Join(lines, "\n"))
}

func detailLine(label, value string) string {
	return labelStyle.Render(label) + " " + value
}
