package tui

import (
	"strings"

	"github.com/charmbracelet/lipgloss"

	"epiplan/internal/app/epiplan/form"
	"epiplan/internal/app/epiplan/nav"
)

var panelNames = map[nav.Panel]string{
	nav.Planner:     "Episode Planner",
	nav.History:     "Episode History",
	nav.Spreadsheet: "Spreadsheet View",
}

// View renders the model
func (m Model) View() string {
	if m.quitting {
		return ""
	}

	show := m.app.Show()
	var b strings.Builder
	b.WriteString(titleStyle.Render(show.Name))
	b.WriteString("  ")
	b.WriteString(taglineStyle.Render(show.Tagline))
	b.WriteString("\n\n")
	b.WriteString(m.viewTabs())
	b.WriteString("\n\n")

	switch {
	case m.w.Feedback.alert != "":
		b.WriteString(modalStyle.Render(m.w.Feedback.alert + "\n\n" + helpStyle.Render("enter: ok")))
	case m.dialog != nil:
		b.WriteString(modalStyle.Render(m.dialog.prompt + "\n\n" + helpStyle.Render("y: yes  n: no")))
	case m.w.Feedback.busy:
		b.WriteString(busyStyle.Render("Generating PDF..."))
	default:
		b.WriteString(m.viewPanel())
	}

	b.WriteString("\n\n")
	if m.w.Feedback.toast != "" {
		b.WriteString(toastStyle.Render("✓ " + m.w.Feedback.toast))
		b.WriteString("\n")
	}
	b.WriteString(helpStyle.Render(m.help()))
	return b.String()
}

func (m Model) viewTabs() string {
	tabs := make([]string, 0, len(nav.Panels()))
	for _, p := range nav.Panels() {
		style := tabStyle
		if p == m.app.Nav().Active() {
			style = activeTabStyle
		}
		tabs = append(tabs, style.Render(panelNames[p]))
	}
	return lipgloss.JoinHorizontal(lipgloss.Top, tabs...)
}

func (m Model) viewPanel() string {
	switch m.app.Nav().Active() {
	case nav.History:
		return m.viewHistory()
	case nav.Spreadsheet:
		return m.app.Table().Text()
	default:
		return m.viewPlanner()
	}
}

func (m Model) viewPlanner() string {
	fs := m.w.Fields
	first, last := 0, len(fs.order)
	if rows := m.height - 10; m.height > 0 && rows > 0 && rows < len(fs.order) {
		first = fs.focus - rows/2
		if first < 0 {
			first = 0
		}
		if first+rows > len(fs.order) {
			first = len(fs.order) - rows
		}
		last = first + rows
	}

	lines := make([]string, 0, last-first)
	for _, f := range fs.order[first:last] {
		label := labelStyle
		if f == fs.Focused() {
			label = focusedLabelStyle
		}
		lines = append(lines, label.Render(form.Label(f))+fs.inputs[f].View())
	}
	return strings.Join(lines, "\n")
}

func (m Model) viewHistory() string {
	view := m.app.History()
	if view.Empty != nil {
		return view.Text()
	}

	cards := make([]string, 0, len(view.Cards))
	for i, c := range view.Cards {
		style := cardStyle
		if i == m.selected {
			style = selectedCardStyle
		}
		cards = append(cards, style.Render(strings.TrimRight(c.Text(), "\n")))
	}
	return strings.Join(cards, "\n")
}

func (m Model) help() string {
	if m.w.Feedback.alert != "" || m.dialog != nil {
		return ""
	}
	global := "f1/f2/f3: panels  ctrl+n: next panel  ctrl+c: quit"
	switch m.app.Nav().Active() {
	case nav.History:
		return "↑/↓: select  enter: edit  d: duplicate  x: delete  r: refresh  " + global
	case nav.Spreadsheet:
		return "c: export csv  h: export html  " + global
	default:
		return "tab: next field  ctrl+s: save  ctrl+l: clear  ctrl+o: sample  ctrl+p: pdf  ctrl+e: email  " + global
	}
}
