// Package tui is the terminal front end of the planner: three panels, a form with
// autosave, toasts and confirmation dialogs.
package tui

import (
	"context"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	log "github.com/go-pkgz/lgr"

	"epiplan/internal/app/epiplan"
	"epiplan/internal/app/epiplan/form"
	"epiplan/internal/app/epiplan/nav"
	"epiplan/internal/app/epiplan/notify"
)

// Widgets are the terminal controls planner app is built over
type Widgets struct {
	Fields   *FieldSet
	Feedback *Feedback
	Answer   *notify.Answer
}

// NewWidgets makes empty form, feedback area and confirmation answer
func NewWidgets() Widgets {
	return Widgets{Fields: NewFieldSet(), Feedback: &Feedback{}, Answer: &notify.Answer{}}
}

// dialog is a pending yes/no question, action runs after the answer is given
type dialog struct {
	prompt string
	action func()
}

// Model is the bubbletea model of the planner
type Model struct {
	ctx      context.Context
	app      *epiplan.App
	w        Widgets
	toastFor time.Duration

	selected int
	dialog   *dialog
	width    int
	height   int
	quitting bool
}

// New makes model over app built with widgets w
func New(ctx context.Context, app *epiplan.App, w Widgets, toastFor time.Duration) Model {
	return Model{ctx: ctx, app: app, w: w, toastFor: toastFor}
}

// Init of the model
func (m Model) Init() tea.Cmd {
	return m.afterAction(nil)
}

// Update handles messages
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width, m.height = msg.Width, msg.Height
		if msg.Width > 40 {
			m.w.Fields.SetWidth(msg.Width - 34)
		}
		return m, nil

	case autosaveIdle:
		m.app.AutoSave()
		return m, nil

	case toastExpired:
		m.w.Feedback.expire(msg.seq)
		return m, nil

	case pdfDone:
		m.app.FinishPDF(m.ctx, msg.job, msg.path, msg.err)
		return m, m.afterAction(nil)

	case tea.KeyMsg:
		return m.handleKey(msg)
	}
	return m, nil
}

func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if msg.String() == "ctrl+c" {
		m.quitting = true
		return m, tea.Quit
	}

	if m.w.Feedback.alert != "" {
		if k := msg.String(); k == "enter" || k == "esc" {
			m.w.Feedback.alert = ""
		}
		return m, nil
	}

	if m.dialog != nil {
		return m.handleDialog(msg)
	}

	if m.w.Feedback.busy {
		return m, nil
	}

	switch msg.String() {
	case "f1":
		m.app.Nav().Show(nav.Planner)
		return m, nil
	case "f2":
		m.app.Nav().Show(nav.History)
		m.clampSelection()
		return m, nil
	case "f3":
		m.app.Nav().Show(nav.Spreadsheet)
		return m, nil
	case "ctrl+n":
		m.app.Nav().Next()
		m.clampSelection()
		return m, nil
	}

	switch m.app.Nav().Active() {
	case nav.History:
		return m.handleHistoryKey(msg)
	case nav.Spreadsheet:
		return m.handleSpreadsheetKey(msg)
	default:
		return m.handlePlannerKey(msg)
	}
}

func (m Model) handleDialog(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "y", "Y", "enter":
		d := m.dialog
		m.dialog = nil
		m.w.Answer.Give(true)
		d.action()
		m.clampSelection()
		return m, m.afterAction(nil)
	case "n", "N", "esc":
		m.dialog = nil
	}
	return m, nil
}

func (m Model) handlePlannerKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "tab", "down":
		m.w.Fields.Move(1)
		return m, nil
	case "shift+tab", "up":
		m.w.Fields.Move(-1)
		return m, nil
	case "ctrl+s":
		if err := m.app.Save(); err != nil {
			log.Printf("[DEBUG] save skipped, %v", err)
		}
		return m, m.afterAction(nil)
	case "ctrl+l":
		m.dialog = &dialog{prompt: notify.PromptClear, action: func() { m.app.Clear() }}
		return m, nil
	case "ctrl+o":
		m.app.LoadSample()
		return m, nil
	case "ctrl+p":
		return m, m.afterAction(m.startPDF())
	case "ctrl+e":
		if _, err := m.app.ShareEmail(); err != nil {
			log.Printf("[WARN] share by email, %v", err)
		}
		return m, m.afterAction(nil)
	}

	changed, cmd := m.w.Fields.update(msg)
	if changed {
		if m.w.Fields.Focused() == form.Date {
			v, _ := m.w.Fields.Value(form.Date)
			m.app.DateChanged(v)
		}
		m.app.Edited()
	}
	return m, cmd
}

func (m Model) handleHistoryKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	cards := m.app.History().Cards
	if len(cards) == 0 {
		if msg.String() == "enter" {
			m.app.Nav().Show(nav.Planner)
		}
		return m, nil
	}

	date := cards[m.selected].Date
	switch msg.String() {
	case "up", "k":
		if m.selected > 0 {
			m.selected--
		}
	case "down", "j":
		if m.selected < len(cards)-1 {
			m.selected++
		}
	case "enter", "e":
		if err := m.app.Edit(date); err != nil {
			log.Printf("[WARN] %v", err)
		}
	case "d":
		if err := m.app.Duplicate(date); err != nil {
			log.Printf("[WARN] %v", err)
		}
	case "r":
		m.app.RefreshViews()
		m.clampSelection()
	case "x", "delete":
		m.dialog = &dialog{prompt: notify.PromptDelete, action: func() { m.app.Delete(date) }}
	}
	return m, nil
}

func (m Model) handleSpreadsheetKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "c":
		if _, err := m.app.ExportCSV(m.ctx); err != nil {
			log.Printf("[WARN] csv export, %v", err)
		}
	case "h":
		if _, err := m.app.ExportHTML(m.ctx); err != nil {
			log.Printf("[WARN] html export, %v", err)
		}
	default:
		return m, nil
	}
	return m, m.afterAction(nil)
}

// startPDF takes the sync part of export here and renders in background
func (m Model) startPDF() tea.Cmd {
	job, err := m.app.StartPDF()
	if err != nil {
		log.Printf("[DEBUG] pdf export not started, %v", err)
		return nil
	}
	ctx := m.ctx
	return func() tea.Msg {
		path, err := job.Run(ctx)
		return pdfDone{job: job, path: path, err: err}
	}
}

// afterAction schedules expiry of a fresh toast along with cmd
func (m Model) afterAction(cmd tea.Cmd) tea.Cmd {
	seq, ok := m.w.Feedback.takeToast()
	if !ok {
		return cmd
	}
	expire := tea.Tick(m.toastFor, func(time.Time) tea.Msg { return toastExpired{seq: seq} })
	return tea.Batch(cmd, expire)
}

func (m *Model) clampSelection() {
	n := len(m.app.History().Cards)
	if m.selected >= n {
		m.selected = n - 1
	}
	if m.selected < 0 {
		m.selected = 0
	}
}
