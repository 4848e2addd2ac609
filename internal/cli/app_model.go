package cli

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/alexanderramin/planify/internal/cli/formatter"
	"github.com/alexanderramin/planify/internal/domain"
	"github.com/alexanderramin/planify/internal/export"
	"github.com/alexanderramin/planify/internal/session"
	"github.com/alexanderramin/planify/internal/theme"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/huh"
)

// Messages produced by commands and the session renderer.
type (
	// sessionMsg carries a rendered session model.
	sessionMsg struct{ model session.Model }
	// submitMsg starts a submission of the current form values.
	submitMsg struct{}
	// submitDoneMsg reports a settled submission. model is nil when the
	// session renderer already delivered the final state.
	submitDoneMsg struct {
		err   error
		model *session.Model
	}
	themeToggledMsg struct {
		theme domain.Theme
		err   error
	}
	formResetMsg struct {
		defaults domain.FormSnapshot
		err      error
	}
	// applyDefaultsMsg fills the form after it has been natively reset.
	applyDefaultsMsg struct{ snap domain.FormSnapshot }
)

// appModel is the root bubbletea Model for the TUI: a study form screen and
// a result screen sharing one session controller.
//
// Update never calls the controller directly. Every controller call runs in
// a tea.Cmd, because the controller renders under its lock and the renderer
// blocks on Program.Send until Update has returned.
type appModel struct {
	app   *App
	ctx   context.Context
	keys  keyMap
	saver *formSaver

	// pushed is true when a session renderer delivers every transition to
	// the program. Otherwise commands return the model themselves.
	pushed bool

	fields       *formFields
	saved        domain.FormSnapshot
	saveGen      uint64
	resetPending bool
	form         *huh.Form

	screen  ViewID
	sess    session.Model
	// submitting spans a whole Submit call, from the submitMsg until the
	// settled result, including the success-path persist.
	submitting bool
	subject string
	notice  string

	spinner spinner.Model
	planVP  viewport.Model

	width    int
	height   int
	quitting bool
}

func newAppModel(ctx context.Context, app *App, pushed bool) appModel {
	saver := newFormSaver(app.Forms)
	h := saver.hydrate(ctx)

	vp := viewport.New(0, 0)
	vp.KeyMap = planViewportKeyMap()
	vp.MouseWheelEnabled = true

	m := appModel{
		app:     app,
		ctx:     ctx,
		keys:    defaultKeyMap(),
		saver:   saver,
		pushed:  pushed,
		fields:  fieldsFromSnapshot(h.Snapshot),
		saved:   h.Snapshot,
		screen:  ViewForm,
		sess:    app.Session.Model(),
		spinner: spinner.New(spinner.WithSpinner(spinner.Dot), spinner.WithStyle(formatter.StylePurple)),
		planVP:  vp,
	}
	if h.Discarded {
		m.notice = "Saved form was unreadable and has been reset."
	}
	m.form = newStudyForm(m.fields, app.Definition)
	return m
}

// ── bubbletea interface ──────────────────────────────────────────────────────

func (m appModel) Init() tea.Cmd {
	return m.form.Init()
}

func (m appModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.resizePlan()
		return m.updateForm(msg)

	case tea.KeyMsg:
		return m.handleKey(msg)

	case tea.MouseMsg:
		if m.screen == ViewResult {
			var cmd tea.Cmd
			m.planVP, cmd = m.planVP.Update(msg)
			return m, cmd
		}

	case sessionMsg:
		return m.applySession(msg.model)

	case submitMsg:
		return m.startSubmit()

	case submitDoneMsg:
		m.submitting = false
		var cmd tea.Cmd
		if msg.model != nil {
			var next tea.Model
			next, cmd = m.applySession(*msg.model)
			m = next.(appModel)
		}
		var verr *domain.ValidationError
		if errors.As(msg.err, &verr) {
			m.screen = ViewForm
			m.form = newStudyForm(m.fields, m.app.Definition)
			return m, tea.Batch(cmd, m.form.Init())
		}
		return m, cmd

	case themeToggledMsg:
		formatter.Use(theme.Active())
		m.spinner.Style = formatter.StylePurple
		m.form = m.form.WithTheme(planifyHuhTheme())
		m.setPlanContent()
		kind, text := session.StatusInfo, fmt.Sprintf("Switched to %s theme.", msg.theme)
		if msg.err != nil {
			kind, text = session.StatusError, fmt.Sprintf("Switched to %s theme, but it could not be saved.", msg.theme)
		}
		return m, m.sessionCmd(func(ctl *session.Controller) { ctl.Notify(kind, text) })

	case formResetMsg:
		// Reset natively first; the defaults land on the next message.
		*m.fields = formFields{}
		m.resetPending = true
		m.form = newStudyForm(m.fields, m.app.Definition)
		defaults := msg.defaults
		kind, text := session.StatusInfo, "Form reset to defaults."
		if msg.err != nil {
			kind, text = session.StatusError, "Form reset, but the saved copy could not be cleared."
		}
		return m, tea.Batch(
			func() tea.Msg { return applyDefaultsMsg{snap: defaults} },
			m.sessionCmd(func(ctl *session.Controller) { ctl.Notify(kind, text) }),
		)

	case applyDefaultsMsg:
		*m.fields = *fieldsFromSnapshot(msg.snap)
		m.saved = msg.snap
		m.resetPending = false
		m.form = newStudyForm(m.fields, m.app.Definition)
		if m.screen == ViewForm {
			return m, m.form.Init()
		}
		return m, nil

	case spinner.TickMsg:
		if !m.sess.Loading() {
			return m, nil
		}
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd
	}

	if m.screen == ViewForm {
		return m.updateForm(msg)
	}
	return m, nil
}

func (m appModel) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.ForceQuit):
		m.quitting = true
		return m, tea.Quit
	case key.Matches(msg, m.keys.Theme):
		return m, m.toggleThemeCmd()
	case key.Matches(msg, m.keys.Reset):
		// A reset during a submission would be overwritten by the
		// snapshot the submission persists on success.
		if m.busy() {
			return m, nil
		}
		m.saveGen++
		return m, m.resetCmd(m.saveGen)
	}

	if m.screen == ViewForm {
		if key.Matches(msg, m.keys.Back) && m.hasResult() {
			m.screen = ViewResult
			return m, nil
		}
		return m.updateForm(msg)
	}

	switch {
	case key.Matches(msg, m.keys.Quit):
		m.quitting = true
		return m, tea.Quit

	case key.Matches(msg, m.keys.Copy):
		if !m.sess.ExportEnabled() {
			return m, nil
		}
		return m, m.sessionCmd(func(ctl *session.Controller) { _ = ctl.CopyPlan() })

	case key.Matches(msg, m.keys.PDF):
		return m, m.sessionCmd(func(ctl *session.Controller) { _, _ = ctl.ExportPDF() })

	case key.Matches(msg, m.keys.Edit):
		if m.busy() || !m.sess.SubmitEnabled() {
			return m, nil
		}
		m.screen = ViewForm
		m.form = newStudyForm(m.fields, m.app.Definition)
		return m, m.form.Init()
	}

	if isScrollKey(msg) {
		var cmd tea.Cmd
		m.planVP, cmd = m.planVP.Update(msg)
		return m, cmd
	}
	return m, nil
}

// updateForm forwards msg to the form, persists any field change and starts
// a submission once the form completes.
func (m appModel) updateForm(msg tea.Msg) (tea.Model, tea.Cmd) {
	form, cmd := m.form.Update(msg)
	if f, ok := form.(*huh.Form); ok {
		m.form = f
	}
	persist := m.syncFields()

	if m.form.State == huh.StateCompleted && m.screen == ViewForm {
		m.screen = ViewResult
		return m, tea.Batch(cmd, persist, func() tea.Msg { return submitMsg{} })
	}
	return m, tea.Batch(cmd, persist)
}

// syncFields persists the form when any field differs from the last saved
// snapshot.
func (m *appModel) syncFields() tea.Cmd {
	if m.resetPending {
		return nil
	}
	snap := m.fields.snapshot(m.saved)
	if snap == m.saved {
		return nil
	}
	m.saved = snap
	m.saveGen++
	gen, saver, ctx := m.saveGen, m.saver, m.ctx
	return func() tea.Msg {
		_ = saver.save(ctx, gen, snap)
		return nil
	}
}

func (m appModel) startSubmit() (tea.Model, tea.Cmd) {
	if m.busy() || !m.sess.SubmitEnabled() {
		return m, nil
	}
	snap := m.fields.snapshot(m.saved)
	m.subject = snap.Subject
	m.screen = ViewResult
	m.submitting = true

	ctl, ctx, pushed := m.app.Session, m.ctx, m.pushed
	return m, func() tea.Msg {
		_, err := ctl.Submit(ctx, snap)
		if pushed {
			return submitDoneMsg{err: err}
		}
		final := ctl.Model()
		return submitDoneMsg{err: err, model: &final}
	}
}

func (m appModel) applySession(s session.Model) (tea.Model, tea.Cmd) {
	wasLoading := m.sess.Loading()
	planChanged := s.Plan != m.sess.Plan
	m.sess = s
	if s.Status != "" {
		m.notice = ""
	}
	if planChanged {
		m.setPlanContent()
	}
	if s.Loading() && !wasLoading {
		return m, m.spinner.Tick
	}
	return m, nil
}

// sessionCmd runs fn against the controller off the update loop.
func (m appModel) sessionCmd(fn func(ctl *session.Controller)) tea.Cmd {
	ctl, pushed := m.app.Session, m.pushed
	return func() tea.Msg {
		fn(ctl)
		if pushed {
			return nil
		}
		return sessionMsg{model: ctl.Model()}
	}
}

func (m appModel) toggleThemeCmd() tea.Cmd {
	mgr, ctx := m.app.Theme, m.ctx
	return func() tea.Msg {
		t, err := mgr.Toggle(ctx)
		return themeToggledMsg{theme: t, err: err}
	}
}

func (m appModel) resetCmd(gen uint64) tea.Cmd {
	saver, ctx := m.saver, m.ctx
	return func() tea.Msg {
		defaults, err := saver.reset(ctx, gen)
		return formResetMsg{defaults: defaults, err: err}
	}
}

func (m appModel) busy() bool {
	return m.submitting || m.sess.Loading()
}

func (m appModel) hasResult() bool {
	return m.sess.Loading() || m.sess.ExportEnabled() || m.sess.ShowPlaceholder
}

func (m *appModel) resizePlan() {
	m.planVP.Width = max(m.width-4, 20)
	m.planVP.Height = max(m.height-10, 3)
	m.setPlanContent()
}

func (m *appModel) setPlanContent() {
	m.planVP.SetContent(formatter.StyleFg.Render(formatter.Wrap(m.sess.Plan, m.planVP.Width)))
	m.planVP.GotoTop()
}

// ── rendering ────────────────────────────────────────────────────────────────

func (m appModel) View() string {
	if m.quitting {
		return ""
	}

	var b strings.Builder
	b.WriteString(m.headerView())
	b.WriteString("\n\n")

	switch m.screen {
	case ViewForm:
		b.WriteString(m.form.View())
	case ViewResult:
		b.WriteString(m.resultView())
	}

	b.WriteString("\n\n")
	if line := formatter.StatusLine(m.sess.StatusKind, m.sess.Status); line != "" {
		b.WriteString(line)
	} else if m.notice != "" {
		b.WriteString(formatter.StatusLine(session.StatusInfo, m.notice))
	}
	b.WriteString("\n")
	b.WriteString(renderHelp(m.shortHelp()))
	return b.String()
}

func (m appModel) headerView() string {
	p := theme.Active()
	return formatter.StyleHeader.Render(p.Logo) + "  " + formatter.Dim("ctrl+t "+p.ToggleLabel)
}

func (m appModel) resultView() string {
	var body string
	switch {
	case m.sess.Loading():
		body = m.spinner.View() + " " + formatter.Dim(m.sess.HintText())
	case m.sess.ExportEnabled():
		body = m.planVP.View()
	case m.sess.ShowPlaceholder:
		body = formatter.Dim("Your study plan will appear here. Press e to adjust the form and try again.")
	default:
		body = formatter.Dim("Press e to fill in the form.")
	}
	return formatter.Header(export.Title(m.subject)) + "\n\n" + body
}

// shortHelp lists the key hints for the current screen. Copy and PDF are
// offered only while a plan is held.
func (m appModel) shortHelp() []key.Binding {
	if m.screen == ViewForm {
		hints := []key.Binding{
			key.NewBinding(key.WithKeys("enter"), key.WithHelp("enter", "next")),
			m.keys.Reset,
			m.keys.Theme,
		}
		if m.hasResult() {
			hints = append(hints, m.keys.Back)
		}
		return append(hints, m.keys.ForceQuit)
	}

	var hints []key.Binding
	if m.sess.ExportEnabled() {
		hints = append(hints, m.keys.Copy, m.keys.PDF)
	}
	if m.busy() {
		return append(hints, m.keys.Theme, m.keys.Quit)
	}
	if m.sess.SubmitEnabled() {
		hints = append(hints, m.keys.Edit)
	}
	return append(hints, m.keys.Reset, m.keys.Theme, m.keys.Quit)
}
