package cli

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"github.com/alexanderramin/planify/internal/domain"
	"github.com/alexanderramin/planify/internal/formstate"
	"github.com/alexanderramin/planify/internal/planapi"
	"github.com/alexanderramin/planify/internal/repository"
	"github.com/alexanderramin/planify/internal/session"
	"github.com/alexanderramin/planify/internal/testutil"
	"github.com/alexanderramin/planify/internal/theme"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func fillForm(d *TestDriver) {
	f := d.Fields()
	f.subject = "Organic Chemistry"
	f.goal = "Score 90% on the midterm"
}

func TestTUI_StartsOnFormWithHydratedValues(t *testing.T) {
	env := newTestEnv(t, &stubGenerator{})
	saved := testutil.NewTestSnapshot(testutil.WithSubject("Physics"), testutil.WithHours(1.5))
	require.NoError(t, env.Store.Persist(context.Background(), saved))

	d := NewTestDriver(t, env.App)

	assert.Equal(t, ViewForm, d.Screen())
	assert.Equal(t, "Physics", d.Fields().subject)
	assert.Equal(t, "1.5", d.Fields().hours)
	assert.Equal(t, saved, d.appModel().saved)

	view := stripANSI(d.View())
	assert.Contains(t, view, "☀ PlanifyVerse")
	assert.Contains(t, view, "ctrl+t Dark Mode")
}

func TestTUI_CorruptedSnapshotShowsNotice(t *testing.T) {
	env := newTestEnv(t, &stubGenerator{})
	repo := repository.NewSQLiteFormSessionRepo(testutil.NewTestDB(t))
	require.NoError(t, repo.Put(context.Background(), "s1", "{not json"))
	env.App.Forms = formstate.NewStore(repo, "s1", nil)

	d := NewTestDriver(t, env.App)

	assert.Equal(t, domain.DefaultSnapshot(), d.appModel().saved)
	assert.Contains(t, stripANSI(d.View()), "Saved form was unreadable and has been reset.")
}

func TestTUI_SyncFieldsPersistsEachChange(t *testing.T) {
	env := newTestEnv(t, &stubGenerator{})
	ctx := context.Background()
	m := newAppModel(ctx, env.App, false)

	m.fields.subject = "Bio"
	cmd := m.syncFields()
	require.NotNil(t, cmd)
	cmd()

	h := env.Store.Hydrate(ctx)
	require.True(t, h.Found)
	assert.Equal(t, "Bio", h.Snapshot.Subject)

	assert.Nil(t, m.syncFields(), "unchanged form is not written again")

	m.fields.hours = "abc"
	assert.Nil(t, m.syncFields(), "unparseable hours keep the saved value")

	m.fields.hours = "3.5"
	m.syncFields()()
	assert.Equal(t, 3.5, env.Store.Hydrate(ctx).Snapshot.Time)
}

func TestTUI_ClearedNumberKeepsLastValidValue(t *testing.T) {
	env := newTestEnv(t, &stubGenerator{})
	ctx := context.Background()
	m := newAppModel(ctx, env.App, false)

	m.fields.hours = "4"
	m.fields.durationValue = "6"
	m.syncFields()()

	m.fields.hours = ""
	m.fields.durationValue = " "
	m.fields.subject = "Physics"
	m.syncFields()()

	h := env.Store.Hydrate(ctx)
	assert.Equal(t, "Physics", h.Snapshot.Subject)
	assert.Equal(t, 4.0, h.Snapshot.Time)
	assert.Equal(t, 6, h.Snapshot.DurationValue)

	reloaded := newAppModel(ctx, env.App, false)
	assert.Equal(t, "4", reloaded.fields.hours)
	assert.Equal(t, "6", reloaded.fields.durationValue)
}

func TestTUI_FormSaverDropsStaleWrites(t *testing.T) {
	env := newTestEnv(t, &stubGenerator{})
	ctx := context.Background()
	s := newFormSaver(env.Store)

	require.NoError(t, s.save(ctx, 2, testutil.NewTestSnapshot(testutil.WithSubject("newer"))))
	require.NoError(t, s.save(ctx, 1, testutil.NewTestSnapshot(testutil.WithSubject("older"))))
	assert.Equal(t, "newer", env.Store.Hydrate(ctx).Snapshot.Subject)

	_, err := s.reset(ctx, 3)
	require.NoError(t, err)
	require.NoError(t, s.save(ctx, 2, testutil.NewTestSnapshot()))
	assert.False(t, env.Store.Hydrate(ctx).Found, "a write queued before the reset does not resurrect the form")
}

func TestTUI_SubmitSuccessShowsPlan(t *testing.T) {
	env := newTestEnv(t, &stubGenerator{plan: "**Week 1**\r\nDay 1: intro"})
	d := NewTestDriver(t, env.App)
	fillForm(d)

	d.Send(submitMsg{})

	m := d.appModel()
	assert.Equal(t, ViewResult, m.screen)
	assert.Equal(t, session.StateSuccess, m.sess.State)
	assert.Equal(t, "Week 1\nDay 1: intro", m.sess.Plan)

	view := stripANSI(d.View())
	assert.Contains(t, view, "STUDY PLAN: ORGANIC CHEMISTRY")
	assert.Contains(t, view, "Day 1: intro")
	assert.Contains(t, view, "Study plan generated.")
	assert.Contains(t, view, "c copy")
	assert.Contains(t, view, "p pdf")
}

func TestTUI_HoursBelowMinimumReturnsToForm(t *testing.T) {
	env := newTestEnv(t, &stubGenerator{plan: "plan"})
	d := NewTestDriver(t, env.App)
	fillForm(d)
	d.Fields().hours = "0.2"

	d.Send(submitMsg{})

	assert.Equal(t, ViewForm, d.Screen())
	assert.Equal(t, 0, env.Gen.Calls())
	assert.Contains(t, stripANSI(d.View()), "Hours per day must be at least 0.5.")
}

func TestTUI_ServerErrorDisablesExport(t *testing.T) {
	env := newTestEnv(t, &stubGenerator{err: &planapi.StatusError{StatusCode: 500, ServerMessage: "quota exceeded"}})
	d := NewTestDriver(t, env.App)
	fillForm(d)

	d.Send(submitMsg{})

	m := d.appModel()
	assert.Equal(t, ViewResult, m.screen)
	assert.Equal(t, session.StateError, m.sess.State)

	view := stripANSI(d.View())
	assert.Contains(t, view, "quota exceeded")
	assert.Contains(t, view, "Your study plan will appear here.")
	assert.NotContains(t, view, "c copy")

	d.PressKey('c')
	assert.Empty(t, env.Clipboard.Text(), "copy without a plan is a no-op")

	d.PressKey('p')
	assert.Contains(t, stripANSI(d.View()), "Generate a study plan before exporting.")
}

func TestTUI_CopyAndExportKeys(t *testing.T) {
	env := newTestEnv(t, &stubGenerator{plan: "Week 1\nRead"})
	d := NewTestDriver(t, env.App)
	fillForm(d)
	d.Send(submitMsg{})

	d.PressKey('c')
	assert.Equal(t, "Week 1\nRead", env.Clipboard.Text())
	assert.Contains(t, stripANSI(d.View()), "Study plan copied to clipboard.")

	d.PressKey('p')
	assert.FileExists(t, filepath.Join(env.ExportDir, "organic-chemistry.pdf"))
	assert.Contains(t, stripANSI(d.View()), "organic-chemistry.pdf (1 page)")
}

func TestTUI_LoadingHidesExportAndIgnoresEdit(t *testing.T) {
	env := newTestEnv(t, &stubGenerator{})
	d := NewTestDriver(t, env.App)
	d.SetScreen(ViewResult)

	d.Send(sessionMsg{model: session.Model{State: session.StateLoading, Seq: 1, Hint: session.HintWaking}})

	view := stripANSI(d.View())
	assert.Contains(t, view, "Waking up the server, this can take a little while...")
	assert.NotContains(t, view, "c copy")
	assert.NotContains(t, view, "e edit form")

	d.PressKey('e')
	assert.Equal(t, ViewResult, d.Screen(), "no second submission while loading")

	d.Send(sessionMsg{model: session.Model{State: session.StateSuccess, Seq: 1, Plan: "done"}})
	view = stripANSI(d.View())
	assert.NotContains(t, view, "Waking up")
	assert.Contains(t, view, "done")
}

func TestTUI_EditReturnsToFormAndEscGoesBack(t *testing.T) {
	env := newTestEnv(t, &stubGenerator{plan: "plan"})
	d := NewTestDriver(t, env.App)
	fillForm(d)
	d.Send(submitMsg{})
	require.Equal(t, ViewResult, d.Screen())

	d.PressKey('e')
	assert.Equal(t, ViewForm, d.Screen())
	assert.Equal(t, "Organic Chemistry", d.Fields().subject, "edit keeps the submitted values")

	d.PressEsc()
	assert.Equal(t, ViewResult, d.Screen())
}

func TestTUI_ThemeToggle(t *testing.T) {
	env := newTestEnv(t, &stubGenerator{})
	d := NewTestDriver(t, env.App)

	d.PressKeyType(tea.KeyCtrlT)

	assert.Equal(t, domain.ThemeDark, theme.Active().Theme)
	view := stripANSI(d.View())
	assert.Contains(t, view, "☾ PlanifyVerse")
	assert.Contains(t, view, "ctrl+t Light Mode")
	assert.Contains(t, view, "Switched to dark theme.")

	stored, err := env.Prefs.Get(context.Background(), repository.PreferenceKeyTheme)
	require.NoError(t, err)
	assert.Equal(t, "dark", stored)
}

func TestTUI_ResetAppliesDefaultsAfterNativeReset(t *testing.T) {
	env := newTestEnv(t, &stubGenerator{})
	ctx := context.Background()
	require.NoError(t, env.Store.Persist(ctx, testutil.NewTestSnapshot(testutil.WithPace(domain.PaceRelaxed))))
	m := newAppModel(ctx, env.App, false)
	require.Equal(t, "relaxed", m.fields.pace)

	next, cmd := m.Update(formResetMsg{defaults: domain.DefaultSnapshot()})
	m = next.(appModel)
	assert.Empty(t, m.fields.subject, "form is natively reset first")
	assert.Empty(t, m.fields.goal)
	assert.Empty(t, m.fields.hours)
	assert.Empty(t, m.fields.durationValue)
	assert.True(t, m.resetPending)
	assert.Nil(t, m.syncFields(), "the blank form is never persisted")
	require.NotNil(t, cmd)

	next, _ = m.Update(applyDefaultsMsg{snap: domain.DefaultSnapshot()})
	m = next.(appModel)
	assert.Equal(t, *fieldsFromSnapshot(domain.DefaultSnapshot()), *m.fields)
	assert.Equal(t, domain.DefaultSnapshot(), m.saved)
	assert.False(t, m.resetPending)
}

func TestTUI_ResetKeyClearsSavedForm(t *testing.T) {
	env := newTestEnv(t, &stubGenerator{})
	ctx := context.Background()
	require.NoError(t, env.Store.Persist(ctx, testutil.NewTestSnapshot()))
	d := NewTestDriver(t, env.App)
	require.Equal(t, "Organic Chemistry", d.Fields().subject)

	d.PressKeyType(tea.KeyCtrlR)

	assert.Equal(t, "", d.Fields().subject)
	assert.Equal(t, "2", d.Fields().hours)
	assert.Equal(t, "weeks", d.Fields().durationUnit)
	assert.True(t, d.Fields().includeRevision)
	assert.Contains(t, stripANSI(d.View()), "Form reset to defaults.")

	assert.Eventually(t, func() bool { return !env.Store.Hydrate(ctx).Found }, time.Second, 10*time.Millisecond)
}

func TestTUI_ResetIgnoredWhileSubmitting(t *testing.T) {
	gen := &stubGenerator{plan: "Week 1", release: make(chan struct{})}
	env := newTestEnv(t, gen)
	ctx := context.Background()
	d := NewTestDriver(t, env.App)
	fillForm(d)
	d.Fields().subject = "Statistics"

	// The held request outlives the driver's cmd timeout.
	d.Send(submitMsg{})
	require.Equal(t, 1, d.Skipped)
	require.Eventually(t, func() bool { return gen.Calls() == 1 }, time.Second, 5*time.Millisecond)

	d.PressKeyType(tea.KeyCtrlR)
	assert.Equal(t, "Statistics", d.Fields().subject)
	view := stripANSI(d.View())
	assert.NotContains(t, view, "Form reset to defaults.")
	assert.NotContains(t, view, "ctrl+r")

	d.Send(submitMsg{})
	assert.Equal(t, 1, gen.Calls(), "no second submission while one is pending")

	close(gen.release)
	require.Eventually(t, func() bool {
		h := env.Store.Hydrate(ctx)
		return h.Found && h.Snapshot.Subject == "Statistics"
	}, time.Second, 10*time.Millisecond)

	final := env.App.Session.Model()
	d.Send(submitDoneMsg{model: &final})
	assert.Contains(t, stripANSI(d.View()), "ctrl+r")

	d.PressKeyType(tea.KeyCtrlR)
	assert.Eventually(t, func() bool { return !env.Store.Hydrate(ctx).Found }, time.Second, 10*time.Millisecond)
	assert.Equal(t, "", d.Fields().subject)
}

func TestTUI_Quit(t *testing.T) {
	env := newTestEnv(t, &stubGenerator{plan: "plan"})

	d := NewTestDriver(t, env.App)
	d.PressCtrlC()
	assert.True(t, d.Quitting)

	d = NewTestDriver(t, env.App)
	d.PressKey('q')
	assert.False(t, d.Quitting, "q types into the form")

	fillForm(d)
	d.Send(submitMsg{})
	d.PressKey('q')
	assert.True(t, d.Quitting)
}
