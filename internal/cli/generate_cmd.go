package cli

import (
	"errors"
	"fmt"
	"io"

	"github.com/alexanderramin/planify/internal/cli/formatter"
	"github.com/alexanderramin/planify/internal/domain"
	"github.com/alexanderramin/planify/internal/session"
	"github.com/spf13/cobra"
)

// generateFlags holds flag-bound values. Only flags the user set override
// the hydrated form.
type generateFlags struct {
	subject   string
	hours     float64
	duration  int
	unit      domain.DurationUnit
	goal      string
	planType  domain.PlanType
	pace      domain.Pace
	revision  bool
	weekends  bool
	pdf       bool
	copyPlan  bool
	wrapWidth int
}

func newGenerateCmd(app *App) *cobra.Command {
	var f generateFlags

	cmd := &cobra.Command{
		Use:   "generate",
		Short: "Generate a study plan from the saved form and flags",
		Long: `Generate a study plan without the TUI. Values not given as flags come
from the form saved for this terminal session, or the defaults.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			snap := loadSnapshot(cmd, app)
			applyGenerateFlags(cmd, &f, &snap)
			return runGenerate(cmd, app, snap, f)
		},
	}

	def := app.Definition
	fl := cmd.Flags()
	fl.StringVar(&f.subject, "subject", "", "Subject to study")
	fl.Float64Var(&f.hours, "hours", 0, "Hours per day (at least 0.5)")
	fl.IntVar(&f.duration, "duration", 0, "Duration value, in --unit")
	fl.Var(newEnumFlag(&f.unit, def.DurationUnits, "unit"), "unit", "Duration unit (days, weeks, months, years)")
	fl.StringVar(&f.goal, "goal", "", "What you want to achieve")
	fl.Var(newEnumFlag(&f.planType, def.PlanTypes, "plan-type"), "plan-type", "Plan type (concise, detailed)")
	fl.Var(newEnumFlag(&f.pace, def.Paces, "pace"), "pace", "Pace (relaxed, moderate, intensive)")
	fl.BoolVar(&f.revision, "revision", true, "Include revision sessions")
	fl.BoolVar(&f.weekends, "weekends", false, "Schedule weekend sessions")
	fl.BoolVar(&f.pdf, "pdf", false, "Export the plan to a PDF file")
	fl.BoolVar(&f.copyPlan, "copy", false, "Copy the plan to the clipboard")
	fl.IntVar(&f.wrapWidth, "width", 80, "Wrap width for printed output")

	return cmd
}

func loadSnapshot(cmd *cobra.Command, app *App) domain.FormSnapshot {
	if app.Forms == nil {
		return domain.DefaultSnapshot()
	}
	h := app.Forms.Hydrate(cmd.Context())
	if h.Discarded {
		fmt.Fprintln(cmd.ErrOrStderr(), formatter.Dim("Saved form was unreadable and has been reset."))
	}
	return h.Snapshot
}

func applyGenerateFlags(cmd *cobra.Command, f *generateFlags, snap *domain.FormSnapshot) {
	changed := cmd.Flags().Changed
	if changed("subject") {
		snap.Subject = f.subject
	}
	if changed("hours") {
		snap.Time = f.hours
	}
	if changed("duration") {
		snap.DurationValue = f.duration
	}
	if changed("unit") {
		snap.DurationUnit = f.unit
	}
	if changed("goal") {
		snap.Goal = f.goal
	}
	if changed("plan-type") {
		snap.PlanType = f.planType
	}
	if changed("pace") {
		snap.Pace = f.pace
	}
	if changed("revision") {
		snap.IncludeRevision = f.revision
	}
	if changed("weekends") {
		snap.WeekendSessions = f.weekends
	}
}

func runGenerate(cmd *cobra.Command, app *App, snap domain.FormSnapshot, f generateFlags) error {
	out, errOut := cmd.OutOrStdout(), cmd.ErrOrStderr()

	spin := formatter.NewSpinner(errOut, session.HintInitial.Text())
	if app.interactive() {
		spin.Start()
		defer spin.Stop()
	}
	app.Session.SetRenderer(session.RendererFunc(func(m session.Model) {
		if m.Loading() {
			spin.SetMessage(m.HintText())
		}
	}))
	defer app.Session.SetRenderer(nil)

	plan, err := app.Session.Submit(cmd.Context(), snap)
	spin.Stop()
	if err != nil {
		m := app.Session.Model()
		fmt.Fprintln(errOut, formatter.StatusLine(m.StatusKind, m.Status))
		var verr *domain.ValidationError
		if errors.As(err, &verr) {
			return fmt.Errorf("invalid form: %w", err)
		}
		return fmt.Errorf("generating study plan: %w", err)
	}

	fmt.Fprint(out, formatter.FormatPlan(snap.Subject, plan, f.wrapWidth))

	if f.copyPlan {
		if err := app.Session.CopyPlan(); err != nil {
			printStatus(errOut, app.Session.Model())
		} else {
			printStatus(out, app.Session.Model())
		}
	}
	if f.pdf {
		res, err := app.Session.ExportPDF()
		if err != nil {
			printStatus(errOut, app.Session.Model())
			return fmt.Errorf("exporting PDF: %w", err)
		}
		fmt.Fprintln(out, formatter.FormatExport(res))
	}
	return nil
}

func printStatus(w io.Writer, m session.Model) {
	if line := formatter.StatusLine(m.StatusKind, m.Status); line != "" {
		fmt.Fprintln(w, line)
	}
}
