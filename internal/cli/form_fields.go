package cli

import (
	"errors"
	"fmt"
	"math"
	"strconv"
	"strings"

	"github.com/alexanderramin/planify/internal/cli/formatter"
	"github.com/alexanderramin/planify/internal/domain"
	"github.com/charmbracelet/huh"
	"github.com/charmbracelet/lipgloss"
)

// formFields holds the huh-bound values of the study form. Numeric fields
// are edited as text.
type formFields struct {
	subject         string
	hours           string
	durationValue   string
	durationUnit    string
	goal            string
	planType        string
	pace            string
	includeRevision bool
	weekendSessions bool
}

func fieldsFromSnapshot(s domain.FormSnapshot) *formFields {
	return &formFields{
		subject:         s.Subject,
		hours:           strconv.FormatFloat(s.Time, 'f', -1, 64),
		durationValue:   strconv.Itoa(s.DurationValue),
		durationUnit:    string(s.DurationUnit),
		goal:            s.Goal,
		planType:        string(s.PlanType),
		pace:            string(s.Pace),
		includeRevision: s.IncludeRevision,
		weekendSessions: s.WeekendSessions,
	}
}

// snapshot converts the fields back to a FormSnapshot. A number is only
// committed once its text parses: while hours or duration is blank or
// half-typed, the snapshot keeps the value from prev, so a reload shows the
// last valid number rather than the blank field.
func (f *formFields) snapshot(prev domain.FormSnapshot) domain.FormSnapshot {
	s := domain.FormSnapshot{
		Subject:         f.subject,
		Time:            prev.Time,
		DurationValue:   prev.DurationValue,
		DurationUnit:    domain.DurationUnit(f.durationUnit),
		Goal:            f.goal,
		PlanType:        domain.PlanType(f.planType),
		Pace:            domain.Pace(f.pace),
		IncludeRevision: f.includeRevision,
		WeekendSessions: f.weekendSessions,
	}
	if v, err := parseHours(f.hours); err == nil {
		s.Time = v
	}
	if n, err := strconv.Atoi(strings.TrimSpace(f.durationValue)); err == nil {
		s.DurationValue = n
	}
	return s
}

func parseHours(s string) (float64, error) {
	v, err := strconv.ParseFloat(strings.TrimSpace(s), 64)
	if err != nil || math.IsNaN(v) || math.IsInf(v, 0) {
		return 0, errors.New("enter a number of hours")
	}
	return v, nil
}

func validateHours(s string) error {
	_, err := parseHours(s)
	return err
}

func validatePositiveInt(s string) error {
	n, err := strconv.Atoi(strings.TrimSpace(s))
	if err != nil || n < 1 {
		return errors.New("enter a whole number of at least 1")
	}
	return nil
}

func validateRequired(label string) func(string) error {
	return func(s string) error {
		if strings.TrimSpace(s) == "" {
			return fmt.Errorf("%s is required", label)
		}
		return nil
	}
}

func huhOptions(opts []domain.Option) []huh.Option[string] {
	out := make([]huh.Option[string], len(opts))
	for i, o := range opts {
		out[i] = huh.NewOption(o.Label, o.Value)
	}
	return out
}

// newStudyForm builds the study form bound to f. The hours minimum is not a
// field validator: it is checked on submit so the error shows on the status
// line.
func newStudyForm(f *formFields, def domain.FormDefinition) *huh.Form {
	return huh.NewForm(
		huh.NewGroup(
			huh.NewInput().
				Title("Subject").
				Placeholder("e.g. Organic Chemistry").
				Value(&f.subject).
				Validate(validateRequired("subject")),
			huh.NewInput().
				Title("Goal").
				Placeholder("e.g. Score 90% on the midterm").
				Value(&f.goal).
				Validate(validateRequired("goal")),
			huh.NewInput().
				Title("Hours per day").
				Placeholder("2").
				Value(&f.hours).
				Validate(validateHours),
		),
		huh.NewGroup(
			huh.NewInput().
				Title("Duration").
				Placeholder("4").
				Value(&f.durationValue).
				Validate(validatePositiveInt),
			huh.NewSelect[string]().
				Title("Unit").
				Options(huhOptions(def.DurationUnits)...).
				Value(&f.durationUnit),
			huh.NewSelect[string]().
				Title("Plan type").
				Options(huhOptions(def.PlanTypes)...).
				Value(&f.planType),
			huh.NewSelect[string]().
				Title("Pace").
				Options(huhOptions(def.Paces)...).
				Value(&f.pace),
			huh.NewConfirm().
				Title("Include revision sessions?").
				Value(&f.includeRevision),
			huh.NewConfirm().
				Title("Study on weekends?").
				Value(&f.weekendSessions),
		),
	).WithTheme(planifyHuhTheme()).WithShowHelp(false)
}

// planifyHuhTheme returns a huh theme built from the active palette.
func planifyHuhTheme() *huh.Theme {
	t := huh.ThemeBase()

	// Focused state: header accent
	t.Focused.Title = lipgloss.NewStyle().Foreground(formatter.ColorHeader).Bold(true)
	t.Focused.SelectSelector = lipgloss.NewStyle().Foreground(formatter.ColorHeader)
	t.Focused.SelectedOption = lipgloss.NewStyle().Foreground(formatter.ColorGreen)
	t.Focused.UnselectedOption = lipgloss.NewStyle().Foreground(formatter.ColorFg)
	t.Focused.FocusedButton = lipgloss.NewStyle().Foreground(formatter.ColorFg).Background(formatter.ColorHeader).Padding(0, 1)
	t.Focused.BlurredButton = lipgloss.NewStyle().Foreground(formatter.ColorDim).Padding(0, 1)
	t.Focused.TextInput.Cursor = lipgloss.NewStyle().Foreground(formatter.ColorHeader)
	t.Focused.TextInput.Prompt = lipgloss.NewStyle().Foreground(formatter.ColorHeader)
	t.Focused.TextInput.Text = lipgloss.NewStyle().Foreground(formatter.ColorFg)
	t.Focused.TextInput.Placeholder = lipgloss.NewStyle().Foreground(formatter.ColorDim)
	t.Focused.Description = lipgloss.NewStyle().Foreground(formatter.ColorDim)
	t.Focused.ErrorMessage = lipgloss.NewStyle().Foreground(formatter.ColorRed)
	t.Focused.ErrorIndicator = lipgloss.NewStyle().Foreground(formatter.ColorRed).SetString(" *")

	// Blurred state: dimmed
	t.Blurred.Title = lipgloss.NewStyle().Foreground(formatter.ColorDim)
	t.Blurred.SelectSelector = lipgloss.NewStyle().Foreground(formatter.ColorDim)
	t.Blurred.SelectedOption = lipgloss.NewStyle().Foreground(formatter.ColorDim)
	t.Blurred.UnselectedOption = lipgloss.NewStyle().Foreground(formatter.ColorDim)
	t.Blurred.TextInput.Prompt = lipgloss.NewStyle().Foreground(formatter.ColorDim)
	t.Blurred.TextInput.Text = lipgloss.NewStyle().Foreground(formatter.ColorDim)

	return t
}
