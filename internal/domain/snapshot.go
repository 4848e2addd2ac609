package domain

import (
	"fmt"
	"math"
	"strings"
)

// MinHoursPerDay is the smallest daily study time the planner accepts.
const MinHoursPerDay = 0.5

// FormSnapshot is a captured copy of every study-plan form field. The JSON
// shape doubles as the request body of POST /generateStudyPlan.
type FormSnapshot struct {
	Subject         string       `json:"subject"`
	Time            float64      `json:"time"`
	DurationValue   int          `json:"durationValue"`
	DurationUnit    DurationUnit `json:"durationUnit"`
	Goal            string       `json:"goal"`
	PlanType        PlanType     `json:"planType"`
	Pace            Pace         `json:"pace"`
	IncludeRevision bool         `json:"includeRevision"`
	WeekendSessions bool         `json:"weekendSessions"`
}

// DefaultSnapshot returns the documented field defaults used on first run,
// after a reset, and for any field missing from a stored snapshot.
func DefaultSnapshot() FormSnapshot {
	return FormSnapshot{
		Time:            2,
		DurationValue:   4,
		DurationUnit:    UnitWeeks,
		PlanType:        PlanConcise,
		Pace:            PaceModerate,
		IncludeRevision: true,
	}
}

// Option is one selectable value of an enumerated form field.
type Option struct {
	Label string
	Value string
}

// FormDefinition lists the accepted members of each enumerated field. It
// plays the role of the form markup: enum membership is configuration.
type FormDefinition struct {
	DurationUnits []Option
	PlanTypes     []Option
	Paces         []Option
}

// DefaultFormDefinition returns the option sets shipped with planify.
func DefaultFormDefinition() FormDefinition {
	return FormDefinition{
		DurationUnits: []Option{
			{Label: "Days", Value: string(UnitDays)},
			{Label: "Weeks", Value: string(UnitWeeks)},
			{Label: "Months", Value: string(UnitMonths)},
			{Label: "Years", Value: string(UnitYears)},
		},
		PlanTypes: []Option{
			{Label: "Concise", Value: string(PlanConcise)},
			{Label: "Detailed", Value: string(PlanDetailed)},
		},
		Paces: []Option{
			{Label: "Relaxed", Value: string(PaceRelaxed)},
			{Label: "Moderate", Value: string(PaceModerate)},
			{Label: "Intensive", Value: string(PaceIntensive)},
		},
	}
}

func hasOption(opts []Option, v string) bool {
	for _, o := range opts {
		if o.Value == v {
			return true
		}
	}
	return false
}

// ValidationError reports invalid form input. It never reaches the network.
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	return e.Message
}

// Validate applies the form's constraint checks: required fields, numeric
// types and enum membership. It does not apply the hours-per-day minimum;
// see ValidateHours.
func (s FormSnapshot) Validate(def FormDefinition) error {
	switch {
	case strings.TrimSpace(s.Subject) == "":
		return &ValidationError{Field: "subject", Message: "Subject is required."}
	case strings.TrimSpace(s.Goal) == "":
		return &ValidationError{Field: "goal", Message: "Goal is required."}
	case math.IsNaN(s.Time) || math.IsInf(s.Time, 0):
		return &ValidationError{Field: "time", Message: "Hours per day must be a number."}
	case s.DurationValue < 1:
		return &ValidationError{Field: "durationValue", Message: "Duration must be at least 1."}
	case !hasOption(def.DurationUnits, string(s.DurationUnit)):
		return &ValidationError{Field: "durationUnit", Message: fmt.Sprintf("Unknown duration unit %q.", s.DurationUnit)}
	case !hasOption(def.PlanTypes, string(s.PlanType)):
		return &ValidationError{Field: "planType", Message: fmt.Sprintf("Unknown plan type %q.", s.PlanType)}
	case !hasOption(def.Paces, string(s.Pace)):
		return &ValidationError{Field: "pace", Message: fmt.Sprintf("Unknown pace %q.", s.Pace)}
	}
	return nil
}

// ValidateHours is the domain check on daily study time: a finite number of
// at least MinHoursPerDay.
func ValidateHours(hours float64) error {
	if math.IsNaN(hours) || math.IsInf(hours, 0) || hours < MinHoursPerDay {
		return &ValidationError{Field: "time", Message: "Hours per day must be at least 0.5."}
	}
	return nil
}

// EstimateTotalHours returns the total study hours implied by the snapshot.
// The boolean is false when the unit has no known day multiplier.
func EstimateTotalHours(s FormSnapshot) (float64, bool) {
	days, ok := unitDays[s.DurationUnit]
	if !ok || s.DurationValue < 1 {
		return 0, false
	}
	return s.Time * float64(s.DurationValue) * days, true
}

// Summary renders a one-line description of the requested plan.
func Summary(s FormSnapshot) string {
	total, ok := EstimateTotalHours(s)
	if !ok {
		return fmt.Sprintf("%g h/day for %d %s (no estimate available)", s.Time, s.DurationValue, s.DurationUnit)
	}
	return fmt.Sprintf("%g h/day for %d %s, about %.0f study hours", s.Time, s.DurationValue, s.DurationUnit, math.Round(total))
}
