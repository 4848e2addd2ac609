package domain

// Theme is the persisted light/dark preference.
type Theme string

const (
	ThemeLight Theme = "light"
	ThemeDark  Theme = "dark"
)

// Valid reports whether t is one of the known themes.
func (t Theme) Valid() bool {
	return t == ThemeLight || t == ThemeDark
}

// Flip returns the opposite theme. Anything that is not dark flips to dark.
func (t Theme) Flip() Theme {
	if t == ThemeDark {
		return ThemeLight
	}
	return ThemeDark
}

type DurationUnit string

const (
	UnitDays   DurationUnit = "days"
	UnitWeeks  DurationUnit = "weeks"
	UnitMonths DurationUnit = "months"
	UnitYears  DurationUnit = "years"
)

type PlanType string

const (
	PlanConcise  PlanType = "concise"
	PlanDetailed PlanType = "detailed"
)

type Pace string

const (
	PaceRelaxed   Pace = "relaxed"
	PaceModerate  Pace = "moderate"
	PaceIntensive Pace = "intensive"
)

// unitDays converts one duration unit into calendar days for the summary
// estimate. Units missing from this table have no estimate.
var unitDays = map[DurationUnit]float64{
	UnitDays:   1,
	UnitWeeks:  7,
	UnitMonths: 30,
	UnitYears:  365,
}
