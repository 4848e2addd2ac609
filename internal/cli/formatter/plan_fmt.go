package formatter

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/alexanderramin/planify/internal/domain"
	"github.com/alexanderramin/planify/internal/export"
)

// FormatSnapshot renders the form values and the total-hours estimate.
func FormatSnapshot(s domain.FormSnapshot) string {
	subject := s.Subject
	if subject == "" {
		subject = Dim("(empty)")
	}
	goal := s.Goal
	if goal == "" {
		goal = Dim("(empty)")
	}

	var b strings.Builder
	b.WriteString(Header("Study Form"))
	b.WriteString("\n")
	b.WriteString(RenderFields([][2]string{
		{"Subject", subject},
		{"Hours per day", FormatHours(s.Time)},
		{"Duration", strconv.Itoa(s.DurationValue) + " " + string(s.DurationUnit)},
		{"Goal", goal},
		{"Plan type", string(s.PlanType)},
		{"Pace", string(s.Pace)},
		{"Revision", YesNo(s.IncludeRevision)},
		{"Weekends", YesNo(s.WeekendSessions)},
	}))
	b.WriteString("\n  ")
	b.WriteString(Dim(domain.Summary(s)))
	b.WriteString("\n")
	return b.String()
}

// FormatPlan renders a generated plan under its title, wrapped to width.
func FormatPlan(subject, plan string, width int) string {
	var b strings.Builder
	b.WriteString(Header(export.Title(subject)))
	b.WriteString("\n\n")
	b.WriteString(Indent(Wrap(plan, width-2), 2))
	b.WriteString("\n")
	return b.String()
}

// FormatExport renders the confirmation for a written PDF.
func FormatExport(res *export.PDFResult) string {
	noun := "pages"
	if res.Pages == 1 {
		noun = "page"
	}
	return fmt.Sprintf("%s Saved %s %s", StyleGreen.Render("✔"), Bold(res.Path), Dim(fmt.Sprintf("(%d %s)", res.Pages, noun)))
}
