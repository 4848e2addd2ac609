package export

import "strings"

// DefaultBaseName is used when the subject has no usable characters.
const DefaultBaseName = "study-plan"

// Slugify lowercases s, collapses every run of characters outside [a-z0-9]
// into a single "-", and strips leading and trailing separators.
func Slugify(s string) string {
	var b strings.Builder
	pendingSep := false
	for _, r := range strings.ToLower(s) {
		if (r >= 'a' && r <= 'z') || (r >= '0' && r <= '9') {
			if pendingSep && b.Len() > 0 {
				b.WriteByte('-')
			}
			pendingSep = false
			b.WriteRune(r)
			continue
		}
		pendingSep = true
	}
	return b.String()
}

// Filename returns the PDF filename for a plan about subject.
func Filename(subject string) string {
	slug := Slugify(subject)
	if slug == "" {
		slug = DefaultBaseName
	}
	return slug + ".pdf"
}

// Title returns the heading line printed above the plan.
func Title(subject string) string {
	subject = strings.TrimSpace(subject)
	if subject == "" {
		return "Your Study Plan"
	}
	return "Study Plan: " + subject
}
