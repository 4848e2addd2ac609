package domain

// StrFromPtrWithDefault returns the first non-nil *string value, or the fallback.
func StrFromPtrWithDefault(fallback string, ptrs ...*string) string {
	for _, p := range ptrs {
		if p != nil {
			return *p
		}
	}
	return fallback
}

// IntFromPtrWithDefault returns the first non-nil *int value, or the fallback.
func IntFromPtrWithDefault(fallback int, ptrs ...*int) int {
	for _, p := range ptrs {
		if p != nil {
			return *p
		}
	}
	return fallback
}

// BoolFromPtrWithDefault returns the first non-nil *bool value, or the fallback.
func BoolFromPtrWithDefault(fallback bool, ptrs ...*bool) bool {
	for _, p := range ptrs {
		if p != nil {
			return *p
		}
	}
	return fallback
}

// Float64FromPtrWithDefault returns the first non-nil *float64 value, or the fallback.
func Float64FromPtrWithDefault(fallback float64, ptrs ...*float64) float64 {
	for _, p := range ptrs {
		if p != nil {
			return *p
		}
	}
	return fallback
}
