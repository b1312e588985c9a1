package domain

import "time"

// CoalesceStr returns the first non-empty string from vals.
func CoalesceStr(vals ...string) string {
	for _, v := range vals {
		if v != "" {
			return v
		}
	}
	return ""
}

// StrPtrOrNil returns nil for an empty string, otherwise a pointer to it.
func StrPtrOrNil(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}

// DerefStr returns the pointed-to string or "".
func DerefStr(p *string) string {
	if p == nil {
		return ""
	}
	return *p
}

// DatePtrOrNil returns nil for the zero time, otherwise a pointer to the
// date truncated to midnight UTC.
func DatePtrOrNil(t time.Time) *time.Time {
	if t.IsZero() {
		return nil
	}
	d := time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
	return &d
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
