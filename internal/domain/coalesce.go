package domain

// CoalesceStr returns the first non-empty string from vals.
func CoalesceStr(vals ...string) string {
	for _, v := range vals {
		if v != "" {
			return v
		}
	}
	return ""
}

// FirstSet returns the value behind the first non-nil pointer, or fallback
// when every pointer is nil.
func FirstSet[T any](fallback T, ptrs ...*T) T {
	for _, p := range ptrs {
		if p != nil {
			return *p
		}
	}
	return fallback
}

// TierPtr returns a pointer to t, or nil for the empty tier. Resolution
// chains treat nil as "not overridden here".
func TierPtr(t Tier) *Tier {
	if t == "" {
		return nil
	}
	return &t
}
