package common

// First returns the first element of the slice and true, or the zero value and false if empty.
func First[S ~[]E, E any](s S) (E, bool) {
	if len(s) == 0 {
		var zero E
		return zero, false
	}

	return s[0], true
}

// All reports whether pred holds for every element. An empty slice yields true.
func All[S ~[]E, E any](s S, pred func(E) bool) bool {
	for _, e := range s {
		if !pred(e) {
			return false
		}
	}

	return true
}

// Any reports whether pred holds for at least one element.
func Any[S ~[]E, E any](s S, pred func(E) bool) bool {
	for _, e := range s {
		if pred(e) {
			return true
		}
	}

	return false
}

// Filter returns the elements for which pred holds, preserving order.
func Filter[S ~[]E, E any](s S, pred func(E) bool) S {
	var out S

	for _, e := range s {
		if pred(e) {
			out = append(out, e)
		}
	}

	return out
}

// Map applies fn to every element.
func Map[S ~[]E, E, R any](s S, fn func(E) R) []R {
	out := make([]R, 0, len(s))
	for _, e := range s {
		out = append(out, fn(e))
	}

	return out
}
