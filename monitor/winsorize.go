package monitor

import "sort"

// Winsorize returns a copy of values with the extreme tails clamped: the
// lower fraction of the sorted samples is raised to the first value that
// survives the cut, the upper fraction is lowered to the last surviving one.
// Samples are clamped, never dropped, so length and order of the input are
// preserved. A fraction outside [0,1] leaves that side untouched.
func Winsorize(values []int64, lower, upper float64) []int64 {
	n := len(values)
	clamped := make([]int64, n)
	copy(clamped, values)
	if n == 0 {
		return clamped
	}

	idx := make([]int, n)
	for i := range idx {
		idx[i] = i
	}
	sort.SliceStable(idx, func(i, j int) bool {
		return values[idx[i]] < values[idx[j]]
	})

	if lower >= 0 && lower <= 1 {
		cut := tailSize(lower, n)
		low := values[idx[cut]]
		for _, i := range idx[:cut] {
			clamped[i] = low
		}
	}

	if upper >= 0 && upper <= 1 {
		cut := tailSize(upper, n)
		start := n - cut
		high := values[idx[start-1]]
		for _, i := range idx[start:] {
			clamped[i] = high
		}
	}

	return clamped
}

// tailSize clamps floor(f*n) into [0, n-1], so a tail can never swallow the
// whole sample set.
func tailSize(f float64, n int) int {
	size := int(f * float64(n))
	if size > n-1 {
		size = n - 1
	}
	if size < 0 {
		size = 0
	}
	return size
}
