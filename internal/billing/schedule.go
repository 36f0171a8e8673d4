// Package billing holds the pure billing-period computations: enumerating the
// calendar months covered by a contract term and reconciling them against the
// months already billed. Everything here is a pure function of its inputs;
// persistence lives in the services layer.
package billing

import "time"

// EnumerateMonths returns, in chronological order, every calendar month touched
// by the inclusive range [start, end]. Membership is decided by (year, month)
// only, so a contract ending mid-month still includes that month in full.
// If start is after end the result is empty, not an error.
func EnumerateMonths(start, end time.Time) []Month {
	if start.After(end) {
		return nil
	}
	first := MonthOf(start)
	last := MonthOf(end)

	var months []Month
	for m := first; !last.Before(m); m = m.Next() {
		months = append(months, m)
	}
	return months
}

// UnbilledMonths returns the months of all that do not appear in billed,
// preserving the order of all and dropping duplicates. The result is therefore
// a subsequence of all and disjoint from billed.
func UnbilledMonths(all, billed []Month) []Month {
	seen := make(map[Month]struct{}, len(billed))
	for _, m := range billed {
		seen[m] = struct{}{}
	}

	var unbilled []Month
	for _, m := range all {
		if _, ok := seen[m]; ok {
			continue
		}
		seen[m] = struct{}{} // dedupe within all as well
		unbilled = append(unbilled, m)
	}
	return unbilled
}

// MonthsOfDueDates projects payment due dates onto their calendar months.
// Due dates are stored as the first day of the billed month, but the projection
// only reads the year and month components so any day value is tolerated.
func MonthsOfDueDates(dueDates []time.Time) []Month {
	months := make([]Month, 0, len(dueDates))
	for _, d := range dueDates {
		months = append(months, MonthOf(d))
	}
	return months
}
