// Package aggregate derives summaries from already-loaded record slices:
// habit streaks, daily and weekly nutrition, and workout volume.
//
// Every function is pure. Inputs are never modified and no function returns
// an error; missing optional values count as zero and missing lookups render
// as placeholders.
package aggregate

import "math"

func roundInt(v float64) int {
	return int(math.Round(v))
}

func round1(v float64) float64 {
	return math.Round(v*10) / 10
}

// percentOf returns round(100 * value / target), or 0 for a non-positive target.
func percentOf(value, target float64) int {
	if target <= 0 {
		return 0
	}
	return roundInt(100 * value / target)
}
