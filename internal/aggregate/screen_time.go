package aggregate

import (
	"slices"
	"strings"

	"alcyxob/lifelog-app/internal/domain"
)

// CategoryMinutes is the screen time spent in one category.
type CategoryMinutes struct {
	Category string `json:"category"`
	Minutes  int    `json:"minutes"`
}

// ScreenTimeSummary totals screen time over a date range.
type ScreenTimeSummary struct {
	From         string            `json:"from"`
	To           string            `json:"to"`
	TotalMinutes int               `json:"totalMinutes"`
	Days         int               `json:"days"`
	DailyAverage float64           `json:"dailyAverage"`
	ByCategory   []CategoryMinutes `json:"byCategory"`
}

// SummarizeScreenTime totals entries per category, largest first with ties
// by name. The daily average divides by the number of distinct days that
// have entries.
func SummarizeScreenTime(from, to string, entries []domain.ScreenTimeEntry) ScreenTimeSummary {
	perCategory := make(map[string]int)
	days := make(map[string]struct{})
	total := 0
	for _, e := range entries {
		perCategory[e.Category] += e.Minutes
		days[e.Date] = struct{}{}
		total += e.Minutes
	}

	byCategory := make([]CategoryMinutes, 0, len(perCategory))
	for category, minutes := range perCategory {
		byCategory = append(byCategory, CategoryMinutes{Category: category, Minutes: minutes})
	}
	slices.SortFunc(byCategory, func(a, b CategoryMinutes) int {
		if a.Minutes != b.Minutes {
			return b.Minutes - a.Minutes
		}
		return strings.Compare(a.Category, b.Category)
	})

	summary := ScreenTimeSummary{
		From:         from,
		To:           to,
		TotalMinutes: total,
		Days:         len(days),
		ByCategory:   byCategory,
	}
	if summary.Days > 0 {
		summary.DailyAverage = round1(float64(total) / float64(summary.Days))
	}
	return summary
}
