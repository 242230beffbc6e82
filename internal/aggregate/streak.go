package aggregate

import (
	"sort"

	"alcyxob/lifelog-app/internal/domain"
)

// HabitStats is the derived view of a habit's history.
type HabitStats struct {
	CompletionRate    int     `json:"completionRate"`
	CurrentStreak     int     `json:"currentStreak"`
	BestStreak        int     `json:"bestStreak"`
	TotalCompletions  int     `json:"totalCompletions"`
	LastCompletedDate *string `json:"lastCompletedDate"`
}

// HabitStreak computes stats for the entries of one habit as of today.
//
// The current streak is 0 unless today has a completed entry; otherwise it
// counts today plus every directly preceding day that has one. Entries may
// arrive in any order and several may share a date: all of them count toward
// the totals, while streaks only look at which dates are present.
func HabitStreak(entries []domain.HabitEntry, today string) HabitStats {
	stats := HabitStats{}
	if len(entries) == 0 {
		return stats
	}

	completedDays := make(map[string]struct{})
	var last string
	for _, e := range entries {
		if !e.Completed {
			continue
		}
		stats.TotalCompletions++
		completedDays[e.Date] = struct{}{}
		if e.Date > last {
			last = e.Date
		}
	}

	stats.CompletionRate = roundInt(100 * float64(stats.TotalCompletions) / float64(len(entries)))
	if stats.TotalCompletions > 0 {
		stats.LastCompletedDate = &last
	}

	if _, ok := completedDays[today]; ok {
		stats.CurrentStreak = 1
		for i := 1; ; i++ {
			day, ok := domain.AddDays(today, -i)
			if !ok {
				break
			}
			if _, done := completedDays[day]; !done {
				break
			}
			stats.CurrentStreak++
		}
	}

	stats.BestStreak = bestStreak(completedDays)
	if stats.CurrentStreak > stats.BestStreak {
		stats.BestStreak = stats.CurrentStreak
	}
	return stats
}

// bestStreak returns the longest run of consecutive calendar days.
func bestStreak(days map[string]struct{}) int {
	sorted := make([]string, 0, len(days))
	for d := range days {
		sorted = append(sorted, d)
	}
	sort.Strings(sorted)

	best, run := 0, 0
	prev := ""
	for _, d := range sorted {
		if next, ok := domain.AddDays(prev, 1); ok && next == d {
			run++
		} else {
			run = 1
		}
		if run > best {
			best = run
		}
		prev = d
	}
	return best
}
