package aggregate

import (
	"alcyxob/lifelog-app/internal/domain"
)

// WeekDays is the length of the weekly report window and also the fixed
// divisor of its averages, so days without meals pull the averages down.
const WeekDays = 7

type DailyPoint struct {
	Date     string  `json:"date"`
	Calories float64 `json:"calories"`
	Protein  float64 `json:"protein"`
	Fiber    float64 `json:"fiber"`
	Sugar    float64 `json:"sugar"`
}

type WeeklyAverages struct {
	Calories float64 `json:"calories"`
	Protein  float64 `json:"protein"`
	Fiber    float64 `json:"fiber"`
	Sugar    float64 `json:"sugar"`
}

type WeeklyReport struct {
	Period   string         `json:"period"`
	Averages WeeklyAverages `json:"averages"`
	Daily    []DailyPoint   `json:"daily"`
}

// WeekWindow lists the days from today-6 through today, oldest first.
// It returns nil when today is not a valid calendar day.
func WeekWindow(today string) []string {
	if !domain.IsValidDay(today) {
		return nil
	}
	days := make([]string, 0, WeekDays)
	for i := WeekDays - 1; i >= 0; i-- {
		d, _ := domain.AddDays(today, -i)
		days = append(days, d)
	}
	return days
}

// WeeklyNutrition builds the 7-day report ending at today. meals may contain
// entries from any date; those outside the window are ignored. An invalid
// today has no window: the report then carries no daily rows and zero
// averages, so callers validate today first (see WeekWindow).
func WeeklyNutrition(today string, meals []domain.MealEntry) WeeklyReport {
	byDate := make(map[string][]domain.MealEntry)
	for _, m := range meals {
		byDate[m.Date] = append(byDate[m.Date], m)
	}

	report := WeeklyReport{
		Period: "7 days",
		Daily:  make([]DailyPoint, 0, WeekDays),
	}
	var sum WeeklyAverages
	for _, day := range WeekWindow(today) {
		t := SumMeals(byDate[day])
		report.Daily = append(report.Daily, DailyPoint{
			Date:     day,
			Calories: t.Calories,
			Protein:  t.Protein,
			Fiber:    t.Fiber,
			Sugar:    t.Sugar,
		})
		sum.Calories += t.Calories
		sum.Protein += t.Protein
		sum.Fiber += t.Fiber
		sum.Sugar += t.Sugar
	}

	report.Averages = WeeklyAverages{
		Calories: sum.Calories / WeekDays,
		Protein:  sum.Protein / WeekDays,
		Fiber:    sum.Fiber / WeekDays,
		Sugar:    sum.Sugar / WeekDays,
	}
	return report
}
