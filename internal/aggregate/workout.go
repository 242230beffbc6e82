package aggregate

import (
	"math"
	"time"

	"alcyxob/lifelog-app/internal/domain"
)

// UnknownExercise is rendered for sets whose exercise is missing from the
// name lookup.
const UnknownExercise = "Unknown"

// ExerciseVolume summarizes the sets of one exercise within a workout.
type ExerciseVolume struct {
	ExerciseID    string  `json:"exerciseId"`
	ExerciseName  string  `json:"exerciseName"`
	SetCount      int     `json:"setCount"`
	TotalReps     int     `json:"totalReps"`
	TotalVolume   float64 `json:"totalVolume"`
	AverageWeight float64 `json:"averageWeight"`
}

// WorkoutSummary is the per-exercise breakdown of a workout.
type WorkoutSummary struct {
	WorkoutID       string           `json:"workoutId"`
	Date            string           `json:"date"`
	DurationMinutes int              `json:"durationMinutes"`
	TotalVolume     float64          `json:"totalVolume"`
	Exercises       []ExerciseVolume `json:"exercises"`
}

// Duration returns the workout length in whole minutes, 0 while it is
// still open.
func Duration(w domain.Workout) int {
	if w.EndedAt == nil {
		return 0
	}
	return int(math.Round(w.EndedAt.Sub(w.StartedAt).Minutes()))
}

// SummarizeWorkout groups sets by exercise in first-seen order. loc decides
// which calendar day the workout belongs to.
func SummarizeWorkout(w domain.Workout, sets []domain.Set, names map[string]string, loc *time.Location) WorkoutSummary {
	type group struct {
		volume      ExerciseVolume
		weightTotal float64
	}
	var order []string
	groups := make(map[string]*group)
	for _, s := range sets {
		g, ok := groups[s.ExerciseID]
		if !ok {
			name, found := names[s.ExerciseID]
			if !found || name == "" {
				name = UnknownExercise
			}
			g = &group{volume: ExerciseVolume{ExerciseID: s.ExerciseID, ExerciseName: name}}
			groups[s.ExerciseID] = g
			order = append(order, s.ExerciseID)
		}
		g.volume.SetCount++
		g.volume.TotalReps += s.Reps
		g.volume.TotalVolume += s.Weight * float64(s.Reps)
		g.weightTotal += s.Weight
	}

	summary := WorkoutSummary{
		WorkoutID:       w.ID,
		Date:            domain.DayOf(w.StartedAt, loc),
		DurationMinutes: Duration(w),
		Exercises:       make([]ExerciseVolume, 0, len(order)),
	}
	for _, id := range order {
		g := groups[id]
		if g.volume.SetCount > 0 {
			g.volume.AverageWeight = g.weightTotal / float64(g.volume.SetCount)
		}
		summary.TotalVolume += g.volume.TotalVolume
		summary.Exercises = append(summary.Exercises, g.volume)
	}
	return summary
}

// ExportRow is one line of the workout CSV export.
type ExportRow struct {
	Date            string
	Exercise        string
	SetCount        int
	TotalReps       int
	AverageWeight   float64
	TotalVolume     float64
	DurationMinutes int
}

// ExportRows flattens a summary into one row per exercise, with weights
// rounded to one decimal.
func ExportRows(s WorkoutSummary) []ExportRow {
	rows := make([]ExportRow, 0, len(s.Exercises))
	for _, ex := range s.Exercises {
		rows = append(rows, ExportRow{
			Date:            s.Date,
			Exercise:        ex.ExerciseName,
			SetCount:        ex.SetCount,
			TotalReps:       ex.TotalReps,
			AverageWeight:   round1(ex.AverageWeight),
			TotalVolume:     round1(ex.TotalVolume),
			DurationMinutes: s.DurationMinutes,
		})
	}
	return rows
}
