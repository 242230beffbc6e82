package domain

import (
	"time"
)

// Workout is a single training session. Its duration is derived from
// StartedAt and EndedAt, never stored.
type Workout struct {
	ID        string     `bson:"_id" json:"id"`
	UserID    string     `bson:"userId" json:"userId"`
	Name      string     `bson:"name,omitempty" json:"name,omitempty"`
	StartedAt time.Time  `bson:"startedAt" json:"startedAt"`
	EndedAt   *time.Time `bson:"endedAt,omitempty" json:"endedAt"`
	Notes     string     `bson:"notes,omitempty" json:"notes,omitempty"`
	CreatedAt time.Time  `bson:"createdAt" json:"createdAt"`
	UpdatedAt time.Time  `bson:"updatedAt" json:"updatedAt"`
}

func (w *Workout) Validate() error {
	if w.StartedAt.IsZero() {
		return invalid("workout requires startedAt")
	}
	if w.EndedAt != nil && w.EndedAt.Before(w.StartedAt) {
		return invalid("endedAt cannot be before startedAt")
	}
	return nil
}

type WorkoutPatch struct {
	Name      *string             `json:"name"`
	StartedAt *time.Time          `json:"startedAt"`
	EndedAt   Nullable[time.Time] `json:"endedAt"`
	Notes     *string             `json:"notes"`
}

func (p WorkoutPatch) Validate() error {
	if p.StartedAt != nil && p.StartedAt.IsZero() {
		return invalid("startedAt cannot be empty")
	}
	return nil
}

// Apply merges the patch. The merged workout must be re-validated since
// startedAt and endedAt are checked together.
func (p WorkoutPatch) Apply(w *Workout) {
	if p.Name != nil {
		w.Name = *p.Name
	}
	if p.StartedAt != nil {
		w.StartedAt = *p.StartedAt
	}
	p.EndedAt.applyTo(&w.EndedAt)
	if p.Notes != nil {
		w.Notes = *p.Notes
	}
}

// Set is one performed set. Weight is a unitless scalar; the client decides
// whether it means kg or lb.
type Set struct {
	ID         string    `bson:"_id" json:"id"`
	UserID     string    `bson:"userId" json:"userId"`
	WorkoutID  string    `bson:"workoutId" json:"workoutId"`
	ExerciseID string    `bson:"exerciseId" json:"exerciseId"`
	Weight     float64   `bson:"weight" json:"weight"`
	Reps       int       `bson:"reps" json:"reps"`
	OrderIndex int       `bson:"orderIndex" json:"orderIndex"`
	CreatedAt  time.Time `bson:"createdAt" json:"createdAt"`
	UpdatedAt  time.Time `bson:"updatedAt" json:"updatedAt"`
}

func (s *Set) Validate() error {
	if s.WorkoutID == "" || s.ExerciseID == "" {
		return invalid("set requires workoutId and exerciseId")
	}
	if s.Reps < 0 {
		return invalid("reps cannot be negative")
	}
	if s.Weight < 0 {
		return invalid("weight cannot be negative")
	}
	return nil
}

type SetPatch struct {
	ExerciseID *string  `json:"exerciseId"`
	Weight     *float64 `json:"weight"`
	Reps       *int     `json:"reps"`
	OrderIndex *int     `json:"orderIndex"`
}

func (p SetPatch) Validate() error {
	if p.ExerciseID != nil && *p.ExerciseID == "" {
		return invalid("exerciseId cannot be empty")
	}
	if p.Reps != nil && *p.Reps < 0 {
		return invalid("reps cannot be negative")
	}
	if p.Weight != nil && *p.Weight < 0 {
		return invalid("weight cannot be negative")
	}
	return nil
}

func (p SetPatch) Apply(s *Set) {
	if p.ExerciseID != nil {
		s.ExerciseID = *p.ExerciseID
	}
	if p.Weight != nil {
		s.Weight = *p.Weight
	}
	if p.Reps != nil {
		s.Reps = *p.Reps
	}
	if p.OrderIndex != nil {
		s.OrderIndex = *p.OrderIndex
	}
}
