package domain

import (
	"strings"
	"time"
)

// Exercise is an entry in the user's exercise library.
type Exercise struct {
	ID          string    `bson:"_id" json:"id"`
	UserID      string    `bson:"userId" json:"userId"`
	Name        string    `bson:"name" json:"name"`
	MuscleGroup string    `bson:"muscleGroup,omitempty" json:"muscleGroup,omitempty"` // e.g. "Chest", "Legs"
	Description string    `bson:"description,omitempty" json:"description,omitempty"`
	CreatedAt   time.Time `bson:"createdAt" json:"createdAt"`
	UpdatedAt   time.Time `bson:"updatedAt" json:"updatedAt"`
}

func (e *Exercise) Validate() error {
	e.Name = strings.TrimSpace(e.Name)
	if e.Name == "" {
		return invalid("exercise name is required")
	}
	return nil
}

type ExercisePatch struct {
	Name        *string `json:"name"`
	MuscleGroup *string `json:"muscleGroup"`
	Description *string `json:"description"`
}

func (p ExercisePatch) Validate() error {
	if p.Name != nil && strings.TrimSpace(*p.Name) == "" {
		return invalid("exercise name cannot be empty")
	}
	return nil
}

func (p ExercisePatch) Apply(e *Exercise) {
	if p.Name != nil {
		e.Name = strings.TrimSpace(*p.Name)
	}
	if p.MuscleGroup != nil {
		e.MuscleGroup = *p.MuscleGroup
	}
	if p.Description != nil {
		e.Description = *p.Description
	}
}
