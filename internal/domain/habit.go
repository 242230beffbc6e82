package domain

import (
	"strings"
	"time"
)

// HabitFrequency describes how often a habit is meant to be performed.
type HabitFrequency string

const (
	FrequencyDaily  HabitFrequency = "daily"
	FrequencyWeekly HabitFrequency = "weekly"
)

func (f HabitFrequency) valid() bool {
	return f == FrequencyDaily || f == FrequencyWeekly
}

// Habit is a recurring activity the user wants to track.
type Habit struct {
	ID          string         `bson:"_id" json:"id"`
	UserID      string         `bson:"userId" json:"userId"`
	Name        string         `bson:"name" json:"name"`
	Description string         `bson:"description,omitempty" json:"description,omitempty"`
	Frequency   HabitFrequency `bson:"frequency" json:"frequency"`
	Color       string         `bson:"color,omitempty" json:"color,omitempty"`
	Archived    bool           `bson:"archived" json:"archived"`
	CreatedAt   time.Time      `bson:"createdAt" json:"createdAt"`
	UpdatedAt   time.Time      `bson:"updatedAt" json:"updatedAt"`
}

// Validate checks the fields a client must supply. An empty frequency
// defaults to daily.
func (h *Habit) Validate() error {
	h.Name = strings.TrimSpace(h.Name)
	if h.Name == "" {
		return invalid("habit name is required")
	}
	if h.Frequency == "" {
		h.Frequency = FrequencyDaily
	}
	if !h.Frequency.valid() {
		return invalid("unknown habit frequency %q", h.Frequency)
	}
	return nil
}

// HabitEntry is one dated record of a habit. Nothing enforces one entry
// per (habit, date).
type HabitEntry struct {
	ID        string    `bson:"_id" json:"id"`
	UserID    string    `bson:"userId" json:"userId"`
	HabitID   string    `bson:"habitId" json:"habitId"`
	Date      string    `bson:"date" json:"date"`
	Completed bool      `bson:"completed" json:"completed"`
	Value     *float64  `bson:"value" json:"value"`
	Note      string    `bson:"note,omitempty" json:"note,omitempty"`
	CreatedAt time.Time `bson:"createdAt" json:"createdAt"`
	UpdatedAt time.Time `bson:"updatedAt" json:"updatedAt"`
}

func (e *HabitEntry) Validate() error {
	if e.HabitID == "" {
		return invalid("habit entry requires a habit id")
	}
	return validateDay("date", e.Date)
}

// HabitPatch is a partial update of a Habit.
type HabitPatch struct {
	Name        *string         `json:"name"`
	Description *string         `json:"description"`
	Frequency   *HabitFrequency `json:"frequency"`
	Color       *string         `json:"color"`
	Archived    *bool           `json:"archived"`
}

func (p HabitPatch) Validate() error {
	if p.Name != nil && strings.TrimSpace(*p.Name) == "" {
		return invalid("habit name cannot be empty")
	}
	if p.Frequency != nil && !p.Frequency.valid() {
		return invalid("unknown habit frequency %q", *p.Frequency)
	}
	return nil
}

func (p HabitPatch) Apply(h *Habit) {
	if p.Name != nil {
		h.Name = strings.TrimSpace(*p.Name)
	}
	if p.Description != nil {
		h.Description = *p.Description
	}
	if p.Frequency != nil {
		h.Frequency = *p.Frequency
	}
	if p.Color != nil {
		h.Color = *p.Color
	}
	if p.Archived != nil {
		h.Archived = *p.Archived
	}
}

// HabitEntryPatch is a partial update of a HabitEntry.
type HabitEntryPatch struct {
	Date      *string           `json:"date"`
	Completed *bool             `json:"completed"`
	Value     Nullable[float64] `json:"value"`
	Note      *string           `json:"note"`
}

func (p HabitEntryPatch) Validate() error {
	if p.Date != nil {
		return validateDay("date", *p.Date)
	}
	return nil
}

func (p HabitEntryPatch) Apply(e *HabitEntry) {
	if p.Date != nil {
		e.Date = *p.Date
	}
	if p.Completed != nil {
		e.Completed = *p.Completed
	}
	p.Value.applyTo(&e.Value)
	if p.Note != nil {
		e.Note = *p.Note
	}
}
