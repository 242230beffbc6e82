package domain

import (
	"strings"
	"time"
)

// ScreenTimeEntry records minutes spent on screens for a category on a day.
type ScreenTimeEntry struct {
	ID        string    `bson:"_id" json:"id"`
	UserID    string    `bson:"userId" json:"userId"`
	Date      string    `bson:"date" json:"date"`
	Category  string    `bson:"category" json:"category"` // e.g. "social", "work"
	Minutes   int       `bson:"minutes" json:"minutes"`
	CreatedAt time.Time `bson:"createdAt" json:"createdAt"`
	UpdatedAt time.Time `bson:"updatedAt" json:"updatedAt"`
}

func (s *ScreenTimeEntry) Validate() error {
	s.Category = strings.ToLower(strings.TrimSpace(s.Category))
	if s.Category == "" {
		s.Category = "other"
	}
	if s.Minutes < 0 {
		return invalid("minutes cannot be negative")
	}
	return validateDay("date", s.Date)
}

type ScreenTimePatch struct {
	Date     *string `json:"date"`
	Category *string `json:"category"`
	Minutes  *int    `json:"minutes"`
}

func (p ScreenTimePatch) Validate() error {
	if p.Minutes != nil && *p.Minutes < 0 {
		return invalid("minutes cannot be negative")
	}
	if p.Date != nil {
		return validateDay("date", *p.Date)
	}
	return nil
}

func (p ScreenTimePatch) Apply(s *ScreenTimeEntry) {
	if p.Date != nil {
		s.Date = *p.Date
	}
	if p.Category != nil {
		s.Category = strings.ToLower(strings.TrimSpace(*p.Category))
		if s.Category == "" {
			s.Category = "other"
		}
	}
	if p.Minutes != nil {
		s.Minutes = *p.Minutes
	}
}
