package domain

import (
	"strings"
	"time"
)

// HealthMetric is one dated measurement such as body weight, hours slept or
// resting heart rate. Type is free-form but lower-cased.
type HealthMetric struct {
	ID        string    `bson:"_id" json:"id"`
	UserID    string    `bson:"userId" json:"userId"`
	Date      string    `bson:"date" json:"date"`
	Type      string    `bson:"type" json:"type"`
	Value     float64   `bson:"value" json:"value"`
	Unit      string    `bson:"unit,omitempty" json:"unit,omitempty"`
	Note      string    `bson:"note,omitempty" json:"note,omitempty"`
	CreatedAt time.Time `bson:"createdAt" json:"createdAt"`
	UpdatedAt time.Time `bson:"updatedAt" json:"updatedAt"`
}

func (m *HealthMetric) Validate() error {
	m.Type = strings.ToLower(strings.TrimSpace(m.Type))
	if m.Type == "" {
		return invalid("metric type is required")
	}
	return validateDay("date", m.Date)
}

type HealthMetricPatch struct {
	Date  *string  `json:"date"`
	Type  *string  `json:"type"`
	Value *float64 `json:"value"`
	Unit  *string  `json:"unit"`
	Note  *string  `json:"note"`
}

func (p HealthMetricPatch) Validate() error {
	if p.Type != nil && strings.TrimSpace(*p.Type) == "" {
		return invalid("metric type cannot be empty")
	}
	if p.Date != nil {
		return validateDay("date", *p.Date)
	}
	return nil
}

func (p HealthMetricPatch) Apply(m *HealthMetric) {
	if p.Date != nil {
		m.Date = *p.Date
	}
	if p.Type != nil {
		m.Type = strings.ToLower(strings.TrimSpace(*p.Type))
	}
	if p.Value != nil {
		m.Value = *p.Value
	}
	if p.Unit != nil {
		m.Unit = *p.Unit
	}
	if p.Note != nil {
		m.Note = *p.Note
	}
}
