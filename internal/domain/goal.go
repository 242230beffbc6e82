package domain

import (
	"math"
	"strings"
	"time"
)

// GoalStatus tracks a goal's lifecycle.
type GoalStatus string

const (
	GoalActive    GoalStatus = "active"
	GoalCompleted GoalStatus = "completed"
	GoalAbandoned GoalStatus = "abandoned"
)

func (s GoalStatus) valid() bool {
	return s == GoalActive || s == GoalCompleted || s == GoalAbandoned
}

// Goal is a measurable personal target, e.g. "Read 20 books".
type Goal struct {
	ID           string     `bson:"_id" json:"id"`
	UserID       string     `bson:"userId" json:"userId"`
	Title        string     `bson:"title" json:"title"`
	Category     string     `bson:"category,omitempty" json:"category,omitempty"`
	TargetValue  float64    `bson:"targetValue" json:"targetValue"`
	CurrentValue float64    `bson:"currentValue" json:"currentValue"`
	Unit         string     `bson:"unit,omitempty" json:"unit,omitempty"`
	Deadline     *string    `bson:"deadline,omitempty" json:"deadline"`
	Status       GoalStatus `bson:"status" json:"status"`
	CreatedAt    time.Time  `bson:"createdAt" json:"createdAt"`
	UpdatedAt    time.Time  `bson:"updatedAt" json:"updatedAt"`
}

func (g *Goal) Validate() error {
	g.Title = strings.TrimSpace(g.Title)
	if g.Title == "" {
		return invalid("goal title is required")
	}
	if g.Status == "" {
		g.Status = GoalActive
	}
	if !g.Status.valid() {
		return invalid("unknown goal status %q", g.Status)
	}
	if g.Deadline != nil {
		return validateDay("deadline", *g.Deadline)
	}
	return nil
}

// Progress is round(100 * current / target) clamped to [0, 100]; 0 when the
// target is not positive.
func (g *Goal) Progress() int {
	if g.TargetValue <= 0 {
		return 0
	}
	p := math.Round(100 * g.CurrentValue / g.TargetValue)
	return int(math.Max(0, math.Min(100, p)))
}

type GoalPatch struct {
	Title        *string          `json:"title"`
	Category     *string          `json:"category"`
	TargetValue  *float64         `json:"targetValue"`
	CurrentValue *float64         `json:"currentValue"`
	Unit         *string          `json:"unit"`
	Deadline     Nullable[string] `json:"deadline"`
	Status       *GoalStatus      `json:"status"`
}

func (p GoalPatch) Validate() error {
	if p.Title != nil && strings.TrimSpace(*p.Title) == "" {
		return invalid("goal title cannot be empty")
	}
	if p.Status != nil && !p.Status.valid() {
		return invalid("unknown goal status %q", *p.Status)
	}
	if p.Deadline.Value != nil {
		return validateDay("deadline", *p.Deadline.Value)
	}
	return nil
}

func (p GoalPatch) Apply(g *Goal) {
	if p.Title != nil {
		g.Title = strings.TrimSpace(*p.Title)
	}
	if p.Category != nil {
		g.Category = *p.Category
	}
	if p.TargetValue != nil {
		g.TargetValue = *p.TargetValue
	}
	if p.CurrentValue != nil {
		g.CurrentValue = *p.CurrentValue
	}
	if p.Unit != nil {
		g.Unit = *p.Unit
	}
	p.Deadline.applyTo(&g.Deadline)
	if p.Status != nil {
		g.Status = *p.Status
	}
}
