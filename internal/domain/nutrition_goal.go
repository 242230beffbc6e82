package domain

import (
	"time"
)

const (
	DefaultFiberTarget  = 25.0
	DefaultSodiumTarget = 2300.0
)

// NutritionGoal holds the user's daily nutrient targets. At most one goal
// per user is expected to be active; the repository returns the most
// recently updated active one.
type NutritionGoal struct {
	ID            string    `bson:"_id" json:"id"`
	UserID        string    `bson:"userId" json:"userId"`
	CalorieTarget float64   `bson:"calorieTarget" json:"calorieTarget"`
	ProteinTarget float64   `bson:"proteinTarget" json:"proteinTarget"`
	CarbsTarget   float64   `bson:"carbsTarget" json:"carbsTarget"`
	FatTarget     float64   `bson:"fatTarget" json:"fatTarget"`
	FiberTarget   *float64  `bson:"fiberTarget,omitempty" json:"fiberTarget,omitempty"`
	SodiumTarget  *float64  `bson:"sodiumTarget,omitempty" json:"sodiumTarget,omitempty"`
	Active        bool      `bson:"active" json:"active"`
	CreatedAt     time.Time `bson:"createdAt" json:"createdAt"`
	UpdatedAt     time.Time `bson:"updatedAt" json:"updatedAt"`
}

// Fiber returns the fiber target, falling back to DefaultFiberTarget.
func (g *NutritionGoal) Fiber() float64 {
	if g.FiberTarget == nil {
		return DefaultFiberTarget
	}
	return *g.FiberTarget
}

// Sodium returns the sodium target, falling back to DefaultSodiumTarget.
func (g *NutritionGoal) Sodium() float64 {
	if g.SodiumTarget == nil {
		return DefaultSodiumTarget
	}
	return *g.SodiumTarget
}

func (g *NutritionGoal) Validate() error {
	for name, v := range map[string]float64{
		"calorieTarget": g.CalorieTarget,
		"proteinTarget": g.ProteinTarget,
		"carbsTarget":   g.CarbsTarget,
		"fatTarget":     g.FatTarget,
	} {
		if v < 0 {
			return invalid("%s cannot be negative", name)
		}
	}
	if g.FiberTarget != nil && *g.FiberTarget < 0 {
		return invalid("fiberTarget cannot be negative")
	}
	if g.SodiumTarget != nil && *g.SodiumTarget < 0 {
		return invalid("sodiumTarget cannot be negative")
	}
	return nil
}
