package domain

import (
	"time"
)

// MealType names the slot of the day a meal belongs to.
type MealType string

const (
	MealBreakfast MealType = "breakfast"
	MealLunch     MealType = "lunch"
	MealDinner    MealType = "dinner"
	MealSnack     MealType = "snack"
)

func (m MealType) valid() bool {
	switch m {
	case MealBreakfast, MealLunch, MealDinner, MealSnack:
		return true
	}
	return false
}

// NutrientTotals is the per-meal nutrient summary cached on a MealEntry.
// Fiber, sugar and sodium are optional.
type NutrientTotals struct {
	Calories float64  `bson:"calories" json:"calories"`
	Protein  float64  `bson:"protein" json:"protein"`
	Carbs    float64  `bson:"carbs" json:"carbs"`
	Fat      float64  `bson:"fat" json:"fat"`
	Fiber    *float64 `bson:"fiber,omitempty" json:"fiber,omitempty"`
	Sugar    *float64 `bson:"sugar,omitempty" json:"sugar,omitempty"`
	Sodium   *float64 `bson:"sodium,omitempty" json:"sodium,omitempty"`
}

// FoodItem is one constituent of a meal.
type FoodItem struct {
	Name     string   `bson:"name" json:"name"`
	Quantity string   `bson:"quantity,omitempty" json:"quantity,omitempty"`
	Calories float64  `bson:"calories" json:"calories"`
	Protein  float64  `bson:"protein" json:"protein"`
	Carbs    float64  `bson:"carbs" json:"carbs"`
	Fat      float64  `bson:"fat" json:"fat"`
	Fiber    *float64 `bson:"fiber,omitempty" json:"fiber,omitempty"`
	Sugar    *float64 `bson:"sugar,omitempty" json:"sugar,omitempty"`
	Sodium   *float64 `bson:"sodium,omitempty" json:"sodium,omitempty"`
}

// MealEntry is a logged meal. TotalsCache may be nil when the meal was
// created without foods or explicit totals.
type MealEntry struct {
	ID          string          `bson:"_id" json:"id"`
	UserID      string          `bson:"userId" json:"userId"`
	Date        string          `bson:"date" json:"date"`
	MealType    MealType        `bson:"mealType" json:"mealType"`
	Name        string          `bson:"name,omitempty" json:"name,omitempty"`
	Foods       []FoodItem      `bson:"foods,omitempty" json:"foods,omitempty"`
	TotalsCache *NutrientTotals `bson:"totalsCache,omitempty" json:"totalsCache"`
	CreatedAt   time.Time       `bson:"createdAt" json:"createdAt"`
	UpdatedAt   time.Time       `bson:"updatedAt" json:"updatedAt"`
}

// Validate checks required fields and fills TotalsCache from Foods when no
// totals were given.
func (m *MealEntry) Validate() error {
	if err := validateDay("date", m.Date); err != nil {
		return err
	}
	if !m.MealType.valid() {
		return invalid("unknown meal type %q", m.MealType)
	}
	if m.TotalsCache == nil && len(m.Foods) > 0 {
		m.TotalsCache = TotalsFromFoods(m.Foods)
	}
	return nil
}

// TotalsFromFoods sums the nutrients of foods. Optional nutrients stay nil
// unless at least one food reports them.
func TotalsFromFoods(foods []FoodItem) *NutrientTotals {
	t := &NutrientTotals{}
	for _, f := range foods {
		t.Calories += f.Calories
		t.Protein += f.Protein
		t.Carbs += f.Carbs
		t.Fat += f.Fat
		t.Fiber = addOptional(t.Fiber, f.Fiber)
		t.Sugar = addOptional(t.Sugar, f.Sugar)
		t.Sodium = addOptional(t.Sodium, f.Sodium)
	}
	return t
}

func addOptional(sum, v *float64) *float64 {
	if v == nil {
		return sum
	}
	total := *v
	if sum != nil {
		total += *sum
	}
	return &total
}

// MealPatch is a partial update of a MealEntry. Replacing Foods without
// supplying TotalsCache recomputes the cache.
type MealPatch struct {
	Date        *string                  `json:"date"`
	MealType    *MealType                `json:"mealType"`
	Name        *string                  `json:"name"`
	Foods       *[]FoodItem              `json:"foods"`
	TotalsCache Nullable[NutrientTotals] `json:"totalsCache"`
}

func (p MealPatch) Validate() error {
	if p.Date != nil {
		if err := validateDay("date", *p.Date); err != nil {
			return err
		}
	}
	if p.MealType != nil && !p.MealType.valid() {
		return invalid("unknown meal type %q", *p.MealType)
	}
	return nil
}

func (p MealPatch) Apply(m *MealEntry) {
	if p.Date != nil {
		m.Date = *p.Date
	}
	if p.MealType != nil {
		m.MealType = *p.MealType
	}
	if p.Name != nil {
		m.Name = *p.Name
	}
	if p.Foods != nil {
		m.Foods = append([]FoodItem(nil), (*p.Foods)...)
		if !p.TotalsCache.Set {
			m.TotalsCache = nil
			if len(m.Foods) > 0 {
				m.TotalsCache = TotalsFromFoods(m.Foods)
			}
		}
	}
	p.TotalsCache.applyTo(&m.TotalsCache)
}
