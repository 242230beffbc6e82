package api

import (
	"alcyxob/lifelog-app/internal/domain"
	"alcyxob/lifelog-app/internal/service"
	"net/http"

	"github.com/gin-gonic/gin"
)

type NutritionHandler struct {
	nutritionService service.NutritionService
}

func NewNutritionHandler(nutritionService service.NutritionService) *NutritionHandler {
	return &NutritionHandler{nutritionService: nutritionService}
}

// --- DTOs ---

// CreateMealRequest carries either foods, explicit totals, or both. Totals
// are computed from foods when omitted.
type CreateMealRequest struct {
	Date        string                 `json:"date"`
	MealType    domain.MealType        `json:"mealType" binding:"required"`
	Name        string                 `json:"name"`
	Foods       []domain.FoodItem      `json:"foods"`
	TotalsCache *domain.NutrientTotals `json:"totalsCache"`
}

type NutritionGoalRequest struct {
	CalorieTarget float64  `json:"calorieTarget" binding:"gte=0"`
	ProteinTarget float64  `json:"proteinTarget" binding:"gte=0"`
	CarbsTarget   float64  `json:"carbsTarget" binding:"gte=0"`
	FatTarget     float64  `json:"fatTarget" binding:"gte=0"`
	FiberTarget   *float64 `json:"fiberTarget" binding:"omitempty,gte=0"`
	SodiumTarget  *float64 `json:"sodiumTarget" binding:"omitempty,gte=0"`
}

// --- Meals ---

// ListMeals godoc
// @Summary List meals of a day
// @Tags Nutrition
// @Produce json
// @Param date query string false "Day, YYYY-MM-DD (defaults to today)"
// @Success 200 {array} domain.MealEntry
// @Router /meals [get]
func (h *NutritionHandler) ListMeals(c *gin.Context) {
	meals, err := h.nutritionService.ListMeals(c.Request.Context(), getUserIDFromContext(c), c.Query("date"))
	if err != nil {
		respondError(c, err, "retrieve meals")
		return
	}
	c.JSON(http.StatusOK, meals)
}

func (h *NutritionHandler) CreateMeal(c *gin.Context) {
	var req CreateMealRequest
	if !bindJSON(c, &req) {
		return
	}
	meal, err := h.nutritionService.CreateMeal(c.Request.Context(), getUserIDFromContext(c), domain.MealEntry{
		Date:        req.Date,
		MealType:    req.MealType,
		Name:        req.Name,
		Foods:       req.Foods,
		TotalsCache: req.TotalsCache,
	})
	if err != nil {
		respondError(c, err, "create meal")
		return
	}
	c.JSON(http.StatusCreated, meal)
}

func (h *NutritionHandler) GetMeal(c *gin.Context) {
	meal, err := h.nutritionService.GetMeal(c.Request.Context(), getUserIDFromContext(c), c.Param("id"))
	if err != nil {
		respondError(c, err, "retrieve meal")
		return
	}
	c.JSON(http.StatusOK, meal)
}

func (h *NutritionHandler) UpdateMeal(c *gin.Context) {
	var patch domain.MealPatch
	if !bindJSON(c, &patch) {
		return
	}
	meal, err := h.nutritionService.UpdateMeal(c.Request.Context(), getUserIDFromContext(c), c.Param("id"), patch)
	if err != nil {
		respondError(c, err, "update meal")
		return
	}
	c.JSON(http.StatusOK, meal)
}

func (h *NutritionHandler) DeleteMeal(c *gin.Context) {
	if err := h.nutritionService.DeleteMeal(c.Request.Context(), getUserIDFromContext(c), c.Param("id")); err != nil {
		respondError(c, err, "delete meal")
		return
	}
	c.Status(http.StatusNoContent)
}

// --- Aggregates ---

// GetDailyTotals godoc
// @Summary Daily nutrition totals
// @Description Sums the cached totals of the day's meals and compares them with the active goal.
// @Tags Nutrition
// @Produce json
// @Param date path string true "Day, YYYY-MM-DD"
// @Success 200 {object} aggregate.DailyNutrition
// @Failure 400 {object} gin.H "Invalid date"
// @Router /day/{date}/totals [get]
func (h *NutritionHandler) GetDailyTotals(c *gin.Context) {
	day, err := h.nutritionService.DailyTotals(c.Request.Context(), getUserIDFromContext(c), c.Param("date"))
	if err != nil {
		respondError(c, err, "compute daily totals")
		return
	}
	c.JSON(http.StatusOK, day)
}

// GetWeeklyReport godoc
// @Summary Weekly nutrition report
// @Description Seven days ending on today; averages always divide by 7.
// @Tags Nutrition
// @Produce json
// @Param today query string false "Last day of the window, YYYY-MM-DD"
// @Success 200 {object} aggregate.WeeklyReport
// @Router /report/weekly [get]
func (h *NutritionHandler) GetWeeklyReport(c *gin.Context) {
	report, err := h.nutritionService.WeeklyReport(c.Request.Context(), getUserIDFromContext(c), c.Query("today"))
	if err != nil {
		respondError(c, err, "compute weekly report")
		return
	}
	c.JSON(http.StatusOK, report)
}

// --- Goal ---

func (h *NutritionHandler) GetGoal(c *gin.Context) {
	goal, err := h.nutritionService.GetGoal(c.Request.Context(), getUserIDFromContext(c))
	if err != nil {
		respondError(c, err, "retrieve nutrition goal")
		return
	}
	c.JSON(http.StatusOK, goal)
}

// SetGoal replaces the active nutrition goal.
func (h *NutritionHandler) SetGoal(c *gin.Context) {
	var req NutritionGoalRequest
	if !bindJSON(c, &req) {
		return
	}
	goal, err := h.nutritionService.SetGoal(c.Request.Context(), getUserIDFromContext(c), domain.NutritionGoal{
		CalorieTarget: req.CalorieTarget,
		ProteinTarget: req.ProteinTarget,
		CarbsTarget:   req.CarbsTarget,
		FatTarget:     req.FatTarget,
		FiberTarget:   req.FiberTarget,
		SodiumTarget:  req.SodiumTarget,
	})
	if err != nil {
		respondError(c, err, "save nutrition goal")
		return
	}
	c.JSON(http.StatusOK, goal)
}
