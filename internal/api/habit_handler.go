package api

import (
	"alcyxob/lifelog-app/internal/aggregate"
	"alcyxob/lifelog-app/internal/domain"
	"alcyxob/lifelog-app/internal/service"
	"net/http"

	"github.com/gin-gonic/gin"
)

// HabitHandler holds the habit service dependency.
type HabitHandler struct {
	habitService service.HabitService
}

func NewHabitHandler(habitService service.HabitService) *HabitHandler {
	return &HabitHandler{habitService: habitService}
}

// --- DTOs ---

type CreateHabitRequest struct {
	Name        string                `json:"name" binding:"required"`
	Description string                `json:"description"`
	Frequency   domain.HabitFrequency `json:"frequency" binding:"omitempty,oneof=daily weekly"`
	Color       string                `json:"color"`
}

type CreateHabitEntryRequest struct {
	Date      string   `json:"date"` // defaults to today
	Completed bool     `json:"completed"`
	Value     *float64 `json:"value"`
	Note      string   `json:"note"`
}

// HabitResponse is a habit with its streak statistics.
type HabitResponse struct {
	domain.Habit
	Stats *aggregate.HabitStats `json:"stats,omitempty"`
}

func MapHabitToResponse(h service.HabitWithStats) HabitResponse {
	stats := h.Stats
	return HabitResponse{Habit: h.Habit, Stats: &stats}
}

func MapHabitsToResponse(habits []service.HabitWithStats) []HabitResponse {
	responses := make([]HabitResponse, len(habits))
	for i, h := range habits {
		responses[i] = MapHabitToResponse(h)
	}
	return responses
}

// --- Handler Methods ---

// ListHabits godoc
// @Summary List habits
// @Description Lists the user's habits with streak statistics as of today. Archived habits are hidden unless includeArchived=true.
// @Tags Habits
// @Produce json
// @Param includeArchived query bool false "Include archived habits"
// @Success 200 {array} HabitResponse
// @Router /habits [get]
func (h *HabitHandler) ListHabits(c *gin.Context) {
	includeArchived := c.Query("includeArchived") == "true"
	habits, err := h.habitService.ListHabits(c.Request.Context(), getUserIDFromContext(c), includeArchived)
	if err != nil {
		respondError(c, err, "retrieve habits")
		return
	}
	c.JSON(http.StatusOK, MapHabitsToResponse(habits))
}

// CreateHabit godoc
// @Summary Create a habit
// @Tags Habits
// @Accept json
// @Produce json
// @Param habit body CreateHabitRequest true "Habit details"
// @Success 201 {object} HabitResponse
// @Failure 400 {object} gin.H "Invalid input"
// @Router /habits [post]
func (h *HabitHandler) CreateHabit(c *gin.Context) {
	var req CreateHabitRequest
	if !bindJSON(c, &req) {
		return
	}

	habit, err := h.habitService.CreateHabit(c.Request.Context(), getUserIDFromContext(c), domain.Habit{
		Name:        req.Name,
		Description: req.Description,
		Frequency:   req.Frequency,
		Color:       req.Color,
	})
	if err != nil {
		respondError(c, err, "create habit")
		return
	}
	c.JSON(http.StatusCreated, HabitResponse{Habit: *habit})
}

func (h *HabitHandler) GetHabit(c *gin.Context) {
	habit, err := h.habitService.GetHabit(c.Request.Context(), getUserIDFromContext(c), c.Param("id"))
	if err != nil {
		respondError(c, err, "retrieve habit")
		return
	}
	c.JSON(http.StatusOK, MapHabitToResponse(*habit))
}

// GetHabitStats godoc
// @Summary Habit streak statistics
// @Description Computes completion rate and streaks relative to "today" (defaults to the current day).
// @Tags Habits
// @Produce json
// @Param today query string false "Reference day, YYYY-MM-DD"
// @Success 200 {object} aggregate.HabitStats
// @Router /habits/{id}/stats [get]
func (h *HabitHandler) GetHabitStats(c *gin.Context) {
	stats, err := h.habitService.HabitStats(c.Request.Context(), getUserIDFromContext(c), c.Param("id"), c.Query("today"))
	if err != nil {
		respondError(c, err, "compute habit stats")
		return
	}
	c.JSON(http.StatusOK, stats)
}

func (h *HabitHandler) UpdateHabit(c *gin.Context) {
	var patch domain.HabitPatch
	if !bindJSON(c, &patch) {
		return
	}
	habit, err := h.habitService.UpdateHabit(c.Request.Context(), getUserIDFromContext(c), c.Param("id"), patch)
	if err != nil {
		respondError(c, err, "update habit")
		return
	}
	c.JSON(http.StatusOK, HabitResponse{Habit: *habit})
}

// DeleteHabit removes the habit and all of its entries.
func (h *HabitHandler) DeleteHabit(c *gin.Context) {
	if err := h.habitService.DeleteHabit(c.Request.Context(), getUserIDFromContext(c), c.Param("id")); err != nil {
		respondError(c, err, "delete habit")
		return
	}
	c.Status(http.StatusNoContent)
}

// --- Entries ---

func (h *HabitHandler) ListEntries(c *gin.Context) {
	entries, err := h.habitService.ListEntries(c.Request.Context(), getUserIDFromContext(c), c.Param("id"))
	if err != nil {
		respondError(c, err, "retrieve habit entries")
		return
	}
	c.JSON(http.StatusOK, entries)
}

func (h *HabitHandler) CreateEntry(c *gin.Context) {
	var req CreateHabitEntryRequest
	if !bindJSON(c, &req) {
		return
	}
	entry, err := h.habitService.CreateEntry(c.Request.Context(), getUserIDFromContext(c), c.Param("id"), domain.HabitEntry{
		Date:      req.Date,
		Completed: req.Completed,
		Value:     req.Value,
		Note:      req.Note,
	})
	if err != nil {
		respondError(c, err, "create habit entry")
		return
	}
	c.JSON(http.StatusCreated, entry)
}

func (h *HabitHandler) UpdateEntry(c *gin.Context) {
	var patch domain.HabitEntryPatch
	if !bindJSON(c, &patch) {
		return
	}
	entry, err := h.habitService.UpdateEntry(c.Request.Context(), getUserIDFromContext(c), c.Param("id"), c.Param("entryId"), patch)
	if err != nil {
		respondError(c, err, "update habit entry")
		return
	}
	c.JSON(http.StatusOK, entry)
}

func (h *HabitHandler) DeleteEntry(c *gin.Context) {
	if err := h.habitService.DeleteEntry(c.Request.Context(), getUserIDFromContext(c), c.Param("id"), c.Param("entryId")); err != nil {
		respondError(c, err, "delete habit entry")
		return
	}
	c.Status(http.StatusNoContent)
}
