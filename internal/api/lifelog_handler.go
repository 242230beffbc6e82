package api

import (
	"alcyxob/lifelog-app/internal/domain"
	"alcyxob/lifelog-app/internal/repository"
	"alcyxob/lifelog-app/internal/service"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
)

// LifeHandler serves goals, health metrics, screen time and todos.
type LifeHandler struct {
	goalService   service.GoalService
	healthService service.HealthService
	todoService   service.TodoService
}

func NewLifeHandler(goalService service.GoalService, healthService service.HealthService, todoService service.TodoService) *LifeHandler {
	return &LifeHandler{
		goalService:   goalService,
		healthService: healthService,
		todoService:   todoService,
	}
}

// --- DTOs ---

type CreateGoalRequest struct {
	Title        string            `json:"title" binding:"required"`
	Category     string            `json:"category"`
	TargetValue  float64           `json:"targetValue"`
	CurrentValue float64           `json:"currentValue"`
	Unit         string            `json:"unit"`
	Deadline     *string           `json:"deadline"`
	Status       domain.GoalStatus `json:"status"`
}

// GoalResponse includes progress as a 0-100 percentage.
type GoalResponse struct {
	domain.Goal
	Progress int `json:"progress"`
}

func MapGoalToResponse(g *domain.Goal) GoalResponse {
	return GoalResponse{Goal: *g, Progress: g.Progress()}
}

type CreateHealthMetricRequest struct {
	Date  string  `json:"date" binding:"required"`
	Type  string  `json:"type" binding:"required"` // weight, sleep, heart_rate, steps, water, ...
	Value float64 `json:"value"`
	Unit  string  `json:"unit"`
	Note  string  `json:"note"`
}

type CreateScreenTimeRequest struct {
	Date     string `json:"date" binding:"required"`
	Category string `json:"category"`
	Minutes  int    `json:"minutes" binding:"gte=0"`
}

type CreateTodoRequest struct {
	Title       string              `json:"title" binding:"required"`
	Description string              `json:"description"`
	DueDate     *string             `json:"dueDate"`
	Priority    domain.TodoPriority `json:"priority"`
	Completed   bool                `json:"completed"`
}

// --- Goals ---

func (h *LifeHandler) ListGoals(c *gin.Context) {
	goals, err := h.goalService.ListGoals(c.Request.Context(), getUserIDFromContext(c))
	if err != nil {
		respondError(c, err, "retrieve goals")
		return
	}
	responses := make([]GoalResponse, len(goals))
	for i := range goals {
		responses[i] = MapGoalToResponse(&goals[i])
	}
	c.JSON(http.StatusOK, responses)
}

func (h *LifeHandler) CreateGoal(c *gin.Context) {
	var req CreateGoalRequest
	if !bindJSON(c, &req) {
		return
	}
	goal, err := h.goalService.CreateGoal(c.Request.Context(), getUserIDFromContext(c), domain.Goal{
		Title:        req.Title,
		Category:     req.Category,
		TargetValue:  req.TargetValue,
		CurrentValue: req.CurrentValue,
		Unit:         req.Unit,
		Deadline:     req.Deadline,
		Status:       req.Status,
	})
	if err != nil {
		respondError(c, err, "create goal")
		return
	}
	c.JSON(http.StatusCreated, MapGoalToResponse(goal))
}

func (h *LifeHandler) GetGoal(c *gin.Context) {
	goal, err := h.goalService.GetGoal(c.Request.Context(), getUserIDFromContext(c), c.Param("id"))
	if err != nil {
		respondError(c, err, "retrieve goal")
		return
	}
	c.JSON(http.StatusOK, MapGoalToResponse(goal))
}

func (h *LifeHandler) UpdateGoal(c *gin.Context) {
	var patch domain.GoalPatch
	if !bindJSON(c, &patch) {
		return
	}
	goal, err := h.goalService.UpdateGoal(c.Request.Context(), getUserIDFromContext(c), c.Param("id"), patch)
	if err != nil {
		respondError(c, err, "update goal")
		return
	}
	c.JSON(http.StatusOK, MapGoalToResponse(goal))
}

func (h *LifeHandler) DeleteGoal(c *gin.Context) {
	if err := h.goalService.DeleteGoal(c.Request.Context(), getUserIDFromContext(c), c.Param("id")); err != nil {
		respondError(c, err, "delete goal")
		return
	}
	c.Status(http.StatusNoContent)
}

// --- Health metrics ---

// ListMetrics godoc
// @Summary List health metrics
// @Tags Health
// @Produce json
// @Param type query string false "Metric type, e.g. weight"
// @Param from query string false "First day, YYYY-MM-DD"
// @Param to query string false "Last day, YYYY-MM-DD"
// @Success 200 {array} domain.HealthMetric
// @Router /health-metrics [get]
func (h *LifeHandler) ListMetrics(c *gin.Context) {
	metrics, err := h.healthService.ListMetrics(c.Request.Context(), getUserIDFromContext(c), repository.HealthMetricFilter{
		Type: c.Query("type"),
		From: c.Query("from"),
		To:   c.Query("to"),
	})
	if err != nil {
		respondError(c, err, "retrieve health metrics")
		return
	}
	c.JSON(http.StatusOK, metrics)
}

func (h *LifeHandler) CreateMetric(c *gin.Context) {
	var req CreateHealthMetricRequest
	if !bindJSON(c, &req) {
		return
	}
	metric, err := h.healthService.CreateMetric(c.Request.Context(), getUserIDFromContext(c), domain.HealthMetric{
		Date:  req.Date,
		Type:  req.Type,
		Value: req.Value,
		Unit:  req.Unit,
		Note:  req.Note,
	})
	if err != nil {
		respondError(c, err, "create health metric")
		return
	}
	c.JSON(http.StatusCreated, metric)
}

func (h *LifeHandler) GetMetric(c *gin.Context) {
	metric, err := h.healthService.GetMetric(c.Request.Context(), getUserIDFromContext(c), c.Param("id"))
	if err != nil {
		respondError(c, err, "retrieve health metric")
		return
	}
	c.JSON(http.StatusOK, metric)
}

func (h *LifeHandler) UpdateMetric(c *gin.Context) {
	var patch domain.HealthMetricPatch
	if !bindJSON(c, &patch) {
		return
	}
	metric, err := h.healthService.UpdateMetric(c.Request.Context(), getUserIDFromContext(c), c.Param("id"), patch)
	if err != nil {
		respondError(c, err, "update health metric")
		return
	}
	c.JSON(http.StatusOK, metric)
}

func (h *LifeHandler) DeleteMetric(c *gin.Context) {
	if err := h.healthService.DeleteMetric(c.Request.Context(), getUserIDFromContext(c), c.Param("id")); err != nil {
		respondError(c, err, "delete health metric")
		return
	}
	c.Status(http.StatusNoContent)
}

// --- Screen time ---

func (h *LifeHandler) ListScreenTime(c *gin.Context) {
	entries, err := h.healthService.ListScreenTime(c.Request.Context(), getUserIDFromContext(c), c.Query("from"), c.Query("to"))
	if err != nil {
		respondError(c, err, "retrieve screen time")
		return
	}
	c.JSON(http.StatusOK, entries)
}

func (h *LifeHandler) CreateScreenTime(c *gin.Context) {
	var req CreateScreenTimeRequest
	if !bindJSON(c, &req) {
		return
	}
	entry, err := h.healthService.CreateScreenTime(c.Request.Context(), getUserIDFromContext(c), domain.ScreenTimeEntry{
		Date:     req.Date,
		Category: req.Category,
		Minutes:  req.Minutes,
	})
	if err != nil {
		respondError(c, err, "create screen time entry")
		return
	}
	c.JSON(http.StatusCreated, entry)
}

func (h *LifeHandler) GetScreenTime(c *gin.Context) {
	entry, err := h.healthService.GetScreenTime(c.Request.Context(), getUserIDFromContext(c), c.Param("id"))
	if err != nil {
		respondError(c, err, "retrieve screen time entry")
		return
	}
	c.JSON(http.StatusOK, entry)
}

func (h *LifeHandler) UpdateScreenTime(c *gin.Context) {
	var patch domain.ScreenTimePatch
	if !bindJSON(c, &patch) {
		return
	}
	entry, err := h.healthService.UpdateScreenTime(c.Request.Context(), getUserIDFromContext(c), c.Param("id"), patch)
	if err != nil {
		respondError(c, err, "update screen time entry")
		return
	}
	c.JSON(http.StatusOK, entry)
}

func (h *LifeHandler) DeleteScreenTime(c *gin.Context) {
	if err := h.healthService.DeleteScreenTime(c.Request.Context(), getUserIDFromContext(c), c.Param("id")); err != nil {
		respondError(c, err, "delete screen time entry")
		return
	}
	c.Status(http.StatusNoContent)
}

// GetScreenTimeSummary totals minutes per category between from and to.
func (h *LifeHandler) GetScreenTimeSummary(c *gin.Context) {
	summary, err := h.healthService.ScreenTimeSummary(c.Request.Context(), getUserIDFromContext(c), c.Query("from"), c.Query("to"))
	if err != nil {
		respondError(c, err, "summarize screen time")
		return
	}
	c.JSON(http.StatusOK, summary)
}

// --- Todos ---

// ListTodos godoc
// @Summary List todos
// @Tags Todos
// @Produce json
// @Param completed query bool false "Filter by completion"
// @Success 200 {array} domain.Todo
// @Failure 400 {object} gin.H "Invalid completed filter"
// @Router /todos [get]
func (h *LifeHandler) ListTodos(c *gin.Context) {
	var filter repository.TodoFilter
	if raw, ok := c.GetQuery("completed"); ok {
		completed, err := strconv.ParseBool(raw)
		if err != nil {
			abortWithError(c, http.StatusBadRequest, "completed must be true or false")
			return
		}
		filter.Completed = &completed
	}
	todos, err := h.todoService.ListTodos(c.Request.Context(), getUserIDFromContext(c), filter)
	if err != nil {
		respondError(c, err, "retrieve todos")
		return
	}
	c.JSON(http.StatusOK, todos)
}

func (h *LifeHandler) CreateTodo(c *gin.Context) {
	var req CreateTodoRequest
	if !bindJSON(c, &req) {
		return
	}
	todo, err := h.todoService.CreateTodo(c.Request.Context(), getUserIDFromContext(c), domain.Todo{
		Title:       req.Title,
		Description: req.Description,
		DueDate:     req.DueDate,
		Priority:    req.Priority,
		Completed:   req.Completed,
	})
	if err != nil {
		respondError(c, err, "create todo")
		return
	}
	c.JSON(http.StatusCreated, todo)
}

func (h *LifeHandler) GetTodo(c *gin.Context) {
	todo, err := h.todoService.GetTodo(c.Request.Context(), getUserIDFromContext(c), c.Param("id"))
	if err != nil {
		respondError(c, err, "retrieve todo")
		return
	}
	c.JSON(http.StatusOK, todo)
}

func (h *LifeHandler) UpdateTodo(c *gin.Context) {
	var patch domain.TodoPatch
	if !bindJSON(c, &patch) {
		return
	}
	todo, err := h.todoService.UpdateTodo(c.Request.Context(), getUserIDFromContext(c), c.Param("id"), patch)
	if err != nil {
		respondError(c, err, "update todo")
		return
	}
	c.JSON(http.StatusOK, todo)
}

func (h *LifeHandler) DeleteTodo(c *gin.Context) {
	if err := h.todoService.DeleteTodo(c.Request.Context(), getUserIDFromContext(c), c.Param("id")); err != nil {
		respondError(c, err, "delete todo")
		return
	}
	c.Status(http.StatusNoContent)
}
