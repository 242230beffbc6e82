package api

import (
	"alcyxob/lifelog-app/internal/aggregate"
	"alcyxob/lifelog-app/internal/domain"
	"alcyxob/lifelog-app/internal/service"
	"bytes"
	"fmt"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
)

// WorkoutHandler serves exercises, workouts, sets and exports.
type WorkoutHandler struct {
	workoutService service.WorkoutService
	calendar       service.Calendar
}

func NewWorkoutHandler(workoutService service.WorkoutService, calendar service.Calendar) *WorkoutHandler {
	return &WorkoutHandler{workoutService: workoutService, calendar: calendar}
}

// --- DTOs ---

type CreateExerciseRequest struct {
	Name        string `json:"name" binding:"required"`
	MuscleGroup string `json:"muscleGroup"` // e.g., "Chest", "Legs"
	Description string `json:"description"`
}

// CreateWorkoutRequest: startedAt defaults to now, endedAt may stay open.
type CreateWorkoutRequest struct {
	Name      string     `json:"name"`
	StartedAt *time.Time `json:"startedAt"`
	EndedAt   *time.Time `json:"endedAt"`
	Notes     string     `json:"notes"`
}

type CreateSetRequest struct {
	ExerciseID string  `json:"exerciseId" binding:"required"`
	Weight     float64 `json:"weight" binding:"gte=0"`
	Reps       int     `json:"reps" binding:"gte=0"`
	OrderIndex int     `json:"orderIndex"`
}

// WorkoutResponse adds the derived duration and, on detail views, the sets
// and per-exercise summary.
type WorkoutResponse struct {
	domain.Workout
	DurationMinutes int                       `json:"durationMinutes"`
	Sets            []domain.Set              `json:"sets,omitempty"`
	Summary         *aggregate.WorkoutSummary `json:"summary,omitempty"`
}

type ExportResponse struct {
	domain.Export
	DownloadURL string     `json:"downloadUrl,omitempty"`
	ExpiresAt   *time.Time `json:"expiresAt,omitempty"`
}

func MapWorkoutToResponse(w *domain.Workout) WorkoutResponse {
	return WorkoutResponse{Workout: *w, DurationMinutes: aggregate.Duration(*w)}
}

func MapWorkoutDetailToResponse(d service.WorkoutDetail) WorkoutResponse {
	resp := MapWorkoutToResponse(&d.Workout)
	summary := d.Summary
	resp.Summary = &summary
	resp.Sets = d.Sets
	return resp
}

func MapExportResultToResponse(r *service.ExportResult) ExportResponse {
	expiresAt := r.ExpiresAt
	return ExportResponse{Export: r.Export, DownloadURL: r.DownloadURL, ExpiresAt: &expiresAt}
}

// --- Exercises ---

func (h *WorkoutHandler) ListExercises(c *gin.Context) {
	exercises, err := h.workoutService.ListExercises(c.Request.Context(), getUserIDFromContext(c))
	if err != nil {
		respondError(c, err, "retrieve exercises")
		return
	}
	c.JSON(http.StatusOK, exercises)
}

// CreateExercise godoc
// @Summary Create a new exercise
// @Tags Exercises
// @Accept json
// @Produce json
// @Param exercise body CreateExerciseRequest true "Exercise details"
// @Success 201 {object} domain.Exercise "Exercise created successfully"
// @Failure 400 {object} gin.H "Invalid input (validation error)"
// @Router /exercises [post]
func (h *WorkoutHandler) CreateExercise(c *gin.Context) {
	var req CreateExerciseRequest
	if !bindJSON(c, &req) {
		return
	}
	exercise, err := h.workoutService.CreateExercise(c.Request.Context(), getUserIDFromContext(c), domain.Exercise{
		Name:        req.Name,
		MuscleGroup: req.MuscleGroup,
		Description: req.Description,
	})
	if err != nil {
		respondError(c, err, "create exercise")
		return
	}
	c.JSON(http.StatusCreated, exercise)
}

func (h *WorkoutHandler) UpdateExercise(c *gin.Context) {
	var patch domain.ExercisePatch
	if !bindJSON(c, &patch) {
		return
	}
	exercise, err := h.workoutService.UpdateExercise(c.Request.Context(), getUserIDFromContext(c), c.Param("id"), patch)
	if err != nil {
		respondError(c, err, "update exercise")
		return
	}
	c.JSON(http.StatusOK, exercise)
}

// DeleteExercise keeps sets that reference the exercise.
func (h *WorkoutHandler) DeleteExercise(c *gin.Context) {
	if err := h.workoutService.DeleteExercise(c.Request.Context(), getUserIDFromContext(c), c.Param("id")); err != nil {
		respondError(c, err, "delete exercise")
		return
	}
	c.Status(http.StatusNoContent)
}

// --- Workouts ---

// ListWorkouts godoc
// @Summary List workouts
// @Description Lists workouts newest first, each with its per-exercise summary.
// @Tags Workouts
// @Produce json
// @Success 200 {array} WorkoutResponse
// @Router /workouts [get]
func (h *WorkoutHandler) ListWorkouts(c *gin.Context) {
	details, err := h.workoutService.ListWorkouts(c.Request.Context(), getUserIDFromContext(c))
	if err != nil {
		respondError(c, err, "retrieve workouts")
		return
	}
	responses := make([]WorkoutResponse, len(details))
	for i, d := range details {
		responses[i] = MapWorkoutDetailToResponse(d)
		responses[i].Sets = nil
	}
	c.JSON(http.StatusOK, responses)
}

func (h *WorkoutHandler) CreateWorkout(c *gin.Context) {
	var req CreateWorkoutRequest
	if !bindJSON(c, &req) {
		return
	}
	workout := domain.Workout{Name: req.Name, EndedAt: req.EndedAt, Notes: req.Notes}
	if req.StartedAt != nil {
		workout.StartedAt = *req.StartedAt
	}
	created, err := h.workoutService.CreateWorkout(c.Request.Context(), getUserIDFromContext(c), workout)
	if err != nil {
		respondError(c, err, "create workout")
		return
	}
	c.JSON(http.StatusCreated, MapWorkoutToResponse(created))
}

func (h *WorkoutHandler) GetWorkout(c *gin.Context) {
	detail, err := h.workoutService.GetWorkout(c.Request.Context(), getUserIDFromContext(c), c.Param("id"))
	if err != nil {
		respondError(c, err, "retrieve workout")
		return
	}
	c.JSON(http.StatusOK, MapWorkoutDetailToResponse(*detail))
}

func (h *WorkoutHandler) UpdateWorkout(c *gin.Context) {
	var patch domain.WorkoutPatch
	if !bindJSON(c, &patch) {
		return
	}
	workout, err := h.workoutService.UpdateWorkout(c.Request.Context(), getUserIDFromContext(c), c.Param("id"), patch)
	if err != nil {
		respondError(c, err, "update workout")
		return
	}
	c.JSON(http.StatusOK, MapWorkoutToResponse(workout))
}

// DeleteWorkout removes the workout and all of its sets.
func (h *WorkoutHandler) DeleteWorkout(c *gin.Context) {
	if err := h.workoutService.DeleteWorkout(c.Request.Context(), getUserIDFromContext(c), c.Param("id")); err != nil {
		respondError(c, err, "delete workout")
		return
	}
	c.Status(http.StatusNoContent)
}

func (h *WorkoutHandler) GetSummary(c *gin.Context) {
	summary, err := h.workoutService.Summary(c.Request.Context(), getUserIDFromContext(c), c.Param("id"))
	if err != nil {
		respondError(c, err, "summarize workout")
		return
	}
	c.JSON(http.StatusOK, summary)
}

// --- Sets ---

func (h *WorkoutHandler) ListSets(c *gin.Context) {
	sets, err := h.workoutService.ListSets(c.Request.Context(), getUserIDFromContext(c), c.Param("id"))
	if err != nil {
		respondError(c, err, "retrieve sets")
		return
	}
	c.JSON(http.StatusOK, sets)
}

func (h *WorkoutHandler) AddSet(c *gin.Context) {
	var req CreateSetRequest
	if !bindJSON(c, &req) {
		return
	}
	set, err := h.workoutService.AddSet(c.Request.Context(), getUserIDFromContext(c), c.Param("id"), domain.Set{
		ExerciseID: req.ExerciseID,
		Weight:     req.Weight,
		Reps:       req.Reps,
		OrderIndex: req.OrderIndex,
	})
	if err != nil {
		respondError(c, err, "add set")
		return
	}
	c.JSON(http.StatusCreated, set)
}

func (h *WorkoutHandler) UpdateSet(c *gin.Context) {
	var patch domain.SetPatch
	if !bindJSON(c, &patch) {
		return
	}
	set, err := h.workoutService.UpdateSet(c.Request.Context(), getUserIDFromContext(c), c.Param("id"), c.Param("setId"), patch)
	if err != nil {
		respondError(c, err, "update set")
		return
	}
	c.JSON(http.StatusOK, set)
}

func (h *WorkoutHandler) DeleteSet(c *gin.Context) {
	if err := h.workoutService.DeleteSet(c.Request.Context(), getUserIDFromContext(c), c.Param("id"), c.Param("setId")); err != nil {
		respondError(c, err, "delete set")
		return
	}
	c.Status(http.StatusNoContent)
}

// --- Export ---

// DownloadExport godoc
// @Summary Download workouts as CSV
// @Tags Workouts
// @Produce text/csv
// @Success 200 {string} string "CSV file"
// @Router /workouts/export [get]
func (h *WorkoutHandler) DownloadExport(c *gin.Context) {
	var buf bytes.Buffer
	if _, err := h.workoutService.WriteExport(c.Request.Context(), getUserIDFromContext(c), &buf); err != nil {
		respondError(c, err, "export workouts")
		return
	}
	c.Header("Content-Disposition", fmt.Sprintf(`attachment; filename="workouts-%s.csv"`, h.calendar.Today()))
	c.Data(http.StatusOK, "text/csv; charset=utf-8", buf.Bytes())
}

// UploadExport godoc
// @Summary Upload a workout export to object storage
// @Description Stores the CSV in the export bucket and returns a presigned download URL.
// @Tags Workouts
// @Produce json
// @Success 201 {object} ExportResponse
// @Failure 503 {object} gin.H "Export storage is not configured"
// @Router /workouts/export [post]
func (h *WorkoutHandler) UploadExport(c *gin.Context) {
	result, err := h.workoutService.UploadExport(c.Request.Context(), getUserIDFromContext(c))
	if err != nil {
		respondError(c, err, "upload workout export")
		return
	}
	c.JSON(http.StatusCreated, MapExportResultToResponse(result))
}

func (h *WorkoutHandler) ListExports(c *gin.Context) {
	exports, err := h.workoutService.ListExports(c.Request.Context(), getUserIDFromContext(c))
	if err != nil {
		respondError(c, err, "retrieve exports")
		return
	}
	responses := make([]ExportResponse, len(exports))
	for i, e := range exports {
		responses[i] = ExportResponse{Export: e}
	}
	c.JSON(http.StatusOK, responses)
}

// GetExport returns export metadata with a fresh download URL.
func (h *WorkoutHandler) GetExport(c *gin.Context) {
	result, err := h.workoutService.ExportDownloadURL(c.Request.Context(), getUserIDFromContext(c), c.Param("exportId"))
	if err != nil {
		respondError(c, err, "retrieve export")
		return
	}
	c.JSON(http.StatusOK, MapExportResultToResponse(result))
}
