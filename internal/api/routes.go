package api

import (
	"alcyxob/lifelog-app/internal/metrics"
	"alcyxob/lifelog-app/internal/service"
	"net/http"

	"github.com/gin-gonic/gin"
)

// NewRouter builds the gin engine with recovery, logging and, when m is not
// nil, request metrics on /metrics.
func NewRouter(defaultUserID string, services *service.Services, m *metrics.Manager) *gin.Engine {
	router := gin.New()
	router.Use(gin.Recovery(), RequestLogger())
	if m != nil {
		router.Use(MetricsMiddleware(m))
		router.GET("/metrics", gin.WrapH(m.Handler()))
	}
	SetupRoutes(router, defaultUserID, services)
	return router
}

func SetupRoutes(router *gin.Engine, defaultUserID string, services *service.Services) {
	habitHandler := NewHabitHandler(services.Habits)
	nutritionHandler := NewNutritionHandler(services.Nutrition)
	workoutHandler := NewWorkoutHandler(services.Workouts, services.Calendar)
	lifeHandler := NewLifeHandler(services.Goals, services.Health, services.Todos)

	router.GET("/ping", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"message": "pong"})
	})

	apiV1 := router.Group("/api/v1")
	apiV1.Use(UserMiddleware(defaultUserID))
	{
		apiV1.GET("/me", func(c *gin.Context) {
			c.JSON(http.StatusOK, gin.H{"userId": getUserIDFromContext(c)})
		})

		habits := apiV1.Group("/habits")
		{
			habits.GET("", habitHandler.ListHabits)
			habits.POST("", habitHandler.CreateHabit)
			habits.GET("/:id", habitHandler.GetHabit)
			habits.PATCH("/:id", habitHandler.UpdateHabit)
			habits.DELETE("/:id", habitHandler.DeleteHabit)
			habits.GET("/:id/stats", habitHandler.GetHabitStats)
			habits.GET("/:id/entries", habitHandler.ListEntries)
			habits.POST("/:id/entries", habitHandler.CreateEntry)
			habits.PATCH("/:id/entries/:entryId", habitHandler.UpdateEntry)
			habits.DELETE("/:id/entries/:entryId", habitHandler.DeleteEntry)
		}

		meals := apiV1.Group("/meals")
		{
			meals.GET("", nutritionHandler.ListMeals)
			meals.POST("", nutritionHandler.CreateMeal)
			meals.GET("/:id", nutritionHandler.GetMeal)
			meals.PATCH("/:id", nutritionHandler.UpdateMeal)
			meals.DELETE("/:id", nutritionHandler.DeleteMeal)
		}
		apiV1.GET("/day/:date/totals", nutritionHandler.GetDailyTotals)
		apiV1.GET("/report/weekly", nutritionHandler.GetWeeklyReport)
		apiV1.GET("/nutrition/goal", nutritionHandler.GetGoal)
		apiV1.PUT("/nutrition/goal", nutritionHandler.SetGoal)

		exercises := apiV1.Group("/exercises")
		{
			exercises.GET("", workoutHandler.ListExercises)
			exercises.POST("", workoutHandler.CreateExercise)
			exercises.PATCH("/:id", workoutHandler.UpdateExercise)
			exercises.DELETE("/:id", workoutHandler.DeleteExercise)
		}

		workouts := apiV1.Group("/workouts")
		{
			workouts.GET("", workoutHandler.ListWorkouts)
			workouts.POST("", workoutHandler.CreateWorkout)
			workouts.GET("/export", workoutHandler.DownloadExport)
			workouts.POST("/export", workoutHandler.UploadExport)
			workouts.GET("/exports", workoutHandler.ListExports)
			workouts.GET("/exports/:exportId", workoutHandler.GetExport)
			workouts.GET("/:id", workoutHandler.GetWorkout)
			workouts.PATCH("/:id", workoutHandler.UpdateWorkout)
			workouts.DELETE("/:id", workoutHandler.DeleteWorkout)
			workouts.GET("/:id/summary", workoutHandler.GetSummary)
			workouts.GET("/:id/sets", workoutHandler.ListSets)
			workouts.POST("/:id/sets", workoutHandler.AddSet)
			workouts.PATCH("/:id/sets/:setId", workoutHandler.UpdateSet)
			workouts.DELETE("/:id/sets/:setId", workoutHandler.DeleteSet)
		}

		goals := apiV1.Group("/goals")
		{
			goals.GET("", lifeHandler.ListGoals)
			goals.POST("", lifeHandler.CreateGoal)
			goals.GET("/:id", lifeHandler.GetGoal)
			goals.PATCH("/:id", lifeHandler.UpdateGoal)
			goals.DELETE("/:id", lifeHandler.DeleteGoal)
		}

		healthMetrics := apiV1.Group("/health-metrics")
		{
			healthMetrics.GET("", lifeHandler.ListMetrics)
			healthMetrics.POST("", lifeHandler.CreateMetric)
			healthMetrics.GET("/:id", lifeHandler.GetMetric)
			healthMetrics.PATCH("/:id", lifeHandler.UpdateMetric)
			healthMetrics.DELETE("/:id", lifeHandler.DeleteMetric)
		}

		screenTime := apiV1.Group("/screen-time")
		{
			screenTime.GET("", lifeHandler.ListScreenTime)
			screenTime.POST("", lifeHandler.CreateScreenTime)
			screenTime.GET("/summary", lifeHandler.GetScreenTimeSummary)
			screenTime.GET("/:id", lifeHandler.GetScreenTime)
			screenTime.PATCH("/:id", lifeHandler.UpdateScreenTime)
			screenTime.DELETE("/:id", lifeHandler.DeleteScreenTime)
		}

		todos := apiV1.Group("/todos")
		{
			todos.GET("", lifeHandler.ListTodos)
			todos.POST("", lifeHandler.CreateTodo)
			todos.GET("/:id", lifeHandler.GetTodo)
			todos.PATCH("/:id", lifeHandler.UpdateTodo)
			todos.DELETE("/:id", lifeHandler.DeleteTodo)
		}
	}
}
