package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/yukikurage/task-analytics-api/internal/middleware"
	"github.com/yukikurage/task-analytics-api/internal/models"
)

// NewRouter registers every API route on a new gin engine
func NewRouter(jwtSecret string, taskHandler *TaskHandler, userHandler *UserHandler, analyticsHandler *AnalyticsHandler) *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(middleware.RequestLogger())

	// Health check endpoint
	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"status":  "ok",
			"message": "Task Analytics API is running",
		})
	})

	api := r.Group("/api")
	{
		tasks := api.Group("/tasks")
		{
			tasks.POST("", taskHandler.CreateTask)
			tasks.GET("", taskHandler.ListTasks)
			tasks.GET("/:id", taskHandler.GetTask)
			tasks.PATCH("/:id", taskHandler.UpdateTask)
			tasks.DELETE("/:id", middleware.RequireAuth(jwtSecret), middleware.RequireRole(models.RoleAdmin), taskHandler.DeleteTask)
		}

		users := api.Group("/users")
		{
			users.POST("", userHandler.CreateUser)
			users.GET("", userHandler.ListUsers)
			users.GET("/:id", userHandler.GetUser)
			users.DELETE("/:id", userHandler.DeleteUser)
		}

		analytics := api.Group("/analytics")
		{
			analytics.GET("/tasks/status", analyticsHandler.TaskStatus)
			analytics.GET("/users/efficiency", analyticsHandler.UserEfficiency)
		}
	}

	return r
}
