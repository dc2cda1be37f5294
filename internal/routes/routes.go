package routes

import (
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"visitboard-server/internal/config"
	"visitboard-server/internal/handlers"
	"visitboard-server/internal/middleware"
	"visitboard-server/internal/reminder"
)

// SetupRoutes configures the application routes.
func SetupRoutes(router *gin.Engine, db *gorm.DB, cfg *config.Config, runner *reminder.Runner) {
	// Initialize handlers
	appointmentHandler := handlers.NewAppointmentHandler(db, cfg)
	reminderHandler := handlers.NewReminderHandler(runner, cfg)

	api := router.Group("/api/v1")
	{
		appointmentRoutes := api.Group("/appointments")
		{
			appointmentRoutes.POST("", appointmentHandler.CreateAppointment)

			// Full board, grouped by status and ordered by rank. Also the
			// reconciliation fetch after a failed partial write.
			appointmentRoutes.GET("", appointmentHandler.GetBoard)

			// One day's occurrences with timeline slot geometry.
			appointmentRoutes.GET("/schedule", appointmentHandler.GetSchedule)

			// Cross-column move or within-column rank batch, never both.
			appointmentRoutes.PATCH("/reorder", appointmentHandler.Reorder)

			appointmentRoutes.PUT("/:id", appointmentHandler.UpdateAppointment)
			appointmentRoutes.DELETE("/:id", appointmentHandler.DeleteAppointment)
		}

		// Internal job endpoint, guarded by the shared reminder secret.
		reminderRoutes := api.Group("/reminders")
		reminderRoutes.Use(middleware.InternalAuthMiddleware(cfg.Reminder.Secret))
		{
			reminderRoutes.POST("/run", reminderHandler.Run)
		}
	}

	// Simple health check endpoint
	router.GET("/health", func(c *gin.Context) {
		c.JSON(200, gin.H{"status": "UP"})
	})
}
