package api

import (
	"net/http"

	"liftledger/workout-tracker/internal/service"

	"github.com/gin-gonic/gin"
)

// SetupRoutes wires all handlers onto the router. Everything except
// registration, login and the ping probe sits behind JWT auth.
func SetupRoutes(
	router *gin.Engine,
	jwtSecret string,
	authService service.AuthService,
	programService service.ProgramService,
	workoutService service.WorkoutService,
	recordService service.RecordService,
	reportService service.ReportService,
	exportService service.ExportService,
) {
	authHandler := NewAuthHandler(authService)
	programHandler := NewProgramHandler(programService)
	logHandler := NewLogHandler(workoutService)
	recordHandler := NewRecordHandler(recordService)
	reportHandler := NewReportHandler(reportService)
	exportHandler := NewExportHandler(exportService)

	authMiddleware := AuthMiddleware(jwtSecret)

	router.GET("/ping", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"message": "pong"})
	})

	apiV1 := router.Group("/api/v1")
	{
		authGroup := apiV1.Group("/auth")
		{
			authGroup.POST("/register", authHandler.Register)
			authGroup.POST("/login", authHandler.Login)
		}
	}

	protected := apiV1.Group("")
	protected.Use(authMiddleware)
	{
		protected.DELETE("/me", authHandler.DeleteAccount)

		programGroup := protected.Group("/programs")
		{
			programGroup.POST("", programHandler.CreateProgram)
			programGroup.GET("", programHandler.ListPrograms)
			programGroup.GET("/:id", programHandler.GetProgram)
			programGroup.PUT("/:id", programHandler.UpdateProgram)
			programGroup.DELETE("/:id", programHandler.DeleteProgram)
			programGroup.POST("/:id/copy", programHandler.CopyProgram)
		}

		logGroup := protected.Group("/logs")
		{
			logGroup.GET("", logHandler.ListLogs)
			logGroup.POST("/start", logHandler.StartWorkout)
			logGroup.GET("/:id", logHandler.GetLog)
			logGroup.DELETE("/:id", logHandler.DeleteLog)
			logGroup.PATCH("/:id/sets/:setId", logHandler.UpdateSet)
			logGroup.POST("/:id/complete", logHandler.CompleteWorkout)
			logGroup.POST("/:id/cancel", logHandler.CancelWorkout)
		}

		recordGroup := protected.Group("/records")
		{
			recordGroup.GET("", recordHandler.ListRecords)
			recordGroup.GET("/best", recordHandler.BestRecords)
		}

		reportGroup := protected.Group("/reports")
		{
			reportGroup.GET("/progress", reportHandler.ExerciseProgress)
			reportGroup.GET("/weekly-volume", reportHandler.WeeklyVolume)
			reportGroup.GET("/frequency", reportHandler.WeekdayFrequency)
			reportGroup.GET("/summary", reportHandler.Summary)
		}

		exportGroup := protected.Group("/export")
		{
			exportGroup.GET("/csv", exportHandler.ExportLogsCSV)
			exportGroup.GET("/prs.csv", exportHandler.ExportRecordsCSV)
			exportGroup.GET("/summary.pdf", exportHandler.ExportSummaryPDF)
		}
	}
}
