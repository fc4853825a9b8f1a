package api

import (
	"net/http"
	"strconv"
	"time"

	"liftledger/workout-tracker/internal/service"

	"github.com/gin-gonic/gin"
)

// ReportHandler exposes the read-only aggregate endpoints.
type ReportHandler struct {
	reportService service.ReportService
}

// NewReportHandler creates a new ReportHandler.
func NewReportHandler(reportService service.ReportService) *ReportHandler {
	return &ReportHandler{reportService: reportService}
}

// ExerciseProgress returns the progress chart data for one exercise.
// Query params: exercise (required), limit (optional, defaults to 30).
func (h *ReportHandler) ExerciseProgress(c *gin.Context) {
	userID, err := getUserIDFromContext(c)
	if err != nil {
		abortWithError(c, http.StatusUnauthorized, "Unable to identify user")
		return
	}

	exercise := c.Query("exercise")
	if exercise == "" {
		abortWithError(c, http.StatusBadRequest, "Query parameter 'exercise' is required")
		return
	}
	limit := 0
	if raw := c.Query("limit"); raw != "" {
		limit, err = strconv.Atoi(raw)
		if err != nil || limit < 1 {
			abortWithError(c, http.StatusBadRequest, "Query parameter 'limit' must be a positive integer")
			return
		}
	}

	c.JSON(http.StatusOK, h.reportService.ExerciseProgress(c.Request.Context(), userID, exercise, limit))
}

// WeeklyVolume returns calendar-week volume buckets, oldest first.
func (h *ReportHandler) WeeklyVolume(c *gin.Context) {
	userID, err := getUserIDFromContext(c)
	if err != nil {
		abortWithError(c, http.StatusUnauthorized, "Unable to identify user")
		return
	}
	c.JSON(http.StatusOK, h.reportService.WeeklyVolume(c.Request.Context(), userID))
}

// WeekdayFrequency returns this week's workout count per weekday.
func (h *ReportHandler) WeekdayFrequency(c *gin.Context) {
	userID, err := getUserIDFromContext(c)
	if err != nil {
		abortWithError(c, http.StatusUnauthorized, "Unable to identify user")
		return
	}

	frequency := h.reportService.WeekdayFrequency(c.Request.Context(), userID)
	out := make(map[string]int, len(frequency))
	for day, count := range frequency {
		out[day.String()] = count
	}
	c.JSON(http.StatusOK, out)
}

// Summary aggregates the logs in a date range. Query params from/to are
// RFC 3339 timestamps; the default range is the trailing 30 days.
func (h *ReportHandler) Summary(c *gin.Context) {
	userID, err := getUserIDFromContext(c)
	if err != nil {
		abortWithError(c, http.StatusUnauthorized, "Unable to identify user")
		return
	}

	from, to, err := parseRange(c)
	if err != nil {
		abortWithError(c, http.StatusBadRequest, err.Error())
		return
	}
	c.JSON(http.StatusOK, h.reportService.Summary(c.Request.Context(), userID, from, to))
}

// parseRange reads optional from/to query params, defaulting to the
// trailing 30 days ending now.
func parseRange(c *gin.Context) (time.Time, time.Time, error) {
	now := time.Now().UTC()
	from := now.AddDate(0, 0, -30)
	to := now

	if raw := c.Query("from"); raw != "" {
		parsed, err := time.Parse(time.RFC3339, raw)
		if err != nil {
			return time.Time{}, time.Time{}, err
		}
		from = parsed
	}
	if raw := c.Query("to"); raw != "" {
		parsed, err := time.Parse(time.RFC3339, raw)
		if err != nil {
			return time.Time{}, time.Time{}, err
		}
		to = parsed
	}
	return from, to, nil
}
