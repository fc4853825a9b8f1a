package api

import (
	"net/http"

	"liftledger/workout-tracker/internal/service"

	"github.com/gin-gonic/gin"
)

// RecordHandler exposes the personal record history.
type RecordHandler struct {
	recordService service.RecordService
}

// NewRecordHandler creates a new RecordHandler.
func NewRecordHandler(recordService service.RecordService) *RecordHandler {
	return &RecordHandler{recordService: recordService}
}

// ListRecords returns the caller's full record history, newest first.
// Pass ?exercise=Name to narrow to one exercise's best record.
func (h *RecordHandler) ListRecords(c *gin.Context) {
	userID, err := getUserIDFromContext(c)
	if err != nil {
		abortWithError(c, http.StatusUnauthorized, "Unable to identify user")
		return
	}

	if exercise := c.Query("exercise"); exercise != "" {
		best, err := h.recordService.CurrentBest(c.Request.Context(), userID, exercise)
		if err != nil {
			abortWithError(c, http.StatusInternalServerError, "Failed to look up record")
			return
		}
		if best == nil {
			abortWithError(c, http.StatusNotFound, "No record for this exercise")
			return
		}
		c.JSON(http.StatusOK, best)
		return
	}

	records, err := h.recordService.ListRecords(c.Request.Context(), userID)
	if err != nil {
		abortWithError(c, http.StatusInternalServerError, "Failed to list records")
		return
	}
	c.JSON(http.StatusOK, records)
}

// BestRecords returns the single best record per exercise name.
func (h *RecordHandler) BestRecords(c *gin.Context) {
	userID, err := getUserIDFromContext(c)
	if err != nil {
		abortWithError(c, http.StatusUnauthorized, "Unable to identify user")
		return
	}

	best, err := h.recordService.BestPerExercise(c.Request.Context(), userID)
	if err != nil {
		abortWithError(c, http.StatusInternalServerError, "Failed to list best records")
		return
	}
	c.JSON(http.StatusOK, best)
}
