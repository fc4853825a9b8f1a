package api

import (
	"net/http"

	"liftledger/workout-tracker/internal/service"

	"github.com/gin-gonic/gin"
)

// ExportHandler generates downloadable exports of a user's data.
type ExportHandler struct {
	exportService service.ExportService
}

// NewExportHandler creates a new ExportHandler.
func NewExportHandler(exportService service.ExportService) *ExportHandler {
	return &ExportHandler{exportService: exportService}
}

// ExportLogsCSV exports the full workout history as CSV.
func (h *ExportHandler) ExportLogsCSV(c *gin.Context) {
	userID, err := getUserIDFromContext(c)
	if err != nil {
		abortWithError(c, http.StatusUnauthorized, "Unable to identify user")
		return
	}

	result, err := h.exportService.ExportLogsCSV(c.Request.Context(), userID)
	if err != nil {
		abortWithError(c, http.StatusInternalServerError, "Failed to generate export")
		return
	}
	c.JSON(http.StatusOK, result)
}

// ExportRecordsCSV exports the best record per exercise as CSV.
func (h *ExportHandler) ExportRecordsCSV(c *gin.Context) {
	userID, err := getUserIDFromContext(c)
	if err != nil {
		abortWithError(c, http.StatusUnauthorized, "Unable to identify user")
		return
	}

	result, err := h.exportService.ExportRecordsCSV(c.Request.Context(), userID)
	if err != nil {
		abortWithError(c, http.StatusInternalServerError, "Failed to generate export")
		return
	}
	c.JSON(http.StatusOK, result)
}

// ExportSummaryPDF exports a date-range summary as PDF. Query params
// from/to follow the report range rules.
func (h *ExportHandler) ExportSummaryPDF(c *gin.Context) {
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

	result, err := h.exportService.ExportSummaryPDF(c.Request.Context(), userID, from, to)
	if err != nil {
		abortWithError(c, http.StatusInternalServerError, "Failed to generate export")
		return
	}
	c.JSON(http.StatusOK, result)
}
