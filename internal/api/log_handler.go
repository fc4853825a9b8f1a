package api

import (
	"errors"
	"fmt"
	"net/http"

	"liftledger/workout-tracker/internal/service"

	"github.com/gin-gonic/gin"
)

// LogHandler exposes workout sessions and persisted logs.
type LogHandler struct {
	workoutService service.WorkoutService
}

// NewLogHandler creates a new LogHandler.
func NewLogHandler(workoutService service.WorkoutService) *LogHandler {
	return &LogHandler{workoutService: workoutService}
}

// --- Request Structs ---

type StartWorkoutRequest struct {
	ProgramID string `json:"programId"`
	DayID     string `json:"dayId"`
	DayName   string `json:"dayName"`
}

type UpdateSetRequest struct {
	ActualReps  *int     `json:"actualReps" binding:"omitempty,min=0"`
	Weight      *float64 `json:"weight" binding:"omitempty,min=0"`
	IsCompleted *bool    `json:"isCompleted"`
	RPE         *int     `json:"rpe"`
}

type CompleteWorkoutRequest struct {
	Notes  string `json:"notes"`
	Rating *int   `json:"rating"`
}

// --- Handler Methods ---

// StartWorkout opens a new active session, from a program day when
// programId and dayId are given, blank otherwise.
func (h *LogHandler) StartWorkout(c *gin.Context) {
	userID, err := getUserIDFromContext(c)
	if err != nil {
		abortWithError(c, http.StatusUnauthorized, "Unable to identify user")
		return
	}

	var req StartWorkoutRequest
	if err := c.ShouldBindJSON(&req); err != nil && c.Request.ContentLength > 0 {
		abortWithError(c, http.StatusBadRequest, fmt.Sprintf("Validation error: %v", err))
		return
	}

	if req.ProgramID != "" {
		workoutLog, err := h.workoutService.StartFromTemplate(c.Request.Context(), userID, req.ProgramID, req.DayID)
		if err != nil {
			respondLogError(c, err)
			return
		}
		c.JSON(http.StatusCreated, workoutLog)
		return
	}

	workoutLog, err := h.workoutService.StartBlank(c.Request.Context(), userID, req.DayName)
	if err != nil {
		respondLogError(c, err)
		return
	}
	c.JSON(http.StatusCreated, workoutLog)
}

// UpdateSet edits one set of an active session.
func (h *LogHandler) UpdateSet(c *gin.Context) {
	userID, err := getUserIDFromContext(c)
	if err != nil {
		abortWithError(c, http.StatusUnauthorized, "Unable to identify user")
		return
	}

	var req UpdateSetRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		abortWithError(c, http.StatusBadRequest, fmt.Sprintf("Validation error: %v", err))
		return
	}

	update := service.SetUpdate{
		ActualReps:  req.ActualReps,
		Weight:      req.Weight,
		IsCompleted: req.IsCompleted,
		RPE:         req.RPE,
	}
	workoutLog, err := h.workoutService.UpdateSet(c.Request.Context(), userID, c.Param("id"), c.Param("setId"), update)
	if err != nil {
		respondLogError(c, err)
		return
	}
	c.JSON(http.StatusOK, workoutLog)
}

// CompleteWorkout finalizes and persists an active session.
func (h *LogHandler) CompleteWorkout(c *gin.Context) {
	userID, err := getUserIDFromContext(c)
	if err != nil {
		abortWithError(c, http.StatusUnauthorized, "Unable to identify user")
		return
	}

	var req CompleteWorkoutRequest
	if err := c.ShouldBindJSON(&req); err != nil && c.Request.ContentLength > 0 {
		abortWithError(c, http.StatusBadRequest, fmt.Sprintf("Validation error: %v", err))
		return
	}

	workoutLog, err := h.workoutService.Complete(c.Request.Context(), userID, c.Param("id"), req.Notes, req.Rating)
	if err != nil {
		respondLogError(c, err)
		return
	}
	c.JSON(http.StatusOK, workoutLog)
}

// CancelWorkout drops an active session without saving anything.
func (h *LogHandler) CancelWorkout(c *gin.Context) {
	userID, err := getUserIDFromContext(c)
	if err != nil {
		abortWithError(c, http.StatusUnauthorized, "Unable to identify user")
		return
	}

	if err := h.workoutService.Cancel(userID, c.Param("id")); err != nil {
		respondLogError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

// GetLog returns one log: the live session copy while it is active, the
// persisted document once completed.
func (h *LogHandler) GetLog(c *gin.Context) {
	userID, err := getUserIDFromContext(c)
	if err != nil {
		abortWithError(c, http.StatusUnauthorized, "Unable to identify user")
		return
	}
	logID := c.Param("id")

	if session, err := h.workoutService.ActiveSession(userID, logID); err == nil {
		c.JSON(http.StatusOK, session)
		return
	}

	workoutLog, err := h.workoutService.GetLog(c.Request.Context(), userID, logID)
	if err != nil {
		respondLogError(c, err)
		return
	}
	c.JSON(http.StatusOK, workoutLog)
}

// ListLogs returns the caller's persisted logs, most recent first.
func (h *LogHandler) ListLogs(c *gin.Context) {
	userID, err := getUserIDFromContext(c)
	if err != nil {
		abortWithError(c, http.StatusUnauthorized, "Unable to identify user")
		return
	}

	logs, err := h.workoutService.ListLogs(c.Request.Context(), userID)
	if err != nil {
		abortWithError(c, http.StatusInternalServerError, "Failed to list workout logs")
		return
	}
	c.JSON(http.StatusOK, logs)
}

// DeleteLog removes a persisted log.
func (h *LogHandler) DeleteLog(c *gin.Context) {
	userID, err := getUserIDFromContext(c)
	if err != nil {
		abortWithError(c, http.StatusUnauthorized, "Unable to identify user")
		return
	}

	if err := h.workoutService.DeleteLog(c.Request.Context(), userID, c.Param("id")); err != nil {
		respondLogError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

func respondLogError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, service.ErrLogNotFound),
		errors.Is(err, service.ErrSessionNotFound),
		errors.Is(err, service.ErrSetNotFound),
		errors.Is(err, service.ErrDayNotFound),
		errors.Is(err, service.ErrProgramNotFound):
		abortWithError(c, http.StatusNotFound, err.Error())
	case errors.Is(err, service.ErrLogAccessDenied),
		errors.Is(err, service.ErrProgramAccessDenied):
		abortWithError(c, http.StatusForbidden, err.Error())
	case errors.Is(err, service.ErrLogCompleted):
		abortWithError(c, http.StatusConflict, err.Error())
	case errors.Is(err, service.ErrInvalidRating), errors.Is(err, service.ErrInvalidRPE):
		abortWithError(c, http.StatusBadRequest, err.Error())
	default:
		abortWithError(c, http.StatusInternalServerError, "An unexpected error occurred")
	}
}
