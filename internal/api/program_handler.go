package api

import (
	"errors"
	"fmt"
	"net/http"

	"liftledger/workout-tracker/internal/domain"
	"liftledger/workout-tracker/internal/service"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

// ProgramHandler holds the program service dependency.
type ProgramHandler struct {
	programService service.ProgramService
}

// NewProgramHandler creates a new ProgramHandler.
func NewProgramHandler(programService service.ProgramService) *ProgramHandler {
	return &ProgramHandler{programService: programService}
}

// --- Request Structs ---

type ExerciseRequest struct {
	ID           string  `json:"id"`
	Name         string  `json:"name" binding:"required"`
	TargetSets   int     `json:"targetSets" binding:"required,min=1"`
	TargetReps   int     `json:"targetReps" binding:"required,min=1"`
	TargetWeight float64 `json:"targetWeight" binding:"min=0"`
	WeightUnit   string  `json:"weightUnit" binding:"omitempty,oneof=lbs kg"`
	Notes        string  `json:"notes"`
	Order        int     `json:"order"`
	RestSeconds  int     `json:"restSeconds"`
}

type WorkoutDayRequest struct {
	ID        string            `json:"id"`
	Name      string            `json:"name" binding:"required"`
	Exercises []ExerciseRequest `json:"exercises" binding:"dive"`
	Order     int               `json:"order"`
	Notes     string            `json:"notes"`
}

type SaveProgramRequest struct {
	Name        string              `json:"name" binding:"required"`
	Description string              `json:"description"`
	Days        []WorkoutDayRequest `json:"days" binding:"dive"`
}

type CopyProgramRequest struct {
	ForUserID string `json:"forUserId"`
}

// --- Handler Methods ---

// CreateProgram creates a new program template for the caller.
func (h *ProgramHandler) CreateProgram(c *gin.Context) {
	userID, err := getUserIDFromContext(c)
	if err != nil {
		abortWithError(c, http.StatusUnauthorized, "Unable to identify user")
		return
	}

	var req SaveProgramRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		abortWithError(c, http.StatusBadRequest, fmt.Sprintf("Validation error: %v", err))
		return
	}

	program := req.toDomain(userID, "")
	if err := h.programService.SaveProgram(c.Request.Context(), &program); err != nil {
		abortWithError(c, http.StatusInternalServerError, "Failed to save program")
		return
	}
	c.JSON(http.StatusCreated, program)
}

// UpdateProgram overwrites a program wholesale (no field patching).
func (h *ProgramHandler) UpdateProgram(c *gin.Context) {
	userID, err := getUserIDFromContext(c)
	if err != nil {
		abortWithError(c, http.StatusUnauthorized, "Unable to identify user")
		return
	}
	programID := c.Param("id")

	// Ownership check before the overwrite.
	existing, err := h.programService.GetProgram(c.Request.Context(), userID, programID)
	if err != nil {
		respondProgramError(c, err)
		return
	}

	var req SaveProgramRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		abortWithError(c, http.StatusBadRequest, fmt.Sprintf("Validation error: %v", err))
		return
	}

	program := req.toDomain(userID, programID)
	program.CreatedAt = existing.CreatedAt
	if err := h.programService.SaveProgram(c.Request.Context(), &program); err != nil {
		abortWithError(c, http.StatusInternalServerError, "Failed to save program")
		return
	}
	c.JSON(http.StatusOK, program)
}

// GetProgram returns one owned program.
func (h *ProgramHandler) GetProgram(c *gin.Context) {
	userID, err := getUserIDFromContext(c)
	if err != nil {
		abortWithError(c, http.StatusUnauthorized, "Unable to identify user")
		return
	}

	program, err := h.programService.GetProgram(c.Request.Context(), userID, c.Param("id"))
	if err != nil {
		respondProgramError(c, err)
		return
	}
	c.JSON(http.StatusOK, program)
}

// ListPrograms returns the caller's programs, most recently updated first.
func (h *ProgramHandler) ListPrograms(c *gin.Context) {
	userID, err := getUserIDFromContext(c)
	if err != nil {
		abortWithError(c, http.StatusUnauthorized, "Unable to identify user")
		return
	}

	programs, err := h.programService.ListPrograms(c.Request.Context(), userID)
	if err != nil {
		abortWithError(c, http.StatusInternalServerError, "Failed to list programs")
		return
	}
	c.JSON(http.StatusOK, programs)
}

// DeleteProgram removes a program.
func (h *ProgramHandler) DeleteProgram(c *gin.Context) {
	userID, err := getUserIDFromContext(c)
	if err != nil {
		abortWithError(c, http.StatusUnauthorized, "Unable to identify user")
		return
	}

	if err := h.programService.DeleteProgram(c.Request.Context(), userID, c.Param("id")); err != nil {
		respondProgramError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

// CopyProgram deep-clones a program, optionally for another user.
func (h *ProgramHandler) CopyProgram(c *gin.Context) {
	userID, err := getUserIDFromContext(c)
	if err != nil {
		abortWithError(c, http.StatusUnauthorized, "Unable to identify user")
		return
	}

	var req CopyProgramRequest
	if err := c.ShouldBindJSON(&req); err != nil && c.Request.ContentLength > 0 {
		abortWithError(c, http.StatusBadRequest, fmt.Sprintf("Validation error: %v", err))
		return
	}

	copied, err := h.programService.CopyProgram(c.Request.Context(), userID, c.Param("id"), req.ForUserID)
	if err != nil {
		respondProgramError(c, err)
		return
	}
	c.JSON(http.StatusCreated, copied)
}

// --- Mapping helpers ---

func (r SaveProgramRequest) toDomain(userID, programID string) domain.Program {
	program := domain.NewProgram(userID, r.Name)
	if programID != "" {
		program.ID = programID
	}
	program.Description = r.Description
	program.Days = make([]domain.WorkoutDay, 0, len(r.Days))
	for _, dayReq := range r.Days {
		program.Days = append(program.Days, dayReq.toDomain())
	}
	return program
}

func (r WorkoutDayRequest) toDomain() domain.WorkoutDay {
	day := domain.WorkoutDay{
		ID:    r.ID,
		Name:  r.Name,
		Order: r.Order,
		Notes: r.Notes,
	}
	if day.ID == "" {
		day.ID = uuid.NewString()
	}
	day.Exercises = make([]domain.Exercise, 0, len(r.Exercises))
	for _, exReq := range r.Exercises {
		day.Exercises = append(day.Exercises, exReq.toDomain())
	}
	return day
}

func (r ExerciseRequest) toDomain() domain.Exercise {
	ex := domain.Exercise{
		ID:           r.ID,
		Name:         r.Name,
		TargetSets:   r.TargetSets,
		TargetReps:   r.TargetReps,
		TargetWeight: r.TargetWeight,
		WeightUnit:   domain.WeightUnit(r.WeightUnit),
		Notes:        r.Notes,
		Order:        r.Order,
		RestSeconds:  r.RestSeconds,
	}
	if ex.ID == "" {
		ex.ID = uuid.NewString()
	}
	if !ex.WeightUnit.IsValid() {
		ex.WeightUnit = domain.UnitPounds
	}
	return ex
}

func respondProgramError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, service.ErrProgramNotFound):
		abortWithError(c, http.StatusNotFound, err.Error())
	case errors.Is(err, service.ErrProgramAccessDenied):
		abortWithError(c, http.StatusForbidden, err.Error())
	case errors.Is(err, service.ErrProgramNameRequired):
		abortWithError(c, http.StatusBadRequest, err.Error())
	default:
		abortWithError(c, http.StatusInternalServerError, "An unexpected error occurred")
	}
}
