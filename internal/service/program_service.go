package service

import (
	"context"
	"errors"
	"sort"

	"liftledger/workout-tracker/internal/domain"
	"liftledger/workout-tracker/internal/repository"
)

// --- Error Definitions ---
var (
	ErrProgramNotFound     = errors.New("program not found")
	ErrProgramAccessDenied = errors.New("access denied to this program")
	ErrProgramNameRequired = errors.New("program name is required")
)

type ProgramService interface {
	SaveProgram(ctx context.Context, program *domain.Program) error
	GetProgram(ctx context.Context, userID, programID string) (*domain.Program, error)
	// ListPrograms returns the user's programs, most recently updated first.
	ListPrograms(ctx context.Context, userID string) ([]domain.Program, error)
	DeleteProgram(ctx context.Context, userID, programID string) error
	// CopyProgram deep-clones a program, regenerating every nested ID, and
	// assigns the clone to forUserID (sharing a template with another user
	// or duplicating one's own).
	CopyProgram(ctx context.Context, userID, programID, forUserID string) (*domain.Program, error)
}

// programService implements the ProgramService interface.
type programService struct {
	programRepo repository.ProgramRepository
}

// NewProgramService creates a new instance of programService.
func NewProgramService(programRepo repository.ProgramRepository) ProgramService {
	return &programService{programRepo: programRepo}
}

// SaveProgram writes the whole program document; the repository stamps
// updatedAt on every save.
func (s *programService) SaveProgram(ctx context.Context, program *domain.Program) error {
	if program.Name == "" {
		return ErrProgramNameRequired
	}
	return s.programRepo.Save(ctx, program)
}

// GetProgram fetches a program and verifies ownership.
func (s *programService) GetProgram(ctx context.Context, userID, programID string) (*domain.Program, error) {
	program, err := s.programRepo.GetByID(ctx, programID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrProgramNotFound
		}
		return nil, err
	}
	if program.UserID != userID {
		return nil, ErrProgramAccessDenied
	}
	return program, nil
}

// ListPrograms returns the user's programs sorted by updatedAt descending.
// Sorting is client-side, matching the store's no-composite-index rule.
func (s *programService) ListPrograms(ctx context.Context, userID string) ([]domain.Program, error) {
	programs, err := s.programRepo.GetByUserID(ctx, userID)
	if err != nil {
		return nil, err
	}
	sort.Slice(programs, func(i, j int) bool {
		return programs[i].UpdatedAt.After(programs[j].UpdatedAt)
	})
	return programs, nil
}

// DeleteProgram removes a program by id. Irreversible; existing logs keep
// their snapshotted program name.
func (s *programService) DeleteProgram(ctx context.Context, userID, programID string) error {
	err := s.programRepo.Delete(ctx, programID, userID)
	if errors.Is(err, repository.ErrNotFound) {
		return ErrProgramNotFound
	}
	return err
}

// CopyProgram clones an owned program for the target user and persists
// the clone.
func (s *programService) CopyProgram(ctx context.Context, userID, programID, forUserID string) (*domain.Program, error) {
	source, err := s.GetProgram(ctx, userID, programID)
	if err != nil {
		return nil, err
	}
	if forUserID == "" {
		forUserID = userID
	}
	copied := source.Copy(forUserID)
	if err := s.programRepo.Save(ctx, &copied); err != nil {
		return nil, err
	}
	return &copied, nil
}
