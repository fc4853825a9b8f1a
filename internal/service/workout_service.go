package service

import (
	"context"
	"errors"
	"sort"
	"strings"
	"sync"
	"time"

	"liftledger/workout-tracker/internal/domain"
	"liftledger/workout-tracker/internal/progress"
	"liftledger/workout-tracker/internal/repository"

	log "github.com/sirupsen/logrus"
)

// --- Error Definitions ---
var (
	ErrDayNotFound     = errors.New("workout day not found in program")
	ErrSessionNotFound = errors.New("no active session with this id")
	ErrLogNotFound     = errors.New("workout log not found")
	ErrLogAccessDenied = errors.New("access denied to this workout log")
	ErrLogCompleted    = errors.New("workout log is completed and can no longer be edited")
	ErrSetNotFound     = errors.New("set not found in active session")
	ErrInvalidRating   = errors.New("rating must be between 1 and 5")
	ErrInvalidRPE      = errors.New("rpe must be between 1 and 10")
)

// SetUpdate carries the editable fields of a set; nil fields are left
// untouched.
type SetUpdate struct {
	ActualReps  *int
	Weight      *float64
	IsCompleted *bool
	RPE         *int
}

// WorkoutService drives the workout session state machine:
// Idle -> Active (Start*), Active -> Completed (Complete), Active -> Idle
// (Cancel, no persisted trace). Active sessions live only in memory; the
// log document is written once, on completion, and is immutable through
// this service afterwards.
type WorkoutService interface {
	StartFromTemplate(ctx context.Context, userID, programID, dayID string) (*domain.WorkoutLog, error)
	StartBlank(ctx context.Context, userID, dayName string) (*domain.WorkoutLog, error)
	ActiveSession(userID, logID string) (*domain.WorkoutLog, error)
	UpdateSet(ctx context.Context, userID, logID, setID string, update SetUpdate) (*domain.WorkoutLog, error)
	Complete(ctx context.Context, userID, logID, notes string, rating *int) (*domain.WorkoutLog, error)
	Cancel(userID, logID string) error

	GetLog(ctx context.Context, userID, logID string) (*domain.WorkoutLog, error)
	// ListLogs returns the user's persisted logs, most recent first.
	ListLogs(ctx context.Context, userID string) ([]domain.WorkoutLog, error)
	DeleteLog(ctx context.Context, userID, logID string) error
}

// workoutService implements the WorkoutService interface.
type workoutService struct {
	programRepo   repository.ProgramRepository
	logRepo       repository.WorkoutLogRepository
	recordService RecordService

	mu       sync.Mutex
	sessions map[string]*domain.WorkoutLog // active (uncompleted) sessions by log ID
}

// NewWorkoutService creates a new instance of workoutService.
func NewWorkoutService(
	programRepo repository.ProgramRepository,
	logRepo repository.WorkoutLogRepository,
	recordService RecordService,
) WorkoutService {
	return &workoutService{
		programRepo:   programRepo,
		logRepo:       logRepo,
		recordService: recordService,
		sessions:      make(map[string]*domain.WorkoutLog),
	}
}

// StartFromTemplate instantiates a session skeleton from a program day:
// one exercise log per template exercise, targetSets sets each,
// pre-filled from the targets. The skeleton also carries each set's
// previous performance from the last log containing the exercise.
func (s *workoutService) StartFromTemplate(ctx context.Context, userID, programID, dayID string) (*domain.WorkoutLog, error) {
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
	day, ok := program.DayByID(dayID)
	if !ok {
		return nil, ErrDayNotFound
	}

	workoutLog := domain.NewWorkoutLogFromDay(day, program, userID)
	s.fillPreviousPerformance(ctx, &workoutLog)

	s.mu.Lock()
	s.sessions[workoutLog.ID] = &workoutLog
	s.mu.Unlock()

	snapshot := workoutLog
	return &snapshot, nil
}

// StartBlank starts an empty ad-hoc session outside any program.
func (s *workoutService) StartBlank(_ context.Context, userID, dayName string) (*domain.WorkoutLog, error) {
	if dayName == "" {
		dayName = "Workout"
	}
	workoutLog := domain.NewBlankWorkoutLog(userID, dayName)

	s.mu.Lock()
	s.sessions[workoutLog.ID] = &workoutLog
	s.mu.Unlock()

	snapshot := workoutLog
	return &snapshot, nil
}

// ActiveSession returns a copy of an in-flight session.
func (s *workoutService) ActiveSession(userID, logID string) (*domain.WorkoutLog, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	session, err := s.sessionLocked(userID, logID)
	if err != nil {
		return nil, err
	}
	snapshot := *session
	return &snapshot, nil
}

// UpdateSet edits one set of an active session. Sets can be edited and
// toggled in any order while the session is Active; a completed log is
// rejected with ErrLogCompleted.
func (s *workoutService) UpdateSet(ctx context.Context, userID, logID, setID string, update SetUpdate) (*domain.WorkoutLog, error) {
	if update.RPE != nil && (*update.RPE < 1 || *update.RPE > 10) {
		return nil, ErrInvalidRPE
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	session, err := s.sessionLocked(userID, logID)
	if err != nil {
		// Distinguish "never existed" from "already completed" for callers.
		if errors.Is(err, ErrSessionNotFound) {
			if persisted, getErr := s.logRepo.GetByID(ctx, logID); getErr == nil &&
				persisted.UserID == userID && persisted.IsCompleted() {
				return nil, ErrLogCompleted
			}
		}
		return nil, err
	}

	set := findSet(session, setID)
	if set == nil {
		return nil, ErrSetNotFound
	}

	if update.ActualReps != nil {
		set.ActualReps = *update.ActualReps
	}
	if update.Weight != nil {
		set.Weight = *update.Weight
	}
	if update.IsCompleted != nil {
		set.IsCompleted = *update.IsCompleted
	}
	if update.RPE != nil {
		rpe := *update.RPE
		set.RPE = &rpe
	}

	snapshot := *session
	return &snapshot, nil
}

// Complete closes an active session: stamps completedAt and duration,
// applies notes and rating, then evaluates every completed set for a
// personal record in set order within exercise order, marking winning
// sets, and finally persists the whole log. The session leaves the
// active map; the log is immutable from here on.
func (s *workoutService) Complete(ctx context.Context, userID, logID, notes string, rating *int) (*domain.WorkoutLog, error) {
	if rating != nil && (*rating < 1 || *rating > 5) {
		return nil, ErrInvalidRating
	}

	s.mu.Lock()
	session, err := s.sessionLocked(userID, logID)
	if err != nil {
		s.mu.Unlock()
		return nil, err
	}
	delete(s.sessions, logID)
	s.mu.Unlock()

	now := time.Now().UTC()
	session.CompletedAt = &now
	session.Duration = int64(now.Sub(session.StartedAt).Seconds())
	if notes != "" {
		session.Notes = notes
	}
	session.Rating = rating

	s.evaluateRecords(ctx, session)

	if err := s.logRepo.Save(ctx, session); err != nil {
		return nil, err
	}
	return session, nil
}

// Cancel discards an active session without leaving a persisted trace.
func (s *workoutService) Cancel(userID, logID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, err := s.sessionLocked(userID, logID); err != nil {
		return err
	}
	delete(s.sessions, logID)
	return nil
}

// GetLog fetches a persisted log and verifies ownership.
func (s *workoutService) GetLog(ctx context.Context, userID, logID string) (*domain.WorkoutLog, error) {
	workoutLog, err := s.logRepo.GetByID(ctx, logID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrLogNotFound
		}
		return nil, err
	}
	if workoutLog.UserID != userID {
		return nil, ErrLogAccessDenied
	}
	return workoutLog, nil
}

// ListLogs returns the user's logs sorted by startedAt descending,
// client-side.
func (s *workoutService) ListLogs(ctx context.Context, userID string) ([]domain.WorkoutLog, error) {
	logs, err := s.logRepo.GetByUserID(ctx, userID)
	if err != nil {
		return nil, err
	}
	sort.Slice(logs, func(i, j int) bool {
		return logs[i].StartedAt.After(logs[j].StartedAt)
	})
	return logs, nil
}

// DeleteLog removes a persisted log. Irreversible; record history rows
// referencing it stay.
func (s *workoutService) DeleteLog(ctx context.Context, userID, logID string) error {
	err := s.logRepo.Delete(ctx, logID, userID)
	if errors.Is(err, repository.ErrNotFound) {
		return ErrLogNotFound
	}
	return err
}

// sessionLocked finds an active session and checks ownership. Callers
// hold s.mu.
func (s *workoutService) sessionLocked(userID, logID string) (*domain.WorkoutLog, error) {
	session, ok := s.sessions[logID]
	if !ok {
		return nil, ErrSessionNotFound
	}
	if session.UserID != userID {
		return nil, ErrLogAccessDenied
	}
	return session, nil
}

// evaluateRecords runs PR evaluation over the completed sets and flags
// winners. Evaluation failures are logged and skipped: a store hiccup on
// one set must not lose the whole workout.
func (s *workoutService) evaluateRecords(ctx context.Context, session *domain.WorkoutLog) {
	logID := session.ID
	for i := range session.Exercises {
		exerciseLog := &session.Exercises[i]
		for j := range exerciseLog.CompletedSets {
			set := &exerciseLog.CompletedSets[j]
			if !set.IsCompleted || set.Weight <= 0 || set.ActualReps <= 0 {
				continue
			}
			isNew, err := s.recordService.EvaluateSet(ctx, session.UserID, exerciseLog.Name, set.Weight, set.ActualReps, set.WeightUnit, &logID)
			if err != nil {
				log.WithError(err).WithFields(log.Fields{
					"userId":   session.UserID,
					"exercise": exerciseLog.Name,
				}).Error("record evaluation failed for set")
				continue
			}
			if isNew {
				set.IsPR = true
			}
		}
	}
}

// fillPreviousPerformance annotates each set with the completed sets of
// the last log containing its exercise, e.g. "10×135, 8×145". Best
// effort: a read failure just leaves the hints empty.
func (s *workoutService) fillPreviousPerformance(ctx context.Context, workoutLog *domain.WorkoutLog) {
	history, err := s.logRepo.GetByUserID(ctx, workoutLog.UserID)
	if err != nil {
		log.WithError(err).WithField("userId", workoutLog.UserID).
			Warn("could not load history for previous-performance hints")
		return
	}
	for i := range workoutLog.Exercises {
		exerciseLog := &workoutLog.Exercises[i]
		performances := progress.LastPerformance(history, exerciseLog.Name)
		if len(performances) == 0 {
			continue
		}
		hint := strings.Join(performances, ", ")
		for j := range exerciseLog.CompletedSets {
			h := hint
			exerciseLog.CompletedSets[j].PreviousPerformance = &h
		}
	}
}

// findSet locates a set by ID across all exercises of a session.
func findSet(workoutLog *domain.WorkoutLog, setID string) *domain.SetLog {
	for i := range workoutLog.Exercises {
		sets := workoutLog.Exercises[i].CompletedSets
		for j := range sets {
			if sets[j].ID == setID {
				return &sets[j]
			}
		}
	}
	return nil
}
