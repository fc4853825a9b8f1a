package service

import (
	"context"
	"sort"

	"liftledger/workout-tracker/internal/domain"
	"liftledger/workout-tracker/internal/repository"
)

type RecordService interface {
	// EvaluateSet decides whether (weight, reps) beats the user's current
	// best for the exercise and, when it does, appends a fresh record row.
	// The existing best is re-derived from the full history on every call;
	// old rows are never deleted or updated.
	EvaluateSet(ctx context.Context, userID, exerciseName string, weight float64, reps int, unit domain.WeightUnit, workoutLogID *string) (bool, error)

	// CurrentBest returns the winning record for one exercise, nil when
	// the user has no history for it.
	CurrentBest(ctx context.Context, userID, exerciseName string) (*domain.PersonalRecord, error)

	// ListRecords returns the user's whole record history, newest first.
	ListRecords(ctx context.Context, userID string) ([]domain.PersonalRecord, error)

	// BestPerExercise collapses the history into one winning record per
	// exercise name, sorted by exercise name.
	BestPerExercise(ctx context.Context, userID string) ([]domain.PersonalRecord, error)
}

// recordService implements the RecordService interface.
type recordService struct {
	recordRepo repository.PersonalRecordRepository
}

// NewRecordService creates a new instance of recordService.
func NewRecordService(recordRepo repository.PersonalRecordRepository) RecordService {
	return &recordService{recordRepo: recordRepo}
}

func (s *recordService) EvaluateSet(ctx context.Context, userID, exerciseName string, weight float64, reps int, unit domain.WeightUnit, workoutLogID *string) (bool, error) {
	existing, err := s.CurrentBest(ctx, userID, exerciseName)
	if err != nil {
		return false, err
	}

	if !domain.IsNewRecord(existing, weight, reps) {
		return false, nil
	}

	record := domain.NewPersonalRecord(userID, exerciseName, weight, reps, unit, workoutLogID)
	if err := s.recordRepo.Save(ctx, &record); err != nil {
		return false, err
	}
	return true, nil
}

func (s *recordService) CurrentBest(ctx context.Context, userID, exerciseName string) (*domain.PersonalRecord, error) {
	records, err := s.recordRepo.GetByUserAndExercise(ctx, userID, exerciseName)
	if err != nil {
		return nil, err
	}
	return domain.BestRecord(records), nil
}

func (s *recordService) ListRecords(ctx context.Context, userID string) ([]domain.PersonalRecord, error) {
	records, err := s.recordRepo.GetByUserID(ctx, userID)
	if err != nil {
		return nil, err
	}
	sort.Slice(records, func(i, j int) bool {
		return records[i].AchievedAt.After(records[j].AchievedAt)
	})
	return records, nil
}

func (s *recordService) BestPerExercise(ctx context.Context, userID string) ([]domain.PersonalRecord, error) {
	records, err := s.recordRepo.GetByUserID(ctx, userID)
	if err != nil {
		return nil, err
	}

	byExercise := make(map[string][]domain.PersonalRecord)
	for _, r := range records {
		byExercise[r.ExerciseName] = append(byExercise[r.ExerciseName], r)
	}

	best := make([]domain.PersonalRecord, 0, len(byExercise))
	for _, history := range byExercise {
		if winner := domain.BestRecord(history); winner != nil {
			best = append(best, *winner)
		}
	}
	sort.Slice(best, func(i, j int) bool {
		return best[i].ExerciseName < best[j].ExerciseName
	})
	return best, nil
}
