package service

import (
	"context"
	"time"

	"liftledger/workout-tracker/internal/domain"
	"liftledger/workout-tracker/internal/progress"
	"liftledger/workout-tracker/internal/repository"

	"github.com/montanaflynn/stats"
	log "github.com/sirupsen/logrus"
)

// Default number of points on a progress chart.
const DefaultProgressLimit = 30

// SummaryReport aggregates a date range of workout logs.
type SummaryReport struct {
	From               time.Time `json:"from"`
	To                 time.Time `json:"to"`
	WorkoutCount       int       `json:"workoutCount"`
	TotalVolume        float64   `json:"totalVolume"`
	TotalSetsCompleted int       `json:"totalSetsCompleted"`
	AvgDurationSeconds float64   `json:"avgDurationSeconds"`
	MaxWorkoutVolume   float64   `json:"maxWorkoutVolume"`
	AvgRating          float64   `json:"avgRating"`
}

// ReportService derives read-only aggregates from the user's log history.
// Store read failures degrade to empty results plus a logged error; they
// never surface as request-crashing faults.
type ReportService interface {
	ExerciseProgress(ctx context.Context, userID, exerciseName string, limit int) domain.ExerciseProgress
	WeeklyVolume(ctx context.Context, userID string) []progress.WeeklyVolumePoint
	WeekdayFrequency(ctx context.Context, userID string) map[time.Weekday]int
	LastPerformance(ctx context.Context, userID, exerciseName string) []string
	Summary(ctx context.Context, userID string, from, to time.Time) SummaryReport
}

// reportService implements the ReportService interface.
type reportService struct {
	logRepo repository.WorkoutLogRepository
}

// NewReportService creates a new instance of reportService.
func NewReportService(logRepo repository.WorkoutLogRepository) ReportService {
	return &reportService{logRepo: logRepo}
}

// fetchLogs reads the user's whole log history, degrading to an empty
// slice on failure.
func (s *reportService) fetchLogs(ctx context.Context, userID string) []domain.WorkoutLog {
	logs, err := s.logRepo.GetByUserID(ctx, userID)
	if err != nil {
		log.WithError(err).WithField("userId", userID).
			Error("report read failed, returning empty result")
		return nil
	}
	return logs
}

func (s *reportService) ExerciseProgress(ctx context.Context, userID, exerciseName string, limit int) domain.ExerciseProgress {
	if limit <= 0 {
		limit = DefaultProgressLimit
	}
	return progress.BuildExerciseProgress(s.fetchLogs(ctx, userID), exerciseName, limit)
}

func (s *reportService) WeeklyVolume(ctx context.Context, userID string) []progress.WeeklyVolumePoint {
	return progress.WeeklyVolume(s.fetchLogs(ctx, userID))
}

func (s *reportService) WeekdayFrequency(ctx context.Context, userID string) map[time.Weekday]int {
	return progress.WeekdayFrequency(s.fetchLogs(ctx, userID), time.Now().UTC())
}

func (s *reportService) LastPerformance(ctx context.Context, userID, exerciseName string) []string {
	return progress.LastPerformance(s.fetchLogs(ctx, userID), exerciseName)
}

// Summary aggregates the logs whose startedAt falls within [from, to].
func (s *reportService) Summary(ctx context.Context, userID string, from, to time.Time) SummaryReport {
	logs, err := s.logRepo.GetByUserIDInRange(ctx, userID, from, to)
	if err != nil {
		log.WithError(err).WithField("userId", userID).
			Error("summary read failed, returning empty result")
		logs = nil
	}

	report := SummaryReport{
		From:         from,
		To:           to,
		WorkoutCount: progress.WorkoutCount(logs),
		TotalVolume:  progress.TotalVolume(logs),
	}

	durations := make([]float64, 0, len(logs))
	volumes := make([]float64, 0, len(logs))
	ratings := make([]float64, 0, len(logs))
	for _, workoutLog := range logs {
		report.TotalSetsCompleted += workoutLog.TotalSetsCompleted()
		durations = append(durations, float64(workoutLog.Duration))
		volumes = append(volumes, workoutLog.TotalVolume())
		if workoutLog.Rating != nil {
			ratings = append(ratings, float64(*workoutLog.Rating))
		}
	}

	// stats errors only on empty input; zero is the right value there.
	report.AvgDurationSeconds, _ = stats.Mean(durations)
	report.MaxWorkoutVolume, _ = stats.Max(volumes)
	report.AvgRating, _ = stats.Mean(ratings)

	return report
}
