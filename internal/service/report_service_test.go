package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"liftledger/workout-tracker/internal/domain"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func completedLog(userID string, startedAt time.Time, exercise string, weight float64, reps int, duration int64, rating *int) domain.WorkoutLog {
	completedAt := startedAt.Add(time.Duration(duration) * time.Second)
	workoutLog := domain.NewBlankWorkoutLog(userID, "Day")
	workoutLog.StartedAt = startedAt
	workoutLog.CompletedAt = &completedAt
	workoutLog.Duration = duration
	workoutLog.Rating = rating
	workoutLog.Exercises = []domain.ExerciseLog{{
		ID:   workoutLog.ID + "-ex",
		Name: exercise,
		CompletedSets: []domain.SetLog{
			{ID: workoutLog.ID + "-s1", SetNumber: 1, ActualReps: reps, Weight: weight, IsCompleted: true},
		},
	}}
	return workoutLog
}

func TestReportService_ExerciseProgress(t *testing.T) {
	ctx := context.Background()
	logRepo := newWorkoutLogRepoMock()
	svc := NewReportService(logRepo)

	base := time.Date(2026, 1, 5, 10, 0, 0, 0, time.UTC)
	for i, weight := range []float64{100, 110, 120} {
		workoutLog := completedLog("user-1", base.AddDate(0, 0, 7*i), "Squat", weight, 5, 3600, nil)
		require.NoError(t, logRepo.Save(ctx, &workoutLog))
	}

	result := svc.ExerciseProgress(ctx, "user-1", "Squat", 0)
	assert.Equal(t, "Squat", result.ExerciseName)
	require.Len(t, result.DataPoints, 3)
	assert.InDelta(t, 20.0, result.ProgressPercentage(), 0.001)
}

func TestReportService_DegradesToEmptyOnStoreFailure(t *testing.T) {
	ctx := context.Background()
	logRepo := newWorkoutLogRepoMock()
	logRepo.failWith = errors.New("store is down")
	svc := NewReportService(logRepo)

	progress := svc.ExerciseProgress(ctx, "user-1", "Squat", 0)
	assert.Empty(t, progress.DataPoints)

	assert.Empty(t, svc.WeeklyVolume(ctx, "user-1"))
	assert.Empty(t, svc.WeekdayFrequency(ctx, "user-1"))
	assert.Empty(t, svc.LastPerformance(ctx, "user-1", "Squat"))

	summary := svc.Summary(ctx, "user-1", time.Now().AddDate(0, 0, -30), time.Now())
	assert.Equal(t, 0, summary.WorkoutCount)
	assert.Equal(t, 0.0, summary.TotalVolume)
}

func TestReportService_Summary(t *testing.T) {
	ctx := context.Background()
	logRepo := newWorkoutLogRepoMock()
	svc := NewReportService(logRepo)

	base := time.Date(2026, 2, 2, 10, 0, 0, 0, time.UTC)
	ratingA, ratingB := 3, 5
	inRange1 := completedLog("user-1", base, "Squat", 200, 10, 3600, &ratingA)                  // volume 2000
	inRange2 := completedLog("user-1", base.AddDate(0, 0, 2), "Squat", 100, 10, 1800, &ratingB) // volume 1000
	outOfRange := completedLog("user-1", base.AddDate(0, 0, 60), "Squat", 300, 10, 3600, nil)
	for _, l := range []*domain.WorkoutLog{&inRange1, &inRange2, &outOfRange} {
		require.NoError(t, logRepo.Save(ctx, l))
	}

	summary := svc.Summary(ctx, "user-1", base.AddDate(0, 0, -1), base.AddDate(0, 0, 7))
	assert.Equal(t, 2, summary.WorkoutCount)
	assert.Equal(t, 3000.0, summary.TotalVolume)
	assert.Equal(t, 2, summary.TotalSetsCompleted)
	assert.InDelta(t, 2700.0, summary.AvgDurationSeconds, 0.001)
	assert.Equal(t, 2000.0, summary.MaxWorkoutVolume)
	assert.InDelta(t, 4.0, summary.AvgRating, 0.001)
}

func TestReportService_WeeklyVolume(t *testing.T) {
	ctx := context.Background()
	logRepo := newWorkoutLogRepoMock()
	svc := NewReportService(logRepo)

	monday := time.Date(2026, 1, 5, 9, 0, 0, 0, time.UTC)
	one := completedLog("user-1", monday, "Squat", 100, 10, 3600, nil)
	two := completedLog("user-1", monday.AddDate(0, 0, 7), "Squat", 100, 10, 3600, nil)
	for _, l := range []*domain.WorkoutLog{&one, &two} {
		require.NoError(t, logRepo.Save(ctx, l))
	}

	volume := svc.WeeklyVolume(ctx, "user-1")
	require.Len(t, volume, 2)
	assert.Equal(t, 1000.0, volume[0].Volume)
	assert.True(t, volume[0].WeekStart.Before(volume[1].WeekStart))
}
