package progress

import (
	"testing"
	"time"

	"liftledger/workout-tracker/internal/domain"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func logWithBestSet(id string, startedAt time.Time, exercise string, weight float64, reps int) domain.WorkoutLog {
	return domain.WorkoutLog{
		ID:        id,
		UserID:    "user-1",
		DayName:   "Day",
		StartedAt: startedAt,
		Exercises: []domain.ExerciseLog{{
			ID:   id + "-ex",
			Name: exercise,
			CompletedSets: []domain.SetLog{
				{ID: id + "-s1", SetNumber: 1, ActualReps: reps, Weight: weight, IsCompleted: true},
			},
		}},
	}
}

func TestBuildProgress(t *testing.T) {
	base := time.Date(2026, 1, 5, 10, 0, 0, 0, time.UTC)
	logs := []domain.WorkoutLog{
		logWithBestSet("c", base.AddDate(0, 0, 14), "Squat", 245, 5),
		logWithBestSet("a", base, "Squat", 225, 5),
		logWithBestSet("b", base.AddDate(0, 0, 7), "Squat", 235, 5),
		logWithBestSet("d", base.AddDate(0, 0, 3), "Bench Press", 135, 10),
	}

	points := BuildProgress(logs, "Squat", 0)
	require.Len(t, points, 3)
	assert.Equal(t, 225.0, points[0].Weight)
	assert.Equal(t, 235.0, points[1].Weight)
	assert.Equal(t, 245.0, points[2].Weight)

	// Shuffled input yields the identical series.
	shuffled := []domain.WorkoutLog{logs[3], logs[1], logs[0], logs[2]}
	assert.Equal(t, points, BuildProgress(shuffled, "Squat", 0))

	// The limit keeps the newest points.
	limited := BuildProgress(logs, "Squat", 2)
	require.Len(t, limited, 2)
	assert.Equal(t, 235.0, limited[0].Weight)
	assert.Equal(t, 245.0, limited[1].Weight)
}

func TestBuildProgress_SkipsNonQualifyingLogs(t *testing.T) {
	base := time.Date(2026, 1, 5, 10, 0, 0, 0, time.UTC)
	logs := []domain.WorkoutLog{
		logWithBestSet("a", base, "Squat", 0, 10), // bodyweight only, no point
		logWithBestSet("b", base.AddDate(0, 0, 1), "Deadlift", 315, 3),
		logWithBestSet("c", base.AddDate(0, 0, 2), "Squat", 225, 5),
	}

	points := BuildProgress(logs, "Squat", 0)
	require.Len(t, points, 1)
	assert.Equal(t, 225.0, points[0].Weight)

	assert.Empty(t, BuildProgress(logs, "Rowing", 0))
	assert.Empty(t, BuildProgress(nil, "Squat", 0))
}

func TestBuildProgress_EqualTimestampsOrderDeterministically(t *testing.T) {
	at := time.Date(2026, 2, 1, 8, 0, 0, 0, time.UTC)
	first := logWithBestSet("aaa", at, "Squat", 200, 5)
	second := logWithBestSet("bbb", at, "Squat", 210, 5)

	forward := BuildProgress([]domain.WorkoutLog{first, second}, "Squat", 0)
	backward := BuildProgress([]domain.WorkoutLog{second, first}, "Squat", 0)
	assert.Equal(t, forward, backward, "id breaks the timestamp tie")
	assert.Equal(t, 200.0, forward[0].Weight)
}

func TestLastPerformance(t *testing.T) {
	base := time.Date(2026, 1, 5, 10, 0, 0, 0, time.UTC)

	older := logWithBestSet("a", base, "Bench Press", 135, 10)
	newest := domain.WorkoutLog{
		ID:        "b",
		StartedAt: base.AddDate(0, 0, 7),
		Exercises: []domain.ExerciseLog{{
			Name: "Bench Press",
			CompletedSets: []domain.SetLog{
				{SetNumber: 1, ActualReps: 10, Weight: 135, IsCompleted: true},
				{SetNumber: 2, ActualReps: 8, Weight: 145, IsCompleted: true},
				{SetNumber: 3, ActualReps: 6, Weight: 155, IsCompleted: false},
			},
		}},
	}

	performances := LastPerformance([]domain.WorkoutLog{older, newest}, "Bench Press")
	assert.Equal(t, []string{"10×135", "8×145"}, performances, "only completed sets of the latest log count")

	assert.Nil(t, LastPerformance([]domain.WorkoutLog{older, newest}, "Squat"))
	assert.Nil(t, LastPerformance(nil, "Bench Press"))
}

func TestWeeklyVolume(t *testing.T) {
	// Mon Jan 5 2026 and Sun Jan 11 land in the same week; Mon Jan 12
	// starts the next one.
	logs := []domain.WorkoutLog{
		logWithBestSet("a", time.Date(2026, 1, 5, 9, 0, 0, 0, time.UTC), "Squat", 100, 10),
		logWithBestSet("b", time.Date(2026, 1, 11, 9, 0, 0, 0, time.UTC), "Squat", 100, 5),
		logWithBestSet("c", time.Date(2026, 1, 12, 9, 0, 0, 0, time.UTC), "Squat", 200, 10),
	}

	points := WeeklyVolume(logs)
	require.Len(t, points, 2)

	assert.Equal(t, time.Date(2026, 1, 5, 0, 0, 0, 0, time.UTC), points[0].WeekStart)
	assert.Equal(t, 1500.0, points[0].Volume)
	assert.Equal(t, 2, points[0].Workouts)

	assert.Equal(t, time.Date(2026, 1, 12, 0, 0, 0, 0, time.UTC), points[1].WeekStart)
	assert.Equal(t, 2000.0, points[1].Volume)
	assert.Equal(t, 1, points[1].Workouts)
}

func TestWeekdayFrequency(t *testing.T) {
	now := time.Date(2026, 1, 7, 15, 0, 0, 0, time.UTC) // Wednesday

	logs := []domain.WorkoutLog{
		logWithBestSet("a", time.Date(2026, 1, 5, 9, 0, 0, 0, time.UTC), "Squat", 100, 5),   // Monday
		logWithBestSet("b", time.Date(2026, 1, 5, 18, 0, 0, 0, time.UTC), "Squat", 100, 5),  // Monday again
		logWithBestSet("c", time.Date(2026, 1, 7, 9, 0, 0, 0, time.UTC), "Squat", 100, 5),   // Wednesday
		logWithBestSet("d", time.Date(2025, 12, 29, 9, 0, 0, 0, time.UTC), "Squat", 100, 5), // previous week
	}

	frequency := WeekdayFrequency(logs, now)
	assert.Equal(t, 2, frequency[time.Monday])
	assert.Equal(t, 1, frequency[time.Wednesday])
	assert.NotContains(t, frequency, time.Tuesday)
}

func TestWeekdayFrequency_CapsPerDay(t *testing.T) {
	now := time.Date(2026, 1, 7, 15, 0, 0, 0, time.UTC)
	monday := time.Date(2026, 1, 5, 6, 0, 0, 0, time.UTC)

	var logs []domain.WorkoutLog
	for i := 0; i < 8; i++ {
		logs = append(logs, logWithBestSet(string(rune('a'+i)), monday.Add(time.Duration(i)*time.Hour), "Squat", 100, 5))
	}

	frequency := WeekdayFrequency(logs, now)
	assert.Equal(t, 5, frequency[time.Monday])
}

func TestStartOfWeek(t *testing.T) {
	monday := time.Date(2026, 1, 5, 0, 0, 0, 0, time.UTC)

	assert.Equal(t, monday, StartOfWeek(time.Date(2026, 1, 5, 0, 0, 0, 0, time.UTC)), "a Monday maps to itself")
	assert.Equal(t, monday, StartOfWeek(time.Date(2026, 1, 8, 23, 59, 0, 0, time.UTC)))
	assert.Equal(t, monday, StartOfWeek(time.Date(2026, 1, 11, 12, 0, 0, 0, time.UTC)), "Sunday belongs to the preceding Monday")
}
