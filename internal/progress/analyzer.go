// Package progress derives chart and report data from workout log
// snapshots. Every function is a pure transformation of its input: the
// same snapshot always yields the same result regardless of input
// ordering, so callers can re-run them wholesale on each live snapshot.
package progress

import (
	"fmt"
	"sort"
	"time"

	"liftledger/workout-tracker/internal/domain"
)

// Weekday frequency is a display widget; counts above this ceiling all
// render the same.
const maxWeekdayCount = 5

// BuildProgress builds the progress time series for one exercise: one
// data point per log that contains the exercise with a best set heavier
// than 0, ordered by ascending start time, truncated to the most recent
// limit points. A limit <= 0 keeps everything.
func BuildProgress(logs []domain.WorkoutLog, exerciseName string, limit int) []domain.ProgressDataPoint {
	ordered := sortedByStart(logs)

	points := make([]domain.ProgressDataPoint, 0, len(ordered))
	for _, workoutLog := range ordered {
		exerciseLog, ok := workoutLog.ExerciseLogByName(exerciseName)
		if !ok {
			continue
		}
		bestSet, ok := exerciseLog.BestSet()
		if !ok || bestSet.Weight <= 0 {
			continue
		}
		points = append(points, domain.ProgressDataPoint{
			Date:   workoutLog.StartedAt,
			Weight: bestSet.Weight,
			Reps:   bestSet.ActualReps,
			Volume: exerciseLog.TotalVolume(),
		})
	}

	if limit > 0 && len(points) > limit {
		points = points[len(points)-limit:]
	}
	return points
}

// BuildExerciseProgress wraps BuildProgress in the named series type.
func BuildExerciseProgress(logs []domain.WorkoutLog, exerciseName string, limit int) domain.ExerciseProgress {
	return domain.ExerciseProgress{
		ExerciseName: exerciseName,
		DataPoints:   BuildProgress(logs, exerciseName, limit),
	}
}

// LastPerformance returns the formatted "{reps}×{weight}" strings for the
// completed sets of the most recent log containing the exercise, in
// original set order. Returns nil when no log contains the exercise.
func LastPerformance(logs []domain.WorkoutLog, exerciseName string) []string {
	var last *domain.WorkoutLog
	for i := range logs {
		workoutLog := &logs[i]
		if _, ok := workoutLog.ExerciseLogByName(exerciseName); !ok {
			continue
		}
		if last == nil || workoutLog.StartedAt.After(last.StartedAt) {
			last = workoutLog
		}
	}
	if last == nil {
		return nil
	}

	exerciseLog, _ := last.ExerciseLogByName(exerciseName)
	performances := make([]string, 0, len(exerciseLog.CompletedSets))
	for _, set := range exerciseLog.CompletedSets {
		if !set.IsCompleted {
			continue
		}
		performances = append(performances, fmt.Sprintf("%d×%d", set.ActualReps, int(set.Weight)))
	}
	return performances
}

// WeeklyVolumePoint is the summed volume of one calendar week.
type WeeklyVolumePoint struct {
	WeekStart time.Time `json:"weekStart"`
	Volume    float64   `json:"volume"`
	Workouts  int       `json:"workouts"`
}

// WeeklyVolume buckets logs into calendar weeks (Monday start, UTC) and
// sums each week's total volume, ascending by week start.
func WeeklyVolume(logs []domain.WorkoutLog) []WeeklyVolumePoint {
	buckets := make(map[time.Time]*WeeklyVolumePoint)
	for _, workoutLog := range logs {
		week := StartOfWeek(workoutLog.StartedAt)
		point, ok := buckets[week]
		if !ok {
			point = &WeeklyVolumePoint{WeekStart: week}
			buckets[week] = point
		}
		point.Volume += workoutLog.TotalVolume()
		point.Workouts++
	}

	points := make([]WeeklyVolumePoint, 0, len(buckets))
	for _, point := range buckets {
		points = append(points, *point)
	}
	sort.Slice(points, func(i, j int) bool {
		return points[i].WeekStart.Before(points[j].WeekStart)
	})
	return points
}

// WeekdayFrequency counts the logs per weekday within the calendar week
// containing now, capped at a small display ceiling per day.
func WeekdayFrequency(logs []domain.WorkoutLog, now time.Time) map[time.Weekday]int {
	weekStart := StartOfWeek(now)
	weekEnd := weekStart.AddDate(0, 0, 7)

	frequency := make(map[time.Weekday]int)
	for _, workoutLog := range logs {
		started := workoutLog.StartedAt.UTC()
		if started.Before(weekStart) || !started.Before(weekEnd) {
			continue
		}
		day := started.Weekday()
		if frequency[day] < maxWeekdayCount {
			frequency[day]++
		}
	}
	return frequency
}

// TotalVolume sums the volume over a log slice.
func TotalVolume(logs []domain.WorkoutLog) float64 {
	total := 0.0
	for _, workoutLog := range logs {
		total += workoutLog.TotalVolume()
	}
	return total
}

// WorkoutCount is the number of logs in the slice. Trivial, but it keeps
// the report layer speaking in aggregate names.
func WorkoutCount(logs []domain.WorkoutLog) int {
	return len(logs)
}

// StartOfWeek truncates t to the Monday 00:00 UTC of its calendar week.
func StartOfWeek(t time.Time) time.Time {
	t = t.UTC()
	day := t.Truncate(24 * time.Hour)
	offset := (int(day.Weekday()) + 6) % 7 // Monday == 0
	return day.AddDate(0, 0, -offset)
}

// sortedByStart returns a copy of logs ordered by ascending start time,
// with the ID as tie-break so equal timestamps still order
// deterministically regardless of input order.
func sortedByStart(logs []domain.WorkoutLog) []domain.WorkoutLog {
	ordered := make([]domain.WorkoutLog, len(logs))
	copy(ordered, logs)
	sort.Slice(ordered, func(i, j int) bool {
		if ordered[i].StartedAt.Equal(ordered[j].StartedAt) {
			return ordered[i].ID < ordered[j].ID
		}
		return ordered[i].StartedAt.Before(ordered[j].StartedAt)
	})
	return ordered
}
