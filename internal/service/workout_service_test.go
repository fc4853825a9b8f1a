package service

import (
	"context"
	"testing"
	"time"

	"liftledger/workout-tracker/internal/domain"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newWorkoutServiceForTest(t *testing.T) (WorkoutService, *programRepoMock, *workoutLogRepoMock, *recordRepoMock) {
	t.Helper()
	programRepo := newProgramRepoMock()
	logRepo := newWorkoutLogRepoMock()
	recordRepo := newRecordRepoMock()
	recordService := NewRecordService(recordRepo)
	return NewWorkoutService(programRepo, logRepo, recordService), programRepo, logRepo, recordRepo
}

func seedProgram(t *testing.T, programRepo *programRepoMock, userID string) (domain.Program, domain.WorkoutDay) {
	t.Helper()
	program := domain.NewProgram(userID, "Strength Building")
	day := domain.NewWorkoutDay("Push Day")
	bench := domain.NewExercise("Bench Press")
	bench.TargetWeight = 135
	day.Exercises = []domain.Exercise{bench}
	program.Days = []domain.WorkoutDay{day}
	require.NoError(t, programRepo.Save(context.Background(), &program))
	return program, day
}

func TestWorkoutService_StartFromTemplate(t *testing.T) {
	ctx := context.Background()
	svc, programRepo, logRepo, _ := newWorkoutServiceForTest(t)
	program, day := seedProgram(t, programRepo, "user-1")

	session, err := svc.StartFromTemplate(ctx, "user-1", program.ID, day.ID)
	require.NoError(t, err)
	require.Len(t, session.Exercises, 1)
	assert.Len(t, session.Exercises[0].CompletedSets, 3)
	assert.False(t, session.IsCompleted())
	assert.Empty(t, logRepo.logs, "nothing persists while the session is active")

	// The session is retrievable while active.
	active, err := svc.ActiveSession("user-1", session.ID)
	require.NoError(t, err)
	assert.Equal(t, session.ID, active.ID)

	// Missing day and foreign program are rejected.
	_, err = svc.StartFromTemplate(ctx, "user-1", program.ID, "nope")
	assert.ErrorIs(t, err, ErrDayNotFound)
	_, err = svc.StartFromTemplate(ctx, "user-2", program.ID, day.ID)
	assert.ErrorIs(t, err, ErrProgramAccessDenied)
}

func TestWorkoutService_UpdateSet(t *testing.T) {
	ctx := context.Background()
	svc, programRepo, _, _ := newWorkoutServiceForTest(t)
	program, day := seedProgram(t, programRepo, "user-1")

	session, err := svc.StartFromTemplate(ctx, "user-1", program.ID, day.ID)
	require.NoError(t, err)
	setID := session.Exercises[0].CompletedSets[1].ID

	reps := 8
	weight := 145.0
	completed := true
	updated, err := svc.UpdateSet(ctx, "user-1", session.ID, setID, SetUpdate{
		ActualReps: &reps, Weight: &weight, IsCompleted: &completed,
	})
	require.NoError(t, err)

	set := updated.Exercises[0].CompletedSets[1]
	assert.Equal(t, 8, set.ActualReps)
	assert.Equal(t, 145.0, set.Weight)
	assert.True(t, set.IsCompleted)

	// Untouched fields keep their pre-filled values.
	assert.Equal(t, 135.0, updated.Exercises[0].CompletedSets[0].Weight)

	_, err = svc.UpdateSet(ctx, "user-1", session.ID, "nope", SetUpdate{ActualReps: &reps})
	assert.ErrorIs(t, err, ErrSetNotFound)

	badRPE := 11
	_, err = svc.UpdateSet(ctx, "user-1", session.ID, setID, SetUpdate{RPE: &badRPE})
	assert.ErrorIs(t, err, ErrInvalidRPE)

	_, err = svc.UpdateSet(ctx, "user-2", session.ID, setID, SetUpdate{ActualReps: &reps})
	assert.ErrorIs(t, err, ErrLogAccessDenied)
}

func TestWorkoutService_Complete(t *testing.T) {
	ctx := context.Background()
	svc, programRepo, logRepo, recordRepo := newWorkoutServiceForTest(t)
	program, day := seedProgram(t, programRepo, "user-1")

	session, err := svc.StartFromTemplate(ctx, "user-1", program.ID, day.ID)
	require.NoError(t, err)

	// Complete the first two sets; the heavier one should become a PR.
	completed := true
	weight := 155.0
	_, err = svc.UpdateSet(ctx, "user-1", session.ID, session.Exercises[0].CompletedSets[0].ID, SetUpdate{IsCompleted: &completed})
	require.NoError(t, err)
	_, err = svc.UpdateSet(ctx, "user-1", session.ID, session.Exercises[0].CompletedSets[1].ID, SetUpdate{Weight: &weight, IsCompleted: &completed})
	require.NoError(t, err)

	rating := 4
	finished, err := svc.Complete(ctx, "user-1", session.ID, "solid session", &rating)
	require.NoError(t, err)
	require.NotNil(t, finished.CompletedAt)
	assert.True(t, finished.IsCompleted())
	assert.Equal(t, "solid session", finished.Notes)
	require.NotNil(t, finished.Rating)
	assert.Equal(t, 4, *finished.Rating)

	// Both completed sets beat the then-current best in evaluation order.
	assert.True(t, finished.Exercises[0].CompletedSets[0].IsPR)
	assert.True(t, finished.Exercises[0].CompletedSets[1].IsPR)
	assert.False(t, finished.Exercises[0].CompletedSets[2].IsPR, "uncompleted sets are not evaluated")
	assert.Len(t, recordRepo.records, 2)

	// The log is persisted exactly as returned.
	persisted, err := svc.GetLog(ctx, "user-1", session.ID)
	require.NoError(t, err)
	assert.True(t, persisted.IsCompleted())
	assert.Len(t, logRepo.logs, 1)

	// The session left the active map; completed logs reject edits.
	_, err = svc.ActiveSession("user-1", session.ID)
	assert.ErrorIs(t, err, ErrSessionNotFound)
	reps := 12
	_, err = svc.UpdateSet(ctx, "user-1", session.ID, finished.Exercises[0].CompletedSets[0].ID, SetUpdate{ActualReps: &reps})
	assert.ErrorIs(t, err, ErrLogCompleted)
}

func TestWorkoutService_Complete_InvalidRating(t *testing.T) {
	ctx := context.Background()
	svc, _, _, _ := newWorkoutServiceForTest(t)

	session, err := svc.StartBlank(ctx, "user-1", "Quick Session")
	require.NoError(t, err)

	rating := 6
	_, err = svc.Complete(ctx, "user-1", session.ID, "", &rating)
	assert.ErrorIs(t, err, ErrInvalidRating)

	// The failed completion leaves the session active.
	_, err = svc.ActiveSession("user-1", session.ID)
	assert.NoError(t, err)
}

func TestWorkoutService_Cancel(t *testing.T) {
	ctx := context.Background()
	svc, _, logRepo, _ := newWorkoutServiceForTest(t)

	session, err := svc.StartBlank(ctx, "user-1", "Quick Session")
	require.NoError(t, err)

	require.NoError(t, svc.Cancel("user-1", session.ID))
	assert.Empty(t, logRepo.logs, "a cancelled session leaves no trace")

	_, err = svc.ActiveSession("user-1", session.ID)
	assert.ErrorIs(t, err, ErrSessionNotFound)
	assert.ErrorIs(t, svc.Cancel("user-1", session.ID), ErrSessionNotFound)
}

func TestWorkoutService_PreviousPerformanceHints(t *testing.T) {
	ctx := context.Background()
	svc, programRepo, logRepo, _ := newWorkoutServiceForTest(t)
	program, day := seedProgram(t, programRepo, "user-1")

	// One already-persisted session for the same exercise.
	older := domain.NewWorkoutLogFromDay(day, &program, "user-1")
	older.Exercises[0].CompletedSets[0].ActualReps = 10
	older.Exercises[0].CompletedSets[0].Weight = 125
	older.Exercises[0].CompletedSets[0].IsCompleted = true
	require.NoError(t, logRepo.Save(ctx, &older))

	session, err := svc.StartFromTemplate(ctx, "user-1", program.ID, day.ID)
	require.NoError(t, err)

	hint := session.Exercises[0].CompletedSets[0].PreviousPerformance
	require.NotNil(t, hint)
	assert.Equal(t, "10×125", *hint)
}

func TestWorkoutService_ListAndDeleteLogs(t *testing.T) {
	ctx := context.Background()
	svc, _, logRepo, _ := newWorkoutServiceForTest(t)

	first := domain.NewBlankWorkoutLog("user-1", "A")
	second := domain.NewBlankWorkoutLog("user-1", "B")
	second.StartedAt = first.StartedAt.Add(time.Hour)
	require.NoError(t, logRepo.Save(ctx, &first))
	require.NoError(t, logRepo.Save(ctx, &second))

	logs, err := svc.ListLogs(ctx, "user-1")
	require.NoError(t, err)
	require.Len(t, logs, 2)
	assert.Equal(t, "B", logs[0].DayName, "newest first")

	require.NoError(t, svc.DeleteLog(ctx, "user-1", first.ID))
	assert.ErrorIs(t, svc.DeleteLog(ctx, "user-1", first.ID), ErrLogNotFound)
	assert.ErrorIs(t, svc.DeleteLog(ctx, "user-2", second.ID), ErrLogNotFound)
}
