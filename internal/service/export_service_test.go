package service

import (
	"context"
	"strings"
	"testing"
	"time"

	"liftledger/workout-tracker/internal/domain"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fileStorageMock struct {
	objects map[string][]byte
	types   map[string]string
}

func newFileStorageMock() *fileStorageMock {
	return &fileStorageMock{
		objects: make(map[string][]byte),
		types:   make(map[string]string),
	}
}

func (s *fileStorageMock) Upload(_ context.Context, objectKey, contentType string, data []byte) error {
	s.objects[objectKey] = data
	s.types[objectKey] = contentType
	return nil
}

func (s *fileStorageMock) GeneratePresignedDownloadURL(_ context.Context, objectKey string, _ time.Duration) (string, error) {
	return "https://storage.example.com/" + objectKey + "?signed", nil
}

func (s *fileStorageMock) DeleteObject(_ context.Context, objectKey string) error {
	delete(s.objects, objectKey)
	return nil
}

func TestExportService_ExportLogsCSV(t *testing.T) {
	ctx := context.Background()
	logRepo := newWorkoutLogRepoMock()
	recordRepo := newRecordRepoMock()
	fileStorage := newFileStorageMock()
	svc := NewExportService(logRepo, NewRecordService(recordRepo), fileStorage)

	workoutLog := domain.NewBlankWorkoutLog("user-1", "Push Day")
	workoutLog.Exercises = []domain.ExerciseLog{{
		Name: "Bench Press",
		CompletedSets: []domain.SetLog{
			{SetNumber: 1, ActualReps: 10, Weight: 135, IsCompleted: true},
		},
	}}
	require.NoError(t, logRepo.Save(ctx, &workoutLog))

	result, err := svc.ExportLogsCSV(ctx, "user-1")
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(result.ObjectKey, "exports/user-1/"))
	assert.Equal(t, "text/csv", result.ContentType)
	assert.Contains(t, result.DownloadURL, result.ObjectKey)

	data := fileStorage.objects[result.ObjectKey]
	require.NotEmpty(t, data)
	assert.Contains(t, string(data), "Bench Press")
}

func TestExportService_ExportRecordsCSV(t *testing.T) {
	ctx := context.Background()
	logRepo := newWorkoutLogRepoMock()
	recordRepo := newRecordRepoMock()
	fileStorage := newFileStorageMock()
	svc := NewExportService(logRepo, NewRecordService(recordRepo), fileStorage)

	record := domain.NewPersonalRecord("user-1", "Squat", 245, 5, domain.UnitPounds, nil)
	require.NoError(t, recordRepo.Save(ctx, &record))

	result, err := svc.ExportRecordsCSV(ctx, "user-1")
	require.NoError(t, err)
	assert.Contains(t, string(fileStorage.objects[result.ObjectKey]), "Squat")
}

func TestExportService_ExportSummaryPDF(t *testing.T) {
	ctx := context.Background()
	logRepo := newWorkoutLogRepoMock()
	recordRepo := newRecordRepoMock()
	fileStorage := newFileStorageMock()
	svc := NewExportService(logRepo, NewRecordService(recordRepo), fileStorage)

	workoutLog := domain.NewBlankWorkoutLog("user-1", "Leg Day")
	require.NoError(t, logRepo.Save(ctx, &workoutLog))

	from := time.Now().UTC().AddDate(0, 0, -7)
	to := time.Now().UTC().Add(time.Hour)
	result, err := svc.ExportSummaryPDF(ctx, "user-1", from, to)
	require.NoError(t, err)
	assert.Equal(t, "application/pdf", result.ContentType)

	data := fileStorage.objects[result.ObjectKey]
	require.NotEmpty(t, data)
	assert.True(t, strings.HasPrefix(string(data[:5]), "%PDF-"), "output is a PDF document")
}
