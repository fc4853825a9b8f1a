package service

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"path"
	"sort"
	"time"

	"liftledger/workout-tracker/internal/export"
	"liftledger/workout-tracker/internal/progress"
	"liftledger/workout-tracker/internal/repository"
	"liftledger/workout-tracker/internal/storage"

	"github.com/google/uuid"
)

var ErrExportFailed = errors.New("failed to generate export")

// ExportResult points the caller at a generated document.
type ExportResult struct {
	ObjectKey   string `json:"objectKey"`
	ContentType string `json:"contentType"`
	DownloadURL string `json:"downloadUrl"`
}

// ExportService generates CSV/PDF documents from a user's data, stores
// them in object storage, and returns a temporary download URL.
type ExportService interface {
	ExportLogsCSV(ctx context.Context, userID string) (*ExportResult, error)
	ExportRecordsCSV(ctx context.Context, userID string) (*ExportResult, error)
	ExportSummaryPDF(ctx context.Context, userID string, from, to time.Time) (*ExportResult, error)
}

// exportService implements the ExportService interface.
type exportService struct {
	logRepo       repository.WorkoutLogRepository
	recordService RecordService
	fileStorage   storage.FileStorage
}

// NewExportService creates a new instance of exportService.
func NewExportService(
	logRepo repository.WorkoutLogRepository,
	recordService RecordService,
	fileStorage storage.FileStorage,
) ExportService {
	return &exportService{
		logRepo:       logRepo,
		recordService: recordService,
		fileStorage:   fileStorage,
	}
}

func (s *exportService) ExportLogsCSV(ctx context.Context, userID string) (*ExportResult, error) {
	logs, err := s.logRepo.GetByUserID(ctx, userID)
	if err != nil {
		return nil, err
	}
	sort.Slice(logs, func(i, j int) bool {
		return logs[i].StartedAt.Before(logs[j].StartedAt)
	})

	var buf bytes.Buffer
	if err := export.WriteLogsCSV(&buf, logs); err != nil {
		return nil, ErrExportFailed
	}
	return s.store(ctx, userID, "workout_log_export", "text/csv", buf.Bytes())
}

func (s *exportService) ExportRecordsCSV(ctx context.Context, userID string) (*ExportResult, error) {
	records, err := s.recordService.BestPerExercise(ctx, userID)
	if err != nil {
		return nil, err
	}

	var buf bytes.Buffer
	if err := export.WriteRecordsCSV(&buf, records); err != nil {
		return nil, ErrExportFailed
	}
	return s.store(ctx, userID, "personal_records_export", "text/csv", buf.Bytes())
}

func (s *exportService) ExportSummaryPDF(ctx context.Context, userID string, from, to time.Time) (*ExportResult, error) {
	logs, err := s.logRepo.GetByUserIDInRange(ctx, userID, from, to)
	if err != nil {
		return nil, err
	}
	sort.Slice(logs, func(i, j int) bool {
		return logs[i].StartedAt.After(logs[j].StartedAt)
	})

	records, err := s.recordService.BestPerExercise(ctx, userID)
	if err != nil {
		return nil, err
	}

	var buf bytes.Buffer
	if err := export.WriteSummaryPDF(&buf, logs, records, progress.TotalVolume(logs), progress.WorkoutCount(logs)); err != nil {
		return nil, ErrExportFailed
	}
	return s.store(ctx, userID, "workout_summary", "application/pdf", buf.Bytes())
}

// store uploads the document under a unique per-user key and presigns a
// download URL for it.
func (s *exportService) store(ctx context.Context, userID, name, contentType string, data []byte) (*ExportResult, error) {
	ext := "csv"
	if contentType == "application/pdf" {
		ext = "pdf"
	}
	objectKey := path.Join("exports", userID, fmt.Sprintf("%s_%s.%s", name, uuid.NewString(), ext))

	if err := s.fileStorage.Upload(ctx, objectKey, contentType, data); err != nil {
		return nil, err
	}
	url, err := s.fileStorage.GeneratePresignedDownloadURL(ctx, objectKey, storage.DefaultPresignedURLExpiry)
	if err != nil {
		return nil, err
	}
	return &ExportResult{
		ObjectKey:   objectKey,
		ContentType: contentType,
		DownloadURL: url,
	}, nil
}
