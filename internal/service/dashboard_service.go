package service

import (
	"context"
	"sort"
	"sync"
	"time"

	"liftledger/workout-tracker/internal/domain"
	"liftledger/workout-tracker/internal/progress"
	"liftledger/workout-tracker/internal/repository"
)

// Number of recent logs kept on the dashboard.
const recentLogCount = 5

// DashboardService is the live read model for one user: it owns the
// collection subscriptions (programs, logs, records, each an independent
// listener with no cross-listener ordering), treats every incoming
// snapshot as a wholesale replacement of its cache, and re-derives all
// aggregates from scratch on each one. All getters are safe for
// concurrent use.
type DashboardService struct {
	programRepo repository.ProgramRepository
	logRepo     repository.WorkoutLogRepository
	recordRepo  repository.PersonalRecordRepository

	mu       sync.RWMutex
	programs []domain.Program
	logs     []domain.WorkoutLog
	records  []domain.PersonalRecord

	// derived, rebuilt wholesale on each log snapshot
	recentLogs   []domain.WorkoutLog
	weeklyVolume []progress.WeeklyVolumePoint
	frequency    map[time.Weekday]int
	// derived, rebuilt wholesale on each record snapshot
	bestRecords []domain.PersonalRecord

	cancel context.CancelFunc
	wg     sync.WaitGroup
}

// NewDashboardService creates a dashboard backed by the given repositories.
func NewDashboardService(
	programRepo repository.ProgramRepository,
	logRepo repository.WorkoutLogRepository,
	recordRepo repository.PersonalRecordRepository,
) *DashboardService {
	return &DashboardService{
		programRepo: programRepo,
		logRepo:     logRepo,
		recordRepo:  recordRepo,
		frequency:   make(map[time.Weekday]int),
	}
}

// Start opens the three live subscriptions for the user and keeps the
// cached state current until Close or context cancellation.
func (d *DashboardService) Start(ctx context.Context, userID string) error {
	ctx, cancel := context.WithCancel(ctx)
	d.cancel = cancel

	programSub, err := d.programRepo.Watch(ctx, userID)
	if err != nil {
		cancel()
		return err
	}
	logSub, err := d.logRepo.Watch(ctx, userID)
	if err != nil {
		cancel()
		return err
	}
	recordSub, err := d.recordRepo.Watch(ctx, userID)
	if err != nil {
		cancel()
		return err
	}

	d.wg.Add(3)
	go func() {
		defer d.wg.Done()
		defer programSub.Close()
		for snapshot := range programSub.Snapshots() {
			d.applyPrograms(snapshot)
		}
	}()
	go func() {
		defer d.wg.Done()
		defer logSub.Close()
		for snapshot := range logSub.Snapshots() {
			d.applyLogs(snapshot)
		}
	}()
	go func() {
		defer d.wg.Done()
		defer recordSub.Close()
		for snapshot := range recordSub.Snapshots() {
			d.applyRecords(snapshot)
		}
	}()
	return nil
}

// Close tears the subscriptions down and waits for the apply loops.
func (d *DashboardService) Close() {
	if d.cancel != nil {
		d.cancel()
	}
	d.wg.Wait()
}

func (d *DashboardService) applyPrograms(snapshot []domain.Program) {
	sort.Slice(snapshot, func(i, j int) bool {
		return snapshot[i].UpdatedAt.After(snapshot[j].UpdatedAt)
	})
	d.mu.Lock()
	d.programs = snapshot
	d.mu.Unlock()
}

func (d *DashboardService) applyLogs(snapshot []domain.WorkoutLog) {
	sort.Slice(snapshot, func(i, j int) bool {
		return snapshot[i].StartedAt.After(snapshot[j].StartedAt)
	})
	recent := snapshot
	if len(recent) > recentLogCount {
		recent = recent[:recentLogCount]
	}
	weekly := progress.WeeklyVolume(snapshot)
	frequency := progress.WeekdayFrequency(snapshot, time.Now().UTC())

	d.mu.Lock()
	d.logs = snapshot
	d.recentLogs = recent
	d.weeklyVolume = weekly
	d.frequency = frequency
	d.mu.Unlock()
}

func (d *DashboardService) applyRecords(snapshot []domain.PersonalRecord) {
	byExercise := make(map[string][]domain.PersonalRecord)
	for _, r := range snapshot {
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

	d.mu.Lock()
	d.records = snapshot
	d.bestRecords = best
	d.mu.Unlock()
}

// Programs returns the latest program snapshot, most recently updated first.
func (d *DashboardService) Programs() []domain.Program {
	d.mu.RLock()
	defer d.mu.RUnlock()
	return append([]domain.Program(nil), d.programs...)
}

// RecentLogs returns the newest few logs.
func (d *DashboardService) RecentLogs() []domain.WorkoutLog {
	d.mu.RLock()
	defer d.mu.RUnlock()
	return append([]domain.WorkoutLog(nil), d.recentLogs...)
}

// WeeklyVolume returns the derived calendar-week volume series.
func (d *DashboardService) WeeklyVolume() []progress.WeeklyVolumePoint {
	d.mu.RLock()
	defer d.mu.RUnlock()
	return append([]progress.WeeklyVolumePoint(nil), d.weeklyVolume...)
}

// ThisWeekVolume is the volume lifted in the current calendar week.
func (d *DashboardService) ThisWeekVolume() float64 {
	week := progress.StartOfWeek(time.Now().UTC())
	d.mu.RLock()
	defer d.mu.RUnlock()
	for _, point := range d.weeklyVolume {
		if point.WeekStart.Equal(week) {
			return point.Volume
		}
	}
	return 0
}

// WeekdayFrequency returns this week's per-weekday workout counts.
func (d *DashboardService) WeekdayFrequency() map[time.Weekday]int {
	d.mu.RLock()
	defer d.mu.RUnlock()
	out := make(map[time.Weekday]int, len(d.frequency))
	for k, v := range d.frequency {
		out[k] = v
	}
	return out
}

// BestRecords returns the current winner per exercise, sorted by name.
func (d *DashboardService) BestRecords() []domain.PersonalRecord {
	d.mu.RLock()
	defer d.mu.RUnlock()
	return append([]domain.PersonalRecord(nil), d.bestRecords...)
}
