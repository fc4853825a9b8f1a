package service

import (
	"context"
	"sync"
	"time"

	"liftledger/workout-tracker/internal/domain"
	"liftledger/workout-tracker/internal/repository"
)

// mockSubscription is a hand-driven subscription: tests push snapshots
// through emit.
type mockSubscription[T any] struct {
	ch        chan []T
	closeOnce sync.Once
}

func newMockSubscription[T any]() *mockSubscription[T] {
	return &mockSubscription[T]{ch: make(chan []T, 16)}
}

func (s *mockSubscription[T]) emit(snapshot []T) {
	s.ch <- snapshot
}

func (s *mockSubscription[T]) Snapshots() <-chan []T { return s.ch }

func (s *mockSubscription[T]) Close() {
	s.closeOnce.Do(func() { close(s.ch) })
}

type programRepoMock struct {
	programs map[string]*domain.Program
	failWith error
	watchSub *mockSubscription[domain.Program]
}

func newProgramRepoMock() *programRepoMock {
	return &programRepoMock{programs: make(map[string]*domain.Program)}
}

func (r *programRepoMock) Save(_ context.Context, program *domain.Program) error {
	if r.failWith != nil {
		return r.failWith
	}
	saved := *program
	r.programs[program.ID] = &saved
	return nil
}

func (r *programRepoMock) GetByID(_ context.Context, id string) (*domain.Program, error) {
	if r.failWith != nil {
		return nil, r.failWith
	}
	program, ok := r.programs[id]
	if !ok {
		return nil, repository.ErrNotFound
	}
	found := *program
	return &found, nil
}

func (r *programRepoMock) GetByUserID(_ context.Context, userID string) ([]domain.Program, error) {
	if r.failWith != nil {
		return nil, r.failWith
	}
	programs := make([]domain.Program, 0)
	for _, p := range r.programs {
		if p.UserID == userID {
			programs = append(programs, *p)
		}
	}
	return programs, nil
}

func (r *programRepoMock) Delete(_ context.Context, id, userID string) error {
	program, ok := r.programs[id]
	if !ok || program.UserID != userID {
		return repository.ErrNotFound
	}
	delete(r.programs, id)
	return nil
}

func (r *programRepoMock) DeleteByUserID(_ context.Context, userID string) error {
	for id, p := range r.programs {
		if p.UserID == userID {
			delete(r.programs, id)
		}
	}
	return nil
}

func (r *programRepoMock) Watch(ctx context.Context, _ string) (repository.Subscription[domain.Program], error) {
	if r.watchSub == nil {
		r.watchSub = newMockSubscription[domain.Program]()
	}
	sub := r.watchSub
	go func() {
		<-ctx.Done()
		sub.Close()
	}()
	return sub, nil
}

type workoutLogRepoMock struct {
	logs     map[string]*domain.WorkoutLog
	failWith error
	watchSub *mockSubscription[domain.WorkoutLog]
}

func newWorkoutLogRepoMock() *workoutLogRepoMock {
	return &workoutLogRepoMock{logs: make(map[string]*domain.WorkoutLog)}
}

func (r *workoutLogRepoMock) Save(_ context.Context, log *domain.WorkoutLog) error {
	if r.failWith != nil {
		return r.failWith
	}
	saved := *log
	r.logs[log.ID] = &saved
	return nil
}

func (r *workoutLogRepoMock) GetByID(_ context.Context, id string) (*domain.WorkoutLog, error) {
	if r.failWith != nil {
		return nil, r.failWith
	}
	workoutLog, ok := r.logs[id]
	if !ok {
		return nil, repository.ErrNotFound
	}
	found := *workoutLog
	return &found, nil
}

func (r *workoutLogRepoMock) GetByUserID(_ context.Context, userID string) ([]domain.WorkoutLog, error) {
	if r.failWith != nil {
		return nil, r.failWith
	}
	logs := make([]domain.WorkoutLog, 0)
	for _, l := range r.logs {
		if l.UserID == userID {
			logs = append(logs, *l)
		}
	}
	return logs, nil
}

func (r *workoutLogRepoMock) GetByUserIDInRange(ctx context.Context, userID string, from, to time.Time) ([]domain.WorkoutLog, error) {
	all, err := r.GetByUserID(ctx, userID)
	if err != nil {
		return nil, err
	}
	logs := make([]domain.WorkoutLog, 0, len(all))
	for _, l := range all {
		if l.StartedAt.Before(from) || l.StartedAt.After(to) {
			continue
		}
		logs = append(logs, l)
	}
	return logs, nil
}

func (r *workoutLogRepoMock) Delete(_ context.Context, id, userID string) error {
	workoutLog, ok := r.logs[id]
	if !ok || workoutLog.UserID != userID {
		return repository.ErrNotFound
	}
	delete(r.logs, id)
	return nil
}

func (r *workoutLogRepoMock) DeleteByUserID(_ context.Context, userID string) error {
	for id, l := range r.logs {
		if l.UserID == userID {
			delete(r.logs, id)
		}
	}
	return nil
}

func (r *workoutLogRepoMock) Watch(ctx context.Context, _ string) (repository.Subscription[domain.WorkoutLog], error) {
	if r.watchSub == nil {
		r.watchSub = newMockSubscription[domain.WorkoutLog]()
	}
	sub := r.watchSub
	go func() {
		<-ctx.Done()
		sub.Close()
	}()
	return sub, nil
}

type recordRepoMock struct {
	records  []domain.PersonalRecord
	failWith error
	watchSub *mockSubscription[domain.PersonalRecord]
}

func newRecordRepoMock() *recordRepoMock {
	return &recordRepoMock{}
}

func (r *recordRepoMock) Save(_ context.Context, record *domain.PersonalRecord) error {
	if r.failWith != nil {
		return r.failWith
	}
	r.records = append(r.records, *record)
	return nil
}

func (r *recordRepoMock) GetByUserID(_ context.Context, userID string) ([]domain.PersonalRecord, error) {
	if r.failWith != nil {
		return nil, r.failWith
	}
	records := make([]domain.PersonalRecord, 0)
	for _, rec := range r.records {
		if rec.UserID == userID {
			records = append(records, rec)
		}
	}
	return records, nil
}

func (r *recordRepoMock) GetByUserAndExercise(_ context.Context, userID, exerciseName string) ([]domain.PersonalRecord, error) {
	if r.failWith != nil {
		return nil, r.failWith
	}
	records := make([]domain.PersonalRecord, 0)
	for _, rec := range r.records {
		if rec.UserID == userID && rec.ExerciseName == exerciseName {
			records = append(records, rec)
		}
	}
	return records, nil
}

func (r *recordRepoMock) DeleteByUserID(_ context.Context, userID string) error {
	kept := r.records[:0]
	for _, rec := range r.records {
		if rec.UserID != userID {
			kept = append(kept, rec)
		}
	}
	r.records = kept
	return nil
}

func (r *recordRepoMock) Watch(ctx context.Context, _ string) (repository.Subscription[domain.PersonalRecord], error) {
	if r.watchSub == nil {
		r.watchSub = newMockSubscription[domain.PersonalRecord]()
	}
	sub := r.watchSub
	go func() {
		<-ctx.Done()
		sub.Close()
	}()
	return sub, nil
}

type userRepoMock struct {
	users map[string]*domain.User
}

func newUserRepoMock() *userRepoMock {
	return &userRepoMock{users: make(map[string]*domain.User)}
}

func (r *userRepoMock) Create(_ context.Context, user *domain.User) error {
	created := *user
	r.users[user.ID] = &created
	return nil
}

func (r *userRepoMock) GetByEmail(_ context.Context, email string) (*domain.User, error) {
	for _, u := range r.users {
		if u.Email == email {
			found := *u
			return &found, nil
		}
	}
	return nil, repository.ErrNotFound
}

func (r *userRepoMock) GetByID(_ context.Context, id string) (*domain.User, error) {
	user, ok := r.users[id]
	if !ok {
		return nil, repository.ErrNotFound
	}
	found := *user
	return &found, nil
}

func (r *userRepoMock) Delete(_ context.Context, id string) error {
	if _, ok := r.users[id]; !ok {
		return repository.ErrNotFound
	}
	delete(r.users, id)
	return nil
}
