package repository

import (
	"context"
	"time"

	"liftledger/workout-tracker/internal/domain"
)

// Error constants for the repository layer.
var (
	ErrNotFound     = RepositoryError("not found")
	ErrUpdateFailed = RepositoryError("update failed")
	ErrDeleteFailed = RepositoryError("delete failed")
)

// RepositoryError helps distinguish repository errors.
type RepositoryError string

func (e RepositoryError) Error() string {
	return string(e)
}

// Subscription yields live full-collection snapshots. Every emission on
// Snapshots is a wholesale replacement of the previous one, never an
// incremental patch; consumers re-derive all dependent state from each
// snapshot. A store error does not end the subscription: the channel
// simply carries the next successful snapshot. Close tears the
// subscription down and closes the channel.
type Subscription[T any] interface {
	Snapshots() <-chan []T
	Close()
}

// UserRepository defines the interface for interacting with user accounts.
type UserRepository interface {
	Create(ctx context.Context, user *domain.User) error
	GetByEmail(ctx context.Context, email string) (*domain.User, error)
	GetByID(ctx context.Context, id string) (*domain.User, error)
	Delete(ctx context.Context, id string) error
}

// ProgramRepository defines the interface for program templates. Save
// overwrites the whole document (last write wins); there is no
// field-level patching.
type ProgramRepository interface {
	Save(ctx context.Context, program *domain.Program) error
	GetByID(ctx context.Context, id string) (*domain.Program, error)
	GetByUserID(ctx context.Context, userID string) ([]domain.Program, error)
	Delete(ctx context.Context, id, userID string) error
	DeleteByUserID(ctx context.Context, userID string) error
	Watch(ctx context.Context, userID string) (Subscription[domain.Program], error)
}

// WorkoutLogRepository defines the interface for performed-workout logs.
type WorkoutLogRepository interface {
	Save(ctx context.Context, log *domain.WorkoutLog) error
	GetByID(ctx context.Context, id string) (*domain.WorkoutLog, error)
	GetByUserID(ctx context.Context, userID string) ([]domain.WorkoutLog, error)
	// GetByUserIDInRange returns the user's logs whose startedAt falls in
	// [from, to]. Sorting is left to the caller.
	GetByUserIDInRange(ctx context.Context, userID string, from, to time.Time) ([]domain.WorkoutLog, error)
	Delete(ctx context.Context, id, userID string) error
	DeleteByUserID(ctx context.Context, userID string) error
	Watch(ctx context.Context, userID string) (Subscription[domain.WorkoutLog], error)
}

// PersonalRecordRepository defines the interface for the append-only PR
// history. Rows are never updated or marked stale; reads re-derive the
// current best.
type PersonalRecordRepository interface {
	Save(ctx context.Context, record *domain.PersonalRecord) error
	GetByUserID(ctx context.Context, userID string) ([]domain.PersonalRecord, error)
	GetByUserAndExercise(ctx context.Context, userID, exerciseName string) ([]domain.PersonalRecord, error)
	DeleteByUserID(ctx context.Context, userID string) error
	Watch(ctx context.Context, userID string) (Subscription[domain.PersonalRecord], error)
}
