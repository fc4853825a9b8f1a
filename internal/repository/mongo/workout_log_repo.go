package mongo

import (
	"context"
	"errors"
	"time"

	"liftledger/workout-tracker/internal/domain"
	"liftledger/workout-tracker/internal/repository"

	log "github.com/sirupsen/logrus"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

const workoutLogCollectionName = "workoutLogs"

// mongoWorkoutLogRepository implements repository.WorkoutLogRepository
type mongoWorkoutLogRepository struct {
	collection *mongo.Collection
}

// NewMongoWorkoutLogRepository creates a new WorkoutLog repository backed by MongoDB.
func NewMongoWorkoutLogRepository(db *mongo.Database) repository.WorkoutLogRepository {
	return &mongoWorkoutLogRepository{
		collection: db.Collection(workoutLogCollectionName),
	}
}

func validWorkoutLog(l *domain.WorkoutLog) bool {
	return l.ID != "" && l.UserID != "" && l.DayName != ""
}

// Save writes the whole log document as an upsert keyed on the
// client-generated ID. Last write wins.
func (r *mongoWorkoutLogRepository) Save(ctx context.Context, workoutLog *domain.WorkoutLog) error {
	if !validWorkoutLog(workoutLog) {
		return errors.New("workout log requires id, userId, and dayName")
	}

	filter := bson.M{"_id": workoutLog.ID}
	_, err := r.collection.ReplaceOne(ctx, filter, workoutLog, options.Replace().SetUpsert(true))
	return err
}

// GetByID retrieves a single workout log by its ID.
func (r *mongoWorkoutLogRepository) GetByID(ctx context.Context, id string) (*domain.WorkoutLog, error) {
	var workoutLog domain.WorkoutLog
	err := r.collection.FindOne(ctx, bson.M{"_id": id}).Decode(&workoutLog)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, repository.ErrNotFound
		}
		return nil, err
	}
	return &workoutLog, nil
}

// GetByUserID retrieves all workout logs for a user. Sorting happens
// client-side after fetch.
func (r *mongoWorkoutLogRepository) GetByUserID(ctx context.Context, userID string) ([]domain.WorkoutLog, error) {
	cursor, err := r.collection.Find(ctx, bson.M{"userId": userID})
	if err != nil {
		return nil, err
	}
	return decodeAll(ctx, cursor, workoutLogCollectionName, validWorkoutLog)
}

// GetByUserIDInRange retrieves the user's logs with startedAt in [from, to].
func (r *mongoWorkoutLogRepository) GetByUserIDInRange(ctx context.Context, userID string, from, to time.Time) ([]domain.WorkoutLog, error) {
	filter := bson.M{
		"userId": userID,
		"startedAt": bson.M{
			"$gte": from,
			"$lte": to,
		},
	}
	cursor, err := r.collection.Find(ctx, filter)
	if err != nil {
		return nil, err
	}
	return decodeAll(ctx, cursor, workoutLogCollectionName, validWorkoutLog)
}

// Delete removes a workout log by ID, scoped to its owner.
func (r *mongoWorkoutLogRepository) Delete(ctx context.Context, id, userID string) error {
	result, err := r.collection.DeleteOne(ctx, bson.M{"_id": id, "userId": userID})
	if err != nil {
		return err
	}
	if result.DeletedCount == 0 {
		return repository.ErrNotFound
	}
	return nil
}

// DeleteByUserID removes every workout log owned by a user.
func (r *mongoWorkoutLogRepository) DeleteByUserID(ctx context.Context, userID string) error {
	_, err := r.collection.DeleteMany(ctx, bson.M{"userId": userID})
	return err
}

// Watch subscribes to live snapshots of the user's workout logs.
func (r *mongoWorkoutLogRepository) Watch(ctx context.Context, userID string) (repository.Subscription[domain.WorkoutLog], error) {
	return watchCollection(ctx, r.collection, func(ctx context.Context) ([]domain.WorkoutLog, error) {
		return r.GetByUserID(ctx, userID)
	})
}

// EnsureWorkoutLogIndexes creates the single-field indexes the queries
// rely on. Range queries combine the userId filter with a client-side
// startedAt filter on purpose: no composite index required.
func EnsureWorkoutLogIndexes(ctx context.Context, collection *mongo.Collection) {
	indexes := []mongo.IndexModel{
		{
			Keys:    bson.D{{Key: "userId", Value: 1}},
			Options: options.Index(),
		},
		{
			Keys:    bson.D{{Key: "startedAt", Value: 1}},
			Options: options.Index(),
		},
	}
	if _, err := collection.Indexes().CreateMany(ctx, indexes); err != nil {
		log.WithError(err).WithField("collection", collection.Name()).
			Warn("failed to create indexes")
	}
}
