package mongo

import (
	"context"
	"errors"

	"liftledger/workout-tracker/internal/domain"
	"liftledger/workout-tracker/internal/repository"

	log "github.com/sirupsen/logrus"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

const recordCollectionName = "personalRecords"

// mongoRecordRepository implements repository.PersonalRecordRepository
type mongoRecordRepository struct {
	collection *mongo.Collection
}

// NewMongoRecordRepository creates a new PersonalRecord repository backed by MongoDB.
func NewMongoRecordRepository(db *mongo.Database) repository.PersonalRecordRepository {
	return &mongoRecordRepository{
		collection: db.Collection(recordCollectionName),
	}
}

func validRecord(r *domain.PersonalRecord) bool {
	return r.ID != "" && r.UserID != "" && r.ExerciseName != ""
}

// Save appends a record row. The history is append-only: rows are never
// updated, and no uniqueness is enforced per (user, exercise).
func (r *mongoRecordRepository) Save(ctx context.Context, record *domain.PersonalRecord) error {
	if !validRecord(record) {
		return errors.New("personal record requires id, userId, and exerciseName")
	}

	filter := bson.M{"_id": record.ID}
	_, err := r.collection.ReplaceOne(ctx, filter, record, options.Replace().SetUpsert(true))
	return err
}

// GetByUserID retrieves the user's whole record history.
func (r *mongoRecordRepository) GetByUserID(ctx context.Context, userID string) ([]domain.PersonalRecord, error) {
	cursor, err := r.collection.Find(ctx, bson.M{"userId": userID})
	if err != nil {
		return nil, err
	}
	return decodeAll(ctx, cursor, recordCollectionName, validRecord)
}

// GetByUserAndExercise retrieves every history row for one (user,
// exercise) pair. Callers select the winner with domain.BestRecord; the
// storage keeps no canonical row.
func (r *mongoRecordRepository) GetByUserAndExercise(ctx context.Context, userID, exerciseName string) ([]domain.PersonalRecord, error) {
	filter := bson.M{"userId": userID, "exerciseName": exerciseName}
	cursor, err := r.collection.Find(ctx, filter)
	if err != nil {
		return nil, err
	}
	return decodeAll(ctx, cursor, recordCollectionName, validRecord)
}

// DeleteByUserID removes every record owned by a user.
func (r *mongoRecordRepository) DeleteByUserID(ctx context.Context, userID string) error {
	_, err := r.collection.DeleteMany(ctx, bson.M{"userId": userID})
	return err
}

// Watch subscribes to live snapshots of the user's record history.
func (r *mongoRecordRepository) Watch(ctx context.Context, userID string) (repository.Subscription[domain.PersonalRecord], error) {
	return watchCollection(ctx, r.collection, func(ctx context.Context) ([]domain.PersonalRecord, error) {
		return r.GetByUserID(ctx, userID)
	})
}

// EnsureRecordIndexes creates the lookup indexes. Sorting by weight stays
// client-side, so (userId, exerciseName) single-field indexes suffice.
func EnsureRecordIndexes(ctx context.Context, collection *mongo.Collection) {
	indexes := []mongo.IndexModel{
		{
			Keys:    bson.D{{Key: "userId", Value: 1}},
			Options: options.Index(),
		},
		{
			Keys:    bson.D{{Key: "exerciseName", Value: 1}},
			Options: options.Index(),
		},
	}
	if _, err := collection.Indexes().CreateMany(ctx, indexes); err != nil {
		log.WithError(err).WithField("collection", collection.Name()).
			Warn("failed to create indexes")
	}
}
