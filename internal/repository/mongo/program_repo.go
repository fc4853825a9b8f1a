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

const programCollectionName = "programs"

// mongoProgramRepository implements repository.ProgramRepository
type mongoProgramRepository struct {
	collection *mongo.Collection
}

// NewMongoProgramRepository creates a new Program repository backed by MongoDB.
func NewMongoProgramRepository(db *mongo.Database) repository.ProgramRepository {
	return &mongoProgramRepository{
		collection: db.Collection(programCollectionName),
	}
}

// Save writes the whole program document, stamping updatedAt. The write
// is an upsert keyed on the client-generated ID: last write wins, no
// field-level patching.
func (r *mongoProgramRepository) Save(ctx context.Context, program *domain.Program) error {
	if program.ID == "" || program.UserID == "" || program.Name == "" {
		return errors.New("program requires id, userId, and name")
	}
	program.UpdatedAt = time.Now().UTC()
	if program.CreatedAt.IsZero() {
		program.CreatedAt = program.UpdatedAt
	}

	filter := bson.M{"_id": program.ID}
	_, err := r.collection.ReplaceOne(ctx, filter, program, options.Replace().SetUpsert(true))
	return err
}

// GetByID retrieves a single program by its ID.
func (r *mongoProgramRepository) GetByID(ctx context.Context, id string) (*domain.Program, error) {
	var program domain.Program
	err := r.collection.FindOne(ctx, bson.M{"_id": id}).Decode(&program)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, repository.ErrNotFound
		}
		return nil, err
	}
	return &program, nil
}

// GetByUserID retrieves all programs owned by a user. Ordering is done
// client-side by the caller; the query needs only the single-field
// userId index.
func (r *mongoProgramRepository) GetByUserID(ctx context.Context, userID string) ([]domain.Program, error) {
	cursor, err := r.collection.Find(ctx, bson.M{"userId": userID})
	if err != nil {
		return nil, err
	}
	return decodeAll(ctx, cursor, programCollectionName, func(p *domain.Program) bool {
		return p.ID != "" && p.UserID != "" && p.Name != ""
	})
}

// Delete removes a program by ID, scoped to its owner. Irreversible.
func (r *mongoProgramRepository) Delete(ctx context.Context, id, userID string) error {
	result, err := r.collection.DeleteOne(ctx, bson.M{"_id": id, "userId": userID})
	if err != nil {
		return err
	}
	if result.DeletedCount == 0 {
		return repository.ErrNotFound
	}
	return nil
}

// DeleteByUserID removes every program owned by a user (account removal).
func (r *mongoProgramRepository) DeleteByUserID(ctx context.Context, userID string) error {
	_, err := r.collection.DeleteMany(ctx, bson.M{"userId": userID})
	return err
}

// Watch subscribes to live snapshots of the user's programs.
func (r *mongoProgramRepository) Watch(ctx context.Context, userID string) (repository.Subscription[domain.Program], error) {
	return watchCollection(ctx, r.collection, func(ctx context.Context) ([]domain.Program, error) {
		return r.GetByUserID(ctx, userID)
	})
}

// EnsureProgramIndexes creates the userId index. Call during startup.
func EnsureProgramIndexes(ctx context.Context, collection *mongo.Collection) {
	indexes := []mongo.IndexModel{
		{
			Keys:    bson.D{{Key: "userId", Value: 1}},
			Options: options.Index(),
		},
	}
	if _, err := collection.Indexes().CreateMany(ctx, indexes); err != nil {
		log.WithError(err).WithField("collection", collection.Name()).
			Warn("failed to create indexes")
	}
}
