package mongo

import (
	"context"
	"sync"
	"time"

	"liftledger/workout-tracker/internal/repository"

	log "github.com/sirupsen/logrus"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// retry delay after a broken change stream
const watchRetryDelay = 2 * time.Second

// collectionSubscription implements repository.Subscription on top of a
// MongoDB change stream. Each change event triggers a re-fetch of the
// whole user-scoped collection, so consumers always receive wholesale
// snapshots, never deltas.
type collectionSubscription[T any] struct {
	snapshots chan []T
	cancel    context.CancelFunc
	once      sync.Once
}

func (s *collectionSubscription[T]) Snapshots() <-chan []T {
	return s.snapshots
}

func (s *collectionSubscription[T]) Close() {
	s.once.Do(s.cancel)
}

// watchCollection opens a change stream on collection and emits a fresh
// snapshot (via fetch) on every change. The initial snapshot is emitted
// immediately. Fetch or stream errors are logged and the subscription
// stays alive; the next successful fetch resumes emissions.
func watchCollection[T any](
	ctx context.Context,
	collection *mongo.Collection,
	fetch func(ctx context.Context) ([]T, error),
) (repository.Subscription[T], error) {
	ctx, cancel := context.WithCancel(ctx)

	sub := &collectionSubscription[T]{
		snapshots: make(chan []T, 1),
		cancel:    cancel,
	}

	go func() {
		defer close(sub.snapshots)

		emit := func() {
			snapshot, err := fetch(ctx)
			if err != nil {
				if ctx.Err() != nil {
					return
				}
				log.WithError(err).
					WithField("collection", collection.Name()).
					Error("snapshot fetch failed, keeping subscription alive")
				return
			}
			select {
			case sub.snapshots <- snapshot:
			case <-ctx.Done():
			default:
				// Consumer still holds the previous snapshot; replace it.
				select {
				case <-sub.snapshots:
				default:
				}
				select {
				case sub.snapshots <- snapshot:
				case <-ctx.Done():
				}
			}
		}

		emit()

		for ctx.Err() == nil {
			stream, err := collection.Watch(ctx, mongo.Pipeline{},
				options.ChangeStream().SetFullDocument(options.UpdateLookup))
			if err != nil {
				if ctx.Err() != nil {
					return
				}
				log.WithError(err).
					WithField("collection", collection.Name()).
					Error("failed to open change stream, retrying")
				select {
				case <-time.After(watchRetryDelay):
				case <-ctx.Done():
					return
				}
				continue
			}

			for stream.Next(ctx) {
				emit()
			}
			streamErr := stream.Err()
			_ = stream.Close(context.Background())

			if ctx.Err() != nil {
				return
			}
			if streamErr != nil {
				log.WithError(streamErr).
					WithField("collection", collection.Name()).
					Warn("change stream interrupted, reopening")
			}
			select {
			case <-time.After(watchRetryDelay):
			case <-ctx.Done():
				return
			}
		}
	}()

	return sub, nil
}
