package mongo

import (
	"context"

	log "github.com/sirupsen/logrus"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
)

// decodeAll drains a cursor, decoding documents one at a time. A document
// that fails to decode, or that the validity check rejects, is logged and
// skipped; a bad row never aborts the whole fetch. Returns a non-nil
// slice so callers see "no results" rather than "nil".
func decodeAll[T any](ctx context.Context, cur *mongo.Cursor, collection string, valid func(*T) bool) ([]T, error) {
	defer cur.Close(ctx)

	out := make([]T, 0)
	for cur.Next(ctx) {
		var doc T
		if err := bson.Unmarshal(cur.Current, &doc); err != nil {
			log.WithError(err).WithField("collection", collection).
				Warn("skipping undecodable document")
			continue
		}
		if valid != nil && !valid(&doc) {
			log.WithField("collection", collection).
				Warn("skipping document with missing required fields")
			continue
		}
		out = append(out, doc)
	}
	if err := cur.Err(); err != nil {
		return nil, err
	}
	return out, nil
}
