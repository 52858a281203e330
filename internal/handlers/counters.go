package handlers

import (
	"context"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"backend/internal/models"
)

// Counter names. Documents are seeded at startup (database.EnsureCounters)
// so tickets start at 10001 and returns at 50001.
const (
	ticketSeqName = "ticketId"
	returnSeqName = "returnId"
)

// nextSequence atomically allocates the next value of a named counter.
// Counters are durable and monotonically increasing, independent of
// document count.
func nextSequence(ctx context.Context, db *mongo.Database, name string) (int64, error) {
	res := db.Collection("counters").FindOneAndUpdate(
		ctx,
		bson.M{"_id": name},
		bson.M{"$inc": bson.M{"seq": 1}},
		options.FindOneAndUpdate().
			SetUpsert(true).
			SetReturnDocument(options.After),
	)

	var counter models.Counter
	if err := res.Decode(&counter); err != nil {
		return 0, err
	}
	return counter.Seq, nil
}
