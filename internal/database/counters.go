package database

import (
	"context"
	"log"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// EnsureCounters seeds the human-facing ID sequences. $setOnInsert keeps
// existing counters untouched, so reruns are safe.
func EnsureCounters(db *mongo.Database) error {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	seeds := map[string]int64{
		"ticketId": 10000,
		"returnId": 50000,
	}

	for name, seed := range seeds {
		_, err := db.Collection("counters").UpdateOne(
			ctx,
			bson.M{"_id": name},
			bson.M{"$setOnInsert": bson.M{"seq": seed}},
			options.Update().SetUpsert(true),
		)
		if err != nil {
			log.Printf("EnsureCounters: %s seed error: %v", name, err)
			return err
		}
	}
	return nil
}
