package mongo

import (
	"context"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/orgledger/personnel-api/internal/core/domain"
)

const collectionCounters = "counters"

type counterDocument struct {
	ID  string `bson:"_id"`
	Seq int64  `bson:"seq"`
}

// SequenceRepository keeps one counter document per kind and advances it
// with a single atomic $inc.
type SequenceRepository struct {
	col     *mongo.Collection
	timeout time.Duration
}

func NewSequenceRepository(db *mongo.Database, timeout time.Duration) *SequenceRepository {
	if timeout <= 0 {
		timeout = defaultTimeout
	}
	return &SequenceRepository{col: db.Collection(collectionCounters), timeout: timeout}
}

func (r *SequenceRepository) Next(ctx context.Context, kind domain.Kind) (int64, error) {
	ctx, cancel := context.WithTimeout(ctx, r.timeout)
	defer cancel()

	opts := options.FindOneAndUpdate().
		SetUpsert(true).
		SetReturnDocument(options.After)

	var doc counterDocument
	err := r.col.FindOneAndUpdate(ctx,
		bson.M{"_id": string(kind)},
		bson.M{"$inc": bson.M{"seq": 1}},
		opts,
	).Decode(&doc)
	// Two first-ever upserts can race on _id; the loser retries against the
	// document the winner created.
	if mongo.IsDuplicateKeyError(err) {
		err = r.col.FindOneAndUpdate(ctx,
			bson.M{"_id": string(kind)},
			bson.M{"$inc": bson.M{"seq": 1}},
			opts,
		).Decode(&doc)
	}
	if err != nil {
		return 0, err
	}
	return doc.Seq, nil
}

// Seed raises the counter to floor with $max, so it never moves backwards.
func (r *SequenceRepository) Seed(ctx context.Context, kind domain.Kind, floor int64) error {
	ctx, cancel := context.WithTimeout(ctx, r.timeout)
	defer cancel()

	_, err := r.col.UpdateOne(ctx,
		bson.M{"_id": string(kind)},
		bson.M{"$max": bson.M{"seq": floor}},
		options.Update().SetUpsert(true),
	)
	return err
}
