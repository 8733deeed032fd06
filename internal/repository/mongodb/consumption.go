package mongodb

import (
	"context"
	"fmt"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.uber.org/zap"

	"github.com/sahilk27/wattwise/internal/domain/models"
)

// ConsumptionRepository defines the ledger storage operations.
type ConsumptionRepository interface {
	// Upsert replaces the (username, date) document, inserting it when
	// absent. It reports whether an existing document was replaced.
	Upsert(ctx context.Context, record models.ConsumptionRecord) (replaced bool, err error)
	// FindRange returns all documents for username with fromDate <= date
	// <= toDate, ascending by date. An empty window yields an empty slice.
	FindRange(ctx context.Context, username, fromDate, toDate string) ([]models.ConsumptionRecord, error)
	// Exists reports whether a document for (username, date) is present.
	Exists(ctx context.Context, username, date string) (bool, error)
}

// MongoConsumptionRepository implements ConsumptionRepository on the
// "consumption" collection.
type MongoConsumptionRepository struct {
	coll   *mongo.Collection
	logger *zap.Logger
}

// NewConsumptionRepository builds the consumption repository.
func NewConsumptionRepository(client *Client, logger *zap.Logger) *MongoConsumptionRepository {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &MongoConsumptionRepository{
		coll:   client.Database().Collection("consumption"),
		logger: logger,
	}
}

func (r *MongoConsumptionRepository) Upsert(ctx context.Context, record models.ConsumptionRecord) (bool, error) {
	filter := bson.M{"username": record.Username, "date": record.Date}

	res, err := r.coll.ReplaceOne(ctx, filter, record, options.Replace().SetUpsert(true))
	if err != nil {
		return false, fmt.Errorf("upsert consumption record for %s/%s: %w", record.Username, record.Date, err)
	}

	replaced := res.MatchedCount > 0
	r.logger.Debug("consumption record saved",
		zap.String("username", record.Username),
		zap.String("date", record.Date),
		zap.Bool("replaced", replaced))
	return replaced, nil
}

func (r *MongoConsumptionRepository) FindRange(ctx context.Context, username, fromDate, toDate string) ([]models.ConsumptionRecord, error) {
	filter := bson.M{
		"username": username,
		"date":     bson.M{"$gte": fromDate, "$lte": toDate},
	}

	// YYYY-MM-DD sorts lexicographically in date order.
	cursor, err := r.coll.Find(ctx, filter, options.Find().SetSort(bson.D{{Key: "date", Value: 1}}))
	if err != nil {
		return nil, fmt.Errorf("find consumption range for %s: %w", username, err)
	}
	defer cursor.Close(ctx)

	records := make([]models.ConsumptionRecord, 0)
	for cursor.Next(ctx) {
		var rec models.ConsumptionRecord
		if err := cursor.Decode(&rec); err != nil {
			return nil, fmt.Errorf("decode consumption record: %w", err)
		}
		if err := rec.Validate(); err != nil {
			return nil, fmt.Errorf("read consumption range for %s: %w", username, err)
		}
		records = append(records, rec)
	}
	if err := cursor.Err(); err != nil {
		return nil, fmt.Errorf("iterate consumption range for %s: %w", username, err)
	}

	return records, nil
}

func (r *MongoConsumptionRepository) Exists(ctx context.Context, username, date string) (bool, error) {
	filter := bson.M{"username": username, "date": date}

	count, err := r.coll.CountDocuments(ctx, filter, options.Count().SetLimit(1))
	if err != nil {
		return false, fmt.Errorf("check consumption record for %s/%s: %w", username, date, err)
	}
	return count > 0, nil
}
