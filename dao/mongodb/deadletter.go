package mongodb

import (
	"context"
	"dailyfeed/models"

	"github.com/pkg/errors"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// DeadLetterStore 保存投递失败的活动事件，供之后的重放工具读取
type DeadLetterStore struct {
	coll *mongo.Collection
}

func NewDeadLetterStore(coll *mongo.Collection) *DeadLetterStore {
	return &DeadLetterStore{coll: coll}
}

func ensureDeadLetterIndexes(ctx context.Context, coll *mongo.Collection) error {
	_, err := coll.Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys: bson.D{{Key: "routing_key", Value: 1}, {Key: "is_completed", Value: 1}, {Key: "captured_at", Value: 1}},
	})
	return err
}

func (s *DeadLetterStore) Capture(ctx context.Context, record *models.DeadLetterRecord) error {
	_, err := s.coll.InsertOne(ctx, record)
	return errors.Wrap(err, "mongodb:DeadLetterStore.Capture: InsertOne")
}

// FindByRoutingKey 按捕获时间升序返回
func (s *DeadLetterStore) FindByRoutingKey(ctx context.Context, routingKey string) ([]*models.DeadLetterRecord, error) {
	cursor, err := s.coll.Find(ctx,
		bson.M{"routing_key": routingKey},
		options.Find().SetSort(bson.D{{Key: "captured_at", Value: 1}}),
	)
	if err != nil {
		return nil, errors.Wrap(err, "mongodb:DeadLetterStore.FindByRoutingKey: Find")
	}
	defer cursor.Close(ctx)

	records := make([]*models.DeadLetterRecord, 0)
	if err := cursor.All(ctx, &records); err != nil {
		return nil, errors.Wrap(err, "mongodb:DeadLetterStore.FindByRoutingKey: All")
	}
	return records, nil
}
