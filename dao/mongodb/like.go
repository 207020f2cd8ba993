package mongodb

import (
	"context"
	dailyfeed "dailyfeed/errors"
	"dailyfeed/models"

	"github.com/pkg/errors"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// LikeStore 保存点赞标记，(subject_pk, member_id) 唯一索引是去重的最终保证
type LikeStore struct {
	coll *mongo.Collection
}

func NewLikeStore(coll *mongo.Collection) *LikeStore {
	return &LikeStore{coll: coll}
}

func ensureLikeIndexes(ctx context.Context, coll *mongo.Collection) error {
	_, err := coll.Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys:    bson.D{{Key: "subject_pk", Value: 1}, {Key: "member_id", Value: 1}},
		Options: options.Index().SetUnique(true),
	})
	return err
}

func (s *LikeStore) Exists(ctx context.Context, subjectPK, memberID int64) (bool, error) {
	n, err := s.coll.CountDocuments(ctx, bson.M{"subject_pk": subjectPK, "member_id": memberID}, options.Count().SetLimit(1))
	if err != nil {
		return false, errors.Wrap(err, "mongodb:LikeStore.Exists: CountDocuments")
	}
	return n > 0, nil
}

// Insert 并发重复插入时由唯一索引拦截，转换为 ErrAlreadyLiked
func (s *LikeStore) Insert(ctx context.Context, marker *models.LikeMarker) error {
	_, err := s.coll.InsertOne(ctx, marker)
	if mongo.IsDuplicateKeyError(err) {
		return dailyfeed.ErrAlreadyLiked
	}
	return errors.Wrap(err, "mongodb:LikeStore.Insert: InsertOne")
}

func (s *LikeStore) Delete(ctx context.Context, subjectPK, memberID int64) error {
	res, err := s.coll.DeleteOne(ctx, bson.M{"subject_pk": subjectPK, "member_id": memberID})
	if err != nil {
		return errors.Wrap(err, "mongodb:LikeStore.Delete: DeleteOne")
	}
	if res.DeletedCount == 0 {
		return dailyfeed.ErrLikeNotFound
	}
	return nil
}
