package mongodb

import (
	"context"
	dailyfeed "dailyfeed/errors"
	"dailyfeed/models"
	"time"

	"github.com/pkg/errors"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// DocumentStore 保存帖子/评论的版本化镜像，一个集合对应一种实体
type DocumentStore struct {
	coll *mongo.Collection
}

func NewDocumentStore(coll *mongo.Collection) *DocumentStore {
	return &DocumentStore{coll: coll}
}

func ensureDocumentIndexes(ctx context.Context, coll *mongo.Collection) error {
	_, err := coll.Indexes().CreateMany(ctx, []mongo.IndexModel{
		{
			Keys:    bson.D{{Key: "subject_pk", Value: 1}, {Key: "version", Value: 1}},
			Options: options.Index().SetUnique(true),
		},
		{
			Keys: bson.D{{Key: "subject_pk", Value: 1}, {Key: "is_current", Value: 1}, {Key: "is_deleted", Value: 1}},
		},
	})
	return err
}

func (s *DocumentStore) Insert(ctx context.Context, doc *models.ContentDocument) error {
	_, err := s.coll.InsertOne(ctx, doc)
	if mongo.IsDuplicateKeyError(err) {
		return errors.Wrapf(dailyfeed.ErrMirrorConflict, "mongodb:Insert: subject %d version %d exists", doc.SubjectPK, doc.Version)
	}
	return errors.Wrap(err, "mongodb:Insert: InsertOne")
}

// FindCurrent 没有当前且未删除的文档时返回 ErrMirrorNotFound
func (s *DocumentStore) FindCurrent(ctx context.Context, subjectPK int64) (*models.ContentDocument, error) {
	doc := new(models.ContentDocument)
	err := s.coll.FindOne(ctx, bson.M{
		"subject_pk": subjectPK,
		"is_current": true,
		"is_deleted": false,
	}).Decode(doc)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, dailyfeed.ErrMirrorNotFound
		}
		return nil, errors.Wrap(err, "mongodb:FindCurrent: FindOne")
	}
	return doc, nil
}

// MarkSuperseded 以 version 为条件更新，已被其他请求替换时返回 ErrMirrorConflict
func (s *DocumentStore) MarkSuperseded(ctx context.Context, subjectPK, version int64, at time.Time) error {
	res, err := s.coll.UpdateOne(ctx,
		bson.M{"subject_pk": subjectPK, "version": version, "is_current": true, "is_deleted": false},
		bson.M{"$set": bson.M{"is_current": false, "is_deleted": true, "updated_at": at}},
	)
	if err != nil {
		return errors.Wrap(err, "mongodb:MarkSuperseded: UpdateOne")
	}
	if res.MatchedCount == 0 {
		return dailyfeed.ErrMirrorConflict
	}
	return nil
}

// MarkDeleted 只打删除标记，is_current 保持不变
func (s *DocumentStore) MarkDeleted(ctx context.Context, subjectPK int64, at time.Time) error {
	res, err := s.coll.UpdateOne(ctx,
		bson.M{"subject_pk": subjectPK, "is_current": true, "is_deleted": false},
		bson.M{"$set": bson.M{"is_deleted": true, "updated_at": at}},
	)
	if err != nil {
		return errors.Wrap(err, "mongodb:MarkDeleted: UpdateOne")
	}
	if res.MatchedCount == 0 {
		return dailyfeed.ErrMirrorNotFound
	}
	return nil
}

func (s *DocumentStore) History(ctx context.Context, subjectPK int64) ([]*models.ContentDocument, error) {
	cursor, err := s.coll.Find(ctx,
		bson.M{"subject_pk": subjectPK},
		options.Find().SetSort(bson.D{{Key: "version", Value: 1}}),
	)
	if err != nil {
		return nil, errors.Wrap(err, "mongodb:History: Find")
	}
	defer cursor.Close(ctx)

	docs := make([]*models.ContentDocument, 0)
	if err := cursor.All(ctx, &docs); err != nil {
		return nil, errors.Wrap(err, "mongodb:History: All")
	}
	return docs, nil
}
