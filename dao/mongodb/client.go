package mongodb

import (
	"context"
	"fmt"
	"time"

	"github.com/pkg/errors"
	"github.com/spf13/viper"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

const (
	CollectionPostDocuments    = "post_documents"
	CollectionCommentDocuments = "comment_documents"
	CollectionPostLikes        = "post_likes"
	CollectionCommentLikes     = "comment_likes"
	CollectionDeadLetters      = "activity_dead_letters"
)

var (
	client       *mongo.Client
	database     *mongo.Database
	mongoTimeout time.Duration
)

func InitMongo() {
	mongoTimeout = time.Duration(viper.GetInt64("mongo.max_oper_time")) * time.Second

	ctx, cancel := context.WithTimeout(context.Background(), mongoTimeout)
	defer cancel()

	var err error
	client, err = mongo.Connect(ctx, options.Client().ApplyURI(viper.GetString("mongo.uri")))
	if err != nil {
		panic(fmt.Sprintf("mongo: %s", err.Error()))
	}
	if err = client.Ping(ctx, nil); err != nil {
		panic(fmt.Sprintf("mongo: %s", err.Error()))
	}
	database = client.Database(viper.GetString("mongo.database"))

	if err = EnsureIndexes(ctx, database); err != nil {
		panic(fmt.Sprintf("mongo: %s", err.Error()))
	}
}

func GetDatabase() *mongo.Database {
	return database
}

func Close() error {
	if client == nil {
		return nil
	}
	ctx, cancel := context.WithTimeout(context.Background(), mongoTimeout)
	defer cancel()
	return errors.Wrap(client.Disconnect(ctx), "mongodb:Close: Disconnect")
}

// EnsureIndexes 创建各集合需要的索引，重复执行是安全的
func EnsureIndexes(ctx context.Context, db *mongo.Database) error {
	for _, name := range []string{CollectionPostDocuments, CollectionCommentDocuments} {
		if err := ensureDocumentIndexes(ctx, db.Collection(name)); err != nil {
			return errors.Wrapf(err, "mongodb:EnsureIndexes: %s", name)
		}
	}
	for _, name := range []string{CollectionPostLikes, CollectionCommentLikes} {
		if err := ensureLikeIndexes(ctx, db.Collection(name)); err != nil {
			return errors.Wrapf(err, "mongodb:EnsureIndexes: %s", name)
		}
	}
	if err := ensureDeadLetterIndexes(ctx, db.Collection(CollectionDeadLetters)); err != nil {
		return errors.Wrapf(err, "mongodb:EnsureIndexes: %s", CollectionDeadLetters)
	}
	return nil
}
