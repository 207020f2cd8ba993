package logic

import (
	"dailyfeed/dao/activityrpc"
	"dailyfeed/dao/kafka"
	"dailyfeed/dao/memory"
	"dailyfeed/dao/mongodb"
	"dailyfeed/dao/mysql"
	"dailyfeed/dao/redis"
	"dailyfeed/logger"
	"fmt"
	"time"

	"github.com/spf13/viper"
)

const (
	PublishTypeKafka = "kafka"
	PublishTypeRPC   = "rpc"
)

var svc *ContentService

// InitContentService 按配置组装 ContentService，依赖的 dao 需要先初始化
func InitContentService() {
	var (
		postDocs, commentDocs   DocumentStore
		postLikes, commentLikes LikeStore
		deadLetters             DeadLetterStore
		locker                  Locker
	)

	switch backend := viper.GetString("storage.document_store"); backend {
	case "memory":
		postDocs, commentDocs = memory.NewDocumentStore(), memory.NewDocumentStore()
		postLikes, commentLikes = memory.NewLikeStore(), memory.NewLikeStore()
		deadLetters = memory.NewDeadLetterStore()
		locker = memory.NewKeyedLocker()
	case "mongo":
		db := mongodb.GetDatabase()
		postDocs = mongodb.NewDocumentStore(db.Collection(mongodb.CollectionPostDocuments))
		commentDocs = mongodb.NewDocumentStore(db.Collection(mongodb.CollectionCommentDocuments))
		postLikes = mongodb.NewLikeStore(db.Collection(mongodb.CollectionPostLikes))
		commentLikes = mongodb.NewLikeStore(db.Collection(mongodb.CollectionCommentLikes))
		deadLetters = mongodb.NewDeadLetterStore(db.Collection(mongodb.CollectionDeadLetters))
		locker = redis.NewLocker(redis.GetRDB())
	default:
		panic(fmt.Sprintf("unsupported storage.document_store: %s", backend))
	}

	postType := viper.GetString("service.post.publish_type")
	commentType := viper.GetString("service.comment.publish_type")
	postPublisher := NewPublisher(channelFor(postType, kafka.GetPostProducer()), deadLetters)
	commentPublisher := NewPublisher(channelFor(commentType, kafka.GetCommentProducer()), deadLetters)
	logger.Infof("activity channels: post=%s, comment=%s", postPublisher.ChannelName(), commentPublisher.ChannelName())

	svc = NewContentService(Dependencies{
		Store:            mysql.GetStore(),
		PostDocuments:    postDocs,
		CommentDocuments: commentDocs,
		PostLikes:        postLikes,
		CommentLikes:     commentLikes,
		Locker:           locker,
		PostPublisher:    postPublisher,
		CommentPublisher: commentPublisher,
	}, Config{
		MaxCommentDepth:    viper.GetInt("service.comment.max_depth"),
		LostEventPolicy:    viper.GetString("service.activity.lost_event_policy"),
		MirrorLockTTL:      time.Duration(viper.GetInt64("service.mirror.lock_ttl")) * time.Second,
		HistoryTimeout:     time.Duration(viper.GetInt64("service.mirror.history_timeout")) * time.Second,
		AfterCommitTimeout: time.Duration(viper.GetInt64("service.activity.after_commit_timeout")) * time.Second,
	})
}

func GetContentService() *ContentService {
	return svc
}

// SetContentService 替换全局服务，用于测试或自行组装依赖
func SetContentService(s *ContentService) {
	svc = s
}

// UsesKafka 判断是否有功能配置为 kafka 通道
func UsesKafka() bool {
	return viper.GetString("service.post.publish_type") == PublishTypeKafka ||
		viper.GetString("service.comment.publish_type") == PublishTypeKafka
}

func UsesRPC() bool {
	return viper.GetString("service.post.publish_type") == PublishTypeRPC ||
		viper.GetString("service.comment.publish_type") == PublishTypeRPC
}

// channelFor 通道在启动时确定，运行期间不再切换
func channelFor(publishType string, producer *kafka.ActivityProducer) Channel {
	switch publishType {
	case PublishTypeKafka:
		if producer == nil {
			panic("kafka publish type configured but kafka is not initialized")
		}
		return producer
	case PublishTypeRPC:
		client := activityrpc.GetClient()
		if client == nil {
			panic("rpc publish type configured but activity rpc client is not initialized")
		}
		return client
	default:
		panic(fmt.Sprintf("unsupported publish type: %s", publishType))
	}
}
