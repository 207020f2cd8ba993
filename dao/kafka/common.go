package kafka

import (
	"dailyfeed/dao/localcache"
	"time"

	"github.com/segmentio/kafka-go"
	"github.com/spf13/viper"
)

const ChannelName = "kafka"

var (
	writer   *kafka.Writer
	topics   *TopicManager
	post     *ActivityProducer
	comment  *ActivityProducer
	prefixes []string
)

func InitKafka() {
	addr := viper.GetStringSlice("kafka.addr")
	if len(addr) == 0 {
		panic("kafka address length should not be zero")
	}

	writer = &kafka.Writer{
		Addr:         kafka.TCP(addr...),
		Balancer:     &kafka.Hash{},    // 相同 subject 的事件进入同一个 partition，保证顺序
		RequiredAcks: kafka.RequireAll, // all
		BatchTimeout: 10 * time.Millisecond,
	}

	topics = NewTopicManager(TopicOptions{
		Addr:              addr,
		Partitions:        viper.GetInt("kafka.partition"),
		ReplicationFactor: viper.GetInt("kafka.replication_factor"),
		RetentionMS:       viper.GetInt64("kafka.retention_ms"),
		DateFormat:        viper.GetString("kafka.topic.date_format"),
	}, localcache.New(viper.GetInt("kafka.topic.cache_size"), 48*time.Hour))

	retry := viper.GetInt("kafka.retry.producer")
	postPrefix := viper.GetString("kafka.topic.post_prefix")
	commentPrefix := viper.GetString("kafka.topic.comment_prefix")
	prefixes = []string{postPrefix, commentPrefix}

	post = NewActivityProducer(writer, topics, postPrefix, retry)
	comment = NewActivityProducer(writer, topics, commentPrefix, retry)
}

func GetPostProducer() *ActivityProducer {
	return post
}

func GetCommentProducer() *ActivityProducer {
	return comment
}

func GetTopicManager() *TopicManager {
	return topics
}

// Prefixes 返回所有活动主题的前缀
func Prefixes() []string {
	return prefixes
}

func Close() error {
	if writer == nil {
		return nil
	}
	return writer.Close()
}
