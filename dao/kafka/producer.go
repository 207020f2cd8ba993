package kafka

import (
	"context"
	"dailyfeed/models"
	"encoding/json"
	"strconv"

	"github.com/pkg/errors"
	"github.com/segmentio/kafka-go"
)

type MessageWriter interface {
	WriteMessages(ctx context.Context, msgs ...kafka.Message) error
}

type Message struct {
	Type string `json:"type"` // 事件分类，如 post、comment_like
	Data any    `json:"data"`
}

// ActivityProducer 是活动事件的 broker 通道
type ActivityProducer struct {
	writer MessageWriter
	topics *TopicManager
	prefix string
	retry  int
}

func NewActivityProducer(writer MessageWriter, topics *TopicManager, prefix string, retry int) *ActivityProducer {
	if retry <= 0 {
		retry = 1
	}
	return &ActivityProducer{writer: writer, topics: topics, prefix: prefix, retry: retry}
}

func (p *ActivityProducer) Name() string {
	return ChannelName
}

// Deliver 写入事件发生当天的主题，key 为 subject id。token 只在 RPC 通道中使用
func (p *ActivityProducer) Deliver(ctx context.Context, event *models.ActivityEvent, _ string) error {
	topic := p.topics.TopicName(p.prefix, event.OccurredAt)
	if err := p.topics.Ensure(topic); err != nil {
		return errors.Wrap(err, "kafka:Deliver: Ensure")
	}

	key := strconv.FormatInt(event.SubjectID, 10)
	return writeMessage(ctx, p.writer, topic, key, p.retry, event.Category(), event)
}

func writeMessage(ctx context.Context, writer MessageWriter, topic, key string, retry int, _type string, content any) (err error) {
	val, err := json.Marshal(Message{Type: _type, Data: content})
	if err != nil {
		return errors.Wrap(err, "kafka-producer:writeMessage: Marshal")
	}

	msg := kafka.Message{
		Topic: topic,
		Key:   []byte(key),
		Value: val,
	}

	// 投递消息到 kafka，失败时本地重试
	for i := 0; i < retry; i++ {
		err = writer.WriteMessages(ctx, msg)
		if err == nil {
			return nil
		}
		if ctx.Err() != nil {
			break
		}
	}
	return errors.Wrap(err, "kafka-producer:writeMessage: WriteMessages")
}
