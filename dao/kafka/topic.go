package kafka

import (
	"net"
	"strconv"
	"time"

	"github.com/bluele/gcache"
	"github.com/pkg/errors"
	"github.com/segmentio/kafka-go"
)

type TopicOptions struct {
	Addr              []string
	Partitions        int
	ReplicationFactor int
	RetentionMS       int64
	DateFormat        string // 例如 20060102
}

// TopicManager 负责按天命名并创建活动主题
//
// 已确认存在的主题记录在本地缓存中，避免每条消息都访问 controller
type TopicManager struct {
	opts   TopicOptions
	known  gcache.Cache
	create func(configs ...kafka.TopicConfig) error
}

func NewTopicManager(opts TopicOptions, known gcache.Cache) *TopicManager {
	if opts.DateFormat == "" {
		opts.DateFormat = "20060102"
	}
	m := &TopicManager{opts: opts, known: known}
	m.create = m.createTopics
	return m
}

// TopicName 每个自然日一个主题：prefix + 日期
func (m *TopicManager) TopicName(prefix string, day time.Time) string {
	return prefix + day.Format(m.opts.DateFormat)
}

// Ensure 主题不存在时创建，已存在视为成功
func (m *TopicManager) Ensure(name string) error {
	if _, err := m.known.Get(name); err == nil {
		return nil
	}

	err := m.create(kafka.TopicConfig{
		Topic:             name,
		NumPartitions:     m.opts.Partitions,
		ReplicationFactor: m.opts.ReplicationFactor,
		ConfigEntries: []kafka.ConfigEntry{
			{ConfigName: "retention.ms", ConfigValue: strconv.FormatInt(m.opts.RetentionMS, 10)},
		},
	})
	if err != nil && !errors.Is(err, kafka.TopicAlreadyExists) {
		return errors.Wrapf(err, "kafka:Ensure: create topic %s", name)
	}

	_ = m.known.Set(name, struct{}{})
	return nil
}

// EnsureDaily 为每个前缀创建 days 对应的主题
func (m *TopicManager) EnsureDaily(prefixes []string, days ...time.Time) error {
	for _, prefix := range prefixes {
		for _, day := range days {
			if err := m.Ensure(m.TopicName(prefix, day)); err != nil {
				return err
			}
		}
	}
	return nil
}

func (m *TopicManager) createTopics(configs ...kafka.TopicConfig) error {
	// 连接至任意 kafka 节点
	if len(m.opts.Addr) == 0 {
		return errors.New("kafka address length should not be zero")
	}
	conn, err := kafka.Dial("tcp", m.opts.Addr[0])
	if err != nil {
		return errors.Wrap(err, "kafka:createTopics: Dial")
	}
	defer conn.Close()

	// 获取当前控制节点信息
	controller, err := conn.Controller()
	if err != nil {
		return errors.Wrap(err, "kafka:createTopics: Controller")
	}
	// 连接至 controller 节点
	controllerConn, err := kafka.Dial("tcp", net.JoinHostPort(controller.Host, strconv.Itoa(controller.Port)))
	if err != nil {
		return errors.Wrap(err, "kafka:createTopics: Dial(controller)")
	}
	defer controllerConn.Close()

	return controllerConn.CreateTopics(configs...)
}
