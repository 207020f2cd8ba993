package logic

import (
	"context"
	dailyfeed "dailyfeed/errors"
	"dailyfeed/logger"
	"dailyfeed/models"
	"encoding/json"
	"strconv"
	"time"

	"github.com/pkg/errors"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

type DeliveryState int

const (
	DeliveryDelivered DeliveryState = iota + 1 // 通道投递成功
	DeliveryCaptured                           // 通道失败，已写入死信
	DeliveryLost                               // 通道和死信都失败
	DeliveryRejected                           // 下游限流，既不重试也不写死信
)

func (s DeliveryState) String() string {
	switch s {
	case DeliveryDelivered:
		return "delivered"
	case DeliveryCaptured:
		return "captured"
	case DeliveryLost:
		return "lost"
	case DeliveryRejected:
		return "rejected"
	default:
		return "unknown"
	}
}

type Delivery struct {
	State   DeliveryState
	Channel string
	Cause   error // 投递成功时为 nil，失败时包装 ErrPublishFailed 或 ErrTooManyRequests
}

var activityDeliveries = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Name: "dailyfeed_activity_deliveries_total",
		Help: "Activity events by channel, category and final delivery state",
	},
	[]string{"channel", "category", "state"},
)

// Publisher 通过一个固定的通道投递活动事件，失败时写入死信
type Publisher struct {
	channel     Channel
	deadLetters DeadLetterStore
	now         func() time.Time
}

func NewPublisher(channel Channel, deadLetters DeadLetterStore) *Publisher {
	return &Publisher{channel: channel, deadLetters: deadLetters, now: time.Now}
}

func (p *Publisher) ChannelName() string {
	return p.channel.Name()
}

// Publish 只有两种情况返回错误：
//
// 1. 下游限流（ErrTooManyRequests），直接返回，不写死信
//
// 2. 通道和死信都失败（ErrPublishAndFallbackFailed），事件丢失
func (p *Publisher) Publish(ctx context.Context, event *models.ActivityEvent, token string) (d Delivery, err error) {
	d.Channel = p.channel.Name()
	defer func() {
		activityDeliveries.WithLabelValues(d.Channel, event.Category(), d.State.String()).Inc()
	}()

	cause := p.channel.Deliver(ctx, event, token)
	if cause == nil {
		d.State = DeliveryDelivered
		return d, nil
	}
	if errors.Is(cause, dailyfeed.ErrTooManyRequests) {
		d.State, d.Cause = DeliveryRejected, cause
		return d, errors.Wrap(cause, "logic:Publish: Deliver")
	}
	d.Cause = errors.Wrapf(dailyfeed.ErrPublishFailed, "%s: %v", d.Channel, cause)

	logger.Warnf("activity %s %s(%d) via %s failed, capturing to dead letter: %v",
		event.Kind, event.SubjectType, event.SubjectID, d.Channel, d.Cause)

	if err := p.capture(ctx, event); err != nil {
		d.State = DeliveryLost
		return d, errors.Wrapf(dailyfeed.ErrPublishAndFallbackFailed, "deliver: %v; capture: %v", d.Cause, err)
	}
	d.State = DeliveryCaptured
	return d, nil
}

func (p *Publisher) capture(ctx context.Context, event *models.ActivityEvent) error {
	payload, err := json.Marshal(event)
	if err != nil {
		return errors.Wrap(err, "logic:capture: Marshal")
	}

	record := &models.DeadLetterRecord{
		RoutingKey: event.Category(),
		MessageKey: strconv.FormatInt(event.SubjectID, 10),
		Channel:    p.channel.Name(),
		Payload:    string(payload),
		CapturedAt: p.now(),
	}
	return errors.Wrap(p.deadLetters.Capture(ctx, record), "logic:capture: Capture")
}
