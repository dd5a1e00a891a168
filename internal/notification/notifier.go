// Package notification dispatches booking lifecycle notifications to Kafka.
// Delivery is best effort: a broker outage never fails or stalls the
// transaction that triggered the notification.
package notification

import (
	"context"
	"time"

	"github.com/rideon-rentals/service-rental/internal/common/kafka"
	"github.com/rideon-rentals/service-rental/internal/events"
	"go.uber.org/zap"
)

// publishTimeout bounds the background write so a dead broker cannot pile up
// publish goroutines indefinitely.
const publishTimeout = 10 * time.Second

type eventPublisher interface {
	PublishEvent(ctx context.Context, topic string, event kafka.CloudEvent) error
}

// KafkaNotifier publishes notifications on the booking events topic.
type KafkaNotifier struct {
	producer eventPublisher
	source   string
	logger   *zap.Logger
}

// NewKafkaNotifier creates a new KafkaNotifier.
func NewKafkaNotifier(producer *kafka.Producer, source string, logger *zap.Logger) *KafkaNotifier {
	return &KafkaNotifier{
		producer: producer,
		source:   source,
		logger:   logger,
	}
}

// Notify hands the payload to a background publish and returns immediately.
// The caller's cancellation does not reach the write; a request that commits
// and then times out on the client side still gets its notification out.
// Failures are logged and swallowed.
func (n *KafkaNotifier) Notify(ctx context.Context, eventKind string, payload interface{}) {
	event, err := kafka.NewCloudEvent(n.source, eventKind, payload)
	if err != nil {
		n.logger.Error("failed to build notification event",
			zap.String("event_kind", eventKind), zap.Error(err))
		return
	}

	publishCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), publishTimeout)
	go func() {
		defer cancel()
		if err := n.producer.PublishEvent(publishCtx, events.TopicBookingEvents, event); err != nil {
			n.logger.Error("failed to publish notification",
				zap.String("event_kind", eventKind), zap.Error(err))
		}
	}()
}

// NoopNotifier discards all notifications. Used in tests and when Kafka is
// not configured.
type NoopNotifier struct{}

// Notify does nothing.
func (NoopNotifier) Notify(ctx context.Context, eventKind string, payload interface{}) {}
