// Package consumer applies payment gateway events from Kafka to the booking
// ledger. It sits above the application layer; the event kinds and payload
// shapes it reads live in the leaf events package.
package consumer

import (
	"context"
	"encoding/json"

	"github.com/rideon-rentals/service-rental/internal/application"
	"github.com/rideon-rentals/service-rental/internal/common/domain"
	"github.com/rideon-rentals/service-rental/internal/common/kafka"
	"github.com/rideon-rentals/service-rental/internal/events"
	kafkago "github.com/segmentio/kafka-go"
	"go.uber.org/zap"
)

// PaymentEventConsumer listens to payment gateway events and applies settled
// online payments to the booking ledger.
type PaymentEventConsumer struct {
	consumer *kafka.Consumer
	service  *application.BookingService
	logger   *zap.Logger
}

// NewPaymentEventConsumer creates a new PaymentEventConsumer.
func NewPaymentEventConsumer(
	brokers []string,
	groupID string,
	service *application.BookingService,
	logger *zap.Logger,
) *PaymentEventConsumer {
	consumer := kafka.NewConsumer(brokers, groupID, events.TopicPaymentEvents, logger)
	return &PaymentEventConsumer{
		consumer: consumer,
		service:  service,
		logger:   logger,
	}
}

// Start begins consuming payment events. This blocks until the context is cancelled.
func (c *PaymentEventConsumer) Start(ctx context.Context) error {
	return c.consumer.Consume(ctx, c.handleMessage)
}

// Close closes the underlying Kafka consumer.
func (c *PaymentEventConsumer) Close() error {
	return c.consumer.Close()
}

func (c *PaymentEventConsumer) handleMessage(ctx context.Context, msg kafkago.Message) error {
	var cloudEvent kafka.CloudEvent
	if err := json.Unmarshal(msg.Value, &cloudEvent); err != nil {
		c.logger.Error("failed to parse cloud event from payment topic",
			zap.Error(err),
			zap.String("raw", string(msg.Value)),
		)
		return nil // Don't retry malformed messages
	}

	switch cloudEvent.Type {
	case events.PaymentCaptured:
		return c.handlePaymentCaptured(ctx, cloudEvent)
	default:
		c.logger.Debug("ignoring unhandled payment event type",
			zap.String("type", cloudEvent.Type),
		)
		return nil
	}
}

func (c *PaymentEventConsumer) handlePaymentCaptured(ctx context.Context, cloudEvent kafka.CloudEvent) error {
	var evt events.PaymentCapturedEvent
	if err := cloudEvent.ParseData(&evt); err != nil {
		c.logger.Error("failed to parse PaymentCapturedEvent data",
			zap.Error(err),
		)
		return nil // Don't retry malformed data
	}

	c.logger.Info("processing captured payment",
		zap.String("booking_id", evt.BookingID.String()),
		zap.String("payment_id", evt.PaymentID.String()),
	)

	method := evt.Method
	if method == "" {
		method = "online"
	}

	_, err := c.service.CollectPayment(ctx, evt.BookingID, application.CollectPaymentRequest{
		Amount:    evt.Amount,
		Method:    method,
		Reference: evt.Reference,
	})
	if err != nil {
		// Validation problems will never resolve on redelivery; everything
		// else gets retried.
		if domain.KindOf(err) == domain.KindValidation {
			c.logger.Error("dropping unapplicable captured payment",
				zap.String("booking_id", evt.BookingID.String()),
				zap.Error(err),
			)
			return nil
		}
		c.logger.Error("failed to apply captured payment",
			zap.String("booking_id", evt.BookingID.String()),
			zap.Error(err),
		)
		return err
	}

	c.logger.Info("captured payment applied to booking ledger",
		zap.String("booking_id", evt.BookingID.String()),
	)
	return nil
}
