package consumer

import (
	"context"
	"encoding/json"
	"testing"

	"github.com/rideon-rentals/service-rental/internal/common/kafka"
	"github.com/rideon-rentals/service-rental/internal/events"
	kafkago "github.com/segmentio/kafka-go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func TestHandleMessage_DropsMalformedEnvelope(t *testing.T) {
	c := &PaymentEventConsumer{logger: zap.NewNop()}

	err := c.handleMessage(context.Background(), kafkago.Message{Value: []byte("not json")})

	assert.NoError(t, err, "malformed envelopes must not be redelivered")
}

func TestHandleMessage_DropsMalformedCapturedPayload(t *testing.T) {
	c := &PaymentEventConsumer{logger: zap.NewNop()}

	ce, err := kafka.NewCloudEvent("service-payment", events.PaymentCaptured, "not an object")
	require.NoError(t, err)
	raw, err := json.Marshal(ce)
	require.NoError(t, err)

	err = c.handleMessage(context.Background(), kafkago.Message{Value: raw})

	assert.NoError(t, err, "undecodable payloads must not be redelivered")
}

func TestHandleMessage_IgnoresUnknownEventTypes(t *testing.T) {
	c := &PaymentEventConsumer{logger: zap.NewNop()}

	ce, err := kafka.NewCloudEvent("service-payment", "payment.refund_requested", map[string]string{"reason": "test"})
	require.NoError(t, err)
	raw, err := json.Marshal(ce)
	require.NoError(t, err)

	err = c.handleMessage(context.Background(), kafkago.Message{Value: raw})

	assert.NoError(t, err)
}
