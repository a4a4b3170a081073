package notifications

import (
	"context"
	"encoding/json"
	"errors"
	"testing"

	"railbook/internal/shared/config"

	"github.com/IBM/sarama"
	"github.com/IBM/sarama/mocks"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestKafkaPublisher_PublishBookingEvent(t *testing.T) {
	producer := mocks.NewSyncProducer(t, nil)
	producer.ExpectSendMessageWithCheckerFunctionAndSucceed(func(value []byte) error {
		var got BookingEvent
		if err := json.Unmarshal(value, &got); err != nil {
			return err
		}
		if got.PNR != "PNRAB12CD" || got.Type != EventBookingConfirmed {
			return errors.New("unexpected event payload")
		}
		return nil
	})

	pub := NewKafkaPublisherWithProducer(producer, "booking-events")
	event := NewBookingEvent(EventBookingConfirmed, "PNRAB12CD")
	event.UserID = 7

	require.NoError(t, pub.PublishBookingEvent(context.Background(), event))
	require.NoError(t, pub.Close())
}

func TestKafkaPublisher_SendFailure(t *testing.T) {
	producer := mocks.NewSyncProducer(t, nil)
	producer.ExpectSendMessageAndFail(sarama.ErrOutOfBrokers)

	pub := NewKafkaPublisherWithProducer(producer, "booking-events")
	err := pub.PublishBookingEvent(context.Background(), NewBookingEvent(EventBookingCancelled, "PNR000001"))

	require.Error(t, err)
	assert.ErrorIs(t, err, sarama.ErrOutOfBrokers)
	require.NoError(t, pub.Close())
}

func TestKafkaPublisher_CancelledContext(t *testing.T) {
	producer := mocks.NewSyncProducer(t, nil)
	pub := NewKafkaPublisherWithProducer(producer, "booking-events")

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	err := pub.PublishBookingEvent(ctx, NewBookingEvent(EventBookingWaitlisted, "PNR000002"))
	assert.ErrorIs(t, err, context.Canceled)
	require.NoError(t, pub.Close())
}

func TestBookingEvent(t *testing.T) {
	event := NewBookingEvent(EventBookingWaitlisted, "PNRZZ9999")
	assert.Equal(t, "PNRZZ9999", event.GetPartitionKey())
	assert.NotEqual(t, uuid.Nil, event.ID)

	headers := createHeaders(event)
	require.NotEmpty(t, headers)
	assert.Equal(t, "event_id", string(headers[0].Key))
	assert.Equal(t, event.ID.String(), string(headers[0].Value))
}

func TestNew_DisabledIsNoop(t *testing.T) {
	pub, err := New(config.KafkaConfig{Enabled: false})
	require.NoError(t, err)
	assert.IsType(t, NoopPublisher{}, pub)
	assert.NoError(t, pub.PublishBookingEvent(context.Background(), NewBookingEvent(EventBookingConfirmed, "PNR1")))
	assert.NoError(t, pub.Close())
}

func TestNewKafkaProducerConfig(t *testing.T) {
	cfg := NewKafkaProducerConfig(config.KafkaConfig{Brokers: []string{"kafka:9092"}, Topic: "booking-events", RetryMax: 5})
	sc := cfg.saramaConfig()

	assert.Equal(t, sarama.WaitForAll, sc.Producer.RequiredAcks)
	assert.True(t, sc.Producer.Idempotent)
	assert.Equal(t, 1, sc.Net.MaxOpenRequests)
	assert.Equal(t, 5, sc.Producer.Retry.Max)
	assert.True(t, sc.Producer.Return.Successes)
}
