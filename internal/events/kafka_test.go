package events

import (
	"context"
	"encoding/json"
	"errors"
	"testing"

	"github.com/IBM/sarama"
	"github.com/IBM/sarama/mocks"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestKafkaPublish(t *testing.T) {
	cfg := mocks.NewTestConfig()
	cfg.Producer.Return.Successes = true
	producer := mocks.NewSyncProducer(t, cfg)

	var got Event
	producer.ExpectSendMessageWithMessageCheckerFunctionAndSucceed(func(msg *sarama.ProducerMessage) error {
		if msg.Topic != TopicApplicationStatusChanged {
			return errors.New("unexpected topic " + msg.Topic)
		}
		raw, err := msg.Value.Encode()
		if err != nil {
			return err
		}
		return json.Unmarshal(raw, &got)
	})

	k := NewKafkaWithProducer(producer)
	err := k.Publish(context.Background(), TopicApplicationStatusChanged, Event{
		EntityID:  7,
		ProjectID: 3,
		Status:    "approved",
	})
	require.NoError(t, err)
	require.NoError(t, k.Close())

	assert.Equal(t, TopicApplicationStatusChanged, got.Type)
	assert.Equal(t, uint(7), got.EntityID)
	assert.Equal(t, "approved", got.Status)
	assert.False(t, got.OccurredAt.IsZero())
}

func TestKafkaPublishFailure(t *testing.T) {
	producer := mocks.NewSyncProducer(t, mocks.NewTestConfig())
	producer.ExpectSendMessageAndFail(sarama.ErrOutOfBrokers)

	k := NewKafkaWithProducer(producer)
	err := k.Publish(context.Background(), TopicProjectStatusChanged, Event{EntityID: 1})
	assert.ErrorIs(t, err, sarama.ErrOutOfBrokers)
	require.NoError(t, k.Close())
}

func TestNoop(t *testing.T) {
	var p Publisher = Noop{}
	assert.NoError(t, p.Publish(context.Background(), "x", Event{}))
	assert.NoError(t, p.Close())
}
