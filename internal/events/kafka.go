package events

import (
	"context"
	"encoding/json"
	"fmt"
	"strconv"
	"time"

	"github.com/IBM/sarama"

	"github.com/Windi-Fikriyansyah/skillhive_be/internal/logger"
)

type Kafka struct {
	producer sarama.SyncProducer
}

// NewKafka dials the brokers, retrying while they come up.
func NewKafka(brokers []string, attempts int, wait time.Duration) (*Kafka, error) {
	config := sarama.NewConfig()
	config.Producer.Return.Successes = true
	config.Producer.RequiredAcks = sarama.WaitForAll

	if attempts < 1 {
		attempts = 1
	}

	var err error
	for i := 1; i <= attempts; i++ {
		var producer sarama.SyncProducer
		producer, err = sarama.NewSyncProducer(brokers, config)
		if err == nil {
			logger.Info("kafka producer initialized", "brokers", brokers)
			return NewKafkaWithProducer(producer), nil
		}
		logger.Warn("waiting for kafka", "attempt", i, "of", attempts, "error", err)
		if i < attempts {
			time.Sleep(wait)
		}
	}
	return nil, fmt.Errorf("events: kafka producer: %w", err)
}

func NewKafkaWithProducer(p sarama.SyncProducer) *Kafka {
	return &Kafka{producer: p}
}

func (k *Kafka) Publish(_ context.Context, topic string, ev Event) error {
	if ev.Type == "" {
		ev.Type = topic
	}
	if ev.OccurredAt.IsZero() {
		ev.OccurredAt = time.Now().UTC()
	}

	data, err := json.Marshal(ev)
	if err != nil {
		return fmt.Errorf("events: marshal %s: %w", topic, err)
	}

	msg := &sarama.ProducerMessage{
		Topic:     topic,
		Key:       sarama.StringEncoder(strconv.FormatUint(uint64(ev.EntityID), 10)),
		Value:     sarama.ByteEncoder(data),
		Timestamp: ev.OccurredAt,
	}
	if _, _, err := k.producer.SendMessage(msg); err != nil {
		return fmt.Errorf("events: send %s: %w", topic, err)
	}
	return nil
}

func (k *Kafka) Close() error {
	return k.producer.Close()
}
