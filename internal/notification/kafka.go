package notification

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/twmb/franz-go/pkg/kgo"
)

// DefaultTopic carries workflow notification events.
const DefaultTopic = "covergate.notifications"

// KafkaSender publishes events to a Kafka topic. Downstream consumers fan
// out to the actual email/SMS gateways.
type KafkaSender struct {
	client *kgo.Client
	topic  string
}

// NewKafkaSender connects a producer to the given comma-separated brokers.
func NewKafkaSender(brokers string, topic string) (*KafkaSender, error) {
	if topic == "" {
		topic = DefaultTopic
	}
	client, err := kgo.NewClient(
		kgo.SeedBrokers(strings.Split(brokers, ",")...),
		kgo.ProducerBatchCompression(kgo.SnappyCompression()),
	)
	if err != nil {
		return nil, fmt.Errorf("kafka client: %w", err)
	}
	return &KafkaSender{client: client, topic: topic}, nil
}

func (s *KafkaSender) Send(ctx context.Context, event Event) error {
	payload, err := json.Marshal(event)
	if err != nil {
		return fmt.Errorf("encode notification: %w", err)
	}
	record := &kgo.Record{
		Topic: s.topic,
		Key:   []byte(event.SessionToken),
		Value: payload,
	}
	if err := s.client.ProduceSync(ctx, record).FirstErr(); err != nil {
		return fmt.Errorf("produce notification: %w", err)
	}
	return nil
}

func (s *KafkaSender) Close() {
	s.client.Close()
}
