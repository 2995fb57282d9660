// Package egress publishes appended domain events to downstream consumers.
// Publication is at-least-once: the event log stays the source of truth and
// consumers deduplicate by organization id and stream version.
package egress

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"github.com/twmb/franz-go/pkg/kgo"

	"github.com/orgstack/orgunit-engine-go/eventlog"
	"github.com/orgstack/orgunit-engine-go/orgunit/shell"
)

var (
	// ErrNoBrokers is returned when a publisher is built without seed brokers.
	ErrNoBrokers = errors.New("at least one kafka broker is required")

	// ErrEmptyTopic is returned when a publisher is built without a topic.
	ErrEmptyTopic = errors.New("kafka topic must not be empty")

	// ErrEncodingEnvelopeFailed is returned when an envelope cannot be serialized.
	ErrEncodingEnvelopeFailed = errors.New("encoding event envelope failed")

	// ErrPublishingFailed is returned when producing to Kafka fails.
	ErrPublishingFailed = errors.New("publishing events failed")
)

// wireEnvelope is the JSON shape written to the topic.
type wireEnvelope struct {
	OrganizationID string              `json:"organization_id"`
	Version        eventlog.Version    `json:"version"`
	EventType      string              `json:"event_type"`
	OccurredAt     time.Time           `json:"occurred_at"`
	Payload        json.RawMessage     `json:"payload"`
	Metadata       shell.EventMetadata `json:"metadata"`
}

// KafkaPublisher implements shell.Publisher on top of franz-go.
// Records are keyed by organization id so one unit's events stay ordered
// within a partition.
type KafkaPublisher struct {
	client *kgo.Client
	topic  string
	logger eventlog.Logger
}

// KafkaOption defines a functional option for configuring the publisher.
type KafkaOption func(*KafkaPublisher)

// WithLogger sets an optional logger for publish failures.
func WithLogger(logger eventlog.Logger) KafkaOption {
	return func(p *KafkaPublisher) {
		p.logger = logger
	}
}

// NewKafkaPublisher creates a publisher producing to the given topic.
func NewKafkaPublisher(brokers []string, topic string, options ...KafkaOption) (*KafkaPublisher, error) {
	if len(brokers) == 0 {
		return nil, ErrNoBrokers
	}
	if topic == "" {
		return nil, ErrEmptyTopic
	}

	client, err := kgo.NewClient(
		kgo.SeedBrokers(brokers...),
		kgo.DefaultProduceTopic(topic),
		kgo.RequiredAcks(kgo.AllISRAcks()),
		kgo.ProducerBatchCompression(kgo.SnappyCompression()),
	)
	if err != nil {
		return nil, err
	}

	publisher := &KafkaPublisher{
		client: client,
		topic:  topic,
	}

	for _, option := range options {
		option(publisher)
	}

	return publisher, nil
}

// Publish produces one record per envelope and waits for broker acknowledgement.
func (p *KafkaPublisher) Publish(ctx context.Context, envelopes ...shell.EventEnvelope) error {
	if len(envelopes) == 0 {
		return nil
	}

	records := make([]*kgo.Record, 0, len(envelopes))

	for _, envelope := range envelopes {
		payload, err := json.Marshal(envelope.DomainEvent)
		if err != nil {
			return errors.Join(ErrEncodingEnvelopeFailed, err)
		}

		value, err := json.Marshal(wireEnvelope{
			OrganizationID: envelope.OrganizationID.String(),
			Version:        envelope.Version,
			EventType:      envelope.DomainEvent.IsEventType(),
			OccurredAt:     envelope.DomainEvent.HasOccurredAt(),
			Payload:        payload,
			Metadata:       envelope.EventMetadata,
		})
		if err != nil {
			return errors.Join(ErrEncodingEnvelopeFailed, err)
		}

		records = append(records, &kgo.Record{
			Key:   []byte(envelope.OrganizationID.String()),
			Value: value,
			Topic: p.topic,
		})
	}

	if err := p.client.ProduceSync(ctx, records...).FirstErr(); err != nil {
		if p.logger != nil {
			p.logger.Error("kafka produce failed", "error", err.Error(), "topic", p.topic)
		}

		return errors.Join(ErrPublishingFailed, err)
	}

	return nil
}

// Close flushes and closes the underlying client.
func (p *KafkaPublisher) Close() {
	p.client.Close()
}

var _ shell.Publisher = (*KafkaPublisher)(nil)
