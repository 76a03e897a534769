// Package eventbus wraps the watermill NATS JetStream transport behind a
// small interface the modules share.
package eventbus

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/ThreeDotsLabs/watermill"
	wmnats "github.com/ThreeDotsLabs/watermill-nats/v2/pkg/nats"
	"github.com/ThreeDotsLabs/watermill/message"
	"github.com/ThreeDotsLabs/watermill/message/router/middleware"

	nc "github.com/nats-io/nats.go"

	"github.com/tarok-klub/tarok-backend/app/shared/attr"
)

// EventBus is the pub/sub surface modules depend on.
type EventBus interface {
	Publish(topic string, messages ...*message.Message) error
	Subscribe(ctx context.Context, topic string) (<-chan *message.Message, error)
	Close() error
}

// NATSEventBus is the JetStream-backed EventBus used in production.
type NATSEventBus struct {
	publisher  message.Publisher
	subscriber message.Subscriber
}

var _ EventBus = (*NATSEventBus)(nil)

// NewNATSEventBus connects a watermill publisher and subscriber to the given
// NATS URL. JetStream streams are auto-provisioned per topic.
func NewNATSEventBus(natsURL string, logger watermill.LoggerAdapter) (*NATSEventBus, error) {
	marshaler := &wmnats.GobMarshaler{}
	options := []nc.Option{
		nc.RetryOnFailedConnect(true),
		nc.Timeout(30 * time.Second),
		nc.ReconnectWait(1 * time.Second),
	}

	jsConfig := wmnats.JetStreamConfig{
		Disabled:      false,
		AutoProvision: true,
	}

	publisher, err := wmnats.NewPublisher(
		wmnats.PublisherConfig{
			URL:               natsURL,
			NatsOptions:       options,
			Marshaler:         marshaler,
			JetStream:         jsConfig,
			SubjectCalculator: wmnats.DefaultSubjectCalculator,
		},
		logger,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to create NATS publisher: %w", err)
	}

	subscriber, err := wmnats.NewSubscriber(
		wmnats.SubscriberConfig{
			URL:               natsURL,
			NatsOptions:       options,
			Unmarshaler:       marshaler,
			JetStream:         jsConfig,
			SubjectCalculator: wmnats.DefaultSubjectCalculator,
		},
		logger,
	)
	if err != nil {
		_ = publisher.Close()
		return nil, fmt.Errorf("failed to create NATS subscriber: %w", err)
	}

	return &NATSEventBus{publisher: publisher, subscriber: subscriber}, nil
}

// Publish publishes messages to the given topic.
func (b *NATSEventBus) Publish(topic string, messages ...*message.Message) error {
	return b.publisher.Publish(topic, messages...)
}

// Subscribe subscribes to a topic; messages arrive until ctx is canceled.
func (b *NATSEventBus) Subscribe(ctx context.Context, topic string) (<-chan *message.Message, error) {
	return b.subscriber.Subscribe(ctx, topic)
}

// Close closes the publisher and subscriber.
func (b *NATSEventBus) Close() error {
	var errs []error
	if err := b.subscriber.Close(); err != nil {
		errs = append(errs, fmt.Errorf("failed to close subscriber: %w", err))
	}
	if err := b.publisher.Close(); err != nil {
		errs = append(errs, fmt.Errorf("failed to close publisher: %w", err))
	}
	if len(errs) > 0 {
		return fmt.Errorf("multiple errors occurred during close: %v", errs)
	}
	return nil
}

// NewMessage builds a watermill message with a JSON payload and the
// context's correlation ID carried in metadata.
func NewMessage(ctx context.Context, payload any) (*message.Message, error) {
	data, err := json.Marshal(payload)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal event payload: %w", err)
	}

	msg := message.NewMessage(watermill.NewUUID(), data)
	if correlationID := attr.CorrelationIDFromContext(ctx); correlationID != "" {
		middleware.SetCorrelationID(correlationID, msg)
	}
	return msg, nil
}
