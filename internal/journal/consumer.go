package journal

import (
	"context"

	"medfollow-client/internal/pkg/logger"
	"medfollow-client/pkg/events"

	"github.com/ThreeDotsLabs/watermill/message"
)

// Relay forwards selected events off-process (NATS JetStream in production).
type Relay interface {
	Publish(ctx context.Context, event events.Event) error
}

// RelayedTypes are the events a care desk must see.
var RelayedTypes = map[string]bool{
	events.TypeEmergencyEscalated: true,
	events.TypeCareCallRequested:  true,
}

type Consumer struct {
	subscriber message.Subscriber
	topic      string
	logger     logger.ILogger
	relay      Relay
}

// NewConsumer writes every journal event to log and hands RelayedTypes to relay.
// relay may be nil.
func NewConsumer(subscriber message.Subscriber, topic string, log logger.ILogger, relay Relay) *Consumer {
	return &Consumer{subscriber: subscriber, topic: topic, logger: log, relay: relay}
}

func (c *Consumer) Consume(ctx context.Context) error {
	messages, err := c.subscriber.Subscribe(ctx, c.topic)
	if err != nil {
		return err
	}

	go func() {
		for msg := range messages {
			c.processMessage(ctx, msg)
		}
	}()

	return nil
}

func (c *Consumer) processMessage(ctx context.Context, msg *message.Message) {
	evt, err := events.Unmarshal(msg.Payload)
	if err != nil {
		c.logger.Error("JOURNAL", "Failed to decode journal message", map[string]interface{}{
			"message_id": msg.UUID,
			"error":      err.Error(),
		})
		msg.Ack() // undecodable messages are never retried
		return
	}

	details := map[string]interface{}{"occurred_at": evt.OccurredAt}
	for k, v := range evt.Data {
		details[k] = v
	}
	c.logger.Info("JOURNAL", evt.Type, details)

	if c.relay != nil && RelayedTypes[evt.Type] {
		if err := c.relay.Publish(ctx, evt); err != nil {
			c.logger.Warn("JOURNAL", "Failed to relay event", map[string]interface{}{
				"type":  evt.Type,
				"error": err.Error(),
			})
		}
	}

	msg.Ack()
}
