package pubsub

import (
	"context"
	"encoding/json"

	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"

	"github.com/walletd/walletd/internal/domain"
)

// Channel name prefixes. One channel per account per stream keeps
// subscriptions cheap to filter on the listening side.
const (
	balanceChannelPrefix = "wallet.balance."
	recordChannelPrefix  = "wallet.records."
)

// Publisher pushes outbox events onto Redis pub/sub channels. It implements
// dispatcher.Publisher.
type Publisher struct {
	client *redis.Client
	logger zerolog.Logger
}

// NewPublisher creates a new Publisher.
func NewPublisher(client *redis.Client, logger zerolog.Logger) *Publisher {
	return &Publisher{
		client: client,
		logger: logger,
	}
}

// Publish sends one event to its account channel. Events of unknown
// aggregate types are skipped, not failed: failing would wedge the outbox.
func (p *Publisher) Publish(ctx context.Context, event *domain.OutboxEvent) error {
	var channel string

	switch event.AggregateType {
	case domain.AggregateTypeBalance:
		channel = balanceChannelPrefix + event.AggregateID
	case domain.AggregateTypeRecord:
		channel = recordChannelPrefix + event.AggregateID
	default:
		p.logger.Warn().
			Str("event_id", event.ID).
			Str("aggregate_type", event.AggregateType).
			Msg("skipping event of unknown aggregate type")
		return nil
	}

	payload, err := json.Marshal(event.Payload)
	if err != nil {
		return err
	}

	return p.client.Publish(ctx, channel, payload).Err()
}
