package pubsub

import (
	"context"
	"encoding/json"
	"strings"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"

	"github.com/walletd/walletd/internal/domain"
)

// Handler receives decoded events from the listener. fanout.Hub satisfies
// it.
type Handler interface {
	PublishBalance(accountID string, amount decimal.Decimal)
	PublishRecord(accountID string, record *domain.TransactionRecord)
}

// Listener subscribes to the wallet channels and forwards decoded events to
// the Handler. Every server instance runs one listener, so subscriptions
// work regardless of which instance committed the change.
type Listener struct {
	client  *redis.Client
	handler Handler
	logger  zerolog.Logger
}

// NewListener creates a new Listener.
func NewListener(client *redis.Client, handler Handler, logger zerolog.Logger) *Listener {
	return &Listener{
		client:  client,
		handler: handler,
		logger:  logger,
	}
}

// Run consumes messages until the context is cancelled. The go-redis
// subscription reconnects on its own; malformed messages are logged and
// dropped.
func (l *Listener) Run(ctx context.Context) error {
	sub := l.client.PSubscribe(ctx, balanceChannelPrefix+"*", recordChannelPrefix+"*")
	defer sub.Close()

	l.logger.Info().Msg("pubsub listener started")

	ch := sub.Channel()

	for {
		select {
		case <-ctx.Done():
			l.logger.Info().Msg("pubsub listener shutting down")
			return ctx.Err()
		case msg, ok := <-ch:
			if !ok {
				return nil
			}
			l.dispatch(msg)
		}
	}
}

func (l *Listener) dispatch(msg *redis.Message) {
	switch {
	case strings.HasPrefix(msg.Channel, balanceChannelPrefix):
		l.handleBalance(msg)
	case strings.HasPrefix(msg.Channel, recordChannelPrefix):
		l.handleRecord(msg)
	}
}

func (l *Listener) handleBalance(msg *redis.Message) {
	var payload domain.BalanceChangedEvent
	if err := json.Unmarshal([]byte(msg.Payload), &payload); err != nil {
		l.logger.Warn().Err(err).Str("channel", msg.Channel).Msg("dropping malformed balance event")
		return
	}

	amount, err := decimal.NewFromString(payload.Amount)
	if err != nil {
		l.logger.Warn().Err(err).Str("channel", msg.Channel).Msg("dropping balance event with bad amount")
		return
	}

	accountID := strings.TrimPrefix(msg.Channel, balanceChannelPrefix)
	l.handler.PublishBalance(accountID, amount)
}

func (l *Listener) handleRecord(msg *redis.Message) {
	var payload domain.RecordAppendedEvent
	if err := json.Unmarshal([]byte(msg.Payload), &payload); err != nil {
		l.logger.Warn().Err(err).Str("channel", msg.Channel).Msg("dropping malformed record event")
		return
	}

	amount, err := decimal.NewFromString(payload.Amount)
	if err != nil {
		l.logger.Warn().Err(err).Str("channel", msg.Channel).Msg("dropping record event with bad amount")
		return
	}

	timestamp, _ := time.Parse(time.RFC3339Nano, payload.Timestamp)

	accountID := strings.TrimPrefix(msg.Channel, recordChannelPrefix)
	l.handler.PublishRecord(accountID, &domain.TransactionRecord{
		ID:           payload.RecordID,
		AccountID:    payload.AccountID,
		Counterparty: payload.Counterparty,
		Description:  payload.Description,
		Kind:         domain.RecordKind(payload.Kind),
		Amount:       amount,
		Timestamp:    timestamp,
	})
}
