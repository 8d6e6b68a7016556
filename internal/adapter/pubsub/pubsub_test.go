package pubsub

import (
	"context"
	"testing"
	"time"

	miniredis "github.com/alicebob/miniredis/v2"
	redislib "github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"

	"github.com/walletd/walletd/internal/domain"
)

func newTestClient(t *testing.T) *redislib.Client {
	t.Helper()

	mr := miniredis.RunT(t)
	client := redislib.NewClient(&redislib.Options{Addr: mr.Addr()})
	t.Cleanup(func() { client.Close() })

	return client
}

type capturingHandler struct {
	balances chan balanceUpdate
	records  chan *domain.TransactionRecord
}

type balanceUpdate struct {
	accountID string
	amount    decimal.Decimal
}

func newCapturingHandler() *capturingHandler {
	return &capturingHandler{
		balances: make(chan balanceUpdate, 16),
		records:  make(chan *domain.TransactionRecord, 16),
	}
}

func (h *capturingHandler) PublishBalance(accountID string, amount decimal.Decimal) {
	h.balances <- balanceUpdate{accountID: accountID, amount: amount}
}

func (h *capturingHandler) PublishRecord(accountID string, record *domain.TransactionRecord) {
	h.records <- record
}

func TestPublisherAndListenerRoundTrip(t *testing.T) {
	client := newTestClient(t)
	handler := newCapturingHandler()

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	listener := NewListener(client, handler, zerolog.Nop())
	go listener.Run(ctx)

	// Give the pattern subscription a moment to register.
	time.Sleep(50 * time.Millisecond)

	publisher := NewPublisher(client, zerolog.Nop())

	err := publisher.Publish(ctx, &domain.OutboxEvent{
		ID:            "evt-1",
		AggregateID:   "acc-1",
		AggregateType: domain.AggregateTypeBalance,
		EventType:     domain.EventTypeBalanceChanged,
		Payload: map[string]any{
			"account_id": "acc-1",
			"amount":     "150",
		},
	})
	require.NoError(t, err)

	select {
	case update := <-handler.balances:
		require.Equal(t, "acc-1", update.accountID)
		require.True(t, update.amount.Equal(decimal.NewFromInt(150)))
	case <-time.After(2 * time.Second):
		t.Fatal("balance event never arrived")
	}
}

func TestPublisherRecordEvent(t *testing.T) {
	client := newTestClient(t)
	handler := newCapturingHandler()

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	listener := NewListener(client, handler, zerolog.Nop())
	go listener.Run(ctx)

	time.Sleep(50 * time.Millisecond)

	publisher := NewPublisher(client, zerolog.Nop())

	err := publisher.Publish(ctx, &domain.OutboxEvent{
		ID:            "evt-2",
		AggregateID:   "acc-2",
		AggregateType: domain.AggregateTypeRecord,
		EventType:     domain.EventTypeRecordAppended,
		Payload: map[string]any{
			"record_id":    "rec-1",
			"account_id":   "acc-2",
			"kind":         "DEPOSIT",
			"amount":       "25",
			"counterparty": "",
			"description":  "top up",
			"timestamp":    time.Now().UTC().Format(time.RFC3339Nano),
		},
	})
	require.NoError(t, err)

	select {
	case record := <-handler.records:
		require.Equal(t, "rec-1", record.ID)
		require.Equal(t, domain.RecordDeposit, record.Kind)
		require.True(t, record.Amount.Equal(decimal.NewFromInt(25)))
	case <-time.After(2 * time.Second):
		t.Fatal("record event never arrived")
	}
}

func TestPublisherSkipsUnknownAggregateType(t *testing.T) {
	client := newTestClient(t)
	publisher := NewPublisher(client, zerolog.Nop())

	err := publisher.Publish(context.Background(), &domain.OutboxEvent{
		ID:            "evt-3",
		AggregateID:   "x",
		AggregateType: "unknown",
	})
	require.NoError(t, err)
}

func TestListenerDropsMalformedPayload(t *testing.T) {
	client := newTestClient(t)
	handler := newCapturingHandler()

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	listener := NewListener(client, handler, zerolog.Nop())
	go listener.Run(ctx)

	time.Sleep(50 * time.Millisecond)

	require.NoError(t, client.Publish(ctx, balanceChannelPrefix+"acc-1", "not json").Err())

	select {
	case update := <-handler.balances:
		t.Fatalf("malformed payload was delivered: %+v", update)
	case <-time.After(200 * time.Millisecond):
	}
}
