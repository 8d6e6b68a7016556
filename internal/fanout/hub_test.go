package fanout

import (
	"errors"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"

	"github.com/walletd/walletd/internal/domain"
)

func newTestHub(recordBuffer int) *Hub {
	return NewHub(Config{
		RecordBuffer: recordBuffer,
		Logger:       zerolog.Nop(),
	})
}

func TestHubBalanceDelivery(t *testing.T) {
	hub := newTestHub(4)

	sub := hub.SubscribeBalance("acc-1")
	defer sub.Cancel()

	hub.PublishBalance("acc-1", decimal.NewFromInt(100))

	select {
	case v := <-sub.Updates():
		require.True(t, v.Equal(decimal.NewFromInt(100)))
	case <-time.After(time.Second):
		t.Fatal("no balance delivered")
	}
}

func TestHubBalanceCoalescesToLatest(t *testing.T) {
	hub := newTestHub(4)

	sub := hub.SubscribeBalance("acc-1")
	defer sub.Cancel()

	// Publish a burst without the subscriber reading. Only the last value
	// must survive.
	for i := 1; i <= 10; i++ {
		hub.PublishBalance("acc-1", decimal.NewFromInt(int64(i)))
	}

	v := <-sub.Updates()
	require.True(t, v.Equal(decimal.NewFromInt(10)), "expected latest value, got %s", v)

	select {
	case v, ok := <-sub.Updates():
		if ok {
			t.Fatalf("expected no further values, got %s", v)
		}
	default:
	}
}

func TestHubBalanceIsolatedPerAccount(t *testing.T) {
	hub := newTestHub(4)

	sub := hub.SubscribeBalance("acc-1")
	defer sub.Cancel()

	hub.PublishBalance("acc-2", decimal.NewFromInt(42))

	select {
	case v := <-sub.Updates():
		t.Fatalf("unexpected cross-account delivery: %s", v)
	case <-time.After(50 * time.Millisecond):
	}
}

func TestHubRecordDeliveryInOrder(t *testing.T) {
	hub := newTestHub(8)

	sub := hub.SubscribeRecords("acc-1")
	defer sub.Cancel()

	first := &domain.TransactionRecord{ID: "r1", AccountID: "acc-1"}
	second := &domain.TransactionRecord{ID: "r2", AccountID: "acc-1"}

	hub.PublishRecord("acc-1", first)
	hub.PublishRecord("acc-1", second)

	require.Equal(t, "r1", (<-sub.Records()).ID)
	require.Equal(t, "r2", (<-sub.Records()).ID)
}

func TestHubRecordOverflowDropsSubscriber(t *testing.T) {
	hub := newTestHub(2)

	sub := hub.SubscribeRecords("acc-1")

	for i := 0; i < 3; i++ {
		hub.PublishRecord("acc-1", &domain.TransactionRecord{ID: "r", AccountID: "acc-1"})
	}

	// The channel closes after the two buffered records drain.
	var received int
	for range sub.Records() {
		received++
	}

	require.Equal(t, 2, received)
	require.True(t, errors.Is(sub.Err(), ErrSlowConsumer))
}

func TestHubCancelClosesChannel(t *testing.T) {
	hub := newTestHub(4)

	sub := hub.SubscribeRecords("acc-1")
	sub.Cancel()

	_, ok := <-sub.Records()
	require.False(t, ok)
	require.NoError(t, sub.Err())

	// Publishing after cancel must not panic or block.
	hub.PublishRecord("acc-1", &domain.TransactionRecord{ID: "r1", AccountID: "acc-1"})

	// Cancel twice is harmless.
	sub.Cancel()
}

func TestHubCancelRacesOverflowingPublish(t *testing.T) {
	// A client disconnect may cancel its subscription at the same moment a
	// publish hits that subscription's full buffer. Both paths cancel the
	// subscription and both must return.
	for i := 0; i < 200; i++ {
		hub := newTestHub(1)
		sub := hub.SubscribeRecords("acc-1")

		// Fill the buffer so the publish below takes the drop path.
		hub.PublishRecord("acc-1", &domain.TransactionRecord{ID: "r1", AccountID: "acc-1"})

		start := make(chan struct{})
		done := make(chan struct{}, 2)

		go func() {
			<-start
			sub.Cancel()
			done <- struct{}{}
		}()
		go func() {
			<-start
			hub.PublishRecord("acc-1", &domain.TransactionRecord{ID: "r2", AccountID: "acc-1"})
			done <- struct{}{}
		}()

		close(start)

		for j := 0; j < 2; j++ {
			select {
			case <-done:
			case <-time.After(5 * time.Second):
				t.Fatal("cancel and publish did not both return")
			}
		}
	}
}

func TestHubMultipleSubscribersEachGetRecords(t *testing.T) {
	hub := newTestHub(4)

	subA := hub.SubscribeRecords("acc-1")
	defer subA.Cancel()
	subB := hub.SubscribeRecords("acc-1")
	defer subB.Cancel()

	hub.PublishRecord("acc-1", &domain.TransactionRecord{ID: "r1", AccountID: "acc-1"})

	require.Equal(t, "r1", (<-subA.Records()).ID)
	require.Equal(t, "r1", (<-subB.Records()).ID)
}
