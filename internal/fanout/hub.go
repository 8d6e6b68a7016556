package fanout

import (
	"errors"
	"sync"

	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"

	"github.com/walletd/walletd/internal/domain"
	"github.com/walletd/walletd/internal/infrastructure/metrics"
)

// ErrSlowConsumer terminates a record stream whose subscriber fell behind.
// Balance streams never see it: they coalesce to the latest value instead.
var ErrSlowConsumer = errors.New("fanout: subscriber fell behind")

const (
	streamBalance = "balance"
	streamRecords = "records"
)

// Hub routes published events to in-process subscribers. One hub instance
// serves all accounts; subscriptions are keyed by account id.
type Hub struct {
	mu           sync.Mutex
	balanceSubs  map[string]map[*BalanceSubscription]struct{}
	recordSubs   map[string]map[*RecordSubscription]struct{}
	recordBuffer int
	metrics      *metrics.Metrics
	logger       zerolog.Logger
}

// Config for Hub.
type Config struct {
	// RecordBuffer is the per-subscriber record channel capacity. A
	// subscriber that lets it fill is dropped with ErrSlowConsumer.
	RecordBuffer int
	Metrics      *metrics.Metrics
	Logger       zerolog.Logger
}

// NewHub creates a new Hub.
func NewHub(cfg Config) *Hub {
	if cfg.RecordBuffer <= 0 {
		cfg.RecordBuffer = 64
	}

	return &Hub{
		balanceSubs:  make(map[string]map[*BalanceSubscription]struct{}),
		recordSubs:   make(map[string]map[*RecordSubscription]struct{}),
		recordBuffer: cfg.RecordBuffer,
		metrics:      cfg.Metrics,
		logger:       cfg.Logger,
	}
}

// BalanceSubscription delivers balance updates for one account. The channel
// holds only the latest value: intermediate balances are coalesced away, so
// a slow reader always wakes up to the current state.
type BalanceSubscription struct {
	hub       *Hub
	accountID string
	ch        chan decimal.Decimal
	closed    bool
}

// Updates returns the update channel. It is closed on Cancel.
func (s *BalanceSubscription) Updates() <-chan decimal.Decimal {
	return s.ch
}

// Cancel unregisters the subscription and closes its channel. The closed
// flag under hub.mu is the only cancellation guard; a second lock source
// here could deadlock against a publish that cancels under hub.mu.
func (s *BalanceSubscription) Cancel() {
	s.hub.mu.Lock()
	defer s.hub.mu.Unlock()

	if s.closed {
		return
	}

	s.closed = true
	delete(s.hub.balanceSubs[s.accountID], s)
	if len(s.hub.balanceSubs[s.accountID]) == 0 {
		delete(s.hub.balanceSubs, s.accountID)
	}
	close(s.ch)

	s.hub.gaugeDec(streamBalance)
}

// RecordSubscription delivers appended records for one account. Unlike
// balances, records must not be coalesced; instead the stream terminates
// with Err() == ErrSlowConsumer when the buffer overflows.
type RecordSubscription struct {
	hub       *Hub
	accountID string
	ch        chan *domain.TransactionRecord
	err       error
	closed    bool
}

// Records returns the record channel. It is closed on Cancel or overflow.
func (s *RecordSubscription) Records() <-chan *domain.TransactionRecord {
	return s.ch
}

// Err reports why the channel closed. Nil after a plain Cancel.
func (s *RecordSubscription) Err() error {
	s.hub.mu.Lock()
	defer s.hub.mu.Unlock()
	return s.err
}

// Cancel unregisters the subscription and closes its channel.
func (s *RecordSubscription) Cancel() {
	s.cancel(nil)
}

func (s *RecordSubscription) cancel(err error) {
	s.hub.mu.Lock()
	defer s.hub.mu.Unlock()

	if s.closed {
		return
	}
	s.cancelLocked(err)
}

// cancelLocked requires hub.mu held and s not yet closed.
func (s *RecordSubscription) cancelLocked(err error) {
	s.closed = true
	s.err = err
	delete(s.hub.recordSubs[s.accountID], s)
	if len(s.hub.recordSubs[s.accountID]) == 0 {
		delete(s.hub.recordSubs, s.accountID)
	}
	close(s.ch)

	s.hub.gaugeDec(streamRecords)
}

// SubscribeBalance registers a live balance subscription. The caller is
// expected to push a snapshot through the same stream before exposing it,
// see PublishBalance.
func (h *Hub) SubscribeBalance(accountID string) *BalanceSubscription {
	s := &BalanceSubscription{
		hub:       h,
		accountID: accountID,
		ch:        make(chan decimal.Decimal, 1),
	}

	h.mu.Lock()
	defer h.mu.Unlock()

	if h.balanceSubs[accountID] == nil {
		h.balanceSubs[accountID] = make(map[*BalanceSubscription]struct{})
	}
	h.balanceSubs[accountID][s] = struct{}{}

	h.gaugeInc(streamBalance)

	return s
}

// SubscribeRecords registers a live record subscription.
func (h *Hub) SubscribeRecords(accountID string) *RecordSubscription {
	s := &RecordSubscription{
		hub:       h,
		accountID: accountID,
		ch:        make(chan *domain.TransactionRecord, h.recordBuffer),
	}

	h.mu.Lock()
	defer h.mu.Unlock()

	if h.recordSubs[accountID] == nil {
		h.recordSubs[accountID] = make(map[*RecordSubscription]struct{})
	}
	h.recordSubs[accountID][s] = struct{}{}

	h.gaugeInc(streamRecords)

	return s
}

// PublishBalance delivers a balance to every subscriber of the account,
// replacing any value they have not consumed yet.
func (h *Hub) PublishBalance(accountID string, amount decimal.Decimal) {
	h.mu.Lock()
	defer h.mu.Unlock()

	for s := range h.balanceSubs[accountID] {
		if s.closed {
			continue
		}

		// Swap out the stale value if the subscriber has not read it.
		select {
		case s.ch <- amount:
		default:
			select {
			case <-s.ch:
			default:
			}
			s.ch <- amount
		}
	}
}

// PublishRecord delivers a record to every subscriber of the account.
// Subscribers whose buffer is full are dropped, never skipped past.
func (h *Hub) PublishRecord(accountID string, record *domain.TransactionRecord) {
	h.mu.Lock()
	defer h.mu.Unlock()

	for s := range h.recordSubs[accountID] {
		if s.closed {
			continue
		}

		select {
		case s.ch <- record:
		default:
			h.logger.Warn().
				Str("account_id", accountID).
				Msg("dropping slow record subscriber")

			if h.metrics != nil {
				h.metrics.DroppedSubscribers.WithLabelValues(streamRecords).Inc()
			}

			s.cancelLocked(ErrSlowConsumer)
		}
	}
}

func (h *Hub) gaugeInc(stream string) {
	if h.metrics != nil {
		h.metrics.ActiveSubscribers.WithLabelValues(stream).Inc()
	}
}

func (h *Hub) gaugeDec(stream string) {
	if h.metrics != nil {
		h.metrics.ActiveSubscribers.WithLabelValues(stream).Dec()
	}
}
