package dispatcher

import (
	"context"
	"time"

	"github.com/rs/zerolog"

	"github.com/walletd/walletd/internal/domain"
	"github.com/walletd/walletd/internal/infrastructure/metrics"
	"github.com/walletd/walletd/internal/usecase"
)

// Dispatcher drains the outbox: it polls for unpublished events, pushes
// them to the Publisher and marks them published. Events stay in the table
// until pruned, so delivery is at-least-once across restarts.
type Dispatcher struct {
	outboxRepo usecase.OutboxRepository
	publisher  Publisher
	logger     zerolog.Logger
	metrics    *metrics.Metrics
	batchSize  int
	interval   time.Duration
	retention  time.Duration
}

// Publisher pushes a committed event to the live subscription channel.
type Publisher interface {
	Publish(ctx context.Context, event *domain.OutboxEvent) error
}

// Config for Dispatcher.
type Config struct {
	OutboxRepo usecase.OutboxRepository
	Publisher  Publisher
	Logger     zerolog.Logger
	Metrics    *metrics.Metrics
	BatchSize  int           // Number of events to fetch per poll
	Interval   time.Duration // Polling interval
	Retention  time.Duration // How long published events are kept
}

// New creates a new Dispatcher.
func New(cfg Config) *Dispatcher {
	if cfg.BatchSize == 0 {
		cfg.BatchSize = 100
	}
	if cfg.Interval == 0 {
		cfg.Interval = 200 * time.Millisecond
	}
	if cfg.Retention == 0 {
		cfg.Retention = time.Hour
	}

	return &Dispatcher{
		outboxRepo: cfg.OutboxRepo,
		publisher:  cfg.Publisher,
		logger:     cfg.Logger,
		metrics:    cfg.Metrics,
		batchSize:  cfg.BatchSize,
		interval:   cfg.Interval,
		retention:  cfg.Retention,
	}
}

// Start runs the polling loop until the context is cancelled.
func (d *Dispatcher) Start(ctx context.Context) error {
	d.logger.Info().
		Int("batch_size", d.batchSize).
		Dur("interval", d.interval).
		Msg("dispatcher started")

	ticker := time.NewTicker(d.interval)
	defer ticker.Stop()

	pruneTicker := time.NewTicker(d.retention)
	defer pruneTicker.Stop()

	// Drain whatever accumulated while we were down.
	if err := d.processEvents(ctx); err != nil {
		d.logger.Error().Err(err).Msg("error processing events on start")
	}

	for {
		select {
		case <-ctx.Done():
			d.logger.Info().Msg("dispatcher shutting down")
			return ctx.Err()
		case <-ticker.C:
			if err := d.processEvents(ctx); err != nil {
				d.logger.Error().Err(err).Msg("error processing events")
			}
		case <-pruneTicker.C:
			if err := d.outboxRepo.DeletePublished(ctx, time.Now().Add(-d.retention)); err != nil {
				d.logger.Error().Err(err).Msg("error pruning published events")
			}
		}
	}
}

// processEvents fetches and publishes one batch of unpublished events.
func (d *Dispatcher) processEvents(ctx context.Context) error {
	events, err := d.outboxRepo.GetUnpublished(ctx, d.batchSize)
	if err != nil {
		return err
	}

	if d.metrics != nil {
		d.metrics.EventsPending.Set(float64(len(events)))
	}

	if len(events) == 0 {
		return nil
	}

	for _, event := range events {
		if err := d.publisher.Publish(ctx, event); err != nil {
			d.logger.Error().
				Err(err).
				Str("event_id", event.ID).
				Str("event_type", event.EventType).
				Msg("failed to publish event")
			// Leave it unpublished, the next poll retries it. Later
			// events are held back too so per-account order survives.
			return nil
		}

		if d.metrics != nil {
			d.metrics.EventsPublished.Inc()
		}

		if err := d.outboxRepo.MarkPublished(ctx, event.ID, time.Now()); err != nil {
			d.logger.Error().
				Err(err).
				Str("event_id", event.ID).
				Msg("failed to mark event as published")
			// Stop the batch, the event would be re-published otherwise
			// anyway. Duplicate delivery is tolerated, not pursued.
			return nil
		}

		d.logger.Debug().
			Str("event_id", event.ID).
			Str("event_type", event.EventType).
			Str("aggregate_id", event.AggregateID).
			Msg("event published")
	}

	return nil
}
