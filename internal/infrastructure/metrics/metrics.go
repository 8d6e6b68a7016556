package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics holds all Prometheus metrics
type Metrics struct {
	// Wallet operation metrics
	DepositsCreated  prometheus.Counter
	TransfersCreated prometheus.Counter
	DepositDuration  prometheus.Histogram
	TransferDuration prometheus.Histogram
	TransferAmount   prometheus.Histogram
	OperationErrors  *prometheus.CounterVec

	// API metrics
	HTTPRequests *prometheus.CounterVec
	HTTPDuration *prometheus.HistogramVec
	HTTPInFlight prometheus.Gauge

	// Outbox and fan-out metrics
	EventsPublished   prometheus.Counter
	EventsPending     prometheus.Gauge
	ActiveSubscribers *prometheus.GaugeVec
	DroppedSubscribers *prometheus.CounterVec

	// Database metrics
	DBConnections prometheus.Gauge
}

// New creates and registers all Prometheus metrics
func New() *Metrics {
	return &Metrics{
		DepositsCreated: promauto.NewCounter(prometheus.CounterOpts{
			Name: "walletd_deposits_created_total",
			Help: "Total number of deposits committed",
		}),
		TransfersCreated: promauto.NewCounter(prometheus.CounterOpts{
			Name: "walletd_transfers_created_total",
			Help: "Total number of transfers committed",
		}),
		DepositDuration: promauto.NewHistogram(prometheus.HistogramOpts{
			Name:    "walletd_deposit_duration_seconds",
			Help:    "Duration of deposit operations",
			Buckets: prometheus.DefBuckets,
		}),
		TransferDuration: promauto.NewHistogram(prometheus.HistogramOpts{
			Name:    "walletd_transfer_duration_seconds",
			Help:    "Duration of transfer operations",
			Buckets: prometheus.DefBuckets,
		}),
		TransferAmount: promauto.NewHistogram(prometheus.HistogramOpts{
			Name:    "walletd_transfer_amount",
			Help:    "Transfer amounts",
			Buckets: []float64{1, 10, 100, 1000, 10000, 100000, 1000000},
		}),
		OperationErrors: promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: "walletd_operation_errors_total",
				Help: "Total wallet operation errors by kind",
			},
			[]string{"operation", "error_kind"},
		),

		HTTPRequests: promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: "walletd_http_requests_total",
				Help: "Total HTTP requests",
			},
			[]string{"method", "path", "status"},
		),
		HTTPDuration: promauto.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "walletd_http_duration_seconds",
				Help:    "HTTP request duration",
				Buckets: prometheus.DefBuckets,
			},
			[]string{"method", "path"},
		),
		HTTPInFlight: promauto.NewGauge(prometheus.GaugeOpts{
			Name: "walletd_http_requests_in_flight",
			Help: "HTTP requests currently being processed",
		}),

		EventsPublished: promauto.NewCounter(prometheus.CounterOpts{
			Name: "walletd_events_published_total",
			Help: "Total outbox events pushed to subscribers",
		}),
		EventsPending: promauto.NewGauge(prometheus.GaugeOpts{
			Name: "walletd_events_pending",
			Help: "Unpublished outbox events seen by the last dispatcher poll",
		}),
		ActiveSubscribers: promauto.NewGaugeVec(
			prometheus.GaugeOpts{
				Name: "walletd_active_subscribers",
				Help: "Currently connected stream subscribers",
			},
			[]string{"stream"},
		),
		DroppedSubscribers: promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: "walletd_dropped_subscribers_total",
				Help: "Subscribers disconnected for falling behind",
			},
			[]string{"stream"},
		),

		DBConnections: promauto.NewGauge(prometheus.GaugeOpts{
			Name: "walletd_db_connections",
			Help: "Current number of database connections",
		}),
	}
}
