package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	HTTPRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "http_request_duration_seconds",
			Help:    "HTTP request duration in seconds",
			Buckets: prometheus.ExponentialBuckets(0.001, 2, 12), // 1ms to ~4s
		},
		[]string{"method", "path", "status"},
	)

	EmailSendDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "email_send_duration_seconds",
			Help:    "Transactional email send duration in seconds",
			Buckets: prometheus.ExponentialBuckets(0.01, 2, 10), // 10ms to ~10s
		},
		[]string{"template", "status"},
	)

	EmailsSentCount = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "emails_sent_total",
			Help: "Total number of transactional email send attempts",
		},
		[]string{"template", "status"}, // status: success, failed
	)

	StockNotificationBatchCount = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "stock_notification_batch_records_total",
			Help: "Per-record outcomes of back-in-stock notification batches",
		},
		[]string{"outcome"}, // outcome: notified, failed
	)

	DBQueryDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "db_query_duration_seconds",
			Help:    "Database query duration in seconds",
			Buckets: prometheus.ExponentialBuckets(0.001, 2, 12),
		},
		[]string{"operation", "table"},
	)
)

func RecordHTTPRequestDuration(method, path, status string, duration time.Duration) {
	HTTPRequestDuration.WithLabelValues(method, path, status).Observe(duration.Seconds())
}

func RecordEmailSend(template, status string, duration time.Duration) {
	EmailSendDuration.WithLabelValues(template, status).Observe(duration.Seconds())
	EmailsSentCount.WithLabelValues(template, status).Inc()
}

func RecordBatchOutcome(outcome string, n int) {
	StockNotificationBatchCount.WithLabelValues(outcome).Add(float64(n))
}

func RecordDBQueryDuration(operation, table string, duration time.Duration) {
	DBQueryDuration.WithLabelValues(operation, table).Observe(duration.Seconds())
}
