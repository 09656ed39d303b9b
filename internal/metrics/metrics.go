// Package metrics provides the prometheus metrics of the webhook receiver.
package metrics

import (
	"strconv"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const metricNamespace = "ghreceiver"

const (
	webhookRequestsMetricName = "webhook_requests_total"
	webhookBodySizeMetricName = "webhook_request_body_bytes"
	auditLogEntriesMetricName = "audit_log_entries_processed_total"
)

const (
	unsupportedEventLabelVal = "unsupported"
	undefinedEventLabelVal   = "undefined"
)

const (
	eventLabel  = "event"
	statusLabel = "status"
)

type metricCollector struct {
	requests        *prometheus.CounterVec
	bodySize        prometheus.Histogram
	auditLogEntries prometheus.Counter
}

var metrics = newMetricCollector()

func newMetricCollector() *metricCollector {
	return &metricCollector{
		requests: promauto.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: metricNamespace,
				Name:      webhookRequestsMetricName,
				Help:      "count of received github webhook requests",
			},
			[]string{eventLabel, statusLabel},
		),
		bodySize: promauto.NewHistogram(
			prometheus.HistogramOpts{
				Namespace: metricNamespace,
				Name:      webhookBodySizeMetricName,
				Help:      "size of received github webhook request bodies",
				// 256B - 16MiB
				Buckets: prometheus.ExponentialBuckets(256, 4, 9),
			},
		),
		auditLogEntries: promauto.NewCounter(
			prometheus.CounterOpts{
				Namespace: metricNamespace,
				Name:      auditLogEntriesMetricName,
				Help:      "count of processed audit log streaming entries",
			},
		),
	}
}

// EventLabel returns the value that is used for the event label of
// eventType.
// Event types that are not in supported are mapped to a single label value
// to keep the cardinality of the metric bounded.
func EventLabel(eventType string, supported func(string) bool) string {
	if eventType == "" {
		return undefinedEventLabelVal
	}

	if !supported(eventType) {
		return unsupportedEventLabelVal
	}

	return eventType
}

// RecordRequest increases the webhook request counter.
func RecordRequest(eventLabel string, httpStatus int) {
	metrics.requests.WithLabelValues(eventLabel, strconv.Itoa(httpStatus)).Inc()
}

// ObserveBodySize records the size of a webhook request body.
func ObserveBodySize(bytes int) {
	metrics.bodySize.Observe(float64(bytes))
}

// AddAuditLogEntriesProcessed increases the processed audit log entries
// counter by cnt.
func AddAuditLogEntriesProcessed(cnt int) {
	metrics.auditLogEntries.Add(float64(cnt))
}
