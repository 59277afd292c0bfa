// Package metrics registers Prometheus instrumentation for the ledger
// service.
package metrics

import (
	"sync"
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

const metricPrefix = "kakeibo_"

const (
	ResultSuccess = "success"
	ResultError   = "error"
)

var (
	registerOnce sync.Once

	receiptsCreated  prometheus.Counter
	receiptsRejected *prometheus.CounterVec
	receiptsCleared  prometheus.Counter

	requestLatency *prometheus.HistogramVec

	exportsTotal *prometheus.CounterVec
)

// Init registers the service metrics. recordCount, when non-nil, backs
// a gauge reporting the live ledger size.
func Init(recordCount func() float64) {
	registerOnce.Do(func() {
		receiptsCreated = prometheus.NewCounter(
			prometheus.CounterOpts{
				Name: metricPrefix + "receipts_created_total",
				Help: "Total receipts accepted into the ledger",
			},
		)
		receiptsRejected = prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: metricPrefix + "receipts_rejected_total",
				Help: "Total receipts rejected at validation by field",
			},
			[]string{"field"},
		)
		receiptsCleared = prometheus.NewCounter(
			prometheus.CounterOpts{
				Name: metricPrefix + "receipts_cleared_total",
				Help: "Total receipts removed by confirmed clears",
			},
		)
		requestLatency = prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    metricPrefix + "http_request_duration_seconds",
				Help:    "HTTP request latency by path and result",
				Buckets: prometheus.DefBuckets,
			},
			[]string{"path", "result"},
		)
		exportsTotal = prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: metricPrefix + "exports_total",
				Help: "Total tabular exports by format and result",
			},
			[]string{"format", "result"},
		)

		prometheus.MustRegister(
			receiptsCreated,
			receiptsRejected,
			receiptsCleared,
			requestLatency,
			exportsTotal,
		)

		if recordCount != nil {
			prometheus.MustRegister(prometheus.NewGaugeFunc(
				prometheus.GaugeOpts{
					Name: metricPrefix + "ledger_records",
					Help: "Receipts currently stored",
				},
				recordCount,
			))
		}
	})
}

// AddCreated counts accepted receipts.
func AddCreated(n int) {
	if n > 0 && receiptsCreated != nil {
		receiptsCreated.Add(float64(n))
	}
}

// IncRejected counts one validation rejection by offending field.
func IncRejected(field string) {
	if field == "" {
		field = "unknown"
	}
	if receiptsRejected != nil {
		receiptsRejected.WithLabelValues(field).Inc()
	}
}

// AddCleared counts receipts removed by a confirmed clear.
func AddCleared(n int) {
	if n > 0 && receiptsCleared != nil {
		receiptsCleared.Add(float64(n))
	}
}

// ObserveRequest records request latency and result for a path.
func ObserveRequest(path, result string, duration time.Duration) {
	if result == "" {
		result = ResultSuccess
	}
	if requestLatency != nil {
		requestLatency.WithLabelValues(path, result).Observe(duration.Seconds())
	}
}

// IncExport counts one tabular export by format and result.
func IncExport(format, result string) {
	if format == "" {
		format = "unknown"
	}
	if result == "" {
		result = ResultSuccess
	}
	if exportsTotal != nil {
		exportsTotal.WithLabelValues(format, result).Inc()
	}
}
