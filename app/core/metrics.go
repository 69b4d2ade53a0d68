package core

import (
	"strconv"

	"github.com/prometheus/client_golang/prometheus"

	"github.com/jayline-services/assist/pkg/metrics"
)

type Metrics struct {
	apiResponseTime   *prometheus.HistogramVec
	apiErrorCounter   *prometheus.CounterVec
	aiRequestTime     *prometheus.HistogramVec
	aiErrorCounter    *prometheus.CounterVec
	indexedDocuments  prometheus.Gauge
	qaAbstainCounter  prometheus.Counter
	qaEscalateCounter prometheus.Counter
}

func NewMetrics(ns, system string) *Metrics {
	metrics.SetupMetricsManager(ns, system, prometheus.DefaultRegisterer.(*prometheus.Registry))

	m := &Metrics{
		apiResponseTime:   metrics.NewHistogramVec("api_response_time", []string{"api"}),
		apiErrorCounter:   metrics.NewCounterVec("api_error", []string{"method", "api", "status"}),
		aiRequestTime:     metrics.NewHistogramVec("ai_request_time", []string{"target"}),
		aiErrorCounter:    metrics.NewCounterVec("ai_error", []string{"type"}),
		indexedDocuments:  metrics.NewGauge("indexed_documents"),
		qaAbstainCounter:  metrics.NewCounter("qa_abstain"),
		qaEscalateCounter: metrics.NewCounter("qa_escalate"),
	}

	return m
}

// Metrics methods tolerate a nil receiver so code paths stay identical when
// no registry is wired up.

func (m *Metrics) ApiResponseTimer(api string) *prometheus.Timer {
	if m == nil {
		return noopTimer()
	}
	return prometheus.NewTimer(m.apiResponseTime.WithLabelValues(api))
}

func (m *Metrics) ApiErrorInc(method, api string, status int) {
	if m == nil {
		return
	}
	m.apiErrorCounter.WithLabelValues(method, api, strconv.Itoa(status)).Inc()
}

func (m *Metrics) AIRequestTimer(target string) *prometheus.Timer {
	if m == nil {
		return noopTimer()
	}
	return prometheus.NewTimer(m.aiRequestTime.WithLabelValues(target))
}

func (m *Metrics) AIErrorInc(types string) {
	if m == nil {
		return
	}
	m.aiErrorCounter.WithLabelValues(types).Inc()
}

func (m *Metrics) SetIndexedDocuments(n float64) {
	if m == nil {
		return
	}
	m.indexedDocuments.Set(n)
}

func (m *Metrics) QAAbstainInc() {
	if m == nil {
		return
	}
	m.qaAbstainCounter.Inc()
}

func (m *Metrics) QAEscalateInc() {
	if m == nil {
		return
	}
	m.qaEscalateCounter.Inc()
}

func noopTimer() *prometheus.Timer {
	return prometheus.NewTimer(prometheus.ObserverFunc(func(float64) {}))
}
