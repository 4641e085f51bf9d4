package metrics

import "github.com/prometheus/client_golang/prometheus"

// PlatformMetrics exposes counters/histograms for the lead and chat flows.
// All methods are nil-receiver safe so handlers work without metrics wired.
type PlatformMetrics struct {
	intakeTotal        *prometheus.CounterVec
	intakeLatency      prometheus.Histogram
	chatTotal          *prometheus.CounterVec
	emailTotal         *prometheus.CounterVec
	summaryFallbackTot prometheus.Counter
}

func NewPlatformMetrics(reg prometheus.Registerer) *PlatformMetrics {
	m := &PlatformMetrics{
		intakeTotal: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "lumident",
			Subsystem: "leads",
			Name:      "intake_total",
			Help:      "Total lead intake requests by intent and outcome",
		}, []string{"intent", "outcome"}),
		intakeLatency: prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: "lumident",
			Subsystem: "leads",
			Name:      "intake_latency_seconds",
			Help:      "Latency of the lead intake pipeline",
			Buckets:   prometheus.DefBuckets,
		}),
		chatTotal: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "lumident",
			Subsystem: "chat",
			Name:      "relay_total",
			Help:      "Total chat relay requests by status",
		}, []string{"status"}),
		emailTotal: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "lumident",
			Subsystem: "notify",
			Name:      "email_total",
			Help:      "Total notification emails by status",
		}, []string{"status"}),
		summaryFallbackTot: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "lumident",
			Subsystem: "assistant",
			Name:      "summary_fallback_total",
			Help:      "Summaries that fell back to the raw transcript",
		}),
	}
	if reg == nil {
		reg = prometheus.DefaultRegisterer
	}
	reg.MustRegister(m.intakeTotal, m.intakeLatency, m.chatTotal, m.emailTotal, m.summaryFallbackTot)
	return m
}

func (m *PlatformMetrics) ObserveIntake(intent, outcome string, seconds float64) {
	if m == nil {
		return
	}
	m.intakeTotal.WithLabelValues(intent, outcome).Inc()
	m.intakeLatency.Observe(seconds)
}

func (m *PlatformMetrics) ObserveChat(status string) {
	if m == nil {
		return
	}
	m.chatTotal.WithLabelValues(status).Inc()
}

func (m *PlatformMetrics) ObserveEmail(status string) {
	if m == nil {
		return
	}
	m.emailTotal.WithLabelValues(status).Inc()
}

func (m *PlatformMetrics) ObserveSummaryFallback() {
	if m == nil {
		return
	}
	m.summaryFallbackTot.Inc()
}
