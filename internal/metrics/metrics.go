package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics holds all Prometheus metrics
type Metrics struct {
	PollCount        prometheus.Counter
	TicketsFetched   prometheus.Counter
	TicketsEvaluated prometheus.Counter
	UrgentCount      prometheus.Counter
	AlertSuccesses   prometheus.Counter
	AlertFailures    prometheus.Counter
	ClassifyFailures prometheus.Counter
	ProcessingTime   prometheus.Histogram
}

// NewMetrics creates new Prometheus metrics
func NewMetrics() *Metrics {
	return &Metrics{
		PollCount: promauto.NewCounter(prometheus.CounterOpts{
			Name: "ticket_monitor_poll_count",
			Help: "Total number of ticket fetch operations",
		}),
		TicketsFetched: promauto.NewCounter(prometheus.CounterOpts{
			Name: "ticket_monitor_tickets_fetched",
			Help: "Total number of tickets returned by the helpdesk API",
		}),
		TicketsEvaluated: promauto.NewCounter(prometheus.CounterOpts{
			Name: "ticket_monitor_tickets_evaluated",
			Help: "Total number of tickets that passed the eligibility filters",
		}),
		UrgentCount: promauto.NewCounter(prometheus.CounterOpts{
			Name: "ticket_monitor_urgent_count",
			Help: "Total number of tickets classified as urgent",
		}),
		AlertSuccesses: promauto.NewCounter(prometheus.CounterOpts{
			Name: "ticket_monitor_alert_successes",
			Help: "Total number of alert emails delivered",
		}),
		AlertFailures: promauto.NewCounter(prometheus.CounterOpts{
			Name: "ticket_monitor_alert_failures",
			Help: "Total number of alert emails that failed to send",
		}),
		ClassifyFailures: promauto.NewCounter(prometheus.CounterOpts{
			Name: "ticket_monitor_classify_failures",
			Help: "Total number of classification calls that errored",
		}),
		ProcessingTime: promauto.NewHistogram(prometheus.HistogramOpts{
			Name:    "ticket_monitor_processing_duration_seconds",
			Help:    "Time spent on one full check cycle",
			Buckets: prometheus.DefBuckets,
		}),
	}
}
