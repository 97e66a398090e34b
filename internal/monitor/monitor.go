package monitor

import (
	"context"
	"strings"
	"time"

	"github.com/sirupsen/logrus"

	"ticket-monitor-go/internal/classifier"
	"ticket-monitor-go/internal/config"
	"ticket-monitor-go/internal/metrics"
	"ticket-monitor-go/internal/models"
	"ticket-monitor-go/internal/notifier"
	"ticket-monitor-go/internal/source"
)

// ProcessedStore is the durable set of ticket IDs already evaluated
type ProcessedStore interface {
	ReadAll() (map[string]struct{}, error)
	Mark(id string) error
}

// Monitor runs the fetch-filter-classify-notify pipeline once per tick
type Monitor struct {
	source     source.TicketSource
	store      ProcessedStore
	classifier classifier.UrgencyClassifier
	notifier   notifier.AlertNotifier
	metrics    *metrics.Metrics
	domain     string
	pageSize   int
	recency    time.Duration
	now        func() time.Time
}

// NewMonitor creates a new pipeline monitor
func NewMonitor(cfg *config.Config, src source.TicketSource, st ProcessedStore, cl classifier.UrgencyClassifier, nt notifier.AlertNotifier, m *metrics.Metrics) *Monitor {
	pageSize := cfg.Freshdesk.PageSize
	if pageSize <= 0 {
		pageSize = 100
	}
	recency := cfg.Scheduler.RecencyWindow
	if recency <= 0 {
		recency = time.Minute
	}
	return &Monitor{
		source:     src,
		store:      st,
		classifier: cl,
		notifier:   nt,
		metrics:    m,
		domain:     cfg.Freshdesk.Domain,
		pageSize:   pageSize,
		recency:    recency,
		now:        time.Now,
	}
}

// CheckRecentTickets runs one full pipeline tick: fetch the most recent
// tickets, drop anything already processed, stale, or assigned, then
// classify and alert on what survives. Failures never escape a tick;
// a failed fetch is identical to "nothing new".
func (m *Monitor) CheckRecentTickets(ctx context.Context) {
	logrus.Info("Checking tickets...")

	start := time.Now()
	m.metrics.PollCount.Inc()

	tickets, err := m.source.FetchRecent(ctx, m.pageSize)
	if err != nil {
		logrus.Errorf("Failed to fetch tickets: %v", err)
		return
	}

	logrus.Infof("Found %d tickets from API", len(tickets))
	if len(tickets) == 0 {
		return
	}
	m.metrics.TicketsFetched.Add(float64(len(tickets)))

	processed, err := m.store.ReadAll()
	if err != nil {
		logrus.Errorf("Failed to read processed set: %v", err)
		return
	}

	cutoff := m.now().UTC().Add(-m.recency)

	for _, ticket := range tickets {
		select {
		case <-ctx.Done():
			logrus.Info("Ticket check cancelled")
			return
		default:
		}

		if _, seen := processed[ticket.Key()]; seen {
			continue
		}
		if ticket.CreatedAt.Before(cutoff) {
			continue
		}
		if ticket.HasResponder() {
			continue
		}

		m.processTicket(ctx, ticket)
	}

	duration := time.Since(start)
	m.metrics.ProcessingTime.Observe(duration.Seconds())
	logrus.Infof("Ticket check completed in %v", duration)
}

// processTicket evaluates a single eligible ticket. The ticket is marked
// processed before classification so that a slow or failing classification
// can never cause a second alert for the same ticket.
func (m *Monitor) processTicket(ctx context.Context, ticket models.Ticket) {
	id := ticket.Key()
	m.metrics.TicketsEvaluated.Inc()

	if err := m.store.Mark(id); err != nil {
		logrus.Errorf("Failed to mark ticket %s as processed: %v", id, err)
	}

	text := strings.TrimSpace(ticket.Subject + " " + ticket.Description)

	urgent, err := m.classifier.Classify(ctx, text)
	if err != nil {
		// Fail-quiet: a classifier outage suppresses alerts for this
		// ticket rather than paging on every transient error.
		logrus.Errorf("Classification failed for ticket %s: %v", id, err)
		m.metrics.ClassifyFailures.Inc()
		urgent = false
	}

	logrus.Infof("Processed ticket %s | urgent=%t", id, urgent)

	if !urgent {
		return
	}

	m.metrics.UrgentCount.Inc()
	logrus.Infof("Urgent ticket detected: %s", id)

	subject := ticket.Subject
	if subject == "" {
		subject = "No Subject"
	}
	body := ticket.Description
	if body == "" {
		body = "No Description"
	}

	if err := m.notifier.SendAlert(subject, body, ticket.URL(m.domain)); err != nil {
		logrus.Errorf("Failed to send alert for ticket %s: %v", id, err)
		m.metrics.AlertFailures.Inc()
		return
	}
	m.metrics.AlertSuccesses.Inc()
}
