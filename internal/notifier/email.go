package notifier

import (
	"fmt"
	"html"

	"github.com/sirupsen/logrus"
	"gopkg.in/gomail.v2"

	"ticket-monitor-go/internal/config"
)

// AlertNotifier delivers urgent-ticket alerts
type AlertNotifier interface {
	SendAlert(subject, body, ticketURL string) error
}

// EmailNotifier implements AlertNotifier over authenticated SMTP
type EmailNotifier struct {
	dialer     *gomail.Dialer
	from       string
	recipients []string
}

// NewEmailNotifier creates a new SMTP alert notifier. The dialer submits
// over STARTTLS on the configured port with LOGIN auth.
func NewEmailNotifier(cfg *config.EmailConfig) *EmailNotifier {
	return &EmailNotifier{
		dialer:     gomail.NewDialer(cfg.SMTPHost, cfg.SMTPPort, cfg.From, cfg.Password),
		from:       cfg.From,
		recipients: cfg.Recipients(),
	}
}

// SendAlert composes and sends an HTML alert email to the fixed recipient
// set. Delivery is best-effort; the caller decides what to do with the
// error (the monitor logs and moves on).
func (n *EmailNotifier) SendAlert(subject, body, ticketURL string) error {
	m := gomail.NewMessage()
	m.SetHeader("From", n.from)
	m.SetHeader("To", n.recipients...)
	m.SetHeader("Subject", fmt.Sprintf("P0 Ticket Alert: %s", subject))
	m.SetBody("text/html", buildAlertHTML(body, ticketURL))

	logrus.Infof("Sending alert email to %v", n.recipients)

	if err := n.dialer.DialAndSend(m); err != nil {
		return fmt.Errorf("failed to send alert email: %w", err)
	}

	logrus.Info("Alert email sent")
	return nil
}

// buildAlertHTML renders the alert body with a link back to the ticket.
// The ticket text is escaped so its content cannot inject markup into
// the alert email.
func buildAlertHTML(body, ticketURL string) string {
	return fmt.Sprintf(`<html>
  <body>
    <p>%s</p>
    <p><a href="%s">View Ticket</a></p>
  </body>
</html>`, html.EscapeString(body), ticketURL)
}
