package email

import (
	"context"
	"fmt"
	"html"
	"log/slog"

	"github.com/ErlanBelekov/league-manager/internal/metrics"
	"github.com/resend/resend-go/v2"
)

// Message is one outgoing email. Category tags the message with the
// provider so deliveries can be grouped.
type Message struct {
	To       string
	Subject  string
	HTML     string
	Text     string
	Category string
}

type Sender interface {
	Send(ctx context.Context, msg Message) error
}

// LogSender logs emails instead of sending them. Used with ENV=local and by
// leaguectl. Bodies are not logged.
type LogSender struct {
	logger *slog.Logger
}

func (s *LogSender) Send(ctx context.Context, msg Message) error {
	s.logger.InfoContext(ctx, "email not sent (log only)", "to", msg.To, "subject", msg.Subject, "category", msg.Category)
	return nil
}

type ResendSender struct {
	client *resend.Client
	from   string
}

func (s *ResendSender) Send(ctx context.Context, msg Message) error {
	params := &resend.SendEmailRequest{
		From:    s.from,
		To:      []string{msg.To},
		Subject: msg.Subject,
		Html:    msg.HTML,
		Text:    msg.Text,
	}
	if msg.Category != "" {
		params.Tags = []resend.Tag{{Name: "category", Value: msg.Category}}
	}
	if _, err := s.client.Emails.SendWithContext(ctx, params); err != nil {
		return fmt.Errorf("send %s email: %w", msg.Category, err)
	}
	return nil
}

// NewSender returns a LogSender for ENV=local, ResendSender otherwise.
func NewSender(env, apiKey, from string, logger *slog.Logger) Sender {
	if env == "local" {
		return &LogSender{logger: logger.With("component", "email")}
	}
	return &ResendSender{
		client: resend.NewClient(apiKey),
		from:   from,
	}
}

// Notifier sends the league's transactional emails. Delivery is best
// effort: failures are logged and counted, never returned to the caller.
type Notifier struct {
	sender Sender
	logger *slog.Logger
}

func NewNotifier(sender Sender, logger *slog.Logger) *Notifier {
	return &Notifier{sender: sender, logger: logger.With("component", "notifier")}
}

func (n *Notifier) Welcome(ctx context.Context, to, firstName string) {
	msg := Message{
		To:       to,
		Subject:  "Welcome to the league",
		Category: "welcome",
		HTML: fmt.Sprintf(
			`<p>Hi %s,</p><p>Your league account is ready. Sign in with this email address to see your teams and upcoming games.</p>`,
			html.EscapeString(firstName),
		),
		Text: fmt.Sprintf(
			"Hi %s,\n\nYour league account is ready. Sign in with this email address to see your teams and upcoming games.\n",
			firstName,
		),
	}
	if err := n.sender.Send(ctx, msg); err != nil {
		metrics.EmailsSentTotal.WithLabelValues(metrics.OutcomeFailure).Inc()
		n.logger.WarnContext(ctx, "welcome email failed", "to", to, "error", err)
		return
	}
	metrics.EmailsSentTotal.WithLabelValues(metrics.OutcomeSuccess).Inc()
}
