package email_test

import (
	"context"
	"errors"
	"log/slog"
	"strings"
	"testing"

	"github.com/ErlanBelekov/league-manager/internal/email"
	"github.com/ErlanBelekov/league-manager/internal/metrics"
	"github.com/prometheus/client_golang/prometheus/testutil"
)

type fakeSender struct {
	send func(ctx context.Context, msg email.Message) error
}

func (s *fakeSender) Send(ctx context.Context, msg email.Message) error {
	return s.send(ctx, msg)
}

func TestNotifier_Welcome(t *testing.T) {
	var got email.Message
	n := email.NewNotifier(&fakeSender{send: func(_ context.Context, msg email.Message) error {
		got = msg
		return nil
	}}, slog.Default())

	n.Welcome(context.Background(), "ada@example.com", "<Ada>")

	if got.To != "ada@example.com" {
		t.Fatalf("unexpected recipient %q", got.To)
	}
	if got.Category != "welcome" {
		t.Errorf("category = %q", got.Category)
	}
	if !strings.Contains(got.HTML, "&lt;Ada&gt;") {
		t.Fatalf("expected escaped name in html body, got %q", got.HTML)
	}
	if !strings.Contains(got.Text, "Hi <Ada>,") {
		t.Errorf("expected raw name in text body, got %q", got.Text)
	}
}

func TestNotifier_WelcomeSwallowsErrors(t *testing.T) {
	failures := metrics.EmailsSentTotal.WithLabelValues(metrics.OutcomeFailure)
	before := testutil.ToFloat64(failures)

	called := false
	n := email.NewNotifier(&fakeSender{send: func(context.Context, email.Message) error {
		called = true
		return errors.New("resend down")
	}}, slog.Default())

	n.Welcome(context.Background(), "ada@example.com", "Ada")

	if !called {
		t.Fatal("expected sender to be called")
	}
	if got := testutil.ToFloat64(failures) - before; got != 1 {
		t.Errorf("failure count delta = %v, want 1", got)
	}
}

func TestNewSender(t *testing.T) {
	if _, ok := email.NewSender("local", "", "", slog.Default()).(*email.LogSender); !ok {
		t.Fatal("expected LogSender for local")
	}
	if _, ok := email.NewSender("production", "re_test", "league@example.com", slog.Default()).(*email.ResendSender); !ok {
		t.Fatal("expected ResendSender outside local")
	}
}

func TestLogSender_NeverFails(t *testing.T) {
	s := email.NewSender("local", "", "", slog.Default())
	if err := s.Send(context.Background(), email.Message{To: "a@example.com", Subject: "s", HTML: "b"}); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
}
