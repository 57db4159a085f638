package orchestrators

import (
	"context"
	"fmt"
	"html"
	"log/slog"
	"strings"
	"time"

	"github.com/robfig/cron/v3"

	"lawcal/internal/adapters/email"
	sessionStore "lawcal/internal/adapters/storage/session"
	"lawcal/internal/domain/calendar"
	"lawcal/internal/domain/session"
)

// DailyDigestDeps holds dependencies for the daily digest job.
type DailyDigestDeps struct {
	SessionStore sessionStore.Store
	Sender       email.Sender
	From         string
	Recipients   []string
	Now          func() time.Time
}

// ExecuteDailyDigest emails the office a summary of the day's scheduled
// sessions. Days with nothing scheduled send nothing.
// PRE: deps.Sender is configured (noop in development)
// POST: one email per run when sessions exist; failures are logged and
// retried at the next scheduled run
func ExecuteDailyDigest(ctx context.Context, deps DailyDigestDeps) error {
	if len(deps.Recipients) == 0 {
		return nil
	}

	day := calendar.DayKey(deps.Now())
	rows, err := deps.SessionStore.ListCalendarRange(ctx, day, day)
	if err != nil {
		return fmt.Errorf("failed to load today's sessions: %w", err)
	}

	var scheduled []session.CalendarRow
	for _, r := range rows {
		if r.Status == session.StatusScheduled {
			scheduled = append(scheduled, r)
		}
	}
	if len(scheduled) == 0 {
		slog.Debug("digest_event", "event", "digest_skipped", "day", day)
		return nil
	}

	subject := fmt.Sprintf("Court sessions for %s (%d)", day, len(scheduled))
	_, err = deps.Sender.Send(ctx, email.SendRequest{
		To:      deps.Recipients,
		From:    deps.From,
		Subject: subject,
		HTML:    digestHTML(day, scheduled),
	})
	if err != nil {
		return fmt.Errorf("failed to send daily digest: %w", err)
	}

	slog.Info("digest_event", "event", "digest_sent", "day", day, "sessions", len(scheduled))
	return nil
}

func digestHTML(day string, rows []session.CalendarRow) string {
	var b strings.Builder
	fmt.Fprintf(&b, "<h2>Sessions on %s</h2><ul>", day)
	for _, r := range rows {
		fmt.Fprintf(&b, "<li><strong>%s</strong>", html.EscapeString(r.CaseTitle))
		if r.CourtName != "" {
			fmt.Fprintf(&b, " at %s", html.EscapeString(r.CourtName))
		}
		if len(r.Lawyers) > 0 {
			fmt.Fprintf(&b, " (%s)", html.EscapeString(strings.Join(r.Lawyers, ", ")))
		}
		b.WriteString("</li>")
	}
	b.WriteString("</ul>")
	return b.String()
}

// StartDigestScheduler runs the daily digest on the given cron schedule
// (standard 5-field spec) until the returned cron is stopped.
// PRE: spec is a valid cron expression
// POST: scheduler is started; each run gets a bounded context
func StartDigestScheduler(spec string, deps DailyDigestDeps) (*cron.Cron, error) {
	c := cron.New()
	_, err := c.AddFunc(spec, func() {
		ctx, cancel := context.WithTimeout(context.Background(), 2*time.Minute)
		defer cancel()
		if err := ExecuteDailyDigest(ctx, deps); err != nil {
			slog.Error("digest_event", "event", "digest_failed", "error", err.Error())
		}
	})
	if err != nil {
		return nil, fmt.Errorf("invalid digest schedule %q: %w", spec, err)
	}
	c.Start()
	return c, nil
}
