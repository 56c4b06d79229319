package reminders

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/isanahealth/practice-api/internal/auth"
	"github.com/isanahealth/practice-api/pkg/logging"
)

// EmailSender delivers the overdue-reminder digest.
type EmailSender interface {
	Send(ctx context.Context, to, subject, body string) error
}

// UserProvider resolves the practitioner the digest is addressed to.
type UserProvider interface {
	CurrentUser() *auth.TherapistUser
}

// ReminderSource lists the reminders the worker sweeps over.
type ReminderSource interface {
	OverdueReminders() []Reminder
}

// Worker periodically sweeps for overdue, incomplete reminders and emails the
// practitioner a digest. At most one digest is sent per calendar day.
type Worker struct {
	source   ReminderSource
	users    UserProvider
	email    EmailSender
	logger   *logging.Logger
	lastSent string // digest date, YYYY-MM-DD
}

// NewWorker creates a reminder sweep worker.
func NewWorker(source ReminderSource, users UserProvider, email EmailSender, logger *logging.Logger) *Worker {
	if logger == nil {
		logger = logging.Default()
	}
	return &Worker{source: source, users: users, email: email, logger: logger}
}

// Run sweeps on the given interval until the context is cancelled.
func (w *Worker) Run(ctx context.Context, interval time.Duration) {
	if interval <= 0 {
		interval = 15 * time.Minute
	}
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			w.logger.Info("reminder worker stopped")
			return
		case <-ticker.C:
			if sent, err := w.ProcessDue(ctx); err != nil {
				w.logger.Error("reminder worker: sweep failed", "error", err)
			} else if sent > 0 {
				w.logger.Info("reminder worker: digest sent", "overdue", sent)
			}
		}
	}
}

// ProcessDue sends a digest of overdue reminders if one has not gone out
// today. Returns the number of reminders included.
func (w *Worker) ProcessDue(ctx context.Context) (int, error) {
	user := w.users.CurrentUser()
	if user == nil {
		return 0, nil
	}

	loc := user.Location()
	today := time.Now().In(loc).Format(DateLayout)
	if w.lastSent == today {
		return 0, nil
	}

	overdue := w.source.OverdueReminders()
	if len(overdue) == 0 {
		return 0, nil
	}

	if err := w.email.Send(ctx, user.Email, digestSubject(len(overdue)), digestBody(overdue)); err != nil {
		return 0, fmt.Errorf("reminders: send digest: %w", err)
	}
	w.lastSent = today
	return len(overdue), nil
}

func digestSubject(n int) string {
	if n == 1 {
		return "1 overdue reminder"
	}
	return fmt.Sprintf("%d overdue reminders", n)
}

func digestBody(overdue []Reminder) string {
	var b strings.Builder
	b.WriteString("The following reminders are past their due date:\n\n")
	for _, r := range overdue {
		fmt.Fprintf(&b, "- [%s] %s (due %s)\n", r.Priority, r.Title, r.DueDate)
		if r.Description != "" {
			fmt.Fprintf(&b, "  %s\n", r.Description)
		}
	}
	return b.String()
}
