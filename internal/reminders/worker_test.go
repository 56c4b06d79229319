package reminders

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/isanahealth/practice-api/internal/auth"
)

type fakeUsers struct{ user *auth.TherapistUser }

func (f fakeUsers) CurrentUser() *auth.TherapistUser { return f.user }

type fakeSource struct{ overdue []Reminder }

func (f fakeSource) OverdueReminders() []Reminder { return f.overdue }

type recordingEmail struct {
	sent []string // "to|subject|body"
	err  error
}

func (r *recordingEmail) Send(_ context.Context, to, subject, body string) error {
	if r.err != nil {
		return r.err
	}
	r.sent = append(r.sent, to+"|"+subject+"|"+body)
	return nil
}

func testUser() *auth.TherapistUser {
	return &auth.TherapistUser{
		ID:    "therapist-1",
		Email: "dr.smith@isana.health",
		Preferences: auth.UserPreferences{
			Timezone: "America/Los_Angeles",
		},
	}
}

func TestProcessDueSendsDigest(t *testing.T) {
	email := &recordingEmail{}
	worker := NewWorker(fakeSource{overdue: []Reminder{
		{Title: "Submit insurance claim", DueDate: "2026-08-01", Priority: PriorityHigh, Description: "CPT 90837"},
		{Title: "Chase intake forms", DueDate: "2026-08-15", Priority: PriorityMedium},
	}}, fakeUsers{user: testUser()}, email, nil)

	sent, err := worker.ProcessDue(context.Background())
	if err != nil {
		t.Fatalf("ProcessDue() error = %v", err)
	}
	if sent != 2 {
		t.Errorf("ProcessDue() = %d, want 2", sent)
	}
	if len(email.sent) != 1 {
		t.Fatalf("expected 1 email, got %d", len(email.sent))
	}
	msg := email.sent[0]
	if !strings.HasPrefix(msg, "dr.smith@isana.health|2 overdue reminders|") {
		t.Errorf("unexpected recipient/subject: %s", msg)
	}
	if !strings.Contains(msg, "Submit insurance claim") || !strings.Contains(msg, "CPT 90837") {
		t.Errorf("digest body missing reminder details: %s", msg)
	}
}

func TestProcessDueOncePerDay(t *testing.T) {
	email := &recordingEmail{}
	worker := NewWorker(fakeSource{overdue: []Reminder{
		{Title: "Submit insurance claim", DueDate: "2026-08-01", Priority: PriorityHigh},
	}}, fakeUsers{user: testUser()}, email, nil)

	if _, err := worker.ProcessDue(context.Background()); err != nil {
		t.Fatal(err)
	}
	sent, err := worker.ProcessDue(context.Background())
	if err != nil {
		t.Fatal(err)
	}
	if sent != 0 {
		t.Errorf("second sweep sent %d, want 0", sent)
	}
	if len(email.sent) != 1 {
		t.Errorf("expected 1 email total, got %d", len(email.sent))
	}
}

func TestProcessDueSignedOut(t *testing.T) {
	email := &recordingEmail{}
	worker := NewWorker(fakeSource{overdue: []Reminder{{Title: "x", DueDate: "2026-08-01"}}},
		fakeUsers{}, email, nil)

	sent, err := worker.ProcessDue(context.Background())
	if err != nil || sent != 0 {
		t.Errorf("ProcessDue() = (%d, %v), want (0, nil)", sent, err)
	}
	if len(email.sent) != 0 {
		t.Errorf("expected no email while signed out, got %d", len(email.sent))
	}
}

func TestProcessDueNothingOverdue(t *testing.T) {
	email := &recordingEmail{}
	worker := NewWorker(fakeSource{}, fakeUsers{user: testUser()}, email, nil)

	sent, err := worker.ProcessDue(context.Background())
	if err != nil || sent != 0 {
		t.Errorf("ProcessDue() = (%d, %v), want (0, nil)", sent, err)
	}
}

func TestProcessDueSendFailureRetriesNextSweep(t *testing.T) {
	email := &recordingEmail{err: errors.New("smtp down")}
	worker := NewWorker(fakeSource{overdue: []Reminder{
		{Title: "Submit insurance claim", DueDate: "2026-08-01", Priority: PriorityHigh},
	}}, fakeUsers{user: testUser()}, email, nil)

	if _, err := worker.ProcessDue(context.Background()); err == nil {
		t.Fatal("expected error from failed send")
	}

	// The failed sweep must not mark today as sent.
	email.err = nil
	sent, err := worker.ProcessDue(context.Background())
	if err != nil {
		t.Fatal(err)
	}
	if sent != 1 {
		t.Errorf("retry sweep sent %d, want 1", sent)
	}
}
