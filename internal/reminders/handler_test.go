package reminders

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/go-chi/chi/v5"
)

// fakeStore mimics the app state store's reminder slice with precomputed
// active/overdue views.
type fakeStore struct {
	reminders []Reminder
	overdue   []Reminder
	err       error
}

func (f *fakeStore) Reminders() []Reminder {
	out := make([]Reminder, len(f.reminders))
	copy(out, f.reminders)
	return out
}

func (f *fakeStore) ActiveReminders() []Reminder {
	out := []Reminder{}
	for _, r := range f.reminders {
		if !r.IsCompleted {
			out = append(out, r)
		}
	}
	return out
}

func (f *fakeStore) OverdueReminders() []Reminder { return f.overdue }

func (f *fakeStore) AddReminder(_ context.Context, req *CreateReminderRequest) (*Reminder, error) {
	if f.err != nil {
		return nil, f.err
	}
	if err := req.Validate(); err != nil {
		return nil, err
	}
	r := Reminder{
		ID:       fmt.Sprintf("reminder-%d", len(f.reminders)+1),
		Type:     req.Type,
		Title:    req.Title,
		DueDate:  req.DueDate,
		Priority: req.Priority,
	}
	f.reminders = append(f.reminders, r)
	return &r, nil
}

func (f *fakeStore) UpdateReminder(_ context.Context, id string, fields *UpdateReminderFields) (*Reminder, error) {
	if f.err != nil {
		return nil, f.err
	}
	if err := fields.Validate(); err != nil {
		return nil, err
	}
	for i := range f.reminders {
		if f.reminders[i].ID == id {
			fields.Apply(&f.reminders[i])
			r := f.reminders[i]
			return &r, nil
		}
	}
	return nil, ErrReminderNotFound
}

func (f *fakeStore) RemoveReminder(_ context.Context, id string) error {
	if f.err != nil {
		return f.err
	}
	for i := range f.reminders {
		if f.reminders[i].ID == id {
			f.reminders = append(f.reminders[:i], f.reminders[i+1:]...)
			return nil
		}
	}
	return nil
}

func seededStore() *fakeStore {
	overdue := Reminder{ID: "reminder-1", Title: "Submit insurance claim", Type: TypeInsurance, DueDate: "2026-08-01", Priority: PriorityHigh}
	return &fakeStore{
		reminders: []Reminder{
			overdue,
			{ID: "reminder-2", Title: "Prepare intake packet", Type: TypeCustom, DueDate: "2099-01-01", Priority: PriorityMedium},
			{ID: "reminder-3", Title: "Archive old files", Type: TypeCustom, DueDate: "2026-08-01", Priority: PriorityLow, IsCompleted: true},
		},
		overdue: []Reminder{overdue},
	}
}

func withURLParam(r *http.Request, key, value string) *http.Request {
	rctx := chi.NewRouteContext()
	rctx.URLParams.Add(key, value)
	return r.WithContext(context.WithValue(r.Context(), chi.RouteCtxKey, rctx))
}

func TestListReminders(t *testing.T) {
	handler := NewHandler(seededStore(), nil)

	req := httptest.NewRequest(http.MethodGet, "/reminders", nil)
	w := httptest.NewRecorder()
	handler.List(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("expected status %d, got %d", http.StatusOK, w.Code)
	}
	var resp ListRemindersResponse
	if err := json.NewDecoder(w.Body).Decode(&resp); err != nil {
		t.Fatalf("failed to decode response: %v", err)
	}
	if resp.Count != 3 {
		t.Errorf("expected count 3, got %d", resp.Count)
	}
}

func TestListReminders_Views(t *testing.T) {
	handler := NewHandler(seededStore(), nil)

	for _, tt := range []struct {
		view string
		want int
	}{
		{"active", 2},
		{"overdue", 1},
	} {
		req := httptest.NewRequest(http.MethodGet, "/reminders?view="+tt.view, nil)
		w := httptest.NewRecorder()
		handler.List(w, req)

		var resp ListRemindersResponse
		if err := json.NewDecoder(w.Body).Decode(&resp); err != nil {
			t.Fatalf("view %s: failed to decode response: %v", tt.view, err)
		}
		if resp.Count != tt.want {
			t.Errorf("view %s: expected count %d, got %d", tt.view, tt.want, resp.Count)
		}
	}
}

func TestCreateReminder(t *testing.T) {
	store := seededStore()
	handler := NewHandler(store, nil)

	body, _ := json.Marshal(CreateReminderRequest{Title: "Call pharmacy", DueDate: "2026-09-15"})
	req := httptest.NewRequest(http.MethodPost, "/reminders", bytes.NewReader(body))
	w := httptest.NewRecorder()
	handler.Create(w, req)

	if w.Code != http.StatusCreated {
		t.Fatalf("expected status %d, got %d: %s", http.StatusCreated, w.Code, w.Body.String())
	}
	var got Reminder
	if err := json.NewDecoder(w.Body).Decode(&got); err != nil {
		t.Fatalf("failed to decode response: %v", err)
	}
	// Type and priority default when omitted.
	if got.Type != TypeCustom || got.Priority != PriorityMedium {
		t.Errorf("expected custom/medium defaults, got %s/%s", got.Type, got.Priority)
	}
}

func TestCreateReminder_Invalid(t *testing.T) {
	tests := []struct {
		name string
		req  CreateReminderRequest
	}{
		{"missing title", CreateReminderRequest{DueDate: "2026-09-15"}},
		{"bad due date", CreateReminderRequest{Title: "x", DueDate: "soon"}},
		{"bad priority", CreateReminderRequest{Title: "x", DueDate: "2026-09-15", Priority: "urgent"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			handler := NewHandler(seededStore(), nil)
			body, _ := json.Marshal(tt.req)
			req := httptest.NewRequest(http.MethodPost, "/reminders", bytes.NewReader(body))
			w := httptest.NewRecorder()
			handler.Create(w, req)

			if w.Code != http.StatusBadRequest {
				t.Errorf("expected status %d, got %d", http.StatusBadRequest, w.Code)
			}
		})
	}
}

func TestUpdateReminder_Complete(t *testing.T) {
	handler := NewHandler(seededStore(), nil)

	done := true
	body, _ := json.Marshal(UpdateReminderFields{IsCompleted: &done})
	req := withURLParam(httptest.NewRequest(http.MethodPatch, "/reminders/reminder-1", bytes.NewReader(body)), "reminderID", "reminder-1")
	w := httptest.NewRecorder()
	handler.Update(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("expected status %d, got %d: %s", http.StatusOK, w.Code, w.Body.String())
	}
	var got Reminder
	if err := json.NewDecoder(w.Body).Decode(&got); err != nil {
		t.Fatalf("failed to decode response: %v", err)
	}
	if !got.IsCompleted {
		t.Error("expected reminder to be completed")
	}
}

func TestUpdateReminder_NotFound(t *testing.T) {
	handler := NewHandler(seededStore(), nil)

	title := "renamed"
	body, _ := json.Marshal(UpdateReminderFields{Title: &title})
	req := withURLParam(httptest.NewRequest(http.MethodPatch, "/reminders/nope", bytes.NewReader(body)), "reminderID", "nope")
	w := httptest.NewRecorder()
	handler.Update(w, req)

	if w.Code != http.StatusNotFound {
		t.Errorf("expected status %d, got %d", http.StatusNotFound, w.Code)
	}
}

func TestDeleteReminder(t *testing.T) {
	store := seededStore()
	handler := NewHandler(store, nil)

	req := withURLParam(httptest.NewRequest(http.MethodDelete, "/reminders/reminder-1", nil), "reminderID", "reminder-1")
	w := httptest.NewRecorder()
	handler.Delete(w, req)

	if w.Code != http.StatusNoContent {
		t.Fatalf("expected status %d, got %d", http.StatusNoContent, w.Code)
	}
	if len(store.reminders) != 2 {
		t.Errorf("expected 2 reminders left, got %d", len(store.reminders))
	}
}
