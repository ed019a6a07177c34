package google

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"booking-assistant/internal/calendar"

	gcal "google.golang.org/api/calendar/v3"
	"google.golang.org/api/option"
)

func newTestBackend(t *testing.T, handler http.HandlerFunc) *Backend {
	t.Helper()

	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)

	b, err := New(context.Background(), time.UTC,
		option.WithEndpoint(srv.URL+"/"),
		option.WithHTTPClient(srv.Client()),
	)
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	return b
}

func TestListEvents(t *testing.T) {
	b := newTestBackend(t, func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodGet || r.URL.Path != "/calendars/clinic/events" {
			t.Errorf("unexpected request %s %s", r.Method, r.URL.Path)
		}
		q := r.URL.Query()
		if q.Get("singleEvents") != "true" || q.Get("orderBy") != "startTime" {
			t.Errorf("unexpected query %s", r.URL.RawQuery)
		}
		if q.Get("timeMin") != "2026-03-02T00:00:00Z" {
			t.Errorf("timeMin = %q", q.Get("timeMin"))
		}

		_ = json.NewEncoder(w).Encode(gcal.Events{Items: []*gcal.Event{
			{
				Id:    "timed",
				Start: &gcal.EventDateTime{DateTime: "2026-03-02T10:00:00+01:00"},
				End:   &gcal.EventDateTime{DateTime: "2026-03-02T10:30:00+01:00"},
			},
			{
				Id:    "all-day",
				Start: &gcal.EventDateTime{Date: "2026-03-02"},
				End:   &gcal.EventDateTime{Date: "2026-03-03"},
			},
			{
				Id:     "cancelled",
				Status: "cancelled",
				Start:  &gcal.EventDateTime{DateTime: "2026-03-02T11:00:00Z"},
				End:    &gcal.EventDateTime{DateTime: "2026-03-02T12:00:00Z"},
			},
			{
				Id:           "free",
				Transparency: "transparent",
				Start:        &gcal.EventDateTime{DateTime: "2026-03-02T13:00:00Z"},
				End:          &gcal.EventDateTime{DateTime: "2026-03-02T14:00:00Z"},
			},
		}})
	})

	day := time.Date(2026, time.March, 2, 0, 0, 0, 0, time.UTC)
	events, err := b.ListEvents(context.Background(), "clinic", day, day.Add(24*time.Hour))
	if err != nil {
		t.Fatalf("ListEvents: %v", err)
	}
	if len(events) != 2 {
		t.Fatalf("expected 2 events, got %+v", events)
	}

	if events[0].ID != "timed" || !events[0].Start.Equal(time.Date(2026, time.March, 2, 9, 0, 0, 0, time.UTC)) {
		t.Fatalf("timed event not converted: %+v", events[0])
	}
	if !events[1].Start.Equal(day) || !events[1].End.Equal(day.Add(24*time.Hour)) {
		t.Fatalf("all-day event not converted: %+v", events[1])
	}
}

func TestInsertEvent(t *testing.T) {
	var got gcal.Event
	b := newTestBackend(t, func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost || r.URL.Path != "/calendars/clinic/events" {
			t.Errorf("unexpected request %s %s", r.Method, r.URL.Path)
		}
		if r.URL.Query().Get("sendUpdates") != "all" {
			t.Errorf("sendUpdates = %q", r.URL.Query().Get("sendUpdates"))
		}
		if err := json.NewDecoder(r.Body).Decode(&got); err != nil {
			t.Errorf("decode body: %v", err)
		}
		_ = json.NewEncoder(w).Encode(gcal.Event{Id: "evt-1"})
	})

	start := time.Date(2026, time.March, 2, 10, 0, 0, 0, time.UTC)
	id, err := b.InsertEvent(context.Background(), "clinic", calendar.Event{
		Summary:     "New Appointment",
		Description: "Contact Phone: 123",
		Start:       start,
		End:         start.Add(30 * time.Minute),
		Reminders:   calendar.DefaultReminders,
	})
	if err != nil {
		t.Fatalf("InsertEvent: %v", err)
	}
	if id != "evt-1" {
		t.Fatalf("id = %q", id)
	}
	if got.Summary != "New Appointment" || got.Start.DateTime != "2026-03-02T10:00:00Z" || got.Start.TimeZone != "UTC" {
		t.Fatalf("unexpected body %+v start=%+v", got, got.Start)
	}
	if got.Reminders == nil || got.Reminders.UseDefault || len(got.Reminders.Overrides) != 2 {
		t.Fatalf("unexpected reminders %+v", got.Reminders)
	}
	if o := got.Reminders.Overrides[0]; o.Method != "email" || o.Minutes != 24*60 {
		t.Fatalf("unexpected email reminder %+v", o)
	}
	if o := got.Reminders.Overrides[1]; o.Method != "popup" || o.Minutes != 60 {
		t.Fatalf("unexpected popup reminder %+v", o)
	}
}

func TestInsertEventConflict(t *testing.T) {
	b := newTestBackend(t, func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusConflict)
		_, _ = w.Write([]byte(`{"error":{"code":409,"message":"duplicate"}}`))
	})

	start := time.Date(2026, time.March, 2, 10, 0, 0, 0, time.UTC)
	_, err := b.InsertEvent(context.Background(), "clinic", calendar.Event{Start: start, End: start.Add(time.Hour)})
	if !errors.Is(err, calendar.ErrConflict) {
		t.Fatalf("expected ErrConflict, got %v", err)
	}
}
