package memory

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"booking-assistant/internal/calendar"
)

func TestInsertAndList(t *testing.T) {
	ctx := context.Background()
	b := New()
	day := time.Date(2026, time.March, 2, 0, 0, 0, 0, time.UTC)

	id, err := b.InsertEvent(ctx, "clinic", calendar.Event{
		Summary: "checkup",
		Start:   day.Add(10 * time.Hour),
		End:     day.Add(10*time.Hour + 30*time.Minute),
	})
	if err != nil {
		t.Fatalf("InsertEvent: %v", err)
	}
	if id == "" {
		t.Fatal("empty event id")
	}

	events, err := b.ListEvents(ctx, "clinic", day, day.Add(24*time.Hour))
	if err != nil {
		t.Fatalf("ListEvents: %v", err)
	}
	if len(events) != 1 || events[0].ID != id || events[0].CalendarID != "clinic" {
		t.Fatalf("unexpected events %+v", events)
	}

	other, err := b.ListEvents(ctx, "other", day, day.Add(24*time.Hour))
	if err != nil || len(other) != 0 {
		t.Fatalf("calendars must be isolated, got %v, %v", other, err)
	}
}

func TestInsertRejectsOverlap(t *testing.T) {
	ctx := context.Background()
	b := New()
	start := time.Date(2026, time.March, 2, 10, 0, 0, 0, time.UTC)

	if _, err := b.InsertEvent(ctx, "clinic", calendar.Event{Start: start, End: start.Add(30 * time.Minute)}); err != nil {
		t.Fatalf("InsertEvent: %v", err)
	}

	_, err := b.InsertEvent(ctx, "clinic", calendar.Event{Start: start.Add(15 * time.Minute), End: start.Add(45 * time.Minute)})
	if !errors.Is(err, calendar.ErrConflict) {
		t.Fatalf("expected ErrConflict, got %v", err)
	}

	if _, err := b.InsertEvent(ctx, "clinic", calendar.Event{Start: start.Add(30 * time.Minute), End: start.Add(time.Hour)}); err != nil {
		t.Fatalf("adjacent event should be accepted: %v", err)
	}
}

func TestBusyIntervalsSortedAndFiltered(t *testing.T) {
	base := time.Date(2026, time.March, 2, 9, 0, 0, 0, time.UTC)
	busy := calendar.BusyIntervals([]calendar.Event{
		{Start: base.Add(2 * time.Hour), End: base.Add(3 * time.Hour)},
		{Start: base, End: base},
		{Start: base.Add(time.Hour), End: base.Add(90 * time.Minute)},
	})

	if len(busy) != 2 {
		t.Fatalf("expected 2 intervals, got %d", len(busy))
	}
	if !busy[0].Start.Equal(base.Add(time.Hour)) {
		t.Fatalf("intervals not sorted: %v", busy)
	}
}

func TestCancelledContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	b := New()
	day := time.Date(2026, time.March, 2, 0, 0, 0, 0, time.UTC)

	_, err := b.ListEvents(ctx, "clinic", day, day.Add(24*time.Hour))
	if !errors.Is(err, context.Canceled) {
		t.Fatalf("expected context.Canceled, got %v", err)
	}
	if !strings.HasPrefix(err.Error(), "memory.ListEvents: ") {
		t.Fatalf("error not tagged with op: %v", err)
	}

	_, err = b.InsertEvent(ctx, "clinic", calendar.Event{Start: day, End: day.Add(time.Hour)})
	if !errors.Is(err, context.Canceled) || !strings.HasPrefix(err.Error(), "memory.InsertEvent: ") {
		t.Fatalf("unexpected insert error %v", err)
	}
}
