// Package memory is a process-local calendar backend.
package memory

import (
	"context"
	"fmt"
	"sort"
	"sync"
	"time"

	"booking-assistant/internal/calendar"

	"github.com/google/uuid"
)

type Backend struct {
	mu     sync.Mutex
	events map[string][]calendar.Event
}

func New() *Backend {
	return &Backend{events: make(map[string][]calendar.Event)}
}

func (b *Backend) ListEvents(ctx context.Context, calendarID string, timeMin, timeMax time.Time) ([]calendar.Event, error) {
	const op = "memory.ListEvents"

	if err := ctx.Err(); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	b.mu.Lock()
	defer b.mu.Unlock()

	var out []calendar.Event
	for _, ev := range b.events[calendarID] {
		if calendar.Overlaps(ev.Start, ev.End, timeMin, timeMax) {
			out = append(out, ev)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Start.Before(out[j].Start) })

	return out, nil
}

// InsertEvent stores ev and rejects it with calendar.ErrConflict when it
// overlaps an existing event of the same calendar.
func (b *Backend) InsertEvent(ctx context.Context, calendarID string, ev calendar.Event) (string, error) {
	const op = "memory.InsertEvent"

	if err := ctx.Err(); err != nil {
		return "", fmt.Errorf("%s: %w", op, err)
	}
	if !ev.End.After(ev.Start) {
		return "", fmt.Errorf("%s: event ends before it starts", op)
	}

	b.mu.Lock()
	defer b.mu.Unlock()

	for _, existing := range b.events[calendarID] {
		if calendar.Overlaps(existing.Start, existing.End, ev.Start, ev.End) {
			return "", fmt.Errorf("%s: %w", op, calendar.ErrConflict)
		}
	}

	ev.ID = uuid.NewString()
	ev.CalendarID = calendarID
	b.events[calendarID] = append(b.events[calendarID], ev)

	return ev.ID, nil
}
