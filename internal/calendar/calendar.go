// Package calendar defines the calendar backend the booking service reads
// busy time from and writes appointments to.
package calendar

import (
	"context"
	"errors"
	"sort"
	"time"

	"booking-assistant/internal/slots"
)

// ErrConflict is returned by InsertEvent when the requested window is already
// taken at insert time.
var ErrConflict = errors.New("calendar: time window already booked")

type Event struct {
	ID          string
	CalendarID  string
	Summary     string
	Description string
	Start       time.Time
	End         time.Time
	Reminders   []Reminder
}

// Reminder notifies attendees Minutes before the event starts. Method is
// "email" or "popup".
type Reminder struct {
	Method  string
	Minutes int
}

// DefaultReminders are attached to every booked appointment.
var DefaultReminders = []Reminder{
	{Method: "email", Minutes: 24 * 60},
	{Method: "popup", Minutes: 60},
}

type Backend interface {
	ListEvents(ctx context.Context, calendarID string, timeMin, timeMax time.Time) ([]Event, error)
	InsertEvent(ctx context.Context, calendarID string, ev Event) (string, error)
}

// BusyIntervals converts events to engine input, ordered by start.
func BusyIntervals(events []Event) []slots.BusyInterval {
	out := make([]slots.BusyInterval, 0, len(events))
	for _, ev := range events {
		if !ev.End.After(ev.Start) {
			continue
		}
		out = append(out, slots.BusyInterval{Start: ev.Start, End: ev.End})
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Start.Before(out[j].Start) })
	return out
}

// DayWindow returns [midnight, next midnight) of d in loc.
func DayWindow(d slots.Date, loc *time.Location) (time.Time, time.Time) {
	return d.In(loc), d.AddDays(1).In(loc)
}

// Overlaps reports whether [aStart,aEnd) and [bStart,bEnd) intersect.
func Overlaps(aStart, aEnd, bStart, bEnd time.Time) bool {
	return aStart.Before(bEnd) && bStart.Before(aEnd)
}
