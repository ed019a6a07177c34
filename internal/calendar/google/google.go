// Package google adapts the Google Calendar v3 API to calendar.Backend.
package google

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"booking-assistant/internal/calendar"

	gcal "google.golang.org/api/calendar/v3"
	"google.golang.org/api/googleapi"
	"google.golang.org/api/option"
)

const (
	statusCancelled   = "cancelled"
	transparencyFree  = "transparent"
	allDayEventLayout = "2006-01-02"
	sendUpdatesAll    = "all"
)

type Backend struct {
	svc *gcal.Service
	loc *time.Location
}

// New builds a backend from client options, e.g. option.WithCredentialsFile.
// loc is used for all-day events and for the timeZone of inserted events.
func New(ctx context.Context, loc *time.Location, opts ...option.ClientOption) (*Backend, error) {
	const op = "google.New"

	opts = append([]option.ClientOption{option.WithScopes(gcal.CalendarScope)}, opts...)

	svc, err := gcal.NewService(ctx, opts...)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	if loc == nil {
		loc = time.UTC
	}

	return &Backend{svc: svc, loc: loc}, nil
}

func (b *Backend) ListEvents(ctx context.Context, calendarID string, timeMin, timeMax time.Time) ([]calendar.Event, error) {
	const op = "google.ListEvents"

	var out []calendar.Event

	call := b.svc.Events.List(calendarID).
		TimeMin(timeMin.Format(time.RFC3339)).
		TimeMax(timeMax.Format(time.RFC3339)).
		SingleEvents(true).
		OrderBy("startTime")

	err := call.Pages(ctx, func(page *gcal.Events) error {
		for _, item := range page.Items {
			if item.Status == statusCancelled || item.Transparency == transparencyFree {
				continue
			}
			ev, err := b.toEvent(calendarID, item)
			if err != nil {
				return err
			}
			out = append(out, ev)
		}
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	return out, nil
}

func (b *Backend) InsertEvent(ctx context.Context, calendarID string, ev calendar.Event) (string, error) {
	const op = "google.InsertEvent"

	body := &gcal.Event{
		Summary:     ev.Summary,
		Description: ev.Description,
		Start: &gcal.EventDateTime{
			DateTime: ev.Start.In(b.loc).Format(time.RFC3339),
			TimeZone: b.loc.String(),
		},
		End: &gcal.EventDateTime{
			DateTime: ev.End.In(b.loc).Format(time.RFC3339),
			TimeZone: b.loc.String(),
		},
	}

	if len(ev.Reminders) > 0 {
		body.Reminders = &gcal.EventReminders{
			UseDefault:      false,
			ForceSendFields: []string{"UseDefault"},
		}
		for _, r := range ev.Reminders {
			body.Reminders.Overrides = append(body.Reminders.Overrides, &gcal.EventReminder{
				Method:  r.Method,
				Minutes: int64(r.Minutes),
			})
		}
	}

	created, err := b.svc.Events.Insert(calendarID, body).
		SendUpdates(sendUpdatesAll).
		Context(ctx).
		Do()
	if err != nil {
		var gerr *googleapi.Error
		if errors.As(err, &gerr) && gerr.Code == http.StatusConflict {
			return "", fmt.Errorf("%s: %w", op, calendar.ErrConflict)
		}
		return "", fmt.Errorf("%s: %w", op, err)
	}

	return created.Id, nil
}

func (b *Backend) toEvent(calendarID string, item *gcal.Event) (calendar.Event, error) {
	start, err := b.parseDateTime(item.Start)
	if err != nil {
		return calendar.Event{}, fmt.Errorf("event %s start: %w", item.Id, err)
	}
	end, err := b.parseDateTime(item.End)
	if err != nil {
		return calendar.Event{}, fmt.Errorf("event %s end: %w", item.Id, err)
	}

	return calendar.Event{
		ID:          item.Id,
		CalendarID:  calendarID,
		Summary:     item.Summary,
		Description: item.Description,
		Start:       start,
		End:         end,
	}, nil
}

// parseDateTime handles timed events (dateTime) and all-day events (date).
// All-day boundaries are midnight in the backend's location.
func (b *Backend) parseDateTime(dt *gcal.EventDateTime) (time.Time, error) {
	if dt == nil {
		return time.Time{}, errors.New("missing date")
	}
	if dt.DateTime != "" {
		t, err := time.Parse(time.RFC3339, dt.DateTime)
		if err != nil {
			return time.Time{}, err
		}
		return t.In(b.loc), nil
	}
	return time.ParseInLocation(allDayEventLayout, dt.Date, b.loc)
}
