package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"booking-assistant/api"
	"booking-assistant/internal/calendar"
	"booking-assistant/internal/lock"
	"booking-assistant/internal/slots"
	"booking-assistant/pkg/response"
	"booking-assistant/pkg/sl"
)

const defaultSummary = "New Appointment"

// Book validates the requested slot, serialises bookings on the same calendar
// day and inserts the event. Policy violations and lost races are returned as
// outcomes with alternatives, not as errors.
func (s *Service) Book(ctx context.Context, req *api.BookingRequest) (*api.BookingResponse, error) {
	const op = "service.Book"

	log := s.log.With(slog.String("op", op))

	slot, err := s.parseSlot(req.Date, req.Time, req.Duration)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	dep, err := s.department(req.Department, req.VisitReason)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	resp := &api.BookingResponse{
		Department: dep.Name,
		CalendarID: dep.CalendarID,
		Slot:       s.toAPISlot(slot),
	}

	s.mu.RLock()
	res := s.cal.Validate(slot.Date, slot.Start, slot.Duration)
	s.mu.RUnlock()

	if !res.Valid {
		log.Info("booking rejected", slog.String("slot", slot.String()), slog.Any("reasons", res.Strings()))

		resp.Status = api.BookingRejected
		resp.Reasons = res.Strings()
		resp.Alternatives = s.alternatives(ctx, dep.CalendarID, slot)
		return resp, nil
	}

	key := lock.BookingKey(dep.CalendarID, slot.Date)
	acquired, err := s.locker.Lock(ctx, key, s.lockTTL)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	if !acquired {
		return nil, fmt.Errorf("%s: %w", op, response.ErrLocked)
	}
	defer func() {
		if err := s.locker.Unlock(context.WithoutCancel(ctx), key); err != nil {
			log.Error("failed to release booking lock", sl.Err(err))
		}
	}()

	busy, err := s.busy(ctx, dep.CalendarID, slot.Date)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	if !s.cal.Free(slot, busy) {
		log.Info("slot already taken", slog.String("slot", slot.String()))

		resp.Status = api.BookingConflict
		resp.Alternatives = s.alternatives(ctx, dep.CalendarID, slot)
		return resp, nil
	}

	loc := s.cal.Location()
	id, err := s.backend.InsertEvent(ctx, dep.CalendarID, calendar.Event{
		CalendarID:  dep.CalendarID,
		Summary:     summary(req.Summary),
		Description: description(req),
		Start:       slot.StartTime(loc),
		End:         slot.EndTime(loc),
		Reminders:   calendar.DefaultReminders,
	})
	if errors.Is(err, calendar.ErrConflict) {
		log.Info("insert conflicted", slog.String("slot", slot.String()))

		resp.Status = api.BookingConflict
		resp.Alternatives = s.alternatives(ctx, dep.CalendarID, slot)
		return resp, nil
	}
	if err != nil {
		return nil, fmt.Errorf("%s: %w: %w", op, response.ErrBackend, err)
	}

	log.Info("booked", slog.String("event_id", id), slog.String("slot", slot.String()))

	resp.Status = api.BookingBooked
	resp.EventID = id
	return resp, nil
}

// alternatives suggests other slots: the rest of the same day if anything is
// free there, otherwise the next day with availability. Lookup failures only
// drop the suggestions.
func (s *Service) alternatives(ctx context.Context, calendarID string, slot slots.Slot) []api.Slot {
	const op = "service.alternatives"

	log := s.log.With(slog.String("op", op))

	busy, err := s.busy(ctx, calendarID, slot.Date)
	if err != nil {
		log.Warn("failed to fetch busy intervals", sl.Err(err))
		return nil
	}

	s.mu.RLock()
	same := s.cal.EnumerateSlots(slot.Date, slot.Duration, busy)
	s.mu.RUnlock()
	if len(same) > 0 {
		return s.toAPISlots(same)
	}

	next, err := s.nextAvailable(ctx, calendarID, slot.Date.AddDays(1), s.cal.WorkStart(), slot.Duration)
	if err != nil {
		log.Warn("no alternatives found", sl.Err(err))
		return nil
	}

	return s.toAPISlots(next)
}

func (s *Service) ListEvents(ctx context.Context, date, department string) (*api.EventsResponse, error) {
	const op = "service.ListEvents"

	d, err := slots.ParseDate(date)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	dep, err := s.department(department, "")
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	events, err := s.dayEvents(ctx, dep.CalendarID, d)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	loc := s.cal.Location()
	out := make([]api.Event, 0, len(events))
	for _, ev := range events {
		out = append(out, api.Event{
			ID:          ev.ID,
			Summary:     ev.Summary,
			Description: ev.Description,
			Start:       ev.Start.In(loc).Format(time.RFC3339),
			End:         ev.End.In(loc).Format(time.RFC3339),
		})
	}

	return &api.EventsResponse{
		Date:       d.String(),
		CalendarID: dep.CalendarID,
		Events:     out,
	}, nil
}

func summary(s string) string {
	if strings.TrimSpace(s) == "" {
		return defaultSummary
	}
	return s
}

func description(req *api.BookingRequest) string {
	var parts []string
	if req.Description != "" {
		parts = append(parts, req.Description)
	}
	if req.VisitReason != "" {
		parts = append(parts, "Visit Reason: "+req.VisitReason)
	}
	if req.Email != "" {
		parts = append(parts, "Contact Email: "+req.Email)
	}
	if req.Phone != "" {
		parts = append(parts, "Contact Phone: "+req.Phone)
	}
	return strings.Join(parts, "\n")
}
