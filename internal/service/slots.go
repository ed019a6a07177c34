package service

import (
	"context"
	"fmt"

	"booking-assistant/api"
	"booking-assistant/internal/slots"
)

func (s *Service) AvailableSlots(ctx context.Context, date string, duration int, department string) (*api.SlotsResponse, error) {
	const op = "service.AvailableSlots"

	d, err := slots.ParseDate(date)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	dur, err := s.parseDuration(duration)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	dep, err := s.department(department, "")
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	busy, err := s.busy(ctx, dep.CalendarID, d)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	s.mu.RLock()
	found := s.cal.EnumerateSlots(d, dur, busy)
	s.mu.RUnlock()

	return &api.SlotsResponse{
		Date:       d.String(),
		Department: dep.Name,
		Slots:      s.toAPISlots(found),
	}, nil
}

// CheckSlot reports policy validity and occupancy separately so callers can
// tell "not permitted" apart from "already taken".
func (s *Service) CheckSlot(ctx context.Context, req *api.SlotCheckRequest) (*api.SlotCheckResponse, error) {
	const op = "service.CheckSlot"

	slot, err := s.parseSlot(req.Date, req.Time, req.Duration)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	dep, err := s.department(req.Department, "")
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	busy, err := s.busy(ctx, dep.CalendarID, slot.Date)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	s.mu.RLock()
	res := s.cal.Validate(slot.Date, slot.Start, slot.Duration)
	free := s.cal.Free(slot, busy)
	available := s.cal.IsAvailable(slot.Date, slot.Start, slot.Duration, busy)
	s.mu.RUnlock()

	return &api.SlotCheckResponse{
		Slot:      s.toAPISlot(slot),
		Valid:     res.Valid,
		Reasons:   res.Strings(),
		Free:      free,
		Available: available,
	}, nil
}

func (s *Service) NextAvailable(ctx context.Context, from, after string, duration int, department string) (*api.NextSlotResponse, error) {
	const op = "service.NextAvailable"

	var d slots.Date
	var err error
	if from == "" {
		d = s.cal.Today()
	} else if d, err = slots.ParseDate(from); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	start := s.cal.WorkStart()
	if after != "" {
		if start, err = slots.ParseClock(after); err != nil {
			return nil, fmt.Errorf("%s: %w", op, err)
		}
	}

	dur, err := s.parseDuration(duration)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	dep, err := s.department(department, "")
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	found, err := s.nextAvailable(ctx, dep.CalendarID, d, start, dur)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	return &api.NextSlotResponse{
		Next:       s.toAPISlot(found[0]),
		Date:       found[0].Date.String(),
		Department: dep.Name,
		Slots:      s.toAPISlots(found),
	}, nil
}

func (s *Service) nextAvailable(ctx context.Context, calendarID string, from slots.Date, after slots.Clock, duration int) ([]slots.Slot, error) {
	busyFn := func(d slots.Date) ([]slots.BusyInterval, error) {
		return s.busy(ctx, calendarID, d)
	}

	// busyFn does backend I/O per day; walk a snapshot without holding mu.
	s.mu.RLock()
	cal := s.cal.Clone()
	s.mu.RUnlock()

	return cal.NextAvailableSlot(from, after, duration, busyFn, s.maxLookahead)
}

func (s *Service) parseSlot(date, clock string, duration int) (slots.Slot, error) {
	d, err := slots.ParseDate(date)
	if err != nil {
		return slots.Slot{}, err
	}
	start, err := slots.ParseClock(clock)
	if err != nil {
		return slots.Slot{}, err
	}
	dur, err := s.parseDuration(duration)
	if err != nil {
		return slots.Slot{}, err
	}

	return slots.Slot{Date: d, Start: start, Duration: dur}, nil
}
