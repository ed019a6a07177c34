package service

import (
	"context"
	"fmt"
	"log/slog"

	"booking-assistant/api"
	"booking-assistant/internal/slots"
)

// LoadHolidays merges persisted holidays into the calendar.
func (s *Service) LoadHolidays(ctx context.Context) error {
	const op = "service.LoadHolidays"

	if s.holidays == nil {
		return nil
	}

	days, err := s.holidays.ListHolidays(ctx)
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}

	s.mu.Lock()
	for _, d := range days {
		s.cal.AddHoliday(d)
	}
	s.mu.Unlock()

	s.log.Info("holidays loaded", slog.String("op", op), slog.Int("count", len(days)))

	return nil
}

func (s *Service) Holidays() *api.HolidaysResponse {
	s.mu.RLock()
	days := s.cal.Holidays()
	s.mu.RUnlock()

	out := make([]string, 0, len(days))
	for _, d := range days {
		out = append(out, d.String())
	}
	return &api.HolidaysResponse{Holidays: out}
}

func (s *Service) AddHoliday(ctx context.Context, date string) error {
	const op = "service.AddHoliday"

	d, err := slots.ParseDate(date)
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if s.holidays != nil {
		if err := s.holidays.AddHoliday(ctx, d); err != nil {
			return fmt.Errorf("%s: %w", op, err)
		}
	}
	s.cal.AddHoliday(d)

	return nil
}

// RemoveHoliday is a no-op for dates that are not holidays.
func (s *Service) RemoveHoliday(ctx context.Context, date string) error {
	const op = "service.RemoveHoliday"

	d, err := slots.ParseDate(date)
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if s.holidays != nil {
		if err := s.holidays.DeleteHoliday(ctx, d); err != nil {
			return fmt.Errorf("%s: %w", op, err)
		}
	}
	s.cal.RemoveHoliday(d)

	return nil
}

func (s *Service) DateInfo(date string) (*api.DateInfo, error) {
	const op = "service.DateInfo"

	d, err := slots.ParseDate(date)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	s.mu.RLock()
	info := s.cal.DateInfo(d)
	next := s.cal.NextWorkingDay(d)
	s.mu.RUnlock()

	return &api.DateInfo{
		Date:           info.Date.String(),
		IsWeekend:      info.IsWeekend,
		IsHoliday:      info.IsHoliday,
		IsWorkingDay:   info.IsWorkingDay,
		NextWorkingDay: next.String(),
	}, nil
}
