package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"booking-assistant/api"
	"booking-assistant/internal/calendar"
	"booking-assistant/internal/lock"
	"booking-assistant/internal/slots"
	"booking-assistant/pkg/response"
)

const defaultLockTTL = 10 * time.Second

// HolidayStore persists holiday changes. It is optional.
type HolidayStore interface {
	ListHolidays(ctx context.Context) ([]slots.Date, error)
	AddHoliday(ctx context.Context, d slots.Date) error
	DeleteHoliday(ctx context.Context, d slots.Date) error
}

type Department struct {
	Name       string
	CalendarID string
	Keywords   []string
}

type Options struct {
	DefaultCalendarID string
	Departments       []Department
	MaxLookaheadDays  int
	LockTTL           time.Duration
	Holidays          HolidayStore
}

type Service struct {
	log     *slog.Logger
	backend calendar.Backend
	locker  lock.Locker

	// mu guards the holiday set inside cal.
	mu  sync.RWMutex
	cal *slots.BusinessCalendar

	holidays          HolidayStore
	departments       []Department
	defaultCalendarID string
	maxLookahead      int
	lockTTL           time.Duration
}

func NewService(log *slog.Logger, cal *slots.BusinessCalendar, backend calendar.Backend, locker lock.Locker, opts Options) *Service {
	s := &Service{
		log:               log,
		backend:           backend,
		locker:            locker,
		cal:               cal,
		holidays:          opts.Holidays,
		departments:       opts.Departments,
		defaultCalendarID: opts.DefaultCalendarID,
		maxLookahead:      opts.MaxLookaheadDays,
		lockTTL:           opts.LockTTL,
	}

	if s.defaultCalendarID == "" {
		s.defaultCalendarID = "primary"
	}
	if s.maxLookahead <= 0 {
		s.maxLookahead = 14
	}
	if s.lockTTL <= 0 {
		s.lockTTL = defaultLockTTL
	}

	return s
}

// IsInputError reports whether err came from rejecting malformed input.
func IsInputError(err error) bool {
	return errors.Is(err, slots.ErrInvalidDate) ||
		errors.Is(err, slots.ErrInvalidTime) ||
		errors.Is(err, slots.ErrInvalidDuration) ||
		errors.Is(err, response.ErrBadRequest)
}

func (s *Service) parseDuration(minutes int) (int, error) {
	if minutes == 0 {
		return s.cal.SlotDuration(), nil
	}
	return slots.ParseDuration(minutes)
}

// busy fetches the busy intervals of one day in a single backend call.
func (s *Service) busy(ctx context.Context, calendarID string, d slots.Date) ([]slots.BusyInterval, error) {
	events, err := s.dayEvents(ctx, calendarID, d)
	if err != nil {
		return nil, err
	}
	return calendar.BusyIntervals(events), nil
}

func (s *Service) dayEvents(ctx context.Context, calendarID string, d slots.Date) ([]calendar.Event, error) {
	const op = "service.dayEvents"

	from, to := calendar.DayWindow(d, s.cal.Location())
	events, err := s.backend.ListEvents(ctx, calendarID, from, to)
	if err != nil {
		return nil, fmt.Errorf("%s: %w: %w", op, response.ErrBackend, err)
	}

	return events, nil
}

func (s *Service) toAPISlot(slot slots.Slot) api.Slot {
	return api.Slot{
		Date:     slot.Date.String(),
		Start:    slot.Start.String(),
		End:      slot.End().String(),
		Duration: slot.Duration,
	}
}

func (s *Service) toAPISlots(in []slots.Slot) []api.Slot {
	out := make([]api.Slot, 0, len(in))
	for _, slot := range in {
		out = append(out, s.toAPISlot(slot))
	}
	return out
}
