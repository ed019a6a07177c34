package slots

import (
	"errors"
	"fmt"
	"sort"
	"time"
)

var ErrInvalidCalendar = errors.New("invalid business calendar")

// Settings is the plain configuration a BusinessCalendar is built from.
type Settings struct {
	WorkStart        Clock
	WorkEnd          Clock
	LunchStart       Clock
	LunchEnd         Clock
	SlotDuration     int
	AllowedDurations []int
	Granularity      int
	WeekendDays      []time.Weekday
	Holidays         []Date
	Location         *time.Location
}

// BusinessCalendar holds the booking policy for one calendar. The holiday set
// is the only mutable part; callers must not mutate it concurrently with
// other use.
type BusinessCalendar struct {
	workStart    Clock
	workEnd      Clock
	lunchStart   Clock
	lunchEnd     Clock
	slotDuration int
	allowed      map[int]struct{}
	granularity  int
	weekend      map[time.Weekday]struct{}
	holidays     map[Date]struct{}
	loc          *time.Location

	now func() time.Time
}

func NewBusinessCalendar(s Settings) (*BusinessCalendar, error) {
	const op = "slots.NewBusinessCalendar"

	if s.WorkStart < 0 || s.WorkEnd > minutesPerDay || s.WorkStart >= s.WorkEnd {
		return nil, fmt.Errorf("%s: %w: work hours %s-%s", op, ErrInvalidCalendar, s.WorkStart, s.WorkEnd)
	}
	if s.LunchStart != s.LunchEnd {
		if !(s.WorkStart < s.LunchStart && s.LunchStart <= s.LunchEnd && s.LunchEnd < s.WorkEnd) {
			return nil, fmt.Errorf("%s: %w: lunch %s-%s must lie inside work hours", op, ErrInvalidCalendar, s.LunchStart, s.LunchEnd)
		}
	}
	if s.SlotDuration <= 0 {
		return nil, fmt.Errorf("%s: %w: slot duration must be positive", op, ErrInvalidCalendar)
	}
	if s.Granularity <= 0 {
		return nil, fmt.Errorf("%s: %w: granularity must be positive", op, ErrInvalidCalendar)
	}

	loc := s.Location
	if loc == nil {
		loc = time.UTC
	}

	c := &BusinessCalendar{
		workStart:    s.WorkStart,
		workEnd:      s.WorkEnd,
		lunchStart:   s.LunchStart,
		lunchEnd:     s.LunchEnd,
		slotDuration: s.SlotDuration,
		granularity:  s.Granularity,
		weekend:      make(map[time.Weekday]struct{}, len(s.WeekendDays)),
		holidays:     make(map[Date]struct{}, len(s.Holidays)),
		loc:          loc,
		now:          time.Now,
	}

	if len(s.AllowedDurations) > 0 {
		c.allowed = make(map[int]struct{}, len(s.AllowedDurations))
		for _, d := range s.AllowedDurations {
			if d <= 0 {
				return nil, fmt.Errorf("%s: %w: allowed duration %d", op, ErrInvalidCalendar, d)
			}
			c.allowed[d] = struct{}{}
		}
	}
	for _, wd := range s.WeekendDays {
		c.weekend[wd] = struct{}{}
	}
	for _, h := range s.Holidays {
		c.holidays[h] = struct{}{}
	}

	return c, nil
}

// WithClock replaces the source of "now" used by the past-date check.
func (c *BusinessCalendar) WithClock(now func() time.Time) *BusinessCalendar {
	c.now = now
	return c
}

// Clone returns a copy whose holiday set can change independently of c.
func (c *BusinessCalendar) Clone() *BusinessCalendar {
	cp := *c
	cp.holidays = make(map[Date]struct{}, len(c.holidays))
	for d := range c.holidays {
		cp.holidays[d] = struct{}{}
	}
	return &cp
}

func (c *BusinessCalendar) Location() *time.Location { return c.loc }
func (c *BusinessCalendar) WorkStart() Clock         { return c.workStart }
func (c *BusinessCalendar) WorkEnd() Clock           { return c.workEnd }
func (c *BusinessCalendar) SlotDuration() int        { return c.slotDuration }
func (c *BusinessCalendar) Granularity() int         { return c.granularity }

func (c *BusinessCalendar) LunchEnabled() bool {
	return c.lunchStart != c.lunchEnd
}

// Today is the current civil date in the calendar's location.
func (c *BusinessCalendar) Today() Date {
	return DateOf(c.now().In(c.loc))
}

func (c *BusinessCalendar) IsWeekend(d Date) bool {
	_, ok := c.weekend[d.Weekday()]
	return ok
}

func (c *BusinessCalendar) IsHoliday(d Date) bool {
	_, ok := c.holidays[d]
	return ok
}

func (c *BusinessCalendar) IsWorkingDay(d Date) bool {
	return !c.IsWeekend(d) && !c.IsHoliday(d)
}

func (c *BusinessCalendar) AddHoliday(d Date) {
	c.holidays[d] = struct{}{}
}

func (c *BusinessCalendar) RemoveHoliday(d Date) {
	delete(c.holidays, d)
}

// Holidays returns the holiday set in ascending order.
func (c *BusinessCalendar) Holidays() []Date {
	out := make([]Date, 0, len(c.holidays))
	for d := range c.holidays {
		out = append(out, d)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Before(out[j]) })
	return out
}

// NextWorkingDay returns the first working day strictly after d, or d itself
// when no working day exists within a year.
func (c *BusinessCalendar) NextWorkingDay(d Date) Date {
	for i := 1; i <= 366; i++ {
		next := d.AddDays(i)
		if c.IsWorkingDay(next) {
			return next
		}
	}
	return d
}

func (c *BusinessCalendar) DateInfo(d Date) DayInfo {
	return DayInfo{
		Date:         d,
		IsWeekend:    c.IsWeekend(d),
		IsHoliday:    c.IsHoliday(d),
		IsWorkingDay: c.IsWorkingDay(d),
	}
}
