package slots

import (
	"fmt"
	"time"
)

const (
	DateLayout  = "2006-01-02"
	ClockLayout = "15:04"

	minutesPerDay = 24 * 60
)

// Date is a civil calendar date with no time-of-day or location attached.
type Date struct {
	Year  int
	Month time.Month
	Day   int
}

func DateOf(t time.Time) Date {
	y, m, d := t.Date()
	return Date{Year: y, Month: m, Day: d}
}

func (d Date) String() string {
	return fmt.Sprintf("%04d-%02d-%02d", d.Year, int(d.Month), d.Day)
}

// In returns midnight of the date in loc.
func (d Date) In(loc *time.Location) time.Time {
	return time.Date(d.Year, d.Month, d.Day, 0, 0, 0, 0, loc)
}

func (d Date) AddDays(n int) Date {
	return DateOf(time.Date(d.Year, d.Month, d.Day+n, 0, 0, 0, 0, time.UTC))
}

func (d Date) Weekday() time.Weekday {
	return d.In(time.UTC).Weekday()
}

func (d Date) Before(o Date) bool {
	if d.Year != o.Year {
		return d.Year < o.Year
	}
	if d.Month != o.Month {
		return d.Month < o.Month
	}
	return d.Day < o.Day
}

// Clock is a time of day expressed as minutes since midnight.
type Clock int

func NewClock(hour, minute int) Clock {
	return Clock(hour*60 + minute)
}

func (c Clock) Hour() int   { return int(c) / 60 }
func (c Clock) Minute() int { return int(c) % 60 }

func (c Clock) Add(minutes int) Clock {
	return c + Clock(minutes)
}

func (c Clock) String() string {
	return fmt.Sprintf("%02d:%02d", c.Hour(), c.Minute())
}

// On builds the civil date-time for c on d in loc. Minutes past 24:00 roll
// into the following day.
func (c Clock) On(d Date, loc *time.Location) time.Time {
	return time.Date(d.Year, d.Month, d.Day, 0, int(c), 0, 0, loc)
}

// Slot is a candidate booking window. Duration is in minutes.
type Slot struct {
	Date     Date
	Start    Clock
	Duration int
}

func (s Slot) End() Clock {
	return s.Start.Add(s.Duration)
}

func (s Slot) StartTime(loc *time.Location) time.Time {
	return s.Start.On(s.Date, loc)
}

func (s Slot) EndTime(loc *time.Location) time.Time {
	return s.End().On(s.Date, loc)
}

func (s Slot) String() string {
	return fmt.Sprintf("%s %s-%s", s.Date, s.Start, s.End())
}

// BusyInterval is an existing event's [Start, End) range.
type BusyInterval struct {
	Start time.Time
	End   time.Time
}

type Reason string

const (
	ReasonPast               Reason = "past date/time"
	ReasonDurationNotAllowed Reason = "duration not permitted"
	ReasonOutsideHours       Reason = "outside working hours"
	ReasonLunch              Reason = "overlaps lunch"
	ReasonWeekend            Reason = "falls on weekend"
	ReasonHoliday            Reason = "falls on holiday"
	ReasonMisaligned         Reason = "not aligned to grid"
)

type ValidationResult struct {
	Valid   bool
	Reasons []Reason
}

func (r ValidationResult) Has(reason Reason) bool {
	for _, got := range r.Reasons {
		if got == reason {
			return true
		}
	}
	return false
}

func (r ValidationResult) Strings() []string {
	out := make([]string, 0, len(r.Reasons))
	for _, reason := range r.Reasons {
		out = append(out, string(reason))
	}
	return out
}

// DayInfo summarises how the calendar treats a date.
type DayInfo struct {
	Date         Date
	IsWeekend    bool
	IsHoliday    bool
	IsWorkingDay bool
}

// overlaps reports whether [aStart,aEnd) and [bStart,bEnd) intersect.
func overlaps(aStart, aEnd, bStart, bEnd time.Time) bool {
	return aStart.Before(bEnd) && bStart.Before(aEnd)
}
