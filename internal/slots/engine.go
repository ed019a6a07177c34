package slots

import (
	"errors"
	"fmt"
)

var ErrNoSlotsInHorizon = errors.New("no available slots within horizon")

// BusyFunc returns the busy intervals of a single date. NextAvailableSlot
// calls it once per working day it inspects.
type BusyFunc func(d Date) ([]BusyInterval, error)

// Validate runs every policy check and reports all failing reasons. It never
// looks at existing bookings.
func (c *BusinessCalendar) Validate(d Date, start Clock, duration int) ValidationResult {
	var reasons []Reason
	end := start.Add(duration)

	if !start.On(d, c.loc).After(c.now()) {
		reasons = append(reasons, ReasonPast)
	}

	if c.allowed != nil {
		if _, ok := c.allowed[duration]; !ok {
			reasons = append(reasons, ReasonDurationNotAllowed)
		}
	}

	if start < c.workStart || end > c.workEnd {
		reasons = append(reasons, ReasonOutsideHours)
	}

	if c.LunchEnabled() && start < c.lunchEnd && end > c.lunchStart {
		reasons = append(reasons, ReasonLunch)
	}

	if c.IsWeekend(d) {
		reasons = append(reasons, ReasonWeekend)
	}

	if c.IsHoliday(d) {
		reasons = append(reasons, ReasonHoliday)
	}

	if int(start-c.workStart)%c.granularity != 0 {
		reasons = append(reasons, ReasonMisaligned)
	}

	return ValidationResult{Valid: len(reasons) == 0, Reasons: reasons}
}

// Free reports whether the slot window overlaps none of busy.
func (c *BusinessCalendar) Free(s Slot, busy []BusyInterval) bool {
	start, end := s.StartTime(c.loc), s.EndTime(c.loc)
	for _, b := range busy {
		if overlaps(start, end, b.Start, b.End) {
			return false
		}
	}
	return true
}

// IsAvailable is true when the slot passes Validate and is free of busy.
func (c *BusinessCalendar) IsAvailable(d Date, start Clock, duration int, busy []BusyInterval) bool {
	if !c.Validate(d, start, duration).Valid {
		return false
	}
	return c.Free(Slot{Date: d, Start: start, Duration: duration}, busy)
}

// EnumerateSlots lists the bookable slots of d in ascending start order. The
// result is empty, not an error, when nothing can be booked.
func (c *BusinessCalendar) EnumerateSlots(d Date, duration int, busy []BusyInterval) []Slot {
	out := []Slot{}
	if duration <= 0 || !c.IsWorkingDay(d) {
		return out
	}

	for cur := c.workStart; cur.Add(duration) <= c.workEnd; cur = cur.Add(c.granularity) {
		s := Slot{Date: d, Start: cur, Duration: duration}
		if !c.Validate(d, cur, duration).Valid {
			continue
		}
		if c.Free(s, busy) {
			out = append(out, s)
		}
	}

	return out
}

// NextAvailableSlot walks forward from `from` and returns the slots of the
// first day that has any. On `from` itself only slots starting at or after
// `after` count. Non-working days are skipped without using up one of the
// maxDays checks.
func (c *BusinessCalendar) NextAvailableSlot(from Date, after Clock, duration int, busyFn BusyFunc, maxDays int) ([]Slot, error) {
	const op = "slots.NextAvailableSlot"

	checked := 0
	// Weekend and holiday skips are bounded separately so a calendar with no
	// working days at all still terminates.
	for i := 0; checked < maxDays && i < maxDays+366; i++ {
		d := from.AddDays(i)
		if !c.IsWorkingDay(d) {
			continue
		}
		checked++

		busy, err := busyFn(d)
		if err != nil {
			return nil, fmt.Errorf("%s: busy intervals for %s: %w", op, d, err)
		}

		found := c.EnumerateSlots(d, duration, busy)
		if i == 0 {
			found = startingAt(found, after)
		}
		if len(found) > 0 {
			return found, nil
		}
	}

	return nil, fmt.Errorf("%s: %w (%d working days from %s)", op, ErrNoSlotsInHorizon, maxDays, from)
}

func startingAt(in []Slot, after Clock) []Slot {
	out := in[:0:0]
	for _, s := range in {
		if s.Start >= after {
			out = append(out, s)
		}
	}
	return out
}
