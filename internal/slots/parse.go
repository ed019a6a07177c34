package slots

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"
)

var (
	ErrInvalidDate     = errors.New("invalid date")
	ErrInvalidTime     = errors.New("invalid time")
	ErrInvalidDuration = errors.New("invalid duration")
	ErrInvalidWeekday  = errors.New("invalid weekday")
)

// ParseDate parses an ISO YYYY-MM-DD date.
func ParseDate(s string) (Date, error) {
	t, err := time.Parse(DateLayout, strings.TrimSpace(s))
	if err != nil {
		return Date{}, fmt.Errorf("%w %q: expected YYYY-MM-DD", ErrInvalidDate, s)
	}
	return DateOf(t), nil
}

// ParseClock accepts 24-hour "15:04" and 12-hour "3:04 PM" forms.
func ParseClock(s string) (Clock, error) {
	v := strings.TrimSpace(s)
	for _, layout := range []string{ClockLayout, "3:04 PM", "3:04PM", "03:04 PM"} {
		if t, err := time.Parse(layout, strings.ToUpper(v)); err == nil {
			return NewClock(t.Hour(), t.Minute()), nil
		}
	}
	return 0, fmt.Errorf("%w %q: expected HH:MM or HH:MM AM/PM", ErrInvalidTime, s)
}

// ParseDuration checks a duration given in minutes.
func ParseDuration(minutes int) (int, error) {
	if minutes <= 0 || minutes > minutesPerDay {
		return 0, fmt.Errorf("%w: %d minutes is out of range 1..%d", ErrInvalidDuration, minutes, minutesPerDay)
	}
	return minutes, nil
}

// ParseDurationString parses a decimal minute count.
func ParseDurationString(s string) (int, error) {
	n, err := strconv.Atoi(strings.TrimSpace(s))
	if err != nil {
		return 0, fmt.Errorf("%w %q: expected whole minutes", ErrInvalidDuration, s)
	}
	return ParseDuration(n)
}

// ParseWeekday supports "mon", "monday", "Mon" and numbers. Numbers follow
// time.Weekday (0 = Sunday); 7 is also accepted as Sunday.
func ParseWeekday(s string) (time.Weekday, error) {
	v := strings.TrimSpace(strings.ToLower(s))
	if n, err := strconv.Atoi(v); err == nil {
		switch {
		case n >= 0 && n <= 6:
			return time.Weekday(n), nil
		case n == 7:
			return time.Sunday, nil
		}
		return 0, fmt.Errorf("%w %q", ErrInvalidWeekday, s)
	}

	switch v {
	case "sun", "sunday":
		return time.Sunday, nil
	case "mon", "monday":
		return time.Monday, nil
	case "tue", "tues", "tuesday":
		return time.Tuesday, nil
	case "wed", "wednesday":
		return time.Wednesday, nil
	case "thu", "thur", "thursday":
		return time.Thursday, nil
	case "fri", "friday":
		return time.Friday, nil
	case "sat", "saturday":
		return time.Saturday, nil
	}
	return 0, fmt.Errorf("%w %q", ErrInvalidWeekday, s)
}
