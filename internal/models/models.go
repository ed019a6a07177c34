package models

import "time"

type Event struct {
	ID          string    `db:"id"`
	CalendarID  string    `db:"calendar_id"`
	Summary     string    `db:"summary"`
	Description string    `db:"description"`
	Start       time.Time `db:"starts_at"`
	End         time.Time `db:"ends_at"`
	CreatedAt   time.Time `db:"created_at"`
}

type Holiday struct {
	Day       time.Time `db:"day"`
	CreatedAt time.Time `db:"created_at"`
}
