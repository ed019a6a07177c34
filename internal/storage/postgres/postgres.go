package postgres

import (
	"booking-assistant/internal/calendar"
	"booking-assistant/internal/models"
	"booking-assistant/internal/slots"
	"context"
	"database/sql"
	_ "embed"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/lib/pq"
)

//go:embed schema.sql
var schema string

const (
	codeExclusionViolation = "23P01"
	codeUniqueViolation    = "23505"
)

type Storage struct {
	db *sql.DB
}

func New(storagePath string) (*Storage, error) {
	const op = "storage.postgres.New"

	db, err := sql.Open("postgres", storagePath)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	return &Storage{db: db}, nil
}

func (s *Storage) Close() error {
	if s == nil || s.db == nil {
		return nil
	}

	return s.db.Close()
}

// Migrate creates the events and holidays tables when missing.
func (s *Storage) Migrate(ctx context.Context) error {
	const op = "storage.postgres.Migrate"

	if _, err := s.db.ExecContext(ctx, schema); err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}

	return nil
}

// #### events ####

func (s *Storage) ListEvents(ctx context.Context, calendarID string, timeMin, timeMax time.Time) ([]calendar.Event, error) {
	const op = "storage.postgres.ListEvents"

	rows, err := s.db.QueryContext(ctx, `
		SELECT id, calendar_id, summary, description, lower(during), upper(during), created_at
		FROM events
		WHERE calendar_id = $1
		AND during && tstzrange($2::timestamptz, $3::timestamptz, '[)')
		ORDER BY lower(during)`,
		calendarID, timeMin, timeMax,
	)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	defer rows.Close()

	var events []calendar.Event
	for rows.Next() {
		var m models.Event
		err := rows.Scan(&m.ID, &m.CalendarID, &m.Summary, &m.Description, &m.Start, &m.End, &m.CreatedAt)
		if err != nil {
			return nil, fmt.Errorf("%s: %w", op, err)
		}

		events = append(events, calendar.Event{
			ID:          m.ID,
			CalendarID:  m.CalendarID,
			Summary:     m.Summary,
			Description: m.Description,
			Start:       m.Start,
			End:         m.End,
		})
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	return events, nil
}

// InsertEvent relies on the events_no_overlap exclusion constraint, so a
// concurrent booking of the same window fails with calendar.ErrConflict.
func (s *Storage) InsertEvent(ctx context.Context, calendarID string, ev calendar.Event) (string, error) {
	const op = "storage.postgres.InsertEvent"

	id := uuid.NewString()

	_, err := s.db.ExecContext(ctx,
		`INSERT INTO events (id, calendar_id, summary, description, during)
		VALUES ($1, $2, $3, $4, tstzrange($5::timestamptz, $6::timestamptz, '[)'))`,
		id,
		calendarID,
		ev.Summary,
		ev.Description,
		ev.Start,
		ev.End,
	)
	if err != nil {
		var sqlErr *pq.Error
		if errors.As(err, &sqlErr) && (sqlErr.Code == codeExclusionViolation || sqlErr.Code == codeUniqueViolation) {
			return "", fmt.Errorf("%s: %w", op, calendar.ErrConflict)
		}

		return "", fmt.Errorf("%s: %w", op, err)
	}

	return id, nil
}

// #### holidays ####

func (s *Storage) ListHolidays(ctx context.Context) ([]slots.Date, error) {
	const op = "storage.postgres.ListHolidays"

	rows, err := s.db.QueryContext(ctx, `SELECT day, created_at FROM holidays ORDER BY day`)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	defer rows.Close()

	var days []slots.Date
	for rows.Next() {
		var h models.Holiday
		if err := rows.Scan(&h.Day, &h.CreatedAt); err != nil {
			return nil, fmt.Errorf("%s: %w", op, err)
		}

		days = append(days, slots.DateOf(h.Day.UTC()))
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	return days, nil
}

func (s *Storage) AddHoliday(ctx context.Context, d slots.Date) error {
	const op = "storage.postgres.AddHoliday"

	_, err := s.db.ExecContext(ctx,
		`INSERT INTO holidays (day) VALUES ($1::date) ON CONFLICT DO NOTHING`,
		d.String(),
	)
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}

	return nil
}

func (s *Storage) DeleteHoliday(ctx context.Context, d slots.Date) error {
	const op = "storage.postgres.DeleteHoliday"

	_, err := s.db.ExecContext(ctx, `DELETE FROM holidays WHERE day = $1::date`, d.String())
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}

	return nil
}
