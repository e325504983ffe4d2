package availability

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"

	"github.com/plannivo/booking-api/internal/pkg/hhmm"
)

// DateLayout is the wire and storage format of a booking date.
const DateLayout = "2006-01-02"

// Repository reads an instructor's occupied periods for a day
type Repository interface {
	ListBusy(ctx context.Context, instructorID uuid.UUID, date time.Time) ([]BusyInterval, error)
}

type repository struct {
	db *sqlx.DB
}

// NewRepository creates a Postgres-backed busy-interval repository
func NewRepository(db *sqlx.DB) Repository {
	return &repository{db: db}
}

type busyRow struct {
	StartHour float64 `db:"start_hour"`
	EndHour   float64 `db:"end_hour"`
	Kind      string  `db:"kind"`
}

const listBusyQuery = `
	SELECT b.start_hour::float8 AS start_hour,
	       (b.start_hour + b.duration)::float8 AS end_hour,
	       'booked' AS kind
	FROM bookings b
	WHERE b.instructor_user_id = $1
	  AND b.date = $2
	  AND b.deleted_at IS NULL
	  AND b.status NOT IN ('cancelled', 'no_show')
	UNION ALL
	SELECT t.start_hour::float8, t.end_hour::float8, 'blocked'
	FROM instructor_time_off t
	WHERE t.instructor_id = $1
	  AND t.off_date = $2
	ORDER BY start_hour
`

func (r *repository) ListBusy(ctx context.Context, instructorID uuid.UUID, date time.Time) ([]BusyInterval, error) {
	var rows []busyRow
	if err := r.db.SelectContext(ctx, &rows, listBusyQuery, instructorID, date.Format(DateLayout)); err != nil {
		return nil, err
	}

	busy := make([]BusyInterval, 0, len(rows))
	for _, row := range rows {
		status := StatusBooked
		if row.Kind == string(StatusBlocked) {
			status = StatusBlocked
		}
		busy = append(busy, BusyInterval{
			StartMinutes: hhmm.HoursToMinutes(row.StartHour),
			EndMinutes:   hhmm.HoursToMinutes(row.EndHour),
			Status:       status,
		})
	}
	return busy, nil
}
