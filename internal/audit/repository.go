package audit

import (
	"context"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
)

// PGRepository stores audit events in the authz_audit_events table.
type PGRepository struct {
	pool *pgxpool.Pool
}

// NewRepository constructs a PostgreSQL repository.
func NewRepository(pool *pgxpool.Pool) *PGRepository {
	return &PGRepository{pool: pool}
}

// InsertEvent writes one audit row.
func (r *PGRepository) InsertEvent(ctx context.Context, event Event) error {
	const query = `INSERT INTO authz_audit_events (id, actor_id, role, operation, target_id, outcome, reason, occurred_at)
        VALUES ($1, $2, $3, $4, $5, $6, $7, $8)`
	_, err := r.pool.Exec(ctx, query,
		event.ID,
		event.ActorID,
		event.Role,
		event.Operation,
		event.TargetID,
		event.Outcome,
		event.Reason,
		event.At,
	)
	return err
}

// TimelineWindow returns events matching the filters, newest first.
func (r *PGRepository) TimelineWindow(ctx context.Context, filters TimelineFilters, offset, limit int) ([]Event, error) {
	const query = `SELECT id, actor_id, role, operation, target_id, outcome, reason, occurred_at
        FROM authz_audit_events
        WHERE ($1::timestamptz IS NULL OR occurred_at >= $1)
          AND ($2::timestamptz IS NULL OR occurred_at < $2)
          AND ($3 = '' OR outcome = $3)
          AND ($4 = 0 OR actor_id = $4)
        ORDER BY occurred_at DESC
        OFFSET $5 LIMIT $6`
	rows, err := r.pool.Query(ctx, query,
		nullableTime(filters.From),
		nullableTime(filters.To),
		filters.Outcome,
		filters.ActorID,
		offset,
		limit,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var events []Event
	for rows.Next() {
		var ev Event
		if err := rows.Scan(&ev.ID, &ev.ActorID, &ev.Role, &ev.Operation, &ev.TargetID, &ev.Outcome, &ev.Reason, &ev.At); err != nil {
			return nil, err
		}
		events = append(events, ev)
	}
	return events, rows.Err()
}

// DeleteOlderThan drops events before the cutoff and reports how many.
func (r *PGRepository) DeleteOlderThan(ctx context.Context, cutoff time.Time) (int64, error) {
	tag, err := r.pool.Exec(ctx, `DELETE FROM authz_audit_events WHERE occurred_at < $1`, cutoff)
	if err != nil {
		return 0, err
	}
	return tag.RowsAffected(), nil
}

func nullableTime(t time.Time) *time.Time {
	if t.IsZero() {
		return nil
	}
	return &t
}

var _ Repository = (*PGRepository)(nil)
