package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"eventory/internal/domain"
)

const eventColumns = `id, college_id, title, description, type, start_at, end_at, capacity, registration_count, created_at, updated_at`

// eventDetailsSelect adds the read-time aggregates to each event row.
const eventDetailsSelect = `
		SELECT e.id, e.college_id, e.title, e.description, e.type, e.start_at, e.end_at, e.capacity,
			e.registration_count, e.created_at, e.updated_at,
			(SELECT COUNT(*) FROM registrations r WHERE r.event_id = e.id) AS registrations_count,
			(SELECT COUNT(*) FROM attendances a WHERE a.event_id = e.id) AS attendance_count,
			COALESCE((SELECT AVG(f.rating) FROM feedbacks f WHERE f.event_id = e.id), 0) AS avg_feedback
		FROM events e
`

type eventRepository struct {
	DB *sql.DB
}

func NewEventRepository(db *sql.DB) domain.EventRepository {
	return &eventRepository{
		DB: db,
	}
}

func scanEvent(row interface{ Scan(...any) error }) (*domain.Event, error) {
	e := &domain.Event{}
	if err := row.Scan(&e.ID, &e.CollegeID, &e.Title, &e.Description, &e.Type, &e.StartAt, &e.EndAt,
		&e.Capacity, &e.RegistrationCount, &e.CreatedAt, &e.UpdatedAt); err != nil {
		return nil, err
	}
	return e, nil
}

func scanEventDetails(row interface{ Scan(...any) error }) (*domain.EventDetails, error) {
	d := &domain.EventDetails{}
	e := &d.Event
	if err := row.Scan(&e.ID, &e.CollegeID, &e.Title, &e.Description, &e.Type, &e.StartAt, &e.EndAt,
		&e.Capacity, &e.RegistrationCount, &e.CreatedAt, &e.UpdatedAt,
		&d.RegistrationsCount, &d.AttendanceCount, &d.AvgFeedback); err != nil {
		return nil, err
	}
	return d, nil
}

func (r *eventRepository) Create(ctx context.Context, e *domain.Event) error {
	query := `
		INSERT INTO events (college_id, title, description, type, start_at, end_at, capacity, registration_count, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, 0, $8, $9)
		RETURNING id
	`
	err := conn(ctx, r.DB).QueryRowContext(ctx, query, e.CollegeID, e.Title, e.Description, e.Type, e.StartAt, e.EndAt,
		e.Capacity, e.CreatedAt, e.UpdatedAt).Scan(&e.ID)
	if err != nil {
		return translate(err)
	}
	e.RegistrationCount = 0
	return nil
}

func (r *eventRepository) GetByID(ctx context.Context, id string) (*domain.Event, error) {
	return r.get(ctx, `SELECT `+eventColumns+` FROM events WHERE id = $1`, id)
}

func (r *eventRepository) GetByIDForUpdate(ctx context.Context, id string) (*domain.Event, error) {
	return r.get(ctx, `SELECT `+eventColumns+` FROM events WHERE id = $1 FOR UPDATE`, id)
}

func (r *eventRepository) get(ctx context.Context, query, id string) (*domain.Event, error) {
	e, err := scanEvent(conn(ctx, r.DB).QueryRowContext(ctx, query, id))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, err
	}
	return e, nil
}

func (r *eventRepository) GetDetails(ctx context.Context, id string) (*domain.EventDetails, error) {
	d, err := scanEventDetails(conn(ctx, r.DB).QueryRowContext(ctx, eventDetailsSelect+` WHERE e.id = $1`, id))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, err
	}
	return d, nil
}

func (r *eventRepository) List(ctx context.Context, filter domain.EventFilter, params domain.PaginationParams) ([]*domain.EventDetails, int, error) {
	db := conn(ctx, r.DB)
	var where whereBuilder
	if filter.CollegeID != "" {
		where.add("e.college_id = $%d", filter.CollegeID)
	}
	if filter.Type != "" {
		where.add("e.type = $%d", filter.Type)
	}

	var total int
	if err := db.QueryRowContext(ctx, `SELECT COUNT(*) FROM events e`+where.clause(), where.values...).Scan(&total); err != nil {
		return nil, 0, err
	}

	n := where.next()
	query := fmt.Sprintf(`%s%s ORDER BY e.start_at DESC, e.id ASC LIMIT $%d OFFSET $%d`, eventDetailsSelect, where.clause(), n, n+1)
	args := append(append([]any{}, where.values...), limitArg(params), params.Offset())
	rows, err := db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()

	events := make([]*domain.EventDetails, 0)
	for rows.Next() {
		d, err := scanEventDetails(rows)
		if err != nil {
			return nil, 0, err
		}
		events = append(events, d)
	}
	return events, total, rows.Err()
}

func (r *eventRepository) Update(ctx context.Context, id string, upd domain.EventUpdate) (*domain.Event, error) {
	set := newSetBuilder()
	if upd.Title != nil {
		set.add("title", *upd.Title)
	}
	if upd.Description != nil {
		set.add("description", *upd.Description)
	}
	if upd.Type != nil {
		set.add("type", *upd.Type)
	}
	if upd.StartAt != nil {
		set.add("start_at", *upd.StartAt)
	}
	if upd.EndAt != nil {
		set.add("end_at", *upd.EndAt)
	}
	if upd.Capacity != nil {
		set.add("capacity", *upd.Capacity)
	}
	if set.empty() {
		return r.GetByID(ctx, id)
	}
	query := fmt.Sprintf(`
		UPDATE events SET %s
		WHERE id = $%d
		RETURNING %s
	`, set.clause(), set.next(), eventColumns)
	e, err := scanEvent(conn(ctx, r.DB).QueryRowContext(ctx, query, set.args(id)...))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, translate(err)
	}
	return e, nil
}

func (r *eventRepository) Delete(ctx context.Context, id string) error {
	return deleteByID(ctx, conn(ctx, r.DB), "events", id)
}

func (r *eventRepository) IncrementRegistrationCount(ctx context.Context, id string) (int, error) {
	query := `
		UPDATE events SET registration_count = registration_count + 1, updated_at = NOW()
		WHERE id = $1
		RETURNING registration_count
	`
	var count int
	if err := conn(ctx, r.DB).QueryRowContext(ctx, query, id).Scan(&count); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return 0, domain.ErrNotFound
		}
		return 0, translate(err)
	}
	return count, nil
}
