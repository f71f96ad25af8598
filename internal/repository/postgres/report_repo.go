package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"eventory/internal/domain"
)

type reportRepository struct {
	DB *sql.DB
}

func NewReportRepository(db *sql.DB) domain.ReportRepository {
	return &reportRepository{
		DB: db,
	}
}

// EventStats returns ErrNotFound when the event does not exist.
func (r *reportRepository) EventStats(ctx context.Context, eventID string) (domain.EventStats, error) {
	query := `
		SELECT
			(SELECT COUNT(*) FROM registrations WHERE event_id = e.id),
			(SELECT COUNT(*) FROM attendances WHERE event_id = e.id),
			COALESCE((SELECT AVG(rating) FROM feedbacks WHERE event_id = e.id), 0)
		FROM events e
		WHERE e.id = $1
	`
	var st domain.EventStats
	err := conn(ctx, r.DB).QueryRowContext(ctx, query, eventID).Scan(&st.Registrations, &st.Attendances, &st.AvgRating)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return domain.EventStats{}, domain.ErrNotFound
		}
		return domain.EventStats{}, err
	}
	return st, nil
}

func (r *reportRepository) EventPopularity(ctx context.Context, filter domain.EventFilter) ([]*domain.EventPopularity, error) {
	var where whereBuilder
	if filter.CollegeID != "" {
		where.add("e.college_id = $%d", filter.CollegeID)
	}
	if filter.Type != "" {
		where.add("e.type = $%d", filter.Type)
	}
	query := fmt.Sprintf(`
		SELECT e.id, e.title, e.college_id, e.type, e.start_at, COUNT(r.id) AS registrations
		FROM events e
		LEFT JOIN registrations r ON r.event_id = e.id
		%s
		GROUP BY e.id
		ORDER BY registrations DESC, e.start_at DESC
	`, where.clause())
	rows, err := conn(ctx, r.DB).QueryContext(ctx, query, where.values...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	list := make([]*domain.EventPopularity, 0)
	for rows.Next() {
		p := &domain.EventPopularity{}
		if err := rows.Scan(&p.EventID, &p.Title, &p.CollegeID, &p.Type, &p.StartAt, &p.Registrations); err != nil {
			return nil, err
		}
		list = append(list, p)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return list, nil
}

// StudentParticipation returns ErrNotFound when the student does not exist.
func (r *reportRepository) StudentParticipation(ctx context.Context, studentID string) (*domain.StudentParticipation, error) {
	query := `
		SELECT s.id,
			(SELECT COUNT(*) FROM registrations WHERE student_id = s.id),
			(SELECT COUNT(*) FROM attendances WHERE student_id = s.id)
		FROM students s
		WHERE s.id = $1
	`
	p := &domain.StudentParticipation{}
	err := conn(ctx, r.DB).QueryRowContext(ctx, query, studentID).Scan(&p.StudentID, &p.Registrations, &p.Attended)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, err
	}
	return p, nil
}

func (r *reportRepository) TopStudents(ctx context.Context, limit int, collegeID string) ([]*domain.TopStudent, error) {
	var where whereBuilder
	if collegeID != "" {
		where.add("s.college_id = $%d", collegeID)
	}
	query := fmt.Sprintf(`
		SELECT s.id, s.full_name, s.college_id, COUNT(DISTINCT a.event_id) AS events_attended
		FROM students s
		LEFT JOIN attendances a ON a.student_id = s.id
		%s
		GROUP BY s.id
		ORDER BY events_attended DESC, s.full_name ASC
		LIMIT $%d
	`, where.clause(), where.next())
	args := append(append([]any{}, where.values...), limit)
	rows, err := conn(ctx, r.DB).QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	list := make([]*domain.TopStudent, 0)
	for rows.Next() {
		t := &domain.TopStudent{}
		if err := rows.Scan(&t.StudentID, &t.FullName, &t.CollegeID, &t.EventsAttended); err != nil {
			return nil, err
		}
		list = append(list, t)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return list, nil
}
