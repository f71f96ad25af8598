package postgres

import (
	"context"
	"database/sql"

	"eventory/internal/domain"
)

type attendanceRepository struct {
	DB *sql.DB
}

func NewAttendanceRepository(db *sql.DB) domain.AttendanceRepository {
	return &attendanceRepository{
		DB: db,
	}
}

func (r *attendanceRepository) Upsert(ctx context.Context, a *domain.Attendance, withFeedback bool) error {
	// The batch path leaves an existing has_given_feedback untouched.
	feedbackSet := `has_given_feedback = attendances.has_given_feedback`
	if withFeedback {
		feedbackSet = `has_given_feedback = EXCLUDED.has_given_feedback`
	}
	query := `
		INSERT INTO attendances (event_id, student_id, college_id, has_given_feedback, is_present, checked_in_at)
		VALUES ($1, $2, $3, $4, $5, $6)
		ON CONFLICT (event_id, student_id) DO UPDATE SET
			is_present = EXCLUDED.is_present,
			` + feedbackSet + `,
			checked_in_at = EXCLUDED.checked_in_at
		RETURNING id, college_id, has_given_feedback, is_present, checked_in_at
	`
	err := conn(ctx, r.DB).QueryRowContext(ctx, query, a.EventID, a.StudentID, a.CollegeID, a.HasGivenFeedback, a.IsPresent, a.CheckedInAt).
		Scan(&a.ID, &a.CollegeID, &a.HasGivenFeedback, &a.IsPresent, &a.CheckedInAt)
	return translate(err)
}

func (r *attendanceRepository) ListByEvent(ctx context.Context, eventID string) ([]*domain.Attendance, error) {
	query := `
		SELECT id, event_id, student_id, college_id, has_given_feedback, is_present, checked_in_at
		FROM attendances
		WHERE event_id = $1
		ORDER BY checked_in_at ASC, id ASC
	`
	rows, err := conn(ctx, r.DB).QueryContext(ctx, query, eventID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	list := make([]*domain.Attendance, 0)
	for rows.Next() {
		a := &domain.Attendance{}
		if err := rows.Scan(&a.ID, &a.EventID, &a.StudentID, &a.CollegeID, &a.HasGivenFeedback, &a.IsPresent, &a.CheckedInAt); err != nil {
			return nil, err
		}
		list = append(list, a)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return list, nil
}

func (r *attendanceRepository) MarkFeedbackGiven(ctx context.Context, eventID, studentID string) error {
	query := `UPDATE attendances SET has_given_feedback = TRUE WHERE event_id = $1 AND student_id = $2`
	_, err := conn(ctx, r.DB).ExecContext(ctx, query, eventID, studentID)
	return err
}
