package postgres

import (
	"context"
	"database/sql"

	"eventory/internal/domain"
)

type registrationRepository struct {
	DB *sql.DB
}

func NewRegistrationRepository(db *sql.DB) domain.RegistrationRepository {
	return &registrationRepository{
		DB: db,
	}
}

func (r *registrationRepository) Create(ctx context.Context, reg *domain.Registration) error {
	query := `
		INSERT INTO registrations (event_id, student_id, college_registered_count, created_at)
		VALUES ($1, $2, $3, $4)
		RETURNING id
	`
	err := conn(ctx, r.DB).QueryRowContext(ctx, query, reg.EventID, reg.StudentID, reg.CollegeRegisteredCount, reg.CreatedAt).
		Scan(&reg.ID)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicateRegistration
		}
		return translate(err)
	}
	return nil
}

func (r *registrationRepository) Exists(ctx context.Context, eventID, studentID string) (bool, error) {
	query := `SELECT EXISTS (SELECT 1 FROM registrations WHERE event_id = $1 AND student_id = $2)`
	var exists bool
	if err := conn(ctx, r.DB).QueryRowContext(ctx, query, eventID, studentID).Scan(&exists); err != nil {
		return false, err
	}
	return exists, nil
}

func (r *registrationRepository) CountByEventAndCollege(ctx context.Context, eventID, collegeID string) (int, error) {
	query := `
		SELECT COUNT(*)
		FROM registrations r
		JOIN students s ON s.id = r.student_id
		WHERE r.event_id = $1 AND s.college_id = $2
	`
	var n int
	if err := conn(ctx, r.DB).QueryRowContext(ctx, query, eventID, collegeID).Scan(&n); err != nil {
		return 0, err
	}
	return n, nil
}

func (r *registrationRepository) SetCollegeRegisteredCount(ctx context.Context, id string, count int) error {
	result, err := conn(ctx, r.DB).ExecContext(ctx, `UPDATE registrations SET college_registered_count = $1 WHERE id = $2`, count, id)
	if err != nil {
		return err
	}
	if n, _ := result.RowsAffected(); n == 0 {
		return domain.ErrNotFound
	}
	return nil
}

func (r *registrationRepository) ListRegisteredStudents(ctx context.Context, eventID string) ([]*domain.RegisteredStudent, error) {
	query := `
		SELECT s.id, s.full_name, s.email
		FROM registrations r
		JOIN students s ON s.id = r.student_id
		WHERE r.event_id = $1
		ORDER BY r.created_at ASC
	`
	rows, err := conn(ctx, r.DB).QueryContext(ctx, query, eventID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	students := make([]*domain.RegisteredStudent, 0)
	for rows.Next() {
		s := &domain.RegisteredStudent{}
		if err := rows.Scan(&s.StudentID, &s.FullName, &s.Email); err != nil {
			return nil, err
		}
		students = append(students, s)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return students, nil
}
