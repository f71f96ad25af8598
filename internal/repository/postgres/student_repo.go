package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"eventory/internal/domain"
)

const studentSelect = `
		SELECT s.id, s.college_id, c.code, s.full_name, s.email, s.roll_no, s.created_at, s.updated_at
		FROM students s
		JOIN colleges c ON c.id = s.college_id
`

type studentRepository struct {
	DB *sql.DB
}

func NewStudentRepository(db *sql.DB) domain.StudentRepository {
	return &studentRepository{
		DB: db,
	}
}

func scanStudent(row interface{ Scan(...any) error }) (*domain.Student, error) {
	s := &domain.Student{}
	if err := row.Scan(&s.ID, &s.CollegeID, &s.CollegeCode, &s.FullName, &s.Email, &s.RollNo, &s.CreatedAt, &s.UpdatedAt); err != nil {
		return nil, err
	}
	return s, nil
}

func (r *studentRepository) Create(ctx context.Context, s *domain.Student) error {
	query := `
		INSERT INTO students (college_id, full_name, email, roll_no, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING id
	`
	err := conn(ctx, r.DB).QueryRowContext(ctx, query, s.CollegeID, s.FullName, s.Email, s.RollNo, s.CreatedAt, s.UpdatedAt).
		Scan(&s.ID)
	return translate(err)
}

func (r *studentRepository) GetByID(ctx context.Context, id string) (*domain.Student, error) {
	s, err := scanStudent(conn(ctx, r.DB).QueryRowContext(ctx, studentSelect+` WHERE s.id = $1`, id))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, err
	}
	return s, nil
}

func (r *studentRepository) List(ctx context.Context, filter domain.StudentFilter, params domain.PaginationParams) ([]*domain.Student, int, error) {
	db := conn(ctx, r.DB)
	var where whereBuilder
	if filter.CollegeID != "" {
		where.add("s.college_id = $%d", filter.CollegeID)
	}

	var total int
	if err := db.QueryRowContext(ctx, `SELECT COUNT(*) FROM students s`+where.clause(), where.values...).Scan(&total); err != nil {
		return nil, 0, err
	}

	n := where.next()
	query := fmt.Sprintf(`%s%s ORDER BY s.full_name ASC, s.id ASC LIMIT $%d OFFSET $%d`, studentSelect, where.clause(), n, n+1)
	args := append(append([]any{}, where.values...), limitArg(params), params.Offset())
	rows, err := db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()

	students := make([]*domain.Student, 0)
	for rows.Next() {
		s, err := scanStudent(rows)
		if err != nil {
			return nil, 0, err
		}
		students = append(students, s)
	}
	return students, total, rows.Err()
}

func (r *studentRepository) Update(ctx context.Context, id string, upd domain.StudentUpdate) (*domain.Student, error) {
	set := newSetBuilder()
	if upd.FullName != nil {
		set.add("full_name", *upd.FullName)
	}
	if upd.Email != nil {
		set.add("email", *upd.Email)
	}
	if upd.RollNo != nil {
		set.add("roll_no", *upd.RollNo)
	}
	if set.empty() {
		return r.GetByID(ctx, id)
	}
	query := fmt.Sprintf(`UPDATE students SET %s WHERE id = $%d`, set.clause(), set.next())
	result, err := conn(ctx, r.DB).ExecContext(ctx, query, set.args(id)...)
	if err != nil {
		return nil, translate(err)
	}
	if n, _ := result.RowsAffected(); n == 0 {
		return nil, domain.ErrNotFound
	}
	return r.GetByID(ctx, id)
}

func (r *studentRepository) Delete(ctx context.Context, id string) error {
	return deleteByID(ctx, conn(ctx, r.DB), "students", id)
}

func (r *studentRepository) UpsertByCollegeEmail(ctx context.Context, s *domain.Student) error {
	query := `
		INSERT INTO students (college_id, full_name, email, roll_no, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6)
		ON CONFLICT (college_id, email) DO UPDATE SET
			full_name = EXCLUDED.full_name,
			roll_no = EXCLUDED.roll_no,
			updated_at = EXCLUDED.updated_at
		RETURNING id, created_at, updated_at
	`
	err := conn(ctx, r.DB).QueryRowContext(ctx, query, s.CollegeID, s.FullName, s.Email, s.RollNo, s.CreatedAt, s.UpdatedAt).
		Scan(&s.ID, &s.CreatedAt, &s.UpdatedAt)
	return translate(err)
}
