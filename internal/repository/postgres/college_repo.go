package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"eventory/internal/domain"
)

const collegeColumns = `id, name, code, location, total_students, created_at, updated_at`

type collegeRepository struct {
	DB *sql.DB
}

func NewCollegeRepository(db *sql.DB) domain.CollegeRepository {
	return &collegeRepository{
		DB: db,
	}
}

func scanCollege(row interface{ Scan(...any) error }) (*domain.College, error) {
	c := &domain.College{}
	if err := row.Scan(&c.ID, &c.Name, &c.Code, &c.Location, &c.TotalStudents, &c.CreatedAt, &c.UpdatedAt); err != nil {
		return nil, err
	}
	return c, nil
}

func (r *collegeRepository) Create(ctx context.Context, c *domain.College) error {
	query := `
		INSERT INTO colleges (name, code, location, total_students, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING id
	`
	err := conn(ctx, r.DB).QueryRowContext(ctx, query, c.Name, c.Code, c.Location, c.TotalStudents, c.CreatedAt, c.UpdatedAt).
		Scan(&c.ID)
	return translate(err)
}

func (r *collegeRepository) GetByID(ctx context.Context, id string) (*domain.College, error) {
	query := `SELECT ` + collegeColumns + ` FROM colleges WHERE id = $1`
	c, err := scanCollege(conn(ctx, r.DB).QueryRowContext(ctx, query, id))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, err
	}
	return c, nil
}

func (r *collegeRepository) GetByCode(ctx context.Context, code string) (*domain.College, error) {
	query := `SELECT ` + collegeColumns + ` FROM colleges WHERE code = $1`
	c, err := scanCollege(conn(ctx, r.DB).QueryRowContext(ctx, query, strings.TrimSpace(code)))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, err
	}
	return c, nil
}

func (r *collegeRepository) List(ctx context.Context, params domain.PaginationParams) ([]*domain.College, int, error) {
	db := conn(ctx, r.DB)
	var total int
	if err := db.QueryRowContext(ctx, `SELECT COUNT(*) FROM colleges`).Scan(&total); err != nil {
		return nil, 0, err
	}

	query := `SELECT ` + collegeColumns + ` FROM colleges ORDER BY name ASC LIMIT $1 OFFSET $2`
	rows, err := db.QueryContext(ctx, query, limitArg(params), params.Offset())
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()

	colleges := make([]*domain.College, 0)
	for rows.Next() {
		c, err := scanCollege(rows)
		if err != nil {
			return nil, 0, err
		}
		colleges = append(colleges, c)
	}
	return colleges, total, rows.Err()
}

func (r *collegeRepository) Update(ctx context.Context, id string, upd domain.CollegeUpdate) (*domain.College, error) {
	set := newSetBuilder()
	if upd.Name != nil {
		set.add("name", *upd.Name)
	}
	if upd.Location != nil {
		set.add("location", *upd.Location)
	}
	if upd.TotalStudents != nil {
		set.add("total_students", *upd.TotalStudents)
	}
	if set.empty() {
		return r.GetByID(ctx, id)
	}
	query := fmt.Sprintf(`
		UPDATE colleges SET %s
		WHERE id = $%d
		RETURNING %s
	`, set.clause(), set.next(), collegeColumns)
	c, err := scanCollege(conn(ctx, r.DB).QueryRowContext(ctx, query, set.args(id)...))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, translate(err)
	}
	return c, nil
}

func (r *collegeRepository) Delete(ctx context.Context, id string) error {
	return deleteByID(ctx, conn(ctx, r.DB), "colleges", id)
}
