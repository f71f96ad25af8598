package domain

import (
	"context"
	"time"
)

// College is an institution owning students and events.
// swagger:model College
type College struct {
	ID            string    `json:"id"`
	Name          string    `json:"name"`
	Code          string    `json:"code"`
	Location      string    `json:"location"`
	TotalStudents int       `json:"total_students"`
	CreatedAt     time.Time `json:"created_at"`
	UpdatedAt     time.Time `json:"updated_at"`
}

// NewCollege returns a College with the given fields. ID is set by the repository on create.
func NewCollege(name, code, location string, totalStudents int, createdAt, updatedAt time.Time) *College {
	return &College{
		Name:          name,
		Code:          code,
		Location:      location,
		TotalStudents: totalStudents,
		CreatedAt:     createdAt,
		UpdatedAt:     updatedAt,
	}
}

// CollegeUpdate holds optional fields for a partial college update. Nil fields are unchanged.
type CollegeUpdate struct {
	Name          *string
	Location      *string
	TotalStudents *int
}

// CollegeRepository defines storage operations for colleges.
type CollegeRepository interface {
	Create(ctx context.Context, college *College) error
	GetByID(ctx context.Context, id string) (*College, error)
	GetByCode(ctx context.Context, code string) (*College, error)
	List(ctx context.Context, params PaginationParams) ([]*College, int, error)
	Update(ctx context.Context, id string, upd CollegeUpdate) (*College, error)
	Delete(ctx context.Context, id string) error
}

// CollegeService defines administrative operations on colleges.
type CollegeService interface {
	CreateCollege(ctx context.Context, college *College) error
	GetCollege(ctx context.Context, id string) (*College, error)
	ListColleges(ctx context.Context, params PaginationParams) ([]*College, int, error)
	UpdateCollege(ctx context.Context, id string, upd CollegeUpdate) (*College, error)
	DeleteCollege(ctx context.Context, id string) error
}
