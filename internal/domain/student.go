package domain

import (
	"context"
	"time"
)

// Student belongs to exactly one college. Email is unique per college, not globally.
// swagger:model Student
type Student struct {
	ID          string    `json:"id"`
	CollegeID   string    `json:"college_id"`
	CollegeCode string    `json:"college_code,omitempty"`
	FullName    string    `json:"full_name"`
	Email       string    `json:"email"`
	RollNo      string    `json:"roll_no"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

// NewStudent returns a Student with the given fields. ID is set by the repository on create.
func NewStudent(collegeID, fullName, email, rollNo string, createdAt, updatedAt time.Time) *Student {
	return &Student{
		CollegeID: collegeID,
		FullName:  fullName,
		Email:     email,
		RollNo:    rollNo,
		CreatedAt: createdAt,
		UpdatedAt: updatedAt,
	}
}

// StudentUpdate holds optional fields for a partial student update.
type StudentUpdate struct {
	FullName *string
	Email    *string
	RollNo   *string
}

// StudentFilter narrows student listings. Empty fields match everything.
type StudentFilter struct {
	CollegeID string
}

// StudentRepository defines storage operations for students.
type StudentRepository interface {
	Create(ctx context.Context, student *Student) error
	GetByID(ctx context.Context, id string) (*Student, error)
	List(ctx context.Context, filter StudentFilter, params PaginationParams) ([]*Student, int, error)
	Update(ctx context.Context, id string, upd StudentUpdate) (*Student, error)
	Delete(ctx context.Context, id string) error
	// UpsertByCollegeEmail creates the student or, when (college, email) already exists,
	// overwrites full_name and roll_no. student.ID and timestamps are filled from the stored row.
	UpsertByCollegeEmail(ctx context.Context, student *Student) error
}

// StudentService defines administrative operations on students.
type StudentService interface {
	CreateStudent(ctx context.Context, student *Student) error
	GetStudent(ctx context.Context, id string) (*Student, error)
	ListStudents(ctx context.Context, filter StudentFilter, params PaginationParams) ([]*Student, int, error)
	UpdateStudent(ctx context.Context, id string, upd StudentUpdate) (*Student, error)
	DeleteStudent(ctx context.Context, id string) error
}
