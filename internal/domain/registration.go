package domain

import (
	"context"
	"time"
)

// Registration is a student's enrollment in an event.
// CollegeRegisteredCount is the number of registrations for the event from the student's
// college at the moment this row was created; it is never recomputed afterwards.
// swagger:model Registration
type Registration struct {
	ID                     string    `json:"id"`
	EventID                string    `json:"event_id"`
	StudentID              string    `json:"student_id"`
	CollegeRegisteredCount int       `json:"college_registered_count"`
	CreatedAt              time.Time `json:"created_at"`
}

// NewRegistration creates a new Registration. ID is set by the repository on create.
func NewRegistration(eventID, studentID string, createdAt time.Time) *Registration {
	return &Registration{
		EventID:   eventID,
		StudentID: studentID,
		CreatedAt: createdAt,
	}
}

// StudentIdentity names the registrant either by StudentID or, for self-service enrollment,
// by (CollegeCode, Email) with RollNo and Name as the latest profile.
type StudentIdentity struct {
	StudentID   string
	CollegeCode string
	Email       string
	RollNo      string
	Name        string
}

// ByID reports whether the identity refers to an existing student record.
func (s StudentIdentity) ByID() bool {
	return s.StudentID != ""
}

// RegisteredStudent is the display projection of a registration joined with its student.
// swagger:model RegisteredStudent
type RegisteredStudent struct {
	StudentID string `json:"student_id"`
	FullName  string `json:"full_name"`
	Email     string `json:"email"`
}

// RegistrationConfirmationEmailData holds data for the registration confirmation email.
type RegistrationConfirmationEmailData struct {
	Email       string
	StudentName string
	EventTitle  string
	StartAt     time.Time
	EndAt       time.Time
}

// RegistrationRepository defines storage operations for registrations.
type RegistrationRepository interface {
	// Create inserts the row; a unique (event, student) violation is reported as ErrDuplicateRegistration.
	Create(ctx context.Context, reg *Registration) error
	Exists(ctx context.Context, eventID, studentID string) (bool, error)
	CountByEventAndCollege(ctx context.Context, eventID, collegeID string) (int, error)
	SetCollegeRegisteredCount(ctx context.Context, id string, count int) error
	ListRegisteredStudents(ctx context.Context, eventID string) ([]*RegisteredStudent, error)
}

// RegistrationService registers students for events.
type RegistrationService interface {
	Register(ctx context.Context, eventID string, identity StudentIdentity) (*Registration, error)
}
