package domain

import (
	"context"
	"time"
)

// Attendance is a check-in record for a registered student. CheckedInAt is the time of the
// most recent check-in or update, not the first one.
// swagger:model Attendance
type Attendance struct {
	ID               string    `json:"id"`
	EventID          string    `json:"event_id"`
	StudentID        string    `json:"student_id"`
	CollegeID        string    `json:"college_id"`
	HasGivenFeedback bool      `json:"has_given_feedback"`
	IsPresent        bool      `json:"is_present"`
	CheckedInAt      time.Time `json:"checked_in_at"`
}

// AttendanceMark is one entry of a batch check-in.
type AttendanceMark struct {
	StudentID string `json:"student_id"`
	IsPresent bool   `json:"is_present"`
}

// Batch check-in item statuses.
const (
	AttendanceStatusMarked        = "marked"
	AttendanceStatusNotRegistered = "not_registered"
	AttendanceStatusError         = "error"
)

// AttendanceMarkResult reports the outcome of one batch entry.
// swagger:model AttendanceMarkResult
type AttendanceMarkResult struct {
	StudentID string `json:"student_id"`
	Status    string `json:"status"`
	IsPresent *bool  `json:"is_present,omitempty"`
	Error     string `json:"error,omitempty"`
}

// AttendanceRepository defines storage operations for attendance rows.
type AttendanceRepository interface {
	// Upsert inserts the row or, when (event, student) exists, overwrites is_present and
	// checked_in_at (and has_given_feedback when withFeedback is true). att is filled from the stored row.
	Upsert(ctx context.Context, att *Attendance, withFeedback bool) error
	ListByEvent(ctx context.Context, eventID string) ([]*Attendance, error)
	// MarkFeedbackGiven sets has_given_feedback on the (event, student) row if one exists.
	MarkFeedbackGiven(ctx context.Context, eventID, studentID string) error
}

// AttendanceService records check-ins.
type AttendanceService interface {
	CheckIn(ctx context.Context, eventID, studentID string, isPresent, hasGivenFeedback bool) (*Attendance, error)
	CheckInBatch(ctx context.Context, eventID string, marks []AttendanceMark) ([]*AttendanceMarkResult, error)
	ListAttendance(ctx context.Context, eventID string) ([]*Attendance, error)
	ListRegisteredStudents(ctx context.Context, eventID string) ([]*RegisteredStudent, error)
}
