package domain

import (
	"context"
	"time"
)

// DefaultTopStudentsLimit and MaxTopStudentsLimit bound the top-students ranking size.
const (
	DefaultTopStudentsLimit = 3
	MaxTopStudentsLimit     = 100
)

// EventMetrics summarizes one event. Percentage and average are rounded to 2 decimals.
// swagger:model EventMetrics
type EventMetrics struct {
	EventID              string  `json:"event_id"`
	TotalRegistrations   int     `json:"total_registrations"`
	AttendanceCount      int     `json:"attendance_count"`
	AttendancePercentage float64 `json:"attendance_percentage"`
	AverageFeedback      float64 `json:"average_feedback"`
}

// EventPopularity is an event annotated with its registration count.
// swagger:model EventPopularity
type EventPopularity struct {
	EventID       string    `json:"event_id"`
	Title         string    `json:"title"`
	CollegeID     string    `json:"college_id"`
	Type          EventType `json:"type"`
	StartAt       time.Time `json:"start_at"`
	Registrations int       `json:"registrations"`
}

// StudentParticipation counts a student's registrations and attendances.
// swagger:model StudentParticipation
type StudentParticipation struct {
	StudentID     string `json:"student_id"`
	Registrations int    `json:"registrations"`
	Attended      int    `json:"attended"`
}

// TopStudent is one row of the attendance ranking.
// swagger:model TopStudent
type TopStudent struct {
	StudentID      string `json:"student_id"`
	FullName       string `json:"full_name"`
	CollegeID      string `json:"college_id"`
	EventsAttended int    `json:"events_attended"`
}

// EventStats are the raw aggregates behind EventMetrics.
type EventStats struct {
	Registrations int
	Attendances   int
	AvgRating     float64
}

// ReportRepository runs read-only aggregate queries.
type ReportRepository interface {
	EventStats(ctx context.Context, eventID string) (EventStats, error)
	// EventPopularity orders by registrations desc, then start_at desc.
	EventPopularity(ctx context.Context, filter EventFilter) ([]*EventPopularity, error)
	StudentParticipation(ctx context.Context, studentID string) (*StudentParticipation, error)
	// TopStudents orders by events attended desc, then full_name asc.
	TopStudents(ctx context.Context, limit int, collegeID string) ([]*TopStudent, error)
}

// ReportService exposes the aggregate reports.
type ReportService interface {
	EventMetrics(ctx context.Context, eventID string) (*EventMetrics, error)
	EventPopularity(ctx context.Context, filter EventFilter) ([]*EventPopularity, error)
	StudentParticipation(ctx context.Context, studentID string) (*StudentParticipation, error)
	TopStudents(ctx context.Context, limit int, collegeID string) ([]*TopStudent, error)
}
