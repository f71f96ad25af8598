package domain

import (
	"context"
	"time"
)

// Rating bounds for feedback.
const (
	MinRating = 1
	MaxRating = 5
)

// Feedback is a post-event rating, at most one per student per event. Immutable once created.
// swagger:model Feedback
type Feedback struct {
	ID        string    `json:"id"`
	EventID   string    `json:"event_id"`
	StudentID string    `json:"student_id"`
	Rating    int       `json:"rating"`
	Comment   string    `json:"comment"`
	CreatedAt time.Time `json:"created_at"`
}

// FeedbackRepository defines storage operations for feedback.
type FeedbackRepository interface {
	// Create inserts the row; a unique (event, student) violation is reported as ErrDuplicateFeedback.
	Create(ctx context.Context, fb *Feedback) error
}

// FeedbackService records feedback.
type FeedbackService interface {
	Submit(ctx context.Context, eventID, studentID string, rating int, comment string) (*Feedback, error)
}
