package postgres

import (
	"context"
	"database/sql"

	"eventory/internal/domain"
)

type feedbackRepository struct {
	DB *sql.DB
}

func NewFeedbackRepository(db *sql.DB) domain.FeedbackRepository {
	return &feedbackRepository{
		DB: db,
	}
}

func (r *feedbackRepository) Create(ctx context.Context, fb *domain.Feedback) error {
	query := `
		INSERT INTO feedbacks (event_id, student_id, rating, comment, created_at)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING id
	`
	err := conn(ctx, r.DB).QueryRowContext(ctx, query, fb.EventID, fb.StudentID, fb.Rating, fb.Comment, fb.CreatedAt).
		Scan(&fb.ID)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicateFeedback
		}
		return translate(err)
	}
	return nil
}
