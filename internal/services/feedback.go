package services

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"eventory/internal/domain"
)

type feedbackService struct {
	tx             domain.Transactor
	eventRepo      domain.EventRepository
	studentRepo    domain.StudentRepository
	feedbackRepo   domain.FeedbackRepository
	attendanceRepo domain.AttendanceRepository
	recorder       domain.OutcomeRecorder
	contextTimeout time.Duration
}

// NewFeedbackService creates a FeedbackService with the given repositories.
func NewFeedbackService(
	tx domain.Transactor,
	eventRepo domain.EventRepository,
	studentRepo domain.StudentRepository,
	feedbackRepo domain.FeedbackRepository,
	attendanceRepo domain.AttendanceRepository,
	recorder domain.OutcomeRecorder,
	timeout time.Duration,
) domain.FeedbackService {
	return &feedbackService{
		tx:             tx,
		eventRepo:      eventRepo,
		studentRepo:    studentRepo,
		feedbackRepo:   feedbackRepo,
		attendanceRepo: attendanceRepo,
		recorder:       recorder,
		contextTimeout: timeout,
	}
}

// Submit stores the feedback and flags the matching attendance row, if any, in one transaction.
func (s *feedbackService) Submit(ctx context.Context, eventID, studentID string, rating int, comment string) (*domain.Feedback, error) {
	fb, err := s.submit(ctx, eventID, studentID, rating, comment)
	s.recorder.RecordOutcome("feedback", outcomeOf(err))
	return fb, err
}

func (s *feedbackService) submit(ctx context.Context, eventID, studentID string, rating int, comment string) (*domain.Feedback, error) {
	if rating < domain.MinRating || rating > domain.MaxRating {
		return nil, domain.ErrInvalidRating
	}

	ctx, cancel := context.WithTimeout(ctx, s.contextTimeout)
	defer cancel()

	fb := &domain.Feedback{
		EventID:   eventID,
		StudentID: studentID,
		Rating:    rating,
		Comment:   strings.TrimSpace(comment),
		CreatedAt: time.Now(),
	}
	err := s.tx.WithinTx(ctx, func(ctx context.Context) error {
		if _, err := s.eventRepo.GetByID(ctx, eventID); err != nil {
			if errors.Is(err, domain.ErrNotFound) {
				return domain.ErrNotFound
			}
			return fmt.Errorf("get event: %w", err)
		}
		if _, err := s.studentRepo.GetByID(ctx, studentID); err != nil {
			if errors.Is(err, domain.ErrNotFound) {
				return domain.ErrNotFound
			}
			return fmt.Errorf("get student: %w", err)
		}
		if err := s.feedbackRepo.Create(ctx, fb); err != nil {
			if errors.Is(err, domain.ErrDuplicateFeedback) {
				return domain.ErrDuplicateFeedback
			}
			return fmt.Errorf("create feedback: %w", err)
		}
		// No attendance row yet is fine; nothing is created.
		if err := s.attendanceRepo.MarkFeedbackGiven(ctx, eventID, studentID); err != nil {
			return fmt.Errorf("flag attendance feedback: %w", err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return fb, nil
}
