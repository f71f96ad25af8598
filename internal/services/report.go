package services

import (
	"context"
	"errors"
	"fmt"
	"math"
	"time"

	"eventory/internal/domain"
)

type reportService struct {
	reportRepo     domain.ReportRepository
	contextTimeout time.Duration
}

// NewReportService creates a read-only ReportService.
func NewReportService(reportRepo domain.ReportRepository, timeout time.Duration) domain.ReportService {
	return &reportService{
		reportRepo:     reportRepo,
		contextTimeout: timeout,
	}
}

func round2(x float64) float64 {
	return math.Round(x*100) / 100
}

func (s *reportService) EventMetrics(ctx context.Context, eventID string) (*domain.EventMetrics, error) {
	ctx, cancel := context.WithTimeout(ctx, s.contextTimeout)
	defer cancel()

	st, err := s.reportRepo.EventStats(ctx, eventID)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, domain.ErrNotFound
		}
		return nil, fmt.Errorf("event stats: %w", err)
	}
	var pct float64
	if st.Registrations > 0 {
		pct = float64(st.Attendances) / float64(st.Registrations) * 100
	}
	return &domain.EventMetrics{
		EventID:              eventID,
		TotalRegistrations:   st.Registrations,
		AttendanceCount:      st.Attendances,
		AttendancePercentage: round2(pct),
		AverageFeedback:      round2(st.AvgRating),
	}, nil
}

func (s *reportService) EventPopularity(ctx context.Context, filter domain.EventFilter) ([]*domain.EventPopularity, error) {
	ctx, cancel := context.WithTimeout(ctx, s.contextTimeout)
	defer cancel()

	if filter.Type != "" {
		t, ok := domain.ParseEventType(string(filter.Type))
		if !ok {
			return nil, fmt.Errorf("%w: unknown event type %q", domain.ErrInvalidInput, filter.Type)
		}
		filter.Type = t
	}
	list, err := s.reportRepo.EventPopularity(ctx, filter)
	if err != nil {
		return nil, fmt.Errorf("event popularity: %w", err)
	}
	return list, nil
}

func (s *reportService) StudentParticipation(ctx context.Context, studentID string) (*domain.StudentParticipation, error) {
	ctx, cancel := context.WithTimeout(ctx, s.contextTimeout)
	defer cancel()

	p, err := s.reportRepo.StudentParticipation(ctx, studentID)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, domain.ErrNotFound
		}
		return nil, fmt.Errorf("student participation: %w", err)
	}
	return p, nil
}

// TopStudents uses DefaultTopStudentsLimit when limit is 0.
func (s *reportService) TopStudents(ctx context.Context, limit int, collegeID string) ([]*domain.TopStudent, error) {
	if limit == 0 {
		limit = domain.DefaultTopStudentsLimit
	}
	if limit < 1 || limit > domain.MaxTopStudentsLimit {
		return nil, fmt.Errorf("%w: limit must be between 1 and %d", domain.ErrInvalidInput, domain.MaxTopStudentsLimit)
	}

	ctx, cancel := context.WithTimeout(ctx, s.contextTimeout)
	defer cancel()

	list, err := s.reportRepo.TopStudents(ctx, limit, collegeID)
	if err != nil {
		return nil, fmt.Errorf("top students: %w", err)
	}
	return list, nil
}
