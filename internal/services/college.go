package services

import (
	"context"
	"errors"
	"fmt"
	"regexp"
	"strings"
	"time"

	"eventory/internal/domain"
)

// collegeCodeRegex matches the slug used for external lookup.
var collegeCodeRegex = regexp.MustCompile(`^[a-z0-9]+(?:-[a-z0-9]+)*$`)

type collegeService struct {
	collegeRepo    domain.CollegeRepository
	contextTimeout time.Duration
}

func NewCollegeService(collegeRepo domain.CollegeRepository, timeout time.Duration) domain.CollegeService {
	return &collegeService{
		collegeRepo:    collegeRepo,
		contextTimeout: timeout,
	}
}

func (s *collegeService) CreateCollege(ctx context.Context, college *domain.College) error {
	ctx, cancel := context.WithTimeout(ctx, s.contextTimeout)
	defer cancel()

	college.Name = strings.TrimSpace(college.Name)
	college.Code = strings.ToLower(strings.TrimSpace(college.Code))
	if college.Name == "" {
		return fmt.Errorf("%w: name is required", domain.ErrInvalidInput)
	}
	if !collegeCodeRegex.MatchString(college.Code) {
		return fmt.Errorf("%w: code must be a lowercase slug", domain.ErrInvalidInput)
	}
	if college.TotalStudents < 0 {
		return fmt.Errorf("%w: total_students must not be negative", domain.ErrInvalidInput)
	}

	now := time.Now()
	college.CreatedAt = now
	college.UpdatedAt = now
	if err := s.collegeRepo.Create(ctx, college); err != nil {
		return fmt.Errorf("create college: %w", err)
	}
	return nil
}

func (s *collegeService) GetCollege(ctx context.Context, id string) (*domain.College, error) {
	ctx, cancel := context.WithTimeout(ctx, s.contextTimeout)
	defer cancel()

	c, err := s.collegeRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, domain.ErrNotFound
		}
		return nil, fmt.Errorf("get college: %w", err)
	}
	return c, nil
}

func (s *collegeService) ListColleges(ctx context.Context, params domain.PaginationParams) ([]*domain.College, int, error) {
	ctx, cancel := context.WithTimeout(ctx, s.contextTimeout)
	defer cancel()

	list, total, err := s.collegeRepo.List(ctx, params)
	if err != nil {
		return nil, 0, fmt.Errorf("list colleges: %w", err)
	}
	return list, total, nil
}

// UpdateCollege never changes the code; it is the immutable external identifier.
func (s *collegeService) UpdateCollege(ctx context.Context, id string, upd domain.CollegeUpdate) (*domain.College, error) {
	ctx, cancel := context.WithTimeout(ctx, s.contextTimeout)
	defer cancel()

	if upd.Name != nil {
		name := strings.TrimSpace(*upd.Name)
		if name == "" {
			return nil, fmt.Errorf("%w: name must not be empty", domain.ErrInvalidInput)
		}
		upd.Name = &name
	}
	if upd.TotalStudents != nil && *upd.TotalStudents < 0 {
		return nil, fmt.Errorf("%w: total_students must not be negative", domain.ErrInvalidInput)
	}
	c, err := s.collegeRepo.Update(ctx, id, upd)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, domain.ErrNotFound
		}
		return nil, fmt.Errorf("update college: %w", err)
	}
	return c, nil
}

// DeleteCollege cascades to the college's students, events and everything hanging off them.
func (s *collegeService) DeleteCollege(ctx context.Context, id string) error {
	ctx, cancel := context.WithTimeout(ctx, s.contextTimeout)
	defer cancel()

	if err := s.collegeRepo.Delete(ctx, id); err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return domain.ErrNotFound
		}
		return fmt.Errorf("delete college: %w", err)
	}
	return nil
}
