package services

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"eventory/internal/domain"
)

type studentService struct {
	studentRepo    domain.StudentRepository
	collegeRepo    domain.CollegeRepository
	contextTimeout time.Duration
}

func NewStudentService(studentRepo domain.StudentRepository, collegeRepo domain.CollegeRepository, timeout time.Duration) domain.StudentService {
	return &studentService{
		studentRepo:    studentRepo,
		collegeRepo:    collegeRepo,
		contextTimeout: timeout,
	}
}

func (s *studentService) CreateStudent(ctx context.Context, student *domain.Student) error {
	ctx, cancel := context.WithTimeout(ctx, s.contextTimeout)
	defer cancel()

	student.FullName = strings.TrimSpace(student.FullName)
	student.Email = strings.TrimSpace(student.Email)
	student.RollNo = strings.TrimSpace(student.RollNo)
	if student.FullName == "" || student.Email == "" {
		return fmt.Errorf("%w: full_name and email are required", domain.ErrInvalidInput)
	}

	college, err := s.collegeRepo.GetByID(ctx, student.CollegeID)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return fmt.Errorf("%w: college does not exist", domain.ErrInvalidInput)
		}
		return fmt.Errorf("get college: %w", err)
	}

	now := time.Now()
	student.CreatedAt = now
	student.UpdatedAt = now
	student.CollegeCode = college.Code
	if err := s.studentRepo.Create(ctx, student); err != nil {
		return fmt.Errorf("create student: %w", err)
	}
	return nil
}

func (s *studentService) GetStudent(ctx context.Context, id string) (*domain.Student, error) {
	ctx, cancel := context.WithTimeout(ctx, s.contextTimeout)
	defer cancel()

	st, err := s.studentRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, domain.ErrNotFound
		}
		return nil, fmt.Errorf("get student: %w", err)
	}
	return st, nil
}

func (s *studentService) ListStudents(ctx context.Context, filter domain.StudentFilter, params domain.PaginationParams) ([]*domain.Student, int, error) {
	ctx, cancel := context.WithTimeout(ctx, s.contextTimeout)
	defer cancel()

	list, total, err := s.studentRepo.List(ctx, filter, params)
	if err != nil {
		return nil, 0, fmt.Errorf("list students: %w", err)
	}
	return list, total, nil
}

func (s *studentService) UpdateStudent(ctx context.Context, id string, upd domain.StudentUpdate) (*domain.Student, error) {
	ctx, cancel := context.WithTimeout(ctx, s.contextTimeout)
	defer cancel()

	for _, f := range []*string{upd.FullName, upd.Email} {
		if f != nil && strings.TrimSpace(*f) == "" {
			return nil, fmt.Errorf("%w: full_name and email must not be empty", domain.ErrInvalidInput)
		}
	}
	st, err := s.studentRepo.Update(ctx, id, upd)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, domain.ErrNotFound
		}
		return nil, fmt.Errorf("update student: %w", err)
	}
	return st, nil
}

func (s *studentService) DeleteStudent(ctx context.Context, id string) error {
	ctx, cancel := context.WithTimeout(ctx, s.contextTimeout)
	defer cancel()

	if err := s.studentRepo.Delete(ctx, id); err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return domain.ErrNotFound
		}
		return fmt.Errorf("delete student: %w", err)
	}
	return nil
}
