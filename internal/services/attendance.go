package services

import (
	"context"
	"errors"
	"fmt"
	"time"

	"eventory/internal/domain"
)

type attendanceService struct {
	eventRepo        domain.EventRepository
	studentRepo      domain.StudentRepository
	registrationRepo domain.RegistrationRepository
	attendanceRepo   domain.AttendanceRepository
	recorder         domain.OutcomeRecorder
	contextTimeout   time.Duration
	now              func() time.Time
}

// NewAttendanceService creates an AttendanceService with the given repositories.
func NewAttendanceService(
	eventRepo domain.EventRepository,
	studentRepo domain.StudentRepository,
	registrationRepo domain.RegistrationRepository,
	attendanceRepo domain.AttendanceRepository,
	recorder domain.OutcomeRecorder,
	timeout time.Duration,
) domain.AttendanceService {
	return &attendanceService{
		eventRepo:        eventRepo,
		studentRepo:      studentRepo,
		registrationRepo: registrationRepo,
		attendanceRepo:   attendanceRepo,
		recorder:         recorder,
		contextTimeout:   timeout,
		now:              time.Now,
	}
}

func (s *attendanceService) CheckIn(ctx context.Context, eventID, studentID string, isPresent, hasGivenFeedback bool) (*domain.Attendance, error) {
	ctx, cancel := context.WithTimeout(ctx, s.contextTimeout)
	defer cancel()

	if err := s.ensureEvent(ctx, eventID); err != nil {
		s.recorder.RecordOutcome("check_in", outcomeOf(err))
		return nil, err
	}
	att, err := s.mark(ctx, eventID, studentID, isPresent, hasGivenFeedback, true)
	s.recorder.RecordOutcome("check_in", outcomeOf(err))
	return att, err
}

// CheckInBatch marks each entry independently. Only a missing event fails the whole call;
// per-student failures become result entries.
func (s *attendanceService) CheckInBatch(ctx context.Context, eventID string, marks []domain.AttendanceMark) ([]*domain.AttendanceMarkResult, error) {
	ctx, cancel := context.WithTimeout(ctx, s.contextTimeout)
	defer cancel()

	if err := s.ensureEvent(ctx, eventID); err != nil {
		return nil, err
	}

	results := make([]*domain.AttendanceMarkResult, 0, len(marks))
	for _, m := range marks {
		res := &domain.AttendanceMarkResult{StudentID: m.StudentID}
		_, err := s.mark(ctx, eventID, m.StudentID, m.IsPresent, false, false)
		switch {
		case err == nil:
			isPresent := m.IsPresent
			res.Status = domain.AttendanceStatusMarked
			res.IsPresent = &isPresent
		case errors.Is(err, domain.ErrNotRegistered):
			res.Status = domain.AttendanceStatusNotRegistered
		default:
			res.Status = domain.AttendanceStatusError
			res.Error = err.Error()
		}
		s.recorder.RecordOutcome("check_in", outcomeOf(err))
		results = append(results, res)
	}
	return results, nil
}

func (s *attendanceService) mark(ctx context.Context, eventID, studentID string, isPresent, hasGivenFeedback, withFeedback bool) (*domain.Attendance, error) {
	if studentID == "" {
		return nil, fmt.Errorf("%w: student_id is required", domain.ErrInvalidInput)
	}
	registered, err := s.registrationRepo.Exists(ctx, eventID, studentID)
	if err != nil {
		return nil, fmt.Errorf("check registration: %w", err)
	}
	if !registered {
		return nil, domain.ErrNotRegistered
	}
	student, err := s.studentRepo.GetByID(ctx, studentID)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, fmt.Errorf("student %s: %w", studentID, domain.ErrNotFound)
		}
		return nil, fmt.Errorf("get student: %w", err)
	}

	att := &domain.Attendance{
		EventID:          eventID,
		StudentID:        student.ID,
		CollegeID:        student.CollegeID,
		HasGivenFeedback: hasGivenFeedback,
		IsPresent:        isPresent,
		CheckedInAt:      s.now(),
	}
	if err := s.attendanceRepo.Upsert(ctx, att, withFeedback); err != nil {
		return nil, fmt.Errorf("upsert attendance: %w", err)
	}
	return att, nil
}

func (s *attendanceService) ensureEvent(ctx context.Context, eventID string) error {
	if _, err := s.eventRepo.GetByID(ctx, eventID); err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return domain.ErrNotFound
		}
		return fmt.Errorf("get event: %w", err)
	}
	return nil
}

func (s *attendanceService) ListAttendance(ctx context.Context, eventID string) ([]*domain.Attendance, error) {
	ctx, cancel := context.WithTimeout(ctx, s.contextTimeout)
	defer cancel()

	if err := s.ensureEvent(ctx, eventID); err != nil {
		return nil, err
	}
	list, err := s.attendanceRepo.ListByEvent(ctx, eventID)
	if err != nil {
		return nil, fmt.Errorf("list attendance: %w", err)
	}
	return list, nil
}

func (s *attendanceService) ListRegisteredStudents(ctx context.Context, eventID string) ([]*domain.RegisteredStudent, error) {
	ctx, cancel := context.WithTimeout(ctx, s.contextTimeout)
	defer cancel()

	if err := s.ensureEvent(ctx, eventID); err != nil {
		return nil, err
	}
	list, err := s.registrationRepo.ListRegisteredStudents(ctx, eventID)
	if err != nil {
		return nil, fmt.Errorf("list registered students: %w", err)
	}
	return list, nil
}
