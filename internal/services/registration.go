package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"eventory/internal/domain"
)

type registrationService struct {
	tx               domain.Transactor
	eventRepo        domain.EventRepository
	studentRepo      domain.StudentRepository
	collegeRepo      domain.CollegeRepository
	registrationRepo domain.RegistrationRepository
	emailService     domain.EmailService
	recorder         domain.OutcomeRecorder
	logger           *slog.Logger
	contextTimeout   time.Duration
}

// NewRegistrationService creates a RegistrationService. emailService may be nil to skip confirmations.
func NewRegistrationService(
	tx domain.Transactor,
	eventRepo domain.EventRepository,
	studentRepo domain.StudentRepository,
	collegeRepo domain.CollegeRepository,
	registrationRepo domain.RegistrationRepository,
	emailService domain.EmailService,
	recorder domain.OutcomeRecorder,
	logger *slog.Logger,
	timeout time.Duration,
) domain.RegistrationService {
	return &registrationService{
		tx:               tx,
		eventRepo:        eventRepo,
		studentRepo:      studentRepo,
		collegeRepo:      collegeRepo,
		registrationRepo: registrationRepo,
		emailService:     emailService,
		recorder:         recorder,
		logger:           logger,
		contextTimeout:   timeout,
	}
}

// Register runs the whole enrollment in one transaction: lock the event row, upsert the student,
// reject duplicates and full events, insert the registration, snapshot the per-college count and
// bump the event counter.
func (s *registrationService) Register(ctx context.Context, eventID string, identity domain.StudentIdentity) (*domain.Registration, error) {
	ctx, cancel := context.WithTimeout(ctx, s.contextTimeout)
	defer cancel()

	var (
		reg     *domain.Registration
		event   *domain.Event
		student *domain.Student
	)
	err := s.tx.WithinTx(ctx, func(ctx context.Context) error {
		var err error
		event, err = s.eventRepo.GetByIDForUpdate(ctx, eventID)
		if err != nil {
			if errors.Is(err, domain.ErrNotFound) {
				return domain.ErrNotFound
			}
			return fmt.Errorf("get event: %w", err)
		}

		student, err = s.resolveStudent(ctx, identity)
		if err != nil {
			return err
		}

		exists, err := s.registrationRepo.Exists(ctx, event.ID, student.ID)
		if err != nil {
			return fmt.Errorf("check registration: %w", err)
		}
		if exists {
			return domain.ErrDuplicateRegistration
		}
		if event.RegistrationCount >= event.Capacity {
			return domain.ErrCapacityExceeded
		}

		reg = domain.NewRegistration(event.ID, student.ID, time.Now())
		if err := s.registrationRepo.Create(ctx, reg); err != nil {
			if errors.Is(err, domain.ErrDuplicateRegistration) {
				return domain.ErrDuplicateRegistration
			}
			return fmt.Errorf("create registration: %w", err)
		}

		count, err := s.registrationRepo.CountByEventAndCollege(ctx, event.ID, student.CollegeID)
		if err != nil {
			return fmt.Errorf("count college registrations: %w", err)
		}
		if err := s.registrationRepo.SetCollegeRegisteredCount(ctx, reg.ID, count); err != nil {
			return fmt.Errorf("set college registered count: %w", err)
		}
		reg.CollegeRegisteredCount = count

		if event.RegistrationCount, err = s.eventRepo.IncrementRegistrationCount(ctx, event.ID); err != nil {
			return fmt.Errorf("increment registration count: %w", err)
		}
		return nil
	})
	s.recorder.RecordOutcome("register", outcomeOf(err))
	if err != nil {
		return nil, err
	}

	s.sendConfirmation(ctx, event, student)
	return reg, nil
}

func (s *registrationService) resolveStudent(ctx context.Context, identity domain.StudentIdentity) (*domain.Student, error) {
	if identity.ByID() {
		student, err := s.studentRepo.GetByID(ctx, identity.StudentID)
		if err != nil {
			if errors.Is(err, domain.ErrNotFound) {
				return nil, domain.ErrNotFound
			}
			return nil, fmt.Errorf("get student: %w", err)
		}
		return student, nil
	}

	code := strings.TrimSpace(identity.CollegeCode)
	email := strings.TrimSpace(identity.Email)
	if code == "" || email == "" {
		return nil, fmt.Errorf("%w: college_code and email are required", domain.ErrInvalidInput)
	}
	name := strings.TrimSpace(identity.Name)
	rollNo := strings.TrimSpace(identity.RollNo)
	if name == "" || rollNo == "" {
		// the upsert overwrites both columns of an existing profile
		return nil, fmt.Errorf("%w: name and roll_no are required", domain.ErrInvalidInput)
	}
	college, err := s.collegeRepo.GetByCode(ctx, code)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, fmt.Errorf("%w: invalid college code", domain.ErrInvalidInput)
		}
		return nil, fmt.Errorf("get college: %w", err)
	}

	now := time.Now()
	student := domain.NewStudent(college.ID, name, email, rollNo, now, now)
	student.CollegeCode = college.Code
	if err := s.studentRepo.UpsertByCollegeEmail(ctx, student); err != nil {
		return nil, fmt.Errorf("upsert student: %w", err)
	}
	return student, nil
}

// sendConfirmation is best-effort: the registration is already committed.
func (s *registrationService) sendConfirmation(ctx context.Context, event *domain.Event, student *domain.Student) {
	if s.emailService == nil {
		return
	}
	err := s.emailService.SendRegistrationConfirmation(ctx, &domain.RegistrationConfirmationEmailData{
		Email:       student.Email,
		StudentName: student.FullName,
		EventTitle:  event.Title,
		StartAt:     event.StartAt,
		EndAt:       event.EndAt,
	})
	if err != nil {
		s.logger.WarnContext(ctx, "registration confirmation not sent", "event_id", event.ID, "student_id", student.ID, "err", err)
	}
}

// outcomeOf maps an operation error to a low-cardinality metrics label.
func outcomeOf(err error) string {
	switch {
	case err == nil:
		return "ok"
	case errors.Is(err, domain.ErrNotFound):
		return "not_found"
	case errors.Is(err, domain.ErrDuplicateRegistration):
		return "duplicate_registration"
	case errors.Is(err, domain.ErrCapacityExceeded):
		return "capacity_exceeded"
	case errors.Is(err, domain.ErrNotRegistered):
		return "not_registered"
	case errors.Is(err, domain.ErrInvalidRating):
		return "invalid_rating"
	case errors.Is(err, domain.ErrDuplicateFeedback):
		return "duplicate_feedback"
	case errors.Is(err, domain.ErrInvalidInput):
		return "invalid_input"
	default:
		return "error"
	}
}
