package services

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"eventory/internal/domain"
)

type eventService struct {
	tx             domain.Transactor
	eventRepo      domain.EventRepository
	collegeRepo    domain.CollegeRepository
	contextTimeout time.Duration
}

func NewEventService(tx domain.Transactor, eventRepo domain.EventRepository, collegeRepo domain.CollegeRepository, timeout time.Duration) domain.EventService {
	return &eventService{
		tx:             tx,
		eventRepo:      eventRepo,
		collegeRepo:    collegeRepo,
		contextTimeout: timeout,
	}
}

func validateEventWindow(start, end time.Time) error {
	if start.IsZero() || end.IsZero() {
		return fmt.Errorf("%w: start_at and end_at are required", domain.ErrInvalidInput)
	}
	if end.Before(start) {
		return fmt.Errorf("%w: end_at must not be before start_at", domain.ErrInvalidInput)
	}
	return nil
}

func (s *eventService) CreateEvent(ctx context.Context, event *domain.Event) error {
	ctx, cancel := context.WithTimeout(ctx, s.contextTimeout)
	defer cancel()

	event.Title = strings.TrimSpace(event.Title)
	if event.Title == "" {
		return fmt.Errorf("%w: title is required", domain.ErrInvalidInput)
	}
	t, ok := domain.ParseEventType(string(event.Type))
	if !ok {
		return fmt.Errorf("%w: unknown event type %q", domain.ErrInvalidInput, event.Type)
	}
	event.Type = t
	if err := validateEventWindow(event.StartAt, event.EndAt); err != nil {
		return err
	}
	if event.Capacity == 0 {
		event.Capacity = domain.DefaultEventCapacity
	}
	if event.Capacity < 1 {
		return fmt.Errorf("%w: capacity must be at least 1", domain.ErrInvalidInput)
	}
	if _, err := s.collegeRepo.GetByID(ctx, event.CollegeID); err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return fmt.Errorf("%w: college does not exist", domain.ErrInvalidInput)
		}
		return fmt.Errorf("get college: %w", err)
	}

	now := time.Now()
	event.CreatedAt = now
	event.UpdatedAt = now
	event.RegistrationCount = 0
	if err := s.eventRepo.Create(ctx, event); err != nil {
		return fmt.Errorf("create event: %w", err)
	}
	return nil
}

func (s *eventService) GetEvent(ctx context.Context, id string) (*domain.EventDetails, error) {
	ctx, cancel := context.WithTimeout(ctx, s.contextTimeout)
	defer cancel()

	d, err := s.eventRepo.GetDetails(ctx, id)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, domain.ErrNotFound
		}
		return nil, fmt.Errorf("get event: %w", err)
	}
	d.AvgFeedback = round2(d.AvgFeedback)
	return d, nil
}

func (s *eventService) ListEvents(ctx context.Context, filter domain.EventFilter, params domain.PaginationParams) ([]*domain.EventDetails, int, error) {
	ctx, cancel := context.WithTimeout(ctx, s.contextTimeout)
	defer cancel()

	if filter.Type != "" {
		t, ok := domain.ParseEventType(string(filter.Type))
		if !ok {
			return nil, 0, fmt.Errorf("%w: unknown event type %q", domain.ErrInvalidInput, filter.Type)
		}
		filter.Type = t
	}
	list, total, err := s.eventRepo.List(ctx, filter, params)
	if err != nil {
		return nil, 0, fmt.Errorf("list events: %w", err)
	}
	for _, d := range list {
		d.AvgFeedback = round2(d.AvgFeedback)
	}
	return list, total, nil
}

// UpdateEvent applies a partial update. The row is locked so a concurrent registration cannot
// slip past a capacity reduction.
func (s *eventService) UpdateEvent(ctx context.Context, id string, upd domain.EventUpdate) (*domain.Event, error) {
	ctx, cancel := context.WithTimeout(ctx, s.contextTimeout)
	defer cancel()

	if upd.Type != nil {
		t, ok := domain.ParseEventType(string(*upd.Type))
		if !ok {
			return nil, fmt.Errorf("%w: unknown event type %q", domain.ErrInvalidInput, *upd.Type)
		}
		upd.Type = &t
	}
	if upd.Title != nil {
		title := strings.TrimSpace(*upd.Title)
		if title == "" {
			return nil, fmt.Errorf("%w: title must not be empty", domain.ErrInvalidInput)
		}
		upd.Title = &title
	}

	var updated *domain.Event
	err := s.tx.WithinTx(ctx, func(ctx context.Context) error {
		current, err := s.eventRepo.GetByIDForUpdate(ctx, id)
		if err != nil {
			if errors.Is(err, domain.ErrNotFound) {
				return domain.ErrNotFound
			}
			return fmt.Errorf("get event: %w", err)
		}
		start, end := current.StartAt, current.EndAt
		if upd.StartAt != nil {
			start = *upd.StartAt
		}
		if upd.EndAt != nil {
			end = *upd.EndAt
		}
		if err := validateEventWindow(start, end); err != nil {
			return err
		}
		if upd.Capacity != nil {
			if *upd.Capacity < 1 {
				return fmt.Errorf("%w: capacity must be at least 1", domain.ErrInvalidInput)
			}
			if *upd.Capacity < current.RegistrationCount {
				return fmt.Errorf("%w: capacity %d is below the %d existing registrations", domain.ErrInvalidInput, *upd.Capacity, current.RegistrationCount)
			}
		}
		updated, err = s.eventRepo.Update(ctx, id, upd)
		if err != nil {
			return fmt.Errorf("update event: %w", err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return updated, nil
}

func (s *eventService) DeleteEvent(ctx context.Context, id string) error {
	ctx, cancel := context.WithTimeout(ctx, s.contextTimeout)
	defer cancel()

	if err := s.eventRepo.Delete(ctx, id); err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return domain.ErrNotFound
		}
		return fmt.Errorf("delete event: %w", err)
	}
	return nil
}
