package domain

import (
	"context"
	"strings"
	"time"
)

// EventType is the kind of event. Stored and sent as the upper-case constant.
type EventType string

const (
	EventTypeWorkshop  EventType = "WORKSHOP"
	EventTypeSeminar   EventType = "SEMINAR"
	EventTypeHackathon EventType = "HACKATHON"
	EventTypeFest      EventType = "FEST"
	EventTypeTechTalk  EventType = "TECHTALK"
)

// EventTypes lists every valid EventType in display order.
var EventTypes = []EventType{
	EventTypeWorkshop,
	EventTypeSeminar,
	EventTypeHackathon,
	EventTypeFest,
	EventTypeTechTalk,
}

// ParseEventType accepts the constant in any case ("techtalk", "TechTalk").
func ParseEventType(s string) (EventType, bool) {
	t := EventType(strings.ToUpper(strings.TrimSpace(s)))
	for _, v := range EventTypes {
		if v == t {
			return t, true
		}
	}
	return "", false
}

// DefaultEventCapacity is used when an event is created without a capacity.
const DefaultEventCapacity = 100

// Event is owned by a college. RegistrationCount is a denormalized count of its registrations,
// maintained by the registration service.
// swagger:model Event
type Event struct {
	ID                string    `json:"id"`
	CollegeID         string    `json:"college_id"`
	Title             string    `json:"title"`
	Description       string    `json:"description"`
	Type              EventType `json:"type"`
	StartAt           time.Time `json:"start_at"`
	EndAt             time.Time `json:"end_at"`
	Capacity          int       `json:"capacity"`
	RegistrationCount int       `json:"registration_count"`
	CreatedAt         time.Time `json:"created_at"`
	UpdatedAt         time.Time `json:"updated_at"`
}

// NewEvent returns a new Event with zero registrations. ID is set by the repository on create.
func NewEvent(collegeID, title, description string, typ EventType, startAt, endAt time.Time, capacity int, createdAt, updatedAt time.Time) *Event {
	return &Event{
		CollegeID:   collegeID,
		Title:       title,
		Description: description,
		Type:        typ,
		StartAt:     startAt,
		EndAt:       endAt,
		Capacity:    capacity,
		CreatedAt:   createdAt,
		UpdatedAt:   updatedAt,
	}
}

// EventDetails is an Event plus the aggregates computed at read time.
// swagger:model EventDetails
type EventDetails struct {
	Event
	RegistrationsCount int     `json:"registrations_count"`
	AttendanceCount    int     `json:"attendance_count"`
	AvgFeedback        float64 `json:"avg_feedback"`
}

// EventFilter narrows event listings. Empty fields match everything.
type EventFilter struct {
	CollegeID string
	Type      EventType
}

// EventUpdate holds optional fields for a partial event update.
type EventUpdate struct {
	Title       *string
	Description *string
	Type        *EventType
	StartAt     *time.Time
	EndAt       *time.Time
	Capacity    *int
}

// EventRepository defines the interface for event storage
type EventRepository interface {
	Create(ctx context.Context, event *Event) error
	GetByID(ctx context.Context, id string) (*Event, error)
	// GetByIDForUpdate reads the event and locks its row until the surrounding transaction ends.
	GetByIDForUpdate(ctx context.Context, id string) (*Event, error)
	GetDetails(ctx context.Context, id string) (*EventDetails, error)
	List(ctx context.Context, filter EventFilter, params PaginationParams) ([]*EventDetails, int, error)
	Update(ctx context.Context, id string, upd EventUpdate) (*Event, error)
	Delete(ctx context.Context, id string) error
	// IncrementRegistrationCount adds one to registration_count and returns the new value.
	IncrementRegistrationCount(ctx context.Context, id string) (int, error)
}

// EventService defines administrative operations on events.
type EventService interface {
	CreateEvent(ctx context.Context, event *Event) error
	GetEvent(ctx context.Context, id string) (*EventDetails, error)
	ListEvents(ctx context.Context, filter EventFilter, params PaginationParams) ([]*EventDetails, int, error)
	UpdateEvent(ctx context.Context, id string, upd EventUpdate) (*Event, error)
	DeleteEvent(ctx context.Context, id string) error
}
