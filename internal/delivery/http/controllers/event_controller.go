package controllers

import (
	"log/slog"
	"net/http"
	"strings"
	"time"

	"eventory/internal/delivery/http/helpers"
	"eventory/internal/domain"
)

// CreateEventRequest is the request body for POST /events. Capacity defaults to 100 when omitted.
type CreateEventRequest struct {
	CollegeID   string    `json:"college_id" validate:"required,uuid"`
	Title       string    `json:"title" validate:"required,max=255"`
	Description string    `json:"description"`
	Type        string    `json:"type" validate:"required"`
	StartAt     time.Time `json:"start_at" validate:"required"`
	EndAt       time.Time `json:"end_at" validate:"required,gtefield=StartAt"`
	Capacity    int       `json:"capacity" validate:"gte=0"`
}

// Validate implements Validator.
func (c CreateEventRequest) Validate() []string {
	errs := helpers.ValidateStruct(c)
	if c.Type != "" {
		if _, ok := domain.ParseEventType(c.Type); !ok {
			errs = append(errs, eventTypeMessage())
		}
	}
	return errs
}

// UpdateEventRequest is the request body for PATCH /events/{eventID}.
type UpdateEventRequest struct {
	Title       *string    `json:"title" validate:"omitempty,min=1,max=255"`
	Description *string    `json:"description"`
	Type        *string    `json:"type"`
	StartAt     *time.Time `json:"start_at"`
	EndAt       *time.Time `json:"end_at"`
	Capacity    *int       `json:"capacity" validate:"omitempty,gte=1"`
}

// Validate implements Validator.
func (u UpdateEventRequest) Validate() []string {
	errs := helpers.ValidateStruct(u)
	if u.Type != nil {
		if _, ok := domain.ParseEventType(*u.Type); !ok {
			errs = append(errs, eventTypeMessage())
		}
	}
	if u.StartAt != nil && u.EndAt != nil && u.EndAt.Before(*u.StartAt) {
		errs = append(errs, "end_at must not be before start_at")
	}
	return errs
}

func eventTypeMessage() string {
	names := make([]string, len(domain.EventTypes))
	for i, t := range domain.EventTypes {
		names[i] = string(t)
	}
	return "type must be one of " + strings.Join(names, ", ")
}

// EventSuccessResponse is the success envelope for endpoints returning a bare event.
type EventSuccessResponse struct {
	Data  *domain.Event     `json:"data"`
	Error *helpers.APIError `json:"error"`
}

// EventDetailsSuccessResponse is the success envelope for GET /events/{eventID}.
type EventDetailsSuccessResponse struct {
	Data  *domain.EventDetails `json:"data"`
	Error *helpers.APIError    `json:"error"`
}

// ListEventsResponse is the data payload for GET /events.
type ListEventsResponse struct {
	Items      []*domain.EventDetails `json:"items"`
	Pagination helpers.PaginationMeta `json:"pagination"`
}

// ListEventsSuccessResponse is the success envelope for GET /events.
type ListEventsSuccessResponse struct {
	Data  ListEventsResponse `json:"data"`
	Error *helpers.APIError  `json:"error"`
}

type EventController struct {
	Logger  *slog.Logger
	Service domain.EventService
}

func NewEventController(logger *slog.Logger, svc domain.EventService) *EventController {
	return &EventController{Logger: logger, Service: svc}
}

// parseEventFilter reads the optional college_id and type query parameters shared by
// GET /events and GET /reports/event-popularity.
func parseEventFilter(w http.ResponseWriter, r *http.Request) (domain.EventFilter, bool) {
	collegeID, ok := helpers.QueryUUID(w, r, "college_id")
	if !ok {
		return domain.EventFilter{}, false
	}
	filter := domain.EventFilter{CollegeID: collegeID}
	if s := r.URL.Query().Get("type"); s != "" {
		t, ok := domain.ParseEventType(s)
		if !ok {
			helpers.WriteJSONError(w, http.StatusBadRequest, helpers.ErrCodeBadRequest, eventTypeMessage())
			return domain.EventFilter{}, false
		}
		filter.Type = t
	}
	return filter, true
}

// CreateEvent godoc
// @Summary Create an event
// @Description Admin only. Title is unique per college and start time.
// @Tags events
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param event body CreateEventRequest true "Event data"
// @Success 201 {object} controllers.EventSuccessResponse
// @Failure 400 {object} helpers.APIResponse "error.code: bad_request"
// @Failure 403 {object} helpers.APIResponse "error.code: forbidden"
// @Failure 409 {object} helpers.APIResponse "error.code: conflict"
// @Router /events [post]
func (c *EventController) CreateEvent(w http.ResponseWriter, r *http.Request) {
	var req CreateEventRequest
	if !helpers.DecodeAndValidate(w, r, &req) {
		return
	}
	typ, _ := domain.ParseEventType(req.Type)
	now := time.Now()
	event := domain.NewEvent(req.CollegeID, req.Title, req.Description, typ, req.StartAt, req.EndAt, req.Capacity, now, now)
	if err := c.Service.CreateEvent(r.Context(), event); err != nil {
		helpers.WriteServiceError(w, r, c.Logger, err)
		return
	}
	helpers.WriteJSONSuccess(w, http.StatusCreated, event)
}

// GetEvent godoc
// @Summary Get an event
// @Description Includes registrations_count, attendance_count and avg_feedback.
// @Tags events
// @Produce json
// @Security BearerAuth
// @Param eventID path string true "Event ID (UUID)"
// @Success 200 {object} controllers.EventDetailsSuccessResponse
// @Failure 404 {object} helpers.APIResponse "error.code: not_found"
// @Router /events/{eventID} [get]
func (c *EventController) GetEvent(w http.ResponseWriter, r *http.Request) {
	id, ok := helpers.PathUUID(w, r, "eventID")
	if !ok {
		return
	}
	event, err := c.Service.GetEvent(r.Context(), id)
	if err != nil {
		helpers.WriteServiceError(w, r, c.Logger, err)
		return
	}
	helpers.WriteJSONSuccess(w, http.StatusOK, event)
}

// ListEvents godoc
// @Summary List events
// @Tags events
// @Produce json
// @Security BearerAuth
// @Param college_id query string false "Filter by college (UUID)"
// @Param type query string false "Filter by type" Enums(WORKSHOP, SEMINAR, HACKATHON, FEST, TECHTALK)
// @Param page query int false "Page (default 1)"
// @Param page_size query int false "Page size (default 20, max 100)"
// @Success 200 {object} controllers.ListEventsSuccessResponse
// @Failure 400 {object} helpers.APIResponse "error.code: bad_request"
// @Router /events [get]
func (c *EventController) ListEvents(w http.ResponseWriter, r *http.Request) {
	filter, ok := parseEventFilter(w, r)
	if !ok {
		return
	}
	params, ok := helpers.ParsePagination(w, r)
	if !ok {
		return
	}
	list, total, err := c.Service.ListEvents(r.Context(), filter, params)
	if err != nil {
		helpers.WriteServiceError(w, r, c.Logger, err)
		return
	}
	if list == nil {
		list = []*domain.EventDetails{}
	}
	meta := helpers.NewPaginationMeta(params, total)
	helpers.WriteJSONSuccess(w, http.StatusOK, ListEventsResponse{Items: list, Pagination: meta})
}

// UpdateEvent godoc
// @Summary Update an event
// @Description Admin only. Partial update; capacity cannot drop below the current registration count.
// @Tags events
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param eventID path string true "Event ID (UUID)"
// @Param event body UpdateEventRequest true "Fields to change"
// @Success 200 {object} controllers.EventSuccessResponse
// @Failure 400 {object} helpers.APIResponse "error.code: bad_request"
// @Failure 404 {object} helpers.APIResponse "error.code: not_found"
// @Failure 409 {object} helpers.APIResponse "error.code: conflict"
// @Router /events/{eventID} [patch]
func (c *EventController) UpdateEvent(w http.ResponseWriter, r *http.Request) {
	id, ok := helpers.PathUUID(w, r, "eventID")
	if !ok {
		return
	}
	var req UpdateEventRequest
	if !helpers.DecodeAndValidate(w, r, &req) {
		return
	}
	upd := domain.EventUpdate{
		Title:       req.Title,
		Description: req.Description,
		StartAt:     req.StartAt,
		EndAt:       req.EndAt,
		Capacity:    req.Capacity,
	}
	if req.Type != nil {
		t, _ := domain.ParseEventType(*req.Type)
		upd.Type = &t
	}
	event, err := c.Service.UpdateEvent(r.Context(), id, upd)
	if err != nil {
		helpers.WriteServiceError(w, r, c.Logger, err)
		return
	}
	helpers.WriteJSONSuccess(w, http.StatusOK, event)
}

// DeleteEvent godoc
// @Summary Delete an event
// @Description Admin only. Cascades to registrations, attendance and feedback.
// @Tags events
// @Produce json
// @Security BearerAuth
// @Param eventID path string true "Event ID (UUID)"
// @Success 200 {object} controllers.StatusSuccessResponse
// @Failure 404 {object} helpers.APIResponse "error.code: not_found"
// @Router /events/{eventID} [delete]
func (c *EventController) DeleteEvent(w http.ResponseWriter, r *http.Request) {
	id, ok := helpers.PathUUID(w, r, "eventID")
	if !ok {
		return
	}
	if err := c.Service.DeleteEvent(r.Context(), id); err != nil {
		helpers.WriteServiceError(w, r, c.Logger, err)
		return
	}
	helpers.WriteJSONSuccess(w, http.StatusOK, deletedResponse)
}
