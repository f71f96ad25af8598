package controllers

import (
	"log/slog"
	"net/http"

	"eventory/internal/delivery/http/helpers"
	"eventory/internal/domain"
)

// CheckInRequest is the request body for POST /events/{eventID}/attendance.
// is_present defaults to false when omitted.
type CheckInRequest struct {
	StudentID        string `json:"student_id" validate:"required,uuid"`
	IsPresent        *bool  `json:"is_present"`
	HasGivenFeedback bool   `json:"has_given_feedback"`
}

// Validate implements Validator.
func (c CheckInRequest) Validate() []string {
	return helpers.ValidateStruct(c)
}

// BatchCheckInItem is one entry of a batch check-in.
type BatchCheckInItem struct {
	StudentID string `json:"student_id" validate:"required"`
	IsPresent *bool  `json:"is_present"`
}

// BatchCheckInRequest is the request body for POST /events/{eventID}/attendance/batch.
type BatchCheckInRequest struct {
	Items []BatchCheckInItem `json:"items" validate:"required,min=1,max=500,dive"`
}

// Validate implements Validator.
func (b BatchCheckInRequest) Validate() []string {
	return helpers.ValidateStruct(b)
}

func presentOrDefault(p *bool) bool {
	if p == nil {
		return false
	}
	return *p
}

// AttendanceSuccessResponse is the success envelope for POST /events/{eventID}/attendance.
type AttendanceSuccessResponse struct {
	Data  *domain.Attendance `json:"data"`
	Error *helpers.APIError  `json:"error"`
}

// BatchCheckInResponse is the data payload for POST /events/{eventID}/attendance/batch.
type BatchCheckInResponse struct {
	Results []*domain.AttendanceMarkResult `json:"results"`
	Marked  int                            `json:"marked"`
	Failed  int                            `json:"failed"`
}

// BatchCheckInSuccessResponse is the success envelope for POST /events/{eventID}/attendance/batch.
type BatchCheckInSuccessResponse struct {
	Data  BatchCheckInResponse `json:"data"`
	Error *helpers.APIError    `json:"error"`
}

// ListAttendanceSuccessResponse is the success envelope for GET /events/{eventID}/attendance.
type ListAttendanceSuccessResponse struct {
	Data  []*domain.Attendance `json:"data"`
	Error *helpers.APIError    `json:"error"`
}

// RegisteredStudentsSuccessResponse is the success envelope for GET /events/{eventID}/registered-students.
type RegisteredStudentsSuccessResponse struct {
	Data  []*domain.RegisteredStudent `json:"data"`
	Error *helpers.APIError           `json:"error"`
}

type AttendanceController struct {
	Logger  *slog.Logger
	Service domain.AttendanceService
}

func NewAttendanceController(logger *slog.Logger, svc domain.AttendanceService) *AttendanceController {
	return &AttendanceController{Logger: logger, Service: svc}
}

// CheckIn godoc
// @Summary Mark attendance for one student
// @Description Admin only. Upserts the attendance row; repeat calls update is_present, has_given_feedback and checked_in_at. An omitted is_present is recorded as absent.
// @Tags attendance
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param eventID path string true "Event ID (UUID)"
// @Param attendance body CheckInRequest true "Check-in"
// @Success 200 {object} controllers.AttendanceSuccessResponse
// @Failure 400 {object} helpers.APIResponse "error.code: bad_request | not_registered"
// @Failure 403 {object} helpers.APIResponse "error.code: forbidden"
// @Failure 404 {object} helpers.APIResponse "error.code: not_found"
// @Router /events/{eventID}/attendance [post]
func (c *AttendanceController) CheckIn(w http.ResponseWriter, r *http.Request) {
	eventID, ok := helpers.PathUUID(w, r, "eventID")
	if !ok {
		return
	}
	var req CheckInRequest
	if !helpers.DecodeAndValidate(w, r, &req) {
		return
	}
	att, err := c.Service.CheckIn(r.Context(), eventID, req.StudentID, presentOrDefault(req.IsPresent), req.HasGivenFeedback)
	if err != nil {
		helpers.WriteServiceError(w, r, c.Logger, err)
		return
	}
	helpers.WriteJSONSuccess(w, http.StatusOK, att)
}

// CheckInBatch godoc
// @Summary Mark attendance for many students
// @Description Admin only. Each item is processed independently and reported with status marked, not_registered or error. Only an unknown event fails the whole request. An item without is_present is recorded as absent.
// @Tags attendance
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param eventID path string true "Event ID (UUID)"
// @Param attendance body BatchCheckInRequest true "Check-ins"
// @Success 200 {object} controllers.BatchCheckInSuccessResponse
// @Failure 400 {object} helpers.APIResponse "error.code: bad_request"
// @Failure 404 {object} helpers.APIResponse "error.code: not_found"
// @Router /events/{eventID}/attendance/batch [post]
func (c *AttendanceController) CheckInBatch(w http.ResponseWriter, r *http.Request) {
	eventID, ok := helpers.PathUUID(w, r, "eventID")
	if !ok {
		return
	}
	var req BatchCheckInRequest
	if !helpers.DecodeAndValidate(w, r, &req) {
		return
	}
	marks := make([]domain.AttendanceMark, len(req.Items))
	for i, it := range req.Items {
		marks[i] = domain.AttendanceMark{StudentID: it.StudentID, IsPresent: presentOrDefault(it.IsPresent)}
	}
	results, err := c.Service.CheckInBatch(r.Context(), eventID, marks)
	if err != nil {
		helpers.WriteServiceError(w, r, c.Logger, err)
		return
	}
	resp := BatchCheckInResponse{Results: results}
	for _, res := range results {
		if res.Status == domain.AttendanceStatusMarked {
			resp.Marked++
		} else {
			resp.Failed++
		}
	}
	helpers.WriteJSONSuccess(w, http.StatusOK, resp)
}

// ListAttendance godoc
// @Summary List attendance for an event
// @Tags attendance
// @Produce json
// @Security BearerAuth
// @Param eventID path string true "Event ID (UUID)"
// @Success 200 {object} controllers.ListAttendanceSuccessResponse
// @Failure 404 {object} helpers.APIResponse "error.code: not_found"
// @Router /events/{eventID}/attendance [get]
func (c *AttendanceController) ListAttendance(w http.ResponseWriter, r *http.Request) {
	eventID, ok := helpers.PathUUID(w, r, "eventID")
	if !ok {
		return
	}
	list, err := c.Service.ListAttendance(r.Context(), eventID)
	if err != nil {
		helpers.WriteServiceError(w, r, c.Logger, err)
		return
	}
	if list == nil {
		list = []*domain.Attendance{}
	}
	helpers.WriteJSONSuccess(w, http.StatusOK, list)
}

// ListRegisteredStudents godoc
// @Summary List students registered for an event
// @Tags registrations
// @Produce json
// @Security BearerAuth
// @Param eventID path string true "Event ID (UUID)"
// @Success 200 {object} controllers.RegisteredStudentsSuccessResponse
// @Failure 404 {object} helpers.APIResponse "error.code: not_found"
// @Router /events/{eventID}/registered-students [get]
func (c *AttendanceController) ListRegisteredStudents(w http.ResponseWriter, r *http.Request) {
	eventID, ok := helpers.PathUUID(w, r, "eventID")
	if !ok {
		return
	}
	list, err := c.Service.ListRegisteredStudents(r.Context(), eventID)
	if err != nil {
		helpers.WriteServiceError(w, r, c.Logger, err)
		return
	}
	if list == nil {
		list = []*domain.RegisteredStudent{}
	}
	helpers.WriteJSONSuccess(w, http.StatusOK, list)
}
