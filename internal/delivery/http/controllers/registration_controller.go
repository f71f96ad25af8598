package controllers

import (
	"log/slog"
	"net/http"
	"strings"

	"eventory/internal/delivery/http/helpers"
	"eventory/internal/domain"
)

// RegisterRequest is the request body for POST /events/{eventID}/registrations.
// Either student_id is set, or the self-service fields identify the student within a college;
// an unknown (college_code, email) pair creates the student.
type RegisterRequest struct {
	StudentID   string `json:"student_id" validate:"omitempty,uuid"`
	CollegeCode string `json:"college_code" validate:"required_without=StudentID"`
	Email       string `json:"email" validate:"required_without=StudentID"`
	RollNo      string `json:"roll_no" validate:"required_without=StudentID,max=64"`
	Name        string `json:"name" validate:"required_without=StudentID,max=255"`
}

// Validate implements Validator.
func (rr RegisterRequest) Validate() []string {
	errs := helpers.ValidateStruct(rr)
	if rr.Email != "" && !helpers.IsEmail(rr.Email) {
		errs = append(errs, "email must be a valid email address")
	}
	return errs
}

func (rr RegisterRequest) identity() domain.StudentIdentity {
	return domain.StudentIdentity{
		StudentID:   rr.StudentID,
		CollegeCode: strings.TrimSpace(rr.CollegeCode),
		Email:       strings.TrimSpace(rr.Email),
		RollNo:      strings.TrimSpace(rr.RollNo),
		Name:        strings.TrimSpace(rr.Name),
	}
}

// RegistrationSuccessResponse is the success envelope for POST /events/{eventID}/registrations (201).
type RegistrationSuccessResponse struct {
	Data  *domain.Registration `json:"data"`
	Error *helpers.APIError    `json:"error"`
}

type RegistrationController struct {
	Logger  *slog.Logger
	Service domain.RegistrationService
}

func NewRegistrationController(logger *slog.Logger, svc domain.RegistrationService) *RegistrationController {
	return &RegistrationController{Logger: logger, Service: svc}
}

// Register godoc
// @Summary Register a student for an event
// @Description Registers by student_id, or self-service by college_code + email (+ roll_no, name). Fails when the event is full or the student is already registered. A confirmation email is sent after success.
// @Tags registrations
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param eventID path string true "Event ID (UUID)"
// @Param registration body RegisterRequest true "Student identity"
// @Success 201 {object} controllers.RegistrationSuccessResponse
// @Failure 400 {object} helpers.APIResponse "error.code: bad_request | capacity_exceeded"
// @Failure 404 {object} helpers.APIResponse "error.code: not_found (event or student)"
// @Failure 409 {object} helpers.APIResponse "error.code: duplicate_registration"
// @Router /events/{eventID}/registrations [post]
func (c *RegistrationController) Register(w http.ResponseWriter, r *http.Request) {
	eventID, ok := helpers.PathUUID(w, r, "eventID")
	if !ok {
		return
	}
	var req RegisterRequest
	if !helpers.DecodeAndValidate(w, r, &req) {
		return
	}
	reg, err := c.Service.Register(r.Context(), eventID, req.identity())
	if err != nil {
		helpers.WriteServiceError(w, r, c.Logger, err)
		return
	}
	helpers.WriteJSONSuccess(w, http.StatusCreated, reg)
}
