package controllers

import (
	"log/slog"
	"net/http"
	"strings"
	"time"

	"eventory/internal/delivery/http/helpers"
	"eventory/internal/domain"
)

// CreateStudentRequest is the request body for POST /students.
type CreateStudentRequest struct {
	CollegeID string `json:"college_id" validate:"required,uuid"`
	FullName  string `json:"full_name" validate:"required,max=255"`
	Email     string `json:"email" validate:"required,email"`
	RollNo    string `json:"roll_no" validate:"max=64"`
}

// Validate implements Validator.
func (c CreateStudentRequest) Validate() []string {
	return helpers.ValidateStruct(c)
}

// UpdateStudentRequest is the request body for PATCH /students/{studentID}.
type UpdateStudentRequest struct {
	FullName *string `json:"full_name" validate:"omitempty,min=1,max=255"`
	Email    *string `json:"email" validate:"omitempty,email"`
	RollNo   *string `json:"roll_no" validate:"omitempty,max=64"`
}

// Validate implements Validator.
func (u UpdateStudentRequest) Validate() []string {
	return helpers.ValidateStruct(u)
}

// StudentSuccessResponse is the success envelope for endpoints returning a single student.
type StudentSuccessResponse struct {
	Data  *domain.Student   `json:"data"`
	Error *helpers.APIError `json:"error"`
}

// ListStudentsResponse is the data payload for GET /students.
type ListStudentsResponse struct {
	Items      []*domain.Student      `json:"items"`
	Pagination helpers.PaginationMeta `json:"pagination"`
}

// ListStudentsSuccessResponse is the success envelope for GET /students.
type ListStudentsSuccessResponse struct {
	Data  ListStudentsResponse `json:"data"`
	Error *helpers.APIError    `json:"error"`
}

type StudentController struct {
	Logger  *slog.Logger
	Service domain.StudentService
}

func NewStudentController(logger *slog.Logger, svc domain.StudentService) *StudentController {
	return &StudentController{Logger: logger, Service: svc}
}

// CreateStudent godoc
// @Summary Create a student
// @Description Admin only. Email is unique within the college.
// @Tags students
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param student body CreateStudentRequest true "Student data"
// @Success 201 {object} controllers.StudentSuccessResponse
// @Failure 400 {object} helpers.APIResponse "error.code: bad_request (validation or unknown college)"
// @Failure 403 {object} helpers.APIResponse "error.code: forbidden"
// @Failure 409 {object} helpers.APIResponse "error.code: conflict (email taken in college)"
// @Router /students [post]
func (c *StudentController) CreateStudent(w http.ResponseWriter, r *http.Request) {
	var req CreateStudentRequest
	if !helpers.DecodeAndValidate(w, r, &req) {
		return
	}
	now := time.Now()
	student := domain.NewStudent(req.CollegeID, strings.TrimSpace(req.FullName), strings.TrimSpace(req.Email), req.RollNo, now, now)
	if err := c.Service.CreateStudent(r.Context(), student); err != nil {
		helpers.WriteServiceError(w, r, c.Logger, err)
		return
	}
	helpers.WriteJSONSuccess(w, http.StatusCreated, student)
}

// GetStudent godoc
// @Summary Get a student
// @Tags students
// @Produce json
// @Security BearerAuth
// @Param studentID path string true "Student ID (UUID)"
// @Success 200 {object} controllers.StudentSuccessResponse
// @Failure 404 {object} helpers.APIResponse "error.code: not_found"
// @Router /students/{studentID} [get]
func (c *StudentController) GetStudent(w http.ResponseWriter, r *http.Request) {
	id, ok := helpers.PathUUID(w, r, "studentID")
	if !ok {
		return
	}
	student, err := c.Service.GetStudent(r.Context(), id)
	if err != nil {
		helpers.WriteServiceError(w, r, c.Logger, err)
		return
	}
	helpers.WriteJSONSuccess(w, http.StatusOK, student)
}

// ListStudents godoc
// @Summary List students
// @Tags students
// @Produce json
// @Security BearerAuth
// @Param college_id query string false "Filter by college (UUID)"
// @Param page query int false "Page (default 1)"
// @Param page_size query int false "Page size (default 20, max 100)"
// @Success 200 {object} controllers.ListStudentsSuccessResponse
// @Failure 400 {object} helpers.APIResponse "error.code: bad_request"
// @Router /students [get]
func (c *StudentController) ListStudents(w http.ResponseWriter, r *http.Request) {
	collegeID, ok := helpers.QueryUUID(w, r, "college_id")
	if !ok {
		return
	}
	params, ok := helpers.ParsePagination(w, r)
	if !ok {
		return
	}
	list, total, err := c.Service.ListStudents(r.Context(), domain.StudentFilter{CollegeID: collegeID}, params)
	if err != nil {
		helpers.WriteServiceError(w, r, c.Logger, err)
		return
	}
	if list == nil {
		list = []*domain.Student{}
	}
	meta := helpers.NewPaginationMeta(params, total)
	helpers.WriteJSONSuccess(w, http.StatusOK, ListStudentsResponse{Items: list, Pagination: meta})
}

// UpdateStudent godoc
// @Summary Update a student
// @Description Admin only. Partial update; the college cannot be changed.
// @Tags students
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param studentID path string true "Student ID (UUID)"
// @Param student body UpdateStudentRequest true "Fields to change"
// @Success 200 {object} controllers.StudentSuccessResponse
// @Failure 400 {object} helpers.APIResponse "error.code: bad_request"
// @Failure 404 {object} helpers.APIResponse "error.code: not_found"
// @Failure 409 {object} helpers.APIResponse "error.code: conflict"
// @Router /students/{studentID} [patch]
func (c *StudentController) UpdateStudent(w http.ResponseWriter, r *http.Request) {
	id, ok := helpers.PathUUID(w, r, "studentID")
	if !ok {
		return
	}
	var req UpdateStudentRequest
	if !helpers.DecodeAndValidate(w, r, &req) {
		return
	}
	student, err := c.Service.UpdateStudent(r.Context(), id, domain.StudentUpdate{
		FullName: req.FullName,
		Email:    req.Email,
		RollNo:   req.RollNo,
	})
	if err != nil {
		helpers.WriteServiceError(w, r, c.Logger, err)
		return
	}
	helpers.WriteJSONSuccess(w, http.StatusOK, student)
}

// DeleteStudent godoc
// @Summary Delete a student
// @Description Admin only. Cascades to registrations, attendance and feedback.
// @Tags students
// @Produce json
// @Security BearerAuth
// @Param studentID path string true "Student ID (UUID)"
// @Success 200 {object} controllers.StatusSuccessResponse
// @Failure 404 {object} helpers.APIResponse "error.code: not_found"
// @Router /students/{studentID} [delete]
func (c *StudentController) DeleteStudent(w http.ResponseWriter, r *http.Request) {
	id, ok := helpers.PathUUID(w, r, "studentID")
	if !ok {
		return
	}
	if err := c.Service.DeleteStudent(r.Context(), id); err != nil {
		helpers.WriteServiceError(w, r, c.Logger, err)
		return
	}
	helpers.WriteJSONSuccess(w, http.StatusOK, deletedResponse)
}
