package controllers

import (
	"log/slog"
	"net/http"
	"time"

	"eventory/internal/delivery/http/helpers"
	"eventory/internal/domain"
)

// CreateCollegeRequest is the request body for POST /colleges.
type CreateCollegeRequest struct {
	Name          string `json:"name" validate:"required,max=255"`
	Code          string `json:"code" validate:"required,max=50"`
	Location      string `json:"location" validate:"max=255"`
	TotalStudents int    `json:"total_students" validate:"gte=0"`
}

// Validate implements Validator.
func (c CreateCollegeRequest) Validate() []string {
	return helpers.ValidateStruct(c)
}

// UpdateCollegeRequest is the request body for PATCH /colleges/{collegeID}. The code is immutable.
type UpdateCollegeRequest struct {
	Name          *string `json:"name" validate:"omitempty,min=1,max=255"`
	Location      *string `json:"location" validate:"omitempty,max=255"`
	TotalStudents *int    `json:"total_students" validate:"omitempty,gte=0"`
}

// Validate implements Validator.
func (u UpdateCollegeRequest) Validate() []string {
	return helpers.ValidateStruct(u)
}

// CollegeSuccessResponse is the success envelope for endpoints returning a single college.
type CollegeSuccessResponse struct {
	Data  *domain.College   `json:"data"`
	Error *helpers.APIError `json:"error"`
}

// ListCollegesResponse is the data payload for GET /colleges.
type ListCollegesResponse struct {
	Items      []*domain.College      `json:"items"`
	Pagination helpers.PaginationMeta `json:"pagination"`
}

// ListCollegesSuccessResponse is the success envelope for GET /colleges.
type ListCollegesSuccessResponse struct {
	Data  ListCollegesResponse `json:"data"`
	Error *helpers.APIError    `json:"error"`
}

type CollegeController struct {
	Logger  *slog.Logger
	Service domain.CollegeService
}

func NewCollegeController(logger *slog.Logger, svc domain.CollegeService) *CollegeController {
	return &CollegeController{Logger: logger, Service: svc}
}

// CreateCollege godoc
// @Summary Create a college
// @Description Admin only. The code is a short slug (letters, digits, dashes) used by students for self-service registration.
// @Tags colleges
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param college body CreateCollegeRequest true "College data"
// @Success 201 {object} controllers.CollegeSuccessResponse
// @Failure 400 {object} helpers.APIResponse "error.code: bad_request"
// @Failure 401 {object} helpers.APIResponse "error.code: unauthorized"
// @Failure 403 {object} helpers.APIResponse "error.code: forbidden"
// @Failure 409 {object} helpers.APIResponse "error.code: conflict (name or code taken)"
// @Router /colleges [post]
func (c *CollegeController) CreateCollege(w http.ResponseWriter, r *http.Request) {
	var req CreateCollegeRequest
	if !helpers.DecodeAndValidate(w, r, &req) {
		return
	}
	now := time.Now()
	college := domain.NewCollege(req.Name, req.Code, req.Location, req.TotalStudents, now, now)
	if err := c.Service.CreateCollege(r.Context(), college); err != nil {
		helpers.WriteServiceError(w, r, c.Logger, err)
		return
	}
	helpers.WriteJSONSuccess(w, http.StatusCreated, college)
}

// GetCollege godoc
// @Summary Get a college
// @Tags colleges
// @Produce json
// @Security BearerAuth
// @Param collegeID path string true "College ID (UUID)"
// @Success 200 {object} controllers.CollegeSuccessResponse
// @Failure 400 {object} helpers.APIResponse "error.code: bad_request"
// @Failure 404 {object} helpers.APIResponse "error.code: not_found"
// @Router /colleges/{collegeID} [get]
func (c *CollegeController) GetCollege(w http.ResponseWriter, r *http.Request) {
	id, ok := helpers.PathUUID(w, r, "collegeID")
	if !ok {
		return
	}
	college, err := c.Service.GetCollege(r.Context(), id)
	if err != nil {
		helpers.WriteServiceError(w, r, c.Logger, err)
		return
	}
	helpers.WriteJSONSuccess(w, http.StatusOK, college)
}

// ListColleges godoc
// @Summary List colleges
// @Description Paginated, ordered by name.
// @Tags colleges
// @Produce json
// @Security BearerAuth
// @Param page query int false "Page (default 1)"
// @Param page_size query int false "Page size (default 20, max 100)"
// @Success 200 {object} controllers.ListCollegesSuccessResponse
// @Failure 400 {object} helpers.APIResponse "error.code: bad_request"
// @Failure 401 {object} helpers.APIResponse "error.code: unauthorized"
// @Router /colleges [get]
func (c *CollegeController) ListColleges(w http.ResponseWriter, r *http.Request) {
	params, ok := helpers.ParsePagination(w, r)
	if !ok {
		return
	}
	list, total, err := c.Service.ListColleges(r.Context(), params)
	if err != nil {
		helpers.WriteServiceError(w, r, c.Logger, err)
		return
	}
	if list == nil {
		list = []*domain.College{}
	}
	meta := helpers.NewPaginationMeta(params, total)
	helpers.WriteJSONSuccess(w, http.StatusOK, ListCollegesResponse{Items: list, Pagination: meta})
}

// UpdateCollege godoc
// @Summary Update a college
// @Description Admin only. Partial update; omitted fields are unchanged.
// @Tags colleges
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param collegeID path string true "College ID (UUID)"
// @Param college body UpdateCollegeRequest true "Fields to change"
// @Success 200 {object} controllers.CollegeSuccessResponse
// @Failure 400 {object} helpers.APIResponse "error.code: bad_request"
// @Failure 403 {object} helpers.APIResponse "error.code: forbidden"
// @Failure 404 {object} helpers.APIResponse "error.code: not_found"
// @Failure 409 {object} helpers.APIResponse "error.code: conflict"
// @Router /colleges/{collegeID} [patch]
func (c *CollegeController) UpdateCollege(w http.ResponseWriter, r *http.Request) {
	id, ok := helpers.PathUUID(w, r, "collegeID")
	if !ok {
		return
	}
	var req UpdateCollegeRequest
	if !helpers.DecodeAndValidate(w, r, &req) {
		return
	}
	college, err := c.Service.UpdateCollege(r.Context(), id, domain.CollegeUpdate{
		Name:          req.Name,
		Location:      req.Location,
		TotalStudents: req.TotalStudents,
	})
	if err != nil {
		helpers.WriteServiceError(w, r, c.Logger, err)
		return
	}
	helpers.WriteJSONSuccess(w, http.StatusOK, college)
}

// DeleteCollege godoc
// @Summary Delete a college
// @Description Admin only. Cascades to the college's students and events.
// @Tags colleges
// @Produce json
// @Security BearerAuth
// @Param collegeID path string true "College ID (UUID)"
// @Success 200 {object} controllers.StatusSuccessResponse
// @Failure 403 {object} helpers.APIResponse "error.code: forbidden"
// @Failure 404 {object} helpers.APIResponse "error.code: not_found"
// @Router /colleges/{collegeID} [delete]
func (c *CollegeController) DeleteCollege(w http.ResponseWriter, r *http.Request) {
	id, ok := helpers.PathUUID(w, r, "collegeID")
	if !ok {
		return
	}
	if err := c.Service.DeleteCollege(r.Context(), id); err != nil {
		helpers.WriteServiceError(w, r, c.Logger, err)
		return
	}
	helpers.WriteJSONSuccess(w, http.StatusOK, deletedResponse)
}
