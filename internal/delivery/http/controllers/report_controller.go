package controllers

import (
	"log/slog"
	"net/http"
	"strconv"

	"eventory/internal/delivery/http/helpers"
	"eventory/internal/domain"
)

// EventMetricsSuccessResponse is the success envelope for GET /reports/event-metrics/{eventID}.
type EventMetricsSuccessResponse struct {
	Data  *domain.EventMetrics `json:"data"`
	Error *helpers.APIError    `json:"error"`
}

// EventPopularitySuccessResponse is the success envelope for GET /reports/event-popularity.
type EventPopularitySuccessResponse struct {
	Data  []*domain.EventPopularity `json:"data"`
	Error *helpers.APIError         `json:"error"`
}

// StudentParticipationSuccessResponse is the success envelope for GET /reports/student-participation/{studentID}.
type StudentParticipationSuccessResponse struct {
	Data  *domain.StudentParticipation `json:"data"`
	Error *helpers.APIError            `json:"error"`
}

// TopStudentsSuccessResponse is the success envelope for GET /reports/top-students.
type TopStudentsSuccessResponse struct {
	Data  []*domain.TopStudent `json:"data"`
	Error *helpers.APIError    `json:"error"`
}

type ReportController struct {
	Logger  *slog.Logger
	Service domain.ReportService
}

func NewReportController(logger *slog.Logger, svc domain.ReportService) *ReportController {
	return &ReportController{Logger: logger, Service: svc}
}

// EventMetrics godoc
// @Summary Registration, attendance and feedback metrics for one event
// @Description attendance_percentage is attendance rows over registrations (0 with no registrations); values are rounded to 2 decimals.
// @Tags reports
// @Produce json
// @Security BearerAuth
// @Param eventID path string true "Event ID (UUID)"
// @Success 200 {object} controllers.EventMetricsSuccessResponse
// @Failure 404 {object} helpers.APIResponse "error.code: not_found"
// @Router /reports/event-metrics/{eventID} [get]
func (c *ReportController) EventMetrics(w http.ResponseWriter, r *http.Request) {
	eventID, ok := helpers.PathUUID(w, r, "eventID")
	if !ok {
		return
	}
	m, err := c.Service.EventMetrics(r.Context(), eventID)
	if err != nil {
		helpers.WriteServiceError(w, r, c.Logger, err)
		return
	}
	helpers.WriteJSONSuccess(w, http.StatusOK, m)
}

// EventPopularity godoc
// @Summary Events ranked by registrations
// @Tags reports
// @Produce json
// @Security BearerAuth
// @Param college_id query string false "Filter by college (UUID)"
// @Param type query string false "Filter by type" Enums(WORKSHOP, SEMINAR, HACKATHON, FEST, TECHTALK)
// @Success 200 {object} controllers.EventPopularitySuccessResponse
// @Failure 400 {object} helpers.APIResponse "error.code: bad_request"
// @Router /reports/event-popularity [get]
func (c *ReportController) EventPopularity(w http.ResponseWriter, r *http.Request) {
	filter, ok := parseEventFilter(w, r)
	if !ok {
		return
	}
	list, err := c.Service.EventPopularity(r.Context(), filter)
	if err != nil {
		helpers.WriteServiceError(w, r, c.Logger, err)
		return
	}
	if list == nil {
		list = []*domain.EventPopularity{}
	}
	helpers.WriteJSONSuccess(w, http.StatusOK, list)
}

// StudentParticipation godoc
// @Summary Registrations and attended events for one student
// @Tags reports
// @Produce json
// @Security BearerAuth
// @Param studentID path string true "Student ID (UUID)"
// @Success 200 {object} controllers.StudentParticipationSuccessResponse
// @Failure 404 {object} helpers.APIResponse "error.code: not_found"
// @Router /reports/student-participation/{studentID} [get]
func (c *ReportController) StudentParticipation(w http.ResponseWriter, r *http.Request) {
	studentID, ok := helpers.PathUUID(w, r, "studentID")
	if !ok {
		return
	}
	p, err := c.Service.StudentParticipation(r.Context(), studentID)
	if err != nil {
		helpers.WriteServiceError(w, r, c.Logger, err)
		return
	}
	helpers.WriteJSONSuccess(w, http.StatusOK, p)
}

// TopStudents godoc
// @Summary Students ranked by distinct events attended
// @Description Ties are broken by name ascending.
// @Tags reports
// @Produce json
// @Security BearerAuth
// @Param limit query int false "Number of students (default 3, max 100)"
// @Param college_id query string false "Filter by college (UUID)"
// @Success 200 {object} controllers.TopStudentsSuccessResponse
// @Failure 400 {object} helpers.APIResponse "error.code: bad_request"
// @Router /reports/top-students [get]
func (c *ReportController) TopStudents(w http.ResponseWriter, r *http.Request) {
	collegeID, ok := helpers.QueryUUID(w, r, "college_id")
	if !ok {
		return
	}
	limit := 0
	if s := r.URL.Query().Get("limit"); s != "" {
		v, err := strconv.Atoi(s)
		if err != nil {
			helpers.WriteJSONError(w, http.StatusBadRequest, helpers.ErrCodeBadRequest, "limit must be an integer")
			return
		}
		// 0 means default in the service; an explicit 0 is out of range.
		if v == 0 {
			v = -1
		}
		limit = v
	}
	list, err := c.Service.TopStudents(r.Context(), limit, collegeID)
	if err != nil {
		helpers.WriteServiceError(w, r, c.Logger, err)
		return
	}
	if list == nil {
		list = []*domain.TopStudent{}
	}
	helpers.WriteJSONSuccess(w, http.StatusOK, list)
}
