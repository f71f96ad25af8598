package controllers

import (
	"log/slog"
	"net/http"

	"eventory/internal/delivery/http/helpers"
	"eventory/internal/domain"
)

// SubmitFeedbackRequest is the request body for POST /events/{eventID}/feedback.
// The rating range is checked by the service so that it reports invalid_rating.
type SubmitFeedbackRequest struct {
	StudentID string `json:"student_id" validate:"required,uuid"`
	Rating    int    `json:"rating"`
	Comment   string `json:"comment" validate:"max=2000"`
}

// Validate implements Validator.
func (s SubmitFeedbackRequest) Validate() []string {
	return helpers.ValidateStruct(s)
}

// FeedbackSuccessResponse is the success envelope for POST /events/{eventID}/feedback (201).
type FeedbackSuccessResponse struct {
	Data  *domain.Feedback  `json:"data"`
	Error *helpers.APIError `json:"error"`
}

type FeedbackController struct {
	Logger  *slog.Logger
	Service domain.FeedbackService
}

func NewFeedbackController(logger *slog.Logger, svc domain.FeedbackService) *FeedbackController {
	return &FeedbackController{Logger: logger, Service: svc}
}

// Submit godoc
// @Summary Submit feedback for an event
// @Description Student only. One feedback per student per event; rating is 1 to 5. Marks the student's attendance row as having given feedback when one exists. The student is identified by student_id in the body, not by the token, so any student token may submit on behalf of that student id.
// @Tags feedback
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param eventID path string true "Event ID (UUID)"
// @Param feedback body SubmitFeedbackRequest true "Feedback"
// @Success 201 {object} controllers.FeedbackSuccessResponse
// @Failure 400 {object} helpers.APIResponse "error.code: bad_request | invalid_rating | duplicate_feedback"
// @Failure 403 {object} helpers.APIResponse "error.code: forbidden"
// @Failure 404 {object} helpers.APIResponse "error.code: not_found"
// @Router /events/{eventID}/feedback [post]
func (c *FeedbackController) Submit(w http.ResponseWriter, r *http.Request) {
	eventID, ok := helpers.PathUUID(w, r, "eventID")
	if !ok {
		return
	}
	var req SubmitFeedbackRequest
	if !helpers.DecodeAndValidate(w, r, &req) {
		return
	}
	fb, err := c.Service.Submit(r.Context(), eventID, req.StudentID, req.Rating, req.Comment)
	if err != nil {
		helpers.WriteServiceError(w, r, c.Logger, err)
		return
	}
	helpers.WriteJSONSuccess(w, http.StatusCreated, fb)
}
