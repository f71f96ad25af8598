package controllers

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"eventory/internal/delivery/http/helpers"
	"eventory/internal/domain"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestReportController_EventMetrics(t *testing.T) {
	svc := &fakeReportService{metrics: &domain.EventMetrics{EventID: testEventID, TotalRegistrations: 3, AttendanceCount: 2, AttendancePercentage: 66.67, AverageFeedback: 4.5}}
	rr := httptest.NewRecorder()

	NewReportController(testLogger, svc).EventMetrics(rr, newRequest(t, http.MethodGet, "/reports/event-metrics/"+testEventID, nil, map[string]string{"eventID": testEventID}))

	require.Equal(t, http.StatusOK, rr.Code)
	var got domain.EventMetrics
	require.Nil(t, decodeEnvelope(t, rr, &got))
	assert.Equal(t, 66.67, got.AttendancePercentage)
	assert.Equal(t, 4.5, got.AverageFeedback)
}

func TestReportController_EventPopularity(t *testing.T) {
	svc := &fakeReportService{}
	rr := httptest.NewRecorder()

	NewReportController(testLogger, svc).EventPopularity(rr, newRequest(t, http.MethodGet, "/reports/event-popularity?type=FEST", nil, nil))

	require.Equal(t, http.StatusOK, rr.Code)
	assert.Equal(t, domain.EventTypeFest, svc.lastFilter.Type)
	var got []*domain.EventPopularity
	require.Nil(t, decodeEnvelope(t, rr, &got))
	assert.NotNil(t, got)
}

func TestReportController_StudentParticipationNotFound(t *testing.T) {
	svc := &fakeReportService{err: domain.ErrNotFound}
	rr := httptest.NewRecorder()

	NewReportController(testLogger, svc).StudentParticipation(rr, newRequest(t, http.MethodGet, "/reports/student-participation/"+testStudentID, nil, map[string]string{"studentID": testStudentID}))

	assert.Equal(t, http.StatusNotFound, rr.Code)
	assert.Equal(t, testStudentID, svc.lastID)
}

func TestReportController_TopStudents(t *testing.T) {
	tests := []struct {
		name       string
		query      string
		svcErr     error
		wantStatus int
		wantLimit  int
	}{
		{"default limit", "", nil, http.StatusOK, 0},
		{"explicit limit", "?limit=2", nil, http.StatusOK, 2},
		{"zero is out of range", "?limit=0", domain.ErrInvalidInput, http.StatusBadRequest, -1},
		{"not a number", "?limit=abc", nil, http.StatusBadRequest, 0},
		{"bad college", "?college_id=abc", nil, http.StatusBadRequest, 0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc := &fakeReportService{err: tt.svcErr}
			rr := httptest.NewRecorder()

			NewReportController(testLogger, svc).TopStudents(rr, newRequest(t, http.MethodGet, "/reports/top-students"+tt.query, nil, nil))

			require.Equal(t, tt.wantStatus, rr.Code)
			assert.Equal(t, tt.wantLimit, svc.lastLimit)
			if tt.wantStatus == http.StatusBadRequest {
				apiErr := decodeEnvelope(t, rr, nil)
				require.NotNil(t, apiErr)
				assert.Equal(t, helpers.ErrCodeBadRequest, apiErr.Code)
			}
		})
	}
}
