package controllers

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"

	"eventory/internal/delivery/http/helpers"
	"eventory/internal/domain"

	"github.com/stretchr/testify/require"
)

// testLogger is a no-op logger for controller tests so we don't assert on log output.
var testLogger = slog.New(slog.NewTextHandler(io.Discard, &slog.HandlerOptions{Level: slog.LevelError}))

const (
	testEventID   = "0b6f3c1e-5a7d-4e2b-9c8f-1d2e3f4a5b6c"
	testStudentID = "7c1d2e3f-4a5b-4c6d-8e9f-0a1b2c3d4e5f"
	testCollegeID = "3e4f5a6b-7c8d-4e9f-a0b1-c2d3e4f5a6b7"
)

// newRequest builds a request with an optional JSON body and path values.
func newRequest(t *testing.T, method, target string, body any, pathValues map[string]string) *http.Request {
	t.Helper()
	var r io.Reader
	switch b := body.(type) {
	case nil:
	case string:
		r = bytes.NewBufferString(b)
	default:
		buf, err := json.Marshal(b)
		require.NoError(t, err)
		r = bytes.NewReader(buf)
	}
	req := httptest.NewRequest(method, target, r)
	for k, v := range pathValues {
		req.SetPathValue(k, v)
	}
	return req
}

// decodeEnvelope decodes the response envelope, unmarshalling data into dest when non-nil.
func decodeEnvelope(t *testing.T, rr *httptest.ResponseRecorder, dest any) *helpers.APIError {
	t.Helper()
	var env struct {
		Data  json.RawMessage   `json:"data"`
		Error *helpers.APIError `json:"error"`
	}
	require.NoError(t, json.NewDecoder(rr.Body).Decode(&env))
	if dest != nil && env.Error == nil {
		require.NoError(t, json.Unmarshal(env.Data, dest))
	}
	return env.Error
}

// fakeCollegeService implements domain.CollegeService.
type fakeCollegeService struct {
	err        error
	college    *domain.College
	list       []*domain.College
	total      int
	lastID     string
	lastUpdate domain.CollegeUpdate
	lastParams domain.PaginationParams
	created    *domain.College
}

func (f *fakeCollegeService) CreateCollege(_ context.Context, c *domain.College) error {
	f.created = c
	if f.err != nil {
		return f.err
	}
	c.ID = testCollegeID
	return nil
}

func (f *fakeCollegeService) GetCollege(_ context.Context, id string) (*domain.College, error) {
	f.lastID = id
	return f.college, f.err
}

func (f *fakeCollegeService) ListColleges(_ context.Context, p domain.PaginationParams) ([]*domain.College, int, error) {
	f.lastParams = p
	return f.list, f.total, f.err
}

func (f *fakeCollegeService) UpdateCollege(_ context.Context, id string, upd domain.CollegeUpdate) (*domain.College, error) {
	f.lastID = id
	f.lastUpdate = upd
	return f.college, f.err
}

func (f *fakeCollegeService) DeleteCollege(_ context.Context, id string) error {
	f.lastID = id
	return f.err
}

// fakeStudentService implements domain.StudentService.
type fakeStudentService struct {
	err        error
	student    *domain.Student
	list       []*domain.Student
	total      int
	lastID     string
	lastFilter domain.StudentFilter
	lastUpdate domain.StudentUpdate
	created    *domain.Student
}

func (f *fakeStudentService) CreateStudent(_ context.Context, s *domain.Student) error {
	f.created = s
	if f.err != nil {
		return f.err
	}
	s.ID = testStudentID
	return nil
}

func (f *fakeStudentService) GetStudent(_ context.Context, id string) (*domain.Student, error) {
	f.lastID = id
	return f.student, f.err
}

func (f *fakeStudentService) ListStudents(_ context.Context, filter domain.StudentFilter, _ domain.PaginationParams) ([]*domain.Student, int, error) {
	f.lastFilter = filter
	return f.list, f.total, f.err
}

func (f *fakeStudentService) UpdateStudent(_ context.Context, id string, upd domain.StudentUpdate) (*domain.Student, error) {
	f.lastID = id
	f.lastUpdate = upd
	return f.student, f.err
}

func (f *fakeStudentService) DeleteStudent(_ context.Context, id string) error {
	f.lastID = id
	return f.err
}

// fakeEventService implements domain.EventService.
type fakeEventService struct {
	err        error
	event      *domain.Event
	details    *domain.EventDetails
	list       []*domain.EventDetails
	total      int
	lastID     string
	lastFilter domain.EventFilter
	lastUpdate domain.EventUpdate
	created    *domain.Event
}

func (f *fakeEventService) CreateEvent(_ context.Context, e *domain.Event) error {
	f.created = e
	if f.err != nil {
		return f.err
	}
	e.ID = testEventID
	return nil
}

func (f *fakeEventService) GetEvent(_ context.Context, id string) (*domain.EventDetails, error) {
	f.lastID = id
	return f.details, f.err
}

func (f *fakeEventService) ListEvents(_ context.Context, filter domain.EventFilter, _ domain.PaginationParams) ([]*domain.EventDetails, int, error) {
	f.lastFilter = filter
	return f.list, f.total, f.err
}

func (f *fakeEventService) UpdateEvent(_ context.Context, id string, upd domain.EventUpdate) (*domain.Event, error) {
	f.lastID = id
	f.lastUpdate = upd
	return f.event, f.err
}

func (f *fakeEventService) DeleteEvent(_ context.Context, id string) error {
	f.lastID = id
	return f.err
}

// fakeRegistrationService implements domain.RegistrationService.
type fakeRegistrationService struct {
	err          error
	lastEventID  string
	lastIdentity domain.StudentIdentity
}

func (f *fakeRegistrationService) Register(_ context.Context, eventID string, identity domain.StudentIdentity) (*domain.Registration, error) {
	f.lastEventID = eventID
	f.lastIdentity = identity
	if f.err != nil {
		return nil, f.err
	}
	return &domain.Registration{ID: "reg-1", EventID: eventID, StudentID: testStudentID, CollegeRegisteredCount: 1}, nil
}

// fakeAttendanceService implements domain.AttendanceService.
type fakeAttendanceService struct {
	err             error
	batchResults    []*domain.AttendanceMarkResult
	attendance      []*domain.Attendance
	registered      []*domain.RegisteredStudent
	lastEventID     string
	lastStudentID   string
	lastIsPresent   bool
	lastHasFeedback bool
	lastMarks       []domain.AttendanceMark
}

func (f *fakeAttendanceService) CheckIn(_ context.Context, eventID, studentID string, isPresent, hasGivenFeedback bool) (*domain.Attendance, error) {
	f.lastEventID, f.lastStudentID = eventID, studentID
	f.lastIsPresent, f.lastHasFeedback = isPresent, hasGivenFeedback
	if f.err != nil {
		return nil, f.err
	}
	return &domain.Attendance{ID: "att-1", EventID: eventID, StudentID: studentID, IsPresent: isPresent, HasGivenFeedback: hasGivenFeedback}, nil
}

func (f *fakeAttendanceService) CheckInBatch(_ context.Context, eventID string, marks []domain.AttendanceMark) ([]*domain.AttendanceMarkResult, error) {
	f.lastEventID = eventID
	f.lastMarks = marks
	return f.batchResults, f.err
}

func (f *fakeAttendanceService) ListAttendance(_ context.Context, eventID string) ([]*domain.Attendance, error) {
	f.lastEventID = eventID
	return f.attendance, f.err
}

func (f *fakeAttendanceService) ListRegisteredStudents(_ context.Context, eventID string) ([]*domain.RegisteredStudent, error) {
	f.lastEventID = eventID
	return f.registered, f.err
}

// fakeFeedbackService implements domain.FeedbackService.
type fakeFeedbackService struct {
	err           error
	lastEventID   string
	lastStudentID string
	lastRating    int
	lastComment   string
}

func (f *fakeFeedbackService) Submit(_ context.Context, eventID, studentID string, rating int, comment string) (*domain.Feedback, error) {
	f.lastEventID, f.lastStudentID, f.lastRating, f.lastComment = eventID, studentID, rating, comment
	if f.err != nil {
		return nil, f.err
	}
	return &domain.Feedback{ID: "fb-1", EventID: eventID, StudentID: studentID, Rating: rating, Comment: comment}, nil
}

// fakeReportService implements domain.ReportService.
type fakeReportService struct {
	err           error
	metrics       *domain.EventMetrics
	popularity    []*domain.EventPopularity
	participation *domain.StudentParticipation
	top           []*domain.TopStudent
	lastFilter    domain.EventFilter
	lastLimit     int
	lastCollegeID string
	lastID        string
}

func (f *fakeReportService) EventMetrics(_ context.Context, eventID string) (*domain.EventMetrics, error) {
	f.lastID = eventID
	return f.metrics, f.err
}

func (f *fakeReportService) EventPopularity(_ context.Context, filter domain.EventFilter) ([]*domain.EventPopularity, error) {
	f.lastFilter = filter
	return f.popularity, f.err
}

func (f *fakeReportService) StudentParticipation(_ context.Context, studentID string) (*domain.StudentParticipation, error) {
	f.lastID = studentID
	return f.participation, f.err
}

func (f *fakeReportService) TopStudents(_ context.Context, limit int, collegeID string) ([]*domain.TopStudent, error) {
	f.lastLimit, f.lastCollegeID = limit, collegeID
	return f.top, f.err
}
