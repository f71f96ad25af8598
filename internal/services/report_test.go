package services

import (
	"context"
	"testing"

	"eventory/internal/domain"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fakeReportRepo returns canned aggregates and records the arguments it was called with.
type fakeReportRepo struct {
	stats      map[string]domain.EventStats
	filter     domain.EventFilter
	attended   map[string]int
	names      map[string]string
	gotLimit   int
	gotCollege string
}

func (f *fakeReportRepo) EventStats(ctx context.Context, eventID string) (domain.EventStats, error) {
	st, ok := f.stats[eventID]
	if !ok {
		return domain.EventStats{}, domain.ErrNotFound
	}
	return st, nil
}

func (f *fakeReportRepo) EventPopularity(ctx context.Context, filter domain.EventFilter) ([]*domain.EventPopularity, error) {
	f.filter = filter
	return []*domain.EventPopularity{}, nil
}

func (f *fakeReportRepo) StudentParticipation(ctx context.Context, studentID string) (*domain.StudentParticipation, error) {
	if studentID != "st-1" {
		return nil, domain.ErrNotFound
	}
	return &domain.StudentParticipation{StudentID: studentID, Registrations: 4, Attended: 3}, nil
}

// TopStudents ranks the canned attendance counts the same way the SQL does.
func (f *fakeReportRepo) TopStudents(ctx context.Context, limit int, collegeID string) ([]*domain.TopStudent, error) {
	f.gotLimit, f.gotCollege = limit, collegeID
	var out []*domain.TopStudent
	for id, n := range f.attended {
		out = append(out, &domain.TopStudent{StudentID: id, FullName: f.names[id], EventsAttended: n})
	}
	for i := 0; i < len(out); i++ {
		for j := i + 1; j < len(out); j++ {
			a, b := out[i], out[j]
			if b.EventsAttended > a.EventsAttended || (b.EventsAttended == a.EventsAttended && b.FullName < a.FullName) {
				out[i], out[j] = b, a
			}
		}
	}
	if len(out) > limit {
		out = out[:limit]
	}
	return out, nil
}

func TestReportService_EventMetrics(t *testing.T) {
	repo := &fakeReportRepo{stats: map[string]domain.EventStats{
		"ev-1":    {Registrations: 10, Attendances: 7, AvgRating: 4.0},
		"ev-3":    {Registrations: 3, Attendances: 1, AvgRating: 11.0 / 3},
		"ev-none": {},
	}}
	svc := NewReportService(repo, testTimeout)

	m, err := svc.EventMetrics(context.Background(), "ev-1")
	require.NoError(t, err)
	assert.Equal(t, &domain.EventMetrics{EventID: "ev-1", TotalRegistrations: 10, AttendanceCount: 7, AttendancePercentage: 70.00, AverageFeedback: 4.00}, m)

	m, err = svc.EventMetrics(context.Background(), "ev-3")
	require.NoError(t, err)
	assert.Equal(t, 33.33, m.AttendancePercentage)
	assert.Equal(t, 3.67, m.AverageFeedback)

	m, err = svc.EventMetrics(context.Background(), "ev-none")
	require.NoError(t, err)
	assert.Equal(t, 0.0, m.AttendancePercentage)
	assert.Equal(t, 0.0, m.AverageFeedback)

	_, err = svc.EventMetrics(context.Background(), "ev-missing")
	require.ErrorIs(t, err, domain.ErrNotFound)
}

func TestReportService_EventPopularity_NormalizesType(t *testing.T) {
	repo := &fakeReportRepo{}
	svc := NewReportService(repo, testTimeout)

	_, err := svc.EventPopularity(context.Background(), domain.EventFilter{CollegeID: "col-1", Type: "hackathon"})
	require.NoError(t, err)
	assert.Equal(t, domain.EventFilter{CollegeID: "col-1", Type: domain.EventTypeHackathon}, repo.filter)

	_, err = svc.EventPopularity(context.Background(), domain.EventFilter{Type: "party"})
	require.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestReportService_StudentParticipation(t *testing.T) {
	svc := NewReportService(&fakeReportRepo{}, testTimeout)

	p, err := svc.StudentParticipation(context.Background(), "st-1")
	require.NoError(t, err)
	assert.Equal(t, 4, p.Registrations)
	assert.Equal(t, 3, p.Attended)

	_, err = svc.StudentParticipation(context.Background(), "st-missing")
	require.ErrorIs(t, err, domain.ErrNotFound)
}

func TestReportService_TopStudents(t *testing.T) {
	repo := &fakeReportRepo{
		attended: map[string]int{"st-a": 3, "st-b": 3, "st-c": 1},
		names:    map[string]string{"st-a": "A", "st-b": "B", "st-c": "C"},
	}
	svc := NewReportService(repo, testTimeout)

	top, err := svc.TopStudents(context.Background(), 2, "")
	require.NoError(t, err)
	require.Len(t, top, 2)
	assert.Equal(t, "A", top[0].FullName)
	assert.Equal(t, "B", top[1].FullName)

	_, err = svc.TopStudents(context.Background(), 0, "col-1")
	require.NoError(t, err)
	assert.Equal(t, domain.DefaultTopStudentsLimit, repo.gotLimit)
	assert.Equal(t, "col-1", repo.gotCollege)

	for _, bad := range []int{-1, domain.MaxTopStudentsLimit + 1} {
		_, err = svc.TopStudents(context.Background(), bad, "")
		require.ErrorIs(t, err, domain.ErrInvalidInput)
	}
}
