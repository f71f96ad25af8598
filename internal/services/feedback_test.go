package services

import (
	"context"
	"errors"
	"testing"

	"eventory/internal/domain"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newFeedbackFixture() (*memStore, domain.FeedbackService, *domain.Event, *domain.Student) {
	m := newMemStore()
	svc := NewFeedbackService(memTx{m}, memEvents{m}, memStudents{m}, memFeedbacks{m}, memAttendances{m}, domain.NopRecorder{}, testTimeout)
	col := m.addCollege("Tech College", "tc01")
	ev := m.addEvent(col.ID, "Go Workshop", 10)
	st := m.addStudent(col.ID, "Asha", "asha@tc.edu")
	return m, svc, ev, st
}

func TestFeedbackService_Submit_RatingBounds(t *testing.T) {
	tests := []struct {
		rating  int
		wantErr error
	}{
		{0, domain.ErrInvalidRating},
		{6, domain.ErrInvalidRating},
		{-3, domain.ErrInvalidRating},
		{1, nil},
		{5, nil},
	}
	for _, tt := range tests {
		_, svc, ev, st := newFeedbackFixture()
		fb, err := svc.Submit(context.Background(), ev.ID, st.ID, tt.rating, "")
		if tt.wantErr != nil {
			require.ErrorIs(t, err, tt.wantErr, "rating %d", tt.rating)
			continue
		}
		require.NoError(t, err, "rating %d", tt.rating)
		assert.Equal(t, tt.rating, fb.Rating)
	}
}

func TestFeedbackService_Submit_Duplicate(t *testing.T) {
	m, svc, ev, st := newFeedbackFixture()

	_, err := svc.Submit(context.Background(), ev.ID, st.ID, 4, "good")
	require.NoError(t, err)
	_, err = svc.Submit(context.Background(), ev.ID, st.ID, 2, "changed my mind")
	require.ErrorIs(t, err, domain.ErrDuplicateFeedback)
	require.Len(t, m.feedbacks, 1)
	assert.Equal(t, 4, m.feedbacks[0].Rating)
}

func TestFeedbackService_Submit_FlagsAttendance(t *testing.T) {
	m, svc, ev, st := newFeedbackFixture()
	m.attendances = append(m.attendances, domain.Attendance{ID: "att-1", EventID: ev.ID, StudentID: st.ID, IsPresent: true})

	_, err := svc.Submit(context.Background(), ev.ID, st.ID, 5, "  loved it  ")
	require.NoError(t, err)
	assert.True(t, m.attendances[0].HasGivenFeedback)
	assert.Equal(t, "loved it", m.feedbacks[0].Comment)
}

func TestFeedbackService_Submit_NoAttendanceRowIsNoop(t *testing.T) {
	m, svc, ev, st := newFeedbackFixture()

	_, err := svc.Submit(context.Background(), ev.ID, st.ID, 3, "")
	require.NoError(t, err)
	assert.Empty(t, m.attendances)
}

func TestFeedbackService_Submit_NotFound(t *testing.T) {
	_, svc, ev, st := newFeedbackFixture()

	_, err := svc.Submit(context.Background(), "ev-missing", st.ID, 3, "")
	require.ErrorIs(t, err, domain.ErrNotFound)
	_, err = svc.Submit(context.Background(), ev.ID, "st-missing", 3, "")
	require.ErrorIs(t, err, domain.ErrNotFound)
}

func TestFeedbackService_Submit_RollsBackWhenFlagFails(t *testing.T) {
	m, svc, ev, st := newFeedbackFixture()
	m.failFeedbackOp = errors.New("lock timeout")

	_, err := svc.Submit(context.Background(), ev.ID, st.ID, 4, "")
	require.Error(t, err)
	assert.Empty(t, m.feedbacks)
}
