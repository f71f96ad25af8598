package services

import (
	"context"
	"errors"
	"testing"
	"time"

	"eventory/internal/domain"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type attendanceFixture struct {
	store *memStore
	svc   *attendanceService
	col   *domain.College
	ev    *domain.Event
}

func newAttendanceFixture() *attendanceFixture {
	m := newMemStore()
	svc := NewAttendanceService(memEvents{m}, memStudents{m}, memRegistrations{m}, memAttendances{m}, domain.NopRecorder{}, testTimeout).(*attendanceService)
	col := m.addCollege("Tech College", "tc01")
	ev := m.addEvent(col.ID, "Go Workshop", 10)
	return &attendanceFixture{store: m, svc: svc, col: col, ev: ev}
}

func (f *attendanceFixture) registered(name string) *domain.Student {
	s := f.store.addStudent(f.col.ID, name, name+"@tc.edu")
	f.store.registrations = append(f.store.registrations, domain.Registration{ID: f.store.nextID("reg"), EventID: f.ev.ID, StudentID: s.ID})
	return s
}

func TestAttendanceService_CheckIn_CreatesRow(t *testing.T) {
	f := newAttendanceFixture()
	st := f.registered("asha")
	at := time.Date(2025, 6, 1, 9, 5, 0, 0, time.UTC)
	f.svc.now = func() time.Time { return at }

	att, err := f.svc.CheckIn(context.Background(), f.ev.ID, st.ID, true, false)
	require.NoError(t, err)
	assert.Equal(t, f.col.ID, att.CollegeID)
	assert.True(t, att.IsPresent)
	assert.False(t, att.HasGivenFeedback)
	assert.Equal(t, at, att.CheckedInAt)
}

func TestAttendanceService_CheckIn_NotRegistered(t *testing.T) {
	f := newAttendanceFixture()
	st := f.store.addStudent(f.col.ID, "walkin", "walkin@tc.edu")

	_, err := f.svc.CheckIn(context.Background(), f.ev.ID, st.ID, true, false)
	require.ErrorIs(t, err, domain.ErrNotRegistered)
	assert.Empty(t, f.store.attendances)
}

func TestAttendanceService_CheckIn_UnknownEvent(t *testing.T) {
	f := newAttendanceFixture()
	st := f.registered("asha")

	_, err := f.svc.CheckIn(context.Background(), "ev-missing", st.ID, true, false)
	require.ErrorIs(t, err, domain.ErrNotFound)
}

func TestAttendanceService_CheckIn_IdempotentUpsert(t *testing.T) {
	f := newAttendanceFixture()
	st := f.registered("asha")
	first := time.Date(2025, 6, 1, 9, 0, 0, 0, time.UTC)
	second := first.Add(30 * time.Minute)

	f.svc.now = func() time.Time { return first }
	a1, err := f.svc.CheckIn(context.Background(), f.ev.ID, st.ID, true, false)
	require.NoError(t, err)

	f.svc.now = func() time.Time { return second }
	for i := 0; i < 3; i++ {
		_, err = f.svc.CheckIn(context.Background(), f.ev.ID, st.ID, false, true)
		require.NoError(t, err)
	}

	rows := f.store.attendanceRows(f.ev.ID, st.ID)
	require.Len(t, rows, 1)
	assert.Equal(t, a1.ID, rows[0].ID)
	assert.False(t, rows[0].IsPresent)
	assert.True(t, rows[0].HasGivenFeedback)
	assert.Equal(t, second, rows[0].CheckedInAt)
}

func TestAttendanceService_CheckInBatch(t *testing.T) {
	f := newAttendanceFixture()
	ok := f.registered("asha")
	broken := f.registered("bilal")
	stranger := f.store.addStudent(f.col.ID, "carol", "carol@tc.edu")
	f.store.failUpsertFor[broken.ID] = errors.New("deadlock detected")

	// A prior feedback flag survives a batch re-mark.
	f.store.attendances = append(f.store.attendances, domain.Attendance{ID: "att-0", EventID: f.ev.ID, StudentID: ok.ID, CollegeID: f.col.ID, HasGivenFeedback: true})

	results, err := f.svc.CheckInBatch(context.Background(), f.ev.ID, []domain.AttendanceMark{
		{StudentID: ok.ID, IsPresent: true},
		{StudentID: broken.ID, IsPresent: true},
		{StudentID: stranger.ID, IsPresent: true},
		{StudentID: "st-missing", IsPresent: false},
	})
	require.NoError(t, err)
	require.Len(t, results, 4)

	assert.Equal(t, domain.AttendanceStatusMarked, results[0].Status)
	require.NotNil(t, results[0].IsPresent)
	assert.True(t, *results[0].IsPresent)

	assert.Equal(t, domain.AttendanceStatusError, results[1].Status)
	assert.Contains(t, results[1].Error, "deadlock detected")

	assert.Equal(t, domain.AttendanceStatusNotRegistered, results[2].Status)
	assert.Equal(t, domain.AttendanceStatusNotRegistered, results[3].Status)

	rows := f.store.attendanceRows(f.ev.ID, ok.ID)
	require.Len(t, rows, 1)
	assert.True(t, rows[0].IsPresent)
	assert.True(t, rows[0].HasGivenFeedback)
	assert.Empty(t, f.store.attendanceRows(f.ev.ID, broken.ID))
}

func TestAttendanceService_CheckInBatch_UnknownEvent(t *testing.T) {
	f := newAttendanceFixture()
	_, err := f.svc.CheckInBatch(context.Background(), "ev-missing", []domain.AttendanceMark{{StudentID: "x"}})
	require.ErrorIs(t, err, domain.ErrNotFound)
}

func TestAttendanceService_Lists(t *testing.T) {
	f := newAttendanceFixture()
	a := f.registered("asha")
	f.registered("bilal")
	_, err := f.svc.CheckIn(context.Background(), f.ev.ID, a.ID, true, false)
	require.NoError(t, err)

	students, err := f.svc.ListRegisteredStudents(context.Background(), f.ev.ID)
	require.NoError(t, err)
	assert.Len(t, students, 2)
	assert.Equal(t, "asha@tc.edu", students[0].Email)

	list, err := f.svc.ListAttendance(context.Background(), f.ev.ID)
	require.NoError(t, err)
	require.Len(t, list, 1)
	assert.Equal(t, a.ID, list[0].StudentID)

	_, err = f.svc.ListAttendance(context.Background(), "ev-missing")
	require.ErrorIs(t, err, domain.ErrNotFound)
}
