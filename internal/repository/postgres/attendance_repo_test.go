package postgres

import (
	"context"
	"testing"
	"time"

	"eventory/internal/domain"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/require"
)

func TestAttendanceRepository_Upsert(t *testing.T) {
	ctx := context.Background()
	now := time.Date(2025, 3, 2, 10, 0, 0, 0, time.UTC)

	tests := []struct {
		name         string
		withFeedback bool
		feedbackSQL  string
	}{
		{"single path overwrites feedback flag", true, `has_given_feedback = EXCLUDED.has_given_feedback`},
		{"batch path keeps feedback flag", false, `has_given_feedback = attendances.has_given_feedback`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			db, mock, err := sqlmock.New()
			require.NoError(t, err)
			defer db.Close()

			mock.ExpectQuery(`ON CONFLICT \(event_id, student_id\) DO UPDATE SET[\s\S]*`+tt.feedbackSQL).
				WithArgs("ev-1", "st-1", "col-1", false, true, now).
				WillReturnRows(sqlmock.NewRows([]string{"id", "college_id", "has_given_feedback", "is_present", "checked_in_at"}).
					AddRow("att-1", "col-1", true, true, now))

			att := &domain.Attendance{EventID: "ev-1", StudentID: "st-1", CollegeID: "col-1", IsPresent: true, CheckedInAt: now}
			err = NewAttendanceRepository(db).Upsert(ctx, att, tt.withFeedback)
			require.NoError(t, err)
			require.Equal(t, "att-1", att.ID)
			require.True(t, att.HasGivenFeedback)
			require.NoError(t, mock.ExpectationsWereMet())
		})
	}
}

func TestAttendanceRepository_ListByEvent(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	at := time.Date(2025, 3, 2, 10, 0, 0, 0, time.UTC)
	mock.ExpectQuery(`SELECT id, event_id, student_id, college_id, has_given_feedback, is_present, checked_in_at\s+FROM attendances`).
		WithArgs("ev-1").
		WillReturnRows(sqlmock.NewRows([]string{"id", "event_id", "student_id", "college_id", "has_given_feedback", "is_present", "checked_in_at"}).
			AddRow("att-1", "ev-1", "st-1", "col-1", false, true, at))

	list, err := NewAttendanceRepository(db).ListByEvent(context.Background(), "ev-1")
	require.NoError(t, err)
	require.Len(t, list, 1)
	require.Equal(t, "st-1", list[0].StudentID)
	require.True(t, list[0].IsPresent)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestAttendanceRepository_MarkFeedbackGiven(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	// No matching row is not an error.
	mock.ExpectExec(`UPDATE attendances SET has_given_feedback = TRUE`).
		WithArgs("ev-1", "st-1").
		WillReturnResult(sqlmock.NewResult(0, 0))

	require.NoError(t, NewAttendanceRepository(db).MarkFeedbackGiven(context.Background(), "ev-1", "st-1"))
	require.NoError(t, mock.ExpectationsWereMet())
}
