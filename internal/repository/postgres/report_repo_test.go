package postgres

import (
	"context"
	"database/sql"
	"database/sql/driver"
	"testing"
	"time"

	"eventory/internal/domain"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/require"
)

func TestReportRepository_EventStats(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	mock.ExpectQuery(`FROM events e\s+WHERE e.id = \$1`).
		WithArgs("ev-1").
		WillReturnRows(sqlmock.NewRows([]string{"r", "a", "avg"}).AddRow(10, 7, 4.0))
	mock.ExpectQuery(`FROM events e\s+WHERE e.id = \$1`).
		WithArgs("ev-missing").
		WillReturnError(sql.ErrNoRows)

	repo := NewReportRepository(db)
	st, err := repo.EventStats(context.Background(), "ev-1")
	require.NoError(t, err)
	require.Equal(t, domain.EventStats{Registrations: 10, Attendances: 7, AvgRating: 4.0}, st)

	_, err = repo.EventStats(context.Background(), "ev-missing")
	require.ErrorIs(t, err, domain.ErrNotFound)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestReportRepository_EventPopularity(t *testing.T) {
	start := time.Date(2025, 4, 1, 9, 0, 0, 0, time.UTC)

	tests := []struct {
		name   string
		filter domain.EventFilter
		where  string
		args   []driver.Value
	}{
		{"no filter", domain.EventFilter{}, `LEFT JOIN registrations r ON r.event_id = e.id\s+GROUP BY`, nil},
		{"college and type", domain.EventFilter{CollegeID: "col-1", Type: domain.EventTypeFest},
			`WHERE e.college_id = \$1 AND e.type = \$2`, []driver.Value{"col-1", "FEST"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			db, mock, err := sqlmock.New()
			require.NoError(t, err)
			defer db.Close()

			q := mock.ExpectQuery(tt.where)
			if tt.args != nil {
				q = q.WithArgs(tt.args...)
			}
			q.WillReturnRows(sqlmock.NewRows([]string{"id", "title", "college_id", "type", "start_at", "registrations"}).
				AddRow("ev-1", "Hack Night", "col-1", "FEST", start, 12))

			list, err := NewReportRepository(db).EventPopularity(context.Background(), tt.filter)
			require.NoError(t, err)
			require.Len(t, list, 1)
			require.Equal(t, 12, list[0].Registrations)
			require.Equal(t, domain.EventTypeFest, list[0].Type)
			require.NoError(t, mock.ExpectationsWereMet())
		})
	}
}

func TestReportRepository_StudentParticipation(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	mock.ExpectQuery(`FROM students s\s+WHERE s.id = \$1`).
		WithArgs("st-1").
		WillReturnRows(sqlmock.NewRows([]string{"id", "r", "a"}).AddRow("st-1", 3, 2))

	p, err := NewReportRepository(db).StudentParticipation(context.Background(), "st-1")
	require.NoError(t, err)
	require.Equal(t, &domain.StudentParticipation{StudentID: "st-1", Registrations: 3, Attended: 2}, p)
}

func TestReportRepository_TopStudents(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	mock.ExpectQuery(`ORDER BY events_attended DESC, s.full_name ASC\s+LIMIT \$2`).
		WithArgs("col-1", 2).
		WillReturnRows(sqlmock.NewRows([]string{"id", "full_name", "college_id", "events_attended"}).
			AddRow("st-a", "A", "col-1", 3).
			AddRow("st-b", "B", "col-1", 3))

	list, err := NewReportRepository(db).TopStudents(context.Background(), 2, "col-1")
	require.NoError(t, err)
	require.Len(t, list, 2)
	require.Equal(t, "A", list[0].FullName)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestReportRepository_TopStudentsIncludesZeroAttendance(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	mock.ExpectQuery(`FROM students s\s+LEFT JOIN attendances a ON a.student_id = s.id\s+GROUP BY s.id`).
		WithArgs(3).
		WillReturnRows(sqlmock.NewRows([]string{"id", "full_name", "college_id", "events_attended"}).
			AddRow("st-a", "A", "col-1", 2).
			AddRow("st-b", "B", "col-1", 1).
			AddRow("st-c", "C", "col-2", 0))

	list, err := NewReportRepository(db).TopStudents(context.Background(), 3, "")
	require.NoError(t, err)
	require.Len(t, list, 3)
	require.Equal(t, "C", list[2].FullName)
	require.Equal(t, 0, list[2].EventsAttended)
	require.NoError(t, mock.ExpectationsWereMet())
}
