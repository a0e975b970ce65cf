package attendance

import (
	"context"
	"testing"
	"time"

	"ortus-club/internal/models"
	"ortus-club/internal/repository"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/jmoiron/sqlx"
	"github.com/lib/pq"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCreateDuplicate(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()
	repo := NewAttendanceRepository(sqlx.NewDb(db, "postgres"), time.UTC)

	mock.ExpectQuery(`INSERT INTO ortus\.attendance`).
		WithArgs(nil, int64(2), int64(5), "2024-06-03", "absent", "", nil).
		WillReturnError(&pq.Error{Code: "23505"})

	err = repo.Create(context.Background(), &models.Attendance{
		GroupID:   2,
		StudentID: 5,
		Date:      time.Date(2024, 6, 3, 0, 0, 0, 0, time.UTC),
		Status:    models.AttendanceAbsent,
	})
	assert.ErrorIs(t, err, repository.ErrDuplicate)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestGetByIDNotFound(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()
	repo := NewAttendanceRepository(sqlx.NewDb(db, "postgres"), time.UTC)

	mock.ExpectQuery(`WHERE a\.id = \$1`).
		WithArgs(int64(42)).
		WillReturnRows(sqlmock.NewRows([]string{"id"}))

	record, err := repo.GetByID(context.Background(), 42)
	require.NoError(t, err)
	assert.Nil(t, record)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestStatsByStudentAndPeriod(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()
	repo := NewAttendanceRepository(sqlx.NewDb(db, "postgres"), time.UTC)

	mock.ExpectQuery(`FROM ortus\.attendance a WHERE a\.student_id = \$1 AND a\.date >= \$2 AND a\.date <= \$3`).
		WithArgs(int64(5), "2024-06-01", "2024-06-30").
		WillReturnRows(sqlmock.NewRows([]string{"total", "present", "absent", "sick", "competition", "excused"}).
			AddRow(10, 7, 1, 1, 1, 0))

	stats, err := repo.Stats(context.Background(), models.AttendanceFilter{
		StudentID: 5,
		From:      time.Date(2024, 6, 1, 0, 0, 0, 0, time.UTC),
		To:        time.Date(2024, 6, 30, 0, 0, 0, 0, time.UTC),
	})
	require.NoError(t, err)
	assert.Equal(t, 10, stats.Total)
	assert.Equal(t, 7, stats.Present)
	assert.NoError(t, mock.ExpectationsWereMet())
}
