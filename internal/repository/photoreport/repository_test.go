package photoreport

import (
	"context"
	"testing"
	"time"

	"ortus-club/internal/models"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/jmoiron/sqlx"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFindLatestSameDay(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()
	repo := NewPhotoReportRepository(sqlx.NewDb(db, "postgres"))

	from := time.Date(2024, 6, 3, 0, 0, 0, 0, time.UTC)
	to := from.Add(24 * time.Hour)
	created := time.Date(2024, 6, 3, 17, 5, 0, 0, time.UTC)

	mock.ExpectQuery(`WHERE type = \$1 AND related_kind = \$2 AND related_id = \$3 AND created_at >= \$4 AND created_at < \$5 ORDER BY created_at DESC, id DESC LIMIT 1`).
		WithArgs("training_before", "schedule", int64(4), from, to).
		WillReturnRows(sqlmock.NewRows([]string{"id", "type", "author_id", "related_kind", "related_id", "photos", "comment", "created_at"}).
			AddRow(int64(8), "training_before", int64(3), "schedule", int64(4), "{https://cdn/1.jpg}", "", created))

	report, err := repo.FindLatest(context.Background(), models.PhotoReportFilter{
		Type:        models.PhotoTrainingBefore,
		Related:     models.ScheduleRelation(4),
		CreatedFrom: from,
		CreatedTo:   to,
	})
	require.NoError(t, err)
	require.NotNil(t, report)
	assert.Equal(t, int64(8), report.ID)
	scheduleID, ok := report.Related.ScheduleID()
	assert.True(t, ok)
	assert.Equal(t, int64(4), scheduleID)
	assert.Equal(t, []string{"https://cdn/1.jpg"}, report.Photos)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestExistsWithoutDate(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()
	repo := NewPhotoReportRepository(sqlx.NewDb(db, "postgres"))

	mock.ExpectQuery(`SELECT EXISTS\(SELECT 1 FROM ortus\.photo_reports WHERE type = \$1 AND related_kind = \$2 AND related_id = \$3\)`).
		WithArgs("training_after", "schedule", int64(4)).
		WillReturnRows(sqlmock.NewRows([]string{"exists"}).AddRow(true))

	exists, err := repo.Exists(context.Background(), models.PhotoReportFilter{
		Type:    models.PhotoTrainingAfter,
		Related: models.ScheduleRelation(4),
	})
	require.NoError(t, err)
	assert.True(t, exists)
	assert.NoError(t, mock.ExpectationsWereMet())
}
