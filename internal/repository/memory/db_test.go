package memory

import (
	"context"
	"ortus-club/internal/models"
	"ortus-club/internal/repository"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSessionUniqueByScheduleAndDate(t *testing.T) {
	ctx := context.Background()
	repos := Open().Repositories()
	day := time.Date(2025, 3, 10, 0, 0, 0, 0, time.UTC)

	first := &models.TrainingSession{ScheduleID: 1, GroupID: 2, TrainerID: 3, SessionDate: day, Status: models.SessionStarted}
	require.NoError(t, repos.Sessions.Insert(ctx, first))

	second := &models.TrainingSession{ScheduleID: 1, GroupID: 2, TrainerID: 3, SessionDate: day, Status: models.SessionStarted}
	assert.ErrorIs(t, repos.Sessions.Insert(ctx, second), repository.ErrDuplicate)

	other := &models.TrainingSession{ScheduleID: 1, SessionDate: day.AddDate(0, 0, 1), Status: models.SessionStarted}
	assert.NoError(t, repos.Sessions.Insert(ctx, other))
}

func TestMarkTransitions(t *testing.T) {
	ctx := context.Background()
	repos := Open().Repositories()
	day := time.Date(2025, 3, 10, 0, 0, 0, 0, time.UTC)
	startedAt := day.Add(7 * time.Hour)

	s := &models.TrainingSession{ScheduleID: 1, SessionDate: day, Status: models.SessionNotStarted}
	require.NoError(t, repos.Sessions.Insert(ctx, s))

	// not_started -> finished запрещено
	finished, err := repos.Sessions.MarkFinished(ctx, s.ID, startedAt, 5)
	require.NoError(t, err)
	assert.Nil(t, finished)

	started, err := repos.Sessions.MarkStarted(ctx, s.ID, startedAt, 4)
	require.NoError(t, err)
	require.NotNil(t, started)
	assert.Equal(t, models.SessionStarted, started.Status)

	again, err := repos.Sessions.MarkStarted(ctx, s.ID, startedAt.Add(time.Hour), 6)
	require.NoError(t, err)
	assert.Equal(t, startedAt, *again.StartedAt)
	assert.Equal(t, int64(6), *again.BeforePhotoReportID)

	finished, err = repos.Sessions.MarkFinished(ctx, s.ID, startedAt.Add(2*time.Hour), 7)
	require.NoError(t, err)
	require.NotNil(t, finished)
	assert.Equal(t, models.SessionFinished, finished.Status)

	restarted, err := repos.Sessions.MarkStarted(ctx, s.ID, startedAt, 8)
	require.NoError(t, err)
	assert.Nil(t, restarted)
}

func TestLinkPhotoKeepsStatus(t *testing.T) {
	ctx := context.Background()
	db := Open()
	repos := db.Repositories()
	day := time.Date(2025, 3, 10, 0, 0, 0, 0, time.UTC)

	key := &models.TrainingSession{ScheduleID: 9, GroupID: 1, TrainerID: 2, SessionDate: day}
	require.NoError(t, repos.Sessions.LinkPhoto(ctx, key, models.PhotoTrainingBefore, 11))
	require.NoError(t, repos.Sessions.LinkPhoto(ctx, key, models.PhotoTrainingAfter, 12))
	assert.Equal(t, 1, db.SessionCount())

	s, err := repos.Sessions.Get(ctx, models.SessionKey{ScheduleID: 9, SessionDate: day})
	require.NoError(t, err)
	assert.Equal(t, models.SessionNotStarted, s.Status)
	assert.Equal(t, int64(11), *s.BeforePhotoReportID)
	assert.Equal(t, int64(12), *s.AfterPhotoReportID)

	assert.Error(t, repos.Sessions.LinkPhoto(ctx, key, models.PhotoCleaning, 13))
}

func TestFindLatestPhoto(t *testing.T) {
	ctx := context.Background()
	db := Open()
	repos := db.Repositories()
	base := time.Date(2025, 3, 10, 6, 0, 0, 0, time.UTC)

	for i, at := range []time.Time{base, base.Add(30 * time.Minute), base.AddDate(0, 0, 1)} {
		require.NoError(t, repos.PhotoReports.Create(ctx, &models.PhotoReport{
			Type:      models.PhotoTrainingBefore,
			AuthorID:  1,
			Related:   models.ScheduleRelation(5),
			Photos:    []string{"p" + string(rune('a'+i))},
			CreatedAt: at,
		}))
	}

	latest, err := repos.PhotoReports.FindLatest(ctx, models.PhotoReportFilter{
		Type:        models.PhotoTrainingBefore,
		Related:     models.ScheduleRelation(5),
		CreatedFrom: base.Truncate(24 * time.Hour),
		CreatedTo:   base.Truncate(24 * time.Hour).Add(24 * time.Hour),
	})
	require.NoError(t, err)
	require.NotNil(t, latest)
	assert.Equal(t, []string{"pb"}, latest.Photos)

	missing, err := repos.PhotoReports.FindLatest(ctx, models.PhotoReportFilter{Related: models.ScheduleRelation(6)})
	require.NoError(t, err)
	assert.Nil(t, missing)
}

func TestPhotoDayBoundary(t *testing.T) {
	ctx := context.Background()
	repos := Open().Repositories()
	from := time.Date(2025, 3, 10, 0, 0, 0, 0, time.UTC)
	to := from.AddDate(0, 0, 1)

	for _, at := range []time.Time{to.Add(-time.Microsecond), to} {
		require.NoError(t, repos.PhotoReports.Create(ctx, &models.PhotoReport{
			Type:      models.PhotoTrainingAfter,
			AuthorID:  1,
			Related:   models.ScheduleRelation(5),
			Photos:    []string{at.Format(time.RFC3339Nano)},
			CreatedAt: at,
		}))
	}

	latest, err := repos.PhotoReports.FindLatest(ctx, models.PhotoReportFilter{
		Type:        models.PhotoTrainingAfter,
		Related:     models.ScheduleRelation(5),
		CreatedFrom: from,
		CreatedTo:   to,
	})
	require.NoError(t, err)
	require.NotNil(t, latest)
	assert.Equal(t, to.Add(-time.Microsecond), latest.CreatedAt)
}

func TestAttendanceStats(t *testing.T) {
	ctx := context.Background()
	db := Open()
	repos := db.Repositories()
	student := db.AddUser(models.User{FullName: "Айдана", Roles: []string{string(models.RoleStudent)}})
	day := time.Date(2025, 3, 10, 0, 0, 0, 0, time.UTC)

	statuses := []models.AttendanceStatus{models.AttendancePresent, models.AttendancePresent, models.AttendanceSick}
	for i, status := range statuses {
		require.NoError(t, repos.Attendance.Create(ctx, &models.Attendance{
			GroupID: 1, StudentID: student.ID, Date: day.AddDate(0, 0, i), Status: status,
		}))
	}

	dup := &models.Attendance{GroupID: 1, StudentID: student.ID, Date: day, Status: models.AttendanceAbsent}
	assert.ErrorIs(t, repos.Attendance.Create(ctx, dup), repository.ErrDuplicate)

	stats, err := repos.Attendance.Stats(ctx, models.AttendanceFilter{StudentID: student.ID})
	require.NoError(t, err)
	assert.Equal(t, 3, stats.Total)
	assert.Equal(t, 2, stats.Present)
	assert.Equal(t, 1, stats.Sick)

	list, err := repos.Attendance.List(ctx, models.AttendanceFilter{GroupID: 1, From: day.AddDate(0, 0, 1)})
	require.NoError(t, err)
	require.Len(t, list, 2)
	assert.Equal(t, "Айдана", list[0].StudentName)
}
