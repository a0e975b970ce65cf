package attendance_service

import (
	"context"
	"ortus-club/internal/models"
	"ortus-club/internal/repository"
	"ortus-club/internal/repository/memory"
	"ortus-club/internal/service"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

var loc = time.FixedZone("Asia/Almaty", 5*60*60)

type fixture struct {
	db       *memory.DB
	repos    *repository.Repositories
	svc      service.AttendanceService
	trainer  models.Actor
	group    models.Group
	schedule models.Schedule
	students []models.User
	parent   models.User
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	ctx := context.Background()
	f := &fixture{db: memory.Open()}
	f.repos = f.db.Repositories()

	trainer := f.db.AddUser(models.User{FullName: "Тренер", Roles: []string{string(models.RoleTrainer)}})
	f.trainer = models.Actor{UserID: trainer.ID, Roles: []models.Role{models.RoleTrainer}}
	f.group = f.db.AddGroup(models.Group{Name: "Юниоры", TrainerID: trainer.ID})
	f.parent = f.db.AddUser(models.User{FullName: "Родитель", Roles: []string{string(models.RoleParent)}})

	for _, name := range []string{"Бекзат", "Алия"} {
		groupID := f.group.ID
		parentID := f.parent.ID
		f.students = append(f.students, f.db.AddUser(models.User{
			FullName: name,
			Roles:    []string{string(models.RoleStudent)},
			GroupID:  &groupID,
			ParentID: &parentID,
		}))
	}

	f.schedule = models.Schedule{GroupID: f.group.ID, DayOfWeek: 0, StartTime: "18:00", EndTime: "20:00"}
	require.NoError(t, f.repos.Schedules.Create(ctx, &f.schedule))

	now := time.Date(2024, 6, 3, 18, 0, 0, 0, loc)
	f.svc = NewAttendanceService(f.repos, loc, func() time.Time { return now }, zap.NewNop())
	return f
}

func (f *fixture) afterPhoto(t *testing.T, createdAt time.Time) {
	t.Helper()
	require.NoError(t, f.repos.PhotoReports.Create(context.Background(), &models.PhotoReport{
		Type:      models.PhotoTrainingAfter,
		AuthorID:  f.trainer.UserID,
		Related:   models.ScheduleRelation(f.schedule.ID),
		Photos:    []string{"https://cdn.ortus.kz/a.jpg"},
		CreatedAt: createdAt,
	}))
}

func kind(err error) service.ErrorKind {
	return service.KindOf(err)
}

func TestOpenForGroupSkipsExisting(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	day := time.Date(2024, 6, 3, 0, 0, 0, 0, loc)

	records, err := f.svc.OpenForGroup(ctx, f.trainer, f.group.ID, f.schedule.ID, day)
	require.NoError(t, err)
	require.Len(t, records, 2)
	for _, r := range records {
		assert.Equal(t, models.AttendanceAbsent, r.Status)
		assert.Equal(t, f.schedule.ID, *r.ScheduleID)
	}
	// сортировка по имени
	assert.Equal(t, "Алия", records[0].StudentName)

	again, err := f.svc.OpenForGroup(ctx, f.trainer, f.group.ID, f.schedule.ID, day)
	require.NoError(t, err)
	assert.Len(t, again, 2)
	assert.Equal(t, records[0].ID, again[0].ID)
}

func TestOpenForGroupRules(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	admin := models.Actor{UserID: 500, Roles: []models.Role{models.RoleAdmin}}
	_, err := f.svc.OpenForGroup(ctx, admin, f.group.ID, f.schedule.ID, time.Time{})
	assert.Equal(t, service.KindForbidden, kind(err))

	_, err = f.svc.OpenForGroup(ctx, f.trainer, 9999, 0, time.Time{})
	assert.Equal(t, service.KindNotFound, kind(err))

	_, err = f.svc.OpenForGroup(ctx, f.trainer, f.group.ID, 9999, time.Time{})
	assert.Equal(t, service.KindNotFound, kind(err))

	empty := f.db.AddGroup(models.Group{Name: "Пустая", TrainerID: f.trainer.UserID})
	_, err = f.svc.OpenForGroup(ctx, f.trainer, empty.ID, 0, time.Time{})
	assert.Equal(t, service.KindPrecondition, kind(err))
}

func TestMarkGate(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	day := time.Date(2024, 6, 3, 0, 0, 0, 0, loc)

	records, err := f.svc.OpenForGroup(ctx, f.trainer, f.group.ID, f.schedule.ID, day)
	require.NoError(t, err)
	id := records[0].ID

	// закрывающий статус без фото ПОСЛЕ
	_, err = f.svc.Mark(ctx, f.trainer, id, models.AttendancePresent, "")
	require.Error(t, err)
	assert.Equal(t, service.KindValidation, kind(err))
	assert.Equal(t, msgAfterPhotoRequired, service.AsError(err).Message)

	// незакрывающий статус проходит без фото
	record, err := f.svc.Mark(ctx, f.trainer, id, models.AttendanceCompetition, "турнир")
	require.NoError(t, err)
	assert.Equal(t, models.AttendanceCompetition, record.Status)
	assert.Equal(t, "турнир", record.Note)

	// фото за любую дату открывает гейт
	f.afterPhoto(t, day.AddDate(0, 0, -14))
	record, err = f.svc.Mark(ctx, f.trainer, id, models.AttendanceSick, "")
	require.NoError(t, err)
	assert.Equal(t, models.AttendanceSick, record.Status)
	assert.Equal(t, "турнир", record.Note)
	assert.Equal(t, f.trainer.UserID, *record.MarkedBy)
}

func TestMarkWithoutScheduleBypassesGate(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	records, err := f.svc.OpenForGroup(ctx, f.trainer, f.group.ID, 0, time.Time{})
	require.NoError(t, err)

	record, err := f.svc.Mark(ctx, f.trainer, records[0].ID, models.AttendancePresent, "")
	require.NoError(t, err)
	assert.Equal(t, models.AttendancePresent, record.Status)
}

func TestMarkRules(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	records, err := f.svc.OpenForGroup(ctx, f.trainer, f.group.ID, f.schedule.ID, time.Time{})
	require.NoError(t, err)

	_, err = f.svc.Mark(ctx, f.trainer, records[0].ID, models.AttendanceStatus("late"), "")
	assert.Equal(t, service.KindValidation, kind(err))

	_, err = f.svc.Mark(ctx, f.trainer, 99999, models.AttendanceExcused, "")
	assert.Equal(t, service.KindNotFound, kind(err))

	stranger := models.Actor{UserID: 777, Roles: []models.Role{models.RoleTrainer}}
	_, err = f.svc.Mark(ctx, stranger, records[0].ID, models.AttendanceExcused, "")
	assert.Equal(t, service.KindForbidden, kind(err))
}

func TestStudentHistoryAccess(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	_, err := f.svc.OpenForGroup(ctx, f.trainer, f.group.ID, 0, time.Time{})
	require.NoError(t, err)

	student := f.students[0]
	self := models.Actor{UserID: student.ID, Roles: []models.Role{models.RoleStudent}}
	parent := models.Actor{UserID: f.parent.ID, Roles: []models.Role{models.RoleParent}}
	other := models.Actor{UserID: f.students[1].ID, Roles: []models.Role{models.RoleStudent}}

	for _, actor := range []models.Actor{self, parent, f.trainer} {
		history, err := f.svc.StudentHistory(ctx, actor, student.ID, time.Time{}, time.Time{})
		require.NoError(t, err)
		assert.Len(t, history, 1)
	}

	_, err = f.svc.StudentHistory(ctx, other, student.ID, time.Time{}, time.Time{})
	assert.Equal(t, service.KindForbidden, kind(err))

	_, err = f.svc.StudentStats(ctx, self, 4242, time.Time{}, time.Time{})
	assert.Equal(t, service.KindNotFound, kind(err))
}

func TestStats(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	f.afterPhoto(t, time.Date(2024, 6, 1, 19, 0, 0, 0, loc))

	statuses := []models.AttendanceStatus{models.AttendancePresent, models.AttendancePresent, models.AttendanceAbsent}
	for i, status := range statuses {
		day := time.Date(2024, 6, 3+i, 0, 0, 0, 0, loc)
		records, err := f.svc.OpenForGroup(ctx, f.trainer, f.group.ID, f.schedule.ID, day)
		require.NoError(t, err)
		for _, r := range records {
			if r.StudentID == f.students[0].ID {
				_, err := f.svc.Mark(ctx, f.trainer, r.ID, status, "")
				require.NoError(t, err)
			}
		}
	}

	stats, err := f.svc.StudentStats(ctx, f.trainer, f.students[0].ID, time.Time{}, time.Time{})
	require.NoError(t, err)
	assert.Equal(t, 3, stats.Total)
	assert.Equal(t, 2, stats.Present)
	assert.Equal(t, 66.67, stats.AttendanceRate)

	groupStats, err := f.svc.GroupStats(ctx, f.trainer, f.group.ID, time.Time{}, time.Time{})
	require.NoError(t, err)
	assert.Equal(t, 6, groupStats.Total)
	assert.Equal(t, 4, groupStats.Absent)
	assert.Equal(t, 33.33, groupStats.AttendanceRate)

	ranged, err := f.svc.GroupStats(ctx, f.trainer, f.group.ID,
		time.Date(2024, 6, 5, 0, 0, 0, 0, loc), time.Date(2024, 6, 5, 0, 0, 0, 0, loc))
	require.NoError(t, err)
	assert.Equal(t, 2, ranged.Total)
	assert.Equal(t, float64(0), ranged.AttendanceRate)

	stranger := models.Actor{UserID: 777, Roles: []models.Role{models.RoleManager}}
	_, err = f.svc.GroupStats(ctx, stranger, f.group.ID, time.Time{}, time.Time{})
	assert.Equal(t, service.KindForbidden, kind(err))
}

func TestAttendanceRate(t *testing.T) {
	assert.Equal(t, float64(0), AttendanceRate(0, 0))
	assert.Equal(t, float64(100), AttendanceRate(4, 4))
	assert.Equal(t, 66.67, AttendanceRate(2, 3))
	assert.Equal(t, 14.29, AttendanceRate(1, 7))
}
