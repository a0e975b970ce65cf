package photoreport_service

import (
	"context"
	"ortus-club/internal/bot"
	"ortus-club/internal/models"
	"ortus-club/internal/repository"
	"ortus-club/internal/repository/memory"
	"ortus-club/internal/service"
	session_service "ortus-club/internal/service/session"
	"ortus-club/internal/timing"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

type fixture struct {
	db       *memory.DB
	repos    *repository.Repositories
	svc      service.PhotoReportService
	trainer  models.Actor
	staff    models.Actor
	manager  models.Actor
	schedule models.Schedule
	cleaning models.CleaningReport
}

func actorOf(u models.User, role models.Role) models.Actor {
	return models.Actor{UserID: u.ID, Roles: []models.Role{role}}
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	ctx := context.Background()
	f := &fixture{db: memory.Open()}
	f.db.SetClock(func() time.Time { return time.Date(2024, 6, 3, 17, 5, 0, 0, time.UTC) })
	f.repos = f.db.Repositories()

	trainer := f.db.AddUser(models.User{FullName: "Тренер", Roles: []string{string(models.RoleTrainer)}})
	staff := f.db.AddUser(models.User{FullName: "Уборщица", Roles: []string{string(models.RoleTechStaff)}})
	manager := f.db.AddUser(models.User{FullName: "Менеджер", Roles: []string{string(models.RoleManager)}})
	f.trainer = actorOf(trainer, models.RoleTrainer)
	f.staff = actorOf(staff, models.RoleTechStaff)
	f.manager = actorOf(manager, models.RoleManager)

	group := f.db.AddGroup(models.Group{Name: "Юниоры", TrainerID: trainer.ID})
	f.schedule = models.Schedule{GroupID: group.ID, DayOfWeek: 0, StartTime: "18:00", EndTime: "20:00"}
	require.NoError(t, f.repos.Schedules.Create(ctx, &f.schedule))

	f.cleaning = models.CleaningReport{StaffID: staff.ID, Date: time.Date(2024, 6, 3, 0, 0, 0, 0, time.UTC), Zones: []string{"hall"}, Photos: []string{"x"}}
	require.NoError(t, f.repos.CleaningReports.Create(ctx, &f.cleaning))

	sessions := session_service.NewTrainingSessionService(f.repos, bot.Nop{}, time.UTC, timing.SystemClock(), zap.NewNop())
	f.svc = NewPhotoReportService(f.repos, sessions, zap.NewNop())
	return f
}

func TestCreateTrainingPhotoLinksSession(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	report, err := f.svc.Create(ctx, f.trainer, service.PhotoReportInput{
		Type:      models.PhotoTrainingBefore,
		RelatedID: f.schedule.ID,
		Photos:    []string{" https://cdn.ortus.kz/1.jpg ", ""},
		Comment:   "зал готов",
	})
	require.NoError(t, err)
	assert.Equal(t, []string{"https://cdn.ortus.kz/1.jpg"}, report.Photos)
	assert.Equal(t, models.ScheduleRelation(f.schedule.ID), report.Related)
	assert.Equal(t, f.trainer.UserID, report.AuthorID)

	session, err := f.repos.Sessions.Get(ctx, models.SessionKey{
		ScheduleID:  f.schedule.ID,
		SessionDate: time.Date(2024, 6, 3, 0, 0, 0, 0, time.UTC),
	})
	require.NoError(t, err)
	require.NotNil(t, session)
	assert.Equal(t, models.SessionNotStarted, session.Status)
	assert.Equal(t, report.ID, *session.BeforePhotoReportID)
}

func TestCreateValidation(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	student := models.Actor{UserID: 99, Roles: []models.Role{models.RoleStudent}}

	tests := []struct {
		name  string
		actor models.Actor
		input service.PhotoReportInput
		kind  service.ErrorKind
		msg   string
	}{
		{"bad type", f.trainer, service.PhotoReportInput{Type: "selfie", Photos: []string{"a"}}, service.KindValidation, "Invalid report type"},
		{"no photos", f.trainer, service.PhotoReportInput{Type: models.PhotoTrainingAfter, RelatedID: f.schedule.ID}, service.KindValidation, "At least one photo is required"},
		{"no schedule", f.trainer, service.PhotoReportInput{Type: models.PhotoTrainingAfter, Photos: []string{"a"}}, service.KindValidation, "relatedId (scheduleId) is required"},
		{"unknown schedule", f.trainer, service.PhotoReportInput{Type: models.PhotoTrainingAfter, RelatedID: 999, Photos: []string{"a"}}, service.KindNotFound, "Schedule not found"},
		{"staff training photo", f.staff, service.PhotoReportInput{Type: models.PhotoTrainingAfter, RelatedID: f.schedule.ID, Photos: []string{"a"}}, service.KindForbidden, "Only trainers can submit training photo reports"},
		{"no cleaning report", f.staff, service.PhotoReportInput{Type: models.PhotoCleaning, Photos: []string{"a"}}, service.KindValidation, "relatedId (cleaningReportId) is required"},
		{"student training photo without schedule", student, service.PhotoReportInput{Type: models.PhotoTrainingBefore, Photos: []string{"a"}}, service.KindForbidden, "Only trainers can submit training photo reports"},
		{"student cleaning photo without report", student, service.PhotoReportInput{Type: models.PhotoCleaning}, service.KindForbidden, "Only tech staff can submit cleaning reports"},
		{"trainer cleaning photo", f.trainer, service.PhotoReportInput{Type: models.PhotoCleaning, RelatedID: f.cleaning.ID, Photos: []string{"a"}}, service.KindForbidden, "Only tech staff can submit cleaning reports"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := f.svc.Create(ctx, tt.actor, tt.input)
			e := service.AsError(err)
			require.NotNil(t, e)
			assert.Equal(t, tt.kind, e.Kind)
			assert.Equal(t, tt.msg, e.Message)
		})
	}
}

func TestCreateForeignTrainer(t *testing.T) {
	f := newFixture(t)
	other := f.db.AddUser(models.User{FullName: "Другой", Roles: []string{string(models.RoleTrainer)}})

	_, err := f.svc.Create(context.Background(), actorOf(other, models.RoleTrainer), service.PhotoReportInput{
		Type: models.PhotoTrainingBefore, RelatedID: f.schedule.ID, Photos: []string{"a"},
	})
	assert.Equal(t, service.KindForbidden, service.KindOf(err))
}

func TestCreateCleaningPhoto(t *testing.T) {
	f := newFixture(t)

	report, err := f.svc.Create(context.Background(), f.staff, service.PhotoReportInput{
		Type: models.PhotoCleaning, RelatedID: f.cleaning.ID, Photos: []string{"a"},
	})
	require.NoError(t, err)
	id, ok := report.Related.CleaningReportID()
	assert.True(t, ok)
	assert.Equal(t, f.cleaning.ID, id)
	assert.Equal(t, 0, f.db.SessionCount())
}

func TestListAndGetScopes(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	mine, err := f.svc.Create(ctx, f.trainer, service.PhotoReportInput{Type: models.PhotoTrainingBefore, RelatedID: f.schedule.ID, Photos: []string{"a"}})
	require.NoError(t, err)
	_, err = f.svc.Create(ctx, f.staff, service.PhotoReportInput{Type: models.PhotoCleaning, RelatedID: f.cleaning.ID, Photos: []string{"b"}})
	require.NoError(t, err)

	// тренер не может подсмотреть чужие, даже указав автора
	own, err := f.svc.List(ctx, f.trainer, models.PhotoReportFilter{AuthorID: f.staff.UserID})
	require.NoError(t, err)
	require.Len(t, own, 1)
	assert.Equal(t, mine.ID, own[0].ID)

	all, err := f.svc.List(ctx, f.manager, models.PhotoReportFilter{})
	require.NoError(t, err)
	assert.Len(t, all, 2)

	cleaningOnly, err := f.svc.List(ctx, f.manager, models.PhotoReportFilter{Type: models.PhotoCleaning})
	require.NoError(t, err)
	assert.Len(t, cleaningOnly, 1)

	student := models.Actor{UserID: 500, Roles: []models.Role{models.RoleStudent}}
	_, err = f.svc.List(ctx, student, models.PhotoReportFilter{})
	assert.Equal(t, service.KindForbidden, service.KindOf(err))

	got, err := f.svc.Get(ctx, f.manager, mine.ID)
	require.NoError(t, err)
	assert.Equal(t, mine.ID, got.ID)

	_, err = f.svc.Get(ctx, f.staff, mine.ID)
	assert.Equal(t, service.KindForbidden, service.KindOf(err))

	_, err = f.svc.Get(ctx, f.trainer, 4242)
	assert.Equal(t, service.KindNotFound, service.KindOf(err))
}
