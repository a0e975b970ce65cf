package schedule_service

import (
	"context"
	"ortus-club/internal/models"
	"ortus-club/internal/repository/memory"
	"ortus-club/internal/service"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func TestCreateAndDelete(t *testing.T) {
	ctx := context.Background()
	db := memory.Open()
	svc := NewScheduleService(db.Repositories(), zap.NewNop())

	trainerUser := db.AddUser(models.User{FullName: "Тренер", Roles: []string{string(models.RoleTrainer)}})
	group := db.AddGroup(models.Group{Name: "Юниоры", TrainerID: trainerUser.ID})
	trainer := models.Actor{UserID: trainerUser.ID, Roles: []models.Role{models.RoleTrainer}}
	stranger := models.Actor{UserID: 999, Roles: []models.Role{models.RoleTrainer}}

	schedule := &models.Schedule{GroupID: group.ID, DayOfWeek: 0, StartTime: "18:00", EndTime: "20:00"}
	require.NoError(t, svc.Create(ctx, trainer, schedule))
	assert.Equal(t, models.DefaultLocation, schedule.Location)
	assert.Equal(t, "Юниоры", schedule.GroupName)
	assert.Equal(t, trainerUser.ID, *schedule.TrainerID)

	overlap := &models.Schedule{GroupID: group.ID, DayOfWeek: 0, StartTime: "19:00", EndTime: "21:00"}
	assert.Equal(t, service.KindConflict, service.KindOf(svc.Create(ctx, trainer, overlap)))

	adjacent := &models.Schedule{GroupID: group.ID, DayOfWeek: 0, StartTime: "20:00", EndTime: "22:00", Location: "Зал 2"}
	require.NoError(t, svc.Create(ctx, trainer, adjacent))

	foreign := &models.Schedule{GroupID: group.ID, DayOfWeek: 3, StartTime: "10:00", EndTime: "11:30"}
	assert.Equal(t, service.KindForbidden, service.KindOf(svc.Create(ctx, stranger, foreign)))

	list, err := svc.GetByGroup(ctx, group.ID)
	require.NoError(t, err)
	require.Len(t, list, 2)
	assert.Equal(t, "18:00", list[0].StartTime)

	assert.Equal(t, service.KindForbidden, service.KindOf(svc.Delete(ctx, stranger, schedule.ID)))
	require.NoError(t, svc.Delete(ctx, trainer, schedule.ID))
	assert.Equal(t, service.KindNotFound, service.KindOf(svc.Delete(ctx, trainer, schedule.ID)))

	all, err := svc.GetAll(ctx)
	require.NoError(t, err)
	assert.Len(t, all, 1)
}

func TestCreateValidation(t *testing.T) {
	ctx := context.Background()
	db := memory.Open()
	svc := NewScheduleService(db.Repositories(), zap.NewNop())
	admin := models.Actor{UserID: 1, Roles: []models.Role{models.RoleAdmin}}

	tests := []struct {
		name     string
		schedule models.Schedule
		kind     service.ErrorKind
	}{
		{"bad day", models.Schedule{GroupID: 1, DayOfWeek: 7, StartTime: "10:00", EndTime: "11:00"}, service.KindValidation},
		{"bad start", models.Schedule{GroupID: 1, StartTime: "10am", EndTime: "11:00"}, service.KindValidation},
		{"end before start", models.Schedule{GroupID: 1, StartTime: "11:00", EndTime: "10:00"}, service.KindValidation},
		{"unknown group", models.Schedule{GroupID: 42, StartTime: "10:00", EndTime: "11:00"}, service.KindNotFound},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := tt.schedule
			assert.Equal(t, tt.kind, service.KindOf(svc.Create(ctx, admin, &s)))
		})
	}
}
