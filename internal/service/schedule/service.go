package schedule_service

import (
	"context"
	"fmt"
	"ortus-club/internal/models"
	"ortus-club/internal/repository"
	"ortus-club/internal/service"
	"ortus-club/internal/service/access"
	"strings"
	"time"

	"go.uber.org/zap"
)

type scheduleService struct {
	schedules repository.ScheduleRepository
	groups    repository.GroupRepository
	logger    *zap.Logger
}

func NewScheduleService(repos *repository.Repositories, logger *zap.Logger) service.ScheduleService {
	return &scheduleService{
		schedules: repos.Schedules,
		groups:    repos.Groups,
		logger:    logger.Named("schedule"),
	}
}

func parseClock(value string) (time.Time, error) {
	return time.Parse("15:04", value)
}

func (s *scheduleService) Create(ctx context.Context, actor models.Actor, schedule *models.Schedule) error {
	if schedule.DayOfWeek < 0 || schedule.DayOfWeek > 6 {
		return service.Validation("day_of_week должен быть от 0 (Пн) до 6 (Вс)")
	}
	start, err := parseClock(schedule.StartTime)
	if err != nil {
		return service.Validation("Неверный формат времени начала, ожидается ЧЧ:ММ")
	}
	end, err := parseClock(schedule.EndTime)
	if err != nil {
		return service.Validation("Неверный формат времени окончания, ожидается ЧЧ:ММ")
	}
	if !end.After(start) {
		return service.Validation("Время окончания должно быть позже начала")
	}

	group, err := s.groups.GetByID(ctx, schedule.GroupID)
	if err != nil {
		return fmt.Errorf("ошибка получения группы: %w", err)
	}
	if group == nil {
		return service.NotFound("Group not found")
	}
	if d := access.Decide(actor, access.ScheduleManage, access.Resource{GroupTrainerID: group.TrainerID}); !d.Allowed {
		return service.Forbidden(d.Reason)
	}

	// Проверка пересечения с другими занятиями группы
	existing, err := s.schedules.GetByGroup(ctx, group.ID)
	if err != nil {
		return fmt.Errorf("ошибка получения расписания группы: %w", err)
	}
	for _, other := range existing {
		if other.DayOfWeek != schedule.DayOfWeek {
			continue
		}
		otherStart, err1 := parseClock(other.StartTime)
		otherEnd, err2 := parseClock(other.EndTime)
		if err1 != nil || err2 != nil {
			continue
		}
		if start.Before(otherEnd) && otherStart.Before(end) {
			return service.Conflict("У группы уже есть занятие в это время")
		}
	}

	if strings.TrimSpace(schedule.Location) == "" {
		schedule.Location = models.DefaultLocation
	}
	if err := s.schedules.Create(ctx, schedule); err != nil {
		return fmt.Errorf("ошибка создания расписания: %w", err)
	}

	trainerID := group.TrainerID
	schedule.GroupName = group.Name
	schedule.TrainerID = &trainerID

	s.logger.Info("расписание создано",
		zap.Int64("schedule_id", schedule.ID),
		zap.Int64("group_id", group.ID),
		zap.Int("day_of_week", schedule.DayOfWeek),
	)
	return nil
}

func (s *scheduleService) GetAll(ctx context.Context) ([]models.Schedule, error) {
	return s.schedules.GetAll(ctx)
}

func (s *scheduleService) GetByGroup(ctx context.Context, groupID int64) ([]models.Schedule, error) {
	return s.schedules.GetByGroup(ctx, groupID)
}

func (s *scheduleService) Delete(ctx context.Context, actor models.Actor, id int64) error {
	schedule, err := s.schedules.GetByID(ctx, id)
	if err != nil {
		return fmt.Errorf("ошибка получения расписания: %w", err)
	}
	if schedule == nil {
		return service.NotFound("Schedule not found")
	}

	var trainerID int64
	if schedule.TrainerID != nil {
		trainerID = *schedule.TrainerID
	}
	if d := access.Decide(actor, access.ScheduleManage, access.Resource{GroupTrainerID: trainerID}); !d.Allowed {
		return service.Forbidden("Not authorized")
	}
	return s.schedules.Delete(ctx, id)
}
