package session_service

import (
	"context"
	"errors"
	"fmt"
	"ortus-club/internal/bot"
	"ortus-club/internal/models"
	"ortus-club/internal/repository"
	"ortus-club/internal/service"
	"ortus-club/internal/service/access"
	"ortus-club/internal/timing"
	"time"

	"go.uber.org/zap"
)

const (
	msgBeforePhotoRequired = "Сначала загрузите фото ДО тренировки. Сделайте это в разделе фотоотчётов."
	msgAfterPhotoRequired  = "Сначала загрузите фото ПОСЛЕ тренировки. Сделайте это в разделе фотоотчётов."
	msgAlreadyFinished     = "Эта тренировка уже завершена."
	msgNotStarted          = "Тренировка ещё не начата. Сначала начните её через расписание."
	msgFinishedNote        = "Тренировка уже завершена."
)

type trainingSessionService struct {
	sessions  repository.TrainingSessionRepository
	schedules repository.ScheduleRepository
	photos    repository.PhotoReportRepository
	notifier  bot.Notifier
	loc       *time.Location
	now       timing.Clock
	logger    *zap.Logger
}

func NewTrainingSessionService(
	repos *repository.Repositories,
	notifier bot.Notifier,
	loc *time.Location,
	now timing.Clock,
	logger *zap.Logger,
) service.TrainingSessionService {
	return &trainingSessionService{
		sessions:  repos.Sessions,
		schedules: repos.Schedules,
		photos:    repos.PhotoReports,
		notifier:  notifier,
		loc:       loc,
		now:       now,
		logger:    logger.Named("session"),
	}
}

// day - ключевая дата сессии: полночь в часовом поясе клуба
func (s *trainingSessionService) day(date time.Time) time.Time {
	if date.IsZero() {
		date = s.now()
	}
	return timing.StartOfDay(date, s.loc)
}

func trainerOf(schedule *models.Schedule) int64 {
	if schedule.TrainerID == nil {
		return 0
	}
	return *schedule.TrainerID
}

func (s *trainingSessionService) authorize(ctx context.Context, actor models.Actor, scheduleID int64) (*models.Schedule, error) {
	schedule, err := s.schedules.GetByID(ctx, scheduleID)
	if err != nil {
		return nil, fmt.Errorf("ошибка получения расписания: %w", err)
	}
	if schedule == nil {
		return nil, service.NotFound("Schedule not found")
	}

	d := access.Decide(actor, access.SessionManage, access.Resource{GroupTrainerID: trainerOf(schedule)})
	if !d.Allowed {
		return nil, service.Forbidden(d.Reason)
	}
	return schedule, nil
}

// findPhoto - самое свежее фото нужного типа по расписанию за календарный день
func (s *trainingSessionService) findPhoto(ctx context.Context, photoType models.PhotoReportType, scheduleID int64, day time.Time) (*models.PhotoReport, error) {
	from, to := timing.DayRange(day, s.loc)
	photo, err := s.photos.FindLatest(ctx, models.PhotoReportFilter{
		Type:        photoType,
		Related:     models.ScheduleRelation(scheduleID),
		CreatedFrom: from,
		CreatedTo:   to,
	})
	if err != nil {
		return nil, fmt.Errorf("ошибка поиска фотоотчёта: %w", err)
	}
	return photo, nil
}

func (s *trainingSessionService) Start(ctx context.Context, actor models.Actor, scheduleID int64, date time.Time) (*models.TrainingSession, error) {
	schedule, err := s.authorize(ctx, actor, scheduleID)
	if err != nil {
		return nil, err
	}

	day := s.day(date)
	photo, err := s.findPhoto(ctx, models.PhotoTrainingBefore, schedule.ID, day)
	if err != nil {
		return nil, err
	}
	if photo == nil {
		return nil, service.Precondition(msgBeforePhotoRequired)
	}

	key := models.SessionKey{ScheduleID: schedule.ID, SessionDate: day}
	existing, err := s.sessions.Get(ctx, key)
	if err != nil {
		return nil, fmt.Errorf("ошибка получения сессии: %w", err)
	}
	if existing != nil && existing.Status == models.SessionFinished {
		return nil, service.Precondition(msgAlreadyFinished)
	}

	now := s.now()
	if existing == nil {
		session := &models.TrainingSession{
			ScheduleID:          schedule.ID,
			GroupID:             schedule.GroupID,
			TrainerID:           trainerOf(schedule),
			SessionDate:         day,
			Status:              models.SessionStarted,
			StartedAt:           &now,
			BeforePhotoReportID: &photo.ID,
		}
		err = s.sessions.Insert(ctx, session)
		if err == nil {
			s.logger.Info("тренировка начата",
				zap.Int64("schedule_id", schedule.ID),
				zap.String("date", day.Format("2006-01-02")),
				zap.Int64("actor", actor.UserID),
			)
			return session, nil
		}
		if !errors.Is(err, repository.ErrDuplicate) {
			return nil, fmt.Errorf("ошибка создания сессии: %w", err)
		}

		// параллельный Start успел вставить строку первым
		s.logger.Debug("сессия уже создана, обновляем существующую", zap.Int64("schedule_id", schedule.ID))
		existing, err = s.sessions.Get(ctx, key)
		if err != nil {
			return nil, fmt.Errorf("ошибка получения сессии: %w", err)
		}
		if existing == nil {
			return nil, fmt.Errorf("сессия %d/%s не найдена после конфликта вставки", schedule.ID, day.Format("2006-01-02"))
		}
	}

	updated, err := s.sessions.MarkStarted(ctx, existing.ID, now, photo.ID)
	if err != nil {
		return nil, fmt.Errorf("ошибка обновления сессии: %w", err)
	}
	if updated == nil {
		return nil, service.Precondition(msgAlreadyFinished)
	}
	return updated, nil
}

func (s *trainingSessionService) Finish(ctx context.Context, actor models.Actor, scheduleID int64, date time.Time) (*service.FinishResult, error) {
	schedule, err := s.authorize(ctx, actor, scheduleID)
	if err != nil {
		return nil, err
	}

	day := s.day(date)
	key := models.SessionKey{ScheduleID: schedule.ID, SessionDate: day}
	existing, err := s.sessions.Get(ctx, key)
	if err != nil {
		return nil, fmt.Errorf("ошибка получения сессии: %w", err)
	}
	// строка, созданная загрузкой фото, ещё не считается начатой тренировкой
	if existing == nil || existing.Status == models.SessionNotStarted {
		return nil, service.Precondition(msgNotStarted)
	}
	if existing.Status == models.SessionFinished {
		return &service.FinishResult{Session: existing, Message: msgFinishedNote}, nil
	}

	photo, err := s.findPhoto(ctx, models.PhotoTrainingAfter, schedule.ID, day)
	if err != nil {
		return nil, err
	}
	if photo == nil {
		return nil, service.Precondition(msgAfterPhotoRequired)
	}

	updated, err := s.sessions.MarkFinished(ctx, existing.ID, s.now(), photo.ID)
	if err != nil {
		return nil, fmt.Errorf("ошибка обновления сессии: %w", err)
	}
	if updated == nil {
		current, err := s.sessions.Get(ctx, key)
		if err != nil {
			return nil, fmt.Errorf("ошибка получения сессии: %w", err)
		}
		if current != nil && current.Status == models.SessionFinished {
			return &service.FinishResult{Session: current, Message: msgFinishedNote}, nil
		}
		return nil, service.Precondition(msgNotStarted)
	}

	s.logger.Info("тренировка завершена",
		zap.Int64("schedule_id", schedule.ID),
		zap.String("date", day.Format("2006-01-02")),
		zap.Int64("actor", actor.UserID),
	)
	s.notifier.SessionFinished(ctx, updated)

	return &service.FinishResult{Session: updated}, nil
}

func (s *trainingSessionService) QueryStatuses(ctx context.Context, actor models.Actor, scheduleIDs []int64, date time.Time) (*service.SessionStatuses, error) {
	ids := unique(scheduleIDs)
	if len(ids) == 0 {
		return nil, service.Validation("No valid scheduleIds provided")
	}

	schedules, err := s.schedules.GetByIDs(ctx, ids)
	if err != nil {
		return nil, fmt.Errorf("ошибка получения расписаний: %w", err)
	}
	if len(schedules) != len(ids) {
		return nil, service.NotFound("One or more schedules not found")
	}

	// всё или ничего: без частичных ответов
	for i := range schedules {
		d := access.Decide(actor, access.SessionManage, access.Resource{GroupTrainerID: trainerOf(&schedules[i])})
		if !d.Allowed {
			return nil, service.Forbidden("Not authorized for some schedules")
		}
	}

	day := s.day(date)
	sessions, err := s.sessions.GetBySchedules(ctx, ids, day)
	if err != nil {
		return nil, fmt.Errorf("ошибка получения сессий: %w", err)
	}

	statuses := make(map[int64]models.SessionStatus, len(ids))
	for _, id := range ids {
		statuses[id] = models.SessionNotStarted
	}
	for _, session := range sessions {
		statuses[session.ScheduleID] = session.Status
	}

	return &service.SessionStatuses{Date: day.Format("2006-01-02"), Statuses: statuses}, nil
}

func (s *trainingSessionService) LinkPhoto(ctx context.Context, schedule *models.Schedule, report *models.PhotoReport) error {
	if !report.Type.IsTraining() {
		return nil
	}

	session := &models.TrainingSession{
		ScheduleID:  schedule.ID,
		GroupID:     schedule.GroupID,
		TrainerID:   trainerOf(schedule),
		SessionDate: timing.StartOfDay(report.CreatedAt, s.loc),
	}
	if err := s.sessions.LinkPhoto(ctx, session, report.Type, report.ID); err != nil {
		return fmt.Errorf("ошибка привязки фото к сессии: %w", err)
	}
	return nil
}

func unique(ids []int64) []int64 {
	seen := make(map[int64]bool, len(ids))
	out := make([]int64, 0, len(ids))
	for _, id := range ids {
		if id <= 0 || seen[id] {
			continue
		}
		seen[id] = true
		out = append(out, id)
	}
	return out
}
