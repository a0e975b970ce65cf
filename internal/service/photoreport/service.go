package photoreport_service

import (
	"context"
	"fmt"
	"ortus-club/internal/models"
	"ortus-club/internal/repository"
	"ortus-club/internal/service"
	"ortus-club/internal/service/access"
	"strings"

	"go.uber.org/zap"
)

type photoReportService struct {
	photos    repository.PhotoReportRepository
	schedules repository.ScheduleRepository
	cleaning  repository.CleaningReportRepository
	sessions  service.TrainingSessionService
	logger    *zap.Logger
}

func NewPhotoReportService(repos *repository.Repositories, sessions service.TrainingSessionService, logger *zap.Logger) service.PhotoReportService {
	return &photoReportService{
		photos:    repos.PhotoReports,
		schedules: repos.Schedules,
		cleaning:  repos.CleaningReports,
		sessions:  sessions,
		logger:    logger.Named("photo_report"),
	}
}

func (s *photoReportService) Create(ctx context.Context, actor models.Actor, input service.PhotoReportInput) (*models.PhotoReport, error) {
	if !input.Type.Valid() {
		return nil, service.Validation("Invalid report type")
	}
	action := access.PhotoSubmitCleaning
	if input.Type.IsTraining() {
		action = access.PhotoSubmitTraining
	}
	if d := access.Permits(actor, action); !d.Allowed {
		return nil, service.Forbidden(d.Reason)
	}

	photos := make([]string, 0, len(input.Photos))
	for _, p := range input.Photos {
		if p = strings.TrimSpace(p); p != "" {
			photos = append(photos, p)
		}
	}
	if len(photos) == 0 {
		return nil, service.Validation("At least one photo is required")
	}

	report := &models.PhotoReport{
		Type:     input.Type,
		AuthorID: actor.UserID,
		Photos:   photos,
		Comment:  input.Comment,
	}

	var schedule *models.Schedule
	var err error
	if input.Type.IsTraining() {
		schedule, err = s.trainingTarget(ctx, actor, input.RelatedID)
		if err != nil {
			return nil, err
		}
		report.Related = models.ScheduleRelation(schedule.ID)
	} else {
		if err := s.cleaningTarget(ctx, actor, input.RelatedID); err != nil {
			return nil, err
		}
		report.Related = models.CleaningReportRelation(input.RelatedID)
	}

	if err := s.photos.Create(ctx, report); err != nil {
		return nil, fmt.Errorf("ошибка сохранения фотоотчёта: %w", err)
	}

	if schedule != nil {
		// отчёт уже сохранён, ошибка привязки не должна его терять
		if err := s.sessions.LinkPhoto(ctx, schedule, report); err != nil {
			s.logger.Error("не удалось привязать фото к сессии",
				zap.Int64("photo_report_id", report.ID),
				zap.Int64("schedule_id", schedule.ID),
				zap.Error(err),
			)
		}
	}

	return report, nil
}

func (s *photoReportService) trainingTarget(ctx context.Context, actor models.Actor, scheduleID int64) (*models.Schedule, error) {
	if scheduleID == 0 {
		return nil, service.Validation("relatedId (scheduleId) is required")
	}
	schedule, err := s.schedules.GetByID(ctx, scheduleID)
	if err != nil {
		return nil, fmt.Errorf("ошибка получения расписания: %w", err)
	}
	if schedule == nil {
		return nil, service.NotFound("Schedule not found")
	}
	if schedule.TrainerID == nil {
		return nil, service.Precondition("Schedule is missing trainer information. Обратитесь к администратору.")
	}

	d := access.Decide(actor, access.PhotoSubmitTraining, access.Resource{GroupTrainerID: *schedule.TrainerID})
	if !d.Allowed {
		return nil, service.Forbidden(d.Reason)
	}
	return schedule, nil
}

func (s *photoReportService) cleaningTarget(ctx context.Context, actor models.Actor, reportID int64) error {
	if reportID == 0 {
		return service.Validation("relatedId (cleaningReportId) is required")
	}
	report, err := s.cleaning.GetByID(ctx, reportID)
	if err != nil {
		return fmt.Errorf("ошибка получения отчёта об уборке: %w", err)
	}
	if report == nil {
		return service.NotFound("Cleaning report not found")
	}

	d := access.Decide(actor, access.PhotoSubmitCleaning, access.Resource{OwnerID: report.StaffID})
	if !d.Allowed {
		return service.Forbidden(d.Reason)
	}
	return nil
}

// List - руководство видит всё, тренеры и техперсонал только свои отчёты
func (s *photoReportService) List(ctx context.Context, actor models.Actor, filter models.PhotoReportFilter) ([]models.PhotoReport, error) {
	d := access.Decide(actor, access.PhotoList, access.Resource{})
	if !d.Allowed {
		return nil, service.Forbidden(d.Reason)
	}
	if !d.Elevated {
		filter.AuthorID = actor.UserID
	}

	reports, err := s.photos.List(ctx, filter)
	if err != nil {
		return nil, fmt.Errorf("ошибка получения фотоотчётов: %w", err)
	}
	return reports, nil
}

func (s *photoReportService) Get(ctx context.Context, actor models.Actor, id int64) (*models.PhotoReport, error) {
	report, err := s.photos.GetByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("ошибка получения фотоотчёта: %w", err)
	}
	if report == nil {
		return nil, service.NotFound("Photo report not found")
	}

	if d := access.Decide(actor, access.PhotoView, access.Resource{OwnerID: report.AuthorID}); !d.Allowed {
		return nil, service.Forbidden(d.Reason)
	}
	return report, nil
}
