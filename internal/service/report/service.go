package report_service

import (
	"context"
	"fmt"
	"ortus-club/internal/bot"
	"ortus-club/internal/models"
	"ortus-club/internal/repository"
	"ortus-club/internal/service"
	"ortus-club/internal/service/access"
	"ortus-club/internal/timing"
	"time"

	"github.com/go-playground/validator/v10"
	"go.uber.org/zap"
)

const maxAttachments = 4

var allowedMime = map[string]bool{
	"image/jpeg":      true,
	"image/png":       true,
	"application/pdf": true,
	"application/vnd.openxmlformats-officedocument.wordprocessingml.document": true,
}

type timingReportService struct {
	reports  repository.TimingReportRepository
	notifier bot.Notifier
	validate *validator.Validate
	loc      *time.Location
	now      timing.Clock
	logger   *zap.Logger
}

func NewTimingReportService(
	repos *repository.Repositories,
	notifier bot.Notifier,
	validate *validator.Validate,
	loc *time.Location,
	now timing.Clock,
	logger *zap.Logger,
) service.TimingReportService {
	return &timingReportService{
		reports:  repos.TimingReports,
		notifier: notifier,
		validate: validate,
		loc:      loc,
		now:      now,
		logger:   logger.Named("timing_report"),
	}
}

func (s *timingReportService) Create(ctx context.Context, actor models.Actor, input service.TimingReportInput) (*models.TimingReport, error) {
	if d := access.Decide(actor, access.TimingSubmit, access.Resource{}); !d.Allowed {
		return nil, service.Forbidden(d.Reason)
	}

	if input.TrainingDate.IsZero() || input.Slot == "" {
		return nil, service.Validation("Дата и слот обязательны")
	}
	if !timing.IsKnownSlot(input.Slot) {
		return nil, service.Validation("Invalid slot")
	}
	if len(input.Attachments) == 0 {
		return nil, service.Validation("Добавьте вложения")
	}
	if len(input.Attachments) > maxAttachments {
		return nil, service.Validation("Максимум 4 вложения")
	}

	now := s.now()
	date := timing.StartOfDay(input.TrainingDate, s.loc)
	canSubmit, err := timing.CanSubmitAt(date, input.Slot, now)
	if err != nil {
		return nil, err
	}
	if !canSubmit {
		return nil, service.Validation("Отправка доступна за 60 минут до тренировки")
	}

	for _, a := range input.Attachments {
		if err := s.validate.Struct(a); err != nil {
			return nil, service.Validation("Invalid attachment")
		}
		if !allowedMime[a.FileType] {
			return nil, service.Validation("Unsupported file type")
		}
	}

	isLate, err := timing.IsLateAt(date, input.Slot, now)
	if err != nil {
		return nil, err
	}

	report := &models.TimingReport{
		TrainerID:    actor.UserID,
		TrainingDate: date,
		Slot:         input.Slot,
		Comment:      input.Comment,
		Attachments:  input.Attachments,
		IsLate:       isLate,
	}
	if err := s.reports.Create(ctx, report); err != nil {
		return nil, fmt.Errorf("ошибка сохранения отчёта: %w", err)
	}

	if report.IsLate {
		s.logger.Info("отчёт сдан с опозданием",
			zap.Int64("trainer_id", report.TrainerID),
			zap.String("slot", report.Slot),
			zap.String("date", date.Format("2006-01-02")),
		)
		s.notifier.LateTimingReport(ctx, report)
	}
	return report, nil
}

func (s *timingReportService) ListMine(ctx context.Context, actor models.Actor) ([]models.TimingReport, error) {
	if d := access.Decide(actor, access.TimingListOwn, access.Resource{}); !d.Allowed {
		return nil, service.Forbidden(d.Reason)
	}
	return s.list(ctx, models.TimingReportFilter{TrainerID: actor.UserID})
}

func (s *timingReportService) ListAll(ctx context.Context, actor models.Actor, filter models.TimingReportFilter) ([]models.TimingReport, error) {
	if d := access.Decide(actor, access.TimingListAll, access.Resource{}); !d.Allowed {
		return nil, service.Forbidden(d.Reason)
	}
	return s.list(ctx, filter)
}

func (s *timingReportService) list(ctx context.Context, filter models.TimingReportFilter) ([]models.TimingReport, error) {
	reports, err := s.reports.List(ctx, filter)
	if err != nil {
		return nil, fmt.Errorf("ошибка получения отчётов: %w", err)
	}
	return reports, nil
}

func (s *timingReportService) Delete(ctx context.Context, actor models.Actor, id int64) error {
	report, err := s.reports.GetByID(ctx, id)
	if err != nil {
		return fmt.Errorf("ошибка получения отчёта: %w", err)
	}
	if report == nil {
		return service.NotFound("Report not found")
	}
	if d := access.Decide(actor, access.TimingDelete, access.Resource{OwnerID: report.TrainerID}); !d.Allowed {
		return service.Forbidden(d.Reason)
	}
	return s.reports.Delete(ctx, id)
}
