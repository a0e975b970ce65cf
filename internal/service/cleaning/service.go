package cleaning_service

import (
	"context"
	"fmt"
	"ortus-club/internal/models"
	"ortus-club/internal/repository"
	"ortus-club/internal/service"
	"ortus-club/internal/service/access"
	"ortus-club/internal/timing"
	"strings"

	"go.uber.org/zap"
)

type cleaningReportService struct {
	reports repository.CleaningReportRepository
	photos  service.PhotoReportService
	now     timing.Clock
	logger  *zap.Logger
}

func NewCleaningReportService(repos *repository.Repositories, photos service.PhotoReportService, now timing.Clock, logger *zap.Logger) service.CleaningReportService {
	return &cleaningReportService{
		reports: repos.CleaningReports,
		photos:  photos,
		now:     now,
		logger:  logger.Named("cleaning"),
	}
}

func validZone(zone string) bool {
	for _, z := range models.CleaningZones {
		if z == zone {
			return true
		}
	}
	return false
}

// Create сохраняет отчёт об уборке и фотоотчёт типа cleaning к нему
func (s *cleaningReportService) Create(ctx context.Context, actor models.Actor, input service.CleaningReportInput) (*models.CleaningReport, error) {
	if d := access.Decide(actor, access.CleaningSubmit, access.Resource{}); !d.Allowed {
		return nil, service.Forbidden(d.Reason)
	}

	if len(input.Zones) == 0 {
		return nil, service.Validation("At least one zone is required")
	}
	for _, zone := range input.Zones {
		if !validZone(zone) {
			return nil, service.Validation(fmt.Sprintf("Invalid zone: %s", zone))
		}
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

	date := input.Date
	if date.IsZero() {
		date = s.now()
	}

	report := &models.CleaningReport{
		StaffID: actor.UserID,
		Date:    date,
		Zones:   input.Zones,
		Photos:  photos,
		Comment: input.Comment,
	}
	if err := s.reports.Create(ctx, report); err != nil {
		return nil, fmt.Errorf("ошибка сохранения отчёта об уборке: %w", err)
	}

	_, err := s.photos.Create(ctx, actor, service.PhotoReportInput{
		Type:      models.PhotoCleaning,
		RelatedID: report.ID,
		Photos:    photos,
		Comment:   input.Comment,
	})
	if err != nil {
		return nil, fmt.Errorf("ошибка сохранения фотоотчёта уборки: %w", err)
	}

	s.logger.Info("отчёт об уборке создан",
		zap.Int64("report_id", report.ID),
		zap.Int64("staff_id", report.StaffID),
		zap.Strings("zones", input.Zones),
	)
	return report, nil
}

func (s *cleaningReportService) List(ctx context.Context, actor models.Actor, filter models.CleaningReportFilter) ([]models.CleaningReport, error) {
	d := access.Decide(actor, access.CleaningList, access.Resource{})
	if !d.Allowed {
		return nil, service.Forbidden(d.Reason)
	}
	if !d.Elevated {
		filter.StaffID = actor.UserID
	}

	reports, err := s.reports.List(ctx, filter)
	if err != nil {
		return nil, fmt.Errorf("ошибка получения отчётов об уборке: %w", err)
	}
	return reports, nil
}
