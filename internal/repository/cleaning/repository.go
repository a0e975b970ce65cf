package cleaning

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"ortus-club/internal/models"
	"ortus-club/internal/repository"

	"github.com/jmoiron/sqlx"
)

type cleaningReportRepository struct {
	db *sqlx.DB
}

func NewCleaningReportRepository(db *sqlx.DB) repository.CleaningReportRepository {
	return &cleaningReportRepository{db: db}
}

const selectCleaning = `SELECT id, staff_id, date, zones, photos, comment, created_at FROM ortus.cleaning_reports`

func (r *cleaningReportRepository) Create(ctx context.Context, report *models.CleaningReport) error {
	query := `
		INSERT INTO ortus.cleaning_reports (staff_id, date, zones, photos, comment)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING id, created_at
	`
	err := r.db.QueryRowContext(ctx, query,
		report.StaffID,
		report.Date,
		report.Zones,
		report.Photos,
		report.Comment,
	).Scan(&report.ID, &report.CreatedAt)
	if err != nil {
		return fmt.Errorf("insert cleaning report: %w", err)
	}
	return nil
}

func (r *cleaningReportRepository) GetByID(ctx context.Context, id int64) (*models.CleaningReport, error) {
	report := &models.CleaningReport{}
	if err := r.db.GetContext(ctx, report, selectCleaning+` WHERE id = $1`, id); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, err
	}
	return report, nil
}

func (r *cleaningReportRepository) List(ctx context.Context, filter models.CleaningReportFilter) ([]models.CleaningReport, error) {
	c := &repository.Conditions{}
	if filter.StaffID != 0 {
		c.Add("staff_id = $%d", filter.StaffID)
	}
	if !filter.From.IsZero() {
		c.Add("date >= $%d", filter.From)
	}
	if !filter.To.IsZero() {
		c.Add("date < $%d", filter.To)
	}

	query := selectCleaning + c.Where() + ` ORDER BY date DESC, created_at DESC`

	var reports []models.CleaningReport
	if err := r.db.SelectContext(ctx, &reports, query, c.Args()...); err != nil {
		return nil, err
	}
	return reports, nil
}
