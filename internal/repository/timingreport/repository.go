package timingreport

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"ortus-club/internal/models"
	"ortus-club/internal/repository"
	"ortus-club/internal/timing"
	"time"

	"github.com/jmoiron/sqlx"
)

type timingReportRepository struct {
	db  *sqlx.DB
	loc *time.Location
}

func NewTimingReportRepository(db *sqlx.DB, loc *time.Location) repository.TimingReportRepository {
	return &timingReportRepository{db: db, loc: loc}
}

const selectReport = `SELECT id, trainer_id, training_date, slot, comment, attachments, is_late, created_at FROM ortus.timing_reports`

func (r *timingReportRepository) Create(ctx context.Context, report *models.TimingReport) error {
	query := `
		INSERT INTO ortus.timing_reports (trainer_id, training_date, slot, comment, attachments, is_late)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING id, created_at
	`
	err := r.db.QueryRowContext(ctx, query,
		report.TrainerID,
		report.TrainingDate.Format("2006-01-02"),
		report.Slot,
		report.Comment,
		report.Attachments,
		report.IsLate,
	).Scan(&report.ID, &report.CreatedAt)
	if err != nil {
		return fmt.Errorf("insert timing report: %w", err)
	}
	return nil
}

func (r *timingReportRepository) GetByID(ctx context.Context, id int64) (*models.TimingReport, error) {
	report := &models.TimingReport{}
	if err := r.db.GetContext(ctx, report, selectReport+` WHERE id = $1`, id); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, err
	}
	report.TrainingDate = timing.CalendarDate(report.TrainingDate, r.loc)
	return report, nil
}

func (r *timingReportRepository) List(ctx context.Context, filter models.TimingReportFilter) ([]models.TimingReport, error) {
	c := &repository.Conditions{}
	if filter.TrainerID != 0 {
		c.Add("trainer_id = $%d", filter.TrainerID)
	}
	if !filter.From.IsZero() {
		c.Add("training_date >= $%d", filter.From.Format("2006-01-02"))
	}
	if !filter.To.IsZero() {
		c.Add("training_date <= $%d", filter.To.Format("2006-01-02"))
	}
	if filter.IsLate != nil {
		c.Add("is_late = $%d", *filter.IsLate)
	}

	query := selectReport + c.Where() + ` ORDER BY training_date DESC, created_at DESC`

	var reports []models.TimingReport
	if err := r.db.SelectContext(ctx, &reports, query, c.Args()...); err != nil {
		return nil, err
	}
	for i := range reports {
		reports[i].TrainingDate = timing.CalendarDate(reports[i].TrainingDate, r.loc)
	}
	return reports, nil
}

func (r *timingReportRepository) Delete(ctx context.Context, id int64) error {
	_, err := r.db.ExecContext(ctx, `DELETE FROM ortus.timing_reports WHERE id = $1`, id)
	return err
}
