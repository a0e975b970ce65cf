package photoreport

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"ortus-club/internal/models"
	"ortus-club/internal/repository"
	"time"

	"github.com/jmoiron/sqlx"
	"github.com/lib/pq"
)

type photoReportRepository struct {
	db *sqlx.DB
}

func NewPhotoReportRepository(db *sqlx.DB) repository.PhotoReportRepository {
	return &photoReportRepository{db: db}
}

// row - плоское представление связи (related_kind, related_id)
type row struct {
	ID          int64          `db:"id"`
	Type        string         `db:"type"`
	AuthorID    int64          `db:"author_id"`
	RelatedKind sql.NullString `db:"related_kind"`
	RelatedID   sql.NullInt64  `db:"related_id"`
	Photos      pq.StringArray `db:"photos"`
	Comment     string         `db:"comment"`
	CreatedAt   time.Time      `db:"created_at"`
}

func (r row) toModel() models.PhotoReport {
	report := models.PhotoReport{
		ID:        r.ID,
		Type:      models.PhotoReportType(r.Type),
		AuthorID:  r.AuthorID,
		Photos:    []string(r.Photos),
		Comment:   r.Comment,
		CreatedAt: r.CreatedAt,
	}
	if r.RelatedKind.Valid && r.RelatedID.Valid {
		report.Related = models.Relation{Kind: models.RelationKind(r.RelatedKind.String), ID: r.RelatedID.Int64}
	}
	return report
}

const selectPhotoReport = `SELECT id, type, author_id, related_kind, related_id, photos, comment, created_at FROM ortus.photo_reports`

func conditions(filter models.PhotoReportFilter) *repository.Conditions {
	c := &repository.Conditions{}
	if filter.Type != "" {
		c.Add("type = $%d", string(filter.Type))
	}
	if filter.AuthorID != 0 {
		c.Add("author_id = $%d", filter.AuthorID)
	}
	if !filter.Related.IsZero() {
		c.Add("related_kind = $%d", string(filter.Related.Kind))
		c.Add("related_id = $%d", filter.Related.ID)
	}
	if !filter.CreatedFrom.IsZero() {
		c.Add("created_at >= $%d", filter.CreatedFrom)
	}
	if !filter.CreatedTo.IsZero() {
		c.Add("created_at < $%d", filter.CreatedTo)
	}
	return c
}

func (r *photoReportRepository) Create(ctx context.Context, report *models.PhotoReport) error {
	var kind sql.NullString
	var relatedID sql.NullInt64
	if !report.Related.IsZero() {
		kind = sql.NullString{String: string(report.Related.Kind), Valid: true}
		relatedID = sql.NullInt64{Int64: report.Related.ID, Valid: true}
	}

	query := `
		INSERT INTO ortus.photo_reports (type, author_id, related_kind, related_id, photos, comment)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING id, created_at
	`
	err := r.db.QueryRowContext(ctx, query,
		string(report.Type),
		report.AuthorID,
		kind,
		relatedID,
		pq.StringArray(report.Photos),
		report.Comment,
	).Scan(&report.ID, &report.CreatedAt)
	if err != nil {
		return fmt.Errorf("insert photo report: %w", err)
	}
	return nil
}

func (r *photoReportRepository) GetByID(ctx context.Context, id int64) (*models.PhotoReport, error) {
	var res row
	if err := r.db.GetContext(ctx, &res, selectPhotoReport+` WHERE id = $1`, id); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, err
	}
	report := res.toModel()
	return &report, nil
}

func (r *photoReportRepository) FindLatest(ctx context.Context, filter models.PhotoReportFilter) (*models.PhotoReport, error) {
	c := conditions(filter)
	query := selectPhotoReport + c.Where() + ` ORDER BY created_at DESC, id DESC LIMIT 1`

	var res row
	if err := r.db.GetContext(ctx, &res, query, c.Args()...); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, err
	}
	report := res.toModel()
	return &report, nil
}

func (r *photoReportRepository) Exists(ctx context.Context, filter models.PhotoReportFilter) (bool, error) {
	c := conditions(filter)
	query := `SELECT EXISTS(SELECT 1 FROM ortus.photo_reports` + c.Where() + `)`

	var exists bool
	err := r.db.QueryRowContext(ctx, query, c.Args()...).Scan(&exists)
	return exists, err
}

func (r *photoReportRepository) List(ctx context.Context, filter models.PhotoReportFilter) ([]models.PhotoReport, error) {
	c := conditions(filter)
	query := selectPhotoReport + c.Where() + ` ORDER BY created_at DESC, id DESC`

	var rows []row
	if err := r.db.SelectContext(ctx, &rows, query, c.Args()...); err != nil {
		return nil, err
	}

	reports := make([]models.PhotoReport, 0, len(rows))
	for _, res := range rows {
		reports = append(reports, res.toModel())
	}
	return reports, nil
}
