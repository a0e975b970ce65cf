package memory

import (
	"context"
	"ortus-club/internal/models"
	"sort"
)

type photoReportRepository struct {
	db *DB
}

func matchPhoto(p models.PhotoReport, f models.PhotoReportFilter) bool {
	if f.Type != "" && p.Type != f.Type {
		return false
	}
	if f.AuthorID != 0 && p.AuthorID != f.AuthorID {
		return false
	}
	if !f.Related.IsZero() && p.Related != f.Related {
		return false
	}
	return inRange(p.CreatedAt, f.CreatedFrom, f.CreatedTo)
}

func (r *photoReportRepository) Create(_ context.Context, report *models.PhotoReport) error {
	r.db.mu.Lock()
	defer r.db.mu.Unlock()

	report.ID = r.db.id()
	if report.CreatedAt.IsZero() {
		report.CreatedAt = r.db.now()
	}
	stored := *report
	stored.Photos = append([]string(nil), report.Photos...)
	r.db.photos[report.ID] = stored
	return nil
}

func (r *photoReportRepository) GetByID(_ context.Context, id int64) (*models.PhotoReport, error) {
	r.db.mu.RLock()
	defer r.db.mu.RUnlock()

	if p, ok := r.db.photos[id]; ok {
		return &p, nil
	}
	return nil, nil
}

func (r *photoReportRepository) FindLatest(ctx context.Context, filter models.PhotoReportFilter) (*models.PhotoReport, error) {
	reports, err := r.List(ctx, filter)
	if err != nil || len(reports) == 0 {
		return nil, err
	}
	return &reports[0], nil
}

func (r *photoReportRepository) Exists(_ context.Context, filter models.PhotoReportFilter) (bool, error) {
	r.db.mu.RLock()
	defer r.db.mu.RUnlock()

	for _, p := range r.db.photos {
		if matchPhoto(p, filter) {
			return true, nil
		}
	}
	return false, nil
}

// List - от новых к старым
func (r *photoReportRepository) List(_ context.Context, filter models.PhotoReportFilter) ([]models.PhotoReport, error) {
	r.db.mu.RLock()
	defer r.db.mu.RUnlock()

	var reports []models.PhotoReport
	for _, p := range r.db.photos {
		if matchPhoto(p, filter) {
			reports = append(reports, p)
		}
	}
	sort.Slice(reports, func(i, j int) bool {
		if !reports[i].CreatedAt.Equal(reports[j].CreatedAt) {
			return reports[i].CreatedAt.After(reports[j].CreatedAt)
		}
		return reports[i].ID > reports[j].ID
	})
	return reports, nil
}
