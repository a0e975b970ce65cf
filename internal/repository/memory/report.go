package memory

import (
	"context"
	"ortus-club/internal/models"
	"sort"
)

type timingReportRepository struct {
	db *DB
}

func (r *timingReportRepository) Create(_ context.Context, report *models.TimingReport) error {
	r.db.mu.Lock()
	defer r.db.mu.Unlock()

	report.ID = r.db.id()
	report.CreatedAt = r.db.now()
	r.db.timing[report.ID] = *report
	return nil
}

func (r *timingReportRepository) GetByID(_ context.Context, id int64) (*models.TimingReport, error) {
	r.db.mu.RLock()
	defer r.db.mu.RUnlock()

	if t, ok := r.db.timing[id]; ok {
		return &t, nil
	}
	return nil, nil
}

func (r *timingReportRepository) List(_ context.Context, filter models.TimingReportFilter) ([]models.TimingReport, error) {
	r.db.mu.RLock()
	defer r.db.mu.RUnlock()

	var reports []models.TimingReport
	for _, t := range r.db.timing {
		if filter.TrainerID != 0 && t.TrainerID != filter.TrainerID {
			continue
		}
		day := t.TrainingDate.Format("2006-01-02")
		if !filter.From.IsZero() && day < filter.From.Format("2006-01-02") {
			continue
		}
		if !filter.To.IsZero() && day > filter.To.Format("2006-01-02") {
			continue
		}
		if filter.IsLate != nil && t.IsLate != *filter.IsLate {
			continue
		}
		reports = append(reports, t)
	}
	sort.Slice(reports, func(i, j int) bool {
		if !reports[i].TrainingDate.Equal(reports[j].TrainingDate) {
			return reports[i].TrainingDate.After(reports[j].TrainingDate)
		}
		return reports[i].CreatedAt.After(reports[j].CreatedAt)
	})
	return reports, nil
}

func (r *timingReportRepository) Delete(_ context.Context, id int64) error {
	r.db.mu.Lock()
	defer r.db.mu.Unlock()
	delete(r.db.timing, id)
	return nil
}

type cleaningReportRepository struct {
	db *DB
}

func (r *cleaningReportRepository) Create(_ context.Context, report *models.CleaningReport) error {
	r.db.mu.Lock()
	defer r.db.mu.Unlock()

	report.ID = r.db.id()
	report.CreatedAt = r.db.now()
	r.db.cleaning[report.ID] = *report
	return nil
}

func (r *cleaningReportRepository) GetByID(_ context.Context, id int64) (*models.CleaningReport, error) {
	r.db.mu.RLock()
	defer r.db.mu.RUnlock()

	if c, ok := r.db.cleaning[id]; ok {
		return &c, nil
	}
	return nil, nil
}

func (r *cleaningReportRepository) List(_ context.Context, filter models.CleaningReportFilter) ([]models.CleaningReport, error) {
	r.db.mu.RLock()
	defer r.db.mu.RUnlock()

	var reports []models.CleaningReport
	for _, c := range r.db.cleaning {
		if filter.StaffID != 0 && c.StaffID != filter.StaffID {
			continue
		}
		if !inRange(c.Date, filter.From, filter.To) {
			continue
		}
		reports = append(reports, c)
	}
	sort.Slice(reports, func(i, j int) bool {
		if !reports[i].Date.Equal(reports[j].Date) {
			return reports[i].Date.After(reports[j].Date)
		}
		return reports[i].CreatedAt.After(reports[j].CreatedAt)
	})
	return reports, nil
}
