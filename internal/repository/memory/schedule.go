package memory

import (
	"context"
	"ortus-club/internal/models"
	"sort"
)

type scheduleRepository struct {
	db *DB
}

// withGroup заполняет joined-поля, как JOIN в postgres
func (r *scheduleRepository) withGroup(s models.Schedule) models.Schedule {
	if g, ok := r.db.groups[s.GroupID]; ok {
		trainerID := g.TrainerID
		s.GroupName = g.Name
		s.TrainerID = &trainerID
	}
	return s
}

func (r *scheduleRepository) Create(_ context.Context, schedule *models.Schedule) error {
	r.db.mu.Lock()
	defer r.db.mu.Unlock()

	schedule.ID = r.db.id()
	schedule.CreatedAt = r.db.now()
	r.db.schedules[schedule.ID] = *schedule
	return nil
}

func (r *scheduleRepository) GetByID(_ context.Context, id int64) (*models.Schedule, error) {
	r.db.mu.RLock()
	defer r.db.mu.RUnlock()

	s, ok := r.db.schedules[id]
	if !ok {
		return nil, nil
	}
	s = r.withGroup(s)
	return &s, nil
}

func (r *scheduleRepository) GetByIDs(_ context.Context, ids []int64) ([]models.Schedule, error) {
	r.db.mu.RLock()
	defer r.db.mu.RUnlock()

	seen := make(map[int64]bool, len(ids))
	var schedules []models.Schedule
	for _, id := range ids {
		if s, ok := r.db.schedules[id]; ok && !seen[id] {
			seen[id] = true
			schedules = append(schedules, r.withGroup(s))
		}
	}
	return schedules, nil
}

func (r *scheduleRepository) list(match func(models.Schedule) bool) []models.Schedule {
	var schedules []models.Schedule
	for _, s := range r.db.schedules {
		if match(s) {
			schedules = append(schedules, r.withGroup(s))
		}
	}
	sort.Slice(schedules, func(i, j int) bool {
		if schedules[i].DayOfWeek != schedules[j].DayOfWeek {
			return schedules[i].DayOfWeek < schedules[j].DayOfWeek
		}
		return schedules[i].StartTime < schedules[j].StartTime
	})
	return schedules
}

func (r *scheduleRepository) GetByGroup(_ context.Context, groupID int64) ([]models.Schedule, error) {
	r.db.mu.RLock()
	defer r.db.mu.RUnlock()
	return r.list(func(s models.Schedule) bool { return s.GroupID == groupID }), nil
}

func (r *scheduleRepository) GetAll(_ context.Context) ([]models.Schedule, error) {
	r.db.mu.RLock()
	defer r.db.mu.RUnlock()
	return r.list(func(models.Schedule) bool { return true }), nil
}

func (r *scheduleRepository) Delete(_ context.Context, id int64) error {
	r.db.mu.Lock()
	defer r.db.mu.Unlock()
	delete(r.db.schedules, id)
	return nil
}
