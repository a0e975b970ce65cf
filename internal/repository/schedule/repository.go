package schedule

import (
	"context"
	"database/sql"
	"errors"
	"ortus-club/internal/models"
	"ortus-club/internal/repository"

	"github.com/jmoiron/sqlx"
	"github.com/lib/pq"
)

type scheduleRepository struct {
	db *sqlx.DB
}

func NewScheduleRepository(db *sqlx.DB) repository.ScheduleRepository {
	return &scheduleRepository{db: db}
}

// тренер подтягивается из группы, у слота своего тренера нет
const selectSchedule = `
	SELECT
		s.id, s.group_id, s.day_of_week, s.start_time, s.end_time, s.location, s.created_at,
		g.name AS group_name, g.trainer_id
	FROM ortus.schedules s
	JOIN ortus.groups g ON g.id = s.group_id
`

func (r *scheduleRepository) Create(ctx context.Context, schedule *models.Schedule) error {
	query := `
		INSERT INTO ortus.schedules (group_id, day_of_week, start_time, end_time, location)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING id, created_at
	`
	return r.db.QueryRowContext(ctx, query,
		schedule.GroupID,
		schedule.DayOfWeek,
		schedule.StartTime,
		schedule.EndTime,
		schedule.Location,
	).Scan(&schedule.ID, &schedule.CreatedAt)
}

func (r *scheduleRepository) GetByID(ctx context.Context, id int64) (*models.Schedule, error) {
	schedule := &models.Schedule{}
	if err := r.db.GetContext(ctx, schedule, selectSchedule+` WHERE s.id = $1`, id); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, err
	}
	return schedule, nil
}

func (r *scheduleRepository) GetByIDs(ctx context.Context, ids []int64) ([]models.Schedule, error) {
	var schedules []models.Schedule
	if err := r.db.SelectContext(ctx, &schedules, selectSchedule+` WHERE s.id = ANY($1)`, pq.Array(ids)); err != nil {
		return nil, err
	}
	return schedules, nil
}

func (r *scheduleRepository) GetByGroup(ctx context.Context, groupID int64) ([]models.Schedule, error) {
	var schedules []models.Schedule
	query := selectSchedule + ` WHERE s.group_id = $1 ORDER BY s.day_of_week, s.start_time`
	if err := r.db.SelectContext(ctx, &schedules, query, groupID); err != nil {
		return nil, err
	}
	return schedules, nil
}

func (r *scheduleRepository) GetAll(ctx context.Context) ([]models.Schedule, error) {
	var schedules []models.Schedule
	if err := r.db.SelectContext(ctx, &schedules, selectSchedule+` ORDER BY s.day_of_week, s.start_time`); err != nil {
		return nil, err
	}
	return schedules, nil
}

func (r *scheduleRepository) Delete(ctx context.Context, id int64) error {
	_, err := r.db.ExecContext(ctx, `DELETE FROM ortus.schedules WHERE id = $1`, id)
	return err
}
