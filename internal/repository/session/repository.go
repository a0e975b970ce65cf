package session

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
	"github.com/lib/pq"
)

type trainingSessionRepository struct {
	db  *sqlx.DB
	loc *time.Location
}

func NewTrainingSessionRepository(db *sqlx.DB, loc *time.Location) repository.TrainingSessionRepository {
	return &trainingSessionRepository{db: db, loc: loc}
}

const sessionColumns = `
	id, schedule_id, group_id, trainer_id, session_date, status,
	started_at, finished_at, before_photo_report_id, after_photo_report_id,
	created_at, updated_at`

func dateParam(t time.Time) string {
	return t.Format("2006-01-02")
}

func (r *trainingSessionRepository) Insert(ctx context.Context, s *models.TrainingSession) error {
	query := `
		INSERT INTO ortus.training_sessions
		(schedule_id, group_id, trainer_id, session_date, status, started_at, before_photo_report_id)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		RETURNING id, created_at, updated_at
	`
	err := r.db.QueryRowContext(ctx, query,
		s.ScheduleID,
		s.GroupID,
		s.TrainerID,
		dateParam(s.SessionDate),
		s.Status,
		s.StartedAt,
		s.BeforePhotoReportID,
	).Scan(&s.ID, &s.CreatedAt, &s.UpdatedAt)
	if err != nil {
		if repository.IsUniqueViolation(err) {
			return repository.ErrDuplicate
		}
		return fmt.Errorf("insert training session: %w", err)
	}
	return nil
}

func (r *trainingSessionRepository) Get(ctx context.Context, key models.SessionKey) (*models.TrainingSession, error) {
	query := `SELECT ` + sessionColumns + ` FROM ortus.training_sessions WHERE schedule_id = $1 AND session_date = $2`

	session := &models.TrainingSession{}
	if err := r.db.GetContext(ctx, session, query, key.ScheduleID, dateParam(key.SessionDate)); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, err
	}
	session.SessionDate = timing.CalendarDate(session.SessionDate, r.loc)
	return session, nil
}

func (r *trainingSessionRepository) GetBySchedules(ctx context.Context, scheduleIDs []int64, sessionDate time.Time) ([]models.TrainingSession, error) {
	query := `SELECT ` + sessionColumns + ` FROM ortus.training_sessions WHERE schedule_id = ANY($1) AND session_date = $2`

	var sessions []models.TrainingSession
	if err := r.db.SelectContext(ctx, &sessions, query, pq.Array(scheduleIDs), dateParam(sessionDate)); err != nil {
		return nil, err
	}
	for i := range sessions {
		sessions[i].SessionDate = timing.CalendarDate(sessions[i].SessionDate, r.loc)
	}
	return sessions, nil
}

func (r *trainingSessionRepository) MarkStarted(ctx context.Context, id int64, startedAt time.Time, beforePhotoID int64) (*models.TrainingSession, error) {
	query := `
		UPDATE ortus.training_sessions
		SET status = 'started',
		    started_at = COALESCE(started_at, $2),
		    before_photo_report_id = $3,
		    updated_at = NOW()
		WHERE id = $1 AND status <> 'finished'
		RETURNING ` + sessionColumns

	return r.update(ctx, query, id, startedAt, beforePhotoID)
}

func (r *trainingSessionRepository) MarkFinished(ctx context.Context, id int64, finishedAt time.Time, afterPhotoID int64) (*models.TrainingSession, error) {
	query := `
		UPDATE ortus.training_sessions
		SET status = 'finished',
		    finished_at = $2,
		    after_photo_report_id = $3,
		    updated_at = NOW()
		WHERE id = $1 AND status = 'started'
		RETURNING ` + sessionColumns

	return r.update(ctx, query, id, finishedAt, afterPhotoID)
}

func (r *trainingSessionRepository) update(ctx context.Context, query string, args ...any) (*models.TrainingSession, error) {
	session := &models.TrainingSession{}
	if err := r.db.GetContext(ctx, session, query, args...); err != nil {
		// условие по статусу не выполнилось
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("update training session: %w", err)
	}
	session.SessionDate = timing.CalendarDate(session.SessionDate, r.loc)
	return session, nil
}

func (r *trainingSessionRepository) LinkPhoto(ctx context.Context, s *models.TrainingSession, photoType models.PhotoReportType, photoID int64) error {
	var column string
	switch photoType {
	case models.PhotoTrainingBefore:
		column = "before_photo_report_id"
	case models.PhotoTrainingAfter:
		column = "after_photo_report_id"
	default:
		return fmt.Errorf("photo type %q cannot be linked to a session", photoType)
	}

	query := fmt.Sprintf(`
		INSERT INTO ortus.training_sessions (schedule_id, group_id, trainer_id, session_date, %[1]s)
		VALUES ($1, $2, $3, $4, $5)
		ON CONFLICT (schedule_id, session_date)
		DO UPDATE SET %[1]s = EXCLUDED.%[1]s, updated_at = NOW()
	`, column)

	_, err := r.db.ExecContext(ctx, query, s.ScheduleID, s.GroupID, s.TrainerID, dateParam(s.SessionDate), photoID)
	if err != nil {
		return fmt.Errorf("link photo to session: %w", err)
	}
	return nil
}
