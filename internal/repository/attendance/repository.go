package attendance

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

type attendanceRepository struct {
	db  *sqlx.DB
	loc *time.Location
}

func NewAttendanceRepository(db *sqlx.DB, loc *time.Location) repository.AttendanceRepository {
	return &attendanceRepository{db: db, loc: loc}
}

const selectAttendance = `
	SELECT
		a.id, a.schedule_id, a.group_id, a.student_id, a.date, a.status, a.note,
		a.marked_by, a.created_at, a.updated_at,
		u.full_name AS student_name
	FROM ortus.attendance a
	JOIN ortus.users u ON u.id = a.student_id
`

func conditions(filter models.AttendanceFilter) *repository.Conditions {
	c := &repository.Conditions{}
	if filter.GroupID != 0 {
		c.Add("a.group_id = $%d", filter.GroupID)
	}
	if filter.StudentID != 0 {
		c.Add("a.student_id = $%d", filter.StudentID)
	}
	if !filter.From.IsZero() {
		c.Add("a.date >= $%d", filter.From.Format("2006-01-02"))
	}
	if !filter.To.IsZero() {
		c.Add("a.date <= $%d", filter.To.Format("2006-01-02"))
	}
	return c
}

func (r *attendanceRepository) Create(ctx context.Context, attendance *models.Attendance) error {
	query := `
		INSERT INTO ortus.attendance
		(schedule_id, group_id, student_id, date, status, note, marked_by)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		RETURNING id, created_at, updated_at
	`
	err := r.db.QueryRowContext(ctx, query,
		attendance.ScheduleID,
		attendance.GroupID,
		attendance.StudentID,
		attendance.Date.Format("2006-01-02"),
		attendance.Status,
		attendance.Note,
		attendance.MarkedBy,
	).Scan(&attendance.ID, &attendance.CreatedAt, &attendance.UpdatedAt)
	if err != nil {
		if repository.IsUniqueViolation(err) {
			return repository.ErrDuplicate
		}
		return fmt.Errorf("insert attendance: %w", err)
	}
	return nil
}

func (r *attendanceRepository) GetByID(ctx context.Context, id int64) (*models.Attendance, error) {
	attendance := &models.Attendance{}
	if err := r.db.GetContext(ctx, attendance, selectAttendance+` WHERE a.id = $1`, id); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, err
	}
	attendance.Date = timing.CalendarDate(attendance.Date, r.loc)
	return attendance, nil
}

func (r *attendanceRepository) Update(ctx context.Context, attendance *models.Attendance) error {
	query := `
		UPDATE ortus.attendance
		SET status = $1, note = $2, marked_by = $3, updated_at = NOW()
		WHERE id = $4
		RETURNING updated_at
	`
	err := r.db.QueryRowContext(ctx, query,
		attendance.Status,
		attendance.Note,
		attendance.MarkedBy,
		attendance.ID,
	).Scan(&attendance.UpdatedAt)
	if err != nil {
		return fmt.Errorf("update attendance: %w", err)
	}
	return nil
}

func (r *attendanceRepository) List(ctx context.Context, filter models.AttendanceFilter) ([]models.Attendance, error) {
	c := conditions(filter)
	query := selectAttendance + c.Where() + ` ORDER BY a.date DESC, u.full_name`

	var records []models.Attendance
	if err := r.db.SelectContext(ctx, &records, query, c.Args()...); err != nil {
		return nil, err
	}
	for i := range records {
		records[i].Date = timing.CalendarDate(records[i].Date, r.loc)
	}
	return records, nil
}

func (r *attendanceRepository) Stats(ctx context.Context, filter models.AttendanceFilter) (*models.AttendanceStats, error) {
	c := conditions(filter)
	query := `
		SELECT
			COUNT(*) AS total,
			COUNT(*) FILTER (WHERE a.status = 'present') AS present,
			COUNT(*) FILTER (WHERE a.status = 'absent') AS absent,
			COUNT(*) FILTER (WHERE a.status = 'sick') AS sick,
			COUNT(*) FILTER (WHERE a.status = 'competition') AS competition,
			COUNT(*) FILTER (WHERE a.status = 'excused') AS excused
		FROM ortus.attendance a` + c.Where()

	stats := &models.AttendanceStats{}
	if err := r.db.GetContext(ctx, stats, query, c.Args()...); err != nil {
		return nil, err
	}
	return stats, nil
}
