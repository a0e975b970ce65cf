package memory

import (
	"context"
	"ortus-club/internal/models"
	"ortus-club/internal/repository"
	"sort"
)

type attendanceRepository struct {
	db *DB
}

func matchAttendance(a models.Attendance, f models.AttendanceFilter) bool {
	if f.GroupID != 0 && a.GroupID != f.GroupID {
		return false
	}
	if f.StudentID != 0 && a.StudentID != f.StudentID {
		return false
	}
	day := a.Date.Format("2006-01-02")
	if !f.From.IsZero() && day < f.From.Format("2006-01-02") {
		return false
	}
	if !f.To.IsZero() && day > f.To.Format("2006-01-02") {
		return false
	}
	return true
}

func (r *attendanceRepository) withStudent(a models.Attendance) models.Attendance {
	if u, ok := r.db.users[a.StudentID]; ok {
		a.StudentName = u.FullName
	}
	return a
}

func (r *attendanceRepository) Create(_ context.Context, attendance *models.Attendance) error {
	r.db.mu.Lock()
	defer r.db.mu.Unlock()

	for _, a := range r.db.attendance {
		if a.StudentID == attendance.StudentID && sameDay(a.Date, attendance.Date) {
			return repository.ErrDuplicate
		}
	}
	attendance.ID = r.db.id()
	attendance.CreatedAt = r.db.now()
	attendance.UpdatedAt = attendance.CreatedAt
	r.db.attendance[attendance.ID] = *attendance
	return nil
}

func (r *attendanceRepository) GetByID(_ context.Context, id int64) (*models.Attendance, error) {
	r.db.mu.RLock()
	defer r.db.mu.RUnlock()

	a, ok := r.db.attendance[id]
	if !ok {
		return nil, nil
	}
	a = r.withStudent(a)
	return &a, nil
}

func (r *attendanceRepository) Update(_ context.Context, attendance *models.Attendance) error {
	r.db.mu.Lock()
	defer r.db.mu.Unlock()

	stored, ok := r.db.attendance[attendance.ID]
	if !ok {
		return nil
	}
	stored.Status = attendance.Status
	stored.Note = attendance.Note
	stored.MarkedBy = attendance.MarkedBy
	stored.UpdatedAt = r.db.now()
	r.db.attendance[stored.ID] = stored
	attendance.UpdatedAt = stored.UpdatedAt
	return nil
}

func (r *attendanceRepository) List(_ context.Context, filter models.AttendanceFilter) ([]models.Attendance, error) {
	r.db.mu.RLock()
	defer r.db.mu.RUnlock()

	var records []models.Attendance
	for _, a := range r.db.attendance {
		if matchAttendance(a, filter) {
			records = append(records, r.withStudent(a))
		}
	}
	sort.Slice(records, func(i, j int) bool {
		if !records[i].Date.Equal(records[j].Date) {
			return records[i].Date.After(records[j].Date)
		}
		return records[i].StudentName < records[j].StudentName
	})
	return records, nil
}

func (r *attendanceRepository) Stats(ctx context.Context, filter models.AttendanceFilter) (*models.AttendanceStats, error) {
	records, err := r.List(ctx, filter)
	if err != nil {
		return nil, err
	}

	stats := &models.AttendanceStats{Total: len(records)}
	for _, a := range records {
		switch a.Status {
		case models.AttendancePresent:
			stats.Present++
		case models.AttendanceAbsent:
			stats.Absent++
		case models.AttendanceSick:
			stats.Sick++
		case models.AttendanceCompetition:
			stats.Competition++
		case models.AttendanceExcused:
			stats.Excused++
		}
	}
	return stats, nil
}
