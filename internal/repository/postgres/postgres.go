package postgres

import (
	"ortus-club/internal/repository"
	"ortus-club/internal/repository/attendance"
	"ortus-club/internal/repository/cleaning"
	"ortus-club/internal/repository/group"
	"ortus-club/internal/repository/photoreport"
	"ortus-club/internal/repository/schedule"
	"ortus-club/internal/repository/session"
	"ortus-club/internal/repository/timingreport"
	"ortus-club/internal/repository/user"
	"time"

	"github.com/jmoiron/sqlx"
)

// NewRepositories - loc нужен для чтения колонок DATE
func NewRepositories(db *sqlx.DB, loc *time.Location) *repository.Repositories {
	return &repository.Repositories{
		Users:           user.NewUserRepository(db),
		Groups:          group.NewGroupRepository(db),
		Schedules:       schedule.NewScheduleRepository(db),
		Sessions:        session.NewTrainingSessionRepository(db, loc),
		PhotoReports:    photoreport.NewPhotoReportRepository(db),
		Attendance:      attendance.NewAttendanceRepository(db, loc),
		TimingReports:   timingreport.NewTimingReportRepository(db, loc),
		CleaningReports: cleaning.NewCleaningReportRepository(db),
	}
}
