package service

import (
	"context"
	"ortus-club/internal/models"
	"time"
)

// Нулевая дата во всех методах означает "сегодня" в часовом поясе клуба.

type TrainingSessionService interface {
	Start(ctx context.Context, actor models.Actor, scheduleID int64, date time.Time) (*models.TrainingSession, error)
	Finish(ctx context.Context, actor models.Actor, scheduleID int64, date time.Time) (*FinishResult, error)
	QueryStatuses(ctx context.Context, actor models.Actor, scheduleIDs []int64, date time.Time) (*SessionStatuses, error)
	// LinkPhoto привязывает тренировочное фото к сессии дня его создания
	LinkPhoto(ctx context.Context, schedule *models.Schedule, report *models.PhotoReport) error
}

type FinishResult struct {
	Session *models.TrainingSession `json:"session"`
	Message string                  `json:"message,omitempty"`
}

type SessionStatuses struct {
	Date     string                         `json:"date"`
	Statuses map[int64]models.SessionStatus `json:"statuses"`
}

type AttendanceService interface {
	OpenForGroup(ctx context.Context, actor models.Actor, groupID, scheduleID int64, date time.Time) ([]models.Attendance, error)
	Mark(ctx context.Context, actor models.Actor, id int64, status models.AttendanceStatus, note string) (*models.Attendance, error)
	GroupByDate(ctx context.Context, actor models.Actor, groupID int64, date time.Time) ([]models.Attendance, error)
	StudentHistory(ctx context.Context, actor models.Actor, studentID int64, from, to time.Time) ([]models.Attendance, error)
	StudentStats(ctx context.Context, actor models.Actor, studentID int64, from, to time.Time) (*models.AttendanceStats, error)
	GroupStats(ctx context.Context, actor models.Actor, groupID int64, from, to time.Time) (*models.AttendanceStats, error)
}

type PhotoReportService interface {
	Create(ctx context.Context, actor models.Actor, input PhotoReportInput) (*models.PhotoReport, error)
	List(ctx context.Context, actor models.Actor, filter models.PhotoReportFilter) ([]models.PhotoReport, error)
	Get(ctx context.Context, actor models.Actor, id int64) (*models.PhotoReport, error)
}

type PhotoReportInput struct {
	Type      models.PhotoReportType
	RelatedID int64
	Photos    []string
	Comment   string
}

type TimingReportService interface {
	Create(ctx context.Context, actor models.Actor, input TimingReportInput) (*models.TimingReport, error)
	ListMine(ctx context.Context, actor models.Actor) ([]models.TimingReport, error)
	ListAll(ctx context.Context, actor models.Actor, filter models.TimingReportFilter) ([]models.TimingReport, error)
	Delete(ctx context.Context, actor models.Actor, id int64) error
}

type TimingReportInput struct {
	TrainingDate time.Time
	Slot         string
	Comment      string
	Attachments  []models.Attachment
}

type CleaningReportService interface {
	Create(ctx context.Context, actor models.Actor, input CleaningReportInput) (*models.CleaningReport, error)
	List(ctx context.Context, actor models.Actor, filter models.CleaningReportFilter) ([]models.CleaningReport, error)
}

type CleaningReportInput struct {
	Date    time.Time
	Zones   []string
	Photos  []string
	Comment string
}

type ScheduleService interface {
	Create(ctx context.Context, actor models.Actor, schedule *models.Schedule) error
	GetAll(ctx context.Context) ([]models.Schedule, error)
	GetByGroup(ctx context.Context, groupID int64) ([]models.Schedule, error)
	Delete(ctx context.Context, actor models.Actor, id int64) error
}
