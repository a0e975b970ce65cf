package models

import "time"

type SessionStatus string

const (
	SessionNotStarted SessionStatus = "not_started"
	SessionStarted    SessionStatus = "started"
	SessionFinished   SessionStatus = "finished"
)

// TrainingSession - конкретное проведение слота расписания в календарный день.
// Уникальна по (ScheduleID, SessionDate).
type TrainingSession struct {
	ID                  int64         `db:"id" json:"id"`
	ScheduleID          int64         `db:"schedule_id" json:"schedule_id"`
	GroupID             int64         `db:"group_id" json:"group_id"`
	TrainerID           int64         `db:"trainer_id" json:"trainer_id"`
	SessionDate         time.Time     `db:"session_date" json:"session_date"`
	Status              SessionStatus `db:"status" json:"status"`
	StartedAt           *time.Time    `db:"started_at" json:"started_at,omitempty"`
	FinishedAt          *time.Time    `db:"finished_at" json:"finished_at,omitempty"`
	BeforePhotoReportID *int64        `db:"before_photo_report_id" json:"before_photo_report_id,omitempty"`
	AfterPhotoReportID  *int64        `db:"after_photo_report_id" json:"after_photo_report_id,omitempty"`
	CreatedAt           time.Time     `db:"created_at" json:"created_at"`
	UpdatedAt           time.Time     `db:"updated_at" json:"updated_at"`
}

// SessionKey - ключ сессии, дата уже нормализована к полуночи
type SessionKey struct {
	ScheduleID  int64
	SessionDate time.Time
}
