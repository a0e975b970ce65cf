package models

import "time"

type AttendanceStatus string

const (
	AttendancePresent     AttendanceStatus = "present"
	AttendanceAbsent      AttendanceStatus = "absent"
	AttendanceSick        AttendanceStatus = "sick"
	AttendanceCompetition AttendanceStatus = "competition"
	AttendanceExcused     AttendanceStatus = "excused"
)

func (s AttendanceStatus) Valid() bool {
	switch s {
	case AttendancePresent, AttendanceAbsent, AttendanceSick, AttendanceCompetition, AttendanceExcused:
		return true
	}
	return false
}

// IsClosing - статусы, которые закрывают посещаемость и требуют фото после тренировки
func (s AttendanceStatus) IsClosing() bool {
	return s == AttendancePresent || s == AttendanceAbsent || s == AttendanceSick
}

// Attendance - одна запись на студента на дату
type Attendance struct {
	ID         int64            `db:"id" json:"id"`
	ScheduleID *int64           `db:"schedule_id" json:"schedule_id,omitempty"`
	GroupID    int64            `db:"group_id" json:"group_id"`
	StudentID  int64            `db:"student_id" json:"student_id"`
	Date       time.Time        `db:"date" json:"date"`
	Status     AttendanceStatus `db:"status" json:"status"`
	Note       string           `db:"note" json:"note"`
	MarkedBy   *int64           `db:"marked_by" json:"marked_by,omitempty"`
	CreatedAt  time.Time        `db:"created_at" json:"created_at"`
	UpdatedAt  time.Time        `db:"updated_at" json:"updated_at"`

	// Joined fields
	StudentName string `db:"student_name" json:"student_name,omitempty"`
}

type AttendanceFilter struct {
	GroupID   int64
	StudentID int64
	From      time.Time
	To        time.Time
}

// AttendanceStats - счётчики по статусам за период
type AttendanceStats struct {
	Total          int     `db:"total" json:"total"`
	Present        int     `db:"present" json:"present"`
	Absent         int     `db:"absent" json:"absent"`
	Sick           int     `db:"sick" json:"sick"`
	Competition    int     `db:"competition" json:"competition"`
	Excused        int     `db:"excused" json:"excused"`
	AttendanceRate float64 `db:"-" json:"attendance_rate"`
}
