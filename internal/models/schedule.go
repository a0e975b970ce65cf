package models

import "time"

const DefaultLocation = "Зал ORTUS"

// Schedule - еженедельный слот группы
type Schedule struct {
	ID        int64     `db:"id" json:"id"`
	GroupID   int64     `db:"group_id" json:"group_id"`
	DayOfWeek int       `db:"day_of_week" json:"day_of_week"` // 0=Пн, 6=Вс
	StartTime string    `db:"start_time" json:"start_time"`   // "18:00"
	EndTime   string    `db:"end_time" json:"end_time"`       // "20:00"
	Location  string    `db:"location" json:"location"`
	CreatedAt time.Time `db:"created_at" json:"created_at"`

	// Joined fields
	GroupName string `db:"group_name" json:"group_name,omitempty"`
	TrainerID *int64 `db:"trainer_id" json:"trainer_id,omitempty"`
}
