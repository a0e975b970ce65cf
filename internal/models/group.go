package models

import "time"

// Group - тренировочная группа, у группы ровно один тренер
type Group struct {
	ID        int64     `db:"id" json:"id"`
	Name      string    `db:"name" json:"name"`
	TrainerID int64     `db:"trainer_id" json:"trainer_id"`
	CreatedAt time.Time `db:"created_at" json:"created_at"`
}
