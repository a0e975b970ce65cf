package models

import (
	"time"

	"github.com/lib/pq"
)

var CleaningZones = []string{"hall", "locker_room", "shower", "corridor"}

type CleaningReport struct {
	ID        int64          `db:"id" json:"id"`
	StaffID   int64          `db:"staff_id" json:"staff_id"`
	Date      time.Time      `db:"date" json:"date"`
	Zones     pq.StringArray `db:"zones" json:"zones"`
	Photos    pq.StringArray `db:"photos" json:"photos"`
	Comment   string         `db:"comment" json:"comment"`
	CreatedAt time.Time      `db:"created_at" json:"created_at"`
}

type CleaningReportFilter struct {
	StaffID int64
	From    time.Time
	To      time.Time // не включается
}
