package models

import (
	"database/sql/driver"
	"encoding/json"
	"errors"
	"time"
)

type Attachment struct {
	URL          string `json:"url" validate:"required,url"`
	FileType     string `json:"file_type" validate:"required"`
	OriginalName string `json:"original_name"`
}

type Attachments []Attachment

func (a Attachments) Value() (driver.Value, error) {
	if a == nil {
		return []byte("[]"), nil
	}
	return json.Marshal(a)
}

func (a *Attachments) Scan(src any) error {
	var data []byte
	switch v := src.(type) {
	case nil:
		*a = Attachments{}
		return nil
	case []byte:
		data = v
	case string:
		data = []byte(v)
	default:
		return errors.New("attachments: unsupported source type")
	}
	return json.Unmarshal(data, a)
}

// TimingReport - отчёт тренера перед тренировкой, сдаётся в окне до начала слота
type TimingReport struct {
	ID           int64       `db:"id" json:"id"`
	TrainerID    int64       `db:"trainer_id" json:"trainer_id"`
	TrainingDate time.Time   `db:"training_date" json:"training_date"`
	Slot         string      `db:"slot" json:"slot"`
	Comment      string      `db:"comment" json:"comment"`
	Attachments  Attachments `db:"attachments" json:"attachments"`
	IsLate       bool        `db:"is_late" json:"is_late"`
	CreatedAt    time.Time   `db:"created_at" json:"created_at"`
}

type TimingReportFilter struct {
	TrainerID int64
	From      time.Time
	To        time.Time
	IsLate    *bool
}
