package models

import (
	"encoding/json"
	"time"
)

type PhotoReportType string

const (
	PhotoTrainingBefore PhotoReportType = "training_before"
	PhotoTrainingAfter  PhotoReportType = "training_after"
	PhotoCleaning       PhotoReportType = "cleaning"
)

func (t PhotoReportType) Valid() bool {
	switch t {
	case PhotoTrainingBefore, PhotoTrainingAfter, PhotoCleaning:
		return true
	}
	return false
}

func (t PhotoReportType) IsTraining() bool {
	return t == PhotoTrainingBefore || t == PhotoTrainingAfter
}

type RelationKind string

const (
	RelationNone           RelationKind = ""
	RelationSchedule       RelationKind = "schedule"
	RelationCleaningReport RelationKind = "cleaning_report"
)

// Relation - к чему привязан фотоотчёт. Нулевое значение означает "ни к чему".
type Relation struct {
	Kind RelationKind
	ID   int64
}

func ScheduleRelation(scheduleID int64) Relation {
	return Relation{Kind: RelationSchedule, ID: scheduleID}
}

func CleaningReportRelation(reportID int64) Relation {
	return Relation{Kind: RelationCleaningReport, ID: reportID}
}

func (r Relation) ScheduleID() (int64, bool) {
	return r.ID, r.Kind == RelationSchedule
}

func (r Relation) CleaningReportID() (int64, bool) {
	return r.ID, r.Kind == RelationCleaningReport
}

func (r Relation) IsZero() bool {
	return r.Kind == RelationNone
}

type relationJSON struct {
	Kind RelationKind `json:"kind"`
	ID   int64        `json:"id"`
}

func (r Relation) MarshalJSON() ([]byte, error) {
	if r.IsZero() {
		return []byte("null"), nil
	}
	return json.Marshal(relationJSON{Kind: r.Kind, ID: r.ID})
}

func (r *Relation) UnmarshalJSON(data []byte) error {
	if string(data) == "null" {
		*r = Relation{}
		return nil
	}
	var v relationJSON
	if err := json.Unmarshal(data, &v); err != nil {
		return err
	}
	*r = Relation{Kind: v.Kind, ID: v.ID}
	return nil
}

// PhotoReport неизменяем после создания
type PhotoReport struct {
	ID        int64           `json:"id"`
	Type      PhotoReportType `json:"type"`
	AuthorID  int64           `json:"author_id"`
	Related   Relation        `json:"related"`
	Photos    []string        `json:"photos"`
	Comment   string          `json:"comment"`
	CreatedAt time.Time       `json:"created_at"`
}

// PhotoReportFilter - фильтр поиска. Нулевые поля не участвуют.
type PhotoReportFilter struct {
	Type        PhotoReportType
	AuthorID    int64
	Related     Relation
	CreatedFrom time.Time
	CreatedTo   time.Time // не включается
}
