package repository

import (
	"context"
	"errors"
	"ortus-club/internal/models"
	"time"

	"github.com/lib/pq"
)

// ErrDuplicate - нарушение уникального ключа
var ErrDuplicate = errors.New("duplicate key")

const uniqueViolation = "23505"

// IsUniqueViolation проверяет код ошибки postgres
func IsUniqueViolation(err error) bool {
	var pqErr *pq.Error
	return errors.As(err, &pqErr) && pqErr.Code == uniqueViolation
}

// Все Get* методы возвращают nil, nil если запись не найдена.

type UserRepository interface {
	GetByID(ctx context.Context, id int64) (*models.User, error)
	GetByGroupID(ctx context.Context, groupID int64) ([]models.User, error)
}

type GroupRepository interface {
	GetByID(ctx context.Context, id int64) (*models.Group, error)
}

type ScheduleRepository interface {
	Create(ctx context.Context, schedule *models.Schedule) error
	GetByID(ctx context.Context, id int64) (*models.Schedule, error)
	GetByIDs(ctx context.Context, ids []int64) ([]models.Schedule, error)
	GetByGroup(ctx context.Context, groupID int64) ([]models.Schedule, error)
	GetAll(ctx context.Context) ([]models.Schedule, error)
	Delete(ctx context.Context, id int64) error
}

type TrainingSessionRepository interface {
	// Insert возвращает ErrDuplicate, если сессия по ключу уже есть
	Insert(ctx context.Context, session *models.TrainingSession) error
	Get(ctx context.Context, key models.SessionKey) (*models.TrainingSession, error)
	GetBySchedules(ctx context.Context, scheduleIDs []int64, sessionDate time.Time) ([]models.TrainingSession, error)
	// MarkStarted не трогает завершённую сессию и возвращает nil, nil.
	// Уже проставленный started_at сохраняется.
	MarkStarted(ctx context.Context, id int64, startedAt time.Time, beforePhotoID int64) (*models.TrainingSession, error)
	// MarkFinished переводит только started -> finished, иначе nil, nil
	MarkFinished(ctx context.Context, id int64, finishedAt time.Time, afterPhotoID int64) (*models.TrainingSession, error)
	// LinkPhoto создаёт сессию в not_started или дописывает ссылку на фото, статус не меняет
	LinkPhoto(ctx context.Context, session *models.TrainingSession, photoType models.PhotoReportType, photoID int64) error
}

type PhotoReportRepository interface {
	Create(ctx context.Context, report *models.PhotoReport) error
	GetByID(ctx context.Context, id int64) (*models.PhotoReport, error)
	// FindLatest - самый свежий отчёт по фильтру
	FindLatest(ctx context.Context, filter models.PhotoReportFilter) (*models.PhotoReport, error)
	Exists(ctx context.Context, filter models.PhotoReportFilter) (bool, error)
	List(ctx context.Context, filter models.PhotoReportFilter) ([]models.PhotoReport, error)
}

type AttendanceRepository interface {
	// Create возвращает ErrDuplicate, если у студента уже есть запись на эту дату
	Create(ctx context.Context, attendance *models.Attendance) error
	GetByID(ctx context.Context, id int64) (*models.Attendance, error)
	Update(ctx context.Context, attendance *models.Attendance) error
	List(ctx context.Context, filter models.AttendanceFilter) ([]models.Attendance, error)
	Stats(ctx context.Context, filter models.AttendanceFilter) (*models.AttendanceStats, error)
}

type TimingReportRepository interface {
	Create(ctx context.Context, report *models.TimingReport) error
	GetByID(ctx context.Context, id int64) (*models.TimingReport, error)
	List(ctx context.Context, filter models.TimingReportFilter) ([]models.TimingReport, error)
	Delete(ctx context.Context, id int64) error
}

type CleaningReportRepository interface {
	Create(ctx context.Context, report *models.CleaningReport) error
	GetByID(ctx context.Context, id int64) (*models.CleaningReport, error)
	List(ctx context.Context, filter models.CleaningReportFilter) ([]models.CleaningReport, error)
}

// Repositories - набор всех хранилищ, собирается одной реализацией (postgres или memory)
type Repositories struct {
	Users           UserRepository
	Groups          GroupRepository
	Schedules       ScheduleRepository
	Sessions        TrainingSessionRepository
	PhotoReports    PhotoReportRepository
	Attendance      AttendanceRepository
	TimingReports   TimingReportRepository
	CleaningReports CleaningReportRepository
}
