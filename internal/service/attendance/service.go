package attendance_service

import (
	"context"
	"errors"
	"fmt"
	"math"
	"ortus-club/internal/models"
	"ortus-club/internal/repository"
	"ortus-club/internal/service"
	"ortus-club/internal/service/access"
	"ortus-club/internal/timing"
	"time"

	"go.uber.org/zap"
)

const msgAfterPhotoRequired = "Загрузите фото ПОСЛЕ тренировки в разделе фотоотчётов прежде чем закрывать посещаемость."

type attendanceService struct {
	attendance repository.AttendanceRepository
	groups     repository.GroupRepository
	users      repository.UserRepository
	schedules  repository.ScheduleRepository
	photos     repository.PhotoReportRepository
	loc        *time.Location
	now        timing.Clock
	logger     *zap.Logger
}

func NewAttendanceService(repos *repository.Repositories, loc *time.Location, now timing.Clock, logger *zap.Logger) service.AttendanceService {
	return &attendanceService{
		attendance: repos.Attendance,
		groups:     repos.Groups,
		users:      repos.Users,
		schedules:  repos.Schedules,
		photos:     repos.PhotoReports,
		loc:        loc,
		now:        now,
		logger:     logger.Named("attendance"),
	}
}

func (s *attendanceService) day(date time.Time) time.Time {
	if date.IsZero() {
		date = s.now()
	}
	return timing.StartOfDay(date, s.loc)
}

func (s *attendanceService) group(ctx context.Context, groupID int64) (*models.Group, error) {
	group, err := s.groups.GetByID(ctx, groupID)
	if err != nil {
		return nil, fmt.Errorf("ошибка получения группы: %w", err)
	}
	if group == nil {
		return nil, service.NotFound("Group not found")
	}
	return group, nil
}

// Создать записи посещаемости для группы на дату, существующие пропускаются
func (s *attendanceService) OpenForGroup(ctx context.Context, actor models.Actor, groupID, scheduleID int64, date time.Time) ([]models.Attendance, error) {
	group, err := s.group(ctx, groupID)
	if err != nil {
		return nil, err
	}
	if d := access.Decide(actor, access.AttendanceOpen, access.Resource{GroupTrainerID: group.TrainerID}); !d.Allowed {
		return nil, service.Forbidden(d.Reason)
	}

	var schedulePtr *int64
	if scheduleID != 0 {
		schedule, err := s.schedules.GetByID(ctx, scheduleID)
		if err != nil {
			return nil, fmt.Errorf("ошибка получения расписания: %w", err)
		}
		if schedule == nil {
			return nil, service.NotFound("Schedule not found")
		}
		schedulePtr = &schedule.ID
	}

	students, err := s.users.GetByGroupID(ctx, groupID)
	if err != nil {
		return nil, fmt.Errorf("ошибка получения студентов: %w", err)
	}
	if len(students) == 0 {
		return nil, service.Precondition("В группе нет студентов для отметки")
	}

	day := s.day(date)
	markedBy := actor.UserID
	created := 0
	for _, student := range students {
		record := &models.Attendance{
			ScheduleID: schedulePtr,
			GroupID:    groupID,
			StudentID:  student.ID,
			Date:       day,
			Status:     models.AttendanceAbsent,
			MarkedBy:   &markedBy,
		}
		if err := s.attendance.Create(ctx, record); err != nil {
			if errors.Is(err, repository.ErrDuplicate) {
				continue
			}
			return nil, fmt.Errorf("ошибка создания записи посещаемости: %w", err)
		}
		created++
	}

	s.logger.Info("посещаемость открыта",
		zap.Int64("group_id", groupID),
		zap.String("date", day.Format("2006-01-02")),
		zap.Int("created", created),
	)

	return s.attendance.List(ctx, models.AttendanceFilter{GroupID: groupID, From: day, To: day})
}

// Mark - отметка тренером. Закрывающие статусы по расписанию требуют фото ПОСЛЕ тренировки.
func (s *attendanceService) Mark(ctx context.Context, actor models.Actor, id int64, status models.AttendanceStatus, note string) (*models.Attendance, error) {
	if !status.Valid() {
		return nil, service.Validation("Invalid attendance status")
	}

	record, err := s.attendance.GetByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("ошибка получения записи посещаемости: %w", err)
	}
	if record == nil {
		return nil, service.NotFound("Attendance record not found")
	}

	group, err := s.group(ctx, record.GroupID)
	if err != nil {
		return nil, err
	}
	if d := access.Decide(actor, access.AttendanceMark, access.Resource{GroupTrainerID: group.TrainerID}); !d.Allowed {
		return nil, service.Forbidden(d.Reason)
	}

	// Проверка только на существование фото, без привязки к дате.
	// Finish тренировки строже: там нужно фото за тот же день.
	if record.ScheduleID != nil && status.IsClosing() {
		exists, err := s.photos.Exists(ctx, models.PhotoReportFilter{
			Type:    models.PhotoTrainingAfter,
			Related: models.ScheduleRelation(*record.ScheduleID),
		})
		if err != nil {
			return nil, fmt.Errorf("ошибка проверки фотоотчёта: %w", err)
		}
		if !exists {
			return nil, service.Validation(msgAfterPhotoRequired)
		}
	}

	record.Status = status
	if note != "" {
		record.Note = note
	}
	markedBy := actor.UserID
	record.MarkedBy = &markedBy

	if err := s.attendance.Update(ctx, record); err != nil {
		return nil, fmt.Errorf("ошибка обновления посещаемости: %w", err)
	}
	return record, nil
}

func (s *attendanceService) GroupByDate(ctx context.Context, actor models.Actor, groupID int64, date time.Time) ([]models.Attendance, error) {
	group, err := s.group(ctx, groupID)
	if err != nil {
		return nil, err
	}
	if d := access.Decide(actor, access.AttendanceViewGroup, access.Resource{GroupTrainerID: group.TrainerID}); !d.Allowed {
		return nil, service.Forbidden(d.Reason)
	}

	day := s.day(date)
	return s.attendance.List(ctx, models.AttendanceFilter{GroupID: groupID, From: day, To: day})
}

func (s *attendanceService) authorizeStudent(ctx context.Context, actor models.Actor, studentID int64) error {
	student, err := s.users.GetByID(ctx, studentID)
	if err != nil {
		return fmt.Errorf("ошибка получения студента: %w", err)
	}
	if student == nil {
		return service.NotFound("Student not found")
	}

	res := access.Resource{StudentID: student.ID}
	if student.ParentID != nil {
		res.ParentID = *student.ParentID
	}
	if student.GroupID != nil {
		group, err := s.groups.GetByID(ctx, *student.GroupID)
		if err != nil {
			return fmt.Errorf("ошибка получения группы: %w", err)
		}
		if group != nil {
			res.GroupTrainerID = group.TrainerID
		}
	}

	if d := access.Decide(actor, access.AttendanceViewStudent, res); !d.Allowed {
		return service.Forbidden(d.Reason)
	}
	return nil
}

func (s *attendanceService) StudentHistory(ctx context.Context, actor models.Actor, studentID int64, from, to time.Time) ([]models.Attendance, error) {
	if err := s.authorizeStudent(ctx, actor, studentID); err != nil {
		return nil, err
	}
	return s.attendance.List(ctx, models.AttendanceFilter{StudentID: studentID, From: from, To: to})
}

func (s *attendanceService) StudentStats(ctx context.Context, actor models.Actor, studentID int64, from, to time.Time) (*models.AttendanceStats, error) {
	if err := s.authorizeStudent(ctx, actor, studentID); err != nil {
		return nil, err
	}
	return s.stats(ctx, models.AttendanceFilter{StudentID: studentID, From: from, To: to})
}

func (s *attendanceService) GroupStats(ctx context.Context, actor models.Actor, groupID int64, from, to time.Time) (*models.AttendanceStats, error) {
	group, err := s.group(ctx, groupID)
	if err != nil {
		return nil, err
	}
	if d := access.Decide(actor, access.AttendanceViewGroup, access.Resource{GroupTrainerID: group.TrainerID}); !d.Allowed {
		return nil, service.Forbidden(d.Reason)
	}
	return s.stats(ctx, models.AttendanceFilter{GroupID: groupID, From: from, To: to})
}

func (s *attendanceService) stats(ctx context.Context, filter models.AttendanceFilter) (*models.AttendanceStats, error) {
	stats, err := s.attendance.Stats(ctx, filter)
	if err != nil {
		return nil, fmt.Errorf("ошибка подсчёта посещаемости: %w", err)
	}
	stats.AttendanceRate = AttendanceRate(stats.Present, stats.Total)
	return stats, nil
}

// AttendanceRate - процент присутствий с двумя знаками, 0 при пустой выборке
func AttendanceRate(present, total int) float64 {
	if total == 0 {
		return 0
	}
	return math.Round(float64(present)/float64(total)*100*100) / 100
}
