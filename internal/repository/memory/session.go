package memory

import (
	"context"
	"fmt"
	"ortus-club/internal/models"
	"ortus-club/internal/repository"
	"time"
)

type sessionRepository struct {
	db *DB
}

func (r *sessionRepository) find(scheduleID int64, date time.Time) (models.TrainingSession, bool) {
	for _, s := range r.db.sessions {
		if s.ScheduleID == scheduleID && sameDay(s.SessionDate, date) {
			return s, true
		}
	}
	return models.TrainingSession{}, false
}

func (r *sessionRepository) Insert(_ context.Context, session *models.TrainingSession) error {
	r.db.mu.Lock()
	defer r.db.mu.Unlock()

	if _, ok := r.find(session.ScheduleID, session.SessionDate); ok {
		return repository.ErrDuplicate
	}
	session.ID = r.db.id()
	session.CreatedAt = r.db.now()
	session.UpdatedAt = session.CreatedAt
	r.db.sessions[session.ID] = *session
	return nil
}

func (r *sessionRepository) Get(_ context.Context, key models.SessionKey) (*models.TrainingSession, error) {
	r.db.mu.RLock()
	defer r.db.mu.RUnlock()

	if s, ok := r.find(key.ScheduleID, key.SessionDate); ok {
		return &s, nil
	}
	return nil, nil
}

func (r *sessionRepository) GetBySchedules(_ context.Context, scheduleIDs []int64, sessionDate time.Time) ([]models.TrainingSession, error) {
	r.db.mu.RLock()
	defer r.db.mu.RUnlock()

	var sessions []models.TrainingSession
	for _, id := range scheduleIDs {
		if s, ok := r.find(id, sessionDate); ok {
			sessions = append(sessions, s)
		}
	}
	return sessions, nil
}

func (r *sessionRepository) MarkStarted(_ context.Context, id int64, startedAt time.Time, beforePhotoID int64) (*models.TrainingSession, error) {
	r.db.mu.Lock()
	defer r.db.mu.Unlock()

	s, ok := r.db.sessions[id]
	if !ok || s.Status == models.SessionFinished {
		return nil, nil
	}
	s.Status = models.SessionStarted
	if s.StartedAt == nil {
		s.StartedAt = &startedAt
	}
	s.BeforePhotoReportID = &beforePhotoID
	s.UpdatedAt = r.db.now()
	r.db.sessions[id] = s
	return &s, nil
}

func (r *sessionRepository) MarkFinished(_ context.Context, id int64, finishedAt time.Time, afterPhotoID int64) (*models.TrainingSession, error) {
	r.db.mu.Lock()
	defer r.db.mu.Unlock()

	s, ok := r.db.sessions[id]
	if !ok || s.Status != models.SessionStarted {
		return nil, nil
	}
	s.Status = models.SessionFinished
	s.FinishedAt = &finishedAt
	s.AfterPhotoReportID = &afterPhotoID
	s.UpdatedAt = r.db.now()
	r.db.sessions[id] = s
	return &s, nil
}

func (r *sessionRepository) LinkPhoto(_ context.Context, session *models.TrainingSession, photoType models.PhotoReportType, photoID int64) error {
	if !photoType.IsTraining() {
		return fmt.Errorf("photo type %q cannot be linked to a session", photoType)
	}

	r.db.mu.Lock()
	defer r.db.mu.Unlock()

	s, ok := r.find(session.ScheduleID, session.SessionDate)
	if !ok {
		s = models.TrainingSession{
			ID:          r.db.id(),
			ScheduleID:  session.ScheduleID,
			GroupID:     session.GroupID,
			TrainerID:   session.TrainerID,
			SessionDate: session.SessionDate,
			Status:      models.SessionNotStarted,
			CreatedAt:   r.db.now(),
		}
	}
	if photoType == models.PhotoTrainingBefore {
		s.BeforePhotoReportID = &photoID
	} else {
		s.AfterPhotoReportID = &photoID
	}
	s.UpdatedAt = r.db.now()
	r.db.sessions[s.ID] = s
	return nil
}
