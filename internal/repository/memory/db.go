// Package memory - хранилище в памяти для тестов и локального запуска (STORAGE=memory).
// Повторяет уникальные ключи postgres-схемы.
package memory

import (
	"ortus-club/internal/models"
	"ortus-club/internal/repository"
	"sync"
	"time"
)

type DB struct {
	mu     sync.RWMutex
	nextID int64
	now    func() time.Time

	users      map[int64]models.User
	groups     map[int64]models.Group
	schedules  map[int64]models.Schedule
	sessions   map[int64]models.TrainingSession
	photos     map[int64]models.PhotoReport
	attendance map[int64]models.Attendance
	timing     map[int64]models.TimingReport
	cleaning   map[int64]models.CleaningReport
}

func Open() *DB {
	return &DB{
		now:        time.Now,
		users:      make(map[int64]models.User),
		groups:     make(map[int64]models.Group),
		schedules:  make(map[int64]models.Schedule),
		sessions:   make(map[int64]models.TrainingSession),
		photos:     make(map[int64]models.PhotoReport),
		attendance: make(map[int64]models.Attendance),
		timing:     make(map[int64]models.TimingReport),
		cleaning:   make(map[int64]models.CleaningReport),
	}
}

// SetClock подменяет время created_at/updated_at
func (db *DB) SetClock(now func() time.Time) {
	db.mu.Lock()
	defer db.mu.Unlock()
	db.now = now
}

func (db *DB) id() int64 {
	db.nextID++
	return db.nextID
}

// AddUser и AddGroup нужны только для наполнения, в API таких операций нет
func (db *DB) AddUser(u models.User) models.User {
	db.mu.Lock()
	defer db.mu.Unlock()
	u.ID = db.id()
	if u.CreatedAt.IsZero() {
		u.CreatedAt = db.now()
	}
	db.users[u.ID] = u
	return u
}

func (db *DB) AddGroup(g models.Group) models.Group {
	db.mu.Lock()
	defer db.mu.Unlock()
	g.ID = db.id()
	if g.CreatedAt.IsZero() {
		g.CreatedAt = db.now()
	}
	db.groups[g.ID] = g
	return g
}

// SessionCount - количество строк сессий, для проверки уникальности в тестах
func (db *DB) SessionCount() int {
	db.mu.RLock()
	defer db.mu.RUnlock()
	return len(db.sessions)
}

func (db *DB) Repositories() *repository.Repositories {
	return &repository.Repositories{
		Users:           &userRepository{db: db},
		Groups:          &groupRepository{db: db},
		Schedules:       &scheduleRepository{db: db},
		Sessions:        &sessionRepository{db: db},
		PhotoReports:    &photoReportRepository{db: db},
		Attendance:      &attendanceRepository{db: db},
		TimingReports:   &timingReportRepository{db: db},
		CleaningReports: &cleaningReportRepository{db: db},
	}
}

func sameDay(a, b time.Time) bool {
	return a.Format("2006-01-02") == b.Format("2006-01-02")
}

// inRange - полуинтервал [from, to), нулевые границы не проверяются
func inRange(t, from, to time.Time) bool {
	if !from.IsZero() && t.Before(from) {
		return false
	}
	return to.IsZero() || t.Before(to)
}
