package web

import (
	"net/http"
	"ortus-club/internal/models/config"
	"ortus-club/internal/repository"

	"github.com/gorilla/mux"
	"github.com/rs/cors"
	"go.uber.org/zap"
)

// NewRouter собирает маршруты API
func NewRouter(h *Handler, verifier *TokenVerifier, users repository.UserRepository, cfg config.HTTPConfig, logger *zap.Logger) http.Handler {
	r := mux.NewRouter()
	r.Use(requestID, logRequests(logger.Named("access")))
	r.NotFoundHandler = http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		writeMessage(w, http.StatusNotFound, "Not found")
	})

	r.HandleFunc("/health", h.Health).Methods(http.MethodGet)

	// Расписание читается без токена
	r.HandleFunc("/api/schedules", h.ListSchedules).Methods(http.MethodGet)
	r.HandleFunc("/api/schedules/group/{groupId:[0-9]+}", h.GroupSchedules).Methods(http.MethodGet)

	api := r.PathPrefix("/api").Subrouter()
	api.Use(authenticate(verifier, users))

	// Тренировки
	api.HandleFunc("/training-sessions/start", h.StartSession).Methods(http.MethodPost)
	api.HandleFunc("/training-sessions/finish", h.FinishSession).Methods(http.MethodPost)
	api.HandleFunc("/training-sessions/status", h.SessionStatuses).Methods(http.MethodGet)

	// Посещаемость
	api.HandleFunc("/attendance", h.OpenAttendance).Methods(http.MethodPost)
	api.HandleFunc("/attendance/{id:[0-9]+}", h.MarkAttendance).Methods(http.MethodPatch)
	api.HandleFunc("/attendance/group/{groupId:[0-9]+}/stats", h.GroupAttendanceStats).Methods(http.MethodGet)
	api.HandleFunc("/attendance/group/{groupId:[0-9]+}/{date}", h.GroupAttendanceByDate).Methods(http.MethodGet)
	api.HandleFunc("/attendance/student/{studentId:[0-9]+}/stats", h.StudentAttendanceStats).Methods(http.MethodGet)
	api.HandleFunc("/attendance/student/{studentId:[0-9]+}", h.StudentAttendance).Methods(http.MethodGet)

	// Фотоотчёты
	api.HandleFunc("/photo-reports", h.CreatePhotoReport).Methods(http.MethodPost)
	api.HandleFunc("/photo-reports", h.ListPhotoReports).Methods(http.MethodGet)
	api.HandleFunc("/photo-reports/{id:[0-9]+}", h.GetPhotoReport).Methods(http.MethodGet)

	// Отчёты по таймингу
	api.HandleFunc("/reports", h.CreateTimingReport).Methods(http.MethodPost)
	api.HandleFunc("/reports/my", h.MyTimingReports).Methods(http.MethodGet)
	api.HandleFunc("/reports", h.ListTimingReports).Methods(http.MethodGet)
	api.HandleFunc("/reports/{id:[0-9]+}", h.DeleteTimingReport).Methods(http.MethodDelete)

	// Уборка
	api.HandleFunc("/cleaning-reports", h.CreateCleaningReport).Methods(http.MethodPost)
	api.HandleFunc("/cleaning-reports", h.ListCleaningReports).Methods(http.MethodGet)

	// Расписание
	api.HandleFunc("/schedules", h.CreateSchedule).Methods(http.MethodPost)
	api.HandleFunc("/schedules/{id:[0-9]+}", h.DeleteSchedule).Methods(http.MethodDelete)

	c := cors.New(cors.Options{
		AllowedOrigins:   cfg.CORSOrigins,
		AllowedMethods:   []string{http.MethodGet, http.MethodPost, http.MethodPut, http.MethodPatch, http.MethodDelete, http.MethodOptions},
		AllowedHeaders:   []string{"Authorization", "Content-Type", requestIDHeader},
		ExposedHeaders:   []string{requestIDHeader},
		AllowCredentials: true,
	})
	return c.Handler(r)
}
