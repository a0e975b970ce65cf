package web

import (
	"encoding/json"
	"fmt"
	"net/http"
	"ortus-club/internal/models"
	"ortus-club/internal/service"
	"ortus-club/internal/timing"
	"reflect"
	"strconv"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/gorilla/mux"
	"go.uber.org/zap"
)

type Handler struct {
	sessionService    service.TrainingSessionService
	attendanceService service.AttendanceService
	photoService      service.PhotoReportService
	reportService     service.TimingReportService
	cleaningService   service.CleaningReportService
	scheduleService   service.ScheduleService
	validate          *validator.Validate
	loc               *time.Location
	logger            *zap.Logger
}

func NewHandler(
	sessionService service.TrainingSessionService,
	attendanceService service.AttendanceService,
	photoService service.PhotoReportService,
	reportService service.TimingReportService,
	cleaningService service.CleaningReportService,
	scheduleService service.ScheduleService,
	validate *validator.Validate,
	loc *time.Location,
	logger *zap.Logger,
) *Handler {
	return &Handler{
		sessionService:    sessionService,
		attendanceService: attendanceService,
		photoService:      photoService,
		reportService:     reportService,
		cleaningService:   cleaningService,
		scheduleService:   scheduleService,
		validate:          validate,
		loc:               loc,
		logger:            logger.Named("http"),
	}
}

// NewValidator - в сообщениях об ошибках используются json-имена полей
func NewValidator() *validator.Validate {
	v := validator.New()
	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name, _, _ := strings.Cut(fld.Tag.Get("json"), ",")
		if name == "-" {
			return ""
		}
		return name
	})
	return v
}

func (h *Handler) actor(w http.ResponseWriter, r *http.Request) (models.Actor, bool) {
	actor, ok := actorFrom(r.Context())
	if !ok {
		h.writeError(w, r, errNoActor)
	}
	return actor, ok
}

// decode читает JSON и прогоняет валидатор по тегам
func (h *Handler) decode(w http.ResponseWriter, r *http.Request, dst any) bool {
	if err := json.NewDecoder(r.Body).Decode(dst); err != nil {
		writeMessage(w, http.StatusBadRequest, "Invalid request payload")
		return false
	}
	if err := h.validate.Struct(dst); err != nil {
		writeMessage(w, http.StatusBadRequest, validationMessage(err))
		return false
	}
	return true
}

func validationMessage(err error) string {
	errs, ok := err.(validator.ValidationErrors)
	if !ok || len(errs) == 0 {
		return "Invalid request payload"
	}
	fe := errs[0]
	if fe.Param() != "" {
		return fmt.Sprintf("%s: %s=%s", fe.Field(), fe.Tag(), fe.Param())
	}
	return fmt.Sprintf("%s: %s", fe.Field(), fe.Tag())
}

func pathID(r *http.Request, name string) (int64, error) {
	return strconv.ParseInt(mux.Vars(r)[name], 10, 64)
}

// parseDay принимает YYYY-MM-DD или RFC3339, пустая строка - нулевая дата
func (h *Handler) parseDay(value string) (time.Time, error) {
	if value == "" {
		return time.Time{}, nil
	}
	if d, err := timing.ParseDate(value, h.loc); err == nil {
		return d, nil
	}
	t, err := time.Parse(time.RFC3339, value)
	if err != nil {
		return time.Time{}, err
	}
	return timing.StartOfDay(t, h.loc), nil
}

// parseRange - необязательные границы периода из query
func (h *Handler) parseRange(r *http.Request, fromKey, toKey string) (from, to time.Time, err error) {
	q := r.URL.Query()
	if from, err = h.parseDay(q.Get(fromKey)); err != nil {
		return
	}
	to, err = h.parseDay(q.Get(toKey))
	return
}

func queryInt(r *http.Request, key string) (int64, error) {
	value := r.URL.Query().Get(key)
	if value == "" {
		return 0, nil
	}
	return strconv.ParseInt(value, 10, 64)
}

func (h *Handler) Health(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}
