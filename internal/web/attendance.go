package web

import (
	"net/http"
	"ortus-club/internal/models"

	"github.com/gorilla/mux"
)

type openAttendanceRequest struct {
	GroupID    int64  `json:"groupId" validate:"required,gt=0"`
	ScheduleID int64  `json:"scheduleId" validate:"omitempty,gt=0"`
	Date       string `json:"date"`
}

type markAttendanceRequest struct {
	Status string `json:"status" validate:"required,oneof=present absent sick competition excused"`
	Note   string `json:"note" validate:"max=500"`
}

func (h *Handler) OpenAttendance(w http.ResponseWriter, r *http.Request) {
	actor, ok := h.actor(w, r)
	if !ok {
		return
	}
	var req openAttendanceRequest
	if !h.decode(w, r, &req) {
		return
	}
	date, err := h.parseDay(req.Date)
	if err != nil {
		writeMessage(w, http.StatusBadRequest, "Invalid date")
		return
	}

	records, err := h.attendanceService.OpenForGroup(r.Context(), actor, req.GroupID, req.ScheduleID, date)
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusCreated, nonNil(records))
}

func (h *Handler) MarkAttendance(w http.ResponseWriter, r *http.Request) {
	actor, ok := h.actor(w, r)
	if !ok {
		return
	}
	id, err := pathID(r, "id")
	if err != nil {
		writeMessage(w, http.StatusBadRequest, "Invalid attendance id")
		return
	}
	var req markAttendanceRequest
	if !h.decode(w, r, &req) {
		return
	}

	record, err := h.attendanceService.Mark(r.Context(), actor, id, models.AttendanceStatus(req.Status), req.Note)
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, record)
}

func (h *Handler) GroupAttendanceByDate(w http.ResponseWriter, r *http.Request) {
	actor, ok := h.actor(w, r)
	if !ok {
		return
	}
	groupID, err := pathID(r, "groupId")
	if err != nil {
		writeMessage(w, http.StatusBadRequest, "Invalid group id")
		return
	}
	date, err := h.parseDay(mux.Vars(r)["date"])
	if err != nil || date.IsZero() {
		writeMessage(w, http.StatusBadRequest, "Invalid date")
		return
	}

	records, err := h.attendanceService.GroupByDate(r.Context(), actor, groupID, date)
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, nonNil(records))
}

func (h *Handler) GroupAttendanceStats(w http.ResponseWriter, r *http.Request) {
	actor, ok := h.actor(w, r)
	if !ok {
		return
	}
	groupID, err := pathID(r, "groupId")
	if err != nil {
		writeMessage(w, http.StatusBadRequest, "Invalid group id")
		return
	}
	from, to, err := h.parseRange(r, "startDate", "endDate")
	if err != nil {
		writeMessage(w, http.StatusBadRequest, "Invalid date")
		return
	}

	stats, err := h.attendanceService.GroupStats(r.Context(), actor, groupID, from, to)
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, stats)
}

func (h *Handler) StudentAttendance(w http.ResponseWriter, r *http.Request) {
	actor, ok := h.actor(w, r)
	if !ok {
		return
	}
	studentID, err := pathID(r, "studentId")
	if err != nil {
		writeMessage(w, http.StatusBadRequest, "Invalid student id")
		return
	}
	from, to, err := h.parseRange(r, "startDate", "endDate")
	if err != nil {
		writeMessage(w, http.StatusBadRequest, "Invalid date")
		return
	}

	records, err := h.attendanceService.StudentHistory(r.Context(), actor, studentID, from, to)
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, nonNil(records))
}

func (h *Handler) StudentAttendanceStats(w http.ResponseWriter, r *http.Request) {
	actor, ok := h.actor(w, r)
	if !ok {
		return
	}
	studentID, err := pathID(r, "studentId")
	if err != nil {
		writeMessage(w, http.StatusBadRequest, "Invalid student id")
		return
	}
	from, to, err := h.parseRange(r, "startDate", "endDate")
	if err != nil {
		writeMessage(w, http.StatusBadRequest, "Invalid date")
		return
	}

	stats, err := h.attendanceService.StudentStats(r.Context(), actor, studentID, from, to)
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, stats)
}
