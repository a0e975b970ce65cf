package web

import (
	"net/http"
	"strconv"
	"strings"
)

type sessionRequest struct {
	ScheduleID int64  `json:"scheduleId" validate:"required,gt=0"`
	Date       string `json:"date"`
}

func (h *Handler) sessionInput(w http.ResponseWriter, r *http.Request) (*sessionRequest, bool) {
	var req sessionRequest
	if !h.decode(w, r, &req) {
		return nil, false
	}
	return &req, true
}

func (h *Handler) StartSession(w http.ResponseWriter, r *http.Request) {
	actor, ok := h.actor(w, r)
	if !ok {
		return
	}
	req, ok := h.sessionInput(w, r)
	if !ok {
		return
	}
	date, err := h.parseDay(req.Date)
	if err != nil {
		writeMessage(w, http.StatusBadRequest, "Invalid session date provided")
		return
	}

	session, err := h.sessionService.Start(r.Context(), actor, req.ScheduleID, date)
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"session": session})
}

func (h *Handler) FinishSession(w http.ResponseWriter, r *http.Request) {
	actor, ok := h.actor(w, r)
	if !ok {
		return
	}
	req, ok := h.sessionInput(w, r)
	if !ok {
		return
	}
	date, err := h.parseDay(req.Date)
	if err != nil {
		writeMessage(w, http.StatusBadRequest, "Invalid session date provided")
		return
	}

	result, err := h.sessionService.Finish(r.Context(), actor, req.ScheduleID, date)
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, result)
}

// SessionStatuses - GET /training-sessions/status?scheduleIds=1,2&date=2024-06-03
func (h *Handler) SessionStatuses(w http.ResponseWriter, r *http.Request) {
	actor, ok := h.actor(w, r)
	if !ok {
		return
	}

	raw := r.URL.Query().Get("scheduleIds")
	if raw == "" {
		writeMessage(w, http.StatusBadRequest, "scheduleIds query parameter is required")
		return
	}
	var ids []int64
	for _, part := range strings.Split(raw, ",") {
		id, err := strconv.ParseInt(strings.TrimSpace(part), 10, 64)
		if err != nil || id <= 0 {
			continue
		}
		ids = append(ids, id)
	}
	if len(ids) == 0 {
		writeMessage(w, http.StatusBadRequest, "No valid scheduleIds provided")
		return
	}

	date, err := h.parseDay(r.URL.Query().Get("date"))
	if err != nil {
		writeMessage(w, http.StatusBadRequest, "Invalid session date provided")
		return
	}

	statuses, err := h.sessionService.QueryStatuses(r.Context(), actor, ids, date)
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, statuses)
}
