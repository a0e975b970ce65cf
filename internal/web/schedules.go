package web

import (
	"net/http"
	"ortus-club/internal/models"
)

type scheduleRequest struct {
	GroupID   int64  `json:"groupId" validate:"required,gt=0"`
	DayOfWeek int    `json:"dayOfWeek" validate:"min=0,max=6"`
	StartTime string `json:"startTime" validate:"required"`
	EndTime   string `json:"endTime" validate:"required"`
	Location  string `json:"location"`
}

func (h *Handler) CreateSchedule(w http.ResponseWriter, r *http.Request) {
	actor, ok := h.actor(w, r)
	if !ok {
		return
	}
	var req scheduleRequest
	if !h.decode(w, r, &req) {
		return
	}

	schedule := &models.Schedule{
		GroupID:   req.GroupID,
		DayOfWeek: req.DayOfWeek,
		StartTime: req.StartTime,
		EndTime:   req.EndTime,
		Location:  req.Location,
	}
	if err := h.scheduleService.Create(r.Context(), actor, schedule); err != nil {
		h.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusCreated, schedule)
}

func (h *Handler) ListSchedules(w http.ResponseWriter, r *http.Request) {
	schedules, err := h.scheduleService.GetAll(r.Context())
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, nonNil(schedules))
}

func (h *Handler) GroupSchedules(w http.ResponseWriter, r *http.Request) {
	groupID, err := pathID(r, "groupId")
	if err != nil {
		writeMessage(w, http.StatusBadRequest, "Invalid group id")
		return
	}
	schedules, err := h.scheduleService.GetByGroup(r.Context(), groupID)
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, nonNil(schedules))
}

func (h *Handler) DeleteSchedule(w http.ResponseWriter, r *http.Request) {
	actor, ok := h.actor(w, r)
	if !ok {
		return
	}
	id, err := pathID(r, "id")
	if err != nil {
		writeMessage(w, http.StatusBadRequest, "Invalid schedule id")
		return
	}
	if err := h.scheduleService.Delete(r.Context(), actor, id); err != nil {
		h.writeError(w, r, err)
		return
	}
	writeMessage(w, http.StatusOK, "Schedule deleted")
}
