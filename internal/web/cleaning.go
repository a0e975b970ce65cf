package web

import (
	"net/http"
	"ortus-club/internal/models"
	"ortus-club/internal/service"
)

type cleaningReportRequest struct {
	Date    string   `json:"date"`
	Zones   []string `json:"zones"`
	Photos  []string `json:"photos"`
	Comment string   `json:"comment" validate:"max=1000"`
}

func (h *Handler) CreateCleaningReport(w http.ResponseWriter, r *http.Request) {
	actor, ok := h.actor(w, r)
	if !ok {
		return
	}
	var req cleaningReportRequest
	if !h.decode(w, r, &req) {
		return
	}
	date, err := h.parseDay(req.Date)
	if err != nil {
		writeMessage(w, http.StatusBadRequest, "Invalid date")
		return
	}

	report, err := h.cleaningService.Create(r.Context(), actor, service.CleaningReportInput{
		Date:    date,
		Zones:   req.Zones,
		Photos:  req.Photos,
		Comment: req.Comment,
	})
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusCreated, report)
}

func (h *Handler) ListCleaningReports(w http.ResponseWriter, r *http.Request) {
	actor, ok := h.actor(w, r)
	if !ok {
		return
	}

	staffID, err := queryInt(r, "staffId")
	if err != nil {
		writeMessage(w, http.StatusBadRequest, "Invalid staffId")
		return
	}
	from, to, err := h.parseRange(r, "dateFrom", "dateTo")
	if err != nil {
		writeMessage(w, http.StatusBadRequest, "Invalid date")
		return
	}
	if !to.IsZero() {
		to = to.AddDate(0, 0, 1)
	}

	reports, err := h.cleaningService.List(r.Context(), actor, models.CleaningReportFilter{StaffID: staffID, From: from, To: to})
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, nonNil(reports))
}
