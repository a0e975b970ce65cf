package web

import (
	"net/http"
	"ortus-club/internal/models"
	"ortus-club/internal/service"
	"strconv"
)

type attachmentRequest struct {
	URL          string `json:"url"`
	FileType     string `json:"fileType"`
	OriginalName string `json:"originalName"`
}

type timingReportRequest struct {
	TrainingDate string              `json:"trainingDate"`
	Slot         string              `json:"slot"`
	Comment      string              `json:"comment" validate:"max=1000"`
	Attachments  []attachmentRequest `json:"attachments"`
}

func (h *Handler) CreateTimingReport(w http.ResponseWriter, r *http.Request) {
	actor, ok := h.actor(w, r)
	if !ok {
		return
	}
	var req timingReportRequest
	if !h.decode(w, r, &req) {
		return
	}
	date, err := h.parseDay(req.TrainingDate)
	if err != nil {
		writeMessage(w, http.StatusBadRequest, "Invalid date")
		return
	}

	attachments := make([]models.Attachment, 0, len(req.Attachments))
	for _, a := range req.Attachments {
		attachments = append(attachments, models.Attachment{URL: a.URL, FileType: a.FileType, OriginalName: a.OriginalName})
	}

	report, err := h.reportService.Create(r.Context(), actor, service.TimingReportInput{
		TrainingDate: date,
		Slot:         req.Slot,
		Comment:      req.Comment,
		Attachments:  attachments,
	})
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusCreated, report)
}

func (h *Handler) MyTimingReports(w http.ResponseWriter, r *http.Request) {
	actor, ok := h.actor(w, r)
	if !ok {
		return
	}
	reports, err := h.reportService.ListMine(r.Context(), actor)
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, nonNil(reports))
}

// ListTimingReports - для руководства, фильтры trainerId, from, to, isLate
func (h *Handler) ListTimingReports(w http.ResponseWriter, r *http.Request) {
	actor, ok := h.actor(w, r)
	if !ok {
		return
	}

	trainerID, err := queryInt(r, "trainerId")
	if err != nil {
		writeMessage(w, http.StatusBadRequest, "Invalid trainerId")
		return
	}
	from, to, err := h.parseRange(r, "from", "to")
	if err != nil {
		writeMessage(w, http.StatusBadRequest, "Invalid date")
		return
	}
	filter := models.TimingReportFilter{TrainerID: trainerID, From: from, To: to}
	if raw := r.URL.Query().Get("isLate"); raw != "" {
		late, err := strconv.ParseBool(raw)
		if err != nil {
			writeMessage(w, http.StatusBadRequest, "Invalid isLate")
			return
		}
		filter.IsLate = &late
	}

	reports, err := h.reportService.ListAll(r.Context(), actor, filter)
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, nonNil(reports))
}

func (h *Handler) DeleteTimingReport(w http.ResponseWriter, r *http.Request) {
	actor, ok := h.actor(w, r)
	if !ok {
		return
	}
	id, err := pathID(r, "id")
	if err != nil {
		writeMessage(w, http.StatusBadRequest, "Invalid report id")
		return
	}

	if err := h.reportService.Delete(r.Context(), actor, id); err != nil {
		h.writeError(w, r, err)
		return
	}
	writeMessage(w, http.StatusOK, "Report deleted")
}
