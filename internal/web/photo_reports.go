package web

import (
	"net/http"
	"ortus-club/internal/models"
	"ortus-club/internal/service"
)

type photoReportRequest struct {
	Type      string   `json:"type" validate:"required"`
	RelatedID int64    `json:"relatedId" validate:"omitempty,gt=0"`
	Photos    []string `json:"photos"`
	Comment   string   `json:"comment" validate:"max=1000"`
}

func (h *Handler) CreatePhotoReport(w http.ResponseWriter, r *http.Request) {
	actor, ok := h.actor(w, r)
	if !ok {
		return
	}
	var req photoReportRequest
	if !h.decode(w, r, &req) {
		return
	}

	report, err := h.photoService.Create(r.Context(), actor, service.PhotoReportInput{
		Type:      models.PhotoReportType(req.Type),
		RelatedID: req.RelatedID,
		Photos:    req.Photos,
		Comment:   req.Comment,
	})
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusCreated, report)
}

// ListPhotoReports - фильтры type, userId, dateFrom, dateTo
func (h *Handler) ListPhotoReports(w http.ResponseWriter, r *http.Request) {
	actor, ok := h.actor(w, r)
	if !ok {
		return
	}

	authorID, err := queryInt(r, "userId")
	if err != nil {
		writeMessage(w, http.StatusBadRequest, "Invalid userId")
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

	filter := models.PhotoReportFilter{
		Type:        models.PhotoReportType(r.URL.Query().Get("type")),
		AuthorID:    authorID,
		CreatedFrom: from,
		CreatedTo:   to,
	}
	if filter.Type != "" && !filter.Type.Valid() {
		writeMessage(w, http.StatusBadRequest, "Invalid report type")
		return
	}

	reports, err := h.photoService.List(r.Context(), actor, filter)
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, nonNil(reports))
}

func (h *Handler) GetPhotoReport(w http.ResponseWriter, r *http.Request) {
	actor, ok := h.actor(w, r)
	if !ok {
		return
	}
	id, err := pathID(r, "id")
	if err != nil {
		writeMessage(w, http.StatusBadRequest, "Invalid photo report id")
		return
	}

	report, err := h.photoService.Get(r.Context(), actor, id)
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, report)
}
