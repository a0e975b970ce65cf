package web

import (
	"encoding/json"
	"net/http"
	"ortus-club/internal/service"

	"go.uber.org/zap"
)

type messageResponse struct {
	Message string `json:"message"`
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}

func writeMessage(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, messageResponse{Message: msg})
}

func statusFor(kind service.ErrorKind) int {
	switch kind {
	case service.KindValidation, service.KindPrecondition:
		return http.StatusBadRequest
	case service.KindForbidden:
		return http.StatusForbidden
	case service.KindNotFound:
		return http.StatusNotFound
	case service.KindConflict:
		return http.StatusConflict
	}
	return http.StatusInternalServerError
}

// writeError - единственное место, где ошибки сервисов превращаются в HTTP-ответ
func (h *Handler) writeError(w http.ResponseWriter, r *http.Request, err error) {
	if e := service.AsError(err); e != nil {
		writeMessage(w, statusFor(e.Kind), e.Message)
		return
	}

	h.logger.Error("request failed",
		zap.String("request_id", requestIDFrom(r.Context())),
		zap.String("method", r.Method),
		zap.String("path", r.URL.Path),
		zap.Error(err),
	)
	writeMessage(w, http.StatusInternalServerError, "Внутренняя ошибка сервера")
}

// nonNil - пустой список отдаётся как [], а не null
func nonNil[T any](items []T) []T {
	if items == nil {
		return []T{}
	}
	return items
}
