package web

import (
	"context"
	"errors"
	"net/http"
	"ortus-club/internal/models"
	"ortus-club/internal/repository"
	"strings"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

type ctxKey int

const (
	requestIDKey ctxKey = iota
	actorKey
)

const requestIDHeader = "X-Request-ID"

func requestIDFrom(ctx context.Context) string {
	id, _ := ctx.Value(requestIDKey).(string)
	return id
}

func actorFrom(ctx context.Context) (models.Actor, bool) {
	actor, ok := ctx.Value(actorKey).(models.Actor)
	return actor, ok
}

func requestID(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		id := r.Header.Get(requestIDHeader)
		if id == "" {
			id = uuid.NewString()
		}
		w.Header().Set(requestIDHeader, id)
		next.ServeHTTP(w, r.WithContext(context.WithValue(r.Context(), requestIDKey, id)))
	})
}

type statusRecorder struct {
	http.ResponseWriter
	status int
}

func (s *statusRecorder) WriteHeader(code int) {
	s.status = code
	s.ResponseWriter.WriteHeader(code)
}

func logRequests(logger *zap.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			start := time.Now()
			rec := &statusRecorder{ResponseWriter: w, status: http.StatusOK}

			defer func() {
				if p := recover(); p != nil {
					logger.Error("panic in handler",
						zap.Any("panic", p),
						zap.String("request_id", requestIDFrom(r.Context())),
						zap.Stack("stack"),
					)
					writeMessage(rec, http.StatusInternalServerError, "Внутренняя ошибка сервера")
				}
				logger.Info("http request",
					zap.String("request_id", requestIDFrom(r.Context())),
					zap.String("method", r.Method),
					zap.String("path", r.URL.Path),
					zap.Int("status", rec.status),
					zap.Duration("duration", time.Since(start)),
				)
			}()

			next.ServeHTTP(rec, r)
		})
	}
}

// authenticate проверяет Bearer-токен и загружает пользователя с актуальными ролями
func authenticate(verifier *TokenVerifier, users repository.UserRepository) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			header := r.Header.Get("Authorization")
			token, ok := strings.CutPrefix(header, "Bearer ")
			if !ok || token == "" {
				writeMessage(w, http.StatusUnauthorized, "Not authorized, no token")
				return
			}

			claims, err := verifier.Verify(token)
			if err != nil {
				writeMessage(w, http.StatusUnauthorized, "Not authorized, token failed")
				return
			}

			user, err := users.GetByID(r.Context(), claims.UserID)
			if err != nil {
				writeMessage(w, http.StatusInternalServerError, "Внутренняя ошибка сервера")
				return
			}
			if user == nil {
				writeMessage(w, http.StatusUnauthorized, "Not authorized, user not found")
				return
			}

			actor := models.Actor{UserID: user.ID, Roles: make([]models.Role, 0, len(user.Roles))}
			for _, role := range user.Roles {
				actor.Roles = append(actor.Roles, models.Role(role))
			}
			next.ServeHTTP(w, r.WithContext(context.WithValue(r.Context(), actorKey, actor)))
		})
	}
}

var errNoActor = errors.New("actor missing in request context")
