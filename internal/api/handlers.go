// internal/api/handlers.go
package api

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"

	"github.com/go-playground/validator/v10"
	"github.com/gorilla/mux"

	"catalog-service/internal/service"
	"catalog-service/pkg/auth"
)

// maxBodyBytes - предел размера тела запроса.
const maxBodyBytes = 1 << 20

// Services - сервисы, которые нужны обработчикам.
type Services struct {
	Users      *service.UserService
	Categories *service.CategoryService
	Characters *service.CharacterService
	Movies     *service.MovieService
	Auth       *service.AuthService
}

// Handler обслуживает REST API каталога.
type Handler struct {
	svc          Services
	tokenManager auth.TokenManager
	validator    *validator.Validate
	logger       *slog.Logger
}

func NewHandler(svc Services, tm auth.TokenManager, v *validator.Validate, l *slog.Logger) *Handler {
	return &Handler{svc: svc, tokenManager: tm, validator: v, logger: l}
}

func (h *Handler) respondJSON(w http.ResponseWriter, r *http.Request, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	if data != nil {
		if err := json.NewEncoder(w).Encode(data); err != nil {
			h.logger.ErrorContext(r.Context(), "Failed to encode JSON response", slog.String("error", err.Error()), slog.String("path", r.URL.Path))
		}
	}
}

func (h *Handler) respondError(w http.ResponseWriter, r *http.Request, status int, message string) {
	h.respondJSON(w, r, status, map[string]string{"error": message})
}

// respondServiceError переводит ошибку сервиса в HTTP-статус.
// Неизвестные ошибки логируются, клиент получает только 500.
func (h *Handler) respondServiceError(w http.ResponseWriter, r *http.Request, err error) {
	status := http.StatusInternalServerError
	switch {
	case errors.Is(err, service.ErrValidation):
		status = http.StatusBadRequest
	case errors.Is(err, service.ErrUnauthorized):
		status = http.StatusUnauthorized
	case errors.Is(err, service.ErrForbidden):
		status = http.StatusForbidden
	case errors.Is(err, service.ErrNotFound):
		status = http.StatusNotFound
	case errors.Is(err, service.ErrConflict):
		status = http.StatusConflict
	}
	if status == http.StatusInternalServerError {
		h.logger.ErrorContext(r.Context(), "Request failed", slog.String("path", r.URL.Path), slog.String("error", err.Error()))
		h.respondError(w, r, status, "internal server error")
		return
	}
	h.logger.WarnContext(r.Context(), "Request rejected", slog.String("path", r.URL.Path), slog.Int("status", status), slog.String("error", err.Error()))
	h.respondError(w, r, status, err.Error())
}

// decodeJSON читает тело запроса в dst. Неизвестные поля отклоняются.
func (h *Handler) decodeJSON(w http.ResponseWriter, r *http.Request, dst interface{}) bool {
	defer r.Body.Close()
	dec := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxBodyBytes))
	dec.DisallowUnknownFields()
	err := dec.Decode(dst)
	if err == nil && dec.Decode(&struct{}{}) != io.EOF {
		err = errors.New("body must contain a single JSON object")
	}
	if err != nil {
		h.logger.WarnContext(r.Context(), "Failed to decode request body", slog.String("path", r.URL.Path), slog.String("error", err.Error()))
		h.respondError(w, r, http.StatusBadRequest, fmt.Sprintf("Invalid request payload: %v", err))
		return false
	}
	return true
}

// validate проверяет структуру тегами validator.
func (h *Handler) validate(w http.ResponseWriter, r *http.Request, v interface{}) bool {
	if err := h.validator.StructCtx(r.Context(), v); err != nil {
		h.logger.WarnContext(r.Context(), "Request validation failed", slog.String("path", r.URL.Path), slog.String("error", err.Error()))
		h.respondError(w, r, http.StatusBadRequest, "Validation failed: "+err.Error())
		return false
	}
	return true
}

// pathID достает {id} из пути и проверяет, что это UUID.
func (h *Handler) pathID(w http.ResponseWriter, r *http.Request) (string, bool) {
	id := mux.Vars(r)["id"]
	if err := h.validator.Var(id, "required,uuid"); err != nil {
		h.respondError(w, r, http.StatusBadRequest, "Validation failed: id must be a UUID")
		return "", false
	}
	return id, true
}

// deletedResponse - тело ответа на DELETE.
type deletedResponse struct {
	ID    string `json:"id"`
	State string `json:"state"`
}

func (h *Handler) respondDeleted(w http.ResponseWriter, r *http.Request, id string) {
	h.respondJSON(w, r, http.StatusOK, deletedResponse{ID: id, State: "deleted"})
}

// Health - проверка живости.
func (h *Handler) Health(w http.ResponseWriter, r *http.Request) {
	h.respondJSON(w, r, http.StatusOK, map[string]string{"status": "ok"})
}
