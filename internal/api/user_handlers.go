package api

import (
	"log/slog"
	"net/http"

	"catalog-service/internal/domain"
	"catalog-service/pkg/auth"
)

func (h *Handler) CreateUser(w http.ResponseWriter, r *http.Request) {
	var req domain.CreateUserRequest
	if !h.decodeJSON(w, r, &req) || !h.validate(w, r, req) {
		return
	}
	user, err := h.svc.Users.Create(r.Context(), req)
	if err != nil {
		h.respondServiceError(w, r, err)
		return
	}
	h.respondJSON(w, r, http.StatusCreated, user)
}

func (h *Handler) ListUsers(w http.ResponseWriter, r *http.Request) {
	users, err := h.svc.Users.List(r.Context())
	if err != nil {
		h.respondServiceError(w, r, err)
		return
	}
	h.respondJSON(w, r, http.StatusOK, users)
}

// canAccessUser: администратор видит всех, customer - только себя.
func (h *Handler) canAccessUser(w http.ResponseWriter, r *http.Request, id string) bool {
	userID, role := principal(r.Context())
	if role == auth.RoleAdmin || userID == id {
		return true
	}
	h.logger.WarnContext(r.Context(), "Access to another user denied", slog.String("userID", userID), slog.String("targetID", id))
	h.respondError(w, r, http.StatusForbidden, "Forbidden: cannot access another user")
	return false
}

func (h *Handler) GetUser(w http.ResponseWriter, r *http.Request) {
	id, ok := h.pathID(w, r)
	if !ok || !h.canAccessUser(w, r, id) {
		return
	}
	user, err := h.svc.Users.GetByID(r.Context(), id)
	if err != nil {
		h.respondServiceError(w, r, err)
		return
	}
	h.respondJSON(w, r, http.StatusOK, user)
}

func (h *Handler) UpdateUser(w http.ResponseWriter, r *http.Request) {
	id, ok := h.pathID(w, r)
	if !ok || !h.canAccessUser(w, r, id) {
		return
	}
	var req domain.UpdateUserRequest
	if !h.decodeJSON(w, r, &req) || !h.validate(w, r, req) {
		return
	}
	_, role := principal(r.Context())
	user, err := h.svc.Users.Update(r.Context(), role, id, req)
	if err != nil {
		h.respondServiceError(w, r, err)
		return
	}
	h.respondJSON(w, r, http.StatusOK, user)
}

func (h *Handler) DeleteUser(w http.ResponseWriter, r *http.Request) {
	id, ok := h.pathID(w, r)
	if !ok {
		return
	}
	if err := h.svc.Users.Delete(r.Context(), id); err != nil {
		h.respondServiceError(w, r, err)
		return
	}
	h.respondDeleted(w, r, id)
}
