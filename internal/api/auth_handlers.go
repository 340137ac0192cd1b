package api

import (
	"log/slog"
	"net/http"

	"catalog-service/internal/domain"
)

// Login - POST /auth/login.
func (h *Handler) Login(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	h.logger.InfoContext(ctx, "HTTP Login request received")

	var req domain.LoginRequest
	if !h.decodeJSON(w, r, &req) || !h.validate(w, r, req) {
		return
	}
	resp, err := h.svc.Auth.Login(ctx, req)
	if err != nil {
		h.respondServiceError(w, r, err)
		return
	}
	h.respondJSON(w, r, http.StatusOK, resp)
}

// Register - POST /auth/register. Всегда создает customer.
func (h *Handler) Register(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	h.logger.InfoContext(ctx, "HTTP Register request received")

	var req domain.RegisterRequest
	if !h.decodeJSON(w, r, &req) || !h.validate(w, r, req) {
		return
	}
	resp, err := h.svc.Auth.Register(ctx, req)
	if err != nil {
		h.respondServiceError(w, r, err)
		return
	}
	h.logger.InfoContext(ctx, "User registered", slog.String("userID", resp.User.ID), slog.Bool("welcome_sent", resp.WelcomeSent))
	h.respondJSON(w, r, http.StatusCreated, resp)
}
