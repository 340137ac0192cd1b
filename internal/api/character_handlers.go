package api

import (
	"net/http"
	"strconv"
	"strings"

	"catalog-service/internal/domain"
)

func (h *Handler) CreateCharacter(w http.ResponseWriter, r *http.Request) {
	var req domain.CreateCharacterRequest
	if !h.decodeJSON(w, r, &req) || !h.validate(w, r, req) {
		return
	}
	ch, err := h.svc.Characters.Create(r.Context(), req)
	if err != nil {
		h.respondServiceError(w, r, err)
		return
	}
	h.respondJSON(w, r, http.StatusCreated, ch)
}

// ListCharacters - GET /characters?name=&age=&movieId=
func (h *Handler) ListCharacters(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	filter := domain.CharacterFilter{
		Name:    strings.TrimSpace(q.Get("name")),
		MovieID: q.Get("movieId"),
	}
	if raw := q.Get("age"); raw != "" {
		age, err := strconv.Atoi(raw)
		if err != nil {
			h.respondError(w, r, http.StatusBadRequest, "Validation failed: age must be an integer")
			return
		}
		filter.Age = &age
	}
	if !h.validate(w, r, filter) {
		return
	}
	list, err := h.svc.Characters.List(r.Context(), filter)
	if err != nil {
		h.respondServiceError(w, r, err)
		return
	}
	h.respondJSON(w, r, http.StatusOK, list)
}

func (h *Handler) GetCharacter(w http.ResponseWriter, r *http.Request) {
	id, ok := h.pathID(w, r)
	if !ok {
		return
	}
	ch, err := h.svc.Characters.GetByID(r.Context(), id)
	if err != nil {
		h.respondServiceError(w, r, err)
		return
	}
	h.respondJSON(w, r, http.StatusOK, ch)
}

func (h *Handler) UpdateCharacter(w http.ResponseWriter, r *http.Request) {
	id, ok := h.pathID(w, r)
	if !ok {
		return
	}
	var req domain.UpdateCharacterRequest
	if !h.decodeJSON(w, r, &req) || !h.validate(w, r, req) {
		return
	}
	ch, err := h.svc.Characters.Update(r.Context(), id, req)
	if err != nil {
		h.respondServiceError(w, r, err)
		return
	}
	h.respondJSON(w, r, http.StatusOK, ch)
}

func (h *Handler) DeleteCharacter(w http.ResponseWriter, r *http.Request) {
	id, ok := h.pathID(w, r)
	if !ok {
		return
	}
	if err := h.svc.Characters.Delete(r.Context(), id); err != nil {
		h.respondServiceError(w, r, err)
		return
	}
	h.respondDeleted(w, r, id)
}
