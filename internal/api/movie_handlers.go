package api

import (
	"net/http"
	"strings"

	"catalog-service/internal/domain"
)

func (h *Handler) CreateMovie(w http.ResponseWriter, r *http.Request) {
	var req domain.CreateMovieRequest
	if !h.decodeJSON(w, r, &req) || !h.validate(w, r, req) {
		return
	}
	m, err := h.svc.Movies.Create(r.Context(), req)
	if err != nil {
		h.respondServiceError(w, r, err)
		return
	}
	h.respondJSON(w, r, http.StatusCreated, m)
}

// ListMovies - GET /movies?title=&category=&order=ASC|DESC
// genre принимается как синоним category.
func (h *Handler) ListMovies(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	filter := domain.MovieFilter{
		Title:      strings.TrimSpace(q.Get("title")),
		CategoryID: q.Get("category"),
		Order:      strings.ToUpper(q.Get("order")),
	}
	if filter.CategoryID == "" {
		filter.CategoryID = q.Get("genre")
	}
	if !h.validate(w, r, filter) {
		return
	}
	list, err := h.svc.Movies.List(r.Context(), filter)
	if err != nil {
		h.respondServiceError(w, r, err)
		return
	}
	h.respondJSON(w, r, http.StatusOK, list)
}

func (h *Handler) GetMovie(w http.ResponseWriter, r *http.Request) {
	id, ok := h.pathID(w, r)
	if !ok {
		return
	}
	m, err := h.svc.Movies.GetByID(r.Context(), id)
	if err != nil {
		h.respondServiceError(w, r, err)
		return
	}
	h.respondJSON(w, r, http.StatusOK, m)
}

func (h *Handler) UpdateMovie(w http.ResponseWriter, r *http.Request) {
	id, ok := h.pathID(w, r)
	if !ok {
		return
	}
	var req domain.UpdateMovieRequest
	if !h.decodeJSON(w, r, &req) || !h.validate(w, r, req) {
		return
	}
	m, err := h.svc.Movies.Update(r.Context(), id, req)
	if err != nil {
		h.respondServiceError(w, r, err)
		return
	}
	h.respondJSON(w, r, http.StatusOK, m)
}

func (h *Handler) DeleteMovie(w http.ResponseWriter, r *http.Request) {
	id, ok := h.pathID(w, r)
	if !ok {
		return
	}
	if err := h.svc.Movies.Delete(r.Context(), id); err != nil {
		h.respondServiceError(w, r, err)
		return
	}
	h.respondDeleted(w, r, id)
}

// AddCharacter - POST /movies/add-character.
func (h *Handler) AddCharacter(w http.ResponseWriter, r *http.Request) {
	var req domain.AddCharacterRequest
	if !h.decodeJSON(w, r, &req) || !h.validate(w, r, req) {
		return
	}
	link, err := h.svc.Movies.AddCharacter(r.Context(), req)
	if err != nil {
		h.respondServiceError(w, r, err)
		return
	}
	h.respondJSON(w, r, http.StatusCreated, link)
}
