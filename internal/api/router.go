package api

import (
	"net/http"

	"github.com/gorilla/mux"

	"catalog-service/pkg/auth"
)

// NewRouter собирает маршруты /api/v1. loginLimiter может быть nil.
func NewRouter(h *Handler, loginLimiter *RateLimiter) *mux.Router {
	router := mux.NewRouter()
	router.Use(TracingMiddleware)
	router.HandleFunc("/healthz", h.Health).Methods(http.MethodGet)

	apiRouter := router.PathPrefix("/api/v1").Subrouter()

	// Публичные эндпоинты
	authRouter := apiRouter.PathPrefix("/auth").Subrouter()
	var login http.Handler = http.HandlerFunc(h.Login)
	if loginLimiter != nil {
		login = loginLimiter.Middleware(login)
	}
	authRouter.Handle("/login", login).Methods(http.MethodPost)
	authRouter.HandleFunc("/register", h.Register).Methods(http.MethodPost)

	// Все остальное требует токен
	protected := apiRouter.NewRoute().Subrouter()
	protected.Use(h.AuthMiddleware)

	adminOnly := h.RequireRoles(auth.RoleAdmin)
	anyRole := h.RequireRoles(auth.RoleAdmin, auth.RoleCustomer)
	handle := func(path string, gate func(http.Handler) http.Handler, fn http.HandlerFunc, method string) {
		protected.Handle(path, gate(fn)).Methods(method)
	}

	handle("/users", adminOnly, h.CreateUser, http.MethodPost)
	handle("/users", adminOnly, h.ListUsers, http.MethodGet)
	handle("/users/{id}", anyRole, h.GetUser, http.MethodGet)
	handle("/users/{id}", anyRole, h.UpdateUser, http.MethodPatch)
	handle("/users/{id}", adminOnly, h.DeleteUser, http.MethodDelete)

	handle("/categories", adminOnly, h.CreateCategory, http.MethodPost)
	handle("/categories", anyRole, h.ListCategories, http.MethodGet)
	handle("/categories/{id}", anyRole, h.GetCategory, http.MethodGet)
	handle("/categories/{id}", adminOnly, h.UpdateCategory, http.MethodPatch)
	handle("/categories/{id}", adminOnly, h.DeleteCategory, http.MethodDelete)

	handle("/characters", adminOnly, h.CreateCharacter, http.MethodPost)
	handle("/characters", anyRole, h.ListCharacters, http.MethodGet)
	handle("/characters/{id}", anyRole, h.GetCharacter, http.MethodGet)
	handle("/characters/{id}", adminOnly, h.UpdateCharacter, http.MethodPatch)
	handle("/characters/{id}", adminOnly, h.DeleteCharacter, http.MethodDelete)

	handle("/movies/add-character", adminOnly, h.AddCharacter, http.MethodPost)
	handle("/movies", adminOnly, h.CreateMovie, http.MethodPost)
	handle("/movies", anyRole, h.ListMovies, http.MethodGet)
	handle("/movies/{id}", anyRole, h.GetMovie, http.MethodGet)
	handle("/movies/{id}", adminOnly, h.UpdateMovie, http.MethodPatch)
	handle("/movies/{id}", adminOnly, h.DeleteMovie, http.MethodDelete)

	return router
}
