// internal/api/middleware.go
package api

import (
	"context"
	"log/slog"
	"net/http"
	"strings"

	"catalog-service/pkg/auth"
)

// ContextKey используется для ключей в контексте запроса.
type ContextKey string

const (
	// UserIDKey ключ для хранения ID пользователя в контексте.
	UserIDKey ContextKey = "userID"
	// UserRoleKey ключ для хранения роли пользователя в контексте.
	UserRoleKey ContextKey = "userRole"
)

// AuthMiddleware проверяет JWT токен из заголовка Authorization.
// Если токен валиден, ID пользователя и его роль добавляются в контекст запроса.
func (h *Handler) AuthMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		authHeader := r.Header.Get("Authorization")
		if authHeader == "" {
			h.logger.WarnContext(r.Context(), "Authorization header missing", slog.String("path", r.URL.Path))
			h.respondError(w, r, http.StatusUnauthorized, "Authorization header required")
			return
		}

		// Ожидаем токен в формате "Bearer <token>"
		parts := strings.Fields(authHeader)
		if len(parts) != 2 || !strings.EqualFold(parts[0], "bearer") {
			h.logger.WarnContext(r.Context(), "Invalid Authorization header format")
			h.respondError(w, r, http.StatusUnauthorized, "Invalid Authorization header format")
			return
		}

		claims, err := h.tokenManager.Validate(parts[1])
		if err != nil {
			h.logger.WarnContext(r.Context(), "Invalid or expired token", slog.String("error", err.Error()))
			h.respondError(w, r, http.StatusUnauthorized, "Invalid or expired token")
			return
		}

		ctx := context.WithValue(r.Context(), UserIDKey, claims.UserID())
		ctx = context.WithValue(ctx, UserRoleKey, claims.Role)
		h.logger.DebugContext(ctx, "Token validated successfully", slog.String("userID", claims.UserID()), slog.String("role", claims.Role))
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

// RequireRoles пропускает запрос, только если роль из контекста входит в roles.
// Должен стоять после AuthMiddleware.
func (h *Handler) RequireRoles(roles ...string) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			_, role := principal(r.Context())
			if !auth.HasRole(role, roles...) {
				h.logger.WarnContext(r.Context(), "Access denied", slog.String("role", role), slog.String("path", r.URL.Path))
				h.respondError(w, r, http.StatusForbidden, "Forbidden: insufficient role")
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}

// principal возвращает ID и роль аутентифицированного пользователя.
func principal(ctx context.Context) (userID, role string) {
	userID, _ = ctx.Value(UserIDKey).(string)
	role, _ = ctx.Value(UserRoleKey).(string)
	return userID, role
}
