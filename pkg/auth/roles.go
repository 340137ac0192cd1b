// pkg/auth/roles.go
package auth

// Роли, которые понимает API.
const (
	RoleAdmin    = "admin"
	RoleCustomer = "customer"
)

// Roles - фиксированное перечисление допустимых ролей.
var Roles = []string{RoleAdmin, RoleCustomer}

// IsValidRole сообщает, входит ли роль в перечисление.
func IsValidRole(role string) bool {
	return HasRole(role, Roles...)
}

// HasRole проверяет, что role входит в набор allowed.
// Пустая роль никогда не проходит проверку.
func HasRole(role string, allowed ...string) bool {
	if role == "" {
		return false
	}
	for _, r := range allowed {
		if r == role {
			return true
		}
	}
	return false
}
