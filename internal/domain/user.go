package domain

import (
	"time"
)

// User - учетная запись API.
type User struct {
	ID           string    `json:"id" db:"id"`
	Email        string    `json:"email" db:"email"`
	PasswordHash string    `json:"-" db:"password"` // Не отдаем хеш пароля в JSON
	Role         string    `json:"role" db:"role"`
	CreatedAt    time.Time `json:"created_at" db:"created_at"`
	UpdatedAt    time.Time `json:"updated_at" db:"updated_at"`
}

// RegisterRequest - публичная регистрация, роль всегда customer.
type RegisterRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required,min=8,max=72"`
}

// CreateUserRequest - создание пользователя администратором.
type CreateUserRequest struct {
	Email    string  `json:"email" validate:"required,email"`
	Password string  `json:"password" validate:"required,min=8,max=72"`
	Role     *string `json:"role,omitempty" validate:"omitempty,oneof=admin customer"`
}

// UpdateUserRequest - частичное обновление, передаются только изменяемые поля.
type UpdateUserRequest struct {
	Email    *string `json:"email,omitempty" validate:"omitempty,email"`
	Password *string `json:"password,omitempty" validate:"omitempty,min=8,max=72"`
	Role     *string `json:"role,omitempty" validate:"omitempty,oneof=admin customer"`
}

// LoginRequest для входа пользователя.
type LoginRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

// LoginResponse для ответа при успешном входе.
type LoginResponse struct {
	User  *User  `json:"user"`
	Token string `json:"token"`
}

// RegisterResponse для ответа при регистрации.
type RegisterResponse struct {
	User        *User  `json:"user"`
	Token       string `json:"token"`
	WelcomeSent bool   `json:"welcome_sent"`
}
