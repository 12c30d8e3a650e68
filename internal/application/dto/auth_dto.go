package dto

import "time"

// RegisterRequest alta de usuario. El rol determina qué scope aplica.
type RegisterRequest struct {
	Email        string `json:"email"`
	Password     string `json:"password"`
	Name         string `json:"name"`
	Role         string `json:"role"`
	DealershipID string `json:"dealership_id,omitempty"`
	CompanyID    string `json:"company_id,omitempty"`
}

// LoginRequest credenciales de acceso.
type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// UserResponse usuario sin datos sensibles (nunca incluye el hash).
type UserResponse struct {
	ID           string    `json:"id"`
	Email        string    `json:"email"`
	Name         string    `json:"name"`
	Role         string    `json:"role"`
	DealershipID string    `json:"dealership_id,omitempty"`
	CompanyID    string    `json:"company_id,omitempty"`
	IsActive     bool      `json:"is_active"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}

// LoginResponse token + usuario autenticado.
type LoginResponse struct {
	Token string       `json:"token"`
	User  UserResponse `json:"user"`
}

// ChangeRoleRequest operación explícita de cambio de rol.
type ChangeRoleRequest struct {
	Role string `json:"role"`
}
