package dto

import "time"

// CreateDealershipRequest alta de concesionario.
type CreateDealershipRequest struct {
	Name       string `json:"name"`
	Address    string `json:"address"`
	City       string `json:"city"`
	PostalCode string `json:"postal_code"`
	Phone      string `json:"phone"`
	Email      string `json:"email"`
}

// DealershipResponse concesionario con sus empleados.
type DealershipResponse struct {
	ID          string    `json:"id"`
	Name        string    `json:"name"`
	Address     string    `json:"address,omitempty"`
	City        string    `json:"city,omitempty"`
	PostalCode  string    `json:"postal_code,omitempty"`
	Phone       string    `json:"phone,omitempty"`
	Email       string    `json:"email,omitempty"`
	IsActive    bool      `json:"is_active"`
	EmployeeIDs []string  `json:"employee_ids"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

// DealershipListResponse listado de concesionarios.
type DealershipListResponse struct {
	Items []DealershipResponse `json:"items"`
	Page  PageResponse         `json:"page"`
}
