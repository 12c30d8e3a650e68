package dto

import "time"

// RegisterCompanyRequest alta de empresa asociada.
type RegisterCompanyRequest struct {
	Name               string `json:"name"`
	RegistrationNumber string `json:"registration_number"`
	Address            string `json:"address"`
	Phone              string `json:"phone"`
	Email              string `json:"email"`
}

// EmployeeRequest alta/baja de empleado en una organización.
type EmployeeRequest struct {
	UserID string `json:"user_id"`
}

// CompanyResponse empresa con sus empleados.
type CompanyResponse struct {
	ID                    string    `json:"id"`
	Name                  string    `json:"name"`
	RegistrationNumber    string    `json:"registration_number"`
	Address               string    `json:"address,omitempty"`
	Phone                 string    `json:"phone,omitempty"`
	Email                 string    `json:"email,omitempty"`
	IsActive              bool      `json:"is_active"`
	CreatedByDealershipID string    `json:"created_by_dealership_id,omitempty"`
	EmployeeIDs           []string  `json:"employee_ids"`
	CreatedAt             time.Time `json:"created_at"`
	UpdatedAt             time.Time `json:"updated_at"`
}

// CompanyListResponse listado de empresas.
type CompanyListResponse struct {
	Items []CompanyResponse `json:"items"`
	Page  PageResponse      `json:"page"`
}
