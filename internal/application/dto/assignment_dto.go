package dto

import "time"

// AssignMotorcycleRequest asigna una moto disponible a una empresa.
type AssignMotorcycleRequest struct {
	CompanyID    string `json:"company_id"`
	MotorcycleID string `json:"motorcycle_id"`
}

// AssignmentResponse registro de asignación.
type AssignmentResponse struct {
	ID           string     `json:"id"`
	CompanyID    string     `json:"company_id"`
	MotorcycleID string     `json:"motorcycle_id"`
	AssignedAt   time.Time  `json:"assigned_at"`
	EndedAt      *time.Time `json:"ended_at,omitempty"`
	IsActive     bool       `json:"is_active"`
}

// AssignmentListResponse listado de asignaciones.
type AssignmentListResponse struct {
	Items []AssignmentResponse `json:"items"`
}
