package dto

import "time"

// CreateMotorcycleRequest alta de motocicleta (solo admin de plataforma).
type CreateMotorcycleRequest struct {
	VIN          string `json:"vin"`
	Model        string `json:"model"`
	Year         int    `json:"year"`
	Displacement int    `json:"displacement"`
	DealershipID string `json:"dealership_id"`
}

// UpdateMileageRequest actualización de kilometraje; Correction permite decrecer.
type UpdateMileageRequest struct {
	Mileage    int  `json:"mileage"`
	Correction bool `json:"correction,omitempty"`
}

// TransferMotorcycleRequest traslado entre concesionarios.
type TransferMotorcycleRequest struct {
	NewDealershipID string `json:"new_dealership_id"`
}

// ScheduleServiceRequest programa el próximo mantenimiento por kilometraje.
type ScheduleServiceRequest struct {
	AtKM int `json:"at_km"`
}

// MotorcycleResponse motocicleta con su holder.
type MotorcycleResponse struct {
	ID            string    `json:"id"`
	VIN           string    `json:"vin"`
	Model         string    `json:"model"`
	Year          int       `json:"year"`
	Displacement  int       `json:"displacement"`
	Mileage       int       `json:"mileage"`
	Status        string    `json:"status"`
	IsActive      bool      `json:"is_active"`
	DealershipID  string    `json:"dealership_id"`
	CompanyID     string    `json:"company_id,omitempty"`
	NextServiceKM int       `json:"next_service_km,omitempty"`
	CreatedAt     time.Time `json:"created_at"`
	UpdatedAt     time.Time `json:"updated_at"`
}

// MotorcycleListResponse listado de motocicletas.
type MotorcycleListResponse struct {
	Items []MotorcycleResponse `json:"items"`
}
