package dto

import "time"

// StockMovementRequest entrada/salida manual de stock para una referencia.
type StockMovementRequest struct {
	Reference string `json:"reference"`
	Quantity  int    `json:"quantity"`
}

// ThresholdRequest fija el umbral de stock bajo de una referencia.
type ThresholdRequest struct {
	Reference string `json:"reference"`
	Threshold int    `json:"threshold"`
}

// StockResponse libro de stock de un concesionario.
type StockResponse struct {
	DealershipID string         `json:"dealership_id"`
	Quantities   map[string]int `json:"quantities"`
	Thresholds   map[string]int `json:"thresholds"`
	LowStock     []string       `json:"low_stock"`
	UpdatedAt    time.Time      `json:"updated_at"`
}

// StockStatsResponse resumen de stock.
type StockStatsResponse struct {
	DealershipID    string `json:"dealership_id"`
	TotalReferences int    `json:"total_references"`
	TotalUnits      int    `json:"total_units"`
	LowStockCount   int    `json:"low_stock_count"`
}
