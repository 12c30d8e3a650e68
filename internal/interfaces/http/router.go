package http

import (
	"github.com/gofiber/fiber/v2"
)

// RouterDeps dependencias del router HTTP.
type RouterDeps struct {
	JWTSecret string

	AuthHandler       *AuthHandler
	MotorcycleHandler *MotorcycleHandler
	AssignmentHandler *AssignmentHandler
	CompanyHandler    *CompanyHandler
	DealershipHandler *DealershipHandler
	SparePartHandler  *SparePartHandler
	StockHandler      *StockHandler
	OrderHandler      *OrderHandler
}

// Router registra todas las rutas de la API. Las rutas de auth son públicas;
// el resto exige JWT y cada caso de uso aplica su propio permiso y scope.
func Router(app *fiber.App, deps RouterDeps) {
	api := app.Group("/api")

	// Público
	authGroup := api.Group("/auth")
	authGroup.Post("/register", deps.AuthHandler.Register)
	authGroup.Post("/login", deps.AuthHandler.Login)

	// Protegido
	protected := api.Group("", AuthMiddleware(deps.JWTSecret))

	protected.Put("/users/:id/role", deps.AuthHandler.ChangeRole)

	motos := protected.Group("/motorcycles")
	motos.Post("/", deps.MotorcycleHandler.Create)
	motos.Get("/", deps.MotorcycleHandler.List)
	motos.Get("/due-for-maintenance", deps.MotorcycleHandler.ListDueForMaintenance)
	motos.Get("/vin/:vin", deps.MotorcycleHandler.GetByVIN)
	motos.Put("/:id/mileage", deps.MotorcycleHandler.UpdateMileage)
	motos.Post("/:id/maintenance", deps.MotorcycleHandler.MarkAsInMaintenance)
	motos.Post("/:id/available", deps.MotorcycleHandler.MarkAsAvailable)
	motos.Post("/:id/out-of-service", deps.MotorcycleHandler.MarkAsOutOfService)
	motos.Put("/:id/service-schedule", deps.MotorcycleHandler.ScheduleService)
	motos.Post("/:id/transfer", deps.MotorcycleHandler.Transfer)
	motos.Delete("/:id", deps.MotorcycleHandler.Deactivate)
	motos.Get("/:motorcycleId/assignments", deps.AssignmentHandler.ListByMotorcycle)

	assignments := protected.Group("/assignments")
	assignments.Post("/", deps.AssignmentHandler.Assign)
	assignments.Post("/:id/end", deps.AssignmentHandler.End)

	companies := protected.Group("/companies")
	companies.Post("/", deps.CompanyHandler.Register)
	companies.Get("/", deps.CompanyHandler.List)
	companies.Get("/:id", deps.CompanyHandler.GetByID)
	companies.Post("/:id/employees", deps.CompanyHandler.AddEmployee)
	companies.Delete("/:id/employees/:userId", deps.CompanyHandler.RemoveEmployee)
	companies.Delete("/:id", deps.CompanyHandler.Deactivate)
	companies.Get("/:companyId/assignments", deps.AssignmentHandler.ListByCompany)

	dealerships := protected.Group("/dealerships")
	dealerships.Post("/", deps.DealershipHandler.Create)
	dealerships.Get("/", deps.DealershipHandler.List)
	dealerships.Get("/:id", deps.DealershipHandler.GetByID)
	dealerships.Post("/:id/employees", deps.DealershipHandler.AddEmployee)
	dealerships.Delete("/:id/employees/:userId", deps.DealershipHandler.RemoveEmployee)
	dealerships.Delete("/:id", deps.DealershipHandler.Deactivate)
	dealerships.Get("/:id/stock", deps.StockHandler.GetStock)
	dealerships.Post("/:id/stock/add", deps.StockHandler.AddStock)
	dealerships.Post("/:id/stock/remove", deps.StockHandler.RemoveStock)
	dealerships.Put("/:id/stock/threshold", deps.StockHandler.SetThreshold)
	dealerships.Get("/:id/stock/stats", deps.StockHandler.GetStatistics)
	dealerships.Get("/:id/orders", deps.OrderHandler.ListByDealership)
	dealerships.Get("/:id/orders/stats", deps.OrderHandler.GetStats)

	spareParts := protected.Group("/spare-parts")
	spareParts.Post("/", deps.SparePartHandler.Create)
	spareParts.Get("/", deps.SparePartHandler.List)
	spareParts.Get("/:reference", deps.SparePartHandler.GetByReference)
	spareParts.Put("/:reference", deps.SparePartHandler.Update)
	spareParts.Put("/:reference/price", deps.SparePartHandler.SetPrice)
	spareParts.Delete("/:reference", deps.SparePartHandler.Delete)

	orders := protected.Group("/orders")
	orders.Post("/", deps.OrderHandler.PlaceOrder)
	orders.Get("/", deps.OrderHandler.List)
	orders.Get("/:id", deps.OrderHandler.GetByID)
	orders.Post("/:id/confirm", deps.OrderHandler.Confirm)
	orders.Post("/:id/ship", deps.OrderHandler.Ship)
	orders.Post("/:id/deliver", deps.OrderHandler.Deliver)
	orders.Post("/:id/cancel", deps.OrderHandler.Cancel)
	orders.Get("/:id/pdf", deps.OrderHandler.GeneratePDF)
}
