package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gofiber/contrib/swagger"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/tu-usuario/flota-pro/internal/application/auth"
	"github.com/tu-usuario/flota-pro/internal/application/parts"
	"github.com/tu-usuario/flota-pro/internal/application/usecase"
	infrapdf "github.com/tu-usuario/flota-pro/internal/infrastructure/pdf"
	"github.com/tu-usuario/flota-pro/internal/infrastructure/postgres"
	httpRouter "github.com/tu-usuario/flota-pro/internal/interfaces/http"
	"github.com/tu-usuario/flota-pro/pkg/config"
	"github.com/tu-usuario/flota-pro/pkg/logger"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		panic("cargar configuración: " + err.Error())
	}

	log := logger.New(logger.Config{
		Env:   cfg.App.Env,
		Level: cfg.App.LogLevel,
	})
	log.Info().
		Str("env", cfg.App.Env).
		Str("app", cfg.App.Name).
		Msg("iniciando aplicación")

	ctx := context.Background()
	pool, err := postgres.NewPool(ctx, cfg.DB)
	if err != nil {
		log.Fatal().Err(err).Msg("conexión a PostgreSQL")
	}
	defer pool.Close()

	userRepo := postgres.NewUserRepository(pool)
	motoRepo := postgres.NewMotorcycleRepository(pool)
	assignRepo := postgres.NewAssignmentRepository(pool)
	companyRepo := postgres.NewCompanyRepository(pool)
	dealershipRepo := postgres.NewDealershipRepository(pool)
	partRepo := postgres.NewSparePartRepository(pool)
	orderRepo := postgres.NewOrderRepository(pool)
	txRunner := postgres.NewTxRunner(pool)

	authUC := auth.NewAuthUseCase(userRepo, auth.JWTConfig{
		Secret:     cfg.JWT.Secret,
		ExpMinutes: cfg.JWT.Expiration,
		Issuer:     cfg.JWT.Issuer,
	})
	motoUC := usecase.NewMotorcycleUseCase(motoRepo, assignRepo)
	assignUC := usecase.NewAssignmentUseCase(txRunner, companyRepo, assignRepo)
	companyUC := usecase.NewCompanyUseCase(companyRepo, userRepo, assignRepo)
	dealershipUC := usecase.NewDealershipUseCase(dealershipRepo, userRepo)
	partUC := usecase.NewSparePartUseCase(partRepo)
	stockUC := usecase.NewStockUseCase(dealershipRepo, partRepo)

	// PDF: comprobante imprimible del pedido de repuestos
	pdfGenerator := infrapdf.NewMarotoPDFGenerator()
	orderUC := parts.NewOrderUseCase(txRunner, orderRepo, dealershipRepo, partRepo, pdfGenerator)

	app := fiber.New(fiber.Config{
		AppName:      cfg.App.Name,
		ReadTimeout:  time.Second * 10,
		WriteTimeout: time.Second * 10,
		IdleTimeout:  time.Second * 60,
	})
	app.Use(recover.New())

	// Swagger UI en local: http://localhost:<port>/docs
	app.Use(swagger.New(swagger.Config{
		BasePath: "/",
		FilePath: "./docs/swagger.json",
		Path:     "docs",
		Title:    "Flota Pro API",
	}))

	app.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"status": "ok", "service": cfg.App.Name})
	})

	httpRouter.Router(app, httpRouter.RouterDeps{
		JWTSecret:         cfg.JWT.Secret,
		AuthHandler:       httpRouter.NewAuthHandler(authUC),
		MotorcycleHandler: httpRouter.NewMotorcycleHandler(motoUC),
		AssignmentHandler: httpRouter.NewAssignmentHandler(assignUC),
		CompanyHandler:    httpRouter.NewCompanyHandler(companyUC),
		DealershipHandler: httpRouter.NewDealershipHandler(dealershipUC),
		SparePartHandler:  httpRouter.NewSparePartHandler(partUC),
		StockHandler:      httpRouter.NewStockHandler(stockUC),
		OrderHandler:      httpRouter.NewOrderHandler(orderUC),
	})

	go func() {
		if err := app.Listen(cfg.HTTP.Addr()); err != nil {
			log.Error().Err(err).Msg("servidor HTTP finalizado")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info().Msg("señal de apagado recibida, cerrando servidor...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := app.ShutdownWithContext(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("apagado del servidor")
	}

	log.Info().Msg("aplicación detenida")
}
