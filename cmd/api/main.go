package main

import (
	"context"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/gofiber/contrib/swagger"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/recover"

	appanalytics "github.com/dailishaw/dailishaw-api/internal/application/analytics"
	"github.com/dailishaw/dailishaw-api/internal/application/auth"
	"github.com/dailishaw/dailishaw-api/internal/application/catalog"
	"github.com/dailishaw/dailishaw-api/internal/application/export"
	"github.com/dailishaw/dailishaw-api/internal/application/usecase"
	infrapdf "github.com/dailishaw/dailishaw-api/internal/infrastructure/pdf"
	"github.com/dailishaw/dailishaw-api/internal/infrastructure/postgres"
	"github.com/dailishaw/dailishaw-api/internal/infrastructure/storage"
	httpRouter "github.com/dailishaw/dailishaw-api/internal/interfaces/http"
	"github.com/dailishaw/dailishaw-api/pkg/config"
	"github.com/dailishaw/dailishaw-api/pkg/logger"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		panic("cargar configuración: " + err.Error())
	}

	log := logger.New(logger.Config{
		Env:     cfg.App.Env,
		Level:   cfg.App.LogLevel,
		Service: cfg.App.Name,
	})
	log.Info().
		Str("env", cfg.App.Env).
		Str("app", cfg.App.Name).
		Msg("iniciando aplicación")

	ctx := context.Background()
	pool, err := postgres.NewPool(ctx, cfg.DB, log)
	if err != nil {
		log.Fatal().Err(err).Msg("conexión a PostgreSQL")
	}
	defer pool.Close()

	if _, err := postgres.Migrate(ctx, pool, log); err != nil {
		log.Fatal().Err(err).Msg("migraciones")
	}

	objects, err := storage.NewS3Storage(ctx, cfg.Storage, log)
	if err != nil {
		log.Fatal().Err(err).Msg("almacenamiento de objetos")
	}

	profileRepo := postgres.NewProfileRepository(pool)
	categoryRepo := postgres.NewCategoryRepository(pool)
	productRepo := postgres.NewProductRepository(pool)
	imageRepo := postgres.NewProductImageRepository(pool)
	doctorRepo := postgres.NewDoctorRepository(pool)
	expenseRepo := postgres.NewExpenseRepository(pool)
	inputRepo := postgres.NewInputRepository(pool)
	investmentRepo := postgres.NewInvestmentRepository(pool)
	txRunner := postgres.NewTxRunner(pool)

	// Sesiones: caché explícita con TTL, invalidada en logout / cambio de rol / estado / borrado
	sessionCache := auth.NewSessionCache(cfg.Session.CacheTTL)
	sessionGuard := auth.NewSessionGuard(profileRepo, sessionCache)
	authUC := auth.NewAuthUseCase(profileRepo, sessionGuard, auth.JWTConfig{
		Secret:     cfg.JWT.Secret,
		ExpMinutes: cfg.JWT.Expiration,
		Issuer:     cfg.JWT.Issuer,
	})

	reorderer := catalog.NewReorderer(txRunner, log)
	categoryUC := catalog.NewCategoryUseCase(categoryRepo, imageRepo, objects, reorderer, log)
	productUC := catalog.NewProductUseCase(productRepo, categoryRepo, imageRepo, objects, reorderer, log)
	imageUC := catalog.NewImageUseCase(imageRepo, productRepo, objects, cfg.HTTP.UploadMaxBytes, log)

	profileUC := usecase.NewProfileUseCase(profileRepo, sessionGuard)
	doctorUC := usecase.NewDoctorUseCase(doctorRepo)
	expenseUC := usecase.NewExpenseUseCase(expenseRepo)
	inputUC := usecase.NewInputUseCase(inputRepo, doctorUC, productRepo)
	investmentUC := usecase.NewInvestmentUseCase(investmentRepo, doctorUC)

	dashboardUC := appanalytics.NewDashboardUseCase(profileRepo, categoryRepo, productRepo, expenseRepo, investmentRepo)
	exportSvc := export.NewService(
		profileRepo, doctorRepo, productRepo, expenseRepo, inputRepo, investmentRepo,
		infrapdf.NewReportGenerator("Dailishaw Pharmaceuticals"), log,
	)

	app := fiber.New(fiber.Config{
		AppName:      cfg.App.Name,
		ReadTimeout:  time.Second * 10,
		WriteTimeout: time.Second * 30,
		IdleTimeout:  time.Second * 60,
		BodyLimit:    cfg.HTTP.UploadMaxBytes + 1024*1024,
	})
	app.Use(recover.New())
	app.Use(httpRouter.RequestLogger(log))
	if origins := strings.TrimSpace(cfg.HTTP.CORSOrigins); origins != "" {
		app.Use(cors.New(cors.Config{
			AllowOrigins: origins,
			AllowHeaders: "Origin, Content-Type, Accept, Authorization",
		}))
	}

	// Swagger UI en local: http://localhost:<port>/docs
	app.Use(swagger.New(swagger.Config{
		BasePath: "/",
		FilePath: "./docs/swagger.json",
		Path:     "docs",
		Title:    "Dailishaw API",
	}))

	httpRouter.Router(app, httpRouter.RouterDeps{
		AuthUC:       authUC,
		Sessions:     sessionGuard,
		ProfileUC:    profileUC,
		CategoryUC:   categoryUC,
		ProductUC:    productUC,
		ImageUC:      imageUC,
		DoctorUC:     doctorUC,
		ExpenseUC:    expenseUC,
		InputUC:      inputUC,
		InvestmentUC: investmentUC,
		DashboardUC:  dashboardUC,
		Export:       exportSvc,
		JWTSecret:    cfg.JWT.Secret,
		ServiceName:  cfg.App.Name,
		Log:          log,
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
