package http

import (
	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog"

	appanalytics "github.com/dailishaw/dailishaw-api/internal/application/analytics"
	"github.com/dailishaw/dailishaw-api/internal/application/auth"
	"github.com/dailishaw/dailishaw-api/internal/application/catalog"
	"github.com/dailishaw/dailishaw-api/internal/application/dto"
	"github.com/dailishaw/dailishaw-api/internal/application/export"
	"github.com/dailishaw/dailishaw-api/internal/application/usecase"
	"github.com/dailishaw/dailishaw-api/internal/domain/entity"
)

// RouterDeps dependencias para el router.
type RouterDeps struct {
	AuthUC       *auth.AuthUseCase
	Sessions     *auth.SessionGuard
	ProfileUC    *usecase.ProfileUseCase
	CategoryUC   *catalog.CategoryUseCase
	ProductUC    *catalog.ProductUseCase
	ImageUC      *catalog.ImageUseCase
	DoctorUC     *usecase.DoctorUseCase
	ExpenseUC    *usecase.ExpenseUseCase
	InputUC      *usecase.InputUseCase
	InvestmentUC *usecase.InvestmentUseCase
	DashboardUC  *appanalytics.DashboardUseCase
	Export       *export.Service
	JWTSecret    string
	ServiceName  string
	Log          zerolog.Logger
}

// Router registra las rutas de la API.
//
//	/api/auth/*   login público; logout y me con sesión.
//	/api/admin/*  consola de administración (rol admin).
//	/api/user/*   consola del usuario de campo (rol user, solo sus registros).
//	/api/media/*  visor de imágenes (cualquier rol).
func Router(app *fiber.App, deps RouterDeps) {
	errorLog = deps.Log

	app.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"status": "ok", "service": deps.ServiceName})
	})

	api := app.Group("/api")

	// Auth (público)
	authHandler := NewAuthHandler(deps.AuthUC)
	api.Post("/auth/login", authHandler.Login)

	// Rutas protegidas: JWT + sesión vigente
	protected := api.Group("", AuthMiddleware(deps.JWTSecret), SessionMiddleware(deps.Sessions))
	protected.Post("/auth/logout", authHandler.Logout)
	protected.Get("/auth/me", authHandler.Me)

	profileHandler := NewProfileHandler(deps.ProfileUC)
	categoryHandler := NewCategoryHandler(deps.CategoryUC)
	productHandler := NewProductHandler(deps.ProductUC)
	imageHandler := NewImageHandler(deps.ImageUC)
	doctorHandler := NewDoctorHandler(deps.DoctorUC)
	expenseHandler := NewLogHandler[dto.ExpenseRequest, dto.ExpenseResponse](deps.ExpenseUC)
	inputHandler := NewLogHandler[dto.InputRequest, dto.InputResponse](deps.InputUC)
	investmentHandler := NewLogHandler[dto.InvestmentRequest, dto.InvestmentResponse](deps.InvestmentUC)
	exportHandler := NewExportHandler(deps.Export)
	dashboardHandler := NewDashboardHandler(deps.DashboardUC)

	protected.Post("/delete-user", RequireRole(entity.RoleAdmin), profileHandler.DeleteUser)

	// Consola admin
	admin := protected.Group("/admin", RequireRole(entity.RoleAdmin))

	users := admin.Group("/users")
	users.Post("/", profileHandler.Create)
	users.Get("/", profileHandler.List)
	users.Get("/:id", profileHandler.GetByID)
	users.Put("/:id", profileHandler.Update)
	users.Put("/:id/password", profileHandler.ResetPassword)
	users.Put("/:id/active", profileHandler.SetActive)
	users.Delete("/:id", profileHandler.Delete)

	categories := admin.Group("/categories")
	categories.Post("/", categoryHandler.Create)
	categories.Get("/", categoryHandler.List)
	categories.Get("/:id", categoryHandler.GetByID)
	categories.Put("/:id", categoryHandler.Update)
	categories.Delete("/:id", categoryHandler.Delete)
	categories.Post("/:id/move", categoryHandler.Move)

	products := admin.Group("/products")
	products.Post("/", productHandler.Create)
	products.Get("/", productHandler.List)
	products.Get("/:id", productHandler.GetByID)
	products.Put("/:id", productHandler.Update)
	products.Delete("/:id", productHandler.Delete)
	products.Post("/:id/move", productHandler.Move)
	products.Post("/:id/images", imageHandler.Upload)
	admin.Delete("/images/:id", imageHandler.Delete)

	admin.Get("/doctors", doctorHandler.List)
	admin.Delete("/doctors/:id", doctorHandler.Delete)
	admin.Get("/expenses/export", exportHandler.Export(export.Expenses))
	admin.Get("/expenses", expenseHandler.List)
	admin.Delete("/expenses/:id", expenseHandler.Delete)
	admin.Get("/inputs/export", exportHandler.Export(export.Inputs))
	admin.Get("/inputs", inputHandler.List)
	admin.Delete("/inputs/:id", inputHandler.Delete)
	admin.Get("/investments/export", exportHandler.Export(export.Investments))
	admin.Get("/investments", investmentHandler.List)
	admin.Delete("/investments/:id", investmentHandler.Delete)
	admin.Get("/dashboard/summary", dashboardHandler.GetSummary)

	// Consola del usuario de campo
	user := protected.Group("/user", RequireRole(entity.RoleUser), OwnScope())

	user.Get("/categories", categoryHandler.List)
	user.Get("/products", productHandler.List)
	user.Get("/products/:id", productHandler.GetByID)

	doctors := user.Group("/doctors")
	doctors.Post("/", doctorHandler.Create)
	doctors.Get("/", doctorHandler.List)
	doctors.Put("/:id", doctorHandler.Update)
	doctors.Delete("/:id", doctorHandler.Delete)

	registerLog(user.Group("/expenses"), expenseHandler, exportHandler.Export(export.Expenses))
	registerLog(user.Group("/inputs"), inputHandler, exportHandler.Export(export.Inputs))
	registerLog(user.Group("/investments"), investmentHandler, exportHandler.Export(export.Investments))

	// Visor de medios
	media := protected.Group("/media", RequireRole(entity.RoleAdmin, entity.RoleUser))
	media.Get("/products/:id/images", imageHandler.List)
}

// registerLog rutas CRUD + export de un registro de campo en la consola de usuario.
func registerLog[Req, Resp any](g fiber.Router, h *LogHandler[Req, Resp], exportFn fiber.Handler) {
	g.Get("/export", exportFn)
	g.Post("/", h.Create)
	g.Get("/", h.List)
	g.Put("/:id", h.Update)
	g.Delete("/:id", h.Delete)
}
