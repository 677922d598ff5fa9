package api

import (
	"github.com/labstack/echo-contrib/echoprometheus"
	"github.com/labstack/echo/v4"
	echomiddleware "github.com/labstack/echo/v4/middleware"
	"github.com/rs/zerolog"
	echoSwagger "github.com/swaggo/echo-swagger"

	_ "github.com/mesapos/restaurant-pos/docs"
	"github.com/mesapos/restaurant-pos/internal/api/handler"
	"github.com/mesapos/restaurant-pos/internal/api/middleware"
	"github.com/mesapos/restaurant-pos/internal/core/ports"
	"github.com/mesapos/restaurant-pos/pkg/permission"
)

// Deps are the services and settings the HTTP layer is built from.
type Deps struct {
	Auth          ports.AuthService
	Users         ports.UserService
	Orders        ports.OrderService
	Notifications ports.NotificationService
	Catalog       ports.CatalogService
	Tables        ports.TableService
	Settings      ports.SettingsService
	Expenses      ports.ExpenseService
	Reports       ports.ReportService

	// Readiness checks keyed by dependency name.
	Checks map[string]handler.DependencyCheck

	JWTSecret string
	Log       zerolog.Logger
}

// NewRouter builds and returns the Echo instance with all routes registered.
func NewRouter(d Deps) *echo.Echo {
	e := echo.New()
	e.HideBanner = true
	e.HidePort = true
	e.Validator = handler.NewValidator()
	e.HTTPErrorHandler = NewHTTPErrorHandler(d.Log)

	// --- Global middleware ---
	e.Use(echomiddleware.Recover())
	e.Use(echomiddleware.RequestID())
	e.Use(requestLogger(d.Log))
	e.Use(echomiddleware.CORS())
	e.Use(echoprometheus.NewMiddleware("pos"))

	// --- Handlers ---
	authHandler := handler.NewAuthHandler(d.Auth)
	userHandler := handler.NewUserHandler(d.Users)
	orderHandler := handler.NewOrderHandler(d.Orders)
	notificationHandler := handler.NewNotificationHandler(d.Notifications)
	catalogHandler := handler.NewCatalogHandler(d.Catalog)
	tableHandler := handler.NewTableHandler(d.Tables)
	adminHandler := handler.NewAdminHandler(d.Settings, d.Expenses, d.Reports)

	authMiddleware := middleware.Auth(d.JWTSecret)
	can := middleware.RequirePermission

	// --- Operational endpoints (no auth required) ---
	e.GET("/health", handler.NewHealthHandler().Liveness)
	e.GET("/health/ready", handler.NewReadinessHandler(d.Checks).Readiness)
	e.GET("/metrics", echoprometheus.NewHandler())
	e.GET("/swagger/*", echoSwagger.WrapHandler)

	apiGroup := e.Group("/api")

	// --- Public routes: sign-in and the QR menu ---
	apiGroup.POST("/auth/register", authHandler.Register)
	apiGroup.POST("/auth/login", authHandler.Login)
	apiGroup.GET("/menu/:tableNumber", tableHandler.Menu)
	apiGroup.POST("/orders", orderHandler.Create)

	// --- Staff routes ---
	staff := apiGroup.Group("", authMiddleware)

	staff.GET("/auth/me", authHandler.Me)

	staff.GET("/orders", orderHandler.List, can(permission.ViewOrders))
	staff.GET("/orders/:id", orderHandler.Get, can(permission.ViewOrders))
	staff.PATCH("/orders/:id/status", orderHandler.UpdateStatus, can(permission.UpdateOrderStatus))
	staff.DELETE("/orders/:id", orderHandler.Delete, can(permission.DeleteOrders))

	staff.GET("/notifications/poll", notificationHandler.Poll, can(permission.ViewNotifications))

	staff.GET("/categories", catalogHandler.ListCategories, can(permission.ViewCategories))
	staff.POST("/categories", catalogHandler.CreateCategory, can(permission.CreateCategories))
	staff.PUT("/categories/:id", catalogHandler.UpdateCategory, can(permission.EditCategories))
	staff.DELETE("/categories/:id", catalogHandler.DeleteCategory, can(permission.DeleteCategories))

	staff.GET("/products", catalogHandler.ListProducts, can(permission.ViewProducts))
	staff.POST("/products", catalogHandler.CreateProduct, can(permission.CreateProducts))
	staff.PUT("/products/:id", catalogHandler.UpdateProduct, can(permission.EditProducts))
	staff.DELETE("/products/:id", catalogHandler.DeleteProduct, can(permission.DeleteProducts))

	staff.GET("/tables", tableHandler.List, can(permission.ViewTables))
	staff.POST("/tables", tableHandler.Create, can(permission.CreateTables))
	staff.DELETE("/tables/:id", tableHandler.Delete, can(permission.DeleteTables))
	staff.POST("/tables/:id/qr", tableHandler.RegenerateQR, can(permission.GenerateQR))
	staff.GET("/tables/:id/qr.png", tableHandler.QRImage, can(permission.GenerateQR))

	staff.GET("/users", userHandler.List, can(permission.ViewUsers))
	staff.POST("/users", userHandler.Create, can(permission.CreateUsers))
	staff.DELETE("/users/:id", userHandler.Delete, can(permission.DeleteUsers))

	staff.GET("/settings", adminHandler.GetSettings, can(permission.ViewSettings))
	staff.PUT("/settings", adminHandler.UpdateSettings, can(permission.EditSettings))

	staff.GET("/expenses", adminHandler.ListExpenses, can(permission.ViewExpenses))
	staff.POST("/expenses", adminHandler.CreateExpense, can(permission.CreateExpenses))
	staff.DELETE("/expenses/:id", adminHandler.DeleteExpense, can(permission.DeleteExpenses))

	staff.GET("/reports/sales", adminHandler.SalesReport, can(permission.ViewSalesReports))

	return e
}

// requestLogger writes one zerolog entry per request.
func requestLogger(log zerolog.Logger) echo.MiddlewareFunc {
	return echomiddleware.RequestLoggerWithConfig(echomiddleware.RequestLoggerConfig{
		LogMethod:    true,
		LogURI:       true,
		LogStatus:    true,
		LogLatency:   true,
		LogRequestID: true,
		LogError:     true,
		HandleError:  true,
		LogValuesFunc: func(c echo.Context, v echomiddleware.RequestLoggerValues) error {
			ev := log.Info()
			switch {
			case v.Status >= 500:
				ev = log.Error().Err(v.Error)
			case v.Error != nil:
				ev = log.Warn().Err(v.Error)
			}
			ev.Str("method", v.Method).
				Str("uri", v.URI).
				Int("status", v.Status).
				Dur("latency", v.Latency).
				Str("request_id", v.RequestID).
				Msg("request")
			return nil
		},
	})
}
