package router

import (
	"time"

	"gkms/internal/config"
	"gkms/internal/handler"
	"gkms/internal/infra"
	"gkms/internal/middleware"
	"gkms/internal/model"
	"gkms/internal/repository"
	"gkms/internal/service"
	"gkms/internal/worker"

	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"
)

// Deps carries the shared infrastructure the router wires into services.
type Deps struct {
	EFTClient    *infra.EFTClient
	PayoutClient *infra.PayoutClient
	Dispatcher   *worker.Dispatcher
}

// New wires all dependencies and returns a configured Gin engine.
// Dependency graph: Handler ← Service ← Repository ← DB/Redis
func New(cfg *config.Config, db *gorm.DB, rdb *redis.Client, deps Deps) *gin.Engine {
	if cfg.Env == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	r := gin.New()

	// Global middleware chain (order matters)
	r.Use(middleware.RequestID())
	r.Use(middleware.Logger())
	r.Use(middleware.Recovery())
	r.Use(middleware.CORS())
	r.Use(middleware.ErrorHandler())
	r.Use(middleware.RateLimiter(1000, time.Minute)) // 1000 req/min per IP

	// ── Repositories ─────────────────────────────────────────────────────────
	userRepo := repository.NewUserRepository(db)
	locationRepo := repository.NewLocationRepository(db)
	requestRepo := repository.NewCashRequestRepository(db)
	deliveryRepo := repository.NewCashDeliveryRepository(db)
	positionRepo := repository.NewDailyPositionRepository(db)
	eodRepo := repository.NewEODReportRepository(db)
	emergencyRepo := repository.NewEmergencyAccessRepository(db)
	settingsRepo := repository.NewSettingsRepository(db)

	// ── Services ─────────────────────────────────────────────────────────────
	authSvc := service.NewAuthService(userRepo, cfg)
	locationSvc := service.NewLocationService(locationRepo)
	settingsSvc := service.NewSettingsService(settingsRepo)
	emergencySvc := service.NewEmergencyService(emergencyRepo, settingsSvc)
	requestSvc := service.NewRequestService(requestRepo, deliveryRepo, userRepo, deps.Dispatcher)
	positionSvc := service.NewPositionService(positionRepo, deliveryRepo, locationRepo, requestRepo, deps.EFTClient, deps.PayoutClient)
	eodSvc := service.NewEODService(eodRepo, positionRepo, locationRepo, deps.Dispatcher, cfg.PDFStoragePath)

	// ── Handlers ─────────────────────────────────────────────────────────────
	authH := handler.NewAuthHandler(authSvc)
	usersH := handler.NewUsersHandler(authSvc)
	locationsH := handler.NewLocationsHandler(locationSvc)
	requestsH := handler.NewRequestsHandler(requestSvc)
	positionsH := handler.NewPositionsHandler(positionSvc)
	eodH := handler.NewEODHandler(eodSvc, emergencySvc)
	emergencyH := handler.NewEmergencyHandler(emergencySvc)
	settingsH := handler.NewSettingsHandler(settingsSvc)

	// ── Routes ───────────────────────────────────────────────────────────────

	// Public
	r.GET("/health", handler.Health(db, rdb))

	// Auth (public)
	auth := r.Group("/v1/auth")
	{
		auth.POST("/login", middleware.LoginRateLimiter(), authH.Login)
		auth.POST("/refresh", authH.Refresh)
	}

	// Protected routes
	jwtMW := middleware.JWTAuth(cfg.JWTSecret)
	v1 := r.Group("/v1", jwtMW)
	{
		anyRole := middleware.RequireRole(model.RoleAgent, model.RoleAdmin)

		// Cash requests: agents raise them for their own branch
		v1.POST("/requests", anyRole, requestsH.Create)
		v1.GET("/requests", anyRole, requestsH.ListMine)
		v1.GET("/requests/:id", anyRole, requestsH.Get)

		// Deliveries: agents confirm receipt at their branch
		v1.GET("/deliveries", anyRole, requestsH.ListDeliveries)
		v1.POST("/deliveries/:id/verify", anyRole, requestsH.VerifyDelivery)

		// End-of-day reconciliation
		v1.POST("/eod", anyRole, eodH.Submit)
		v1.GET("/eod", anyRole, eodH.ListMine)
		v1.GET("/eod/window", anyRole, emergencyH.Window)
		v1.GET("/eod/:id", anyRole, eodH.Get)

		// Emergency access for late submissions
		v1.POST("/emergency", anyRole, emergencyH.Request)
		v1.GET("/emergency", anyRole, emergencyH.ListMine)

		// Positions: agents can read their own branch's projection
		v1.GET("/positions/:id", anyRole, positionsH.Get)
		v1.GET("/positions/:id/history", anyRole, positionsH.History)

		// Admin-only surface
		admin := v1.Group("/admin", middleware.RequireRole(model.RoleAdmin))
		{
			admin.GET("/dashboard", positionsH.Dashboard)
			admin.POST("/positions/compute", positionsH.Compute)

			admin.GET("/requests/pending", requestsH.ListPending)
			admin.POST("/requests/:id/approve", requestsH.Approve)
			admin.POST("/requests/:id/reject", requestsH.Reject)

			admin.POST("/locations", locationsH.Create)
			admin.GET("/locations", locationsH.List)
			admin.GET("/locations/:id", locationsH.Get)
			admin.PUT("/locations/:id", locationsH.Update)
			admin.GET("/locations/:id/limits", locationsH.GetLimits)
			admin.PUT("/locations/:id/limits", locationsH.SetLimits)

			admin.GET("/eod", eodH.ListByDate)
			admin.GET("/eod/:id/pdf", eodH.ExportPDF)

			admin.GET("/emergency/pending", emergencyH.ListPending)
			admin.POST("/emergency/:id/review", emergencyH.Review)

			admin.GET("/settings", settingsH.Get)
			admin.PUT("/settings", settingsH.Update)

			admin.POST("/users", usersH.Create)
			admin.GET("/users", usersH.List)
			admin.PUT("/users/:id", usersH.Update)
			admin.DELETE("/users/:id", usersH.Deactivate)
			admin.PATCH("/users/:id/reactivate", usersH.Reactivate)
		}
	}

	// Swagger UI, only enabled outside production
	if cfg.Env != "production" {
		r.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))
	}

	return r
}
