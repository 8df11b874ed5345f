package router

import (
	"time"

	"labtrack/internal/config"
	"labtrack/internal/handler"
	"labtrack/internal/infra"
	"labtrack/internal/middleware"
	"labtrack/internal/repository"
	"labtrack/internal/service"
	"labtrack/internal/worker"

	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"
)

// New wires all dependencies and returns a configured Gin engine.
// Dependency graph: Handler ← Service ← Repository ← DB/Redis
func New(cfg *config.Config, db *gorm.DB, rdb *redis.Client) *gin.Engine {
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

	// ── Infrastructure ───────────────────────────────────────────────────────
	otpStore := infra.NewOTPStore(rdb, time.Duration(cfg.OTPExpiryMinutes)*time.Minute)
	dispatcher := worker.NewDispatcher(rdb)

	// ── Repositories ─────────────────────────────────────────────────────────
	receiptRepo := repository.NewReceiptRepository(db)
	labTestRepo := repository.NewLabTestRepository(db)
	reportRepo := repository.NewReportRepository(db)
	invoiceRepo := repository.NewInvoiceRepository(db)
	userRepo := repository.NewUserRepository(db)
	ownerRepo := repository.NewOwnerRepository(db)

	// ── Services ─────────────────────────────────────────────────────────────
	authSvc := service.NewAuthService(userRepo, otpStore, dispatcher, service.AuthConfig{
		JWTSecret:          cfg.JWTSecret,
		AccessTokenExpiry:  time.Duration(cfg.JWTExpirationHours) * time.Hour,
		RefreshTokenExpiry: time.Duration(cfg.JWTRefreshHours) * time.Hour,
		OwnerTokenExpiry:   time.Duration(cfg.OwnerTokenMinutes) * time.Minute,
	})
	receiptSvc := service.NewReceiptService(receiptRepo, cfg.CentralBranch)
	labTestSvc := service.NewLabTestService(labTestRepo, receiptRepo)
	reportSvc := service.NewReportService(reportRepo, labTestRepo)
	invoiceSvc := service.NewInvoiceService(invoiceRepo, reportRepo, dispatcher)
	trackingSvc := service.NewTrackingService(receiptRepo, labTestRepo, reportRepo, invoiceRepo)
	ownerSvc := service.NewOwnerService(ownerRepo, reportRepo)

	// ── Handlers ─────────────────────────────────────────────────────────────
	authH := handler.NewAuthHandler(authSvc)
	receiptsH := handler.NewReceiptsHandler(receiptSvc)
	labTestsH := handler.NewLabTestsHandler(labTestSvc)
	reportsH := handler.NewReportsHandler(reportSvc)
	invoicesH := handler.NewInvoicesHandler(invoiceSvc)
	ownerH := handler.NewOwnerHandler(trackingSvc, ownerSvc)

	// ── Routes ───────────────────────────────────────────────────────────────

	// Public
	r.GET("/health", handler.Health(db, rdb))

	// Auth (public); OTP issuance shares the login limiter
	auth := r.Group("/v1/auth")
	{
		auth.POST("/login", middleware.LoginRateLimiter(), authH.Login)
		auth.POST("/refresh", authH.Refresh)
		auth.POST("/owner/otp", middleware.LoginRateLimiter(), authH.InitPhoneOTP)
		auth.POST("/owner/otp/verify", middleware.LoginRateLimiter(), authH.VerifyPhoneOTP)
		auth.POST("/owner/otp/email", middleware.LoginRateLimiter(), authH.InitEmailOTP)
		auth.POST("/owner/otp/email/verify", middleware.LoginRateLimiter(), authH.VerifyEmailOTP)
	}

	// Protected routes
	jwtMW := middleware.JWTAuth(cfg.JWTSecret)
	v1 := r.Group("/v1", jwtMW)
	{
		staff := middleware.RequireRole("admin", "lab_staff", "accounts")
		labRoles := middleware.RequireRole("admin", "lab_staff")
		billing := middleware.RequireRole("admin", "accounts")

		// Receipts: intake is lab work; every staff role can read
		v1.GET("/receipts", staff, receiptsH.List)
		v1.GET("/receipts/stats", staff, receiptsH.Stats)
		v1.GET("/receipts/:id", staff, receiptsH.Get)
		receipts := v1.Group("/receipts", labRoles)
		{
			receipts.POST("", receiptsH.Create)
			receipts.PATCH("/:id", receiptsH.Update)
			receipts.DELETE("/:id", receiptsH.Delete)
		}

		// Lab tests
		v1.GET("/labtests", staff, labTestsH.List)
		v1.GET("/labtests/:id", staff, labTestsH.Get)
		labtests := v1.Group("/labtests", labRoles)
		{
			labtests.POST("", labTestsH.Create)
			labtests.PATCH("/:id", labTestsH.Update)
			labtests.POST("/:id/transfer", labTestsH.Transfer)
		}

		// Reports
		v1.GET("/reports", staff, reportsH.List)
		v1.GET("/reports/:id", staff, reportsH.Get)
		reports := v1.Group("/reports", labRoles)
		{
			reports.POST("", reportsH.Create)
			reports.PATCH("/:id", reportsH.Update)
			reports.POST("/:id/approve", reportsH.Approve)
		}

		// Invoices: billing is for accounts and admin
		invoices := v1.Group("/invoices", billing)
		{
			invoices.POST("", invoicesH.Create)
			invoices.GET("", invoicesH.List)
			invoices.GET("/approved-reports", invoicesH.ApprovedReports)
			invoices.GET("/pdf/:id", invoicesH.DownloadPDF)
			invoices.GET("/:id", invoicesH.Get)
			invoices.PATCH("/:id", invoicesH.Update)
			invoices.POST("/:id/pay", invoicesH.MarkPaid)
		}

		// Owner portal: OTP-issued owner tokens plus staff
		ownerRead := middleware.RequireRole("owner", "admin", "lab_staff", "accounts")
		v1.GET("/owner/track", ownerRead, ownerH.Track)
		v1.GET("/owner/retest-requests", ownerRead, ownerH.ListRetestRequests)
		v1.POST("/owner/retest-requests", middleware.RequireRole("owner"), ownerH.CreateRetestRequest)
		v1.POST("/owner/retest-requests/:id/respond", labRoles, ownerH.RespondRetestRequest)
		v1.GET("/owner/preferences", middleware.RequireRole("owner"), ownerH.GetPreference)
		v1.PUT("/owner/preferences", middleware.RequireRole("owner"), ownerH.UpsertPreference)

		// User management: admin only
		users := v1.Group("/users", middleware.RequireRole("admin"))
		{
			users.POST("", authH.CreateUser)
			users.GET("", authH.ListUsers)
			users.PATCH("/:id", authH.UpdateUser)
			users.DELETE("/:id", authH.DeactivateUser)
			users.POST("/:id/reactivate", authH.ReactivateUser)
		}
	}

	// Swagger UI: only enabled outside production
	if cfg.Env != "production" {
		r.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))
	}

	return r
}
