package routes

import (
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/yelo29/barangayreservetest-1/internal/audit"
	"github.com/yelo29/barangayreservetest-1/internal/auth"
	"github.com/yelo29/barangayreservetest-1/internal/config"
	"github.com/yelo29/barangayreservetest-1/internal/domain/verification"
	"github.com/yelo29/barangayreservetest-1/internal/handlers"
	"github.com/yelo29/barangayreservetest-1/internal/idgen"
	"github.com/yelo29/barangayreservetest-1/internal/infra/repository"
	"github.com/yelo29/barangayreservetest-1/internal/media"
	"github.com/yelo29/barangayreservetest-1/internal/middleware"
	"github.com/yelo29/barangayreservetest-1/internal/storage"
	"github.com/yelo29/barangayreservetest-1/internal/timezone"
	ucBooking "github.com/yelo29/barangayreservetest-1/internal/usecase/booking"
	ucVerification "github.com/yelo29/barangayreservetest-1/internal/usecase/verification"
)

type Store = repository.Store

type Deps struct {
	Config  *config.Config
	Log     *zap.Logger
	Store   Store
	Objects storage.ObjectStore
	Revoker auth.Revoker
	Checks  map[string]handlers.Pinger

	// AuthOptions are appended after the revoker option.
	AuthOptions []auth.Option
}

// Policy is the discount policy the configuration describes.
func Policy(cfg *config.Config) verification.DiscountPolicy {
	return verification.DiscountPolicy{
		Resident:    cfg.DiscountResident,
		NonResident: cfg.DiscountNonResident,
	}
}

// NewReconcile builds the approval repair job shared by the route and startup.
func NewReconcile(d Deps, auditLog *audit.Logger) *ucVerification.Reconcile {
	return ucVerification.NewReconcile(d.Store, Policy(d.Config), auditLog, d.Log)
}

func RegisterRoutes(r *gin.Engine, d Deps) {
	cfg := d.Config

	// ======================================================
	// MIDDLEWARE GLOBAL
	// ======================================================
	r.Use(middleware.Recovery(d.Log))
	r.Use(middleware.LoggingMiddleware(d.Log))
	r.Use(middleware.CORSMiddleware(cfg.CORSOrigins))

	// ======================================================
	// INFRA (SINGLETONS)
	// ======================================================
	auditLogger := audit.New(d.Store, d.Log)
	clock := timezone.ClockIn(cfg.Timezone)
	refs := idgen.NewReferences(cfg.SnowflakeNode)

	uploader := media.NewUploader(d.Objects, media.Options{
		MaxBytes:     cfg.UploadMaxBytes,
		Normalize:    cfg.UploadNormalize,
		MaxDimension: cfg.UploadMaxDimension,
	})

	revoker := d.Revoker
	if revoker == nil {
		revoker = auth.NopRevoker{}
	}
	authOpts := append([]auth.Option{auth.WithRevoker(revoker)}, d.AuthOptions...)
	authService := auth.NewService(
		d.Store,
		auth.NewTokenIssuer(cfg.JWTSecret, cfg.TokenTTL),
		auditLogger,
		authOpts...,
	)

	// ======================================================
	// USE CASES
	// ======================================================
	createBookingUC := ucBooking.NewCreateBooking(d.Store, d.Store, d.Store, refs, auditLogger)
	listBookingsUC := ucBooking.NewListBookings(d.Store, d.Log)
	updateBookingUC := ucBooking.NewUpdateBookingStatus(d.Store, auditLogger, clock)
	availabilityUC := ucBooking.NewGetAvailability(d.Store, d.Store)

	submitRequestUC := ucVerification.NewSubmitRequest(d.Store, d.Store, auditLogger)
	decideRequestUC := ucVerification.NewDecideRequest(d.Store, Policy(cfg), auditLogger, clock)
	listPendingUC := ucVerification.NewListPending(d.Store)
	reconcileUC := NewReconcile(d, auditLogger)

	// ======================================================
	// HANDLERS
	// ======================================================
	healthHandler := handlers.NewHealthHandler(d.Checks, d.Log)
	authHandler := handlers.NewAuthHandler(authService, d.Log)
	userHandler := handlers.NewUserHandler(d.Store, auditLogger, d.Log)
	facilityHandler := handlers.NewFacilityHandler(d.Store, auditLogger, d.Log)
	bookingHandler := handlers.NewBookingHandler(
		createBookingUC,
		listBookingsUC,
		updateBookingUC,
		availabilityUC,
		uploader,
		d.Log,
	)
	verificationHandler := handlers.NewVerificationHandler(
		submitRequestUC,
		decideRequestUC,
		listPendingUC,
		reconcileUC,
		uploader,
		d.Log,
	)
	eventHandler := handlers.NewEventHandler(d.Store, auditLogger, d.Log)
	uploadHandler := handlers.NewUploadHandler(uploader, d.Log)
	auditLogsHandler := handlers.NewAuditLogsHandler(auditLogger, d.Log)

	r.GET("/health", healthHandler.Get)

	// ======================================================
	// API (JSON)
	// ======================================================
	api := r.Group("/api")
	{
		api.GET("/health", healthHandler.Get)

		// ------------------------------
		// PUBLIC
		// ------------------------------
		api.POST("/auth/register", authHandler.Register)
		api.POST("/auth/login", authHandler.Login)
		api.GET("/officials", userHandler.Officials)
		api.GET("/facilities", facilityHandler.List)
		api.GET("/barangay-events", eventHandler.List)

		// ------------------------------
		// BEARER
		// ------------------------------
		secured := api.Group("")
		secured.Use(middleware.AuthMiddleware(authService, d.Log))
		{
			secured.POST("/auth/logout", authHandler.Logout)

			secured.GET("/me", userHandler.Me)
			secured.GET("/users/:id", userHandler.Get)
			secured.PUT("/users/:id", userHandler.Update)

			secured.GET("/facilities/:id/timeslots", bookingHandler.Timeslots)

			secured.POST("/bookings", bookingHandler.Create)
			secured.GET("/bookings", bookingHandler.List)
			secured.GET("/bookings/user/:id", bookingHandler.ByUser)
			secured.GET("/bookings/user/email/:email", bookingHandler.ByEmail)
			secured.GET("/bookings/facility/:id/:date", bookingHandler.ByFacilityDate)
			secured.GET("/bookings/facility/:id/range/:start/:end", bookingHandler.ByFacilityRange)

			secured.POST("/authentication-requests", verificationHandler.Submit)

			secured.POST("/upload/receipt", uploadHandler.Receipt)
			secured.POST("/upload/verification", uploadHandler.Verification)

			// ------------------------------
			// OFFICIAL
			// ------------------------------
			official := secured.Group("")
			official.Use(middleware.RequireOfficial())
			{
				official.POST("/facilities", facilityHandler.Create)
				official.PUT("/facilities/:id", facilityHandler.Update)
				official.DELETE("/facilities/:id", facilityHandler.Deactivate)

				official.GET("/bookings/pending", bookingHandler.Pending)
				official.PUT("/bookings/:id/status", bookingHandler.UpdateStatus)

				official.GET("/authentication-requests/pending", verificationHandler.Pending)
				official.PUT("/authentication-requests/:id/status", verificationHandler.Decide)
				official.POST("/authentication-requests/reconcile", verificationHandler.Reconcile)

				official.POST("/barangay-events", eventHandler.Create)

				official.GET("/audit-logs", auditLogsHandler.List)
			}
		}
	}
}
