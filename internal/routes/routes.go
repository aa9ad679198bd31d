package routes

import (
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/legalconnect/schedule-service/internal/audit"
	"github.com/legalconnect/schedule-service/internal/config"
	"github.com/legalconnect/schedule-service/internal/handlers"
	"github.com/legalconnect/schedule-service/internal/identity"
	infraRepo "github.com/legalconnect/schedule-service/internal/infra/repository"
	"github.com/legalconnect/schedule-service/internal/lock"
	"github.com/legalconnect/schedule-service/internal/middleware"
	"github.com/legalconnect/schedule-service/internal/notification"
	ucAppointment "github.com/legalconnect/schedule-service/internal/usecase/appointment"
	ucAvailability "github.com/legalconnect/schedule-service/internal/usecase/availability"
)

func RegisterRoutes(
	r *gin.Engine,
	db *gorm.DB,
	cfg *config.Config,
	ids identity.Client,
	locker lock.Locker,
	notify *notification.Dispatcher,
) {

	// ======================================================
	// INFRA (SINGLETONS)
	// ======================================================
	repo := infraRepo.NewSchedulingGormRepository(db)

	auditLogger := audit.New(db)
	auditDispatcher := audit.NewDispatcher(auditLogger)

	// ======================================================
	// USE CASES — AVAILABILITY
	// ======================================================
	createWindowUC := ucAvailability.NewCreateWindow(repo, auditDispatcher)
	createBulkUC := ucAvailability.NewCreateBulkWindows(repo, auditDispatcher)
	updateWindowUC := ucAvailability.NewUpdateWindow(repo, auditDispatcher)
	deleteWindowUC := ucAvailability.NewDeleteWindow(repo, auditDispatcher)
	listWindowsUC := ucAvailability.NewListWindows(repo)

	// ======================================================
	// USE CASES — APPOINTMENTS
	// ======================================================
	createAppointmentUC := ucAppointment.NewCreateAppointment(repo, ids, locker, notify, auditDispatcher)
	confirmUC := ucAppointment.NewConfirmAppointment(repo, ids, notify, auditDispatcher)
	rejectUC := ucAppointment.NewRejectAppointment(repo, ids, notify, auditDispatcher)
	cancelUC := ucAppointment.NewCancelAppointment(repo, ids, notify, auditDispatcher)
	completeUC := ucAppointment.NewCompleteAppointment(repo, auditDispatcher)
	rateUC := ucAppointment.NewRateAppointment(repo, auditDispatcher)
	listUC := ucAppointment.NewListAppointments(repo)
	getUC := ucAppointment.NewGetAppointment(repo, ids)
	slotsUC := ucAppointment.NewGetSlots(repo, ids)

	// ======================================================
	// HANDLERS
	// ======================================================
	availabilityHandler := handlers.NewAvailabilityHandler(
		createWindowUC,
		createBulkUC,
		updateWindowUC,
		deleteWindowUC,
		listWindowsUC,
	)

	appointmentHandler := handlers.NewAppointmentHandler(
		createAppointmentUC,
		confirmUC,
		rejectUC,
		cancelUC,
		completeUC,
		rateUC,
		listUC,
		getUC,
	)

	publicHandler := handlers.NewPublicHandler(slotsUC, listWindowsUC)

	// ======================================================
	// API (JSON)
	// ======================================================
	api := r.Group("/api")
	{
		// ------------------------------
		// PUBLIC
		// ------------------------------
		publicAPI := api.Group("/public")
		{
			publicAPI.GET("/lawyers/:lawyerId/availability", publicHandler.ListLawyerAvailability)
			publicAPI.GET("/lawyers/:lawyerId/slots", publicHandler.GetAvailableSlots)
		}

		// ------------------------------
		// AUTHENTICATED
		// ------------------------------
		secured := api.Group("/")
		secured.Use(middleware.AuthMiddleware(cfg))
		{
			// Lawyer schedule management
			lawyerOnly := secured.Group("/me/availability")
			lawyerOnly.Use(middleware.RequireRole(middleware.RoleLawyer))
			{
				lawyerOnly.GET("", availabilityHandler.List)
				lawyerOnly.POST("", availabilityHandler.Create)
				lawyerOnly.POST("/bulk", availabilityHandler.CreateBulk)
				lawyerOnly.PUT("/:id", availabilityHandler.Update)
				lawyerOnly.DELETE("/:id", availabilityHandler.Delete)
			}

			// ------------------------------
			// APPOINTMENTS
			// ------------------------------
			secured.POST("/appointments",
				middleware.RequireRole(middleware.RoleCitizen), appointmentHandler.Create)
			secured.GET("/me/appointments", appointmentHandler.ListMine)
			secured.GET("/appointments/:id", appointmentHandler.Get)

			secured.PATCH("/appointments/:id/confirm",
				middleware.RequireRole(middleware.RoleLawyer), appointmentHandler.Confirm)
			secured.PATCH("/appointments/:id/reject",
				middleware.RequireRole(middleware.RoleLawyer), appointmentHandler.Reject)
			secured.PATCH("/appointments/:id/cancel", appointmentHandler.Cancel)
			secured.PATCH("/appointments/:id/complete",
				middleware.RequireRole(middleware.RoleLawyer), appointmentHandler.Complete)
			secured.POST("/appointments/:id/rating",
				middleware.RequireRole(middleware.RoleCitizen), appointmentHandler.Rate)
		}
	}
}
