package routes

import (
	"log/slog"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/BruksfildServices01/salon-scheduler/internal/audit"
	"github.com/BruksfildServices01/salon-scheduler/internal/config"
	"github.com/BruksfildServices01/salon-scheduler/internal/handlers"
	infraRepo "github.com/BruksfildServices01/salon-scheduler/internal/infra/repository"
	"github.com/BruksfildServices01/salon-scheduler/internal/middleware"
	ucAppointment "github.com/BruksfildServices01/salon-scheduler/internal/usecase/appointment"
	ucAvailability "github.com/BruksfildServices01/salon-scheduler/internal/usecase/availability"
	ucSchedule "github.com/BruksfildServices01/salon-scheduler/internal/usecase/schedule"
	ucWalkin "github.com/BruksfildServices01/salon-scheduler/internal/usecase/walkin"
)

func RegisterRoutes(
	r *gin.Engine,
	db *gorm.DB,
	cfg *config.Config,
	locker ucWalkin.Locker,
	auditDispatcher *audit.Dispatcher,
) {

	// ======================================================
	// 🌍 MIDDLEWARE GLOBAL
	// ======================================================
	r.Use(middleware.RequestLogger(slog.Default()))
	r.Use(middleware.CORSMiddleware(cfg.CORSOrigins))

	// ======================================================
	// 🔧 INFRA (SINGLETONS)
	// ======================================================
	appointmentRepo := infraRepo.NewAppointmentGormRepository(db)
	availabilityReader := infraRepo.NewAvailabilityGormReader(db)
	scheduleRepo := infraRepo.NewStylistScheduleGormRepository(db)
	walkinRepo := infraRepo.NewWalkInGormRepository(db)

	auditLogger := audit.New(db)

	// ======================================================
	// 🧠 USE CASES · AVAILABILITY
	// ======================================================
	engine := ucAvailability.NewEngine(
		availabilityReader,
		cfg.SlotStepMinutes,
		cfg.DefaultServiceMinutes,
	)

	// ======================================================
	// 🧠 USE CASES · APPOINTMENTS
	// ======================================================
	createAppointmentUC := ucAppointment.NewCreateAppointment(
		appointmentRepo,
		engine,
		auditDispatcher,
	)

	transitionAppointmentUC := ucAppointment.NewTransitionAppointment(
		appointmentRepo,
		auditDispatcher,
	)

	cancelAppointmentUC := ucAppointment.NewCancelAppointment(
		appointmentRepo,
		auditDispatcher,
	)

	rescheduleAppointmentUC := ucAppointment.NewRescheduleAppointment(
		appointmentRepo,
		auditDispatcher,
		cfg.MaxReschedules,
	)

	resolveConflictUC := ucAppointment.NewResolveConflict(
		appointmentRepo,
		auditDispatcher,
	)

	reassignStylistUC := ucAppointment.NewReassignStylist(
		appointmentRepo,
		auditDispatcher,
	)

	// ======================================================
	// 🧠 USE CASES · WALK-IN QUEUE
	// ======================================================
	addToQueueUC := ucWalkin.NewAddToQueue(
		walkinRepo,
		locker,
		auditDispatcher,
		cfg.DefaultServiceMinutes,
	)

	updateQueueEntryUC := ucWalkin.NewUpdateQueueEntry(
		walkinRepo,
		locker,
		auditDispatcher,
	)

	startServingUC := ucWalkin.NewStartServing(
		walkinRepo,
		locker,
		createAppointmentUC,
		auditDispatcher,
	)

	// ======================================================
	// 🧠 USE CASES · SCHEDULE
	// ======================================================
	breaksUC := ucSchedule.NewManageBreaks(scheduleRepo, auditDispatcher)
	blockedSlotsUC := ucSchedule.NewManageBlockedSlots(scheduleRepo, auditDispatcher)
	workingHoursUC := ucSchedule.NewWorkingHours(scheduleRepo)

	// ======================================================
	// 🧩 HANDLERS
	// ======================================================
	availabilityHandler := handlers.NewAvailabilityHandler(engine)

	appointmentHandler := handlers.NewAppointmentHandler(
		createAppointmentUC,
		transitionAppointmentUC,
		cancelAppointmentUC,
		rescheduleAppointmentUC,
		resolveConflictUC,
		reassignStylistUC,
		ucAppointment.NewListAppointments(appointmentRepo),
		ucAppointment.NewGetAppointment(appointmentRepo),
	)

	queueHandler := handlers.NewQueueHandler(
		addToQueueUC,
		updateQueueEntryUC,
		startServingUC,
		ucWalkin.NewGetQueue(walkinRepo),
		ucWalkin.NewRecalculatePositions(walkinRepo, locker),
	)

	scheduleHandler := handlers.NewScheduleHandler(breaksUC, blockedSlotsUC)
	workingHoursHandler := handlers.NewWorkingHoursHandler(workingHoursUC)
	auditLogsHandler := handlers.NewAuditLogsHandler(auditLogger)

	// ======================================================
	// 🌐 API (JSON)
	// ======================================================
	api := r.Group("/api")
	api.Use(middleware.AuthMiddleware(cfg))
	{
		// ------------------------------
		// AVAILABILITY
		// ------------------------------
		api.GET("/availability/slots", availabilityHandler.Slots)
		api.GET("/availability/check", availabilityHandler.Check)
		api.GET("/availability/stylists", availabilityHandler.Stylists)
		api.POST("/availability/auto-assign", availabilityHandler.AutoAssign)

		// ------------------------------
		// APPOINTMENTS
		// ------------------------------
		api.POST("/appointments", appointmentHandler.Create)
		api.GET("/appointments", appointmentHandler.List)
		api.GET("/appointments/:id", appointmentHandler.Get)
		api.GET("/appointments/:id/history", appointmentHandler.History)
		api.PATCH("/appointments/:id/confirm", appointmentHandler.Confirm())
		api.PATCH("/appointments/:id/check-in", appointmentHandler.CheckIn())
		api.PATCH("/appointments/:id/start", appointmentHandler.Start())
		api.PATCH("/appointments/:id/complete", appointmentHandler.Complete())
		api.PATCH("/appointments/:id/no-show", appointmentHandler.MarkNoShow())
		api.PATCH("/appointments/:id/cancel", appointmentHandler.Cancel)
		api.POST("/appointments/:id/reschedule", appointmentHandler.Reschedule)
		api.PATCH("/appointments/:id/resolve-conflict", appointmentHandler.ResolveConflict)
		api.PATCH("/appointments/:id/stylist", appointmentHandler.Reassign)

		// ------------------------------
		// WALK-IN QUEUE
		// ------------------------------
		api.POST("/queue", queueHandler.Add)
		api.GET("/queue", queueHandler.List)
		api.GET("/queue/stats", queueHandler.Stats)
		api.POST("/queue/recalculate", queueHandler.Recalculate)
		api.PATCH("/queue/:id/call", queueHandler.Call())
		api.PATCH("/queue/:id/serve", queueHandler.Serve)
		api.PATCH("/queue/:id/complete", queueHandler.Complete())
		api.PATCH("/queue/:id/leave", queueHandler.Leave())

		// ------------------------------
		// STYLIST SCHEDULE
		// ------------------------------
		api.POST("/stylists/:id/breaks", scheduleHandler.CreateBreak)
		api.GET("/stylists/:id/breaks", scheduleHandler.ListBreaks)
		api.DELETE("/breaks/:id", scheduleHandler.DeactivateBreak)

		api.POST("/stylists/:id/blocked-slots", scheduleHandler.CreateBlockedSlot)
		api.GET("/stylists/:id/blocked-slots", scheduleHandler.ListBlockedSlots)
		api.DELETE("/blocked-slots/:id", scheduleHandler.DeleteBlockedSlot)

		// ------------------------------
		// BRANCH
		// ------------------------------
		api.GET("/branches/:id/working-hours", workingHoursHandler.Get)
		api.PUT("/branches/:id/working-hours", workingHoursHandler.Update)

		api.GET("/audit-logs", auditLogsHandler.List)
	}
}
