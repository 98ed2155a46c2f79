package handler

import (
	"github.com/gin-gonic/gin"

	"github.com/ligasur/arena-console/internal/middleware"
	"github.com/ligasur/arena-console/internal/service"
)

// Services groups everything the router wires into handlers.
type Services struct {
	Tokens      *service.TokenService
	Audit       *service.AuditService
	Review      *service.ReviewService
	Schedule    *service.ScheduleService
	Performance *service.PerformanceService
	Journal     *service.JournalService
	Export      *service.ExportService
	Metrics     *service.MetricsService
}

// RegisterRoutes mounts the console API under the given prefix. Every route
// except the observability endpoints requires a platform-issued token.
func RegisterRoutes(r *gin.Engine, prefix string, svcs Services) {
	metricsHandler := NewMetricsHandler(svcs.Metrics)
	r.GET("/metrics", metricsHandler.Prometheus)

	api := r.Group(prefix)
	api.Use(middleware.JWT(svcs.Tokens))
	api.Use(middleware.Metrics(svcs.Metrics))

	audit := NewAuditHandler(svcs.Audit)
	api.GET("/events/:eventId/institutions", audit.Board)
	api.POST("/events/:eventId/institutions/decisions", audit.DecideBulk)
	api.POST("/events/:eventId/institutions/:participationId/decision", audit.Decide)
	api.PUT("/events/:eventId/institutions/:participationId/extension", audit.Extend)
	api.POST("/events/:eventId/institutions/:participationId/notify", audit.Notify)

	review := NewReviewHandler(svcs.Review)
	api.POST("/events/:eventId/registrations/:institutionId/review-sessions", review.Open)
	api.PATCH("/review-sessions/:sessionId/documents/:documentId", review.Edit)
	api.POST("/review-sessions/:sessionId/submit", review.Submit)
	api.DELETE("/review-sessions/:sessionId", review.Close)

	schedule := NewScheduleHandler(svcs.Schedule)
	api.GET("/events/:eventId/schedule", schedule.View)
	api.POST("/events/:eventId/schedule", schedule.Generate)
	api.POST("/events/:eventId/schedule/next-stage", schedule.GenerateNext)
	api.DELETE("/events/:eventId/schedule", schedule.Delete)
	api.GET("/events/:eventId/standings", schedule.Standings)
	api.GET("/events/:eventId/teams/:teamId/history", schedule.TeamHistory)
	api.POST("/events/:eventId/matches/:matchId/result", schedule.RegisterResult)

	performance := NewPerformanceHandler(svcs.Performance)
	api.POST("/matches/:matchId/performance-sessions", performance.Open)
	api.PATCH("/performance-sessions/:sessionId/players/:playerId", performance.Edit)
	api.POST("/performance-sessions/:sessionId/save", performance.Save)
	api.POST("/performance-sessions/:sessionId/calculate", performance.Calculate)
	api.DELETE("/performance-sessions/:sessionId", performance.Close)

	journal := NewJournalHandler(svcs.Journal)
	api.GET("/journal", journal.List)

	exports := NewExportHandler(svcs.Export)
	api.GET("/events/:eventId/exports/results", exports.Results)
}
