package handler

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/ligasur/arena-console/internal/models"
	"github.com/ligasur/arena-console/internal/platform"
	"github.com/ligasur/arena-console/internal/service"
	appErrors "github.com/ligasur/arena-console/pkg/errors"
	"github.com/ligasur/arena-console/pkg/response"
)

type scheduleAggregator interface {
	View(ctx context.Context, eventID int64, filter service.ScheduleFilter) (*service.ScheduleView, error)
	TeamHistory(ctx context.Context, eventID, teamID int64) (*service.TeamSummary, error)
	Generate(ctx context.Context, eventID int64, req platform.GenerateScheduleRequest, actor *service.Actor) (*models.Schedule, error)
	GenerateNext(ctx context.Context, eventID int64, actor *service.Actor) (*models.Schedule, error)
	Delete(ctx context.Context, eventID int64, actor *service.Actor) error
	Standings(ctx context.Context, eventID int64) ([]models.StandingTable, error)
	RegisterResult(ctx context.Context, eventID, matchID int64, req service.ResultRequest, actor *service.Actor) (*models.Match, error)
}

// ScheduleHandler exposes the schedule aggregation and championship endpoints.
type ScheduleHandler struct {
	service scheduleAggregator
}

// NewScheduleHandler constructs the handler.
func NewScheduleHandler(svc *service.ScheduleService) *ScheduleHandler {
	return &ScheduleHandler{service: svc}
}

// View godoc
// @Summary Aggregated schedule view for an event
// @Description Filtered match list with filter options, completion stats and next-stage readiness.
// @Tags Schedule
// @Produce json
// @Param eventId path int true "Event ID"
// @Param phase query string false "Phase filter"
// @Param series query string false "Series filter"
// @Param venue query string false "Venue filter"
// @Param date query string false "Date filter (YYYY-MM-DD)"
// @Success 200 {object} response.Envelope
// @Router /events/{eventId}/schedule [get]
func (h *ScheduleHandler) View(c *gin.Context) {
	eventID, err := pathID(c, "eventId")
	if err != nil {
		response.Error(c, err)
		return
	}
	filter := service.ScheduleFilter{
		Phase:  c.Query("phase"),
		Series: c.Query("series"),
		Venue:  c.Query("venue"),
		Date:   c.Query("date"),
	}
	view, err := h.service.View(c.Request.Context(), eventID, filter)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, view, nil)
}

// TeamHistory godoc
// @Summary A team's campaign summary
// @Tags Schedule
// @Produce json
// @Param eventId path int true "Event ID"
// @Param teamId path int true "Team ID"
// @Success 200 {object} response.Envelope
// @Router /events/{eventId}/teams/{teamId}/history [get]
func (h *ScheduleHandler) TeamHistory(c *gin.Context) {
	eventID, err := pathID(c, "eventId")
	if err != nil {
		response.Error(c, err)
		return
	}
	teamID, err := pathID(c, "teamId")
	if err != nil {
		response.Error(c, err)
		return
	}
	summary, err := h.service.TeamHistory(c.Request.Context(), eventID, teamID)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, summary, nil)
}

// Generate godoc
// @Summary Generate the initial schedule
// @Tags Schedule
// @Accept json
// @Produce json
// @Param eventId path int true "Event ID"
// @Param payload body platform.GenerateScheduleRequest true "Generation options"
// @Success 201 {object} response.Envelope
// @Router /events/{eventId}/schedule [post]
func (h *ScheduleHandler) Generate(c *gin.Context) {
	eventID, err := pathID(c, "eventId")
	if err != nil {
		response.Error(c, err)
		return
	}
	var req platform.GenerateScheduleRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrValidation.Code, http.StatusBadRequest, "invalid generation payload"))
		return
	}
	schedule, err := h.service.Generate(c.Request.Context(), eventID, req, actorFromContext(c))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Created(c, schedule)
}

// GenerateNext godoc
// @Summary Generate the next bracket stage
// @Tags Schedule
// @Produce json
// @Param eventId path int true "Event ID"
// @Success 201 {object} response.Envelope
// @Router /events/{eventId}/schedule/next-stage [post]
func (h *ScheduleHandler) GenerateNext(c *gin.Context) {
	eventID, err := pathID(c, "eventId")
	if err != nil {
		response.Error(c, err)
		return
	}
	schedule, err := h.service.GenerateNext(c.Request.Context(), eventID, actorFromContext(c))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Created(c, schedule)
}

// Delete godoc
// @Summary Delete the event's schedule
// @Tags Schedule
// @Param eventId path int true "Event ID"
// @Success 204 "No Content"
// @Router /events/{eventId}/schedule [delete]
func (h *ScheduleHandler) Delete(c *gin.Context) {
	eventID, err := pathID(c, "eventId")
	if err != nil {
		response.Error(c, err)
		return
	}
	if err := h.service.Delete(c.Request.Context(), eventID, actorFromContext(c)); err != nil {
		response.Error(c, err)
		return
	}
	response.NoContent(c)
}

// Standings godoc
// @Summary Standings tables grouped by series
// @Tags Schedule
// @Produce json
// @Param eventId path int true "Event ID"
// @Success 200 {object} response.Envelope
// @Router /events/{eventId}/standings [get]
func (h *ScheduleHandler) Standings(c *gin.Context) {
	eventID, err := pathID(c, "eventId")
	if err != nil {
		response.Error(c, err)
		return
	}
	tables, err := h.service.Standings(c.Request.Context(), eventID)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, tables, nil)
}

// RegisterResult godoc
// @Summary Register a match result
// @Tags Schedule
// @Accept json
// @Produce json
// @Param eventId path int true "Event ID"
// @Param matchId path int true "Match ID"
// @Param payload body service.ResultRequest true "Result payload"
// @Success 200 {object} response.Envelope
// @Router /events/{eventId}/matches/{matchId}/result [post]
func (h *ScheduleHandler) RegisterResult(c *gin.Context) {
	eventID, err := pathID(c, "eventId")
	if err != nil {
		response.Error(c, err)
		return
	}
	matchID, err := pathID(c, "matchId")
	if err != nil {
		response.Error(c, err)
		return
	}
	var req service.ResultRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrValidation.Code, http.StatusBadRequest, "invalid result payload"))
		return
	}
	match, err := h.service.RegisterResult(c.Request.Context(), eventID, matchID, req, actorFromContext(c))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, match, nil)
}
