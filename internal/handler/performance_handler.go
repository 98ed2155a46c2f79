package handler

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/ligasur/arena-console/internal/service"
	appErrors "github.com/ligasur/arena-console/pkg/errors"
	"github.com/ligasur/arena-console/pkg/response"
)

type performanceMerger interface {
	Open(ctx context.Context, matchID int64) (*service.PerformanceView, error)
	EditField(sessionID string, playerID int64, field, raw string) (*service.PerformanceView, error)
	Save(ctx context.Context, sessionID string, actor *service.Actor) (*service.PerformanceView, error)
	CalculateAndApply(ctx context.Context, sessionID string, actor *service.Actor) (*service.PerformanceView, error)
	Close(sessionID string)
}

// PerformanceHandler exposes the per-match performance table endpoints.
type PerformanceHandler struct {
	service performanceMerger
}

// NewPerformanceHandler constructs the handler.
func NewPerformanceHandler(svc *service.PerformanceService) *PerformanceHandler {
	return &PerformanceHandler{service: svc}
}

// Open godoc
// @Summary Open the performance table for a match
// @Tags Performance
// @Produce json
// @Param matchId path int true "Match ID"
// @Success 201 {object} response.Envelope
// @Router /matches/{matchId}/performance-sessions [post]
func (h *PerformanceHandler) Open(c *gin.Context) {
	matchID, err := pathID(c, "matchId")
	if err != nil {
		response.Error(c, err)
		return
	}
	view, err := h.service.Open(c.Request.Context(), matchID)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Created(c, view)
}

type fieldEditRequest struct {
	Field string `json:"field" binding:"required"`
	Value string `json:"value"`
}

// Edit godoc
// @Summary Edit one cell of the performance table
// @Tags Performance
// @Accept json
// @Produce json
// @Param sessionId path string true "Session ID"
// @Param playerId path int true "Player ID"
// @Param payload body fieldEditRequest true "Field edit"
// @Success 200 {object} response.Envelope
// @Router /performance-sessions/{sessionId}/players/{playerId} [patch]
func (h *PerformanceHandler) Edit(c *gin.Context) {
	playerID, err := pathID(c, "playerId")
	if err != nil {
		response.Error(c, err)
		return
	}
	var req fieldEditRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrValidation.Code, http.StatusBadRequest, "invalid field edit payload"))
		return
	}
	view, err := h.service.EditField(c.Param("sessionId"), playerID, req.Field, req.Value)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, view, nil)
}

// Save godoc
// @Summary Persist the performance table
// @Tags Performance
// @Produce json
// @Param sessionId path string true "Session ID"
// @Success 200 {object} response.Envelope
// @Router /performance-sessions/{sessionId}/save [post]
func (h *PerformanceHandler) Save(c *gin.Context) {
	view, err := h.service.Save(c.Request.Context(), c.Param("sessionId"), actorFromContext(c))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, view, nil)
}

// Calculate godoc
// @Summary Save the table and recalculate ratings and MVP
// @Tags Performance
// @Produce json
// @Param sessionId path string true "Session ID"
// @Success 200 {object} response.Envelope
// @Router /performance-sessions/{sessionId}/calculate [post]
func (h *PerformanceHandler) Calculate(c *gin.Context) {
	view, err := h.service.CalculateAndApply(c.Request.Context(), c.Param("sessionId"), actorFromContext(c))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, view, nil)
}

// Close godoc
// @Summary Discard a performance session
// @Tags Performance
// @Param sessionId path string true "Session ID"
// @Success 204 "No Content"
// @Router /performance-sessions/{sessionId} [delete]
func (h *PerformanceHandler) Close(c *gin.Context) {
	h.service.Close(c.Param("sessionId"))
	response.NoContent(c)
}
