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

type auditEngine interface {
	Board(ctx context.Context, eventID int64) (*service.InstitutionBoard, error)
	Decide(ctx context.Context, eventID, participationID int64, req service.DecisionRequest, actor *service.Actor) (*models.InstitutionParticipation, error)
	DecideBulk(ctx context.Context, eventID int64, req service.BulkDecisionRequest, actor *service.Actor) (*service.BulkDecisionOutcome, error)
	ExtendRegistration(ctx context.Context, eventID, participationID int64, req service.ExtensionRequest, actor *service.Actor) error
	Notify(ctx context.Context, eventID, participationID int64, kind string, actor *service.Actor) (*platform.NotifyResult, error)
}

// AuditHandler exposes the institution board and audit decision endpoints.
type AuditHandler struct {
	service auditEngine
}

// NewAuditHandler constructs the handler.
func NewAuditHandler(svc *service.AuditService) *AuditHandler {
	return &AuditHandler{service: svc}
}

// Board godoc
// @Summary Institution board for an event
// @Description Institution list annotated with stage permissions and bulk-eligible ids.
// @Tags Institutions
// @Produce json
// @Param eventId path int true "Event ID"
// @Success 200 {object} response.Envelope
// @Router /events/{eventId}/institutions [get]
func (h *AuditHandler) Board(c *gin.Context) {
	eventID, err := pathID(c, "eventId")
	if err != nil {
		response.Error(c, err)
		return
	}
	board, err := h.service.Board(c.Request.Context(), eventID)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, board, nil)
}

// Decide godoc
// @Summary Apply an audit decision to one institution
// @Tags Institutions
// @Accept json
// @Produce json
// @Param eventId path int true "Event ID"
// @Param participationId path int true "Participation ID"
// @Param payload body service.DecisionRequest true "Decision payload"
// @Success 200 {object} response.Envelope
// @Router /events/{eventId}/institutions/{participationId}/decision [post]
func (h *AuditHandler) Decide(c *gin.Context) {
	eventID, err := pathID(c, "eventId")
	if err != nil {
		response.Error(c, err)
		return
	}
	participationID, err := pathID(c, "participationId")
	if err != nil {
		response.Error(c, err)
		return
	}
	var req service.DecisionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrValidation.Code, http.StatusBadRequest, "invalid decision payload"))
		return
	}
	row, err := h.service.Decide(c.Request.Context(), eventID, participationID, req, actorFromContext(c))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, row, nil)
}

// DecideBulk godoc
// @Summary Apply one audit decision to the selected institutions
// @Tags Institutions
// @Accept json
// @Produce json
// @Param eventId path int true "Event ID"
// @Param payload body service.BulkDecisionRequest true "Bulk decision payload"
// @Success 200 {object} response.Envelope
// @Router /events/{eventId}/institutions/decisions [post]
func (h *AuditHandler) DecideBulk(c *gin.Context) {
	eventID, err := pathID(c, "eventId")
	if err != nil {
		response.Error(c, err)
		return
	}
	var req service.BulkDecisionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrValidation.Code, http.StatusBadRequest, "invalid bulk decision payload"))
		return
	}
	outcome, err := h.service.DecideBulk(c.Request.Context(), eventID, req, actorFromContext(c))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, outcome, nil)
}

// Extend godoc
// @Summary Extend or clear an institution's registration deadline
// @Tags Institutions
// @Accept json
// @Produce json
// @Param eventId path int true "Event ID"
// @Param participationId path int true "Participation ID"
// @Param payload body service.ExtensionRequest true "Extension payload"
// @Success 204 "No Content"
// @Router /events/{eventId}/institutions/{participationId}/extension [put]
func (h *AuditHandler) Extend(c *gin.Context) {
	eventID, err := pathID(c, "eventId")
	if err != nil {
		response.Error(c, err)
		return
	}
	participationID, err := pathID(c, "participationId")
	if err != nil {
		response.Error(c, err)
		return
	}
	var req service.ExtensionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrValidation.Code, http.StatusBadRequest, "invalid extension payload"))
		return
	}
	if err := h.service.ExtendRegistration(c.Request.Context(), eventID, participationID, req, actorFromContext(c)); err != nil {
		response.Error(c, err)
		return
	}
	response.NoContent(c)
}

type notifyRequest struct {
	Kind string `json:"kind"`
}

// Notify godoc
// @Summary Resend an invitation or reminder notification
// @Tags Institutions
// @Accept json
// @Produce json
// @Param eventId path int true "Event ID"
// @Param participationId path int true "Participation ID"
// @Param payload body notifyRequest true "Notification kind"
// @Success 200 {object} response.Envelope
// @Router /events/{eventId}/institutions/{participationId}/notify [post]
func (h *AuditHandler) Notify(c *gin.Context) {
	eventID, err := pathID(c, "eventId")
	if err != nil {
		response.Error(c, err)
		return
	}
	participationID, err := pathID(c, "participationId")
	if err != nil {
		response.Error(c, err)
		return
	}
	var req notifyRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrValidation.Code, http.StatusBadRequest, "invalid notify payload"))
		return
	}
	result, err := h.service.Notify(c.Request.Context(), eventID, participationID, req.Kind, actorFromContext(c))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, result, nil)
}
