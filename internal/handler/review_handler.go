package handler

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/ligasur/arena-console/internal/service"
	appErrors "github.com/ligasur/arena-console/pkg/errors"
	"github.com/ligasur/arena-console/pkg/response"
)

type reviewReconciler interface {
	Open(ctx context.Context, eventID, institutionID int64) (*service.ReviewSessionView, error)
	Edit(sessionID string, documentID int64, patch service.DocumentPatch) (*service.ReviewSessionView, error)
	Submit(ctx context.Context, sessionID string) (*service.ReviewSessionView, error)
	Close(sessionID string)
}

// ReviewHandler exposes the document review session endpoints.
type ReviewHandler struct {
	service reviewReconciler
}

// NewReviewHandler constructs the handler.
func NewReviewHandler(svc *service.ReviewService) *ReviewHandler {
	return &ReviewHandler{service: svc}
}

// Open godoc
// @Summary Open a document review session for an institution
// @Tags Review
// @Produce json
// @Param eventId path int true "Event ID"
// @Param institutionId path int true "Institution ID"
// @Success 201 {object} response.Envelope
// @Router /events/{eventId}/registrations/{institutionId}/review-sessions [post]
func (h *ReviewHandler) Open(c *gin.Context) {
	eventID, err := pathID(c, "eventId")
	if err != nil {
		response.Error(c, err)
		return
	}
	institutionID, err := pathID(c, "institutionId")
	if err != nil {
		response.Error(c, err)
		return
	}
	view, err := h.service.Open(c.Request.Context(), eventID, institutionID)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Created(c, view)
}

// Edit godoc
// @Summary Patch one document's review entry in an open session
// @Tags Review
// @Accept json
// @Produce json
// @Param sessionId path string true "Session ID"
// @Param documentId path int true "Document ID"
// @Param payload body service.DocumentPatch true "Document patch"
// @Success 200 {object} response.Envelope
// @Router /review-sessions/{sessionId}/documents/{documentId} [patch]
func (h *ReviewHandler) Edit(c *gin.Context) {
	documentID, err := pathID(c, "documentId")
	if err != nil {
		response.Error(c, err)
		return
	}
	var patch service.DocumentPatch
	if err := c.ShouldBindJSON(&patch); err != nil {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrValidation.Code, http.StatusBadRequest, "invalid document patch"))
		return
	}
	view, err := h.service.Edit(c.Param("sessionId"), documentID, patch)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, view, nil)
}

// Submit godoc
// @Summary Save the pending document review edits
// @Tags Review
// @Produce json
// @Param sessionId path string true "Session ID"
// @Success 200 {object} response.Envelope
// @Router /review-sessions/{sessionId}/submit [post]
func (h *ReviewHandler) Submit(c *gin.Context) {
	view, err := h.service.Submit(c.Request.Context(), c.Param("sessionId"))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, view, nil)
}

// Close godoc
// @Summary Discard a review session without saving
// @Tags Review
// @Param sessionId path string true "Session ID"
// @Success 204 "No Content"
// @Router /review-sessions/{sessionId} [delete]
func (h *ReviewHandler) Close(c *gin.Context) {
	h.service.Close(c.Param("sessionId"))
	response.NoContent(c)
}
