package handler

import (
	"context"
	"net/http"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/ligasur/arena-console/internal/models"
	"github.com/ligasur/arena-console/internal/service"
	"github.com/ligasur/arena-console/pkg/response"
)

type journalReader interface {
	List(ctx context.Context, filter models.JournalFilter) ([]models.JournalEntry, *models.Pagination, error)
}

// JournalHandler exposes the operator action journal.
type JournalHandler struct {
	service journalReader
}

// NewJournalHandler constructs the handler.
func NewJournalHandler(svc *service.JournalService) *JournalHandler {
	return &JournalHandler{service: svc}
}

// List godoc
// @Summary List operator journal entries
// @Tags Journal
// @Produce json
// @Param search query string false "Search in descriptions"
// @Param entity query string false "Comma-separated entity filter"
// @Param order query string false "Sort order (asc|desc)"
// @Param page query int false "Page number"
// @Param limit query int false "Page size"
// @Success 200 {object} response.Envelope
// @Router /journal [get]
func (h *JournalHandler) List(c *gin.Context) {
	filter := models.JournalFilter{
		Search: c.Query("search"),
		Order:  c.Query("order"),
	}
	if raw := c.Query("entity"); raw != "" {
		for _, entity := range strings.Split(raw, ",") {
			if entity = strings.TrimSpace(entity); entity != "" {
				filter.Entities = append(filter.Entities, entity)
			}
		}
	}
	filter.Page, _ = strconv.Atoi(c.DefaultQuery("page", "1"))
	filter.PageSize, _ = strconv.Atoi(c.DefaultQuery("limit", "20"))

	entries, pagination, err := h.service.List(c.Request.Context(), filter)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, entries, pagination)
}
