package handler

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/ligasur/arena-console/internal/service"
	"github.com/ligasur/arena-console/pkg/response"
)

type resultsExporter interface {
	Results(ctx context.Context, eventID int64, format service.ExportFormat) (*service.ExportDocument, error)
}

// ExportHandler streams rendered results documents.
type ExportHandler struct {
	service resultsExporter
}

// NewExportHandler constructs the handler.
func NewExportHandler(svc *service.ExportService) *ExportHandler {
	return &ExportHandler{service: svc}
}

// Results godoc
// @Summary Export standings and finished results
// @Tags Exports
// @Produce octet-stream
// @Param eventId path int true "Event ID"
// @Param format query string false "Document format (csv|pdf)" default(csv)
// @Success 200 {file} binary
// @Router /events/{eventId}/exports/results [get]
func (h *ExportHandler) Results(c *gin.Context) {
	eventID, err := pathID(c, "eventId")
	if err != nil {
		response.Error(c, err)
		return
	}
	format := service.ExportFormat(c.DefaultQuery("format", string(service.FormatCSV)))
	doc, err := h.service.Results(c.Request.Context(), eventID, format)
	if err != nil {
		response.Error(c, err)
		return
	}
	c.Header("Content-Disposition", `attachment; filename="`+doc.FileName+`"`)
	c.Data(http.StatusOK, doc.ContentType, doc.Content)
}
