package service

import (
	"context"
	"fmt"
	"strconv"

	"go.uber.org/zap"

	"github.com/ligasur/arena-console/internal/models"
	appErrors "github.com/ligasur/arena-console/pkg/errors"
	"github.com/ligasur/arena-console/pkg/export"
)

type exportClient interface {
	GetEvent(ctx context.Context, eventID int64) (*models.Event, error)
	GetSchedule(ctx context.Context, eventID int64) (*models.Schedule, error)
	GetStandings(ctx context.Context, eventID int64) ([]models.StandingTable, error)
}

// ExportFormat selects the rendered document type.
type ExportFormat string

const (
	FormatCSV ExportFormat = "csv"
	FormatPDF ExportFormat = "pdf"
)

// ExportDocument is a rendered results document ready to stream.
type ExportDocument struct {
	FileName    string
	ContentType string
	Content     []byte
}

// ExportService renders the championship standings and finished results as
// downloadable documents. PDF exports bundle both tables in one file; CSV
// exports carry the results table only.
type ExportService struct {
	client  exportClient
	csv     *export.CSVExporter
	pdf     *export.PDFExporter
	logger  *zap.Logger
	enabled bool
}

// NewExportService constructs an ExportService.
func NewExportService(client exportClient, logger *zap.Logger, enabled bool) *ExportService {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &ExportService{
		client:  client,
		csv:     export.NewCSVExporter(),
		pdf:     export.NewPDFExporter(),
		logger:  logger,
		enabled: enabled,
	}
}

// Results renders the event's results document in the requested format.
func (s *ExportService) Results(ctx context.Context, eventID int64, format ExportFormat) (*ExportDocument, error) {
	if !s.enabled {
		return nil, appErrors.Clone(appErrors.ErrForbidden, "las exportaciones están deshabilitadas")
	}
	if format != FormatCSV && format != FormatPDF {
		return nil, appErrors.Clone(appErrors.ErrValidation, "formato de exportación no válido")
	}

	event, err := s.client.GetEvent(ctx, eventID)
	if err != nil {
		return nil, err
	}
	schedule, err := s.client.GetSchedule(ctx, eventID)
	if err != nil {
		return nil, err
	}
	standings, err := s.client.GetStandings(ctx, eventID)
	if err != nil {
		return nil, err
	}

	results := resultsDataset(schedule.Matches)
	base := fmt.Sprintf("resultados-evento-%d", eventID)

	var doc *ExportDocument
	switch format {
	case FormatCSV:
		content, err := s.csv.Render(results)
		if err != nil {
			return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "render csv export")
		}
		doc = &ExportDocument{FileName: base + ".csv", ContentType: "text/csv", Content: content}
	case FormatPDF:
		sections := []export.Section{{Title: "Resultados", Data: results}}
		for _, table := range standings {
			sections = append(sections, export.Section{
				Title: standingsTitle(table.Series),
				Data:  standingsDataset(table),
			})
		}
		content, err := s.pdf.Render(event.Title, sections...)
		if err != nil {
			return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "render pdf export")
		}
		doc = &ExportDocument{FileName: base + ".pdf", ContentType: "application/pdf", Content: content}
	}

	s.logger.Info("results exported",
		zap.Int64("event_id", eventID),
		zap.String("format", string(format)),
		zap.Int("bytes", len(doc.Content)),
	)
	return doc, nil
}

// resultsDataset tabulates the finished matches.
func resultsDataset(matches []models.Match) export.Dataset {
	headers := []string{"Fase", "Fecha", "Local", "Visitante", "Marcador", "Ganador"}
	rows := make([]map[string]string, 0, len(matches))
	for _, match := range matches {
		if match.Status != models.MatchFinished {
			continue
		}
		score := ""
		if match.HomeScore != nil && match.AwayScore != nil {
			score = scoreLabel(*match.HomeScore, *match.AwayScore)
		}
		winner := ""
		switch match.WinnerTeamID {
		case match.Home.ID:
			winner = match.Home.Label()
		case match.Away.ID:
			winner = match.Away.Label()
		}
		rows = append(rows, map[string]string{
			"Fase":      string(match.Phase),
			"Fecha":     string(match.Date),
			"Local":     match.Home.Label(),
			"Visitante": match.Away.Label(),
			"Marcador":  score,
			"Ganador":   winner,
		})
	}
	return export.Dataset{Headers: headers, Rows: rows}
}

// standingsDataset tabulates one series table.
func standingsDataset(table models.StandingTable) export.Dataset {
	headers := []string{"Equipo", "PJ", "PG", "PE", "PP", "GF", "GC", "DG", "Pts"}
	rows := make([]map[string]string, 0, len(table.Positions))
	for _, position := range table.Positions {
		rows = append(rows, map[string]string{
			"Equipo": position.TeamName,
			"PJ":     strconv.Itoa(position.Played),
			"PG":     strconv.Itoa(position.Won),
			"PE":     strconv.Itoa(position.Drawn),
			"PP":     strconv.Itoa(position.Lost),
			"GF":     strconv.Itoa(position.GoalsFor),
			"GC":     strconv.Itoa(position.GoalsAgainst),
			"DG":     strconv.Itoa(position.GoalDifference),
			"Pts":    strconv.Itoa(position.Points),
		})
	}
	return export.Dataset{Headers: headers, Rows: rows}
}

func standingsTitle(series string) string {
	if series == "" {
		return "Tabla de posiciones"
	}
	return "Tabla de posiciones " + series
}
