package service

import (
	"context"
	"sort"
	"strconv"
	"strings"
	"sync"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/ligasur/arena-console/internal/models"
	"github.com/ligasur/arena-console/internal/platform"
	appErrors "github.com/ligasur/arena-console/pkg/errors"
)

// FieldRoleSelection is the virtual field that drives the four role flags.
const FieldRoleSelection = "role_selection"

type performanceClient interface {
	GetMatchPlayers(ctx context.Context, matchID int64) ([]models.MatchPlayer, error)
	GetPerformance(ctx context.Context, matchID int64) ([]models.PlayerPerformanceRecord, error)
	SavePerformance(ctx context.Context, matchID int64, updates []platform.PerformanceUpdate) ([]models.PlayerPerformanceRecord, error)
	CalculatePerformance(ctx context.Context, matchID int64) ([]models.PlayerPerformanceRecord, error)
}

// performanceSession is one open performance table: the merged roster rows
// plus a single busy flag shared by save and calculate.
type performanceSession struct {
	mu sync.Mutex

	matchID int64
	rows    []models.PlayerPerformanceRecord

	loading bool
}

// PerformanceView is what the console renders for an open table.
type PerformanceView struct {
	SessionID string                           `json:"session_id"`
	MatchID   int64                            `json:"match_id"`
	Rows      []models.PlayerPerformanceRecord `json:"rows"`
	Loading   bool                             `json:"loading"`
}

// PerformanceService is the performance statistics merger: it joins the
// match roster with any saved records, accepts field edits, and reconciles
// calculation results back into the open table.
type PerformanceService struct {
	client  performanceClient
	journal *JournalService
	metrics *MetricsService
	logger  *zap.Logger

	mu       sync.Mutex
	sessions map[string]*performanceSession
}

// NewPerformanceService constructs a PerformanceService.
func NewPerformanceService(client performanceClient, journal *JournalService, metrics *MetricsService, logger *zap.Logger) *PerformanceService {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &PerformanceService{
		client:   client,
		journal:  journal,
		metrics:  metrics,
		logger:   logger,
		sessions: make(map[string]*performanceSession),
	}
}

// Open builds the merged table: one row per rostered player, populated from
// the saved record when one exists and zero-valued otherwise. Saved records
// for players no longer on the roster are dropped.
func (s *PerformanceService) Open(ctx context.Context, matchID int64) (*PerformanceView, error) {
	players, err := s.client.GetMatchPlayers(ctx, matchID)
	if err != nil {
		return nil, err
	}
	records, err := s.client.GetPerformance(ctx, matchID)
	if err != nil {
		return nil, err
	}

	session := &performanceSession{
		matchID: matchID,
		rows:    mergeRoster(matchID, players, records),
	}

	id := uuid.NewString()
	s.mu.Lock()
	s.sessions[id] = session
	s.mu.Unlock()

	s.logger.Info("performance session opened",
		zap.String("session_id", id),
		zap.Int64("match_id", matchID),
		zap.Int("players", len(session.rows)),
	)
	return s.view(id, session), nil
}

// EditField applies one cell edit. Role edits go through the exclusive flag
// converter; statistic edits coerce the raw value to a number, treating
// anything unparseable as zero. Rating and MVP are read-only.
func (s *PerformanceService) EditField(sessionID string, playerID int64, field, raw string) (*PerformanceView, error) {
	session, err := s.session(sessionID)
	if err != nil {
		return nil, err
	}

	session.mu.Lock()
	defer session.mu.Unlock()

	if session.loading {
		return nil, appErrors.Clone(appErrors.ErrBusy, "hay una operación de rendimiento en curso")
	}

	row := findRow(session.rows, playerID)
	if row == nil {
		return nil, appErrors.Clone(appErrors.ErrNotFound, "jugador no encontrado en la planilla")
	}

	switch {
	case field == FieldRoleSelection:
		role := models.Role(strings.ToLower(strings.TrimSpace(raw)))
		if role != models.RoleNone && !role.Valid() {
			return nil, appErrors.Clone(appErrors.ErrValidation, "posición no válida")
		}
		row.RoleFlags = models.FlagsForRole(role)
	case models.IsStatField(field):
		row.SetStat(field, coerceStat(raw))
	default:
		return nil, appErrors.Clone(appErrors.ErrValidation, "campo no editable")
	}

	return s.viewLocked(sessionID, session), nil
}

// Save persists the table. The payload carries the stats, role flags and the
// last calculated rating per player; display fields and MVP stay local.
func (s *PerformanceService) Save(ctx context.Context, sessionID string, actor *Actor) (*PerformanceView, error) {
	session, updates, err := s.beginSubmit(sessionID)
	if err != nil {
		return nil, err
	}

	records, err := s.client.SavePerformance(ctx, session.matchID, updates)
	if s.metrics != nil {
		s.metrics.RecordMutation("performance_save", err)
	}
	if err != nil {
		s.endSubmit(session)
		return nil, err
	}

	session.mu.Lock()
	session.loading = false
	session.rows = mergeRecords(session.rows, records)
	session.mu.Unlock()

	s.logger.Info("performance saved",
		zap.String("session_id", sessionID),
		zap.Int64("match_id", session.matchID),
		zap.Int("players", len(updates)),
	)
	s.journal.Record(ctx, "performance", &session.matchID, "save",
		"Estadísticas de rendimiento guardadas",
		actor, map[string]interface{}{"players": len(updates)})
	return s.view(sessionID, session), nil
}

// CalculateAndApply saves the current table, triggers the platform's rating
// computation, and merges only rating and MVP back into the open rows.
func (s *PerformanceService) CalculateAndApply(ctx context.Context, sessionID string, actor *Actor) (*PerformanceView, error) {
	session, updates, err := s.beginSubmit(sessionID)
	if err != nil {
		return nil, err
	}

	if _, err := s.client.SavePerformance(ctx, session.matchID, updates); err != nil {
		if s.metrics != nil {
			s.metrics.RecordMutation("performance_calculate", err)
		}
		s.endSubmit(session)
		return nil, err
	}
	records, err := s.client.CalculatePerformance(ctx, session.matchID)
	if s.metrics != nil {
		s.metrics.RecordMutation("performance_calculate", err)
	}
	if err != nil {
		s.endSubmit(session)
		return nil, err
	}

	byPlayer := make(map[int64]models.PlayerPerformanceRecord, len(records))
	for _, record := range records {
		byPlayer[record.PlayerID] = record
	}

	session.mu.Lock()
	session.loading = false
	for i := range session.rows {
		if record, ok := byPlayer[session.rows[i].PlayerID]; ok {
			session.rows[i].Rating = record.Rating
			session.rows[i].MVP = record.MVP
		}
	}
	session.mu.Unlock()

	s.logger.Info("performance calculated",
		zap.String("session_id", sessionID),
		zap.Int64("match_id", session.matchID),
	)
	s.journal.Record(ctx, "performance", &session.matchID, "calculate",
		"Valoraciones de rendimiento recalculadas",
		actor, map[string]interface{}{"players": len(updates)})
	return s.view(sessionID, session), nil
}

// Close discards the session.
func (s *PerformanceService) Close(sessionID string) {
	s.mu.Lock()
	delete(s.sessions, sessionID)
	s.mu.Unlock()
}

// beginSubmit flips the busy flag and snapshots the update payload under the
// session lock.
func (s *PerformanceService) beginSubmit(sessionID string) (*performanceSession, []platform.PerformanceUpdate, error) {
	session, err := s.session(sessionID)
	if err != nil {
		return nil, nil, err
	}

	session.mu.Lock()
	defer session.mu.Unlock()

	if session.loading {
		return nil, nil, appErrors.Clone(appErrors.ErrBusy, "hay una operación de rendimiento en curso")
	}
	session.loading = true

	updates := make([]platform.PerformanceUpdate, 0, len(session.rows))
	for _, row := range session.rows {
		updates = append(updates, toUpdate(row))
	}
	return session, updates, nil
}

func (s *PerformanceService) endSubmit(session *performanceSession) {
	session.mu.Lock()
	session.loading = false
	session.mu.Unlock()
}

func (s *PerformanceService) session(id string) (*performanceSession, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	session, ok := s.sessions[id]
	if !ok {
		return nil, appErrors.Clone(appErrors.ErrNotFound, "sesión de rendimiento no encontrada")
	}
	return session, nil
}

func (s *PerformanceService) view(id string, session *performanceSession) *PerformanceView {
	session.mu.Lock()
	defer session.mu.Unlock()
	return s.viewLocked(id, session)
}

// viewLocked builds the view; the caller must hold session.mu.
func (s *PerformanceService) viewLocked(id string, session *performanceSession) *PerformanceView {
	rows := make([]models.PlayerPerformanceRecord, len(session.rows))
	copy(rows, session.rows)
	return &PerformanceView{
		SessionID: id,
		MatchID:   session.matchID,
		Rows:      rows,
		Loading:   session.loading,
	}
}

// mergeRoster joins the roster with saved records, ordering rows by team and
// then name so both squads group together.
func mergeRoster(matchID int64, players []models.MatchPlayer, records []models.PlayerPerformanceRecord) []models.PlayerPerformanceRecord {
	byPlayer := make(map[int64]models.PlayerPerformanceRecord, len(records))
	for _, record := range records {
		byPlayer[record.PlayerID] = record
	}

	rows := make([]models.PlayerPerformanceRecord, 0, len(players))
	for _, player := range players {
		row, ok := byPlayer[player.PlayerID]
		if !ok {
			row = models.PlayerPerformanceRecord{PlayerID: player.PlayerID}
		}
		row.MatchID = matchID
		row.Name = player.Name
		row.TeamLabel = player.TeamLabel
		rows = append(rows, row)
	}

	sort.SliceStable(rows, func(i, j int) bool {
		if rows[i].TeamLabel != rows[j].TeamLabel {
			return rows[i].TeamLabel < rows[j].TeamLabel
		}
		return rows[i].Name < rows[j].Name
	})
	return rows
}

// mergeRecords replaces row statistics with the saved result, keeping the
// display fields the roster provided.
func mergeRecords(rows []models.PlayerPerformanceRecord, records []models.PlayerPerformanceRecord) []models.PlayerPerformanceRecord {
	byPlayer := make(map[int64]models.PlayerPerformanceRecord, len(records))
	for _, record := range records {
		byPlayer[record.PlayerID] = record
	}
	for i := range rows {
		record, ok := byPlayer[rows[i].PlayerID]
		if !ok {
			continue
		}
		record.Name = rows[i].Name
		record.TeamLabel = rows[i].TeamLabel
		record.MatchID = rows[i].MatchID
		rows[i] = record
	}
	return rows
}

func findRow(rows []models.PlayerPerformanceRecord, playerID int64) *models.PlayerPerformanceRecord {
	for i := range rows {
		if rows[i].PlayerID == playerID {
			return &rows[i]
		}
	}
	return nil
}

// coerceStat parses a raw cell value, treating empty or unparseable input as
// zero so a cleared cell never blocks the save.
func coerceStat(raw string) float64 {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return 0
	}
	value, err := strconv.ParseFloat(raw, 64)
	if err != nil || value < 0 {
		return 0
	}
	return value
}

// toUpdate strips the display fields and MVP from a row. Rating is echoed
// back as last calculated; only the calculate endpoint changes it.
func toUpdate(row models.PlayerPerformanceRecord) platform.PerformanceUpdate {
	return platform.PerformanceUpdate{
		PlayerID:  row.PlayerID,
		RoleFlags: row.RoleFlags,
		Rating:    row.Rating,

		MinutesPlayed:  row.MinutesPlayed,
		Goals:          row.Goals,
		Assists:        row.Assists,
		WasFouled:      row.WasFouled,
		TotalShots:     row.TotalShots,
		ShotsOnTarget:  row.ShotsOnTarget,
		ShotsOffTarget: row.ShotsOffTarget,
		BlockedShots:   row.BlockedShots,
		ShotAccuracy:   row.ShotAccuracy,
		ChancesCreated: row.ChancesCreated,

		Touches:           row.Touches,
		PassSuccess:       row.PassSuccess,
		KeyPasses:         row.KeyPasses,
		Crosses:           row.Crosses,
		DribblesSucceeded: row.DribblesSucceeded,

		TacklesAttempted: row.TacklesAttempted,
		TacklesSucceeded: row.TacklesSucceeded,
		Interceptions:    row.Interceptions,
		Recoveries:       row.Recoveries,
		DuelsWon:         row.DuelsWon,
		AerialsWon:       row.AerialsWon,

		Saves:          row.Saves,
		SavesInsideBox: row.SavesInsideBox,
		DivingSaves:    row.DivingSaves,
		Punches:        row.Punches,
		Throws:         row.Throws,
		GoalsConceded:  row.GoalsConceded,
	}
}
