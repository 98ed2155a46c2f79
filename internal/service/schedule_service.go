package service

import (
	"context"
	"fmt"
	"time"

	"go.uber.org/zap"

	"github.com/ligasur/arena-console/internal/models"
	"github.com/ligasur/arena-console/internal/platform"
	appErrors "github.com/ligasur/arena-console/pkg/errors"
)

type scheduleClient interface {
	GetEvent(ctx context.Context, eventID int64) (*models.Event, error)
	GetSchedule(ctx context.Context, eventID int64) (*models.Schedule, error)
	GenerateSchedule(ctx context.Context, eventID int64, req platform.GenerateScheduleRequest) (*models.Schedule, error)
	GenerateNextStage(ctx context.Context, eventID int64) (*models.Schedule, error)
	DeleteSchedule(ctx context.Context, eventID int64) error
	GetStandings(ctx context.Context, eventID int64) ([]models.StandingTable, error)
	RegisterResult(ctx context.Context, matchID int64, req platform.MatchResultRequest) (*models.Match, error)
}

// ScheduleView is the aggregated schedule surface: the filtered match list
// plus everything the console derives from the full list.
type ScheduleView struct {
	Event       models.Event       `json:"event"`
	Permissions StagePermissions   `json:"permissions"`
	Matches     []models.Match     `json:"matches"`
	Filters     FilterOptions      `json:"filters"`
	Stats       ScheduleStats      `json:"stats"`
	Readiness   NextStageReadiness `json:"readiness"`
}

// ResultRequest is the console-side result submission payload.
type ResultRequest struct {
	HomeScore    int    `json:"home_score" validate:"min=0"`
	AwayScore    int    `json:"away_score" validate:"min=0"`
	WinnerTeamID int64  `json:"winner_team_id" validate:"required"`
	ResultReason string `json:"result_reason"`
	PublishNews  bool   `json:"publish_news"`
}

// ScheduleService aggregates the event schedule and forwards its mutations.
// All derivations are computed from the fetched match list; generation and
// standings math live on the platform.
type ScheduleService struct {
	client   scheduleClient
	cache    *CacheService
	refresh  *RefreshService
	journal  *JournalService
	metrics  *MetricsService
	logger   *zap.Logger
	inflight *inflightGuard
	now      func() time.Time
}

// NewScheduleService constructs a ScheduleService.
func NewScheduleService(client scheduleClient, cache *CacheService, refresh *RefreshService, journal *JournalService, metrics *MetricsService, logger *zap.Logger) *ScheduleService {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &ScheduleService{
		client:   client,
		cache:    cache,
		refresh:  refresh,
		journal:  journal,
		metrics:  metrics,
		logger:   logger,
		inflight: newInflightGuard(),
		now:      time.Now,
	}
}

// View fetches the schedule and derives the filtered match list, the filter
// options, the completion stats and the next-stage readiness.
func (s *ScheduleService) View(ctx context.Context, eventID int64, filter ScheduleFilter) (*ScheduleView, error) {
	event, err := s.client.GetEvent(ctx, eventID)
	if err != nil {
		return nil, err
	}

	var schedule models.Schedule
	if !s.cache.Get(ctx, ScheduleKey(eventID), &schedule) {
		fetched, err := s.client.GetSchedule(ctx, eventID)
		if err != nil {
			return nil, err
		}
		schedule = *fetched
	}

	return &ScheduleView{
		Event:       *event,
		Permissions: PermissionsFor(event.Stage),
		Matches:     FilterMatches(schedule.Matches, filter),
		Filters:     ComputeFilterOptions(schedule.Matches),
		Stats:       ComputeScheduleStats(schedule.Matches, event.ChampionshipEnd),
		Readiness:   ComputeReadiness(schedule),
	}, nil
}

// TeamHistory derives a team's campaign summary from the full match list.
func (s *ScheduleService) TeamHistory(ctx context.Context, eventID, teamID int64) (*TeamSummary, error) {
	if teamID <= 0 {
		return nil, appErrors.Clone(appErrors.ErrValidation, "equipo inválido")
	}
	schedule, err := s.schedule(ctx, eventID)
	if err != nil {
		return nil, err
	}
	summary := ComputeTeamSummary(schedule.Matches, teamID)
	return &summary, nil
}

// Generate asks the platform to build the initial schedule. The response is
// committed as the new snapshot directly; no separate re-fetch is needed.
func (s *ScheduleService) Generate(ctx context.Context, eventID int64, req platform.GenerateScheduleRequest, actor *Actor) (*models.Schedule, error) {
	event, err := s.client.GetEvent(ctx, eventID)
	if err != nil {
		return nil, err
	}
	if !PermissionsFor(event.Stage).CanManageChampionship {
		return nil, appErrors.Clone(appErrors.ErrStageClosed, "el calendario solo puede gestionarse durante el campeonato")
	}

	key := fmt.Sprintf("schedule:%d", eventID)
	if !s.inflight.acquire(key) {
		return nil, appErrors.Clone(appErrors.ErrBusy, "ya hay una generación de calendario en curso")
	}
	defer s.inflight.release(key)

	schedule, err := s.client.GenerateSchedule(ctx, eventID, req)
	if s.metrics != nil {
		s.metrics.RecordMutation("schedule_generate", err)
	}
	if err != nil {
		return nil, err
	}

	s.logger.Info("schedule generated",
		zap.Int64("event_id", eventID),
		zap.Int("matches", len(schedule.Matches)),
	)
	s.commitSchedule(ctx, eventID, schedule)
	s.journal.Record(ctx, "schedule", nil, "generate",
		fmt.Sprintf("Calendario generado con %d partidos", len(schedule.Matches)),
		actor, map[string]interface{}{"event_id": eventID})
	return schedule, nil
}

// GenerateNext asks the platform for the next bracket stage. Readiness is
// checked against the platform's own metadata before submitting.
func (s *ScheduleService) GenerateNext(ctx context.Context, eventID int64, actor *Actor) (*models.Schedule, error) {
	event, err := s.client.GetEvent(ctx, eventID)
	if err != nil {
		return nil, err
	}
	if !PermissionsFor(event.Stage).CanManageChampionship {
		return nil, appErrors.Clone(appErrors.ErrStageClosed, "el calendario solo puede gestionarse durante el campeonato")
	}

	current, err := s.schedule(ctx, eventID)
	if err != nil {
		return nil, err
	}
	readiness := ComputeReadiness(*current)
	if !readiness.CanGenerateNextStage {
		return nil, appErrors.Clone(appErrors.ErrValidation, "la siguiente fase aún no está disponible")
	}

	key := fmt.Sprintf("schedule:%d", eventID)
	if !s.inflight.acquire(key) {
		return nil, appErrors.Clone(appErrors.ErrBusy, "ya hay una generación de calendario en curso")
	}
	defer s.inflight.release(key)

	schedule, err := s.client.GenerateNextStage(ctx, eventID)
	if s.metrics != nil {
		s.metrics.RecordMutation("schedule_next_stage", err)
	}
	if err != nil {
		return nil, err
	}

	s.logger.Info("next stage generated",
		zap.Int64("event_id", eventID),
		zap.String("phase", string(readiness.NextPhase)),
	)
	s.commitSchedule(ctx, eventID, schedule)
	s.journal.Record(ctx, "schedule", nil, "next_stage",
		fmt.Sprintf("Fase %s generada", readiness.NextPhase),
		actor, map[string]interface{}{"event_id": eventID})
	return schedule, nil
}

// Delete removes the event's schedule.
func (s *ScheduleService) Delete(ctx context.Context, eventID int64, actor *Actor) error {
	event, err := s.client.GetEvent(ctx, eventID)
	if err != nil {
		return err
	}
	if !PermissionsFor(event.Stage).CanManageChampionship {
		return appErrors.Clone(appErrors.ErrStageClosed, "el calendario solo puede gestionarse durante el campeonato")
	}

	key := fmt.Sprintf("schedule:%d", eventID)
	if !s.inflight.acquire(key) {
		return appErrors.Clone(appErrors.ErrBusy, "ya hay una operación de calendario en curso")
	}
	defer s.inflight.release(key)

	err = s.client.DeleteSchedule(ctx, eventID)
	if s.metrics != nil {
		s.metrics.RecordMutation("schedule_delete", err)
	}
	if err != nil {
		return err
	}

	s.cache.Invalidate(ctx, ScheduleKey(eventID))
	s.journal.Record(ctx, "schedule", nil, "delete", "Calendario eliminado",
		actor, map[string]interface{}{"event_id": eventID})
	return nil
}

// Standings returns the platform-computed tables grouped by series.
func (s *ScheduleService) Standings(ctx context.Context, eventID int64) ([]models.StandingTable, error) {
	return s.client.GetStandings(ctx, eventID)
}

// RegisterResult submits a match result after checking local eligibility:
// the match must be open, both slots resolved, the event in a playable
// stage, and the kickoff already past.
func (s *ScheduleService) RegisterResult(ctx context.Context, eventID, matchID int64, req ResultRequest, actor *Actor) (*models.Match, error) {
	if req.HomeScore < 0 || req.AwayScore < 0 {
		return nil, appErrors.Clone(appErrors.ErrValidation, "el marcador no puede ser negativo")
	}

	event, err := s.client.GetEvent(ctx, eventID)
	if err != nil {
		return nil, err
	}
	schedule, err := s.schedule(ctx, eventID)
	if err != nil {
		return nil, err
	}

	var match *models.Match
	for i := range schedule.Matches {
		if schedule.Matches[i].ID == matchID {
			match = &schedule.Matches[i]
			break
		}
	}
	if match == nil {
		return nil, appErrors.Clone(appErrors.ErrNotFound, "partido no encontrado")
	}
	if !CanRegisterResult(*match, event.Stage, s.now()) {
		return nil, appErrors.Clone(appErrors.ErrValidation, "el partido aún no admite registro de resultado")
	}
	if req.WinnerTeamID != match.Home.ID && req.WinnerTeamID != match.Away.ID {
		return nil, appErrors.Clone(appErrors.ErrValidation, "el ganador debe ser uno de los dos equipos")
	}

	key := fmt.Sprintf("result:%d", matchID)
	if !s.inflight.acquire(key) {
		return nil, appErrors.Clone(appErrors.ErrBusy, "ya hay un resultado en curso para este partido")
	}
	defer s.inflight.release(key)

	updated, err := s.client.RegisterResult(ctx, matchID, platform.MatchResultRequest{
		HomeScore:    req.HomeScore,
		AwayScore:    req.AwayScore,
		WinnerTeamID: req.WinnerTeamID,
		ResultReason: req.ResultReason,
		PublishNews:  req.PublishNews,
	})
	if s.metrics != nil {
		s.metrics.RecordMutation("match_result", err)
	}
	if err != nil {
		return nil, err
	}

	s.logger.Info("match result registered",
		zap.Int64("event_id", eventID),
		zap.Int64("match_id", matchID),
		zap.Int64("winner_team_id", req.WinnerTeamID),
	)
	s.cache.Invalidate(ctx, ScheduleKey(eventID))
	if s.refresh != nil {
		s.refresh.RefreshSchedule(eventID)
	}
	s.journal.Record(ctx, "match_result", &matchID, "register",
		fmt.Sprintf("Resultado %d-%d registrado", req.HomeScore, req.AwayScore),
		actor, map[string]interface{}{"event_id": eventID, "winner_team_id": req.WinnerTeamID})
	return updated, nil
}

// schedule reads the match list through the cache.
func (s *ScheduleService) schedule(ctx context.Context, eventID int64) (*models.Schedule, error) {
	var schedule models.Schedule
	if s.cache.Get(ctx, ScheduleKey(eventID), &schedule) {
		return &schedule, nil
	}
	return s.client.GetSchedule(ctx, eventID)
}

// commitSchedule stores a generation response as the new snapshot.
func (s *ScheduleService) commitSchedule(ctx context.Context, eventID int64, schedule *models.Schedule) {
	s.cache.Set(ctx, ScheduleKey(eventID), schedule, s.cache.ScheduleTTL())
}
