package service

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ligasur/arena-console/internal/models"
	"github.com/ligasur/arena-console/internal/platform"
	"github.com/ligasur/arena-console/pkg/config"
	appErrors "github.com/ligasur/arena-console/pkg/errors"
)

type fakeScheduleClient struct {
	event    models.Event
	schedule models.Schedule

	generated   int
	nextStages  int
	deleted     int
	results     []platform.MatchResultRequest
	generateErr error
}

func (f *fakeScheduleClient) GetEvent(ctx context.Context, eventID int64) (*models.Event, error) {
	event := f.event
	return &event, nil
}

func (f *fakeScheduleClient) GetSchedule(ctx context.Context, eventID int64) (*models.Schedule, error) {
	schedule := f.schedule
	return &schedule, nil
}

func (f *fakeScheduleClient) GenerateSchedule(ctx context.Context, eventID int64, req platform.GenerateScheduleRequest) (*models.Schedule, error) {
	if f.generateErr != nil {
		return nil, f.generateErr
	}
	f.generated++
	schedule := f.schedule
	return &schedule, nil
}

func (f *fakeScheduleClient) GenerateNextStage(ctx context.Context, eventID int64) (*models.Schedule, error) {
	f.nextStages++
	schedule := f.schedule
	return &schedule, nil
}

func (f *fakeScheduleClient) DeleteSchedule(ctx context.Context, eventID int64) error {
	f.deleted++
	return nil
}

func (f *fakeScheduleClient) GetStandings(ctx context.Context, eventID int64) ([]models.StandingTable, error) {
	return []models.StandingTable{{Series: "A"}}, nil
}

func (f *fakeScheduleClient) RegisterResult(ctx context.Context, matchID int64, req platform.MatchResultRequest) (*models.Match, error) {
	f.results = append(f.results, req)
	match := f.schedule.Matches[0]
	match.Status = models.MatchFinished
	return &match, nil
}

func scheduleFixture(stage models.Stage) (*ScheduleService, *fakeScheduleClient) {
	client := &fakeScheduleClient{
		event:    models.Event{ID: 9, Stage: stage, ChampionshipEnd: "2026-05-20"},
		schedule: models.Schedule{EventID: 9, Matches: fixtureMatches()},
	}
	cache := NewCacheService(nil, nil, nil, config.CacheConfig{})
	svc := NewScheduleService(client, cache, nil, nil, nil, nil)
	svc.now = func() time.Time {
		return time.Date(2026, 5, 11, 12, 0, 0, 0, time.UTC)
	}
	return svc, client
}

func TestScheduleViewAggregates(t *testing.T) {
	svc, _ := scheduleFixture(models.StageChampionship)

	view, err := svc.View(context.Background(), 9, ScheduleFilter{Phase: "group"})
	require.NoError(t, err)
	assert.True(t, view.Permissions.CanManageChampionship)
	assert.Len(t, view.Matches, 2, "filter applies to the rendered list")
	assert.Equal(t, 3, view.Stats.TotalMatches, "stats always cover the full list")
	assert.True(t, view.Stats.WithinRange)
	assert.False(t, view.Readiness.AllowInitialSchedule)
}

func TestScheduleGenerateGatedByStage(t *testing.T) {
	svc, client := scheduleFixture(models.StageAudit)

	_, err := svc.Generate(context.Background(), 9, platform.GenerateScheduleRequest{}, nil)
	require.Error(t, err)
	assert.Equal(t, appErrors.ErrStageClosed.Code, appErrors.FromError(err).Code)
	assert.Zero(t, client.generated)
}

func TestScheduleGenerateNextRequiresReadiness(t *testing.T) {
	svc, client := scheduleFixture(models.StageChampionship)

	// No next phase signalled yet.
	_, err := svc.GenerateNext(context.Background(), 9, nil)
	require.Error(t, err)
	assert.Equal(t, appErrors.ErrValidation.Code, appErrors.FromError(err).Code)
	assert.Zero(t, client.nextStages)

	client.schedule.Meta.NextPhase = models.PhaseSemifinal
	_, err = svc.GenerateNext(context.Background(), 9, nil)
	require.NoError(t, err)
	assert.Equal(t, 1, client.nextStages)
}

func TestScheduleRegisterResultValidations(t *testing.T) {
	svc, client := scheduleFixture(models.StageChampionship)

	// Unknown match.
	_, err := svc.RegisterResult(context.Background(), 9, 999, ResultRequest{WinnerTeamID: 11}, nil)
	assert.Equal(t, appErrors.ErrNotFound.Code, appErrors.FromError(err).Code)

	// Already finished.
	_, err = svc.RegisterResult(context.Background(), 9, 1, ResultRequest{HomeScore: 1, WinnerTeamID: 11}, nil)
	assert.Equal(t, appErrors.ErrValidation.Code, appErrors.FromError(err).Code)

	// Winner must be one of the two teams.
	_, err = svc.RegisterResult(context.Background(), 9, 2, ResultRequest{HomeScore: 1, AwayScore: 0, WinnerTeamID: 77}, nil)
	assert.Equal(t, appErrors.ErrValidation.Code, appErrors.FromError(err).Code)
	assert.Empty(t, client.results)

	match, err := svc.RegisterResult(context.Background(), 9, 2, ResultRequest{HomeScore: 1, AwayScore: 0, WinnerTeamID: 13}, nil)
	require.NoError(t, err)
	assert.Equal(t, models.MatchFinished, match.Status)
	require.Len(t, client.results, 1)
	assert.Equal(t, int64(13), client.results[0].WinnerTeamID)
}

func TestScheduleRegisterResultRejectsNegativeScores(t *testing.T) {
	svc, _ := scheduleFixture(models.StageChampionship)

	_, err := svc.RegisterResult(context.Background(), 9, 2, ResultRequest{HomeScore: -1, AwayScore: 0, WinnerTeamID: 13}, nil)
	require.Error(t, err)
	assert.Equal(t, appErrors.ErrValidation.Code, appErrors.FromError(err).Code)
}

func TestScheduleTeamHistory(t *testing.T) {
	svc, _ := scheduleFixture(models.StageChampionship)

	summary, err := svc.TeamHistory(context.Background(), 9, 11)
	require.NoError(t, err)
	assert.Equal(t, 1, summary.Wins)

	_, err = svc.TeamHistory(context.Background(), 9, 0)
	assert.Equal(t, appErrors.ErrValidation.Code, appErrors.FromError(err).Code)
}

func TestScheduleDeleteGatedByStage(t *testing.T) {
	svc, client := scheduleFixture(models.StageFinished)

	err := svc.Delete(context.Background(), 9, nil)
	require.Error(t, err)
	assert.Zero(t, client.deleted)
}
