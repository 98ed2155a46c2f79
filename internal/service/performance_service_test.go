package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ligasur/arena-console/internal/models"
	"github.com/ligasur/arena-console/internal/platform"
	appErrors "github.com/ligasur/arena-console/pkg/errors"
)

type fakePerformanceClient struct {
	players []models.MatchPlayer
	records []models.PlayerPerformanceRecord

	saved      [][]platform.PerformanceUpdate
	saveErr    error
	calculated []models.PlayerPerformanceRecord
	calcErr    error

	// When set, SavePerformance signals saveStarted and then parks until
	// saveRelease closes, so tests can hold a save open.
	saveStarted chan struct{}
	saveRelease chan struct{}
}

func (f *fakePerformanceClient) GetMatchPlayers(ctx context.Context, matchID int64) ([]models.MatchPlayer, error) {
	return f.players, nil
}

func (f *fakePerformanceClient) GetPerformance(ctx context.Context, matchID int64) ([]models.PlayerPerformanceRecord, error) {
	return f.records, nil
}

func (f *fakePerformanceClient) SavePerformance(ctx context.Context, matchID int64, updates []platform.PerformanceUpdate) ([]models.PlayerPerformanceRecord, error) {
	if f.saveStarted != nil {
		f.saveStarted <- struct{}{}
		<-f.saveRelease
	}
	if f.saveErr != nil {
		return nil, f.saveErr
	}
	f.saved = append(f.saved, updates)
	records := make([]models.PlayerPerformanceRecord, 0, len(updates))
	for _, update := range updates {
		records = append(records, models.PlayerPerformanceRecord{
			PlayerID:  update.PlayerID,
			RoleFlags: update.RoleFlags,
			Rating:    update.Rating,
			Goals:     update.Goals,
			Saves:     update.Saves,
		})
	}
	return records, nil
}

func (f *fakePerformanceClient) CalculatePerformance(ctx context.Context, matchID int64) ([]models.PlayerPerformanceRecord, error) {
	if f.calcErr != nil {
		return nil, f.calcErr
	}
	return f.calculated, nil
}

func performanceFixture() (*PerformanceService, *fakePerformanceClient) {
	client := &fakePerformanceClient{
		players: []models.MatchPlayer{
			{PlayerID: 1, Name: "Ana", TeamID: 11, TeamLabel: "Tigres"},
			{PlayerID: 2, Name: "Bruno", TeamID: 12, TeamLabel: "Leones"},
		},
		records: []models.PlayerPerformanceRecord{
			{
				PlayerID:  1,
				RoleFlags: models.FlagsForRole(models.RoleKeeper),
				Rating:    7.5,
				Saves:     4,
			},
		},
	}
	return NewPerformanceService(client, nil, nil, nil), client
}

func TestPerformanceOpenMergesRosterWithRecords(t *testing.T) {
	svc, _ := performanceFixture()

	view, err := svc.Open(context.Background(), 42)
	require.NoError(t, err)
	require.Len(t, view.Rows, 2)

	// Saved record populates its roster row; the rest start zero-valued.
	ana := view.Rows[1]
	assert.Equal(t, "Ana", ana.Name)
	assert.Equal(t, 4, ana.Saves)
	assert.Equal(t, models.RoleKeeper, ana.Role())

	bruno := view.Rows[0]
	assert.Equal(t, "Bruno", bruno.Name)
	assert.Zero(t, bruno.Goals)
	assert.Equal(t, models.RoleNone, bruno.Role())
}

func TestPerformanceRoleSelectionKeepsFlagsExclusive(t *testing.T) {
	svc, _ := performanceFixture()
	view, err := svc.Open(context.Background(), 42)
	require.NoError(t, err)

	view, err = svc.EditField(view.SessionID, 1, FieldRoleSelection, "midfielder")
	require.NoError(t, err)
	row := view.Rows[1]
	assert.Equal(t, models.RoleMidfielder, row.Role())
	assert.False(t, row.Keeper)

	// Clearing the role clears all four flags.
	view, err = svc.EditField(view.SessionID, 1, FieldRoleSelection, "")
	require.NoError(t, err)
	assert.Equal(t, models.RoleNone, view.Rows[1].Role())

	_, err = svc.EditField(view.SessionID, 1, FieldRoleSelection, "goalie")
	assert.Equal(t, appErrors.ErrValidation.Code, appErrors.FromError(err).Code)
}

func TestPerformanceStatEditsCoerceValues(t *testing.T) {
	svc, _ := performanceFixture()
	view, err := svc.Open(context.Background(), 42)
	require.NoError(t, err)

	view, err = svc.EditField(view.SessionID, 2, "goals", "3")
	require.NoError(t, err)
	assert.Equal(t, 3, view.Rows[0].Goals)

	view, err = svc.EditField(view.SessionID, 2, "pass_success", "87.5")
	require.NoError(t, err)
	assert.Equal(t, 87.5, view.Rows[0].PassSuccess)

	// Garbage and negatives collapse to zero instead of blocking the edit.
	view, err = svc.EditField(view.SessionID, 2, "goals", "many")
	require.NoError(t, err)
	assert.Zero(t, view.Rows[0].Goals)

	view, err = svc.EditField(view.SessionID, 2, "goals", "-2")
	require.NoError(t, err)
	assert.Zero(t, view.Rows[0].Goals)
}

func TestPerformanceRatingAndUnknownFieldsNotEditable(t *testing.T) {
	svc, _ := performanceFixture()
	view, err := svc.Open(context.Background(), 42)
	require.NoError(t, err)

	_, err = svc.EditField(view.SessionID, 1, "rating", "9.9")
	assert.Equal(t, appErrors.ErrValidation.Code, appErrors.FromError(err).Code)

	_, err = svc.EditField(view.SessionID, 1, "mvp", "true")
	assert.Equal(t, appErrors.ErrValidation.Code, appErrors.FromError(err).Code)

	_, err = svc.EditField(view.SessionID, 99, "goals", "1")
	assert.Equal(t, appErrors.ErrNotFound.Code, appErrors.FromError(err).Code)
}

func TestPerformanceSaveSubmitsWholeTable(t *testing.T) {
	svc, client := performanceFixture()
	view, err := svc.Open(context.Background(), 42)
	require.NoError(t, err)

	_, err = svc.EditField(view.SessionID, 2, "goals", "2")
	require.NoError(t, err)

	result, err := svc.Save(context.Background(), view.SessionID, nil)
	require.NoError(t, err)
	require.Len(t, client.saved, 1)
	assert.Len(t, client.saved[0], 2, "every roster row travels in the save")
	assert.False(t, result.Loading)
	// Display fields survive the round trip.
	assert.Equal(t, "Bruno", result.Rows[0].Name)
	assert.Equal(t, 2, result.Rows[0].Goals)
}

func TestPerformanceCalculateMergesOnlyRatingAndMVP(t *testing.T) {
	svc, client := performanceFixture()
	client.calculated = []models.PlayerPerformanceRecord{
		{PlayerID: 1, Rating: 9.1, MVP: true, Goals: 99},
		{PlayerID: 2, Rating: 6.4},
	}

	view, err := svc.Open(context.Background(), 42)
	require.NoError(t, err)

	_, err = svc.EditField(view.SessionID, 2, "goals", "2")
	require.NoError(t, err)

	result, err := svc.CalculateAndApply(context.Background(), view.SessionID, nil)
	require.NoError(t, err)
	require.Len(t, client.saved, 1, "calculation always saves first")

	ana := result.Rows[1]
	assert.Equal(t, 9.1, ana.Rating)
	assert.True(t, ana.MVP)
	assert.Equal(t, 4, ana.Saves, "calculation result never overwrites edited statistics")

	bruno := result.Rows[0]
	assert.Equal(t, 6.4, bruno.Rating)
	assert.Equal(t, 2, bruno.Goals)
}

func TestPerformanceSaveFailureClearsBusyFlag(t *testing.T) {
	svc, client := performanceFixture()
	client.saveErr = appErrors.Clone(appErrors.ErrUpstream, "boom")

	view, err := svc.Open(context.Background(), 42)
	require.NoError(t, err)

	_, err = svc.Save(context.Background(), view.SessionID, nil)
	require.Error(t, err)

	// The session is usable again after the failure.
	client.saveErr = nil
	result, err := svc.Save(context.Background(), view.SessionID, nil)
	require.NoError(t, err)
	assert.False(t, result.Loading)
}

func TestPerformanceSaveWhilePendingIsBusy(t *testing.T) {
	svc, client := performanceFixture()
	client.saveStarted = make(chan struct{})
	client.saveRelease = make(chan struct{})

	view, err := svc.Open(context.Background(), 42)
	require.NoError(t, err)

	done := make(chan error, 1)
	go func() {
		_, err := svc.Save(context.Background(), view.SessionID, nil)
		done <- err
	}()
	<-client.saveStarted

	// Save and calculate share the loading flag, so both are refused while
	// the first save is outstanding.
	_, err = svc.Save(context.Background(), view.SessionID, nil)
	require.Error(t, err)
	assert.Equal(t, appErrors.ErrBusy.Code, appErrors.FromError(err).Code)

	_, err = svc.CalculateAndApply(context.Background(), view.SessionID, nil)
	require.Error(t, err)
	assert.Equal(t, appErrors.ErrBusy.Code, appErrors.FromError(err).Code)

	close(client.saveRelease)
	require.NoError(t, <-done)
	assert.Len(t, client.saved, 1)
}
