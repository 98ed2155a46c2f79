package service

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/ligasur/arena-console/internal/models"
)

func intPtr(v int) *int {
	return &v
}

func fixtureMatches() []models.Match {
	return []models.Match{
		{
			ID: 1, Phase: models.PhaseGroup, Series: "A", Date: "2026-05-10", StartTime: "09:00",
			VenueName: "Estadio Central", Status: models.MatchFinished,
			Home: models.TeamRef{ID: 11, Name: "Tigres"}, Away: models.TeamRef{ID: 12, Name: "Leones"},
			HomeScore: intPtr(2), AwayScore: intPtr(1), WinnerTeamID: 11,
		},
		{
			ID: 2, Phase: models.PhaseGroup, Series: "B", Date: "2026-05-10", StartTime: "11:00",
			Status: models.MatchScheduled,
			Home:   models.TeamRef{ID: 13, Name: "Pumas"}, Away: models.TeamRef{ID: 11, Name: "Tigres"},
		},
		{
			ID: 3, Phase: models.PhaseSemifinal, Date: "2026-05-12",
			VenueName: "Cancha Sur", Status: models.MatchScheduled,
			Home: models.TeamRef{ID: 11, Name: "Tigres"}, Away: models.TeamRef{Placeholder: "Ganador B"},
		},
	}
}

func TestComputeFilterOptions(t *testing.T) {
	opts := ComputeFilterOptions(fixtureMatches())

	assert.Equal(t, []string{FilterAll, "group", "semifinal"}, opts.Phases)
	assert.Equal(t, []string{FilterAll, "A", "B"}, opts.Series)
	assert.Equal(t, []string{FilterAll, "Cancha Sur", "Estadio Central", VenueUnassigned}, opts.Venues)
	assert.Equal(t, []string{FilterAll, "2026-05-10", "2026-05-12"}, opts.Dates)
}

func TestFilterMatchesConjunction(t *testing.T) {
	matches := fixtureMatches()

	filtered := FilterMatches(matches, ScheduleFilter{Phase: "group", Venue: VenueUnassigned})
	if assert.Len(t, filtered, 1) {
		assert.Equal(t, int64(2), filtered[0].ID)
	}

	// Wildcards and empty values behave identically.
	assert.Len(t, FilterMatches(matches, ScheduleFilter{Phase: FilterAll}), 3)
	assert.Len(t, FilterMatches(matches, ScheduleFilter{}), 3)
	assert.Empty(t, FilterMatches(matches, ScheduleFilter{Series: "C"}))
}

func TestComputeScheduleStats(t *testing.T) {
	stats := ComputeScheduleStats(fixtureMatches(), "2026-05-20")
	assert.Equal(t, 3, stats.TotalMatches)
	assert.Equal(t, 2, stats.UsedDays)
	assert.Equal(t, models.ISODate("2026-05-12"), stats.LastDate)
	assert.True(t, stats.WithinRange)

	overrun := ComputeScheduleStats(fixtureMatches(), "2026-05-11")
	assert.False(t, overrun.WithinRange)

	// Missing boundary dates never flag an overrun.
	open := ComputeScheduleStats(fixtureMatches(), "")
	assert.True(t, open.WithinRange)
	assert.True(t, ComputeScheduleStats(nil, "2026-05-11").WithinRange)
}

func TestComputeReadiness(t *testing.T) {
	empty := ComputeReadiness(models.Schedule{})
	assert.True(t, empty.AllowInitialSchedule)
	assert.False(t, empty.CanGenerateNextStage)

	ready := ComputeReadiness(models.Schedule{
		Matches: fixtureMatches(),
		Meta:    models.ScheduleMeta{NextPhase: models.PhaseSemifinal},
	})
	assert.False(t, ready.AllowInitialSchedule)
	assert.True(t, ready.CanGenerateNextStage)

	// The platform signalling another group phase is not bracket progression.
	groupNext := ComputeReadiness(models.Schedule{
		Matches: fixtureMatches(),
		Meta:    models.ScheduleMeta{NextPhase: models.PhaseGroup},
	})
	assert.False(t, groupNext.CanGenerateNextStage)
}

func TestComputeTeamSummary(t *testing.T) {
	summary := ComputeTeamSummary(fixtureMatches(), 11)

	assert.Equal(t, 1, summary.Wins)
	assert.Equal(t, 1, summary.Played)
	if assert.Len(t, summary.History, 3) {
		assert.Equal(t, TeamWon, summary.History[0].Result)
		assert.Equal(t, "Leones", summary.History[0].Opponent)
		assert.Equal(t, "2-1", summary.History[0].Score)
		assert.Equal(t, TeamPending, summary.History[1].Result)
		// Placeholder opponents still render through their label.
		assert.Equal(t, "Ganador B", summary.History[2].Opponent)
	}
}

func TestComputeTeamSummaryAwayPerspective(t *testing.T) {
	summary := ComputeTeamSummary(fixtureMatches(), 12)
	if assert.Len(t, summary.History, 1) {
		assert.Equal(t, TeamLost, summary.History[0].Result)
		assert.Equal(t, "1-2", summary.History[0].Score, "score reads from the team's own side")
	}
	assert.Zero(t, summary.Wins)
}

func TestCanRegisterResult(t *testing.T) {
	now := time.Date(2026, 5, 11, 12, 0, 0, 0, time.UTC)
	open := models.Match{
		Date: "2026-05-10", StartTime: "09:00", Status: models.MatchScheduled,
		Home: models.TeamRef{ID: 1}, Away: models.TeamRef{ID: 2},
	}

	assert.True(t, CanRegisterResult(open, models.StageChampionship, now))
	assert.True(t, CanRegisterResult(open, models.StageFinished, now))
	assert.False(t, CanRegisterResult(open, models.StageAudit, now))

	future := open
	future.Date = "2026-05-12"
	assert.False(t, CanRegisterResult(future, models.StageChampionship, now))

	sameDayLater := open
	sameDayLater.Date = "2026-05-11"
	sameDayLater.StartTime = "18:00"
	assert.False(t, CanRegisterResult(sameDayLater, models.StageChampionship, now))

	unresolved := open
	unresolved.Away = models.TeamRef{Placeholder: "Ganador A"}
	assert.False(t, CanRegisterResult(unresolved, models.StageChampionship, now))

	ended := open
	ended.Status = models.MatchFinished
	assert.False(t, CanRegisterResult(ended, models.StageChampionship, now))

	canceled := open
	canceled.Status = models.MatchCanceled
	assert.False(t, CanRegisterResult(canceled, models.StageChampionship, now))
}
