package service

import (
	"sort"
	"strconv"
	"time"

	"github.com/ligasur/arena-console/internal/models"
)

// FilterAll is the wildcard option of every schedule filter.
const FilterAll = "all"

// VenueUnassigned buckets matches that have no venue yet.
const VenueUnassigned = "unassigned"

// ScheduleFilter is the conjunction of the four schedule filters. Empty
// values behave as the wildcard.
type ScheduleFilter struct {
	Phase  string `json:"phase"`
	Series string `json:"series"`
	Venue  string `json:"venue"`
	Date   string `json:"date"`
}

// FilterOptions lists the distinct values present in the match list, each
// prefixed with the wildcard option.
type FilterOptions struct {
	Phases []string `json:"phases"`
	Series []string `json:"series"`
	Venues []string `json:"venues"`
	Dates  []string `json:"dates"`
}

// ScheduleStats summarizes the match list against the event timeline.
type ScheduleStats struct {
	TotalMatches int            `json:"total_matches"`
	UsedDays     int            `json:"used_days"`
	LastDate     models.ISODate `json:"last_date,omitempty"`
	WithinRange  bool           `json:"within_range"`
}

// NextStageReadiness is derived from the platform's generation metadata,
// never recomputed locally.
type NextStageReadiness struct {
	AllowInitialSchedule bool              `json:"allow_initial_schedule"`
	CanGenerateNextStage bool              `json:"can_generate_next_stage"`
	NextPhase            models.MatchPhase `json:"next_phase,omitempty"`
}

// TeamMatchResult is a team's outcome in one match.
type TeamMatchResult string

const (
	TeamWon     TeamMatchResult = "won"
	TeamLost    TeamMatchResult = "lost"
	TeamPending TeamMatchResult = "pending"
)

// TeamHistoryEntry is one row of a team's chronological match history.
type TeamHistoryEntry struct {
	Opponent string          `json:"opponent"`
	Result   TeamMatchResult `json:"result"`
	Score    string          `json:"score"`
	Date     models.ISODate  `json:"date"`
}

// TeamSummary aggregates a team's campaign.
type TeamSummary struct {
	TeamID  int64              `json:"team_id"`
	Wins    int                `json:"wins"`
	Played  int                `json:"played"`
	History []TeamHistoryEntry `json:"history"`
}

// ComputeFilterOptions derives the filter sets from the match list.
func ComputeFilterOptions(matches []models.Match) FilterOptions {
	phases := []string{FilterAll}
	series := []string{FilterAll}
	venues := []string{FilterAll}
	dates := []string{FilterAll}

	seenPhase := map[string]struct{}{}
	seenSeries := map[string]struct{}{}
	seenVenue := map[string]struct{}{}
	seenDate := map[string]struct{}{}

	for _, match := range matches {
		phase := string(match.Phase)
		if phase == "" {
			phase = string(models.PhaseUnknown)
		}
		if _, ok := seenPhase[phase]; !ok {
			seenPhase[phase] = struct{}{}
			phases = append(phases, phase)
		}

		if match.Series != "" {
			if _, ok := seenSeries[match.Series]; !ok {
				seenSeries[match.Series] = struct{}{}
				series = append(series, match.Series)
			}
		}

		venue := match.VenueName
		if venue == "" {
			venue = VenueUnassigned
		}
		if _, ok := seenVenue[venue]; !ok {
			seenVenue[venue] = struct{}{}
			venues = append(venues, venue)
		}

		if !match.Date.IsZero() {
			if _, ok := seenDate[string(match.Date)]; !ok {
				seenDate[string(match.Date)] = struct{}{}
				dates = append(dates, string(match.Date))
			}
		}
	}

	sort.Strings(phases[1:])
	sort.Strings(series[1:])
	sort.Strings(venues[1:])
	sort.Strings(dates[1:])
	return FilterOptions{Phases: phases, Series: series, Venues: venues, Dates: dates}
}

// FilterMatches keeps the matches satisfying every active filter.
func FilterMatches(matches []models.Match, filter ScheduleFilter) []models.Match {
	filtered := make([]models.Match, 0, len(matches))
	for _, match := range matches {
		if !filterAccepts(filter.Phase, string(match.Phase)) {
			continue
		}
		if !filterAccepts(filter.Series, match.Series) {
			continue
		}
		venue := match.VenueName
		if venue == "" {
			venue = VenueUnassigned
		}
		if !filterAccepts(filter.Venue, venue) {
			continue
		}
		if !filterAccepts(filter.Date, string(match.Date)) {
			continue
		}
		filtered = append(filtered, match)
	}
	return filtered
}

func filterAccepts(want, have string) bool {
	return want == "" || want == FilterAll || want == have
}

// ComputeScheduleStats folds the match list into completion statistics.
// WithinRange is true when either boundary is undefined.
func ComputeScheduleStats(matches []models.Match, championshipEnd models.ISODate) ScheduleStats {
	stats := ScheduleStats{TotalMatches: len(matches), WithinRange: true}
	days := map[models.ISODate]struct{}{}
	for _, match := range matches {
		if match.Date.IsZero() {
			continue
		}
		days[match.Date] = struct{}{}
		if match.Date.After(stats.LastDate) {
			stats.LastDate = match.Date
		}
	}
	stats.UsedDays = len(days)
	if !stats.LastDate.IsZero() && !championshipEnd.IsZero() {
		stats.WithinRange = !stats.LastDate.After(championshipEnd)
	}
	return stats
}

// ComputeReadiness derives next-stage readiness from the platform metadata.
func ComputeReadiness(schedule models.Schedule) NextStageReadiness {
	readiness := NextStageReadiness{
		AllowInitialSchedule: len(schedule.Matches) == 0,
		NextPhase:            schedule.Meta.NextPhase,
	}
	readiness.CanGenerateNextStage = !readiness.AllowInitialSchedule &&
		schedule.Meta.NextPhase != "" &&
		schedule.Meta.NextPhase != models.PhaseGroup
	return readiness
}

// ComputeTeamSummary builds a team's wins, played count and chronological
// history. Ties on date keep creation order.
func ComputeTeamSummary(matches []models.Match, teamID int64) TeamSummary {
	summary := TeamSummary{TeamID: teamID, History: []TeamHistoryEntry{}}
	for _, match := range matches {
		var opponent models.TeamRef
		switch teamID {
		case match.Home.ID:
			opponent = match.Away
		case match.Away.ID:
			opponent = match.Home
		default:
			continue
		}

		entry := TeamHistoryEntry{
			Opponent: opponent.Label(),
			Result:   TeamPending,
			Date:     match.Date,
		}
		if match.Status == models.MatchFinished {
			summary.Played++
			if match.HomeScore != nil && match.AwayScore != nil {
				if teamID == match.Home.ID {
					entry.Score = scoreLabel(*match.HomeScore, *match.AwayScore)
				} else {
					entry.Score = scoreLabel(*match.AwayScore, *match.HomeScore)
				}
			}
			if match.WinnerTeamID == teamID {
				summary.Wins++
				entry.Result = TeamWon
			} else {
				entry.Result = TeamLost
			}
		}
		summary.History = append(summary.History, entry)
	}

	sort.SliceStable(summary.History, func(i, j int) bool {
		return summary.History[j].Date.After(summary.History[i].Date)
	})
	return summary
}

func scoreLabel(own, rival int) string {
	return strconv.Itoa(own) + "-" + strconv.Itoa(rival)
}

// CanRegisterResult decides whether the console may offer the result form
// for a match: the match must still be open, both teams resolved, the event
// in a playable stage, and the scheduled kickoff already past on the
// console clock.
func CanRegisterResult(match models.Match, stage models.Stage, now time.Time) bool {
	if match.Ended() {
		return false
	}
	if !match.Home.Resolved() || !match.Away.Resolved() {
		return false
	}
	if stage != models.StageChampionship && stage != models.StageFinished {
		return false
	}
	if !match.Date.IsZero() {
		kickoff, err := combineDateTime(match.Date, match.StartTime)
		if err == nil && now.Before(kickoff) {
			return false
		}
	}
	return true
}

func combineDateTime(date models.ISODate, clock string) (time.Time, error) {
	if clock == "" {
		return date.Time()
	}
	return time.Parse("2006-01-02 15:04", string(date)+" "+clock)
}
