package models

import "time"

// MatchPhase is a bracket phase of the championship.
type MatchPhase string

const (
	PhaseGroup        MatchPhase = "group"
	PhaseQuarterfinal MatchPhase = "quarterfinal"
	PhaseSemifinal    MatchPhase = "semifinal"
	PhaseFinal        MatchPhase = "final"
	PhaseThirdPlace   MatchPhase = "third_place"
	PhaseUnknown      MatchPhase = "unknown"
)

// MatchStatus is the platform's progress state for a match.
type MatchStatus string

const (
	MatchScheduled  MatchStatus = "scheduled"
	MatchInProgress MatchStatus = "in_progress"
	MatchFinished   MatchStatus = "finished"
	MatchCanceled   MatchStatus = "canceled"
)

// TeamRef points at a registered team, or carries a placeholder label when
// the bracket slot is not yet decided.
type TeamRef struct {
	ID          int64  `json:"id,omitempty"`
	Name        string `json:"name,omitempty"`
	Placeholder string `json:"placeholder,omitempty"`
}

// Resolved reports whether the slot references a real team.
func (t TeamRef) Resolved() bool {
	return t.ID > 0
}

// Label returns the display name, falling back to the placeholder.
func (t TeamRef) Label() string {
	if t.Name != "" {
		return t.Name
	}
	return t.Placeholder
}

// Match is one fixture of the event schedule.
type Match struct {
	ID            int64       `json:"id"`
	EventID       int64       `json:"event_id"`
	Phase         MatchPhase  `json:"phase"`
	Series        string      `json:"series,omitempty"`
	Round         string      `json:"round,omitempty"`
	Date          ISODate     `json:"date"`
	StartTime     string      `json:"start_time"`
	EndTime       string      `json:"end_time,omitempty"`
	VenueID       int64       `json:"venue_id,omitempty"`
	VenueName     string      `json:"venue_name,omitempty"`
	Home          TeamRef     `json:"home"`
	Away          TeamRef     `json:"away"`
	HomeScore     *int        `json:"home_score,omitempty"`
	AwayScore     *int        `json:"away_score,omitempty"`
	WinnerTeamID  int64       `json:"winner_team_id,omitempty"`
	ResultReason  string      `json:"result_reason,omitempty"`
	NewsPublished bool        `json:"news_published"`
	Status        MatchStatus `json:"status"`
	CreatedAt     *time.Time  `json:"created_at,omitempty"`
}

// Ended reports whether a result has been recorded.
func (m Match) Ended() bool {
	return m.Status == MatchFinished || m.Status == MatchCanceled
}

// ScheduleMeta carries the platform's bracket-progression signal returned
// by the generation endpoints. The console trusts it and never recomputes
// the progression locally.
type ScheduleMeta struct {
	NextPhase    MatchPhase `json:"next_phase,omitempty"`
	GeneratedAt  *time.Time `json:"generated_at,omitempty"`
	SeriesCount  int        `json:"series_count,omitempty"`
	PlayoffTeams int        `json:"playoff_teams,omitempty"`
}

// Schedule bundles the match list with its generation metadata.
type Schedule struct {
	EventID int64        `json:"event_id"`
	Matches []Match      `json:"matches"`
	Meta    ScheduleMeta `json:"meta"`
}

// StandingRow is one position of a series table, computed by the platform.
type StandingRow struct {
	TeamID          int64  `json:"team_id"`
	TeamName        string `json:"team_name"`
	InstitutionName string `json:"institution_name,omitempty"`
	Points          int    `json:"points"`
	Played          int    `json:"played"`
	Won             int    `json:"won"`
	Drawn           int    `json:"drawn"`
	Lost            int    `json:"lost"`
	GoalsFor        int    `json:"goals_for"`
	GoalsAgainst    int    `json:"goals_against"`
	GoalDifference  int    `json:"goal_difference"`
}

// StandingTable groups standings by series.
type StandingTable struct {
	Series    string        `json:"series,omitempty"`
	Positions []StandingRow `json:"positions"`
}
