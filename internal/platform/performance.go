package platform

import (
	"context"
	"fmt"

	"github.com/ligasur/arena-console/internal/models"
)

// PerformanceUpdate is the per-player statistics payload accepted by the
// save endpoint. It deliberately carries no MVP flag and no display fields:
// rating stays whatever the last calculation produced, and MVP is only ever
// written by the calculation endpoint.
type PerformanceUpdate struct {
	PlayerID int64 `json:"player_id"`

	models.RoleFlags

	Rating float64 `json:"rating"`

	MinutesPlayed  int     `json:"minutes_played"`
	Goals          int     `json:"goals"`
	Assists        int     `json:"assists"`
	WasFouled      int     `json:"was_fouled"`
	TotalShots     int     `json:"total_shots"`
	ShotsOnTarget  int     `json:"shots_on_target"`
	ShotsOffTarget int     `json:"shots_off_target"`
	BlockedShots   int     `json:"blocked_shots"`
	ShotAccuracy   float64 `json:"shot_accuracy"`
	ChancesCreated int     `json:"chances_created"`

	Touches           int     `json:"touches"`
	PassSuccess       float64 `json:"pass_success"`
	KeyPasses         int     `json:"key_passes"`
	Crosses           int     `json:"crosses"`
	DribblesSucceeded int     `json:"dribbles_succeeded"`

	TacklesAttempted int `json:"tackles_attempted"`
	TacklesSucceeded int `json:"tackles_succeeded"`
	Interceptions    int `json:"interceptions"`
	Recoveries       int `json:"recoveries"`
	DuelsWon         int `json:"duels_won"`
	AerialsWon       int `json:"aerials_won"`

	Saves          int `json:"saves"`
	SavesInsideBox int `json:"saves_inside_box"`
	DivingSaves    int `json:"diving_saves"`
	Punches        int `json:"punches"`
	Throws         int `json:"throws"`
	GoalsConceded  int `json:"goals_conceded"`
}

type performanceSavePayload struct {
	Performances []PerformanceUpdate `json:"performances"`
}

// GetMatchPlayers fetches the roster of both teams for a match.
func (c *Client) GetMatchPlayers(ctx context.Context, matchID int64) ([]models.MatchPlayer, error) {
	var players []models.MatchPlayer
	if err := c.get(ctx, fmt.Sprintf("/matches/%d/players", matchID), &players); err != nil {
		return nil, err
	}
	return players, nil
}

// GetPerformance fetches any previously saved statistics for a match.
func (c *Client) GetPerformance(ctx context.Context, matchID int64) ([]models.PlayerPerformanceRecord, error) {
	var records []models.PlayerPerformanceRecord
	if err := c.get(ctx, fmt.Sprintf("/matches/%d/performance", matchID), &records); err != nil {
		return nil, err
	}
	return records, nil
}

// SavePerformance persists the edited statistics for a match.
func (c *Client) SavePerformance(ctx context.Context, matchID int64, updates []PerformanceUpdate) ([]models.PlayerPerformanceRecord, error) {
	var records []models.PlayerPerformanceRecord
	path := fmt.Sprintf("/matches/%d/performance", matchID)
	if err := c.put(ctx, path, performanceSavePayload{Performances: updates}, &records); err != nil {
		return nil, err
	}
	return records, nil
}

// CalculatePerformance triggers the platform's rating and MVP computation
// over the persisted statistics and returns the recalculated records.
func (c *Client) CalculatePerformance(ctx context.Context, matchID int64) ([]models.PlayerPerformanceRecord, error) {
	var records []models.PlayerPerformanceRecord
	if err := c.post(ctx, fmt.Sprintf("/matches/%d/performance/calculate", matchID), nil, &records); err != nil {
		return nil, err
	}
	return records, nil
}
