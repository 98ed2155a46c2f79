package platform

import (
	"context"
	"fmt"

	"github.com/ligasur/arena-console/internal/models"
)

// GenerateScheduleRequest configures schedule generation.
type GenerateScheduleRequest struct {
	StartTime    string `json:"start_time,omitempty"`
	EndTime      string `json:"end_time,omitempty"`
	MatchHours   int    `json:"match_hours,omitempty"`
	RestDays     int    `json:"rest_days,omitempty"`
	ForceReplace bool   `json:"force,omitempty"`
}

// GetSchedule fetches the event's match list plus generation metadata.
func (c *Client) GetSchedule(ctx context.Context, eventID int64) (*models.Schedule, error) {
	var schedule models.Schedule
	if err := c.get(ctx, fmt.Sprintf("/events/%d/schedule", eventID), &schedule); err != nil {
		return nil, err
	}
	return &schedule, nil
}

// GenerateSchedule asks the platform to build the initial schedule. The
// generation algorithm is entirely server-side.
func (c *Client) GenerateSchedule(ctx context.Context, eventID int64, req GenerateScheduleRequest) (*models.Schedule, error) {
	var schedule models.Schedule
	if err := c.post(ctx, fmt.Sprintf("/events/%d/schedule", eventID), req, &schedule); err != nil {
		return nil, err
	}
	return &schedule, nil
}

// GenerateNextStage asks the platform to build the next bracket stage.
func (c *Client) GenerateNextStage(ctx context.Context, eventID int64) (*models.Schedule, error) {
	var schedule models.Schedule
	if err := c.post(ctx, fmt.Sprintf("/events/%d/schedule/next-stage", eventID), nil, &schedule); err != nil {
		return nil, err
	}
	return &schedule, nil
}

// DeleteSchedule removes the event's schedule.
func (c *Client) DeleteSchedule(ctx context.Context, eventID int64) error {
	return c.delete(ctx, fmt.Sprintf("/events/%d/schedule", eventID))
}

// GetStandings fetches the platform-computed standings tables.
func (c *Client) GetStandings(ctx context.Context, eventID int64) ([]models.StandingTable, error) {
	var tables []models.StandingTable
	if err := c.get(ctx, fmt.Sprintf("/events/%d/standings", eventID), &tables); err != nil {
		return nil, err
	}
	return tables, nil
}

// MatchResultRequest records a match's final score.
type MatchResultRequest struct {
	HomeScore    int    `json:"home_score"`
	AwayScore    int    `json:"away_score"`
	WinnerTeamID int64  `json:"winner_team_id"`
	ResultReason string `json:"result_reason,omitempty"`
	PublishNews  bool   `json:"publish_news"`
}

// RegisterResult submits a match result and returns the updated match.
func (c *Client) RegisterResult(ctx context.Context, matchID int64, req MatchResultRequest) (*models.Match, error) {
	var match models.Match
	if err := c.post(ctx, fmt.Sprintf("/matches/%d/result", matchID), req, &match); err != nil {
		return nil, err
	}
	return &match, nil
}
