package platform

import (
	"context"
	"fmt"

	"github.com/ligasur/arena-console/internal/models"
)

// Decision is an audit decision verb accepted by the platform.
type Decision string

const (
	DecisionApprove           Decision = "approve"
	DecisionReject            Decision = "reject"
	DecisionRequestCorrection Decision = "request_correction"
)

// GetEvent fetches a single event with its lifecycle stage and timeline.
func (c *Client) GetEvent(ctx context.Context, eventID int64) (*models.Event, error) {
	var event models.Event
	if err := c.get(ctx, fmt.Sprintf("/events/%d", eventID), &event); err != nil {
		return nil, err
	}
	return &event, nil
}

// ListInstitutions fetches the event's institution participation rows.
func (c *Client) ListInstitutions(ctx context.Context, eventID int64) ([]models.InstitutionParticipation, error) {
	var rows []models.InstitutionParticipation
	if err := c.get(ctx, fmt.Sprintf("/events/%d/institutions", eventID), &rows); err != nil {
		return nil, err
	}
	return rows, nil
}

// GetRegistration fetches one institution's registration snapshot, students
// and documents included.
func (c *Client) GetRegistration(ctx context.Context, eventID, institutionID int64) (*models.RegistrationSnapshot, error) {
	var snapshot models.RegistrationSnapshot
	path := fmt.Sprintf("/events/%d/institutions/%d/registration", eventID, institutionID)
	if err := c.get(ctx, path, &snapshot); err != nil {
		return nil, err
	}
	return &snapshot, nil
}

type documentReviewPayload struct {
	Documents []models.DocumentReview `json:"documents"`
}

// SubmitDocumentReview sends a batch of document reviews and returns the
// updated snapshot, which is authoritative for reviewer name and timestamps.
func (c *Client) SubmitDocumentReview(ctx context.Context, eventID, institutionID int64, reviews []models.DocumentReview) (*models.RegistrationSnapshot, error) {
	var snapshot models.RegistrationSnapshot
	path := fmt.Sprintf("/events/%d/institutions/%d/registration/review", eventID, institutionID)
	if err := c.post(ctx, path, documentReviewPayload{Documents: reviews}, &snapshot); err != nil {
		return nil, err
	}
	return &snapshot, nil
}

type decisionPayload struct {
	Decision Decision `json:"decision"`
	Motive   string   `json:"motive,omitempty"`
}

// SubmitAuditDecision sends a single-institution audit decision.
func (c *Client) SubmitAuditDecision(ctx context.Context, eventID, participationID int64, decision Decision, motive string) (*models.InstitutionParticipation, error) {
	var row models.InstitutionParticipation
	path := fmt.Sprintf("/events/%d/institutions/%d/audit", eventID, participationID)
	if err := c.post(ctx, path, decisionPayload{Decision: decision, Motive: motive}, &row); err != nil {
		return nil, err
	}
	return &row, nil
}

type bulkDecisionPayload struct {
	InstitutionIDs []int64  `json:"institution_ids"`
	Decision       Decision `json:"decision"`
	Motive         string   `json:"motive,omitempty"`
}

// BulkDecisionResult reports how many rows the platform updated.
type BulkDecisionResult struct {
	Updated int `json:"updated"`
}

// SubmitBulkAuditDecision sends one decision for a set of institutions.
func (c *Client) SubmitBulkAuditDecision(ctx context.Context, eventID int64, ids []int64, decision Decision, motive string) (*BulkDecisionResult, error) {
	var result BulkDecisionResult
	path := fmt.Sprintf("/events/%d/institutions/audit", eventID)
	payload := bulkDecisionPayload{InstitutionIDs: ids, Decision: decision, Motive: motive}
	if err := c.post(ctx, path, payload, &result); err != nil {
		return nil, err
	}
	return &result, nil
}

type extensionPayload struct {
	NewDeadline *models.ISODate `json:"new_deadline"`
}

// ExtendRegistration updates an institution's registration deadline. A nil
// deadline clears the extension.
func (c *Client) ExtendRegistration(ctx context.Context, eventID, participationID int64, newDeadline *models.ISODate) error {
	path := fmt.Sprintf("/events/%d/institutions/%d/extension", eventID, participationID)
	return c.put(ctx, path, extensionPayload{NewDeadline: newDeadline}, nil)
}

type notifyPayload struct {
	Kind string `json:"kind"`
}

// NotifyResult reports how many reminders went out.
type NotifyResult struct {
	Sent int `json:"sent"`
}

// NotifyInvitation asks the platform to resend an invitation or reminder.
func (c *Client) NotifyInvitation(ctx context.Context, eventID, participationID int64, kind string) (*NotifyResult, error) {
	var result NotifyResult
	path := fmt.Sprintf("/events/%d/institutions/%d/notify", eventID, participationID)
	if err := c.post(ctx, path, notifyPayload{Kind: kind}, &result); err != nil {
		return nil, err
	}
	return &result, nil
}
