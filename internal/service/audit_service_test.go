package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ligasur/arena-console/internal/models"
	"github.com/ligasur/arena-console/internal/platform"
	"github.com/ligasur/arena-console/pkg/config"
	appErrors "github.com/ligasur/arena-console/pkg/errors"
)

type fakeAuditClient struct {
	event models.Event
	rows  []models.InstitutionParticipation

	decisions     []platform.Decision
	bulkIDs       []int64
	bulkResult    platform.BulkDecisionResult
	extensions    []*models.ISODate
	notifications []string
}

func (f *fakeAuditClient) GetEvent(ctx context.Context, eventID int64) (*models.Event, error) {
	event := f.event
	return &event, nil
}

func (f *fakeAuditClient) ListInstitutions(ctx context.Context, eventID int64) ([]models.InstitutionParticipation, error) {
	return f.rows, nil
}

func (f *fakeAuditClient) SubmitAuditDecision(ctx context.Context, eventID, participationID int64, decision platform.Decision, motive string) (*models.InstitutionParticipation, error) {
	f.decisions = append(f.decisions, decision)
	for _, row := range f.rows {
		if row.RowID() == participationID {
			updated := row
			return &updated, nil
		}
	}
	return nil, appErrors.ErrNotFound
}

func (f *fakeAuditClient) SubmitBulkAuditDecision(ctx context.Context, eventID int64, ids []int64, decision platform.Decision, motive string) (*platform.BulkDecisionResult, error) {
	f.bulkIDs = ids
	result := f.bulkResult
	if result.Updated == 0 {
		result.Updated = len(ids)
	}
	return &result, nil
}

func (f *fakeAuditClient) ExtendRegistration(ctx context.Context, eventID, participationID int64, newDeadline *models.ISODate) error {
	f.extensions = append(f.extensions, newDeadline)
	return nil
}

func (f *fakeAuditClient) NotifyInvitation(ctx context.Context, eventID, participationID int64, kind string) (*platform.NotifyResult, error) {
	f.notifications = append(f.notifications, kind)
	return &platform.NotifyResult{Sent: 1}, nil
}

func auditFixture(stage models.Stage) (*AuditService, *fakeAuditClient) {
	client := &fakeAuditClient{
		event: models.Event{ID: 5, Stage: stage, AuditEnd: "2026-06-30"},
		rows: []models.InstitutionParticipation{
			{ParticipationID: 1, InstitutionName: "Colegio Norte", InvitationStatus: models.InvitationAccepted, AuditStatus: models.AuditPending},
			{ParticipationID: 2, InstitutionName: "Colegio Sur", InvitationStatus: models.InvitationAccepted, AuditStatus: models.AuditPending},
			{ParticipationID: 3, InstitutionName: "Colegio Este", InvitationStatus: models.InvitationPending, AuditStatus: models.AuditPending},
		},
	}
	cache := NewCacheService(nil, nil, nil, config.CacheConfig{})
	svc := NewAuditService(client, cache, nil, nil, nil, nil, nil)
	return svc, client
}

func TestAuditBoardExposesPermissionsAndEligibility(t *testing.T) {
	svc, _ := auditFixture(models.StageAudit)

	board, err := svc.Board(context.Background(), 5)
	require.NoError(t, err)
	assert.True(t, board.Permissions.CanAudit)
	assert.Len(t, board.Rows, 3)
	assert.Equal(t, []int64{1, 2}, board.EligibleIDs)
}

func TestAuditDecideRequiresMotiveForNegativeDecisions(t *testing.T) {
	svc, client := auditFixture(models.StageAudit)

	_, err := svc.Decide(context.Background(), 5, 1, DecisionRequest{Decision: "reject"}, nil)
	require.Error(t, err)
	assert.Equal(t, appErrors.ErrValidation.Code, appErrors.FromError(err).Code)

	_, err = svc.Decide(context.Background(), 5, 1, DecisionRequest{Decision: "request_correction", Motive: "   "}, nil)
	require.Error(t, err)
	assert.Empty(t, client.decisions)

	// Approve needs no motive and ignores one.
	_, err = svc.Decide(context.Background(), 5, 1, DecisionRequest{Decision: "approve"}, nil)
	require.NoError(t, err)

	_, err = svc.Decide(context.Background(), 5, 2, DecisionRequest{Decision: "reject", Motive: "documentación incompleta"}, nil)
	require.NoError(t, err)
	assert.Equal(t, []platform.Decision{platform.DecisionApprove, platform.DecisionReject}, client.decisions)
}

func TestAuditDecideClosedOutsideAuditStage(t *testing.T) {
	svc, client := auditFixture(models.StageChampionship)

	_, err := svc.Decide(context.Background(), 5, 1, DecisionRequest{Decision: "approve"}, nil)
	require.Error(t, err)
	assert.Equal(t, appErrors.ErrStageClosed.Code, appErrors.FromError(err).Code)
	assert.Empty(t, client.decisions)
}

func TestAuditDecideRejectsUnknownDecision(t *testing.T) {
	svc, _ := auditFixture(models.StageAudit)

	_, err := svc.Decide(context.Background(), 5, 1, DecisionRequest{Decision: "escalate"}, nil)
	require.Error(t, err)
	assert.Equal(t, appErrors.ErrValidation.Code, appErrors.FromError(err).Code)
}

func TestAuditBulkDecisionFiltersToEligibleRows(t *testing.T) {
	svc, client := auditFixture(models.StageAudit)

	// Row 3 never accepted, id 99 does not exist, id 1 duplicated.
	outcome, err := svc.DecideBulk(context.Background(), 5, BulkDecisionRequest{
		InstitutionIDs: []int64{1, 1, 2, 3, 99, -4},
		Decision:       "approve",
	}, nil)
	require.NoError(t, err)
	assert.Equal(t, []int64{1, 2}, client.bulkIDs)
	assert.Equal(t, 2, outcome.Updated)
	assert.Equal(t, "Se actualizaron 2 instituciones.", outcome.Message)
}

func TestAuditBulkDecisionNeedsAtLeastOneValidRow(t *testing.T) {
	svc, client := auditFixture(models.StageAudit)

	_, err := svc.DecideBulk(context.Background(), 5, BulkDecisionRequest{
		InstitutionIDs: []int64{3, 99},
		Decision:       "approve",
	}, nil)
	require.Error(t, err)
	assert.Equal(t, appErrors.ErrValidation.Code, appErrors.FromError(err).Code)
	assert.Nil(t, client.bulkIDs)
}

func TestAuditBulkCorrectionRequestsUnsupported(t *testing.T) {
	svc, _ := auditFixture(models.StageAudit)

	_, err := svc.DecideBulk(context.Background(), 5, BulkDecisionRequest{
		InstitutionIDs: []int64{1},
		Decision:       "request_correction",
		Motive:         "revisar",
	}, nil)
	require.Error(t, err)
	assert.Equal(t, appErrors.ErrValidation.Code, appErrors.FromError(err).Code)
}

func TestAuditExtensionBoundedByAuditEnd(t *testing.T) {
	svc, client := auditFixture(models.StageAudit)

	late := models.ISODate("2026-07-15")
	err := svc.ExtendRegistration(context.Background(), 5, 1, ExtensionRequest{NewDeadline: &late}, nil)
	require.Error(t, err)
	assert.Equal(t, appErrors.ErrValidation.Code, appErrors.FromError(err).Code)
	assert.Empty(t, client.extensions)

	ok := models.ISODate("2026-06-15")
	require.NoError(t, svc.ExtendRegistration(context.Background(), 5, 1, ExtensionRequest{NewDeadline: &ok}, nil))

	// Nil clears the extension.
	require.NoError(t, svc.ExtendRegistration(context.Background(), 5, 1, ExtensionRequest{}, nil))
	require.Len(t, client.extensions, 2)
	assert.Equal(t, ok, *client.extensions[0])
	assert.Nil(t, client.extensions[1])
}

func TestAuditExtensionOnlyDuringAudit(t *testing.T) {
	svc, _ := auditFixture(models.StageRegistration)

	deadline := models.ISODate("2026-06-15")
	err := svc.ExtendRegistration(context.Background(), 5, 1, ExtensionRequest{NewDeadline: &deadline}, nil)
	require.Error(t, err)
	assert.Equal(t, appErrors.ErrStageClosed.Code, appErrors.FromError(err).Code)
}

func TestAuditNotifyValidatesKind(t *testing.T) {
	svc, client := auditFixture(models.StageAudit)

	result, err := svc.Notify(context.Background(), 5, 1, "", nil)
	require.NoError(t, err)
	assert.Equal(t, 1, result.Sent)

	_, err = svc.Notify(context.Background(), 5, 1, "Invitation", nil)
	require.NoError(t, err)

	_, err = svc.Notify(context.Background(), 5, 1, "spam", nil)
	require.Error(t, err)
	assert.Equal(t, []string{"reminder", "invitation"}, client.notifications)
}
