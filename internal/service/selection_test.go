package service

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/ligasur/arena-console/internal/models"
)

func participationRow(participationID, institutionID int64, invitation models.InvitationStatus) models.InstitutionParticipation {
	return models.InstitutionParticipation{
		ParticipationID:  participationID,
		InstitutionID:    institutionID,
		InvitationStatus: invitation,
		AuditStatus:      models.AuditPending,
	}
}

func TestSelectionEligibilityRules(t *testing.T) {
	rows := []models.InstitutionParticipation{
		participationRow(1, 10, models.InvitationAccepted),
		participationRow(2, 20, models.InvitationPending),
		participationRow(3, 30, models.InvitationRejected),
		participationRow(0, 40, models.InvitationAccepted), // falls back to institution id
		participationRow(0, 0, models.InvitationAccepted),  // unaddressable
		participationRow(1, 10, models.InvitationAccepted), // duplicate id
	}

	s := NewSelection()
	ids := s.ComputeEligible(rows, PermissionsFor(models.StageAudit))
	assert.Equal(t, []int64{1, 40}, ids)
	assert.Equal(t, 2, s.EligibleCount())
}

func TestSelectionEmptyOutsideAuditStage(t *testing.T) {
	rows := []models.InstitutionParticipation{
		participationRow(1, 10, models.InvitationAccepted),
	}
	s := NewSelection()
	ids := s.ComputeEligible(rows, PermissionsFor(models.StageChampionship))
	assert.Empty(t, ids)
}

func TestSelectionToggleIgnoresIneligible(t *testing.T) {
	s := NewSelection()
	s.ComputeEligible([]models.InstitutionParticipation{
		participationRow(1, 10, models.InvitationAccepted),
	}, PermissionsFor(models.StageAudit))

	s.Toggle(99)
	assert.False(t, s.IsSelected(99))

	s.Toggle(1)
	assert.True(t, s.IsSelected(1))
	s.Toggle(1)
	assert.False(t, s.IsSelected(1))
}

func TestSelectionReconcileDropsStaleEntries(t *testing.T) {
	s := NewSelection()
	perms := PermissionsFor(models.StageAudit)
	s.ComputeEligible([]models.InstitutionParticipation{
		participationRow(1, 10, models.InvitationAccepted),
		participationRow(2, 20, models.InvitationAccepted),
	}, perms)
	s.SelectAll(true)
	assert.True(t, s.IsAllSelected())

	// Row 2 withdrew its acceptance; the stale selection vanishes silently.
	s.ComputeEligible([]models.InstitutionParticipation{
		participationRow(1, 10, models.InvitationAccepted),
		participationRow(2, 20, models.InvitationRejected),
	}, perms)
	assert.True(t, s.IsSelected(1))
	assert.False(t, s.IsSelected(2))
	assert.True(t, s.IsAllSelected())
}

func TestSelectionAllSelectedNeverTrueOnEmptySet(t *testing.T) {
	s := NewSelection()
	s.SelectAll(true)
	assert.False(t, s.IsAllSelected())

	s.ComputeEligible([]models.InstitutionParticipation{
		participationRow(1, 10, models.InvitationAccepted),
	}, PermissionsFor(models.StageAudit))
	s.SelectAll(true)
	assert.True(t, s.IsAllSelected())
	s.Clear()
	assert.Empty(t, s.Selected())
	assert.False(t, s.IsAllSelected())
}
