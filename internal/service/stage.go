package service

import "github.com/ligasur/arena-console/internal/models"

// StagePermissions is the fixed permission record derived from an event's
// current stage. Any console action not backed by a true field here is
// refused before it reaches the platform, which re-validates independently.
type StagePermissions struct {
	CanAudit              bool `json:"can_audit"`
	CanRequestCorrection  bool `json:"can_request_correction"`
	CanManageChampionship bool `json:"can_manage_championship"`
	CanExtendRegistration bool `json:"can_extend_registration"`
}

// PermissionsFor maps a lifecycle stage to its permission set. Pure.
func PermissionsFor(stage models.Stage) StagePermissions {
	return StagePermissions{
		CanAudit:              stage == models.StageAudit,
		CanRequestCorrection:  stage == models.StageRegistration,
		CanManageChampionship: stage == models.StageChampionship,
		CanExtendRegistration: stage == models.StageAudit,
	}
}
