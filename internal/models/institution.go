package models

import "time"

// InvitationStatus tracks an institution's response to its event invitation.
type InvitationStatus string

const (
	InvitationPending  InvitationStatus = "pending"
	InvitationAccepted InvitationStatus = "accepted"
	InvitationRejected InvitationStatus = "rejected"
)

// AuditStatus is the committee's decision on an institution's registration.
type AuditStatus string

const (
	AuditPending             AuditStatus = "pending"
	AuditApproved            AuditStatus = "approved"
	AuditRejected            AuditStatus = "rejected"
	AuditCorrectionRequested AuditStatus = "correction_requested"
)

// InstitutionParticipation is one row of the event's institution list. The
// platform is authoritative; the console only holds read snapshots.
type InstitutionParticipation struct {
	ParticipationID     int64            `json:"participation_id,omitempty"`
	EventID             int64            `json:"event_id"`
	InstitutionID       int64            `json:"institution_id,omitempty"`
	InstitutionName     string           `json:"institution_name"`
	InvitationStatus    InvitationStatus `json:"invitation_status"`
	AuditStatus         AuditStatus      `json:"audit_status"`
	ExtendedDeadline    ISODate          `json:"extended_deadline,omitempty"`
	DocsComplete        *bool            `json:"docs_complete,omitempty"`
	EnrolledCount       int              `json:"enrolled_count"`
	RejectionMotive     string           `json:"rejection_motive,omitempty"`
	LastSubmittedAt     *time.Time       `json:"last_submitted_at,omitempty"`
	InstitutionCoverURL string           `json:"institution_cover_url,omitempty"`
}

// RowID resolves the identifier used for selection and bulk decisions:
// the participation id when present, the institution id as fallback.
// Zero means the row cannot be addressed.
func (p InstitutionParticipation) RowID() int64 {
	if p.ParticipationID > 0 {
		return p.ParticipationID
	}
	if p.InstitutionID > 0 {
		return p.InstitutionID
	}
	return 0
}
