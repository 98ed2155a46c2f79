package models

import "time"

// DocumentStatus is the review state of a single uploaded document.
type DocumentStatus string

const (
	DocumentPending             DocumentStatus = "pending"
	DocumentApproved            DocumentStatus = "approved"
	DocumentCorrectionRequested DocumentStatus = "correction_requested"
)

// Valid reports whether the status is one of the review states.
func (s DocumentStatus) Valid() bool {
	switch s {
	case DocumentPending, DocumentApproved, DocumentCorrectionRequested:
		return true
	}
	return false
}

// Document is a reviewable file attached to a student's registration.
type Document struct {
	ID           int64          `json:"id"`
	Type         string         `json:"type"`
	FileURL      string         `json:"file_url"`
	Status       DocumentStatus `json:"status"`
	ReviewNote   string         `json:"review_note,omitempty"`
	UploadedAt   *time.Time     `json:"uploaded_at,omitempty"`
	ReviewedAt   *time.Time     `json:"reviewed_at,omitempty"`
	ReviewerName string         `json:"reviewer_name,omitempty"`
}

// StudentStatus is the aggregate review state derived from a student's
// document set.
type StudentStatus string

const (
	StudentComplete   StudentStatus = "complete"
	StudentCorrection StudentStatus = "correction"
	StudentMissing    StudentStatus = "missing"
	StudentPending    StudentStatus = "pending"
)

// Student is an enrolled participant inside a registration snapshot.
type Student struct {
	ID               int64      `json:"id"`
	InstitutionID    int64      `json:"institution_id"`
	FirstNames       string     `json:"first_names"`
	LastNames        string     `json:"last_names"`
	IdentityDocument string     `json:"identity_document,omitempty"`
	BirthDate        ISODate    `json:"birth_date"`
	PhotoURL         string     `json:"photo_url,omitempty"`
	Active           bool       `json:"active"`
	CreatedAt        *time.Time `json:"created_at,omitempty"`
	Documents        []Document `json:"documents"`
}

// AggregateStatus folds the document set into a single review state:
// complete iff every document is approved and there is at least one,
// correction if any document needs one, missing with zero documents,
// pending otherwise.
func (s Student) AggregateStatus() StudentStatus {
	if len(s.Documents) == 0 {
		return StudentMissing
	}
	allApproved := true
	for _, doc := range s.Documents {
		switch doc.Status {
		case DocumentCorrectionRequested:
			return StudentCorrection
		case DocumentApproved:
		default:
			allApproved = false
		}
	}
	if allApproved {
		return StudentComplete
	}
	return StudentPending
}

// RegistrationSnapshot is the platform's view of one institution's
// registration for an event: students, their documents, and the audit
// context needed to gate editing.
type RegistrationSnapshot struct {
	EventID          int64            `json:"event_id"`
	InstitutionID    int64            `json:"institution_id"`
	Stage            Stage            `json:"stage"`
	Students         []Student        `json:"students"`
	AuditStatus      AuditStatus      `json:"audit_status,omitempty"`
	InvitationStatus InvitationStatus `json:"invitation_status,omitempty"`
	AuditMessage     string           `json:"audit_message,omitempty"`
	RegistrationEnd  ISODate          `json:"registration_end,omitempty"`
	ExtendedDeadline ISODate          `json:"extended_deadline,omitempty"`
	AuditEnd         ISODate          `json:"audit_end,omitempty"`
	LastReviewSentAt *time.Time       `json:"last_review_sent_at,omitempty"`
}

// DocumentByID finds a document across the snapshot's students.
func (r RegistrationSnapshot) DocumentByID(id int64) (Document, bool) {
	for _, student := range r.Students {
		for _, doc := range student.Documents {
			if doc.ID == id {
				return doc, true
			}
		}
	}
	return Document{}, false
}

// DocumentReview is one reviewed entry of a review submission.
type DocumentReview struct {
	DocumentID int64          `json:"document_id"`
	Status     DocumentStatus `json:"status"`
	Note       string         `json:"note"`
}
