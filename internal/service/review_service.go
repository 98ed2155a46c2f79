package service

import (
	"context"
	"sync"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/ligasur/arena-console/internal/models"
	appErrors "github.com/ligasur/arena-console/pkg/errors"
)

type registrationClient interface {
	GetEvent(ctx context.Context, eventID int64) (*models.Event, error)
	GetRegistration(ctx context.Context, eventID, institutionID int64) (*models.RegistrationSnapshot, error)
	SubmitDocumentReview(ctx context.Context, eventID, institutionID int64, reviews []models.DocumentReview) (*models.RegistrationSnapshot, error)
}

// reviewSession is one reviewer's open registration modal: the authoritative
// snapshot plus a local overlay of pending edits keyed by document id. The
// overlay is discarded on close and replaced wholesale after a successful
// save.
type reviewSession struct {
	mu sync.Mutex

	eventID       int64
	institutionID int64
	editable      bool

	snapshot models.RegistrationSnapshot
	overlay  map[int64]models.DocumentReview

	submitting bool
}

// seedOverlay keeps the documents that already carry review state, so a
// resubmission preserves earlier decisions. Documents still at their default
// pending state stay out of the overlay until the reviewer touches them.
func (s *reviewSession) seedOverlay() {
	s.overlay = make(map[int64]models.DocumentReview)
	for _, student := range s.snapshot.Students {
		for _, doc := range student.Documents {
			if doc.Status != models.DocumentPending || doc.ReviewNote != "" {
				s.overlay[doc.ID] = models.DocumentReview{
					DocumentID: doc.ID,
					Status:     doc.Status,
					Note:       doc.ReviewNote,
				}
			}
		}
	}
}

// DocumentPatch is a partial edit to one document's review entry.
type DocumentPatch struct {
	Status *models.DocumentStatus `json:"status,omitempty"`
	Note   *string                `json:"note,omitempty"`
}

// ReviewSessionView is what the console renders for an open session.
type ReviewSessionView struct {
	SessionID    string                          `json:"session_id"`
	Editable     bool                            `json:"editable"`
	Snapshot     models.RegistrationSnapshot     `json:"snapshot"`
	Effective    map[int64]models.DocumentReview `json:"effective"`
	PendingEdits int                             `json:"pending_edits"`
}

// ReviewService is the document-review reconciler: it owns the open review
// sessions and reconciles local edits against platform snapshots.
type ReviewService struct {
	client registrationClient
	logger *zap.Logger

	mu       sync.Mutex
	sessions map[string]*reviewSession
}

// NewReviewService constructs a ReviewService.
func NewReviewService(client registrationClient, logger *zap.Logger) *ReviewService {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &ReviewService{
		client:   client,
		logger:   logger,
		sessions: make(map[string]*reviewSession),
	}
}

// Open fetches the institution's registration snapshot and starts a review
// session. The session is editable only while the stage permits auditing or
// correction requests; otherwise it opens read-only.
func (s *ReviewService) Open(ctx context.Context, eventID, institutionID int64) (*ReviewSessionView, error) {
	event, err := s.client.GetEvent(ctx, eventID)
	if err != nil {
		return nil, err
	}
	snapshot, err := s.client.GetRegistration(ctx, eventID, institutionID)
	if err != nil {
		return nil, err
	}

	perms := PermissionsFor(event.Stage)
	session := &reviewSession{
		eventID:       eventID,
		institutionID: institutionID,
		editable:      perms.CanAudit || perms.CanRequestCorrection,
		snapshot:      *snapshot,
	}
	session.seedOverlay()

	id := uuid.NewString()
	s.mu.Lock()
	s.sessions[id] = session
	s.mu.Unlock()

	s.logger.Info("review session opened",
		zap.String("session_id", id),
		zap.Int64("event_id", eventID),
		zap.Int64("institution_id", institutionID),
		zap.Bool("editable", session.editable),
	)
	return s.view(id, session), nil
}

// Edit merges a patch into the overlay entry for a document, creating a
// default pending entry when the document has not been touched yet.
func (s *ReviewService) Edit(sessionID string, documentID int64, patch DocumentPatch) (*ReviewSessionView, error) {
	session, err := s.session(sessionID)
	if err != nil {
		return nil, err
	}

	session.mu.Lock()
	defer session.mu.Unlock()

	if !session.editable {
		return nil, appErrors.Clone(appErrors.ErrForbidden, "la revisión está cerrada para la etapa actual")
	}
	if _, ok := session.snapshot.DocumentByID(documentID); !ok {
		return nil, appErrors.Clone(appErrors.ErrNotFound, "documento no encontrado")
	}
	if patch.Status != nil && !patch.Status.Valid() {
		return nil, appErrors.Clone(appErrors.ErrValidation, "estado de revisión no válido")
	}

	entry, ok := session.overlay[documentID]
	if !ok {
		entry = models.DocumentReview{DocumentID: documentID, Status: models.DocumentPending}
	}
	if patch.Status != nil {
		entry.Status = *patch.Status
	}
	if patch.Note != nil {
		entry.Note = *patch.Note
	}
	session.overlay[documentID] = entry

	return s.view(sessionID, session), nil
}

// Submit sends only the overlay entries to the platform. An empty overlay is
// a local validation error and never reaches the network. On success both
// layers are replaced atomically with the returned snapshot.
func (s *ReviewService) Submit(ctx context.Context, sessionID string) (*ReviewSessionView, error) {
	session, err := s.session(sessionID)
	if err != nil {
		return nil, err
	}

	session.mu.Lock()
	if !session.editable {
		session.mu.Unlock()
		return nil, appErrors.Clone(appErrors.ErrForbidden, "la revisión está cerrada para la etapa actual")
	}
	if session.submitting {
		session.mu.Unlock()
		return nil, appErrors.Clone(appErrors.ErrBusy, "ya hay un guardado en curso")
	}
	if len(session.overlay) == 0 {
		session.mu.Unlock()
		return nil, appErrors.Clone(appErrors.ErrValidation, "no hay cambios para guardar")
	}

	reviews := make([]models.DocumentReview, 0, len(session.overlay))
	for _, entry := range session.overlay {
		reviews = append(reviews, entry)
	}
	session.submitting = true
	eventID, institutionID := session.eventID, session.institutionID
	session.mu.Unlock()

	updated, err := s.client.SubmitDocumentReview(ctx, eventID, institutionID, reviews)

	session.mu.Lock()
	defer session.mu.Unlock()
	session.submitting = false
	if err != nil {
		// Local state stays exactly as it was before the attempt.
		return nil, err
	}

	session.snapshot = *updated
	session.seedOverlay()

	s.logger.Info("document review submitted",
		zap.String("session_id", sessionID),
		zap.Int64("event_id", eventID),
		zap.Int64("institution_id", institutionID),
		zap.Int("documents", len(reviews)),
	)
	return s.view(sessionID, session), nil
}

// Close discards the session and its overlay without contacting the platform.
func (s *ReviewService) Close(sessionID string) {
	s.mu.Lock()
	delete(s.sessions, sessionID)
	s.mu.Unlock()
}

func (s *ReviewService) session(id string) (*reviewSession, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	session, ok := s.sessions[id]
	if !ok {
		return nil, appErrors.Clone(appErrors.ErrNotFound, "sesión de revisión no encontrada")
	}
	return session, nil
}

// view renders effective statuses: overlay value when present, snapshot
// value otherwise. Callers must hold no lock or the session lock.
func (s *ReviewService) view(id string, session *reviewSession) *ReviewSessionView {
	effective := make(map[int64]models.DocumentReview)
	for _, student := range session.snapshot.Students {
		for _, doc := range student.Documents {
			if entry, ok := session.overlay[doc.ID]; ok {
				effective[doc.ID] = entry
				continue
			}
			effective[doc.ID] = models.DocumentReview{
				DocumentID: doc.ID,
				Status:     doc.Status,
				Note:       doc.ReviewNote,
			}
		}
	}
	return &ReviewSessionView{
		SessionID:    id,
		Editable:     session.editable,
		Snapshot:     session.snapshot,
		Effective:    effective,
		PendingEdits: len(session.overlay),
	}
}
