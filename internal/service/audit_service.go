package service

import (
	"context"
	"fmt"
	"strings"

	"github.com/go-playground/validator/v10"
	"go.uber.org/zap"

	"github.com/ligasur/arena-console/internal/models"
	"github.com/ligasur/arena-console/internal/platform"
	appErrors "github.com/ligasur/arena-console/pkg/errors"
)

type auditClient interface {
	GetEvent(ctx context.Context, eventID int64) (*models.Event, error)
	ListInstitutions(ctx context.Context, eventID int64) ([]models.InstitutionParticipation, error)
	SubmitAuditDecision(ctx context.Context, eventID, participationID int64, decision platform.Decision, motive string) (*models.InstitutionParticipation, error)
	SubmitBulkAuditDecision(ctx context.Context, eventID int64, ids []int64, decision platform.Decision, motive string) (*platform.BulkDecisionResult, error)
	ExtendRegistration(ctx context.Context, eventID, participationID int64, newDeadline *models.ISODate) error
	NotifyInvitation(ctx context.Context, eventID, participationID int64, kind string) (*platform.NotifyResult, error)
}

// DecisionRequest is a single-institution audit decision.
type DecisionRequest struct {
	Decision string `json:"decision" validate:"required,oneof=approve reject request_correction"`
	Motive   string `json:"motive"`
}

// BulkDecisionRequest applies one decision to the selected institutions.
// Bulk correction requests are not supported.
type BulkDecisionRequest struct {
	InstitutionIDs []int64 `json:"institution_ids" validate:"required,min=1"`
	Decision       string  `json:"decision" validate:"required,oneof=approve reject"`
	Motive         string  `json:"motive"`
}

// ExtensionRequest moves an institution's registration deadline. A nil date
// clears the extension.
type ExtensionRequest struct {
	NewDeadline *models.ISODate `json:"new_deadline"`
}

// BulkDecisionOutcome reports the applied bulk decision.
type BulkDecisionOutcome struct {
	Updated int    `json:"updated"`
	Message string `json:"message"`
}

// InstitutionBoard is the institution list combined with the stage-derived
// permissions and the ids a bulk decision may currently target.
type InstitutionBoard struct {
	Event       models.Event                      `json:"event"`
	Permissions StagePermissions                  `json:"permissions"`
	Rows        []models.InstitutionParticipation `json:"rows"`
	EligibleIDs []int64                           `json:"eligible_ids"`
}

// AuditService is the audit decision engine: it validates decisions locally,
// submits them to the platform, and keeps the list caches honest. Audit
// decisions are strictly optimistic-free; after success the authoritative
// list is always re-fetched rather than patched locally.
type AuditService struct {
	client    auditClient
	cache     *CacheService
	refresh   *RefreshService
	journal   *JournalService
	metrics   *MetricsService
	validator *validator.Validate
	logger    *zap.Logger
	inflight  *inflightGuard
}

// NewAuditService constructs an AuditService.
func NewAuditService(client auditClient, cache *CacheService, refresh *RefreshService, journal *JournalService, metrics *MetricsService, validate *validator.Validate, logger *zap.Logger) *AuditService {
	if validate == nil {
		validate = validator.New()
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &AuditService{
		client:    client,
		cache:     cache,
		refresh:   refresh,
		journal:   journal,
		metrics:   metrics,
		validator: validate,
		logger:    logger,
		inflight:  newInflightGuard(),
	}
}

// Board returns the institution list for an event, annotated with the stage
// permissions and the bulk-eligible ids.
func (s *AuditService) Board(ctx context.Context, eventID int64) (*InstitutionBoard, error) {
	event, err := s.client.GetEvent(ctx, eventID)
	if err != nil {
		return nil, err
	}

	var rows []models.InstitutionParticipation
	if !s.cache.Get(ctx, InstitutionsKey(eventID), &rows) {
		rows, err = s.client.ListInstitutions(ctx, eventID)
		if err != nil {
			return nil, err
		}
	}

	perms := PermissionsFor(event.Stage)
	selection := NewSelection()
	eligible := selection.ComputeEligible(rows, perms)

	return &InstitutionBoard{
		Event:       *event,
		Permissions: perms,
		Rows:        rows,
		EligibleIDs: eligible,
	}, nil
}

// Decide submits a single-institution audit decision.
func (s *AuditService) Decide(ctx context.Context, eventID, participationID int64, req DecisionRequest, actor *Actor) (*models.InstitutionParticipation, error) {
	if err := s.validator.Struct(req); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "invalid decision payload")
	}
	decision := platform.Decision(req.Decision)
	motive := strings.TrimSpace(req.Motive)
	if err := requireMotive(decision, motive); err != nil {
		return nil, err
	}

	event, err := s.client.GetEvent(ctx, eventID)
	if err != nil {
		return nil, err
	}
	if !PermissionsFor(event.Stage).CanAudit {
		return nil, appErrors.Clone(appErrors.ErrStageClosed, "la auditoría no está abierta para este evento")
	}

	key := fmt.Sprintf("decide:%d:%d", eventID, participationID)
	if !s.inflight.acquire(key) {
		return nil, appErrors.Clone(appErrors.ErrBusy, "ya hay una decisión en curso para esta institución")
	}
	defer s.inflight.release(key)

	row, err := s.client.SubmitAuditDecision(ctx, eventID, participationID, decision, motive)
	if s.metrics != nil {
		s.metrics.RecordMutation("audit_decision", err)
	}
	if err != nil {
		return nil, err
	}

	s.logger.Info("audit decision applied",
		zap.Int64("event_id", eventID),
		zap.Int64("participation_id", participationID),
		zap.String("decision", string(decision)),
	)
	s.afterInstitutionMutation(ctx, eventID)
	s.journal.Record(ctx, "institution_audit", &participationID, string(decision),
		fmt.Sprintf("Decisión %s aplicada a la institución %s", decision, row.InstitutionName),
		actor, map[string]interface{}{"event_id": eventID, "motive": motive})

	return row, nil
}

// DecideBulk applies one decision to the currently eligible subset of the
// requested institutions. Rows that stopped being eligible since the caller
// selected them are dropped silently.
func (s *AuditService) DecideBulk(ctx context.Context, eventID int64, req BulkDecisionRequest, actor *Actor) (*BulkDecisionOutcome, error) {
	if err := s.validator.Struct(req); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "invalid bulk decision payload")
	}
	decision := platform.Decision(req.Decision)
	motive := strings.TrimSpace(req.Motive)
	if err := requireMotive(decision, motive); err != nil {
		return nil, err
	}

	event, err := s.client.GetEvent(ctx, eventID)
	if err != nil {
		return nil, err
	}
	perms := PermissionsFor(event.Stage)
	if !perms.CanAudit {
		return nil, appErrors.Clone(appErrors.ErrStageClosed, "la auditoría no está abierta para este evento")
	}

	rows, err := s.client.ListInstitutions(ctx, eventID)
	if err != nil {
		return nil, err
	}
	selection := NewSelection()
	selection.ComputeEligible(rows, perms)
	ids := make([]int64, 0, len(req.InstitutionIDs))
	seen := make(map[int64]struct{})
	for _, id := range req.InstitutionIDs {
		if id <= 0 {
			continue
		}
		if _, dup := seen[id]; dup {
			continue
		}
		seen[id] = struct{}{}
		selection.Toggle(id)
		if selection.IsSelected(id) {
			ids = append(ids, id)
		}
	}
	if len(ids) == 0 {
		return nil, appErrors.Clone(appErrors.ErrValidation, "debes seleccionar al menos una institución válida")
	}

	key := fmt.Sprintf("decide-bulk:%d", eventID)
	if !s.inflight.acquire(key) {
		return nil, appErrors.Clone(appErrors.ErrBusy, "ya hay una decisión masiva en curso")
	}
	defer s.inflight.release(key)

	result, err := s.client.SubmitBulkAuditDecision(ctx, eventID, ids, decision, motive)
	if s.metrics != nil {
		s.metrics.RecordMutation("audit_bulk_decision", err)
	}
	if err != nil {
		return nil, err
	}

	s.logger.Info("bulk audit decision applied",
		zap.Int64("event_id", eventID),
		zap.String("decision", string(decision)),
		zap.Int("updated", result.Updated),
	)
	s.afterInstitutionMutation(ctx, eventID)
	s.journal.Record(ctx, "institution_audit", nil, "bulk_"+string(decision),
		fmt.Sprintf("Decisión masiva %s aplicada a %d instituciones", decision, result.Updated),
		actor, map[string]interface{}{"event_id": eventID, "institution_ids": ids, "motive": motive})

	return &BulkDecisionOutcome{
		Updated: result.Updated,
		Message: fmt.Sprintf("Se actualizaron %d instituciones.", result.Updated),
	}, nil
}

// ExtendRegistration moves an institution's registration deadline. The new
// deadline is bounded by the event's audit end date; violations are local
// validation errors and never reach the platform.
func (s *AuditService) ExtendRegistration(ctx context.Context, eventID, participationID int64, req ExtensionRequest, actor *Actor) error {
	event, err := s.client.GetEvent(ctx, eventID)
	if err != nil {
		return err
	}
	if !PermissionsFor(event.Stage).CanExtendRegistration {
		return appErrors.Clone(appErrors.ErrStageClosed, "la prórroga solo está disponible durante la auditoría")
	}
	if req.NewDeadline != nil {
		deadline := *req.NewDeadline
		if _, err := deadline.Time(); err != nil {
			return appErrors.Clone(appErrors.ErrValidation, "fecha de prórroga no válida")
		}
		if !event.AuditEnd.IsZero() && deadline.After(event.AuditEnd) {
			return appErrors.Clone(appErrors.ErrValidation, "la prórroga no puede superar el fin de la auditoría")
		}
	}

	key := fmt.Sprintf("extend:%d:%d", eventID, participationID)
	if !s.inflight.acquire(key) {
		return appErrors.Clone(appErrors.ErrBusy, "ya hay una prórroga en curso para esta institución")
	}
	defer s.inflight.release(key)

	err = s.client.ExtendRegistration(ctx, eventID, participationID, req.NewDeadline)
	if s.metrics != nil {
		s.metrics.RecordMutation("registration_extension", err)
	}
	if err != nil {
		return err
	}

	s.afterInstitutionMutation(ctx, eventID)
	description := "Prórroga de inscripción retirada"
	if req.NewDeadline != nil {
		description = fmt.Sprintf("Inscripción extendida hasta %s", *req.NewDeadline)
	}
	s.journal.Record(ctx, "institution_registration", &participationID, "extension", description,
		actor, map[string]interface{}{"event_id": eventID})
	return nil
}

// Notify asks the platform to resend an invitation or reminder.
func (s *AuditService) Notify(ctx context.Context, eventID, participationID int64, kind string, actor *Actor) (*platform.NotifyResult, error) {
	kind = strings.ToLower(strings.TrimSpace(kind))
	if kind == "" {
		kind = "reminder"
	}
	if kind != "invitation" && kind != "reminder" {
		return nil, appErrors.Clone(appErrors.ErrValidation, "tipo de notificación inválido")
	}

	result, err := s.client.NotifyInvitation(ctx, eventID, participationID, kind)
	if err != nil {
		return nil, err
	}
	s.journal.Record(ctx, "institution_invitation", &participationID, "notify",
		fmt.Sprintf("Notificación %s enviada", kind),
		actor, map[string]interface{}{"event_id": eventID, "sent": result.Sent})
	return result, nil
}

// afterInstitutionMutation drops the cached list and schedules a background
// re-fetch so the next read sees authoritative data.
func (s *AuditService) afterInstitutionMutation(ctx context.Context, eventID int64) {
	s.cache.Invalidate(ctx, InstitutionsKey(eventID))
	if s.refresh != nil {
		s.refresh.RefreshInstitutions(eventID)
	}
}

// requireMotive enforces the motive rule: reject and request_correction need
// a non-empty trimmed motive; approve accepts and ignores one.
func requireMotive(decision platform.Decision, motive string) error {
	if decision == platform.DecisionApprove {
		return nil
	}
	if motive == "" {
		return appErrors.Clone(appErrors.ErrValidation, "debes indicar el motivo de la decisión")
	}
	return nil
}
