package service

import (
	"context"
	"encoding/json"

	"go.uber.org/zap"

	"github.com/ligasur/arena-console/internal/models"
	appErrors "github.com/ligasur/arena-console/pkg/errors"
)

type journalRepository interface {
	Create(ctx context.Context, entry *models.JournalEntry) error
	List(ctx context.Context, filter models.JournalFilter) ([]models.JournalEntry, int, error)
}

// Actor identifies the operator performing a console action.
type Actor struct {
	ID   int64
	Name string
}

// JournalService records operator actions. Recording is best-effort: a
// journal failure must never fail the mutation it describes.
type JournalService struct {
	repo    journalRepository
	logger  *zap.Logger
	enabled bool
}

// NewJournalService constructs a JournalService.
func NewJournalService(repo journalRepository, logger *zap.Logger, enabled bool) *JournalService {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &JournalService{repo: repo, logger: logger, enabled: enabled}
}

// Record writes one journal entry.
func (s *JournalService) Record(ctx context.Context, entity string, entityID *int64, action, description string, actor *Actor, metadata map[string]interface{}) {
	if s == nil || !s.enabled || s.repo == nil {
		return
	}
	entry := &models.JournalEntry{
		Entity:      entity,
		EntityID:    entityID,
		Action:      action,
		Description: description,
		Severity:    "info",
	}
	if actor != nil {
		id := actor.ID
		entry.ActorID = &id
		entry.ActorName = actor.Name
	}
	if len(metadata) > 0 {
		if raw, err := json.Marshal(metadata); err == nil {
			entry.Metadata = string(raw)
		}
	}
	if err := s.repo.Create(ctx, entry); err != nil {
		s.logger.Warn("journal write failed",
			zap.String("entity", entity),
			zap.String("action", action),
			zap.Error(err),
		)
	}
}

// List returns journal entries with pagination metadata.
func (s *JournalService) List(ctx context.Context, filter models.JournalFilter) ([]models.JournalEntry, *models.Pagination, error) {
	if s == nil || !s.enabled || s.repo == nil {
		return nil, nil, appErrors.Clone(appErrors.ErrNotFound, "el registro de actividad está deshabilitado")
	}
	entries, total, err := s.repo.List(ctx, filter)
	if err != nil {
		return nil, nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to list journal entries")
	}
	page := filter.Page
	if page < 1 {
		page = 1
	}
	size := filter.PageSize
	if size <= 0 {
		size = 20
	}
	return entries, &models.Pagination{Page: page, PageSize: size, TotalCount: total}, nil
}
