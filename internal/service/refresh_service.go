package service

import (
	"context"
	"fmt"
	"time"

	"go.uber.org/zap"

	"github.com/ligasur/arena-console/internal/models"
	"github.com/ligasur/arena-console/pkg/config"
	"github.com/ligasur/arena-console/pkg/jobs"
)

const (
	refreshInstitutions = "institutions"
	refreshSchedule     = "schedule"
)

type refreshClient interface {
	ListInstitutions(ctx context.Context, eventID int64) ([]models.InstitutionParticipation, error)
	GetSchedule(ctx context.Context, eventID int64) (*models.Schedule, error)
}

// RefreshService re-primes cached lists in the background after a mutation.
// Mutations themselves never wait on it: they invalidate the cache and
// return; the queue re-fetches the authoritative list shortly after.
type RefreshService struct {
	queue  *jobs.Queue
	client refreshClient
	cache  *CacheService
	logger *zap.Logger
}

// NewRefreshService constructs the refresh queue around the platform client.
func NewRefreshService(client refreshClient, cache *CacheService, queueCfg config.RefreshConfig, logger *zap.Logger) *RefreshService {
	if logger == nil {
		logger = zap.NewNop()
	}
	s := &RefreshService{client: client, cache: cache, logger: logger}
	s.queue = jobs.NewQueue("snapshot-refresh", s.handle, jobs.QueueConfig{
		Workers:    queueCfg.Workers,
		BufferSize: queueCfg.BufferSize,
		MaxRetries: queueCfg.MaxRetries,
		RetryDelay: queueCfg.RetryDelay,
		Logger:     logger,
	})
	return s
}

// Start launches the queue workers.
func (s *RefreshService) Start(ctx context.Context) {
	s.queue.Start(ctx)
}

// Stop drains the queue workers.
func (s *RefreshService) Stop() {
	s.queue.Stop()
}

// RefreshInstitutions schedules a background re-fetch of an event's
// institution list.
func (s *RefreshService) RefreshInstitutions(eventID int64) {
	s.enqueue(refreshInstitutions, eventID)
}

// RefreshSchedule schedules a background re-fetch of an event's schedule.
func (s *RefreshService) RefreshSchedule(eventID int64) {
	s.enqueue(refreshSchedule, eventID)
}

func (s *RefreshService) enqueue(kind string, eventID int64) {
	if !s.cache.Enabled() {
		return
	}
	task := jobs.Task{
		ID:      fmt.Sprintf("%s-%d-%d", kind, eventID, time.Now().UnixNano()),
		Kind:    kind,
		EventID: eventID,
	}
	if err := s.queue.Enqueue(task); err != nil {
		s.logger.Warn("refresh enqueue failed", zap.String("kind", kind), zap.Int64("event_id", eventID), zap.Error(err))
	}
}

func (s *RefreshService) handle(ctx context.Context, task jobs.Task) error {
	switch task.Kind {
	case refreshInstitutions:
		rows, err := s.client.ListInstitutions(ctx, task.EventID)
		if err != nil {
			return err
		}
		s.cache.Set(ctx, InstitutionsKey(task.EventID), rows, s.cache.InstitutionTTL())
	case refreshSchedule:
		schedule, err := s.client.GetSchedule(ctx, task.EventID)
		if err != nil {
			return err
		}
		s.cache.Set(ctx, ScheduleKey(task.EventID), schedule, s.cache.ScheduleTTL())
	default:
		s.logger.Warn("unknown refresh kind", zap.String("kind", task.Kind))
	}
	return nil
}
