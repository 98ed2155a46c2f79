package repository

import (
	"context"
	"testing"
	"time"

	sqlmock "github.com/DATA-DOG/go-sqlmock"
	"github.com/jmoiron/sqlx"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ligasur/arena-console/internal/models"
)

func newJournalRepoMock(t *testing.T) (*JournalRepository, sqlmock.Sqlmock) {
	t.Helper()
	db, mock, err := sqlmock.New(sqlmock.QueryMatcherOption(sqlmock.QueryMatcherRegexp))
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() }) //nolint:errcheck
	return NewJournalRepository(sqlx.NewDb(db, "postgres")), mock
}

func TestJournalRepositoryCreate(t *testing.T) {
	repo, mock := newJournalRepoMock(t)

	recordedAt := time.Date(2026, 4, 1, 10, 0, 0, 0, time.UTC)
	actorID := int64(12)
	entityID := int64(4)

	mock.ExpectQuery(`INSERT INTO journal_entries`).
		WithArgs("institution_audit", &entityID, "approve", "Decisión aplicada", "info", &actorID, "Marta", `{"event_id":5}`).
		WillReturnRows(sqlmock.NewRows([]string{"id", "recorded_at"}).AddRow(int64(77), recordedAt))

	entry := &models.JournalEntry{
		Entity:      "institution_audit",
		EntityID:    &entityID,
		Action:      "approve",
		Description: "Decisión aplicada",
		Severity:    "info",
		ActorID:     &actorID,
		ActorName:   "Marta",
		Metadata:    `{"event_id":5}`,
	}
	require.NoError(t, repo.Create(context.Background(), entry))
	assert.Equal(t, int64(77), entry.ID)
	assert.Equal(t, recordedAt, entry.RecordedAt)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestJournalRepositoryListWithFilters(t *testing.T) {
	repo, mock := newJournalRepoMock(t)

	mock.ExpectQuery(`SELECT COUNT\(\*\) FROM journal_entries`).
		WithArgs("%marta%", "schedule").
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(1))

	rows := sqlmock.NewRows([]string{"id", "entity", "entity_id", "action", "description", "severity", "actor_id", "actor_name", "metadata", "recorded_at"}).
		AddRow(int64(1), "schedule", nil, "generate", "Calendario generado", "info", nil, "Marta", "", time.Now())
	mock.ExpectQuery(`SELECT id, entity, entity_id, action`).
		WithArgs("%marta%", "schedule", 20, 0).
		WillReturnRows(rows)

	entries, total, err := repo.List(context.Background(), models.JournalFilter{
		Search:   "Marta",
		Entities: []string{"schedule"},
	})
	require.NoError(t, err)
	assert.Equal(t, 1, total)
	require.Len(t, entries, 1)
	assert.Equal(t, "generate", entries[0].Action)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestJournalRepositoryListPaginates(t *testing.T) {
	repo, mock := newJournalRepoMock(t)

	mock.ExpectQuery(`SELECT COUNT\(\*\) FROM journal_entries`).
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(45))
	mock.ExpectQuery(`SELECT id, entity, entity_id, action`).
		WithArgs(10, 20).
		WillReturnRows(sqlmock.NewRows([]string{"id", "entity", "entity_id", "action", "description", "severity", "actor_id", "actor_name", "metadata", "recorded_at"}))

	_, total, err := repo.List(context.Background(), models.JournalFilter{Page: 3, PageSize: 10, Order: "asc"})
	require.NoError(t, err)
	assert.Equal(t, 45, total)
	assert.NoError(t, mock.ExpectationsWereMet())
}
