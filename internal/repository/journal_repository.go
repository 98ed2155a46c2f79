package repository

import (
	"context"
	"fmt"
	"strings"

	"github.com/jmoiron/sqlx"

	"github.com/ligasur/arena-console/internal/models"
)

// JournalRepository persists the operator action journal. This is the only
// store the console owns; everything else lives behind the platform API.
type JournalRepository struct {
	db *sqlx.DB
}

// NewJournalRepository constructs a JournalRepository.
func NewJournalRepository(db *sqlx.DB) *JournalRepository {
	return &JournalRepository{db: db}
}

// Create inserts one journal entry.
func (r *JournalRepository) Create(ctx context.Context, entry *models.JournalEntry) error {
	query := `INSERT INTO journal_entries
		(entity, entity_id, action, description, severity, actor_id, actor_name, metadata, recorded_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, NOW())
		RETURNING id, recorded_at`
	row := r.db.QueryRowxContext(ctx, query,
		entry.Entity,
		entry.EntityID,
		entry.Action,
		entry.Description,
		entry.Severity,
		entry.ActorID,
		entry.ActorName,
		entry.Metadata,
	)
	return row.Scan(&entry.ID, &entry.RecordedAt)
}

// List returns journal entries matching the filter, newest first unless the
// filter asks for ascending order.
func (r *JournalRepository) List(ctx context.Context, filter models.JournalFilter) ([]models.JournalEntry, int, error) {
	conditions := []string{"1=1"}
	args := []interface{}{}

	if filter.Search != "" {
		conditions = append(conditions, fmt.Sprintf("(LOWER(description) LIKE $%d OR LOWER(actor_name) LIKE $%d)", len(args)+1, len(args)+1))
		args = append(args, "%"+strings.ToLower(filter.Search)+"%")
	}
	if len(filter.Entities) > 0 {
		placeholders := make([]string, len(filter.Entities))
		for i, entity := range filter.Entities {
			placeholders[i] = fmt.Sprintf("$%d", len(args)+1)
			args = append(args, entity)
		}
		conditions = append(conditions, fmt.Sprintf("entity IN (%s)", strings.Join(placeholders, ", ")))
	}
	if len(filter.Severities) > 0 {
		placeholders := make([]string, len(filter.Severities))
		for i, severity := range filter.Severities {
			placeholders[i] = fmt.Sprintf("$%d", len(args)+1)
			args = append(args, severity)
		}
		conditions = append(conditions, fmt.Sprintf("severity IN (%s)", strings.Join(placeholders, ", ")))
	}

	where := strings.Join(conditions, " AND ")

	var total int
	countQuery := fmt.Sprintf("SELECT COUNT(*) FROM journal_entries WHERE %s", where)
	if err := r.db.GetContext(ctx, &total, countQuery, args...); err != nil {
		return nil, 0, err
	}

	order := "DESC"
	if strings.EqualFold(filter.Order, "asc") {
		order = "ASC"
	}

	page := filter.Page
	if page < 1 {
		page = 1
	}
	size := filter.PageSize
	if size <= 0 {
		size = 20
	}

	query := fmt.Sprintf(`SELECT id, entity, entity_id, action, description, severity, actor_id, actor_name, metadata, recorded_at
		FROM journal_entries WHERE %s ORDER BY recorded_at %s, id %s LIMIT $%d OFFSET $%d`,
		where, order, order, len(args)+1, len(args)+2)
	args = append(args, size, (page-1)*size)

	var entries []models.JournalEntry
	if err := r.db.SelectContext(ctx, &entries, query, args...); err != nil {
		return nil, 0, err
	}
	return entries, total, nil
}
