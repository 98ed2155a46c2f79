package models

import "time"

// JournalEntry records one operator action taken through the console.
type JournalEntry struct {
	ID          int64     `db:"id" json:"id"`
	Entity      string    `db:"entity" json:"entity"`
	EntityID    *int64    `db:"entity_id" json:"entity_id,omitempty"`
	Action      string    `db:"action" json:"action"`
	Description string    `db:"description" json:"description"`
	Severity    string    `db:"severity" json:"severity"`
	ActorID     *int64    `db:"actor_id" json:"actor_id,omitempty"`
	ActorName   string    `db:"actor_name" json:"actor_name,omitempty"`
	Metadata    string    `db:"metadata" json:"metadata,omitempty"`
	RecordedAt  time.Time `db:"recorded_at" json:"recorded_at"`
}

// JournalFilter encapsulates allowed search parameters for listing entries.
type JournalFilter struct {
	Search     string
	Entities   []string
	Severities []string
	Order      string
	Page       int
	PageSize   int
}
