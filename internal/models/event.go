package models

// Stage is an event's lifecycle phase. Stages are strictly ordered and
// advanced out of band by platform administrators; the console never derives
// one locally.
type Stage string

const (
	StageDraft        Stage = "draft"
	StageRegistration Stage = "registration"
	StageAudit        Stage = "audit"
	StageChampionship Stage = "championship"
	StageFinished     Stage = "finished"
	StageArchived     Stage = "archived"
)

var stageOrder = map[Stage]int{
	StageDraft:        0,
	StageRegistration: 1,
	StageAudit:        2,
	StageChampionship: 3,
	StageFinished:     4,
	StageArchived:     5,
}

// Known reports whether the stage is one of the lifecycle values.
func (s Stage) Known() bool {
	_, ok := stageOrder[s]
	return ok
}

// Before reports whether s precedes other in the lifecycle.
func (s Stage) Before(other Stage) bool {
	a, okA := stageOrder[s]
	b, okB := stageOrder[other]
	return okA && okB && a < b
}

// Event is the platform's read model of a sporting event.
type Event struct {
	ID                int64   `json:"id"`
	Title             string  `json:"title"`
	Stage             Stage   `json:"stage"`
	Sport             string  `json:"sport"`
	RegistrationStart ISODate `json:"registration_start,omitempty"`
	RegistrationEnd   ISODate `json:"registration_end,omitempty"`
	AuditStart        ISODate `json:"audit_start,omitempty"`
	AuditEnd          ISODate `json:"audit_end,omitempty"`
	ChampionshipStart ISODate `json:"championship_start,omitempty"`
	ChampionshipEnd   ISODate `json:"championship_end,omitempty"`
}
