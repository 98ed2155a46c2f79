package service

import "github.com/ligasur/arena-console/internal/models"

// Selection tracks the rows chosen for a bulk audit decision. It is a plain
// value type with pure transitions so the invariants are testable without
// any transport: selected is always a subset of the eligible set, and stale
// entries are dropped silently whenever eligibility is recomputed.
type Selection struct {
	eligible map[int64]struct{}
	selected map[int64]struct{}
}

// NewSelection returns an empty selection.
func NewSelection() *Selection {
	return &Selection{
		eligible: make(map[int64]struct{}),
		selected: make(map[int64]struct{}),
	}
}

// ComputeEligible derives the rows a bulk decision may target: invitation
// accepted, auditing open for the stage, and an addressable identifier
// (participation id, institution id as fallback). It then reconciles the
// current selection against the new eligible set.
func (s *Selection) ComputeEligible(rows []models.InstitutionParticipation, perms StagePermissions) []int64 {
	eligible := make(map[int64]struct{})
	var ids []int64
	if perms.CanAudit {
		for _, row := range rows {
			if row.InvitationStatus != models.InvitationAccepted {
				continue
			}
			id := row.RowID()
			if id <= 0 {
				continue
			}
			if _, seen := eligible[id]; seen {
				continue
			}
			eligible[id] = struct{}{}
			ids = append(ids, id)
		}
	}
	s.eligible = eligible
	s.reconcile()
	return ids
}

// reconcile drops selections that fell out of the eligible set. Never an
// error: rows that became ineligible simply disappear from the selection.
func (s *Selection) reconcile() {
	for id := range s.selected {
		if _, ok := s.eligible[id]; !ok {
			delete(s.selected, id)
		}
	}
}

// Toggle flips membership for an id. No-op when the id is not eligible.
func (s *Selection) Toggle(id int64) {
	if _, ok := s.eligible[id]; !ok {
		return
	}
	if _, ok := s.selected[id]; ok {
		delete(s.selected, id)
	} else {
		s.selected[id] = struct{}{}
	}
}

// SelectAll selects every eligible row, or clears the selection.
func (s *Selection) SelectAll(checked bool) {
	s.selected = make(map[int64]struct{})
	if !checked {
		return
	}
	for id := range s.eligible {
		s.selected[id] = struct{}{}
	}
}

// Clear empties the selection without touching eligibility.
func (s *Selection) Clear() {
	s.selected = make(map[int64]struct{})
}

// IsSelected reports membership.
func (s *Selection) IsSelected(id int64) bool {
	_, ok := s.selected[id]
	return ok
}

// IsAllSelected is true iff the eligible set is non-empty and fully selected.
func (s *Selection) IsAllSelected() bool {
	if len(s.eligible) == 0 {
		return false
	}
	for id := range s.eligible {
		if _, ok := s.selected[id]; !ok {
			return false
		}
	}
	return true
}

// Selected returns the selected ids. Order is unspecified.
func (s *Selection) Selected() []int64 {
	ids := make([]int64, 0, len(s.selected))
	for id := range s.selected {
		ids = append(ids, id)
	}
	return ids
}

// EligibleCount returns the size of the eligible set.
func (s *Selection) EligibleCount() int {
	return len(s.eligible)
}
