// Package planning implements the business rules of the strategic
// planning domain: account management, plan membership and invitations,
// the objective/goal/activity/indicator hierarchy with its progress
// counters, operational plans and SWOT/CAME card analyses.
//
// The service owns every cross-document rule. It keeps parent id lists
// and counters in sync, cascades deletes down the hierarchy and cleans
// up references when a plan disappears. Handlers stay thin: they parse,
// call one service method and write the result.
package planning

import (
	"strategic-planning-backend/pkg/database"
)

// Service wires the domain rules to a document store.
type Service struct {
	store database.Store
}

// NewService returns a Service backed by the given store.
func NewService(store database.Store) *Service {
	return &Service{store: store}
}

// attachID adds id to list if absent and reports whether list changed.
func attachID(list []string, id string) ([]string, bool) {
	for _, v := range list {
		if v == id {
			return list, false
		}
	}
	return append(list, id), true
}

// detachID removes id from list and reports whether list changed.
func detachID(list []string, id string) ([]string, bool) {
	for i, v := range list {
		if v == id {
			return append(list[:i], list[i+1:]...), true
		}
	}
	return list, false
}
