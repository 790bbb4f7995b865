package statemachine

import (
	"fmt"

	"restaurant-api/models"
)

// Rule decides which transitions a role may perform. Exactly one of Edges or
// Allow is set: Edges is an explicit table from current status to the permitted
// next statuses, Allow is a predicate over (from, to).
type Rule struct {
	Edges map[models.OrderStatus][]models.OrderStatus
	Allow func(from, to models.OrderStatus) bool
}

func (r Rule) permits(from, to models.OrderStatus) bool {
	if r.Allow != nil {
		return r.Allow(from, to)
	}
	for _, next := range r.Edges[from] {
		if next == to {
			return true
		}
	}
	return false
}

// rules is the authoritative state machine definition, keyed by role
var rules = map[models.UserRole]Rule{
	// Kitchen moves orders forward only
	models.RoleCook: {Edges: map[models.OrderStatus][]models.OrderStatus{
		models.StatusPending:    {models.StatusInProgress},
		models.StatusInProgress: {models.StatusCompleted},
	}},
	// Floor staff can send an order to the kitchen or cancel it
	models.RoleWaiter: {Allow: func(from, to models.OrderStatus) bool {
		return to == models.StatusCancelled ||
			(from == models.StatusPending && to == models.StatusInProgress)
	}},
	// Operator escape hatch
	models.RoleAdmin: {Allow: func(_, _ models.OrderStatus) bool { return true }},
}

// TransitionError is returned when a role may not perform a transition.
type TransitionError struct {
	From models.OrderStatus
	To   models.OrderStatus
	Role models.UserRole
}

func (e *TransitionError) Error() string {
	return fmt.Sprintf("transition from %q to %q is not allowed for role %s", e.From, e.To, e.Role)
}

// CanTransition checks if a given role can move an order from one state to another
func CanTransition(from, to models.OrderStatus, role models.UserRole) error {
	rule, ok := rules[role]
	if !ok || !from.Valid() || !to.Valid() || !rule.permits(from, to) {
		return &TransitionError{From: from, To: to, Role: role}
	}
	return nil
}

// ValidTransitionsFrom returns the states a role may move an order to from status
func ValidTransitionsFrom(status models.OrderStatus, role models.UserRole) []models.OrderStatus {
	var nexts []models.OrderStatus
	for _, to := range models.OrderStatuses {
		if to == status {
			continue
		}
		if CanTransition(status, to, role) == nil {
			nexts = append(nexts, to)
		}
	}
	return nexts
}

// Transition is one permitted edge, used for documentation.
type Transition struct {
	From models.OrderStatus `json:"from"`
	To   models.OrderStatus `json:"to"`
	Role models.UserRole    `json:"role"`
}

// GetAllTransitions returns every permitted edge between distinct states,
// grouped by role in models.Roles order.
func GetAllTransitions() []Transition {
	var out []Transition
	for _, role := range models.Roles {
		for _, from := range models.OrderStatuses {
			for _, to := range ValidTransitionsFrom(from, role) {
				out = append(out, Transition{From: from, To: to, Role: role})
			}
		}
	}
	return out
}

// IsTerminal reports whether no forward workflow leaves status.
func IsTerminal(status models.OrderStatus) bool {
	return status == models.StatusCompleted || status == models.StatusCancelled
}
