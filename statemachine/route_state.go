package statemachine

import (
	"errors"
	"strings"

	"delivery-management-api/models"
)

// Transition defines a valid route status change and its side effect
type Transition struct {
	From   models.RouteStatus
	To     models.RouteStatus
	Effect string
}

// validTransitions is the authoritative route lifecycle definition.
// Re-saving a route with its current status is always allowed.
var validTransitions = []Transition{
	{From: models.RoutePending, To: models.RouteInProgress, Effect: "order dispatched"},
	{From: models.RoutePending, To: models.RouteCompleted, Effect: "driver completedOrders +1, order delivered"},
	{From: models.RouteInProgress, To: models.RouteCompleted, Effect: "driver completedOrders +1, order delivered"},
}

// initialStatuses are the statuses a route may be created with
var initialStatuses = []models.RouteStatus{models.RoutePending, models.RouteInProgress}

type transitionKey struct {
	From models.RouteStatus
	To   models.RouteStatus
}

var transitionMap = func() map[transitionKey]bool {
	m := make(map[transitionKey]bool)
	for _, t := range validTransitions {
		m[transitionKey{t.From, t.To}] = true
	}
	return m
}()

// ValidTransitionsFrom returns all valid next states from a given state
func ValidTransitionsFrom(status models.RouteStatus) []models.RouteStatus {
	var nexts []models.RouteStatus
	for _, t := range validTransitions {
		if t.From == status {
			nexts = append(nexts, t.To)
		}
	}
	return nexts
}

// CanCreateWith reports whether a new route may start in status
func CanCreateWith(status models.RouteStatus) bool {
	for _, s := range initialStatuses {
		if s == status {
			return true
		}
	}
	return false
}

// CanTransition checks if a route may move from one state to another
func CanTransition(from, to models.RouteStatus) error {
	if from == to || transitionMap[transitionKey{From: from, To: to}] {
		return nil
	}
	return errors.New(
		"invalid route transition: " + string(from) + " → " + string(to) +
			". Valid transitions from " + string(from) + " are: " + describeValidFrom(from),
	)
}

func describeValidFrom(status models.RouteStatus) string {
	nexts := ValidTransitionsFrom(status)
	if len(nexts) == 0 {
		return "none (terminal state)"
	}
	names := make([]string, len(nexts))
	for i, s := range nexts {
		names[i] = string(s)
	}
	return strings.Join(names, ", ")
}

// GetAllTransitions returns the full state machine for documentation
func GetAllTransitions() []Transition {
	return validTransitions
}

// InitialStatuses returns the statuses accepted at route creation
func InitialStatuses() []models.RouteStatus {
	return initialStatuses
}
