package statemachine

import (
	"table-service-api/models"
)

// Transition defines a valid forward step in the fulfillment pipeline
type Transition struct {
	From models.ItemStatus
	To   models.ItemStatus
}

// validTransitions is the authoritative state machine definition.
// Kitchen drives WAITING→COOKING→DONE, the runner drives DONE→SERVED.
var validTransitions = []Transition{
	{From: models.ItemWaiting, To: models.ItemCooking},
	{From: models.ItemCooking, To: models.ItemDone},
	{From: models.ItemDone, To: models.ItemServed},
}

// rank orders the statuses so backward and skipping moves can be told
// apart from idempotent repeats
var rank = map[models.ItemStatus]int{
	models.ItemWaiting: 0,
	models.ItemCooking: 1,
	models.ItemDone:    2,
	models.ItemServed:  3,
}

type transitionKey struct {
	From models.ItemStatus
	To   models.ItemStatus
}

// Build a lookup map for O(1) validation
var transitionMap = func() map[transitionKey]bool {
	m := make(map[transitionKey]bool)
	for _, t := range validTransitions {
		m[transitionKey{t.From, t.To}] = true
	}
	return m
}()

// reachable holds every status some transition targets. A request for
// one of these below the current rank is a repeat of a step the item
// already took, not a backward move.
var reachable = func() map[models.ItemStatus]bool {
	m := make(map[models.ItemStatus]bool)
	for _, t := range validTransitions {
		m[t.To] = true
	}
	return m
}()

// Outcome of checking a requested status change
type Outcome int

const (
	// Apply: the step is a real forward transition and should be written
	Apply Outcome = iota
	// Noop: the item already reached (or passed) the requested status.
	// Concurrent staff terminals repeating a transition land here; the
	// repeat succeeds without touching the row.
	Noop
)

// Known reports whether the status is part of the pipeline at all.
func Known(status models.ItemStatus) bool {
	_, ok := rank[status]
	return ok
}

// Step decides what a requested transition means given the current
// status. Stage-skipping comes back as an InvalidTransitionError; a
// request for a status the item already holds or has already passed is
// a Noop rather than an error, so two terminals racing the same ticket
// both succeed without ever writing backward.
func Step(from, to models.ItemStatus) (Outcome, error) {
	if !Known(to) {
		return Noop, &InvalidTransitionError{From: from, To: to}
	}
	if rank[to] == rank[from] {
		return Noop, nil
	}
	if rank[to] < rank[from] {
		if reachable[to] {
			return Noop, nil
		}
		return Noop, &InvalidTransitionError{From: from, To: to}
	}
	if transitionMap[transitionKey{From: from, To: to}] {
		return Apply, nil
	}
	return Noop, &InvalidTransitionError{From: from, To: to}
}

// ValidTransitionsFrom returns all valid next states from a given state
func ValidTransitionsFrom(status models.ItemStatus) []models.ItemStatus {
	var nexts []models.ItemStatus
	for _, t := range validTransitions {
		if t.From == status {
			nexts = append(nexts, t.To)
		}
	}
	return nexts
}

// GetAllTransitions returns the full state machine for documentation
func GetAllTransitions() []Transition {
	return validTransitions
}

// InvalidTransitionError carries enough detail for the caller to show
// what would have been allowed instead
type InvalidTransitionError struct {
	From models.ItemStatus
	To   models.ItemStatus
}

func (e *InvalidTransitionError) Error() string {
	return "invalid transition: " + string(e.From) + " -> " + string(e.To) +
		". Valid transitions from " + string(e.From) + " are: " + describeValidFrom(e.From)
}

func describeValidFrom(status models.ItemStatus) string {
	nexts := ValidTransitionsFrom(status)
	if len(nexts) == 0 {
		return "none (terminal state)"
	}
	result := ""
	for i, s := range nexts {
		if i > 0 {
			result += ", "
		}
		result += string(s)
	}
	return result
}
