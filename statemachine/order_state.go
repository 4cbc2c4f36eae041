package statemachine

import (
	"errors"
	"fmt"
	"strings"

	"food-ordering-api/models"
)

// Actor is who requests a status change
type Actor string

const (
	ActorOwner    Actor = "owner"
	ActorCustomer Actor = "customer"
)

var (
	ErrInvalidTarget = errors.New("invalid target status")
	ErrTerminal      = errors.New("order is already in a terminal state")
)

// Transition defines a target status an actor may set
type Transition struct {
	To    models.OrderStatus   `json:"to"`
	Actor Actor                `json:"actor"`
	From  []models.OrderStatus `json:"from"`
}

// transitions is the authoritative definition. Owners move an order to any of
// their targets from any non-terminal state; customers may only cancel an
// order that has not been picked up by the kitchen yet.
var transitions = []Transition{
	{To: models.StatusPreparing, Actor: ActorOwner, From: ownerSources},
	{To: models.StatusReady, Actor: ActorOwner, From: ownerSources},
	{To: models.StatusCompleted, Actor: ActorOwner, From: ownerSources},
	{To: models.StatusRejected, Actor: ActorOwner, From: ownerSources},
	{To: models.StatusCancelled, Actor: ActorCustomer, From: []models.OrderStatus{models.StatusPlaced}},
}

var ownerSources = []models.OrderStatus{models.StatusPlaced, models.StatusPreparing, models.StatusReady}

var terminal = map[models.OrderStatus]bool{
	models.StatusCompleted: true,
	models.StatusRejected:  true,
	models.StatusCancelled: true,
}

// IsTerminal reports whether no further transition is possible
func IsTerminal(status models.OrderStatus) bool {
	return terminal[status]
}

// TargetsFor returns the statuses actor may request
func TargetsFor(actor Actor) []models.OrderStatus {
	var out []models.OrderStatus
	for _, t := range transitions {
		if t.Actor == actor {
			out = append(out, t.To)
		}
	}
	return out
}

// CanTransition checks if actor can move an order from one state to another.
// An unknown target wraps ErrInvalidTarget; a move out of a terminal or
// otherwise disallowed state wraps ErrTerminal.
func CanTransition(from, to models.OrderStatus, actor Actor) error {
	var rule *Transition
	for i := range transitions {
		if transitions[i].Actor == actor && transitions[i].To == to {
			rule = &transitions[i]
			break
		}
	}
	if rule == nil {
		return fmt.Errorf("%w '%s': allowed values are %s", ErrInvalidTarget, to, join(TargetsFor(actor)))
	}
	for _, s := range rule.From {
		if s == from {
			return nil
		}
	}
	return fmt.Errorf("%w: cannot move from '%s' to '%s'", ErrTerminal, from, to)
}

// GetAllTransitions returns the full state machine for documentation
func GetAllTransitions() []Transition {
	return transitions
}

func join(statuses []models.OrderStatus) string {
	parts := make([]string, len(statuses))
	for i, s := range statuses {
		parts[i] = string(s)
	}
	return strings.Join(parts, ", ")
}
