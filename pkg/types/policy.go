package types

import (
	"fmt"
)

// ErrTransitionNotAllowed reports that the target status is not reachable from
// the current status according to the configured policy.
var ErrTransitionNotAllowed = fmt.Errorf("%w: status transition not allowed", ErrValidation)

// TransitionPolicy validates user status transitions.
type TransitionPolicy interface {
	Validate(current, target UserStatus) error
	AllowedTargets(current UserStatus) []UserStatus
}

// StaticTransitionPolicy enforces a fixed transition graph.
type StaticTransitionPolicy struct {
	graph map[UserStatus]map[UserStatus]struct{}
}

// NewStaticTransitionPolicy creates a policy from a transition graph.
func NewStaticTransitionPolicy(graph map[UserStatus][]UserStatus) *StaticTransitionPolicy {
	internal := make(map[UserStatus]map[UserStatus]struct{}, len(graph))
	for from, targets := range graph {
		targetSet := make(map[UserStatus]struct{}, len(targets))
		for _, to := range targets {
			if to == "" {
				continue
			}
			targetSet[to] = struct{}{}
		}
		internal[from] = targetSet
	}
	return &StaticTransitionPolicy{graph: internal}
}

// OpenTransitionPolicy allows any known status to move to any other.
type OpenTransitionPolicy struct{}

var allStatuses = []UserStatus{StatusActive, StatusInactive, StatusSuspended, StatusDeactivated}

// Validate rejects only blank statuses.
func (OpenTransitionPolicy) Validate(current, target UserStatus) error {
	if current == "" || target == "" {
		return ErrTransitionNotAllowed
	}
	return nil
}

// AllowedTargets returns every status other than current.
func (OpenTransitionPolicy) AllowedTargets(current UserStatus) []UserStatus {
	out := make([]UserStatus, 0, len(allStatuses))
	for _, status := range allStatuses {
		if status != current {
			out = append(out, status)
		}
	}
	return out
}

// DefaultTransitionPolicy places no restriction on status changes. Hosts
// that need one inject RestrictedTransitionPolicy or their own policy.
func DefaultTransitionPolicy() TransitionPolicy {
	return OpenTransitionPolicy{}
}

// RestrictedTransitionPolicy lets active accounts be parked or deactivated
// and lets every parked account return to ACTIVE.
func RestrictedTransitionPolicy() *StaticTransitionPolicy {
	return NewStaticTransitionPolicy(map[UserStatus][]UserStatus{
		StatusActive:      {StatusInactive, StatusSuspended, StatusDeactivated},
		StatusInactive:    {StatusActive, StatusDeactivated},
		StatusSuspended:   {StatusActive, StatusDeactivated},
		StatusDeactivated: {StatusActive},
	})
}

// Validate ensures the target is allowed from the current status. Staying in
// the same status is always allowed.
func (p *StaticTransitionPolicy) Validate(current, target UserStatus) error {
	if current == "" || target == "" {
		return ErrTransitionNotAllowed
	}
	if current == target {
		return nil
	}
	targets, ok := p.graph[current]
	if !ok {
		return ErrTransitionNotAllowed
	}
	if _, ok := targets[target]; !ok {
		return ErrTransitionNotAllowed
	}
	return nil
}

// AllowedTargets returns the slice of valid targets from the provided status.
func (p *StaticTransitionPolicy) AllowedTargets(current UserStatus) []UserStatus {
	targets := p.graph[current]
	if len(targets) == 0 {
		return nil
	}
	out := make([]UserStatus, 0, len(targets))
	for target := range targets {
		out = append(out, target)
	}
	return out
}
