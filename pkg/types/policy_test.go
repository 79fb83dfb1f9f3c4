package types

import (
	"errors"
	"testing"
)

func TestDefaultTransitionPolicyAllowsAnyChange(t *testing.T) {
	policy := DefaultTransitionPolicy()
	for _, from := range allStatuses {
		for _, to := range allStatuses {
			if err := policy.Validate(from, to); err != nil {
				t.Fatalf("expected %s->%s to be allowed: %v", from, to, err)
			}
		}
	}
	if err := policy.Validate("", StatusActive); !errors.Is(err, ErrTransitionNotAllowed) {
		t.Fatalf("expected blank status to be rejected, got %v", err)
	}
	if targets := policy.AllowedTargets(StatusInactive); len(targets) != 3 {
		t.Fatalf("expected 3 targets for inactive, got %d", len(targets))
	}
}

func TestStaticTransitionPolicyValidate(t *testing.T) {
	policy := RestrictedTransitionPolicy()

	if err := policy.Validate(StatusActive, StatusSuspended); err != nil {
		t.Fatalf("expected active->suspended to be allowed: %v", err)
	}

	if err := policy.Validate(StatusDeactivated, StatusDeactivated); err != nil {
		t.Fatalf("expected same status to be allowed: %v", err)
	}

	err := policy.Validate(StatusDeactivated, StatusSuspended)
	if err == nil {
		t.Fatalf("expected deactivated->suspended to be rejected")
	}
	if !errors.Is(err, ErrValidation) {
		t.Fatalf("expected rejection to be a validation error, got %v", err)
	}
}

func TestStaticTransitionPolicyAllowedTargets(t *testing.T) {
	policy := RestrictedTransitionPolicy()
	targets := policy.AllowedTargets(StatusActive)
	if len(targets) != 3 {
		t.Fatalf("expected 3 targets for active, got %d", len(targets))
	}
}
