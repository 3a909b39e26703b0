package common

import (
	"errors"
	"fmt"
	"testing"
)

func TestSentinelErrors_AreDistinct(t *testing.T) {
	all := []error{
		ErrDuplicateEmail, ErrDuplicateUsername, ErrEmailNotVerified,
		ErrUserNotFound, ErrInvalidPassword, ErrAccountDeactivated,
		ErrNoActiveSession, ErrInvalidInput, ErrPersistence, ErrInvalidToken,
	}
	for i, a := range all {
		for j, b := range all {
			if i != j && errors.Is(a, b) {
				t.Fatalf("%v must not match %v", a, b)
			}
		}
	}
}

func TestSentinelErrors_SurviveWrapping(t *testing.T) {
	err := fmt.Errorf("register: %w", ErrDuplicateEmail)
	if !errors.Is(err, ErrDuplicateEmail) {
		t.Fatalf("wrapped error lost its identity: %v", err)
	}
}
