package core

import (
	"errors"
	"testing"
)

// TestNewIDUniqueness tests that NewID generates unique identifiers
func TestNewIDUniqueness(t *testing.T) {
	const numIDs = 10000

	ids := make(map[ID]bool, numIDs)
	for i := 0; i < numIDs; i++ {
		id := NewID()
		if id.IsEmpty() {
			t.Errorf("Generated empty ID at iteration %d", i)
		}
		if ids[id] {
			t.Errorf("Generated duplicate ID: %s", id)
		}
		ids[id] = true
	}

	if len(ids) != numIDs {
		t.Errorf("Expected %d unique IDs, got %d", numIDs, len(ids))
	}
}

// TestIDIsEmpty tests ID emptiness check
func TestIDIsEmpty(t *testing.T) {
	if !ID("").IsEmpty() {
		t.Error("Expected empty ID to be empty")
	}
	if !ID("  ").IsEmpty() {
		t.Error("Expected blank ID to be empty")
	}
	if ID("not-empty").IsEmpty() {
		t.Error("Expected non-empty ID to not be empty")
	}
}

func TestErrorHelpers(t *testing.T) {
	if !IsNotFoundError(NewNotFoundError("dataset", "abc")) {
		t.Error("Expected not found error to be detected")
	}
	if !errors.Is(ErrDatasetNotFound, ErrNotFound) {
		t.Error("Expected dataset not found to wrap ErrNotFound")
	}
	if !IsValidationError(NewInvalidFieldError("region")) {
		t.Error("Expected invalid field to count as a validation error")
	}
	if !IsIntakeError(NewCapacityError(2, 1, 2)) {
		t.Error("Expected capacity error to count as an intake error")
	}
	if IsIntakeError(NewValidationError("sourceKey", "required")) {
		t.Error("Validation error must not count as an intake error")
	}
}
