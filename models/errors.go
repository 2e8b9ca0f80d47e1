package models

import (
	"errors"
	"fmt"
)

// Domain errors returned by the fulfillment and stock adjustment workflows.
// They are rejected before commit; a caller seeing one of these can assume
// no stock or ledger mutation was persisted.

var (
	// ErrMissingAnchor: neither a visit id nor a patient id was supplied.
	ErrMissingAnchor = errors.New("either a visit id or a patient id is required")

	// ErrVisitNotFound: the supplied visit id does not resolve to a row.
	ErrVisitNotFound = errors.New("visit not found")

	ErrPatientNotFound = errors.New("patient not found")
)

// UnknownMedicationError: a requested medication has no stock ledger entry.
type UnknownMedicationError struct {
	MedicationName string
}

func (e *UnknownMedicationError) Error() string {
	return fmt.Sprintf("unknown medication %q", e.MedicationName)
}

// InsufficientStockError: requested quantity exceeds the current stock on hand.
type InsufficientStockError struct {
	MedicationName string
	Available      int
	Requested      int
}

func (e *InsufficientStockError) Error() string {
	return fmt.Sprintf("insufficient stock for %q: available %d, requested %d",
		e.MedicationName, e.Available, e.Requested)
}
