// Package apperror defines the failure taxonomy shared by the order, invoice
// and POD services.
//
// Callers match on the sentinel values with errors.Is; the *Error wrapper
// carries the operation and the record that triggered the failure.
package apperror

import (
	"errors"
	"fmt"
)

var (
	// ErrNotFound is returned when a referenced order, invoice or POD does not exist.
	ErrNotFound = errors.New("record not found")

	// ErrDuplicateLink is returned when an invoice already exists for an order,
	// or a POD already exists for an invoice.
	ErrDuplicateLink = errors.New("record is already linked")

	// ErrReferentialIntegrity is returned when deleting a record that another
	// record still references.
	ErrReferentialIntegrity = errors.New("record is still referenced")

	// ErrRepairFailure marks a single failed synthesis during auto-repair.
	ErrRepairFailure = errors.New("integrity repair failed")

	// ErrInvalidInput is returned for unknown enum values and malformed requests.
	ErrInvalidInput = errors.New("invalid input")

	// ErrLockBusy is returned when a link lock could not be acquired.
	ErrLockBusy = errors.New("system busy, please try again later (lock)")
)

// Error wraps one of the sentinel kinds with the operation and record involved.
type Error struct {
	Op     string
	Kind   error
	Entity string
	ID     string
	Err    error
}

func (e *Error) Error() string {
	msg := fmt.Sprintf("%s: %v", e.Op, e.Kind)
	if e.Entity != "" {
		msg = fmt.Sprintf("%s: %s %q: %v", e.Op, e.Entity, e.ID, e.Kind)
	}
	if e.Err != nil {
		msg += ": " + e.Err.Error()
	}
	return msg
}

func (e *Error) Unwrap() []error {
	if e.Err == nil {
		return []error{e.Kind}
	}
	return []error{e.Kind, e.Err}
}

func NotFound(op, entity, id string) error {
	return &Error{Op: op, Kind: ErrNotFound, Entity: entity, ID: id}
}

func DuplicateLink(op, entity, id string) error {
	return &Error{Op: op, Kind: ErrDuplicateLink, Entity: entity, ID: id}
}

func ReferentialIntegrity(op, entity, id string) error {
	return &Error{Op: op, Kind: ErrReferentialIntegrity, Entity: entity, ID: id}
}

func InvalidInput(op, reason string) error {
	return &Error{Op: op, Kind: ErrInvalidInput, Err: errors.New(reason)}
}

// RepairFailure wraps the cause of a failed auto-repair attempt.
func RepairFailure(op, entity, id string, cause error) error {
	return &Error{Op: op, Kind: ErrRepairFailure, Entity: entity, ID: id, Err: cause}
}
