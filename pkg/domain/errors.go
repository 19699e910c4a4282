package domain

import (
	"context"
	"errors"
	"fmt"
)

// Error taxonomy shared by every layer. Callers branch with errors.Is.
var (
	// ErrInvalidAmount is returned when an amount is zero, negative or malformed.
	ErrInvalidAmount = errors.New("invalid amount")
	// ErrNotFound is returned when a referenced account, customer or record is absent.
	ErrNotFound = errors.New("resource not found")
	// ErrInsufficientFunds is returned when a debit would make a balance negative.
	ErrInsufficientFunds = errors.New("insufficient funds")
	// ErrPersistence is returned when the storage backend is unreachable, conflicts,
	// times out or fails to commit a unit of work.
	ErrPersistence = errors.New("persistence error")

	// ErrAlreadyExists is returned when trying to create a resource that already exists
	ErrAlreadyExists = errors.New("resource already exists")
	// ErrValidation is returned when input validation fails
	ErrValidation = errors.New("validation error")
)

// Entity specific errors. Each one wraps a taxonomy sentinel.
var (
	ErrAccountNotFound  = fmt.Errorf("account: %w", ErrNotFound)
	ErrCustomerNotFound = fmt.Errorf("customer: %w", ErrNotFound)
	ErrRecordNotFound   = fmt.Errorf("transaction record: %w", ErrNotFound)

	ErrMalformedAmount = fmt.Errorf("malformed amount: %w", ErrInvalidAmount)
	ErrSameAccount     = fmt.Errorf("cannot transfer to same account: %w", ErrInvalidAmount)
)

// IsKnown reports whether err belongs to the domain taxonomy.
func IsKnown(err error) bool {
	return errors.Is(err, ErrInvalidAmount) ||
		errors.Is(err, ErrNotFound) ||
		errors.Is(err, ErrInsufficientFunds) ||
		errors.Is(err, ErrPersistence) ||
		errors.Is(err, ErrAlreadyExists) ||
		errors.Is(err, ErrValidation)
}

// AsPersistence returns err unchanged when it is part of the taxonomy and wraps it in
// ErrPersistence otherwise. Context cancellation and deadlines become persistence errors.
func AsPersistence(err error) error {
	if err == nil {
		return nil
	}
	if IsKnown(err) {
		return err
	}
	if errors.Is(err, context.DeadlineExceeded) || errors.Is(err, context.Canceled) {
		return fmt.Errorf("%w: unit of work aborted: %w", ErrPersistence, err)
	}
	return fmt.Errorf("%w: %w", ErrPersistence, err)
}
