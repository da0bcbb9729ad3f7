package domain

import "errors"

var (
	// ErrActivePartyExists is returned when a host who already has an
	// active party tries to create another one.
	ErrActivePartyExists = errors.New("host already has an active party")

	// ErrInsufficientBalance is returned by a deduction that would drive a
	// ledger balance negative.
	ErrInsufficientBalance = errors.New("insufficient subcredit balance")

	// ErrPartyUnavailable is returned for any admission or payment action
	// against a cancelled or ended party.
	ErrPartyUnavailable = errors.New("party is cancelled or ended")

	// ErrInvalidTransition is returned when a guest-request state change
	// violates the admission state machine.
	ErrInvalidTransition = errors.New("invalid guest request transition")

	// ErrPartyFull is returned when the capacity gate rejects an admission.
	ErrPartyFull = errors.New("party cannot admit more guests")

	// ErrUnauthorized is returned when the actor lacks the required role
	// for the command.
	ErrUnauthorized = errors.New("actor is not permitted to perform this action")

	// ErrConcurrentModification is returned after transactional retries
	// against the store are exhausted.
	ErrConcurrentModification = errors.New("concurrent modification, retries exhausted")

	// ErrStorageUnavailable wraps transient store failures.
	ErrStorageUnavailable = errors.New("storage unavailable")

	// ErrRefundPending is returned when a compensating refund could not be
	// completed; the deducted amount is owed to the user.
	ErrRefundPending = errors.New("compensating refund pending")

	// ErrNotFound is returned for lookups of documents that do not exist.
	ErrNotFound = errors.New("not found")
)
