package services

import "errors"

// Sentinel errors surfaced to handlers, which map them onto distinct
// user-facing messages.
var (
	// ErrNoContract means the tenant has no contract, so billing
	// reconciliation cannot run. Distinct from an empty unbilled list.
	ErrNoContract = errors.New("tenant has no contract")

	// ErrAlreadyBilled means a bill for that tenant and month already exists.
	// Raised from the store's unique index, so it also covers races between
	// concurrent emitters.
	ErrAlreadyBilled = errors.New("month already billed for tenant")

	// ErrInvalidCredentials covers both unknown email and wrong password.
	ErrInvalidCredentials = errors.New("invalid email or password")
)
