package error

import "errors"

// Reconciliation domain errors.
var (
	// ErrPropertyNotFound is returned when a property lookup by ID fails.
	ErrPropertyNotFound = errors.New("property not found")

	// ErrLedgerTransactionNotFound is returned when a ledger transaction
	// lookup by ID fails.
	ErrLedgerTransactionNotFound = errors.New("ledger transaction not found")

	// ErrMatchNotFound is returned when a reconciliation match lookup fails.
	ErrMatchNotFound = errors.New("reconciliation match not found")

	// ErrLedgerTransactionAlreadyMatched is returned when a manual match
	// targets a ledger transaction that already has a match.
	ErrLedgerTransactionAlreadyMatched = errors.New("ledger transaction already matched")
)
