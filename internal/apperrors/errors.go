package apperrors

import "errors"

// Domain entity errors represent missing or invalid entities in the system.
// These errors indicate that a requested resource does not exist.
var (
	// ErrLotNotFound indicates that a portfolio lot with the given ID does not exist.
	ErrLotNotFound = errors.New("lot not found")

	// ErrProviderConfigNotFound indicates that no price provider configuration has been stored.
	ErrProviderConfigNotFound = errors.New("provider configuration not found")
)

// Input errors represent malformed or out-of-range caller input.
// These errors are recoverable: the caller can correct the input and retry.
var (
	// ErrInvalidLotID indicates that a provided lot ID is not a valid integer.
	ErrInvalidLotID = errors.New("invalid lot ID")

	// ErrInvalidNumericInput indicates that a numeric field could not be parsed.
	ErrInvalidNumericInput = errors.New("invalid numeric input")

	// ErrNegativeAmount indicates that an amount field has an invalid negative value.
	ErrNegativeAmount = errors.New("amount cannot be negative")

	// ErrInvalidFeePct indicates that a fee percentage is outside the [0, 100] range.
	ErrInvalidFeePct = errors.New("fee percentage must be between 0 and 100")

	// ErrInvalidEntryKind indicates an entry kind other than purchase or staking.
	ErrInvalidEntryKind = errors.New("invalid entry kind")

	// ErrMissingCoinID indicates that the coin identifier is empty.
	ErrMissingCoinID = errors.New("coin ID is required")

	// ErrMissingSymbol indicates that the display symbol is empty.
	ErrMissingSymbol = errors.New("symbol is required")

	// ErrInvalidCurrency indicates that the reporting currency code is empty.
	ErrInvalidCurrency = errors.New("currency is required")
)

// External dependency errors represent failures of collaborators outside the
// process. These abort the current operation and are not retried by the core.
var (
	// ErrPriceFetchFailed indicates that the batched price lookup failed as a
	// whole (transport error or timeout). Individual missing coins do not
	// raise this error; they default to a zero price.
	ErrPriceFetchFailed = errors.New("price lookup failed")

	// ErrEncryptionUnavailable indicates that no encryption key is configured
	// while an operation requires storing a secret.
	ErrEncryptionUnavailable = errors.New("encryption key not configured")
)

// Persistence errors represent storage-level failures. These are fatal to the
// current operation and must never leave a snapshot partially written.
var (
	// ErrHistoryWriteFailed indicates that an analysis snapshot could not be
	// appended; no rows from the snapshot were committed.
	ErrHistoryWriteFailed = errors.New("failed to append analysis snapshot")
)
