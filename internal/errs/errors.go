package errs

import "errors"

// Common sentinel errors for cross-layer signaling.
var (
	ErrNotFound = errors.New("not_found")
	ErrConflict = errors.New("conflict")
	ErrInvalid  = errors.New("invalid")
	// ErrUnprocessable is used for semantic validation failures (HTTP 422)
	ErrUnprocessable = errors.New("unprocessable")
	// ErrUnknownAccount indicates a transaction leg referencing a code
	// absent from the registry
	ErrUnknownAccount = errors.New("unknown_account")
	// ErrMalformedTransaction indicates a record with no usable leg
	ErrMalformedTransaction = errors.New("malformed_transaction")
	// ErrNegativeAmount indicates a record violating the unsigned-magnitude
	// amount convention
	ErrNegativeAmount = errors.New("negative_amount")
	// ErrDuplicateCode indicates an account code already present in the registry
	ErrDuplicateCode = errors.New("duplicate_code")
)
