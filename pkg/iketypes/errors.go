package iketypes

import "errors"

// Status-kind sentinel errors (spec.md Section 7). SUCCESS has no sentinel:
// operations that succeed return a nil error. Every other kind below is
// returned as-is or wrapped with fmt.Errorf("...: %w", ...) so callers can
// still errors.Is against the kind.
var (
	// ErrInvalidState means a precondition was unmet: exchange type still
	// undefined, endpoints unset, transforms unbound, or a MAC mismatch.
	ErrInvalidState = errors.New("ike: invalid state")

	// ErrParse means a structural, octet-level decoding failure.
	ErrParse = errors.New("ike: parse error")

	// ErrVerify means a payload-local Verify() rejected a payload.
	ErrVerify = errors.New("ike: verify error")

	// ErrNotSupported means a payload is disallowed for this message, or
	// its multiplicity falls outside the rule table's bounds.
	ErrNotSupported = errors.New("ike: not supported")

	// ErrNotFound means a rule-table lookup failed.
	ErrNotFound = errors.New("ike: not found")

	// ErrFailed means the rule table requires encrypted content but the
	// wire layout violates the Encryption-payload placement invariant.
	ErrFailed = errors.New("ike: failed")
)
