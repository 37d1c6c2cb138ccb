package ikewire

import (
	"errors"
	"fmt"

	"github.com/lucifiery/ikev2/pkg/iketypes"
)

// Sentinel detail errors, all wrapping iketypes.ErrParse so callers can
// errors.Is(err, iketypes.ErrParse) regardless of which one fired.
var (
	errShortRead      = errors.New("ikewire: short read")
	errLengthMismatch = errors.New("ikewire: declared length does not match consumed octets")
	errLengthOverrun  = errors.New("ikewire: declared length exceeds buffer")
	errBadVersion     = errors.New("ikewire: major version must be 2")
	errBadTotalLength = errors.New("ikewire: header total length does not match buffer length")
)

func parseErrorf(field string, cause error) error {
	return fmt.Errorf("ikewire: field %q: %w: %w", field, cause, iketypes.ErrParse)
}

// notSupportedErrorf wraps iketypes.ErrNotSupported rather than ErrParse:
// the octets themselves decoded fine, but the payload type they name has
// no registered handler (spec.md Section 4.E: "Unknown payload type
// inside decrypted envelope ⇒ NOT_SUPPORTED").
func notSupportedErrorf(field string, cause error) error {
	return fmt.Errorf("ikewire: field %q: %w: %w", field, cause, iketypes.ErrNotSupported)
}
