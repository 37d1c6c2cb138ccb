package ikemessage

import (
	"errors"
	"fmt"

	"github.com/lucifiery/ikev2/pkg/iketypes"
)

var (
	errExchangeUndefined   = errors.New("ikemessage: exchange type is undefined")
	errEndpointsUnset      = errors.New("ikemessage: source/destination endpoint not set")
	errIKESAIDUnset        = errors.New("ikemessage: IKE SA id not assigned")
	errWrongState          = errors.New("ikemessage: operation not valid in the message's current state")
	errEncryptedNotAllowed = errors.New("ikemessage: encryption payload present but rule does not allow encrypted content")
	errEncryptedNotLast    = errors.New("ikemessage: encryption payload is not the last payload")
)

// errTooManyOccurrences reports that payload type t appeared count times
// where the rule allows at most max.
func errTooManyOccurrences(t iketypes.PayloadType, count, max int) error {
	return fmt.Errorf("ikemessage: payload %s occurs %d times, rule allows at most %d", t, count, max)
}

// errTooFewOccurrences reports that payload type t appeared count times
// where the rule requires at least min.
func errTooFewOccurrences(t iketypes.PayloadType, count, min int) error {
	return fmt.Errorf("ikemessage: payload %s occurs %d times, rule requires at least %d", t, count, min)
}

// errProtectionMismatch reports that payload type t was found with an
// encryption state other than what the rule requires.
func errProtectionMismatch(t iketypes.PayloadType) error {
	return fmt.Errorf("ikemessage: payload %s found with unexpected encryption state", t)
}

func invalidStateErrorf(what string, cause error) error {
	return fmt.Errorf("ikemessage: %s: %w: %w", what, cause, iketypes.ErrInvalidState)
}

func failedErrorf(what string, cause error) error {
	return fmt.Errorf("ikemessage: %s: %w: %w", what, cause, iketypes.ErrFailed)
}

func notSupportedErrorf(what string, cause error) error {
	return fmt.Errorf("ikemessage: %s: %w: %w", what, cause, iketypes.ErrNotSupported)
}
