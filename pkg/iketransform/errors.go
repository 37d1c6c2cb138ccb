package iketransform

import (
	"errors"
	"fmt"

	"github.com/lucifiery/ikev2/pkg/iketypes"
)

var (
	errNoTransforms = errors.New("iketransform: encryption payload has no crypter/signer bound")
	errPadding      = errors.New("iketransform: invalid padding on decrypted body")
	errShortBody    = errors.New("iketransform: encrypted payload body shorter than iv+mac overhead")
	errMACMismatch  = errors.New("iketransform: message authentication code mismatch")
)

func invalidStateErrorf(what string, cause error) error {
	return fmt.Errorf("iketransform: %s: %w: %w", what, cause, iketypes.ErrInvalidState)
}

func parseErrorf(what string, cause error) error {
	return fmt.Errorf("iketransform: %s: %w: %w", what, cause, iketypes.ErrParse)
}
