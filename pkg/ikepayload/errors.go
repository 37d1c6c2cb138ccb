package ikepayload

import (
	"errors"
	"fmt"

	"github.com/lucifiery/ikev2/pkg/iketypes"
)

var (
	errAddressFamily     = errors.New("ikepayload: identification/traffic-selector address length does not match its declared type")
	errEmptyProposals    = errors.New("ikepayload: security association payload carries no proposals")
	errEmptyTransforms   = errors.New("ikepayload: proposal carries no transforms")
	errEmptySelectors    = errors.New("ikepayload: traffic selector payload carries no selectors")
	errBadSPISize        = errors.New("ikepayload: SPI size inconsistent with protocol ID")
	errBadSelectorType   = errors.New("ikepayload: unrecognized traffic selector type")
	errBadSelectorLength = errors.New("ikepayload: traffic selector length inconsistent with its address type")
	errBadNonceLength    = errors.New("ikepayload: nonce data outside the 16-256 octet range")
	errBadSPICount       = errors.New("ikepayload: SPI count inconsistent with the delete payload's body length")
)

func verifyErrorf(what string, cause error) error {
	return fmt.Errorf("ikepayload: %s: %w: %w", what, cause, iketypes.ErrVerify)
}
