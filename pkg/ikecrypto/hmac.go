package ikecrypto

import (
	"crypto/hmac"
	"crypto/sha256"
	"errors"
)

// HMAC-SHA2-256 truncation lengths matching the two IKEv2 AUTH transforms
// that share this PRF/hash pair (RFC 4868).
const (
	// Truncated96 is a 96-bit (12-octet) ICV, the truncation length some
	// older AUTH transforms use.
	Truncated96 = 12
	// Truncated128 matches AUTH_HMAC_SHA2_256_128's full 128-bit ICV.
	Truncated128 = 16
)

// ErrInvalidTruncation reports a truncation length outside (0, 32].
var ErrInvalidTruncation = errors.New("ikecrypto: HMAC-SHA256 truncation length must be in (0, 32]")

// HMACSigner implements iketransform.Signer using HMAC-SHA256, truncated
// to the configured number of octets, matching AUTH_HMAC_SHA2_256_128
// (RFC 4868 Section 2.3).
type HMACSigner struct {
	key   []byte
	trunc int
}

// NewHMACSigner constructs an HMACSigner. truncatedLen is the number of
// leading octets of the full 32-byte HMAC-SHA256 output to use as the
// integrity checksum; pass Truncated128 for AUTH_HMAC_SHA2_256_128.
func NewHMACSigner(key []byte, truncatedLen int) (*HMACSigner, error) {
	if truncatedLen <= 0 || truncatedLen > sha256.Size {
		return nil, ErrInvalidTruncation
	}
	return &HMACSigner{key: key, trunc: truncatedLen}, nil
}

// BlockSize implements iketransform.Signer; despite the name it returns
// the truncated MAC length, matching the Signer contract that BlockSize
// is "the number of trailing octets the MAC occupies".
func (s *HMACSigner) BlockSize() int {
	return s.trunc
}

// GetSignature implements iketransform.Signer.
func (s *HMACSigner) GetSignature(data []byte) ([]byte, error) {
	h := hmac.New(sha256.New, s.key)
	h.Write(data)
	return h.Sum(nil)[:s.trunc], nil
}

// VerifySignature implements iketransform.Signer, comparing in constant
// time via hmac.Equal.
func (s *HMACSigner) VerifySignature(data, mac []byte) (bool, error) {
	expected, err := s.GetSignature(data)
	if err != nil {
		return false, err
	}
	return hmac.Equal(expected, mac), nil
}
