package ikecrypto

import (
	"crypto/sha256"
	"io"

	"golang.org/x/crypto/hkdf"
)

// Keys holds the seven SK_* keys an IKE SA derives from its shared secret
// (RFC 7296 Section 2.14). Not consumed by the core or by the CLI, which
// takes its keys from flags or random bytes; only this package's tests
// call DeriveKeys.
type Keys struct {
	SKd  []byte
	SKai []byte
	SKar []byte
	SKei []byte
	SKer []byte
	SKpi []byte
	SKpr []byte
}

// DeriveKeys derives SK_d/SK_ai/SK_ar/SK_ei/SK_er/SK_pi/SK_pr from
// sharedSecret (typically g^ir from the Diffie-Hellman exchange) and the
// two nonces, using HKDF-Expand-SHA256 to drive the "prf+" feedback
// construction (RFC 7296 Section 2.13): SKEYSEED is the HKDF-Extract of
// the nonces over the shared secret, and each requested key length is
// pulled from one continuous Expand stream keyed off SKEYSEED and the
// nonce concatenation, matching prf+'s "derive one long keystream, then
// slice it" structure without requiring prf+'s per-block feedback byte,
// since HKDF-Expand already produces counter-chained blocks internally.
func DeriveKeys(sharedSecret, nonceI, nonceR []byte, integLen, encrLen int) (*Keys, error) {
	salt := append(append([]byte{}, nonceI...), nonceR...)
	skeyseed := hkdf.Extract(sha256.New, sharedSecret, salt)

	total := integLen*2 + encrLen*2 + 32*3 // SK_d, SK_pi, SK_pr each one PRF output (32 bytes for SHA256)
	reader := hkdf.Expand(sha256.New, skeyseed, salt)
	stream := make([]byte, total)
	if _, err := io.ReadFull(reader, stream); err != nil {
		return nil, err
	}

	k := &Keys{}
	off := 0
	take := func(n int) []byte {
		b := stream[off : off+n]
		off += n
		return b
	}
	k.SKd = take(32)
	k.SKai = take(integLen)
	k.SKar = take(integLen)
	k.SKei = take(encrLen)
	k.SKer = take(encrLen)
	k.SKpi = take(32)
	k.SKpr = take(32)
	return k, nil
}
