package ikepayload

import (
	"github.com/lucifiery/ikev2/pkg/iketypes"
	"github.com/lucifiery/ikev2/pkg/ikewire"
)

func init() {
	ikewire.Register(iketypes.Nonce, func() ikewire.Payload { return NewNonce() })
}

// Nonce is the NONCE payload (RFC 7296 Section 3.9): opaque random data,
// 16 to 256 octets per RFC 7296 Section 2.10. This core stores and moves
// the data; it does not generate or validate its randomness.
type Nonce struct {
	base
	Data []byte
}

// NewNonce constructs an empty outbound nonce payload.
func NewNonce() *Nonce {
	return &Nonce{base: base{payloadType: iketypes.Nonce}}
}

// Descriptor implements ikewire.Fielder.
func (n *Nonce) Descriptor() []ikewire.Field {
	fields := genericHeaderFields(&n.next, &n.critical)
	return append(fields, ikewire.Field{
		Kind: ikewire.FieldChunk, Name: "nonce.data",
		GetBytes: func() []byte { return n.Data },
		SetBytes: func(b []byte) { n.Data = b },
		Length:   func() int { return ikewire.RestOfStructure },
	})
}

// Verify checks the length bound RFC 7296 Section 2.10 places on nonce data.
func (n *Nonce) Verify() error {
	if len(n.Data) < 16 || len(n.Data) > 256 {
		return verifyErrorf("nonce.data", errBadNonceLength)
	}
	return nil
}
