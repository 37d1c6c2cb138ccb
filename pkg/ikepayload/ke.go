package ikepayload

import (
	"github.com/lucifiery/ikev2/pkg/iketypes"
	"github.com/lucifiery/ikev2/pkg/ikewire"
)

func init() {
	ikewire.Register(iketypes.KeyExchange, func() ikewire.Payload { return NewKE() })
}

// KE is the KEY_EXCHANGE payload (RFC 7296 Section 3.4): a Diffie-Hellman
// group identifier and the sender's public key material. The key material
// itself is opaque to this core; interpreting it is keying logic, out of
// scope per spec.md Section 1.
type KE struct {
	base
	DHGroupNum uint16
	KeyData    []byte
}

// NewKE constructs an empty outbound KE payload.
func NewKE() *KE {
	return &KE{base: base{payloadType: iketypes.KeyExchange}}
}

// Descriptor implements ikewire.Fielder.
func (k *KE) Descriptor() []ikewire.Field {
	fields := genericHeaderFields(&k.next, &k.critical)
	fields = append(fields,
		ikewire.Field{Kind: ikewire.FieldU16, Name: "ke.dh-group",
			Get: func() uint64 { return uint64(k.DHGroupNum) },
			Set: func(v uint64) { k.DHGroupNum = uint16(v) }},
		ikewire.Field{Kind: ikewire.FieldReservedByte, Name: "ke.reserved", Width: 2},
		ikewire.Field{Kind: ikewire.FieldChunk, Name: "ke.key-data",
			GetBytes: func() []byte { return k.KeyData },
			SetBytes: func(b []byte) { k.KeyData = b },
			Length:   func() int { return ikewire.RestOfStructure }},
	)
	return fields
}

// Verify has no payload-local invariant beyond what the generic header
// already enforces; DH group validity is negotiation-level, out of scope.
func (k *KE) Verify() error { return nil }
