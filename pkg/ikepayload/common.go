// Package ikepayload implements the concrete IKEv2 payload objects
// (spec.md Section 4.B): typed records each carrying one payload kind,
// built on top of package ikewire's descriptor-driven codec.
package ikepayload

import (
	"github.com/lucifiery/ikev2/pkg/iketypes"
	"github.com/lucifiery/ikev2/pkg/ikewire"
)

// genericHeaderFields returns the descriptor entries shared by every
// payload's first four octets: next-payload type, the critical bit, its
// seven reserved sibling bits, and the payload-length field. Concrete
// payloads prepend these to their own body fields.
func genericHeaderFields(next *iketypes.PayloadType, critical *bool) []ikewire.Field {
	return []ikewire.Field{
		{Kind: ikewire.FieldU8, Name: "next-payload",
			Get: func() uint64 { return uint64(*next) },
			Set: func(v uint64) { *next = iketypes.PayloadType(v) }},
		{Kind: ikewire.FieldBit, Name: "critical", BitOffset: 7,
			GetBool: func() bool { return *critical },
			SetBool: func(v bool) { *critical = v }},
		{Kind: ikewire.FieldReservedBit, Name: "reserved", BitOffset: 0, EndOfByte: true},
		{Kind: ikewire.FieldPayloadLength, Name: "payload-length",
			Set: func(uint64) {}},
	}
}

// base is embedded by every concrete payload to provide the Type/NextType/
// SetNextType/Release parts of the Payload capability set that are identical
// across payload kinds; only Descriptor() and payload-local verification
// differ per kind.
type base struct {
	payloadType iketypes.PayloadType
	next        iketypes.PayloadType
	critical    bool
	buf         []byte // borrowed slice of the inbound packet buffer, if any
}

func (b *base) Type() iketypes.PayloadType          { return b.payloadType }
func (b *base) NextType() iketypes.PayloadType      { return b.next }
func (b *base) SetNextType(t iketypes.PayloadType)  { b.next = t }
func (b *base) Release()                            { b.buf = nil }
