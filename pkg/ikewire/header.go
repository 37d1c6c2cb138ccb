package ikewire

import (
	"encoding/binary"

	"github.com/lucifiery/ikev2/pkg/iketypes"
)

// HeaderSize is the fixed size in octets of the IKEv2 message header
// (spec.md Section 4.C).
const HeaderSize = 28

// totalLengthOffset is the byte offset of the Length field within the
// header. Its value can only be known once the entire message (header +
// every payload) has been generated, so it is patched in after the fact
// by PatchTotalLength rather than through the per-Fielder back-patch the
// generator otherwise uses for payload-length fields.
const totalLengthOffset = 24

// MessageVersion is the only major version this core accepts; parsing a
// header with any other major version fails with iketypes.ErrParse.
const MessageVersion = 2

// Header is the fixed 28-octet IKEv2 message header.
type Header struct {
	InitiatorSPI uint64
	ResponderSPI uint64
	NextPayload  iketypes.PayloadType
	MajorVersion uint8
	MinorVersion uint8
	Exchange     iketypes.ExchangeType
	Response     bool // R flag: this message is a response
	VersionFlag  bool // V flag: sender supports a higher major version
	Initiator    bool // I flag: sender is the IKE SA's original initiator
	MessageID    uint32
	TotalLength  uint32
}

// Descriptor implements Fielder.
func (h *Header) Descriptor() []Field {
	return []Field{
		{Kind: FieldU64, Name: "initiator-spi",
			Get: func() uint64 { return h.InitiatorSPI },
			Set: func(v uint64) { h.InitiatorSPI = v }},
		{Kind: FieldU64, Name: "responder-spi",
			Get: func() uint64 { return h.ResponderSPI },
			Set: func(v uint64) { h.ResponderSPI = v }},
		{Kind: FieldU8, Name: "next-payload",
			Get: func() uint64 { return uint64(h.NextPayload) },
			Set: func(v uint64) { h.NextPayload = iketypes.PayloadType(v) }},
		{Kind: FieldU8, Name: "version",
			Get: func() uint64 { return uint64(h.MajorVersion)<<4 | uint64(h.MinorVersion&0x0F) },
			Set: func(v uint64) {
				h.MajorVersion = uint8(v >> 4)
				h.MinorVersion = uint8(v & 0x0F)
			}},
		{Kind: FieldU8, Name: "exchange-type",
			Get: func() uint64 { return uint64(h.Exchange) },
			Set: func(v uint64) { h.Exchange = iketypes.ExchangeType(v) }},
		{Kind: FieldReservedBit, Name: "flags-reserved-high", BitOffset: 7},
		{Kind: FieldBit, Name: "flags-response", BitOffset: 5,
			GetBool: func() bool { return h.Response },
			SetBool: func(v bool) { h.Response = v }},
		{Kind: FieldBit, Name: "flags-version", BitOffset: 4,
			GetBool: func() bool { return h.VersionFlag },
			SetBool: func(v bool) { h.VersionFlag = v }},
		{Kind: FieldBit, Name: "flags-initiator", BitOffset: 3,
			GetBool: func() bool { return h.Initiator },
			SetBool: func(v bool) { h.Initiator = v }},
		{Kind: FieldReservedBit, Name: "flags-reserved-low", BitOffset: 0, EndOfByte: true},
		{Kind: FieldU32, Name: "message-id",
			Get: func() uint64 { return uint64(h.MessageID) },
			Set: func(v uint64) { h.MessageID = uint32(v) }},
		{Kind: FieldU32, Name: "total-length",
			Get: func() uint64 { return uint64(h.TotalLength) },
			Set: func(v uint64) { h.TotalLength = uint32(v) }},
	}
}

// Verify checks header-local invariants: the major version must be 2.
// Total-length-matches-buffer is checked by the Parser (it needs the
// buffer length, which is outside the header's own fields).
func (h *Header) Verify() error {
	if h.MajorVersion != MessageVersion {
		return parseErrorf("version", errBadVersion)
	}
	return nil
}

// PatchTotalLength overwrites the header's Length field in an already
// generated buffer with the buffer's actual length. Called once generation
// of the whole message (header + payload chain) is complete.
func PatchTotalLength(buf []byte) {
	binary.BigEndian.PutUint32(buf[totalLengthOffset:totalLengthOffset+4], uint32(len(buf)))
}
