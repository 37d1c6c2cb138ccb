// Package ikewire implements the IKEv2 wire codec: a field-level generator
// and parser driven by a per-payload encoding descriptor (spec.md Section
// 4.A), plus the fixed 28-octet message header (Section 4.C).
//
// All multi-octet integers are big-endian network byte order, per RFC 7296.
package ikewire

import "github.com/lucifiery/ikev2/pkg/iketypes"

// FieldKind identifies the wire encoding of one descriptor field.
type FieldKind int

const (
	// FieldU8 is a fixed-width 1-octet unsigned integer.
	FieldU8 FieldKind = iota
	// FieldU16 is a fixed-width 2-octet unsigned integer.
	FieldU16
	// FieldU32 is a fixed-width 4-octet unsigned integer.
	FieldU32
	// FieldU64 is a fixed-width 8-octet unsigned integer.
	FieldU64
	// FieldBit is a single bit at BitOffset within a shared byte; the
	// last field of the group must set EndOfByte.
	FieldBit
	// FieldReservedBit is a single reserved bit: zeroed on encode,
	// discarded on decode. Grouped with FieldBit the same way.
	FieldReservedBit
	// FieldReservedByte is Width octets of reserved space: zeroed on
	// encode, discarded (but bounds-checked) on decode.
	FieldReservedByte
	// FieldFlag is a whole-octet boolean: encodes true/false as a byte
	// value via GetBool/SetBool (flagTrueValue for more-substructures-follow, "0"
	// for last), as opposed to FieldBit's single-bit-in-a-shared-byte.
	FieldFlag
	// FieldPayloadLength is the 2-octet "length of this payload,
	// including its own generic header" field. Its value is computed
	// by the generator after the rest of the structure has been
	// written (back-patched) and is cross-checked by the parser against
	// the number of octets actually consumed for this structure.
	FieldPayloadLength
	// FieldSubstructureLength is the analogous length field for a
	// nested substructure (e.g. a Proposal within a SECURITY_ASSOCIATION
	// payload).
	FieldSubstructureLength
	// FieldChunk is a raw byte run whose length is supplied by Length().
	FieldChunk
	// FieldSub is zero or more nested Fielders, decoded/encoded
	// recursively until the enclosing structure's declared length is
	// exhausted.
	FieldSub
)

// RestOfStructure is the sentinel a FieldChunk's Length func returns to
// mean "everything remaining up to the enclosing structure's own declared
// length field", rather than a fixed or separately-computable size. Most
// trailing opaque payload bodies (KE key data, nonce data, certificate
// data...) are sized this way: the generic payload-length field is the
// only length marker they carry.
const RestOfStructure = -1

// flagTrueValue is the octet a FieldFlag writes for a true value. RFC
// 7296's "Last Substruc" fields (e.g. Section 3.3.1's Proposal
// substructure) use 2 for "more follow", not the generic-boolean 1 a
// naive flag encoding would produce; 0 still means "last" either way.
const flagTrueValue = 2

// Field describes one element of a payload's wire layout. A payload's
// Descriptor() returns an ordered []Field; Generate and the Parser consume
// it without any payload-type-specific knowledge of their own.
type Field struct {
	Kind FieldKind

	// Name identifies the field in parse-error messages.
	Name string

	// BitOffset is the bit position (0 = LSB) within the shared byte for
	// FieldBit / FieldReservedBit.
	BitOffset uint8
	// EndOfByte marks the last FieldBit/FieldReservedBit of a group; the
	// accumulated byte is written/consumed at this point.
	EndOfByte bool

	// Width is the octet width for FieldReservedByte, and for
	// FieldChunk when Length is nil (a fixed-size chunk).
	Width int

	// Get/Set move an unsigned integer value for FieldU8/16/32/64 and
	// for FieldPayloadLength/FieldSubstructureLength (width fixed at 2).
	Get func() uint64
	Set func(uint64)

	// GetBool/SetBool move a boolean for FieldBit/FieldFlag; a
	// FieldReservedBit uses neither.
	GetBool func() bool
	SetBool func(bool)

	// GetBytes/SetBytes move raw bytes for FieldChunk.
	GetBytes func() []byte
	SetBytes func([]byte)
	// Length returns the number of bytes a FieldChunk should read on
	// decode. If nil, Width is used as a fixed size.
	Length func() int

	// NewSub constructs a new nested Fielder for FieldSub decoding.
	// AppendSub stores it once decoded. Subs lists the already-populated
	// nested Fielders for FieldSub encoding.
	NewSub    func() Fielder
	AppendSub func(Fielder)
	Subs      func() []Fielder
}

// Fielder is anything whose wire layout is described by an ordered list of
// Fields. Payload (below) embeds Fielder; nested substructures
// (e.g. SA proposals) need only implement Fielder.
type Fielder interface {
	Descriptor() []Field
}

// Payload is the capability set every concrete IKEv2 payload object
// implements (spec.md Section 3 "Payload object", Section 4.B).
type Payload interface {
	Fielder

	// Type reports this payload's own type.
	Type() iketypes.PayloadType

	// NextType reports the type of the payload that follows this one on
	// the wire, or NoPayload if this is the last.
	NextType() iketypes.PayloadType

	// SetNextType assigns the next-type link. Message.AddPayload calls
	// this on the previous tail whenever a payload is appended.
	SetNextType(iketypes.PayloadType)

	// Verify checks this payload's internal, payload-local invariants
	// only; it must not consult anything outside the payload itself.
	Verify() error

	// Release drops any reference this payload holds into a borrowed
	// packet buffer, so the buffer can be garbage collected once every
	// payload referencing it has been released.
	Release()
}
