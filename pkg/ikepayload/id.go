package ikepayload

import (
	"github.com/lucifiery/ikev2/pkg/iketypes"
	"github.com/lucifiery/ikev2/pkg/ikewire"
)

func init() {
	ikewire.Register(iketypes.IdentificationI, func() ikewire.Payload { return newID(iketypes.IdentificationI) })
	ikewire.Register(iketypes.IdentificationR, func() ikewire.Payload { return newID(iketypes.IdentificationR) })
}

// IDType is the identification type carried by an Identification payload
// (RFC 7296 Section 3.5).
type IDType uint8

// RFC 7296 Section 3.5 ID Types.
const (
	IDIPv4Addr   IDType = 1
	IDFQDN       IDType = 2
	IDRFC822Addr IDType = 3
	IDIPv6Addr   IDType = 5
	IDDERASN1DN  IDType = 9
	IDDERASN1GN  IDType = 10
	IDKeyID      IDType = 11
)

// ID is the IDENTIFICATION - INITIATOR / IDENTIFICATION - RESPONDER
// payload (RFC 7296 Section 3.5); IDi and IDr share this single Go type,
// distinguished only by the registered PayloadType.
type ID struct {
	base
	IDType IDType
	Data   []byte
}

func newID(t iketypes.PayloadType) *ID {
	return &ID{base: base{payloadType: t}}
}

// NewIDi constructs an empty outbound initiator identification payload.
func NewIDi() *ID { return newID(iketypes.IdentificationI) }

// NewIDr constructs an empty outbound responder identification payload.
func NewIDr() *ID { return newID(iketypes.IdentificationR) }

// Descriptor implements ikewire.Fielder.
func (d *ID) Descriptor() []ikewire.Field {
	fields := genericHeaderFields(&d.next, &d.critical)
	fields = append(fields,
		ikewire.Field{Kind: ikewire.FieldU8, Name: "id.id-type",
			Get: func() uint64 { return uint64(d.IDType) },
			Set: func(v uint64) { d.IDType = IDType(v) }},
		ikewire.Field{Kind: ikewire.FieldReservedByte, Name: "id.reserved", Width: 3},
		ikewire.Field{Kind: ikewire.FieldChunk, Name: "id.data",
			GetBytes: func() []byte { return d.Data },
			SetBytes: func(b []byte) { d.Data = b },
			Length:   func() int { return ikewire.RestOfStructure }},
	)
	return fields
}

// Verify checks that address-typed identifications carry address-sized
// data (RFC 7296 Section 3.5).
func (d *ID) Verify() error {
	switch d.IDType {
	case IDIPv4Addr:
		if len(d.Data) != 4 {
			return verifyErrorf("id.data", errAddressFamily)
		}
	case IDIPv6Addr:
		if len(d.Data) != 16 {
			return verifyErrorf("id.data", errAddressFamily)
		}
	}
	return nil
}
