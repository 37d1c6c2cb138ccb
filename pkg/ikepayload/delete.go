package ikepayload

import (
	"github.com/lucifiery/ikev2/pkg/iketypes"
	"github.com/lucifiery/ikev2/pkg/ikewire"
)

func init() {
	ikewire.Register(iketypes.Delete, func() ikewire.Payload { return NewDelete() })
}

// Delete is the DELETE payload (RFC 7296 Section 3.11): a protocol and a
// flat list of fixed-size SPIs to be deleted. SPISize is carried
// explicitly on the wire because a single Delete payload always names
// SPIs of one uniform size.
type Delete struct {
	base
	ProtocolID uint8
	SPISize    uint8
	SPIs       [][]byte

	numSPIs int // decode scratch: declared SPI count, cross-checked in Verify
}

// NewDelete constructs an empty outbound delete payload.
func NewDelete() *Delete {
	return &Delete{base: base{payloadType: iketypes.Delete}}
}

// Descriptor implements ikewire.Fielder.
func (d *Delete) Descriptor() []ikewire.Field {
	fields := genericHeaderFields(&d.next, &d.critical)
	fields = append(fields,
		ikewire.Field{Kind: ikewire.FieldU8, Name: "delete.protocol-id",
			Get: func() uint64 { return uint64(d.ProtocolID) },
			Set: func(v uint64) { d.ProtocolID = uint8(v) }},
		ikewire.Field{Kind: ikewire.FieldU8, Name: "delete.spi-size",
			Get: func() uint64 { return uint64(d.SPISize) },
			Set: func(v uint64) { d.SPISize = uint8(v) }},
		ikewire.Field{Kind: ikewire.FieldU16, Name: "delete.num-spis",
			Get: func() uint64 { return uint64(len(d.SPIs)) },
			Set: func(v uint64) { d.numSPIs = int(v) }},
		ikewire.Field{Kind: ikewire.FieldChunk, Name: "delete.spis",
			GetBytes: func() []byte { return d.packSPIs() },
			SetBytes: func(b []byte) { d.unpackSPIs(b) },
			Length:   func() int { return ikewire.RestOfStructure }},
	)
	return fields
}

// packSPIs concatenates the SPI list for encoding.
func (d *Delete) packSPIs() []byte {
	out := make([]byte, 0, len(d.SPIs)*int(d.SPISize))
	for _, spi := range d.SPIs {
		out = append(out, spi...)
	}
	return out
}

// unpackSPIs splits a decoded chunk back into individual SPIs of SPISize
// octets each, cross-checked against the declared SPI count.
func (d *Delete) unpackSPIs(b []byte) {
	d.SPIs = nil
	size := int(d.SPISize)
	if size == 0 {
		return
	}
	for off := 0; off+size <= len(b); off += size {
		d.SPIs = append(d.SPIs, b[off:off+size])
	}
}

// Verify checks the declared SPI count against the SPI size and the
// actual chunk length parsed.
func (d *Delete) Verify() error {
	if d.SPISize != 0 && int(d.SPISize) != 4 && int(d.SPISize) != 8 {
		return verifyErrorf("delete.spi-size", errBadSPISize)
	}
	if d.numSPIs != 0 && d.numSPIs != len(d.SPIs) {
		return verifyErrorf("delete.num-spis", errBadSPICount)
	}
	return nil
}
