package ikepayload

import (
	"github.com/lucifiery/ikev2/pkg/iketypes"
	"github.com/lucifiery/ikev2/pkg/ikewire"
)

func init() {
	ikewire.Register(iketypes.VendorID, func() ikewire.Payload { return NewVendorID() })
}

// VendorID is the VENDOR ID payload (RFC 7296 Section 3.12): an opaque
// implementation-defined octet string used to signal optional feature
// support between peers. This core treats the data as a plain blob.
type VendorID struct {
	base
	Data []byte
}

// NewVendorID constructs an empty outbound vendor ID payload.
func NewVendorID() *VendorID {
	return &VendorID{base: base{payloadType: iketypes.VendorID}}
}

// Descriptor implements ikewire.Fielder.
func (v *VendorID) Descriptor() []ikewire.Field {
	fields := genericHeaderFields(&v.next, &v.critical)
	return append(fields, ikewire.Field{
		Kind: ikewire.FieldChunk, Name: "vendorid.data",
		GetBytes: func() []byte { return v.Data },
		SetBytes: func(b []byte) { v.Data = b },
		Length:   func() int { return ikewire.RestOfStructure },
	})
}

// Verify has no payload-local invariant; vendor ID content is opaque by
// definition.
func (v *VendorID) Verify() error { return nil }
