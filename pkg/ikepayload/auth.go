package ikepayload

import (
	"github.com/lucifiery/ikev2/pkg/iketypes"
	"github.com/lucifiery/ikev2/pkg/ikewire"
)

func init() {
	ikewire.Register(iketypes.Authentication, func() ikewire.Payload { return NewAuth() })
}

// AuthMethod identifies the authentication mechanism used to produce an
// Authentication payload's data (RFC 7296 Section 3.8). Computing or
// verifying the signature itself is delegated to a Signer capability
// (spec.md Section 6); this core only moves the method code and the
// opaque result.
type AuthMethod uint8

// RFC 7296 Section 3.8 Authentication Method values this core recognizes.
const (
	AuthRSADigitalSignature AuthMethod = 1
	AuthSharedKeyMIC        AuthMethod = 2
	AuthDSSDigitalSignature AuthMethod = 3
)

// Auth is the AUTHENTICATION payload (RFC 7296 Section 3.8).
type Auth struct {
	base
	Method AuthMethod
	Data   []byte
}

// NewAuth constructs an empty outbound authentication payload.
func NewAuth() *Auth {
	return &Auth{base: base{payloadType: iketypes.Authentication}}
}

// Descriptor implements ikewire.Fielder.
func (a *Auth) Descriptor() []ikewire.Field {
	fields := genericHeaderFields(&a.next, &a.critical)
	fields = append(fields,
		ikewire.Field{Kind: ikewire.FieldU8, Name: "auth.method",
			Get: func() uint64 { return uint64(a.Method) },
			Set: func(v uint64) { a.Method = AuthMethod(v) }},
		ikewire.Field{Kind: ikewire.FieldReservedByte, Name: "auth.reserved", Width: 3},
		ikewire.Field{Kind: ikewire.FieldChunk, Name: "auth.data",
			GetBytes: func() []byte { return a.Data },
			SetBytes: func(b []byte) { a.Data = b },
			Length:   func() int { return ikewire.RestOfStructure }},
	)
	return fields
}

// Verify has no payload-local invariant beyond the generic header; the
// signature itself is checked by a Signer, not by this payload object.
func (a *Auth) Verify() error { return nil }
