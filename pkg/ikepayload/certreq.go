package ikepayload

import (
	"github.com/lucifiery/ikev2/pkg/iketypes"
	"github.com/lucifiery/ikev2/pkg/ikewire"
)

func init() {
	ikewire.Register(iketypes.CertificateRequest, func() ikewire.Payload { return NewCertificateRequest() })
}

// CertificateRequest is the CERTIFICATE REQUEST payload (RFC 7296 Section
// 3.7): a certificate encoding plus a list of acceptable certification
// authorities, carried here as an opaque concatenation of CA hashes
// (spec.md Section 1 places certificate/CRL parsing out of scope).
type CertificateRequest struct {
	base
	Encoding CertEncoding
	CAData   []byte
}

// NewCertificateRequest constructs an empty outbound certificate request payload.
func NewCertificateRequest() *CertificateRequest {
	return &CertificateRequest{base: base{payloadType: iketypes.CertificateRequest}}
}

// Descriptor implements ikewire.Fielder.
func (c *CertificateRequest) Descriptor() []ikewire.Field {
	fields := genericHeaderFields(&c.next, &c.critical)
	fields = append(fields,
		ikewire.Field{Kind: ikewire.FieldU8, Name: "certreq.encoding",
			Get: func() uint64 { return uint64(c.Encoding) },
			Set: func(v uint64) { c.Encoding = CertEncoding(v) }},
		ikewire.Field{Kind: ikewire.FieldChunk, Name: "certreq.ca-data",
			GetBytes: func() []byte { return c.CAData },
			SetBytes: func(b []byte) { c.CAData = b },
			Length:   func() int { return ikewire.RestOfStructure }},
	)
	return fields
}

// Verify has no payload-local invariant beyond the generic header.
func (c *CertificateRequest) Verify() error { return nil }
