package ikepayload

import (
	"github.com/lucifiery/ikev2/pkg/iketypes"
	"github.com/lucifiery/ikev2/pkg/ikewire"
)

func init() {
	ikewire.Register(iketypes.Certificate, func() ikewire.Payload { return NewCertificate() })
}

// CertEncoding identifies the certificate encoding carried by a Certificate
// or Certificate Request payload (RFC 7296 Section 3.6).
type CertEncoding uint8

// RFC 7296 Section 3.6 Certificate Encodings (the subset this core moves
// opaquely; parsing certificate contents is out of scope per spec.md
// Section 1).
const (
	CertEncodingX509Signature CertEncoding = 4
	CertEncodingRawRSAKey     CertEncoding = 11
	CertEncodingX509Hash      CertEncoding = 12
	CertEncodingX509HashURL   CertEncoding = 13
)

// Certificate is the CERTIFICATE payload (RFC 7296 Section 3.6). The
// certificate data itself is an opaque blob; this core does not parse,
// validate, or chain-build certificates (spec.md Section 1 Non-goals).
type Certificate struct {
	base
	Encoding CertEncoding
	Data     []byte
}

// NewCertificate constructs an empty outbound certificate payload.
func NewCertificate() *Certificate {
	return &Certificate{base: base{payloadType: iketypes.Certificate}}
}

// Descriptor implements ikewire.Fielder.
func (c *Certificate) Descriptor() []ikewire.Field {
	fields := genericHeaderFields(&c.next, &c.critical)
	fields = append(fields,
		ikewire.Field{Kind: ikewire.FieldU8, Name: "cert.encoding",
			Get: func() uint64 { return uint64(c.Encoding) },
			Set: func(v uint64) { c.Encoding = CertEncoding(v) }},
		ikewire.Field{Kind: ikewire.FieldChunk, Name: "cert.data",
			GetBytes: func() []byte { return c.Data },
			SetBytes: func(b []byte) { c.Data = b },
			Length:   func() int { return ikewire.RestOfStructure }},
	)
	return fields
}

// Verify has no payload-local invariant beyond the generic header;
// certificate content validation is out of this core's scope.
func (c *Certificate) Verify() error { return nil }
