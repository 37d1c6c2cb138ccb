package ikepayload

import (
	"github.com/lucifiery/ikev2/pkg/iketypes"
	"github.com/lucifiery/ikev2/pkg/ikewire"
)

func init() {
	ikewire.Register(iketypes.SecurityAssociation, func() ikewire.Payload { return NewSA() })
}

// Proposal is one proposal substructure nested inside a SECURITY_
// ASSOCIATION payload (RFC 7296 Section 3.3.1). Transform/Attribute
// internals are intentionally opaque here: negotiating the cryptographic
// algorithm set is SA/keying logic, which spec.md Section 1 places outside
// the encoding core; only the substructure framing is the core's concern.
type Proposal struct {
	more          bool // wire "Last Substruc": true if another proposal follows
	Number        uint8
	ProtocolID    uint8
	SPI           []byte
	NumTransforms uint8
	Transforms    []byte // opaque, concatenated transform substructures

	spiSize int // decode scratch: SPI size read before the SPI chunk itself
}

// Descriptor implements ikewire.Fielder.
func (p *Proposal) Descriptor() []ikewire.Field {
	return []ikewire.Field{
		{Kind: ikewire.FieldFlag, Name: "proposal.more",
			GetBool: func() bool { return p.more },
			SetBool: func(v bool) { p.more = v }},
		{Kind: ikewire.FieldReservedByte, Name: "proposal.reserved", Width: 1},
		{Kind: ikewire.FieldSubstructureLength, Name: "proposal.length",
			Set: func(uint64) {}},
		{Kind: ikewire.FieldU8, Name: "proposal.number",
			Get: func() uint64 { return uint64(p.Number) },
			Set: func(v uint64) { p.Number = uint8(v) }},
		{Kind: ikewire.FieldU8, Name: "proposal.protocol-id",
			Get: func() uint64 { return uint64(p.ProtocolID) },
			Set: func(v uint64) { p.ProtocolID = uint8(v) }},
		{Kind: ikewire.FieldU8, Name: "proposal.spi-size",
			Get: func() uint64 { return uint64(len(p.SPI)) },
			Set: func(v uint64) { p.spiSize = int(v) }},
		{Kind: ikewire.FieldU8, Name: "proposal.num-transforms",
			Get: func() uint64 { return uint64(p.NumTransforms) },
			Set: func(v uint64) { p.NumTransforms = uint8(v) }},
		{Kind: ikewire.FieldChunk, Name: "proposal.spi",
			GetBytes: func() []byte { return p.SPI },
			SetBytes: func(b []byte) { p.SPI = b },
			Length:   func() int { return p.spiSize }},
		// Transforms fill out whatever remains of this proposal's own
		// declared substructure length; no separate length marker exists
		// for them on the wire.
		{Kind: ikewire.FieldChunk, Name: "proposal.transforms",
			GetBytes: func() []byte { return p.Transforms },
			SetBytes: func(b []byte) { p.Transforms = b },
			Length:   func() int { return ikewire.RestOfStructure }},
	}
}

// SA is the SECURITY_ASSOCIATION payload: a payload-length-framed list of
// Proposal substructures (spec.md Section 4.B; component A's FieldSub/
// FieldSubstructureLength kinds exist to support exactly this nesting).
type SA struct {
	base
	Proposals []*Proposal
}

// NewSA constructs an empty outbound SA payload.
func NewSA() *SA {
	return &SA{base: base{payloadType: iketypes.SecurityAssociation}}
}

// AddProposal appends a proposal, maintaining the "Last Substruc" chain.
func (s *SA) AddProposal(p *Proposal) {
	if n := len(s.Proposals); n > 0 {
		s.Proposals[n-1].more = true
	}
	p.more = false
	s.Proposals = append(s.Proposals, p)
}

// Descriptor implements ikewire.Fielder.
func (s *SA) Descriptor() []ikewire.Field {
	fields := genericHeaderFields(&s.next, &s.critical)
	return append(fields, ikewire.Field{
		Kind: ikewire.FieldSub, Name: "sa.proposals",
		NewSub: func() ikewire.Fielder { return &Proposal{} },
		AppendSub: func(f ikewire.Fielder) {
			s.Proposals = append(s.Proposals, f.(*Proposal))
		},
		Subs: func() []ikewire.Fielder {
			out := make([]ikewire.Fielder, len(s.Proposals))
			for i, p := range s.Proposals {
				out[i] = p
			}
			return out
		},
	})
}

// Verify checks that at least one proposal, each with at least one
// transform, is present. Algorithm-level content is not this core's
// concern (spec.md Section 1).
func (s *SA) Verify() error {
	if len(s.Proposals) == 0 {
		return verifyErrorf("sa", errEmptyProposals)
	}
	for _, p := range s.Proposals {
		if p.NumTransforms == 0 {
			return verifyErrorf("sa.proposal", errEmptyTransforms)
		}
		if len(p.SPI) > 0 && p.ProtocolID == 0 {
			return verifyErrorf("sa.proposal", errBadSPISize)
		}
	}
	return nil
}
