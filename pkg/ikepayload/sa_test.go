package ikepayload

import (
	"bytes"
	"testing"

	"github.com/lucifiery/ikev2/pkg/ikewire"
)

func TestSARoundTrip(t *testing.T) {
	sa := NewSA()
	sa.AddProposal(&Proposal{
		Number: 1, ProtocolID: 1, NumTransforms: 2,
		Transforms: []byte{0xAA, 0xBB, 0xCC, 0xDD},
	})
	sa.AddProposal(&Proposal{
		Number: 2, ProtocolID: 3, SPI: []byte{1, 2, 3, 4}, NumTransforms: 1,
		Transforms: []byte{0xEE},
	})
	sa.SetNextType(3)

	buf, err := ikewire.Generate(sa)
	if err != nil {
		t.Fatalf("Generate: %v", err)
	}

	p := ikewire.NewParser(buf)
	payload, next, err := p.ParseNext(sa.Type())
	if err != nil {
		t.Fatalf("ParseNext: %v", err)
	}
	if next != 3 {
		t.Fatalf("next-payload = %d, want 3", next)
	}

	got := payload.(*SA)
	if len(got.Proposals) != 2 {
		t.Fatalf("got %d proposals, want 2", len(got.Proposals))
	}
	if got.Proposals[0].Number != 1 || !bytes.Equal(got.Proposals[0].Transforms, []byte{0xAA, 0xBB, 0xCC, 0xDD}) {
		t.Fatalf("proposal 0 mismatch: %+v", got.Proposals[0])
	}
	if !bytes.Equal(got.Proposals[1].SPI, []byte{1, 2, 3, 4}) {
		t.Fatalf("proposal 1 SPI mismatch: %+v", got.Proposals[1])
	}
	if err := got.Verify(); err != nil {
		t.Fatalf("Verify: %v", err)
	}
}

// TestProposalLastSubstrucWireValues checks the "Last Substruc" octet
// against RFC 7296 Section 3.3.1's literal values (0 for last, 2 for more
// follow), not just that the flag round-trips against this codec's own
// encoder/decoder.
func TestProposalLastSubstrucWireValues(t *testing.T) {
	sa := NewSA()
	sa.AddProposal(&Proposal{Number: 1, ProtocolID: 1, NumTransforms: 1, Transforms: []byte{0x01}})
	sa.AddProposal(&Proposal{Number: 2, ProtocolID: 1, NumTransforms: 1, Transforms: []byte{0x01}})

	buf, err := ikewire.Generate(sa)
	if err != nil {
		t.Fatalf("Generate: %v", err)
	}

	// The sa generic header is 4 octets; the first proposal's "Last
	// Substruc" octet is the first byte of its substructure. Each
	// proposal here has no SPI and one octet of opaque transform data, so
	// its substructure (8-octet fixed fields + transforms) is 9 octets.
	const proposalLen = 9
	firstLastSubstruc := buf[4]
	if firstLastSubstruc != 2 {
		t.Fatalf("first proposal's Last Substruc octet = %d, want 2 (more proposals follow)", firstLastSubstruc)
	}
	secondLastSubstruc := buf[4+proposalLen]
	if secondLastSubstruc != 0 {
		t.Fatalf("second proposal's Last Substruc octet = %d, want 0 (last)", secondLastSubstruc)
	}
}

func TestSAVerifyRejectsEmptyProposals(t *testing.T) {
	sa := NewSA()
	if err := sa.Verify(); err == nil {
		t.Fatal("expected an error verifying an SA payload with no proposals")
	}
}

func TestSAVerifyRejectsEmptyTransforms(t *testing.T) {
	sa := NewSA()
	sa.AddProposal(&Proposal{Number: 1, ProtocolID: 1})
	if err := sa.Verify(); err == nil {
		t.Fatal("expected an error verifying a proposal with zero transforms")
	}
}
