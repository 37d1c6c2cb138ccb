package ikepayload

import (
	"bytes"
	"testing"

	"github.com/lucifiery/ikev2/pkg/ikewire"
)

func TestTSRoundTrip(t *testing.T) {
	ts := NewTSi()
	ts.AddSelector(&TrafficSelector{
		Type: TSIPv4AddrRange, IPProtoID: 17,
		StartPort: 0, EndPort: 65535,
		StartAddr: []byte{10, 0, 0, 1}, EndAddr: []byte{10, 0, 0, 254},
	})
	ts.SetNextType(0)

	buf, err := ikewire.Generate(ts)
	if err != nil {
		t.Fatalf("Generate: %v", err)
	}

	p := ikewire.NewParser(buf)
	payload, _, err := p.ParseNext(ts.Type())
	if err != nil {
		t.Fatalf("ParseNext: %v", err)
	}

	got := payload.(*TS)
	if len(got.Selectors) != 1 {
		t.Fatalf("got %d selectors, want 1", len(got.Selectors))
	}
	sel := got.Selectors[0]
	if sel.Type != TSIPv4AddrRange || sel.IPProtoID != 17 {
		t.Fatalf("selector fields mismatch: %+v", sel)
	}
	if !bytes.Equal(sel.StartAddr, []byte{10, 0, 0, 1}) || !bytes.Equal(sel.EndAddr, []byte{10, 0, 0, 254}) {
		t.Fatalf("selector addresses mismatch: %+v", sel)
	}
	if err := got.Verify(); err != nil {
		t.Fatalf("Verify: %v", err)
	}
}

func TestTSVerifyRejectsMismatchedAddressLength(t *testing.T) {
	ts := NewTSr()
	ts.AddSelector(&TrafficSelector{
		Type:      TSIPv6AddrRange,
		StartAddr: []byte{1, 2, 3, 4},
		EndAddr:   make([]byte, 16),
	})
	if err := ts.Verify(); err == nil {
		t.Fatal("expected an error for a selector whose start address length doesn't match its type")
	}
}
