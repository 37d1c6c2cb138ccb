package ikepayload

import (
	"bytes"
	"testing"

	"github.com/lucifiery/ikev2/pkg/ikewire"
)

func TestDeleteRoundTrip(t *testing.T) {
	d := NewDelete()
	d.ProtocolID = 1
	d.SPISize = 4
	d.SPIs = [][]byte{{1, 2, 3, 4}, {5, 6, 7, 8}}

	buf, err := ikewire.Generate(d)
	if err != nil {
		t.Fatalf("Generate: %v", err)
	}

	p := ikewire.NewParser(buf)
	payload, _, err := p.ParseNext(d.Type())
	if err != nil {
		t.Fatalf("ParseNext: %v", err)
	}

	got := payload.(*Delete)
	if got.SPISize != 4 || len(got.SPIs) != 2 {
		t.Fatalf("got %+v", got)
	}
	if !bytes.Equal(got.SPIs[0], []byte{1, 2, 3, 4}) || !bytes.Equal(got.SPIs[1], []byte{5, 6, 7, 8}) {
		t.Fatalf("SPI contents mismatch: %+v", got.SPIs)
	}
	if err := got.Verify(); err != nil {
		t.Fatalf("Verify: %v", err)
	}
}

func TestDeleteVerifyRejectsBadSPISize(t *testing.T) {
	d := NewDelete()
	d.SPISize = 5
	if err := d.Verify(); err == nil {
		t.Fatal("expected an error for an SPI size other than 0, 4, or 8")
	}
}
