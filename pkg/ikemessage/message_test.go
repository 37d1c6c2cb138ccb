package ikemessage

import (
	"bytes"
	"crypto/aes"
	"crypto/cipher"
	"crypto/hmac"
	"crypto/sha256"
	"net"
	"testing"

	"github.com/lucifiery/ikev2/pkg/ikepayload"
	"github.com/lucifiery/ikev2/pkg/iketypes"
)

// fakeCrypter/fakeSigner are minimal stand-ins for package ikecrypto's
// real AES-CBC/HMAC implementations, used here so this package's tests
// don't need to import its own downstream consumer.

type fakeCrypter struct{ block cipher.Block }

func newFakeCrypter(key []byte) *fakeCrypter {
	block, err := aes.NewCipher(key)
	if err != nil {
		panic(err)
	}
	return &fakeCrypter{block: block}
}

func (c *fakeCrypter) BlockSize() int { return c.block.BlockSize() }

func (c *fakeCrypter) Encrypt(data, iv []byte) ([]byte, error) {
	out := make([]byte, len(data))
	cipher.NewCBCEncrypter(c.block, iv).CryptBlocks(out, data)
	return out, nil
}

func (c *fakeCrypter) Decrypt(data, iv []byte) ([]byte, error) {
	out := make([]byte, len(data))
	cipher.NewCBCDecrypter(c.block, iv).CryptBlocks(out, data)
	return out, nil
}

type fakeSigner struct{ key []byte }

func (s *fakeSigner) BlockSize() int { return 16 }

func (s *fakeSigner) GetSignature(data []byte) ([]byte, error) {
	h := hmac.New(sha256.New, s.key)
	h.Write(data)
	return h.Sum(nil)[:16], nil
}

func (s *fakeSigner) VerifySignature(data, mac []byte) (bool, error) {
	expected, _ := s.GetSignature(data)
	return hmac.Equal(expected, mac), nil
}

func sampleAddr(t *testing.T, s string) net.Addr {
	t.Helper()
	addr, err := net.ResolveUDPAddr("udp", s)
	if err != nil {
		t.Fatalf("ResolveUDPAddr(%s): %v", s, err)
	}
	return addr
}

func newSAInitMessage(t *testing.T) *Message {
	t.Helper()
	m := New(Config{})
	m.SetExchangeType(iketypes.ExchangeIKESAInit)
	m.SetRequest(true)
	m.SetMessageID(0)
	m.SetIKESAID(IKESAID{InitiatorSPI: 0x1122334455667788, Initiator: true})
	m.SetSource(sampleAddr(t, "127.0.0.1:500"))
	m.SetDestination(sampleAddr(t, "127.0.0.1:4500"))

	sa := ikepayload.NewSA()
	sa.AddProposal(&ikepayload.Proposal{Number: 1, ProtocolID: 1, NumTransforms: 1, Transforms: []byte{0x01}})
	if err := m.AddPayload(sa); err != nil {
		t.Fatalf("AddPayload(sa): %v", err)
	}

	ke := ikepayload.NewKE()
	ke.DHGroupNum = 14
	ke.KeyData = []byte{0xDE, 0xAD, 0xBE, 0xEF}
	if err := m.AddPayload(ke); err != nil {
		t.Fatalf("AddPayload(ke): %v", err)
	}

	nonce := ikepayload.NewNonce()
	nonce.Data = make([]byte, 32)
	if err := m.AddPayload(nonce); err != nil {
		t.Fatalf("AddPayload(nonce): %v", err)
	}
	return m
}

func TestMessageGenerateParseRoundTrip(t *testing.T) {
	m := newSAInitMessage(t)

	packet, err := m.Generate(nil, nil)
	if err != nil {
		t.Fatalf("Generate: %v", err)
	}
	if m.State() != StateGenerated {
		t.Fatalf("state = %v, want StateGenerated", m.State())
	}

	received := New(Config{})
	if err := received.ParseHeader(packet); err != nil {
		t.Fatalf("ParseHeader: %v", err)
	}
	if received.ExchangeType() != iketypes.ExchangeIKESAInit || !received.IsRequest() {
		t.Fatalf("header metadata mismatch: exchange=%s request=%v", received.ExchangeType(), received.IsRequest())
	}
	if received.IKESAID().InitiatorSPI != 0x1122334455667788 {
		t.Fatalf("initiator SPI mismatch: %x", received.IKESAID().InitiatorSPI)
	}

	if err := received.ParseBody(nil, nil); err != nil {
		t.Fatalf("ParseBody: %v", err)
	}
	if received.State() != StateBodyParsed {
		t.Fatalf("state = %v, want StateBodyParsed", received.State())
	}

	types := []iketypes.PayloadType{}
	it := received.CreatePayloadIterator()
	for p, ok := it.Next(); ok; p, ok = it.Next() {
		types = append(types, p.Type())
	}
	want := []iketypes.PayloadType{iketypes.SecurityAssociation, iketypes.KeyExchange, iketypes.Nonce}
	if len(types) != len(want) {
		t.Fatalf("got %d payloads, want %d", len(types), len(want))
	}
	for i := range want {
		if types[i] != want[i] {
			t.Fatalf("payload %d = %s, want %s", i, types[i], want[i])
		}
	}
}

func newIKEAuthMessage(t *testing.T) *Message {
	t.Helper()
	m := New(Config{})
	m.SetExchangeType(iketypes.ExchangeIKEAuth)
	m.SetRequest(true)
	m.SetMessageID(1)
	m.SetIKESAID(IKESAID{InitiatorSPI: 1, ResponderSPI: 2, Initiator: true})
	m.SetSource(sampleAddr(t, "127.0.0.1:500"))
	m.SetDestination(sampleAddr(t, "127.0.0.1:4500"))

	idi := ikepayload.NewIDi()
	idi.IDType = ikepayload.IDFQDN
	idi.Data = []byte("initiator.example")
	if err := m.AddPayload(idi); err != nil {
		t.Fatalf("AddPayload(idi): %v", err)
	}

	auth := ikepayload.NewAuth()
	auth.Method = ikepayload.AuthSharedKeyMIC
	auth.Data = []byte("auth-octets")
	if err := m.AddPayload(auth); err != nil {
		t.Fatalf("AddPayload(auth): %v", err)
	}

	sa := ikepayload.NewSA()
	sa.AddProposal(&ikepayload.Proposal{Number: 1, ProtocolID: 1, NumTransforms: 1, Transforms: []byte{0x01}})
	if err := m.AddPayload(sa); err != nil {
		t.Fatalf("AddPayload(sa): %v", err)
	}

	tsi := ikepayload.NewTSi()
	tsi.AddSelector(&ikepayload.TrafficSelector{
		Type: ikepayload.TSIPv4AddrRange, EndPort: 0xFFFF,
		StartAddr: []byte{10, 0, 0, 1}, EndAddr: []byte{10, 0, 0, 254},
	})
	if err := m.AddPayload(tsi); err != nil {
		t.Fatalf("AddPayload(tsi): %v", err)
	}

	tsr := ikepayload.NewTSr()
	tsr.AddSelector(&ikepayload.TrafficSelector{
		Type: ikepayload.TSIPv4AddrRange, EndPort: 0xFFFF,
		StartAddr: []byte{10, 0, 1, 1}, EndAddr: []byte{10, 0, 1, 254},
	})
	if err := m.AddPayload(tsr); err != nil {
		t.Fatalf("AddPayload(tsr): %v", err)
	}
	return m
}

// TestMessageEncryptedRoundTrip exercises the encrypt pass end to end: the
// Encryption payload's own next-type must still point at the first inner
// payload after relinkChain runs over the outer list, or Decrypt recovers
// nothing.
func TestMessageEncryptedRoundTrip(t *testing.T) {
	crypter := newFakeCrypter(bytes.Repeat([]byte{0x33}, 16))
	signer := &fakeSigner{key: bytes.Repeat([]byte{0x44}, 16)}

	m := newIKEAuthMessage(t)
	packet, err := m.Generate(crypter, signer)
	if err != nil {
		t.Fatalf("Generate: %v", err)
	}

	received := New(Config{})
	if err := received.ParseHeader(packet); err != nil {
		t.Fatalf("ParseHeader: %v", err)
	}
	if err := received.ParseBody(crypter, signer); err != nil {
		t.Fatalf("ParseBody: %v", err)
	}

	var types []iketypes.PayloadType
	it := received.CreatePayloadIterator()
	for p, ok := it.Next(); ok; p, ok = it.Next() {
		types = append(types, p.Type())
	}
	want := []iketypes.PayloadType{
		iketypes.IdentificationI, iketypes.Authentication,
		iketypes.SecurityAssociation, iketypes.TrafficSelectorI, iketypes.TrafficSelectorR,
	}
	if len(types) != len(want) {
		t.Fatalf("got %d payloads after decrypt, want %d (types=%v)", len(types), len(want), types)
	}
	for i := range want {
		if types[i] != want[i] {
			t.Fatalf("payload %d = %s, want %s", i, types[i], want[i])
		}
	}
}

func TestGenerateRejectsUndefinedExchangeType(t *testing.T) {
	m := New(Config{})
	m.SetIKESAID(IKESAID{InitiatorSPI: 1, Initiator: true})
	m.SetSource(sampleAddr(t, "127.0.0.1:500"))
	m.SetDestination(sampleAddr(t, "127.0.0.1:4500"))

	if _, err := m.Generate(nil, nil); err == nil {
		t.Fatal("expected an error generating a message with no exchange type set")
	}
}

func TestGenerateRejectsUnsetEndpoints(t *testing.T) {
	m := New(Config{})
	m.SetExchangeType(iketypes.ExchangeIKESAInit)
	m.SetIKESAID(IKESAID{InitiatorSPI: 1, Initiator: true})

	if _, err := m.Generate(nil, nil); err == nil {
		t.Fatal("expected an error generating a message with no source/destination set")
	}
}

func TestVerifyRejectsMissingRequiredPayload(t *testing.T) {
	m := New(Config{})
	m.SetExchangeType(iketypes.ExchangeIKESAInit)
	m.SetRequest(true)

	sa := ikepayload.NewSA()
	sa.AddProposal(&ikepayload.Proposal{Number: 1, ProtocolID: 1, NumTransforms: 1, Transforms: []byte{0x01}})
	if err := m.AddPayload(sa); err != nil {
		t.Fatalf("AddPayload: %v", err)
	}

	if err := m.Verify(); err == nil {
		t.Fatal("expected Verify to reject an IKE_SA_INIT request missing KE and Nonce")
	}
}
