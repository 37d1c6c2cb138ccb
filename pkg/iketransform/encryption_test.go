package iketransform

import (
	"bytes"
	"crypto/aes"
	"crypto/cipher"
	"crypto/hmac"
	"crypto/sha256"
	"testing"

	"github.com/lucifiery/ikev2/pkg/iketypes"
	"github.com/lucifiery/ikev2/pkg/ikewire"
)

// fakeCrypter/fakeSigner are minimal, dependency-free stand-ins for
// package ikecrypto's real AES-CBC/HMAC implementations, used here so
// this package's tests don't need to import its own downstream consumer.

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

// innerPayload is a minimal ikewire.Payload used to exercise Encrypt/
// Decrypt without depending on package ikepayload.
type innerPayload struct {
	next iketypes.PayloadType
	data []byte
}

func (p *innerPayload) Descriptor() []ikewire.Field {
	return []ikewire.Field{
		{Kind: ikewire.FieldU8, Name: "next-payload",
			Get: func() uint64 { return uint64(p.next) },
			Set: func(v uint64) { p.next = iketypes.PayloadType(v) }},
		{Kind: ikewire.FieldReservedByte, Name: "reserved", Width: 1},
		{Kind: ikewire.FieldPayloadLength, Name: "length", Set: func(uint64) {}},
		{Kind: ikewire.FieldChunk, Name: "data",
			GetBytes: func() []byte { return p.data },
			SetBytes: func(b []byte) { p.data = b },
			Length:   func() int { return ikewire.RestOfStructure }},
	}
}
func (p *innerPayload) Type() iketypes.PayloadType         { return iketypes.Nonce }
func (p *innerPayload) NextType() iketypes.PayloadType     { return p.next }
func (p *innerPayload) SetNextType(t iketypes.PayloadType) { p.next = t }
func (p *innerPayload) Verify() error                      { return nil }
func (p *innerPayload) Release()                           {}

func init() {
	ikewire.Register(iketypes.Nonce, func() ikewire.Payload { return &innerPayload{} })
}

func TestEncryptDecryptRoundTrip(t *testing.T) {
	key := bytes.Repeat([]byte{0x42}, 16)
	macKey := bytes.Repeat([]byte{0x24}, 16)
	crypter := newFakeCrypter(key)
	signer := &fakeSigner{key: macKey}

	enc := NewEncryptionPayload()
	enc.SetTransforms(crypter, signer)
	enc.AddPayload(&innerPayload{data: []byte("secret payload body")})

	if err := enc.Encrypt(); err != nil {
		t.Fatalf("Encrypt: %v", err)
	}

	outer, err := ikewire.Generate(enc)
	if err != nil {
		t.Fatalf("Generate: %v", err)
	}
	if err := enc.BuildSignature(outer); err != nil {
		t.Fatalf("BuildSignature: %v", err)
	}

	if err := enc.VerifySignature(outer); err != nil {
		t.Fatalf("VerifySignature: %v", err)
	}

	p := ikewire.NewParser(outer)
	payload, _, err := p.ParseNext(iketypes.Encrypted)
	if err != nil {
		t.Fatalf("ParseNext: %v", err)
	}
	received := payload.(*EncryptionPayload)
	received.SetTransforms(crypter, signer)

	if err := received.VerifySignature(outer); err != nil {
		t.Fatalf("VerifySignature on received packet: %v", err)
	}
	if err := received.Decrypt(); err != nil {
		t.Fatalf("Decrypt: %v", err)
	}

	inner := received.InnerPayloads()
	if len(inner) != 1 {
		t.Fatalf("got %d inner payloads, want 1", len(inner))
	}
	got := inner[0].(*innerPayload)
	if string(got.data) != "secret payload body" {
		t.Fatalf("decrypted data = %q, want %q", got.data, "secret payload body")
	}
}

func TestEncryptDecryptRoundTripMultipleInnerPayloads(t *testing.T) {
	key := bytes.Repeat([]byte{0x55}, 16)
	macKey := bytes.Repeat([]byte{0x66}, 16)
	crypter := newFakeCrypter(key)
	signer := &fakeSigner{key: macKey}

	enc := NewEncryptionPayload()
	enc.SetTransforms(crypter, signer)
	enc.AddPayload(&innerPayload{data: []byte("first")})
	enc.AddPayload(&innerPayload{data: []byte("second")})

	if enc.NextType() != iketypes.Nonce {
		t.Fatalf("AddPayload did not set the encryption payload's own next-type to the first inner payload's type: got %s", enc.NextType())
	}

	if err := enc.Encrypt(); err != nil {
		t.Fatalf("Encrypt: %v", err)
	}
	outer, err := ikewire.Generate(enc)
	if err != nil {
		t.Fatalf("Generate: %v", err)
	}
	if err := enc.BuildSignature(outer); err != nil {
		t.Fatalf("BuildSignature: %v", err)
	}

	p := ikewire.NewParser(outer)
	payload, _, err := p.ParseNext(iketypes.Encrypted)
	if err != nil {
		t.Fatalf("ParseNext: %v", err)
	}
	received := payload.(*EncryptionPayload)
	received.SetTransforms(crypter, signer)
	if err := received.Decrypt(); err != nil {
		t.Fatalf("Decrypt: %v", err)
	}

	inner := received.InnerPayloads()
	if len(inner) != 2 {
		t.Fatalf("got %d inner payloads, want 2", len(inner))
	}
	if got := string(inner[0].(*innerPayload).data); got != "first" {
		t.Fatalf("inner[0].data = %q, want %q", got, "first")
	}
	if got := string(inner[1].(*innerPayload).data); got != "second" {
		t.Fatalf("inner[1].data = %q, want %q", got, "second")
	}
}

func TestVerifySignatureRejectsTamperedBuffer(t *testing.T) {
	key := bytes.Repeat([]byte{0x11}, 16)
	macKey := bytes.Repeat([]byte{0x22}, 16)
	crypter := newFakeCrypter(key)
	signer := &fakeSigner{key: macKey}

	enc := NewEncryptionPayload()
	enc.SetTransforms(crypter, signer)
	enc.AddPayload(&innerPayload{data: []byte("tamper me")})
	if err := enc.Encrypt(); err != nil {
		t.Fatalf("Encrypt: %v", err)
	}

	outer, err := ikewire.Generate(enc)
	if err != nil {
		t.Fatalf("Generate: %v", err)
	}
	if err := enc.BuildSignature(outer); err != nil {
		t.Fatalf("BuildSignature: %v", err)
	}

	outer[0] ^= 0xFF
	if err := enc.VerifySignature(outer); err == nil {
		t.Fatal("expected VerifySignature to reject a tampered buffer")
	}
}

func TestPadToBlock(t *testing.T) {
	out := padToBlock([]byte("abc"), 16)
	if len(out)%16 != 0 {
		t.Fatalf("padded length %d is not a multiple of 16", len(out))
	}
	padLen := int(out[len(out)-1])
	if len(out) != len("abc")+1+padLen {
		t.Fatalf("pad-length byte %d inconsistent with total length %d", padLen, len(out))
	}
}
