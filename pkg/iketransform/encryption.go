package iketransform

import (
	"crypto/rand"

	"github.com/pion/logging"

	"github.com/lucifiery/ikev2/pkg/iketypes"
	"github.com/lucifiery/ikev2/pkg/ikewire"
)

func init() {
	ikewire.Register(iketypes.Encrypted, func() ikewire.Payload { return NewEncryptionPayload() })
}

// EncryptionPayload is the ENCRYPTED payload (spec.md Section 4.D): an
// encrypt-then-MAC envelope carrying an inner chain of payloads. Its
// outer wire structure (generic header + one opaque body chunk) is
// generic enough to flow through the same descriptor-driven codec every
// other payload uses; the body's own iv/ciphertext/mac substructure is
// only meaningful once a Crypter and Signer are bound, so it is carved
// out and interpreted by Decrypt/Encrypt, not by Descriptor.
type EncryptionPayload struct {
	payloadType iketypes.PayloadType
	next        iketypes.PayloadType
	critical    bool

	inner []ikewire.Payload

	crypter Crypter
	signer  Signer

	// body is the staged or parsed iv || ciphertext || mac region. On the
	// send path it is populated by Encrypt (mac left zero) and finalized
	// by BuildSignature. On the receive path it is populated verbatim by
	// the generic decode of the sk.body chunk.
	body []byte

	log logging.LeveledLogger
}

// NewEncryptionPayload constructs an empty Encryption payload.
func NewEncryptionPayload() *EncryptionPayload {
	return &EncryptionPayload{payloadType: iketypes.Encrypted}
}

// SetLogger attaches a leveled logger used for encrypt/decrypt tracing.
// Optional; a nil logger disables tracing.
func (e *EncryptionPayload) SetLogger(log logging.LeveledLogger) {
	e.log = log
}

// Type implements ikewire.Payload.
func (e *EncryptionPayload) Type() iketypes.PayloadType { return e.payloadType }

// NextType implements ikewire.Payload.
func (e *EncryptionPayload) NextType() iketypes.PayloadType { return e.next }

// SetNextType implements ikewire.Payload.
func (e *EncryptionPayload) SetNextType(t iketypes.PayloadType) { e.next = t }

// Release implements ikewire.Payload; it drops the staged body and
// releases every inner payload.
func (e *EncryptionPayload) Release() {
	e.body = nil
	for _, p := range e.inner {
		p.Release()
	}
}

// Descriptor implements ikewire.Fielder. The body is moved as one opaque
// chunk; Encrypt/Decrypt interpret its internal iv/ciphertext/mac layout.
func (e *EncryptionPayload) Descriptor() []ikewire.Field {
	return []ikewire.Field{
		{Kind: ikewire.FieldU8, Name: "sk.next-payload",
			Get: func() uint64 { return uint64(e.next) },
			Set: func(v uint64) { e.next = iketypes.PayloadType(v) }},
		{Kind: ikewire.FieldBit, Name: "sk.critical", BitOffset: 7,
			GetBool: func() bool { return e.critical },
			SetBool: func(v bool) { e.critical = v }},
		{Kind: ikewire.FieldReservedBit, Name: "sk.reserved", BitOffset: 0, EndOfByte: true},
		{Kind: ikewire.FieldPayloadLength, Name: "sk.payload-length", Set: func(uint64) {}},
		{Kind: ikewire.FieldChunk, Name: "sk.body",
			GetBytes: func() []byte { return e.body },
			SetBytes: func(b []byte) { e.body = b },
			Length:   func() int { return ikewire.RestOfStructure }},
	}
}

// Verify performs no payload-local check; body length, MAC and padding
// validity are checked by VerifySignature/Decrypt, which need transforms
// this payload does not itself own until SetTransforms is called.
func (e *EncryptionPayload) Verify() error {
	return nil
}

// AddPayload appends p to the inner ordered list, chaining the previous
// tail's next-type link to p's type (spec.md Section 4.D, Section 3
// invariant 1 applied to the inner sequence). The caller retains no
// further rights over p.
//
// e.next doubles as this payload's own generic-header "next payload"
// field (RFC 7296 Section 3.14): on the wire it does not name the payload
// that follows the Encryption payload in the outer sequence (there never
// is one; invariant 4 puts it last) but the type of the first payload
// inside the encrypted body. AddPayload sets it here, once, for the
// first inner payload added; callers relinking the outer chain must
// leave it alone.
func (e *EncryptionPayload) AddPayload(p ikewire.Payload) {
	if n := len(e.inner); n > 0 {
		e.inner[n-1].SetNextType(p.Type())
	} else {
		e.next = p.Type()
	}
	p.SetNextType(iketypes.NoPayload)
	e.inner = append(e.inner, p)
}

// InnerPayloads returns the currently held inner payloads. The payload
// retains ownership; callers must not mutate the returned slice's
// lifetime beyond this EncryptionPayload's own.
func (e *EncryptionPayload) InnerPayloads() []ikewire.Payload {
	return e.inner
}

// SetTransforms binds the cipher and MAC capabilities used by Encrypt,
// Decrypt, BuildSignature, and VerifySignature.
func (e *EncryptionPayload) SetTransforms(crypter Crypter, signer Signer) {
	e.crypter = crypter
	e.signer = signer
}

// Encrypt serializes the inner payload chain, pads it to the cipher's
// block size, generates an IV, encrypts, and stages the result as this
// payload's body with the integrity-checksum region left zero (spec.md
// Section 4.D). BuildSignature must be called afterward, once the outer
// message buffer has been fully generated, to compute and splice the MAC.
func (e *EncryptionPayload) Encrypt() error {
	if e.crypter == nil || e.signer == nil {
		return invalidStateErrorf("encrypt", errNoTransforms)
	}

	fielders := make([]ikewire.Fielder, len(e.inner))
	for i, p := range e.inner {
		fielders[i] = p
	}
	plaintext, err := ikewire.Generate(fielders...)
	if err != nil {
		return err
	}

	blockSize := e.crypter.BlockSize()
	plaintext = padToBlock(plaintext, blockSize)

	iv := make([]byte, blockSize)
	if _, err := rand.Read(iv); err != nil {
		return invalidStateErrorf("encrypt.iv", err)
	}

	ciphertext, err := e.crypter.Encrypt(plaintext, iv)
	if err != nil {
		return invalidStateErrorf("encrypt.cipher", err)
	}

	macLen := e.signer.BlockSize()
	body := make([]byte, 0, len(iv)+len(ciphertext)+macLen)
	body = append(body, iv...)
	body = append(body, ciphertext...)
	body = append(body, make([]byte, macLen)...)
	e.body = body

	if e.log != nil {
		e.log.Tracef("ikev2: encrypted %d inner payload(s) into %d octets", len(e.inner), len(e.body))
	}
	return nil
}

// padToBlock appends the IKEv2 padding discipline: p arbitrary padding
// octets followed by a single pad-length byte, such that the total is a
// multiple of blockSize.
func padToBlock(data []byte, blockSize int) []byte {
	total := len(data) + 1
	rem := total % blockSize
	padLen := 0
	if rem != 0 {
		padLen = blockSize - rem
	}
	out := make([]byte, len(data)+padLen+1)
	copy(out, data)
	out[len(out)-1] = byte(padLen)
	return out
}

// BuildSignature computes the MAC over outerBuf with this payload's
// trailing integrity-checksum region treated as zero, then splices the
// computed MAC into that region in place (spec.md Section 4.D). Per
// spec.md Section 3 invariant 4, the Encryption payload is always the
// last element of the outer sequence, so its MAC region is always the
// last Signer.BlockSize() octets of outerBuf.
func (e *EncryptionPayload) BuildSignature(outerBuf []byte) error {
	if e.signer == nil {
		return invalidStateErrorf("build-signature", errNoTransforms)
	}
	macLen := e.signer.BlockSize()
	if len(outerBuf) < macLen {
		return invalidStateErrorf("build-signature", errShortBody)
	}
	macOffset := len(outerBuf) - macLen

	zeroed := make([]byte, len(outerBuf))
	copy(zeroed, outerBuf)
	for i := macOffset; i < len(zeroed); i++ {
		zeroed[i] = 0
	}

	mac, err := e.signer.GetSignature(zeroed)
	if err != nil {
		return invalidStateErrorf("build-signature", err)
	}
	copy(outerBuf[macOffset:], mac)
	if len(e.body) >= macLen {
		copy(e.body[len(e.body)-macLen:], mac)
	}
	return nil
}

// VerifySignature checks outerBuf's trailing MAC region against the
// value the bound Signer computes over the rest of the message with that
// region zeroed. It does not mutate outerBuf.
func (e *EncryptionPayload) VerifySignature(outerBuf []byte) error {
	if e.signer == nil {
		return invalidStateErrorf("verify-signature", errNoTransforms)
	}
	macLen := e.signer.BlockSize()
	if len(outerBuf) < macLen {
		return invalidStateErrorf("verify-signature", errShortBody)
	}
	macOffset := len(outerBuf) - macLen
	presented := outerBuf[macOffset:]

	zeroed := make([]byte, len(outerBuf))
	copy(zeroed, outerBuf)
	for i := macOffset; i < len(zeroed); i++ {
		zeroed[i] = 0
	}

	ok, err := e.signer.VerifySignature(zeroed, presented)
	if err != nil {
		return invalidStateErrorf("verify-signature", err)
	}
	if !ok {
		return invalidStateErrorf("verify-signature", errMACMismatch)
	}
	return nil
}

// Decrypt decrypts the staged body, strips the pad, and re-parses the
// resulting plaintext as a chain of payloads starting from this payload's
// own next-type (spec.md Section 4.D). On success the inner payloads are
// available via InnerPayloads.
func (e *EncryptionPayload) Decrypt() error {
	if e.crypter == nil {
		return invalidStateErrorf("decrypt", errNoTransforms)
	}
	macLen := 0
	if e.signer != nil {
		macLen = e.signer.BlockSize()
	}
	ivLen := e.crypter.BlockSize()
	if len(e.body) < ivLen+macLen {
		return invalidStateErrorf("decrypt", errShortBody)
	}

	iv := e.body[:ivLen]
	ciphertext := e.body[ivLen : len(e.body)-macLen]

	plaintext, err := e.crypter.Decrypt(ciphertext, iv)
	if err != nil {
		return invalidStateErrorf("decrypt.cipher", err)
	}
	if len(plaintext) == 0 {
		return parseErrorf("decrypt.padding", errPadding)
	}

	padLen := int(plaintext[len(plaintext)-1])
	if padLen+1 > len(plaintext) {
		return parseErrorf("decrypt.padding", errPadding)
	}
	plaintext = plaintext[:len(plaintext)-padLen-1]

	parser := ikewire.NewParser(plaintext)
	e.inner = nil
	next := e.next
	for next != iketypes.NoPayload {
		payload, nextType, err := parser.ParseNext(next)
		if err != nil {
			return err
		}
		if err := payload.Verify(); err != nil {
			return err
		}
		e.inner = append(e.inner, payload)
		next = nextType
	}

	if e.log != nil {
		e.log.Tracef("ikev2: decrypted %d inner payload(s)", len(e.inner))
	}
	return nil
}

// payloadIterator is a lazy, forward, non-restartable traversal over an
// EncryptionPayload's inner payloads (spec.md Section 4.D
// create_payload_iterator); the payload retains ownership throughout.
type payloadIterator struct {
	payloads []ikewire.Payload
	pos      int
}

// CreatePayloadIterator returns a lazy forward iterator over the inner
// payloads currently held by e.
func (e *EncryptionPayload) CreatePayloadIterator() *payloadIterator {
	return &payloadIterator{payloads: e.inner}
}

// Next returns the next inner payload, or (nil, false) once exhausted.
func (it *payloadIterator) Next() (ikewire.Payload, bool) {
	if it.pos >= len(it.payloads) {
		return nil, false
	}
	p := it.payloads[it.pos]
	it.pos++
	return p, true
}
