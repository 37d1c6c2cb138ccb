package ikewire

import (
	"encoding/binary"

	"github.com/lucifiery/ikev2/pkg/iketypes"
)

// Registry maps a PayloadType to a constructor for the concrete Payload
// that decodes it. Concrete payload packages register themselves here in
// an init() function (spec.md Section 9: "static rule table... no dynamic
// registration is required"; the type registry is the one piece of
// bootstrap wiring that is dynamic, since Go has no static map literal
// over not-yet-defined constructors across packages).
var registry = map[iketypes.PayloadType]func() Payload{}

// Register associates a payload type with a constructor. Called from
// package ikepayload's and package iketransform's init functions.
func Register(t iketypes.PayloadType, ctor func() Payload) {
	registry[t] = ctor
}

// Parser walks a borrowed octet buffer, producing payload objects on
// demand. It never copies the buffer; constructed payloads may reference
// slices of it until they are Released (spec.md Section 5, "packet buffer
// aliasing").
type Parser struct {
	data []byte
	pos  int
}

// NewParser creates a parser over data. The caller retains ownership of
// data; it must outlive every payload the parser produces.
func NewParser(data []byte) *Parser {
	return &Parser{data: data}
}

// Reset rewinds the cursor to the start of the underlying buffer. Nothing
// in this module calls it; the decrypt pass parses its plaintext with a
// fresh Parser instead.
func (p *Parser) Reset() {
	p.pos = 0
}

// ParseHeader parses the fixed 28-octet header. It must be called exactly
// once, before any ParseNext call.
func (p *Parser) ParseHeader() (*Header, error) {
	h := &Header{}
	if err := p.decodeOne(h); err != nil {
		return nil, err
	}
	if len(p.data) != int(h.TotalLength) {
		return nil, parseErrorf("header.total-length", errBadTotalLength)
	}
	return h, nil
}

// ParseNext constructs and decodes the payload of the given type, and
// returns it along with the type of the payload that should follow it
// (read from the decoded payload's own next-type field). On any
// structural failure it returns iketypes.ErrParse and no partially
// constructed payload.
func (p *Parser) ParseNext(t iketypes.PayloadType) (Payload, iketypes.PayloadType, error) {
	ctor, ok := registry[t]
	if !ok {
		return nil, iketypes.NoPayload, notSupportedErrorf("payload-type", errUnknownPayloadType(t))
	}
	payload := ctor()
	if err := p.decodeOne(payload); err != nil {
		return nil, iketypes.NoPayload, err
	}
	return payload, payload.NextType(), nil
}

func errUnknownPayloadType(t iketypes.PayloadType) error {
	return &unknownPayloadTypeError{t: t}
}

type unknownPayloadTypeError struct{ t iketypes.PayloadType }

func (e *unknownPayloadTypeError) Error() string {
	return "unknown payload type " + e.t.String()
}

// decodeOne decodes a single Fielder starting at the current cursor,
// advancing the cursor past it.
func (p *Parser) decodeOne(f Fielder) error {
	start := p.pos
	fields := f.Descriptor()

	var declaredLen *uint64
	var haveByte bool
	var currentByte byte

	readByte := func() (byte, error) {
		if p.pos >= len(p.data) {
			return 0, errShortRead
		}
		b := p.data[p.pos]
		p.pos++
		return b, nil
	}

	for _, field := range fields {
		switch field.Kind {
		case FieldU8:
			b, err := readByte()
			if err != nil {
				return parseErrorf(field.Name, err)
			}
			field.Set(uint64(b))
		case FieldU16:
			v, err := p.readUint(2)
			if err != nil {
				return parseErrorf(field.Name, err)
			}
			field.Set(v)
		case FieldU32:
			v, err := p.readUint(4)
			if err != nil {
				return parseErrorf(field.Name, err)
			}
			field.Set(v)
		case FieldU64:
			v, err := p.readUint(8)
			if err != nil {
				return parseErrorf(field.Name, err)
			}
			field.Set(v)
		case FieldBit, FieldReservedBit:
			if !haveByte {
				b, err := readByte()
				if err != nil {
					return parseErrorf(field.Name, err)
				}
				currentByte = b
				haveByte = true
			}
			bit := (currentByte>>field.BitOffset)&1 == 1
			if field.Kind == FieldBit {
				field.SetBool(bit)
			}
			if field.EndOfByte {
				haveByte = false
			}
		case FieldReservedByte:
			if p.pos+field.Width > len(p.data) {
				return parseErrorf(field.Name, errShortRead)
			}
			p.pos += field.Width
		case FieldFlag:
			b, err := readByte()
			if err != nil {
				return parseErrorf(field.Name, err)
			}
			field.SetBool(b != 0)
		case FieldPayloadLength, FieldSubstructureLength:
			v, err := p.readUint(2)
			if err != nil {
				return parseErrorf(field.Name, err)
			}
			field.Set(v)
			declaredLen = &v
		case FieldChunk:
			n := field.Width
			if field.Length != nil {
				n = field.Length()
			}
			if n == RestOfStructure {
				if declaredLen == nil {
					return parseErrorf(field.Name, errLengthMismatch)
				}
				n = int(*declaredLen) - (p.pos - start)
			}
			if n < 0 || p.pos+n > len(p.data) {
				return parseErrorf(field.Name, errShortRead)
			}
			chunk := make([]byte, n)
			copy(chunk, p.data[p.pos:p.pos+n])
			p.pos += n
			field.SetBytes(chunk)
		case FieldSub:
			if declaredLen == nil {
				return parseErrorf(field.Name, errLengthMismatch)
			}
			end := start + int(*declaredLen)
			if end > len(p.data) {
				return parseErrorf(field.Name, errLengthOverrun)
			}
			for p.pos < end {
				sub := field.NewSub()
				if err := p.decodeOne(sub); err != nil {
					return err
				}
				field.AppendSub(sub)
			}
		}
	}

	if declaredLen != nil {
		consumed := p.pos - start
		if consumed != int(*declaredLen) {
			return parseErrorf("length", errLengthMismatch)
		}
	}
	return nil
}

func (p *Parser) readUint(width int) (uint64, error) {
	if p.pos+width > len(p.data) {
		return 0, errShortRead
	}
	var v uint64
	switch width {
	case 2:
		v = uint64(binary.BigEndian.Uint16(p.data[p.pos:]))
	case 4:
		v = uint64(binary.BigEndian.Uint32(p.data[p.pos:]))
	case 8:
		v = binary.BigEndian.Uint64(p.data[p.pos:])
	}
	p.pos += width
	return v, nil
}
