package ikewire

import (
	"bytes"
	"encoding/binary"
)

// lengthPatch records where a two-octet length placeholder was written so
// it can be back-patched once the full structure has been emitted.
type lengthPatch struct {
	offset int
}

// Generate serializes an ordered list of Fielders (typically the Header
// followed by a Message's payload list) into one contiguous octet buffer.
// Concatenation order matches fielders' order; every FieldPayloadLength /
// FieldSubstructureLength is back-patched with the encoded total of the
// structure it describes, per spec.md Section 4.A's generator contract.
func Generate(fielders ...Fielder) ([]byte, error) {
	buf := &bytes.Buffer{}
	for _, f := range fielders {
		if err := encodeOne(buf, f); err != nil {
			return nil, err
		}
	}
	return buf.Bytes(), nil
}

func encodeOne(buf *bytes.Buffer, f Fielder) error {
	start := buf.Len()
	var patch *lengthPatch

	fields := f.Descriptor()
	var pendingByte byte
	haveByte := false

	flushByte := func() {
		if haveByte {
			buf.WriteByte(pendingByte)
			pendingByte = 0
			haveByte = false
		}
	}

	for _, field := range fields {
		switch field.Kind {
		case FieldU8:
			buf.WriteByte(byte(field.Get()))
		case FieldU16:
			var b [2]byte
			binary.BigEndian.PutUint16(b[:], uint16(field.Get()))
			buf.Write(b[:])
		case FieldU32:
			var b [4]byte
			binary.BigEndian.PutUint32(b[:], uint32(field.Get()))
			buf.Write(b[:])
		case FieldU64:
			var b [8]byte
			binary.BigEndian.PutUint64(b[:], field.Get())
			buf.Write(b[:])
		case FieldBit:
			if field.GetBool() {
				pendingByte |= 1 << field.BitOffset
			}
			haveByte = true
			if field.EndOfByte {
				flushByte()
			}
		case FieldReservedBit:
			haveByte = true
			if field.EndOfByte {
				flushByte()
			}
		case FieldReservedByte:
			buf.Write(make([]byte, field.Width))
		case FieldFlag:
			if field.GetBool() {
				buf.WriteByte(flagTrueValue)
			} else {
				buf.WriteByte(0)
			}
		case FieldPayloadLength, FieldSubstructureLength:
			patch = &lengthPatch{offset: buf.Len()}
			buf.Write([]byte{0, 0})
		case FieldChunk:
			buf.Write(field.GetBytes())
		case FieldSub:
			for _, sub := range field.Subs() {
				if err := encodeOne(buf, sub); err != nil {
					return err
				}
			}
		}
	}
	flushByte()

	if patch != nil {
		total := buf.Len() - start
		binary.BigEndian.PutUint16(buf.Bytes()[patch.offset:patch.offset+2], uint16(total))
	}
	return nil
}
