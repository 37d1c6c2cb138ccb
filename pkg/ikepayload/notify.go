package ikepayload

import (
	"github.com/lucifiery/ikev2/pkg/iketypes"
	"github.com/lucifiery/ikev2/pkg/ikewire"
)

func init() {
	ikewire.Register(iketypes.Notify, func() ikewire.Payload { return NewNotify() })
}

// NotifyMessageType identifies the condition a NOTIFY payload reports
// (RFC 7296 Section 3.10.1).
type NotifyMessageType uint16

// A sample of RFC 7296 Section 3.10.1 Notify Message Types; this core
// moves the code opaquely and does not act on it.
const (
	NotifyUnsupportedCriticalPayload NotifyMessageType = 1
	NotifyInvalidSyntax              NotifyMessageType = 7
	NotifyAuthenticationFailed       NotifyMessageType = 24
	NotifyNoProposalChosen           NotifyMessageType = 14
	NotifyInitialContact             NotifyMessageType = 16384
	NotifyNATDetectionSourceIP       NotifyMessageType = 16388
	NotifyNATDetectionDestinationIP  NotifyMessageType = 16389
)

// Notify is the NOTIFY payload (RFC 7296 Section 3.10).
type Notify struct {
	base
	ProtocolID  uint8
	SPI         []byte
	MessageType NotifyMessageType
	Data        []byte
}

// NewNotify constructs an empty outbound notify payload.
func NewNotify() *Notify {
	return &Notify{base: base{payloadType: iketypes.Notify}}
}

// Descriptor implements ikewire.Fielder.
func (n *Notify) Descriptor() []ikewire.Field {
	fields := genericHeaderFields(&n.next, &n.critical)
	var spiSize int
	fields = append(fields,
		ikewire.Field{Kind: ikewire.FieldU8, Name: "notify.protocol-id",
			Get: func() uint64 { return uint64(n.ProtocolID) },
			Set: func(v uint64) { n.ProtocolID = uint8(v) }},
		ikewire.Field{Kind: ikewire.FieldU8, Name: "notify.spi-size",
			Get: func() uint64 { return uint64(len(n.SPI)) },
			Set: func(v uint64) { spiSize = int(v) }},
		ikewire.Field{Kind: ikewire.FieldU16, Name: "notify.message-type",
			Get: func() uint64 { return uint64(n.MessageType) },
			Set: func(v uint64) { n.MessageType = NotifyMessageType(v) }},
		ikewire.Field{Kind: ikewire.FieldChunk, Name: "notify.spi",
			GetBytes: func() []byte { return n.SPI },
			SetBytes: func(b []byte) { n.SPI = b },
			Length:   func() int { return spiSize }},
		ikewire.Field{Kind: ikewire.FieldChunk, Name: "notify.data",
			GetBytes: func() []byte { return n.Data },
			SetBytes: func(b []byte) { n.Data = b },
			Length:   func() int { return ikewire.RestOfStructure }},
	)
	return fields
}

// Verify has no payload-local invariant beyond the generic header.
func (n *Notify) Verify() error { return nil }
