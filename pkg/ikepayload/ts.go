package ikepayload

import (
	"github.com/lucifiery/ikev2/pkg/iketypes"
	"github.com/lucifiery/ikev2/pkg/ikewire"
)

func init() {
	ikewire.Register(iketypes.TrafficSelectorI, func() ikewire.Payload { return newTSPayload(iketypes.TrafficSelectorI) })
	ikewire.Register(iketypes.TrafficSelectorR, func() ikewire.Payload { return newTSPayload(iketypes.TrafficSelectorR) })
}

// TSType identifies a traffic selector's address family (RFC 7296 Section
// 3.13.1).
type TSType uint8

// RFC 7296 Section 3.13.1 Traffic Selector Types.
const (
	TSIPv4AddrRange TSType = 7
	TSIPv6AddrRange TSType = 8
)

func addrWidth(t TSType) int {
	switch t {
	case TSIPv4AddrRange:
		return 4
	case TSIPv6AddrRange:
		return 16
	default:
		return 0
	}
}

// TrafficSelector is one selector substructure nested inside a Traffic
// Selector payload.
type TrafficSelector struct {
	Type      TSType
	IPProtoID uint8
	StartPort uint16
	EndPort   uint16
	StartAddr []byte
	EndAddr   []byte
}

// Descriptor implements ikewire.Fielder.
func (t *TrafficSelector) Descriptor() []ikewire.Field {
	return []ikewire.Field{
		{Kind: ikewire.FieldU8, Name: "ts.type",
			Get: func() uint64 { return uint64(t.Type) },
			Set: func(v uint64) { t.Type = TSType(v) }},
		{Kind: ikewire.FieldU8, Name: "ts.ip-protocol-id",
			Get: func() uint64 { return uint64(t.IPProtoID) },
			Set: func(v uint64) { t.IPProtoID = uint8(v) }},
		{Kind: ikewire.FieldSubstructureLength, Name: "ts.selector-length",
			Set: func(uint64) {}},
		{Kind: ikewire.FieldU16, Name: "ts.start-port",
			Get: func() uint64 { return uint64(t.StartPort) },
			Set: func(v uint64) { t.StartPort = uint16(v) }},
		{Kind: ikewire.FieldU16, Name: "ts.end-port",
			Get: func() uint64 { return uint64(t.EndPort) },
			Set: func(v uint64) { t.EndPort = uint16(v) }},
		{Kind: ikewire.FieldChunk, Name: "ts.start-address",
			GetBytes: func() []byte { return t.StartAddr },
			SetBytes: func(b []byte) { t.StartAddr = b },
			Length:   func() int { return addrWidth(t.Type) }},
		{Kind: ikewire.FieldChunk, Name: "ts.end-address",
			GetBytes: func() []byte { return t.EndAddr },
			SetBytes: func(b []byte) { t.EndAddr = b },
			Length:   func() int { return addrWidth(t.Type) }},
	}
}

// TS is the TRAFFIC SELECTOR - INITIATOR / TRAFFIC SELECTOR - RESPONDER
// payload (RFC 7296 Section 3.13); TSi and TSr share this single Go type,
// distinguished only by the registered PayloadType.
type TS struct {
	base
	Selectors []*TrafficSelector
}

func newTSPayload(t iketypes.PayloadType) *TS {
	return &TS{base: base{payloadType: t}}
}

// NewTSi constructs an empty outbound initiator traffic selector payload.
func NewTSi() *TS { return newTSPayload(iketypes.TrafficSelectorI) }

// NewTSr constructs an empty outbound responder traffic selector payload.
func NewTSr() *TS { return newTSPayload(iketypes.TrafficSelectorR) }

// AddSelector appends a traffic selector.
func (s *TS) AddSelector(t *TrafficSelector) {
	s.Selectors = append(s.Selectors, t)
}

// Descriptor implements ikewire.Fielder.
func (s *TS) Descriptor() []ikewire.Field {
	fields := genericHeaderFields(&s.next, &s.critical)
	fields = append(fields,
		ikewire.Field{Kind: ikewire.FieldU8, Name: "ts.num-ts",
			Get: func() uint64 { return uint64(len(s.Selectors)) },
			Set: func(uint64) {}},
		ikewire.Field{Kind: ikewire.FieldReservedByte, Name: "ts.reserved", Width: 3},
		ikewire.Field{Kind: ikewire.FieldSub, Name: "ts.selectors",
			NewSub: func() ikewire.Fielder { return &TrafficSelector{} },
			AppendSub: func(f ikewire.Fielder) {
				s.Selectors = append(s.Selectors, f.(*TrafficSelector))
			},
			Subs: func() []ikewire.Fielder {
				out := make([]ikewire.Fielder, len(s.Selectors))
				for i, sel := range s.Selectors {
					out[i] = sel
				}
				return out
			}},
	)
	return fields
}

// Verify checks that at least one selector is present and that each
// selector's address lengths match its declared type.
func (s *TS) Verify() error {
	if len(s.Selectors) == 0 {
		return verifyErrorf("ts", errEmptySelectors)
	}
	for _, sel := range s.Selectors {
		w := addrWidth(sel.Type)
		if w == 0 {
			return verifyErrorf("ts.selector", errBadSelectorType)
		}
		if len(sel.StartAddr) != w || len(sel.EndAddr) != w {
			return verifyErrorf("ts.selector", errBadSelectorLength)
		}
	}
	return nil
}
